package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

func Connect() (*sql.DB, error) {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "cogniplay_user")
	password := getEnv("DB_PASSWORD", "cogniplay_password")
	dbname := getEnv("DB_NAME", "cogniplay")
	sslmode := getEnv("DB_SSLMODE", "disable")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func Migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL,
		current_difficulty_level INT NOT NULL DEFAULT 1 CHECK (current_difficulty_level >= 1 AND current_difficulty_level <= 5),
		total_sessions INT NOT NULL DEFAULT 0,
		total_exercises_completed INT NOT NULL DEFAULT 0,
		total_scenarios_completed INT NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

	CREATE TABLE IF NOT EXISTS sessions (
		session_id          VARCHAR(36) PRIMARY KEY,
		user_id             BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		mode                VARCHAR(20) NOT NULL,
		difficulty_level    INT NOT NULL DEFAULT 1,
		start_time          TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		end_time            TIMESTAMP WITH TIME ZONE,
		exercises_completed INT NOT NULL DEFAULT 0,
		scenarios_completed INT NOT NULL DEFAULT 0,
		average_score       DOUBLE PRECISION
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id, start_time DESC);
	CREATE INDEX IF NOT EXISTS idx_sessions_active ON sessions(user_id) WHERE end_time IS NULL;

	CREATE TABLE IF NOT EXISTS exercise_results (
		result_id               VARCHAR(36) PRIMARY KEY,
		exercise_id             VARCHAR(36) NOT NULL,
		session_id              VARCHAR(36) REFERENCES sessions(session_id) ON DELETE SET NULL,
		category                VARCHAR(30) NOT NULL,
		subtype                 VARCHAR(50),
		difficulty              INT NOT NULL,
		user_answer             TEXT,
		is_correct              BOOLEAN NOT NULL,
		score                   DOUBLE PRECISION NOT NULL,
		accuracy                DOUBLE PRECISION NOT NULL,
		completion_time_seconds INT NOT NULL DEFAULT 0,
		hints_used              INT NOT NULL DEFAULT 0,
		created_at              TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_exercise_results_session ON exercise_results(session_id);
	CREATE INDEX IF NOT EXISTS idx_exercise_results_category ON exercise_results(category, created_at DESC);

	CREATE TABLE IF NOT EXISTS scenario_results (
		result_id               VARCHAR(36) PRIMARY KEY,
		session_id              VARCHAR(36) REFERENCES sessions(session_id) ON DELETE SET NULL,
		scenario_type           VARCHAR(30) NOT NULL,
		difficulty              INT NOT NULL,
		performance_score       DOUBLE PRECISION NOT NULL,
		decision_quality_score  DOUBLE PRECISION NOT NULL,
		completion_time_seconds INT NOT NULL DEFAULT 0,
		created_at              TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_scenario_results_session ON scenario_results(session_id);
	CREATE INDEX IF NOT EXISTS idx_scenario_results_type ON scenario_results(scenario_type, created_at DESC);

	CREATE TABLE IF NOT EXISTS difficulty_tracking (
		user_id               BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		consecutive_successes INT NOT NULL DEFAULT 0,
		consecutive_failures  INT NOT NULL DEFAULT 0,
		last_result           VARCHAR(10) NOT NULL DEFAULT 'neutral',
		last_updated          TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS ai_character_memory (
		character_id        VARCHAR(36) PRIMARY KEY,
		name                VARCHAR(100) NOT NULL,
		role                VARCHAR(100) NOT NULL,
		personality_traits  JSONB NOT NULL DEFAULT '{}',
		background          TEXT,
		interaction_history JSONB NOT NULL DEFAULT '[]',
		created_at          TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		last_used           TIMESTAMP WITH TIME ZONE
	);

	CREATE INDEX IF NOT EXISTS idx_character_last_used ON ai_character_memory(last_used DESC);
	`

	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// Idempotent for databases created before the user stat columns existed.
	alterStatements := []string{
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS current_difficulty_level INT NOT NULL DEFAULT 1`,
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS total_sessions INT NOT NULL DEFAULT 0`,
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS total_exercises_completed INT NOT NULL DEFAULT 0`,
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS total_scenarios_completed INT NOT NULL DEFAULT 0`,
	}
	for _, stmt := range alterStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("alter table failed: %w", err)
		}
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
