package training

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/cogniplay/backend/internal/models"
)

type SQLStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) CreateSession(session *models.Session) error {
	_, err := s.db.Exec(`
		INSERT INTO sessions (session_id, user_id, mode, difficulty_level, start_time, exercises_completed, scenarios_completed)
		VALUES ($1, $2, $3, $4, $5, 0, 0)`,
		session.SessionID, session.UserID, session.Mode, session.DifficultyLevel, session.StartTime,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *SQLStore) GetSession(sessionID string) (*models.Session, error) {
	var session models.Session
	err := s.db.QueryRow(`
		SELECT session_id, user_id, mode, difficulty_level, start_time, end_time,
		       exercises_completed, scenarios_completed, average_score
		FROM sessions WHERE session_id = $1`,
		sessionID,
	).Scan(
		&session.SessionID, &session.UserID, &session.Mode, &session.DifficultyLevel,
		&session.StartTime, &session.EndTime, &session.ExercisesCompleted,
		&session.ScenariosCompleted, &session.AverageScore,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &session, nil
}

func (s *SQLStore) CompleteSession(sessionID string, averageScore float64, endTime time.Time) error {
	result, err := s.db.Exec(`
		UPDATE sessions SET end_time = $1, average_score = $2
		WHERE session_id = $3 AND end_time IS NULL`,
		endTime, averageScore, sessionID,
	)
	if err != nil {
		return fmt.Errorf("complete session: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("complete session: %w", err)
	}
	if rows == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (s *SQLStore) SessionResults(sessionID string) (*SessionResults, error) {
	results := &SessionResults{}

	rows, err := s.db.Query(`
		SELECT score, completion_time_seconds FROM exercise_results WHERE session_id = $1`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query exercise results: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var score float64
		var seconds int
		if err := rows.Scan(&score, &seconds); err != nil {
			return nil, fmt.Errorf("scan exercise result: %w", err)
		}
		results.ExerciseScores = append(results.ExerciseScores, score)
		results.TotalTimeSeconds += seconds
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exercise results: %w", err)
	}

	scenarioRows, err := s.db.Query(`
		SELECT performance_score, completion_time_seconds FROM scenario_results WHERE session_id = $1`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query scenario results: %w", err)
	}
	defer scenarioRows.Close()
	for scenarioRows.Next() {
		var score float64
		var seconds int
		if err := scenarioRows.Scan(&score, &seconds); err != nil {
			return nil, fmt.Errorf("scan scenario result: %w", err)
		}
		results.ScenarioScores = append(results.ScenarioScores, score)
		results.TotalTimeSeconds += seconds
	}
	if err := scenarioRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scenario results: %w", err)
	}

	return results, nil
}

func (s *SQLStore) UpdateUserTotals(userID int64, exercises, scenarios int) error {
	_, err := s.db.Exec(`
		UPDATE users SET
			total_sessions = total_sessions + 1,
			total_exercises_completed = total_exercises_completed + $1,
			total_scenarios_completed = total_scenarios_completed + $2
		WHERE id = $3`,
		exercises, scenarios, userID,
	)
	if err != nil {
		return fmt.Errorf("update user totals: %w", err)
	}
	return nil
}
