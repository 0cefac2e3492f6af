package exercises

import (
	"database/sql"
	"fmt"

	"github.com/cogniplay/backend/internal/models"
)

type SQLStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) SaveResult(result *models.ExerciseResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var sessionID interface{}
	if result.SessionID != "" {
		sessionID = result.SessionID
	}

	_, err = tx.Exec(`
		INSERT INTO exercise_results
			(result_id, exercise_id, session_id, category, subtype, difficulty,
			 user_answer, is_correct, score, accuracy, completion_time_seconds, hints_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		result.ResultID, result.ExerciseID, sessionID, result.Category, result.Subtype,
		result.Difficulty, result.UserAnswer, result.IsCorrect, result.Score,
		result.Accuracy, result.CompletionTimeSeconds, result.HintsUsed, result.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert exercise result: %w", err)
	}

	if result.SessionID != "" {
		_, err = tx.Exec(`
			UPDATE sessions SET exercises_completed = exercises_completed + 1
			WHERE session_id = $1`,
			result.SessionID,
		)
		if err != nil {
			return fmt.Errorf("update session counter: %w", err)
		}
	}

	return tx.Commit()
}
