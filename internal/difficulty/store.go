package difficulty

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cogniplay/backend/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

type SQLStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) GetOrCreateTracking(userID int64) (*models.DifficultyTracking, error) {
	tracking := &models.DifficultyTracking{UserID: userID}

	err := s.db.QueryRow(`
		SELECT consecutive_successes, consecutive_failures, last_result, last_updated
		FROM difficulty_tracking WHERE user_id = $1`,
		userID,
	).Scan(&tracking.ConsecutiveSuccesses, &tracking.ConsecutiveFailures, &tracking.LastResult, &tracking.LastUpdated)

	if err == sql.ErrNoRows {
		tracking.LastResult = models.ResultNeutral
		tracking.LastUpdated = time.Now().UTC()
		_, err = s.db.Exec(`
			INSERT INTO difficulty_tracking (user_id, consecutive_successes, consecutive_failures, last_result, last_updated)
			VALUES ($1, 0, 0, $2, $3)
			ON CONFLICT (user_id) DO NOTHING`,
			userID, tracking.LastResult, tracking.LastUpdated,
		)
		if err != nil {
			return nil, fmt.Errorf("create tracking: %w", err)
		}
		return tracking, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get tracking: %w", err)
	}

	return tracking, nil
}

func (s *SQLStore) UpdateTracking(userID int64, tracking *models.DifficultyTracking) error {
	_, err := s.db.Exec(`
		UPDATE difficulty_tracking
		SET consecutive_successes = $2, consecutive_failures = $3, last_result = $4, last_updated = $5
		WHERE user_id = $1`,
		userID, tracking.ConsecutiveSuccesses, tracking.ConsecutiveFailures, tracking.LastResult, tracking.LastUpdated,
	)
	return err
}

func (s *SQLStore) GetUserLevel(userID int64) (int, error) {
	var level int
	err := s.db.QueryRow(`SELECT current_difficulty_level FROM users WHERE id = $1`, userID).Scan(&level)
	if err == sql.ErrNoRows {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get user level: %w", err)
	}
	return level, nil
}

func (s *SQLStore) UpdateUserLevel(userID int64, level int) error {
	result, err := s.db.Exec(`
		UPDATE users SET current_difficulty_level = $2, updated_at = NOW() WHERE id = $1`,
		userID, level,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return ErrUserNotFound
	}
	return nil
}
