package analytics

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

func (s *SQLStore) CategoryPerformance(userID int64, days int) ([]models.CategoryPerformance, []models.CategoryPerformance, error) {
	exercises, err := s.queryPerformance(`
		SELECT er.category, AVG(er.score), COUNT(*)
		FROM exercise_results er
		JOIN sessions se ON er.session_id = se.session_id
		WHERE se.user_id = $1 AND er.created_at > NOW() - ($2 * INTERVAL '1 day')
		GROUP BY er.category`,
		userID, days,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("exercise categories: %w", err)
	}

	scenarios, err := s.queryPerformance(`
		SELECT sr.scenario_type, AVG(sr.performance_score), COUNT(*)
		FROM scenario_results sr
		JOIN sessions se ON sr.session_id = se.session_id
		WHERE se.user_id = $1 AND sr.created_at > NOW() - ($2 * INTERVAL '1 day')
		GROUP BY sr.scenario_type`,
		userID, days,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("scenario types: %w", err)
	}

	return exercises, scenarios, nil
}

func (s *SQLStore) queryPerformance(query string, args ...interface{}) ([]models.CategoryPerformance, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.CategoryPerformance
	for rows.Next() {
		var p models.CategoryPerformance
		if err := rows.Scan(&p.Name, &p.AvgScore, &p.Total); err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

func (s *SQLStore) PerformanceTrends(userID int64, days int) ([]models.TrendPoint, []models.TrendPoint, error) {
	exercises, err := s.queryTrend(`
		SELECT TO_CHAR(er.created_at::date, 'YYYY-MM-DD'), AVG(er.score), COUNT(*)
		FROM exercise_results er
		JOIN sessions se ON er.session_id = se.session_id
		WHERE se.user_id = $1 AND er.created_at > NOW() - ($2 * INTERVAL '1 day')
		GROUP BY er.created_at::date
		ORDER BY er.created_at::date`,
		userID, days,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("exercise trend: %w", err)
	}

	scenarios, err := s.queryTrend(`
		SELECT TO_CHAR(sr.created_at::date, 'YYYY-MM-DD'), AVG(sr.performance_score), COUNT(*)
		FROM scenario_results sr
		JOIN sessions se ON sr.session_id = se.session_id
		WHERE se.user_id = $1 AND sr.created_at > NOW() - ($2 * INTERVAL '1 day')
		GROUP BY sr.created_at::date
		ORDER BY sr.created_at::date`,
		userID, days,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("scenario trend: %w", err)
	}

	return exercises, scenarios, nil
}

func (s *SQLStore) queryTrend(query string, args ...interface{}) ([]models.TrendPoint, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []models.TrendPoint
	for rows.Next() {
		var p models.TrendPoint
		if err := rows.Scan(&p.Date, &p.AvgScore, &p.Count); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (s *SQLStore) UserSessionCount(userID int64) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM sessions WHERE user_id = $1`, userID).Scan(&count)
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("session count: %w", err)
	}
	return count, nil
}
