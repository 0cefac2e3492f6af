package training

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/cogniplay/backend/internal/models"
	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidMode     = errors.New("invalid session mode")
)

// SessionResults holds the per-item scores a session accumulated.
type SessionResults struct {
	ExerciseScores   []float64
	ScenarioScores   []float64
	TotalTimeSeconds int
}

// Store is the session persistence surface.
type Store interface {
	CreateSession(session *models.Session) error
	GetSession(sessionID string) (*models.Session, error)
	CompleteSession(sessionID string, averageScore float64, endTime time.Time) error
	SessionResults(sessionID string) (*SessionResults, error)
	UpdateUserTotals(userID int64, exercises, scenarios int) error
}

// DifficultyLeveler supplies the user's current level for new sessions.
type DifficultyLeveler interface {
	CurrentLevel(userID int64) int
}

type Service struct {
	store      Store
	difficulty DifficultyLeveler
}

func NewService(store Store, difficulty DifficultyLeveler) *Service {
	return &Service{store: store, difficulty: difficulty}
}

// StartSession opens a session at the user's current difficulty level unless
// a valid override is given.
func (s *Service) StartSession(userID int64, req models.StartSessionRequest) (*models.Session, error) {
	if !models.ValidSessionModes[req.Mode] {
		return nil, ErrInvalidMode
	}

	level := 0
	if req.DifficultyOverride != nil && *req.DifficultyOverride >= 1 && *req.DifficultyOverride <= 5 {
		level = *req.DifficultyOverride
	} else {
		level = s.difficulty.CurrentLevel(userID)
	}

	session := &models.Session{
		SessionID:       uuid.NewString(),
		UserID:          userID,
		Mode:            req.Mode,
		DifficultyLevel: level,
		StartTime:       time.Now().UTC(),
	}
	if err := s.store.CreateSession(session); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	log.Printf("[training] session %s started for user %d (%s, level %d)", session.SessionID, userID, req.Mode, level)

	return session, nil
}

// CompleteSession closes an active session and returns its summary. The
// overall score weights exercise and scenario averages by item count.
func (s *Service) CompleteSession(userID int64, sessionID string) (*models.SessionSummary, error) {
	session, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session.EndTime != nil {
		return nil, ErrSessionNotFound
	}

	results, err := s.store.SessionResults(sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session results: %w", err)
	}

	avgExercise := mean(results.ExerciseScores)
	avgScenario := mean(results.ScenarioScores)
	nEx := len(results.ExerciseScores)
	nSc := len(results.ScenarioScores)

	overall := 0.0
	if nEx+nSc > 0 {
		overall = (avgExercise*float64(nEx) + avgScenario*float64(nSc)) / float64(nEx+nSc)
	}

	now := time.Now().UTC()
	if err := s.store.CompleteSession(sessionID, overall, now); err != nil {
		return nil, fmt.Errorf("complete session: %w", err)
	}

	if err := s.store.UpdateUserTotals(userID, nEx, nSc); err != nil {
		log.Printf("WARN: [training] failed to update totals for user %d: %v", userID, err)
	}

	log.Printf("[training] session %s completed: %d exercises, %d scenarios, avg %.1f", sessionID, nEx, nSc, overall)

	return &models.SessionSummary{
		SessionID:          sessionID,
		Mode:               session.Mode,
		DurationSeconds:    results.TotalTimeSeconds,
		ExercisesCompleted: nEx,
		ScenariosCompleted: nSc,
		AverageScore:       overall,
		AvgExerciseScore:   avgExercise,
		AvgScenarioScore:   avgScenario,
		Recommendation:     sessionRecommendation(overall),
	}, nil
}

// CancelSession closes a session early with a zero score.
func (s *Service) CancelSession(userID int64, sessionID string) error {
	session, err := s.store.GetSession(sessionID)
	if err != nil {
		return err
	}
	if session.EndTime != nil {
		return ErrSessionNotFound
	}

	if err := s.store.CompleteSession(sessionID, 0.0, time.Now().UTC()); err != nil {
		return fmt.Errorf("cancel session: %w", err)
	}

	log.Printf("[training] session %s cancelled by user %d", sessionID, userID)
	return nil
}

// Progress reports the running counts for a session.
func (s *Service) Progress(sessionID string) (*models.SessionProgress, error) {
	session, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	return &models.SessionProgress{
		SessionID:          session.SessionID,
		Mode:               session.Mode,
		DifficultyLevel:    session.DifficultyLevel,
		ExercisesCompleted: session.ExercisesCompleted,
		ScenariosCompleted: session.ScenariosCompleted,
		TotalCompleted:     session.ExercisesCompleted + session.ScenariosCompleted,
		StartTime:          session.StartTime,
		IsActive:           session.EndTime == nil,
	}, nil
}

func sessionRecommendation(score float64) string {
	switch {
	case score >= 90:
		return "Excellent session! You're performing at a high level. Try increasing difficulty for more challenge."
	case score >= 80:
		return "Great work! Your performance is strong. Keep up the consistent practice."
	case score >= 70:
		return "Good session! You're making progress. Focus on accuracy in your next session."
	case score >= 60:
		return "Decent performance. Review the areas where you struggled and practice more."
	default:
		return "This session was challenging. Consider starting with easier exercises to build confidence."
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}
