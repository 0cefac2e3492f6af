package difficulty

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/cogniplay/backend/internal/models"
)

const (
	MinLevel            = 1
	MaxLevel            = 5
	SuccessThreshold    = 90.0
	FailureThreshold    = 50.0
	ConsecutiveRequired = 3
)

var ErrInvalidLevel = errors.New("level must be between 1 and 5")

// Store is the persistence surface the engine needs. *SQLStore implements it;
// tests substitute an in-memory fake.
type Store interface {
	GetOrCreateTracking(userID int64) (*models.DifficultyTracking, error)
	UpdateTracking(userID int64, tracking *models.DifficultyTracking) error
	GetUserLevel(userID int64) (int, error)
	UpdateUserLevel(userID int64, level int) error
}

// Engine adjusts a user's difficulty level from streaks of consecutive
// successes and failures. Three in a row either way moves the level one
// step, within [1, 5].
type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Process records one result and returns the adjustment it triggered, or
// nil if the level is unchanged.
func (e *Engine) Process(userID int64, accuracy float64) (*models.Adjustment, error) {
	tracking, err := e.store.GetOrCreateTracking(userID)
	if err != nil {
		return nil, fmt.Errorf("get tracking: %w", err)
	}

	kind := classify(accuracy)
	switch kind {
	case models.ResultSuccess:
		tracking.ConsecutiveSuccesses++
		tracking.ConsecutiveFailures = 0
	case models.ResultFailure:
		tracking.ConsecutiveFailures++
		tracking.ConsecutiveSuccesses = 0
	case models.ResultNeutral:
		// Counters carry over untouched.
	}
	tracking.LastResult = kind
	tracking.LastUpdated = time.Now().UTC()

	adjustment, err := e.checkAdjustment(userID, tracking)
	if err != nil {
		return nil, err
	}

	if err := e.store.UpdateTracking(userID, tracking); err != nil {
		return nil, fmt.Errorf("update tracking: %w", err)
	}

	if adjustment != nil {
		log.Printf("[difficulty] user %d adjusted %d -> %d (%s)", userID, adjustment.OldLevel, adjustment.NewLevel, adjustment.Reason)
	}

	return adjustment, nil
}

func classify(accuracy float64) models.ResultKind {
	switch {
	case accuracy >= SuccessThreshold:
		return models.ResultSuccess
	case accuracy < FailureThreshold:
		return models.ResultFailure
	default:
		return models.ResultNeutral
	}
}

// checkAdjustment applies the streak rules against the user's current level.
// At the boundary levels the streak keeps accumulating, so a user parked at
// level 5 does not lose progress toward staying there.
func (e *Engine) checkAdjustment(userID int64, tracking *models.DifficultyTracking) (*models.Adjustment, error) {
	currentLevel, err := e.store.GetUserLevel(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Printf("WARN: [difficulty] user %d not found for adjustment", userID)
			return nil, nil
		}
		return nil, fmt.Errorf("get user level: %w", err)
	}

	if tracking.ConsecutiveSuccesses >= ConsecutiveRequired {
		if currentLevel < MaxLevel {
			newLevel := currentLevel + 1
			if err := e.store.UpdateUserLevel(userID, newLevel); err != nil {
				return nil, fmt.Errorf("update user level: %w", err)
			}
			tracking.ConsecutiveSuccesses = 0
			tracking.ConsecutiveFailures = 0
			return &models.Adjustment{
				OldLevel:  currentLevel,
				NewLevel:  newLevel,
				Direction: "up",
				Reason:    fmt.Sprintf("%d consecutive successes", ConsecutiveRequired),
				Message:   levelUpMessage(newLevel),
			}, nil
		}
	} else if tracking.ConsecutiveFailures >= ConsecutiveRequired {
		if currentLevel > MinLevel {
			newLevel := currentLevel - 1
			if err := e.store.UpdateUserLevel(userID, newLevel); err != nil {
				return nil, fmt.Errorf("update user level: %w", err)
			}
			tracking.ConsecutiveSuccesses = 0
			tracking.ConsecutiveFailures = 0
			return &models.Adjustment{
				OldLevel:  currentLevel,
				NewLevel:  newLevel,
				Direction: "down",
				Reason:    fmt.Sprintf("%d consecutive struggles", ConsecutiveRequired),
				Message:   levelDownMessage(newLevel),
			}, nil
		}
	}

	return nil, nil
}

// SetLevel overrides the level directly and wipes both streaks.
func (e *Engine) SetLevel(userID int64, newLevel int, reason string) (*models.Adjustment, error) {
	if newLevel < MinLevel || newLevel > MaxLevel {
		return nil, ErrInvalidLevel
	}
	if reason == "" {
		reason = "Manual adjustment"
	}

	currentLevel := e.CurrentLevel(userID)

	if err := e.store.UpdateUserLevel(userID, newLevel); err != nil {
		return nil, fmt.Errorf("update user level: %w", err)
	}

	tracking, err := e.store.GetOrCreateTracking(userID)
	if err != nil {
		return nil, fmt.Errorf("get tracking: %w", err)
	}
	tracking.ConsecutiveSuccesses = 0
	tracking.ConsecutiveFailures = 0
	tracking.LastUpdated = time.Now().UTC()
	if err := e.store.UpdateTracking(userID, tracking); err != nil {
		return nil, fmt.Errorf("update tracking: %w", err)
	}

	direction := "down"
	if newLevel > currentLevel {
		direction = "up"
	}

	log.Printf("[difficulty] user %d manually set %d -> %d (%s)", userID, currentLevel, newLevel, reason)

	return &models.Adjustment{
		OldLevel:  currentLevel,
		NewLevel:  newLevel,
		Direction: direction,
		Reason:    reason,
		Message:   fmt.Sprintf("Difficulty manually set to level %d", newLevel),
	}, nil
}

// CurrentLevel returns the user's level, defaulting to 1 for unknown users.
func (e *Engine) CurrentLevel(userID int64) int {
	level, err := e.store.GetUserLevel(userID)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			log.Printf("WARN: [difficulty] get level for user %d: %v", userID, err)
		}
		return MinLevel
	}
	return level
}

// Progress reports the streak state and what adjustment it is heading toward.
func (e *Engine) Progress(userID int64) (*models.AdjustmentProgress, error) {
	tracking, err := e.store.GetOrCreateTracking(userID)
	if err != nil {
		return nil, fmt.Errorf("get tracking: %w", err)
	}
	currentLevel := e.CurrentLevel(userID)

	progress := &models.AdjustmentProgress{
		CurrentLevel:         currentLevel,
		ConsecutiveSuccesses: tracking.ConsecutiveSuccesses,
		ConsecutiveFailures:  tracking.ConsecutiveFailures,
	}

	if tracking.ConsecutiveSuccesses > 0 && currentLevel < MaxLevel {
		progress.NextAdjustment = &models.NextAdjustment{
			Type:          "level_up",
			CurrentStreak: tracking.ConsecutiveSuccesses,
			Required:      ConsecutiveRequired,
			Remaining:     ConsecutiveRequired - tracking.ConsecutiveSuccesses,
		}
	} else if tracking.ConsecutiveFailures > 0 && currentLevel > MinLevel {
		progress.NextAdjustment = &models.NextAdjustment{
			Type:          "level_down",
			CurrentStreak: tracking.ConsecutiveFailures,
			Required:      ConsecutiveRequired,
			Remaining:     ConsecutiveRequired - tracking.ConsecutiveFailures,
		}
	}

	return progress, nil
}

func levelUpMessage(newLevel int) string {
	messages := map[int]string{
		2: "Great progress! Moving to Level 2. Challenges will become more engaging.",
		3: "Excellent work! Welcome to Level 3. You're showing real improvement!",
		4: "Outstanding! Level 4 unlocked. You're mastering complex challenges!",
		5: "Incredible! Maximum difficulty reached. You're at expert level!",
	}
	if msg, ok := messages[newLevel]; ok {
		return msg
	}
	return fmt.Sprintf("Level increased to %d!", newLevel)
}

func levelDownMessage(newLevel int) string {
	messages := map[int]string{
		1: "No worries! We've adjusted to Level 1 to help you build confidence. You've got this!",
		2: "Level adjusted to 2. Let's focus on strengthening fundamentals!",
		3: "Moving to Level 3. This pace will help you master the concepts better.",
		4: "Level 4 still offers great challenges. Keep practicing!",
	}
	if msg, ok := messages[newLevel]; ok {
		return msg
	}
	return fmt.Sprintf("Level adjusted to %d for optimal learning.", newLevel)
}
