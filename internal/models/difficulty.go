package models

import "time"

type ResultKind string

const (
	ResultSuccess ResultKind = "success"
	ResultFailure ResultKind = "failure"
	ResultNeutral ResultKind = "neutral"
)

// DifficultyTracking is the per-user streak row. At most one of the two
// consecutive counters is nonzero at any time.
type DifficultyTracking struct {
	UserID               int64      `json:"user_id"`
	ConsecutiveSuccesses int        `json:"consecutive_successes"`
	ConsecutiveFailures  int        `json:"consecutive_failures"`
	LastResult           ResultKind `json:"last_result"`
	LastUpdated          time.Time  `json:"last_updated"`
}

type Adjustment struct {
	OldLevel  int    `json:"old_level"`
	NewLevel  int    `json:"new_level"`
	Direction string `json:"direction"` // "up" or "down"
	Reason    string `json:"reason"`
	Message   string `json:"message"`
}

type AdjustmentProgress struct {
	CurrentLevel         int             `json:"current_level"`
	ConsecutiveSuccesses int             `json:"consecutive_successes"`
	ConsecutiveFailures  int             `json:"consecutive_failures"`
	NextAdjustment       *NextAdjustment `json:"next_adjustment,omitempty"`
}

type NextAdjustment struct {
	Type          string `json:"type"` // "level_up" or "level_down"
	CurrentStreak int    `json:"current_streak"`
	Required      int    `json:"required"`
	Remaining     int    `json:"remaining"`
}

type SetLevelRequest struct {
	Level  int    `json:"level"`
	Reason string `json:"reason,omitempty"`
}
