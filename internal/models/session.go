package models

import "time"

type SessionMode string

const (
	SessionModeFull          SessionMode = "full"
	SessionModeExercisesOnly SessionMode = "exercises_only"
	SessionModeScenariosOnly SessionMode = "scenarios_only"
)

var ValidSessionModes = map[SessionMode]bool{
	SessionModeFull:          true,
	SessionModeExercisesOnly: true,
	SessionModeScenariosOnly: true,
}

type Session struct {
	SessionID          string      `json:"session_id"`
	UserID             int64       `json:"user_id"`
	Mode               SessionMode `json:"mode"`
	DifficultyLevel    int         `json:"difficulty_level"`
	StartTime          time.Time   `json:"start_time"`
	EndTime            *time.Time  `json:"end_time,omitempty"`
	ExercisesCompleted int         `json:"exercises_completed"`
	ScenariosCompleted int         `json:"scenarios_completed"`
	AverageScore       *float64    `json:"average_score,omitempty"`
}

type SessionSummary struct {
	SessionID          string      `json:"session_id"`
	Mode               SessionMode `json:"mode"`
	DurationSeconds    int         `json:"duration_seconds"`
	ExercisesCompleted int         `json:"exercises_completed"`
	ScenariosCompleted int         `json:"scenarios_completed"`
	AverageScore       float64     `json:"average_score"`
	AvgExerciseScore   float64     `json:"avg_exercise_score"`
	AvgScenarioScore   float64     `json:"avg_scenario_score"`
	Recommendation     string      `json:"recommendation"`
}

type SessionProgress struct {
	SessionID          string      `json:"session_id"`
	Mode               SessionMode `json:"mode"`
	DifficultyLevel    int         `json:"difficulty_level"`
	ExercisesCompleted int         `json:"exercises_completed"`
	ScenariosCompleted int         `json:"scenarios_completed"`
	TotalCompleted     int         `json:"total_completed"`
	StartTime          time.Time   `json:"start_time"`
	IsActive           bool        `json:"is_active"`
}

// ScenarioResult is the persisted record of a completed scenario,
// attached to the session it ran in.
type ScenarioResult struct {
	ResultID              string       `json:"result_id"`
	SessionID             string       `json:"session_id"`
	ScenarioType          ScenarioType `json:"scenario_type"`
	Difficulty            int          `json:"difficulty"`
	PerformanceScore      float64      `json:"performance_score"`
	DecisionQualityScore  float64      `json:"decision_quality_score"`
	CompletionTimeSeconds int          `json:"completion_time_seconds"`
	Timestamp             time.Time    `json:"timestamp"`
}

// ── Request Types ───────────────────────────────────────

type StartSessionRequest struct {
	Mode               SessionMode `json:"mode"`
	DifficultyOverride *int        `json:"difficulty_override,omitempty"`
}
