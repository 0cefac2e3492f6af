package models

import "time"

type Category string

const (
	CategoryMemory             Category = "memory"
	CategoryLogic              Category = "logic"
	CategoryProblemSolving     Category = "problem_solving"
	CategoryPatternRecognition Category = "pattern_recognition"
	CategoryAttention          Category = "attention"
)

var ValidCategories = map[Category]bool{
	CategoryMemory:             true,
	CategoryLogic:              true,
	CategoryProblemSolving:     true,
	CategoryPatternRecognition: true,
	CategoryAttention:          true,
}

// Answer is the canonical answer for an exercise. Exactly one of Text or
// List is set: List carries free-recall answers where partial credit
// applies, Text everything else (including comma-joined multi-part answers).
type Answer struct {
	Text string   `json:"text,omitempty"`
	List []string `json:"list,omitempty"`
}

func (a Answer) IsList() bool {
	return len(a.List) > 0
}

// ── Core Structs ───────────────────────────────────────

type Exercise struct {
	ID               string   `json:"id"`
	Category         Category `json:"category"`
	Subtype          string   `json:"subtype"`
	Difficulty       int      `json:"difficulty"`
	Question         string   `json:"question"`
	Answer           Answer   `json:"-"`
	Options          []string `json:"options,omitempty"`
	TimeLimitSeconds int      `json:"time_limit_seconds,omitempty"`
	Hints            []string `json:"hints,omitempty"`
}

type ExerciseResult struct {
	ResultID              string    `json:"result_id"`
	ExerciseID            string    `json:"exercise_id"`
	SessionID             string    `json:"session_id,omitempty"`
	Category              Category  `json:"category"`
	Subtype               string    `json:"subtype"`
	Difficulty            int       `json:"difficulty"`
	UserAnswer            string    `json:"user_answer"`
	IsCorrect             bool      `json:"is_correct"`
	Score                 float64   `json:"score"`
	Accuracy              float64   `json:"accuracy"`
	CompletionTimeSeconds int       `json:"completion_time_seconds"`
	HintsUsed             int       `json:"hints_used"`
	Timestamp             time.Time `json:"timestamp"`
}

// ── Request/Response Types ──────────────────────────────

type GenerateExerciseRequest struct {
	Category   Category `json:"category"`
	Difficulty int      `json:"difficulty,omitempty"`
}

type SubmitAnswerRequest struct {
	ExerciseID            string `json:"exercise_id"`
	SessionID             string `json:"session_id,omitempty"`
	Answer                string `json:"answer"`
	CompletionTimeSeconds int    `json:"completion_time_seconds"`
	HintsUsed             int    `json:"hints_used"`
}

type SubmitAnswerResponse struct {
	Result     ExerciseResult `json:"result"`
	Adjustment *Adjustment    `json:"difficulty_adjustment,omitempty"`
}
