package models

import "time"

type ScenarioType string

const (
	ScenarioNegotiation      ScenarioType = "negotiation"
	ScenarioProblemSolving   ScenarioType = "problem_solving"
	ScenarioSocial           ScenarioType = "social_interaction"
	ScenarioLeadership       ScenarioType = "leadership"
	ScenarioCreativeThinking ScenarioType = "creative_thinking"
)

var ValidScenarioTypes = map[ScenarioType]bool{
	ScenarioNegotiation:      true,
	ScenarioProblemSolving:   true,
	ScenarioSocial:           true,
	ScenarioLeadership:       true,
	ScenarioCreativeThinking: true,
}

// ── Characters ──────────────────────────────────────────

// MaxInteractionHistory bounds a character's retained memory. Older
// interactions are dropped oldest-first.
const MaxInteractionHistory = 10

type Character struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Role               string            `json:"role"`
	PersonalityTraits  map[string]string `json:"personality_traits"`
	Background         string            `json:"background"`
	InteractionHistory []Interaction     `json:"interaction_history"`
	CreatedAt          time.Time         `json:"created_at"`
	LastUsed           *time.Time        `json:"last_used,omitempty"`
}

type Interaction struct {
	Turn       int       `json:"turn"`
	UserAction string    `json:"user_action"`
	AIResponse string    `json:"ai_response"`
	Narrative  string    `json:"narrative"`
	Timestamp  time.Time `json:"timestamp"`
}

// ── Scenarios ───────────────────────────────────────────

type DecisionRecord struct {
	Decision string  `json:"decision"`
	Quality  float64 `json:"quality"`
	Impact   string  `json:"impact"`
}

type Scenario struct {
	ID                string           `json:"id"`
	Type              ScenarioType     `json:"type"`
	Title             string           `json:"title"`
	Context           string           `json:"context"`
	Difficulty        int              `json:"difficulty"`
	Characters        []*Character     `json:"characters"`
	InitialSituation  string           `json:"initial_situation"`
	CurrentSituation  string           `json:"current_situation"`
	AvailableActions  []string         `json:"available_actions"`
	DecisionHistory   []DecisionRecord `json:"decision_history"`
	NarrativeBranches []string         `json:"narrative_branches"`
	StartTime         time.Time        `json:"start_time"`
	TurnCount         int              `json:"turn_count"`
	IsComplete        bool             `json:"is_complete"`
}

type ScenarioOutcome struct {
	ScenarioID      string      `json:"scenario_id"`
	UserDecision    string      `json:"user_decision"`
	AIResponse      string      `json:"ai_response"`
	NarrativeUpdate string      `json:"narrative_update"`
	NarrativeBranch string      `json:"narrative_branch"`
	DecisionQuality float64     `json:"decision_quality"`
	IsComplete      bool        `json:"is_complete"`
	NextActions     []string    `json:"next_actions"`
	TurnCount       int         `json:"turn_count"`
	Conclusion      *Conclusion `json:"conclusion,omitempty"`
}

type Conclusion struct {
	ScenarioID        string  `json:"scenario_id"`
	TotalTurns        int     `json:"total_turns"`
	AverageScore      float64 `json:"average_score"`
	DecisionCount     int     `json:"decision_count"`
	NarrativeBranches int     `json:"narrative_branches"`
	Summary           string  `json:"summary"`
	PerformanceGrade  string  `json:"performance_grade"`
}

// ── Request/Response Types ──────────────────────────────

type CreateScenarioRequest struct {
	Type        ScenarioType      `json:"type"`
	Difficulty  int               `json:"difficulty,omitempty"`
	Preferences map[string]string `json:"preferences,omitempty"`
}

type ProcessDecisionRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Decision  string `json:"decision"`
}
