package models

// ── Analytics Types ─────────────────────────────────────

type ProgressReport struct {
	PeriodDays      int                      `json:"period_days"`
	Categories      map[string]CategoryStats `json:"categories"`
	OverallTrend    string                   `json:"overall_trend"` // improving, stable, declining
	StrongestAreas  []string                 `json:"strongest_areas"`
	WeakestAreas    []string                 `json:"weakest_areas"`
	Recommendations []string                 `json:"recommendations"`
}

type CategoryStats struct {
	Category           string  `json:"category"`
	AverageScore       float64 `json:"average_score"`
	ExercisesCompleted int     `json:"exercises_completed"`
	ImprovementRate    float64 `json:"improvement_rate"`
	CurrentDifficulty  int     `json:"current_difficulty"`
}

type QuickStats struct {
	AvgScore7d        float64 `json:"avg_score_7d"`
	Exercises7d       int     `json:"exercises_7d"`
	Scenarios7d       int     `json:"scenarios_7d"`
	BestCategory      string  `json:"best_category"`
	BestCategoryScore float64 `json:"best_category_score"`
}

// TrendPoint is one day of averaged scores, ordered oldest first.
type TrendPoint struct {
	Date     string  `json:"date"`
	AvgScore float64 `json:"avg_score"`
	Count    int     `json:"count"`
}

// CategoryPerformance aggregates one exercise category or scenario type
// over a reporting window.
type CategoryPerformance struct {
	Name     string  `json:"name"`
	AvgScore float64 `json:"avg_score"`
	Total    int     `json:"total"`
}
