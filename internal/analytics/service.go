package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/cogniplay/backend/internal/models"
)

// Store supplies aggregated result data. Results are attributed to a user
// through the session they ran in; sessionless results are excluded.
type Store interface {
	CategoryPerformance(userID int64, days int) (exercises []models.CategoryPerformance, scenarios []models.CategoryPerformance, err error)
	PerformanceTrends(userID int64, days int) (exercises []models.TrendPoint, scenarios []models.TrendPoint, err error)
	UserSessionCount(userID int64) (int, error)
}

// DifficultyLeveler supplies the user's current level.
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

// ProgressReport builds a performance report over the given window.
func (s *Service) ProgressReport(userID int64, days int) (*models.ProgressReport, error) {
	exerciseCats, scenarioTypes, err := s.store.CategoryPerformance(userID, days)
	if err != nil {
		return nil, fmt.Errorf("category performance: %w", err)
	}
	exerciseTrend, scenarioTrend, err := s.store.PerformanceTrends(userID, days)
	if err != nil {
		return nil, fmt.Errorf("performance trends: %w", err)
	}

	trend := overallTrend(exerciseTrend, scenarioTrend)
	strongest, weakest := identifyAreas(exerciseCats, scenarioTypes)

	level := s.difficulty.CurrentLevel(userID)
	categories := make(map[string]models.CategoryStats, len(exerciseCats))
	for _, cat := range exerciseCats {
		categories[cat.Name] = models.CategoryStats{
			Category:           cat.Name,
			AverageScore:       cat.AvgScore,
			ExercisesCompleted: cat.Total,
			ImprovementRate:    improvementRate(exerciseTrend),
			CurrentDifficulty:  level,
		}
	}

	return &models.ProgressReport{
		PeriodDays:      days,
		Categories:      categories,
		OverallTrend:    trend,
		StrongestAreas:  strongest,
		WeakestAreas:    weakest,
		Recommendations: reportRecommendations(exerciseCats, scenarioTypes, weakest, trend),
	}, nil
}

// QuickStats summarizes the last seven days.
func (s *Service) QuickStats(userID int64) (*models.QuickStats, error) {
	exerciseCats, scenarioTypes, err := s.store.CategoryPerformance(userID, 7)
	if err != nil {
		return nil, fmt.Errorf("category performance: %w", err)
	}

	totalExercises := 0
	var weighted float64
	for _, cat := range exerciseCats {
		totalExercises += cat.Total
		weighted += cat.AvgScore * float64(cat.Total)
	}
	avgScore := 0.0
	if totalExercises > 0 {
		avgScore = weighted / float64(totalExercises)
	}

	totalScenarios := 0
	for _, st := range scenarioTypes {
		totalScenarios += st.Total
	}

	stats := &models.QuickStats{
		AvgScore7d:   avgScore,
		Exercises7d:  totalExercises,
		Scenarios7d:  totalScenarios,
		BestCategory: "None",
	}
	for _, cat := range exerciseCats {
		if cat.AvgScore > stats.BestCategoryScore {
			stats.BestCategory = cat.Name
			stats.BestCategoryScore = cat.AvgScore
		}
	}
	return stats, nil
}

// Recommendations returns up to three personalized training suggestions
// from the last fourteen days.
func (s *Service) Recommendations(userID int64) ([]string, error) {
	exerciseCats, scenarioTypes, err := s.store.CategoryPerformance(userID, 14)
	if err != nil {
		return nil, fmt.Errorf("category performance: %w", err)
	}

	var recommendations []string

	if weak := weakestCategory(exerciseCats); weak != "" {
		recommendations = append(recommendations,
			fmt.Sprintf("Focus on %s exercises - practice regularly to improve", strings.ReplaceAll(weak, "_", " ")))
	}

	totalExercises := 0
	for _, cat := range exerciseCats {
		totalExercises += cat.Total
	}
	totalScenarios := 0
	for _, st := range scenarioTypes {
		totalScenarios += st.Total
	}
	if totalExercises > totalScenarios*2 {
		recommendations = append(recommendations, "Try more role-playing scenarios to balance your training")
	} else if totalScenarios > totalExercises*2 {
		recommendations = append(recommendations, "Include more cognitive exercises in your sessions")
	}

	switch s.difficulty.CurrentLevel(userID) {
	case 1:
		recommendations = append(recommendations, "You're at beginner level - focus on building confidence with consistent practice")
	case 5:
		recommendations = append(recommendations, "You're at expert level - challenge yourself with complex scenarios")
	}

	sessions, err := s.store.UserSessionCount(userID)
	if err != nil {
		return nil, fmt.Errorf("session count: %w", err)
	}
	if sessions < 5 {
		recommendations = append(recommendations, "Train regularly (3-5 times per week) for best improvement")
	}

	if len(recommendations) > 3 {
		recommendations = recommendations[:3]
	}
	return recommendations, nil
}

// overallTrend compares the average of the first half of each trend series
// against the second half.
func overallTrend(exercises, scenarios []models.TrendPoint) string {
	if len(exercises) == 0 && len(scenarios) == 0 {
		return "stable"
	}

	change := (trendChange(exercises) + trendChange(scenarios)) / 2
	switch {
	case change > 5:
		return "improving"
	case change < -5:
		return "declining"
	default:
		return "stable"
	}
}

func trendChange(points []models.TrendPoint) float64 {
	if len(points) < 2 {
		return 0
	}
	half := len(points) / 2
	return meanScore(points[half:]) - meanScore(points[:half])
}

func meanScore(points []models.TrendPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	var total float64
	for _, p := range points {
		total += p.AvgScore
	}
	return total / float64(len(points))
}

// improvementRate is the per-day slope over the last three trend points.
func improvementRate(trend []models.TrendPoint) float64 {
	if len(trend) < 3 {
		return 0
	}
	recent := trend[len(trend)-3:]
	first, errFirst := time.Parse("2006-01-02", recent[0].Date)
	last, errLast := time.Parse("2006-01-02", recent[2].Date)
	if errFirst != nil || errLast != nil {
		return 0
	}
	days := int(last.Sub(first).Hours() / 24)
	if days == 0 {
		return 0
	}
	return (recent[2].AvgScore - recent[0].AvgScore) / float64(days)
}

// identifyAreas picks up to three strongest and weakest areas: the top and
// bottom exercise categories plus one scenario type each.
func identifyAreas(exercises, scenarios []models.CategoryPerformance) (strongest, weakest []string) {
	sorted := make([]models.CategoryPerformance, len(exercises))
	copy(sorted, exercises)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j].AvgScore > sorted[i].AvgScore {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}

	for i := 0; i < len(sorted) && i < 2; i++ {
		strongest = append(strongest, titleize(sorted[i].Name))
	}
	if len(scenarios) > 0 {
		best := scenarios[0]
		for _, st := range scenarios {
			if st.AvgScore > best.AvgScore {
				best = st
			}
		}
		strongest = append(strongest, titleize(best.Name)+" Scenarios")
	}

	for i := len(sorted) - 1; i >= 0 && len(weakest) < 2; i-- {
		weakest = append(weakest, titleize(sorted[i].Name))
	}
	if len(scenarios) > 0 {
		worst := scenarios[0]
		for _, st := range scenarios {
			if st.AvgScore < worst.AvgScore {
				worst = st
			}
		}
		weakest = append(weakest, titleize(worst.Name)+" Scenarios")
	}

	if len(strongest) > 3 {
		strongest = strongest[:3]
	}
	if len(weakest) > 3 {
		weakest = weakest[:3]
	}
	return strongest, weakest
}

func reportRecommendations(exercises, scenarios []models.CategoryPerformance, weakest []string, trend string) []string {
	var recommendations []string

	switch trend {
	case "declining":
		recommendations = append(recommendations, "Your scores are trending down - focus on consistent practice")
	case "stable":
		recommendations = append(recommendations, "Your performance is stable - try increasing difficulty or new challenge types")
	}

	if len(weakest) > 0 {
		targets := weakest
		if len(targets) > 2 {
			targets = targets[:2]
		}
		recommendations = append(recommendations, "Target improvement in: "+strings.Join(targets, ", "))
	}

	totalExercises := 0
	for _, cat := range exercises {
		totalExercises += cat.Total
	}
	totalScenarios := 0
	for _, st := range scenarios {
		totalScenarios += st.Total
	}
	if totalExercises < 10 {
		recommendations = append(recommendations, "Complete more exercises to get better performance insights")
	}
	if totalScenarios < 3 {
		recommendations = append(recommendations, "Try more scenarios to develop decision-making skills")
	}

	if len(recommendations) > 3 {
		recommendations = recommendations[:3]
	}
	return recommendations
}

func weakestCategory(exercises []models.CategoryPerformance) string {
	name := ""
	lowest := 0.0
	for _, cat := range exercises {
		if name == "" || cat.AvgScore < lowest {
			name = cat.Name
			lowest = cat.AvgScore
		}
	}
	return name
}

func titleize(name string) string {
	words := strings.Split(strings.ReplaceAll(name, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
