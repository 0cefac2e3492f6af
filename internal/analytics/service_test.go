package analytics

import (
	"testing"

	"github.com/cogniplay/backend/internal/models"
)

type fakeStore struct {
	exerciseCats  []models.CategoryPerformance
	scenarioTypes []models.CategoryPerformance
	exerciseTrend []models.TrendPoint
	scenarioTrend []models.TrendPoint
	sessionCount  int
	requestedDays []int
}

func (f *fakeStore) CategoryPerformance(userID int64, days int) ([]models.CategoryPerformance, []models.CategoryPerformance, error) {
	f.requestedDays = append(f.requestedDays, days)
	return f.exerciseCats, f.scenarioTypes, nil
}

func (f *fakeStore) PerformanceTrends(userID int64, days int) ([]models.TrendPoint, []models.TrendPoint, error) {
	return f.exerciseTrend, f.scenarioTrend, nil
}

func (f *fakeStore) UserSessionCount(userID int64) (int, error) {
	return f.sessionCount, nil
}

type fakeLeveler struct{ level int }

func (f *fakeLeveler) CurrentLevel(userID int64) int { return f.level }

func trendOf(scores ...float64) []models.TrendPoint {
	points := make([]models.TrendPoint, len(scores))
	for i, s := range scores {
		points[i] = models.TrendPoint{Date: "2026-08-01", AvgScore: s, Count: 1}
	}
	return points
}

func TestOverallTrendBands(t *testing.T) {
	tests := []struct {
		name      string
		exercises []models.TrendPoint
		scenarios []models.TrendPoint
		want      string
	}{
		{"improving", trendOf(60, 60, 70, 70), trendOf(60, 60, 70, 70), "improving"},
		{"declining", trendOf(80, 80, 70, 70), trendOf(80, 80, 70, 70), "declining"},
		{"flat", trendOf(75, 75, 76, 76), trendOf(75, 75, 74, 74), "stable"},
		{"small change is stable", trendOf(70, 70, 74, 74), nil, "stable"},
		{"no data", nil, nil, "stable"},
		{"single point", trendOf(90), nil, "stable"},
	}

	for _, tt := range tests {
		if got := overallTrend(tt.exercises, tt.scenarios); got != tt.want {
			t.Errorf("%s: trend = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestProgressReportAreas(t *testing.T) {
	store := &fakeStore{
		exerciseCats: []models.CategoryPerformance{
			{Name: "memory", AvgScore: 92, Total: 10},
			{Name: "logic", AvgScore: 55, Total: 8},
			{Name: "attention", AvgScore: 78, Total: 6},
			{Name: "problem_solving", AvgScore: 61, Total: 4},
		},
		scenarioTypes: []models.CategoryPerformance{
			{Name: "negotiation", AvgScore: 88, Total: 3},
			{Name: "leadership", AvgScore: 52, Total: 2},
		},
		exerciseTrend: trendOf(60, 62, 64, 66),
	}
	svc := NewService(store, &fakeLeveler{level: 3})

	report, err := svc.ProgressReport(1, 30)
	if err != nil {
		t.Fatalf("ProgressReport: %v", err)
	}

	if report.PeriodDays != 30 {
		t.Errorf("period = %d", report.PeriodDays)
	}
	if len(report.StrongestAreas) != 3 {
		t.Fatalf("strongest = %v", report.StrongestAreas)
	}
	if report.StrongestAreas[0] != "Memory" || report.StrongestAreas[1] != "Attention" {
		t.Errorf("strongest exercise areas = %v", report.StrongestAreas)
	}
	if report.StrongestAreas[2] != "Negotiation Scenarios" {
		t.Errorf("strongest scenario area = %q", report.StrongestAreas[2])
	}
	if len(report.WeakestAreas) != 3 {
		t.Fatalf("weakest = %v", report.WeakestAreas)
	}
	if report.WeakestAreas[0] != "Logic" || report.WeakestAreas[1] != "Problem Solving" {
		t.Errorf("weakest exercise areas = %v", report.WeakestAreas)
	}
	if report.WeakestAreas[2] != "Leadership Scenarios" {
		t.Errorf("weakest scenario area = %q", report.WeakestAreas[2])
	}

	stats, ok := report.Categories["memory"]
	if !ok {
		t.Fatal("missing memory category stats")
	}
	if stats.AverageScore != 92 || stats.ExercisesCompleted != 10 || stats.CurrentDifficulty != 3 {
		t.Errorf("memory stats = %+v", stats)
	}

	if len(report.Recommendations) == 0 || len(report.Recommendations) > 3 {
		t.Errorf("recommendations = %v", report.Recommendations)
	}
}

func TestProgressReportEmptyData(t *testing.T) {
	svc := NewService(&fakeStore{}, &fakeLeveler{level: 1})

	report, err := svc.ProgressReport(1, 30)
	if err != nil {
		t.Fatalf("ProgressReport: %v", err)
	}
	if report.OverallTrend != "stable" {
		t.Errorf("trend = %q, want stable", report.OverallTrend)
	}
	if len(report.Categories) != 0 {
		t.Errorf("categories = %v", report.Categories)
	}
}

func TestQuickStatsWeightedAverage(t *testing.T) {
	store := &fakeStore{
		exerciseCats: []models.CategoryPerformance{
			{Name: "memory", AvgScore: 90, Total: 3},
			{Name: "logic", AvgScore: 60, Total: 1},
		},
		scenarioTypes: []models.CategoryPerformance{
			{Name: "negotiation", AvgScore: 70, Total: 2},
		},
	}
	svc := NewService(store, &fakeLeveler{level: 2})

	stats, err := svc.QuickStats(1)
	if err != nil {
		t.Fatalf("QuickStats: %v", err)
	}

	// (90*3 + 60*1) / 4 = 82.5
	if stats.AvgScore7d != 82.5 {
		t.Errorf("avg = %v, want 82.5", stats.AvgScore7d)
	}
	if stats.Exercises7d != 4 || stats.Scenarios7d != 2 {
		t.Errorf("counts = %d, %d", stats.Exercises7d, stats.Scenarios7d)
	}
	if stats.BestCategory != "memory" || stats.BestCategoryScore != 90 {
		t.Errorf("best = %q %v", stats.BestCategory, stats.BestCategoryScore)
	}
	if store.requestedDays[0] != 7 {
		t.Errorf("window = %d days, want 7", store.requestedDays[0])
	}
}

func TestQuickStatsNoData(t *testing.T) {
	svc := NewService(&fakeStore{}, &fakeLeveler{level: 1})

	stats, err := svc.QuickStats(1)
	if err != nil {
		t.Fatalf("QuickStats: %v", err)
	}
	if stats.AvgScore7d != 0 || stats.BestCategory != "None" {
		t.Errorf("stats = %+v", stats)
	}
}

func TestRecommendationsCapAtThree(t *testing.T) {
	store := &fakeStore{
		exerciseCats: []models.CategoryPerformance{
			{Name: "pattern_recognition", AvgScore: 45, Total: 9},
		},
		sessionCount: 2,
	}
	svc := NewService(store, &fakeLeveler{level: 1})

	recommendations, err := svc.Recommendations(1)
	if err != nil {
		t.Fatalf("Recommendations: %v", err)
	}
	if len(recommendations) != 3 {
		t.Fatalf("recommendations = %v", recommendations)
	}
	if recommendations[0] != "Focus on pattern recognition exercises - practice regularly to improve" {
		t.Errorf("weak-area recommendation = %q", recommendations[0])
	}
	// Exercises outnumber scenarios more than 2:1 with no scenarios at all.
	if recommendations[1] != "Try more role-playing scenarios to balance your training" {
		t.Errorf("balance recommendation = %q", recommendations[1])
	}
	if recommendations[2] != "You're at beginner level - focus on building confidence with consistent practice" {
		t.Errorf("level recommendation = %q", recommendations[2])
	}
}

func TestRecommendationsExpertLevel(t *testing.T) {
	store := &fakeStore{sessionCount: 20}
	svc := NewService(store, &fakeLeveler{level: 5})

	recommendations, err := svc.Recommendations(1)
	if err != nil {
		t.Fatalf("Recommendations: %v", err)
	}
	found := false
	for _, r := range recommendations {
		if r == "You're at expert level - challenge yourself with complex scenarios" {
			found = true
		}
	}
	if !found {
		t.Errorf("expert recommendation missing from %v", recommendations)
	}
}

func TestImprovementRate(t *testing.T) {
	trend := []models.TrendPoint{
		{Date: "2026-08-01", AvgScore: 60},
		{Date: "2026-08-03", AvgScore: 66},
		{Date: "2026-08-05", AvgScore: 72},
	}
	// 12 points over 4 days.
	if got := improvementRate(trend); got != 3 {
		t.Errorf("improvementRate = %v, want 3", got)
	}

	if got := improvementRate(trend[:2]); got != 0 {
		t.Errorf("short trend rate = %v, want 0", got)
	}
}
