package exercises

import (
	"context"
	"errors"
	"testing"

	"github.com/cogniplay/backend/internal/generator"
	"github.com/cogniplay/backend/internal/models"
)

type fakeResultStore struct {
	saved []*models.ExerciseResult
	err   error
}

func (f *fakeResultStore) SaveResult(result *models.ExerciseResult) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, result)
	return nil
}

type fakeAdjuster struct {
	level      int
	accuracies []float64
	adjustment *models.Adjustment
}

func (f *fakeAdjuster) CurrentLevel(userID int64) int { return f.level }

func (f *fakeAdjuster) Process(userID int64, accuracy float64) (*models.Adjustment, error) {
	f.accuracies = append(f.accuracies, accuracy)
	return f.adjustment, nil
}

type fakeContentGen struct {
	content *generator.LogicExerciseContent
	err     error
}

func (f *fakeContentGen) GenerateLogicExercise(ctx context.Context, subtype string, difficulty int) (*generator.LogicExerciseContent, error) {
	return f.content, f.err
}

func newTestService(store *fakeResultStore, gen ContentGenerator, adjuster *fakeAdjuster) *Service {
	return NewService(store, gen, adjuster, NewValidator(nil))
}

func TestComputeScoreBounds(t *testing.T) {
	tests := []struct {
		name           string
		correct        bool
		completionTime int
		timeLimit      int
		hints          int
		want           float64
	}{
		{"incorrect no hints", false, 30, 60, 0, 0},
		{"incorrect with hints stays at zero", false, 30, 60, 3, 0},
		{"correct baseline", true, 40, 60, 0, 100},
		{"fast bonus clamped to 100", true, 10, 60, 0, 100},
		{"fast bonus offsets hints", true, 10, 60, 1, 100},
		{"late penalty", true, 90, 60, 0, 90},
		{"late plus hints", true, 90, 60, 2, 80},
		{"no time limit no bonus", true, 10, 0, 0, 100},
		{"hint penalty", true, 40, 60, 3, 85},
		{"incorrect late fast irrelevant", false, 500, 60, 0, 0},
	}

	for _, tt := range tests {
		got := computeScore(tt.correct, tt.completionTime, tt.timeLimit, tt.hints)
		if got != tt.want {
			t.Errorf("%s: computeScore = %v, want %v", tt.name, got, tt.want)
		}
		if got < 0 || got > 100 {
			t.Errorf("%s: score %v out of bounds", tt.name, got)
		}
	}
}

func TestGenerateExerciseUsesUserLevel(t *testing.T) {
	svc := newTestService(&fakeResultStore{}, nil, &fakeAdjuster{level: 4})

	exercise, err := svc.GenerateExercise(context.Background(), 1, models.GenerateExerciseRequest{
		Category: models.CategoryMemory,
	})
	if err != nil {
		t.Fatalf("GenerateExercise: %v", err)
	}
	if exercise.Difficulty != 4 {
		t.Errorf("difficulty = %d, want 4 from engine", exercise.Difficulty)
	}
	if exercise.Category != models.CategoryMemory {
		t.Errorf("category = %q", exercise.Category)
	}
	if exercise.ID == "" {
		t.Error("expected generated id")
	}
}

func TestGenerateExerciseDifficultyOverride(t *testing.T) {
	svc := newTestService(&fakeResultStore{}, nil, &fakeAdjuster{level: 4})

	exercise, err := svc.GenerateExercise(context.Background(), 1, models.GenerateExerciseRequest{
		Category:   models.CategoryAttention,
		Difficulty: 2,
	})
	if err != nil {
		t.Fatalf("GenerateExercise: %v", err)
	}
	if exercise.Difficulty != 2 {
		t.Errorf("difficulty = %d, want override 2", exercise.Difficulty)
	}
}

func TestGenerateExerciseRejectsUnknownCategory(t *testing.T) {
	svc := newTestService(&fakeResultStore{}, nil, &fakeAdjuster{level: 1})

	_, err := svc.GenerateExercise(context.Background(), 1, models.GenerateExerciseRequest{Category: "telepathy"})
	if !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("error = %v, want ErrInvalidCategory", err)
	}
}

func TestGenerateLogicFromService(t *testing.T) {
	gen := &fakeContentGen{content: &generator.LogicExerciseContent{
		Question: "Who leads Cinder?",
		Answer:   "priya",
		Hints:    []string{"h1", "h2", "h3"},
	}}
	svc := newTestService(&fakeResultStore{}, gen, &fakeAdjuster{level: 3})

	exercise, err := svc.GenerateExercise(context.Background(), 1, models.GenerateExerciseRequest{
		Category: models.CategoryLogic,
	})
	if err != nil {
		t.Fatalf("GenerateExercise: %v", err)
	}
	if exercise.Question != "Who leads Cinder?" {
		t.Errorf("question = %q", exercise.Question)
	}
	if exercise.Answer.Text != "priya" {
		t.Errorf("answer = %q", exercise.Answer.Text)
	}
	if exercise.TimeLimitSeconds != 60+3*15 {
		t.Errorf("time limit = %d", exercise.TimeLimitSeconds)
	}
}

func TestGenerateLogicFallsBackToBank(t *testing.T) {
	gen := &fakeContentGen{err: errors.New("service down")}
	svc := newTestService(&fakeResultStore{}, gen, &fakeAdjuster{level: 3})

	exercise, err := svc.GenerateExercise(context.Background(), 1, models.GenerateExerciseRequest{
		Category: models.CategoryLogic,
	})
	if err != nil {
		t.Fatalf("GenerateExercise: %v", err)
	}
	if exercise.Category != models.CategoryLogic {
		t.Errorf("category = %q", exercise.Category)
	}
	if exercise.Question == "" || exercise.Answer.Text == "" {
		t.Error("fallback exercise should come from the built-in bank")
	}
}

func TestSubmitAnswerFlow(t *testing.T) {
	store := &fakeResultStore{}
	adjuster := &fakeAdjuster{level: 2, adjustment: &models.Adjustment{OldLevel: 2, NewLevel: 3, Direction: "up"}}
	svc := newTestService(store, nil, adjuster)

	exercise, err := svc.GenerateExercise(context.Background(), 1, models.GenerateExerciseRequest{
		Category: models.CategoryPatternRecognition,
	})
	if err != nil {
		t.Fatalf("GenerateExercise: %v", err)
	}

	resp, err := svc.SubmitAnswer(context.Background(), 1, models.SubmitAnswerRequest{
		ExerciseID:            exercise.ID,
		SessionID:             "sess-1",
		Answer:                exercise.Answer.Text,
		CompletionTimeSeconds: exercise.TimeLimitSeconds / 4,
	})
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	if !resp.Result.IsCorrect {
		t.Error("expected correct verdict for canonical answer")
	}
	if resp.Result.Score != 100 {
		t.Errorf("score = %v, want 100 (clamped)", resp.Result.Score)
	}
	if resp.Result.Accuracy != 100 {
		t.Errorf("accuracy = %v, want 100", resp.Result.Accuracy)
	}
	if resp.Adjustment == nil || resp.Adjustment.NewLevel != 3 {
		t.Errorf("adjustment = %+v", resp.Adjustment)
	}
	if len(store.saved) != 1 {
		t.Fatalf("saved results = %d", len(store.saved))
	}
	if store.saved[0].SessionID != "sess-1" {
		t.Errorf("session id = %q", store.saved[0].SessionID)
	}
	if len(adjuster.accuracies) != 1 || adjuster.accuracies[0] != 100 {
		t.Errorf("difficulty engine fed %v, want [100]", adjuster.accuracies)
	}

	// The exercise is consumed on submission.
	if _, err := svc.SubmitAnswer(context.Background(), 1, models.SubmitAnswerRequest{
		ExerciseID: exercise.ID,
		Answer:     "anything",
	}); !errors.Is(err, ErrExerciseNotFound) {
		t.Errorf("resubmission error = %v, want ErrExerciseNotFound", err)
	}
}

func TestSubmitAnswerIncorrectFeedsZeroAccuracy(t *testing.T) {
	store := &fakeResultStore{}
	adjuster := &fakeAdjuster{level: 2}
	svc := newTestService(store, nil, adjuster)

	exercise, _ := svc.GenerateExercise(context.Background(), 1, models.GenerateExerciseRequest{
		Category: models.CategoryProblemSolving,
	})

	resp, err := svc.SubmitAnswer(context.Background(), 1, models.SubmitAnswerRequest{
		ExerciseID:            exercise.ID,
		Answer:                "definitely wrong answer",
		CompletionTimeSeconds: 10,
		HintsUsed:             2,
	})
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if resp.Result.IsCorrect {
		t.Error("expected incorrect verdict")
	}
	if resp.Result.Score != 0 {
		t.Errorf("score = %v, want 0", resp.Result.Score)
	}
	if adjuster.accuracies[0] != 0 {
		t.Errorf("accuracy fed = %v, want 0", adjuster.accuracies[0])
	}
}

func TestSubmitAnswerUnknownExercise(t *testing.T) {
	svc := newTestService(&fakeResultStore{}, nil, &fakeAdjuster{level: 1})

	_, err := svc.SubmitAnswer(context.Background(), 1, models.SubmitAnswerRequest{ExerciseID: "missing"})
	if !errors.Is(err, ErrExerciseNotFound) {
		t.Errorf("error = %v, want ErrExerciseNotFound", err)
	}
}
