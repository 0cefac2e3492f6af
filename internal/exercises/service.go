package exercises

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/cogniplay/backend/internal/generator"
	"github.com/cogniplay/backend/internal/models"
	"github.com/google/uuid"
)

var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrInvalidCategory  = errors.New("invalid exercise category")
)

// ContentGenerator is the slice of the generation service this package
// uses. Only logic exercises are model-generated; the rest come from the
// built-in banks.
type ContentGenerator interface {
	GenerateLogicExercise(ctx context.Context, subtype string, difficulty int) (*generator.LogicExerciseContent, error)
}

// DifficultyAdjuster feeds each result into the adaptive difficulty engine.
type DifficultyAdjuster interface {
	CurrentLevel(userID int64) int
	Process(userID int64, accuracy float64) (*models.Adjustment, error)
}

// ResultStore persists completed exercise results.
type ResultStore interface {
	SaveResult(result *models.ExerciseResult) error
}

// Service generates exercises, validates submissions, and scores them.
// Exercises awaiting an answer live in an in-memory registry keyed by id;
// canonical answers never leave the server.
type Service struct {
	store      ResultStore
	gen        ContentGenerator
	difficulty DifficultyAdjuster
	validator  *Validator

	mu     sync.Mutex
	active map[string]*models.Exercise
}

func NewService(store ResultStore, gen ContentGenerator, adjuster DifficultyAdjuster, validator *Validator) *Service {
	return &Service{
		store:      store,
		gen:        gen,
		difficulty: adjuster,
		validator:  validator,
		active:     make(map[string]*models.Exercise),
	}
}

// GenerateExercise builds a new exercise at the user's current difficulty
// unless the request overrides it.
func (s *Service) GenerateExercise(ctx context.Context, userID int64, req models.GenerateExerciseRequest) (*models.Exercise, error) {
	if !models.ValidCategories[req.Category] {
		return nil, ErrInvalidCategory
	}

	level := req.Difficulty
	if level < 1 || level > 5 {
		level = s.difficulty.CurrentLevel(userID)
	}

	var exercise *models.Exercise
	if req.Category == models.CategoryLogic && s.gen != nil {
		exercise = s.generateLogic(ctx, level)
	} else {
		exercise = generateBuiltin(req.Category, level)
	}

	s.mu.Lock()
	s.active[exercise.ID] = exercise
	s.mu.Unlock()

	return exercise, nil
}

// generateLogic asks the generation service for a fresh puzzle and falls
// back to the built-in bank when the service is unavailable.
func (s *Service) generateLogic(ctx context.Context, level int) *models.Exercise {
	subtype := logicSubtypes[rand.Intn(len(logicSubtypes))]

	content, err := s.gen.GenerateLogicExercise(ctx, subtype, level)
	if err != nil {
		log.Printf("WARN: [exercises] logic generation failed, using built-in bank: %v", err)
		return logicBuiltinBySubtype(subtype, level)
	}

	hints := content.Hints
	if len(hints) == 0 {
		hints = []string{
			"Think carefully about the logic",
			"Consider all possibilities",
			"Check your reasoning",
		}
	}

	return &models.Exercise{
		ID:               uuid.NewString(),
		Category:         models.CategoryLogic,
		Subtype:          subtype,
		Difficulty:       level,
		Question:         content.Question,
		Answer:           models.Answer{Text: content.Answer},
		Options:          content.Options,
		TimeLimitSeconds: 60 + level*15,
		Hints:            hints,
	}
}

// SubmitAnswer validates and scores a submission, persists the result, and
// feeds the accuracy into the difficulty engine.
func (s *Service) SubmitAnswer(ctx context.Context, userID int64, req models.SubmitAnswerRequest) (*models.SubmitAnswerResponse, error) {
	s.mu.Lock()
	exercise, ok := s.active[req.ExerciseID]
	s.mu.Unlock()
	if !ok {
		return nil, ErrExerciseNotFound
	}

	isCorrect := s.validator.Validate(ctx, exercise, req.Answer)
	score := computeScore(isCorrect, req.CompletionTimeSeconds, exercise.TimeLimitSeconds, req.HintsUsed)

	accuracy := 0.0
	if isCorrect {
		accuracy = 100.0
	}

	result := &models.ExerciseResult{
		ResultID:              uuid.NewString(),
		ExerciseID:            exercise.ID,
		SessionID:             req.SessionID,
		Category:              exercise.Category,
		Subtype:               exercise.Subtype,
		Difficulty:            exercise.Difficulty,
		UserAnswer:            req.Answer,
		IsCorrect:             isCorrect,
		Score:                 score,
		Accuracy:              accuracy,
		CompletionTimeSeconds: req.CompletionTimeSeconds,
		HintsUsed:             req.HintsUsed,
		Timestamp:             time.Now().UTC(),
	}

	if err := s.store.SaveResult(result); err != nil {
		return nil, fmt.Errorf("save exercise result: %w", err)
	}

	s.mu.Lock()
	delete(s.active, exercise.ID)
	s.mu.Unlock()

	adjustment, err := s.difficulty.Process(userID, accuracy)
	if err != nil {
		log.Printf("WARN: [exercises] difficulty update failed for user %d: %v", userID, err)
		adjustment = nil
	}

	return &models.SubmitAnswerResponse{
		Result:     *result,
		Adjustment: adjustment,
	}, nil
}

// computeScore applies the scoring policy: 100 base for a correct answer,
// +10 for finishing under half the time limit, -10 for running over it,
// -5 per hint, clamped to [0, 100]. Time adjustments apply to correct
// answers only; the hint penalty always applies.
func computeScore(correct bool, completionTime int, timeLimit int, hintsUsed int) float64 {
	base := 0
	if correct {
		base = 100
	}

	if correct && timeLimit > 0 {
		ratio := float64(completionTime) / float64(timeLimit)
		if ratio < 0.5 {
			base += 10
		} else if ratio > 1.0 {
			base -= 10
		}
	}

	base -= hintsUsed * 5

	if base < 0 {
		base = 0
	}
	if base > 100 {
		base = 100
	}
	return float64(base)
}
