package scenarios

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/cogniplay/backend/internal/generator"
	"github.com/cogniplay/backend/internal/models"
	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("scenario not found")
	ErrInvalidType = errors.New("invalid scenario type")
)

// NarrativeClient is the slice of the generation service the engine needs.
type NarrativeClient interface {
	GenerateScenario(ctx context.Context, scenarioType models.ScenarioType, difficulty int, preferences map[string]string) (*generator.ScenarioContent, *generator.LLMResponse, error)
	GenerateCharacterResponse(ctx context.Context, character *models.Character, userAction string, situation string) (*generator.CharacterReply, error)
	EvaluateDecision(ctx context.Context, scenarioType models.ScenarioType, situation string, decision string, outcome string) (float64, error)
	SummarizeScenario(ctx context.Context, scenario *models.Scenario, averageScore float64) (string, error)
}

// Store persists characters, their memory, and finished scenario results.
type Store interface {
	SaveCharacter(character *models.Character) error
	AppendInteraction(characterID string, interaction models.Interaction) error
	SaveScenarioResult(result *models.ScenarioResult) error
}

// DifficultyAdjuster receives the scenario's final quality score.
type DifficultyAdjuster interface {
	CurrentLevel(userID int64) int
	Process(userID int64, accuracy float64) (*models.Adjustment, error)
}

// Engine owns the live scenario table. Turns on one scenario are serialized
// by the conversation flow; the mutex only guards the map itself.
type Engine struct {
	client     NarrativeClient
	store      Store
	difficulty DifficultyAdjuster

	mu     sync.Mutex
	active map[string]*models.Scenario
}

func NewEngine(client NarrativeClient, store Store, adjuster DifficultyAdjuster) *Engine {
	return &Engine{
		client:     client,
		store:      store,
		difficulty: adjuster,
		active:     make(map[string]*models.Scenario),
	}
}

// CreateScenario requests a scenario seed from the generation service,
// materializes its characters, and activates the scenario at turn 0.
// Generation failure aborts creation; nothing is registered.
func (e *Engine) CreateScenario(ctx context.Context, userID int64, req models.CreateScenarioRequest) (*models.Scenario, error) {
	if !models.ValidScenarioTypes[req.Type] {
		return nil, ErrInvalidType
	}

	difficulty := req.Difficulty
	if difficulty < 1 || difficulty > 5 {
		difficulty = e.difficulty.CurrentLevel(userID)
	}

	content, _, err := e.client.GenerateScenario(ctx, req.Type, difficulty, req.Preferences)
	if err != nil {
		return nil, fmt.Errorf("create scenario: %w", err)
	}

	characters := make([]*models.Character, 0, len(content.Characters))
	for _, seed := range content.Characters {
		characters = append(characters, &models.Character{
			ID:                uuid.NewString(),
			Name:              seed.Name,
			Role:              seed.Role,
			PersonalityTraits: seed.PersonalityTraits,
			Background:        seed.Background,
			CreatedAt:         time.Now().UTC(),
		})
	}
	if len(characters) == 0 {
		characters = append(characters, NewCharacter(req.Type, difficulty))
	}

	for _, c := range characters {
		if err := e.store.SaveCharacter(c); err != nil {
			log.Printf("WARN: [scenarios] failed to persist character %s: %v", c.ID, err)
		}
	}

	title := content.Title
	if title == "" {
		title = defaultTitle(req.Type)
	}

	scenario := &models.Scenario{
		ID:                uuid.NewString(),
		Type:              req.Type,
		Title:             title,
		Context:           content.Context,
		Difficulty:        difficulty,
		Characters:        characters,
		InitialSituation:  content.InitialSituation,
		CurrentSituation:  content.InitialSituation,
		AvailableActions:  content.InitialOptions,
		DecisionHistory:   []models.DecisionRecord{},
		NarrativeBranches: []string{},
		StartTime:         time.Now().UTC(),
	}

	e.mu.Lock()
	e.active[scenario.ID] = scenario
	e.mu.Unlock()

	log.Printf("[scenarios] created %s (%s, difficulty %d, %d characters)", scenario.ID, req.Type, difficulty, len(characters))

	return scenario, nil
}

// ProcessDecision advances one turn. The character-response call happens
// before any state change, so a failed turn leaves the scenario exactly as
// it was and the caller can retry the same decision.
func (e *Engine) ProcessDecision(ctx context.Context, userID int64, scenarioID string, req models.ProcessDecisionRequest) (*models.ScenarioOutcome, error) {
	e.mu.Lock()
	scenario, ok := e.active[scenarioID]
	e.mu.Unlock()
	if !ok || scenario.IsComplete {
		return nil, ErrNotFound
	}

	character := scenario.Characters[0]

	reply, err := e.client.GenerateCharacterResponse(ctx, character, req.Decision, scenario.CurrentSituation)
	if err != nil {
		return nil, fmt.Errorf("process decision: %w", err)
	}

	quality, err := e.client.EvaluateDecision(ctx, scenario.Type, scenario.CurrentSituation, req.Decision, reply.Narrative)
	if err != nil {
		log.Printf("WARN: [scenarios] decision evaluation failed, using neutral score: %v", err)
		quality = 70.0
	}

	now := time.Now().UTC()
	interaction := models.Interaction{
		Turn:       scenario.TurnCount + 1,
		UserAction: req.Decision,
		AIResponse: reply.Response,
		Narrative:  reply.Narrative,
		Timestamp:  now,
	}
	appendInteraction(character, interaction)
	if err := e.store.AppendInteraction(character.ID, interaction); err != nil {
		log.Printf("WARN: [scenarios] failed to persist interaction for character %s: %v", character.ID, err)
	}

	scenario.TurnCount++
	scenario.CurrentSituation = reply.Narrative
	scenario.AvailableActions = reply.Options
	scenario.DecisionHistory = append(scenario.DecisionHistory, models.DecisionRecord{
		Decision: req.Decision,
		Quality:  quality,
		Impact:   reply.Narrative,
	})

	branchID := fmt.Sprintf("branch_%d", scenario.TurnCount)
	scenario.NarrativeBranches = append(scenario.NarrativeBranches, branchID)

	shouldConclude := scenario.TurnCount >= 5+scenario.Difficulty || len(reply.Options) == 0

	outcome := &models.ScenarioOutcome{
		ScenarioID:      scenarioID,
		UserDecision:    req.Decision,
		AIResponse:      reply.Response,
		NarrativeUpdate: reply.Narrative,
		NarrativeBranch: branchID,
		DecisionQuality: quality,
		IsComplete:      shouldConclude,
		NextActions:     reply.Options,
		TurnCount:       scenario.TurnCount,
	}

	if shouldConclude {
		scenario.IsComplete = true
		outcome.Conclusion = e.conclude(ctx, scenario)
		e.finish(userID, scenario, req.SessionID, outcome.Conclusion, now)
	}

	log.Printf("[scenarios] %s turn %d quality %.1f complete=%v", scenarioID, scenario.TurnCount, quality, shouldConclude)

	return outcome, nil
}

// conclude aggregates decision quality into a grade and asks the service
// for a closing summary, falling back to a numeric-only string.
func (e *Engine) conclude(ctx context.Context, scenario *models.Scenario) *models.Conclusion {
	var total float64
	for _, d := range scenario.DecisionHistory {
		total += d.Quality
	}
	average := 0.0
	if len(scenario.DecisionHistory) > 0 {
		average = total / float64(len(scenario.DecisionHistory))
	}

	summary, err := e.client.SummarizeScenario(ctx, scenario, average)
	if err != nil {
		log.Printf("WARN: [scenarios] summary generation failed: %v", err)
		summary = fmt.Sprintf("Scenario completed with an average decision quality of %.1f/100.", average)
	}

	return &models.Conclusion{
		ScenarioID:        scenario.ID,
		TotalTurns:        scenario.TurnCount,
		AverageScore:      average,
		DecisionCount:     len(scenario.DecisionHistory),
		NarrativeBranches: len(scenario.NarrativeBranches),
		Summary:           summary,
		PerformanceGrade:  grade(average),
	}
}

// finish persists the result, feeds the difficulty engine, and retires the
// scenario from the active table. All best-effort; the outcome already
// carries the conclusion.
func (e *Engine) finish(userID int64, scenario *models.Scenario, sessionID string, conclusion *models.Conclusion, endedAt time.Time) {
	result := &models.ScenarioResult{
		ResultID:              uuid.NewString(),
		SessionID:             sessionID,
		ScenarioType:          scenario.Type,
		Difficulty:            scenario.Difficulty,
		PerformanceScore:      conclusion.AverageScore,
		DecisionQualityScore:  conclusion.AverageScore,
		CompletionTimeSeconds: int(endedAt.Sub(scenario.StartTime).Seconds()),
		Timestamp:             endedAt,
	}
	if err := e.store.SaveScenarioResult(result); err != nil {
		log.Printf("WARN: [scenarios] failed to persist result for %s: %v", scenario.ID, err)
	}

	if _, err := e.difficulty.Process(userID, conclusion.AverageScore); err != nil {
		log.Printf("WARN: [scenarios] difficulty update failed for user %d: %v", userID, err)
	}

	e.mu.Lock()
	delete(e.active, scenario.ID)
	e.mu.Unlock()
}

// Get returns an active scenario.
func (e *Engine) Get(scenarioID string) (*models.Scenario, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	scenario, ok := e.active[scenarioID]
	if !ok {
		return nil, ErrNotFound
	}
	return scenario, nil
}

// Cancel abandons a scenario. Best-effort: unknown ids are a no-op.
func (e *Engine) Cancel(scenarioID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.active, scenarioID)
}

func grade(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

func defaultTitle(scenarioType models.ScenarioType) string {
	words := strings.Split(strings.ReplaceAll(string(scenarioType), "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ") + " Scenario"
}
