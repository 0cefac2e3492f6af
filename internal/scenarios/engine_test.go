package scenarios

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cogniplay/backend/internal/generator"
	"github.com/cogniplay/backend/internal/models"
)

type fakeNarrative struct {
	content    *generator.ScenarioContent
	createErr  error
	reply      *generator.CharacterReply
	replyErr   error
	quality    float64
	qualityErr error
	summary    string
	summaryErr error

	replyCalls int
}

func (f *fakeNarrative) GenerateScenario(ctx context.Context, scenarioType models.ScenarioType, difficulty int, preferences map[string]string) (*generator.ScenarioContent, *generator.LLMResponse, error) {
	if f.createErr != nil {
		return nil, nil, f.createErr
	}
	return f.content, &generator.LLMResponse{}, nil
}

func (f *fakeNarrative) GenerateCharacterResponse(ctx context.Context, character *models.Character, userAction string, situation string) (*generator.CharacterReply, error) {
	f.replyCalls++
	if f.replyErr != nil {
		return nil, f.replyErr
	}
	return f.reply, nil
}

func (f *fakeNarrative) EvaluateDecision(ctx context.Context, scenarioType models.ScenarioType, situation string, decision string, outcome string) (float64, error) {
	if f.qualityErr != nil {
		return 0, f.qualityErr
	}
	return f.quality, nil
}

func (f *fakeNarrative) SummarizeScenario(ctx context.Context, scenario *models.Scenario, averageScore float64) (string, error) {
	if f.summaryErr != nil {
		return "", f.summaryErr
	}
	return f.summary, nil
}

type fakeScenarioStore struct {
	characters   []*models.Character
	interactions map[string][]models.Interaction
	results      []*models.ScenarioResult
}

func newFakeScenarioStore() *fakeScenarioStore {
	return &fakeScenarioStore{interactions: make(map[string][]models.Interaction)}
}

func (f *fakeScenarioStore) SaveCharacter(character *models.Character) error {
	f.characters = append(f.characters, character)
	return nil
}

func (f *fakeScenarioStore) AppendInteraction(characterID string, interaction models.Interaction) error {
	f.interactions[characterID] = append(f.interactions[characterID], interaction)
	return nil
}

func (f *fakeScenarioStore) SaveScenarioResult(result *models.ScenarioResult) error {
	f.results = append(f.results, result)
	return nil
}

type fakeAdjuster struct {
	level      int
	accuracies []float64
}

func (f *fakeAdjuster) CurrentLevel(userID int64) int { return f.level }

func (f *fakeAdjuster) Process(userID int64, accuracy float64) (*models.Adjustment, error) {
	f.accuracies = append(f.accuracies, accuracy)
	return nil, nil
}

func testContent() *generator.ScenarioContent {
	return &generator.ScenarioContent{
		Title:   "Contract Renewal",
		Context: "A key supplier contract is up for renewal.",
		Characters: []generator.CharacterSeed{
			{
				Name:              "Diane Okafor",
				Role:              "Supplier Account Director",
				PersonalityTraits: map[string]string{"temperament": "Assertive"},
				Background:        "Fifteen years in procurement.",
			},
		},
		InitialSituation: "Diane slides the draft terms across the table.",
		InitialOptions:   []string{"Review the terms", "Counter immediately", "Ask about volume discounts"},
	}
}

func continuingReply() *generator.CharacterReply {
	return &generator.CharacterReply{
		Response:  "That's an interesting position.",
		Narrative: "Diane leans back, weighing your words.",
		Options:   []string{"Press the point", "Offer a concession"},
	}
}

func TestCreateScenarioMaterializesCharacters(t *testing.T) {
	client := &fakeNarrative{content: testContent()}
	store := newFakeScenarioStore()
	engine := NewEngine(client, store, &fakeAdjuster{level: 2})

	scenario, err := engine.CreateScenario(context.Background(), 1, models.CreateScenarioRequest{
		Type: models.ScenarioNegotiation,
	})
	if err != nil {
		t.Fatalf("CreateScenario: %v", err)
	}

	if scenario.Difficulty != 2 {
		t.Errorf("difficulty = %d, want 2 from engine", scenario.Difficulty)
	}
	if scenario.TurnCount != 0 || scenario.IsComplete {
		t.Errorf("new scenario should start at turn 0 and be active")
	}
	if scenario.CurrentSituation != scenario.InitialSituation {
		t.Error("current situation should start at the initial situation")
	}
	if len(scenario.Characters) != 1 || scenario.Characters[0].Name != "Diane Okafor" {
		t.Fatalf("characters = %+v", scenario.Characters)
	}
	if scenario.Characters[0].ID == "" {
		t.Error("character should be assigned an id")
	}
	if len(store.characters) != 1 {
		t.Errorf("persisted characters = %d, want 1", len(store.characters))
	}

	got, err := engine.Get(scenario.ID)
	if err != nil || got.ID != scenario.ID {
		t.Errorf("Get(%s) = %v, %v", scenario.ID, got, err)
	}
}

func TestCreateScenarioFallbackCharacter(t *testing.T) {
	content := testContent()
	content.Characters = nil
	client := &fakeNarrative{content: content}
	engine := NewEngine(client, newFakeScenarioStore(), &fakeAdjuster{level: 1})

	scenario, err := engine.CreateScenario(context.Background(), 1, models.CreateScenarioRequest{
		Type: models.ScenarioLeadership,
	})
	if err != nil {
		t.Fatalf("CreateScenario: %v", err)
	}
	if len(scenario.Characters) != 1 {
		t.Fatalf("expected one factory character, got %d", len(scenario.Characters))
	}
	c := scenario.Characters[0]
	if c.Name == "" || c.Role == "" || len(c.PersonalityTraits) == 0 {
		t.Errorf("factory character incomplete: %+v", c)
	}
}

func TestCreateScenarioInvalidType(t *testing.T) {
	engine := NewEngine(&fakeNarrative{content: testContent()}, newFakeScenarioStore(), &fakeAdjuster{level: 1})

	_, err := engine.CreateScenario(context.Background(), 1, models.CreateScenarioRequest{Type: "time_travel"})
	if !errors.Is(err, ErrInvalidType) {
		t.Errorf("error = %v, want ErrInvalidType", err)
	}
}

func TestCreateScenarioGenerationFailureAborts(t *testing.T) {
	store := newFakeScenarioStore()
	engine := NewEngine(&fakeNarrative{createErr: errors.New("upstream down")}, store, &fakeAdjuster{level: 1})

	_, err := engine.CreateScenario(context.Background(), 1, models.CreateScenarioRequest{
		Type: models.ScenarioSocial,
	})
	if err == nil {
		t.Fatal("expected error when generation fails")
	}
	if len(store.characters) != 0 {
		t.Error("no characters should be persisted on failure")
	}
}

func TestProcessDecisionAdvancesTurn(t *testing.T) {
	client := &fakeNarrative{content: testContent(), reply: continuingReply(), quality: 85}
	store := newFakeScenarioStore()
	engine := NewEngine(client, store, &fakeAdjuster{level: 3})

	scenario, _ := engine.CreateScenario(context.Background(), 1, models.CreateScenarioRequest{
		Type: models.ScenarioNegotiation,
	})

	outcome, err := engine.ProcessDecision(context.Background(), 1, scenario.ID, models.ProcessDecisionRequest{
		Decision: "Ask about volume discounts",
	})
	if err != nil {
		t.Fatalf("ProcessDecision: %v", err)
	}

	if outcome.TurnCount != 1 {
		t.Errorf("turn = %d, want 1", outcome.TurnCount)
	}
	if outcome.DecisionQuality != 85 {
		t.Errorf("quality = %v, want 85", outcome.DecisionQuality)
	}
	if outcome.NarrativeBranch != "branch_1" {
		t.Errorf("branch = %q, want branch_1", outcome.NarrativeBranch)
	}
	if outcome.IsComplete {
		t.Error("scenario should not complete on turn 1 with options remaining")
	}
	if scenario.CurrentSituation != "Diane leans back, weighing your words." {
		t.Errorf("situation not advanced: %q", scenario.CurrentSituation)
	}
	if len(scenario.DecisionHistory) != 1 || scenario.DecisionHistory[0].Quality != 85 {
		t.Errorf("decision history = %+v", scenario.DecisionHistory)
	}

	character := scenario.Characters[0]
	if len(character.InteractionHistory) != 1 {
		t.Fatalf("character memory = %d entries, want 1", len(character.InteractionHistory))
	}
	if character.LastUsed == nil {
		t.Error("character last_used should be set")
	}
	if len(store.interactions[character.ID]) != 1 {
		t.Errorf("persisted interactions = %d, want 1", len(store.interactions[character.ID]))
	}
}

func TestProcessDecisionRetrySafety(t *testing.T) {
	client := &fakeNarrative{content: testContent(), reply: continuingReply(), quality: 80}
	engine := NewEngine(client, newFakeScenarioStore(), &fakeAdjuster{level: 1})

	scenario, _ := engine.CreateScenario(context.Background(), 1, models.CreateScenarioRequest{
		Type: models.ScenarioNegotiation,
	})
	before := scenario.CurrentSituation

	client.replyErr = errors.New("timeout")
	_, err := engine.ProcessDecision(context.Background(), 1, scenario.ID, models.ProcessDecisionRequest{Decision: "Stall"})
	if err == nil {
		t.Fatal("expected error from failed character response")
	}

	if scenario.TurnCount != 0 {
		t.Errorf("turn = %d after failure, want 0", scenario.TurnCount)
	}
	if len(scenario.DecisionHistory) != 0 {
		t.Errorf("decision history = %d after failure, want 0", len(scenario.DecisionHistory))
	}
	if len(scenario.Characters[0].InteractionHistory) != 0 {
		t.Error("character memory must be untouched after failure")
	}
	if scenario.CurrentSituation != before {
		t.Error("situation must be untouched after failure")
	}

	// The same decision can be retried and lands exactly once.
	client.replyErr = nil
	outcome, err := engine.ProcessDecision(context.Background(), 1, scenario.ID, models.ProcessDecisionRequest{Decision: "Stall"})
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if outcome.TurnCount != 1 || len(scenario.DecisionHistory) != 1 {
		t.Errorf("retry landed turn=%d history=%d, want 1 and 1", outcome.TurnCount, len(scenario.DecisionHistory))
	}
}

func TestEvaluationFailureUsesNeutralScore(t *testing.T) {
	client := &fakeNarrative{
		content:    testContent(),
		reply:      continuingReply(),
		qualityErr: errors.New("eval down"),
	}
	engine := NewEngine(client, newFakeScenarioStore(), &fakeAdjuster{level: 1})

	scenario, _ := engine.CreateScenario(context.Background(), 1, models.CreateScenarioRequest{
		Type: models.ScenarioNegotiation,
	})

	outcome, err := engine.ProcessDecision(context.Background(), 1, scenario.ID, models.ProcessDecisionRequest{Decision: "Push back"})
	if err != nil {
		t.Fatalf("ProcessDecision: %v", err)
	}
	if outcome.DecisionQuality != 70.0 {
		t.Errorf("quality = %v, want neutral 70", outcome.DecisionQuality)
	}
	if outcome.TurnCount != 1 {
		t.Error("evaluation failure must not abort the turn")
	}
}

func TestScenarioTerminatesAtTurnCap(t *testing.T) {
	client := &fakeNarrative{
		content: testContent(),
		reply:   continuingReply(),
		quality: 92,
		summary: "Strong, consistent negotiation throughout.",
	}
	store := newFakeScenarioStore()
	adjuster := &fakeAdjuster{level: 1}
	engine := NewEngine(client, store, adjuster)

	scenario, _ := engine.CreateScenario(context.Background(), 1, models.CreateScenarioRequest{
		Type:       models.ScenarioNegotiation,
		Difficulty: 1,
	})

	var outcome *models.ScenarioOutcome
	for turn := 1; turn <= 6; turn++ {
		var err error
		outcome, err = engine.ProcessDecision(context.Background(), 1, scenario.ID, models.ProcessDecisionRequest{
			SessionID: "sess-9",
			Decision:  "Hold position",
		})
		if err != nil {
			t.Fatalf("turn %d: %v", turn, err)
		}
		if turn < 6 && outcome.IsComplete {
			t.Fatalf("scenario completed early at turn %d", turn)
		}
	}

	// Difficulty 1 caps the scenario at 5+1 turns.
	if !outcome.IsComplete {
		t.Fatal("scenario should complete at the turn cap")
	}
	if outcome.Conclusion == nil {
		t.Fatal("completed outcome must carry a conclusion")
	}
	if outcome.Conclusion.TotalTurns != 6 || outcome.Conclusion.DecisionCount != 6 {
		t.Errorf("conclusion turns=%d decisions=%d, want 6 and 6", outcome.Conclusion.TotalTurns, outcome.Conclusion.DecisionCount)
	}
	if outcome.Conclusion.AverageScore != 92 {
		t.Errorf("average = %v, want 92", outcome.Conclusion.AverageScore)
	}
	if outcome.Conclusion.PerformanceGrade != "A" {
		t.Errorf("grade = %q, want A", outcome.Conclusion.PerformanceGrade)
	}
	if outcome.Conclusion.Summary != "Strong, consistent negotiation throughout." {
		t.Errorf("summary = %q", outcome.Conclusion.Summary)
	}

	if len(store.results) != 1 {
		t.Fatalf("persisted results = %d, want 1", len(store.results))
	}
	if store.results[0].SessionID != "sess-9" {
		t.Errorf("result session = %q", store.results[0].SessionID)
	}
	if len(adjuster.accuracies) != 1 || adjuster.accuracies[0] != 92 {
		t.Errorf("difficulty engine fed %v, want [92]", adjuster.accuracies)
	}

	// Completed scenarios are retired.
	if _, err := engine.Get(scenario.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after completion = %v, want ErrNotFound", err)
	}
	if _, err := engine.ProcessDecision(context.Background(), 1, scenario.ID, models.ProcessDecisionRequest{Decision: "More"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("decision after completion = %v, want ErrNotFound", err)
	}
}

func TestScenarioCompletesWhenOptionsExhausted(t *testing.T) {
	client := &fakeNarrative{
		content: testContent(),
		reply: &generator.CharacterReply{
			Response:  "Then we have a deal.",
			Narrative: "Diane signs the contract.",
		},
		quality: 75,
		summary: "Deal closed on fair terms.",
	}
	engine := NewEngine(client, newFakeScenarioStore(), &fakeAdjuster{level: 1})

	scenario, _ := engine.CreateScenario(context.Background(), 1, models.CreateScenarioRequest{
		Type:       models.ScenarioNegotiation,
		Difficulty: 3,
	})

	outcome, err := engine.ProcessDecision(context.Background(), 1, scenario.ID, models.ProcessDecisionRequest{Decision: "Accept the terms"})
	if err != nil {
		t.Fatalf("ProcessDecision: %v", err)
	}
	if !outcome.IsComplete {
		t.Error("scenario with no remaining options should complete")
	}
	if outcome.Conclusion == nil || outcome.Conclusion.PerformanceGrade != "C" {
		t.Errorf("conclusion = %+v, want grade C", outcome.Conclusion)
	}
}

func TestConclusionSummaryFallback(t *testing.T) {
	client := &fakeNarrative{
		content:    testContent(),
		reply:      &generator.CharacterReply{Response: "Done.", Narrative: "The room empties."},
		quality:    64,
		summaryErr: errors.New("summary down"),
	}
	engine := NewEngine(client, newFakeScenarioStore(), &fakeAdjuster{level: 1})

	scenario, _ := engine.CreateScenario(context.Background(), 1, models.CreateScenarioRequest{
		Type:       models.ScenarioProblemSolving,
		Difficulty: 2,
	})

	outcome, err := engine.ProcessDecision(context.Background(), 1, scenario.ID, models.ProcessDecisionRequest{Decision: "Wrap up"})
	if err != nil {
		t.Fatalf("ProcessDecision: %v", err)
	}
	if outcome.Conclusion == nil {
		t.Fatal("expected conclusion")
	}
	if !strings.Contains(outcome.Conclusion.Summary, "64.0/100") {
		t.Errorf("fallback summary = %q", outcome.Conclusion.Summary)
	}
	if outcome.Conclusion.PerformanceGrade != "D" {
		t.Errorf("grade = %q, want D", outcome.Conclusion.PerformanceGrade)
	}
}

func TestCancelRetiresScenario(t *testing.T) {
	engine := NewEngine(&fakeNarrative{content: testContent()}, newFakeScenarioStore(), &fakeAdjuster{level: 1})

	scenario, _ := engine.CreateScenario(context.Background(), 1, models.CreateScenarioRequest{
		Type: models.ScenarioSocial,
	})

	engine.Cancel(scenario.ID)
	if _, err := engine.Get(scenario.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after cancel = %v, want ErrNotFound", err)
	}

	// Cancelling twice is harmless.
	engine.Cancel(scenario.ID)
}

func TestGradeBands(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{95, "A"}, {90, "A"}, {89.9, "B"}, {80, "B"},
		{79, "C"}, {70, "C"}, {65, "D"}, {60, "D"}, {59, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		if got := grade(tt.score); got != tt.want {
			t.Errorf("grade(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestHiddenAgendaAtHighDifficulty(t *testing.T) {
	for i := 0; i < 10; i++ {
		c := NewCharacter(models.ScenarioNegotiation, 4)
		if c.PersonalityTraits["goals"] != "Hidden Agenda" {
			t.Fatalf("difficulty 4 character goals = %q, want Hidden Agenda", c.PersonalityTraits["goals"])
		}
	}
}

func TestInteractionHistoryBounded(t *testing.T) {
	c := NewCharacter(models.ScenarioSocial, 1)
	for turn := 1; turn <= models.MaxInteractionHistory+3; turn++ {
		appendInteraction(c, models.Interaction{Turn: turn, UserAction: "act", Timestamp: time.Now().UTC()})
	}
	if len(c.InteractionHistory) != models.MaxInteractionHistory {
		t.Fatalf("history = %d entries, want %d", len(c.InteractionHistory), models.MaxInteractionHistory)
	}
	if c.InteractionHistory[0].Turn != 4 {
		t.Errorf("oldest retained turn = %d, want 4", c.InteractionHistory[0].Turn)
	}
	if c.InteractionHistory[len(c.InteractionHistory)-1].Turn != models.MaxInteractionHistory+3 {
		t.Error("newest interaction should be retained")
	}
}

func TestDefaultTitle(t *testing.T) {
	if got := defaultTitle(models.ScenarioCreativeThinking); got != "Creative Thinking Scenario" {
		t.Errorf("defaultTitle = %q", got)
	}
}
