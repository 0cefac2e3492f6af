package generator

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
	"github.com/cogniplay/backend/internal/models"
)

// LLMClient is the interface all generator implementations satisfy.
type LLMClient interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error)
}

// LLMResponse holds the raw response content and token usage.
type LLMResponse struct {
	Content      string
	PromptTokens int
	OutputTokens int
}

// Generator wraps an LLMClient and adds scenario and exercise methods.
type Generator struct {
	llm   LLMClient
	model string
}

func NewGenerator() *Generator {
	var llm LLMClient
	model := "mock"

	if os.Getenv("USE_CLI_GENERATOR") == "true" {
		cliPath := os.Getenv("CLAUDE_CLI_PATH")
		if cliPath == "" {
			cliPath = "claude"
		}
		llm = NewCLIClient(cliPath)
		model = "claude-cli"
		log.Println("Generator using Claude CLI (local plan)")
	} else if os.Getenv("MOCK_GENERATOR") == "true" {
		llm = NewMockClient()
		log.Println("Generator using mock data")
	} else {
		model = os.Getenv("ANTHROPIC_MODEL")
		if model == "" {
			model = "claude-opus-4-5-20251101"
		}
		llm = NewAPIClient(model)
		log.Println("Generator using Anthropic API:", model)
	}

	return &Generator{llm: llm, model: model}
}

// NewGeneratorWithClient wires an explicit client, used by tests.
func NewGeneratorWithClient(llm LLMClient) *Generator {
	return &Generator{llm: llm, model: "custom"}
}

func (g *Generator) ModelName() string {
	return g.model
}

// GenerateScenario produces a full scenario seed (title, context, characters,
// opening situation and options) for the given type and difficulty.
func (g *Generator) GenerateScenario(ctx context.Context, scenarioType models.ScenarioType, difficulty int, preferences map[string]string) (*ScenarioContent, *LLMResponse, error) {
	systemPrompt := BuildScenarioPrompt(scenarioType, difficulty, preferences)

	resp, err := g.llm.Generate(ctx, systemPrompt, "Generate the scenario now.")
	if err != nil {
		return nil, nil, fmt.Errorf("generate scenario: %w", err)
	}

	content, err := ParseScenarioContent(resp.Content)
	if err != nil {
		return nil, resp, fmt.Errorf("parse scenario response: %w", err)
	}

	return content, resp, nil
}

// GenerateCharacterResponse produces an in-character reply to the user's
// action. The character's recent interactions are folded into the prompt so
// replies stay consistent across turns.
func (g *Generator) GenerateCharacterResponse(ctx context.Context, character *models.Character, userAction string, situation string) (*CharacterReply, error) {
	systemPrompt := BuildCharacterPrompt(character, situation)
	userPrompt := fmt.Sprintf("User action: %s", userAction)

	resp, err := g.llm.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("generate character response: %w", err)
	}

	reply := ParseCharacterReply(resp.Content)
	if reply.Response == "" {
		return nil, fmt.Errorf("character response missing RESPONSE section")
	}

	return reply, nil
}

// EvaluateDecision rates a user decision 0-100 given its context and outcome.
func (g *Generator) EvaluateDecision(ctx context.Context, scenarioType models.ScenarioType, situation string, decision string, outcome string) (float64, error) {
	systemPrompt := BuildEvaluationPrompt(scenarioType, situation, decision, outcome)

	resp, err := g.llm.Generate(ctx, systemPrompt, "Rate the decision now.")
	if err != nil {
		return 0, fmt.Errorf("evaluate decision: %w", err)
	}

	score, err := ParseScore(resp.Content)
	if err != nil {
		return 0, fmt.Errorf("parse decision score: %w", err)
	}

	return score, nil
}

// ValidateSemanticAnswer asks whether a free-form answer is logically
// equivalent to the canonical one. Any reply not containing "incorrect"
// counts as correct, mirroring how the model phrases near-misses.
func (g *Generator) ValidateSemanticAnswer(ctx context.Context, correctAnswer string, userAnswer string) (bool, error) {
	systemPrompt := BuildValidationPrompt(correctAnswer, userAnswer)

	resp, err := g.llm.Generate(ctx, systemPrompt, "Validate the answer now.")
	if err != nil {
		return false, fmt.Errorf("validate answer: %w", err)
	}

	verdict := strings.ToLower(strings.TrimSpace(resp.Content))
	return !strings.Contains(verdict, "incorrect"), nil
}

// SummarizeScenario produces the closing narrative assessment.
func (g *Generator) SummarizeScenario(ctx context.Context, scenario *models.Scenario, averageScore float64) (string, error) {
	systemPrompt := BuildSummaryPrompt(scenario, averageScore)

	resp, err := g.llm.Generate(ctx, systemPrompt, "Write the conclusion now.")
	if err != nil {
		return "", fmt.Errorf("summarize scenario: %w", err)
	}

	summary := strings.TrimSpace(resp.Content)
	if summary == "" {
		return "", fmt.Errorf("empty scenario summary")
	}

	return summary, nil
}

// GenerateLogicExercise produces a fresh logic puzzle of the given subtype.
func (g *Generator) GenerateLogicExercise(ctx context.Context, subtype string, difficulty int) (*LogicExerciseContent, error) {
	systemPrompt := BuildLogicExercisePrompt(subtype, difficulty)

	resp, err := g.llm.Generate(ctx, systemPrompt, "Generate the exercise now.")
	if err != nil {
		return nil, fmt.Errorf("generate logic exercise: %w", err)
	}

	content, err := ParseLogicExercise(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("parse logic exercise: %w", err)
	}

	return content, nil
}

// ── APIClient — Anthropic SDK (Production) ─────────────────

type APIClient struct {
	client *anthropic.Client
	model  string
}

func NewAPIClient(model string) *APIClient {
	client := anthropic.NewClient(
		option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
	return &APIClient{client: &client, model: model}
}

func (c *APIClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   2048,
		Temperature: param.NewOpt(0.7),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	message, err := c.callWithRetry(ctx, params)
	if err != nil {
		return nil, err
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return &LLMResponse{
		Content:      responseText,
		PromptTokens: int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
	}, nil
}

func (c *APIClient) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			sleepDuration := time.Duration(1<<uint(attempt)) * time.Second
			log.Printf("Retrying Anthropic API call in %v (attempt %d)", sleepDuration, attempt+1)
			time.Sleep(sleepDuration)
		}

		message, err := c.client.Messages.New(ctx, params)
		if err == nil {
			return message, nil
		}
		lastErr = err
		log.Printf("Anthropic API attempt %d failed: %v", attempt+1, err)
	}
	return nil, fmt.Errorf("anthropic API failed after retries: %w", lastErr)
}

// ── MockClient — Local Development ─────────────────────────

// MockClient returns canned responses keyed off prompt markers so every
// generator method works without network access.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	var content string

	switch {
	case strings.Contains(systemPrompt, "ONLY a number"):
		content = "75"
	case strings.Contains(systemPrompt, `ONLY "correct"`):
		content = "correct"
	case strings.Contains(systemPrompt, "RESPONSE:"):
		content = mockCharacterReply()
	case strings.Contains(systemPrompt, "logic puzzle generator"):
		content = mockLogicExerciseJSON()
	case strings.Contains(systemPrompt, "brief conclusion"):
		content = "[Mock] You handled the situation methodically. Strengths: clear communication, steady prioritization. Improvement areas: weigh long-term consequences earlier. Tip: name the trade-off out loud before committing."
	default:
		content = mockScenarioJSON()
	}

	return &LLMResponse{
		Content:      content,
		PromptTokens: 400,
		OutputTokens: 300,
	}, nil
}

func mockCharacterReply() string {
	return `RESPONSE: [Mock] "That's an interesting approach," she says, leaning back. "Walk me through your reasoning before I commit my team to anything."
NARRATIVE: The room relaxes slightly, but the pressure to justify the proposal is now on you.
OPTIONS: Explain your reasoning step by step | Ask what her main concern is | Offer a smaller trial commitment`
}

func mockScenarioJSON() string {
	return `{
  "title": "[Mock] The Vendor Standoff",
  "context": "[Mock] Your company's key supplier has threatened to raise prices by 40% with two weeks notice. You have been sent to renegotiate the contract.",
  "characters": [
    {
      "name": "Diane Okafor",
      "role": "Supplier Account Director",
      "personality_traits": {
        "temperament": "Assertive",
        "communication_style": "Direct",
        "emotional_state": "Impatient",
        "goals": "Secure a multi-year commitment at higher margins"
      },
      "background": "[Mock] Fifteen years in supply chain sales, known for walking away from weak deals."
    }
  ],
  "initial_situation": "[Mock] Diane opens the meeting by sliding the new price sheet across the table and asking whether you are authorized to sign today.",
  "initial_options": ["Question the basis for the increase", "Propose a volume-based discount", "Mention a competing supplier's quote"]
}`
}

func mockLogicExerciseJSON() string {
	return `{
  "question": "[Mock] Three colleagues - Priya, Marcus, and Jin - each lead one project: Atlas, Borealis, or Cinder. Priya does not lead Atlas. Marcus leads Borealis. Which project does Priya lead?",
  "answer": "cinder",
  "options": ["Atlas", "Borealis", "Cinder"],
  "hints": ["Start with the definite fact", "Eliminate what Priya cannot lead", "Only one project remains"]
}`
}
