package generator

import (
	"fmt"
	"strings"

	"github.com/cogniplay/backend/internal/models"
)

var difficultyDescriptions = map[int]string{
	1: "Simple, straightforward situation with clear solutions",
	2: "Moderate complexity with some competing interests",
	3: "Complex situation with multiple stakeholders",
	4: "Challenging scenario with hidden information",
	5: "Highly complex with time pressure and conflicting goals",
}

// BuildScenarioPrompt asks for a complete scenario seed in JSON.
func BuildScenarioPrompt(scenarioType models.ScenarioType, difficulty int, preferences map[string]string) string {
	var b strings.Builder

	fmt.Fprintf(&b, `Generate a role-playing scenario for cognitive training.

Scenario Type: %s
Difficulty Level: %d/5 - %s
`, scenarioType, difficulty, difficultyDescriptions[difficulty])

	if len(preferences) > 0 {
		b.WriteString("\nUser Preferences:\n")
		for k, v := range preferences {
			fmt.Fprintf(&b, "- %s: %s\n", k, v)
		}
	}

	b.WriteString(`
Requirements:
1. Create 1-2 distinct AI characters with clear personalities
2. Set up a realistic situation requiring decision-making
3. Include clear context and background
4. Provide initial decision points
5. Make it engaging and educational

Format your response as JSON:
{
  "title": "Scenario title",
  "context": "Background situation",
  "characters": [
    {
      "name": "Character name",
      "role": "Their role",
      "personality_traits": {
        "temperament": "...",
        "communication_style": "...",
        "emotional_state": "...",
        "goals": "..."
      },
      "background": "Brief background"
    }
  ],
  "initial_situation": "Opening scenario description",
  "initial_options": ["option1", "option2", "option3"]
}`)

	return b.String()
}

// BuildCharacterPrompt sets up the roleplay system prompt for one character.
// The character's recent interaction history rides along so replies stay
// consistent from turn to turn.
func BuildCharacterPrompt(character *models.Character, situation string) string {
	traits := character.PersonalityTraits
	var b strings.Builder

	fmt.Fprintf(&b, `You are roleplaying as %s, a %s.

Personality Traits:
- Temperament: %s
- Communication Style: %s
- Emotional State: %s
- Goals: %s

Background: %s

Scenario Context: %s
`,
		character.Name, character.Role,
		traitOr(traits, "temperament", "Neutral"),
		traitOr(traits, "communication_style", "Professional"),
		traitOr(traits, "emotional_state", "Calm"),
		traitOr(traits, "goals", "Unknown"),
		backgroundOr(character.Background),
		situation,
	)

	history := character.InteractionHistory
	if len(history) > 3 {
		history = history[len(history)-3:]
	}
	if len(history) > 0 {
		b.WriteString("\nRecent interactions:\n")
		for _, h := range history {
			fmt.Fprintf(&b, "User action: %s\nYour reply: %s\n", h.UserAction, h.AIResponse)
		}
	}

	b.WriteString(`
Instructions:
1. Stay in character throughout the interaction
2. Respond naturally to the user's action
3. Be consistent with your personality traits
4. Drive the narrative forward with your response
5. Provide 2-3 realistic action options for the user at the end
6. Keep responses concise (2-3 paragraphs max)

Format your response as:
RESPONSE: [Your character's dialogue and actions]
NARRATIVE: [Brief description of outcome/impact]
OPTIONS: [option1] | [option2] | [option3]`)

	return b.String()
}

func traitOr(traits map[string]string, key string, fallback string) string {
	if v, ok := traits[key]; ok && v != "" {
		return v
	}
	return fallback
}

func backgroundOr(background string) string {
	if background == "" {
		return "No specific background provided"
	}
	return background
}

// BuildEvaluationPrompt asks for a bare 0-100 decision quality rating.
func BuildEvaluationPrompt(scenarioType models.ScenarioType, situation string, decision string, outcome string) string {
	return fmt.Sprintf(`Evaluate the quality of this decision in a %s scenario.

Context: %s
User's decision: %s
Outcome: %s

Rate the decision on a scale of 0-100 based on:
- Appropriateness for the situation
- Strategic thinking
- Communication effectiveness
- Problem-solving approach
- Consideration of consequences

Respond with ONLY a number between 0-100.`, scenarioType, situation, decision, outcome)
}

// BuildValidationPrompt asks for a correct/incorrect verdict on a free-form
// answer against the canonical one.
func BuildValidationPrompt(correctAnswer string, userAnswer string) string {
	return fmt.Sprintf(`You are a logic puzzle validator. Determine if the user's answer is logically correct for the given question.

User's answer: %q
Correct answer: %q

Evaluate if the user's answer is semantically equivalent or logically correct compared to the correct answer. Consider:
1. Synonyms and alternative phrasings
2. Logical correctness regardless of exact wording
3. Case insensitivity
4. Common abbreviations or alternative forms

Respond with ONLY "correct" if the answer is logically correct, or "incorrect" if it's wrong.`, userAnswer, correctAnswer)
}

// BuildSummaryPrompt asks for the closing scenario assessment.
func BuildSummaryPrompt(scenario *models.Scenario, averageScore float64) string {
	return fmt.Sprintf(`Provide a brief conclusion for this %s scenario.

Scenario: %s
Turns: %d
Decision History: %d decisions made
Average Decision Quality: %.1f/100

Provide:
1. A 2-3 sentence outcome summary
2. Key strengths shown (1-2 points)
3. Areas for improvement (1-2 points)
4. One actionable tip

Keep it concise and constructive.`, scenario.Type, scenario.Title, scenario.TurnCount, len(scenario.DecisionHistory), averageScore)
}

// BuildLogicExercisePrompt asks for a fresh logic puzzle in JSON.
func BuildLogicExercisePrompt(subtype string, difficulty int) string {
	return fmt.Sprintf(`You are a logic puzzle generator for cognitive training.

Puzzle Type: %s
Difficulty Level: %d/5 - %s

Requirements:
1. The puzzle must have exactly one defensible answer
2. The answer must be a short word or phrase a user can type
3. Provide three hints ordered from vague to specific
4. Match the difficulty: more entities and constraints at higher levels

Format your response as JSON:
{
  "question": "Full puzzle text including any premises",
  "answer": "the answer",
  "options": ["option1", "option2", "option3"],
  "hints": ["hint1", "hint2", "hint3"]
}

Omit "options" for free-form puzzles such as riddles.`, subtype, difficulty, difficultyDescriptions[difficulty])
}
