package scenarios

import (
	"math/rand"
	"time"

	"github.com/cogniplay/backend/internal/models"
	"github.com/google/uuid"
)

// Character factory. Fills the roster when the generation service returns
// none, and backstops it with archetype-driven personalities.

type roleTemplate struct {
	role      string
	archetype string
}

var roleTemplates = map[models.ScenarioType][]roleTemplate{
	models.ScenarioNegotiation: {
		{"Business Partner", "pragmatic"},
		{"Client", "demanding"},
		{"Vendor", "competitive"},
	},
	models.ScenarioProblemSolving: {
		{"Team Lead", "collaborative"},
		{"Technical Expert", "analytical"},
		{"Stakeholder", "concerned"},
	},
	models.ScenarioSocial: {
		{"Colleague", "friendly"},
		{"Supervisor", "professional"},
		{"Peer", "casual"},
	},
	models.ScenarioLeadership: {
		{"Team Member", "supportive"},
		{"Difficult Employee", "resistant"},
		{"Senior Manager", "authoritative"},
	},
	models.ScenarioCreativeThinking: {
		{"Creative Partner", "innovative"},
		{"Critic", "skeptical"},
		{"Client", "open_minded"},
	},
}

var traitOptions = map[string][]string{
	"temperament": {
		"Friendly", "Professional", "Challenging",
		"Neutral", "Enthusiastic", "Reserved",
	},
	"communication_style": {
		"Direct", "Diplomatic", "Technical",
		"Casual", "Formal", "Concise",
	},
	"emotional_state": {
		"Calm", "Stressed", "Enthusiastic",
		"Skeptical", "Optimistic", "Frustrated",
	},
	"goals": {
		"Cooperative", "Competitive", "Hidden Agenda",
		"Helpful", "Self-interested", "Neutral",
	},
}

var archetypeTraits = map[string]map[string]string{
	"pragmatic": {
		"temperament":         "Professional",
		"communication_style": "Direct",
		"emotional_state":     "Calm",
		"goals":               "Self-interested",
	},
	"demanding": {
		"temperament":         "Challenging",
		"communication_style": "Direct",
		"emotional_state":     "Stressed",
		"goals":               "Competitive",
	},
	"collaborative": {
		"temperament":         "Friendly",
		"communication_style": "Diplomatic",
		"emotional_state":     "Enthusiastic",
		"goals":               "Cooperative",
	},
	"analytical": {
		"temperament":         "Reserved",
		"communication_style": "Technical",
		"emotional_state":     "Calm",
		"goals":               "Helpful",
	},
	"friendly": {
		"temperament":         "Friendly",
		"communication_style": "Casual",
		"emotional_state":     "Optimistic",
		"goals":               "Cooperative",
	},
}

var traitKeys = []string{"temperament", "communication_style", "emotional_state", "goals"}

var firstNames = []string{
	"Alex", "Jordan", "Taylor", "Morgan", "Casey",
	"Riley", "Avery", "Quinn", "Sage", "Drew",
	"Sam", "Jamie", "Chris", "Pat", "Robin",
}

var lastNames = []string{
	"Chen", "Patel", "Johnson", "Williams", "Garcia",
	"Martinez", "Kim", "Lee", "Brown", "Davis",
}

var roleBackgrounds = map[string][]string{
	"Business Partner": {
		"Has been in the industry for 10 years and values efficiency.",
		"Recently promoted and eager to prove themselves.",
		"Experienced negotiator with strong network connections.",
	},
	"Team Lead": {
		"Manages a team of 8 and focuses on collaboration.",
		"New to leadership but highly technical.",
		"Veteran leader known for developing talent.",
	},
	"Client": {
		"Running a startup and needs quick solutions.",
		"Represents a Fortune 500 company with high standards.",
		"Small business owner watching every dollar.",
	},
}

// NewCharacter builds a character for the given scenario type. Difficulty
// adds unpredictability: at 3+ one trait is randomized, at 4+ goals become
// a hidden agenda.
func NewCharacter(scenarioType models.ScenarioType, difficulty int) *models.Character {
	templates, ok := roleTemplates[scenarioType]
	if !ok {
		templates = roleTemplates[models.ScenarioSocial]
	}
	template := templates[rand.Intn(len(templates))]

	return &models.Character{
		ID:                uuid.NewString(),
		Name:              generateName(),
		Role:              template.role,
		PersonalityTraits: generatePersonality(template.archetype, difficulty),
		Background:        generateBackground(template.role),
		CreatedAt:         time.Now().UTC(),
	}
}

func generatePersonality(archetype string, difficulty int) map[string]string {
	base, ok := archetypeTraits[archetype]
	if !ok {
		base = archetypeTraits["pragmatic"]
	}

	traits := make(map[string]string, len(base))
	for k, v := range base {
		traits[k] = v
	}

	if difficulty >= 3 {
		key := traitKeys[rand.Intn(len(traitKeys))]
		options := traitOptions[key]
		traits[key] = options[rand.Intn(len(options))]
	}
	if difficulty >= 4 {
		traits["goals"] = "Hidden Agenda"
	}

	return traits
}

func generateName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

func generateBackground(role string) string {
	backgrounds, ok := roleBackgrounds[role]
	if !ok {
		return "Professional with relevant experience."
	}
	return backgrounds[rand.Intn(len(backgrounds))]
}

// appendInteraction records one turn in the character's memory, evicting
// the oldest entry past the cap.
func appendInteraction(character *models.Character, interaction models.Interaction) {
	character.InteractionHistory = append(character.InteractionHistory, interaction)
	if len(character.InteractionHistory) > models.MaxInteractionHistory {
		character.InteractionHistory = character.InteractionHistory[len(character.InteractionHistory)-models.MaxInteractionHistory:]
	}
	now := interaction.Timestamp
	character.LastUsed = &now
}
