package generator

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ScenarioContent is the parsed scenario seed returned by the model.
type ScenarioContent struct {
	Title            string          `json:"title"`
	Context          string          `json:"context"`
	Characters       []CharacterSeed `json:"characters"`
	InitialSituation string          `json:"initial_situation"`
	InitialOptions   []string        `json:"initial_options"`
}

type CharacterSeed struct {
	Name              string            `json:"name"`
	Role              string            `json:"role"`
	PersonalityTraits map[string]string `json:"personality_traits"`
	Background        string            `json:"background"`
}

// CharacterReply is a parsed RESPONSE/NARRATIVE/OPTIONS reply.
type CharacterReply struct {
	Response  string
	Narrative string
	Options   []string
}

// LogicExerciseContent is a parsed model-generated logic puzzle.
type LogicExerciseContent struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Options  []string `json:"options,omitempty"`
	Hints    []string `json:"hints,omitempty"`
}

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// ParseScenarioContent extracts and validates the scenario JSON. Models
// sometimes wrap JSON in code fences or prose, so everything outside the
// outermost braces is discarded first.
func ParseScenarioContent(responseBody string) (*ScenarioContent, error) {
	cleaned := extractJSON(responseBody)

	var content ScenarioContent
	if err := json.Unmarshal([]byte(cleaned), &content); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateScenarioContent(&content); err != nil {
		return nil, err
	}

	return &content, nil
}

func validateScenarioContent(content *ScenarioContent) error {
	var errs []string

	if content.Title == "" {
		errs = append(errs, "empty title")
	}
	if len(content.Characters) == 0 {
		errs = append(errs, "no characters in scenario")
	}
	for i, c := range content.Characters {
		if c.Name == "" {
			errs = append(errs, fmt.Sprintf("character %d: empty name", i+1))
		}
		if c.Role == "" {
			errs = append(errs, fmt.Sprintf("character %d: empty role", i+1))
		}
	}
	if content.InitialSituation == "" {
		errs = append(errs, "empty initial_situation")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// ParseLogicExercise extracts and validates a generated logic puzzle.
func ParseLogicExercise(responseBody string) (*LogicExerciseContent, error) {
	cleaned := extractJSON(responseBody)

	var content LogicExerciseContent
	if err := json.Unmarshal([]byte(cleaned), &content); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	var errs []string
	if content.Question == "" {
		errs = append(errs, "empty question")
	}
	if content.Answer == "" {
		errs = append(errs, "empty answer")
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	return &content, nil
}

// ParseCharacterReply scans a RESPONSE/NARRATIVE/OPTIONS reply. Lines that
// follow a section header without starting a new one continue that section.
func ParseCharacterReply(content string) *CharacterReply {
	reply := &CharacterReply{}
	current := ""

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "RESPONSE:"):
			current = "response"
			reply.Response = strings.TrimSpace(strings.TrimPrefix(line, "RESPONSE:"))
		case strings.HasPrefix(line, "NARRATIVE:"):
			current = "narrative"
			reply.Narrative = strings.TrimSpace(strings.TrimPrefix(line, "NARRATIVE:"))
		case strings.HasPrefix(line, "OPTIONS:"):
			current = ""
			optionsText := strings.TrimSpace(strings.TrimPrefix(line, "OPTIONS:"))
			for _, opt := range strings.Split(optionsText, "|") {
				opt = strings.TrimSpace(opt)
				if opt != "" {
					reply.Options = append(reply.Options, opt)
				}
			}
		case current != "" && line != "":
			switch current {
			case "response":
				reply.Response += " " + line
			case "narrative":
				reply.Narrative += " " + line
			}
		}
	}

	return reply
}

// ParseScore pulls a 0-100 numeric rating out of a reply, tolerating
// surrounding text like "Score: 85" or a trailing period.
func ParseScore(content string) (float64, error) {
	var digits strings.Builder
	seen := false
	for _, r := range strings.TrimSpace(content) {
		if (r >= '0' && r <= '9') || r == '.' {
			digits.WriteRune(r)
			seen = true
		} else if seen {
			break
		}
	}

	if digits.Len() == 0 {
		return 0, fmt.Errorf("no numeric score in response %q", content)
	}

	var score float64
	if _, err := fmt.Sscanf(digits.String(), "%f", &score); err != nil {
		return 0, fmt.Errorf("malformed score %q: %w", digits.String(), err)
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, nil
}

// extractJSON strips code fences and any prose before the first brace or
// after the last one.
func extractJSON(s string) string {
	s = stripCodeFences(s)

	start := strings.IndexAny(s, "{[")
	if start > 0 {
		s = s[start:]
	}
	end := strings.LastIndexAny(s, "}]")
	if end >= 0 {
		s = s[:end+1]
	}
	return s
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}
