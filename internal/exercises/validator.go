package exercises

import (
	"context"
	"log"
	"strings"

	"github.com/cogniplay/backend/internal/models"
)

// SemanticValidator judges free-form answers the string rules can't. The
// generation service implements it.
type SemanticValidator interface {
	ValidateSemanticAnswer(ctx context.Context, correctAnswer string, userAnswer string) (bool, error)
}

// Validator dispatches per-category correctness checks through a lookup
// table: exact match, multi-value matching, or semantic judgment with a
// deterministic exact-match fallback.
type Validator struct {
	semantic SemanticValidator
}

func NewValidator(semantic SemanticValidator) *Validator {
	return &Validator{semantic: semantic}
}

type validateFunc func(v *Validator, ctx context.Context, canonical models.Answer, submitted string) bool

var categoryValidators = map[models.Category]validateFunc{
	models.CategoryMemory:             (*Validator).validateMultiValue,
	models.CategoryLogic:              (*Validator).validateSemantic,
	models.CategoryProblemSolving:     (*Validator).validateExact,
	models.CategoryPatternRecognition: (*Validator).validateExact,
	models.CategoryAttention:          (*Validator).validateMultiValue,
}

func (v *Validator) Validate(ctx context.Context, exercise *models.Exercise, submitted string) bool {
	fn, ok := categoryValidators[exercise.Category]
	if !ok {
		fn = (*Validator).validateExact
	}
	return fn(v, ctx, exercise.Answer, submitted)
}

func (v *Validator) validateExact(ctx context.Context, canonical models.Answer, submitted string) bool {
	return normalize(submitted) == normalize(canonical.Text)
}

// validateMultiValue handles recall-style answers. List canonicals give
// partial credit at 70% of tokens remembered; comma-joined text canonicals
// require the same token set; everything else is an exact match.
func (v *Validator) validateMultiValue(ctx context.Context, canonical models.Answer, submitted string) bool {
	if canonical.IsList() {
		submittedSet := tokenSet(submitted)
		matches := 0
		for _, want := range canonical.List {
			if submittedSet[normalize(want)] {
				matches++
			}
		}
		required := float64(len(canonical.List)) * 0.7
		return float64(matches) >= required
	}

	if strings.Contains(canonical.Text, ",") {
		want := tokenSet(canonical.Text)
		got := tokenSet(submitted)
		if len(want) != len(got) {
			return false
		}
		for token := range want {
			if !got[token] {
				return false
			}
		}
		return true
	}

	return v.validateExact(ctx, canonical, submitted)
}

func (v *Validator) validateSemantic(ctx context.Context, canonical models.Answer, submitted string) bool {
	if v.semantic != nil {
		correct, err := v.semantic.ValidateSemanticAnswer(ctx, canonical.Text, submitted)
		if err == nil {
			return correct
		}
		log.Printf("WARN: [exercises] semantic validation failed, falling back to exact match: %v", err)
	}
	return v.validateExact(ctx, canonical, submitted)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		token := normalize(part)
		if token != "" {
			set[token] = true
		}
	}
	return set
}
