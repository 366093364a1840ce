package analyzer

import (
	"context"
	"fmt"

	domain "github.com/bryanwahyu/pitchlens/internal/domain/pitch"
)

// MaxPitchChars bounds the text handed to the scoring and embedding
// services. Longer pitches are truncated to the first MaxPitchChars
// characters.
const MaxPitchChars = 10000

// RubricScorer wraps the text-scoring service for the LLM-scored rubrics
// (clarity, team_strength, market_fit). One instance serves all three; the
// rubric picks the instruction.
type RubricScorer struct {
	scorer       domain.TextScorer
	instructions map[domain.Rubric]string
}

func NewRubricScorer(scorer domain.TextScorer, instructions map[domain.Rubric]string) *RubricScorer {
	return &RubricScorer{scorer: scorer, instructions: instructions}
}

// Score calls the text-scoring service for one rubric. Failures never
// propagate: a bad call yields the sentinel score 0 with the failure as
// reasoning, so one broken rubric cannot void the others.
func (s *RubricScorer) Score(ctx context.Context, rubric domain.Rubric, text string) domain.ComponentScore {
	instruction, ok := s.instructions[rubric]
	if !ok {
		return degraded(rubric, fmt.Sprintf("no instruction registered for rubric %q", rubric))
	}

	res, err := s.scorer.Evaluate(ctx, instruction, Truncate(text))
	if err != nil {
		return degraded(rubric, fmt.Sprintf("scoring call failed: %v", err))
	}
	if res.Score < 0 || res.Score > 10 {
		return degraded(rubric, fmt.Sprintf("scoring service returned out-of-range score %d", res.Score))
	}

	return domain.ComponentScore{
		Rubric:    rubric,
		Score:     res.Score,
		Reasoning: res.Reasoning,
	}
}

// Truncate bounds text to MaxPitchChars characters. The bound counts runes,
// not bytes, so multibyte text is never cut mid-rune.
func Truncate(text string) string {
	if len(text) <= MaxPitchChars {
		return text
	}
	runes := []rune(text)
	if len(runes) <= MaxPitchChars {
		return text
	}
	return string(runes[:MaxPitchChars])
}

func degraded(rubric domain.Rubric, reason string) domain.ComponentScore {
	return domain.ComponentScore{Rubric: rubric, Score: 0, Reasoning: reason}
}
