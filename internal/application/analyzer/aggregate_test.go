package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bryanwahyu/pitchlens/internal/application/analyzer"
	domain "github.com/bryanwahyu/pitchlens/internal/domain/pitch"
)

func components(scores map[domain.Rubric]int) map[domain.Rubric]domain.ComponentScore {
	out := make(map[domain.Rubric]domain.ComponentScore, len(scores))
	for rb, s := range scores {
		out[rb] = domain.ComponentScore{Rubric: rb, Score: s}
	}
	return out
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name   string
		scores map[domain.Rubric]int
		want   int
	}{
		{"empty map", map[domain.Rubric]int{}, 0},
		{"single component", map[domain.Rubric]int{domain.RubricClarity: 7}, 7},
		{"exact mean", map[domain.Rubric]int{
			domain.RubricClarity:      8,
			domain.RubricTeamStrength: 6,
			domain.RubricMarketFit:    7,
			domain.RubricOriginality:  7,
		}, 7},
		{"half rounds up", map[domain.Rubric]int{
			domain.RubricClarity:      7,
			domain.RubricTeamStrength: 8,
		}, 8},
		{"scenario mean 7.5", map[domain.Rubric]int{
			domain.RubricClarity:      8,
			domain.RubricTeamStrength: 6,
			domain.RubricMarketFit:    7,
			domain.RubricOriginality:  9,
		}, 8},
		{"sentinel zero pulls the mean down", map[domain.Rubric]int{
			domain.RubricClarity:      8,
			domain.RubricTeamStrength: 0,
			domain.RubricMarketFit:    8,
			domain.RubricOriginality:  8,
		}, 6},
		{"all sentinel", map[domain.Rubric]int{
			domain.RubricClarity:     0,
			domain.RubricOriginality: 0,
		}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, analyzer.Aggregate(components(tt.scores)))
		})
	}
}
