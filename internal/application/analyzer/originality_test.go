package analyzer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bryanwahyu/pitchlens/internal/application/analyzer"
	domain "github.com/bryanwahyu/pitchlens/internal/domain/pitch"
)

func TestScaleSimilarityEndpoints(t *testing.T) {
	assert.Equal(t, 10, analyzer.ScaleSimilarity(0))
	assert.Equal(t, 1, analyzer.ScaleSimilarity(1))
}

func TestScaleSimilarityMonotonic(t *testing.T) {
	// score must never increase as similarity grows
	prev := analyzer.ScaleSimilarity(0)
	for i := 1; i <= 100; i++ {
		m := float64(i) / 100
		cur := analyzer.ScaleSimilarity(m)
		assert.LessOrEqual(t, cur, prev, "similarity %.2f", m)
		assert.GreaterOrEqual(t, cur, 1)
		assert.LessOrEqual(t, cur, 10)
		prev = cur
	}
}

func TestOriginalityScoreOrthogonalCorpus(t *testing.T) {
	emb := &fakeEmbedder{
		pitchVec:  []float64{1, 0},
		corpusVec: [][]float64{{0, 1}},
	}
	os := analyzer.NewOriginalityScorer(emb, []string{"existing pitch"})

	got := os.Score(context.Background(), "a novel idea")

	assert.Equal(t, domain.RubricOriginality, got.Rubric)
	assert.Equal(t, 10, got.Score)
	assert.Contains(t, got.Reasoning, "0.00")
}

func TestOriginalityScoreIdenticalCorpusMember(t *testing.T) {
	emb := &fakeEmbedder{
		pitchVec:  []float64{1, 2, 3},
		corpusVec: [][]float64{{-1, 0, 0.5}, {1, 2, 3}},
	}
	os := analyzer.NewOriginalityScorer(emb, []string{"a", "b"})

	got := os.Score(context.Background(), "a copied idea")

	// floor is 1, never the sentinel 0
	assert.Equal(t, 1, got.Score)
}

func TestOriginalityScoreDegradesOnEmbedFailure(t *testing.T) {
	emb := &fakeEmbedder{embedErr: errors.New("embedding service down")}
	os := analyzer.NewOriginalityScorer(emb, nil)

	got := os.Score(context.Background(), "a pitch")

	assert.Equal(t, 0, got.Score)
	assert.Contains(t, got.Reasoning, "embedding service down")
}

func TestOriginalityScoreDegradesOnCorpusFailure(t *testing.T) {
	emb := &fakeEmbedder{
		pitchVec: []float64{1, 0},
		batchErr: errors.New("batch limit"),
	}
	os := analyzer.NewOriginalityScorer(emb, nil)

	got := os.Score(context.Background(), "a pitch")

	assert.Equal(t, 0, got.Score)
	assert.Contains(t, got.Reasoning, "batch limit")
}
