package analyzer

import (
	"context"
	"fmt"
	"math"

	domain "github.com/bryanwahyu/pitchlens/internal/domain/pitch"
)

// ReferenceCorpus is the fixed set of exemplar pitches the originality score
// compares against. In a larger deployment this would come from a vector
// store keyed per fund or program.
var ReferenceCorpus = []string{
	"Our decentralized finance protocol revolutionizes lending and borrowing on blockchain.",
	"AI-powered medical diagnostics for early disease detection using patient data.",
	"A platform connecting artists and fans in the metaverse through NFTs.",
	"Revolutionizing retail with AR/VR shopping experiences.",
	"Building a new social network focused on privacy and user ownership of data.",
	"A sustainable energy solution leveraging advanced solar panel technology.",
}

// OriginalityScorer wraps the embedding service to produce the originality
// component: the pitch is embedded alongside the reference corpus and the
// maximum cosine similarity is mapped onto [1,10].
type OriginalityScorer struct {
	embedder domain.Embedder
	corpus   []string
}

func NewOriginalityScorer(embedder domain.Embedder, corpus []string) *OriginalityScorer {
	if len(corpus) == 0 {
		corpus = ReferenceCorpus
	}
	return &OriginalityScorer{embedder: embedder, corpus: corpus}
}

// Score embeds the truncated text and the corpus, then maps the maximum
// pairwise similarity m to max(1, round(10 - 9m)): similarity 0 scores 10,
// similarity 1 scores 1. The floor is 1, never 0. Low originality is still
// a score; the sentinel 0 is reserved for embedding failures.
func (s *OriginalityScorer) Score(ctx context.Context, text string) domain.ComponentScore {
	pv, err := s.embedder.Embed(ctx, Truncate(text))
	if err != nil {
		return degraded(domain.RubricOriginality, fmt.Sprintf("pitch embedding failed: %v", err))
	}
	cvs, err := s.embedder.EmbedBatch(ctx, s.corpus)
	if err != nil {
		return degraded(domain.RubricOriginality, fmt.Sprintf("corpus embedding failed: %v", err))
	}

	maxSim := 0.0
	for _, cv := range cvs {
		sim, err := cosineSimilarity(pv, cv)
		if err != nil {
			return degraded(domain.RubricOriginality, fmt.Sprintf("similarity compute failed: %v", err))
		}
		if sim > maxSim {
			maxSim = sim
		}
	}

	return domain.ComponentScore{
		Rubric:    domain.RubricOriginality,
		Score:     ScaleSimilarity(maxSim),
		Reasoning: fmt.Sprintf("Pitch similarity to existing concepts: %.2f. Lower similarity indicates higher originality.", maxSim),
	}
}

// ScaleSimilarity maps a cosine similarity in [0,1] to a score in [1,10].
func ScaleSimilarity(m float64) int {
	score := int(math.Round(10 - 9*m))
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}

func cosineSimilarity(a, b []float64) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, fmt.Errorf("vector length mismatch: %d vs %d", len(a), len(b))
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0, fmt.Errorf("zero-magnitude vector")
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}
