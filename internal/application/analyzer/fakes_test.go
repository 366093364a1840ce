package analyzer_test

import (
	"context"
	"errors"
	"sync"

	domain "github.com/bryanwahyu/pitchlens/internal/domain/pitch"
)

// fakeTextScorer replies per instruction; unknown instructions error.
// Calls arrive concurrently from the scorer fan-out, hence the mutex.
type fakeTextScorer struct {
	mu      sync.Mutex
	results map[string]domain.RubricResult
	errs    map[string]error
	calls   int
	lastLen int
}

func (f *fakeTextScorer) Evaluate(_ context.Context, instruction, text string) (domain.RubricResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastLen = len(text)
	if err, ok := f.errs[instruction]; ok {
		return domain.RubricResult{}, err
	}
	if res, ok := f.results[instruction]; ok {
		return res, nil
	}
	return domain.RubricResult{}, errors.New("unexpected instruction")
}

// fakeEmbedder returns canned vectors.
type fakeEmbedder struct {
	pitchVec  []float64
	corpusVec [][]float64
	embedErr  error
	batchErr  error
	calls     int
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) ([]float64, error) {
	f.calls++
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	return f.pitchVec, nil
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float64, error) {
	f.calls++
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	if f.corpusVec != nil {
		return f.corpusVec, nil
	}
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = f.pitchVec
	}
	return out, nil
}

// fakeExtractor resolves refs from a map.
type fakeExtractor struct {
	docs  map[string]string
	calls int
}

func (f *fakeExtractor) Extract(_ context.Context, ref string) (string, error) {
	f.calls++
	text, ok := f.docs[ref]
	if !ok {
		return "", domain.ErrNotFound
	}
	return text, nil
}
