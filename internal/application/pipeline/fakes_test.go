package pipeline_test

import (
	"context"
	"errors"
	"sync"
	"time"

	domain "github.com/bryanwahyu/pitchlens/internal/domain/pitch"
)

type fakeVault struct {
	calls int
	err   error
	keys  []string
}

func (f *fakeVault) Put(_ context.Context, key string, _ []byte) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	return key, nil
}

func (f *fakeVault) Fetch(_ context.Context, _ string) ([]byte, error) {
	return nil, errors.New("not implemented")
}

type fakeProver struct {
	calls int
	err   error
	token string
	last  domain.ProofInputs
}

func (f *fakeProver) Generate(_ context.Context, in domain.ProofInputs) (string, error) {
	f.calls++
	f.last = in
	if f.err != nil {
		return "", f.err
	}
	return f.token, nil
}

type fakeLedger struct {
	calls int
	err   error
	last  domain.Submission
}

func (f *fakeLedger) Submit(_ context.Context, sub domain.Submission) (domain.Receipt, error) {
	f.calls++
	f.last = sub
	if f.err != nil {
		return domain.Receipt{}, f.err
	}
	return domain.Receipt{
		ID:         "receipt-1",
		TxHash:     "0xfeed",
		RecordedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}, nil
}

// fakeTextScorer is called concurrently by the scorer fan-out.
type fakeTextScorer struct {
	mu      sync.Mutex
	results map[string]domain.RubricResult
	calls   int
}

func (f *fakeTextScorer) Evaluate(_ context.Context, instruction, _ string) (domain.RubricResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if res, ok := f.results[instruction]; ok {
		return res, nil
	}
	return domain.RubricResult{}, errors.New("unexpected instruction")
}

type fakeEmbedder struct {
	pitchVec  []float64
	corpusVec [][]float64
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) ([]float64, error) {
	return f.pitchVec, nil
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, _ []string) ([][]float64, error) {
	return f.corpusVec, nil
}

type fakeExtractor struct {
	calls int
	err   error
	text  string
}

func (f *fakeExtractor) Extract(_ context.Context, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}
