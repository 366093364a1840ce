package prover_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/pitchlens/internal/domain/pitch"
	"github.com/bryanwahyu/pitchlens/internal/infra/prover"
)

func TestGenerateIsDeterministic(t *testing.T) {
	g := prover.New()
	in := domain.ProofInputs{PitchID: "pitch-001", Overall: 8, Clarity: 8, Originality: 9}

	a, err := g.Generate(context.Background(), in)
	require.NoError(t, err)
	b, err := g.Generate(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGenerateTokenShape(t *testing.T) {
	g := prover.New()

	token, err := g.Generate(context.Background(), domain.ProofInputs{PitchID: "pitch-001"})
	require.NoError(t, err)

	// 0x prefix + 32-byte sha256 hex
	assert.Len(t, token, 66)
	assert.Equal(t, "0x", token[:2])
}

func TestGenerateBindsPublicInputs(t *testing.T) {
	g := prover.New()
	base := domain.ProofInputs{PitchID: "pitch-001", Overall: 8, Clarity: 8, Originality: 9}

	baseToken, err := g.Generate(context.Background(), base)
	require.NoError(t, err)

	variants := []domain.ProofInputs{
		{PitchID: "pitch-002", Overall: 8, Clarity: 8, Originality: 9},
		{PitchID: "pitch-001", Overall: 7, Clarity: 8, Originality: 9},
		{PitchID: "pitch-001", Overall: 8, Clarity: 7, Originality: 9},
		{PitchID: "pitch-001", Overall: 8, Clarity: 8, Originality: 8},
	}
	for _, v := range variants {
		token, err := g.Generate(context.Background(), v)
		require.NoError(t, err)
		assert.NotEqual(t, baseToken, token, "inputs %+v must change the token", v)
	}
}
