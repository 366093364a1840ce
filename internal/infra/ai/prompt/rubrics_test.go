package prompt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/pitchlens/internal/domain/pitch"
	"github.com/bryanwahyu/pitchlens/internal/infra/ai/prompt"
)

func TestInstructionsCoverLLMRubrics(t *testing.T) {
	ins := prompt.Instructions()

	require.Len(t, ins, 3)
	for _, rb := range []domain.Rubric{domain.RubricClarity, domain.RubricTeamStrength, domain.RubricMarketFit} {
		text, ok := ins[rb]
		require.True(t, ok, rb)
		// every instruction pins the structured reply contract
		assert.Contains(t, text, "'score'")
		assert.Contains(t, text, "'reasoning'")
		assert.Contains(t, text, "1 to 10")
	}

	// originality is embedding-based, never prompt-scored
	_, ok := ins[domain.RubricOriginality]
	assert.False(t, ok)
}
