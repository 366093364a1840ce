package prover

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	domain "github.com/bryanwahyu/pitchlens/internal/domain/pitch"
)

// Generator derives an attestation token from a report's declared public
// inputs: the hex-encoded sha256 of their canonical JSON encoding. The
// token is opaque to every consumer; swapping in a real proving backend
// only has to honor the same port.
type Generator struct{}

func New() *Generator { return &Generator{} }

// Generate returns a deterministic token for the given public inputs.
func (g *Generator) Generate(_ context.Context, in domain.ProofInputs) (string, error) {
	// struct marshalling keeps field order fixed, so the digest is stable
	b, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("failed to encode public inputs: %w", err)
	}
	sum := sha256.Sum256(b)
	return "0x" + hex.EncodeToString(sum[:]), nil
}
