package pitch

import "context"

// RubricResult is the structured reply of the text-scoring service
type RubricResult struct {
	Score     int    `json:"score"`
	Reasoning string `json:"reasoning"`
}

// TextScorer port (interface for the LLM text-scoring service)
type TextScorer interface {
	Evaluate(ctx context.Context, instruction, text string) (RubricResult, error)
}

// Embedder port (interface for the similarity/embedding service)
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
}

// Extractor port (interface for stored-document text extraction)
type Extractor interface {
	Extract(ctx context.Context, ref string) (string, error)
}

// Vault port (interface for pitch content storage)
type Vault interface {
	Put(ctx context.Context, key string, content []byte) (string, error)
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// Prover port (interface for attestation token generation)
type Prover interface {
	Generate(ctx context.Context, in ProofInputs) (string, error)
}

// Ledger port (interface for durable report submission)
type Ledger interface {
	Submit(ctx context.Context, sub Submission) (Receipt, error)
}

// Repository port (interface for evaluation persistence and queries)
type Repository interface {
	Save(ctx context.Context, e *Evaluation) error
	Get(ctx context.Context, tenant string, id RunID) (*Evaluation, error)
	Latest(ctx context.Context, tenant string, limit int) ([]*Evaluation, error)
	Summary(ctx context.Context, tenant string, sinceDays int) (Summary, error)
}
