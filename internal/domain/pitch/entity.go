package pitch

import (
	"time"
)

// RunID identifier type for one evaluation run
type RunID string

// Rubric enum
type Rubric string

const (
	RubricClarity      Rubric = "clarity"
	RubricTeamStrength Rubric = "team_strength"
	RubricMarketFit    Rubric = "market_fit"
	RubricOriginality  Rubric = "originality"
)

// Rubrics returns the fixed rubric set in canonical order.
func Rubrics() []Rubric {
	return []Rubric{RubricClarity, RubricTeamStrength, RubricMarketFit, RubricOriginality}
}

// Status enum
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Input carries the pitch to evaluate. Exactly one source must be present;
// when both are set the inline content wins and the document reference is
// ignored.
type Input struct {
	PitchID     string `json:"pitch_id"`
	Content     string `json:"content,omitempty"`
	DocumentRef string `json:"document_ref,omitempty"`
}

// Validate checks the one-source invariant.
func (in Input) Validate() error {
	if in.PitchID == "" {
		return ErrMissingPitchID
	}
	if in.Content == "" && in.DocumentRef == "" {
		return ErrNoSource
	}
	return nil
}

// ComponentScore value object, immutable once produced. Score 0 is the
// sentinel for "could not be computed".
type ComponentScore struct {
	Rubric    Rubric `json:"rubric"`
	Score     int    `json:"score"`
	Reasoning string `json:"reasoning"`
}

// AnalysisReport holds one score per rubric plus the derived overall.
// Degraded is set when any component carries the sentinel score so callers
// can tell a failed component apart from a genuinely low one; the overall
// number itself still averages every component as-is.
type AnalysisReport struct {
	PitchID    string                    `json:"pitch_id"`
	Components map[Rubric]ComponentScore `json:"components"`
	Overall    int                       `json:"overall_score"`
	Degraded   bool                      `json:"degraded,omitempty"`
}

// Component returns the score for one rubric (zero value when absent).
func (r AnalysisReport) Component(rb Rubric) ComponentScore {
	return r.Components[rb]
}

// ProofInputs are the declared public inputs of an attestation: the overall
// plus the clarity and originality components.
type ProofInputs struct {
	PitchID     string `json:"pitch_id"`
	Overall     int    `json:"overall"`
	Clarity     int    `json:"clarity"`
	Originality int    `json:"originality"`
}

// Receipt confirms a ledger submission
type Receipt struct {
	ID         string    `json:"id"`
	TxHash     string    `json:"tx_hash"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Submission is the attested record handed to the ledger
type Submission struct {
	Tenant string
	RunID  RunID
	Report AnalysisReport
	Token  string
}

// Aggregate root: one evaluation run as persisted for auditing and retrieval
type Evaluation struct {
	RunID        RunID     `json:"run_id"`
	TenantID     string    `json:"tenant_id"`
	PitchID      string    `json:"pitch_id"`
	EvaluatedAt  time.Time `json:"evaluated_at"`
	Status       Status    `json:"status"`
	Overall      int       `json:"overall_score"`
	Clarity      int       `json:"clarity"`
	TeamStrength int       `json:"team_strength"`
	MarketFit    int       `json:"market_fit"`
	Originality  int       `json:"originality"`
	Degraded     bool      `json:"degraded"`
	Token        string    `json:"attestation_token,omitempty"`
	ReceiptID    string    `json:"receipt_id,omitempty"`
	TxHash       string    `json:"tx_hash,omitempty"`
	Error        string    `json:"error,omitempty"`
}

// Summary value object for the trailing-window recap endpoint
type Summary struct {
	TotalRuns  int     `json:"total_runs"`
	Completed  int     `json:"completed"`
	Failed     int     `json:"failed"`
	AvgOverall float64 `json:"avg_overall"`
}
