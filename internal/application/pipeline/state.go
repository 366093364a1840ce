package pipeline

import (
	domain "github.com/bryanwahyu/pitchlens/internal/domain/pitch"
)

// Phase enum for the run state machine. Failed is absorbing: once entered,
// no later stage runs.
type Phase string

const (
	PhasePending   Phase = "pending"
	PhaseAcquired  Phase = "acquired"
	PhaseAnalyzed  Phase = "analyzed"
	PhaseAttested  Phase = "attested"
	PhaseCommitted Phase = "committed"
	PhaseFinalized Phase = "finalized"
	PhaseFailed    Phase = "failed"
)

// State is the mutable record threaded through one pipeline run. It is
// created with only the input populated, owned exclusively by the engine,
// never shared across runs and never rolled back.
type State struct {
	RunID          domain.RunID
	Tenant         string
	Input          domain.Input
	StorageRef     string
	Report         *domain.AnalysisReport
	Token          string
	Receipt        *domain.Receipt
	VaultProcessed bool
	Phase          Phase
	Err            error
}

func (s *State) fail(err error) {
	s.Phase = PhaseFailed
	s.Err = err
}

// Failed reports whether the run has entered the absorbing failure state.
func (s *State) Failed() bool {
	return s.Phase == PhaseFailed
}

// PrivacyFlags surface the secure-processing marker and the attestation
// token on the terminal record.
type PrivacyFlags struct {
	VaultProcessed   bool   `json:"vault_processed"`
	AttestationToken string `json:"attestation_token"`
}

// Outcome is the terminal record of a run. A failed run carries only
// status, identifiers and the error; a completed run carries the scores,
// privacy flags and the ledger receipt.
type Outcome struct {
	Status          domain.Status   `json:"status"`
	PitchID         string          `json:"pitch_id"`
	RunID           domain.RunID    `json:"run_id,omitempty"`
	Error           string          `json:"error,omitempty"`
	OverallScore    *int            `json:"overall_score,omitempty"`
	ComponentScores map[string]int  `json:"component_scores,omitempty"`
	Degraded        bool            `json:"degraded,omitempty"`
	PrivacyFlags    *PrivacyFlags   `json:"privacy_flags,omitempty"`
	LedgerReceipt   *domain.Receipt `json:"ledger_receipt,omitempty"`
}
