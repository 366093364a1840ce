package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	domain "github.com/bryanwahyu/pitchlens/internal/domain/pitch"
)

// Analyzer is what the analyze stage drives.
type Analyzer interface {
	Analyze(ctx context.Context, in domain.Input) (domain.AnalysisReport, error)
}

// Engine drives one evaluation run through the fixed stage order
// acquire, analyze, attest, commit, finalize. Stages execute strictly in
// order, at most once each, with no retries and no backward transitions; the
// first failure stops stage execution and is preserved in the terminal record.
//
// Engine is safe for concurrent use: each run owns its own State.
type Engine struct {
	Analyzer Analyzer
	Vault    domain.Vault
	Prover   domain.Prover
	Ledger   domain.Ledger
}

type stage struct {
	name string
	fn   func(ctx context.Context, st *State) error
}

// Run executes the five stages over a fresh State and returns the terminal
// record. A stage error marks the state failed, wrapped with the stage name;
// remaining stages are skipped. The State is discarded afterwards.
func (e *Engine) Run(ctx context.Context, tenant string, in domain.Input) Outcome {
	st := &State{
		RunID:  domain.RunID(uuid.New().String()),
		Tenant: tenant,
		Input:  in,
		Phase:  PhasePending,
	}

	stages := []stage{
		{"acquire", e.acquire},
		{"analyze", e.analyze},
		{"attest", e.attest},
		{"commit", e.commit},
	}
	for _, s := range stages {
		if err := s.fn(ctx, st); err != nil {
			st.fail(errors.Wrap(err, s.name))
			break
		}
	}

	return e.Finalize(st)
}

// acquire validates the one-source invariant and associates the raw content
// with an opaque storage reference. Inline content is published to the
// vault; a document reference is reused as-is since the document is already
// stored.
func (e *Engine) acquire(ctx context.Context, st *State) error {
	if err := st.Input.Validate(); err != nil {
		return err
	}

	if st.Input.Content != "" {
		key := fmt.Sprintf("%s/%s/pitch.txt", st.Tenant, st.RunID)
		ref, err := e.Vault.Put(ctx, key, []byte(st.Input.Content))
		if err != nil {
			return errors.Wrap(err, "publish pitch content")
		}
		st.StorageRef = ref
	} else {
		st.StorageRef = st.Input.DocumentRef
	}
	st.Phase = PhaseAcquired
	return nil
}

// analyze invokes the pitch analyzer. Individual component scorers degrade
// internally; only an unresolvable text source fails the run.
func (e *Engine) analyze(ctx context.Context, st *State) error {
	report, err := e.Analyzer.Analyze(ctx, st.Input)
	if err != nil {
		return err
	}
	st.Report = &report
	st.VaultProcessed = true
	st.Phase = PhaseAnalyzed
	return nil
}

// attest derives the attestation token from the report's public inputs.
// Attestation is not best-effort: the ledger only records attested results,
// so a missing token here fails the run.
func (e *Engine) attest(ctx context.Context, st *State) error {
	if st.Report == nil {
		return errors.New("no report to attest")
	}
	token, err := e.Prover.Generate(ctx, domain.ProofInputs{
		PitchID:     st.Report.PitchID,
		Overall:     st.Report.Overall,
		Clarity:     st.Report.Component(domain.RubricClarity).Score,
		Originality: st.Report.Component(domain.RubricOriginality).Score,
	})
	if err != nil {
		return err
	}
	st.Token = token
	st.Phase = PhaseAttested
	return nil
}

// commit submits the attested report to the ledger. Both the report and the
// token are required preconditions; partial commits are disallowed so an
// un-attested score is never recorded as authoritative.
func (e *Engine) commit(ctx context.Context, st *State) error {
	if st.Report == nil || st.Token == "" {
		return errors.New("no attested report to submit")
	}
	receipt, err := e.Ledger.Submit(ctx, domain.Submission{
		Tenant: st.Tenant,
		RunID:  st.RunID,
		Report: *st.Report,
		Token:  st.Token,
	})
	if err != nil {
		return err
	}
	st.Receipt = &receipt
	st.Phase = PhaseCommitted
	return nil
}

// Finalize formats the terminal record. Calling it twice on the same
// terminal state yields identical output.
func (e *Engine) Finalize(st *State) Outcome {
	if st.Failed() {
		return Outcome{
			Status:  domain.StatusFailed,
			PitchID: st.Input.PitchID,
			RunID:   st.RunID,
			Error:   st.Err.Error(),
		}
	}

	components := make(map[string]int, len(st.Report.Components))
	for rb, c := range st.Report.Components {
		components[string(rb)] = c.Score
	}
	overall := st.Report.Overall
	st.Phase = PhaseFinalized

	return Outcome{
		Status:          domain.StatusCompleted,
		PitchID:         st.Input.PitchID,
		RunID:           st.RunID,
		OverallScore:    &overall,
		ComponentScores: components,
		Degraded:        st.Report.Degraded,
		PrivacyFlags: &PrivacyFlags{
			VaultProcessed:   st.VaultProcessed,
			AttestationToken: st.Token,
		},
		LedgerReceipt: st.Receipt,
	}
}
