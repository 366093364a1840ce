package evaluations

import (
	"context"
	"time"

	"github.com/bryanwahyu/pitchlens/internal/application/pipeline"
	domain "github.com/bryanwahyu/pitchlens/internal/domain/pitch"
)

// Service implements the use-cases around pitch evaluations.
// Service is designed to be used concurrently and is thread-safe.
type Service struct {
	Engine *pipeline.Engine
	Repo   domain.Repository
	Clock  Clock
}

// Clock abstraction so the service is easy to test
type Clock interface {
	Now() time.Time
}

// EvaluateCommand triggers one evaluation run
type EvaluateCommand struct {
	Tenant      string
	PitchID     string
	Content     string
	DocumentRef string
}

// Evaluate runs the pipeline to its terminal state and records failed runs
// in the repository (completed runs are recorded by the ledger during the
// commit stage). The returned outcome is the pipeline's terminal record;
// the error only reports persistence problems.
func (s *Service) Evaluate(ctx context.Context, cmd EvaluateCommand) (pipeline.Outcome, error) {
	in := domain.Input{
		PitchID:     cmd.PitchID,
		Content:     cmd.Content,
		DocumentRef: cmd.DocumentRef,
	}

	out := s.Engine.Run(ctx, cmd.Tenant, in)

	if out.Status == domain.StatusFailed {
		e := &domain.Evaluation{
			RunID:       out.RunID,
			TenantID:    cmd.Tenant,
			PitchID:     cmd.PitchID,
			EvaluatedAt: s.Clock.Now(),
			Status:      domain.StatusFailed,
			Error:       out.Error,
		}
		if err := s.Repo.Save(ctx, e); err != nil {
			return out, err
		}
	}

	return out, nil
}

// Latest returns the N most recent evaluations for a tenant
func (s *Service) Latest(ctx context.Context, tenant string, limit int) ([]*domain.Evaluation, error) {
	return s.Repo.Latest(ctx, tenant, limit)
}

// Get returns one evaluation by run id
func (s *Service) Get(ctx context.Context, tenant string, id domain.RunID) (*domain.Evaluation, error) {
	return s.Repo.Get(ctx, tenant, id)
}

// Summary recaps evaluation results over the last N days
func (s *Service) Summary(ctx context.Context, tenant string, sinceDays int) (domain.Summary, error) {
	return s.Repo.Summary(ctx, tenant, sinceDays)
}
