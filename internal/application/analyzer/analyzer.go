package analyzer

import (
	"context"

	"golang.org/x/sync/errgroup"

	domain "github.com/bryanwahyu/pitchlens/internal/domain/pitch"
)

// Analyzer runs the four component scorers over one pitch and assembles the
// combined report. Component failures degrade to sentinel scores; only a
// missing/unreadable text source is a hard failure, since without text no
// analysis is possible.
type Analyzer struct {
	Rubrics     *RubricScorer
	Originality *OriginalityScorer
	Extractor   domain.Extractor
}

// Analyze resolves the input to text, fans the scorers out concurrently and
// reduces through Aggregate. Inline content takes precedence over a stored
// document reference; extractor errors surface as hard failures.
func (a *Analyzer) Analyze(ctx context.Context, in domain.Input) (domain.AnalysisReport, error) {
	text, err := a.resolveText(ctx, in)
	if err != nil {
		return domain.AnalysisReport{}, err
	}
	text = Truncate(text)

	// The three rubric calls and the originality call are independent;
	// results land in fixed slots so the join needs no lock.
	rubrics := []domain.Rubric{domain.RubricClarity, domain.RubricTeamStrength, domain.RubricMarketFit}
	results := make([]domain.ComponentScore, len(rubrics)+1)

	grp, gctx := errgroup.WithContext(ctx)
	for i, rb := range rubrics {
		grp.Go(func() error {
			results[i] = a.Rubrics.Score(gctx, rb, text)
			return nil
		})
	}
	grp.Go(func() error {
		results[len(rubrics)] = a.Originality.Score(gctx, text)
		return nil
	})
	// scorers degrade instead of erroring, the group only joins
	_ = grp.Wait()

	components := make(map[domain.Rubric]domain.ComponentScore, len(results))
	degraded := false
	for _, c := range results {
		components[c.Rubric] = c
		if c.Score == 0 {
			degraded = true
		}
	}

	return domain.AnalysisReport{
		PitchID:    in.PitchID,
		Components: components,
		Overall:    Aggregate(components),
		Degraded:   degraded,
	}, nil
}

func (a *Analyzer) resolveText(ctx context.Context, in domain.Input) (string, error) {
	if in.Content != "" {
		return in.Content, nil
	}
	if in.DocumentRef != "" {
		return a.Extractor.Extract(ctx, in.DocumentRef)
	}
	return "", domain.ErrNoSource
}
