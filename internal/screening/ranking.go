package screening

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/candidate"
	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/scoring"
)

// DefaultConcurrency bounds parallel matches when none is configured.
const DefaultConcurrency = 4

// Matcher scores one profile against a job description.
type Matcher interface {
	Match(ctx context.Context, profile *candidate.Profile, jobText string) *scoring.MatchResult
}

// Ranking is an ordered list of match results for one job, best first.
type Ranking struct {
	Items []*scoring.MatchResult
}

func (r *Ranking) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Items)
}

// IDs returns candidate ids in ranking order.
func (r *Ranking) IDs() []string {
	ids := make([]string, 0, r.Len())
	if r == nil {
		return ids
	}
	for _, item := range r.Items {
		ids = append(ids, candidateID(item))
	}
	return ids
}

// Exclude removes every item drop reports true for and returns the removed ids.
func (r *Ranking) Exclude(drop func(*scoring.MatchResult) bool) []string {
	kept := make([]*scoring.MatchResult, 0, len(r.Items))
	excluded := make([]string, 0)
	for _, item := range r.Items {
		if drop(item) {
			excluded = append(excluded, candidateID(item))
			continue
		}
		kept = append(kept, item)
	}
	r.Items = kept
	return excluded
}

// Score matches every profile against jobText with at most concurrency
// matches in flight and returns them sorted by score, then candidate id.
func Score(ctx context.Context, m Matcher, profiles []*candidate.Profile, jobText string, concurrency int) (*Ranking, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]*scoring.MatchResult, len(profiles))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, profile := range profiles {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = m.Match(ctx, profile, jobText)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("score candidates: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return candidateID(results[i]) < candidateID(results[j])
	})

	return &Ranking{Items: results}, nil
}

func candidateID(r *scoring.MatchResult) string {
	if r == nil || r.Candidate == nil {
		return ""
	}
	return r.Candidate.ID
}
