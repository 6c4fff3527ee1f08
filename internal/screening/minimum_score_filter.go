package screening

import (
	"context"
	"fmt"

	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/scoring"
)

type minimumScoreFilter struct {
	enabled bool
	reason  string
	minimum float64
}

// NewMinimumScore creates a filter that drops candidates scoring below minimum.
// A zero minimum leaves the filter disabled.
func NewMinimumScore(minimum float64) Filter {
	f := &minimumScoreFilter{enabled: true, minimum: minimum}
	if minimum == 0 {
		f.Disable("minimum score is not set")
	}
	return f
}

func (f *minimumScoreFilter) Name() string { return "minimum_score" }

func (f *minimumScoreFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *minimumScoreFilter) IsEnabled() bool { return f.enabled }

func (f *minimumScoreFilter) Validate() error {
	if f.minimum < 0 || f.minimum > 100 {
		return fmt.Errorf("minimum score must be within [0, 100], got %.2f", f.minimum)
	}
	return nil
}

func (f *minimumScoreFilter) Apply(_ context.Context, r *Ranking) (*Ranking, Step, error) {
	initial := r.Len()
	excluded := r.Exclude(func(m *scoring.MatchResult) bool {
		return m.Score < f.minimum
	})

	return r, Step{Initial: initial, Dropped: len(excluded), Left: r.Len()}, nil
}

func (f *minimumScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.enabled,
		Reason:  f.reason,
		Details: map[string]string{"minimum_score": fmt.Sprintf("%.2f", f.minimum)},
	}
}
