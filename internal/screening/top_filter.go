package screening

import (
	"context"
	"fmt"
	"strconv"
)

type topFilter struct {
	enabled bool
	reason  string
	top     int
}

// NewTop creates a filter that keeps only the top best candidates.
// A zero top leaves the filter disabled.
func NewTop(top int) Filter {
	f := &topFilter{enabled: true, top: top}
	if top == 0 {
		f.Disable("top is not set")
	}
	return f
}

func (f *topFilter) Name() string { return "top" }

func (f *topFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *topFilter) IsEnabled() bool { return f.enabled }

func (f *topFilter) Validate() error {
	if f.top < 0 {
		return fmt.Errorf("top must not be negative, got %d", f.top)
	}
	return nil
}

func (f *topFilter) Apply(_ context.Context, r *Ranking) (*Ranking, Step, error) {
	initial := r.Len()
	if initial <= f.top {
		return r, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	r.Items = r.Items[:f.top]
	return r, Step{Initial: initial, Dropped: initial - f.top, Left: r.Len()}, nil
}

func (f *topFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.enabled,
		Reason:  f.reason,
		Details: map[string]string{"top": strconv.Itoa(f.top)},
	}
}
