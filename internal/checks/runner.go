package checks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aligncheck/internal/logging"
	"aligncheck/internal/report"
)

// DefaultTimeout bounds a single check when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// SlowThreshold is the duration past which a check is logged as slow.
const SlowThreshold = 2 * time.Second

// MessageUnavailable is recorded for every check when there is no data source.
const MessageUnavailable = "database not available"

// Runner executes checks one after another against a shared Querier.
type Runner struct {
	checks  []Check
	timeout time.Duration
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithTimeout sets the per-check deadline. Non-positive values keep the default.
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// NewRunner returns a Runner over checks.
func NewRunner(checks []Check, opts ...RunnerOption) *Runner {
	r := &Runner{checks: checks, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every check in order and returns one result per check.
// A nil q records every check as skipped. A failing, erroring or panicking
// check never stops the rest.
func (r *Runner) Run(ctx context.Context, q Querier) []report.Result {
	timer := logging.StartTimer(logging.CategoryChecks, "Run")
	defer timer.Stop()

	results := make([]report.Result, 0, len(r.checks))
	if q == nil {
		logging.ChecksWarn("No data source, skipping %d checks", len(r.checks))
		for _, c := range r.checks {
			results = append(results, report.Result{
				Check:    c.Name,
				Category: c.Category,
				Outcome:  report.OutcomeSkip,
				Message:  MessageUnavailable,
			})
		}
		return results
	}

	for _, c := range r.checks {
		ct := logging.StartTimer(logging.CategoryChecks, c.Name)
		err := r.runOne(ctx, c, q)
		res := classify(c, err)
		res.Duration = ct.StopWithThreshold(SlowThreshold)

		logging.Checks("%s: %s (%v)", c.Name, res.Outcome, res.Duration)
		if res.Message != "" {
			logging.ChecksDebug("%s: %s", c.Name, res.Message)
		}
		results = append(results, res)
	}
	return results
}

func (r *Runner) runOne(ctx context.Context, c Check, q Querier) (err error) {
	cctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	defer func() {
		if p := recover(); p != nil {
			logging.Get(logging.CategoryChecks).Error("%s panicked: %v", c.Name, p)
			err = fmt.Errorf("panic: %v", p)
		}
	}()

	if c.Run == nil {
		return Skip("no implementation")
	}
	return c.Run(cctx, q)
}

func classify(c Check, err error) report.Result {
	res := report.Result{Check: c.Name, Category: c.Category}

	var ae *AssertionError
	switch {
	case err == nil:
		res.Outcome = report.OutcomePass
	case errors.As(err, &ae):
		res.Outcome = report.OutcomeFail
		res.Message = ae.Error()
	case errors.Is(err, ErrSkip):
		res.Outcome = report.OutcomeSkip
		res.Message = err.Error()
	default:
		res.Outcome = report.OutcomeError
		res.Message = err.Error()
	}
	return res
}
