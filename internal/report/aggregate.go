package report

import (
	"math"
	"slices"
	"strings"

	"aligncheck/internal/logging"

	"github.com/google/uuid"
)

// Defaults applied by NewAggregator.
const (
	DefaultErrorPenalty        = 0.8
	DefaultReviewThreshold     = 0.8
	DefaultMaxRecommendedSteps = 3
)

// Aggregator turns check results into a Report.
type Aggregator struct {
	rules               []Rule
	errorPenalty        float64
	reviewThreshold     float64
	maxRecommendedSteps int
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithRules replaces the keyword table. An empty slice keeps the defaults.
func WithRules(rules []Rule) Option {
	return func(a *Aggregator) {
		if len(rules) > 0 {
			a.rules = rules
		}
	}
}

// WithErrorPenalty sets the multiplier applied when any check errored.
func WithErrorPenalty(p float64) Option {
	return func(a *Aggregator) { a.errorPenalty = p }
}

// WithReviewThreshold sets the success rate below which a detailed review is advised.
func WithReviewThreshold(t float64) Option {
	return func(a *Aggregator) { a.reviewThreshold = t }
}

// WithMaxRecommendedSteps caps how many recommendations are copied into next steps.
func WithMaxRecommendedSteps(n int) Option {
	return func(a *Aggregator) { a.maxRecommendedSteps = n }
}

// NewAggregator returns an Aggregator with the default table and thresholds.
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		rules:               DefaultRules(),
		errorPenalty:        DefaultErrorPenalty,
		reviewThreshold:     DefaultReviewThreshold,
		maxRecommendedSteps: DefaultMaxRecommendedSteps,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate builds the report for one run.
func (a *Aggregator) Aggregate(results []Result) Report {
	t := Count(results)
	rate := SuccessRate(t)
	recs := a.Recommend(results)

	r := Report{
		RunID:           uuid.NewString(),
		Tally:           t,
		SuccessRate:     rate,
		AlignmentScore:  Score(t, a.errorPenalty),
		Recommendations: recs,
		NextSteps:       a.NextSteps(t, recs),
		Results:         results,
	}

	logging.Get(logging.CategoryReport).With("run_id", r.RunID).Info(
		"Aggregated %d results: pass=%d fail=%d error=%d skip=%d score=%.1f",
		t.Total, t.Passed, t.Failures, t.Errors, t.Skipped, r.AlignmentScore)
	return r
}

// Count tallies outcomes. Unknown outcomes count toward Total only.
func Count(results []Result) Tally {
	t := Tally{Total: len(results)}
	for _, r := range results {
		switch r.Outcome {
		case OutcomePass:
			t.Passed++
		case OutcomeFail:
			t.Failures++
		case OutcomeError:
			t.Errors++
		case OutcomeSkip:
			t.Skipped++
		}
	}
	return t
}

// SuccessRate is (total - failures - errors) / max(total, 1).
// Skips count as successes.
func SuccessRate(t Tally) float64 {
	denom := t.Total
	if denom < 1 {
		denom = 1
	}
	return float64(t.Total-t.Failures-t.Errors) / float64(denom)
}

// Score converts a tally to the 0-100 alignment score, applying penalty
// when any check errored, rounded to one decimal with ties to even
// (6.25 -> 6.2, 18.75 -> 18.8).
func Score(t Tally, penalty float64) float64 {
	score := SuccessRate(t) * 100
	if t.Errors > 0 {
		score *= penalty
	}
	score = math.RoundToEven(score*10) / 10
	return math.Max(0, math.Min(100, score))
}

// Recommend maps failing and erroring checks to recommendation text.
// Failures are visited before errors, each group sorted by check name.
// Each check takes the first rule whose keyword appears in its name;
// each rule contributes at most once, in visiting order.
func (a *Aggregator) Recommend(results []Result) []string {
	recs := []string{}
	seen := make(map[string]bool)
	for _, r := range attentionOrder(results) {
		rule, ok := a.match(r.Check)
		if !ok {
			logging.ReportDebug("No recommendation for %s", r.Check)
			continue
		}
		if seen[rule.Keyword] {
			continue
		}
		seen[rule.Keyword] = true
		recs = append(recs, rule.Text)
	}
	return recs
}

// attentionOrder returns the failed results sorted by name followed by the
// errored results sorted by name.
func attentionOrder(results []Result) []Result {
	var failed, errored []Result
	for _, r := range results {
		switch r.Outcome {
		case OutcomeFail:
			failed = append(failed, r)
		case OutcomeError:
			errored = append(errored, r)
		}
	}
	byName := func(a, b Result) int { return strings.Compare(a.Check, b.Check) }
	slices.SortStableFunc(failed, byName)
	slices.SortStableFunc(errored, byName)
	return append(failed, errored...)
}

func (a *Aggregator) match(check string) (Rule, bool) {
	for _, rule := range a.rules {
		if rule.Keyword != "" && strings.Contains(check, rule.Keyword) {
			return rule, true
		}
	}
	return Rule{}, false
}

// NextSteps lists the advisories that apply to t followed by the leading
// recommendations.
func (a *Aggregator) NextSteps(t Tally, recs []string) []string {
	steps := []string{}
	if t.Errors > 0 {
		steps = append(steps, StepFixSchema)
	}
	if t.Failures > 0 {
		steps = append(steps, StepAddressGaps)
	}
	if SuccessRate(t) < a.reviewThreshold {
		steps = append(steps, StepDetailedReview)
	}

	n := a.maxRecommendedSteps
	if n > len(recs) {
		n = len(recs)
	}
	if n > 0 {
		steps = append(steps, recs[:n]...)
	}
	return steps
}
