// Package report aggregates check outcomes into an alignment report.
//
// The aggregator tallies outcomes, derives a 0-100 alignment score, maps
// failing checks to canned recommendations, and builds the next-step list.
// Nothing here touches the database; it works on finished Results only.
package report

import "time"

// Outcome is the result class of a single check.
type Outcome string

const (
	OutcomePass  Outcome = "pass"
	OutcomeFail  Outcome = "fail"
	OutcomeError Outcome = "error"
	OutcomeSkip  Outcome = "skip"
)

// Result is the outcome of one check in one run.
type Result struct {
	Check    string        `json:"check"`
	Category string        `json:"category,omitempty"`
	Outcome  Outcome       `json:"outcome"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// Tally counts outcomes across a run. Total includes skips.
type Tally struct {
	Total    int `json:"total_tests"`
	Passed   int `json:"passed"`
	Failures int `json:"failures"`
	Errors   int `json:"errors"`
	Skipped  int `json:"skipped"`
}

// Rule maps a check-name keyword to recommendation text.
type Rule struct {
	Keyword string `json:"keyword"`
	Text    string `json:"text"`
}

// Report is produced once per run and never persisted.
type Report struct {
	RunID           string   `json:"run_id"`
	Tally           Tally    `json:"test_results"`
	SuccessRate     float64  `json:"success_rate"`
	AlignmentScore  float64  `json:"alignment_score"`
	Recommendations []string `json:"recommendations"`
	NextSteps       []string `json:"next_steps"`
	Results         []Result `json:"results,omitempty"`
}

// Fixed next-step advisories.
const (
	StepFixSchema      = "Fix database connection and schema issues"
	StepAddressGaps    = "Address philosophical alignment gaps identified in test failures"
	StepDetailedReview = "Conduct detailed review of AIME philosophical implementation"
)

// DefaultRules returns the built-in keyword table, in match order.
func DefaultRules() []Rule {
	return []Rule{
		{Keyword: "indigenous_knowledge", Text: "Consider adding more Indigenous knowledge content with proper cultural protocols"},
		{Keyword: "mentorship", Text: "Implement or enhance mentorship relationship tracking systems"},
		{Keyword: "accessibility", Text: "Improve accessibility features and content format diversity"},
		{Keyword: "cultural_safety", Text: "Strengthen cultural safety protocols and review processes"},
	}
}
