package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Title heads the text report.
const Title = "AIME Knowledge Universe - Philosophical Alignment Tests"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	goodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F2CC60"))
	badStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
)

// scoreStyle picks a colour band for the alignment score.
func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 80:
		return goodStyle
	case score >= 50:
		return warnStyle
	default:
		return badStyle
	}
}

func outcomeLabel(o Outcome) string {
	label := "[" + strings.ToUpper(string(o)) + "]"
	switch o {
	case OutcomeFail, OutcomeError:
		return badStyle.Render(label)
	case OutcomeSkip:
		return mutedStyle.Render(label)
	default:
		return goodStyle.Render(label)
	}
}

// WriteText renders the human-readable report.
func WriteText(w io.Writer, r Report) error {
	var b strings.Builder
	wf := func(f string, a ...any) { fmt.Fprintf(&b, f, a...) }

	wf("%s\n", titleStyle.Render(Title))
	wf("%s\n", strings.Repeat("=", 60))

	wf("\n%s\n", sectionStyle.Render("Test Results:"))
	wf("  Total Tests: %d\n", r.Tally.Total)
	wf("  Passed: %d  Failed: %d  Errors: %d  Skipped: %d\n",
		r.Tally.Passed, r.Tally.Failures, r.Tally.Errors, r.Tally.Skipped)
	wf("  Success Rate: %.1f%%\n", r.SuccessRate*100)
	wf("  Alignment Score: %s\n", scoreStyle(r.AlignmentScore).Render(fmt.Sprintf("%.1f/100", r.AlignmentScore)))

	var attention []Result
	for _, res := range r.Results {
		if res.Outcome != OutcomePass {
			attention = append(attention, res)
		}
	}
	if len(attention) > 0 {
		wf("\n%s\n", sectionStyle.Render("Checks Needing Attention:"))
		for _, res := range attention {
			if res.Message != "" {
				wf("  %s %s: %s\n", outcomeLabel(res.Outcome), res.Check, res.Message)
			} else {
				wf("  %s %s\n", outcomeLabel(res.Outcome), res.Check)
			}
		}
	}

	if len(r.Recommendations) > 0 {
		wf("\n%s\n", sectionStyle.Render("Recommendations:"))
		for i, rec := range r.Recommendations {
			wf("  %d. %s\n", i+1, rec)
		}
	}

	if len(r.NextSteps) > 0 {
		wf("\n%s\n", sectionStyle.Render("Next Steps:"))
		for i, step := range r.NextSteps {
			wf("  %d. %s\n", i+1, step)
		}
	}

	wf("\n%s\n", mutedStyle.Render("Run ID: "+r.RunID))

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON renders the report as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
