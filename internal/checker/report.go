package checker

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/positronikal/standards-check/internal/validate"
)

// Report aggregates validation results for one repository
type Report struct {
	Repository string            `json:"repository"`
	Passed     []validate.Result `json:"passed"`
	Failed     []validate.Result `json:"failed"`
	Warnings   []validate.Result `json:"warnings"`
	Errors     []validate.Result `json:"errors"`
}

// Summary holds the aggregate counts of a report
type Summary struct {
	TotalChecks int  `json:"total_checks"`
	Passed      int  `json:"passed"`
	Failed      int  `json:"failed"`
	Warnings    int  `json:"warnings"`
	Errors      int  `json:"errors"`
	IsPassing   bool `json:"is_passing"`
}

// NewReport creates an empty report for the repository at path
func NewReport(path string) *Report {
	return &Report{
		Repository: path,
		Passed:     []validate.Result{},
		Failed:     []validate.Result{},
		Warnings:   []validate.Result{},
		Errors:     []validate.Result{},
	}
}

// Merge folds validator results into the report by status
func (r *Report) Merge(results []validate.Result) {
	for _, res := range results {
		switch res.Status {
		case validate.StatusPass:
			r.Passed = append(r.Passed, res)
		case validate.StatusFail:
			r.Failed = append(r.Failed, res)
		case validate.StatusWarning:
			r.Warnings = append(r.Warnings, res)
		}
	}
}

// AddError records an error raised while running a validator
func (r *Report) AddError(check, message string) {
	r.Errors = append(r.Errors, validate.Result{
		Check:   check,
		Status:  validate.StatusFail,
		Message: message,
	})
}

// Results returns every result in the report, failures first
func (r *Report) Results() []validate.Result {
	out := make([]validate.Result, 0,
		len(r.Failed)+len(r.Errors)+len(r.Warnings)+len(r.Passed))
	out = append(out, r.Failed...)
	out = append(out, r.Errors...)
	out = append(out, r.Warnings...)
	out = append(out, r.Passed...)
	return out
}

// Passing reports whether the repository passed validation
func (r *Report) Passing() bool {
	return len(r.Failed) == 0 && len(r.Errors) == 0
}

// Summary returns the aggregate counts
func (r *Report) Summary() Summary {
	return Summary{
		TotalChecks: len(r.Passed) + len(r.Failed),
		Passed:      len(r.Passed),
		Failed:      len(r.Failed),
		Warnings:    len(r.Warnings),
		Errors:      len(r.Errors),
		IsPassing:   r.Passing(),
	}
}

// jsonReport is the wire shape of the JSON output
type jsonReport struct {
	Repository string            `json:"repository"`
	Summary    Summary           `json:"summary"`
	Passed     []validate.Result `json:"passed"`
	Failed     []validate.Result `json:"failed"`
	Warnings   []validate.Result `json:"warnings"`
	Errors     []validate.Result `json:"errors"`
}

// WriteJSON renders the report as indented JSON
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{
		Repository: r.Repository,
		Summary:    r.Summary(),
		Passed:     r.Passed,
		Failed:     r.Failed,
		Warnings:   r.Warnings,
		Errors:     r.Errors,
	})
}

// reportStyles holds the lipgloss styles for the text report
type reportStyles struct {
	Banner  lipgloss.Style
	Section lipgloss.Style
	Fail    lipgloss.Style
	Warn    lipgloss.Style
	Err     lipgloss.Style
	Pass    lipgloss.Style
	Verdict lipgloss.Style
}

func defaultReportStyles() reportStyles {
	return reportStyles{
		Banner:  lipgloss.NewStyle().Bold(true),
		Section: lipgloss.NewStyle().Bold(true),
		Fail:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Err:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Pass:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Verdict: lipgloss.NewStyle().Bold(true),
	}
}

const bannerRule = "============================================================"

// Write renders the text report. verbose additionally lists passing checks.
func (r *Report) Write(w io.Writer, verbose bool) {
	styles := defaultReportStyles()
	summary := r.Summary()

	fmt.Fprintln(w)
	fmt.Fprintln(w, bannerRule)
	fmt.Fprintln(w, styles.Banner.Render("POSITRONIKAL STANDARDS VALIDATION REPORT"))
	fmt.Fprintln(w, bannerRule)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "  Total Checks: %d\n", summary.TotalChecks)
	fmt.Fprintf(w, "  Passed: %d\n", summary.Passed)
	fmt.Fprintf(w, "  Failed: %d\n", summary.Failed)
	fmt.Fprintf(w, "  Warnings: %d\n", summary.Warnings)
	fmt.Fprintf(w, "  Errors: %d\n", summary.Errors)

	writeSection := func(style lipgloss.Style, title string, results []validate.Result) {
		if len(results) == 0 {
			return
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, styles.Section.Render(
			fmt.Sprintf("%s (%d):", title, len(results))))
		for _, res := range results {
			fmt.Fprintf(w, "  - %s\n",
				style.Render(fmt.Sprintf("%s: %s", res.Check, res.Message)))
		}
	}

	writeSection(styles.Fail, "FAILED CHECKS", r.Failed)
	writeSection(styles.Warn, "WARNINGS", r.Warnings)
	writeSection(styles.Err, "ERRORS", r.Errors)
	if verbose {
		writeSection(styles.Pass, "PASSED CHECKS", r.Passed)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, bannerRule)
	if r.Passing() {
		fmt.Fprintln(w, styles.Verdict.Render("VALIDATION PASSED"))
	} else {
		fmt.Fprintln(w, styles.Verdict.Render("VALIDATION FAILED"))
	}
	fmt.Fprintln(w, bannerRule)
	fmt.Fprintln(w)
}

// String renders the plain text report without verbose passes
func (r *Report) String() string {
	var b strings.Builder
	r.Write(&b, false)
	return b.String()
}
