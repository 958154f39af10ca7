package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/Aman-CERP/compcheck/internal/compat"
)

// ReportRenderer prints a finished report with lipgloss styling.
type ReportRenderer struct {
	out     io.Writer
	styles  Styles
	verbose bool
}

// NewReportRenderer creates a report renderer.
func NewReportRenderer(out io.Writer, noColor, verbose bool) *ReportRenderer {
	return &ReportRenderer{
		out:     out,
		styles:  GetStyles(noColor),
		verbose: verbose,
	}
}

// Render displays the report. Failed non-essential criteria are shown as
// warnings since they do not affect the verdict.
func (r *ReportRenderer) Render(report compat.Report) {
	var rows []string
	for _, c := range compat.AllCriteria {
		res := report.Result(c)
		rows = append(rows, fmt.Sprintf("%s  %-14s %s", r.badge(c, res), c.Title(), compat.Describe(c, res)))
		if r.verbose {
			for _, line := range compat.DetailLines(res.Details) {
				rows = append(rows, r.styles.Dim.Render("                      "+line))
			}
		}
	}

	_, _ = fmt.Fprintln(r.out, r.styles.Header.Render("Windows 11 Compatibility Check"))
	_, _ = fmt.Fprintln(r.out, r.styles.Panel.Render(strings.Join(rows, "\n")))

	verdict := r.styles.Pass.Render("✓ " + report.Verdict())
	if !report.Compatible {
		verdict = r.styles.Fail.Render("✗ " + report.Verdict())
	}
	_, _ = fmt.Fprintf(r.out, "%s  %s\n", verdict,
		r.styles.Label.Render(fmt.Sprintf("%d/%d checks passed", report.Summary.TotalPassed, report.Summary.TotalChecks)))
}

func (r *ReportRenderer) badge(c compat.Criterion, res compat.Result) string {
	switch {
	case res.Status:
		return r.styles.Pass.Render("PASS")
	case compat.IsEssential(c):
		return r.styles.Fail.Render("FAIL")
	default:
		return r.styles.Warning.Render("WARN")
	}
}
