package mcp

import (
	"fmt"
	"strings"

	"github.com/Aman-CERP/compcheck/internal/compat"
)

// ToCheckOutput converts a report into the tool output, criteria in
// evaluation order.
func ToCheckOutput(r compat.Report) CheckOutput {
	out := CheckOutput{
		Compatible:  r.Compatible,
		Verdict:     r.Verdict(),
		Summary:     r.Summary,
		Criteria:    make([]CriterionOutput, 0, len(compat.AllCriteria)),
		GeneratedAt: r.GeneratedAt,
		Host:        r.Host,
	}
	for _, c := range compat.AllCriteria {
		res := r.Result(c)
		out.Criteria = append(out.Criteria, CriterionOutput{
			Criterion: string(c),
			Title:     c.Title(),
			Essential: compat.IsEssential(c),
			Status:    res.Status,
			Summary:   compat.Describe(c, res),
			Details:   res.Details,
		})
	}
	return out
}

// Requirements lists every criterion with its minimum.
func Requirements() RequirementsOutput {
	out := RequirementsOutput{Requirements: make([]RequirementOutput, 0, len(compat.AllCriteria))}
	for _, c := range compat.AllCriteria {
		out.Requirements = append(out.Requirements, RequirementOutput{
			Criterion: string(c),
			Title:     c.Title(),
			Minimum:   compat.Minimum(c),
			Essential: compat.IsEssential(c),
		})
	}
	return out
}

// FormatCheckResult renders a short markdown summary for the text content
// of a tool result.
func FormatCheckResult(r compat.Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "## Windows 11 compatibility: %s\n\n", r.Verdict())
	fmt.Fprintf(&sb, "**Passed:** %d/%d checks\n\n", r.Summary.TotalPassed, r.Summary.TotalChecks)

	for _, c := range compat.AllCriteria {
		res := r.Result(c)
		mark := "x"
		if !res.Status {
			mark = " "
		}
		suffix := ""
		if !res.Status && !compat.IsEssential(c) {
			suffix = " (warning only)"
		}
		fmt.Fprintf(&sb, "- [%s] **%s**: %s%s\n", mark, c.Title(), compat.Describe(c, res), suffix)
	}

	return sb.String()
}
