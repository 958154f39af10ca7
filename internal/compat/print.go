package compat

import (
	"fmt"
	"sort"
)

// Minimums as shown next to a measured value.
var minimums = map[Criterion]string{
	CriterionCPU:          "2 cores, 1 GHz, supported generation",
	CriterionRAM:          "4 GB",
	CriterionStorage:      "64 GB",
	CriterionTPM:          "2.0",
	CriterionSecureBoot:   "supported",
	CriterionGPT:          "GPT",
	CriterionDirectX:      "DirectX 12, WDDM 2.0",
	CriterionArchitecture: "64-bit",
}

// Minimum returns the requirement for c in display form.
func Minimum(c Criterion) string {
	return minimums[c]
}

// Describe returns a one-line summary of a result, e.g.
// "16 GB (Min: 4 GB)". It works on reports read back from disk as well.
func Describe(c Criterion, r Result) string {
	d := r.Details
	if msg, ok := d[DetailError]; ok {
		return fmt.Sprintf("error: %v", msg)
	}

	var value string
	switch c {
	case CriterionCPU:
		value = fmt.Sprintf("%v (%v cores, %v)", d["name"], d["cores"], d["frequency"])
	case CriterionRAM:
		value = str(d["total"])
	case CriterionStorage:
		value = str(d["free_space"]) + " free"
	case CriterionTPM:
		value = "TPM " + version(d["version"])
	case CriterionSecureBoot:
		value = yesNo(r.Status, "Active", "Not active")
	case CriterionGPT:
		value = yesNo(r.Status, "GPT", "MBR or unknown")
	case CriterionDirectX:
		value = fmt.Sprintf("DirectX %v, WDDM %s", d["directx_version"], version(d["wddm_version"]))
	case CriterionArchitecture:
		value = fmt.Sprintf("%v %s", d["architecture"], yesNo(r.Status, "64-bit", "32-bit"))
	default:
		value = yesNo(r.Status, "OK", "failed")
	}

	if floor, ok := minimums[c]; ok {
		value += " (Min: " + floor + ")"
	}
	return value
}

func str(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// version renders numbers with one decimal ("2.0"), anything else verbatim.
func version(v any) string {
	switch n := v.(type) {
	case float64:
		return fmt.Sprintf("%.1f", n)
	case float32:
		return fmt.Sprintf("%.1f", n)
	case int:
		return fmt.Sprintf("%d.0", n)
	default:
		return str(v)
	}
}

func yesNo(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}

// Verdict returns COMPATIBLE or NOT COMPATIBLE.
func (r Report) Verdict() string {
	return yesNo(r.Compatible, "COMPATIBLE", "NOT COMPATIBLE")
}

// PrintResults prints the report to the configured output.
func (c *Checker) PrintResults(report Report) {
	_, _ = fmt.Fprintln(c.output, "Windows 11 Compatibility Check")
	_, _ = fmt.Fprintln(c.output, "==============================")
	_, _ = fmt.Fprintln(c.output)

	for _, crit := range AllCriteria {
		res := report.Result(crit)
		_, _ = fmt.Fprintf(c.output, "[%s] %s: %s\n", statusIcon(res.Status), crit.Title(), Describe(crit, res))
		if c.verbose {
			for _, line := range DetailLines(res.Details) {
				_, _ = fmt.Fprintf(c.output, "      %s\n", line)
			}
		}
	}

	_, _ = fmt.Fprintln(c.output)
	_, _ = fmt.Fprintf(c.output, "Status: %s\n", report.Verdict())
	_, _ = fmt.Fprintf(c.output, "Passed: %d/%d checks\n", report.Summary.TotalPassed, report.Summary.TotalChecks)

	var essential, optional []string
	for _, crit := range AllCriteria {
		res := report.Result(crit)
		if res.Status {
			continue
		}
		if IsEssential(crit) {
			essential = append(essential, crit.Title()+": "+Describe(crit, res))
		} else {
			optional = append(optional, crit.Title()+": "+Describe(crit, res))
		}
	}

	if len(essential) > 0 {
		_, _ = fmt.Fprintln(c.output)
		_, _ = fmt.Fprintf(c.output, "%d requirement(s) not met:\n", len(essential))
		for _, e := range essential {
			_, _ = fmt.Fprintf(c.output, "  - %s\n", e)
		}
	}

	if len(optional) > 0 {
		_, _ = fmt.Fprintln(c.output)
		_, _ = fmt.Fprintf(c.output, "%d warning(s):\n", len(optional))
		for _, w := range optional {
			_, _ = fmt.Fprintf(c.output, "  - %s\n", w)
		}
	}
}

func statusIcon(ok bool) string {
	return yesNo(ok, "PASS", "FAIL")
}

// DetailLines renders details as sorted "key: value" lines.
func DetailLines(details map[string]any) []string {
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %v", k, details[k]))
	}
	return lines
}
