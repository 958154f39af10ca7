package compat

// Aggregate computes the verdict over the essential subset and the summary
// counts. Criteria missing from results count as failed.
func Aggregate(results map[Criterion]Result) (bool, Summary) {
	essential := true
	for _, c := range EssentialCriteria {
		if !results[c].Status {
			essential = false
			break
		}
	}

	passed := 0
	for _, c := range AllCriteria {
		if results[c].Status {
			passed++
		}
	}

	return essential, Summary{
		EssentialMet: essential,
		TotalPassed:  passed,
		TotalChecks:  TotalChecks,
	}
}

// NewReport builds a report from per-criterion results, filling every
// missing criterion with a failed result so all keys are always present.
func NewReport(results map[Criterion]Result) Report {
	full := make(map[Criterion]Result, len(AllCriteria))
	for _, c := range AllCriteria {
		r, ok := results[c]
		if !ok {
			r = Result{Details: map[string]any{DetailError: "not evaluated"}}
		}
		if r.Details == nil {
			r.Details = map[string]any{}
		}
		full[c] = r
	}

	compatible, summary := Aggregate(full)
	return Report{Compatible: compatible, Results: full, Summary: summary}
}
