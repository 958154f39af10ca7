// Package compat decides Windows 11 upgrade eligibility.
//
// It evaluates eight fixed criteria (cpu, ram, storage, tpm, secure_boot,
// gpt, directx, architecture) from the facts gathered by package probe,
// and aggregates them into a Report. The aggregate verdict is the
// conjunction of the essential subset, which excludes directx.
//
// Every run builds a fresh Report; nothing is cached between runs:
//
//	report := compat.RunAllChecks(ctx)
//	if !report.Compatible {
//	    // inspect report.Results
//	}
//
// A failing probe never aborts a run. Its criterion is reported with
// status false and an "error" entry in the details.
package compat
