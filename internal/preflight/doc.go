// Package preflight checks that this machine can run the compatibility
// probes before a user relies on their verdict.
//
// The package validates:
//   - The platform is Windows
//   - The inventory and firmware tools are on PATH
//   - The process is elevated (diskpart needs it)
//   - The probe scratch directory and ~/.compcheck are writable
//
// Use the Checker type to run all validations:
//
//	checker := preflight.New(preflight.WithTempDir(dir))
//	results := checker.RunAll(ctx)
//	if checker.HasCriticalFailures(results) {
//	    // compcheck cannot produce a meaningful report here
//	}
package preflight
