package preflight

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// CheckStatus represents the result of a preflight check.
type CheckStatus int

const (
	// StatusPass indicates the check passed successfully.
	StatusPass CheckStatus = iota
	// StatusWarn indicates a non-critical warning.
	StatusWarn
	// StatusFail indicates the check failed.
	StatusFail
)

// String returns the string representation of a CheckStatus.
func (s CheckStatus) String() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusWarn:
		return "WARN"
	case StatusFail:
		return "FAIL"
	default:
		return "UNKNOWN"
	}
}

// CheckResult holds the result of a single preflight check.
type CheckResult struct {
	Name     string      `json:"name"`
	Status   CheckStatus `json:"status"`
	Message  string      `json:"message"`
	Details  string      `json:"details,omitempty"`
	Required bool        `json:"required"`
}

// IsCritical returns true if this is a required check that failed.
func (r CheckResult) IsCritical() bool {
	return r.Required && r.Status == StatusFail
}

// Checker performs preflight validation checks.
type Checker struct {
	verbose bool
	output  io.Writer
	tempDir string
	dataDir string
	tools   []Tool

	goos     string
	lookPath func(string) (string, error)
	elevated func() bool
}

// Option configures a Checker.
type Option func(*Checker)

// WithVerbose enables verbose output.
func WithVerbose(verbose bool) Option {
	return func(c *Checker) {
		c.verbose = verbose
	}
}

// WithOutput sets the output writer.
func WithOutput(w io.Writer) Option {
	return func(c *Checker) {
		c.output = w
	}
}

// WithTempDir sets the probe scratch directory to validate.
func WithTempDir(dir string) Option {
	return func(c *Checker) {
		c.tempDir = dir
	}
}

// WithDataDir sets the log and lock directory to validate.
func WithDataDir(dir string) Option {
	return func(c *Checker) {
		c.dataDir = dir
	}
}

// New creates a new Checker with the given options.
func New(opts ...Option) *Checker {
	c := &Checker{
		output:   os.Stdout,
		tools:    Tools,
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		elevated: isElevated,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tempDir == "" {
		c.tempDir = os.TempDir()
	}
	return c
}

// RunAll runs all preflight checks and returns the results.
func (c *Checker) RunAll(_ context.Context) []CheckResult {
	var results []CheckResult

	results = append(results, c.CheckPlatform())
	for _, tool := range c.tools {
		results = append(results, c.CheckTool(tool))
	}
	results = append(results, c.CheckElevation())
	results = append(results, c.CheckWritable("temp_dir", c.tempDir, true))
	if c.dataDir != "" {
		results = append(results, c.CheckWritable("data_dir", c.dataDir, false))
	}

	return results
}

// HasCriticalFailures returns true if any required check failed.
func (c *Checker) HasCriticalFailures(results []CheckResult) bool {
	for _, r := range results {
		if r.IsCritical() {
			return true
		}
	}
	return false
}

// SummaryStatus returns ready, ready_with_warnings or failed.
func (c *Checker) SummaryStatus(results []CheckResult) string {
	hasWarnings := false
	hasCriticalFailure := false

	for _, r := range results {
		if r.IsCritical() {
			hasCriticalFailure = true
		}
		if r.Status == StatusWarn || (r.Status == StatusFail && !r.Required) {
			hasWarnings = true
		}
	}

	if hasCriticalFailure {
		return "failed"
	}
	if hasWarnings {
		return "ready_with_warnings"
	}
	return "ready"
}

// PrintResults prints check results to the configured output.
func (c *Checker) PrintResults(results []CheckResult) {
	_, _ = fmt.Fprintln(c.output, "compcheck Environment Check")
	_, _ = fmt.Fprintln(c.output, "===========================")
	_, _ = fmt.Fprintln(c.output)

	for _, r := range results {
		_, _ = fmt.Fprintf(c.output, "[%s] %s: %s\n", r.Status, r.Name, r.Message)
		if c.verbose && r.Details != "" {
			_, _ = fmt.Fprintf(c.output, "      %s\n", r.Details)
		}
	}

	_, _ = fmt.Fprintln(c.output)
	_, _ = fmt.Fprintf(c.output, "Status: %s\n", strings.ToUpper(c.SummaryStatus(results)))

	var warnings, errors []string
	for _, r := range results {
		switch {
		case r.IsCritical():
			errors = append(errors, r.Name+": "+r.Message)
		case r.Status != StatusPass:
			warnings = append(warnings, r.Name+": "+r.Message)
		}
	}

	if len(errors) > 0 {
		_, _ = fmt.Fprintln(c.output)
		_, _ = fmt.Fprintf(c.output, "%d error(s):\n", len(errors))
		for _, e := range errors {
			_, _ = fmt.Fprintf(c.output, "  - %s\n", e)
		}
	}

	if len(warnings) > 0 {
		_, _ = fmt.Fprintln(c.output)
		_, _ = fmt.Fprintf(c.output, "%d warning(s):\n", len(warnings))
		for _, w := range warnings {
			_, _ = fmt.Fprintf(c.output, "  - %s\n", w)
		}
	}
}

// CheckPlatform fails anywhere but Windows: every probe shells out to
// Windows tools or reads the Windows registry.
func (c *Checker) CheckPlatform() CheckResult {
	result := CheckResult{
		Name:     "platform",
		Required: true,
		Details:  fmt.Sprintf("GOOS=%s GOARCH=%s", c.goos, runtime.GOARCH),
	}

	if c.goos != "windows" {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("running on %s; the probes need Windows", c.goos)
		return result
	}

	result.Status = StatusPass
	result.Message = "Windows"
	return result
}

// CheckElevation warns when the process is not elevated.
func (c *Checker) CheckElevation() CheckResult {
	result := CheckResult{Name: "elevation"}

	if c.elevated() {
		result.Status = StatusPass
		result.Message = "running elevated"
		return result
	}

	result.Status = StatusWarn
	result.Message = "not elevated; diskpart may be denied and GPT detection will fail"
	result.Details = "Run compcheck from an Administrator prompt"
	return result
}

// CheckWritable verifies a file can be created in dir, creating dir first.
func (c *Checker) CheckWritable(name, dir string, required bool) CheckResult {
	result := CheckResult{
		Name:     name,
		Required: required,
		Details:  dir,
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		result.Status = failOrWarn(required)
		result.Message = fmt.Sprintf("cannot create %s: %v", dir, err)
		return result
	}

	f, err := os.CreateTemp(dir, ".compcheck-preflight-*")
	if err != nil {
		result.Status = failOrWarn(required)
		result.Message = fmt.Sprintf("permission denied: %v", err)
		return result
	}
	_ = f.Close()
	_ = os.Remove(f.Name())

	result.Status = StatusPass
	result.Message = "OK"
	return result
}

func failOrWarn(required bool) CheckStatus {
	if required {
		return StatusFail
	}
	return StatusWarn
}
