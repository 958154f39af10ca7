package cmd

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/compcheck/internal/config"
	"github.com/Aman-CERP/compcheck/internal/output"
	"github.com/Aman-CERP/compcheck/internal/preflight"
)

// errDoctorFailed is returned when a required environment check fails.
var errDoctorFailed = errors.New("environment check failed")

func newDoctorCmd() *cobra.Command {
	var verbose, jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that compcheck can probe this machine",
		Long: `Run environment diagnostics before trusting a compatibility verdict.

Checks:
  - Platform is Windows
  - wmic, diskpart, powershell and dxdiag are on PATH
  - The process is elevated (diskpart needs Administrator)
  - The probe scratch directory and ~/.compcheck are writable

A missing wmic is critical: processor, memory, storage and TPM cannot be
read without it. Other findings are warnings.`,
		Example: `  # Run diagnostics
  compcheck doctor

  # JSON output for scripting
  compcheck doctor --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, verbose, jsonOutput)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed diagnostic info")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// doctorOutput is the JSON form of a doctor run.
type doctorOutput struct {
	Status   string        `json:"status"`
	Checks   []doctorCheck `json:"checks"`
	Warnings []string      `json:"warnings,omitempty"`
	Errors   []string      `json:"errors,omitempty"`
}

type doctorCheck struct {
	Name     string `json:"name"`
	Status   string `json:"status"`
	Message  string `json:"message"`
	Required bool   `json:"required"`
	Details  string `json:"details,omitempty"`
}

func runDoctor(cmd *cobra.Command, verbose, jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	checker := preflight.New(
		preflight.WithVerbose(verbose),
		preflight.WithOutput(cmd.OutOrStdout()),
		preflight.WithTempDir(cfg.Probes.TempDir),
		preflight.WithDataDir(config.DataDir()),
	)

	results := checker.RunAll(cmd.Context())
	logger.Info("environment check finished", slog.String("status", checker.SummaryStatus(results)))

	if jsonOutput {
		if err := output.New(cmd.OutOrStdout()).JSON(toDoctorOutput(checker, results)); err != nil {
			return err
		}
	} else {
		checker.PrintResults(results)
	}

	if checker.HasCriticalFailures(results) {
		return errDoctorFailed
	}
	return nil
}

func toDoctorOutput(checker *preflight.Checker, results []preflight.CheckResult) doctorOutput {
	out := doctorOutput{
		Status: checker.SummaryStatus(results),
		Checks: make([]doctorCheck, len(results)),
	}

	for i, r := range results {
		out.Checks[i] = doctorCheck{
			Name:     r.Name,
			Status:   strings.ToLower(r.Status.String()),
			Message:  r.Message,
			Required: r.Required,
			Details:  r.Details,
		}

		switch {
		case r.IsCritical():
			out.Errors = append(out.Errors, r.Name+": "+r.Message)
		case r.Status != preflight.StatusPass:
			out.Warnings = append(out.Warnings, r.Name+": "+r.Message)
		}
	}

	return out
}
