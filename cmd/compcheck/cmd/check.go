package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Aman-CERP/compcheck/internal/compat"
	"github.com/Aman-CERP/compcheck/internal/config"
	"github.com/Aman-CERP/compcheck/internal/output"
	"github.com/Aman-CERP/compcheck/internal/probe"
	"github.com/Aman-CERP/compcheck/internal/report"
	"github.com/Aman-CERP/compcheck/internal/ui"
)

// newProber builds the fact source for a run. Tests replace it.
var newProber = func(cfg *config.Config, logger *slog.Logger) compat.Prober {
	return probe.New(probe.NewHost(cfg.ProbeOptions(logger)))
}

// now stamps reports. Tests replace it.
var now = time.Now

type checkOptions struct {
	jsonOutput bool
	verbose    bool
	exportPath string
	plain      bool
	noColor    bool
}

func addCheckFlags(cmd *cobra.Command, opts *checkOptions) {
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the report as JSON")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show every detail of each check")
	cmd.Flags().StringVar(&opts.exportPath, "export", "", "Also write the report to `PATH` (.json, .yaml, .md, .html, .csv)")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Plain progress output (no spinner)")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
}

func newCheckCmd() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check this PC against the Windows 11 requirements",
		Long: `Probe the machine and evaluate every Windows 11 requirement.

Progress is shown on stderr; the verdict goes to stdout. The command exits
with status 1 when an essential requirement is not met. DirectX 12 / WDDM 2.0
is reported but does not affect the verdict.`,
		Example: `  # Check this machine
  compcheck check

  # Machine-readable report
  compcheck check --json

  # Check and keep an HTML copy of the report
  compcheck check --export report.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, opts)
		},
	}

	addCheckFlags(cmd, opts)

	return cmd
}

// runSettings is the merge of the config file and the command flags.
type runSettings struct {
	cfg        *config.Config
	jsonOutput bool
	verbose    bool
	plain      bool
	noColor    bool
}

func resolveSettings(cfg *config.Config, opts *checkOptions) runSettings {
	return runSettings{
		cfg:        cfg,
		jsonOutput: opts.jsonOutput || cfg.Output.Format == config.FormatJSON,
		verbose:    opts.verbose,
		plain:      opts.plain || cfg.Output.Plain,
		noColor:    opts.noColor || cfg.Output.NoColor,
	}
}

func runCheck(cmd *cobra.Command, opts *checkOptions) error {
	ctx := cmd.Context()

	// Reject a bad export target before spending time probing.
	if opts.exportPath != "" {
		if _, err := report.FormatFromPath(opts.exportPath); err != nil {
			return err
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	settings := resolveSettings(cfg, opts)

	result, checker, err := runEngine(ctx, cmd, settings)
	if err != nil {
		return err
	}

	if err := printReport(cmd.OutOrStdout(), checker, result, settings); err != nil {
		return err
	}

	if opts.exportPath != "" {
		path, err := report.ExportReport(result, opts.exportPath)
		if err != nil {
			return err
		}
		output.New(cmd.ErrOrStderr()).Successf("Report written to %s", path)
	}

	if !result.Compatible {
		return ErrIncompatible
	}
	return nil
}

// runEngine runs the checks on one goroutine while the renderer draws
// progress on stderr, and returns the stamped report.
func runEngine(ctx context.Context, cmd *cobra.Command, s runSettings) (compat.Report, *compat.Checker, error) {
	renderer := ui.NewRenderer(ui.NewConfig(cmd.ErrOrStderr(),
		ui.WithForcePlain(s.plain),
		ui.WithNoColor(s.noColor)))

	opts := []compat.Option{
		compat.WithProber(newProber(s.cfg, logger)),
		compat.WithLogger(logger),
		compat.WithProgress(renderer.Update),
		compat.WithVerbose(s.verbose),
		compat.WithOutput(cmd.OutOrStdout()),
	}
	if s.cfg.Lock.Enabled {
		opts = append(opts, compat.WithRunLock(compat.NewRunLock(s.cfg.LockDir(), s.cfg.Lock.Timeout)))
	}
	checker := compat.New(opts...)

	if err := renderer.Start(ctx); err != nil {
		return compat.Report{}, nil, fmt.Errorf("failed to start progress display: %w", err)
	}

	var result compat.Report
	done := make(chan struct{})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(done)
		result = checker.RunAll(gctx)
		renderer.Complete(result)
		return nil
	})
	g.Go(func() error {
		// An interrupt tears the display down early; the run itself is
		// bounded by the probe timeouts and always completes.
		select {
		case <-done:
		case <-gctx.Done():
		}
		return renderer.Stop()
	})
	if err := g.Wait(); err != nil {
		return compat.Report{}, nil, err
	}

	return report.Stamp(result, now()), checker, nil
}

// printReport writes the verdict to out: JSON, the styled table on a
// terminal, or the plain listing otherwise.
func printReport(out io.Writer, checker *compat.Checker, result compat.Report, s runSettings) error {
	switch {
	case s.jsonOutput:
		return output.New(out).JSON(result)
	case !s.plain && ui.IsTTY(out):
		ui.NewReportRenderer(out, s.noColor || ui.DetectNoColor(), s.verbose).Render(result)
		return nil
	default:
		checker.PrintResults(result)
		return nil
	}
}
