package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/compcheck/internal/output"
	"github.com/Aman-CERP/compcheck/internal/report"
)

func newExportCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "export PATH",
		Short: "Check this PC and write the report to a file",
		Long: `Run every check and write the report to PATH.

The extension selects the format:
  .json (or none)  JSON
  .yaml, .yml      YAML
  .md              Markdown table
  .html            HTML page
  .csv             one row per requirement

The resolved absolute path is printed on stdout. Unlike 'check', export
succeeds whatever the verdict is.`,
		Example: `  compcheck export report.json
  compcheck export ~/Desktop/win11.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], plain)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Plain progress output (no spinner)")

	return cmd
}

func runExport(cmd *cobra.Command, path string, plain bool) error {
	format, err := report.FormatFromPath(path)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	settings := resolveSettings(cfg, &checkOptions{plain: plain})

	result, _, err := runEngine(cmd.Context(), cmd, settings)
	if err != nil {
		return err
	}

	abs, err := report.ExportReport(result, path)
	if err != nil {
		return err
	}

	out := output.New(cmd.ErrOrStderr())
	out.Successf("Exported %s report", format)
	out.KeyValue("Verdict", result.Verdict())
	out.KeyValue("Passed", fmt.Sprintf("%d/%d", result.Summary.TotalPassed, result.Summary.TotalChecks))

	_, err = fmt.Fprintln(cmd.OutOrStdout(), abs)
	return err
}
