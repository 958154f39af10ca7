package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/compcheck/internal/compat"
	"github.com/Aman-CERP/compcheck/internal/logging"
	"github.com/Aman-CERP/compcheck/internal/mcp"
)

func newServeCmd() *cobra.Command {
	var transport string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start a Model Context Protocol server so AI assistants can run the
compatibility check.

Tools:
  check_compatibility  run the checks and return the report
  export_report        write the report to a file
  get_requirements     list the requirements and their minimums

stdout carries JSON-RPC only; logs go to ~/.compcheck/logs/compcheck.log.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, transport)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport type (stdio)")

	return cmd
}

func runServe(cmd *cobra.Command, transport string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if debugMode {
		level = "debug"
	}
	log, cleanup, err := logging.SetupMCPMode(level)
	if err != nil {
		// Nothing may be written to stdio; run without a log file.
		log, cleanup = logging.Discard(), func() {}
	}
	defer cleanup()

	opts := []compat.Option{
		compat.WithProber(newProber(cfg, log)),
		compat.WithLogger(log),
		compat.WithOutput(io.Discard),
	}
	if cfg.Lock.Enabled {
		opts = append(opts, compat.WithRunLock(compat.NewRunLock(cfg.LockDir(), cfg.Lock.Timeout)))
	}

	srv, err := mcp.NewServer(compat.New(opts...), log)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	log.Info("serving compatibility checks",
		slog.String("transport", transport),
		slog.Bool("run_lock", cfg.Lock.Enabled))

	return srv.Serve(cmd.Context(), transport)
}
