// Package cmd provides the CLI commands for compcheck.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/compcheck/internal/config"
	ccerrors "github.com/Aman-CERP/compcheck/internal/errors"
	"github.com/Aman-CERP/compcheck/internal/logging"
	"github.com/Aman-CERP/compcheck/pkg/version"
)

// ErrIncompatible is returned when an essential requirement is not met.
// The verdict has already been printed, so Execute does not print it again.
var ErrIncompatible = errors.New("this PC does not meet the Windows 11 requirements")

// Persistent flags and the logger they configure.
var (
	debugMode      bool
	configFile     string
	logger         = logging.Discard()
	loggingCleanup func()
)

// NewRootCmd creates the root command for the compcheck CLI.
func NewRootCmd() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "compcheck",
		Short: "Check whether this PC can upgrade to Windows 11",
		Long: `compcheck inspects the processor, memory, storage, TPM, Secure Boot,
partition style, graphics and architecture of this machine and decides
whether it meets the Windows 11 upgrade requirements.

Run 'compcheck' with no arguments to check the machine now.`,
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, opts)
		},
	}

	cmd.SetVersionTemplate("compcheck version {{.Version}}\n")

	// The bare command behaves like 'compcheck check'.
	addCheckFlags(cmd, opts)

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.compcheck/logs/")
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: user config)")

	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newLogsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadConfig loads --config when given, else the user config.
func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.LoadFile(configFile)
	}
	return config.Load()
}

// startLogging sets up file logging for every command except serve,
// which owns stdout and configures MCP-safe logging itself.
func startLogging(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "serve" {
		return nil
	}

	cfg := logging.DefaultConfig()
	if debugMode {
		cfg = logging.DebugConfig()
	} else if appCfg, err := loadConfig(); err == nil {
		cfg.Level = appCfg.Logging.Level
	}

	l, cleanup, err := logging.Setup(cfg)
	if err != nil {
		// Logging is best effort; the check itself must still run.
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: file logging disabled: %v\n", err)
		return nil
	}

	logger = l
	loggingCleanup = cleanup
	logger.Debug("logging initialized",
		slog.String("command", cmd.CommandPath()),
		slog.String("log_file", cfg.FilePath),
		slog.String("level", cfg.Level))

	return nil
}

// stopLogging flushes and closes the log file.
func stopLogging(_ *cobra.Command, _ []string) error {
	closeLogging()
	return nil
}

func closeLogging() {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	logger = logging.Discard()
}

// Execute runs the root command. Ctrl-C cancels the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)

	// PersistentPostRunE is skipped when RunE fails.
	closeLogging()

	if err != nil && !errors.Is(err, ErrIncompatible) {
		_, _ = fmt.Fprint(os.Stderr, ccerrors.FormatForCLI(err))
	}
	return err
}
