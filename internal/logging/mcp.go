package logging

import (
	"log/slog"
)

// SetupMCPMode initializes logging for MCP server mode and installs the
// logger as the slog default.
//
// stdout carries JSON-RPC exclusively, so records go to the log file only.
// Any stray write to stdout or stderr corrupts the protocol stream.
func SetupMCPMode(level string) (*slog.Logger, func(), error) {
	if level == "" {
		level = "debug"
	}
	cfg := DefaultConfig()
	cfg.Level = level
	cfg.WriteToStderr = false

	logger, cleanup, err := Setup(cfg)
	if err != nil {
		return nil, nil, err
	}

	slog.SetDefault(logger)
	logger.Info("MCP mode logging initialized",
		slog.String("log_file", cfg.FilePath),
		slog.String("level", level))

	return logger, cleanup, nil
}
