// Package logging provides file-based structured logging with rotation for
// compcheck. Logs are written as JSON lines to ~/.compcheck/logs/compcheck.log
// and can be read back with the log viewer (compcheck logs).
//
// In MCP server mode nothing is written to stdout or stderr; the stdio
// transport owns both streams.
package logging
