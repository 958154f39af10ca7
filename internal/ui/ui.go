// Package ui renders the progress of a compatibility run and its final
// report in the terminal.
package ui

import (
	"context"
	"io"
	"os"
	"slices"

	"github.com/mattn/go-isatty"

	"github.com/Aman-CERP/compcheck/internal/compat"
)

// Renderer shows a run while the checker works. Update may be called from
// the checker's goroutine while Start runs on another.
type Renderer interface {
	Start(ctx context.Context) error
	Update(event compat.ProgressEvent)
	Complete(report compat.Report)
	Stop() error
}

// Config selects where and how progress is drawn.
type Config struct {
	Output     io.Writer
	ForcePlain bool // --plain
	NoColor    bool // --no-color or NO_COLOR
}

// ConfigOption adjusts a Config built by NewConfig.
type ConfigOption func(*Config)

// WithForcePlain disables the interactive renderer.
func WithForcePlain(force bool) ConfigOption {
	return func(c *Config) { c.ForcePlain = force }
}

// WithNoColor strips ANSI styling.
func WithNoColor(noColor bool) ConfigOption {
	return func(c *Config) { c.NoColor = noColor }
}

// NewConfig builds a Config for output. NO_COLOR in the environment always
// wins over WithNoColor(false).
func NewConfig(output io.Writer, opts ...ConfigOption) Config {
	cfg := Config{Output: output}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.NoColor = cfg.NoColor || DetectNoColor()
	return cfg
}

// NewRenderer picks the bubbletea renderer on an interactive terminal and
// the line-oriented one everywhere else.
func NewRenderer(cfg Config) Renderer {
	interactive := !cfg.ForcePlain && IsTTY(cfg.Output) && !DetectCI()
	if interactive {
		if tui, err := NewTUIRenderer(cfg); err == nil {
			return tui
		}
	}
	return NewPlainRenderer(cfg)
}

// IsTTY reports whether w is a terminal, including Cygwin and MSYS ptys.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// DetectNoColor honors https://no-color.org: presence, not value, counts.
func DetectNoColor() bool {
	_, set := os.LookupEnv("NO_COLOR")
	return set
}

// ciEnv lists variables set by common CI runners, Azure Pipelines included.
var ciEnv = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "TF_BUILD", "BUILDKITE"}

// DetectCI reports whether a CI runner's environment is present.
func DetectCI() bool {
	return slices.ContainsFunc(ciEnv, func(name string) bool {
		_, set := os.LookupEnv(name)
		return set
	})
}
