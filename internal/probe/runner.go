package probe

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	ccerrors "github.com/Aman-CERP/compcheck/internal/errors"
)

// ExecRunner runs commands with os/exec, each bounded by a timeout.
type ExecRunner struct {
	timeout time.Duration
	logger  *slog.Logger
}

// NewExecRunner creates a runner whose commands are killed after timeout.
func NewExecRunner(timeout time.Duration, logger *slog.Logger) *ExecRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecRunner{timeout: timeout, logger: logger}
}

// Run executes name with args and returns stdout.
// Failures are returned as probe errors carrying the facility name.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	r.logger.Debug("probe command finished",
		slog.String("command", name),
		slog.Any("args", args),
		slog.Duration("duration", time.Since(start)),
		slog.Bool("ok", err == nil))

	if err == nil {
		return stdout.Bytes(), nil
	}

	switch {
	case errors.Is(err, exec.ErrNotFound):
		return nil, ccerrors.ProbeError(ccerrors.ErrCodeProbeUnavailable, name,
			name+" is not available on this system", err).
			WithSuggestion("Run compcheck on Windows 10 or later")
	case ctx.Err() == context.DeadlineExceeded:
		return nil, ccerrors.ProbeError(ccerrors.ErrCodeProbeTimeout, name,
			name+" did not finish in "+r.timeout.String(), err)
	}

	e := ccerrors.ProbeError(ccerrors.ErrCodeProbeFailed, name, name+" failed", err)
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		e = e.WithDetail("stderr", msg)
	}
	return stdout.Bytes(), e
}
