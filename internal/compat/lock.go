package compat

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	ccerrors "github.com/Aman-CERP/compcheck/internal/errors"
)

// lockRetryDelay is how often a held lock is retried.
const lockRetryDelay = 100 * time.Millisecond

// RunLock serializes runs across processes. Two concurrent runs would both
// script diskpart and dxdiag, which are single-instance tools.
type RunLock struct {
	path    string
	timeout time.Duration
	flock   *flock.Flock
}

// NewRunLock creates a lock at <dir>/run.lock.
func NewRunLock(dir string, timeout time.Duration) *RunLock {
	path := filepath.Join(dir, "run.lock")
	return &RunLock{
		path:    path,
		timeout: timeout,
		flock:   flock.New(path),
	}
}

// Path returns the lock file path.
func (l *RunLock) Path() string {
	return l.path
}

// Acquire waits up to the lock timeout and returns the release function.
func (l *RunLock) Acquire(ctx context.Context) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return nil, ccerrors.New(ccerrors.ErrCodeLockFailed, "failed to create lock directory", err).
			WithDetail("path", l.path)
	}

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	locked, err := l.flock.TryLockContext(ctx, lockRetryDelay)
	if err != nil || !locked {
		msg := fmt.Sprintf("another compcheck run holds %s", l.path)
		return nil, ccerrors.New(ccerrors.ErrCodeLockFailed, msg, err).
			WithDetail("path", l.path).
			WithSuggestion("Wait for the other run to finish")
	}

	return func() { _ = l.flock.Unlock() }, nil
}
