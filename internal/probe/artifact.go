package probe

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	ccerrors "github.com/Aman-CERP/compcheck/internal/errors"
)

// Workspace is a uniquely named temporary directory holding the transient
// files of one probe. Close removes it and everything inside.
type Workspace struct {
	dir string
}

// NewWorkspace creates a fresh directory below base.
func NewWorkspace(base, prefix string) (*Workspace, error) {
	if base == "" {
		base = os.TempDir()
	}
	dir, err := os.MkdirTemp(base, "compcheck-"+prefix+"-")
	if err != nil {
		return nil, ccerrors.New(ccerrors.ErrCodeTempFile, "cannot create temporary directory", err).
			WithDetail("base", base)
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace directory.
func (w *Workspace) Dir() string {
	return w.dir
}

// Path returns the path of name inside the workspace.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// WriteFile writes data to name inside the workspace and returns its path.
func (w *Workspace) WriteFile(name string, data []byte) (string, error) {
	p := w.Path(name)
	if err := os.WriteFile(p, data, 0600); err != nil {
		return "", ccerrors.New(ccerrors.ErrCodeTempFile, "cannot write temporary file", err).
			WithDetail("path", p)
	}
	return p, nil
}

// Close removes the workspace. Safe to call more than once.
func (w *Workspace) Close() error {
	if w == nil || w.dir == "" {
		return nil
	}
	err := os.RemoveAll(w.dir)
	w.dir = ""
	return err
}

// WaitForFile waits until path exists with content and returns it.
// It listens for filesystem events on the parent directory and falls back
// to polling when the watcher cannot be started. The wait is bounded by
// policy even if ctx has no deadline.
func WaitForFile(ctx context.Context, path string, policy WaitPolicy, logger *slog.Logger) ([]byte, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if data, ok := readReady(path); ok {
		return data, nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Debug("fsnotify unavailable, polling for artifact", slog.String("error", err.Error()))
		return pollFile(ctx, path, policy)
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(filepath.Dir(path)); err != nil {
		logger.Debug("cannot watch artifact directory, polling", slog.String("error", err.Error()))
		return pollFile(ctx, path, policy)
	}

	// The file may have appeared before the watch was registered.
	if data, ok := readReady(path); ok {
		return data, nil
	}

	timeout := time.NewTimer(policy.Total())
	defer timeout.Stop()
	// Events can be coalesced or lost on some filesystems; the ticker
	// rechecks at the poll interval.
	ticker := time.NewTicker(policy.Interval)
	defer ticker.Stop()

	want := filepath.Clean(path)
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return pollFile(ctx, path, policy)
			}
			if filepath.Clean(ev.Name) != want || ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if data, ok := readSettled(ctx, path, policy.Interval/10); ok {
				return data, nil
			}
		case err, ok := <-w.Errors:
			if ok {
				logger.Debug("artifact watcher error", slog.String("error", err.Error()))
			}
		case <-ticker.C:
			if data, ok := readReady(path); ok {
				return data, nil
			}
		case <-timeout.C:
			if data, ok := readReady(path); ok {
				return data, nil
			}
			return nil, artifactTimeout(path, policy)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func pollFile(ctx context.Context, path string, policy WaitPolicy) ([]byte, error) {
	cfg := ccerrors.PollConfig(policy.Polls+1, policy.Interval)
	data, err := ccerrors.RetryWithResult(ctx, cfg, func() ([]byte, error) {
		data, ok := readReady(path)
		if !ok {
			return nil, fmt.Errorf("%s not ready", filepath.Base(path))
		}
		return data, nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, artifactTimeout(path, policy)
	}
	return data, nil
}

// readSettled returns the file once two reads settle apart agree on its size.
// A write event can arrive while the producer is still writing.
func readSettled(ctx context.Context, path string, settle time.Duration) ([]byte, bool) {
	first, ok := readReady(path)
	if !ok {
		return nil, false
	}
	select {
	case <-ctx.Done():
		return nil, false
	case <-time.After(settle):
	}
	second, ok := readReady(path)
	if !ok || len(second) != len(first) {
		return nil, false
	}
	return second, true
}

func readReady(path string) ([]byte, bool) {
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

func artifactTimeout(path string, policy WaitPolicy) error {
	return ccerrors.New(ccerrors.ErrCodeArtifactTimeout,
		fmt.Sprintf("%s did not appear within %s", filepath.Base(path), policy.Total()), nil).
		WithDetail("path", path)
}
