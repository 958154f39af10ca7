package ui

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Aman-CERP/compcheck/internal/compat"
)

// PlainRenderer outputs one line per finished criterion (for CI/pipes).
type PlainRenderer struct {
	mu      sync.Mutex
	out     io.Writer
	tracker *ProgressTracker
}

// NewPlainRenderer creates a plain text renderer.
func NewPlainRenderer(cfg Config) *PlainRenderer {
	return &PlainRenderer{
		out:     cfg.Output,
		tracker: NewProgressTracker(),
	}
}

// Start implements Renderer.
func (r *PlainRenderer) Start(ctx context.Context) error {
	return nil
}

// Update implements Renderer.
// Format: [3/8] Storage ... PASS (0.2s)
func (r *PlainRenderer) Update(ev compat.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tracker.Apply(ev)
	if ev.Stage != compat.StageFinished {
		return
	}
	_, _ = fmt.Fprintf(r.out, "[%d/%d] %s ... %s (%s)\n",
		ev.Index+1, ev.Total, ev.Criterion.Title(),
		statusWord(ev.Result.Status), ev.Elapsed.Round(100*time.Millisecond))
}

// Complete implements Renderer.
func (r *PlainRenderer) Complete(report compat.Report) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := r.tracker.Stats()
	_, _ = fmt.Fprintf(r.out, "Complete: %d/%d passed in %s\n",
		report.Summary.TotalPassed, report.Summary.TotalChecks, stats.Elapsed.Round(100*time.Millisecond))
}

// Stop implements Renderer.
func (r *PlainRenderer) Stop() error {
	return nil
}

func statusWord(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

var _ Renderer = (*PlainRenderer)(nil)
