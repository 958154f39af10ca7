package ui

import (
	"sync"
	"time"

	"github.com/Aman-CERP/compcheck/internal/compat"
)

// State is the display state of one criterion.
type State int

const (
	StatePending State = iota
	StateRunning
	StatePassed
	StateFailed
)

// Row is the tracked state of one criterion.
type Row struct {
	Criterion compat.Criterion
	State     State
	Result    compat.Result
	Elapsed   time.Duration
}

// ProgressStats is a snapshot of a run.
type ProgressStats struct {
	Rows     []Row
	Done     int
	Total    int
	Passed   int
	Failed   int
	Progress float64
	Elapsed  time.Duration
}

// ProgressTracker folds progress events into per-criterion rows.
// It is safe for concurrent use.
type ProgressTracker struct {
	mu    sync.RWMutex
	rows  []Row
	index map[compat.Criterion]int
	start time.Time
}

// NewProgressTracker creates a tracker with every criterion pending.
func NewProgressTracker() *ProgressTracker {
	t := &ProgressTracker{
		rows:  make([]Row, len(compat.AllCriteria)),
		index: make(map[compat.Criterion]int, len(compat.AllCriteria)),
		start: time.Now(),
	}
	for i, c := range compat.AllCriteria {
		t.rows[i] = Row{Criterion: c}
		t.index[c] = i
	}
	return t
}

// Apply records a progress event.
func (t *ProgressTracker) Apply(ev compat.ProgressEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i, ok := t.index[ev.Criterion]
	if !ok {
		return
	}
	row := &t.rows[i]
	switch ev.Stage {
	case compat.StageStarted:
		row.State = StateRunning
	case compat.StageFinished:
		row.Result = ev.Result
		row.Elapsed = ev.Elapsed
		row.State = StateFailed
		if ev.Result.Status {
			row.State = StatePassed
		}
	}
}

// Stats returns a snapshot of the run.
func (t *ProgressTracker) Stats() ProgressStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := ProgressStats{
		Rows:    append([]Row(nil), t.rows...),
		Total:   len(t.rows),
		Elapsed: time.Since(t.start),
	}
	for _, r := range t.rows {
		switch r.State {
		case StatePassed:
			s.Passed++
			s.Done++
		case StateFailed:
			s.Failed++
			s.Done++
		}
	}
	if s.Total > 0 {
		s.Progress = float64(s.Done) / float64(s.Total)
	}
	return s
}
