package ui

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/compcheck/internal/compat"
)

func TestProgressTracker_StartsPending(t *testing.T) {
	stats := NewProgressTracker().Stats()

	require.Len(t, stats.Rows, compat.TotalChecks)
	assert.Equal(t, compat.TotalChecks, stats.Total)
	assert.Zero(t, stats.Done)
	assert.Zero(t, stats.Progress)
	for i, row := range stats.Rows {
		assert.Equal(t, compat.AllCriteria[i], row.Criterion)
		assert.Equal(t, StatePending, row.State)
	}
}

func TestProgressTracker_Apply(t *testing.T) {
	tr := NewProgressTracker()

	tr.Apply(compat.ProgressEvent{Criterion: compat.CriterionRAM, Stage: compat.StageStarted})
	assert.Equal(t, StateRunning, tr.Stats().Rows[1].State)

	tr.Apply(compat.ProgressEvent{
		Criterion: compat.CriterionRAM,
		Stage:     compat.StageFinished,
		Result:    compat.Result{Status: true},
		Elapsed:   time.Second,
	})
	tr.Apply(compat.ProgressEvent{
		Criterion: compat.CriterionGPT,
		Stage:     compat.StageFinished,
		Result:    compat.Result{Status: false},
	})

	stats := tr.Stats()
	assert.Equal(t, StatePassed, stats.Rows[1].State)
	assert.Equal(t, time.Second, stats.Rows[1].Elapsed)
	assert.Equal(t, 2, stats.Done)
	assert.Equal(t, 1, stats.Passed)
	assert.Equal(t, 1, stats.Failed)
	assert.InDelta(t, 0.25, stats.Progress, 1e-9)
}

func TestProgressTracker_IgnoresUnknownCriterion(t *testing.T) {
	tr := NewProgressTracker()

	tr.Apply(compat.ProgressEvent{Criterion: "display", Stage: compat.StageFinished})

	assert.Zero(t, tr.Stats().Done)
}

func TestProgressTracker_ConcurrentUse(t *testing.T) {
	tr := NewProgressTracker()

	var wg sync.WaitGroup
	for _, c := range compat.AllCriteria {
		wg.Add(2)
		go func(c compat.Criterion) {
			defer wg.Done()
			tr.Apply(compat.ProgressEvent{Criterion: c, Stage: compat.StageFinished, Result: compat.Result{Status: true}})
		}(c)
		go func() {
			defer wg.Done()
			_ = tr.Stats()
		}()
	}
	wg.Wait()

	assert.Equal(t, compat.TotalChecks, tr.Stats().Passed)
}
