package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/Aman-CERP/compcheck/internal/compat"
)

func TestCheckModel_ViewShowsEveryCriterion(t *testing.T) {
	m := newCheckModel(NewProgressTracker(), NoColorStyles())

	view := m.View()

	assert.Contains(t, view, "Windows 11 Compatibility Check")
	for _, c := range compat.AllCriteria {
		assert.Contains(t, view, "○ "+c.Title())
	}
	assert.Contains(t, view, "0/8")
}

func TestCheckModel_ViewReflectsResults(t *testing.T) {
	tr := NewProgressTracker()
	m := newCheckModel(tr, NoColorStyles())

	tr.Apply(compat.ProgressEvent{
		Criterion: compat.CriterionRAM,
		Stage:     compat.StageFinished,
		Result:    compat.Result{Status: true, Details: map[string]any{"total": "16 GB"}},
	})
	tr.Apply(compat.ProgressEvent{
		Criterion: compat.CriterionTPM,
		Stage:     compat.StageFinished,
		Result:    compat.Result{Status: false, Details: map[string]any{"version": 1.2}},
	})
	tr.Apply(compat.ProgressEvent{
		Criterion: compat.CriterionDirectX,
		Stage:     compat.StageFinished,
		Result:    compat.Result{Status: false, Details: map[string]any{}},
	})

	view := m.View()

	assert.Contains(t, view, "✓ "+compat.CriterionRAM.Title())
	assert.Contains(t, view, "16 GB (Min: 4 GB)")
	assert.Contains(t, view, "✗ "+compat.CriterionTPM.Title())
	// Non-essential failures are flagged, not failed.
	assert.Contains(t, view, "! "+compat.CriterionDirectX.Title())
	assert.Contains(t, view, "3/8")
}

func TestCheckModel_CompleteQuits(t *testing.T) {
	m := newCheckModel(NewProgressTracker(), NoColorStyles())

	_, cmd := m.Update(completeMsg(passingReport(compat.CriterionGPT)))

	assert.True(t, m.complete)
	if assert.NotNil(t, cmd) {
		assert.Equal(t, tea.Quit(), cmd())
	}
	assert.Contains(t, m.View(), "7/8 passed")
}

func TestCheckModel_WindowResize(t *testing.T) {
	m := newCheckModel(NewProgressTracker(), NoColorStyles())

	m.Update(tea.WindowSizeMsg{Width: 200, Height: 40})
	assert.Equal(t, 60, m.progressBar.Width)

	m.Update(tea.WindowSizeMsg{Width: 30, Height: 40})
	assert.Equal(t, 20, m.progressBar.Width)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{340 * time.Millisecond, "340ms"},
		{2340 * time.Millisecond, "2.3s"},
		{2 * time.Minute, "2m"},
		{125 * time.Second, "2m 5s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.in), tt.in.String())
	}
}

func TestReportRenderer_Render(t *testing.T) {
	var buf strings.Builder
	r := NewReportRenderer(&buf, true, false)

	r.Render(passingReport(compat.CriterionTPM, compat.CriterionDirectX))

	out := buf.String()
	assert.Contains(t, out, "FAIL  "+compat.CriterionTPM.Title())
	assert.Contains(t, out, "WARN  "+compat.CriterionDirectX.Title())
	assert.Contains(t, out, "PASS  "+compat.CriterionCPU.Title())
	assert.Contains(t, out, "✗ NOT COMPATIBLE")
	assert.Contains(t, out, "6/8 checks passed")
}

func TestReportRenderer_VerboseShowsDetails(t *testing.T) {
	var buf strings.Builder
	r := NewReportRenderer(&buf, true, true)
	report := passingReport()
	report.Results[compat.CriterionRAM] = compat.Result{Status: true, Details: map[string]any{"total": "16 GB"}}

	r.Render(report)

	assert.Contains(t, buf.String(), "total: 16 GB")
	assert.Contains(t, buf.String(), "✓ COMPATIBLE")
}
