package ui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Aman-CERP/compcheck/internal/compat"
)

// TUIRenderer shows a live checklist of the criteria using bubbletea.
type TUIRenderer struct {
	mu      sync.Mutex
	cfg     Config
	program *tea.Program
	model   *checkModel
	tracker *ProgressTracker
	cancel  context.CancelFunc
	started bool
	done    chan struct{}
}

// NewTUIRenderer creates a TUI renderer.
// Returns an error if the output is not a terminal.
func NewTUIRenderer(cfg Config) (*TUIRenderer, error) {
	if !IsTTY(cfg.Output) {
		return nil, fmt.Errorf("output is not a TTY")
	}

	tracker := NewProgressTracker()
	return &TUIRenderer{
		cfg:     cfg,
		tracker: tracker,
		model:   newCheckModel(tracker, GetStyles(cfg.NoColor)),
		done:    make(chan struct{}),
	}, nil
}

// Start implements Renderer.
func (r *TUIRenderer) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return nil
	}

	ctx, r.cancel = context.WithCancel(ctx)

	// No alt screen: the final checklist stays in the scrollback.
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithInput(nil)}
	if f, ok := r.cfg.Output.(*os.File); ok {
		opts = append(opts, tea.WithOutput(f))
	}

	r.program = tea.NewProgram(r.model, opts...)
	r.started = true

	go func() {
		defer close(r.done)
		_, _ = r.program.Run()
	}()

	return nil
}

// Update implements Renderer.
func (r *TUIRenderer) Update(ev compat.ProgressEvent) {
	r.tracker.Apply(ev)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.program != nil {
		r.program.Send(progressMsg(ev))
	}
}

// Complete implements Renderer.
func (r *TUIRenderer) Complete(report compat.Report) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.program != nil {
		r.program.Send(completeMsg(report))
	}
}

// Stop implements Renderer.
func (r *TUIRenderer) Stop() error {
	r.mu.Lock()
	program := r.program
	r.mu.Unlock()

	if program == nil {
		return nil
	}

	// Let the final frame render before tearing down.
	select {
	case <-r.done:
	case <-time.After(2 * time.Second):
		program.Quit()
		select {
		case <-r.done:
		case <-time.After(time.Second):
		}
	}
	if r.cancel != nil {
		r.cancel()
	}
	return nil
}

type progressMsg compat.ProgressEvent
type completeMsg compat.Report

// checkModel is the bubbletea model for a run.
type checkModel struct {
	tracker     *ProgressTracker
	spinner     spinner.Model
	progressBar progress.Model
	styles      Styles
	width       int
	complete    bool
	report      compat.Report
}

func newCheckModel(tracker *ProgressTracker, styles Styles) *checkModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Active

	p := progress.New(
		progress.WithSolidFill(ColorLime),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	return &checkModel{
		tracker:     tracker,
		spinner:     s,
		progressBar: p,
		styles:      styles,
		width:       80,
	}
}

// Init implements tea.Model.
func (m *checkModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m *checkModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progressBar.Width = min(max(msg.Width-30, 20), 60)

	case progressMsg:
		return m, nil

	case completeMsg:
		m.complete = true
		m.report = compat.Report(msg)
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m *checkModel) View() string {
	stats := m.tracker.Stats()

	var lines []string
	lines = append(lines, m.styles.Header.Render("Windows 11 Compatibility Check"))
	lines = append(lines, "")
	for _, row := range stats.Rows {
		lines = append(lines, m.renderRow(row))
	}
	lines = append(lines, "")

	if m.complete {
		lines = append(lines, m.styles.Label.Render(fmt.Sprintf("%d/%d passed in %s",
			m.report.Summary.TotalPassed, m.report.Summary.TotalChecks, formatDuration(stats.Elapsed))))
	} else {
		lines = append(lines, fmt.Sprintf("%s  %s",
			m.progressBar.ViewAs(stats.Progress),
			m.styles.Label.Render(fmt.Sprintf("%d/%d", stats.Done, stats.Total))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

func (m *checkModel) renderRow(row Row) string {
	title := fmt.Sprintf("%-14s", row.Criterion.Title())
	switch row.State {
	case StateRunning:
		return fmt.Sprintf("%s %s", m.spinner.View(), m.styles.Active.Render(title))
	case StatePassed:
		return fmt.Sprintf("%s %s %s", m.styles.Pass.Render("✓"), title,
			m.styles.Dim.Render(compat.Describe(row.Criterion, row.Result)))
	case StateFailed:
		mark := m.styles.Fail.Render("✗")
		if !compat.IsEssential(row.Criterion) {
			mark = m.styles.Warning.Render("!")
		}
		return fmt.Sprintf("%s %s %s", mark, title,
			m.styles.Label.Render(compat.Describe(row.Criterion, row.Result)))
	default:
		return m.styles.Dim.Render("○ " + strings.TrimRight(title, " "))
	}
}

// formatDuration formats a duration in a human-friendly way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(10 * time.Millisecond).String()
	}
	d = d.Round(100 * time.Millisecond)
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	if s == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dm %ds", m, s)
}

var _ Renderer = (*TUIRenderer)(nil)
