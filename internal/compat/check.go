package compat

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	ccerrors "github.com/Aman-CERP/compcheck/internal/errors"
	"github.com/Aman-CERP/compcheck/internal/probe"
)

// Prober gathers the facts behind each criterion.
// *probe.Prober is the production implementation.
type Prober interface {
	CPU(ctx context.Context) (probe.CPUFact, error)
	Memory(ctx context.Context) (probe.MemoryFact, error)
	Storage(ctx context.Context) (probe.StorageFact, error)
	TPM(ctx context.Context) (probe.TPMFact, error)
	PartitionScheme(ctx context.Context) (probe.PartitionFact, error)
	SecureBoot(ctx context.Context, gpt bool) (probe.SecureBootFact, error)
	Graphics(ctx context.Context) (probe.GraphicsFact, error)
	Architecture(ctx context.Context) (probe.ArchFact, error)
}

var _ Prober = (*probe.Prober)(nil)

// Stage marks the position of a criterion in a run.
type Stage int

const (
	// StageStarted is sent before a criterion is probed.
	StageStarted Stage = iota
	// StageFinished is sent once its result is known.
	StageFinished
)

// ProgressEvent reports progress of a run.
type ProgressEvent struct {
	Criterion Criterion
	Stage     Stage
	Index     int
	Total     int
	Result    Result
	Elapsed   time.Duration
}

// ProgressFunc receives progress events on the run's goroutine.
type ProgressFunc func(ProgressEvent)

// Checker runs the compatibility checks.
type Checker struct {
	prober   Prober
	logger   *slog.Logger
	progress ProgressFunc
	lock     *RunLock
	verbose  bool
	output   io.Writer
}

// Option configures a Checker.
type Option func(*Checker)

// WithProber sets the fact source.
func WithProber(p Prober) Option {
	return func(c *Checker) {
		c.prober = p
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) {
		c.logger = l
	}
}

// WithProgress sets a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Checker) {
		c.progress = fn
	}
}

// WithRunLock serializes runs through lock. A nil lock disables locking.
func WithRunLock(lock *RunLock) Option {
	return func(c *Checker) {
		c.lock = lock
	}
}

// WithVerbose enables verbose output.
func WithVerbose(verbose bool) Option {
	return func(c *Checker) {
		c.verbose = verbose
	}
}

// WithOutput sets the output writer.
func WithOutput(w io.Writer) Option {
	return func(c *Checker) {
		c.output = w
	}
}

// New creates a new Checker with the given options.
// Without WithProber it probes the running machine with default settings.
func New(opts ...Option) *Checker {
	c := &Checker{
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.prober == nil {
		c.prober = probe.New(probe.NewHost(probe.Options{Logger: c.logger}))
	}
	return c
}

// RunAllChecks runs every check once with a new Checker.
func RunAllChecks(ctx context.Context, opts ...Option) Report {
	return New(opts...).RunAll(ctx)
}

// RunAll probes and evaluates every criterion sequentially and aggregates
// the results. It always returns a complete report. Cancelling ctx does not
// interrupt a run; the probes' own timeouts bound it.
func (c *Checker) RunAll(ctx context.Context) Report {
	ctx = context.WithoutCancel(ctx)
	start := time.Now()

	if c.lock != nil {
		release, err := c.lock.Acquire(ctx)
		if err != nil {
			c.logger.Warn("running without the run lock", ccerrors.FormatForLog(err)...)
		} else {
			defer release()
		}
	}

	c.logger.Info("compatibility run started", slog.Int("criteria", TotalChecks))

	r := &run{checker: c, ctx: ctx}
	results := make(map[Criterion]Result, TotalChecks)
	for i, crit := range AllCriteria {
		c.emit(ProgressEvent{Criterion: crit, Stage: StageStarted, Index: i, Total: TotalChecks})

		began := time.Now()
		res := r.evaluate(crit)
		results[crit] = res

		c.emit(ProgressEvent{
			Criterion: crit,
			Stage:     StageFinished,
			Index:     i,
			Total:     TotalChecks,
			Result:    res,
			Elapsed:   time.Since(began),
		})
	}

	report := NewReport(results)
	c.logger.Info("compatibility run finished",
		slog.Bool("compatible", report.Compatible),
		slog.Int("passed", report.Summary.TotalPassed),
		slog.Int("total", report.Summary.TotalChecks),
		slog.Duration("duration", time.Since(start)))

	return report
}

func (c *Checker) emit(ev ProgressEvent) {
	if c.progress != nil {
		c.progress(ev)
	}
}

// run holds per-run state: the partition fact is probed at most once.
type run struct {
	checker *Checker
	ctx     context.Context

	partitionDone bool
	partition     probe.PartitionFact
	partitionErr  error
}

func (r *run) partitionFact() (probe.PartitionFact, error) {
	if !r.partitionDone {
		r.partition, r.partitionErr = r.checker.prober.PartitionScheme(r.ctx)
		r.partitionDone = true
	}
	return r.partition, r.partitionErr
}

func (r *run) evaluate(crit Criterion) Result {
	p := r.checker.prober
	ctx := r.ctx

	var (
		res Result
		err error
	)
	switch crit {
	case CriterionCPU:
		var f probe.CPUFact
		f, err = p.CPU(ctx)
		res = EvaluateCPU(f, err)
	case CriterionRAM:
		var f probe.MemoryFact
		f, err = p.Memory(ctx)
		res = EvaluateRAM(f, err)
	case CriterionStorage:
		var f probe.StorageFact
		f, err = p.Storage(ctx)
		res = EvaluateStorage(f, err)
	case CriterionTPM:
		var f probe.TPMFact
		f, err = p.TPM(ctx)
		res = EvaluateTPM(f, err)
	case CriterionSecureBoot:
		part, perr := r.partitionFact()
		// An unreadable partition table counts as not GPT.
		gpt := perr == nil && part.GPT
		var f probe.SecureBootFact
		f, err = p.SecureBoot(ctx, gpt)
		res = EvaluateSecureBoot(f, err)
	case CriterionGPT:
		var f probe.PartitionFact
		f, err = r.partitionFact()
		res = EvaluateGPT(f, err)
	case CriterionDirectX:
		var f probe.GraphicsFact
		f, err = p.Graphics(ctx)
		res = EvaluateGraphics(f, err)
	case CriterionArchitecture:
		var f probe.ArchFact
		f, err = p.Architecture(ctx)
		res = EvaluateArchitecture(f, err)
	default:
		err = ccerrors.InternalError("unknown criterion "+string(crit), nil)
		res = failed(err, "")
	}

	if err != nil {
		attrs := append([]any{slog.String("criterion", string(crit))}, ccerrors.FormatForLog(err)...)
		r.checker.logger.Warn("probe failed", attrs...)
	}
	return res
}
