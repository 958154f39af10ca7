package compat

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ccerrors "github.com/Aman-CERP/compcheck/internal/errors"
	"github.com/Aman-CERP/compcheck/internal/probe"
)

// fakeProber returns canned facts and counts calls.
type fakeProber struct {
	mu    sync.Mutex
	calls map[string]int

	cpu       probe.CPUFact
	memory    probe.MemoryFact
	storage   probe.StorageFact
	tpm       probe.TPMFact
	partition probe.PartitionFact
	graphics  probe.GraphicsFact
	arch      probe.ArchFact
	uefi      bool
	secureOn  bool
	gotGPT    []bool

	errs map[string]error
}

func compatibleMachine() *fakeProber {
	return &fakeProber{
		calls:     map[string]int{},
		errs:      map[string]error{},
		cpu:       probe.CPUFact{Name: "Intel Core i7-1065G7", Cores: 4, GHz: 2.4, Architecture: "AMD64", Refined: true},
		memory:    probe.MemoryFact{TotalGB: 16},
		storage:   probe.StorageFact{Volumes: []probe.Volume{{Drive: "C:", FreeGB: 120, TotalGB: 476}}, SystemDrive: "C:"},
		tpm:       probe.TPMFact{Version: 2.0, Source: probe.TPMSourceSpecVersion},
		partition: probe.PartitionFact{GPT: true},
		graphics:  probe.GraphicsFact{DirectXVersion: 12, WDDMVersion: 2.7, Source: probe.GraphicsSourceDxDiag},
		arch:      probe.ArchFact{Architecture: "AMD64", PointerBits: 64},
		uefi:      true,
	}
}

func brokenMachine() *fakeProber {
	f := &fakeProber{calls: map[string]int{}, errs: map[string]error{}}
	for _, name := range []string{"cpu", "memory", "storage", "tpm", "partition", "secure_boot", "graphics", "arch"} {
		f.errs[name] = ccerrors.ProbeError(ccerrors.ErrCodeProbeUnavailable, name, name+" unavailable", nil)
	}
	return f
}

func (f *fakeProber) hit(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	return f.errs[name]
}

func (f *fakeProber) CPU(context.Context) (probe.CPUFact, error) {
	if err := f.hit("cpu"); err != nil {
		return probe.CPUFact{}, err
	}
	return f.cpu, nil
}

func (f *fakeProber) Memory(context.Context) (probe.MemoryFact, error) {
	if err := f.hit("memory"); err != nil {
		return probe.MemoryFact{}, err
	}
	return f.memory, nil
}

func (f *fakeProber) Storage(context.Context) (probe.StorageFact, error) {
	if err := f.hit("storage"); err != nil {
		return probe.StorageFact{}, err
	}
	return f.storage, nil
}

func (f *fakeProber) TPM(context.Context) (probe.TPMFact, error) {
	if err := f.hit("tpm"); err != nil {
		return probe.TPMFact{}, err
	}
	return f.tpm, nil
}

func (f *fakeProber) PartitionScheme(context.Context) (probe.PartitionFact, error) {
	if err := f.hit("partition"); err != nil {
		return probe.PartitionFact{}, err
	}
	return f.partition, nil
}

func (f *fakeProber) SecureBoot(_ context.Context, gpt bool) (probe.SecureBootFact, error) {
	f.mu.Lock()
	f.gotGPT = append(f.gotGPT, gpt)
	f.mu.Unlock()
	if err := f.hit("secure_boot"); err != nil {
		return probe.SecureBootFact{GPT: gpt}, err
	}
	return probe.SecureBootFact{Enabled: f.secureOn, UEFI: f.uefi, GPT: gpt}, nil
}

func (f *fakeProber) Graphics(context.Context) (probe.GraphicsFact, error) {
	if err := f.hit("graphics"); err != nil {
		return probe.GraphicsFact{}, err
	}
	return f.graphics, nil
}

func (f *fakeProber) Architecture(context.Context) (probe.ArchFact, error) {
	if err := f.hit("arch"); err != nil {
		return probe.ArchFact{}, err
	}
	return f.arch, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestChecker_New(t *testing.T) {
	// Given: a prober and options
	buf := &bytes.Buffer{}
	fp := compatibleMachine()
	checker := New(WithProber(fp), WithVerbose(true), WithOutput(buf), WithLogger(quietLogger()))

	// Then: options are applied
	assert.Equal(t, fp, checker.prober)
	assert.True(t, checker.verbose)
	assert.Equal(t, buf, checker.output)
}

func TestRunAll_CompatibleMachine(t *testing.T) {
	report := New(WithProber(compatibleMachine()), WithLogger(quietLogger())).RunAll(context.Background())

	assert.True(t, report.Compatible)
	assert.True(t, report.Summary.EssentialMet)
	assert.Equal(t, 8, report.Summary.TotalPassed)
	assert.Equal(t, 8, report.Summary.TotalChecks)
	require.Len(t, report.Results, 8)
}

func TestRunAll_EveryProbeFails(t *testing.T) {
	// Given: a machine where every probe fails
	fp := brokenMachine()

	// When: running all checks
	report := RunAllChecks(context.Background(), WithProber(fp), WithLogger(quietLogger()))

	// Then: the report is complete, incompatible and every status is false
	assert.False(t, report.Compatible)
	assert.Equal(t, 8, report.Summary.TotalChecks)
	assert.Zero(t, report.Summary.TotalPassed)
	require.Len(t, report.Results, 8)
	for _, c := range AllCriteria {
		res := report.Results[c]
		assert.False(t, res.Status, c)
		assert.Contains(t, res.Details, DetailError, c)
	}
}

func TestRunAll_PartitionProbedOnce(t *testing.T) {
	// Given: secure boot disabled, UEFI firmware and a GPT disk
	fp := compatibleMachine()

	// When: running all checks
	report := New(WithProber(fp), WithLogger(quietLogger())).RunAll(context.Background())

	// Then: the partition fact is probed once and shared with secure boot
	assert.Equal(t, 1, fp.calls["partition"])
	assert.Equal(t, []bool{true}, fp.gotGPT)
	assert.True(t, report.Results[CriterionSecureBoot].Status)
	assert.True(t, report.Results[CriterionGPT].Status)
}

func TestRunAll_PartitionFailureMeansNoGPT(t *testing.T) {
	fp := compatibleMachine()
	fp.errs["partition"] = errors.New("diskpart denied")

	report := New(WithProber(fp), WithLogger(quietLogger())).RunAll(context.Background())

	assert.Equal(t, []bool{false}, fp.gotGPT)
	assert.False(t, report.Results[CriterionGPT].Status)
	assert.False(t, report.Results[CriterionSecureBoot].Status)
	assert.False(t, report.Compatible)
}

func TestRunAll_GraphicsFailureKeepsCompatible(t *testing.T) {
	fp := compatibleMachine()
	fp.graphics = probe.GraphicsFact{DirectXVersion: 11, WDDMVersion: 1.3}

	report := New(WithProber(fp), WithLogger(quietLogger())).RunAll(context.Background())

	assert.True(t, report.Compatible)
	assert.False(t, report.Results[CriterionDirectX].Status)
	assert.Equal(t, 7, report.Summary.TotalPassed)
}

func TestRunAll_RAMFailureFlipsVerdict(t *testing.T) {
	fp := compatibleMachine()
	fp.memory = probe.MemoryFact{TotalGB: 3}

	report := New(WithProber(fp), WithLogger(quietLogger())).RunAll(context.Background())

	assert.False(t, report.Compatible)
	assert.False(t, report.Results[CriterionRAM].Status)
}

func TestRunAll_Idempotent(t *testing.T) {
	checker := New(WithProber(compatibleMachine()), WithLogger(quietLogger()))

	first := checker.RunAll(context.Background())
	second := checker.RunAll(context.Background())

	assert.Equal(t, first, second)
	// Each run owns fresh maps.
	first.Results[CriterionRAM].Details["total"] = "mutated"
	assert.Equal(t, "16 GB", second.Results[CriterionRAM].Details["total"])
}

func TestRunAll_IgnoresCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := New(WithProber(compatibleMachine()), WithLogger(quietLogger())).RunAll(ctx)

	assert.True(t, report.Compatible)
	assert.Len(t, report.Results, 8)
}

func TestRunAll_ProgressEvents(t *testing.T) {
	var events []ProgressEvent
	checker := New(
		WithProber(compatibleMachine()),
		WithLogger(quietLogger()),
		WithProgress(func(ev ProgressEvent) { events = append(events, ev) }),
	)

	checker.RunAll(context.Background())

	require.Len(t, events, 16)
	for i, c := range AllCriteria {
		started, finished := events[2*i], events[2*i+1]
		assert.Equal(t, c, started.Criterion)
		assert.Equal(t, StageStarted, started.Stage)
		assert.Equal(t, StageFinished, finished.Stage)
		assert.Equal(t, i, finished.Index)
		assert.Equal(t, 8, finished.Total)
		assert.True(t, finished.Result.Status)
	}
}

func TestRunAll_WithRunLock(t *testing.T) {
	lock := NewRunLock(t.TempDir(), 0)
	checker := New(WithProber(compatibleMachine()), WithLogger(quietLogger()), WithRunLock(lock))

	report := checker.RunAll(context.Background())
	assert.True(t, report.Compatible)

	// The lock is released after the run.
	release, err := lock.Acquire(context.Background())
	require.NoError(t, err)
	release()
}
