package probe

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"time"
)

// Default probe settings.
const (
	DefaultCommandTimeout       = 30 * time.Second
	DefaultArtifactPolls        = 5
	DefaultArtifactPollInterval = time.Second
)

// Runner executes an external command and returns its standard output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// Registry reads values below HKEY_LOCAL_MACHINE.
type Registry interface {
	ReadDWORD(path, name string) (uint64, error)
	ReadString(path, name string) (string, error)
}

// WaitPolicy bounds the wait for an asynchronously produced artifact.
type WaitPolicy struct {
	Polls    int
	Interval time.Duration
}

// Total returns the longest time a wait may take.
func (w WaitPolicy) Total() time.Duration {
	return time.Duration(w.Polls) * w.Interval
}

// Host is everything a probe may touch on the machine.
// Tests replace any field with a fake.
type Host struct {
	Runner      Runner
	Registry    Registry
	Getenv      func(string) string
	FileExists  func(string) bool
	GOARCH      string
	PointerBits int
	NumCPU      int
	TempDir     string
	Wait        WaitPolicy
	Logger      *slog.Logger
}

// Options configures the real host.
type Options struct {
	CommandTimeout       time.Duration
	ArtifactPolls        int
	ArtifactPollInterval time.Duration
	TempDir              string
	Logger               *slog.Logger
}

// NewHost returns a Host bound to the running machine.
func NewHost(opts Options) Host {
	if opts.CommandTimeout <= 0 {
		opts.CommandTimeout = DefaultCommandTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	h := Host{
		Runner:      NewExecRunner(opts.CommandTimeout, logger),
		Registry:    NewRegistry(),
		Getenv:      os.Getenv,
		FileExists:  fileExists,
		GOARCH:      runtime.GOARCH,
		PointerBits: strconv.IntSize,
		NumCPU:      runtime.NumCPU(),
		TempDir:     opts.TempDir,
		Wait: WaitPolicy{
			Polls:    opts.ArtifactPolls,
			Interval: opts.ArtifactPollInterval,
		},
		Logger: logger,
	}
	return h.withDefaults()
}

// withDefaults fills any unset field so a partially built Host is usable.
func (h Host) withDefaults() Host {
	if h.Registry == nil {
		h.Registry = NewRegistry()
	}
	if h.Getenv == nil {
		h.Getenv = func(string) string { return "" }
	}
	if h.FileExists == nil {
		h.FileExists = fileExists
	}
	if h.GOARCH == "" {
		h.GOARCH = runtime.GOARCH
	}
	if h.PointerBits == 0 {
		h.PointerBits = strconv.IntSize
	}
	if h.TempDir == "" {
		h.TempDir = os.TempDir()
	}
	if h.Wait.Polls <= 0 {
		h.Wait.Polls = DefaultArtifactPolls
	}
	if h.Wait.Interval <= 0 {
		h.Wait.Interval = DefaultArtifactPollInterval
	}
	if h.Logger == nil {
		h.Logger = slog.Default()
	}
	return h
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
