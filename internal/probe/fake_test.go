package probe

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	ccerrors "github.com/Aman-CERP/compcheck/internal/errors"
)

const tpmQuery = `wmic /namespace:\\root\CIMV2\Security\MicrosoftTpm`

type fakeResponse struct {
	out string
	err error
}

// fakeRunner answers commands keyed by "name firstArg", then by name alone.
type fakeRunner struct {
	mu        sync.Mutex
	responses map[string]fakeResponse
	hook      func(name string, args []string) ([]byte, error, bool)
	calls     []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{responses: map[string]fakeResponse{}}
}

func (f *fakeRunner) on(key, out string) *fakeRunner {
	f.responses[key] = fakeResponse{out: out}
	return f
}

func (f *fakeRunner) fail(key string, err error) *fakeRunner {
	f.responses[key] = fakeResponse{err: err}
	return f
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	key := name
	if len(args) > 0 {
		key += " " + args[0]
	}

	f.mu.Lock()
	f.calls = append(f.calls, name+" "+strings.Join(args, " "))
	hook := f.hook
	resp, ok := f.responses[key]
	if !ok {
		resp, ok = f.responses[name]
	}
	f.mu.Unlock()

	if hook != nil {
		if out, err, handled := hook(name, args); handled {
			return out, err
		}
	}
	if !ok {
		return nil, ccerrors.ProbeError(ccerrors.ErrCodeProbeUnavailable, name, name+" not found", nil)
	}
	return []byte(resp.out), resp.err
}

func (f *fakeRunner) callCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

type fakeRegistry struct {
	dwords  map[string]uint64
	strings map[string]string
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{dwords: map[string]uint64{}, strings: map[string]string{}}
}

func (r *fakeRegistry) ReadDWORD(path, name string) (uint64, error) {
	if v, ok := r.dwords[path+`\`+name]; ok {
		return v, nil
	}
	return 0, ccerrors.ProbeError(ccerrors.ErrCodeProbeNoSignal, "registry", "missing "+name, nil)
}

func (r *fakeRegistry) ReadString(path, name string) (string, error) {
	if v, ok := r.strings[path+`\`+name]; ok {
		return v, nil
	}
	return "", ccerrors.ProbeError(ccerrors.ErrCodeProbeNoSignal, "registry", "missing "+name, nil)
}

func testHost(t *testing.T, runner Runner, reg Registry, env map[string]string) Host {
	t.Helper()
	return Host{
		Runner:      runner,
		Registry:    reg,
		Getenv:      func(k string) string { return env[k] },
		FileExists:  func(string) bool { return false },
		GOARCH:      "amd64",
		PointerBits: 64,
		NumCPU:      8,
		TempDir:     t.TempDir(),
		Wait:        WaitPolicy{Polls: 3, Interval: 20 * time.Millisecond},
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
