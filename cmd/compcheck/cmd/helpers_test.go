package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/compcheck/internal/compat"
	"github.com/Aman-CERP/compcheck/internal/config"
	"github.com/Aman-CERP/compcheck/internal/probe"
)

var fixedNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

// machine is a canned fact source for command tests.
type machine struct {
	calls atomic.Int32

	cpu    probe.CPUFact
	memory probe.MemoryFact
	tpm    probe.TPMFact
}

func compatibleMachine() *machine {
	return &machine{
		cpu:    probe.CPUFact{Name: "Intel Core i7-1065G7", Cores: 4, GHz: 2.4, Architecture: "AMD64", Refined: true},
		memory: probe.MemoryFact{TotalGB: 16},
		tpm:    probe.TPMFact{Version: 2.0, Source: probe.TPMSourceSpecVersion},
	}
}

func tpm12Machine() *machine {
	m := compatibleMachine()
	m.tpm = probe.TPMFact{Version: 1.2, SpecVersion: "1.2, 2, 3", Source: probe.TPMSourceSpecVersion}
	return m
}

func (m *machine) CPU(context.Context) (probe.CPUFact, error) {
	m.calls.Add(1)
	return m.cpu, nil
}

func (m *machine) Memory(context.Context) (probe.MemoryFact, error) {
	m.calls.Add(1)
	return m.memory, nil
}

func (m *machine) Storage(context.Context) (probe.StorageFact, error) {
	m.calls.Add(1)
	return probe.StorageFact{
		Volumes:           []probe.Volume{{Drive: "C:", FreeGB: 120, TotalGB: 476}},
		SystemDrive:       "C:",
		SystemDriveFreeGB: 120,
		SystemDriveFound:  true,
	}, nil
}

func (m *machine) TPM(context.Context) (probe.TPMFact, error) {
	m.calls.Add(1)
	return m.tpm, nil
}

func (m *machine) PartitionScheme(context.Context) (probe.PartitionFact, error) {
	m.calls.Add(1)
	return probe.PartitionFact{GPT: true}, nil
}

func (m *machine) SecureBoot(_ context.Context, gpt bool) (probe.SecureBootFact, error) {
	m.calls.Add(1)
	return probe.SecureBootFact{Enabled: true, UEFI: true, GPT: gpt, Source: probe.SecureBootSourceRegistry}, nil
}

func (m *machine) Graphics(context.Context) (probe.GraphicsFact, error) {
	m.calls.Add(1)
	return probe.GraphicsFact{DirectXVersion: 12, WDDMVersion: 2.7, Source: probe.GraphicsSourceDxDiag}, nil
}

func (m *machine) Architecture(context.Context) (probe.ArchFact, error) {
	m.calls.Add(1)
	return probe.ArchFact{Architecture: "AMD64", PointerBits: 64}, nil
}

// sandbox points home, config and logs at a temp dir and probes m instead
// of the real machine. It returns the temp home.
func sandbox(t *testing.T, m *machine) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, k := range []string{
		"COMPCHECK_COMMAND_TIMEOUT", "COMPCHECK_ARTIFACT_POLLS", "COMPCHECK_ARTIFACT_POLL_INTERVAL",
		"COMPCHECK_TEMP_DIR", "COMPCHECK_LOCK_ENABLED", "COMPCHECK_LOCK_TIMEOUT",
		"COMPCHECK_OUTPUT_FORMAT", "COMPCHECK_NO_COLOR", "NO_COLOR", "COMPCHECK_PLAIN", "COMPCHECK_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}

	origProber, origNow := newProber, now
	newProber = func(*config.Config, *slog.Logger) compat.Prober { return m }
	now = func() time.Time { return fixedNow }

	t.Cleanup(func() {
		newProber, now = origProber, origNow
		closeLogging()
	})

	return home
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	root := NewRootCmd()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func findCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	found, _, err := NewRootCmd().Find(args)
	if err != nil {
		t.Fatalf("command %v not found: %v", args, err)
	}
	return found
}
