package probe

import (
	"context"
	"log/slog"
	"strings"

	ccerrors "github.com/Aman-CERP/compcheck/internal/errors"
)

// Prober runs the individual fact probes against a Host.
type Prober struct {
	host Host
}

// New creates a Prober. Unset Host fields get working defaults; a nil Runner
// makes every command-backed probe fail as unavailable.
func New(host Host) *Prober {
	return &Prober{host: host.withDefaults()}
}

// Host returns the host the prober is bound to.
func (p *Prober) Host() Host {
	return p.host
}

func (p *Prober) logger() *slog.Logger {
	return p.host.Logger
}

// wmic runs a list-formatted inventory query.
func (p *Prober) wmic(ctx context.Context, args ...string) ([]Record, error) {
	if p.host.Runner == nil {
		return nil, ccerrors.ProbeError(ccerrors.ErrCodeProbeUnavailable, "wmic", "no command runner configured", nil)
	}
	out, err := p.host.Runner.Run(ctx, "wmic", append(args, "/format:list")...)
	if err != nil {
		return nil, err
	}
	records := ParseRecords(string(out))
	if len(records) == 0 {
		return nil, ccerrors.ProbeError(ccerrors.ErrCodeProbeMalformed, "wmic",
			"inventory query returned no instances", nil).
			WithDetail("query", strings.Join(args, " "))
	}
	return records, nil
}

// Architecture reports the process pointer width and architecture.
func (p *Prober) Architecture(_ context.Context) (ArchFact, error) {
	arch := p.host.Getenv("PROCESSOR_ARCHITECTURE")
	if arch == "" {
		arch = p.host.GOARCH
	}
	return ArchFact{Architecture: arch, PointerBits: p.host.PointerBits}, nil
}
