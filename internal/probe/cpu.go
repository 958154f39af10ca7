package probe

import (
	"context"
	"log/slog"
	"strings"
)

// CPU reports the processor name, physical cores and maximum clock.
// The platform self-report is refined by an inventory query; when the query
// fails the self-report is kept and Refined stays false.
func (p *Prober) CPU(ctx context.Context) (CPUFact, error) {
	fact := CPUFact{
		Name:         strings.TrimSpace(p.host.Getenv("PROCESSOR_IDENTIFIER")),
		Cores:        p.host.NumCPU,
		Architecture: p.host.Getenv("PROCESSOR_ARCHITECTURE"),
	}
	if fact.Architecture == "" {
		fact.Architecture = p.host.GOARCH
	}

	records, err := p.wmic(ctx, "cpu", "get", "Name,NumberOfCores,MaxClockSpeed")
	if err != nil {
		p.logger().Debug("cpu refinement failed, keeping self-report",
			slog.String("error", err.Error()))
		return fact, nil
	}

	// Multi-socket machines list one record per package; they are identical.
	rec := records[0]
	if name := rec.Get("Name"); name != "" {
		fact.Name = name
		fact.Refined = true
	}
	if cores, ok := ParseInt(rec.Get("NumberOfCores")); ok && cores > 0 {
		fact.Cores = int(cores)
		fact.Refined = true
	}
	if mhz, ok := ParseInt(rec.Get("MaxClockSpeed")); ok && mhz > 0 {
		fact.GHz = MHzToGHz(mhz)
		fact.Refined = true
	}
	return fact, nil
}
