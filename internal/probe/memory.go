package probe

import (
	"context"
	"sort"
	"strings"

	ccerrors "github.com/Aman-CERP/compcheck/internal/errors"
)

// Memory reports total physical memory in whole gigabytes.
func (p *Prober) Memory(ctx context.Context) (MemoryFact, error) {
	records, err := p.wmic(ctx, "computersystem", "get", "TotalPhysicalMemory")
	if err != nil {
		return MemoryFact{}, err
	}

	raw := records[0].Get("TotalPhysicalMemory")
	total, ok := ParseInt(raw)
	if !ok || total <= 0 {
		return MemoryFact{}, ccerrors.ProbeError(ccerrors.ErrCodeProbeMalformed, "wmic",
			"unexpected TotalPhysicalMemory value", nil).
			WithDetail("value", raw)
	}
	return MemoryFact{TotalBytes: total, TotalGB: BytesToGB(total)}, nil
}

// Storage reports free and total space of every logical volume.
// Volumes whose sizes do not parse (empty optical drives, disconnected
// network shares) are skipped.
func (p *Prober) Storage(ctx context.Context) (StorageFact, error) {
	fact := StorageFact{SystemDrive: p.host.Getenv("SystemDrive")}
	if fact.SystemDrive == "" {
		fact.SystemDrive = "C:"
	}

	records, err := p.wmic(ctx, "logicaldisk", "get", "Caption,FreeSpace,Size")
	if err != nil {
		return fact, err
	}

	for _, rec := range records {
		drive := rec.Get("Caption")
		free, okFree := ParseInt(rec.Get("FreeSpace"))
		size, okSize := ParseInt(rec.Get("Size"))
		if drive == "" || !okFree || !okSize {
			continue
		}

		v := Volume{Drive: drive, FreeGB: BytesToGB(free), TotalGB: BytesToGB(size)}
		fact.Volumes = append(fact.Volumes, v)
		if strings.EqualFold(drive, fact.SystemDrive) {
			fact.SystemDriveFreeGB = v.FreeGB
			fact.SystemDriveFound = true
		}
	}

	if len(fact.Volumes) == 0 {
		return fact, ccerrors.ProbeError(ccerrors.ErrCodeProbeMalformed, "wmic",
			"no logical volume reported a usable size", nil)
	}

	sort.Slice(fact.Volumes, func(i, j int) bool {
		return fact.Volumes[i].Drive < fact.Volumes[j].Drive
	})
	return fact, nil
}
