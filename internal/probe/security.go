package probe

import (
	"context"
	"log/slog"
	"strings"

	ccerrors "github.com/Aman-CERP/compcheck/internal/errors"
)

// Registry locations read by the security probes.
const (
	secureBootStateKey = `SYSTEM\CurrentControlSet\Control\SecureBoot\State`
	controlKey         = `SYSTEM\CurrentControlSet\Control`
	currentVersionKey  = `SOFTWARE\Microsoft\Windows NT\CurrentVersion`
)

// firmwareTypeUEFI is the PEFirmwareType value of UEFI boots.
const firmwareTypeUEFI = 2

// TPM reports the trusted platform module family version.
// A module that is enabled but does not expose SpecVersion is assumed to
// be 2.0.
func (p *Prober) TPM(ctx context.Context) (TPMFact, error) {
	records, err := p.wmic(ctx, `/namespace:\\root\CIMV2\Security\MicrosoftTpm`, "path", "Win32_Tpm", "get", "*")
	if err != nil {
		return TPMFact{}, err
	}

	rec := records[0]
	spec := rec.Get("SpecVersion")
	if v := ParseTPMSpecVersion(spec); v > 0 {
		return TPMFact{Version: v, SpecVersion: spec, Source: TPMSourceSpecVersion}, nil
	}

	if strings.EqualFold(rec.Get("IsEnabled_InitialValue"), "TRUE") {
		p.logger().Debug("tpm version unknown, assuming 2.0 from enabled flag")
		return TPMFact{Version: 2.0, SpecVersion: spec, Source: TPMSourceEnabledFlag}, nil
	}

	return TPMFact{SpecVersion: spec}, ccerrors.ProbeError(ccerrors.ErrCodeProbeNoSignal, "wmic",
		"TPM reports neither a spec version nor an enabled state", nil)
}

// PartitionScheme scripts the disk listing utility and reports whether any
// disk uses GPT. The script file lives in a private workspace that is removed
// on every path.
func (p *Prober) PartitionScheme(ctx context.Context) (PartitionFact, error) {
	if p.host.Runner == nil {
		return PartitionFact{}, ccerrors.ProbeError(ccerrors.ErrCodeProbeUnavailable, "diskpart", "no command runner configured", nil)
	}

	ws, err := NewWorkspace(p.host.TempDir, "diskpart")
	if err != nil {
		return PartitionFact{}, err
	}
	defer func() { _ = ws.Close() }()

	script, err := ws.WriteFile("list-disk.txt", []byte("list disk\r\nexit\r\n"))
	if err != nil {
		return PartitionFact{}, err
	}

	out, err := p.host.Runner.Run(ctx, "diskpart", "/s", script)
	if err != nil {
		return PartitionFact{}, err
	}
	return PartitionFact{GPT: ParsePartitionScheme(string(out))}, nil
}

// SecureBoot reports whether secure boot is enabled, or failing that whether
// the machine boots through UEFI from a GPT disk. gpt is the partition fact of
// the current run.
func (p *Prober) SecureBoot(ctx context.Context, gpt bool) (SecureBootFact, error) {
	fact := SecureBootFact{GPT: gpt}

	enabled, regErr := p.host.Registry.ReadDWORD(secureBootStateKey, "UEFISecureBootEnabled")
	if regErr == nil && enabled == 1 {
		fact.Enabled = true
		fact.Source = SecureBootSourceRegistry
		return fact, nil
	}

	uefi, fwErr := p.firmwareIsUEFI(ctx)
	if regErr != nil && fwErr != nil {
		p.logger().Debug("no secure boot signal",
			slog.String("registry_error", regErr.Error()),
			slog.String("firmware_error", fwErr.Error()))
		return fact, ccerrors.ProbeError(ccerrors.ErrCodeProbeNoSignal, "secure_boot",
			"neither the secure boot state nor the firmware type could be read", regErr)
	}

	fact.UEFI = uefi
	if regErr == nil {
		fact.Source = SecureBootSourceRegistry
	}
	if fact.Active() {
		fact.Source = SecureBootSourceCapable
	}
	return fact, nil
}

// firmwareIsUEFI reads the boot firmware type from the registry and falls
// back to PowerShell.
func (p *Prober) firmwareIsUEFI(ctx context.Context) (bool, error) {
	if v, err := p.host.Registry.ReadDWORD(controlKey, "PEFirmwareType"); err == nil {
		return v == firmwareTypeUEFI, nil
	}
	if p.host.Runner == nil {
		return false, ccerrors.ProbeError(ccerrors.ErrCodeProbeUnavailable, "powershell", "no command runner configured", nil)
	}

	out, err := p.host.Runner.Run(ctx, "powershell", "-NoProfile", "-NonInteractive", "-Command",
		"(Get-ComputerInfo).BiosFirmwareType")
	if err != nil {
		return false, err
	}
	s := strings.TrimSpace(string(out))
	if s == "" {
		return false, ccerrors.ProbeError(ccerrors.ErrCodeProbeMalformed, "powershell", "empty firmware type", nil)
	}
	return strings.Contains(strings.ToLower(s), "uefi"), nil
}
