package compat

import (
	"fmt"

	ccerrors "github.com/Aman-CERP/compcheck/internal/errors"
	"github.com/Aman-CERP/compcheck/internal/probe"
)

// Thresholds. They are policy, not configuration.
const (
	MinCores            = 2
	MinGHz              = 1.0
	MinIntelGeneration  = 8
	MinOtherGeneration  = 2
	MinRAMGB            = 4
	MinFreeStorageGB    = 64
	MinTPMVersion       = 2.0
	MinDirectXVersion   = 12
	MinWDDMVersion      = 2.0
	RequiredPointerBits = 64
)

// Requirement texts recorded under DetailRequired.
const (
	RequiredCPU          = "2 cores, 1 GHz, Intel 8th generation or AMD Ryzen 2000 or newer"
	RequiredRAM          = "4 GB"
	RequiredStorage      = "64 GB"
	RequiredTPM          = "2.0"
	RequiredGPT          = "GPT partition required for UEFI/Secure Boot"
	RequiredDirectX      = "DirectX 12, WDDM 2.0"
	RequiredArchitecture = "64-bit"
)

// Detail keys shared by every criterion.
const (
	DetailError     = "error"
	DetailErrorCode = "error_code"
	DetailRequired  = "required"
)

// failed builds the result of a criterion whose probe failed.
func failed(err error, required any) Result {
	d := map[string]any{
		DetailError:    err.Error(),
		DetailRequired: required,
	}
	if code := ccerrors.GetCode(err); code != "" {
		d[DetailErrorCode] = code
	}
	return Result{Status: false, Details: d}
}

func gb(n int) string {
	return fmt.Sprintf("%d GB", n)
}

// EvaluateCPU requires MinCores cores, MinGHz and a supported generation.
// Only the generation clause depends on the vendor.
func EvaluateCPU(f probe.CPUFact, err error) Result {
	if err != nil {
		return failed(err, RequiredCPU)
	}

	vendor := DetectVendor(f.Name)
	gen, recognized := DetectGeneration(f.Name)
	minMet := f.Cores >= MinCores && f.GHz >= MinGHz
	genOK := GenerationSupported(vendor, gen)

	return Result{
		Status: minMet && genOK,
		Details: map[string]any{
			"name":                   f.Name,
			"cores":                  f.Cores,
			"frequency":              fmt.Sprintf("%g GHz", f.GHz),
			"generation":             gen,
			"vendor":                 string(vendor),
			"generation_recognized":  recognized,
			"architecture":           f.Architecture,
			"compatible_generation":  genOK,
			"meets_min_requirements": minMet,
			"refined":                f.Refined,
			DetailRequired:           RequiredCPU,
		},
	}
}

// EvaluateRAM requires MinRAMGB, inclusive.
func EvaluateRAM(f probe.MemoryFact, err error) Result {
	if err != nil {
		return failed(err, RequiredRAM)
	}
	return Result{
		Status: f.TotalGB >= MinRAMGB,
		Details: map[string]any{
			"total":        gb(f.TotalGB),
			DetailRequired: RequiredRAM,
		},
	}
}

// LargestFreeGB is the most free space on any single volume, 0 for none.
func LargestFreeGB(volumes []probe.Volume) int {
	largest := 0
	for _, v := range volumes {
		largest = max(largest, v.FreeGB)
	}
	return largest
}

// EvaluateStorage requires MinFreeStorageGB free on any volume, not
// necessarily the system drive.
func EvaluateStorage(f probe.StorageFact, err error) Result {
	if err != nil {
		return failed(err, RequiredStorage)
	}

	largest := LargestFreeGB(f.Volumes)

	drives := make([]probe.Volume, len(f.Volumes))
	copy(drives, f.Volumes)

	d := map[string]any{
		"free_space":   gb(largest),
		"system_drive": f.SystemDrive,
		"all_drives":   drives,
		DetailRequired: RequiredStorage,
	}
	if f.SystemDriveFound {
		d["system_drive_free"] = gb(f.SystemDriveFreeGB)
	}
	return Result{Status: largest >= MinFreeStorageGB, Details: d}
}

// EvaluateTPM requires a TPM family version of at least MinTPMVersion.
func EvaluateTPM(f probe.TPMFact, err error) Result {
	if err != nil {
		return failed(err, RequiredTPM)
	}
	d := map[string]any{
		"version":      f.Version,
		"source":       f.Source,
		DetailRequired: RequiredTPM,
	}
	if f.SpecVersion != "" {
		d["spec_version"] = f.SpecVersion
	}
	return Result{Status: f.Version >= MinTPMVersion, Details: d}
}

// EvaluateSecureBoot passes when secure boot is enabled or the machine is
// capable of it (UEFI firmware and a GPT disk).
func EvaluateSecureBoot(f probe.SecureBootFact, err error) Result {
	if err != nil {
		return failed(err, true)
	}
	return Result{
		Status: f.Active(),
		Details: map[string]any{
			"enabled":          f.Active(),
			"currently_active": f.Enabled,
			"uefi":             f.UEFI,
			"gpt":              f.GPT,
			"source":           f.Source,
			DetailRequired:     true,
		},
	}
}

// EvaluateGPT passes when a GPT disk was found.
func EvaluateGPT(f probe.PartitionFact, err error) Result {
	if err != nil {
		return failed(err, RequiredGPT)
	}
	return Result{
		Status: f.GPT,
		Details: map[string]any{
			"is_gpt":       f.GPT,
			DetailRequired: RequiredGPT,
		},
	}
}

// EvaluateGraphics requires DirectX 12 and WDDM 2.0.
func EvaluateGraphics(f probe.GraphicsFact, err error) Result {
	if err != nil {
		return failed(err, RequiredDirectX)
	}
	return Result{
		Status: f.DirectXVersion >= MinDirectXVersion && f.WDDMVersion >= MinWDDMVersion,
		Details: map[string]any{
			"directx_version": f.DirectXVersion,
			"wddm_version":    f.WDDMVersion,
			"source":          f.Source,
			DetailRequired:    RequiredDirectX,
		},
	}
}

// EvaluateArchitecture requires a 64-bit pointer width.
func EvaluateArchitecture(f probe.ArchFact, err error) Result {
	if err != nil {
		return failed(err, RequiredArchitecture)
	}
	return Result{
		Status: f.PointerBits == RequiredPointerBits,
		Details: map[string]any{
			"architecture": f.Architecture,
			"is_64bit":     f.Is64Bit(),
			DetailRequired: RequiredArchitecture,
		},
	}
}
