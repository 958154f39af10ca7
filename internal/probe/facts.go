package probe

// CPUFact describes the processor.
type CPUFact struct {
	Name         string
	Cores        int
	GHz          float64
	Architecture string
	// Refined is false when only the coarse platform self-report was available.
	Refined bool
}

// MemoryFact is the installed physical memory.
type MemoryFact struct {
	TotalBytes int64
	TotalGB    int
}

// Volume is one logical drive.
type Volume struct {
	Drive   string `json:"drive" yaml:"drive"`
	FreeGB  int    `json:"free_gb" yaml:"free_gb"`
	TotalGB int    `json:"total_gb" yaml:"total_gb"`
}

// StorageFact summarizes all logical volumes.
type StorageFact struct {
	Volumes     []Volume
	SystemDrive string
	// SystemDriveFreeGB is meaningful only when SystemDriveFound is set.
	SystemDriveFreeGB int
	SystemDriveFound  bool
}

// TPM version sources.
const (
	TPMSourceSpecVersion = "spec_version"
	TPMSourceEnabledFlag = "enabled_flag"
)

// TPMFact is the trusted platform module family version.
type TPMFact struct {
	Version     float64
	SpecVersion string
	Source      string
}

// PartitionFact is the partition style of the installed disks.
type PartitionFact struct {
	GPT bool
}

// Secure boot sources.
const (
	SecureBootSourceRegistry = "registry"
	SecureBootSourceCapable  = "uefi_gpt"
)

// SecureBootFact describes secure boot enablement and capability.
type SecureBootFact struct {
	Enabled bool
	UEFI    bool
	GPT     bool
	Source  string
}

// Active reports whether secure boot is enabled or the machine can enable it.
func (f SecureBootFact) Active() bool {
	return f.Enabled || (f.UEFI && f.GPT)
}

// Graphics sources.
const (
	GraphicsSourceDxDiag   = "dxdiag"
	GraphicsSourceFallback = "fallback"
)

// GraphicsFact is the graphics API and driver model level.
type GraphicsFact struct {
	DirectXVersion int
	WDDMVersion    float64
	Source         string
}

// ArchFact is the process architecture.
type ArchFact struct {
	Architecture string
	PointerBits  int
}

// Is64Bit reports a 64-bit pointer width.
func (f ArchFact) Is64Bit() bool {
	return f.PointerBits == 64
}
