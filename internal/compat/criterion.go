package compat

// Criterion identifies one compatibility dimension.
type Criterion string

// The fixed criterion set.
const (
	CriterionCPU          Criterion = "cpu"
	CriterionRAM          Criterion = "ram"
	CriterionStorage      Criterion = "storage"
	CriterionTPM          Criterion = "tpm"
	CriterionSecureBoot   Criterion = "secure_boot"
	CriterionGPT          Criterion = "gpt"
	CriterionDirectX      Criterion = "directx"
	CriterionArchitecture Criterion = "architecture"
)

// AllCriteria lists every criterion in evaluation order.
// secure_boot precedes gpt so the partition fact is probed once and shared.
var AllCriteria = []Criterion{
	CriterionCPU,
	CriterionRAM,
	CriterionStorage,
	CriterionTPM,
	CriterionSecureBoot,
	CriterionGPT,
	CriterionDirectX,
	CriterionArchitecture,
}

// EssentialCriteria decides the aggregate verdict. directx is informational.
var EssentialCriteria = []Criterion{
	CriterionCPU,
	CriterionRAM,
	CriterionStorage,
	CriterionTPM,
	CriterionSecureBoot,
	CriterionGPT,
	CriterionArchitecture,
}

// TotalChecks is the cardinality of the criterion set.
var TotalChecks = len(AllCriteria)

// IsEssential reports whether c belongs to the essential subset.
func IsEssential(c Criterion) bool {
	for _, e := range EssentialCriteria {
		if e == c {
			return true
		}
	}
	return false
}

// Title returns a human-readable name for c.
func (c Criterion) Title() string {
	switch c {
	case CriterionCPU:
		return "Processor"
	case CriterionRAM:
		return "Memory"
	case CriterionStorage:
		return "Storage"
	case CriterionTPM:
		return "TPM"
	case CriterionSecureBoot:
		return "Secure Boot"
	case CriterionGPT:
		return "GPT Partition"
	case CriterionDirectX:
		return "DirectX / WDDM"
	case CriterionArchitecture:
		return "Architecture"
	default:
		return string(c)
	}
}

// Result is the verdict for one criterion. Details carry the normalized
// facts and the literal requirement; on probe failure they carry "error".
type Result struct {
	Status  bool           `json:"status" yaml:"status"`
	Details map[string]any `json:"details" yaml:"details"`
}

// Failed reports whether the probe behind this result failed.
func (r Result) Failed() bool {
	_, ok := r.Details[DetailError]
	return ok
}

// Summary is the aggregate count.
type Summary struct {
	EssentialMet bool `json:"essential_requirements_met" yaml:"essential_requirements_met"`
	TotalPassed  int  `json:"total_passed" yaml:"total_passed"`
	TotalChecks  int  `json:"total_checks" yaml:"total_checks"`
}

// Report is the result of one run.
type Report struct {
	Compatible bool                 `json:"compatible" yaml:"compatible"`
	Results    map[Criterion]Result `json:"details" yaml:"details"`
	Summary    Summary              `json:"summary" yaml:"summary"`
	// GeneratedAt and Host are set by callers that persist the report.
	GeneratedAt string `json:"generated_at,omitempty" yaml:"generated_at,omitempty"`
	Host        string `json:"host,omitempty" yaml:"host,omitempty"`
}

// Result returns the result for c. Missing criteria read as failed.
func (r Report) Result(c Criterion) Result {
	res, ok := r.Results[c]
	if !ok {
		return Result{Details: map[string]any{}}
	}
	return res
}
