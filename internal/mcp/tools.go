package mcp

import "github.com/Aman-CERP/compcheck/internal/compat"

// CheckInput defines the input schema for the check_compatibility tool.
type CheckInput struct {
	UseCached bool `json:"use_cached,omitempty" jsonschema:"return the last report of this session instead of probing again"`
}

// CheckOutput defines the output schema for the check_compatibility tool.
type CheckOutput struct {
	Compatible  bool              `json:"compatible" jsonschema:"true when every essential requirement is met"`
	Verdict     string            `json:"verdict" jsonschema:"COMPATIBLE or NOT COMPATIBLE"`
	Summary     compat.Summary    `json:"summary"`
	Criteria    []CriterionOutput `json:"criteria" jsonschema:"one entry per requirement, in evaluation order"`
	GeneratedAt string            `json:"generated_at,omitempty" jsonschema:"RFC3339 time the report was produced"`
	Host        string            `json:"host,omitempty"`
}

// CriterionOutput is the outcome of one requirement.
type CriterionOutput struct {
	Criterion string         `json:"criterion" jsonschema:"requirement identifier, e.g. tpm"`
	Title     string         `json:"title"`
	Essential bool           `json:"essential" jsonschema:"whether failing it makes the machine incompatible"`
	Status    bool           `json:"status" jsonschema:"true when the requirement is met"`
	Summary   string         `json:"summary" jsonschema:"measured value next to the minimum"`
	Details   map[string]any `json:"details"`
}

// ExportInput defines the input schema for the export_report tool.
type ExportInput struct {
	Path    string `json:"path" jsonschema:"destination file; the extension selects json, yaml, md, html or csv"`
	Refresh bool   `json:"refresh,omitempty" jsonschema:"probe again instead of exporting the last report"`
}

// ExportOutput defines the output schema for the export_report tool.
type ExportOutput struct {
	Path       string `json:"path" jsonschema:"absolute path written"`
	Format     string `json:"format"`
	MIMEType   string `json:"mime_type"`
	Compatible bool   `json:"compatible"`
}

// RequirementsInput defines the input schema for the get_requirements tool (no parameters).
type RequirementsInput struct{}

// RequirementsOutput defines the output schema for the get_requirements tool.
type RequirementsOutput struct {
	Requirements []RequirementOutput `json:"requirements"`
}

// RequirementOutput describes one requirement.
type RequirementOutput struct {
	Criterion string `json:"criterion"`
	Title     string `json:"title"`
	Minimum   string `json:"minimum"`
	Essential bool   `json:"essential"`
}
