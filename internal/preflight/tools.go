package preflight

import "fmt"

// Tool is an external program the probes run.
type Tool struct {
	Name string
	// Used lists the criteria that depend on the tool.
	Used string
	// Required tools leave most criteria without facts when missing.
	Required bool
}

// Tools is every program the probes invoke.
var Tools = []Tool{
	{Name: "wmic", Used: "processor, memory, storage, TPM", Required: true},
	{Name: "diskpart", Used: "GPT partition, Secure Boot capability"},
	{Name: "powershell", Used: "Secure Boot firmware mode"},
	{Name: "dxdiag", Used: "DirectX / WDDM"},
}

// CheckTool verifies tool is on PATH.
func (c *Checker) CheckTool(tool Tool) CheckResult {
	result := CheckResult{
		Name:     "tool_" + tool.Name,
		Required: tool.Required,
	}

	path, err := c.lookPath(tool.Name)
	if err != nil {
		result.Status = failOrWarn(tool.Required)
		result.Message = fmt.Sprintf("%s not found; %s will fail", tool.Name, tool.Used)
		result.Details = err.Error()
		return result
	}

	result.Status = StatusPass
	result.Message = "OK"
	result.Details = path
	return result
}
