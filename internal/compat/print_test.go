package compat

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aman-CERP/compcheck/internal/probe"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		crit Criterion
		res  Result
		want string
	}{
		{CriterionRAM, EvaluateRAM(probe.MemoryFact{TotalGB: 16}, nil), "16 GB (Min: 4 GB)"},
		{CriterionStorage, EvaluateStorage(probe.StorageFact{Volumes: []probe.Volume{{Drive: "D:", FreeGB: 70}}}, nil), "70 GB free (Min: 64 GB)"},
		{CriterionTPM, EvaluateTPM(probe.TPMFact{Version: 2.0}, nil), "TPM 2.0 (Min: 2.0)"},
		{CriterionSecureBoot, EvaluateSecureBoot(probe.SecureBootFact{Enabled: true}, nil), "Active (Min: supported)"},
		{CriterionGPT, EvaluateGPT(probe.PartitionFact{}, nil), "MBR or unknown (Min: GPT)"},
		{CriterionDirectX, EvaluateGraphics(probe.GraphicsFact{DirectXVersion: 12, WDDMVersion: 2}, nil), "DirectX 12, WDDM 2.0 (Min: DirectX 12, WDDM 2.0)"},
		{CriterionArchitecture, EvaluateArchitecture(probe.ArchFact{Architecture: "AMD64", PointerBits: 64}, nil), "AMD64 64-bit (Min: 64-bit)"},
		{CriterionCPU, EvaluateCPU(probe.CPUFact{Name: "AMD Ryzen 5 3600", Cores: 6, GHz: 3.6}, nil), "AMD Ryzen 5 3600 (6 cores, 3.6 GHz) (Min: 2 cores, 1 GHz, supported generation)"},
	}

	for _, tt := range tests {
		t.Run(string(tt.crit), func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.crit, tt.res))
		})
	}
}

func TestDescribe_ReadBackValues(t *testing.T) {
	// JSON decoding turns numbers into float64.
	res := Result{Status: true, Details: map[string]any{"version": float64(2)}}
	assert.Equal(t, "TPM 2.0 (Min: 2.0)", Describe(CriterionTPM, res))
}

func TestDescribe_Error(t *testing.T) {
	res := Result{Details: map[string]any{DetailError: "wmic not found"}}
	assert.Equal(t, "error: wmic not found", Describe(CriterionRAM, res))
}

func TestChecker_PrintResults(t *testing.T) {
	// Given: a machine failing RAM and graphics
	fp := compatibleMachine()
	fp.memory = probe.MemoryFact{TotalGB: 2}
	fp.graphics = probe.GraphicsFact{DirectXVersion: 11, WDDMVersion: 1.3}

	buf := &bytes.Buffer{}
	checker := New(WithProber(fp), WithOutput(buf), WithLogger(quietLogger()))

	// When: printing the report
	checker.PrintResults(checker.RunAll(context.Background()))

	// Then: verdict, counts and both issue lists are shown
	out := buf.String()
	assert.Contains(t, out, "Windows 11 Compatibility Check")
	assert.Contains(t, out, "[PASS] Processor:")
	assert.Contains(t, out, "[FAIL] Memory: 2 GB (Min: 4 GB)")
	assert.Contains(t, out, "Status: NOT COMPATIBLE")
	assert.Contains(t, out, "Passed: 6/8 checks")
	assert.Contains(t, out, "1 requirement(s) not met:")
	assert.Contains(t, out, "1 warning(s):")
	assert.NotContains(t, out, "required:")
}

func TestChecker_PrintResults_Verbose(t *testing.T) {
	buf := &bytes.Buffer{}
	checker := New(WithProber(compatibleMachine()), WithOutput(buf), WithVerbose(true), WithLogger(quietLogger()))

	checker.PrintResults(checker.RunAll(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "Status: COMPATIBLE")
	assert.Contains(t, out, "      required: 4 GB")
	assert.Contains(t, out, "      generation: 10")
}
