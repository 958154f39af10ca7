package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/compcheck/internal/compat"
	"github.com/Aman-CERP/compcheck/internal/report"
)

// fakeRunner returns a fixed report and counts runs.
type fakeRunner struct {
	report compat.Report
	runs   atomic.Int32
}

func (f *fakeRunner) RunAll(_ context.Context) compat.Report {
	f.runs.Add(1)
	return f.report
}

func reportWith(failing ...compat.Criterion) compat.Report {
	results := make(map[compat.Criterion]compat.Result, compat.TotalChecks)
	for _, c := range compat.AllCriteria {
		results[c] = compat.Result{Status: true, Details: map[string]any{}}
	}
	for _, c := range failing {
		results[c] = compat.Result{Status: false, Details: map[string]any{"error": "probe failed"}}
	}
	return compat.NewReport(results)
}

func newTestServer(t *testing.T, r compat.Report) (*Server, *fakeRunner) {
	t.Helper()
	runner := &fakeRunner{report: r}
	s, err := NewServer(runner, nil)
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }
	return s, runner
}

func TestNewServer_RequiresRunner(t *testing.T) {
	_, err := NewServer(nil, nil)
	assert.Error(t, err)
}

func TestServer_Info(t *testing.T) {
	s, _ := newTestServer(t, reportWith())

	name, ver := s.Info()

	assert.Equal(t, "compcheck", name)
	assert.NotEmpty(t, ver)
	assert.NotNil(t, s.MCPServer())
}

func TestServer_ListTools(t *testing.T) {
	s, _ := newTestServer(t, reportWith())

	var names []string
	for _, tool := range s.ListTools() {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description)
	}

	assert.Equal(t, []string{"check_compatibility", "export_report", "get_requirements"}, names)
}

func TestCallTool_CheckCompatibility(t *testing.T) {
	// Given: a machine failing TPM
	s, runner := newTestServer(t, reportWith(compat.CriterionTPM))

	// When: calling check_compatibility
	got, err := s.CallTool(context.Background(), "check_compatibility", nil)

	// Then: the output carries the verdict and every criterion in order
	require.NoError(t, err)
	out, ok := got.(CheckOutput)
	require.True(t, ok)
	assert.False(t, out.Compatible)
	assert.Equal(t, "NOT COMPATIBLE", out.Verdict)
	assert.Equal(t, 7, out.Summary.TotalPassed)
	assert.Equal(t, "2026-10-19T09:00:00Z", out.GeneratedAt)
	require.Len(t, out.Criteria, compat.TotalChecks)
	for i, c := range compat.AllCriteria {
		assert.Equal(t, string(c), out.Criteria[i].Criterion)
	}
	assert.False(t, out.Criteria[3].Status)
	assert.Equal(t, int32(1), runner.runs.Load())
}

func TestCallTool_CheckCompatibility_UseCached(t *testing.T) {
	s, runner := newTestServer(t, reportWith())

	_, err := s.CallTool(context.Background(), "check_compatibility", map[string]any{"use_cached": true})
	require.NoError(t, err)
	_, err = s.CallTool(context.Background(), "check_compatibility", map[string]any{"use_cached": true})
	require.NoError(t, err)
	_, err = s.CallTool(context.Background(), "check_compatibility", nil)
	require.NoError(t, err)

	// The first cached call has nothing to reuse; the last one forces a run.
	assert.Equal(t, int32(2), runner.runs.Load())
}

func TestCallTool_ConcurrentChecksAreSerialized(t *testing.T) {
	s, runner := newTestServer(t, reportWith())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.CallTool(context.Background(), "check_compatibility", nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(8), runner.runs.Load())
	_, ok := s.LastReport()
	assert.True(t, ok)
}

func TestCallTool_ExportReport(t *testing.T) {
	s, runner := newTestServer(t, reportWith(compat.CriterionDirectX))
	path := filepath.Join(t.TempDir(), "report.yaml")

	got, err := s.CallTool(context.Background(), "export_report", map[string]any{"path": path})

	require.NoError(t, err)
	out := got.(ExportOutput)
	assert.Equal(t, path, out.Path)
	assert.Equal(t, "yaml", out.Format)
	assert.Equal(t, "application/yaml", out.MIMEType)
	assert.True(t, out.Compatible)
	assert.Equal(t, int32(1), runner.runs.Load())

	read, err := report.ReadReport(path)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19T09:00:00Z", read.GeneratedAt)
}

func TestCallTool_ExportReport_ReusesLastReport(t *testing.T) {
	s, runner := newTestServer(t, reportWith())
	ctx := context.Background()

	_, err := s.CallTool(ctx, "check_compatibility", nil)
	require.NoError(t, err)
	_, err = s.CallTool(ctx, "export_report", map[string]any{"path": filepath.Join(t.TempDir(), "r.json")})
	require.NoError(t, err)
	assert.Equal(t, int32(1), runner.runs.Load())

	_, err = s.CallTool(ctx, "export_report", map[string]any{"path": filepath.Join(t.TempDir(), "r.md"), "refresh": true})
	require.NoError(t, err)
	assert.Equal(t, int32(2), runner.runs.Load())
}

func TestCallTool_ExportReport_InvalidParams(t *testing.T) {
	s, runner := newTestServer(t, reportWith())

	tests := []struct {
		name string
		args map[string]any
	}{
		{"missing path", nil},
		{"blank path", map[string]any{"path": "   "}},
		{"unsupported extension", map[string]any{"path": filepath.Join(t.TempDir(), "r.pdf")}},
		{"wrong type", map[string]any{"path": 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CallTool(context.Background(), "export_report", tt.args)

			require.Error(t, err)
			var mcpErr *MCPError
			require.ErrorAs(t, err, &mcpErr)
			assert.Equal(t, ErrCodeInvalidParams, mcpErr.Code)
		})
	}
	assert.Zero(t, runner.runs.Load(), "invalid input must not probe")
}

func TestCallTool_ExportReport_WriteFailure(t *testing.T) {
	s, _ := newTestServer(t, reportWith())
	parent := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0644))
	path := filepath.Join(parent, "r.json")

	_, err := s.CallTool(context.Background(), "export_report", map[string]any{"path": path})

	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrCodeExportFailed, mcpErr.Code)
	_, statErr := os.Stat(path)
	assert.Error(t, statErr)
}

func TestCallTool_GetRequirements(t *testing.T) {
	s, runner := newTestServer(t, reportWith())

	got, err := s.CallTool(context.Background(), "get_requirements", nil)

	require.NoError(t, err)
	out := got.(RequirementsOutput)
	require.Len(t, out.Requirements, compat.TotalChecks)
	assert.Equal(t, "tpm", out.Requirements[3].Criterion)
	assert.Equal(t, "2.0", out.Requirements[3].Minimum)
	assert.True(t, out.Requirements[3].Essential)
	assert.False(t, out.Requirements[6].Essential, "directx is advisory")
	assert.Zero(t, runner.runs.Load())
}

func TestCallTool_UnknownTool(t *testing.T) {
	s, _ := newTestServer(t, reportWith())

	_, err := s.CallTool(context.Background(), "search", nil)

	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrCodeMethodNotFound, mcpErr.Code)
}

func TestReadResource(t *testing.T) {
	s, _ := newTestServer(t, reportWith())
	ctx := context.Background()

	// No report before the first check.
	_, err := s.ReadResource(ctx, URILatestReport)
	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, ErrCodeNoReport, mcpErr.Code)

	_, err = s.CallTool(ctx, "check_compatibility", nil)
	require.NoError(t, err)

	res, err := s.ReadResource(ctx, URILatestReport)
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &decoded))
	assert.Equal(t, true, decoded["compatible"])

	res, err = s.ReadResource(ctx, URIRequirements)
	require.NoError(t, err)
	assert.Contains(t, res.Contents[0].Text, `"secure_boot"`)

	_, err = s.ReadResource(ctx, "compcheck://nope")
	assert.Error(t, err)
}

func TestServe_UnknownTransport(t *testing.T) {
	s, _ := newTestServer(t, reportWith())

	err := s.Serve(context.Background(), "sse")

	assert.ErrorContains(t, err, "unknown transport")
}
