package ui

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/compcheck/internal/compat"
)

// passingReport returns a report where every criterion passes except those
// listed in failing.
func passingReport(failing ...compat.Criterion) compat.Report {
	results := make(map[compat.Criterion]compat.Result, compat.TotalChecks)
	for _, c := range compat.AllCriteria {
		results[c] = compat.Result{Status: true, Details: map[string]any{}}
	}
	for _, c := range failing {
		results[c] = compat.Result{Status: false, Details: map[string]any{}}
	}
	return compat.NewReport(results)
}

func TestIsTTY_WithBuffer_ReturnsFalse(t *testing.T) {
	assert.False(t, IsTTY(&bytes.Buffer{}))
	assert.False(t, IsTTY(nil))
}

func TestIsTTY_WithRegularFile_ReturnsFalse(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.False(t, IsTTY(f))
}

func TestDetectCI(t *testing.T) {
	for _, v := range ciEnv {
		t.Setenv(v, "")
		require.NoError(t, os.Unsetenv(v))
	}
	assert.False(t, DetectCI())

	t.Setenv("GITHUB_ACTIONS", "true")
	assert.True(t, DetectCI())
}

func TestNewConfig_AppliesOptions(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	require.NoError(t, os.Unsetenv("NO_COLOR"))

	cfg := NewConfig(&bytes.Buffer{}, WithForcePlain(true), WithNoColor(true))

	assert.True(t, cfg.ForcePlain)
	assert.True(t, cfg.NoColor)
}

func TestNewConfig_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	cfg := NewConfig(&bytes.Buffer{})

	assert.True(t, cfg.NoColor)
}

func TestNewRenderer_NonTTY_ReturnsPlain(t *testing.T) {
	r := NewRenderer(NewConfig(&bytes.Buffer{}))

	_, ok := r.(*PlainRenderer)
	assert.True(t, ok, "expected *PlainRenderer, got %T", r)
}

func TestNewTUIRenderer_NonTTY_Fails(t *testing.T) {
	_, err := NewTUIRenderer(NewConfig(&bytes.Buffer{}))

	assert.Error(t, err)
}

func TestGetStyles(t *testing.T) {
	plain := GetStyles(true)
	assert.Equal(t, "FAIL", plain.Fail.Render("FAIL"))

	styled := GetStyles(false)
	assert.Contains(t, styled.Fail.Render("FAIL"), "FAIL")
}
