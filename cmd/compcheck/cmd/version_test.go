package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/compcheck/pkg/version"
)

func runVersion(t *testing.T, args ...string) string {
	t.Helper()
	cmd := newVersionCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return buf.String()
}

func TestVersionCmd_DefaultOutput(t *testing.T) {
	// When: executing without flags
	output := runVersion(t)

	// Then: program name, version and commit are printed
	assert.Contains(t, output, "compcheck")
	assert.Contains(t, output, version.Version)
	assert.Contains(t, output, "commit")
}

func TestVersionCmd_ShortOutput(t *testing.T) {
	output := runVersion(t, "--short")

	assert.Equal(t, version.Version, strings.TrimSpace(output))
}

func TestVersionCmd_ShortWinsOverJSON(t *testing.T) {
	output := runVersion(t, "--short", "--json")

	assert.Equal(t, version.Version, strings.TrimSpace(output))
}

func TestVersionCmd_JSONOutput(t *testing.T) {
	// When: executing with --json
	output := runVersion(t, "--json")

	// Then: every build field is present
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(output), &info), "Output should be valid JSON")

	assert.Equal(t, version.Version, info["version"])
	for _, key := range []string{"commit", "date", "go_version", "os", "arch"} {
		assert.Contains(t, info, key)
	}
}

func TestRootCmd_VersionFlag(t *testing.T) {
	sandbox(t, compatibleMachine())

	// When: running --version on the root command
	stdout, _, err := execute(t, "--version")

	// Then: the version template is used
	require.NoError(t, err)
	assert.Equal(t, "compcheck version "+version.Version+"\n", stdout)
}
