package version

import (
	"encoding/json"
	"regexp"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion_FollowsSemverOrDev(t *testing.T) {
	if Version == "dev" {
		t.Log("Version is 'dev' (development build without ldflags)")
		return
	}
	semverRegex := regexp.MustCompile(`^\d+\.\d+\.\d+(-[a-zA-Z0-9.]+)?$`)
	require.True(t, semverRegex.MatchString(Version), "Version should follow semver format, got: %s", Version)
}

func TestString_IncludesBuildInfo(t *testing.T) {
	s := String()
	info := GetInfo()

	assert.Contains(t, s, "compcheck "+Version)
	assert.Contains(t, s, "commit: "+info.Commit)
	assert.Contains(t, s, "go: "+runtime.Version())
	assert.Contains(t, s, runtime.GOOS+"/"+runtime.GOARCH)
	assert.Equal(t, Version, Short())
}

func TestGetInfo_LdflagsWin(t *testing.T) {
	// Given: commit and date stamped at link time
	oldCommit, oldDate := Commit, Date
	t.Cleanup(func() { Commit, Date = oldCommit, oldDate })
	Commit, Date = "abc1234", "2026-10-01T00:00:00Z"

	// When: collecting build info
	info := GetInfo()

	// Then: the stamped values are used as-is
	assert.Equal(t, "abc1234", info.Commit)
	assert.Equal(t, "2026-10-01T00:00:00Z", info.Date)
}

func TestGetInfo_NeverEmpty(t *testing.T) {
	info := GetInfo()

	assert.NotEmpty(t, info.Commit)
	assert.NotEmpty(t, info.Date)
}

func TestShortRevision(t *testing.T) {
	assert.Equal(t, "0123456789ab", shortRevision("0123456789abcdef0123"))
	assert.Equal(t, "abc", shortRevision("abc"))
}

func TestGetInfo_JSON(t *testing.T) {
	// Given: build info
	info := GetInfo()

	// When: marshaling to JSON
	data, err := json.Marshal(info)
	require.NoError(t, err)

	// Then: snake_case keys carry the runtime platform
	var got map[string]string
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, runtime.GOOS, got["os"])
	assert.Equal(t, runtime.GOARCH, got["arch"])
	assert.Equal(t, runtime.Version(), got["go_version"])
	assert.Contains(t, got, "version")
	assert.Contains(t, got, "commit")
	assert.Contains(t, got, "date")
}
