package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupUserConfig_NoConfig(t *testing.T) {
	isolate(t)

	path, err := BackupUserConfig()

	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestBackupUserConfig_CopiesContent(t *testing.T) {
	isolate(t)
	writeUserConfig(t, "version: 1\n")

	path, err := BackupUserConfig()

	require.NoError(t, err)
	require.NotEmpty(t, path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "version: 1\n", string(data))
}

func TestBackupUserConfig_KeepsMaxBackups(t *testing.T) {
	isolate(t)
	writeUserConfig(t, "version: 1\n")

	for i := 0; i < MaxBackups+2; i++ {
		_, err := BackupUserConfig()
		require.NoError(t, err)
		// Backup names carry millisecond timestamps.
		time.Sleep(5 * time.Millisecond)
	}

	backups, err := ListUserConfigBackups()
	require.NoError(t, err)
	assert.Len(t, backups, MaxBackups)
}

func TestListUserConfigBackups_NewestFirst(t *testing.T) {
	isolate(t)
	writeUserConfig(t, "version: 1\n")

	first, err := BackupUserConfig()
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := BackupUserConfig()
	require.NoError(t, err)

	backups, err := ListUserConfigBackups()

	require.NoError(t, err)
	assert.Equal(t, []string{second, first}, backups)
}

func TestListUserConfigBackups_MissingDir(t *testing.T) {
	isolate(t)

	backups, err := ListUserConfigBackups()

	require.NoError(t, err)
	assert.Empty(t, backups)
}
