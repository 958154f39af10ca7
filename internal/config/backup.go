package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"
)

// MaxBackups bounds how many copies 'compcheck config init --force' keeps.
const MaxBackups = 3

// BackupSuffix separates the config name from the backup timestamp.
const BackupSuffix = ".bak"

// backupStamp sorts lexically in time order.
const backupStamp = "20060102-150405.000"

// BackupUserConfig copies the user config aside before it is overwritten
// and returns the copy's path. Nothing is written when no user config
// exists, and "" is returned.
func BackupUserConfig() (string, error) {
	src := GetUserConfigPath()
	data, err := os.ReadFile(src)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read config for backup: %w", err)
	}

	dst := src + BackupSuffix + "." + time.Now().Format(backupStamp)
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	// The copy exists; failing to prune older ones is not an error.
	if backups, err := ListUserConfigBackups(); err == nil && len(backups) > MaxBackups {
		for _, old := range backups[MaxBackups:] {
			_ = os.Remove(old)
		}
	}

	return dst, nil
}

// ListUserConfigBackups returns the backups of the user config, newest first.
func ListUserConfigBackups() ([]string, error) {
	pattern := GetUserConfigPath() + BackupSuffix + ".*"
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list config backups: %w", err)
	}

	slices.Sort(matches)
	slices.Reverse(matches)
	return matches, nil
}
