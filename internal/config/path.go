// Package config loads spendwise configuration and resolves paths.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	appDir       = "spendwise"
	databaseFile = "spendwise.db"
	backupsDir   = "backups"
)

// DataDir is where the database and backups live: $XDG_DATA_HOME/spendwise,
// or ~/.local/share/spendwise when XDG_DATA_HOME is unset.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(ExpandPath(xdg), appDir)
	}
	return filepath.Join(ExpandPath("~"), ".local", "share", appDir)
}

// DefaultDatabasePath returns the database location used when none is configured.
func DefaultDatabasePath() string {
	return filepath.Join(DataDir(), databaseFile)
}

// DefaultBackupDir returns the backup directory used when none is configured.
func DefaultBackupDir() string {
	return filepath.Join(DataDir(), backupsDir)
}

// ExpandPath resolves a leading ~ and any $VAR references in path.
// A ~ is left alone when the home directory is unknown.
func ExpandPath(path string) string {
	path = os.ExpandEnv(path)
	if path != "~" && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
