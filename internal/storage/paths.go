package storage

import (
	"path/filepath"

	"github.com/xolan/lifelog/internal/osutil"
)

const (
	// AppName is the application name used for the data directory
	AppName = "lifelog"
	// DatabaseFile is the default SQLite database file name
	DatabaseFile = "lifelog.db"
)

// GetDataDir returns the per-user lifelog directory, creating it if needed.
func GetDataDir() (string, error) {
	return osutil.AppDir(AppName)
}

// GetDatabasePath returns the default SQLite database path
func GetDatabasePath() (string, error) {
	dir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DatabaseFile), nil
}
