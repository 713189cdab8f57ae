package fsutil

import (
	"os"
	"path/filepath"
)

// AppName is the application name used in platform directory paths.
const AppName = "storysync"

// GetCacheDir returns the platform-specific cache directory for the
// application, e.g. ~/.cache/storysync on Linux.
func GetCacheDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, AppName), nil
}

// GetDataDir returns the platform-specific data directory for the application,
// e.g. ~/.local/share/storysync on Linux. Downloaded story collection content
// and thumbnails live below this directory by default.
func GetDataDir() (string, error) {
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return filepath.Join(xdgDataHome, AppName), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", herr
		}
		return filepath.Join(home, "."+AppName), nil
	}
	return filepath.Join(dir, AppName), nil
}

// GetStateDir returns the directory for persisted engine state (the download
// index and per-repository metadata blobs).
func GetStateDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "state"), nil
}
