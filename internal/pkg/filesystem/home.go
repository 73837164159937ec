package filesystem

import (
	"os"
	"path/filepath"
)

// UserHomeDir returns the current user's home directory.
// If the home directory cannot be determined, it returns "." as a fallback.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// ConfigDir is the per-user Burst directory, ~/.burst unless BURST_HOME is set.
func ConfigDir() string {
	if custom := os.Getenv("BURST_HOME"); custom != "" {
		return ExpandPath(custom)
	}
	return filepath.Join(UserHomeDir(), ".burst")
}

// ExpandPath resolves a leading ~/ against the home directory.
func ExpandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}
