package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "brawldeck"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/brawldeck by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cached bulk downloads.
// Returns ~/.cache/brawldeck by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/brawldeck/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/brawldeck/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}
