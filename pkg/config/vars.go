package config

import (
	"path/filepath"
)

// AppName is used in generating file system paths.
var AppName = "mosca"

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/mosca by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/mosca/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the mosca.yaml file.
// Returns ~/.config/mosca/mosca.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "mosca.yaml")
}
