package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// BackendURL is the origin of the agent backend the console talks to.
	// It is compiled in and not configurable at runtime.
	BackendURL = "http://localhost:5000"

	// PreferencesKey is the fixed key the connection defaults are stored under
	PreferencesKey = "snmpConfig"
)

var (
	// ConfigDir is the global configuration directory (~/.snmpconsole)
	ConfigDir string

	// DatabasePath is the SQLite database file for preferences and the stub backend history
	DatabasePath string

	// LogFile receives the console logs while the TUI owns the terminal
	LogFile string

	// MockConfigFile is the default stub backend configuration file
	MockConfigFile string
)

// Initialize sets up the configuration directory and paths
// It creates ~/.snmpconsole/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	return InitializeAt(filepath.Join(homeDir, ".snmpconsole"))
}

// InitializeAt sets every path relative to dir and creates it
func InitializeAt(dir string) error {
	ConfigDir = dir
	DatabasePath = filepath.Join(ConfigDir, "snmpconsole.db")
	LogFile = filepath.Join(ConfigDir, "console.log")
	MockConfigFile = filepath.Join(ConfigDir, "mock.yaml")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	return nil
}

// GetMockConfigPath returns the stub backend config path (local or global)
// An empty string means no config file exists and defaults apply.
func GetMockConfigPath() string {
	for _, local := range []string{"mock.yaml", "mock.yml", "mock.json"} {
		if _, err := os.Stat(local); err == nil {
			return local
		}
	}
	if MockConfigFile != "" {
		if _, err := os.Stat(MockConfigFile); err == nil {
			return MockConfigFile
		}
	}
	return ""
}
