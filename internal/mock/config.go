package mock

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/studiowebux/snmpconsole/internal/agent"
	"github.com/studiowebux/snmpconsole/internal/config"
	"github.com/studiowebux/snmpconsole/internal/history"
)

// DefaultConfig returns the settings the backend listens with when no file exists
func DefaultConfig() *Config {
	return &Config{
		Port:         5000,
		Host:         "127.0.0.1",
		Version:      "2c",
		Timeout:      5,
		Retries:      1,
		HistoryLimit: history.DefaultLimit,
		Logging:      true,
		EnableCORS:   true,
	}
}

// LoadConfig loads a backend configuration from a file.
// Missing keys keep their default value.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s (use .yaml, .yml, or .json)", ext)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// validateConfig validates the backend configuration
func validateConfig(cfg *Config) error {
	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("port %d out of range", cfg.Port)
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if cfg.Retries < 0 {
		return fmt.Errorf("retries must not be negative")
	}
	if cfg.HistoryLimit < 0 {
		return fmt.Errorf("historyLimit must not be negative")
	}
	switch strings.ToLower(cfg.Version) {
	case "", "1", "2", "2c":
	default:
		return fmt.Errorf("version must be '1' or '2c'")
	}
	return nil
}

// SaveConfig saves a backend configuration to a file
func SaveConfig(cfg *Config, path string) error {
	var data []byte
	var err error

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
	case ".json":
		data, err = json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file format: %s (use .yaml, .yml, or .json)", ext)
	}

	if err := os.WriteFile(path, data, config.FilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// NewPerformer picks the simulated or live performer
func (c *Config) NewPerformer() agent.Performer {
	if !c.Live {
		return agent.Simulated{}
	}
	p := agent.NewSNMP(time.Duration(c.Timeout)*time.Second, c.Retries)
	p.Version = agent.ParseVersion(c.Version)
	return p
}

// DatabasePath returns the frame database file
func (c *Config) DatabasePath() string {
	if c.Database != "" {
		return c.Database
	}
	return config.DatabasePath
}

// Address returns the listen address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
