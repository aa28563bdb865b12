package keybinds

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/studiowebux/snmpconsole/internal/config"
)

// Config is the user's keybinding file. Each section maps an action to a
// comma-separated list of keys.
type Config struct {
	Version  string            `json:"version"`
	Global   map[string]string `json:"global,omitempty"`
	Tabs     map[string]string `json:"tabs,omitempty"`
	Form     map[string]string `json:"form,omitempty"`
	History  map[string]string `json:"history,omitempty"`
	Search   map[string]string `json:"search,omitempty"`
	Response map[string]string `json:"response,omitempty"`
}

func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:   c.Global,
		ContextTabs:     c.Tabs,
		ContextForm:     c.Form,
		ContextHistory:  c.History,
		ContextSearch:   c.Search,
		ContextResponse: c.Response,
	}
}

// LoadConfig loads keybinding configuration from a JSON file.
// Comments and trailing commas are allowed.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
		return nil, fmt.Errorf("invalid keybinds.json format: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, config.FilePermissions)
}

// ApplyConfig applies user configuration to a registry.
// An action listed in a section loses its default keys in that section.
func ApplyConfig(registry *Registry, cfg *Config) error {
	for context, section := range cfg.sections() {
		for actionStr, keyList := range section {
			action := Action(actionStr)
			if err := ValidateAction(action); err != nil {
				return fmt.Errorf("%s: %w", context, err)
			}

			keys := SplitKeys(keyList)
			for _, key := range keys {
				if err := ValidateKey(key); err != nil {
					return fmt.Errorf("%s.%s: %w", context, actionStr, err)
				}
			}

			registry.Unbind(context, action)
			registry.RegisterMultiple(context, keys, action)
		}
	}
	return nil
}

// SplitKeys parses "up,k" into its keys. A lone "," is a key of its own.
func SplitKeys(list string) []string {
	if strings.TrimSpace(list) == "," {
		return []string{","}
	}
	var keys []string
	for _, k := range strings.Split(list, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// GetDefaultConfigPath returns the default path for keybinds.json
func GetDefaultConfigPath() string {
	return filepath.Join(config.ConfigDir, "keybinds.json")
}

// LoadOrDefault loads user config if it exists, otherwise returns the default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	if _, err := os.Stat(configPath); err != nil {
		return registry, nil
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load keybinds.json: %w", err)
	}

	if result := NewValidator().ValidateConfig(cfg); result.HasErrors() {
		return nil, fmt.Errorf("invalid keybinds.json:\n%s", result)
	}

	if err := ApplyConfig(registry, cfg); err != nil {
		return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
	}

	return registry, nil
}

// ExportDefaults exports the default registry as a config file
func ExportDefaults() *Config {
	r := NewDefaultRegistry()
	cfg := &Config{Version: "1.0"}
	sections := map[Context]*map[string]string{
		ContextGlobal:   &cfg.Global,
		ContextTabs:     &cfg.Tabs,
		ContextForm:     &cfg.Form,
		ContextHistory:  &cfg.History,
		ContextSearch:   &cfg.Search,
		ContextResponse: &cfg.Response,
	}

	for context, section := range sections {
		km := r.bindings[context]
		*section = make(map[string]string)
		for _, action := range km {
			(*section)[string(action)] = strings.Join(km.keys(action), ",")
		}
	}

	return cfg
}
