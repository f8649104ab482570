// Package config loads and persists the daemon/CLI configuration from
// ~/.config/icontile/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/icontile/internal/classify"
	"github.com/1broseidon/icontile/internal/layout"
)

// MonitorMode selects which monitor organize operations target.
type MonitorMode string

const (
	// MonitorPrimary organizes icons on the primary monitor's work area.
	MonitorPrimary MonitorMode = "primary"
	// MonitorFirst falls back to the first monitor reported by the surface.
	MonitorFirst MonitorMode = "first"
)

// ValidationError carries the YAML path of the offending field so the CLI
// can point at the exact setting.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Config holds the application configuration.
type Config struct {
	OrganizeHotkey string `yaml:"organize_hotkey"`
	UndoHotkey     string `yaml:"undo_hotkey"`

	Display    string `yaml:"display,omitempty"`
	XAuthority string `yaml:"xauthority,omitempty"`

	// DesktopDir overrides the surface's idea of where desktop entries live.
	DesktopDir string `yaml:"desktop_dir,omitempty"`

	Monitor MonitorMode     `yaml:"monitor"`
	Layout  layout.Settings `yaml:"layout"`

	// Preset names the active preset. Empty means the groups list below (or
	// the built-in defaults) drives classification directly.
	Preset string           `yaml:"preset,omitempty"`
	Groups []classify.Group `yaml:"groups,omitempty"`

	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		OrganizeHotkey: "Mod4-Mod1-o",
		UndoHotkey:     "Mod4-Mod1-z",
		Monitor:        MonitorPrimary,
		Layout:         layout.DefaultSettings(),
		LogLevel:       "info",
	}
}

// DefaultConfigPath returns ~/.config/icontile/config.yaml.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "icontile", "config.yaml"), nil
}

// DefaultDataDir returns ~/.local/share/icontile, where the layout and
// preset stores keep their JSON files.
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "icontile"), nil
}

// EffectiveGroups returns the configured group list, or the built-in
// defaults when none is configured.
func (c *Config) EffectiveGroups() []classify.Group {
	if len(c.Groups) > 0 {
		return c.Groups
	}
	return classify.DefaultGroups()
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OrganizeHotkey) == "" {
		return &ValidationError{Path: "organize_hotkey", Err: fmt.Errorf("organize_hotkey is required")}
	}
	switch c.Monitor {
	case MonitorPrimary, MonitorFirst:
	default:
		return &ValidationError{Path: "monitor", Err: fmt.Errorf("monitor must be one of: primary, first")}
	}
	if err := c.Layout.Validate(); err != nil {
		return &ValidationError{Path: "layout", Err: err}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}
	seen := make(map[string]struct{}, len(c.Groups))
	for i := range c.Groups {
		g := &c.Groups[i]
		if err := g.Validate(); err != nil {
			return &ValidationError{Path: fmt.Sprintf("groups[%d]", i), Err: err}
		}
		if _, ok := seen[g.Name]; ok {
			return &ValidationError{Path: fmt.Sprintf("groups[%d].name", i), Err: fmt.Errorf("duplicate group %q", g.Name)}
		}
		seen[g.Name] = struct{}{}
	}
	return nil
}

// Save writes the configuration to the standard location.
//
// Note: this marshals the effective config and does not preserve comments
// from a hand-edited file.
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return err
	}
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to an explicit path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
