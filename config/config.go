// Package config loads the controller configuration from YAML.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Target selects the window to adopt at startup. Either a title/class
// filter pair or an explicit handle; the handle wins when both are set.
type Target struct {
	Title string  `yaml:"title"`
	Class string  `yaml:"class"`
	HWND  uintptr `yaml:"hwnd"`
}

// Timing overrides the inter-message pacing, in milliseconds. Zero
// means keep the built-in default for that delay.
type Timing struct {
	ButtonMs   int `yaml:"button_ms"`
	DragStepMs int `yaml:"drag_step_ms"`
	CharMs     int `yaml:"char_ms"`
	KeyMs      int `yaml:"key_ms"`
	ModifierMs int `yaml:"modifier_ms"`
	SettleMs   int `yaml:"settle_ms"`
}

// Logging controls the structured log output.
type Logging struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Config is the full controller configuration.
type Config struct {
	Target      Target  `yaml:"target"`
	Timing      Timing  `yaml:"timing"`
	Logging     Logging `yaml:"logging"`
	ServerName  string  `yaml:"server_name"`
	PerMonitor  bool    `yaml:"per_monitor_dpi"`
	FrontOnPeek bool    `yaml:"front_on_peek"` // bring target forward before screen capture
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Logging:    Logging{Level: "info", Format: "text"},
		ServerName: "wintarget",
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "wintarget", "config.yaml"), nil
}

// Load reads configuration from the standard location. A missing file
// is not an error; defaults are returned.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return LoadFromPath(path)
}

// LoadFromPath reads and validates configuration from an explicit file.
// Unknown keys are rejected.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document over the defaults and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects impossible values rather than silently clamping.
func (c *Config) Validate() error {
	for _, d := range []struct {
		name string
		ms   int
	}{
		{"timing.button_ms", c.Timing.ButtonMs},
		{"timing.drag_step_ms", c.Timing.DragStepMs},
		{"timing.char_ms", c.Timing.CharMs},
		{"timing.key_ms", c.Timing.KeyMs},
		{"timing.modifier_ms", c.Timing.ModifierMs},
		{"timing.settle_ms", c.Timing.SettleMs},
	} {
		if d.ms < 0 {
			return fmt.Errorf("%s: must not be negative, got %d", d.name, d.ms)
		}
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format: must be text or json, got %q", c.Logging.Format)
	}
	return nil
}
