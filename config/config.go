// Package config loads the compiler's tunable knobs from an optional TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config represents the compiler configuration.
type Config struct {
	// Memory layout for the 256-byte code generator image.
	Memory struct {
		StaticStart uint16 `toml:"static_start"` // resolves spec's staticStart ambiguity
		HeapStart   uint16 `toml:"heap_start"`
		ImageSize   int    `toml:"image_size"`
	} `toml:"memory"`

	// Semantics resolves the open questions left by the spec.
	Semantics struct {
		AllowStringConcat     bool `toml:"allow_string_concat"`
		WarnUninitializedRead bool `toml:"warn_uninitialized_read"`
	} `toml:"semantics"`

	// Diagnostics controls how logs are rendered.
	Diagnostics struct {
		ColorOutput bool `toml:"color_output"`
	} `toml:"diagnostics"`
}

// DefaultConfig returns a configuration with the documented default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Memory.StaticStart = 0x003C
	cfg.Memory.HeapStart = 0x00E0
	cfg.Memory.ImageSize = 256

	cfg.Semantics.AllowStringConcat = true
	cfg.Semantics.WarnUninitializedRead = false

	cfg.Diagnostics.ColorOutput = true

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "alanppc")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "alanppc.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "alanppc")

	default:
		return "alanppc.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "alanppc.toml"
	}

	return filepath.Join(configDir, "alanppc.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file, falling back to
// defaults when the file does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user-specified config path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close config file: %w", closeErr)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
