package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Memory.StaticStart != 0x003C {
		t.Errorf("Expected StaticStart=0x3C, got 0x%X", cfg.Memory.StaticStart)
	}
	if cfg.Memory.HeapStart != 0x00E0 {
		t.Errorf("Expected HeapStart=0xE0, got 0x%X", cfg.Memory.HeapStart)
	}
	if cfg.Memory.ImageSize != 256 {
		t.Errorf("Expected ImageSize=256, got %d", cfg.Memory.ImageSize)
	}
	if !cfg.Semantics.AllowStringConcat {
		t.Error("Expected AllowStringConcat=true")
	}
	if cfg.Semantics.WarnUninitializedRead {
		t.Error("Expected WarnUninitializedRead=false")
	}
	if !cfg.Diagnostics.ColorOutput {
		t.Error("Expected ColorOutput=true")
	}
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()
	if path == "" {
		t.Fatal("GetConfigPath returned empty string")
	}
	if filepath.Base(path) != "alanppc.toml" {
		t.Errorf("Expected path to end with alanppc.toml, got %s", path)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.toml")

	cfg := DefaultConfig()
	cfg.Memory.StaticStart = 0x003C
	cfg.Semantics.AllowStringConcat = false
	cfg.Semantics.WarnUninitializedRead = true
	cfg.Diagnostics.ColorOutput = false

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loaded.Memory.StaticStart != 0x003C {
		t.Errorf("Expected StaticStart=0x3C, got 0x%X", loaded.Memory.StaticStart)
	}
	if loaded.Semantics.AllowStringConcat {
		t.Error("Expected AllowStringConcat=false")
	}
	if !loaded.Semantics.WarnUninitializedRead {
		t.Error("Expected WarnUninitializedRead=true")
	}
	if loaded.Diagnostics.ColorOutput {
		t.Error("Expected ColorOutput=false")
	}
}

func TestLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nonexistent.toml")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom should not error on non-existent file: %v", err)
	}
	if cfg.Memory.StaticStart != 0x003C {
		t.Error("Expected default config when file doesn't exist")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.toml")

	invalidTOML := `
[memory]
static_start = "not a number"  # invalid: should be an integer
`
	if err := os.WriteFile(configPath, []byte(invalidTOML), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Error("Expected error when loading invalid TOML")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "subdir1", "subdir2", "config.toml")

	cfg := DefaultConfig()
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}
}
