package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Execution.MaxCycles != 0 {
		t.Errorf("Expected MaxCycles=0 (unbounded), got %d", cfg.Execution.MaxCycles)
	}
	if cfg.Execution.RAMWords != 8 {
		t.Errorf("Expected RAMWords=8, got %d", cfg.Execution.RAMWords)
	}
	if cfg.Execution.StackWords != 8 {
		t.Errorf("Expected StackWords=8, got %d", cfg.Execution.StackWords)
	}

	if cfg.Types.CharBit != 9 {
		t.Errorf("Expected CharBit=9, got %d", cfg.Types.CharBit)
	}
	if cfg.Types.WordSize != 7 {
		t.Errorf("Expected WordSize=7, got %d", cfg.Types.WordSize)
	}
	if cfg.Types.AddrSize != 5 {
		t.Errorf("Expected AddrSize=5, got %d", cfg.Types.AddrSize)
	}

	if cfg.GPU.Width != 80 || cfg.GPU.Height != 24 {
		t.Errorf("Expected GPU 80x24, got %dx%d", cfg.GPU.Width, cfg.GPU.Height)
	}
	if cfg.GPU.RefreshRateHz != 60 {
		t.Errorf("Expected RefreshRateHz=60, got %v", cfg.GPU.RefreshRateHz)
	}
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()

	if path == "" {
		t.Error("GetConfigPath returned empty string")
	}
	if filepath.Base(path) != "config.toml" {
		t.Errorf("Expected path to end with config.toml, got %s", path)
	}

	switch runtime.GOOS {
	case "windows":
		if !filepath.IsAbs(path) && path != "config.toml" {
			t.Errorf("Expected absolute path on Windows, got %s", path)
		}

	case "darwin", "linux":
		dir := filepath.Dir(path)
		if filepath.Base(dir) != "evilvm-go" && path != "config.toml" {
			t.Errorf("Expected path in evilvm-go directory or fallback, got %s", path)
		}
	}
}

func TestGetLogPath(t *testing.T) {
	path := GetLogPath()

	if path == "" {
		t.Error("GetLogPath returned empty string")
	}

	switch runtime.GOOS {
	case "windows":
		if !filepath.IsAbs(path) && path != "logs" {
			t.Errorf("Expected absolute path on Windows, got %s", path)
		}

	case "darwin", "linux":
		if filepath.Base(path) != "logs" {
			t.Errorf("Expected path to end with logs, got %s", path)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.toml")

	cfg := DefaultConfig()
	cfg.Execution.MaxCycles = 5000000
	cfg.Types.CharBit = 8
	cfg.Types.WordSize = 4
	cfg.GPU.RefreshRateHz = 30

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

	if loaded.Execution.MaxCycles != 5000000 {
		t.Errorf("Expected MaxCycles=5000000, got %d", loaded.Execution.MaxCycles)
	}
	if loaded.Types.CharBit != 8 {
		t.Errorf("Expected CharBit=8, got %d", loaded.Types.CharBit)
	}
	if loaded.Types.WordSize != 4 {
		t.Errorf("Expected WordSize=4, got %d", loaded.Types.WordSize)
	}
	if loaded.GPU.RefreshRateHz != 30 {
		t.Errorf("Expected RefreshRateHz=30, got %v", loaded.GPU.RefreshRateHz)
	}
}

func TestLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nonexistent.toml")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom should not error on non-existent file: %v", err)
	}

	if cfg.Types.CharBit != 9 {
		t.Error("Expected default config when file doesn't exist")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.toml")

	invalidTOML := `
[execution]
max_cycles = "not a number"  # Invalid: should be uint64
`
	if err := os.WriteFile(configPath, []byte(invalidTOML), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	_, err := LoadFrom(configPath)
	if err == nil {
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

	dir := filepath.Dir(configPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Error("Parent directories were not created")
	}
}
