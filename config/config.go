package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds the ambient defaults for running evilvm-go: instruction
// budget, the data-type registry's default sizes, and the GPU sink's
// refresh rate. These are overridable per-invocation by CLI flags; this
// file only supplies what a bare invocation falls back to.
type Config struct {
	Execution struct {
		MaxCycles  uint64 `toml:"max_cycles"`
		RAMWords   int    `toml:"ram_words"`
		StackWords int    `toml:"stack_words"`
	} `toml:"execution"`

	Types struct {
		CharBit       int `toml:"char_bit"`
		WordSize      int `toml:"word_size"`
		WordAlignment int `toml:"word_alignment"`
		AddrSize      int `toml:"addr_size"`
		AddrAlignment int `toml:"addr_alignment"`
	} `toml:"types"`

	GPU struct {
		Width         int     `toml:"width"`
		Height        int     `toml:"height"`
		RefreshRateHz float64 `toml:"refresh_rate_hz"`
	} `toml:"gpu"`
}

// DefaultConfig returns a configuration matching the CLI's own documented
// flag defaults, so running with no config file and no flags behaves
// identically to running with this file freshly saved.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Execution.MaxCycles = 0 // 0 means unbounded, matching -H's default
	cfg.Execution.RAMWords = 8
	cfg.Execution.StackWords = 8

	cfg.Types.CharBit = 9
	cfg.Types.WordSize = 7
	cfg.Types.WordAlignment = 0 // 0 means "equal to word size"
	cfg.Types.AddrSize = 5
	cfg.Types.AddrAlignment = 0 // 0 means "equal to addr size"

	cfg.GPU.Width = 80
	cfg.GPU.Height = 24
	cfg.GPU.RefreshRateHz = 60

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
		configDir = filepath.Join(configDir, "evilvm-go")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "evilvm-go")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// GetLogPath returns the platform-specific log directory path.
func GetLogPath() string {
	var logDir string

	switch runtime.GOOS {
	case "windows":
		logDir = os.Getenv("APPDATA")
		if logDir == "" {
			logDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		logDir = filepath.Join(logDir, "evilvm-go", "logs")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "logs"
		}
		logDir = filepath.Join(homeDir, ".local", "share", "evilvm-go", "logs")

	default:
		return "logs"
	}

	if err := os.MkdirAll(logDir, 0750); err != nil {
		return "logs"
	}

	return logDir
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file, falling back to
// DefaultConfig() if the file doesn't exist.
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

	f, err := os.Create(path) // #nosec G304 -- user config file path
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
