package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Brahmastra-Labs/logicaffeine-sub001/check"
	"github.com/Brahmastra-Labs/logicaffeine-sub001/files"
)

// PathEnv names the environment variable holding the config file path.
const PathEnv = "KERNEL_CONFIG"

// DefaultPath is used when PathEnv is unset.
const DefaultPath = "kernel.yaml"

// Config holds the kernel's runtime settings.
type Config struct {
	// Prelude loads Int, Float, Text, their arithmetic, True and False into
	// every new session.
	Prelude bool `yaml:"prelude"`

	Normalize NormalizeConfig `yaml:"normalize"`
	Check     CheckConfig     `yaml:"check"`
	Debug     DebugConfig     `yaml:"debug"`
	Logging   LoggingConfig   `yaml:"logging"`
	Store     StoreConfig     `yaml:"store"`
}

type NormalizeConfig struct {
	// Fuel bounds the number of reduction steps of one normalization.
	Fuel int `yaml:"fuel"`
}

type CheckConfig struct {
	// Parallelism bounds the declarations checked at once in batch mode.
	Parallelism int `yaml:"parallelism"`
}

// DebugConfig enables kernel traces, logged at debug level.
type DebugConfig struct {
	Checker bool `yaml:"checker"`
	Reduce  bool `yaml:"reduce"`
	Guard   bool `yaml:"guard"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json"`
}

type StoreConfig struct {
	// Path of the sqlite session journal. Empty disables persistence.
	Path string `yaml:"path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Prelude:   true,
		Normalize: NormalizeConfig{Fuel: check.DefaultFuel},
		Check:     CheckConfig{Parallelism: runtime.GOMAXPROCS(0)},
		Logging:   LoggingConfig{Level: "info"},
	}
}

// Load reads a YAML config over the defaults. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault loads the file named by KERNEL_CONFIG, or kernel.yaml.
func LoadDefault() (*Config, error) {
	return Load(files.LookupEnv(PathEnv, DefaultPath))
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Normalize.Fuel <= 0 {
		return fmt.Errorf("normalize.fuel must be positive, got %d", c.Normalize.Fuel)
	}
	if c.Check.Parallelism <= 0 {
		return fmt.Errorf("check.parallelism must be positive, got %d", c.Check.Parallelism)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logging.level %q", c.Logging.Level)
	}
	return nil
}

// Checker returns the kernel settings.
func (c *Config) Checker() check.Config {
	return check.Config{
		Fuel:         c.Normalize.Fuel,
		TraceChecker: c.Debug.Checker,
		TraceReduce:  c.Debug.Reduce,
		TraceGuard:   c.Debug.Guard,
	}
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	c.Logging.Level = files.LookupEnv("KERNEL_LOG_LEVEL", c.Logging.Level)
	c.Store.Path = files.LookupEnv("KERNEL_STORE", c.Store.Path)
	if fuel, err := strconv.Atoi(files.LookupEnv("KERNEL_FUEL", "")); err == nil {
		c.Normalize.Fuel = fuel
	}
}
