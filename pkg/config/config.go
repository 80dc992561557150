// Package config holds the leetcase configuration file and environment
// overrides.
//
// Precedence, lowest first: built-in defaults, the YAML file
// (.leetcase.yaml), LEETCASE_* environment variables, command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// FileName is the default configuration file name.
const FileName = ".leetcase.yaml"

// Config is the leetcase configuration.
type Config struct {
	Comparison ComparisonConfig `yaml:"comparison"`
	Run        RunConfig        `yaml:"run"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
	Watch      WatchConfig      `yaml:"watch"`
	Cache      CacheConfig      `yaml:"cache"`
}

// ComparisonConfig controls the deep comparator.
type ComparisonConfig struct {
	// Strict selects ordered comparison of sequences.
	Strict bool `yaml:"strict"`
	// Multiset makes unordered comparison count duplicates.
	Multiset bool `yaml:"multiset"`
	// UnorderedRows ignores order inside nested rows too.
	UnorderedRows bool `yaml:"unordered_rows"`
	// Precision is the number of decimal places doubles are compared at.
	Precision int `yaml:"precision"`
}

// RunConfig controls which cases run.
type RunConfig struct {
	// Range is a case range such as "2-4"; empty runs everything.
	Range string `yaml:"range"`
	// Pattern selects test files when the data path is a directory.
	Pattern string `yaml:"pattern"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Color bool `yaml:"color"`
	JSON  bool `yaml:"json"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level    string `yaml:"level"`    // debug, info, warn, error
	Encoding string `yaml:"encoding"` // console or json
}

// WatchConfig controls the file watcher.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// CacheConfig controls the signature cache.
type CacheConfig struct {
	Size int `yaml:"size"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Comparison: ComparisonConfig{
			Strict:    true,
			Precision: 5,
		},
		Run: RunConfig{
			Pattern: "*.txt",
		},
		Output: OutputConfig{
			Color: true,
		},
		Logging: LoggingConfig{
			Level:    "warn",
			Encoding: "console",
		},
		Watch: WatchConfig{
			Debounce: "200ms",
		},
		Cache: CacheConfig{
			Size: 256,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// Save writes the configuration to a YAML file.
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

// applyEnvOverrides applies LEETCASE_* environment variables.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("LEETCASE_RANGE"); v != "" {
		c.Run.Range = v
	}
	if v := os.Getenv("LEETCASE_PATTERN"); v != "" {
		c.Run.Pattern = v
	}
	if v := os.Getenv("LEETCASE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LEETCASE_DEBOUNCE"); v != "" {
		c.Watch.Debounce = v
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"LEETCASE_STRICT", &c.Comparison.Strict},
		{"LEETCASE_MULTISET", &c.Comparison.Multiset},
		{"LEETCASE_UNORDERED_ROWS", &c.Comparison.UnorderedRows},
		{"LEETCASE_COLOR", &c.Output.Color},
		{"LEETCASE_JSON", &c.Output.JSON},
	}
	for _, b := range bools {
		v := os.Getenv(b.name)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", b.name, err)
		}
		*b.dst = parsed
	}

	if v := os.Getenv("LEETCASE_PRECISION"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid LEETCASE_PRECISION: %w", err)
		}
		c.Comparison.Precision = n
	}
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Comparison.Precision < 0 || c.Comparison.Precision > 15 {
		return fmt.Errorf("precision must be between 0 and 15, got %d", c.Comparison.Precision)
	}
	if _, err := c.DebounceDuration(); err != nil {
		return err
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Logging.Level, err)
	}
	return nil
}

// DebounceDuration parses the watcher debounce.
func (c *Config) DebounceDuration() (time.Duration, error) {
	if c.Watch.Debounce == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 0, fmt.Errorf("invalid watch debounce %q: %w", c.Watch.Debounce, err)
	}
	return d, nil
}

// BuildLogger builds the zap logger. verbose forces debug level.
func (c *Config) BuildLogger(verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.DisableStacktrace = true

	if strings.EqualFold(c.Logging.Encoding, "console") {
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	level, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		level = zapcore.WarnLevel
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
