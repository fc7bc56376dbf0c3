// Package config loads zonecsv settings from YAML, .env files and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ukaji3/zonecsv-go/pkg/zonecsv"
	"github.com/ukaji3/zonecsv-go/pkg/zonecsv/parser"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when --config is not given.
const DefaultPath = "zonecsv.yaml"

// Config holds all zonecsv configuration.
type Config struct {
	// Root is the directory scenario folders live under.
	Root string `yaml:"root"`
	// Scenarios is the ordered scenario list.
	Scenarios []string `yaml:"scenarios"`
	// Pattern locates a scenario's file relative to Root.
	Pattern string `yaml:"pattern"`

	// Zone column rewrite policy
	ZonePrefix string `yaml:"zone_prefix"`
	Quoting    string `yaml:"quoting"`     // minimal, zone
	Encoding   string `yaml:"encoding"`    // WHATWG label
	LineEnding string `yaml:"line_ending"` // auto, lf, crlf

	// MissingIsError fails the run when a scenario's file is missing.
	MissingIsError bool `yaml:"missing_is_error"`

	Stats   StatsConfig   `yaml:"stats"`
	Logging LoggingConfig `yaml:"logging"`
}

// StatsConfig configures the stats report.
type StatsConfig struct {
	Threshold int64 `yaml:"threshold"`
	SampleCap int   `yaml:"sample_cap"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// ValidLogFormats lists the supported log encodings.
var ValidLogFormats = []string{"json", "console"}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	stats := zonecsv.DefaultStatsOptions()
	return &Config{
		Root:       "data",
		Scenarios:  append([]string(nil), zonecsv.DefaultScenarios...),
		Pattern:    zonecsv.DefaultPattern,
		Quoting:    string(parser.QuoteMinimal),
		Encoding:   "utf-8",
		LineEnding: string(zonecsv.LineEndingAuto),
		Stats: StatsConfig{
			Threshold: stats.Threshold,
			SampleCap: stats.SampleCap,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadDotEnv loads variables from .env files into the environment.
// Missing files are ignored; variables already set are kept.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads configuration from a YAML file and applies environment overrides.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save writes configuration to a YAML file.
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

func (c *Config) applyEnvOverrides() {
	if root := os.Getenv("ZONECSV_ROOT"); root != "" {
		c.Root = root
	}
	if list := os.Getenv("ZONECSV_SCENARIOS"); list != "" {
		c.Scenarios = splitList(list)
	}
	if pattern := os.Getenv("ZONECSV_PATTERN"); pattern != "" {
		c.Pattern = pattern
	}
	if prefix, ok := os.LookupEnv("ZONECSV_ZONE_PREFIX"); ok {
		c.ZonePrefix = prefix
	}
	if level := os.Getenv("ZONECSV_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Options().Validate(); err != nil {
		return err
	}
	if c.Stats.Threshold < 0 || c.Stats.SampleCap < 0 {
		return fmt.Errorf("stats threshold and sample_cap must not be negative")
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	validFormat := false
	for _, f := range ValidLogFormats {
		if c.Logging.Format == f {
			validFormat = true
			break
		}
	}
	if !validFormat {
		return fmt.Errorf("invalid log format: %s (valid: %v)", c.Logging.Format, ValidLogFormats)
	}

	return nil
}

// Options converts the configuration into normalizer options.
func (c *Config) Options() zonecsv.Options {
	return zonecsv.Options{
		Root:           c.Root,
		Scenarios:      c.Scenarios,
		Pattern:        c.Pattern,
		ZonePrefix:     c.ZonePrefix,
		Quoting:        parser.Quoting(c.Quoting),
		Encoding:       c.Encoding,
		LineEnding:     zonecsv.LineEnding(c.LineEnding),
		MissingIsError: c.MissingIsError,
	}
}

// StatsOptions converts the configuration into stats options.
func (c *Config) StatsOptions() zonecsv.StatsOptions {
	return zonecsv.StatsOptions{
		Threshold:  c.Stats.Threshold,
		SampleCap:  c.Stats.SampleCap,
		ZonePrefix: c.ZonePrefix,
		Encoding:   c.Encoding,
	}
}

// splitList splits a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
