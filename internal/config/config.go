package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zgpcy/instance-normalizer/internal/provider"
	"gopkg.in/yaml.v3"
)

// Default values
const (
	DefaultDataDir   = "data"
	DefaultOutput    = "all_instances.csv"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// DefaultInputs are the export file names each provider's comparison site
// produces, relative to the data directory.
var DefaultInputs = map[provider.ProviderType]string{
	provider.ProviderAWS:          "Amazon EC2 Instance Comparison.csv",
	provider.ProviderAzure:        "Microsoft Azure Virtual Machine Comparison.csv",
	provider.ProviderGCP:          "GCPinstances.info - GCP Compute Engine Instance Comparison (by DoiT International).csv",
	provider.ProviderDigitalOcean: "DO_droplets.csv",
}

// Configuration validation errors.
var (
	ErrNoSources           = errors.New("at least one source is required")
	ErrSourceMissingPath   = errors.New("source path is required")
	ErrDuplicateProvider   = errors.New("provider configured more than once")
	ErrNoEnabledSources    = errors.New("at least one source must be enabled")
	ErrMissingOutput       = errors.New("output path is required")
	ErrInvalidLogLevel     = errors.New("log_level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat    = errors.New("log_format must be 'text' or 'json'")
	ErrMetricsFileIsOutput = errors.New("metrics_file must differ from the output path")
)

// Source is one provider export to normalize
type Source struct {
	Provider string `yaml:"provider"`
	Path     string `yaml:"path"`
	Enabled  *bool  `yaml:"enabled"` // nil means enabled
}

// IsEnabled reports whether the source takes part in the run
func (s Source) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// Config represents the application configuration
type Config struct {
	DataDir     string   `yaml:"data_dir"`
	Sources     []Source `yaml:"sources"`
	Output      string   `yaml:"output"`
	LogLevel    string   `yaml:"log_level"`
	LogFormat   string   `yaml:"log_format"`
	MetricsFile string   `yaml:"metrics_file"`
	Summary     bool     `yaml:"summary"`
}

// Input is an enabled source with its provider resolved and its path made
// relative to the data directory
type Input struct {
	Provider provider.ProviderType
	Path     string
}

// Default returns the configuration used when no file is given: every
// provider reads its default export from the data directory.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load loads configuration from a YAML file, applies defaults and validates
func Load(path string) (*Config, error) {
	// #nosec G304 -- Config file path is provided by the operator via CLI flag
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for configuration
func applyDefaults(cfg *Config) {
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}
	if len(cfg.Sources) == 0 {
		for _, p := range provider.Order {
			cfg.Sources = append(cfg.Sources, Source{
				Provider: string(p),
				Path:     DefaultInputs[p],
			})
		}
	}
	for i, src := range cfg.Sources {
		if strings.TrimSpace(src.Path) != "" {
			continue
		}
		if t, err := provider.ParseType(src.Provider); err == nil {
			cfg.Sources[i].Path = DefaultInputs[t]
		}
	}
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}
}

// SetSourcePath points provider p at path, enabling it, and adds the source
// if it is not configured yet
func (c *Config) SetSourcePath(p provider.ProviderType, path string) {
	enabled := true
	for i, src := range c.Sources {
		if t, err := provider.ParseType(src.Provider); err == nil && t == p {
			c.Sources[i].Path = path
			c.Sources[i].Enabled = &enabled
			return
		}
	}
	c.Sources = append(c.Sources, Source{Provider: string(p), Path: path, Enabled: &enabled})
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return ErrNoSources
	}

	seen := make(map[provider.ProviderType]bool, len(c.Sources))
	enabledCount := 0

	for i, src := range c.Sources {
		t, err := provider.ParseType(src.Provider)
		if err != nil {
			return fmt.Errorf("source[%d]: %w", i, err)
		}
		if seen[t] {
			return fmt.Errorf("%w: %s", ErrDuplicateProvider, t)
		}
		seen[t] = true

		if strings.TrimSpace(src.Path) == "" {
			return fmt.Errorf("%w: source[%d] (%s)", ErrSourceMissingPath, i, t)
		}
		if src.IsEnabled() {
			enabledCount++
		}
	}

	if enabledCount == 0 {
		return ErrNoEnabledSources
	}

	if strings.TrimSpace(c.Output) == "" {
		return ErrMissingOutput
	}

	if c.MetricsFile != "" && c.resolve(c.MetricsFile) == c.OutputPath() {
		return ErrMetricsFileIsOutput
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return ErrInvalidLogLevel
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return ErrInvalidLogFormat
	}

	return nil
}

// Inputs returns the enabled sources in configuration order with their
// paths resolved. The normalizer applies the output provider order.
func (c *Config) Inputs() ([]Input, error) {
	var inputs []Input
	for _, src := range c.Sources {
		if !src.IsEnabled() {
			continue
		}
		t, err := provider.ParseType(src.Provider)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, Input{Provider: t, Path: c.resolve(src.Path)})
	}
	return inputs, nil
}

// OutputPath returns the output file path resolved against the data directory
func (c *Config) OutputPath() string {
	return c.resolve(c.Output)
}

// MetricsPath returns the metrics file path, or "" when metrics are disabled
func (c *Config) MetricsPath() string {
	if c.MetricsFile == "" {
		return ""
	}
	return c.resolve(c.MetricsFile)
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) || c.DataDir == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(c.DataDir, path)
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Sources: %d, DataDir: %s, Output: %s}", len(c.Sources), c.DataDir, c.Output)
}
