// Package config holds the toolkit configuration: where contract artifacts
// live, how many parsed artifacts to keep in memory, and how to log.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/naoina/toml"

	"github.com/eth2030/callscript/log"
)

// Configuration errors.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrInvalidConfig      = errors.New("invalid configuration")
)

// Config holds all configuration for the call-script tools.
type Config struct {
	// ArtifactsDir is the resource root holding <ContractName>.json
	// artifacts. Empty selects the artifacts built into the binary.
	ArtifactsDir string `toml:"artifacts_dir"`

	// CacheSize bounds the number of parsed artifacts kept in memory.
	CacheSize int `toml:"cache_size"`

	// LogLevel controls log verbosity (debug, info, warn, error).
	LogLevel string `toml:"log_level"`

	// LogFormat selects the log encoding (json, text).
	LogFormat string `toml:"log_format"`

	// Metrics enables dumping process metrics on exit.
	Metrics bool `toml:"metrics"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ArtifactsDir: "",
		CacheSize:    64,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// Validate checks configuration values for correctness.
func (c *Config) Validate() error {
	if c.CacheSize <= 0 {
		return fmt.Errorf("%w: cache_size must be positive, got %d", ErrInvalidConfig, c.CacheSize)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.ArtifactsDir != "" {
		fi, err := os.Stat(c.ArtifactsDir)
		if err != nil {
			return fmt.Errorf("%w: artifacts_dir: %v", ErrInvalidConfig, err)
		}
		if !fi.IsDir() {
			return fmt.Errorf("%w: artifacts_dir %q is not a directory", ErrInvalidConfig, c.ArtifactsDir)
		}
	}
	return nil
}

// LoadConfig reads configuration from a TOML file. Fields missing from the
// file keep their defaults. If path is empty, the defaults are returned.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	MergeDefaults(&cfg)
	return &cfg, nil
}

// MergeDefaults fills zero-valued fields with their defaults.
func MergeDefaults(cfg *Config) {
	defaults := DefaultConfig()
	if cfg.CacheSize == 0 {
		cfg.CacheSize = defaults.CacheSize
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = defaults.LogFormat
	}
}

// ApplyEnvironment overrides Config fields from CALLSCRIPT_* environment
// variables. An unparseable numeric value is an ErrInvalidConfig and leaves
// the field unchanged.
func ApplyEnvironment(cfg *Config) error {
	if v := os.Getenv("CALLSCRIPT_ARTIFACTS_DIR"); v != "" {
		cfg.ArtifactsDir = v
	}
	if v := os.Getenv("CALLSCRIPT_CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: CALLSCRIPT_CACHE_SIZE %q: %v", ErrInvalidConfig, v, err)
		}
		cfg.CacheSize = n
	}
	if v := os.Getenv("CALLSCRIPT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CALLSCRIPT_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	return nil
}
