package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig empty path error: %v", err)
	}
	defaults := DefaultConfig()
	if *cfg != defaults {
		t.Fatalf("cfg = %+v, want %+v", *cfg, defaults)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "callscript.toml")

	content := `artifacts_dir = "` + filepath.ToSlash(dir) + `"
cache_size = 8
log_level = "debug"
metrics = true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.ArtifactsDir != filepath.ToSlash(dir) {
		t.Errorf("ArtifactsDir = %q, want %q", cfg.ArtifactsDir, dir)
	}
	if cfg.CacheSize != 8 {
		t.Errorf("CacheSize = %d, want 8", cfg.CacheSize)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want default text", cfg.LogFormat)
	}
	if !cfg.Metrics {
		t.Error("Metrics = false, want true")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, ErrConfigFileNotFound) {
		t.Fatalf("err = %v, want ErrConfigFileNotFound", err)
	}
}

func TestLoadConfigUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("datadir = \"/tmp\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadConfig(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero cache", func(c *Config) { c.CacheSize = 0 }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }},
		{"missing dir", func(c *Config) { c.ArtifactsDir = filepath.Join(file, "missing") }},
		{"dir is file", func(c *Config) { c.ArtifactsDir = file }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestApplyEnvironment(t *testing.T) {
	t.Setenv("CALLSCRIPT_ARTIFACTS_DIR", "/srv/artifacts")
	t.Setenv("CALLSCRIPT_CACHE_SIZE", "3")
	t.Setenv("CALLSCRIPT_LOG_LEVEL", "warn")
	t.Setenv("CALLSCRIPT_LOG_FORMAT", "json")

	cfg := DefaultConfig()
	if err := ApplyEnvironment(&cfg); err != nil {
		t.Fatalf("ApplyEnvironment: %v", err)
	}
	if cfg.ArtifactsDir != "/srv/artifacts" || cfg.CacheSize != 3 || cfg.LogLevel != "warn" || cfg.LogFormat != "json" {
		t.Fatalf("cfg = %+v", cfg)
	}

}

func TestApplyEnvironmentBadCacheSize(t *testing.T) {
	t.Setenv("CALLSCRIPT_CACHE_SIZE", "many")
	cfg := DefaultConfig()
	err := ApplyEnvironment(&cfg)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
	if !strings.Contains(err.Error(), "CALLSCRIPT_CACHE_SIZE") {
		t.Fatalf("err = %q, want it to name the variable", err)
	}
	if cfg.CacheSize != DefaultConfig().CacheSize {
		t.Fatalf("CacheSize = %d, want default kept", cfg.CacheSize)
	}
}
