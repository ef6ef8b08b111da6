// Package config loads the controller's YAML configuration and applies
// environment overrides on top of it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/danielpatrickdp/unwind/go-controller/internal/patternmem"
	"github.com/danielpatrickdp/unwind/go-controller/internal/session"
	"github.com/danielpatrickdp/unwind/go-controller/internal/transcript"
)

// Environment variables read by ApplyEnv.
const (
	EnvPatternBackend = "UNWIND_PATTERN_BACKEND"
	EnvPatternPath    = "UNWIND_PATTERN_PATH"
	EnvTranscriptDir  = "UNWIND_TRANSCRIPT_DIR"
	EnvDB             = "UNWIND_DB"
)

// Config is the full controller configuration.
type Config struct {
	Patterns    patternmem.Config `yaml:"patterns"`
	Transcripts transcript.Config `yaml:"transcripts"`
	Silence     SilenceConfig     `yaml:"silence"`
}

// SilenceConfig holds the silence lengths as Go duration strings ("75s").
type SilenceConfig struct {
	Main     string `yaml:"main,omitempty"`
	Dense    string `yaml:"dense,omitempty"`
	Spacious string `yaml:"spacious,omitempty"`
	Check    string `yaml:"check,omitempty"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	d := session.DefaultDurations()
	return &Config{
		Patterns:    patternmem.DefaultConfig(),
		Transcripts: transcript.DefaultConfig(),
		Silence: SilenceConfig{
			Main:     d.Main.String(),
			Dense:    d.Dense.String(),
			Spacious: d.Spacious.String(),
			Check:    d.Check.String(),
		},
	}
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			var file Config
			if err := yaml.Unmarshal(data, &file); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
			cfg.Merge(&file)
		}
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// Save writes c to path as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	c.Patterns.Merge(&source.Patterns)
	c.Transcripts.Merge(&source.Transcripts)
	if source.Silence.Main != "" {
		c.Silence.Main = source.Silence.Main
	}
	if source.Silence.Dense != "" {
		c.Silence.Dense = source.Silence.Dense
	}
	if source.Silence.Spacious != "" {
		c.Silence.Spacious = source.Silence.Spacious
	}
	if source.Silence.Check != "" {
		c.Silence.Check = source.Silence.Check
	}
}

// ApplyEnv overrides fields from the process environment. UNWIND_DB points
// transcripts at a SQLite database and switches that backend on.
func (c *Config) ApplyEnv() {
	c.Patterns.Backend = envOr(EnvPatternBackend, c.Patterns.Backend)
	c.Patterns.Path = envOr(EnvPatternPath, c.Patterns.Path)
	c.Transcripts.Dir = envOr(EnvTranscriptDir, c.Transcripts.Dir)
	if db := os.Getenv(EnvDB); db != "" {
		c.Transcripts.DBPath = db
		c.Transcripts.Backend = transcript.BackendSQLite
	}
}

// Durations parses the silence lengths. Empty fields keep the defaults.
func (c *Config) Durations() (session.Durations, error) {
	d := session.DefaultDurations()
	fields := []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"main", c.Silence.Main, &d.Main},
		{"dense", c.Silence.Dense, &d.Dense},
		{"spacious", c.Silence.Spacious, &d.Spacious},
		{"check", c.Silence.Check, &d.Check},
	}
	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		v, err := time.ParseDuration(f.raw)
		if err != nil {
			return session.Durations{}, fmt.Errorf("silence.%s: %w", f.name, err)
		}
		if v <= 0 {
			return session.Durations{}, fmt.Errorf("silence.%s: must be positive, got %s", f.name, v)
		}
		*f.dst = v
	}
	return d, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
