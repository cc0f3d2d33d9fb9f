// Package config handles crawl configuration.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config carries every tunable of a crawl run. It is an explicit struct
// passed into component constructors; there is no process-wide mutable
// configuration state.
type Config struct {
	// DBPath is the SQLite database location.
	DBPath string `yaml:"db_path"`

	// PDFDir is where retrieved PDFs are looked up, keyed by paper ID.
	PDFDir string `yaml:"pdf_dir"`

	// MaxDepth bounds the BFS: papers at depth MaxDepth are recorded but
	// not expanded.
	MaxDepth int `yaml:"max_depth"`

	// Concurrency is the per-paper neighbor worker pool size.
	Concurrency int `yaml:"concurrency"`

	// MatchThreshold is the minimum fuzzy-title similarity (0-100) for a
	// citation to resolve to an existing paper.
	MatchThreshold float64 `yaml:"match_threshold"`

	// ColumnMinWidth tunes the segmenter's two-column repair pass.
	ColumnMinWidth int `yaml:"column_min_width"`

	// RateLimit is the external lookup rate in requests per second.
	RateLimit float64 `yaml:"rate_limit"`

	// Keyword gating: a discovered paper is only expanded further when at
	// least MandatoryFraction of MandatoryKeywords appear in its title and
	// AdditionalFraction of AdditionalKeywords appear in its abstract.
	// Empty keyword lists disable the gate.
	MandatoryKeywords  []string `yaml:"mandatory_keywords,omitempty"`
	AdditionalKeywords []string `yaml:"additional_keywords,omitempty"`
	MandatoryFraction  float64  `yaml:"mandatory_fraction"`
	AdditionalFraction float64  `yaml:"additional_fraction"`
}

// Default returns a Config with the standard settings.
func Default() *Config {
	return &Config{
		DBPath:             "citegraph.db",
		PDFDir:             "pdfs",
		MaxDepth:           2,
		Concurrency:        5,
		MatchThreshold:     85,
		RateLimit:          1,
		MandatoryFraction:  0.5,
		AdditionalFraction: 0.3,
	}
}

// Load reads configuration from a YAML file, filling unset fields with
// defaults. It also loads a .env file if present, so the S2 API key can be
// kept out of the config file.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("max_depth must be non-negative, got %d", cfg.MaxDepth)
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = Default().Concurrency
	}
	if cfg.MatchThreshold <= 0 {
		cfg.MatchThreshold = Default().MatchThreshold
	}
	// A zero rate would grant one burst token and then block every later
	// lookup forever.
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = Default().RateLimit
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
