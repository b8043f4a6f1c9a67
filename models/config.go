// Package models defines the records, enums and configuration shared by the
// extraction pipeline and its consumers.
package models

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RunState is the stage an extraction run has reached. Runs move through the
// stages strictly in order.
type RunState int

const (
	StateUnextracted RunState = iota
	StateTextLoaded
	StateScanned
	StateDeduplicated
	StateAggregated
	StateExported
)

func (s RunState) String() string {
	switch s {
	case StateUnextracted:
		return "unextracted"
	case StateTextLoaded:
		return "text_loaded"
	case StateScanned:
		return "scanned"
	case StateDeduplicated:
		return "deduplicated"
	case StateAggregated:
		return "aggregated"
	case StateExported:
		return "exported"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Windows holds the context radius, in characters, used by each scanner.
type Windows struct {
	Keyword     int `yaml:"keyword"`
	Feature     int `yaml:"feature"`
	Notation    int `yaml:"notation"`
	Interval    int `yaml:"interval"`
	Composition int `yaml:"composition"`
}

// ExtractConfig holds runtime configuration for an extraction run.
// Values come from the optional YAML config file, then CLI flags.
type ExtractConfig struct {
	Source      string  `yaml:"source"`
	OutputDir   string  `yaml:"output_dir"`
	DBPath      string  `yaml:"db_path"`
	WorkerCount int     `yaml:"workers"`
	FromPage    int     `yaml:"from_page"`
	ToPage      int     `yaml:"to_page"`
	Windows     Windows `yaml:"windows"`

	// Report sample sizes. Counts always reflect the full sets.
	MaxTablesAndFigures int `yaml:"max_tables_and_figures"`
	MaxSampleFeatures   int `yaml:"max_sample_features"`
	TopTerms            int `yaml:"top_terms"`

	DetectLanguage bool `yaml:"detect_language"`
}

// DefaultExtractConfig returns the defaults used when neither a config file
// nor flags say otherwise.
func DefaultExtractConfig() ExtractConfig {
	return ExtractConfig{
		OutputDir:   "output",
		DBPath:      "esaan.db",
		WorkerCount: 4,
		Windows: Windows{
			Keyword:     200,
			Feature:     150,
			Notation:    100,
			Interval:    60,
			Composition: 150,
		},
		MaxTablesAndFigures: 20,
		MaxSampleFeatures:   10,
		TopTerms:            25,
		DetectLanguage:      true,
	}
}

// LoadConfig reads a YAML config file over the defaults. A missing file is not
// an error: the defaults are returned unchanged.
func LoadConfig(path string) (ExtractConfig, error) {
	cfg := DefaultExtractConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects values the pipeline cannot run with.
func (c ExtractConfig) Validate() error {
	if c.WorkerCount < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.WorkerCount)
	}
	if c.FromPage < 0 || c.ToPage < 0 {
		return fmt.Errorf("page range must not be negative")
	}
	if c.ToPage > 0 && c.FromPage > c.ToPage {
		return fmt.Errorf("from page %d is after to page %d", c.FromPage, c.ToPage)
	}
	w := c.Windows
	if w.Keyword < 0 || w.Feature < 0 || w.Notation < 0 || w.Interval < 0 || w.Composition < 0 {
		return fmt.Errorf("context windows must not be negative")
	}
	return nil
}
