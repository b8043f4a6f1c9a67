package common

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/kitsanannam-hue/esaan-dataset/models"
)

// NewLogger returns the JSON stderr logger used by every action. --quiet
// drops everything below error.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// LoadConfig reads the --config file over the defaults and then applies any
// flag the user set explicitly.
func LoadConfig(c *cli.Context) (models.ExtractConfig, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return cfg, err
	}

	if c.IsSet("source") {
		cfg.Source = c.String("source")
	} else if c.NArg() > 0 {
		cfg.Source = c.Args().First()
	}
	cfg.Source = SanitizeSource(cfg.Source)

	if c.IsSet("output-dir") {
		cfg.OutputDir = c.String("output-dir")
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	if c.IsSet("workers") {
		cfg.WorkerCount = c.Int("workers")
	}
	if c.IsSet("from") {
		cfg.FromPage = c.Int("from")
	}
	if c.IsSet("to") {
		cfg.ToPage = c.Int("to")
	}
	if c.IsSet("top-terms") {
		cfg.TopTerms = c.Int("top-terms")
	}
	if c.IsSet("no-language") {
		cfg.DetectLanguage = !c.Bool("no-language")
	}
	return cfg, cfg.Validate()
}

// SanitizeSource cleans up a pasted path or URL: surrounding whitespace,
// quotes and angle brackets are removed.
func SanitizeSource(raw string) string {
	cleaned := strings.TrimSpace(raw)

	// Extract the target from markdown link format: [text](target) -> target
	if strings.HasPrefix(cleaned, "[") && strings.HasSuffix(cleaned, ")") {
		if i := strings.Index(cleaned, "]("); i >= 0 {
			cleaned = cleaned[i+2 : len(cleaned)-1]
		}
	}

	for _, pair := range [][2]string{{`"`, `"`}, {"'", "'"}, {"<", ">"}} {
		if strings.HasPrefix(cleaned, pair[0]) && strings.HasSuffix(cleaned, pair[1]) && len(cleaned) >= 2 {
			cleaned = cleaned[1 : len(cleaned)-1]
		}
	}
	return strings.TrimSpace(cleaned)
}

// FilterResultFields converts result to a map and keeps only the requested
// comma-separated JSON field names. An empty list keeps everything.
func FilterResultFields(result interface{}, fieldsStr string) map[string]interface{} {
	fullMap := structToMap(result)
	if fieldsStr == "" {
		return fullMap
	}

	includeFields := make(map[string]bool)
	for _, field := range strings.Split(fieldsStr, ",") {
		includeFields[strings.TrimSpace(field)] = true
	}

	filtered := make(map[string]interface{})
	for key, value := range fullMap {
		if includeFields[key] {
			filtered[key] = value
		}
	}
	return filtered
}

// structToMap converts a struct to map[string]interface{} using JSON marshaling.
func structToMap(obj interface{}) map[string]interface{} {
	data, _ := json.Marshal(obj)
	var result map[string]interface{}
	_ = json.Unmarshal(data, &result)
	return result
}

// PrintOutput writes v as YAML (the default) or JSON.
func PrintOutput(w io.Writer, v interface{}, format string) error {
	switch format {
	case "", "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q (use yaml or json)", format)
	}
}
