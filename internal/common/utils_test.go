package common

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"
)

func newContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("config", "", "")
	set.String("source", "", "")
	set.String("output-dir", "", "")
	set.String("db", "", "")
	set.Int("workers", 0, "")
	set.Int("from", 0, "")
	set.Int("to", 0, "")
	set.Int("top-terms", 0, "")
	set.Bool("no-language", false, "")
	if err := set.Parse(args); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "workers: 8\noutput_dir: from-file\nwindows:\n  keyword: 50\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	c := newContext(t, "--config", path, "--output-dir", "from-flag", "--from", "3", "thesis.pdf")
	cfg, err := LoadConfig(c)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.WorkerCount != 8 {
		t.Errorf("WorkerCount = %d, want 8 from file", cfg.WorkerCount)
	}
	if cfg.OutputDir != "from-flag" {
		t.Errorf("OutputDir = %q, want flag value", cfg.OutputDir)
	}
	if cfg.Windows.Keyword != 50 {
		t.Errorf("Windows.Keyword = %d, want 50", cfg.Windows.Keyword)
	}
	if cfg.Windows.Feature != 150 {
		t.Errorf("Windows.Feature = %d, want default 150", cfg.Windows.Feature)
	}
	if cfg.FromPage != 3 {
		t.Errorf("FromPage = %d, want 3", cfg.FromPage)
	}
	if cfg.Source != "thesis.pdf" {
		t.Errorf("Source = %q, want positional argument", cfg.Source)
	}
}

func TestLoadConfigRejectsInvalidFlags(t *testing.T) {
	c := newContext(t, "--workers", "0")
	if _, err := LoadConfig(c); err == nil {
		t.Fatal("expected error for zero workers")
	}

	c = newContext(t, "--from", "9", "--to", "2")
	if _, err := LoadConfig(c); err == nil {
		t.Fatal("expected error for inverted page range")
	}
}

func TestSanitizeSource(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  thesis.pdf  ", "thesis.pdf"},
		{`"my thesis.pdf"`, "my thesis.pdf"},
		{"'thesis.pdf'", "thesis.pdf"},
		{"<https://example.com/thesis.html>", "https://example.com/thesis.html"},
		{"[thesis](https://example.com/thesis.html)", "https://example.com/thesis.html"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeSource(tt.input); got != tt.expected {
				t.Errorf("SanitizeSource(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFilterResultFields(t *testing.T) {
	row := struct {
		Page  int    `json:"page"`
		Title string `json:"title"`
		Body  string `json:"body"`
	}{Page: 4, Title: "Lai Yai", Body: "text"}

	all := FilterResultFields(row, "")
	if len(all) != 3 {
		t.Errorf("expected all 3 fields, got %v", all)
	}

	filtered := FilterResultFields(row, "page, title")
	if len(filtered) != 2 {
		t.Fatalf("expected 2 fields, got %v", filtered)
	}
	if filtered["title"] != "Lai Yai" {
		t.Errorf("title = %v", filtered["title"])
	}
	if _, ok := filtered["body"]; ok {
		t.Error("body should be filtered out")
	}
}

func TestPrintOutput(t *testing.T) {
	v := map[string]int{"pages": 2}

	var buf bytes.Buffer
	if err := PrintOutput(&buf, v, "yaml"); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "pages: 2" {
		t.Errorf("yaml output = %q", buf.String())
	}

	buf.Reset()
	if err := PrintOutput(&buf, v, "json"); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(buf.String(), `"pages": 2`) {
		t.Errorf("json output = %q", buf.String())
	}

	if err := PrintOutput(&buf, v, "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}
