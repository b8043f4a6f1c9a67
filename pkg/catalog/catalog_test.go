package catalog

import (
	"encoding/json"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	rows, err := c.Rows()
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}
	if len(rows) != 11 {
		t.Fatalf("got %d catalog rows, want 11", len(rows))
	}
	if rows[0].FeatureName != "thang" || rows[0].Category != "thai_traditional" {
		t.Errorf("first row = %+v", rows[0])
	}

	var modes []string
	if err := json.Unmarshal([]byte(rows[0].SubTypes), &modes); err != nil {
		t.Fatalf("sub_types is not a JSON array: %v", err)
	}
	if len(modes) != 7 {
		t.Errorf("thang has %d modes, want 7", len(modes))
	}

	last := rows[len(rows)-1]
	if last.FeatureName != "rhythm_fusion" || last.Category != "cross_cultural_fusion" {
		t.Errorf("last row = %+v", last)
	}
}

func TestSchema(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	s := c.Schema()

	if s.Version != "1.0" {
		t.Errorf("Version = %q, want 1.0", s.Version)
	}
	jazz, ok := s.Categories["jazz_modern"]
	if !ok {
		t.Fatal("schema missing jazz_modern")
	}
	if len(jazz.Features) != 4 {
		t.Errorf("jazz_modern has %d features, want 4", len(jazz.Features))
	}
	if got := s.AudioFeatures["spectral"]; len(got) != 5 {
		t.Errorf("spectral audio features = %v", got)
	}
	if got := s.AnnotationTypes["structural"]; len(got) != 3 {
		t.Errorf("structural annotations = %v", got)
	}

	// Mutating the schema must not reach the catalog.
	s.AudioFeatures["spectral"][0] = "changed"
	if c.Schema().AudioFeatures["spectral"][0] != "mfcc" {
		t.Error("Schema() shares slices with the catalog")
	}
}

func TestFeatureLookup(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	f, ok := c.Feature("luk_tok")
	if !ok {
		t.Fatal("luk_tok not found")
	}
	if f.Category != "thai_traditional" || f.SubTypeKind != "patterns" {
		t.Errorf("luk_tok = %+v", f)
	}
	if _, ok := c.Feature("nope"); ok {
		t.Error("unknown feature reported as found")
	}
}

func TestLoadRejectsEmpty(t *testing.T) {
	if _, err := Load([]byte("version: '1.0'\n")); err == nil {
		t.Error("Load() accepted a catalog without categories")
	}
}
