package manifest

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/kitsanannam-hue/esaan-dataset/models"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/aggregate"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/artifact_manager"
)

func TestGenerate(t *testing.T) {
	m, err := artifact_manager.NewManager(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewManager() error: %v", err)
	}
	if err := m.Write(artifact_manager.PagesCSV, []byte("page,text\n1,khaen\n")); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	res := &aggregate.Result{
		TotalPages:   3,
		Pages:        []models.PageRow{{Page: 1}, {Page: 3}},
		Notations:    []models.NotationHit{{Page: 3, Type: models.NotationLaiMode, Notation: "Lai Yai"}},
		SkippedPages: []int{2},
		WordCounts:   map[string]int{"khaen": 4, "jazz": 2},
	}
	meta := models.DocumentMetadata{SourceFile: "thesis.pdf", RunID: "run-1", ExtractedAt: "2026-01-15T10:00:00Z"}

	// Generate twice: the second manifest must not list the first.
	for i := 0; i < 2; i++ {
		if _, err := Generate(meta, res, 1, m); err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
	}

	data, err := os.ReadFile(m.Path(artifact_manager.ManifestFile))
	if err != nil {
		t.Fatalf("failed to read manifest: %v", err)
	}
	var got RunManifest
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("manifest is not valid JSON: %v", err)
	}

	if got.RunID != "run-1" || got.GeneratedAt != "2026-01-15T10:00:00Z" {
		t.Errorf("unexpected identity: %+v", got)
	}
	if got.TotalPages != 3 || got.PagesRead != 2 {
		t.Errorf("TotalPages/PagesRead = %d/%d, want 3/2", got.TotalPages, got.PagesRead)
	}
	if len(got.SkippedPages) != 1 || got.SkippedPages[0] != 2 {
		t.Errorf("SkippedPages = %v, want [2]", got.SkippedPages)
	}
	if got.Counts["notations"] != 1 || got.Counts["keyword_hits"] != 0 {
		t.Errorf("Counts = %v", got.Counts)
	}
	if len(got.TopKeywords) != 1 || got.TopKeywords[0] != "khaen:4" {
		t.Errorf("TopKeywords = %v, want [khaen:4]", got.TopKeywords)
	}
	if len(got.Artifacts) != 1 || got.Artifacts[0].Name != artifact_manager.PagesCSV {
		t.Errorf("Artifacts = %+v, want only the pages table", got.Artifacts)
	}
}
