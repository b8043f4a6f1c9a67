package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/kitsanannam-hue/esaan-dataset/models"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/artifact_manager"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/db"
)

func TestSummary(t *testing.T) {
	s := models.ExtractionSummary{
		TotalPages: 1234,
		Chapters: []models.ChapterCandidate{
			{ChapterNumber: "1", Title: "Introduction", StartPage: 3},
		},
		KeywordAnalysis: map[models.Category]models.KeywordStat{
			models.CategoryThaiMusic: {Count: 5, Pages: []int{3, 4}},
		},
		TablesCount:  2,
		FiguresCount: 1,
		TopTerms:     []string{"khaen:3"},
		SkippedPages: []int{7, 9},
	}

	var buf bytes.Buffer
	Summary(&buf, s)
	out := buf.String()

	for _, want := range []string{
		"Extraction Summary",
		"1,234",
		"thai_music",
		"3,4",
		"music_theory",
		"Introduction",
		"p.3",
		"khaen:3",
		"Skipped 2 pages: 7,9",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q:\n%s", want, out)
		}
	}
}

func TestNotationSummaryListsAllTypes(t *testing.T) {
	var buf bytes.Buffer
	NotationSummary(&buf, models.NotationSummary{
		TotalNotations: 4,
		ByType:         map[models.NotationType]int{models.NotationLaiMode: 4},
	})
	out := buf.String()
	for _, typ := range models.NotationTypes() {
		if !strings.Contains(out, string(typ)) {
			t.Errorf("missing notation type %s:\n%s", typ, out)
		}
	}
}

func TestDatasetStatsOrdersFeatures(t *testing.T) {
	var buf bytes.Buffer
	DatasetStats(&buf, models.DatasetStats{
		TotalEntries:        5,
		FeatureDistribution: map[string]int{"tempo": 1, "pitch_contour": 4},
	})
	out := buf.String()
	if strings.Index(out, "pitch_contour") > strings.Index(out, "tempo") {
		t.Errorf("expected most frequent feature first:\n%s", out)
	}
}

func TestArtifacts(t *testing.T) {
	var buf bytes.Buffer
	Artifacts(&buf, []artifact_manager.Artifact{{Name: "pages.csv", SizeBytes: 2048}})
	out := buf.String()
	if !strings.Contains(out, "pages.csv") || !strings.Contains(out, "2.0 kB") {
		t.Errorf("unexpected artifacts output:\n%s", out)
	}
}

func TestRuns(t *testing.T) {
	var buf bytes.Buffer
	Runs(&buf, nil)
	if !strings.Contains(buf.String(), "No runs recorded") {
		t.Errorf("expected empty message, got %q", buf.String())
	}

	buf.Reset()
	Runs(&buf, []db.Run{{RunID: "abc", Source: "thesis.pdf", State: "exported", StartedAt: time.Now().Add(-2 * time.Hour)}})
	out := buf.String()
	if !strings.Contains(out, "abc") || !strings.Contains(out, "thesis.pdf") || !strings.Contains(out, "2 hours ago") {
		t.Errorf("unexpected runs output:\n%s", out)
	}
}

func TestPageList(t *testing.T) {
	tests := []struct {
		name  string
		pages []int
		want  string
	}{
		{"empty", nil, "-"},
		{"short", []int{1, 2}, "1,2"},
		{"long", []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}, "1,2,3,4,5,6,7,8,9,10,11,12 (+2 more)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pageList(tt.pages); got != tt.want {
				t.Errorf("pageList() = %q, want %q", got, tt.want)
			}
		})
	}
}
