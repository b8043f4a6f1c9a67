package extractor

import (
	"testing"

	"github.com/kitsanannam-hue/esaan-dataset/models"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		check   func(*Strategy) bool
	}{
		{"empty", "", false, func(s *Strategy) bool { return s.IsZero() }},
		{"flags", "flag:has_jazz|has_fusion", false, func(s *Strategy) bool { return len(s.Flags) == 2 }},
		{"features", "feature:tempo | rhythm", false, func(s *Strategy) bool {
			_, ok := s.Features["rhythm"]
			return ok && len(s.Features) == 2
		}},
		{"page from", "page:>=10", false, func(s *Strategy) bool { return s.MinPage == 10 && s.MaxPage == 0 }},
		{"page to", "page:<=20", false, func(s *Strategy) bool { return s.MaxPage == 20 }},
		{"page range", "page:10-20", false, func(s *Strategy) bool { return s.MinPage == 10 && s.MaxPage == 20 }},
		{"single page", "page:27", false, func(s *Strategy) bool { return s.MinPage == 27 && s.MaxPage == 27 }},
		{"words", "words:>=50", false, func(s *Strategy) bool { return s.MinWords == 50 }},
		{"combined", "flag:has_jazz,feature:tempo,page:>=3", false, func(s *Strategy) bool {
			return len(s.Flags) == 1 && len(s.Features) == 1 && s.MinPage == 3
		}},
		{"unknown flag", "flag:has_rock", true, nil},
		{"unknown key", "conf:>=0.5", true, nil},
		{"missing value", "flag", true, nil},
		{"backwards range", "page:20-10", true, nil},
		{"bad words operator", "words:<5", true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseStrategy(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStrategy(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(s) {
				t.Errorf("ParseStrategy(%q) = %+v", tt.input, s)
			}
		})
	}
}

func TestFilterRows(t *testing.T) {
	rows := []models.PageAnalysisRecord{
		{Page: 3, FeatureName: "tempo", WordCount: 100, PageFlags: models.PageFlags{HasJazz: true}},
		{Page: 3, FeatureName: "khaen", WordCount: 100, PageFlags: models.PageFlags{HasJazz: true}},
		{Page: 12, FeatureName: "tempo", WordCount: 20, PageFlags: models.PageFlags{HasFusion: true}},
		{Page: 15, FeatureName: "rhythm", WordCount: 300},
	}

	tests := []struct {
		strategy  string
		wantPages []int
	}{
		{"", []int{3, 3, 12, 15}},
		{"flag:has_jazz", []int{3, 3}},
		{"flag:has_jazz|has_fusion,feature:tempo", []int{3, 12}},
		{"page:>=10", []int{12, 15}},
		{"page:10-14", []int{12}},
		{"words:>=100", []int{3, 3, 15}},
		{"feature:rhythm,flag:has_jazz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.strategy, func(t *testing.T) {
			s, err := ParseStrategy(tt.strategy)
			if err != nil {
				t.Fatalf("ParseStrategy() error: %v", err)
			}
			got := FilterRows(rows, s)
			if len(got) != len(tt.wantPages) {
				t.Fatalf("got %d rows, want %d", len(got), len(tt.wantPages))
			}
			for i, row := range got {
				if row.Page != tt.wantPages[i] {
					t.Errorf("row %d page = %d, want %d", i, row.Page, tt.wantPages[i])
				}
			}
		})
	}
}
