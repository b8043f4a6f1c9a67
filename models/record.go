package models

// PageFlags are page-level classifications. They are computed once from the
// whole page text and copied onto every analysis row for that page.
type PageFlags struct {
	HasThaiMusic bool `json:"has_thai_music" yaml:"has_thai_music"`
	HasJazz      bool `json:"has_jazz" yaml:"has_jazz"`
	HasMLTerms   bool `json:"has_ml_terms" yaml:"has_ml_terms"`
	HasFusion    bool `json:"has_fusion" yaml:"has_fusion"`
}

// Get returns the value of a single flag.
func (f PageFlags) Get(flag Flag) bool {
	switch flag {
	case FlagThaiMusic:
		return f.HasThaiMusic
	case FlagJazz:
		return f.HasJazz
	case FlagMLTerms:
		return f.HasMLTerms
	case FlagFusion:
		return f.HasFusion
	}
	return false
}

// Set returns a copy of f with flag set to v.
func (f PageFlags) Set(flag Flag, v bool) PageFlags {
	switch flag {
	case FlagThaiMusic:
		f.HasThaiMusic = v
	case FlagJazz:
		f.HasJazz = v
	case FlagMLTerms:
		f.HasMLTerms = v
	case FlagFusion:
		f.HasFusion = v
	}
	return f
}

// PageAnalysisRecord is one row per (page, matched feature).
type PageAnalysisRecord struct {
	Page        int    `json:"page" yaml:"page"`
	FeatureName string `json:"feature_name" yaml:"feature_name"`
	Context     string `json:"context" yaml:"context"`
	WordCount   int    `json:"word_count" yaml:"word_count"`
	PageFlags   `yaml:",inline"`
}

// AnalysisColumns is the column order of the analysis table.
var AnalysisColumns = []string{
	"page", "feature_name", "context", "word_count",
	"has_thai_music", "has_jazz", "has_ml_terms", "has_fusion",
}

// PageColumns is the column order of the pages table.
var PageColumns = []string{"page", "text", "word_count", "char_count"}
