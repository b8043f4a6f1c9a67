package models

// KeywordStat is the per-category entry of the keyword analysis.
type KeywordStat struct {
	Count int   `json:"count" yaml:"count"`
	Pages []int `json:"pages" yaml:"pages"` // distinct, ascending
}

// ExtractionSummary is the summary report of one extraction run.
type ExtractionSummary struct {
	TotalPages       int                      `json:"total_pages" yaml:"total_pages"`
	Chapters         []ChapterCandidate       `json:"chapters" yaml:"chapters"`
	KeywordAnalysis  map[Category]KeywordStat `json:"keyword_analysis" yaml:"keyword_analysis"`
	TablesCount      int                      `json:"tables_count" yaml:"tables_count"`
	FiguresCount     int                      `json:"figures_count" yaml:"figures_count"`
	MLFeaturesFound  int                      `json:"ml_features_found" yaml:"ml_features_found"`
	TablesAndFigures []TableFigure            `json:"tables_and_figures" yaml:"tables_and_figures"`
	SampleFeatures   []FeatureDescription     `json:"sample_features" yaml:"sample_features"`

	// SkippedPages lists pages whose text could not be read. It separates
	// "no matches" from "page unavailable".
	SkippedPages []int    `json:"skipped_pages,omitempty" yaml:"skipped_pages,omitempty"`
	TopTerms     []string `json:"top_terms,omitempty" yaml:"top_terms,omitempty"`
}

// NotationSummary summarizes the notation dataset.
type NotationSummary struct {
	TotalNotations    int                  `json:"total_notations" yaml:"total_notations"`
	ByType            map[NotationType]int `json:"by_type" yaml:"by_type"`
	TotalCompositions int                  `json:"total_compositions" yaml:"total_compositions"`
	PagesWithNotation int                  `json:"pages_with_notation" yaml:"pages_with_notation"`
}

// DatasetStats describes the analysis table. TotalEntries counts rows, one per
// page and detected feature. The flag totals count distinct pages carrying
// the flag, not rows: a page with three features and has_jazz adds one to
// JazzPages, not three.
type DatasetStats struct {
	TotalEntries        int            `json:"total_entries" yaml:"total_entries"`
	UniquePages         int            `json:"unique_pages" yaml:"unique_pages"`
	FeatureDistribution map[string]int `json:"feature_distribution" yaml:"feature_distribution"`
	ThaiMusicPages      int            `json:"thai_music_pages" yaml:"thai_music_pages"`
	JazzPages           int            `json:"jazz_pages" yaml:"jazz_pages"`
	MLPages             int            `json:"ml_pages" yaml:"ml_pages"`
	FusionPages         int            `json:"fusion_pages" yaml:"fusion_pages"`
}

// PageCoverage is the page span covered by a dataset.
type PageCoverage struct {
	MinPage     int `json:"min_page" yaml:"min_page"`
	MaxPage     int `json:"max_page" yaml:"max_page"`
	UniquePages int `json:"unique_pages" yaml:"unique_pages"`
}

// QualityReport describes the notation dataset: empty fields, exact duplicate
// rows and how the hits spread over types and pages.
type QualityReport struct {
	TotalRecords     int                  `json:"total_records" yaml:"total_records"`
	MissingValues    map[string]int       `json:"missing_values" yaml:"missing_values"`
	DuplicateRecords int                  `json:"duplicate_records" yaml:"duplicate_records"`
	TypeDistribution map[NotationType]int `json:"type_distribution" yaml:"type_distribution"`
	PageCoverage     PageCoverage         `json:"page_coverage" yaml:"page_coverage"`
	Issues           []string             `json:"issues,omitempty" yaml:"issues,omitempty"`
}
