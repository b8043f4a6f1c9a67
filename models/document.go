package models

// DocumentMetadata describes the source of an extracted document.
type DocumentMetadata struct {
	SourceFile  string `json:"source_file"`
	TotalPages  int    `json:"total_pages"`
	// FromPage and ToPage record the page range that was read; zero is open.
	FromPage    int    `json:"from_page,omitempty"`
	ToPage      int    `json:"to_page,omitempty"`
	RunID       string `json:"run_id,omitempty"`
	ExtractedAt string `json:"extracted_at,omitempty"`
}

// ExtractedDocument is the persisted JSON form of an extraction run. Page
// text is keyed by the decimal page number.
type ExtractedDocument struct {
	Metadata      DocumentMetadata     `json:"metadata"`
	Chapters      []ChapterCandidate   `json:"chapters"`
	ExtractedText map[string]string    `json:"extracted_text"`
	MusicFeatures []FeatureDescription `json:"music_features"`
}
