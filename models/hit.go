package models

// PatternHit is a single recorded pattern match. Scanners create hits and the
// aggregator consumes them; nothing updates a hit after creation.
type PatternHit struct {
	Page    int    `json:"page" yaml:"page"`
	Label   string `json:"label" yaml:"label"`     // category or feature name
	Matched string `json:"matched" yaml:"matched"` // keyword variant or matched text
	Context string `json:"context" yaml:"context"`
}

// KeywordHit is a keyword-scanner hit: the first variant of Category found on Page.
type KeywordHit struct {
	Category Category `json:"category" yaml:"category"`
	Page     int      `json:"page" yaml:"page"`
	Keyword  string   `json:"keyword" yaml:"keyword"`
	Context  string   `json:"context" yaml:"context"`
}

// ChapterCandidate is a raw, possibly duplicated detection of a chapter heading.
// ChapterNumber is kept as text because headings are not always numeric.
type ChapterCandidate struct {
	ChapterNumber string `json:"chapter_number" yaml:"chapter_number"`
	Title         string `json:"title" yaml:"title"`
	StartPage     int    `json:"start_page" yaml:"start_page"`
	RawMatch      string `json:"raw_match" yaml:"raw_match"`
}

// TableFigure is a detected table or figure caption.
type TableFigure struct {
	Type    string `json:"type" yaml:"type"` // "table" or "figure"
	Number  string `json:"number" yaml:"number"`
	Caption string `json:"caption" yaml:"caption"`
	Page    int    `json:"page" yaml:"page"`
}

const (
	TypeTable  = "table"
	TypeFigure = "figure"
)

// FeatureDescription is a sentence describing ML dataset features. The list of
// these is exported as music_features.
type FeatureDescription struct {
	Description string `json:"description" yaml:"description"`
	Page        int    `json:"page" yaml:"page"`
	RawMatch    string `json:"raw_match" yaml:"raw_match"`
}

// NotationHit is a music-notation match.
type NotationHit struct {
	Page     int          `json:"page" yaml:"page"`
	Type     NotationType `json:"type" yaml:"type"`
	Notation string       `json:"notation" yaml:"notation"`
	Context  string       `json:"context" yaml:"context"`
}

// Composition is a quoted title found near words like "composition" or "lai".
type Composition struct {
	Page    int    `json:"page" yaml:"page"`
	Title   string `json:"title" yaml:"title"`
	Context string `json:"context" yaml:"context"`
}
