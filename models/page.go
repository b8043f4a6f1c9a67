package models

import (
	"strconv"
	"strings"
)

// Page is one unit of paginated source text. Numbers start at 1.
type Page struct {
	Number int    `json:"page"`
	Text   string `json:"text"`
}

// WordCount counts whitespace-separated tokens.
func (p Page) WordCount() int {
	return len(strings.Fields(p.Text))
}

// CharCount counts characters (runes), not bytes.
func (p Page) CharCount() int {
	return len([]rune(p.Text))
}

// Key returns the page number as a decimal string, the form used by the
// extracted_text mapping in exported documents.
func (p Page) Key() string {
	return strconv.Itoa(p.Number)
}

// PageRow is one row of the pages table.
type PageRow struct {
	Page      int    `json:"page" yaml:"page"`
	Text      string `json:"text" yaml:"text"`
	WordCount int    `json:"word_count" yaml:"word_count"`
	CharCount int    `json:"char_count" yaml:"char_count"`
	Language  string `json:"language,omitempty" yaml:"language,omitempty"`
}

// NewPageRow builds the table row for a page. Language is filled in by the
// classifier.
func NewPageRow(p Page) PageRow {
	return PageRow{
		Page:      p.Number,
		Text:      p.Text,
		WordCount: p.WordCount(),
		CharCount: p.CharCount(),
	}
}
