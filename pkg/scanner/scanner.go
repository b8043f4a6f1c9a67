// Package scanner runs the pattern scanners over a single page.
//
// Scanners are pure: they read page text and the shared registry and return
// page-local hits, so pages can be scanned in any order and in parallel.
// Page text is expected to be NFC-normalized by the loader.
package scanner

import (
	"github.com/kitsanannam-hue/esaan-dataset/models"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/patterns"
)

// PageResult collects every hit found on one page.
type PageResult struct {
	Page         int
	Keywords     []models.KeywordHit
	Features     []models.PatternHit
	Chapters     []models.ChapterCandidate
	Captions     []models.TableFigure
	Descriptions []models.FeatureDescription
	Notations    []models.NotationHit
	Compositions []models.Composition
}

// Scanner scans pages against a pattern registry.
type Scanner struct {
	windows      models.Windows
	keywords     []patterns.KeywordSet
	features     []patterns.Rule
	chapters     []patterns.Rule
	captions     []patterns.Rule
	descriptions []patterns.Rule
	notation     []patterns.NotationRule
	composition  patterns.CompositionRule
}

// New returns a scanner over reg using the given context windows.
func New(reg *patterns.Registry, windows models.Windows) *Scanner {
	return &Scanner{
		windows:      windows,
		keywords:     reg.Keywords(),
		features:     reg.Features(),
		chapters:     reg.Chapters(),
		captions:     reg.Captions(),
		descriptions: reg.Descriptions(),
		notation:     reg.Notation(),
		composition:  reg.Composition(),
	}
}

// Scan runs every scanner over p. An empty page yields an empty result.
func (s *Scanner) Scan(p models.Page) PageResult {
	res := PageResult{Page: p.Number}
	if p.Text == "" {
		return res
	}
	res.Keywords = s.Keywords(p)
	res.Features = s.Features(p)
	res.Chapters = s.Chapters(p)
	res.Captions = s.Captions(p)
	res.Descriptions = s.Descriptions(p)
	res.Notations = s.Notations(p)
	res.Compositions = s.Compositions(p)
	return res
}
