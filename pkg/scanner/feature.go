package scanner

import (
	"github.com/kitsanannam-hue/esaan-dataset/models"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/snippet"
)

// Features records one hit per feature rule that matches the page. Context is
// taken around the first match only.
func (s *Scanner) Features(p models.Page) []models.PatternHit {
	if p.Text == "" {
		return nil
	}
	var hits []models.PatternHit
	for _, rule := range s.features {
		loc := rule.Re.FindStringIndex(p.Text)
		if loc == nil {
			continue
		}
		hits = append(hits, models.PatternHit{
			Page:    p.Number,
			Label:   rule.Name,
			Matched: p.Text[loc[0]:loc[1]],
			Context: snippet.Span(p.Text, loc[0], loc[1], s.windows.Feature),
		})
	}
	return hits
}
