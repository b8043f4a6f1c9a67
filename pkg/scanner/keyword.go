package scanner

import (
	"github.com/kitsanannam-hue/esaan-dataset/models"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/patterns"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/snippet"
)

// Keywords returns at most one hit per category: the first variant, in
// configured order, that occurs anywhere on the page.
func (s *Scanner) Keywords(p models.Page) []models.KeywordHit {
	if p.Text == "" {
		return nil
	}
	folded := patterns.Fold(p.Text)

	var hits []models.KeywordHit
	for _, set := range s.keywords {
		for i, variant := range set.FoldedVariants() {
			start, end, ok := folded.Index(variant)
			if !ok {
				continue
			}
			hits = append(hits, models.KeywordHit{
				Category: set.Category,
				Page:     p.Number,
				Keyword:  set.Variants[i],
				Context:  snippet.Match(p.Text, start, end, s.windows.Keyword),
			})
			// Only the first matching variant is kept per category and page.
			// Later variants and repeat occurrences are dropped.
			break
		}
	}
	return hits
}
