package scanner

import (
	"strings"
	"unicode/utf8"

	"github.com/kitsanannam-hue/esaan-dataset/models"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/patterns"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/snippet"
)

// Notations returns every notation match on the page, rule by rule.
func (s *Scanner) Notations(p models.Page) []models.NotationHit {
	if p.Text == "" {
		return nil
	}
	var out []models.NotationHit
	for _, rule := range s.notation {
		window := s.notationWindow(rule.Type)
		for _, m := range rule.Re.FindAllStringSubmatchIndex(p.Text, -1) {
			whole := p.Text[m[0]:m[1]]
			if rule.Reject != "" && strings.Contains(whole, rule.Reject) {
				continue
			}
			hit := models.NotationHit{
				Page:     p.Number,
				Type:     rule.Type,
				Notation: group(p.Text, m, rule.NotationGroup),
			}
			if rule.ContextGroup >= 0 {
				hit.Context = group(p.Text, m, rule.ContextGroup)
			} else {
				hit.Context = snippet.Around(p.Text, groupStart(m, rule.NotationGroup), window)
			}
			out = append(out, hit)
		}
	}
	return out
}

func (s *Scanner) notationWindow(t models.NotationType) int {
	switch t {
	case models.NotationInterval:
		return s.windows.Interval
	case models.NotationWesternNotes, models.NotationScaleDegrees,
		models.NotationLaiMode, models.NotationChordProgression:
		return s.windows.Notation
	}
	return s.windows.Notation
}

// group returns submatch n from a FindAllStringSubmatchIndex entry, or "" if
// the group did not participate.
func group(text string, m []int, n int) string {
	if 2*n+1 >= len(m) || m[2*n] < 0 {
		return ""
	}
	return text[m[2*n]:m[2*n+1]]
}

// groupStart is the byte offset of submatch n, falling back to the start of
// the whole match.
func groupStart(m []int, n int) int {
	if 2*n+1 >= len(m) || m[2*n] < 0 {
		return m[0]
	}
	return m[2*n]
}

// Compositions returns quoted titles shorter than the configured limit that
// appear near a composition word.
func (s *Scanner) Compositions(p models.Page) []models.Composition {
	rule := s.composition
	if p.Text == "" || rule.Re == nil {
		return nil
	}
	var out []models.Composition
	for _, m := range rule.Re.FindAllStringSubmatchIndex(p.Text, -1) {
		title := group(p.Text, m, 1)
		if rule.MaxTitle > 0 && utf8.RuneCountInString(title) >= rule.MaxTitle {
			continue
		}
		if !nearWord(p.Text, m[0], m[1], rule) {
			continue
		}
		out = append(out, models.Composition{
			Page:    p.Number,
			Title:   title,
			Context: snippet.Around(p.Text, m[0], s.windows.Composition),
		})
	}
	return out
}

func nearWord(text string, start, end int, rule patterns.CompositionRule) bool {
	around := patterns.FoldString(snippet.Span(text, start, end, rule.Lookaround))
	for _, w := range rule.Words {
		if strings.Contains(around, w) {
			return true
		}
	}
	return false
}
