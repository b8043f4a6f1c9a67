package scanner

import (
	"strings"

	"github.com/kitsanannam-hue/esaan-dataset/models"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/snippet"
)

const (
	maxCaption     = 200
	maxDescription = 300
	maxRawMatch    = 200
)

// Chapters returns every heading candidate on the page, duplicates included.
func (s *Scanner) Chapters(p models.Page) []models.ChapterCandidate {
	if p.Text == "" {
		return nil
	}
	var out []models.ChapterCandidate
	for _, rule := range s.chapters {
		for _, m := range rule.Re.FindAllStringSubmatch(p.Text, -1) {
			if len(m) < 3 {
				continue
			}
			out = append(out, models.ChapterCandidate{
				ChapterNumber: m[1],
				Title:         strings.TrimSpace(m[2]),
				StartPage:     p.Number,
				RawMatch:      m[0],
			})
		}
	}
	return out
}

// Captions returns table and figure captions. The type is decided by the
// matched text, so a figure caption mentioning a table counts as a table.
func (s *Scanner) Captions(p models.Page) []models.TableFigure {
	if p.Text == "" {
		return nil
	}
	var out []models.TableFigure
	for _, rule := range s.captions {
		for _, m := range rule.Re.FindAllStringSubmatch(p.Text, -1) {
			if len(m) < 3 {
				continue
			}
			out = append(out, models.TableFigure{
				Type:    captionType(m[0]),
				Number:  m[1],
				Caption: snippet.Truncate(strings.TrimSpace(m[2]), maxCaption),
				Page:    p.Number,
			})
		}
	}
	return out
}

func captionType(raw string) string {
	if strings.Contains(strings.ToLower(raw), "table") || strings.Contains(raw, "ตาราง") {
		return models.TypeTable
	}
	return models.TypeFigure
}

// Descriptions returns sentences that describe ML dataset features.
func (s *Scanner) Descriptions(p models.Page) []models.FeatureDescription {
	if p.Text == "" {
		return nil
	}
	var out []models.FeatureDescription
	for _, rule := range s.descriptions {
		for _, m := range rule.Re.FindAllStringSubmatch(p.Text, -1) {
			if len(m) < 2 {
				continue
			}
			out = append(out, models.FeatureDescription{
				Description: snippet.Truncate(strings.TrimSpace(m[1]), maxDescription),
				Page:        p.Number,
				RawMatch:    snippet.Truncate(m[0], maxRawMatch),
			})
		}
	}
	return out
}
