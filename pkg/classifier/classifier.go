package classifier

import (
	"strings"

	"github.com/kitsanannam-hue/esaan-dataset/models"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/patterns"
	"github.com/pemistahl/lingua-go"
)

// Classifier evaluates whole-page predicates. It is safe for concurrent use.
type Classifier struct {
	flags    []patterns.FlagRule
	detector lingua.LanguageDetector
}

// New builds a classifier from the registry flag rules. Language detection is
// only set up when detectLanguage is true.
func New(reg *patterns.Registry, detectLanguage bool) *Classifier {
	c := &Classifier{flags: reg.Flags()}
	if detectLanguage {
		c.detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.English, lingua.Thai).
			Build()
	}
	return c
}

// Flags evaluates every flag against the whole page text. The result belongs
// to the page, not to any particular hit.
func (c *Classifier) Flags(text string) models.PageFlags {
	var f models.PageFlags
	if text == "" {
		return f
	}
	for _, rule := range c.flags {
		f = f.Set(rule.Flag, rule.Re.MatchString(text))
	}
	return f
}

// Language returns the ISO 639-1 code of the dominant language ("en", "th")
// or "" when detection is off or inconclusive.
func (c *Classifier) Language(text string) string {
	if c.detector == nil || strings.TrimSpace(text) == "" {
		return ""
	}
	lang, ok := c.detector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
