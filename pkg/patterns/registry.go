// Package patterns holds the immutable registry of keyword variants and
// regular expressions used by the scanners and the page classifier.
//
// The registry is loaded once from embedded YAML. Callers receive read-only
// accessors; compiled expressions are shared and safe for concurrent use.
package patterns

import (
	_ "embed"
	"fmt"
	"regexp"
	"sync"

	"github.com/kitsanannam-hue/esaan-dataset/models"
	"gopkg.in/yaml.v3"
)

//go:embed patterns.yaml
var defaultPatterns []byte

// ConfigError reports a pattern that failed to load or compile. It is fatal at
// startup.
type ConfigError struct {
	Section string
	Name    string
	Pattern string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Pattern == "" {
		return fmt.Sprintf("pattern config %s/%s: %v", e.Section, e.Name, e.Err)
	}
	return fmt.Sprintf("pattern config %s/%s: compile %q: %v", e.Section, e.Name, e.Pattern, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

type ruleSpec struct {
	Name          string `yaml:"name"`
	Pattern       string `yaml:"pattern"`
	CaseSensitive bool   `yaml:"case_sensitive"`
	Multiline     bool   `yaml:"multiline"`
}

type fileSpec struct {
	Keywords []struct {
		Category string   `yaml:"category"`
		Variants []string `yaml:"variants"`
	} `yaml:"keywords"`
	Features []ruleSpec `yaml:"features"`
	Flags    []struct {
		Flag    string `yaml:"flag"`
		Pattern string `yaml:"pattern"`
	} `yaml:"flags"`
	Structure struct {
		Chapters     []ruleSpec `yaml:"chapters"`
		Captions     []ruleSpec `yaml:"captions"`
		Descriptions []ruleSpec `yaml:"descriptions"`
	} `yaml:"structure"`
	Notation []struct {
		Type          string `yaml:"type"`
		Pattern       string `yaml:"pattern"`
		CaseSensitive bool   `yaml:"case_sensitive"`
		Reject        string `yaml:"reject"`
		NotationGroup int    `yaml:"notation_group"`
		ContextGroup  *int   `yaml:"context_group"`
	} `yaml:"notation"`
	Compositions struct {
		Pattern    string   `yaml:"pattern"`
		MaxTitle   int      `yaml:"max_title"`
		Lookaround int      `yaml:"lookaround"`
		Words      []string `yaml:"words"`
	} `yaml:"compositions"`
}

// Rule is a named compiled expression.
type Rule struct {
	Name string
	Re   *regexp.Regexp
}

// KeywordSet is the ordered variant list of one category.
type KeywordSet struct {
	Category models.Category
	Variants []string
	folded   []string
}

// FlagRule is the whole-page predicate behind one page flag.
type FlagRule struct {
	Flag models.Flag
	Re   *regexp.Regexp
}

// NotationRule is one notation expression.
type NotationRule struct {
	Type models.NotationType
	Re   *regexp.Regexp
	// Reject drops matches containing this substring.
	Reject string
	// NotationGroup is the submatch recorded as the notation (0 = whole match).
	NotationGroup int
	// ContextGroup, when >= 0, is the submatch used verbatim as context
	// instead of a window around the match.
	ContextGroup int
}

// CompositionRule finds quoted titles near composition words.
type CompositionRule struct {
	Re         *regexp.Regexp
	MaxTitle   int
	Lookaround int
	Words      []string
}

// Registry is the loaded, immutable pattern set.
type Registry struct {
	keywords     []KeywordSet
	features     []Rule
	flags        []FlagRule
	chapters     []Rule
	captions     []Rule
	descriptions []Rule
	notation     []NotationRule
	composition  CompositionRule
}

var loadDefault = sync.OnceValues(func() (*Registry, error) {
	return Load(defaultPatterns)
})

// Default returns the registry built from the embedded pattern file. It is
// parsed and compiled on first use only.
func Default() (*Registry, error) {
	return loadDefault()
}

// Load parses a pattern file and compiles every expression in it.
func Load(data []byte) (*Registry, error) {
	var spec fileSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, &ConfigError{Section: "file", Name: "patterns.yaml", Err: err}
	}

	r := &Registry{}
	fold := newFolder()

	seen := make(map[models.Category]bool)
	for _, k := range spec.Keywords {
		cat, err := models.ParseCategory(k.Category)
		if err != nil {
			return nil, &ConfigError{Section: "keywords", Name: k.Category, Err: err}
		}
		if seen[cat] {
			return nil, &ConfigError{Section: "keywords", Name: k.Category, Err: fmt.Errorf("duplicate category")}
		}
		seen[cat] = true
		set := KeywordSet{Category: cat, Variants: append([]string(nil), k.Variants...)}
		for _, v := range k.Variants {
			set.folded = append(set.folded, fold.String(Normalize(v)))
		}
		r.keywords = append(r.keywords, set)
	}
	for _, cat := range models.Categories() {
		if !seen[cat] {
			return nil, &ConfigError{Section: "keywords", Name: string(cat), Err: fmt.Errorf("category has no variants")}
		}
	}

	var err error
	if r.features, err = compileRules("features", spec.Features); err != nil {
		return nil, err
	}
	if r.chapters, err = compileRules("structure.chapters", spec.Structure.Chapters); err != nil {
		return nil, err
	}
	if r.captions, err = compileRules("structure.captions", spec.Structure.Captions); err != nil {
		return nil, err
	}
	if r.descriptions, err = compileRules("structure.descriptions", spec.Structure.Descriptions); err != nil {
		return nil, err
	}

	for _, f := range spec.Flags {
		flag, err := models.ParseFlag(f.Flag)
		if err != nil {
			return nil, &ConfigError{Section: "flags", Name: f.Flag, Err: err}
		}
		re, err := compile(f.Pattern, false, false)
		if err != nil {
			return nil, &ConfigError{Section: "flags", Name: f.Flag, Pattern: f.Pattern, Err: err}
		}
		r.flags = append(r.flags, FlagRule{Flag: flag, Re: re})
	}

	for _, n := range spec.Notation {
		typ, err := models.ParseNotationType(n.Type)
		if err != nil {
			return nil, &ConfigError{Section: "notation", Name: n.Type, Err: err}
		}
		re, err := compile(n.Pattern, n.CaseSensitive, false)
		if err != nil {
			return nil, &ConfigError{Section: "notation", Name: n.Type, Pattern: n.Pattern, Err: err}
		}
		rule := NotationRule{Type: typ, Re: re, Reject: n.Reject, NotationGroup: n.NotationGroup, ContextGroup: -1}
		if n.ContextGroup != nil {
			rule.ContextGroup = *n.ContextGroup
		}
		if rule.NotationGroup > re.NumSubexp() || rule.ContextGroup > re.NumSubexp() {
			return nil, &ConfigError{Section: "notation", Name: n.Type, Err: fmt.Errorf("group out of range (pattern has %d)", re.NumSubexp())}
		}
		r.notation = append(r.notation, rule)
	}

	c := spec.Compositions
	if c.Pattern != "" {
		re, err := compile(c.Pattern, true, false)
		if err != nil {
			return nil, &ConfigError{Section: "compositions", Name: "title", Pattern: c.Pattern, Err: err}
		}
		if re.NumSubexp() < 1 {
			return nil, &ConfigError{Section: "compositions", Name: "title", Err: fmt.Errorf("pattern needs a title group")}
		}
		r.composition = CompositionRule{Re: re, MaxTitle: c.MaxTitle, Lookaround: c.Lookaround}
		for _, w := range c.Words {
			r.composition.Words = append(r.composition.Words, fold.String(w))
		}
	}

	return r, nil
}

func compileRules(section string, specs []ruleSpec) ([]Rule, error) {
	rules := make([]Rule, 0, len(specs))
	for _, s := range specs {
		re, err := compile(s.Pattern, s.CaseSensitive, s.Multiline)
		if err != nil {
			return nil, &ConfigError{Section: section, Name: s.Name, Pattern: s.Pattern, Err: err}
		}
		rules = append(rules, Rule{Name: s.Name, Re: re})
	}
	return rules, nil
}

func compile(pattern string, caseSensitive, multiline bool) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, fmt.Errorf("empty pattern")
	}
	flags := ""
	if !caseSensitive {
		flags += "i"
	}
	if multiline {
		flags += "m"
	}
	if flags != "" {
		pattern = "(?" + flags + ")" + pattern
	}
	return regexp.Compile(pattern)
}

// Keywords returns the keyword sets in category order.
func (r *Registry) Keywords() []KeywordSet { return append([]KeywordSet(nil), r.keywords...) }

// Features returns the feature rules in report order.
func (r *Registry) Features() []Rule { return append([]Rule(nil), r.features...) }

// FeatureNames lists the feature rule names.
func (r *Registry) FeatureNames() []string {
	names := make([]string, len(r.features))
	for i, f := range r.features {
		names[i] = f.Name
	}
	return names
}

// Flags returns the page flag predicates.
func (r *Registry) Flags() []FlagRule { return append([]FlagRule(nil), r.flags...) }

// Chapters returns the chapter heading rules.
func (r *Registry) Chapters() []Rule { return append([]Rule(nil), r.chapters...) }

// Captions returns the table and figure caption rules.
func (r *Registry) Captions() []Rule { return append([]Rule(nil), r.captions...) }

// Descriptions returns the ML feature description rules.
func (r *Registry) Descriptions() []Rule { return append([]Rule(nil), r.descriptions...) }

// Notation returns the notation rules in scan order.
func (r *Registry) Notation() []NotationRule { return append([]NotationRule(nil), r.notation...) }

// Composition returns the composition title rule. Re is nil when the pattern
// file defines none.
func (r *Registry) Composition() CompositionRule {
	c := r.composition
	c.Words = append([]string(nil), c.Words...)
	return c
}
