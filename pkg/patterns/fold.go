package patterns

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalize returns s in Unicode NFC so Thai combining marks compare
// consistently across extraction backends.
func Normalize(s string) string {
	return norm.NFC.String(s)
}

// folder applies full Unicode case folding. A cases.Caser keeps state, so
// each goroutine needs its own folder.
type folder struct {
	c cases.Caser
}

func newFolder() *folder {
	return &folder{c: cases.Fold()}
}

func (f *folder) String(s string) string {
	return f.c.String(s)
}

// FoldedText is a case-folded copy of a page with a map back to byte offsets
// in the original text.
type FoldedText struct {
	folded  string
	offsets []int // offsets[i] is the original offset of folded byte i; one extra entry for the end
}

// Fold case-folds text rune by rune, remembering where each folded byte came
// from so matches can be located in the original.
func Fold(text string) FoldedText {
	f := newFolder()
	var sb strings.Builder
	sb.Grow(len(text))
	offsets := make([]int, 0, len(text)+1)

	for i, r := range text {
		var piece string
		switch {
		case r >= 'A' && r <= 'Z':
			piece = string(r + ('a' - 'A'))
		case r < utf8.RuneSelf:
			piece = string(r)
		default:
			piece = f.String(string(r))
		}
		sb.WriteString(piece)
		for range len(piece) {
			offsets = append(offsets, i)
		}
	}
	offsets = append(offsets, len(text))
	return FoldedText{folded: sb.String(), offsets: offsets}
}

// String returns the folded text.
func (t FoldedText) String() string { return t.folded }

// Index finds the first occurrence of an already-folded needle and returns its
// byte span in the original text.
func (t FoldedText) Index(needle string) (start, end int, ok bool) {
	if needle == "" {
		return 0, 0, false
	}
	i := strings.Index(t.folded, needle)
	if i < 0 {
		return 0, 0, false
	}
	j := i + len(needle)
	// Step past the rest of a multi-byte expansion so end lands on a rune
	// boundary of the original.
	for j < len(t.folded) && t.offsets[j] == t.offsets[j-1] {
		j++
	}
	return t.offsets[i], t.offsets[j], true
}

// Contains reports whether an already-folded needle occurs in the text.
func (t FoldedText) Contains(needle string) bool {
	return strings.Contains(t.folded, needle)
}

// FoldString folds a single string, for callers comparing words against
// registry entries.
func FoldString(s string) string {
	return newFolder().String(s)
}

// FoldedVariants returns the case-folded variants in their configured order.
func (k KeywordSet) FoldedVariants() []string {
	return append([]string(nil), k.folded...)
}
