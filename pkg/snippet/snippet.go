// Package snippet cuts bounded context windows out of page text.
//
// Windows are measured in runes so Thai text is never split inside a
// character. Byte offsets from regexp matches are snapped to rune boundaries.
package snippet

import (
	"strings"
	"unicode/utf8"
)

const ellipsis = "..."

// Default context radii used by the scanners.
const (
	KeywordWindow     = 200
	FeatureWindow     = 150
	NotationWindow    = 100
	IntervalWindow    = 60
	CompositionWindow = 150
)

// Around returns the runes in [pos-window, pos+window) of text, with newlines
// replaced by spaces and surrounding whitespace trimmed. pos is a byte offset.
// Out-of-range positions are clamped; window 0 yields the rune at pos.
func Around(text string, pos, window int) string {
	if text == "" {
		return ""
	}
	if window < 0 {
		window = 0
	}
	r := runeIndex(text, pos)
	runes := []rune(text)
	from := clamp(r-window, 0, len(runes))
	to := clamp(r+window, 0, len(runes))
	if window == 0 && r < len(runes) {
		to = r + 1
	}
	return clean(string(runes[from:to]))
}

// Span returns the match [start, end) of text plus window runes on each side,
// newline-normalized and trimmed. start and end are byte offsets as returned by
// regexp or strings.Index.
func Span(text string, start, end, window int) string {
	out, _, _ := span(text, start, end, window)
	return out
}

// Match is Span with "..." added on any side where text was cut.
func Match(text string, start, end, window int) string {
	out, cutLeft, cutRight := span(text, start, end, window)
	if cutLeft {
		out = ellipsis + out
	}
	if cutRight {
		out += ellipsis
	}
	return out
}

func span(text string, start, end, window int) (string, bool, bool) {
	if text == "" {
		return "", false, false
	}
	if window < 0 {
		window = 0
	}
	if end < start {
		end = start
	}
	n := utf8.RuneCountInString(text)
	from := clamp(runeIndex(text, start)-window, 0, n)
	to := clamp(runeIndex(text, end)+window, 0, n)
	runes := []rune(text)
	return clean(string(runes[from:to])), from > 0, to < n
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if n < 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// runeIndex converts a byte offset into a rune offset, rounding down to the
// start of the rune containing it.
func runeIndex(text string, pos int) int {
	if pos <= 0 {
		return 0
	}
	if pos >= len(text) {
		return utf8.RuneCountInString(text)
	}
	for pos > 0 && !utf8.RuneStart(text[pos]) {
		pos--
	}
	return utf8.RuneCountInString(text[:pos])
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clean(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
