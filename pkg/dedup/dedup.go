package dedup

import (
	"math"
	"sort"
	"unicode"

	"github.com/kitsanannam-hue/esaan-dataset/models"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/snippet"
)

// titleKeyLen is how much of a title takes part in the duplicate key.
const titleKeyLen = 50

type chapterKey struct {
	number string
	title  string
}

// Chapters drops candidates whose (chapter number, first 50 characters of
// title) was already seen, keeping the first occurrence. Candidates must be in
// page order. The result is stably sorted by numeric chapter number, read
// from any script's decimal digits; non-numeric numbers sort as 0.
func Chapters(candidates []models.ChapterCandidate) []models.ChapterCandidate {
	seen := make(map[chapterKey]struct{}, len(candidates))
	out := make([]models.ChapterCandidate, 0, len(candidates))
	for _, c := range candidates {
		k := chapterKey{number: c.ChapterNumber, title: snippet.Truncate(c.Title, titleKeyLen)}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return sortNumber(out[i].ChapterNumber) < sortNumber(out[j].ChapterNumber)
	})
	return out
}

// sortNumber reads s as a decimal number in any script's digits, so "๓"
// sorts as 3. Anything else sorts as 0.
func sortNumber(s string) int {
	if s == "" {
		return 0
	}
	n := 0
	for _, r := range s {
		d := unicode.Digit(r)
		if d < 0 {
			return 0
		}
		if n > (math.MaxInt-d)/10 {
			return 0
		}
		n = n*10 + d
	}
	return n
}
