package analytics

import (
	"sort"
	"strings"
	"unicode"
)

type Analytics struct{}

// commonWords are ignored in frequency analysis. English function words plus
// the scaffolding vocabulary of a thesis (chapter, figure, table...).
var commonWords = map[string]struct{}{
	"a": {}, "about": {}, "above": {}, "after": {}, "again": {}, "against": {},
	"all": {}, "also": {}, "although": {}, "among": {}, "an": {}, "and": {},
	"another": {}, "any": {}, "are": {}, "as": {}, "at": {},

	"be": {}, "because": {}, "been": {}, "before": {}, "being": {}, "between": {},
	"both": {}, "but": {}, "by": {},

	"can": {}, "could": {},

	"did": {}, "do": {}, "does": {}, "during": {},

	"each": {}, "either": {}, "et": {}, "al": {}, "etc": {}, "even": {}, "every": {},

	"few": {}, "for": {}, "from": {}, "further": {},

	"had": {}, "has": {}, "have": {}, "having": {}, "he": {}, "her": {}, "here": {},
	"his": {}, "how": {}, "however": {},

	"i": {}, "if": {}, "in": {}, "into": {}, "is": {}, "it": {}, "its": {}, "itself": {},

	"may": {}, "more": {}, "most": {}, "much": {}, "must": {}, "my": {},

	"no": {}, "nor": {}, "not": {},

	"of": {}, "on": {}, "one": {}, "only": {}, "or": {}, "other": {}, "our": {},
	"out": {}, "over": {},

	"same": {}, "she": {}, "should": {}, "since": {}, "so": {}, "some": {}, "such": {},

	"than": {}, "that": {}, "the": {}, "their": {}, "them": {}, "then": {},
	"there": {}, "therefore": {}, "these": {}, "they": {}, "this": {}, "those": {},
	"through": {}, "thus": {}, "to": {}, "too": {},

	"under": {}, "until": {}, "up": {}, "upon": {}, "use": {}, "used": {}, "using": {},

	"very": {}, "via": {},

	"was": {}, "we": {}, "were": {}, "what": {}, "when": {}, "where": {},
	"whether": {}, "which": {}, "while": {}, "who": {}, "whose": {}, "why": {},
	"will": {}, "with": {}, "within": {}, "without": {}, "would": {},

	"you": {}, "your": {},

	// Thesis scaffolding
	"chapter": {}, "section": {}, "figure": {}, "fig": {}, "table": {},
	"page": {}, "pages": {}, "see": {}, "example": {}, "e.g": {}, "i.e": {},
}

// IsStopword checks if a word is a common stopword that should be filtered out.
func IsStopword(word string) bool {
	_, exists := commonWords[strings.ToLower(word)]
	return exists
}

// WordCount is the number of whitespace-separated tokens in text.
func (a *Analytics) WordCount(text string) int {
	return len(strings.Fields(text))
}

func (a *Analytics) WordFrequency(text string) map[string]int {
	words := strings.Fields(strings.ToLower(text))
	frequencies := make(map[string]int)

	for _, word := range words {
		// Letters and digits of any script survive; Thai words are kept whole.
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r) && !unicode.Is(unicode.Mn, r)
		})

		if _, exists := commonWords[word]; exists || word == "" {
			continue
		}
		if len([]rune(word)) == 1 && !unicode.Is(unicode.Thai, []rune(word)[0]) {
			continue
		}

		frequencies[word]++
	}

	return frequencies
}

type wordCount struct {
	Word  string
	Count int
}

// TopNWords returns the n most frequent words, ties broken alphabetically.
func (a *Analytics) TopNWords(text string, n int) []string {
	frequencies := a.WordFrequency(text)

	counts := make([]wordCount, 0, len(frequencies))
	for k, v := range frequencies {
		counts = append(counts, wordCount{k, v})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Word < counts[j].Word
	})

	limit := n
	if len(counts) < n {
		limit = len(counts)
	}
	if limit < 0 {
		limit = 0
	}

	topN := make([]string, limit)
	for i := 0; i < limit; i++ {
		topN[i] = counts[i].Word
	}

	return topN
}
