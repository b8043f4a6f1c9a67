package mapreduce

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// isValidKeyword filters malformed tokens: trailing separators, unmatched
// brackets and unmatched quotes.
func isValidKeyword(word string) bool {
	if strings.HasSuffix(word, ":") || strings.HasSuffix(word, "=") {
		return false
	}

	if strings.Contains(word, "(") != strings.Contains(word, ")") {
		return false
	}
	if strings.Contains(word, "[") != strings.Contains(word, "]") {
		return false
	}

	if strings.Count(word, "\"")%2 != 0 || strings.Count(word, "'")%2 != 0 {
		return false
	}

	return true
}

type kv struct {
	Key   string
	Value int
}

// ranked returns valid keywords by descending count, ties broken by word so
// repeated runs give the same order.
func ranked(wordCounts map[string]int, n int) []kv {
	var ss []kv
	for k, v := range wordCounts {
		if isValidKeyword(k) {
			ss = append(ss, kv{k, v})
		}
	}

	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Value != ss[j].Value {
			return ss[i].Value > ss[j].Value
		}
		return ss[i].Key < ss[j].Key
	})

	if n < 0 {
		n = 0
	}
	if len(ss) > n {
		ss = ss[:n]
	}
	return ss
}

// TopKeywords returns the top N keywords formatted as "word:count"
// (e.g., "khaen:153").
func TopKeywords(wordCounts map[string]int, n int) []string {
	ss := ranked(wordCounts, n)
	keywords := make([]string, len(ss))
	for i, e := range ss {
		keywords[i] = fmt.Sprintf("%s:%d", e.Key, e.Value)
	}
	return keywords
}

// WriteTopKeywords writes the top N keywords as a numbered list.
func WriteTopKeywords(w io.Writer, wordCounts map[string]int, n int) error {
	for i, e := range ranked(wordCounts, n) {
		if _, err := fmt.Fprintf(w, "%d. %s: %d\n", i+1, e.Key, e.Value); err != nil {
			return err
		}
	}
	return nil
}
