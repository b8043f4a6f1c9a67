// Package extractor filters analysis rows with a compact strategy string such
// as "flag:has_jazz|has_fusion,feature:tempo|rhythm,page:>=10".
//
// Keys combine with AND; alternatives within one key (separated by |)
// combine with OR.
package extractor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kitsanannam-hue/esaan-dataset/models"
)

type Strategy struct {
	Flags    []models.Flag
	Features map[string]struct{}
	MinPage  int
	MaxPage  int // 0 means no upper bound
	MinWords int
}

// IsZero reports whether the strategy keeps every row.
func (s *Strategy) IsZero() bool {
	return s == nil || (len(s.Flags) == 0 && len(s.Features) == 0 && s.MinPage == 0 && s.MaxPage == 0 && s.MinWords == 0)
}

func ParseStrategy(strategyStr string) (*Strategy, error) {
	strategy := &Strategy{}
	if strings.TrimSpace(strategyStr) == "" {
		return strategy, nil // No-op strategy
	}

	parts := strings.Split(strategyStr, ",")
	for _, part := range parts {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid strategy part: %s", part)
		}
		key := strings.TrimSpace(kv[0])
		value := strings.TrimSpace(kv[1])

		switch key {
		case "flag":
			for _, name := range strings.Split(value, "|") {
				flag, err := models.ParseFlag(strings.TrimSpace(name))
				if err != nil {
					return nil, err
				}
				strategy.Flags = append(strategy.Flags, flag)
			}
		case "feature":
			if strategy.Features == nil {
				strategy.Features = make(map[string]struct{})
			}
			for _, name := range strings.Split(value, "|") {
				strategy.Features[strings.TrimSpace(name)] = struct{}{}
			}
		case "page":
			if err := parsePageRange(value, strategy); err != nil {
				return nil, err
			}
		case "words":
			n, err := parseAtLeast(value)
			if err != nil {
				return nil, fmt.Errorf("invalid word count filter: %w", err)
			}
			strategy.MinWords = n
		default:
			return nil, fmt.Errorf("unknown strategy key: %s", key)
		}
	}

	return strategy, nil
}

// parsePageRange accepts ">=N", "<=N", "N-M" and "N".
func parsePageRange(value string, s *Strategy) error {
	switch {
	case strings.HasPrefix(value, ">="):
		n, err := strconv.Atoi(strings.TrimSpace(value[2:]))
		if err != nil {
			return fmt.Errorf("invalid page value: %s", value)
		}
		s.MinPage = n
	case strings.HasPrefix(value, "<="):
		n, err := strconv.Atoi(strings.TrimSpace(value[2:]))
		if err != nil {
			return fmt.Errorf("invalid page value: %s", value)
		}
		s.MaxPage = n
	case strings.Contains(value, "-"):
		lo, hi, _ := strings.Cut(value, "-")
		from, err1 := strconv.Atoi(strings.TrimSpace(lo))
		to, err2 := strconv.Atoi(strings.TrimSpace(hi))
		if err1 != nil || err2 != nil || from > to {
			return fmt.Errorf("invalid page range: %s", value)
		}
		s.MinPage, s.MaxPage = from, to
	default:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid page value: %s", value)
		}
		s.MinPage, s.MaxPage = n, n
	}
	return nil
}

func parseAtLeast(value string) (int, error) {
	if !strings.HasPrefix(value, ">=") {
		return 0, fmt.Errorf("unsupported operator in: %s", value)
	}
	return strconv.Atoi(strings.TrimSpace(value[2:]))
}

// Match reports whether a single row passes the strategy.
func (s *Strategy) Match(row models.PageAnalysisRecord) bool {
	if s.IsZero() {
		return true
	}
	if row.Page < s.MinPage || (s.MaxPage > 0 && row.Page > s.MaxPage) {
		return false
	}
	if row.WordCount < s.MinWords {
		return false
	}
	if len(s.Features) > 0 {
		if _, ok := s.Features[row.FeatureName]; !ok {
			return false
		}
	}
	if len(s.Flags) > 0 {
		found := false
		for _, f := range s.Flags {
			if row.Get(f) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// FilterRows returns the rows that pass the strategy, in their original order.
func FilterRows(rows []models.PageAnalysisRecord, strategy *Strategy) []models.PageAnalysisRecord {
	if strategy.IsZero() {
		return rows // No filtering
	}
	var filtered []models.PageAnalysisRecord
	for _, row := range rows {
		if strategy.Match(row) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}
