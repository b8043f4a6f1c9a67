package aggregate

import (
	"fmt"
	"sort"

	"github.com/kitsanannam-hue/esaan-dataset/models"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/mapreduce"
)

// Summary builds the run summary. It reads the result only, so repeated calls
// return equal values.
func (r *Result) Summary() models.ExtractionSummary {
	s := models.ExtractionSummary{
		TotalPages:      r.TotalPages,
		Chapters:        nonNil(r.Chapters),
		KeywordAnalysis: r.KeywordAnalysis(),
		MLFeaturesFound: len(r.Features),
		SkippedPages:    r.SkippedPages,
	}
	for _, tf := range r.TablesAndFigures {
		switch tf.Type {
		case models.TypeTable:
			s.TablesCount++
		case models.TypeFigure:
			s.FiguresCount++
		}
	}
	s.TablesAndFigures = nonNil(head(r.TablesAndFigures, r.opts.MaxTablesAndFigures))
	s.SampleFeatures = nonNil(head(r.Features, r.opts.MaxSampleFeatures))
	if r.opts.TopTerms > 0 {
		s.TopTerms = mapreduce.TopKeywords(r.WordCounts, r.opts.TopTerms)
	}
	return s
}

// KeywordAnalysis counts keyword hits per category. Every category is present;
// pages are distinct and ascending.
func (r *Result) KeywordAnalysis() map[models.Category]models.KeywordStat {
	pages := make(map[models.Category]map[int]struct{})
	counts := make(map[models.Category]int)
	for _, hit := range r.Keywords {
		if pages[hit.Category] == nil {
			pages[hit.Category] = make(map[int]struct{})
		}
		pages[hit.Category][hit.Page] = struct{}{}
		counts[hit.Category]++
	}

	out := make(map[models.Category]models.KeywordStat, len(models.Categories()))
	for _, c := range models.Categories() {
		stat := models.KeywordStat{Count: counts[c], Pages: sortedKeys(pages[c])}
		out[c] = stat
	}
	return out
}

// NotationSummary counts notation hits by type. Every type is present.
func (r *Result) NotationSummary() models.NotationSummary {
	s := models.NotationSummary{
		TotalNotations:    len(r.Notations),
		ByType:            make(map[models.NotationType]int, len(models.NotationTypes())),
		TotalCompositions: len(r.Compositions),
	}
	for _, t := range models.NotationTypes() {
		s.ByType[t] = 0
	}
	pages := make(map[int]struct{})
	for _, n := range r.Notations {
		s.ByType[n.Type]++
		pages[n.Page] = struct{}{}
	}
	s.PagesWithNotation = len(pages)
	return s
}

// DatasetStats describes the analysis table. Flag counts are distinct pages,
// not rows.
func (r *Result) DatasetStats() models.DatasetStats {
	s := models.DatasetStats{
		TotalEntries:        len(r.Analysis),
		FeatureDistribution: make(map[string]int),
	}
	pages := make(map[int]models.PageFlags)
	for _, row := range r.Analysis {
		s.FeatureDistribution[row.FeatureName]++
		pages[row.Page] = row.PageFlags
	}
	s.UniquePages = len(pages)
	for _, f := range pages {
		if f.HasThaiMusic {
			s.ThaiMusicPages++
		}
		if f.HasJazz {
			s.JazzPages++
		}
		if f.HasMLTerms {
			s.MLPages++
		}
		if f.HasFusion {
			s.FusionPages++
		}
	}
	return s
}

// QualityReport checks the notation dataset for empty fields and exact
// duplicate rows.
func QualityReport(hits []models.NotationHit) models.QualityReport {
	q := models.QualityReport{
		TotalRecords:     len(hits),
		MissingValues:    map[string]int{"page": 0, "type": 0, "notation": 0, "context": 0},
		TypeDistribution: make(map[models.NotationType]int),
	}

	seen := make(map[models.NotationHit]struct{}, len(hits))
	pages := make(map[int]struct{})
	for _, h := range hits {
		if h.Page < 1 {
			q.MissingValues["page"]++
		} else {
			pages[h.Page] = struct{}{}
			if q.PageCoverage.MinPage == 0 || h.Page < q.PageCoverage.MinPage {
				q.PageCoverage.MinPage = h.Page
			}
			if h.Page > q.PageCoverage.MaxPage {
				q.PageCoverage.MaxPage = h.Page
			}
		}
		if h.Type == "" {
			q.MissingValues["type"]++
		} else {
			q.TypeDistribution[h.Type]++
		}
		if h.Notation == "" {
			q.MissingValues["notation"]++
		}
		if h.Context == "" {
			q.MissingValues["context"]++
		}

		if _, dup := seen[h]; dup {
			q.DuplicateRecords++
		}
		seen[h] = struct{}{}
	}
	q.PageCoverage.UniquePages = len(pages)

	if n := q.MissingValues["notation"]; n > 0 {
		q.Issues = append(q.Issues, fmt.Sprintf("%d notation records have no notation", n))
	}
	if q.DuplicateRecords > 0 {
		q.Issues = append(q.Issues, fmt.Sprintf("%d duplicate notation records", q.DuplicateRecords))
	}
	return q
}

// CleanDuplicates drops exact duplicate hits, keeping the first occurrence.
func CleanDuplicates(hits []models.NotationHit) ([]models.NotationHit, int) {
	seen := make(map[models.NotationHit]struct{}, len(hits))
	out := make([]models.NotationHit, 0, len(hits))
	for _, h := range hits {
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out, len(hits) - len(out)
}

func head[T any](s []T, n int) []T {
	if n < 0 || len(s) <= n {
		return s
	}
	return s[:n]
}

func sortedKeys(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
