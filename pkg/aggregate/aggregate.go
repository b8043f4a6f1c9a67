// Package aggregate merges per-page scan results into run-level datasets and
// derives the reports built on them.
//
// Merging happens on one goroutine after the workers finish. Page outputs may
// arrive in any order; everything in a Result is ordered by page number, then
// by the order the scanners produced hits on that page.
package aggregate

import (
	"sort"

	"github.com/kitsanannam-hue/esaan-dataset/models"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/mapreduce"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/scanner"
)

// PageOutput is everything a worker computes for one page.
type PageOutput struct {
	scanner.PageResult
	Row        models.PageRow
	Flags      models.PageFlags
	WordCounts map[string]int
}

// Options bound the sample lists in the summary. Counts are never bounded.
type Options struct {
	MaxTablesAndFigures int
	MaxSampleFeatures   int
	TopTerms            int
}

// OptionsFrom takes the report options from a run configuration.
func OptionsFrom(cfg models.ExtractConfig) Options {
	return Options{
		MaxTablesAndFigures: cfg.MaxTablesAndFigures,
		MaxSampleFeatures:   cfg.MaxSampleFeatures,
		TopTerms:            cfg.TopTerms,
	}
}

// Result is the merged output of one extraction run.
type Result struct {
	TotalPages       int
	Pages            []models.PageRow
	Keywords         []models.KeywordHit
	FeatureHits      []models.PatternHit
	Chapters         []models.ChapterCandidate
	TablesAndFigures []models.TableFigure
	Features         []models.FeatureDescription // music_features
	Notations        []models.NotationHit
	Compositions     []models.Composition
	Analysis         []models.PageAnalysisRecord
	Flags            map[int]models.PageFlags
	SkippedPages     []int
	WordCounts       map[string]int

	opts Options
}

// SortOutputs orders page outputs by page number in place.
func SortOutputs(outputs []PageOutput) {
	sort.SliceStable(outputs, func(i, j int) bool { return outputs[i].Page < outputs[j].Page })
}

// ChapterCandidates collects raw chapter candidates in page order.
func ChapterCandidates(outputs []PageOutput) []models.ChapterCandidate {
	sorted := append([]PageOutput(nil), outputs...)
	SortOutputs(sorted)
	var out []models.ChapterCandidate
	for _, o := range sorted {
		out = append(out, o.Chapters...)
	}
	return out
}

// Merge builds a Result. chapters must already be deduplicated; skipped lists
// the pages that could not be read.
func Merge(totalPages int, outputs []PageOutput, chapters []models.ChapterCandidate, skipped []int, opts Options) *Result {
	sorted := append([]PageOutput(nil), outputs...)
	SortOutputs(sorted)

	r := &Result{
		TotalPages:   totalPages,
		Chapters:     append([]models.ChapterCandidate(nil), chapters...),
		Flags:        make(map[int]models.PageFlags, len(sorted)),
		SkippedPages: append([]int(nil), skipped...),
		opts:         opts,
	}
	sort.Ints(r.SkippedPages)

	var intermediate []map[string]int

	for _, o := range sorted {
		r.Pages = append(r.Pages, o.Row)
		r.Flags[o.Page] = o.Flags
		r.Keywords = append(r.Keywords, o.Keywords...)
		r.FeatureHits = append(r.FeatureHits, o.Features...)
		r.TablesAndFigures = append(r.TablesAndFigures, o.Captions...)
		r.Features = append(r.Features, o.Descriptions...)
		r.Notations = append(r.Notations, o.Notations...)
		r.Compositions = append(r.Compositions, o.Compositions...)

		for _, hit := range o.Features {
			r.Analysis = append(r.Analysis, models.PageAnalysisRecord{
				Page:        o.Page,
				FeatureName: hit.Label,
				Context:     hit.Context,
				WordCount:   o.Row.WordCount,
				PageFlags:   o.Flags,
			})
		}
		if o.WordCounts != nil {
			intermediate = append(intermediate, o.WordCounts)
		}
	}
	r.WordCounts = mapreduce.Reduce(intermediate)
	return r
}

// ExtractedText maps decimal page numbers to page text.
func (r *Result) ExtractedText() map[string]string {
	out := make(map[string]string, len(r.Pages))
	for _, p := range r.Pages {
		out[models.Page{Number: p.Page}.Key()] = p.Text
	}
	return out
}

// Document is the persisted form of the run.
func (r *Result) Document(meta models.DocumentMetadata) models.ExtractedDocument {
	if meta.TotalPages == 0 {
		meta.TotalPages = r.TotalPages
	}
	return models.ExtractedDocument{
		Metadata:      meta,
		Chapters:      nonNil(r.Chapters),
		ExtractedText: r.ExtractedText(),
		MusicFeatures: nonNil(r.Features),
	}
}

// PagesWithFlag lists the pages where flag is set, ascending.
func (r *Result) PagesWithFlag(flag models.Flag) []int {
	var pages []int
	for page, flags := range r.Flags {
		if flags.Get(flag) {
			pages = append(pages, page)
		}
	}
	sort.Ints(pages)
	return pages
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
