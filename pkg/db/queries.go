package db

import (
	"fmt"
	"strings"

	"github.com/kitsanannam-hue/esaan-dataset/models"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/patterns"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/snippet"
)

// SearchWindow is the context radius of search snippets.
const SearchWindow = 80

// SearchHit is a page containing a search query.
type SearchHit struct {
	Page    int    `json:"page" yaml:"page"`
	Count   int    `json:"count" yaml:"count"` // occurrences on the page
	Snippet string `json:"snippet" yaml:"snippet"`
}

// flagColumn maps a flag to its column. Only known flags reach SQL.
func flagColumn(flag models.Flag) (string, error) {
	switch flag {
	case models.FlagThaiMusic:
		return "has_thai_music", nil
	case models.FlagJazz:
		return "has_jazz", nil
	case models.FlagMLTerms:
		return "has_ml_terms", nil
	case models.FlagFusion:
		return "has_fusion", nil
	}
	return "", fmt.Errorf("unknown page flag %q", flag)
}

// PagesWithFlag lists the pages of a run where every given flag is set, in
// page order. No flags lists every page.
func (db *DB) PagesWithFlag(runID string, flags ...models.Flag) ([]models.PageRow, error) {
	query := `
		SELECT page, text, word_count, char_count, COALESCE(language, '')
		FROM pages WHERE run_id = ?`
	for _, f := range flags {
		col, err := flagColumn(f)
		if err != nil {
			return nil, err
		}
		query += " AND " + col + " = 1"
	}
	query += " ORDER BY page"

	rows, err := db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pages: %w", err)
	}
	defer rows.Close()

	var pages []models.PageRow
	for rows.Next() {
		var p models.PageRow
		if err := rows.Scan(&p.Page, &p.Text, &p.WordCount, &p.CharCount, &p.Language); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// SearchPages finds pages containing query, compared with Unicode case
// folding. SQLite's own case-insensitive matching only covers ASCII, so pages
// are folded here. limit <= 0 returns every hit.
func (db *DB) SearchPages(runID, query string, limit int) ([]SearchHit, error) {
	needle := patterns.FoldString(patterns.Normalize(strings.TrimSpace(query)))
	if needle == "" {
		return nil, fmt.Errorf("empty search query")
	}

	rows, err := db.Query("SELECT page, text FROM pages WHERE run_id = ? ORDER BY page", runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pages: %w", err)
	}
	defer rows.Close()

	var hits []SearchHit
	for rows.Next() {
		var page int
		var text string
		if err := rows.Scan(&page, &text); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		folded := patterns.Fold(text)
		start, end, ok := folded.Index(needle)
		if !ok {
			continue
		}
		hits = append(hits, SearchHit{
			Page:    page,
			Count:   strings.Count(folded.String(), needle),
			Snippet: snippet.Match(text, start, end, SearchWindow),
		})
		if limit > 0 && len(hits) >= limit {
			break
		}
	}
	return hits, rows.Err()
}

// AnalysisRows returns the analysis table of a run in insertion order.
func (db *DB) AnalysisRows(runID string) ([]models.PageAnalysisRecord, error) {
	rows, err := db.Query(`
		SELECT page, feature_name, COALESCE(context, ''), word_count,
		       has_thai_music, has_jazz, has_ml_terms, has_fusion
		FROM analysis_rows WHERE run_id = ? ORDER BY row_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis rows: %w", err)
	}
	defer rows.Close()

	var out []models.PageAnalysisRecord
	for rows.Next() {
		var r models.PageAnalysisRecord
		if err := rows.Scan(&r.Page, &r.FeatureName, &r.Context, &r.WordCount,
			&r.HasThaiMusic, &r.HasJazz, &r.HasMLTerms, &r.HasFusion); err != nil {
			return nil, fmt.Errorf("failed to scan analysis row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// NotationHits returns a run's notation hits, optionally restricted to some
// types, in page order.
func (db *DB) NotationHits(runID string, types ...models.NotationType) ([]models.NotationHit, error) {
	query := "SELECT page, type, notation, COALESCE(context, '') FROM notation_hits WHERE run_id = ?"
	args := []any{runID}
	if len(types) > 0 {
		query += " AND type IN (?" + strings.Repeat(", ?", len(types)-1) + ")"
		for _, t := range types {
			args = append(args, string(t))
		}
	}
	query += " ORDER BY page, hit_id"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notation hits: %w", err)
	}
	defer rows.Close()

	var out []models.NotationHit
	for rows.Next() {
		var h models.NotationHit
		var typ string
		if err := rows.Scan(&h.Page, &typ, &h.Notation, &h.Context); err != nil {
			return nil, fmt.Errorf("failed to scan notation hit: %w", err)
		}
		h.Type = models.NotationType(typ)
		out = append(out, h)
	}
	return out, rows.Err()
}

// Chapters returns a run's deduplicated chapters in report order.
func (db *DB) Chapters(runID string) ([]models.ChapterCandidate, error) {
	rows, err := db.Query(`
		SELECT chapter_number, title, start_page, COALESCE(raw_match, '')
		FROM chapters WHERE run_id = ? ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chapters: %w", err)
	}
	defer rows.Close()

	var out []models.ChapterCandidate
	for rows.Next() {
		var c models.ChapterCandidate
		if err := rows.Scan(&c.ChapterNumber, &c.Title, &c.StartPage, &c.RawMatch); err != nil {
			return nil, fmt.Errorf("failed to scan chapter: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
