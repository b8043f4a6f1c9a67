package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/kitsanannam-hue/esaan-dataset/pkg/aggregate"
)

// SaveResult stores everything a run produced in one transaction. Saving the
// same run twice replaces the earlier rows.
func (db *DB) SaveResult(runID string, res *aggregate.Result) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after Commit

	skipped, err := json.Marshal(nonNilInts(res.SkippedPages))
	if err != nil {
		return fmt.Errorf("failed to encode skipped pages: %w", err)
	}
	upd, err := tx.Exec(`
		UPDATE runs SET total_pages = ?, pages_read = ?, skipped_pages = ? WHERE run_id = ?
	`, res.TotalPages, len(res.Pages), string(skipped), runID)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	if err := requireRow(upd, runID); err != nil {
		return err
	}

	for _, table := range []string{"pages", "keyword_hits", "feature_hits", "notation_hits", "compositions", "chapters", "tables_figures", "analysis_rows"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE run_id = ?", runID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	inserts := []func(*sql.Tx, string, *aggregate.Result) error{
		insertPages, insertKeywordHits, insertFeatureHits, insertNotationHits,
		insertCompositions, insertChapters, insertTablesFigures, insertAnalysisRows,
	}
	for _, insert := range inserts {
		if err := insert(tx, runID, res); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit result: %w", err)
	}
	return nil
}

func insertPages(tx *sql.Tx, runID string, res *aggregate.Result) error {
	stmt, err := tx.Prepare(`
		INSERT INTO pages (run_id, page, text, word_count, char_count, language,
		                   has_thai_music, has_jazz, has_ml_terms, has_fusion)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare page insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range res.Pages {
		f := res.Flags[p.Page]
		if _, err := stmt.Exec(runID, p.Page, p.Text, p.WordCount, p.CharCount, p.Language,
			f.HasThaiMusic, f.HasJazz, f.HasMLTerms, f.HasFusion); err != nil {
			return fmt.Errorf("failed to insert page %d: %w", p.Page, err)
		}
	}
	return nil
}

func insertKeywordHits(tx *sql.Tx, runID string, res *aggregate.Result) error {
	stmt, err := tx.Prepare("INSERT INTO keyword_hits (run_id, page, category, keyword, context) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare keyword insert: %w", err)
	}
	defer stmt.Close()

	for _, h := range res.Keywords {
		if _, err := stmt.Exec(runID, h.Page, string(h.Category), h.Keyword, h.Context); err != nil {
			return fmt.Errorf("failed to insert keyword hit: %w", err)
		}
	}
	return nil
}

func insertFeatureHits(tx *sql.Tx, runID string, res *aggregate.Result) error {
	stmt, err := tx.Prepare("INSERT INTO feature_hits (run_id, page, feature_name, matched, context) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare feature insert: %w", err)
	}
	defer stmt.Close()

	for _, h := range res.FeatureHits {
		if _, err := stmt.Exec(runID, h.Page, h.Label, h.Matched, h.Context); err != nil {
			return fmt.Errorf("failed to insert feature hit: %w", err)
		}
	}
	return nil
}

func insertNotationHits(tx *sql.Tx, runID string, res *aggregate.Result) error {
	stmt, err := tx.Prepare("INSERT INTO notation_hits (run_id, page, type, notation, context) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare notation insert: %w", err)
	}
	defer stmt.Close()

	for _, h := range res.Notations {
		if _, err := stmt.Exec(runID, h.Page, string(h.Type), h.Notation, h.Context); err != nil {
			return fmt.Errorf("failed to insert notation hit: %w", err)
		}
	}
	return nil
}

func insertCompositions(tx *sql.Tx, runID string, res *aggregate.Result) error {
	stmt, err := tx.Prepare("INSERT INTO compositions (run_id, page, title, context) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare composition insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range res.Compositions {
		if _, err := stmt.Exec(runID, c.Page, c.Title, c.Context); err != nil {
			return fmt.Errorf("failed to insert composition: %w", err)
		}
	}
	return nil
}

func insertChapters(tx *sql.Tx, runID string, res *aggregate.Result) error {
	stmt, err := tx.Prepare("INSERT INTO chapters (run_id, position, chapter_number, title, start_page, raw_match) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare chapter insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range res.Chapters {
		if _, err := stmt.Exec(runID, i, c.ChapterNumber, c.Title, c.StartPage, c.RawMatch); err != nil {
			return fmt.Errorf("failed to insert chapter: %w", err)
		}
	}
	return nil
}

func insertTablesFigures(tx *sql.Tx, runID string, res *aggregate.Result) error {
	stmt, err := tx.Prepare("INSERT INTO tables_figures (run_id, position, type, number, caption, page) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare caption insert: %w", err)
	}
	defer stmt.Close()

	for i, tf := range res.TablesAndFigures {
		if _, err := stmt.Exec(runID, i, tf.Type, tf.Number, tf.Caption, tf.Page); err != nil {
			return fmt.Errorf("failed to insert caption: %w", err)
		}
	}
	return nil
}

func insertAnalysisRows(tx *sql.Tx, runID string, res *aggregate.Result) error {
	stmt, err := tx.Prepare(`
		INSERT INTO analysis_rows (run_id, page, feature_name, context, word_count,
		                           has_thai_music, has_jazz, has_ml_terms, has_fusion)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare analysis insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range res.Analysis {
		if _, err := stmt.Exec(runID, r.Page, r.FeatureName, r.Context, r.WordCount,
			r.HasThaiMusic, r.HasJazz, r.HasMLTerms, r.HasFusion); err != nil {
			return fmt.Errorf("failed to insert analysis row: %w", err)
		}
	}
	return nil
}

func nonNilInts(s []int) []int {
	if s == nil {
		return []int{}
	}
	return s
}
