package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Runs: one row per extraction run
CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,          -- uuid
    source TEXT NOT NULL,
    output_dir TEXT,
    state TEXT NOT NULL,
    total_pages INTEGER DEFAULT 0,
    pages_read INTEGER DEFAULT 0,
    skipped_pages TEXT,               -- JSON array of page numbers
    started_at DATETIME NOT NULL,
    finished_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);

-- Pages: text and page-level flags
CREATE TABLE IF NOT EXISTS pages (
    run_id TEXT NOT NULL,
    page INTEGER NOT NULL,
    text TEXT NOT NULL,
    word_count INTEGER NOT NULL,
    char_count INTEGER NOT NULL,
    language TEXT,
    has_thai_music BOOLEAN DEFAULT 0,
    has_jazz BOOLEAN DEFAULT 0,
    has_ml_terms BOOLEAN DEFAULT 0,
    has_fusion BOOLEAN DEFAULT 0,
    PRIMARY KEY (run_id, page),
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_pages_thai ON pages(run_id, has_thai_music) WHERE has_thai_music = 1;
CREATE INDEX IF NOT EXISTS idx_pages_jazz ON pages(run_id, has_jazz) WHERE has_jazz = 1;
CREATE INDEX IF NOT EXISTS idx_pages_ml ON pages(run_id, has_ml_terms) WHERE has_ml_terms = 1;
CREATE INDEX IF NOT EXISTS idx_pages_fusion ON pages(run_id, has_fusion) WHERE has_fusion = 1;

CREATE TABLE IF NOT EXISTS keyword_hits (
    hit_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    page INTEGER NOT NULL,
    category TEXT NOT NULL,
    keyword TEXT NOT NULL,
    context TEXT,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_keyword_hits_run ON keyword_hits(run_id, category);

CREATE TABLE IF NOT EXISTS feature_hits (
    hit_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    page INTEGER NOT NULL,
    feature_name TEXT NOT NULL,
    matched TEXT NOT NULL,
    context TEXT,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_feature_hits_run ON feature_hits(run_id, feature_name);

CREATE TABLE IF NOT EXISTS notation_hits (
    hit_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    page INTEGER NOT NULL,
    type TEXT NOT NULL,
    notation TEXT NOT NULL,
    context TEXT,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_notation_hits_run ON notation_hits(run_id, type);

CREATE TABLE IF NOT EXISTS compositions (
    composition_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    page INTEGER NOT NULL,
    title TEXT NOT NULL,
    context TEXT,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

-- Chapters: deduplicated, in report order
CREATE TABLE IF NOT EXISTS chapters (
    run_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    chapter_number TEXT NOT NULL,
    title TEXT NOT NULL,
    start_page INTEGER NOT NULL,
    raw_match TEXT,
    PRIMARY KEY (run_id, position),
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS tables_figures (
    run_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    type TEXT NOT NULL,               -- table or figure
    number TEXT,
    caption TEXT,
    page INTEGER NOT NULL,
    PRIMARY KEY (run_id, position),
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

-- Analysis rows: one per (page, matched feature); flags copied from the page
CREATE TABLE IF NOT EXISTS analysis_rows (
    row_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    page INTEGER NOT NULL,
    feature_name TEXT NOT NULL,
    context TEXT,
    word_count INTEGER NOT NULL,
    has_thai_music BOOLEAN DEFAULT 0,
    has_jazz BOOLEAN DEFAULT 0,
    has_ml_terms BOOLEAN DEFAULT 0,
    has_fusion BOOLEAN DEFAULT 0,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_analysis_rows_run ON analysis_rows(run_id, page);
`
