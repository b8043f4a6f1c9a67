package artifact_manager

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/kitsanannam-hue/esaan-dataset/pkg/storage"
)

const (
	DefaultBaseDir = "output"
	NotationDir    = "music_notation_dataset"
	DatasetDir     = "dataset"
)

// Artifact names, relative to the base directory.
const (
	DocumentFile        = "dissertation_extracted.json"
	PagesCSV            = "dissertation_pages.csv"
	AnalysisCSV         = "dissertation_analysis.csv"
	SummaryFile         = "summary.json"
	NotationSummaryFile = "notation_summary.json"
	QualityReportFile   = "quality_report.json"
	ManifestFile        = "manifest.json"
)

var (
	NotationCSV      = filepath.Join(NotationDir, "musical_notation.csv")
	NotationJSON     = filepath.Join(NotationDir, "musical_notation.json")
	CompositionsCSV  = filepath.Join(NotationDir, "compositions.csv")
	CompositionsJSON = filepath.Join(NotationDir, "compositions.json")
	SchemaFile       = filepath.Join(DatasetDir, "schema.json")
	CatalogCSV       = filepath.Join(DatasetDir, "feature_catalog.csv")
	CatalogJSON      = filepath.Join(DatasetDir, "feature_catalog.json")
)

// ErrArtifactNotFound means the requested artifact was never exported.
var ErrArtifactNotFound = errors.New("artifact not found")

// Artifact is an exported file with its stats.
type Artifact struct {
	Name      string
	Path      string
	SizeBytes int64
	ModTime   time.Time
}

// Manager handles storage and retrieval of run artifacts.
type Manager struct {
	baseDir string
	maxAge  time.Duration // Max age for a cached document before it's considered stale
	store   *storage.Storage
}

// NewManager creates a new Artifact Manager instance.
// It ensures the base directory and its subdirectories exist.
func NewManager(baseDir string, maxAge time.Duration) (*Manager, error) {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	for _, dir := range []string{baseDir, filepath.Join(baseDir, NotationDir), filepath.Join(baseDir, DatasetDir)} {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	return &Manager{baseDir: baseDir, maxAge: maxAge, store: &storage.Storage{}}, nil
}

// BaseDir returns the output directory.
func (m *Manager) BaseDir() string {
	return m.baseDir
}

// MaxAge returns the configured max age for cached documents.
func (m *Manager) MaxAge() time.Duration {
	return m.maxAge
}

// Path returns the full path of an artifact.
func (m *Manager) Path(name string) string {
	return filepath.Join(m.baseDir, name)
}

// Write stores an artifact atomically, replacing any previous version.
func (m *Manager) Write(name string, data []byte) error {
	if err := m.store.SaveFile(m.Path(name), data); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// Read returns an exported artifact. A missing file is ErrArtifactNotFound.
func (m *Manager) Read(name string) ([]byte, error) {
	data, err := m.store.ReadFile(m.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", name, err)
	}
	return data, nil
}

// Stat returns the stats of an exported artifact.
func (m *Manager) Stat(name string) (Artifact, error) {
	path := m.Path(name)
	stats, err := m.store.GetFileStats(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Artifact{}, fmt.Errorf("%w: %s", ErrArtifactNotFound, name)
	}
	if err != nil {
		return Artifact{}, fmt.Errorf("error statting %s: %w", name, err)
	}
	return Artifact{Name: name, Path: path, SizeBytes: stats.SizeBytes, ModTime: stats.ModTime}, nil
}

// CachedDocument returns the exported document if it is fresh. A zero maxAge
// disables the cache and a negative one never expires.
func (m *Manager) CachedDocument() ([]byte, bool, error) {
	if m.maxAge == 0 {
		return nil, false, nil
	}
	a, err := m.Stat(DocumentFile)
	if errors.Is(err, ErrArtifactNotFound) {
		return nil, false, nil // Not found
	}
	if err != nil {
		return nil, false, err
	}
	if m.maxAge > 0 && time.Since(a.ModTime) > m.maxAge {
		return nil, false, nil // Stale
	}
	data, err := m.Read(DocumentFile)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// List returns every known artifact that exists, sorted by name.
func (m *Manager) List() ([]Artifact, error) {
	names := []string{
		DocumentFile, PagesCSV, AnalysisCSV, SummaryFile, NotationSummaryFile,
		QualityReportFile, ManifestFile, NotationCSV, NotationJSON,
		CompositionsCSV, CompositionsJSON, SchemaFile, CatalogCSV, CatalogJSON,
	}
	sort.Strings(names)

	var out []Artifact
	for _, name := range names {
		a, err := m.Stat(name)
		if errors.Is(err, ErrArtifactNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
