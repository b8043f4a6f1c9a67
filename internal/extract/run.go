package extract

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/kitsanannam-hue/esaan-dataset/models"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/aggregate"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/artifact_manager"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/caching"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/catalog"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/db"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/export"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/manifest"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/patterns"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/pipeline"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/source"
)

// progressEvery is how many pages pass between progress log lines.
const progressEvery = 50

// downloadCacheDir holds downloaded remote sources under the output directory.
const downloadCacheDir = ".cache"

// Outcome is what a finished extraction run produced.
type Outcome struct {
	RunID        string
	Result       *aggregate.Result
	Artifacts    []artifact_manager.Artifact
	ManifestPath string
	FromCache    bool
}

// Run performs one extraction: load and scan the source, export every
// artifact, write the manifest and record the run in the store. A fresh
// exported document for the same source is replayed instead of reopening the
// original file.
func Run(cfg models.ExtractConfig, maxAge time.Duration, logger *slog.Logger) (*Outcome, error) {
	manager, err := artifact_manager.NewManager(cfg.OutputDir, maxAge)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize artifact manager: %w", err)
	}

	reg, err := patterns.Default()
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Default()
	if err != nil {
		return nil, err
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := database.CreateRun(cfg.Source, manager.BaseDir(), models.StateUnextracted.String())
	if err != nil {
		return nil, err
	}
	logger = logger.With("run_id", runID)

	fail := func(err error) (*Outcome, error) {
		if uerr := database.UpdateRunState(runID, "failed", true); uerr != nil {
			logger.Error("failed to record run failure", "error", uerr)
		}
		return nil, err
	}

	src, fromCache, err := openSource(cfg, manager, logger)
	if err != nil {
		return fail(err)
	}
	defer src.Close()

	p := pipeline.New(cfg, reg, logger)
	p.OnProgress(func(current, total int) {
		if current%progressEvery == 0 || current == total {
			logger.Info("Loading pages", "current", current, "total", total)
		}
	})

	res, err := p.Run(src)
	if err != nil {
		return fail(fmt.Errorf("extraction failed: %w", err))
	}

	meta := models.DocumentMetadata{
		SourceFile:  cfg.Source,
		TotalPages:  res.TotalPages,
		FromPage:    cfg.FromPage,
		ToPage:      cfg.ToPage,
		RunID:       runID,
		ExtractedAt: time.Now().UTC().Format(time.RFC3339),
	}

	exporter := export.New(manager, logger)
	if _, err := exporter.All(res, meta, cat); err != nil {
		return fail(fmt.Errorf("export failed: %w", err))
	}
	manifestPath, err := manifest.Generate(meta, res, cfg.TopTerms, manager)
	if err != nil {
		return fail(err)
	}

	if err := database.SaveResult(runID, res); err != nil {
		return fail(err)
	}
	if err := p.MarkExported(); err != nil {
		return fail(err)
	}
	if err := database.UpdateRunState(runID, p.State().String(), true); err != nil {
		return nil, err
	}

	artifacts, err := manager.List()
	if err != nil {
		return nil, err
	}
	return &Outcome{
		RunID:        runID,
		Result:       res,
		Artifacts:    artifacts,
		ManifestPath: manifestPath,
		FromCache:    fromCache,
	}, nil
}

// openSource replays the cached extraction document when it is fresh, was
// made from the same source and read every page of the requested range. It
// opens the source itself otherwise. Remote sources share the same freshness
// window for their downloads.
func openSource(cfg models.ExtractConfig, manager *artifact_manager.Manager, logger *slog.Logger) (source.Source, bool, error) {
	location := cfg.Source
	data, ok, err := manager.CachedDocument()
	if err != nil {
		logger.Warn("Ignoring unreadable cached document", "error", err)
	}
	if ok {
		var doc models.ExtractedDocument
		if err := json.Unmarshal(data, &doc); err == nil && doc.Metadata.SourceFile == location {
			if !coversRange(doc.Metadata, cfg.FromPage, cfg.ToPage) {
				logger.Info("Cached document misses part of the page range",
					"cached_from", doc.Metadata.FromPage, "cached_to", doc.Metadata.ToPage,
					"from", cfg.FromPage, "to", cfg.ToPage)
			} else if src, err := source.NewDocument(doc); err == nil {
				logger.Info("Using cached document", "path", manager.Path(artifact_manager.DocumentFile))
				return src, true, nil
			}
		}
	}

	var opts source.Options
	if manager.MaxAge() != 0 {
		cache, err := caching.NewCache(filepath.Join(manager.BaseDir(), downloadCacheDir), manager.MaxAge())
		if err != nil {
			return nil, false, err
		}
		opts.Cache = cache
	}
	src, err := source.OpenWith(location, opts)
	if err != nil {
		return nil, false, err
	}
	return src, false, nil
}

// coversRange reports whether a document read with the range in meta holds
// every page of from..to. Ranges are clamped to the document the way the
// pipeline clamps them.
func coversRange(meta models.DocumentMetadata, from, to int) bool {
	clamp := func(from, to int) (int, int) {
		if from < 1 {
			from = 1
		}
		if to < 1 || to > meta.TotalPages {
			to = meta.TotalPages
		}
		return from, to
	}
	cachedFrom, cachedTo := clamp(meta.FromPage, meta.ToPage)
	wantFrom, wantTo := clamp(from, to)
	if wantFrom > wantTo {
		return true
	}
	return cachedFrom <= wantFrom && wantTo <= cachedTo
}
