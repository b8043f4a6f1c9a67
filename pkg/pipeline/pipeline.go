// Package pipeline runs an extraction: load page text, scan pages on a worker
// pool, deduplicate chapters and merge everything into an aggregate.Result.
package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/kitsanannam-hue/esaan-dataset/models"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/aggregate"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/analytics"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/classifier"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/dedup"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/patterns"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/scanner"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/source"
)

// ProgressFunc receives loading progress: current pages loaded out of total.
type ProgressFunc func(current, total int)

// Pipeline is a single extraction run. It is not reusable: each stage may run
// once, in order.
type Pipeline struct {
	cfg        models.ExtractConfig
	logger     *slog.Logger
	scanner    *scanner.Scanner
	classifier *classifier.Classifier
	analytics  *analytics.Analytics
	progress   ProgressFunc
	state      models.RunState
}

// New prepares a run over the given registry.
func New(cfg models.ExtractConfig, reg *patterns.Registry, logger *slog.Logger) *Pipeline {
	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}
	return &Pipeline{
		cfg:        cfg,
		logger:     logger,
		scanner:    scanner.New(reg, cfg.Windows),
		classifier: classifier.New(reg, cfg.DetectLanguage),
		analytics:  &analytics.Analytics{},
	}
}

// OnProgress registers a loading progress callback. It runs on its own
// goroutine and never holds up loading.
func (p *Pipeline) OnProgress(fn ProgressFunc) {
	p.progress = fn
}

// State reports how far the run has progressed.
func (p *Pipeline) State() models.RunState {
	return p.state
}

// Run loads, scans, deduplicates and aggregates src. The source must stay
// open until Run returns. Unreadable pages are skipped and listed in the
// result; only an unusable source is an error.
func (p *Pipeline) Run(src source.Source) (*aggregate.Result, error) {
	if p.state != models.StateUnextracted {
		return nil, fmt.Errorf("pipeline already ran to state %s", p.state)
	}

	loaded, err := p.Load(src)
	if err != nil {
		return nil, err
	}
	p.advance(models.StateTextLoaded, "pages", len(loaded.Pages), "skipped", len(loaded.Skipped))

	outputs := p.Scan(loaded.Pages)
	p.advance(models.StateScanned, "pages", len(outputs))

	aggregate.SortOutputs(outputs)
	candidates := aggregate.ChapterCandidates(outputs)
	chapters := dedup.Chapters(candidates)
	p.advance(models.StateDeduplicated, "candidates", len(candidates), "chapters", len(chapters))

	result := aggregate.Merge(loaded.TotalPages, outputs, chapters, loaded.Skipped, aggregate.OptionsFrom(p.cfg))
	p.advance(models.StateAggregated, "analysis_rows", len(result.Analysis), "notations", len(result.Notations))

	return result, nil
}

// MarkExported records that the caller has written the result out.
func (p *Pipeline) MarkExported() error {
	if p.state != models.StateAggregated {
		return fmt.Errorf("cannot export from state %s", p.state)
	}
	p.advance(models.StateExported)
	return nil
}

func (p *Pipeline) advance(to models.RunState, attrs ...any) {
	p.state = to
	p.logger.Info("Run state changed", append([]any{"state", to.String()}, attrs...)...)
}
