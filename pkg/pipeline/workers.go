package pipeline

import (
	"log/slog"
	"sync"

	"github.com/kitsanannam-hue/esaan-dataset/models"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/aggregate"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/analytics"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/classifier"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/mapreduce"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/scanner"
)

// Scan processes pages on the worker pool. Outputs come back in completion
// order; callers sort them.
func (p *Pipeline) Scan(pages []models.Page) []aggregate.PageOutput {
	p.logger.Info("Starting concurrent scan phase", "page_count", len(pages), "workers", p.cfg.WorkerCount)

	var wg sync.WaitGroup
	jobs := make(chan models.Page, len(pages))
	results := make(chan aggregate.PageOutput, len(pages))

	for w := 1; w <= p.cfg.WorkerCount; w++ {
		wg.Add(1)
		go worker(w, p.logger, p.scanner, p.classifier, p.analytics, &wg, jobs, results)
	}

	for _, page := range pages {
		jobs <- page
	}
	close(jobs)

	wg.Wait()
	close(results)
	p.logger.Info("All scan workers finished")

	outputs := make([]aggregate.PageOutput, 0, len(pages))
	for out := range results {
		outputs = append(outputs, out)
	}
	return outputs
}

func worker(id int, logger *slog.Logger, s *scanner.Scanner, c *classifier.Classifier, a *analytics.Analytics, wg *sync.WaitGroup, jobs <-chan models.Page, results chan<- aggregate.PageOutput) {
	defer wg.Done()
	for page := range jobs {
		results <- processPage(page, s, c, a)
		logger.Debug("Worker finished page", "worker_id", id, "page", page.Number)
	}
}

func processPage(page models.Page, s *scanner.Scanner, c *classifier.Classifier, a *analytics.Analytics) aggregate.PageOutput {
	row := models.NewPageRow(page)
	row.Language = c.Language(page.Text)
	return aggregate.PageOutput{
		PageResult: s.Scan(page),
		Row:        row,
		Flags:      c.Flags(page.Text),
		WordCounts: mapreduce.Map(page.Text, a),
	}
}
