package extract

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/kitsanannam-hue/esaan-dataset/internal/common"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/render"
)

func ExtractAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	cfg, err := common.LoadConfig(c)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Source == "" {
		return fmt.Errorf("no source given. Usage: esaan extract <file.pdf|file.html|url>")
	}

	var maxAge time.Duration
	if !c.Bool("force") {
		maxAge, err = time.ParseDuration(c.String("max-age"))
		if err != nil {
			return fmt.Errorf("invalid max-age duration: %w", err)
		}
	}

	startTime := time.Now()
	outcome, err := Run(cfg, maxAge, logger)
	if err != nil {
		return err
	}
	logger.Info("Extraction complete",
		"run_id", outcome.RunID,
		"pages", outcome.Result.TotalPages,
		"skipped", len(outcome.Result.SkippedPages),
		"from_cache", outcome.FromCache,
		"duration_ms", time.Since(startTime).Milliseconds(),
	)

	switch c.String("format") {
	case "json", "yaml":
		return common.PrintOutput(os.Stdout, outcome.Result.Summary(), c.String("format"))
	}
	if c.Bool("quiet") {
		return nil
	}

	render.Summary(os.Stdout, outcome.Result.Summary())
	render.NotationSummary(os.Stdout, outcome.Result.NotationSummary())
	render.DatasetStats(os.Stdout, outcome.Result.DatasetStats())
	render.Artifacts(os.Stdout, outcome.Artifacts)
	fmt.Printf("\nRun %s written to %s\n", outcome.RunID, cfg.OutputDir)
	return nil
}
