package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/kitsanannam-hue/esaan-dataset/internal/extract"
	"github.com/kitsanannam-hue/esaan-dataset/internal/query"
	"github.com/kitsanannam-hue/esaan-dataset/models"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/help"
)

func main() {
	defaults := models.DefaultExtractConfig()

	quietFlag := &cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"}
	dbFlag := &cli.StringFlag{Name: "db", Value: defaults.DBPath, Usage: "SQLite run store path"}
	runFlag := &cli.StringFlag{Name: "run", Usage: "run id (default: latest exported run)"}
	formatFlag := &cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "yaml", Usage: "output format: yaml or json"}

	app := &cli.App{
		Name:  "esaan",
		Usage: "extract keyword, feature and notation datasets from a paginated dissertation",
		Commands: []*cli.Command{
			{
				Name:      "extract",
				Usage:     "scan a document and export its datasets",
				ArgsUsage: "<file.pdf|file.html|file.json|url>",
				Action:    extract.ExtractAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file"},
					&cli.StringFlag{Name: "source", Aliases: []string{"s"}, Usage: "document to extract"},
					&cli.StringFlag{Name: "output-dir", Aliases: []string{"o"}, Value: defaults.OutputDir, Usage: "output directory"},
					dbFlag,
					&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Value: defaults.WorkerCount, Usage: "scanner workers"},
					&cli.IntFlag{Name: "from", Usage: "first page to read (1-based)"},
					&cli.IntFlag{Name: "to", Usage: "last page to read (0 = end of document)"},
					&cli.IntFlag{Name: "top-terms", Value: defaults.TopTerms, Usage: "frequent terms in the summary"},
					&cli.BoolFlag{Name: "no-language", Usage: "skip language detection"},
					&cli.StringFlag{Name: "max-age", Value: "0", Usage: "reuse an exported document younger than this (e.g. 1h; negative = always)"},
					&cli.BoolFlag{Name: "force", Usage: "always reread the source"},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "print the summary as yaml or json instead of the report"},
					quietFlag,
				},
			},
			{
				Name:   "notation",
				Usage:  "list notation hits of a run",
				Action: query.NotationAction,
				Flags: []cli.Flag{
					dbFlag, runFlag, formatFlag, quietFlag,
					&cli.StringSliceFlag{Name: "type", Aliases: []string{"t"}, Usage: "notation type (repeatable)"},
					&cli.BoolFlag{Name: "clean", Usage: "remove duplicate rows from the exported notation dataset"},
					&cli.StringFlag{Name: "output-dir", Aliases: []string{"o"}, Value: defaults.OutputDir, Usage: "output directory"},
				},
			},
			{
				Name:   "catalog",
				Usage:  "print the feature catalog",
				Action: query.CatalogAction,
				Flags: []cli.Flag{
					formatFlag,
					&cli.BoolFlag{Name: "schema", Usage: "print the dataset schema instead"},
				},
			},
			{
				Name:   "pages",
				Usage:  "list pages carrying every given flag",
				Action: query.PagesAction,
				Flags: []cli.Flag{
					dbFlag, runFlag, formatFlag,
					&cli.StringSliceFlag{Name: "flag", Usage: "page flag, e.g. has_jazz (repeatable)"},
					&cli.StringFlag{Name: "filter", Usage: "analysis row filter, e.g. 'flag:has_jazz,feature:tempo|rhythm,page:10-40'"},
					&cli.StringFlag{Name: "fields", Usage: "comma-separated page fields to print"},
				},
			},
			{
				Name:      "search",
				Usage:     "find pages containing text",
				ArgsUsage: "<text>",
				Action:    query.SearchAction,
				Flags: []cli.Flag{
					dbFlag, runFlag, formatFlag,
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 20, Usage: "maximum pages (0 = all)"},
				},
			},
			{
				Name:   "chapters",
				Usage:  "list the chapters of a run",
				Action: query.ChaptersAction,
				Flags:  []cli.Flag{dbFlag, runFlag, formatFlag},
			},
			{
				Name:  "quickstart",
				Usage: "print a usage overview",
				Action: func(c *cli.Context) error {
					fmt.Print(help.QuickstartYAML)
					return nil
				},
			},
			{
				Name:   "runs",
				Usage:  "list extraction runs",
				Action: query.RunsAction,
				Flags: []cli.Flag{
					dbFlag,
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 20, Usage: "maximum runs (0 = all)"},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
