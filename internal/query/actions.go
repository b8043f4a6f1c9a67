package query

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/kitsanannam-hue/esaan-dataset/internal/common"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/artifact_manager"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/catalog"
	dbpkg "github.com/kitsanannam-hue/esaan-dataset/pkg/db"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/export"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/extractor"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/render"
)

// defaultPageFields leaves page text out of listings unless asked for.
const defaultPageFields = "page,word_count,char_count,language"

func RunsAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return err
	}
	render.Runs(os.Stdout, runs)
	return nil
}

// PagesAction lists the pages of a run that carry every --flag. With
// --filter the analysis rows are listed instead, narrowed by the strategy.
func PagesAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	if c.IsSet("filter") {
		strategy, err := extractor.ParseStrategy(c.String("filter"))
		if err != nil {
			return fmt.Errorf("invalid filter: %w", err)
		}
		rows, err := database.AnalysisRows(runID)
		if err != nil {
			return err
		}
		rows = extractor.FilterRows(rows, strategy)
		fmt.Fprintf(os.Stderr, "%d analysis rows match in run %s\n", len(rows), runID)
		return common.PrintOutput(os.Stdout, rows, c.String("format"))
	}

	flags, err := parseFlags(c.StringSlice("flag"))
	if err != nil {
		return err
	}
	pages, err := database.PagesWithFlag(runID, flags...)
	if err != nil {
		return err
	}

	fields := c.String("fields")
	if fields == "" {
		fields = defaultPageFields
	}
	out := make([]map[string]interface{}, 0, len(pages))
	for _, p := range pages {
		out = append(out, common.FilterResultFields(p, fields))
	}
	fmt.Fprintf(os.Stderr, "%d pages match in run %s\n", len(pages), runID)
	return common.PrintOutput(os.Stdout, out, c.String("format"))
}

func SearchAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("missing search query. Usage: esaan search <text>")
	}

	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}
	hits, err := database.SearchPages(runID, c.Args().First(), c.Int("limit"))
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		fmt.Println("No matching pages")
		return nil
	}
	return common.PrintOutput(os.Stdout, hits, c.String("format"))
}

func ChaptersAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}
	chapters, err := database.Chapters(runID)
	if err != nil {
		return err
	}
	return common.PrintOutput(os.Stdout, chapters, c.String("format"))
}

// NotationAction lists a run's notation hits. --clean instead rewrites the
// exported notation dataset without duplicate rows.
func NotationAction(c *cli.Context) error {
	if c.Bool("clean") {
		logger := common.NewLogger(c)
		manager, err := artifact_manager.NewManager(c.String("output-dir"), 0)
		if err != nil {
			return fmt.Errorf("failed to initialize artifact manager: %w", err)
		}
		removed, err := export.New(manager, logger).CleanNotation()
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d duplicate notation rows\n", removed)
		return nil
	}

	types, err := parseNotationTypes(c.StringSlice("type"))
	if err != nil {
		return err
	}

	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}
	hits, err := database.NotationHits(runID, types...)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "%d notation hits in run %s\n", len(hits), runID)
	return common.PrintOutput(os.Stdout, hits, c.String("format"))
}

// CatalogAction prints the feature catalog, or with --schema the dataset
// schema derived from it.
func CatalogAction(c *cli.Context) error {
	cat, err := catalog.Default()
	if err != nil {
		return err
	}
	if c.Bool("schema") {
		return common.PrintOutput(os.Stdout, cat.Schema(), c.String("format"))
	}
	rows, err := cat.Rows()
	if err != nil {
		return err
	}
	return common.PrintOutput(os.Stdout, rows, c.String("format"))
}
