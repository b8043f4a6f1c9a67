package query

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/kitsanannam-hue/esaan-dataset/models"
	dbpkg "github.com/kitsanannam-hue/esaan-dataset/pkg/db"
)

// GetRunIDOrLatest returns the run id from --run, or the newest run that
// finished exporting.
func GetRunIDOrLatest(c *cli.Context, database *dbpkg.DB) (string, error) {
	if id := c.String("run"); id != "" {
		run, err := database.GetRun(id)
		if err != nil {
			return "", err
		}
		return run.RunID, nil
	}

	runs, err := database.ListRuns(0)
	if err != nil {
		return "", fmt.Errorf("failed to get latest run: %w", err)
	}
	for _, r := range runs {
		if r.State == models.StateExported.String() {
			return r.RunID, nil
		}
	}
	return "", fmt.Errorf("no exported runs found. Run 'esaan extract <file>' first")
}

// parseFlags validates --flag values.
func parseFlags(values []string) ([]models.Flag, error) {
	flags := make([]models.Flag, 0, len(values))
	for _, v := range values {
		f, err := models.ParseFlag(v)
		if err != nil {
			return nil, err
		}
		flags = append(flags, f)
	}
	return flags, nil
}

// parseNotationTypes validates --type values.
func parseNotationTypes(values []string) ([]models.NotationType, error) {
	types := make([]models.NotationType, 0, len(values))
	for _, v := range values {
		t, err := models.ParseNotationType(v)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}
