package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/kitsanannam-hue/esaan-dataset/models"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/artifact_manager"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/db"
)

var (
	// titleStyle for bold section headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33"))

	// dimStyle for labels and muted metadata
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	// boxStyle for report boxes
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1)
)

// maxListed caps the pages printed inline for one category.
const maxListed = 12

// Summary renders the extraction summary box.
func Summary(w io.Writer, s models.ExtractionSummary) {
	var lines []string
	lines = append(lines, titleStyle.Render("Extraction Summary"))
	lines = append(lines, fmt.Sprintf("%s %s  %s %d  %s %d  %s %d",
		dimStyle.Render("Pages:"), humanize.Comma(int64(s.TotalPages)),
		dimStyle.Render("Tables:"), s.TablesCount,
		dimStyle.Render("Figures:"), s.FiguresCount,
		dimStyle.Render("ML features:"), s.MLFeaturesFound,
	))

	lines = append(lines, "", titleStyle.Render("Keywords"))
	for _, cat := range models.Categories() {
		stat := s.KeywordAnalysis[cat]
		lines = append(lines, fmt.Sprintf("  %-15s %5d  %s",
			cat, stat.Count, dimStyle.Render(pageList(stat.Pages))))
	}

	if len(s.Chapters) > 0 {
		lines = append(lines, "", titleStyle.Render("Chapters"))
		for _, ch := range s.Chapters {
			lines = append(lines, fmt.Sprintf("  %-4s %s %s",
				ch.ChapterNumber, ch.Title, dimStyle.Render(fmt.Sprintf("p.%d", ch.StartPage))))
		}
	}

	if len(s.TopTerms) > 0 {
		lines = append(lines, "", titleStyle.Render("Top terms"))
		lines = append(lines, "  "+strings.Join(s.TopTerms, ", "))
	}

	if len(s.SkippedPages) > 0 {
		lines = append(lines, "", warnStyle.Render(fmt.Sprintf("Skipped %s: %s",
			english.Plural(len(s.SkippedPages), "page", ""), pageList(s.SkippedPages))))
	}

	fmt.Fprintln(w, boxStyle.Render(strings.Join(lines, "\n")))
}

// NotationSummary renders the notation dataset counts.
func NotationSummary(w io.Writer, s models.NotationSummary) {
	var lines []string
	lines = append(lines, titleStyle.Render("Notation"))
	lines = append(lines, fmt.Sprintf("%s %d  %s %d  %s %d",
		dimStyle.Render("Hits:"), s.TotalNotations,
		dimStyle.Render("Compositions:"), s.TotalCompositions,
		dimStyle.Render("Pages:"), s.PagesWithNotation,
	))
	for _, t := range models.NotationTypes() {
		lines = append(lines, fmt.Sprintf("  %-18s %5d", t, s.ByType[t]))
	}
	fmt.Fprintln(w, boxStyle.Render(strings.Join(lines, "\n")))
}

// DatasetStats renders the analysis table statistics.
func DatasetStats(w io.Writer, s models.DatasetStats) {
	var lines []string
	lines = append(lines, titleStyle.Render("Analysis dataset"))
	lines = append(lines, fmt.Sprintf("%s %d  %s %d",
		dimStyle.Render("Rows:"), s.TotalEntries,
		dimStyle.Render("Pages:"), s.UniquePages,
	))
	lines = append(lines, fmt.Sprintf("%s %d  %s %d  %s %d  %s %d",
		dimStyle.Render("Thai:"), s.ThaiMusicPages,
		dimStyle.Render("Jazz:"), s.JazzPages,
		dimStyle.Render("ML:"), s.MLPages,
		dimStyle.Render("Fusion:"), s.FusionPages,
	))

	features := make([]string, 0, len(s.FeatureDistribution))
	for name := range s.FeatureDistribution {
		features = append(features, name)
	}
	sort.Slice(features, func(i, j int) bool {
		a, b := s.FeatureDistribution[features[i]], s.FeatureDistribution[features[j]]
		if a != b {
			return a > b
		}
		return features[i] < features[j]
	})
	for _, name := range features {
		lines = append(lines, fmt.Sprintf("  %-24s %5d", name, s.FeatureDistribution[name]))
	}
	fmt.Fprintln(w, boxStyle.Render(strings.Join(lines, "\n")))
}

// Artifacts lists written files with their sizes.
func Artifacts(w io.Writer, artifacts []artifact_manager.Artifact) {
	fmt.Fprintln(w, titleStyle.Render("Artifacts"))
	for _, a := range artifacts {
		fmt.Fprintf(w, "%s %-32s %s\n",
			successStyle.Render("✓"), a.Name, dimStyle.Render(humanize.Bytes(uint64(a.SizeBytes))))
	}
}

// Runs lists extraction runs in the order given.
func Runs(w io.Writer, runs []db.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No runs recorded"))
		return
	}
	for _, r := range runs {
		state := warnStyle.Render(r.State)
		if r.FinishedAt != nil {
			state = successStyle.Render(r.State)
		}
		fmt.Fprintf(w, "%s  %-12s %s  %s\n",
			r.RunID, state, r.Source, dimStyle.Render(humanize.Time(r.StartedAt)))
	}
}

// pageList formats a page list, eliding the tail of long lists.
func pageList(pages []int) string {
	if len(pages) == 0 {
		return "-"
	}
	n := len(pages)
	if n > maxListed {
		n = maxListed
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = fmt.Sprint(pages[i])
	}
	out := strings.Join(parts, ",")
	if len(pages) > maxListed {
		out += fmt.Sprintf(" (+%d more)", len(pages)-maxListed)
	}
	return out
}
