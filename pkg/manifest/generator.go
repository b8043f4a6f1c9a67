package manifest

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kitsanannam-hue/esaan-dataset/models"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/aggregate"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/artifact_manager"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/mapreduce"
)

// Generate writes manifest.json for a run. It lists whatever artifacts exist
// in the output directory at the time of the call, so it should run last.
// Returns the path to the generated manifest file.
func Generate(meta models.DocumentMetadata, res *aggregate.Result, topN int, m *artifact_manager.Manager) (string, error) {
	generatedAt := meta.ExtractedAt
	if generatedAt == "" {
		generatedAt = time.Now().Format(time.RFC3339)
	}
	manifest := RunManifest{
		RunID:        meta.RunID,
		GeneratedAt:  generatedAt,
		SourceFile:   meta.SourceFile,
		TotalPages:   res.TotalPages,
		PagesRead:    len(res.Pages),
		SkippedPages: res.SkippedPages,
		Counts: map[string]int{
			"keyword_hits":   len(res.Keywords),
			"feature_hits":   len(res.FeatureHits),
			"chapters":       len(res.Chapters),
			"tables_figures": len(res.TablesAndFigures),
			"music_features": len(res.Features),
			"notations":      len(res.Notations),
			"compositions":   len(res.Compositions),
			"analysis_rows":  len(res.Analysis),
		},
		TopKeywords: mapreduce.TopKeywords(res.WordCounts, topN),
	}

	artifacts, err := m.List()
	if err != nil {
		return "", fmt.Errorf("error listing artifacts: %w", err)
	}
	for _, a := range artifacts {
		if a.Name == artifact_manager.ManifestFile {
			continue
		}
		manifest.Artifacts = append(manifest.Artifacts, ArtifactSummary{Name: a.Name, SizeBytes: a.SizeBytes})
	}

	manifestData, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error marshalling manifest: %w", err)
	}
	if err := m.Write(artifact_manager.ManifestFile, manifestData); err != nil {
		return "", fmt.Errorf("error saving manifest: %w", err)
	}
	return m.Path(artifact_manager.ManifestFile), nil
}
