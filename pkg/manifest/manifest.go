package manifest

// RunManifest describes one extraction run and the files it exported, so
// consumers can find the datasets without scanning the output directory.
type RunManifest struct {
	RunID        string            `json:"run_id"`
	GeneratedAt  string            `json:"generated_at"`
	SourceFile   string            `json:"source_file"`
	TotalPages   int               `json:"total_pages"`
	PagesRead    int               `json:"pages_read"`
	SkippedPages []int             `json:"skipped_pages,omitempty"`
	Counts       map[string]int    `json:"counts"`
	TopKeywords  []string          `json:"top_keywords,omitempty"`
	Artifacts    []ArtifactSummary `json:"artifacts"`
}

// ArtifactSummary is one exported file.
type ArtifactSummary struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
}
