package export

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/kitsanannam-hue/esaan-dataset/models"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/aggregate"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/artifact_manager"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/catalog"
)

//go:embed document.schema.json
var documentSchema string

var compileDocumentSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString("document.schema.json", documentSchema)
})

var (
	notationColumns    = []string{"page", "type", "notation", "context"}
	compositionColumns = []string{"page", "title", "context"}
)

// Exporter writes artifacts through a Manager.
type Exporter struct {
	m      *artifact_manager.Manager
	logger *slog.Logger
}

func New(m *artifact_manager.Manager, logger *slog.Logger) *Exporter {
	return &Exporter{m: m, logger: logger}
}

// All writes every dataset and report of a run and returns the artifact
// names written, in order. The manifest is not included.
func (e *Exporter) All(res *aggregate.Result, meta models.DocumentMetadata, cat *catalog.Catalog) ([]string, error) {
	steps := []struct {
		names []string
		write func() error
	}{
		{[]string{artifact_manager.DocumentFile}, func() error { return e.Document(res.Document(meta)) }},
		{[]string{artifact_manager.PagesCSV}, func() error { return e.Pages(res.Pages) }},
		{[]string{artifact_manager.AnalysisCSV}, func() error { return e.Analysis(res.Analysis) }},
		{[]string{artifact_manager.SummaryFile}, func() error { return e.Summary(res.Summary()) }},
		{[]string{artifact_manager.NotationCSV, artifact_manager.NotationJSON}, func() error { return e.Notation(res.Notations) }},
		{[]string{artifact_manager.CompositionsCSV, artifact_manager.CompositionsJSON}, func() error { return e.Compositions(res.Compositions) }},
		{[]string{artifact_manager.NotationSummaryFile}, func() error { return e.NotationSummary(res.NotationSummary()) }},
		{[]string{artifact_manager.QualityReportFile}, func() error { return e.QualityReport(aggregate.QualityReport(res.Notations)) }},
		{[]string{artifact_manager.SchemaFile, artifact_manager.CatalogCSV, artifact_manager.CatalogJSON}, func() error { return e.Catalog(cat) }},
	}

	var written []string
	for _, step := range steps {
		if err := step.write(); err != nil {
			return written, err
		}
		written = append(written, step.names...)
		e.logger.Debug("Exported artifact", "names", step.names)
	}
	return written, nil
}

// Document validates the extraction document against its JSON schema and
// writes it.
func (e *Exporter) Document(doc models.ExtractedDocument) error {
	data, err := marshalJSON(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	if err := ValidateDocument(data); err != nil {
		return err
	}
	return e.m.Write(artifact_manager.DocumentFile, data)
}

// ValidateDocument checks raw document JSON against the document schema.
func ValidateDocument(data []byte) error {
	schema, err := compileDocumentSchema()
	if err != nil {
		return fmt.Errorf("failed to compile document schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("failed to decode document for validation: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("document does not match schema: %w", err)
	}
	return nil
}

// Pages writes the pages table.
func (e *Exporter) Pages(rows []models.PageRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			strconv.Itoa(r.Page), r.Text, strconv.Itoa(r.WordCount), strconv.Itoa(r.CharCount),
		})
	}
	return e.writeCSV(artifact_manager.PagesCSV, models.PageColumns, records)
}

// Analysis writes the page analysis table.
func (e *Exporter) Analysis(rows []models.PageAnalysisRecord) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			strconv.Itoa(r.Page), r.FeatureName, r.Context, strconv.Itoa(r.WordCount),
			strconv.FormatBool(r.HasThaiMusic), strconv.FormatBool(r.HasJazz),
			strconv.FormatBool(r.HasMLTerms), strconv.FormatBool(r.HasFusion),
		})
	}
	return e.writeCSV(artifact_manager.AnalysisCSV, models.AnalysisColumns, records)
}

func (e *Exporter) Summary(s models.ExtractionSummary) error {
	return e.writeJSON(artifact_manager.SummaryFile, s)
}

// Notation writes the notation dataset as CSV and JSON records.
func (e *Exporter) Notation(hits []models.NotationHit) error {
	records := make([][]string, 0, len(hits))
	for _, h := range hits {
		records = append(records, []string{strconv.Itoa(h.Page), string(h.Type), h.Notation, h.Context})
	}
	if err := e.writeCSV(artifact_manager.NotationCSV, notationColumns, records); err != nil {
		return err
	}
	return e.writeJSON(artifact_manager.NotationJSON, nonNil(hits))
}

// Compositions writes the compositions dataset as CSV and JSON records.
func (e *Exporter) Compositions(comps []models.Composition) error {
	records := make([][]string, 0, len(comps))
	for _, c := range comps {
		records = append(records, []string{strconv.Itoa(c.Page), c.Title, c.Context})
	}
	if err := e.writeCSV(artifact_manager.CompositionsCSV, compositionColumns, records); err != nil {
		return err
	}
	return e.writeJSON(artifact_manager.CompositionsJSON, nonNil(comps))
}

func (e *Exporter) NotationSummary(s models.NotationSummary) error {
	return e.writeJSON(artifact_manager.NotationSummaryFile, s)
}

func (e *Exporter) QualityReport(q models.QualityReport) error {
	return e.writeJSON(artifact_manager.QualityReportFile, q)
}

// Catalog writes the dataset schema and the feature catalog table.
func (e *Exporter) Catalog(cat *catalog.Catalog) error {
	if err := e.writeJSON(artifact_manager.SchemaFile, cat.Schema()); err != nil {
		return err
	}
	rows, err := cat.Rows()
	if err != nil {
		return fmt.Errorf("failed to build catalog rows: %w", err)
	}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{r.FeatureName, r.Category, r.Description, r.SubTypes})
	}
	if err := e.writeCSV(artifact_manager.CatalogCSV, catalog.RowColumns, records); err != nil {
		return err
	}
	return e.writeJSON(artifact_manager.CatalogJSON, rows)
}

// CleanNotation drops exact duplicate rows from the exported notation dataset
// and rewrites it. Returns the number of rows removed.
func (e *Exporter) CleanNotation() (int, error) {
	data, err := e.m.Read(artifact_manager.NotationJSON)
	if err != nil {
		return 0, err
	}
	var hits []models.NotationHit
	if err := json.Unmarshal(data, &hits); err != nil {
		return 0, fmt.Errorf("failed to decode %s: %w", artifact_manager.NotationJSON, err)
	}
	cleaned, removed := aggregate.CleanDuplicates(hits)
	if removed == 0 {
		return 0, nil
	}
	if err := e.Notation(cleaned); err != nil {
		return 0, err
	}
	e.logger.Info("Removed duplicate notation rows", "removed", removed, "kept", len(cleaned))
	return removed, nil
}

func (e *Exporter) writeCSV(name string, header []string, records [][]string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return e.m.Write(name, buf.Bytes())
}

func (e *Exporter) writeJSON(name string, v any) error {
	data, err := marshalJSON(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	return e.m.Write(name, data)
}

// marshalJSON indents with two spaces and leaves <, > and & unescaped so
// contexts read the same as the source text.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
