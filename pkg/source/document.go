package source

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/kitsanannam-hue/esaan-dataset/models"
)

// Document replays the page text of a previously exported extraction
// document, so analysis can be rerun without the original file.
type Document struct {
	pages map[int]string
	count int
	meta  models.DocumentMetadata
}

// OpenDocument reads an exported extraction document.
func OpenDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return ParseDocument(data, path)
}

// ParseDocument decodes an exported extraction document held in memory.
func ParseDocument(data []byte, name string) (*Document, error) {
	var doc models.ExtractedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, name, err)
	}
	return NewDocument(doc)
}

// NewDocument wraps a decoded extraction document. Keys that are not page
// numbers are ignored. Pages missing from extracted_text read as failures.
func NewDocument(doc models.ExtractedDocument) (*Document, error) {
	d := &Document{pages: make(map[int]string, len(doc.ExtractedText)), meta: doc.Metadata}
	for key, text := range doc.ExtractedText {
		n, err := strconv.Atoi(key)
		if err != nil || n < 1 {
			continue
		}
		d.pages[n] = text
		if n > d.count {
			d.count = n
		}
	}
	if doc.Metadata.TotalPages > d.count {
		d.count = doc.Metadata.TotalPages
	}
	if d.count == 0 {
		return nil, fmt.Errorf("%w: document has no pages", ErrSourceUnavailable)
	}
	return d, nil
}

// Metadata returns the metadata block of the replayed document.
func (d *Document) Metadata() models.DocumentMetadata { return d.meta }

func (d *Document) PageCount() (int, error) { return d.count, nil }

func (d *Document) PageText(n int) (string, error) {
	if err := checkPage(n, d.count); err != nil {
		return "", err
	}
	text, ok := d.pages[n]
	if !ok {
		return "", pageError(n, fmt.Errorf("not in document"))
	}
	return text, nil
}

func (d *Document) Close() error { return nil }
