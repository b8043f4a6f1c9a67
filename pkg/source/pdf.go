package source

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"sync"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDF reads page text from a PDF. pdfcpu validates the file and supplies the
// page count; ledongthuc/pdf decodes page content.
type PDF struct {
	closer io.Closer
	count  int

	mu     sync.Mutex // the reader is not safe for concurrent use
	reader *pdf.Reader
}

// pdfInput is what both libraries need: pdfcpu seeks, the decoder reads at
// offsets.
type pdfInput interface {
	io.ReadSeeker
	io.ReaderAt
}

// OpenPDF opens and validates a PDF file. Any failure is ErrSourceUnavailable.
func OpenPDF(path string) (*PDF, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}
	p, err := newPDF(f, info.Size(), path)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	p.closer = f
	return p, nil
}

// NewPDF reads a PDF held in memory, such as a downloaded document.
func NewPDF(data []byte, name string) (*PDF, error) {
	return newPDF(bytes.NewReader(data), int64(len(data)), name)
}

func newPDF(in pdfInput, size int64, name string) (*PDF, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	count, err := api.PageCount(in, conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: page count: %v", ErrSourceUnavailable, name, err)
	}

	if _, err := in.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, name, err)
	}
	reader, err := pdf.NewReader(in, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, name, err)
	}

	return &PDF{count: count, reader: reader}, nil
}

func (p *PDF) PageCount() (int, error) { return p.count, nil }

// PageText returns the text of page n, one output line per text row.
func (p *PDF) PageText(n int) (text string, err error) {
	if err := checkPage(n, p.count); err != nil {
		return "", err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if n > p.reader.NumPage() {
		return "", pageError(n, fmt.Errorf("decoder sees only %d pages", p.reader.NumPage()))
	}

	// The decoder panics on malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", pageError(n, fmt.Errorf("decode: %v", r))
		}
	}()

	page := p.reader.Page(n)
	if page.V.IsNull() {
		return "", pageError(n, fmt.Errorf("missing page object"))
	}
	return joinRows(page.Content().Text), nil
}

func (p *PDF) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}

// joinRows lays glyph runs out as lines. A new line starts when the baseline
// moves; a space is inserted when the horizontal gap looks like a word break.
func joinRows(texts []pdf.Text) string {
	var sb strings.Builder
	var prev *pdf.Text
	for i := range texts {
		t := &texts[i]
		if t.S == "" {
			continue
		}
		if prev != nil {
			tolerance := math.Max(prev.FontSize*0.5, 1)
			switch {
			case math.Abs(t.Y-prev.Y) > tolerance:
				sb.WriteByte('\n')
			case t.X-(prev.X+prev.W) > math.Max(prev.FontSize*0.2, 0.5) &&
				!strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(t.S, " "):
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(t.S)
		prev = t
	}
	return strings.TrimSpace(sb.String())
}
