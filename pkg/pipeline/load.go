package pipeline

import (
	"fmt"

	"github.com/kitsanannam-hue/esaan-dataset/models"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/patterns"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/source"
)

// Loaded is the text of the requested page range.
type Loaded struct {
	TotalPages int // pages in the document, not in the range
	Pages      []models.Page
	Skipped    []int
}

// Load reads the configured page range from src. Page text is NFC-normalized.
// A page that fails to read is logged and skipped.
func (p *Pipeline) Load(src source.Source) (Loaded, error) {
	total, err := src.PageCount()
	if err != nil {
		return Loaded{}, fmt.Errorf("failed to count pages: %w", err)
	}

	from, to := p.pageRange(total)
	out := Loaded{TotalPages: total}
	if from > to {
		p.logger.Warn("Page range is empty", "from", p.cfg.FromPage, "to", p.cfg.ToPage, "total_pages", total)
		return out, nil
	}

	report := p.startProgress(to - from + 1)
	defer report.close()

	for n := from; n <= to; n++ {
		text, err := src.PageText(n)
		if err != nil {
			p.logger.Warn("Skipping unreadable page", "page", n, "error", err)
			out.Skipped = append(out.Skipped, n)
		} else {
			out.Pages = append(out.Pages, models.Page{Number: n, Text: patterns.Normalize(text)})
		}
		report.send(n-from+1, to-from+1)
	}
	return out, nil
}

// pageRange clamps the configured range to the document. Zero means open.
func (p *Pipeline) pageRange(total int) (int, int) {
	from, to := p.cfg.FromPage, p.cfg.ToPage
	if from < 1 {
		from = 1
	}
	if to < 1 || to > total {
		to = total
	}
	return from, to
}

type progressEvent struct{ current, total int }

// progressReporter hands events to the callback goroutine through a channel
// sized for every event, so sends never block.
type progressReporter struct {
	events chan progressEvent
}

func (p *Pipeline) startProgress(n int) *progressReporter {
	if p.progress == nil {
		return &progressReporter{}
	}
	r := &progressReporter{events: make(chan progressEvent, n)}
	fn := p.progress
	go func() {
		for ev := range r.events {
			fn(ev.current, ev.total)
		}
	}()
	return r
}

func (r *progressReporter) send(current, total int) {
	if r.events != nil {
		r.events <- progressEvent{current, total}
	}
}

func (r *progressReporter) close() {
	if r.events != nil {
		close(r.events)
	}
}
