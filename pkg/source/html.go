package source

import (
	"bufio"
	"bytes"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// pageSelectors mark page containers in HTML exports of paginated
// documents, tried in order.
var pageSelectors = []string{"[data-page-number]", "div.page", "section.page"}

const blockSelector = "h1,h2,h3,h4,h5,h6,p,li,caption,figcaption,pre,blockquote"

// HTML is a document exported to HTML. Page containers become pages in
// document order; without them readability extracts the main content as a
// single page.
type HTML struct {
	pages []string
}

// OpenHTML reads an HTML file.
func OpenHTML(path string) (*HTML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return NewHTML(data, "file://"+path)
}

// NewHTML parses raw HTML. location is used to resolve relative links during
// readability extraction.
func NewHTML(raw []byte, location string) (*HTML, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: parse html: %v", ErrSourceUnavailable, err)
	}

	for _, sel := range pageSelectors {
		found := doc.Find(sel)
		if found.Length() == 0 {
			continue
		}
		h := &HTML{}
		found.Each(func(i int, s *goquery.Selection) {
			h.pages = append(h.pages, blockText(s))
		})
		return h, nil
	}

	pageURL, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, location, err)
	}
	parser := readability.NewParser()
	article, err := parser.Parse(bytes.NewReader(raw), pageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: readability: %v", ErrSourceUnavailable, err)
	}
	content, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return nil, fmt.Errorf("%w: parse article: %v", ErrSourceUnavailable, err)
	}
	return &HTML{pages: []string{blockText(content.Selection)}}, nil
}

func (h *HTML) PageCount() (int, error) { return len(h.pages), nil }

func (h *HTML) PageText(n int) (string, error) {
	if err := checkPage(n, len(h.pages)); err != nil {
		return "", err
	}
	return h.pages[n-1], nil
}

func (h *HTML) Close() error { return nil }

// blockText renders the block elements under s one per line, so line-anchored
// heading patterns still work. Blocks nested in other blocks are skipped.
func blockText(s *goquery.Selection) string {
	var lines []string
	s.Find(blockSelector).Each(func(i int, b *goquery.Selection) {
		if b.ParentsFiltered(blockSelector).Length() > 0 {
			return
		}
		if line := normalizeText(b.Text()); line != "" {
			lines = append(lines, line)
		}
	})
	if len(lines) == 0 {
		return normalizeText(s.Text())
	}
	return strings.Join(lines, "\n")
}

// normalizeText trims each line and joins the non-empty ones with a space.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}
