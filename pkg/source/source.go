// Package source provides page text from a paginated document.
//
// Every source numbers pages from 1 and may be read in any order. A source
// that cannot be opened fails with ErrSourceUnavailable; a single page that
// cannot be read fails with ErrPageRead and the caller decides whether to skip
// it.
package source

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kitsanannam-hue/esaan-dataset/pkg/caching"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/detector"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/fetcher"
)

var (
	// ErrSourceUnavailable means the document could not be opened at all.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrPageRead means one page's text could not be retrieved.
	ErrPageRead = errors.New("page read failed")
)

// Source is a read-only paginated document.
type Source interface {
	PageCount() (int, error)
	PageText(n int) (string, error)
	Close() error
}

// Options control how Open reaches remote documents. The zero value fetches
// with the default client and caches nothing.
type Options struct {
	Fetcher *fetcher.Fetcher
	Cache   *caching.Cache
}

// Open picks a source implementation for location. See OpenWith.
func Open(location string) (Source, error) {
	return OpenWith(location, Options{})
}

// OpenWith picks a source implementation from the location. http(s) URLs are
// downloaded and their content sniffed. Local files go by extension (.pdf,
// .html/.htm, .json for previously exported extraction documents) and by
// content when the extension says nothing; unrecognized files are read as
// PDF.
func OpenWith(location string, opts Options) (Source, error) {
	if isURL(location) {
		body, err := download(location, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, location, err)
		}
		return fromBytes(body, location)
	}

	format, err := detector.Detect(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	switch format {
	case detector.FormatHTML:
		return OpenHTML(location)
	case detector.FormatDocument:
		return OpenDocument(location)
	default:
		return OpenPDF(location)
	}
}

func isURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

func download(location string, opts Options) ([]byte, error) {
	if opts.Cache != nil {
		if body, ok := opts.Cache.Get(location); ok {
			return body, nil
		}
	}
	f := opts.Fetcher
	if f == nil {
		f = fetcher.NewFetcher()
	}
	body, err := f.GetDocument(location)
	if err != nil {
		return nil, err
	}
	if opts.Cache != nil {
		// A failed cache write only costs a refetch next time.
		_ = opts.Cache.Set(location, body)
	}
	return body, nil
}

func fromBytes(data []byte, location string) (Source, error) {
	switch detector.Sniff(data) {
	case detector.FormatPDF:
		return NewPDF(data, location)
	case detector.FormatDocument:
		return ParseDocument(data, location)
	default:
		return NewHTML(data, location)
	}
}

func pageError(n int, err error) error {
	if err == nil {
		return fmt.Errorf("%w: page %d", ErrPageRead, n)
	}
	return fmt.Errorf("%w: page %d: %v", ErrPageRead, n, err)
}

func checkPage(n, count int) error {
	if n < 1 || n > count {
		return pageError(n, fmt.Errorf("out of range 1..%d", count))
	}
	return nil
}
