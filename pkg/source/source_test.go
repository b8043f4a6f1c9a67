package source

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kitsanannam-hue/esaan-dataset/models"
	"github.com/kitsanannam-hue/esaan-dataset/pkg/caching"
)

const pagedHTML = `<html><body>
<div class="page"><h1>Chapter 1: Introduction</h1><p>The khaen is a
  free-reed mouth organ.</p></div>
<div class="page"><p>Jazz <b>improvisation</b> over a ii-V-I.</p><ul><li><p>nested</p></li></ul></div>
</body></html>`

func TestMemory(t *testing.T) {
	src := NewMemory("one", "two", "three").Fail(2)

	count, err := src.PageCount()
	if err != nil || count != 3 {
		t.Fatalf("PageCount() = %d, %v; want 3", count, err)
	}
	if text, err := src.PageText(1); err != nil || text != "one" {
		t.Errorf("PageText(1) = %q, %v", text, err)
	}
	if _, err := src.PageText(2); !errors.Is(err, ErrPageRead) {
		t.Errorf("PageText(2) error = %v, want ErrPageRead", err)
	}
	for _, n := range []int{0, 4} {
		if _, err := src.PageText(n); !errors.Is(err, ErrPageRead) {
			t.Errorf("PageText(%d) error = %v, want ErrPageRead", n, err)
		}
	}
}

func TestNewHTMLPages(t *testing.T) {
	h, err := NewHTML([]byte(pagedHTML), "https://example.com/thesis.html")
	if err != nil {
		t.Fatalf("NewHTML() error: %v", err)
	}
	count, _ := h.PageCount()
	if count != 2 {
		t.Fatalf("PageCount() = %d, want 2", count)
	}

	first, _ := h.PageText(1)
	want := "Chapter 1: Introduction\nThe khaen is a free-reed mouth organ."
	if first != want {
		t.Errorf("PageText(1) = %q, want %q", first, want)
	}

	second, _ := h.PageText(2)
	if !strings.Contains(second, "Jazz improvisation over a ii-V-I.") {
		t.Errorf("PageText(2) = %q", second)
	}
	if strings.Count(second, "nested") != 1 {
		t.Errorf("nested block rendered more than once: %q", second)
	}
}

func TestNewHTMLWithoutPageMarkers(t *testing.T) {
	raw := `<html><head><title>Lai Yai</title></head><body>
<nav><a href="/">Home</a></nav>
<article><h1>Lai Yai in the Khaen Repertoire</h1>
<p>The khaen player sustains a drone while the melody moves through the lai yai mode, returning again and again to the same pitches.</p>
<p>Jazz musicians who borrow this mode tend to treat the drone as a pedal point and improvise over it with extended harmony.</p>
<p>Both traditions rely on long cycles of repetition, which gives the fusion repertoire its hypnotic character.</p>
<p>Recordings from the northeast show the same drone tuned a little differently from village to village, and arrangers working with jazz ensembles usually retune the bass to match the khaen rather than the other way round.</p>
</article></body></html>`

	h, err := NewHTML([]byte(raw), "https://example.com/lai-yai.html")
	if err != nil {
		t.Fatalf("NewHTML() error: %v", err)
	}
	count, _ := h.PageCount()
	if count != 1 {
		t.Fatalf("PageCount() = %d, want 1", count)
	}
	text, _ := h.PageText(1)
	if !strings.Contains(text, "pedal point") {
		t.Errorf("PageText(1) = %q, want the article body", text)
	}
}

func TestOpenHTMLMissing(t *testing.T) {
	_, err := OpenHTML(filepath.Join(t.TempDir(), "nope.html"))
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("error = %v, want ErrSourceUnavailable", err)
	}
}

func writeDocument(t *testing.T, doc models.ExtractedDocument) string {
	t.Helper()
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "extracted.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestOpenDocument(t *testing.T) {
	path := writeDocument(t, models.ExtractedDocument{
		Metadata:      models.DocumentMetadata{SourceFile: "thesis.pdf", TotalPages: 4},
		ExtractedText: map[string]string{"1": "first", "3": "third", "x": "ignored"},
	})

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer src.Close()

	count, _ := src.PageCount()
	if count != 4 {
		t.Errorf("PageCount() = %d, want 4", count)
	}

	tests := []struct {
		page    int
		want    string
		wantErr bool
	}{
		{1, "first", false},
		{2, "", true},
		{3, "third", false},
		{4, "", true},
	}
	for _, tt := range tests {
		got, err := src.PageText(tt.page)
		if (err != nil) != tt.wantErr {
			t.Errorf("PageText(%d) error = %v, wantErr %v", tt.page, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("PageText(%d) = %q, want %q", tt.page, got, tt.want)
		}
	}
}

func TestOpenDocumentEmpty(t *testing.T) {
	path := writeDocument(t, models.ExtractedDocument{})
	if _, err := OpenDocument(path); !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("error = %v, want ErrSourceUnavailable", err)
	}
}

func TestOpenPDFUnavailable(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "broken.pdf")
	if err := os.WriteFile(garbage, []byte("not a pdf"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{filepath.Join(dir, "missing.pdf"), garbage} {
		if _, err := Open(path); !errors.Is(err, ErrSourceUnavailable) {
			t.Errorf("Open(%s) error = %v, want ErrSourceUnavailable", filepath.Base(path), err)
		}
	}
}

func TestOpenURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(pagedHTML))
	}))
	defer srv.Close()

	src, err := Open(srv.URL + "/thesis")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if count, _ := src.PageCount(); count != 2 {
		t.Errorf("PageCount() = %d, want 2", count)
	}

	if _, err := Open(srv.URL + "/missing"); !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("error = %v, want ErrSourceUnavailable", err)
	}
}

func TestOpenWithCacheServesRepeatDownloads(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write([]byte(pagedHTML))
	}))
	defer srv.Close()

	cache, err := caching.NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}
	opts := Options{Cache: cache}

	for i := 0; i < 2; i++ {
		src, err := OpenWith(srv.URL+"/thesis", opts)
		if err != nil {
			t.Fatalf("OpenWith() error: %v", err)
		}
		if count, _ := src.PageCount(); count != 2 {
			t.Errorf("PageCount() = %d, want 2", count)
		}
	}
	if requests != 1 {
		t.Errorf("server saw %d requests, want 1", requests)
	}
}

func TestOpenSniffsExtensionlessFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export")
	if err := os.WriteFile(path, []byte(pagedHTML), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if _, ok := src.(*HTML); !ok {
		t.Errorf("Open() returned %T, want *HTML", src)
	}
}

func TestNewPDFRejectsGarbage(t *testing.T) {
	if _, err := NewPDF([]byte("%PDF-1.4 truncated"), "memory.pdf"); !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("error = %v, want ErrSourceUnavailable", err)
	}
}
