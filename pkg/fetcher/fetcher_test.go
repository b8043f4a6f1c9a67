package fetcher

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("<p>lai yai</p>"))
		case "/slow":
			time.Sleep(200 * time.Millisecond)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	f := NewFetcher()
	body, err := f.GetDocument(srv.URL + "/ok")
	if err != nil {
		t.Fatalf("GetDocument() error: %v", err)
	}
	if string(body) != "<p>lai yai</p>" {
		t.Errorf("body = %q", body)
	}

	if _, err := f.GetDocument(srv.URL + "/broken"); err == nil {
		t.Error("expected error for 500 response")
	}

	short := NewFetcherWithClient(&http.Client{Timeout: 20 * time.Millisecond})
	if _, err := short.GetDocument(srv.URL + "/slow"); err == nil {
		t.Error("expected timeout error")
	}
}
