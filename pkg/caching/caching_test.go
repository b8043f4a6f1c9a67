package caching

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCacheRoundTrip(t *testing.T) {
	c, err := NewCache(filepath.Join(t.TempDir(), "cache"), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() error: %v", err)
	}

	if _, ok := c.Get("https://example.com/thesis.html"); ok {
		t.Fatal("expected miss on empty cache")
	}
	if err := c.Set("https://example.com/thesis.html", []byte("<html></html>")); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	data, ok := c.Get("https://example.com/thesis.html")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if string(data) != "<html></html>" {
		t.Errorf("Get() = %q", data)
	}
	if _, ok := c.Get("https://example.com/other.html"); ok {
		t.Error("expected miss for a different location")
	}
}

func TestCacheExpiry(t *testing.T) {
	tests := []struct {
		name string
		ttl  time.Duration
		hit  bool
	}{
		{"expired", time.Minute, false},
		{"fresh", 3 * time.Hour, true},
		{"never expires", -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCache(t.TempDir(), tt.ttl)
			if err != nil {
				t.Fatalf("NewCache() error: %v", err)
			}
			if err := c.Set("doc", []byte("x")); err != nil {
				t.Fatalf("Set() error: %v", err)
			}
			old := time.Now().Add(-2 * time.Hour)
			if err := os.Chtimes(filepath.Join(c.path, c.key("doc")), old, old); err != nil {
				t.Fatalf("Chtimes() error: %v", err)
			}
			if _, ok := c.Get("doc"); ok != tt.hit {
				t.Errorf("Get() hit = %v, want %v", ok, tt.hit)
			}
		})
	}
}
