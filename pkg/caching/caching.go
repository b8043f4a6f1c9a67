package caching

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kitsanannam-hue/esaan-dataset/pkg/storage"
)

// Cache provides a simple file-based cache with a TTL.
type Cache struct {
	path  string
	ttl   time.Duration // negative never expires
	store *storage.Storage
}

// NewCache creates a new Cache instance.
// The cache path will be created if it doesn't exist.
func NewCache(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(path, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{
		path:  path,
		ttl:   ttl,
		store: &storage.Storage{},
	}, nil
}

// key generates a SHA256 hash of the location to use as a filename.
func (c *Cache) key(location string) string {
	hash := sha256.Sum256([]byte(location))
	return fmt.Sprintf("%x", hash)
}

// Get retrieves an item from the cache.
// It returns the data and true if the item is found and not expired.
// Otherwise, it returns nil and false.
func (c *Cache) Get(location string) ([]byte, bool) {
	filePath := filepath.Join(c.path, c.key(location))

	stats, err := c.store.GetFileStats(filePath)
	if err != nil {
		return nil, false // Cache miss
	}

	if c.ttl >= 0 && time.Since(stats.ModTime) > c.ttl {
		return nil, false // Cache miss (expired)
	}

	data, err := c.store.ReadFile(filePath)
	if err != nil {
		return nil, false // Cache miss (read error)
	}

	return data, true // Cache hit
}

// Set adds an item to the cache.
func (c *Cache) Set(location string, data []byte) error {
	filePath := filepath.Join(c.path, c.key(location))
	if err := c.store.SaveFile(filePath, data); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}
