// Package cache implements a content-addressed build artifact cache.
// The dev server uses it to skip WASM rebuilds when no source file
// changed between reload cycles.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Entry describes one cached artifact.
type Entry struct {
	Key        string    `json:"key"`
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	Created    time.Time `json:"created"`
	LastAccess time.Time `json:"last_access"`
}

type index struct {
	Version string            `json:"version"`
	Entries map[string]*Entry `json:"entries"`
	Updated time.Time         `json:"updated"`
}

// Config holds cache configuration.
type Config struct {
	Dir        string        // cache directory (default: os.UserCacheDir()/svgpan)
	MaxEntries int           // entries kept after pruning (default: 32)
	MaxAge     time.Duration // entries older than this are pruned (default: 7 days)
}

// DefaultConfig returns the default cache configuration.
func DefaultConfig() Config {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return Config{
		Dir:        filepath.Join(dir, "svgpan"),
		MaxEntries: 32,
		MaxAge:     7 * 24 * time.Hour,
	}
}

// Cache is a durable key→bytes store with a JSON index.
type Cache struct {
	mu         sync.Mutex
	dir        string
	idx        *index
	maxEntries int
	maxAge     time.Duration
}

const indexVersion = "1"

// New opens (or creates) the cache at cfg.Dir.
func New(cfg Config) (*Cache, error) {
	if cfg.Dir == "" {
		cfg = DefaultConfig()
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 32
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = 7 * 24 * time.Hour
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create directory: %w", err)
	}
	c := &Cache{
		dir:        cfg.Dir,
		maxEntries: cfg.MaxEntries,
		maxAge:     cfg.MaxAge,
	}
	c.idx = c.loadIndex()
	return c, nil
}

func (c *Cache) loadIndex() *index {
	fresh := &index{Version: indexVersion, Entries: map[string]*Entry{}}
	data, err := os.ReadFile(filepath.Join(c.dir, "index.json"))
	if err != nil {
		return fresh
	}
	var idx index
	if err := json.Unmarshal(data, &idx); err != nil || idx.Version != indexVersion {
		return fresh
	}
	if idx.Entries == nil {
		idx.Entries = map[string]*Entry{}
	}
	return &idx
}

func (c *Cache) saveIndex() {
	c.idx.Updated = time.Now()
	data, err := json.MarshalIndent(c.idx, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(filepath.Join(c.dir, "index.json"), data, 0o644)
}

// Key derives a cache key from the contents of the given files. The
// file list is sorted first so the key is stable across directory walk
// order.
func Key(files []string) (string, error) {
	sorted := make([]string, len(files))
	copy(sorted, files)
	sort.Strings(sorted)

	h := sha256.New()
	for _, path := range sorted {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("cache: hash %s: %w", path, err)
		}
		io.WriteString(h, path)
		_, err = io.Copy(h, f)
		f.Close()
		if err != nil {
			return "", fmt.Errorf("cache: hash %s: %w", path, err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Get returns the cached artifact for key, if present.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.idx.Entries[key]
	if !ok {
		return nil, false
	}
	data, err := os.ReadFile(entry.Path)
	if err != nil {
		// Artifact vanished under us; drop the stale entry.
		delete(c.idx.Entries, key)
		c.saveIndex()
		return nil, false
	}
	entry.LastAccess = time.Now()
	c.saveIndex()
	return data, true
}

// Put stores an artifact under key and prunes old entries.
func (c *Cache) Put(key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	path := filepath.Join(c.dir, key+".bin")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cache: write artifact: %w", err)
	}
	now := time.Now()
	c.idx.Entries[key] = &Entry{
		Key:        key,
		Path:       path,
		Size:       int64(len(data)),
		Created:    now,
		LastAccess: now,
	}
	c.prune()
	c.saveIndex()
	return nil
}

// prune drops entries past MaxAge, then the least recently used entries
// past MaxEntries. Lock held.
func (c *Cache) prune() {
	cutoff := time.Now().Add(-c.maxAge)
	for key, e := range c.idx.Entries {
		if e.LastAccess.Before(cutoff) {
			os.Remove(e.Path)
			delete(c.idx.Entries, key)
		}
	}
	if len(c.idx.Entries) <= c.maxEntries {
		return
	}
	entries := make([]*Entry, 0, len(c.idx.Entries))
	for _, e := range c.idx.Entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LastAccess.Before(entries[j].LastAccess)
	})
	for _, e := range entries[:len(entries)-c.maxEntries] {
		os.Remove(e.Path)
		delete(c.idx.Entries, e.Key)
	}
}

// Len returns the number of cached artifacts.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.idx.Entries)
}
