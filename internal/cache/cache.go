// Package cache holds cleaned tables for the lifetime of the process.
// Nothing is written to disk.
package cache

import (
	"fmt"
	"sync"
)

// Key identifies one cached result. An entry is reused only while the
// content fingerprint of its source file is unchanged.
type Key struct {
	Source      string
	Path        string
	Fingerprint string
}

func (k Key) String() string {
	fp := k.Fingerprint
	if len(fp) > 12 {
		fp = fp[:12]
	}
	return fmt.Sprintf("%s:%s@%s", k.Source, k.Path, fp)
}

type slot struct {
	source string
	path   string
}

type entry struct {
	fingerprint string
	value       any
}

// Stats counts cache lookups.
type Stats struct {
	Hits    int
	Misses  int
	Entries int
}

// Cache is an in-memory map from Key to a computed value. A nil *Cache is
// valid and never holds anything. Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[slot]entry
	hits    int
	misses  int
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[slot]entry)}
}

// Get returns the value stored under key. A stored value for the same
// source and path but a different fingerprint is a miss.
func (c *Cache) Get(key Key) (any, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[slot{key.Source, key.Path}]
	if !ok || e.fingerprint != key.Fingerprint {
		c.misses++
		return nil, false
	}
	c.hits++
	return e.value, true
}

// Set stores value under key, replacing any entry for the same source and
// path.
func (c *Cache) Set(key Key, value any) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[slot{key.Source, key.Path}] = entry{fingerprint: key.Fingerprint, value: value}
}

// Invalidate removes the entry for source and path, whatever its
// fingerprint.
func (c *Cache) Invalidate(source, path string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, slot{source, path})
}

// Clear removes every entry.
func (c *Cache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[slot]entry)
}

// Stats returns the lookup counters and entry count.
func (c *Cache) Stats() Stats {
	if c == nil {
		return Stats{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Hits: c.hits, Misses: c.misses, Entries: len(c.entries)}
}

// GetOrLoad returns the cached value for key, or calls load and stores its
// result. Errors are returned as-is and never cached. hit reports whether
// load was skipped.
func GetOrLoad[T any](c *Cache, key Key, load func() (T, error)) (value T, hit bool, err error) {
	if v, ok := c.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, true, nil
		}
	}

	value, err = load()
	if err != nil {
		var zero T
		return zero, false, err
	}
	c.Set(key, value)
	return value, false, nil
}
