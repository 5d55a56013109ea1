// Package cache provides a small bounded keyed cache, used by the service
// layer to memoize summary computations per filter.
package cache

import "sync"

// Cache is a bounded map with FIFO eviction. Entries never expire on their
// own; callers invalidate explicitly via Purge when the underlying data
// changes.
type Cache[T any] struct {
	mu      sync.Mutex
	maxSize int
	items   map[string]T
	keys    []string // insertion order, oldest first
}

func New[T any](maxSize int) *Cache[T] {
	if maxSize < 1 {
		maxSize = 1
	}
	return &Cache[T]{
		maxSize: maxSize,
		items:   make(map[string]T),
	}
}

// Get retrieves a value from the cache.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	return v, ok
}

// Put stores a value, evicting the oldest entry when the cache is full.
func (c *Cache[T]) Put(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; exists {
		c.items[key] = value
		return
	}

	if len(c.keys) >= c.maxSize {
		oldest := c.keys[0]
		c.keys = c.keys[1:]
		delete(c.items, oldest)
	}

	c.items[key] = value
	c.keys = append(c.keys, key)
}

// Purge drops every entry.
func (c *Cache[T]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]T)
	c.keys = nil
}

// Size returns the current number of entries.
func (c *Cache[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
