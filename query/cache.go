package query

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// DefaultCacheSize is the capacity used by NewCache when size <= 0
const DefaultCacheSize = 256

type cacheEntry struct {
	text  string
	query *SPLQuery
}

// Cache maps query text to parsed queries so that repeated queries are parsed
// once. When full, the whole cache is dropped rather than tracking entry age.
//
// Returned queries are shared and must not be modified. All methods are safe
// for concurrent use.
type Cache struct {
	mu    sync.RWMutex
	items map[uint64]cacheEntry
	max   int
}

// NewCache creates a cache holding at most size parsed queries
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Cache{
		items: make(map[uint64]cacheEntry, size),
		max:   size,
	}
}

// Parse returns the cached query for text, parsing it on a miss. Failed parses
// are not cached.
func (c *Cache) Parse(text string) (*SPLQuery, error) {
	if q, ok := c.get(text); ok {
		return q, nil
	}
	q, err := Parse(text)
	if err != nil {
		return nil, err
	}
	c.put(text, q)
	return q, nil
}

// Len returns the number of cached queries
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Cache) get(text string) (*SPLQuery, bool) {
	c.mu.RLock()
	e, ok := c.items[xxhash.Sum64String(text)]
	c.mu.RUnlock()
	if !ok || e.text != text {
		return nil, false
	}
	return e.query, true
}

func (c *Cache) put(text string, q *SPLQuery) {
	c.mu.Lock()
	if len(c.items) >= c.max {
		c.items = make(map[uint64]cacheEntry, c.max)
	}
	c.items[xxhash.Sum64String(text)] = cacheEntry{text: text, query: q}
	c.mu.Unlock()
}
