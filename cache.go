package wordiff

import (
	"container/list"
	"sync"
)

// Key identifies a cached alignment.
type Key struct {
	Original    string
	Transformed string
}

// KeyFunc derives a cache key from the two texts. The default uses the
// exact pair, so any change to either string misses the cache.
type KeyFunc func(original, transformed string) Key

func exactKey(original, transformed string) Key {
	return Key{Original: original, Transformed: transformed}
}

type cacheEntry struct {
	key      Key
	segments []Segment
}

// Cache is a bounded least-recently-used store of alignment results. It is
// safe for concurrent use. A Cache of size 1 recomputes whenever either
// text changes.
type Cache struct {
	mu      sync.Mutex
	size    int
	keyFunc KeyFunc
	order   *list.List // front is most recently used
	entries map[Key]*list.Element
}

// NewCache creates a cache holding at most size results. A size below 1 is
// treated as 1. A nil keyFunc means exact-pair keys.
func NewCache(size int, keyFunc KeyFunc) *Cache {
	if size < 1 {
		size = 1
	}
	if keyFunc == nil {
		keyFunc = exactKey
	}
	return &Cache{
		size:    size,
		keyFunc: keyFunc,
		order:   list.New(),
		entries: make(map[Key]*list.Element, size),
	}
}

// Get returns the cached segments for the pair, if present.
func (c *Cache) Get(original, transformed string) ([]Segment, bool) {
	key := c.keyFunc(original, transformed)

	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).segments, true
}

// Put stores segments for the pair, evicting the least recently used entry
// when full.
func (c *Cache) Put(original, transformed string, segments []Segment) {
	key := c.keyFunc(original, transformed)

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).segments = segments
		c.order.MoveToFront(el)
		return
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, segments: segments})
	for c.order.Len() > c.size {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

// Invalidate drops the entry for the pair. It reports whether one existed.
func (c *Cache) Invalidate(original, transformed string) bool {
	key := c.keyFunc(original, transformed)

	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return false
	}
	c.order.Remove(el)
	delete(c.entries, key)
	return true
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	clear(c.entries)
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
