package asset

import "sync"

type cachedFile struct {
	data   []byte
	access uint64
}

// fileCache is an LRU of decompressed files bounded by total bytes.
// One mutex covers lookup, backfill and eviction; it is never held across I/O.
type fileCache struct {
	mu      sync.Mutex
	budget  int64
	total   int64
	counter uint64
	gen     uint64
	entries map[string]*cachedFile

	hits   uint64
	misses uint64
}

func newFileCache(budget int64) *fileCache {
	return &fileCache{
		budget:  budget,
		entries: make(map[string]*cachedFile),
	}
}

// get returns a cached file and refreshes its access counter.
func (c *fileCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	c.counter++
	e.access = c.counter
	c.hits++
	return e.data, true
}

// generation changes on every clear; a put carrying an older generation is
// dropped so a load racing with an overlay change cannot cache stale bytes.
func (c *fileCache) generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// put inserts data, evicting least recently used entries until it fits.
// Files of half the budget or more are not cached.
func (c *fileCache) put(key string, data []byte, gen uint64) bool {
	size := int64(len(data))
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen || size == 0 || size >= c.budget/2 {
		return false
	}
	if old, ok := c.entries[key]; ok {
		c.total -= int64(len(old.data))
		delete(c.entries, key)
	}
	for c.total+size > c.budget && len(c.entries) > 0 {
		c.evictOldest()
	}
	c.counter++
	c.entries[key] = &cachedFile{data: data, access: c.counter}
	c.total += size
	return true
}

func (c *fileCache) evictOldest() {
	var (
		oldestKey string
		oldest    uint64
		found     bool
	)
	for k, e := range c.entries {
		if !found || e.access < oldest {
			oldestKey, oldest, found = k, e.access, true
		}
	}
	c.total -= int64(len(c.entries[oldestKey].data))
	delete(c.entries, oldestKey)
}

func (c *fileCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
	c.total = 0
	c.counter = 0
	c.gen++
}

// CacheStats is a snapshot of the decompression cache.
type CacheStats struct {
	Hits   uint64
	Misses uint64
	Files  int
	Bytes  int64
	Budget int64
}

// HitRate returns hits / (hits + misses), or 0 before any lookup.
func (s CacheStats) HitRate() float64 {
	if s.Hits+s.Misses == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Hits+s.Misses)
}

func (c *fileCache) stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		Hits:   c.hits,
		Misses: c.misses,
		Files:  len(c.entries),
		Bytes:  c.total,
		Budget: c.budget,
	}
}
