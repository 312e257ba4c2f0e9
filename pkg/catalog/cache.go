package catalog

import "sync"

// IndexCache holds one built Index per catalog version. Concurrent matching
// runs share the read-only Index for their version; a catalog change shows
// up as a new version and triggers a wholesale rebuild on first use.
type IndexCache struct {
	mu      sync.RWMutex
	indexes map[string]*Index
}

// NewIndexCache creates an empty index cache.
func NewIndexCache() *IndexCache {
	return &IndexCache{indexes: make(map[string]*Index)}
}

// Get returns the cached index for the catalog's current version, building
// it when absent. The returned index is safe to share across goroutines.
func (c *IndexCache) Get(cat *Catalog) *Index {
	version := cat.Version()

	c.mu.RLock()
	idx, ok := c.indexes[version]
	c.mu.RUnlock()
	if ok {
		return idx
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another goroutine may have built it while we waited for the lock.
	if idx, ok := c.indexes[version]; ok {
		return idx
	}
	idx = Build(cat)
	c.indexes[version] = idx
	return idx
}

// Evict drops the cached index for a version, if present.
func (c *IndexCache) Evict(version string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.indexes, version)
}

// Len returns the number of cached indexes.
func (c *IndexCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.indexes)
}
