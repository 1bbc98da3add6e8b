package planner

import (
	"sync"
	"time"
)

// InMemoryCatalogCache is a simple in-memory implementation of
// CatalogCache. Thread-safe for concurrent access.
type InMemoryCatalogCache struct {
	catalog  *Catalog
	cachedAt time.Time
	config   CacheConfig
	mu       sync.RWMutex
	isValid  bool
}

// NewInMemoryCatalogCache creates a new in-memory catalog cache
func NewInMemoryCatalogCache(config CacheConfig) *InMemoryCatalogCache {
	return &InMemoryCatalogCache{
		config:  config,
		isValid: false,
	}
}

// Get retrieves the cached catalog.
// Returns nil if the cache is invalid or expired.
func (c *InMemoryCatalogCache) Get() *Catalog {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.isValid {
		return nil
	}

	if c.config.TTL > 0 && time.Since(c.cachedAt) > c.config.TTL {
		return nil
	}

	// Return a copy of the slices so callers cannot mutate the cache
	cp := &Catalog{
		ProjectTypes: make([]*ProjectType, len(c.catalog.ProjectTypes)),
		Templates:    make([]*Template, len(c.catalog.Templates)),
	}
	copy(cp.ProjectTypes, c.catalog.ProjectTypes)
	copy(cp.Templates, c.catalog.Templates)
	return cp
}

// Set stores a catalog in cache
func (c *InMemoryCatalogCache) Set(catalog *Catalog) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cp := &Catalog{
		ProjectTypes: make([]*ProjectType, len(catalog.ProjectTypes)),
		Templates:    make([]*Template, len(catalog.Templates)),
	}
	copy(cp.ProjectTypes, catalog.ProjectTypes)
	copy(cp.Templates, catalog.Templates)

	c.catalog = cp
	c.cachedAt = time.Now()
	c.isValid = true
}

// Invalidate clears the cache
func (c *InMemoryCatalogCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.isValid = false
	c.catalog = nil
}

// IsValid returns true if cache contains valid data
func (c *InMemoryCatalogCache) IsValid() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.isValid {
		return false
	}

	if c.config.TTL > 0 {
		return time.Since(c.cachedAt) <= c.config.TTL
	}

	return true
}
