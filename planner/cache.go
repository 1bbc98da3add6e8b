package planner

import "time"

// Catalog is the cached read path: every active project type plus the
// full template catalog, loaded together so a plan or timeline request
// never sees the two out of sync.
type Catalog struct {
	ProjectTypes []*ProjectType
	Templates    []*Template
}

// ProjectType returns the cataloged project type with the given id,
// or nil if it is not present
func (c *Catalog) ProjectType(id string) *ProjectType {
	for _, pt := range c.ProjectTypes {
		if pt.ID == id {
			return pt
		}
	}
	return nil
}

// CatalogCache provides an abstraction for caching the catalog.
// This allows swapping between in-memory, Redis, or other caching
// implementations.
type CatalogCache interface {
	// Get retrieves the cached catalog, returns nil on miss or expiry
	Get() *Catalog

	// Set stores a catalog in cache
	Set(c *Catalog)

	// Invalidate clears the cache, forcing a refresh on next Get
	Invalidate()

	// IsValid returns true if cache has valid data
	IsValid() bool
}

// CacheConfig holds configuration for cache behavior
type CacheConfig struct {
	// TTL is the time-to-live for cached entries.
	// Set to 0 for no expiration (manual invalidation only).
	TTL time.Duration
}

// DefaultCacheConfig returns sensible defaults for catalog caching
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL: 0, // no TTL, only invalidate on mutations
	}
}
