package postseries

import (
	"io/fs"
	"sync"
	"time"

	"github.com/eringen/postseries/content"
)

// CatalogCache holds the catalog the preview server answers from. The
// catalog itself is immutable; a reload swaps in a new one and a failed
// reload leaves the previous one in place.
type CatalogCache struct {
	mu      sync.RWMutex
	catalog *content.Catalog
	loaded  time.Time
	fsys    fs.FS
	opts    content.Options
}

// NewCatalogCache creates a CatalogCache that builds catalogs from fsys.
func NewCatalogCache(fsys fs.FS, opts content.Options) *CatalogCache {
	return &CatalogCache{fsys: fsys, opts: opts}
}

// Invalidate drops the current catalog so the next Get rebuilds it.
func (c *CatalogCache) Invalidate() {
	c.mu.Lock()
	c.catalog = nil
	c.mu.Unlock()
}

// Reload builds a fresh catalog and makes it current.
func (c *CatalogCache) Reload() (*content.Catalog, error) {
	cat, err := content.Build(c.fsys, c.opts)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.catalog = cat
	c.loaded = time.Now()
	c.mu.Unlock()
	return cat, nil
}

// Get returns the current catalog, building it on first use.
// It tries a read lock first; only takes a write lock if a build is needed.
func (c *CatalogCache) Get() (*content.Catalog, error) {
	c.mu.RLock()
	if c.catalog != nil {
		cat := c.catalog
		c.mu.RUnlock()
		return cat, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.catalog != nil {
		return c.catalog, nil
	}
	cat, err := content.Build(c.fsys, c.opts)
	if err != nil {
		return nil, err
	}
	c.catalog = cat
	c.loaded = time.Now()
	return cat, nil
}

// LoadedAt reports when the current catalog was built. It is zero before
// the first successful build.
func (c *CatalogCache) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}
