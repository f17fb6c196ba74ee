package storefront

import (
	"context"
	"log"
	"slices"
	"sync"
	"time"
)

// Cached serves a catalog's menu from memory and reloads it once TTL has
// passed. A failed reload keeps serving the last menu it loaded.
type Cached struct {
	Catalog Catalog
	TTL     time.Duration

	mu     sync.Mutex
	items  []MenuItem
	loaded time.Time
}

func (c *Cached) Menu(ctx context.Context) ([]MenuItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded.IsZero() && time.Since(c.loaded) < c.TTL {
		return slices.Clone(c.items), nil
	}
	items, err := c.Catalog.Menu(ctx)
	if err != nil {
		if c.loaded.IsZero() {
			return nil, err
		}
		log.Printf("storefront: reload menu: %v (serving cached)", err)
		return slices.Clone(c.items), nil
	}
	c.items, c.loaded = items, time.Now()
	return slices.Clone(items), nil
}
