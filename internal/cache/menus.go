// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/store"
)

// MenuWithItems pairs a menu with its flat item rows for caching.
type MenuWithItems struct {
	Menu  model.Menu
	Items []model.MenuItem
}

// MenuCache provides cached access to navigation menus. All menus are
// loaded in one pass and kept until a write invalidates the cache.
type MenuCache struct {
	queries *store.Queries
	mu      sync.RWMutex
	menus   map[string]*MenuWithItems // slug -> menu with items
	loaded  bool

	hits   atomic.Int64
	misses atomic.Int64
}

// NewMenuCache creates a new menu cache.
func NewMenuCache(queries *store.Queries) *MenuCache {
	return &MenuCache{
		queries: queries,
		menus:   make(map[string]*MenuWithItems),
	}
}

// Get retrieves a menu by slug. Returns nil without error when the
// slug is unknown.
func (c *MenuCache) Get(ctx context.Context, slug string) (*MenuWithItems, error) {
	c.mu.RLock()
	if c.loaded {
		menu, ok := c.menus[slug]
		c.mu.RUnlock()
		if ok {
			c.hits.Add(1)
			return menu, nil
		}
		c.misses.Add(1)
		return nil, nil
	}
	c.mu.RUnlock()

	if err := c.loadAll(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if menu, ok := c.menus[slug]; ok {
		c.hits.Add(1)
		return menu, nil
	}
	c.misses.Add(1)
	return nil, nil
}

// GetByID retrieves a menu by id.
func (c *MenuCache) GetByID(ctx context.Context, id int64) (*MenuWithItems, error) {
	c.mu.RLock()
	if !c.loaded {
		c.mu.RUnlock()
		if err := c.loadAll(ctx); err != nil {
			return nil, err
		}
		c.mu.RLock()
	}
	defer c.mu.RUnlock()

	for _, menu := range c.menus {
		if menu.Menu.ID == id {
			c.hits.Add(1)
			return menu, nil
		}
	}
	c.misses.Add(1)
	return nil, nil
}

// All returns every cached menu.
func (c *MenuCache) All(ctx context.Context) ([]*MenuWithItems, error) {
	c.mu.RLock()
	if !c.loaded {
		c.mu.RUnlock()
		if err := c.loadAll(ctx); err != nil {
			return nil, err
		}
		c.mu.RLock()
	}
	defer c.mu.RUnlock()

	result := make([]*MenuWithItems, 0, len(c.menus))
	for _, menu := range c.menus {
		result = append(result, menu)
	}
	return result, nil
}

func (c *MenuCache) loadAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.loaded {
		return nil
	}

	menus, err := c.queries.ListMenus(ctx)
	if err != nil {
		return err
	}

	c.menus = make(map[string]*MenuWithItems, len(menus))

	for _, menu := range menus {
		items, err := c.queries.ListMenuItems(ctx, menu.ID)
		if err != nil {
			return err
		}

		c.menus[menu.Slug] = &MenuWithItems{
			Menu:  menu,
			Items: items,
		}
	}

	c.loaded = true
	return nil
}

// Invalidate clears the cache, forcing a reload on next access. Called
// after any menu or menu item write.
func (c *MenuCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
	c.menus = make(map[string]*MenuWithItems)
}

// Preload loads all menus into cache. Useful on startup.
func (c *MenuCache) Preload(ctx context.Context) error {
	return c.loadAll(ctx)
}

// Stats returns cache statistics.
func (c *MenuCache) Stats() CacheStats {
	hits := c.hits.Load()
	misses := c.misses.Load()
	total := hits + misses

	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}

	c.mu.RLock()
	items := len(c.menus)
	c.mu.RUnlock()

	return CacheStats{Hits: hits, Misses: misses, Items: items, HitRate: hitRate}
}
