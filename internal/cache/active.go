// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/campuscms/campuscms/internal/model"
)

// Active-record cache keys. Per-family winners live under
// "active:<family>"; the assembled site context under "sitecontext".
const (
	activeKeyPrefix = "active:"
	SiteContextKey  = "sitecontext"
)

// ActiveKey returns the cache key holding a family's active record.
func ActiveKey(f model.Family) string {
	return activeKeyPrefix + string(f)
}

// ActiveRecordCache caches the resolved active record of each
// singleton-active family, plus the composite site context derived from
// them. Any write to a family invalidates both that family's entry and
// the composite.
type ActiveRecordCache struct {
	cache Cacher
	ttl   time.Duration
}

// NewActiveRecordCache creates an active-record cache over the backend.
func NewActiveRecordCache(cache Cacher, ttl time.Duration) *ActiveRecordCache {
	return &ActiveRecordCache{cache: cache, ttl: ttl}
}

// Get unmarshals a family's cached active record into dst. Returns
// false on a miss.
func (c *ActiveRecordCache) Get(ctx context.Context, f model.Family, dst any) bool {
	data, err := c.cache.Get(ctx, ActiveKey(f))
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

// Set stores a family's resolved active record.
func (c *ActiveRecordCache) Set(ctx context.Context, f model.Family, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, ActiveKey(f), data, c.ttl)
}

// Invalidate drops a family's cached record and the composite site
// context. Called after any write to the family.
func (c *ActiveRecordCache) Invalidate(ctx context.Context, f model.Family) {
	_ = c.cache.Delete(ctx, ActiveKey(f))
	_ = c.cache.Delete(ctx, SiteContextKey)
}

// InvalidateSiteContext drops only the composite site context. Called
// after writes to content that feeds the composite but belongs to no
// family, such as menus or notifications.
func (c *ActiveRecordCache) InvalidateSiteContext(ctx context.Context) {
	_ = c.cache.Delete(ctx, SiteContextKey)
}

// InvalidateAll drops every family's cached record and the composite.
func (c *ActiveRecordCache) InvalidateAll(ctx context.Context) {
	for _, f := range model.PanelFamilies {
		_ = c.cache.Delete(ctx, ActiveKey(f))
	}
	for _, f := range []model.Family{
		model.FamilyUtilityBar, model.FamilyHeaderInfo, model.FamilyNavbarInfo,
		model.FamilyCollegeInfo, model.FamilyDirectorMessage, model.FamilyPrincipalMessage,
		model.FamilyVisionMission, model.FamilyHeroCarousel,
	} {
		_ = c.cache.Delete(ctx, ActiveKey(f))
	}
	_ = c.cache.Delete(ctx, SiteContextKey)
}

// GetSiteContext unmarshals the cached composite site context into dst.
func (c *ActiveRecordCache) GetSiteContext(ctx context.Context, dst any) bool {
	data, err := c.cache.Get(ctx, SiteContextKey)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

// SetSiteContext stores the assembled composite site context.
func (c *ActiveRecordCache) SetSiteContext(ctx context.Context, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, SiteContextKey, data, c.ttl)
}
