// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/campuscms/campuscms/internal/cache"
	"github.com/campuscms/campuscms/internal/middleware"
	"github.com/campuscms/campuscms/internal/render"
)

// CacheHandler exposes cache statistics and a purge action to admins.
type CacheHandler struct {
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	backend        cache.Cacher
	records        *cache.ActiveRecordCache
	menus          *cache.MenuCache
}

// NewCacheHandler creates a new CacheHandler.
func NewCacheHandler(renderer *render.Renderer, sm *scs.SessionManager, backend cache.Cacher, records *cache.ActiveRecordCache, menus *cache.MenuCache) *CacheHandler {
	return &CacheHandler{
		renderer:       renderer,
		sessionManager: sm,
		backend:        backend,
		records:        records,
		menus:          menus,
	}
}

// CacheStatsData holds data for the cache stats template.
type CacheStatsData struct {
	Backend cache.CacheStats
	Menus   cache.CacheStats
}

// Stats handles GET /admin/cache.
func (h *CacheHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	data := CacheStatsData{}
	if sp, ok := h.backend.(cache.StatsProvider); ok {
		data.Backend = sp.Stats()
	}
	if h.menus != nil {
		data.Menus = h.menus.Stats()
	}

	if err := h.renderer.Render(w, r, "admin/cache_stats", render.TemplateData{
		Title: "Cache",
		User:  user,
		Data:  data,
		Breadcrumbs: []render.Breadcrumb{
			{Label: "Dashboard", URL: redirectAdmin},
			{Label: "Cache", URL: redirectAdminCache, Active: true},
		},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// Purge handles POST /admin/cache/purge. Every cached record, the
// composite site context and the menu tree are dropped; the next
// request rebuilds them from the database.
func (h *CacheHandler) Purge(w http.ResponseWriter, r *http.Request) {
	if h.records != nil {
		h.records.InvalidateAll(r.Context())
	}
	if h.menus != nil {
		h.menus.Invalidate()
	}

	slog.Info("cache purged", "category", "cache", "user_id", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectAdminCache, "Cache purged successfully")
}
