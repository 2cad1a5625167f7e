// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/campuscms/campuscms/internal/cache"
	"github.com/campuscms/campuscms/internal/store"
)

func TestCacheStatsAndPurge(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	backend := cache.NewSimpleMemoryCache(time.Minute)
	t.Cleanup(func() { _ = backend.Close() })
	records := cache.NewActiveRecordCache(backend, time.Minute)
	menus := cache.NewMenuCache(store.New(app.db))

	h := NewCacheHandler(app.renderer, app.sessionManager, backend, records, menus)

	r := chi.NewRouter()
	r.Use(app.sessionManager.LoadAndSave)
	r.Get("/admin/cache", h.Stats)
	r.Post("/admin/cache/purge", h.Purge)

	// A miss and a set so the backend counters are non-zero.
	_, _ = backend.Get(ctx, "warmup")
	_ = backend.Set(ctx, "warmup", []byte("x"), 0)

	req := httptest.NewRequest(http.MethodGet, "/admin/cache", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status = %d, want 200", rec.Code)
	}

	_ = backend.Set(ctx, cache.SiteContextKey, []byte(`{}`), 0)

	req = httptest.NewRequest(http.MethodPost, "/admin/cache/purge", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("purge status = %d, want 303", rec.Code)
	}
	if has, _ := backend.Has(ctx, cache.SiteContextKey); has {
		t.Error("site context entry survived purge")
	}
}
