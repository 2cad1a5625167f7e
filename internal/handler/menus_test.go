// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/campuscms/campuscms/internal/store"
)

// adminRouter wires the menu and visibility admin routes without the
// auth middleware, which has its own tests.
func (a *testApp) adminRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(a.sessionManager.LoadAndSave)

	r.Post("/admin/menus", a.menus.Create)
	r.Post("/admin/menus/{id}", a.menus.Update)
	r.Post("/admin/menus/{id}/delete", a.menus.Delete)
	r.Post("/admin/menus/{id}/items", a.menus.CreateItem)
	r.Post("/admin/menus/{id}/items/{itemId}/delete", a.menus.DeleteItem)
	r.Post("/admin/visibility", a.visibilityH.Update)
	return r
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestMenuCreateThroughForm(t *testing.T) {
	app := newTestApp(t)
	h := app.adminRouter()
	ctx := context.Background()

	rec := postForm(t, h, "/admin/menus", url.Values{
		"title":     {"Quick Links"},
		"is_active": {"true"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}

	menu, err := app.queries.GetMenuBySlug(ctx, "quick-links")
	if err != nil {
		t.Fatalf("menu not created: %v", err)
	}
	if !menu.IsActive {
		t.Error("menu should be active")
	}

	// Duplicate slugs bounce back to the form instead of inserting.
	rec = postForm(t, h, "/admin/menus", url.Values{
		"title": {"Quick Links"},
		"slug":  {"quick-links"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("duplicate create status = %d, want 200 re-render", rec.Code)
	}
	menus, err := app.queries.ListMenus(ctx)
	if err != nil {
		t.Fatalf("ListMenus: %v", err)
	}
	count := 0
	for _, m := range menus {
		if m.Slug == "quick-links" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("duplicate slug inserted, count = %d", count)
	}
}

func TestMenuItemCreateThroughForm(t *testing.T) {
	app := newTestApp(t)
	h := app.adminRouter()
	ctx := context.Background()

	rec := postForm(t, h, "/admin/menus", url.Values{
		"title":     {"Students"},
		"is_active": {"true"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("menu create status = %d", rec.Code)
	}
	menu, err := app.queries.GetMenuBySlug(ctx, "students")
	if err != nil {
		t.Fatalf("GetMenuBySlug: %v", err)
	}

	itemsURL := fmt.Sprintf("/admin/menus/%d/items", menu.ID)
	rec = postForm(t, h, itemsURL, url.Values{
		"title":          {"Results Portal"},
		"link_type":      {"external"},
		"external_url":   {"https://results.example.edu"},
		"visibility_tag": {"student_portal"},
		"is_active":      {"true"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("item create status = %d", rec.Code)
	}

	items, err := app.queries.ListMenuItems(ctx, menu.ID)
	if err != nil {
		t.Fatalf("ListMenuItems: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].VisibilityTag != "student_portal" {
		t.Errorf("visibility tag = %q", items[0].VisibilityTag)
	}

	// External items without a URL are rejected.
	rec = postForm(t, h, itemsURL, url.Values{
		"title":     {"Broken"},
		"link_type": {"external"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("invalid item status = %d", rec.Code)
	}
	items, _ = app.queries.ListMenuItems(ctx, menu.ID)
	if len(items) != 1 {
		t.Errorf("invalid item was inserted, items = %d", len(items))
	}

	// Internal items must point at an active page.
	draft, err := app.queries.CreatePage(ctx, store.CreatePageParams{
		Title: "Draft", Slug: "draft-page", Template: "default", IsActive: false,
	})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}
	rec = postForm(t, h, itemsURL, url.Values{
		"title":     {"Draft Link"},
		"link_type": {"internal"},
		"page_id":   {fmt.Sprintf("%d", draft.ID)},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("inactive target status = %d", rec.Code)
	}
	items, _ = app.queries.ListMenuItems(ctx, menu.ID)
	if len(items) != 1 {
		t.Errorf("item pointing at inactive page was inserted, items = %d", len(items))
	}
}

func TestVisibilityUpdateThroughForm(t *testing.T) {
	app := newTestApp(t)
	h := app.adminRouter()
	ctx := context.Background()

	// Checkboxes that stay unchecked are simply absent from the form.
	rec := postForm(t, h, "/admin/visibility", url.Values{
		"show_research":  {"true"},
		"show_placement": {"true"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}

	v, err := app.queries.GetVisibilitySettings(ctx)
	if err != nil {
		t.Fatalf("GetVisibilitySettings: %v", err)
	}
	if !v.ShowResearch || !v.ShowPlacement {
		t.Error("checked flags not saved")
	}
	if v.ShowAlumni || v.ShowStudentPortal {
		t.Error("unchecked flags should be cleared")
	}
}
