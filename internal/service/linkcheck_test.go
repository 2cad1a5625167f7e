// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/store"
)

func TestLinkChecker_CheckAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("method = %s, want HEAD", r.Method)
		}
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/gone":
			w.WriteHeader(http.StatusNotFound)
		case "/no-head":
			w.WriteHeader(http.StatusMethodNotAllowed)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	db := testDB(t)
	q := store.New(db)
	ctx := context.Background()

	menu, err := q.CreateMenu(ctx, store.CreateMenuParams{Title: "Main", Slug: "main", IsActive: true})
	if err != nil {
		t.Fatalf("CreateMenu: %v", err)
	}
	items := []store.CreateMenuItemParams{
		{MenuID: menu.ID, Title: "Portal", Slug: "portal", LinkType: model.LinkExternal, ExternalURL: srv.URL + "/ok", IsActive: true},
		{MenuID: menu.ID, Title: "Archive", Slug: "archive", LinkType: model.LinkExternal, ExternalURL: srv.URL + "/gone", IsActive: true},
		{MenuID: menu.ID, Title: "Legacy", Slug: "legacy", LinkType: model.LinkExternal, ExternalURL: srv.URL + "/no-head", IsActive: true},
		{MenuID: menu.ID, Title: "Named", Slug: "named", LinkType: model.LinkNamed, RouteName: "home", IsActive: true},
	}
	for _, it := range items {
		if _, err := q.CreateMenuItem(ctx, it); err != nil {
			t.Fatalf("CreateMenuItem(%s): %v", it.Title, err)
		}
	}

	checker := NewLinkChecker(q, 5*time.Second)

	results, err := checker.CheckAll(ctx)
	if err != nil {
		t.Fatalf("CheckAll: %v", err)
	}
	// The named item carries no external URL to check.
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}

	byURL := make(map[string]LinkResult, len(results))
	for _, r := range results {
		byURL[r.URL] = r
	}

	if r := byURL[srv.URL+"/ok"]; !r.OK || r.StatusCode != http.StatusOK {
		t.Errorf("/ok result = %+v, want OK 200", r)
	}
	if r := byURL[srv.URL+"/gone"]; r.OK || r.StatusCode != http.StatusNotFound {
		t.Errorf("/gone result = %+v, want broken 404", r)
	}
	if r := byURL[srv.URL+"/no-head"]; !r.OK {
		t.Errorf("/no-head result = %+v, want OK (HEAD rejected is not broken)", r)
	}
	if r := byURL[srv.URL+"/ok"]; len(r.Sources) != 1 || r.Sources[0] != "menu Main: Portal" {
		t.Errorf("/ok sources = %v, want [menu Main: Portal]", r.Sources)
	}
}

func TestLinkChecker_Unreachable(t *testing.T) {
	db := testDB(t)
	q := store.New(db)
	ctx := context.Background()

	menu, err := q.CreateSideMenu(ctx, store.CreateSideMenuParams{
		Name: "Aux", Slug: "aux", AssignmentType: model.AssignGlobal, IsActive: true,
	})
	if err != nil {
		t.Fatalf("CreateSideMenu: %v", err)
	}
	if _, err := q.CreateSideMenuItem(ctx, store.CreateSideMenuItemParams{
		SideMenuID: menu.ID, Title: "Dead", ItemType: model.SideItemLink,
		LinkType: model.LinkExternal, ExternalURL: "http://127.0.0.1:1/unreachable", IsActive: true,
	}); err != nil {
		t.Fatalf("CreateSideMenuItem: %v", err)
	}

	checker := NewLinkChecker(q, 2*time.Second)

	results, err := checker.CheckAll(ctx)
	if err != nil {
		t.Fatalf("CheckAll: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	if results[0].OK || results[0].Error == "" {
		t.Errorf("result = %+v, want a connection error", results[0])
	}
	if len(results[0].Sources) != 1 || results[0].Sources[0] != "side menu Aux: Dead" {
		t.Errorf("sources = %v, want [side menu Aux: Dead]", results[0].Sources)
	}
}
