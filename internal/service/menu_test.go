// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/store"
)

// testDB creates a temporary test database with migrations applied.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "campus-service-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

func extItem(id int64, parent sql.NullInt64, title string, ordering int64) model.MenuItem {
	return model.MenuItem{
		ID:          id,
		MenuID:      1,
		ParentID:    parent,
		Title:       title,
		LinkType:    model.LinkExternal,
		ExternalURL: "https://example.edu/" + title,
		IsActive:    true,
		Ordering:    ordering,
	}
}

func child(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: true}
}

func TestBuildTree(t *testing.T) {
	svc := &MenuService{resolver: NewResolver(DefaultRoutes())}

	items := []model.MenuItem{
		extItem(1, sql.NullInt64{}, "Home", 0),
		extItem(2, sql.NullInt64{}, "About", 1),
		extItem(3, child(2), "Team", 0),
		extItem(4, child(2), "History", 1),
		extItem(5, sql.NullInt64{}, "Contact", 2),
	}

	tree := svc.buildTree(context.Background(), items, AllVisibleSettings())

	if len(tree) != 3 {
		t.Fatalf("len(tree) = %d, want 3", len(tree))
	}
	if tree[0].Title != "Home" || tree[1].Title != "About" || tree[2].Title != "Contact" {
		t.Errorf("root order = [%s %s %s], want [Home About Contact]",
			tree[0].Title, tree[1].Title, tree[2].Title)
	}
	if len(tree[1].Children) != 2 {
		t.Fatalf("len(About children) = %d, want 2", len(tree[1].Children))
	}
	if tree[1].Children[0].Title != "Team" || tree[1].Children[1].Title != "History" {
		t.Errorf("About children = [%s %s], want [Team History]",
			tree[1].Children[0].Title, tree[1].Children[1].Title)
	}
	if tree[0].URL != "https://example.edu/Home" {
		t.Errorf("tree[0].URL = %q, want external URL", tree[0].URL)
	}
}

func TestBuildTree_InactiveParentDropsSubtree(t *testing.T) {
	svc := &MenuService{resolver: NewResolver(nil)}

	hidden := extItem(2, sql.NullInt64{}, "Hidden", 1)
	hidden.IsActive = false

	items := []model.MenuItem{
		extItem(1, sql.NullInt64{}, "Home", 0),
		hidden,
		extItem(3, child(2), "Orphan", 0),
		extItem(4, child(3), "Grandchild", 0),
	}

	tree := svc.buildTree(context.Background(), items, AllVisibleSettings())

	if len(tree) != 1 {
		t.Fatalf("len(tree) = %d, want 1 (inactive parent drops subtree)", len(tree))
	}
	if tree[0].Title != "Home" {
		t.Errorf("tree[0].Title = %q, want Home", tree[0].Title)
	}
}

func TestBuildTree_VisibilityGate(t *testing.T) {
	svc := &MenuService{resolver: NewResolver(nil)}

	tagged := extItem(2, sql.NullInt64{}, "Research", 1)
	tagged.VisibilityTag = model.TagResearch
	unknownTag := extItem(4, sql.NullInt64{}, "Misc", 3)
	unknownTag.VisibilityTag = "not-a-real-tag"

	items := []model.MenuItem{
		extItem(1, sql.NullInt64{}, "Home", 0),
		tagged,
		extItem(3, child(2), "Projects", 0),
		unknownTag,
	}

	settings := AllVisibleSettings()
	settings.ShowResearch = false

	tree := svc.buildTree(context.Background(), items, settings)

	// The research branch is gone with its child; the unknown tag
	// renders visible.
	if len(tree) != 2 {
		t.Fatalf("len(tree) = %d, want 2", len(tree))
	}
	if tree[0].Title != "Home" || tree[1].Title != "Misc" {
		t.Errorf("roots = [%s %s], want [Home Misc]", tree[0].Title, tree[1].Title)
	}
}

func TestBuildTree_SiblingTiebreak(t *testing.T) {
	svc := &MenuService{resolver: NewResolver(nil)}

	items := []model.MenuItem{
		extItem(1, sql.NullInt64{}, "Zeta", 5),
		extItem(2, sql.NullInt64{}, "Alpha", 5),
		extItem(3, sql.NullInt64{}, "First", 1),
	}

	tree := svc.buildTree(context.Background(), items, AllVisibleSettings())

	if len(tree) != 3 {
		t.Fatalf("len(tree) = %d, want 3", len(tree))
	}
	// Lower ordering first, then title breaks the tie.
	if tree[0].Title != "First" || tree[1].Title != "Alpha" || tree[2].Title != "Zeta" {
		t.Errorf("order = [%s %s %s], want [First Alpha Zeta]",
			tree[0].Title, tree[1].Title, tree[2].Title)
	}
}

func TestGetMenu_InternalPageResolution(t *testing.T) {
	db := testDB(t)
	q := store.New(db)
	ctx := context.Background()

	menu, err := q.CreateMenu(ctx, store.CreateMenuParams{Title: "Main", Slug: "main", IsActive: true})
	if err != nil {
		t.Fatalf("CreateMenu: %v", err)
	}

	page, err := q.CreatePage(ctx, store.CreatePageParams{Title: "Admissions", Slug: "admissions", IsActive: true})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}
	inactive, err := q.CreatePage(ctx, store.CreatePageParams{Title: "Draft", Slug: "draft", IsActive: false})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}

	if _, err := q.CreateMenuItem(ctx, store.CreateMenuItemParams{
		MenuID: menu.ID, Title: "Admissions", Slug: "admissions", LinkType: model.LinkInternal,
		PageID: child(page.ID), IsActive: true, Ordering: 0,
	}); err != nil {
		t.Fatalf("CreateMenuItem: %v", err)
	}
	if _, err := q.CreateMenuItem(ctx, store.CreateMenuItemParams{
		MenuID: menu.ID, Title: "Draft", Slug: "draft", LinkType: model.LinkInternal,
		PageID: child(inactive.ID), IsActive: true, Ordering: 1,
	}); err != nil {
		t.Fatalf("CreateMenuItem: %v", err)
	}

	svc := NewMenuService(q, nil, NewResolver(nil), NewVisibilityService(q))

	tree := svc.GetMenu(ctx, "main")
	if len(tree) != 2 {
		t.Fatalf("len(tree) = %d, want 2", len(tree))
	}
	if tree[0].URL != "/admissions" {
		t.Errorf("tree[0].URL = %q, want /admissions", tree[0].URL)
	}
	// Inactive page target still renders, but falls back.
	if tree[1].URL != FallbackURL {
		t.Errorf("tree[1].URL = %q, want %q", tree[1].URL, FallbackURL)
	}
}

func TestGetForest_MenuOrdering(t *testing.T) {
	db := testDB(t)
	q := store.New(db)
	ctx := context.Background()

	for _, m := range []store.CreateMenuParams{
		{Title: "Footer", Slug: "footer", IsActive: true, Ordering: 2},
		{Title: "Main", Slug: "main", IsActive: true, Ordering: 1},
		{Title: "Old", Slug: "old", IsActive: false, Ordering: 0},
	} {
		if _, err := q.CreateMenu(ctx, m); err != nil {
			t.Fatalf("CreateMenu(%s): %v", m.Slug, err)
		}
	}

	svc := NewMenuService(q, nil, NewResolver(nil), NewVisibilityService(q))

	forest := svc.GetForest(ctx)
	if len(forest) != 2 {
		t.Fatalf("len(forest) = %d, want 2 (inactive menu excluded)", len(forest))
	}
	if forest[0].Slug != "main" || forest[1].Slug != "footer" {
		t.Errorf("forest order = [%s %s], want [main footer]", forest[0].Slug, forest[1].Slug)
	}
}

func TestGetMenu_MissingOrInactive(t *testing.T) {
	db := testDB(t)
	q := store.New(db)
	ctx := context.Background()

	if _, err := q.CreateMenu(ctx, store.CreateMenuParams{Title: "Old", Slug: "old", IsActive: false}); err != nil {
		t.Fatalf("CreateMenu: %v", err)
	}

	svc := NewMenuService(q, nil, NewResolver(nil), NewVisibilityService(q))

	if tree := svc.GetMenu(ctx, "nope"); tree != nil {
		t.Errorf("GetMenu(missing) = %v, want nil", tree)
	}
	if tree := svc.GetMenu(ctx, "old"); tree != nil {
		t.Errorf("GetMenu(inactive) = %v, want nil", tree)
	}
}
