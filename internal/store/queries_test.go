// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscms/campuscms/internal/model"
)

// testQueries creates a temporary test database with migrations applied.
func testQueries(t *testing.T) *Queries {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "campus-store-test-*.db")
	require.NoError(t, err)
	dbPath := f.Name()
	_ = f.Close()

	db, err := NewDB(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(db))
	return New(db)
}

func TestMenuCRUD(t *testing.T) {
	q := testQueries(t)
	ctx := context.Background()

	menu, err := q.CreateMenu(ctx, CreateMenuParams{Title: "Main Menu", Slug: "main-menu", IsActive: true})
	require.NoError(t, err)
	require.NotZero(t, menu.ID)

	got, err := q.GetMenuBySlug(ctx, "main-menu")
	require.NoError(t, err)
	assert.Equal(t, "Main Menu", got.Title)

	updated, err := q.UpdateMenu(ctx, UpdateMenuParams{ID: menu.ID, Title: "Primary", Slug: "primary", IsActive: false, Ordering: 2})
	require.NoError(t, err)
	assert.Equal(t, "Primary", updated.Title)
	assert.False(t, updated.IsActive)

	active, err := q.ListActiveMenus(ctx)
	require.NoError(t, err)
	assert.Empty(t, active, "deactivated menu still listed as active")

	require.NoError(t, q.DeleteMenu(ctx, menu.ID))
	_, err = q.GetMenuByID(ctx, menu.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestMenuItemsOrderingAndSlugScope(t *testing.T) {
	q := testQueries(t)
	ctx := context.Background()

	menu, err := q.CreateMenu(ctx, CreateMenuParams{Title: "Academics", Slug: "academics", IsActive: true})
	require.NoError(t, err)

	for i, title := range []string{"Courses", "Syllabus", "Calendar"} {
		_, err := q.CreateMenuItem(ctx, CreateMenuItemParams{
			MenuID:      menu.ID,
			Title:       title,
			Slug:        "item-" + title,
			LinkType:    model.LinkExternal,
			ExternalURL: "https://example.edu/" + title,
			IsActive:    i != 2,
			Ordering:    int64(2 - i),
		})
		require.NoError(t, err, "CreateMenuItem %s", title)
	}

	active, err := q.ListActiveMenuItems(ctx, menu.ID)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Syllabus", active[0].Title, "ordering not respected")

	n, err := q.CountMenuItemSlug(ctx, menu.ID, "item-Courses", 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	other, err := q.CreateMenu(ctx, CreateMenuParams{Title: "Other", Slug: "other", IsActive: true})
	require.NoError(t, err)
	n, err = q.CountMenuItemSlug(ctx, other.ID, "item-Courses", 0)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n, "slug uniqueness leaked across menus")
}

func TestPageSlugCount(t *testing.T) {
	q := testQueries(t)
	ctx := context.Background()

	page, err := q.CreatePage(ctx, CreatePageParams{Title: "About", Slug: "about", Template: "default", IsActive: true})
	require.NoError(t, err)

	n, err := q.CountPageSlug(ctx, "about", 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	// Excluding the page itself is how updates keep their own slug.
	n, err = q.CountPageSlug(ctx, "about", page.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	_, err = q.GetActivePageBySlug(ctx, "about")
	assert.NoError(t, err)
	_, err = q.GetActivePageBySlug(ctx, "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestVisibilitySettingsLazyCreate(t *testing.T) {
	q := testQueries(t)
	ctx := context.Background()

	v, err := q.GetVisibilitySettings(ctx)
	require.NoError(t, err)
	require.NotZero(t, v.ID, "lazy record not created")
	assert.True(t, v.ShowResearch)
	assert.True(t, v.ShowPatentsProjects)

	v.ShowAlumni = false
	saved, err := q.UpdateVisibilitySettings(ctx, v)
	require.NoError(t, err)
	assert.False(t, saved.ShowAlumni)

	again, err := q.GetVisibilitySettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, v.ID, again.ID, "second read created a new record")
}

func TestUserQueries(t *testing.T) {
	q := testQueries(t)
	ctx := context.Background()

	now := time.Now()
	u, err := q.CreateUser(ctx, CreateUserParams{
		Email:        "editor@example.edu",
		PasswordHash: "x",
		Role:         model.RoleEditor,
		Name:         "Editor",
		IsStaff:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)

	got, err := q.GetUserByEmail(ctx, "editor@example.edu")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, model.RoleEditor, got.Role)
	assert.False(t, got.LastLoginAt.Valid, "fresh user should have no last login")

	require.NoError(t, q.TouchUserLogin(ctx, u.ID, now))
	got, err = q.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.LastLoginAt.Valid, "last login not recorded")
}
