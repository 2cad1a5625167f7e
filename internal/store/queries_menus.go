// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/campuscms/campuscms/internal/model"
)

const menuColumns = `id, title, slug, is_active, ordering, created_at, updated_at`

const createMenu = `
INSERT INTO menus (title, slug, is_active, ordering, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING ` + menuColumns

// CreateMenuParams holds the arguments for CreateMenu.
type CreateMenuParams struct {
	Title    string
	Slug     string
	IsActive bool
	Ordering int64
}

// CreateMenu inserts a menu and returns the stored row.
func (q *Queries) CreateMenu(ctx context.Context, arg CreateMenuParams) (model.Menu, error) {
	now := time.Now()
	row := q.db.QueryRowContext(ctx, createMenu,
		arg.Title, arg.Slug, arg.IsActive, arg.Ordering, now, now)
	return scanMenu(row)
}

const getMenuByID = `SELECT ` + menuColumns + ` FROM menus WHERE id = ?`

// GetMenuByID returns the menu with the given id.
func (q *Queries) GetMenuByID(ctx context.Context, id int64) (model.Menu, error) {
	return scanMenu(q.db.QueryRowContext(ctx, getMenuByID, id))
}

const getMenuBySlug = `SELECT ` + menuColumns + ` FROM menus WHERE slug = ?`

// GetMenuBySlug returns the menu with the given slug, active or not.
func (q *Queries) GetMenuBySlug(ctx context.Context, slug string) (model.Menu, error) {
	return scanMenu(q.db.QueryRowContext(ctx, getMenuBySlug, slug))
}

const listMenus = `SELECT ` + menuColumns + ` FROM menus ORDER BY ordering, id`

// ListMenus returns every menu, active or not, in display order.
func (q *Queries) ListMenus(ctx context.Context) ([]model.Menu, error) {
	rows, err := q.db.QueryContext(ctx, listMenus)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var menus []model.Menu
	for rows.Next() {
		m, err := scanMenu(rows)
		if err != nil {
			return nil, err
		}
		menus = append(menus, m)
	}
	return menus, rows.Err()
}

const listActiveMenus = `
SELECT ` + menuColumns + ` FROM menus WHERE is_active = 1 ORDER BY ordering, id`

// ListActiveMenus returns active menus in display order.
func (q *Queries) ListActiveMenus(ctx context.Context) ([]model.Menu, error) {
	rows, err := q.db.QueryContext(ctx, listActiveMenus)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var menus []model.Menu
	for rows.Next() {
		m, err := scanMenu(rows)
		if err != nil {
			return nil, err
		}
		menus = append(menus, m)
	}
	return menus, rows.Err()
}

const updateMenu = `
UPDATE menus SET title = ?, slug = ?, is_active = ?, ordering = ?, updated_at = ?
WHERE id = ?
RETURNING ` + menuColumns

// UpdateMenuParams holds the arguments for UpdateMenu.
type UpdateMenuParams struct {
	ID       int64
	Title    string
	Slug     string
	IsActive bool
	Ordering int64
}

// UpdateMenu rewrites a menu row and returns the stored row.
func (q *Queries) UpdateMenu(ctx context.Context, arg UpdateMenuParams) (model.Menu, error) {
	row := q.db.QueryRowContext(ctx, updateMenu,
		arg.Title, arg.Slug, arg.IsActive, arg.Ordering, time.Now(), arg.ID)
	return scanMenu(row)
}

const deleteMenu = `DELETE FROM menus WHERE id = ?`

// DeleteMenu removes a menu; its items cascade.
func (q *Queries) DeleteMenu(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteMenu, id)
	return err
}

const menuItemColumns = `id, menu_id, parent_id, title, slug, link_type, external_url,
page_id, route_name, icon_class, description, visibility_tag, is_active, ordering, created_at, updated_at`

const createMenuItem = `
INSERT INTO menu_items (menu_id, parent_id, title, slug, link_type, external_url,
	page_id, route_name, icon_class, description, visibility_tag, is_active, ordering, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + menuItemColumns

// CreateMenuItemParams holds the arguments for CreateMenuItem.
type CreateMenuItemParams struct {
	MenuID        int64
	ParentID      sql.NullInt64
	Title         string
	Slug          string
	LinkType      string
	ExternalURL   string
	PageID        sql.NullInt64
	RouteName     string
	IconClass     string
	Description   string
	VisibilityTag string
	IsActive      bool
	Ordering      int64
}

// CreateMenuItem inserts a menu item and returns the stored row.
func (q *Queries) CreateMenuItem(ctx context.Context, arg CreateMenuItemParams) (model.MenuItem, error) {
	now := time.Now()
	row := q.db.QueryRowContext(ctx, createMenuItem,
		arg.MenuID, arg.ParentID, arg.Title, arg.Slug, arg.LinkType, arg.ExternalURL,
		arg.PageID, arg.RouteName, arg.IconClass, arg.Description, arg.VisibilityTag,
		arg.IsActive, arg.Ordering, now, now)
	return scanMenuItem(row)
}

const getMenuItemByID = `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id = ?`

// GetMenuItemByID returns the menu item with the given id.
func (q *Queries) GetMenuItemByID(ctx context.Context, id int64) (model.MenuItem, error) {
	return scanMenuItem(q.db.QueryRowContext(ctx, getMenuItemByID, id))
}

const listMenuItems = `
SELECT ` + menuItemColumns + ` FROM menu_items WHERE menu_id = ? ORDER BY ordering, id`

// ListMenuItems returns every item of a menu, active or not, in display order.
func (q *Queries) ListMenuItems(ctx context.Context, menuID int64) ([]model.MenuItem, error) {
	return q.queryMenuItems(ctx, listMenuItems, menuID)
}

const listActiveMenuItems = `
SELECT ` + menuItemColumns + ` FROM menu_items
WHERE menu_id = ? AND is_active = 1 ORDER BY ordering, id`

// ListActiveMenuItems returns active items of a menu in display order.
func (q *Queries) ListActiveMenuItems(ctx context.Context, menuID int64) ([]model.MenuItem, error) {
	return q.queryMenuItems(ctx, listActiveMenuItems, menuID)
}

const updateMenuItem = `
UPDATE menu_items SET parent_id = ?, title = ?, slug = ?, link_type = ?, external_url = ?,
	page_id = ?, route_name = ?, icon_class = ?, description = ?, visibility_tag = ?,
	is_active = ?, ordering = ?, updated_at = ?
WHERE id = ?
RETURNING ` + menuItemColumns

// UpdateMenuItemParams holds the arguments for UpdateMenuItem.
type UpdateMenuItemParams struct {
	ID            int64
	ParentID      sql.NullInt64
	Title         string
	Slug          string
	LinkType      string
	ExternalURL   string
	PageID        sql.NullInt64
	RouteName     string
	IconClass     string
	Description   string
	VisibilityTag string
	IsActive      bool
	Ordering      int64
}

// UpdateMenuItem rewrites a menu item and returns the stored row.
func (q *Queries) UpdateMenuItem(ctx context.Context, arg UpdateMenuItemParams) (model.MenuItem, error) {
	row := q.db.QueryRowContext(ctx, updateMenuItem,
		arg.ParentID, arg.Title, arg.Slug, arg.LinkType, arg.ExternalURL,
		arg.PageID, arg.RouteName, arg.IconClass, arg.Description, arg.VisibilityTag,
		arg.IsActive, arg.Ordering, time.Now(), arg.ID)
	return scanMenuItem(row)
}

const deleteMenuItem = `DELETE FROM menu_items WHERE id = ?`

// DeleteMenuItem removes a menu item; children cascade.
func (q *Queries) DeleteMenuItem(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteMenuItem, id)
	return err
}

const countMenuItemSlug = `
SELECT COUNT(*) FROM menu_items WHERE menu_id = ? AND slug = ? AND id != ?`

// CountMenuItemSlug counts items in a menu holding the slug, excluding
// one id. Inactive items participate in uniqueness.
func (q *Queries) CountMenuItemSlug(ctx context.Context, menuID int64, slug string, excludeID int64) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countMenuItemSlug, menuID, slug, excludeID).Scan(&n)
	return n, err
}

func (q *Queries) queryMenuItems(ctx context.Context, query string, menuID int64) ([]model.MenuItem, error) {
	rows, err := q.db.QueryContext(ctx, query, menuID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.MenuItem
	for rows.Next() {
		it, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanMenu(r rowScanner) (model.Menu, error) {
	var m model.Menu
	err := r.Scan(&m.ID, &m.Title, &m.Slug, &m.IsActive, &m.Ordering, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func scanMenuItem(r rowScanner) (model.MenuItem, error) {
	var it model.MenuItem
	err := r.Scan(&it.ID, &it.MenuID, &it.ParentID, &it.Title, &it.Slug, &it.LinkType,
		&it.ExternalURL, &it.PageID, &it.RouteName, &it.IconClass, &it.Description,
		&it.VisibilityTag, &it.IsActive, &it.Ordering, &it.CreatedAt, &it.UpdatedAt)
	return it, err
}
