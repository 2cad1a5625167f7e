// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/campuscms/campuscms/internal/model"
)

const sideMenuColumns = `id, name, slug, description, menu_title, show_title, title_color,
background_color, border_color, is_collapsible, default_collapsed, assignment_type,
url_prefix, page_slug, section_name, priority, is_active, created_at, updated_at`

const createSideMenu = `
INSERT INTO side_menus (name, slug, description, menu_title, show_title, title_color,
	background_color, border_color, is_collapsible, default_collapsed, assignment_type,
	url_prefix, page_slug, section_name, priority, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + sideMenuColumns

// CreateSideMenuParams holds the arguments for CreateSideMenu.
type CreateSideMenuParams struct {
	Name             string
	Slug             string
	Description      string
	MenuTitle        string
	ShowTitle        bool
	TitleColor       string
	BackgroundColor  string
	BorderColor      string
	IsCollapsible    bool
	DefaultCollapsed bool
	AssignmentType   string
	URLPrefix        string
	PageSlug         string
	SectionName      string
	Priority         int64
	IsActive         bool
}

// CreateSideMenu inserts a side menu and returns the stored row.
func (q *Queries) CreateSideMenu(ctx context.Context, arg CreateSideMenuParams) (model.SideMenu, error) {
	now := time.Now()
	row := q.db.QueryRowContext(ctx, createSideMenu,
		arg.Name, arg.Slug, arg.Description, arg.MenuTitle, arg.ShowTitle, arg.TitleColor,
		arg.BackgroundColor, arg.BorderColor, arg.IsCollapsible, arg.DefaultCollapsed,
		arg.AssignmentType, arg.URLPrefix, arg.PageSlug, arg.SectionName, arg.Priority,
		arg.IsActive, now, now)
	return scanSideMenu(row)
}

const getSideMenuByID = `SELECT ` + sideMenuColumns + ` FROM side_menus WHERE id = ?`

// GetSideMenuByID returns the side menu with the given id.
func (q *Queries) GetSideMenuByID(ctx context.Context, id int64) (model.SideMenu, error) {
	return scanSideMenu(q.db.QueryRowContext(ctx, getSideMenuByID, id))
}

const listSideMenus = `
SELECT ` + sideMenuColumns + ` FROM side_menus ORDER BY priority DESC, updated_at DESC, id`

// ListSideMenus returns every side menu in matching precedence order.
func (q *Queries) ListSideMenus(ctx context.Context) ([]model.SideMenu, error) {
	return q.querySideMenus(ctx, listSideMenus)
}

const listActiveSideMenus = `
SELECT ` + sideMenuColumns + ` FROM side_menus
WHERE is_active = 1 ORDER BY priority DESC, updated_at DESC, id`

// ListActiveSideMenus returns active side menus ordered by priority
// descending, then most recently updated first.
func (q *Queries) ListActiveSideMenus(ctx context.Context) ([]model.SideMenu, error) {
	return q.querySideMenus(ctx, listActiveSideMenus)
}

const updateSideMenu = `
UPDATE side_menus SET name = ?, slug = ?, description = ?, menu_title = ?, show_title = ?,
	title_color = ?, background_color = ?, border_color = ?, is_collapsible = ?,
	default_collapsed = ?, assignment_type = ?, url_prefix = ?, page_slug = ?,
	section_name = ?, priority = ?, is_active = ?, updated_at = ?
WHERE id = ?
RETURNING ` + sideMenuColumns

// UpdateSideMenuParams holds the arguments for UpdateSideMenu.
type UpdateSideMenuParams struct {
	ID               int64
	Name             string
	Slug             string
	Description      string
	MenuTitle        string
	ShowTitle        bool
	TitleColor       string
	BackgroundColor  string
	BorderColor      string
	IsCollapsible    bool
	DefaultCollapsed bool
	AssignmentType   string
	URLPrefix        string
	PageSlug         string
	SectionName      string
	Priority         int64
	IsActive         bool
}

// UpdateSideMenu rewrites a side menu and returns the stored row.
func (q *Queries) UpdateSideMenu(ctx context.Context, arg UpdateSideMenuParams) (model.SideMenu, error) {
	row := q.db.QueryRowContext(ctx, updateSideMenu,
		arg.Name, arg.Slug, arg.Description, arg.MenuTitle, arg.ShowTitle, arg.TitleColor,
		arg.BackgroundColor, arg.BorderColor, arg.IsCollapsible, arg.DefaultCollapsed,
		arg.AssignmentType, arg.URLPrefix, arg.PageSlug, arg.SectionName, arg.Priority,
		arg.IsActive, time.Now(), arg.ID)
	return scanSideMenu(row)
}

const deleteSideMenu = `DELETE FROM side_menus WHERE id = ?`

// DeleteSideMenu removes a side menu; its items cascade.
func (q *Queries) DeleteSideMenu(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteSideMenu, id)
	return err
}

const sideMenuItemColumns = `id, side_menu_id, parent_id, title, item_type, link_type,
external_url, page_id, route_name, anchor_id, icon_class, badge_text, badge_color,
description, css_class, text_color, hover_color, open_in_new_tab, highlight_current,
require_auth, require_staff, ordering, is_active, created_at, updated_at`

const createSideMenuItem = `
INSERT INTO side_menu_items (side_menu_id, parent_id, title, item_type, link_type,
	external_url, page_id, route_name, anchor_id, icon_class, badge_text, badge_color,
	description, css_class, text_color, hover_color, open_in_new_tab, highlight_current,
	require_auth, require_staff, ordering, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + sideMenuItemColumns

// CreateSideMenuItemParams holds the arguments for CreateSideMenuItem.
type CreateSideMenuItemParams struct {
	SideMenuID       int64
	ParentID         sql.NullInt64
	Title            string
	ItemType         string
	LinkType         string
	ExternalURL      string
	PageID           sql.NullInt64
	RouteName        string
	AnchorID         string
	IconClass        string
	BadgeText        string
	BadgeColor       string
	Description      string
	CSSClass         string
	TextColor        string
	HoverColor       string
	OpenInNewTab     bool
	HighlightCurrent bool
	RequireAuth      bool
	RequireStaff     bool
	Ordering         int64
	IsActive         bool
}

// CreateSideMenuItem inserts a side menu item and returns the stored row.
func (q *Queries) CreateSideMenuItem(ctx context.Context, arg CreateSideMenuItemParams) (model.SideMenuItem, error) {
	now := time.Now()
	row := q.db.QueryRowContext(ctx, createSideMenuItem,
		arg.SideMenuID, arg.ParentID, arg.Title, arg.ItemType, arg.LinkType,
		arg.ExternalURL, arg.PageID, arg.RouteName, arg.AnchorID, arg.IconClass,
		arg.BadgeText, arg.BadgeColor, arg.Description, arg.CSSClass, arg.TextColor,
		arg.HoverColor, arg.OpenInNewTab, arg.HighlightCurrent, arg.RequireAuth,
		arg.RequireStaff, arg.Ordering, arg.IsActive, now, now)
	return scanSideMenuItem(row)
}

const getSideMenuItemByID = `SELECT ` + sideMenuItemColumns + ` FROM side_menu_items WHERE id = ?`

// GetSideMenuItemByID returns the side menu item with the given id.
func (q *Queries) GetSideMenuItemByID(ctx context.Context, id int64) (model.SideMenuItem, error) {
	return scanSideMenuItem(q.db.QueryRowContext(ctx, getSideMenuItemByID, id))
}

const listSideMenuItems = `
SELECT ` + sideMenuItemColumns + ` FROM side_menu_items
WHERE side_menu_id = ? ORDER BY ordering, id`

// ListSideMenuItems returns every item of a side menu in display order.
func (q *Queries) ListSideMenuItems(ctx context.Context, sideMenuID int64) ([]model.SideMenuItem, error) {
	return q.querySideMenuItems(ctx, listSideMenuItems, sideMenuID)
}

const listActiveSideMenuItems = `
SELECT ` + sideMenuItemColumns + ` FROM side_menu_items
WHERE side_menu_id = ? AND is_active = 1 ORDER BY ordering, id`

// ListActiveSideMenuItems returns active items of a side menu in display order.
func (q *Queries) ListActiveSideMenuItems(ctx context.Context, sideMenuID int64) ([]model.SideMenuItem, error) {
	return q.querySideMenuItems(ctx, listActiveSideMenuItems, sideMenuID)
}

const updateSideMenuItem = `
UPDATE side_menu_items SET parent_id = ?, title = ?, item_type = ?, link_type = ?,
	external_url = ?, page_id = ?, route_name = ?, anchor_id = ?, icon_class = ?,
	badge_text = ?, badge_color = ?, description = ?, css_class = ?, text_color = ?,
	hover_color = ?, open_in_new_tab = ?, highlight_current = ?, require_auth = ?,
	require_staff = ?, ordering = ?, is_active = ?, updated_at = ?
WHERE id = ?
RETURNING ` + sideMenuItemColumns

// UpdateSideMenuItemParams holds the arguments for UpdateSideMenuItem.
type UpdateSideMenuItemParams struct {
	ID               int64
	ParentID         sql.NullInt64
	Title            string
	ItemType         string
	LinkType         string
	ExternalURL      string
	PageID           sql.NullInt64
	RouteName        string
	AnchorID         string
	IconClass        string
	BadgeText        string
	BadgeColor       string
	Description      string
	CSSClass         string
	TextColor        string
	HoverColor       string
	OpenInNewTab     bool
	HighlightCurrent bool
	RequireAuth      bool
	RequireStaff     bool
	Ordering         int64
	IsActive         bool
}

// UpdateSideMenuItem rewrites a side menu item and returns the stored row.
func (q *Queries) UpdateSideMenuItem(ctx context.Context, arg UpdateSideMenuItemParams) (model.SideMenuItem, error) {
	row := q.db.QueryRowContext(ctx, updateSideMenuItem,
		arg.ParentID, arg.Title, arg.ItemType, arg.LinkType, arg.ExternalURL, arg.PageID,
		arg.RouteName, arg.AnchorID, arg.IconClass, arg.BadgeText, arg.BadgeColor,
		arg.Description, arg.CSSClass, arg.TextColor, arg.HoverColor, arg.OpenInNewTab,
		arg.HighlightCurrent, arg.RequireAuth, arg.RequireStaff, arg.Ordering, arg.IsActive,
		time.Now(), arg.ID)
	return scanSideMenuItem(row)
}

const deleteSideMenuItem = `DELETE FROM side_menu_items WHERE id = ?`

// DeleteSideMenuItem removes a side menu item; children cascade.
func (q *Queries) DeleteSideMenuItem(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteSideMenuItem, id)
	return err
}

func (q *Queries) querySideMenus(ctx context.Context, query string, args ...any) ([]model.SideMenu, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var menus []model.SideMenu
	for rows.Next() {
		m, err := scanSideMenu(rows)
		if err != nil {
			return nil, err
		}
		menus = append(menus, m)
	}
	return menus, rows.Err()
}

func (q *Queries) querySideMenuItems(ctx context.Context, query string, args ...any) ([]model.SideMenuItem, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.SideMenuItem
	for rows.Next() {
		it, err := scanSideMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanSideMenu(r rowScanner) (model.SideMenu, error) {
	var m model.SideMenu
	err := r.Scan(&m.ID, &m.Name, &m.Slug, &m.Description, &m.MenuTitle, &m.ShowTitle,
		&m.TitleColor, &m.BackgroundColor, &m.BorderColor, &m.IsCollapsible,
		&m.DefaultCollapsed, &m.AssignmentType, &m.URLPrefix, &m.PageSlug, &m.SectionName,
		&m.Priority, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func scanSideMenuItem(r rowScanner) (model.SideMenuItem, error) {
	var it model.SideMenuItem
	err := r.Scan(&it.ID, &it.SideMenuID, &it.ParentID, &it.Title, &it.ItemType, &it.LinkType,
		&it.ExternalURL, &it.PageID, &it.RouteName, &it.AnchorID, &it.IconClass,
		&it.BadgeText, &it.BadgeColor, &it.Description, &it.CSSClass, &it.TextColor,
		&it.HoverColor, &it.OpenInNewTab, &it.HighlightCurrent, &it.RequireAuth,
		&it.RequireStaff, &it.Ordering, &it.IsActive, &it.CreatedAt, &it.UpdatedAt)
	return it, err
}
