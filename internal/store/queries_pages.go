// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/campuscms/campuscms/internal/model"
)

const pageColumns = `id, title, slug, banner_image, show_banner, show_sidebar, enable_search,
meta_title, meta_description, meta_keywords, template, is_active, created_at, updated_at`

const createPage = `
INSERT INTO pages (title, slug, banner_image, show_banner, show_sidebar, enable_search,
	meta_title, meta_description, meta_keywords, template, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + pageColumns

// CreatePageParams holds the arguments for CreatePage.
type CreatePageParams struct {
	Title           string
	Slug            string
	BannerImage     string
	ShowBanner      bool
	ShowSidebar     bool
	EnableSearch    bool
	MetaTitle       string
	MetaDescription string
	MetaKeywords    string
	Template        string
	IsActive        bool
}

// CreatePage inserts a page and returns the stored row.
func (q *Queries) CreatePage(ctx context.Context, arg CreatePageParams) (model.Page, error) {
	now := time.Now()
	row := q.db.QueryRowContext(ctx, createPage,
		arg.Title, arg.Slug, arg.BannerImage, arg.ShowBanner, arg.ShowSidebar, arg.EnableSearch,
		arg.MetaTitle, arg.MetaDescription, arg.MetaKeywords, arg.Template, arg.IsActive,
		now, now)
	return scanPage(row)
}

const getPageByID = `SELECT ` + pageColumns + ` FROM pages WHERE id = ?`

// GetPageByID returns the page with the given id.
func (q *Queries) GetPageByID(ctx context.Context, id int64) (model.Page, error) {
	return scanPage(q.db.QueryRowContext(ctx, getPageByID, id))
}

const getPageBySlug = `SELECT ` + pageColumns + ` FROM pages WHERE slug = ?`

// GetPageBySlug returns the page with the given slug, active or not.
func (q *Queries) GetPageBySlug(ctx context.Context, slug string) (model.Page, error) {
	return scanPage(q.db.QueryRowContext(ctx, getPageBySlug, slug))
}

const getActivePageBySlug = `
SELECT ` + pageColumns + ` FROM pages WHERE slug = ? AND is_active = 1`

// GetActivePageBySlug returns the active page with the given slug.
func (q *Queries) GetActivePageBySlug(ctx context.Context, slug string) (model.Page, error) {
	return scanPage(q.db.QueryRowContext(ctx, getActivePageBySlug, slug))
}

const listPages = `SELECT ` + pageColumns + ` FROM pages ORDER BY title, id`

// ListPages returns every page ordered by title.
func (q *Queries) ListPages(ctx context.Context) ([]model.Page, error) {
	return q.queryPages(ctx, listPages)
}

const listActivePages = `
SELECT ` + pageColumns + ` FROM pages WHERE is_active = 1 ORDER BY title, id`

// ListActivePages returns active pages ordered by title.
func (q *Queries) ListActivePages(ctx context.Context) ([]model.Page, error) {
	return q.queryPages(ctx, listActivePages)
}

const updatePage = `
UPDATE pages SET title = ?, slug = ?, banner_image = ?, show_banner = ?, show_sidebar = ?,
	enable_search = ?, meta_title = ?, meta_description = ?, meta_keywords = ?, template = ?,
	is_active = ?, updated_at = ?
WHERE id = ?
RETURNING ` + pageColumns

// UpdatePageParams holds the arguments for UpdatePage.
type UpdatePageParams struct {
	ID              int64
	Title           string
	Slug            string
	BannerImage     string
	ShowBanner      bool
	ShowSidebar     bool
	EnableSearch    bool
	MetaTitle       string
	MetaDescription string
	MetaKeywords    string
	Template        string
	IsActive        bool
}

// UpdatePage rewrites a page row and returns the stored row.
func (q *Queries) UpdatePage(ctx context.Context, arg UpdatePageParams) (model.Page, error) {
	row := q.db.QueryRowContext(ctx, updatePage,
		arg.Title, arg.Slug, arg.BannerImage, arg.ShowBanner, arg.ShowSidebar,
		arg.EnableSearch, arg.MetaTitle, arg.MetaDescription, arg.MetaKeywords, arg.Template,
		arg.IsActive, time.Now(), arg.ID)
	return scanPage(row)
}

const deletePage = `DELETE FROM pages WHERE id = ?`

// DeletePage removes a page; its blocks cascade.
func (q *Queries) DeletePage(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deletePage, id)
	return err
}

const countPageSlug = `SELECT COUNT(*) FROM pages WHERE slug = ? AND id != ?`

// CountPageSlug counts pages holding the slug, excluding one id.
// Inactive pages participate in uniqueness.
func (q *Queries) CountPageSlug(ctx context.Context, slug string, excludeID int64) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countPageSlug, slug, excludeID).Scan(&n)
	return n, err
}

func (q *Queries) queryPages(ctx context.Context, query string, args ...any) ([]model.Page, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []model.Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

func scanPage(r rowScanner) (model.Page, error) {
	var p model.Page
	err := r.Scan(&p.ID, &p.Title, &p.Slug, &p.BannerImage, &p.ShowBanner, &p.ShowSidebar,
		&p.EnableSearch, &p.MetaTitle, &p.MetaDescription, &p.MetaKeywords, &p.Template,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
