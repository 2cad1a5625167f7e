// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/campuscms/campuscms/internal/model"
)

const blockColumns = `id, page_id, kind, title, ordering, is_active, body, provider,
video_url, embed_code, html, form_kind, created_at, updated_at`

const createContentBlock = `
INSERT INTO content_blocks (page_id, kind, title, ordering, is_active, body, provider,
	video_url, embed_code, html, form_kind, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + blockColumns

// CreateContentBlockParams holds the arguments for CreateContentBlock.
type CreateContentBlockParams struct {
	PageID    int64
	Kind      string
	Title     string
	Ordering  int64
	IsActive  bool
	Body      string
	Provider  string
	VideoURL  string
	EmbedCode string
	HTML      string
	FormKind  string
}

// CreateContentBlock inserts a block and returns the stored row.
func (q *Queries) CreateContentBlock(ctx context.Context, arg CreateContentBlockParams) (model.ContentBlock, error) {
	now := time.Now()
	row := q.db.QueryRowContext(ctx, createContentBlock,
		arg.PageID, arg.Kind, arg.Title, arg.Ordering, arg.IsActive, arg.Body, arg.Provider,
		arg.VideoURL, arg.EmbedCode, arg.HTML, arg.FormKind, now, now)
	return scanContentBlock(row)
}

const getContentBlockByID = `SELECT ` + blockColumns + ` FROM content_blocks WHERE id = ?`

// GetContentBlockByID returns the block with the given id.
func (q *Queries) GetContentBlockByID(ctx context.Context, id int64) (model.ContentBlock, error) {
	return scanContentBlock(q.db.QueryRowContext(ctx, getContentBlockByID, id))
}

const listPageBlocks = `
SELECT ` + blockColumns + ` FROM content_blocks WHERE page_id = ? ORDER BY ordering, id`

// ListPageBlocks returns every block of a page, active or not.
func (q *Queries) ListPageBlocks(ctx context.Context, pageID int64) ([]model.ContentBlock, error) {
	return q.queryBlocks(ctx, listPageBlocks, pageID)
}

const listActivePageBlocks = `
SELECT ` + blockColumns + ` FROM content_blocks
WHERE page_id = ? AND is_active = 1 ORDER BY ordering, id`

// ListActivePageBlocks returns active blocks of a page. Final ordering
// including the kind tiebreak is applied by the composer.
func (q *Queries) ListActivePageBlocks(ctx context.Context, pageID int64) ([]model.ContentBlock, error) {
	return q.queryBlocks(ctx, listActivePageBlocks, pageID)
}

const updateContentBlock = `
UPDATE content_blocks SET title = ?, ordering = ?, is_active = ?, body = ?, provider = ?,
	video_url = ?, embed_code = ?, html = ?, form_kind = ?, updated_at = ?
WHERE id = ?
RETURNING ` + blockColumns

// UpdateContentBlockParams holds the arguments for UpdateContentBlock.
// The kind tag is immutable once created.
type UpdateContentBlockParams struct {
	ID        int64
	Title     string
	Ordering  int64
	IsActive  bool
	Body      string
	Provider  string
	VideoURL  string
	EmbedCode string
	HTML      string
	FormKind  string
}

// UpdateContentBlock rewrites a block's payload and returns the stored row.
func (q *Queries) UpdateContentBlock(ctx context.Context, arg UpdateContentBlockParams) (model.ContentBlock, error) {
	row := q.db.QueryRowContext(ctx, updateContentBlock,
		arg.Title, arg.Ordering, arg.IsActive, arg.Body, arg.Provider,
		arg.VideoURL, arg.EmbedCode, arg.HTML, arg.FormKind, time.Now(), arg.ID)
	return scanContentBlock(row)
}

const deleteContentBlock = `DELETE FROM content_blocks WHERE id = ?`

// DeleteContentBlock removes a block; its inner rows cascade.
func (q *Queries) DeleteContentBlock(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteContentBlock, id)
	return err
}

func (q *Queries) queryBlocks(ctx context.Context, query string, args ...any) ([]model.ContentBlock, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []model.ContentBlock
	for rows.Next() {
		b, err := scanContentBlock(rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

func scanContentBlock(r rowScanner) (model.ContentBlock, error) {
	var b model.ContentBlock
	err := r.Scan(&b.ID, &b.PageID, &b.Kind, &b.Title, &b.Ordering, &b.IsActive, &b.Body,
		&b.Provider, &b.VideoURL, &b.EmbedCode, &b.HTML, &b.FormKind, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

const galleryImageColumns = `id, block_id, image_path, caption, ordering, is_active, created_at, updated_at`

const createGalleryImage = `
INSERT INTO gallery_images (block_id, image_path, caption, ordering, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING ` + galleryImageColumns

// CreateGalleryImageParams holds the arguments for CreateGalleryImage.
type CreateGalleryImageParams struct {
	BlockID   int64
	ImagePath string
	Caption   string
	Ordering  int64
	IsActive  bool
}

// CreateGalleryImage inserts a gallery image row.
func (q *Queries) CreateGalleryImage(ctx context.Context, arg CreateGalleryImageParams) (model.GalleryImage, error) {
	now := time.Now()
	row := q.db.QueryRowContext(ctx, createGalleryImage,
		arg.BlockID, arg.ImagePath, arg.Caption, arg.Ordering, arg.IsActive, now, now)
	var g model.GalleryImage
	err := row.Scan(&g.ID, &g.BlockID, &g.ImagePath, &g.Caption, &g.Ordering, &g.IsActive,
		&g.CreatedAt, &g.UpdatedAt)
	return g, err
}

const listActiveGalleryImages = `
SELECT ` + galleryImageColumns + ` FROM gallery_images
WHERE block_id = ? AND is_active = 1 ORDER BY ordering, id`

// ListActiveGalleryImages returns a gallery block's active images in order.
func (q *Queries) ListActiveGalleryImages(ctx context.Context, blockID int64) ([]model.GalleryImage, error) {
	rows, err := q.db.QueryContext(ctx, listActiveGalleryImages, blockID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []model.GalleryImage
	for rows.Next() {
		var g model.GalleryImage
		if err := rows.Scan(&g.ID, &g.BlockID, &g.ImagePath, &g.Caption, &g.Ordering,
			&g.IsActive, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		images = append(images, g)
	}
	return images, rows.Err()
}

const listGalleryImages = `
SELECT ` + galleryImageColumns + ` FROM gallery_images
WHERE block_id = ? ORDER BY ordering, id`

// ListGalleryImages returns all of a gallery block's images, inactive included.
func (q *Queries) ListGalleryImages(ctx context.Context, blockID int64) ([]model.GalleryImage, error) {
	rows, err := q.db.QueryContext(ctx, listGalleryImages, blockID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []model.GalleryImage
	for rows.Next() {
		var g model.GalleryImage
		if err := rows.Scan(&g.ID, &g.BlockID, &g.ImagePath, &g.Caption, &g.Ordering,
			&g.IsActive, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		images = append(images, g)
	}
	return images, rows.Err()
}

const deleteGalleryImage = `DELETE FROM gallery_images WHERE id = ?`

// DeleteGalleryImage removes a gallery image row.
func (q *Queries) DeleteGalleryImage(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteGalleryImage, id)
	return err
}

const downloadFileColumns = `id, block_id, file_path, title, description, ordering, is_active, created_at, updated_at`

const createDownloadFile = `
INSERT INTO download_files (block_id, file_path, title, description, ordering, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + downloadFileColumns

// CreateDownloadFileParams holds the arguments for CreateDownloadFile.
type CreateDownloadFileParams struct {
	BlockID     int64
	FilePath    string
	Title       string
	Description string
	Ordering    int64
	IsActive    bool
}

// CreateDownloadFile inserts a download file row.
func (q *Queries) CreateDownloadFile(ctx context.Context, arg CreateDownloadFileParams) (model.DownloadFile, error) {
	now := time.Now()
	row := q.db.QueryRowContext(ctx, createDownloadFile,
		arg.BlockID, arg.FilePath, arg.Title, arg.Description, arg.Ordering, arg.IsActive, now, now)
	var f model.DownloadFile
	err := row.Scan(&f.ID, &f.BlockID, &f.FilePath, &f.Title, &f.Description, &f.Ordering,
		&f.IsActive, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

const listActiveDownloadFiles = `
SELECT ` + downloadFileColumns + ` FROM download_files
WHERE block_id = ? AND is_active = 1 ORDER BY ordering, id`

// ListActiveDownloadFiles returns a downloads block's active files in order.
func (q *Queries) ListActiveDownloadFiles(ctx context.Context, blockID int64) ([]model.DownloadFile, error) {
	rows, err := q.db.QueryContext(ctx, listActiveDownloadFiles, blockID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []model.DownloadFile
	for rows.Next() {
		var f model.DownloadFile
		if err := rows.Scan(&f.ID, &f.BlockID, &f.FilePath, &f.Title, &f.Description,
			&f.Ordering, &f.IsActive, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

const listDownloadFiles = `
SELECT ` + downloadFileColumns + ` FROM download_files
WHERE block_id = ? ORDER BY ordering, id`

// ListDownloadFiles returns all of a downloads block's files, inactive included.
func (q *Queries) ListDownloadFiles(ctx context.Context, blockID int64) ([]model.DownloadFile, error) {
	rows, err := q.db.QueryContext(ctx, listDownloadFiles, blockID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []model.DownloadFile
	for rows.Next() {
		var f model.DownloadFile
		if err := rows.Scan(&f.ID, &f.BlockID, &f.FilePath, &f.Title, &f.Description,
			&f.Ordering, &f.IsActive, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

const deleteDownloadFile = `DELETE FROM download_files WHERE id = ?`

// DeleteDownloadFile removes a download file row.
func (q *Queries) DeleteDownloadFile(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteDownloadFile, id)
	return err
}
