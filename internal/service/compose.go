// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/store"
)

// ErrNotFound reports that a requested page is absent or inactive.
var ErrNotFound = errors.New("page not found")

// Block is a single rendered content block. Kind selects which payload
// fields are meaningful, mirroring the stored tagged union.
type Block struct {
	ID       int64
	Kind     string
	Title    string
	Ordering int64

	// rich_text, table
	HTML string

	// video
	Provider  string
	VideoURL  string
	EmbedCode string

	// gallery
	Images []model.GalleryImage

	// downloads
	Files []model.DownloadFile

	// form
	FormKind string
}

// ComposedPage is a page with its ordered block sequence.
type ComposedPage struct {
	Page   model.Page
	Blocks []Block
}

// PageService composes pages: it loads a page by slug and merges its
// active blocks into one deterministically ordered sequence.
type PageService struct {
	queries *store.Queries
}

// NewPageService creates a PageService.
func NewPageService(queries *store.Queries) *PageService {
	return &PageService{queries: queries}
}

// Compose loads a page and its block sequence. Blocks are ordered by
// (ordering, kind rank, id), so the sequence is stable even when every
// ordering is left at zero. Returns ErrNotFound when the page is absent
// or inactive.
func (s *PageService) Compose(ctx context.Context, slug string) (*ComposedPage, error) {
	page, err := s.queries.GetActivePageBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	stored, err := s.queries.ListActivePageBlocks(ctx, page.ID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(stored, func(i, j int) bool {
		a, b := stored[i], stored[j]
		if a.Ordering != b.Ordering {
			return a.Ordering < b.Ordering
		}
		if ra, rb := model.KindRank(a.Kind), model.KindRank(b.Kind); ra != rb {
			return ra < rb
		}
		return a.ID < b.ID
	})

	blocks := make([]Block, 0, len(stored))
	for _, cb := range stored {
		b, err := s.expand(ctx, cb)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}

	return &ComposedPage{Page: page, Blocks: blocks}, nil
}

// expand loads a block's inner rows where its kind owns any.
func (s *PageService) expand(ctx context.Context, cb model.ContentBlock) (Block, error) {
	b := Block{
		ID:       cb.ID,
		Kind:     cb.Kind,
		Title:    cb.Title,
		Ordering: cb.Ordering,
	}

	switch cb.Kind {
	case model.BlockRichText:
		b.HTML = cb.Body
	case model.BlockTable:
		b.HTML = cb.HTML
	case model.BlockVideo:
		b.Provider = cb.Provider
		b.VideoURL = cb.VideoURL
		b.EmbedCode = cb.EmbedCode
	case model.BlockForm:
		b.FormKind = cb.FormKind
	case model.BlockGallery:
		images, err := s.queries.ListActiveGalleryImages(ctx, cb.ID)
		if err != nil {
			return Block{}, err
		}
		b.Images = images
	case model.BlockDownloads:
		files, err := s.queries.ListActiveDownloadFiles(ctx, cb.ID)
		if err != nil {
			return Block{}, err
		}
		b.Files = files
	}

	return b, nil
}
