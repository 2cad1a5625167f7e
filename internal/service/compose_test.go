// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/store"
)

func TestCompose_NotFound(t *testing.T) {
	db := testDB(t)
	q := store.New(db)
	ctx := context.Background()

	if _, err := q.CreatePage(ctx, store.CreatePageParams{Title: "Draft", Slug: "draft", IsActive: false}); err != nil {
		t.Fatalf("CreatePage: %v", err)
	}

	svc := NewPageService(q)

	if _, err := svc.Compose(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Compose(missing) err = %v, want ErrNotFound", err)
	}
	if _, err := svc.Compose(ctx, "draft"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Compose(inactive) err = %v, want ErrNotFound", err)
	}
}

func TestCompose_EmptyPage(t *testing.T) {
	db := testDB(t)
	q := store.New(db)
	ctx := context.Background()

	if _, err := q.CreatePage(ctx, store.CreatePageParams{Title: "Bare", Slug: "bare", IsActive: true}); err != nil {
		t.Fatalf("CreatePage: %v", err)
	}

	svc := NewPageService(q)

	composed, err := svc.Compose(ctx, "bare")
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if len(composed.Blocks) != 0 {
		t.Errorf("len(Blocks) = %d, want 0", len(composed.Blocks))
	}
	if composed.Page.Slug != "bare" {
		t.Errorf("Page.Slug = %q, want bare", composed.Page.Slug)
	}
}

func TestCompose_BlockOrdering(t *testing.T) {
	db := testDB(t)
	q := store.New(db)
	ctx := context.Background()

	page, err := q.CreatePage(ctx, store.CreatePageParams{Title: "Dept", Slug: "dept", IsActive: true})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}

	// Two blocks share ordering 0; the kind rank breaks the tie, so
	// rich_text comes before gallery.
	blocks := []store.CreateContentBlockParams{
		{PageID: page.ID, Kind: model.BlockRichText, Title: "Closing", Ordering: 1, IsActive: true, Body: "<p>closing</p>"},
		{PageID: page.ID, Kind: model.BlockGallery, Title: "Photos", Ordering: 0, IsActive: true},
		{PageID: page.ID, Kind: model.BlockRichText, Title: "Intro", Ordering: 0, IsActive: true, Body: "<p>intro</p>"},
		{PageID: page.ID, Kind: model.BlockVideo, Title: "Hidden", Ordering: 0, IsActive: false},
	}
	for _, b := range blocks {
		if _, err := q.CreateContentBlock(ctx, b); err != nil {
			t.Fatalf("CreateContentBlock(%s): %v", b.Title, err)
		}
	}

	svc := NewPageService(q)

	composed, err := svc.Compose(ctx, "dept")
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if len(composed.Blocks) != 3 {
		t.Fatalf("len(Blocks) = %d, want 3 (inactive excluded)", len(composed.Blocks))
	}

	want := []string{"Intro", "Photos", "Closing"}
	for i, w := range want {
		if composed.Blocks[i].Title != w {
			t.Errorf("Blocks[%d].Title = %q, want %q", i, composed.Blocks[i].Title, w)
		}
	}
	if composed.Blocks[0].HTML != "<p>intro</p>" {
		t.Errorf("Blocks[0].HTML = %q, want rich text body", composed.Blocks[0].HTML)
	}
}

func TestCompose_ExpandsInnerRows(t *testing.T) {
	db := testDB(t)
	q := store.New(db)
	ctx := context.Background()

	page, err := q.CreatePage(ctx, store.CreatePageParams{Title: "Library", Slug: "library", IsActive: true})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}

	gallery, err := q.CreateContentBlock(ctx, store.CreateContentBlockParams{
		PageID: page.ID, Kind: model.BlockGallery, Title: "Campus", Ordering: 0, IsActive: true,
	})
	if err != nil {
		t.Fatalf("CreateContentBlock: %v", err)
	}
	downloads, err := q.CreateContentBlock(ctx, store.CreateContentBlockParams{
		PageID: page.ID, Kind: model.BlockDownloads, Title: "Forms", Ordering: 1, IsActive: true,
	})
	if err != nil {
		t.Fatalf("CreateContentBlock: %v", err)
	}

	for i, img := range []string{"a.jpg", "b.jpg"} {
		if _, err := q.CreateGalleryImage(ctx, store.CreateGalleryImageParams{
			BlockID: gallery.ID, ImagePath: img, Ordering: int64(i), IsActive: true,
		}); err != nil {
			t.Fatalf("CreateGalleryImage: %v", err)
		}
	}
	if _, err := q.CreateGalleryImage(ctx, store.CreateGalleryImageParams{
		BlockID: gallery.ID, ImagePath: "hidden.jpg", IsActive: false,
	}); err != nil {
		t.Fatalf("CreateGalleryImage: %v", err)
	}
	if _, err := q.CreateDownloadFile(ctx, store.CreateDownloadFileParams{
		BlockID: downloads.ID, FilePath: "syllabus.pdf", Title: "Syllabus", IsActive: true,
	}); err != nil {
		t.Fatalf("CreateDownloadFile: %v", err)
	}

	svc := NewPageService(q)

	composed, err := svc.Compose(ctx, "library")
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if len(composed.Blocks) != 2 {
		t.Fatalf("len(Blocks) = %d, want 2", len(composed.Blocks))
	}
	if got := len(composed.Blocks[0].Images); got != 2 {
		t.Errorf("gallery images = %d, want 2 (inactive excluded)", got)
	}
	if got := len(composed.Blocks[1].Files); got != 1 {
		t.Errorf("download files = %d, want 1", got)
	}
	if composed.Blocks[1].Files[0].Title != "Syllabus" {
		t.Errorf("file title = %q, want Syllabus", composed.Blocks[1].Files[0].Title)
	}
}
