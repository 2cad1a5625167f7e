// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/microcosm-cc/bluemonday"

	"github.com/campuscms/campuscms/internal/cache"
	"github.com/campuscms/campuscms/internal/middleware"
	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/render"
	"github.com/campuscms/campuscms/internal/service"
	"github.com/campuscms/campuscms/internal/store"
	"github.com/campuscms/campuscms/internal/util"
)

// htmlPolicy sanitizes editor-supplied HTML before it is stored. Rich
// text and table markup pass through, scripts and event handlers do not.
var htmlPolicy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowTables()
	p.AllowAttrs("class").Globally()
	return p
}()

// PagesHandler handles page and content block management routes.
type PagesHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	menus          *service.MenuService
	records        *cache.ActiveRecordCache
}

// NewPagesHandler creates a new PagesHandler.
func NewPagesHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, menus *service.MenuService, records *cache.ActiveRecordCache) *PagesHandler {
	return &PagesHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
		menus:          menus,
		records:        records,
	}
}

// invalidate drops cached state derived from pages. Menu entries link to
// pages by slug, so the menu cache goes too.
func (h *PagesHandler) invalidate(r *http.Request) {
	if h.menus != nil {
		h.menus.InvalidateCache()
	}
	if h.records != nil {
		h.records.InvalidateSiteContext(r.Context())
	}
}

// PagesListData holds data for the pages list template.
type PagesListData struct {
	Pages []model.Page
}

// List handles GET /admin/pages.
func (h *PagesHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	pages, err := h.queries.ListPages(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list pages", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/pages_list", render.TemplateData{
		Title: "Pages",
		User:  user,
		Data:  PagesListData{Pages: pages},
		Breadcrumbs: []render.Breadcrumb{
			{Label: "Dashboard", URL: redirectAdmin},
			{Label: "Pages", URL: redirectAdminPages, Active: true},
		},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// PageFormData holds data for the page editor template.
type PageFormData struct {
	Page       *model.Page
	Blocks     []BlockView
	Templates  []string
	BlockKinds []string
	Providers  []string
	FormKinds  []string
	Errors     map[string]string
	FormValues map[string]string
	IsEdit     bool
}

// BlockView pairs a content block with its owned rows for the editor.
type BlockView struct {
	Block  model.ContentBlock
	Images []model.GalleryImage
	Files  []model.DownloadFile
}

// NewForm handles GET /admin/pages/new.
func (h *PagesHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, nil, make(map[string]string), make(map[string]string))
}

// Create handles POST /admin/pages.
func (h *PagesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminPages+RouteSuffixNew) {
		return
	}

	arg, errors, formValues := h.pageParamsFromForm(r, 0)
	if len(errors) > 0 {
		h.renderForm(w, r, nil, errors, formValues)
		return
	}

	page, err := h.queries.CreatePage(r.Context(), arg)
	if err != nil {
		slog.Error("failed to create page", "error", err)
		flashError(w, r, h.renderer, redirectAdminPages+RouteSuffixNew, "Error creating page")
		return
	}

	h.invalidate(r)
	slog.Info("page created", "category", "page", "page_id", page.ID, "slug", page.Slug)
	flashSuccess(w, r, h.renderer, fmt.Sprintf("%s/%d", redirectAdminPages, page.ID), "Page created successfully")
}

// EditForm handles GET /admin/pages/{id} - the page editor with blocks.
func (h *PagesHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminPages, "Invalid page ID")
		return
	}

	page, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminPages, "page", id,
		func(id int64) (model.Page, error) { return h.queries.GetPageByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, &page, make(map[string]string), make(map[string]string))
}

// Update handles POST /admin/pages/{id}.
func (h *PagesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminPages, "Invalid page ID")
		return
	}
	pageURL := fmt.Sprintf("%s/%d", redirectAdminPages, id)

	page, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminPages, "page", id,
		func(id int64) (model.Page, error) { return h.queries.GetPageByID(r.Context(), id) })
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, pageURL) {
		return
	}

	arg, errors, formValues := h.pageParamsFromForm(r, id)
	if len(errors) > 0 {
		h.renderForm(w, r, &page, errors, formValues)
		return
	}

	if _, err := h.queries.UpdatePage(r.Context(), store.UpdatePageParams{
		ID:              id,
		Title:           arg.Title,
		Slug:            arg.Slug,
		BannerImage:     arg.BannerImage,
		ShowBanner:      arg.ShowBanner,
		ShowSidebar:     arg.ShowSidebar,
		EnableSearch:    arg.EnableSearch,
		MetaTitle:       arg.MetaTitle,
		MetaDescription: arg.MetaDescription,
		MetaKeywords:    arg.MetaKeywords,
		Template:        arg.Template,
		IsActive:        arg.IsActive,
	}); err != nil {
		slog.Error("failed to update page", "error", err, "page_id", id)
		flashError(w, r, h.renderer, pageURL, "Error updating page")
		return
	}

	h.invalidate(r)
	slog.Info("page updated", "category", "page", "page_id", id, "slug", arg.Slug)
	flashSuccess(w, r, h.renderer, pageURL, "Page updated successfully")
}

// Delete handles POST /admin/pages/{id}/delete. Blocks cascade.
func (h *PagesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminPages, "Invalid page ID")
		return
	}

	if err := h.queries.DeletePage(r.Context(), id); err != nil {
		slog.Error("failed to delete page", "error", err, "page_id", id)
		flashError(w, r, h.renderer, redirectAdminPages, "Error deleting page")
		return
	}

	h.invalidate(r)
	slog.Info("page deleted", "category", "page", "page_id", id)
	flashSuccess(w, r, h.renderer, redirectAdminPages, "Page deleted successfully")
}

func (h *PagesHandler) pageParamsFromForm(r *http.Request, excludeID int64) (store.CreatePageParams, map[string]string, map[string]string) {
	title := formString(r, "title")
	slug := formString(r, "slug")
	template := formString(r, "template")

	formValues := map[string]string{
		"title":            title,
		"slug":             slug,
		"template":         template,
		"meta_title":       formString(r, "meta_title"),
		"meta_description": formString(r, "meta_description"),
		"meta_keywords":    formString(r, "meta_keywords"),
	}

	errors := make(map[string]string)

	if len(title) < 2 {
		errors["title"] = "Title must be at least 2 characters"
	}

	if slug == "" {
		slug = util.Slugify(title)
		formValues["slug"] = slug
	}
	if slug == "" {
		errors["slug"] = "Slug is required"
	} else if !util.IsValidSlug(slug) {
		errors["slug"] = "Invalid slug format"
	} else if count, err := h.queries.CountPageSlug(r.Context(), slug, excludeID); err == nil && count > 0 {
		errors["slug"] = "Slug already exists"
	}

	if template == "" {
		template = model.TemplateDefault
	}
	if !model.IsValidPageTemplate(template) {
		errors["template"] = "Invalid page template"
	}

	arg := store.CreatePageParams{
		Title:           title,
		Slug:            slug,
		BannerImage:     formString(r, "banner_image"),
		ShowBanner:      formBool(r, "show_banner"),
		ShowSidebar:     formBool(r, "show_sidebar"),
		EnableSearch:    formBool(r, "enable_search"),
		MetaTitle:       formString(r, "meta_title"),
		MetaDescription: formString(r, "meta_description"),
		MetaKeywords:    formString(r, "meta_keywords"),
		Template:        template,
		IsActive:        formBool(r, "is_active"),
	}
	return arg, errors, formValues
}

func (h *PagesHandler) renderForm(w http.ResponseWriter, r *http.Request, page *model.Page, errors, formValues map[string]string) {
	user := middleware.GetUser(r)

	data := PageFormData{
		Page:       page,
		Templates:  model.PageTemplates,
		BlockKinds: model.BlockKinds,
		Providers:  model.VideoProviders,
		FormKinds:  model.FormKinds,
		Errors:     errors,
		FormValues: formValues,
		IsEdit:     page != nil,
	}

	title := "New Page"
	crumbs := []render.Breadcrumb{
		{Label: "Dashboard", URL: redirectAdmin},
		{Label: "Pages", URL: redirectAdminPages},
	}

	if page != nil {
		title = fmt.Sprintf("Edit Page - %s", page.Title)
		crumbs = append(crumbs, render.Breadcrumb{
			Label: page.Title, URL: fmt.Sprintf("%s/%d", redirectAdminPages, page.ID), Active: true})

		blocks, err := h.queries.ListPageBlocks(r.Context(), page.ID)
		if err != nil {
			slog.Error("failed to list page blocks", "error", err, "page_id", page.ID)
			blocks = nil
		}
		for _, b := range blocks {
			view := BlockView{Block: b}
			switch b.Kind {
			case model.BlockGallery:
				view.Images, _ = h.queries.ListGalleryImages(r.Context(), b.ID)
			case model.BlockDownloads:
				view.Files, _ = h.queries.ListDownloadFiles(r.Context(), b.ID)
			}
			data.Blocks = append(data.Blocks, view)
		}
	} else {
		crumbs = append(crumbs, render.Breadcrumb{
			Label: "New Page", URL: redirectAdminPages + RouteSuffixNew, Active: true})
	}

	if err := h.renderer.Render(w, r, "admin/pages_form", render.TemplateData{
		Title:       title,
		User:        user,
		Data:        data,
		Breadcrumbs: crumbs,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// CreateBlock handles POST /admin/pages/{id}/blocks.
func (h *PagesHandler) CreateBlock(w http.ResponseWriter, r *http.Request) {
	pageID := parseIDParam(r, "id")
	if pageID == 0 {
		flashError(w, r, h.renderer, redirectAdminPages, "Invalid page ID")
		return
	}
	pageURL := fmt.Sprintf("%s/%d", redirectAdminPages, pageID)

	if _, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminPages, "page", pageID,
		func(id int64) (model.Page, error) { return h.queries.GetPageByID(r.Context(), id) }); !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, pageURL) {
		return
	}

	kind := formString(r, "kind")
	if !model.IsValidBlockKind(kind) {
		flashError(w, r, h.renderer, pageURL, "Invalid block kind")
		return
	}

	payload, errMsg := blockPayloadFromForm(r, kind)
	if errMsg != "" {
		flashError(w, r, h.renderer, pageURL, errMsg)
		return
	}

	block, err := h.queries.CreateContentBlock(r.Context(), store.CreateContentBlockParams{
		PageID:    pageID,
		Kind:      kind,
		Title:     formString(r, "title"),
		Ordering:  formInt64(r, "ordering", 0),
		IsActive:  formBool(r, "is_active"),
		Body:      payload.body,
		Provider:  payload.provider,
		VideoURL:  payload.videoURL,
		EmbedCode: payload.embedCode,
		HTML:      payload.html,
		FormKind:  payload.formKind,
	})
	if err != nil {
		slog.Error("failed to create content block", "error", err, "page_id", pageID)
		flashError(w, r, h.renderer, pageURL, "Error creating block")
		return
	}

	h.invalidate(r)
	slog.Info("content block created", "category", "page", "block_id", block.ID, "page_id", pageID, "kind", kind)
	flashSuccess(w, r, h.renderer, pageURL, "Block added successfully")
}

// UpdateBlock handles POST /admin/pages/{id}/blocks/{blockId}. The kind
// tag is fixed at creation and cannot change here.
func (h *PagesHandler) UpdateBlock(w http.ResponseWriter, r *http.Request) {
	pageID := parseIDParam(r, "id")
	blockID := parseIDParam(r, "blockId")
	if pageID == 0 || blockID == 0 {
		flashError(w, r, h.renderer, redirectAdminPages, "Invalid block ID")
		return
	}
	pageURL := fmt.Sprintf("%s/%d", redirectAdminPages, pageID)

	block, ok := h.requireBlock(w, r, pageURL, pageID, blockID)
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, pageURL) {
		return
	}

	payload, errMsg := blockPayloadFromForm(r, block.Kind)
	if errMsg != "" {
		flashError(w, r, h.renderer, pageURL, errMsg)
		return
	}

	if _, err := h.queries.UpdateContentBlock(r.Context(), store.UpdateContentBlockParams{
		ID:        blockID,
		Title:     formString(r, "title"),
		Ordering:  formInt64(r, "ordering", 0),
		IsActive:  formBool(r, "is_active"),
		Body:      payload.body,
		Provider:  payload.provider,
		VideoURL:  payload.videoURL,
		EmbedCode: payload.embedCode,
		HTML:      payload.html,
		FormKind:  payload.formKind,
	}); err != nil {
		slog.Error("failed to update content block", "error", err, "block_id", blockID)
		flashError(w, r, h.renderer, pageURL, "Error updating block")
		return
	}

	h.invalidate(r)
	slog.Info("content block updated", "category", "page", "block_id", blockID, "page_id", pageID)
	flashSuccess(w, r, h.renderer, pageURL, "Block updated successfully")
}

// DeleteBlock handles POST /admin/pages/{id}/blocks/{blockId}/delete.
func (h *PagesHandler) DeleteBlock(w http.ResponseWriter, r *http.Request) {
	pageID := parseIDParam(r, "id")
	blockID := parseIDParam(r, "blockId")
	if pageID == 0 || blockID == 0 {
		flashError(w, r, h.renderer, redirectAdminPages, "Invalid block ID")
		return
	}
	pageURL := fmt.Sprintf("%s/%d", redirectAdminPages, pageID)

	if _, ok := h.requireBlock(w, r, pageURL, pageID, blockID); !ok {
		return
	}

	if err := h.queries.DeleteContentBlock(r.Context(), blockID); err != nil {
		slog.Error("failed to delete content block", "error", err, "block_id", blockID)
		flashError(w, r, h.renderer, pageURL, "Error deleting block")
		return
	}

	h.invalidate(r)
	slog.Info("content block deleted", "category", "page", "block_id", blockID, "page_id", pageID)
	flashSuccess(w, r, h.renderer, pageURL, "Block deleted successfully")
}

// CreateGalleryImage handles POST /admin/pages/{id}/blocks/{blockId}/images.
func (h *PagesHandler) CreateGalleryImage(w http.ResponseWriter, r *http.Request) {
	pageID := parseIDParam(r, "id")
	blockID := parseIDParam(r, "blockId")
	if pageID == 0 || blockID == 0 {
		flashError(w, r, h.renderer, redirectAdminPages, "Invalid block ID")
		return
	}
	pageURL := fmt.Sprintf("%s/%d", redirectAdminPages, pageID)

	block, ok := h.requireBlock(w, r, pageURL, pageID, blockID)
	if !ok {
		return
	}
	if block.Kind != model.BlockGallery {
		flashError(w, r, h.renderer, pageURL, "Images can only be added to gallery blocks")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, pageURL) {
		return
	}

	imagePath := formString(r, "image_path")
	if imagePath == "" {
		flashError(w, r, h.renderer, pageURL, "Image path is required")
		return
	}

	img, err := h.queries.CreateGalleryImage(r.Context(), store.CreateGalleryImageParams{
		BlockID:   blockID,
		ImagePath: imagePath,
		Caption:   formString(r, "caption"),
		Ordering:  formInt64(r, "ordering", 0),
		IsActive:  formBool(r, "is_active"),
	})
	if err != nil {
		slog.Error("failed to create gallery image", "error", err, "block_id", blockID)
		flashError(w, r, h.renderer, pageURL, "Error adding image")
		return
	}

	h.invalidate(r)
	slog.Info("gallery image created", "category", "page", "image_id", img.ID, "block_id", blockID)
	flashSuccess(w, r, h.renderer, pageURL, "Image added successfully")
}

// DeleteGalleryImage handles POST /admin/pages/{id}/blocks/{blockId}/images/{imageId}/delete.
func (h *PagesHandler) DeleteGalleryImage(w http.ResponseWriter, r *http.Request) {
	pageID := parseIDParam(r, "id")
	imageID := parseIDParam(r, "imageId")
	if pageID == 0 || imageID == 0 {
		flashError(w, r, h.renderer, redirectAdminPages, "Invalid image ID")
		return
	}
	pageURL := fmt.Sprintf("%s/%d", redirectAdminPages, pageID)

	if err := h.queries.DeleteGalleryImage(r.Context(), imageID); err != nil {
		slog.Error("failed to delete gallery image", "error", err, "image_id", imageID)
		flashError(w, r, h.renderer, pageURL, "Error deleting image")
		return
	}

	h.invalidate(r)
	slog.Info("gallery image deleted", "category", "page", "image_id", imageID)
	flashSuccess(w, r, h.renderer, pageURL, "Image deleted successfully")
}

// CreateDownloadFile handles POST /admin/pages/{id}/blocks/{blockId}/files.
func (h *PagesHandler) CreateDownloadFile(w http.ResponseWriter, r *http.Request) {
	pageID := parseIDParam(r, "id")
	blockID := parseIDParam(r, "blockId")
	if pageID == 0 || blockID == 0 {
		flashError(w, r, h.renderer, redirectAdminPages, "Invalid block ID")
		return
	}
	pageURL := fmt.Sprintf("%s/%d", redirectAdminPages, pageID)

	block, ok := h.requireBlock(w, r, pageURL, pageID, blockID)
	if !ok {
		return
	}
	if block.Kind != model.BlockDownloads {
		flashError(w, r, h.renderer, pageURL, "Files can only be added to downloads blocks")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, pageURL) {
		return
	}

	filePath := formString(r, "file_path")
	fileTitle := formString(r, "title")
	if filePath == "" || fileTitle == "" {
		flashError(w, r, h.renderer, pageURL, "File path and title are required")
		return
	}

	f, err := h.queries.CreateDownloadFile(r.Context(), store.CreateDownloadFileParams{
		BlockID:     blockID,
		FilePath:    filePath,
		Title:       fileTitle,
		Description: formString(r, "description"),
		Ordering:    formInt64(r, "ordering", 0),
		IsActive:    formBool(r, "is_active"),
	})
	if err != nil {
		slog.Error("failed to create download file", "error", err, "block_id", blockID)
		flashError(w, r, h.renderer, pageURL, "Error adding file")
		return
	}

	h.invalidate(r)
	slog.Info("download file created", "category", "page", "file_id", f.ID, "block_id", blockID)
	flashSuccess(w, r, h.renderer, pageURL, "File added successfully")
}

// DeleteDownloadFile handles POST /admin/pages/{id}/blocks/{blockId}/files/{fileId}/delete.
func (h *PagesHandler) DeleteDownloadFile(w http.ResponseWriter, r *http.Request) {
	pageID := parseIDParam(r, "id")
	fileID := parseIDParam(r, "fileId")
	if pageID == 0 || fileID == 0 {
		flashError(w, r, h.renderer, redirectAdminPages, "Invalid file ID")
		return
	}
	pageURL := fmt.Sprintf("%s/%d", redirectAdminPages, pageID)

	if err := h.queries.DeleteDownloadFile(r.Context(), fileID); err != nil {
		slog.Error("failed to delete download file", "error", err, "file_id", fileID)
		flashError(w, r, h.renderer, pageURL, "Error deleting file")
		return
	}

	h.invalidate(r)
	slog.Info("download file deleted", "category", "page", "file_id", fileID)
	flashSuccess(w, r, h.renderer, pageURL, "File deleted successfully")
}

func (h *PagesHandler) requireBlock(w http.ResponseWriter, r *http.Request, pageURL string, pageID, blockID int64) (model.ContentBlock, bool) {
	block, ok := requireEntityWithRedirect(w, r, h.renderer, pageURL, "block", blockID,
		func(id int64) (model.ContentBlock, error) { return h.queries.GetContentBlockByID(r.Context(), id) })
	if !ok {
		return model.ContentBlock{}, false
	}
	if block.PageID != pageID {
		flashError(w, r, h.renderer, pageURL, "Block belongs to another page")
		return model.ContentBlock{}, false
	}
	return block, true
}

type blockPayload struct {
	body      string
	provider  string
	videoURL  string
	embedCode string
	html      string
	formKind  string
}

// blockPayloadFromForm reads and validates the payload fields selected
// by the block kind. Stored markup is sanitized here, on write.
func blockPayloadFromForm(r *http.Request, kind string) (blockPayload, string) {
	var p blockPayload

	switch kind {
	case model.BlockRichText:
		p.body = htmlPolicy.Sanitize(r.FormValue("body"))
	case model.BlockVideo:
		p.provider = formString(r, "provider")
		if !model.IsValidVideoProvider(p.provider) {
			return p, "Invalid video provider"
		}
		p.videoURL = formString(r, "video_url")
		p.embedCode = formString(r, "embed_code")
		if p.videoURL == "" && p.embedCode == "" {
			return p, "Video blocks require a URL or embed code"
		}
		if p.videoURL != "" && !util.IsValidLinkURL(p.videoURL) {
			return p, "Invalid video URL"
		}
	case model.BlockTable:
		p.html = htmlPolicy.Sanitize(r.FormValue("html"))
		if p.html == "" {
			return p, "Table blocks require HTML content"
		}
	case model.BlockForm:
		p.formKind = formString(r, "form_kind")
		if !model.IsValidFormKind(p.formKind) {
			return p, "Invalid form kind"
		}
	}
	return p, ""
}
