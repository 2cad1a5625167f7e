// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/campuscms/campuscms/internal/cache"
	"github.com/campuscms/campuscms/internal/middleware"
	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/render"
	"github.com/campuscms/campuscms/internal/store"
	"github.com/campuscms/campuscms/internal/util"
)

// NoticesHandler handles notice management routes.
type NoticesHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	records        *cache.ActiveRecordCache
}

// NewNoticesHandler creates a new NoticesHandler.
func NewNoticesHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, records *cache.ActiveRecordCache) *NoticesHandler {
	return &NoticesHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
		records:        records,
	}
}

// invalidate drops the composite site context, which carries the recent
// notice count badge.
func (h *NoticesHandler) invalidate(r *http.Request) {
	if h.records != nil {
		h.records.InvalidateSiteContext(r.Context())
	}
}

// NoticesListData holds data for the notices list template.
type NoticesListData struct {
	Notices []model.Notice
	Now     time.Time
}

// List handles GET /admin/notices.
func (h *NoticesHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	notices, err := h.queries.ListNotices(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list notices", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/notices_list", render.TemplateData{
		Title: "Notices",
		User:  user,
		Data:  NoticesListData{Notices: notices, Now: time.Now()},
		Breadcrumbs: []render.Breadcrumb{
			{Label: "Dashboard", URL: redirectAdmin},
			{Label: "Notices", URL: redirectAdminNotices, Active: true},
		},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// NoticeFormData holds data for the notice form template.
type NoticeFormData struct {
	Notice     *model.Notice
	Errors     map[string]string
	FormValues map[string]string
	IsEdit     bool
}

// NewForm handles GET /admin/notices/new.
func (h *NoticesHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, nil, make(map[string]string), make(map[string]string))
}

// Create handles POST /admin/notices.
func (h *NoticesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminNotices+RouteSuffixNew) {
		return
	}

	arg, errors, formValues := h.noticeParamsFromForm(r, 0)
	if len(errors) > 0 {
		h.renderForm(w, r, nil, errors, formValues)
		return
	}

	n, err := h.queries.CreateNotice(r.Context(), arg)
	if err != nil {
		slog.Error("failed to create notice", "error", err)
		flashError(w, r, h.renderer, redirectAdminNotices+RouteSuffixNew, "Error creating notice")
		return
	}

	h.invalidate(r)
	slog.Info("notice created", "category", "content", "notice_id", n.ID, "slug", n.Slug)
	flashSuccess(w, r, h.renderer, redirectAdminNotices, "Notice created successfully")
}

// EditForm handles GET /admin/notices/{id}.
func (h *NoticesHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminNotices, "Invalid notice ID")
		return
	}

	n, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminNotices, "notice", id,
		func(id int64) (model.Notice, error) { return h.queries.GetNoticeByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, &n, make(map[string]string), make(map[string]string))
}

// Update handles POST /admin/notices/{id}.
func (h *NoticesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminNotices, "Invalid notice ID")
		return
	}

	n, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminNotices, "notice", id,
		func(id int64) (model.Notice, error) { return h.queries.GetNoticeByID(r.Context(), id) })
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminNotices) {
		return
	}

	arg, errors, formValues := h.noticeParamsFromForm(r, id)
	if len(errors) > 0 {
		h.renderForm(w, r, &n, errors, formValues)
		return
	}

	if _, err := h.queries.UpdateNotice(r.Context(), store.UpdateNoticeParams{
		ID:             id,
		Title:          arg.Title,
		Slug:           arg.Slug,
		Content:        arg.Content,
		AttachmentPath: arg.AttachmentPath,
		PublishDate:    arg.PublishDate,
		ExpiryDate:     arg.ExpiryDate,
		IsActive:       arg.IsActive,
	}); err != nil {
		slog.Error("failed to update notice", "error", err, "notice_id", id)
		flashError(w, r, h.renderer, redirectAdminNotices, "Error updating notice")
		return
	}

	h.invalidate(r)
	slog.Info("notice updated", "category", "content", "notice_id", id)
	flashSuccess(w, r, h.renderer, redirectAdminNotices, "Notice updated successfully")
}

// Delete handles POST /admin/notices/{id}/delete.
func (h *NoticesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminNotices, "Invalid notice ID")
		return
	}

	if err := h.queries.DeleteNotice(r.Context(), id); err != nil {
		slog.Error("failed to delete notice", "error", err, "notice_id", id)
		flashError(w, r, h.renderer, redirectAdminNotices, "Error deleting notice")
		return
	}

	h.invalidate(r)
	slog.Info("notice deleted", "category", "content", "notice_id", id)
	flashSuccess(w, r, h.renderer, redirectAdminNotices, "Notice deleted successfully")
}

func (h *NoticesHandler) noticeParamsFromForm(r *http.Request, excludeID int64) (store.CreateNoticeParams, map[string]string, map[string]string) {
	title := formString(r, "title")
	slug := formString(r, "slug")
	content := r.FormValue("content")
	publishRaw := formString(r, "publish_date")
	expiryRaw := formString(r, "expiry_date")

	formValues := map[string]string{
		"title":        title,
		"slug":         slug,
		"content":      content,
		"publish_date": publishRaw,
		"expiry_date":  expiryRaw,
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
	} else if count, err := h.queries.CountNoticeSlug(r.Context(), slug, excludeID); err == nil && count > 0 {
		errors["slug"] = "Slug already exists"
	}

	publishDate := time.Now()
	if publishRaw != "" {
		if parsed := util.ParseNullTime(publishRaw); parsed.Valid {
			publishDate = parsed.Time
		} else {
			errors["publish_date"] = "Invalid publish date"
		}
	}

	expiryDate := util.ParseNullTime(expiryRaw)
	if expiryRaw != "" && !expiryDate.Valid {
		errors["expiry_date"] = "Invalid expiry date"
	}
	if expiryDate.Valid && expiryDate.Time.Before(publishDate) {
		errors["expiry_date"] = "Expiry date must not be before publish date"
	}

	arg := store.CreateNoticeParams{
		Title:          title,
		Slug:           slug,
		Content:        htmlPolicy.Sanitize(content),
		AttachmentPath: formString(r, "attachment_path"),
		PublishDate:    publishDate,
		ExpiryDate:     expiryDate,
		IsActive:       formBool(r, "is_active"),
	}
	return arg, errors, formValues
}

func (h *NoticesHandler) renderForm(w http.ResponseWriter, r *http.Request, n *model.Notice, errors, formValues map[string]string) {
	user := middleware.GetUser(r)

	title := "New Notice"
	crumbs := []render.Breadcrumb{
		{Label: "Dashboard", URL: redirectAdmin},
		{Label: "Notices", URL: redirectAdminNotices},
	}
	if n != nil {
		title = fmt.Sprintf("Edit Notice - %s", n.Title)
		crumbs = append(crumbs, render.Breadcrumb{
			Label: n.Title, URL: fmt.Sprintf("%s/%d", redirectAdminNotices, n.ID), Active: true})
	} else {
		crumbs = append(crumbs, render.Breadcrumb{
			Label: "New Notice", URL: redirectAdminNotices + RouteSuffixNew, Active: true})
	}

	if err := h.renderer.Render(w, r, "admin/notices_form", render.TemplateData{
		Title: title,
		User:  user,
		Data: NoticeFormData{
			Notice:     n,
			Errors:     errors,
			FormValues: formValues,
			IsEdit:     n != nil,
		},
		Breadcrumbs: crumbs,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}
