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

// SlidersHandler handles hero slider image management routes.
type SlidersHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	records        *cache.ActiveRecordCache
}

// NewSlidersHandler creates a new SlidersHandler.
func NewSlidersHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, records *cache.ActiveRecordCache) *SlidersHandler {
	return &SlidersHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
		records:        records,
	}
}

func (h *SlidersHandler) invalidate(r *http.Request) {
	if h.records != nil {
		h.records.InvalidateSiteContext(r.Context())
	}
}

// SlidersListData holds data for the slider images list template.
type SlidersListData struct {
	Sliders []model.SliderImage
	Now     time.Time
}

// List handles GET /admin/sliders.
func (h *SlidersHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	sliders, err := h.queries.ListSliderImages(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list slider images", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/sliders_list", render.TemplateData{
		Title: "Slider Images",
		User:  user,
		Data:  SlidersListData{Sliders: sliders, Now: time.Now()},
		Breadcrumbs: []render.Breadcrumb{
			{Label: "Dashboard", URL: redirectAdmin},
			{Label: "Slider Images", URL: redirectAdminSliders, Active: true},
		},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// SliderFormData holds data for the slider image form template.
type SliderFormData struct {
	Slider     *model.SliderImage
	Errors     map[string]string
	FormValues map[string]string
	IsEdit     bool
}

// NewForm handles GET /admin/sliders/new.
func (h *SlidersHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, nil, make(map[string]string), make(map[string]string))
}

// Create handles POST /admin/sliders.
func (h *SlidersHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminSliders+RouteSuffixNew) {
		return
	}

	arg, errors, formValues := sliderParamsFromForm(r)
	if len(errors) > 0 {
		h.renderForm(w, r, nil, errors, formValues)
		return
	}

	s, err := h.queries.CreateSliderImage(r.Context(), arg)
	if err != nil {
		slog.Error("failed to create slider image", "error", err)
		flashError(w, r, h.renderer, redirectAdminSliders+RouteSuffixNew, "Error creating slider image")
		return
	}

	h.invalidate(r)
	slog.Info("slider image created", "category", "content", "slider_id", s.ID)
	flashSuccess(w, r, h.renderer, redirectAdminSliders, "Slider image created successfully")
}

// EditForm handles GET /admin/sliders/{id}.
func (h *SlidersHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminSliders, "Invalid slider image ID")
		return
	}

	s, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminSliders, "slider image", id,
		func(id int64) (model.SliderImage, error) { return h.queries.GetSliderImageByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, &s, make(map[string]string), make(map[string]string))
}

// Update handles POST /admin/sliders/{id}.
func (h *SlidersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminSliders, "Invalid slider image ID")
		return
	}

	s, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminSliders, "slider image", id,
		func(id int64) (model.SliderImage, error) { return h.queries.GetSliderImageByID(r.Context(), id) })
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminSliders) {
		return
	}

	arg, errors, formValues := sliderParamsFromForm(r)
	if len(errors) > 0 {
		h.renderForm(w, r, &s, errors, formValues)
		return
	}

	if _, err := h.queries.UpdateSliderImage(r.Context(), store.UpdateSliderImageParams{
		ID:         id,
		Title:      arg.Title,
		Caption:    arg.Caption,
		ImagePath:  arg.ImagePath,
		LinkURL:    arg.LinkURL,
		ButtonText: arg.ButtonText,
		Ordering:   arg.Ordering,
		IsActive:   arg.IsActive,
		StartDate:  arg.StartDate,
		EndDate:    arg.EndDate,
	}); err != nil {
		slog.Error("failed to update slider image", "error", err, "slider_id", id)
		flashError(w, r, h.renderer, redirectAdminSliders, "Error updating slider image")
		return
	}

	h.invalidate(r)
	slog.Info("slider image updated", "category", "content", "slider_id", id)
	flashSuccess(w, r, h.renderer, redirectAdminSliders, "Slider image updated successfully")
}

// Delete handles POST /admin/sliders/{id}/delete.
func (h *SlidersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminSliders, "Invalid slider image ID")
		return
	}

	if err := h.queries.DeleteSliderImage(r.Context(), id); err != nil {
		slog.Error("failed to delete slider image", "error", err, "slider_id", id)
		flashError(w, r, h.renderer, redirectAdminSliders, "Error deleting slider image")
		return
	}

	h.invalidate(r)
	slog.Info("slider image deleted", "category", "content", "slider_id", id)
	flashSuccess(w, r, h.renderer, redirectAdminSliders, "Slider image deleted successfully")
}

func sliderParamsFromForm(r *http.Request) (store.CreateSliderImageParams, map[string]string, map[string]string) {
	title := formString(r, "title")
	imagePath := formString(r, "image_path")
	linkURL := formString(r, "link_url")
	startRaw := formString(r, "start_date")
	endRaw := formString(r, "end_date")

	formValues := map[string]string{
		"title":       title,
		"caption":     formString(r, "caption"),
		"image_path":  imagePath,
		"link_url":    linkURL,
		"button_text": formString(r, "button_text"),
		"start_date":  startRaw,
		"end_date":    endRaw,
		"ordering":    formString(r, "ordering"),
	}

	errors := make(map[string]string)

	if title == "" {
		errors["title"] = "Title is required"
	}
	if imagePath == "" {
		errors["image_path"] = "Image path is required"
	}
	if linkURL != "" && !util.IsValidLinkURL(linkURL) {
		errors["link_url"] = "Invalid link URL"
	}

	startDate := util.ParseNullTime(startRaw)
	if startRaw != "" && !startDate.Valid {
		errors["start_date"] = "Invalid start date"
	}
	endDate := util.ParseNullTime(endRaw)
	if endRaw != "" && !endDate.Valid {
		errors["end_date"] = "Invalid end date"
	}
	if startDate.Valid && endDate.Valid && endDate.Time.Before(startDate.Time) {
		errors["end_date"] = "End date must not be before start date"
	}

	arg := store.CreateSliderImageParams{
		Title:      title,
		Caption:    formString(r, "caption"),
		ImagePath:  imagePath,
		LinkURL:    linkURL,
		ButtonText: formString(r, "button_text"),
		Ordering:   formInt64(r, "ordering", 0),
		IsActive:   formBool(r, "is_active"),
		StartDate:  startDate,
		EndDate:    endDate,
	}
	return arg, errors, formValues
}

func (h *SlidersHandler) renderForm(w http.ResponseWriter, r *http.Request, s *model.SliderImage, errors, formValues map[string]string) {
	user := middleware.GetUser(r)

	title := "New Slider Image"
	crumbs := []render.Breadcrumb{
		{Label: "Dashboard", URL: redirectAdmin},
		{Label: "Slider Images", URL: redirectAdminSliders},
	}
	if s != nil {
		title = fmt.Sprintf("Edit Slider Image - %s", s.Title)
		crumbs = append(crumbs, render.Breadcrumb{
			Label: s.Title, URL: fmt.Sprintf("%s/%d", redirectAdminSliders, s.ID), Active: true})
	} else {
		crumbs = append(crumbs, render.Breadcrumb{
			Label: "New Slider Image", URL: redirectAdminSliders + RouteSuffixNew, Active: true})
	}

	if err := h.renderer.Render(w, r, "admin/sliders_form", render.TemplateData{
		Title: title,
		User:  user,
		Data: SliderFormData{
			Slider:     s,
			Errors:     errors,
			FormValues: formValues,
			IsEdit:     s != nil,
		},
		Breadcrumbs: crumbs,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}
