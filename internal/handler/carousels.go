// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/campuscms/campuscms/internal/middleware"
	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/render"
	"github.com/campuscms/campuscms/internal/service"
	"github.com/campuscms/campuscms/internal/store"
)

// carouselTransitions are the transition styles the carousel supports.
var carouselTransitions = []string{"slide", "fade"}

// CarouselsHandler handles hero carousel settings routes. Promotional
// family.
type CarouselsHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	activation     *service.ActivationService
}

// NewCarouselsHandler creates a new CarouselsHandler.
func NewCarouselsHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, activation *service.ActivationService) *CarouselsHandler {
	return &CarouselsHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
		activation:     activation,
	}
}

// CarouselsListData holds data for the carousel settings list template.
type CarouselsListData struct {
	Carousels []model.HeroCarouselSettings
}

// List handles GET /admin/carousels.
func (h *CarouselsHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	carousels, err := h.queries.ListHeroCarousels(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list carousel settings", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/carousels_list", render.TemplateData{
		Title: "Carousel Settings",
		User:  user,
		Data:  CarouselsListData{Carousels: carousels},
		Breadcrumbs: []render.Breadcrumb{
			{Label: "Dashboard", URL: redirectAdmin},
			{Label: "Carousels", URL: redirectAdminCarousels, Active: true},
		},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// CarouselFormData holds data for the carousel settings form template.
type CarouselFormData struct {
	Carousel    *model.HeroCarouselSettings
	Transitions []string
	Errors      map[string]string
	FormValues  map[string]string
	IsEdit      bool
}

// NewForm handles GET /admin/carousels/new.
func (h *CarouselsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, nil, make(map[string]string), make(map[string]string))
}

// Create handles POST /admin/carousels.
func (h *CarouselsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminCarousels+RouteSuffixNew) {
		return
	}

	c, errors, formValues := carouselFromForm(r)
	if len(errors) > 0 {
		h.renderForm(w, r, nil, errors, formValues)
		return
	}

	created, err := h.queries.CreateHeroCarousel(r.Context(), c)
	if err != nil {
		slog.Error("failed to create carousel settings", "error", err)
		flashError(w, r, h.renderer, redirectAdminCarousels+RouteSuffixNew, "Error creating carousel settings")
		return
	}

	h.activation.Invalidate(r.Context(), model.FamilyHeroCarousel)
	slog.Info("carousel settings created", "category", "config", "carousel_id", created.ID)
	flashSuccess(w, r, h.renderer, redirectAdminCarousels, "Carousel settings created successfully")
}

// EditForm handles GET /admin/carousels/{id}.
func (h *CarouselsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminCarousels, "Invalid carousel ID")
		return
	}

	c, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminCarousels, "carousel settings", id,
		func(id int64) (model.HeroCarouselSettings, error) { return h.queries.GetHeroCarouselByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, &c, make(map[string]string), make(map[string]string))
}

// Update handles POST /admin/carousels/{id}.
func (h *CarouselsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminCarousels, "Invalid carousel ID")
		return
	}
	carouselURL := fmt.Sprintf("%s/%d", redirectAdminCarousels, id)

	existing, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminCarousels, "carousel settings", id,
		func(id int64) (model.HeroCarouselSettings, error) { return h.queries.GetHeroCarouselByID(r.Context(), id) })
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, carouselURL) {
		return
	}

	c, errors, formValues := carouselFromForm(r)
	if len(errors) > 0 {
		h.renderForm(w, r, &existing, errors, formValues)
		return
	}
	c.ID = id

	if _, err := h.queries.UpdateHeroCarousel(r.Context(), c); err != nil {
		slog.Error("failed to update carousel settings", "error", err, "carousel_id", id)
		flashError(w, r, h.renderer, carouselURL, "Error updating carousel settings")
		return
	}

	h.activation.Invalidate(r.Context(), model.FamilyHeroCarousel)
	slog.Info("carousel settings updated", "category", "config", "carousel_id", id)
	flashSuccess(w, r, h.renderer, carouselURL, "Carousel settings updated successfully")
}

// Delete handles POST /admin/carousels/{id}/delete.
func (h *CarouselsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminCarousels, "Invalid carousel ID")
		return
	}

	if err := h.queries.DeleteHeroCarousel(r.Context(), id); err != nil {
		slog.Error("failed to delete carousel settings", "error", err, "carousel_id", id)
		flashError(w, r, h.renderer, redirectAdminCarousels, "Error deleting carousel settings")
		return
	}

	h.activation.Invalidate(r.Context(), model.FamilyHeroCarousel)
	slog.Info("carousel settings deleted", "category", "config", "carousel_id", id)
	flashSuccess(w, r, h.renderer, redirectAdminCarousels, "Carousel settings deleted successfully")
}

// Activate handles POST /admin/carousels/{id}/activate.
func (h *CarouselsHandler) Activate(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminCarousels, "Invalid carousel ID")
		return
	}
	activateRecord(w, r, h.renderer, h.activation, model.FamilyHeroCarousel, id, redirectAdminCarousels)
}

// Deactivate handles POST /admin/carousels/{id}/deactivate.
func (h *CarouselsHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminCarousels, "Invalid carousel ID")
		return
	}
	deactivateRecord(w, r, h.renderer, h.activation, model.FamilyHeroCarousel, id, redirectAdminCarousels)
}

func carouselFromForm(r *http.Request) (model.HeroCarouselSettings, map[string]string, map[string]string) {
	name := formString(r, "name")
	transition := formString(r, "transition")

	formValues := map[string]string{
		"name":            name,
		"transition":      transition,
		"interval_millis": formString(r, "interval_millis"),
	}

	errors := make(map[string]string)

	if name == "" {
		errors["name"] = "Name is required"
	}
	if transition == "" {
		transition = "slide"
	}
	valid := false
	for _, t := range carouselTransitions {
		if t == transition {
			valid = true
			break
		}
	}
	if !valid {
		errors["transition"] = "Invalid transition"
	}

	interval := formInt64(r, "interval_millis", 5000)
	if interval < 1000 {
		errors["interval_millis"] = "Interval must be at least 1000 milliseconds"
	}

	c := model.HeroCarouselSettings{
		Name:           name,
		Autoplay:       formBool(r, "autoplay"),
		IntervalMillis: interval,
		ShowIndicators: formBool(r, "show_indicators"),
		ShowCaptions:   formBool(r, "show_captions"),
		Transition:     transition,
	}
	return c, errors, formValues
}

func (h *CarouselsHandler) renderForm(w http.ResponseWriter, r *http.Request, c *model.HeroCarouselSettings, errors, formValues map[string]string) {
	user := middleware.GetUser(r)

	title := "New Carousel Settings"
	crumbs := []render.Breadcrumb{
		{Label: "Dashboard", URL: redirectAdmin},
		{Label: "Carousels", URL: redirectAdminCarousels},
	}
	if c != nil {
		title = fmt.Sprintf("Edit Carousel - %s", c.Name)
		crumbs = append(crumbs, render.Breadcrumb{
			Label: c.Name, URL: fmt.Sprintf("%s/%d", redirectAdminCarousels, c.ID), Active: true})
	} else {
		crumbs = append(crumbs, render.Breadcrumb{
			Label: "New Carousel", URL: redirectAdminCarousels + RouteSuffixNew, Active: true})
	}

	if err := h.renderer.Render(w, r, "admin/carousels_form", render.TemplateData{
		Title: title,
		User:  user,
		Data: CarouselFormData{
			Carousel:    c,
			Transitions: carouselTransitions,
			Errors:      errors,
			FormValues:  formValues,
			IsEdit:      c != nil,
		},
		Breadcrumbs: crumbs,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}
