// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/campuscms/campuscms/internal/cache"
	"github.com/campuscms/campuscms/internal/middleware"
	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/render"
	"github.com/campuscms/campuscms/internal/service"
	"github.com/campuscms/campuscms/internal/store"
)

// VisibilityHandler handles the navigation visibility settings form.
// The settings are a single lazily created record of fourteen flags.
type VisibilityHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	menus          *service.MenuService
	records        *cache.ActiveRecordCache
}

// NewVisibilityHandler creates a new VisibilityHandler.
func NewVisibilityHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, menus *service.MenuService, records *cache.ActiveRecordCache) *VisibilityHandler {
	return &VisibilityHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
		menus:          menus,
		records:        records,
	}
}

// VisibilityFormData holds data for the visibility settings template.
type VisibilityFormData struct {
	Settings model.VisibilitySettings
	Tags     []string
}

// Form handles GET /admin/visibility.
func (h *VisibilityHandler) Form(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	settings, err := h.queries.GetVisibilitySettings(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to load visibility settings", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/visibility_form", render.TemplateData{
		Title: "Visibility Settings",
		User:  user,
		Data:  VisibilityFormData{Settings: settings, Tags: model.VisibilityTags},
		Breadcrumbs: []render.Breadcrumb{
			{Label: "Dashboard", URL: redirectAdmin},
			{Label: "Visibility", URL: redirectAdminVisibility, Active: true},
		},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// Update handles POST /admin/visibility. Unchecked boxes arrive as
// absent form fields, so every flag is read fresh from the form.
func (h *VisibilityHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminVisibility) {
		return
	}

	settings, err := h.queries.GetVisibilitySettings(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to load visibility settings", "error", err)
		return
	}

	settings.ShowResearch = formBool(r, "show_research")
	settings.ShowPlacement = formBool(r, "show_placement")
	settings.ShowAlumni = formBool(r, "show_alumni")
	settings.ShowEvents = formBool(r, "show_events")
	settings.ShowExamTimetable = formBool(r, "show_exam_timetable")
	settings.ShowExamRevaluation = formBool(r, "show_exam_revaluation")
	settings.ShowExamQuestionPaper = formBool(r, "show_exam_question_papers")
	settings.ShowExamRules = formBool(r, "show_exam_rules")
	settings.ShowStudentPortal = formBool(r, "show_student_portal")
	settings.ShowSportsCultural = formBool(r, "show_sports_cultural")
	settings.ShowNSSNCC = formBool(r, "show_nss_ncc")
	settings.ShowResearchCenters = formBool(r, "show_research_centers")
	settings.ShowPublications = formBool(r, "show_publications")
	settings.ShowPatentsProjects = formBool(r, "show_patents_projects")

	if _, err := h.queries.UpdateVisibilitySettings(r.Context(), settings); err != nil {
		slog.Error("failed to update visibility settings", "error", err)
		flashError(w, r, h.renderer, redirectAdminVisibility, "Error saving visibility settings")
		return
	}

	if h.menus != nil {
		h.menus.InvalidateCache()
	}
	if h.records != nil {
		h.records.InvalidateSiteContext(r.Context())
	}

	slog.Info("visibility settings updated", "category", "config")
	flashSuccess(w, r, h.renderer, redirectAdminVisibility, "Visibility settings saved")
}
