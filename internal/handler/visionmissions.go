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

// VisionMissionsHandler handles vision/mission record routes. Strict
// family.
type VisionMissionsHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	activation     *service.ActivationService
}

// NewVisionMissionsHandler creates a new VisionMissionsHandler.
func NewVisionMissionsHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, activation *service.ActivationService) *VisionMissionsHandler {
	return &VisionMissionsHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
		activation:     activation,
	}
}

// VisionMissionsListData holds data for the vision/mission list template.
type VisionMissionsListData struct {
	Records []model.VisionMission
}

// List handles GET /admin/vision-missions.
func (h *VisionMissionsHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	records, err := h.queries.ListVisionMissions(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list vision/mission records", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/visionmissions_list", render.TemplateData{
		Title: "Vision & Mission",
		User:  user,
		Data:  VisionMissionsListData{Records: records},
		Breadcrumbs: []render.Breadcrumb{
			{Label: "Dashboard", URL: redirectAdmin},
			{Label: "Vision & Mission", URL: redirectAdminVisionMissions, Active: true},
		},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// VisionMissionFormData holds data for the vision/mission form template.
type VisionMissionFormData struct {
	Record     *model.VisionMission
	Errors     map[string]string
	FormValues map[string]string
	IsEdit     bool
}

// NewForm handles GET /admin/vision-missions/new.
func (h *VisionMissionsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, nil, make(map[string]string), make(map[string]string))
}

// Create handles POST /admin/vision-missions.
func (h *VisionMissionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminVisionMissions+RouteSuffixNew) {
		return
	}

	v, errors, formValues := visionMissionFromForm(r)
	if len(errors) > 0 {
		h.renderForm(w, r, nil, errors, formValues)
		return
	}

	created, err := h.queries.CreateVisionMission(r.Context(), v)
	if err != nil {
		slog.Error("failed to create vision/mission record", "error", err)
		flashError(w, r, h.renderer, redirectAdminVisionMissions+RouteSuffixNew, "Error creating record")
		return
	}

	h.activation.Invalidate(r.Context(), model.FamilyVisionMission)
	slog.Info("vision/mission record created", "category", "config", "record_id", created.ID)
	flashSuccess(w, r, h.renderer, redirectAdminVisionMissions, "Record created successfully")
}

// EditForm handles GET /admin/vision-missions/{id}.
func (h *VisionMissionsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminVisionMissions, "Invalid record ID")
		return
	}

	v, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminVisionMissions, "record", id,
		func(id int64) (model.VisionMission, error) { return h.queries.GetVisionMissionByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, &v, make(map[string]string), make(map[string]string))
}

// Update handles POST /admin/vision-missions/{id}.
func (h *VisionMissionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminVisionMissions, "Invalid record ID")
		return
	}
	recordURL := fmt.Sprintf("%s/%d", redirectAdminVisionMissions, id)

	existing, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminVisionMissions, "record", id,
		func(id int64) (model.VisionMission, error) { return h.queries.GetVisionMissionByID(r.Context(), id) })
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, recordURL) {
		return
	}

	v, errors, formValues := visionMissionFromForm(r)
	if len(errors) > 0 {
		h.renderForm(w, r, &existing, errors, formValues)
		return
	}
	v.ID = id

	if _, err := h.queries.UpdateVisionMission(r.Context(), v); err != nil {
		slog.Error("failed to update vision/mission record", "error", err, "record_id", id)
		flashError(w, r, h.renderer, recordURL, "Error updating record")
		return
	}

	h.activation.Invalidate(r.Context(), model.FamilyVisionMission)
	slog.Info("vision/mission record updated", "category", "config", "record_id", id)
	flashSuccess(w, r, h.renderer, recordURL, "Record updated successfully")
}

// Delete handles POST /admin/vision-missions/{id}/delete.
func (h *VisionMissionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminVisionMissions, "Invalid record ID")
		return
	}

	if err := h.queries.DeleteVisionMission(r.Context(), id); err != nil {
		slog.Error("failed to delete vision/mission record", "error", err, "record_id", id)
		flashError(w, r, h.renderer, redirectAdminVisionMissions, "Error deleting record")
		return
	}

	h.activation.Invalidate(r.Context(), model.FamilyVisionMission)
	slog.Info("vision/mission record deleted", "category", "config", "record_id", id)
	flashSuccess(w, r, h.renderer, redirectAdminVisionMissions, "Record deleted successfully")
}

// Activate handles POST /admin/vision-missions/{id}/activate.
func (h *VisionMissionsHandler) Activate(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminVisionMissions, "Invalid record ID")
		return
	}
	activateRecord(w, r, h.renderer, h.activation, model.FamilyVisionMission, id, redirectAdminVisionMissions)
}

// Deactivate handles POST /admin/vision-missions/{id}/deactivate.
func (h *VisionMissionsHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminVisionMissions, "Invalid record ID")
		return
	}
	deactivateRecord(w, r, h.renderer, h.activation, model.FamilyVisionMission, id, redirectAdminVisionMissions)
}

func visionMissionFromForm(r *http.Request) (model.VisionMission, map[string]string, map[string]string) {
	title := formString(r, "title")
	vision := r.FormValue("vision")
	mission := r.FormValue("mission")

	formValues := map[string]string{
		"title":       title,
		"vision":      vision,
		"mission":     mission,
		"core_values": r.FormValue("core_values"),
	}

	errors := make(map[string]string)

	if title == "" {
		errors["title"] = "Title is required"
	}
	if vision == "" {
		errors["vision"] = "Vision is required"
	}
	if mission == "" {
		errors["mission"] = "Mission is required"
	}

	v := model.VisionMission{
		Title:      title,
		Vision:     htmlPolicy.Sanitize(vision),
		Mission:    htmlPolicy.Sanitize(mission),
		CoreValues: htmlPolicy.Sanitize(r.FormValue("core_values")),
	}
	return v, errors, formValues
}

func (h *VisionMissionsHandler) renderForm(w http.ResponseWriter, r *http.Request, v *model.VisionMission, errors, formValues map[string]string) {
	user := middleware.GetUser(r)

	title := "New Vision & Mission"
	crumbs := []render.Breadcrumb{
		{Label: "Dashboard", URL: redirectAdmin},
		{Label: "Vision & Mission", URL: redirectAdminVisionMissions},
	}
	if v != nil {
		title = fmt.Sprintf("Edit - %s", v.Title)
		crumbs = append(crumbs, render.Breadcrumb{
			Label: v.Title, URL: fmt.Sprintf("%s/%d", redirectAdminVisionMissions, v.ID), Active: true})
	} else {
		crumbs = append(crumbs, render.Breadcrumb{
			Label: "New Record", URL: redirectAdminVisionMissions + RouteSuffixNew, Active: true})
	}

	if err := h.renderer.Render(w, r, "admin/visionmissions_form", render.TemplateData{
		Title: title,
		User:  user,
		Data: VisionMissionFormData{
			Record:     v,
			Errors:     errors,
			FormValues: formValues,
			IsEdit:     v != nil,
		},
		Breadcrumbs: crumbs,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}
