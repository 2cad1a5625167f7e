// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/campuscms/campuscms/internal/middleware"
	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/render"
	"github.com/campuscms/campuscms/internal/service"
	"github.com/campuscms/campuscms/internal/store"
)

// PanelsHandler handles the long-tail info panel families (NAAC, NIRF,
// IQAC and the rest of the config_panels table). All panel families use
// promotional activation.
type PanelsHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	activation     *service.ActivationService
}

// NewPanelsHandler creates a new PanelsHandler.
func NewPanelsHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, activation *service.ActivationService) *PanelsHandler {
	return &PanelsHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
		activation:     activation,
	}
}

// panelFamilyParam reads and validates the family URL segment. Returns
// the empty string family when the segment names no panel family.
func panelFamilyParam(r *http.Request) model.Family {
	f := model.Family(chi.URLParam(r, "family"))
	if !model.IsPanelFamily(f) {
		return ""
	}
	return f
}

func panelFamilyURL(f model.Family) string {
	return fmt.Sprintf("%s/%s", redirectAdminPanels, string(f))
}

// PanelFamilySummary is one row of the panels overview.
type PanelFamilySummary struct {
	Family model.Family
	Count  int
	Active *model.ConfigPanel
}

// PanelsOverviewData holds data for the panels overview template.
type PanelsOverviewData struct {
	Families []PanelFamilySummary
}

// Overview handles GET /admin/panels - one row per panel family with
// its record count and active record.
func (h *PanelsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	var families []PanelFamilySummary
	for _, f := range model.PanelFamilies {
		panels, err := h.queries.ListConfigPanels(r.Context(), f)
		if err != nil {
			logAndInternalError(w, "failed to list config panels", "error", err, "family", string(f))
			return
		}
		summary := PanelFamilySummary{Family: f, Count: len(panels)}
		for i := range panels {
			if panels[i].IsActive {
				summary.Active = &panels[i]
				break
			}
		}
		families = append(families, summary)
	}

	if err := h.renderer.Render(w, r, "admin/panels_overview", render.TemplateData{
		Title: "Info Panels",
		User:  user,
		Data:  PanelsOverviewData{Families: families},
		Breadcrumbs: []render.Breadcrumb{
			{Label: "Dashboard", URL: redirectAdmin},
			{Label: "Info Panels", URL: redirectAdminPanels, Active: true},
		},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// PanelsListData holds data for a panel family's list template.
type PanelsListData struct {
	Family model.Family
	Panels []model.ConfigPanel
}

// List handles GET /admin/panels/{family}.
func (h *PanelsHandler) List(w http.ResponseWriter, r *http.Request) {
	f := panelFamilyParam(r)
	if f == "" {
		flashError(w, r, h.renderer, redirectAdminPanels, "Unknown panel family")
		return
	}

	panels, err := h.queries.ListConfigPanels(r.Context(), f)
	if err != nil {
		logAndInternalError(w, "failed to list config panels", "error", err, "family", string(f))
		return
	}

	if err := h.renderer.Render(w, r, "admin/panels_list", render.TemplateData{
		Title: fmt.Sprintf("Panels - %s", string(f)),
		User:  middleware.GetUser(r),
		Data:  PanelsListData{Family: f, Panels: panels},
		Breadcrumbs: []render.Breadcrumb{
			{Label: "Dashboard", URL: redirectAdmin},
			{Label: "Info Panels", URL: redirectAdminPanels},
			{Label: string(f), URL: panelFamilyURL(f), Active: true},
		},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// PanelFormData holds data for the panel form template.
type PanelFormData struct {
	Family     model.Family
	Panel      *model.ConfigPanel
	Errors     map[string]string
	FormValues map[string]string
	IsEdit     bool
}

// NewForm handles GET /admin/panels/{family}/new.
func (h *PanelsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	f := panelFamilyParam(r)
	if f == "" {
		flashError(w, r, h.renderer, redirectAdminPanels, "Unknown panel family")
		return
	}
	h.renderForm(w, r, f, nil, make(map[string]string), make(map[string]string))
}

// Create handles POST /admin/panels/{family}.
func (h *PanelsHandler) Create(w http.ResponseWriter, r *http.Request) {
	f := panelFamilyParam(r)
	if f == "" {
		flashError(w, r, h.renderer, redirectAdminPanels, "Unknown panel family")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, panelFamilyURL(f)+RouteSuffixNew) {
		return
	}

	panel, errors, formValues := panelFromForm(r, f)
	if len(errors) > 0 {
		h.renderForm(w, r, f, nil, errors, formValues)
		return
	}

	created, err := h.queries.CreateConfigPanel(r.Context(), panel)
	if err != nil {
		slog.Error("failed to create config panel", "error", err, "family", string(f))
		flashError(w, r, h.renderer, panelFamilyURL(f)+RouteSuffixNew, "Error creating panel")
		return
	}

	h.activation.Invalidate(r.Context(), f)
	slog.Info("config panel created", "category", "config", "panel_id", created.ID, "family", string(f))
	flashSuccess(w, r, h.renderer, panelFamilyURL(f), "Panel created successfully")
}

// EditForm handles GET /admin/panels/{family}/{id}.
func (h *PanelsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	f := panelFamilyParam(r)
	if f == "" {
		flashError(w, r, h.renderer, redirectAdminPanels, "Unknown panel family")
		return
	}

	panel, ok := h.requirePanel(w, r, f)
	if !ok {
		return
	}

	h.renderForm(w, r, f, &panel, make(map[string]string), make(map[string]string))
}

// Update handles POST /admin/panels/{family}/{id}.
func (h *PanelsHandler) Update(w http.ResponseWriter, r *http.Request) {
	f := panelFamilyParam(r)
	if f == "" {
		flashError(w, r, h.renderer, redirectAdminPanels, "Unknown panel family")
		return
	}

	existing, ok := h.requirePanel(w, r, f)
	if !ok {
		return
	}
	panelURL := fmt.Sprintf("%s/%d", panelFamilyURL(f), existing.ID)
	if !parseFormOrRedirect(w, r, h.renderer, panelURL) {
		return
	}

	panel, errors, formValues := panelFromForm(r, f)
	if len(errors) > 0 {
		h.renderForm(w, r, f, &existing, errors, formValues)
		return
	}
	panel.ID = existing.ID

	if _, err := h.queries.UpdateConfigPanel(r.Context(), panel); err != nil {
		slog.Error("failed to update config panel", "error", err, "panel_id", existing.ID)
		flashError(w, r, h.renderer, panelURL, "Error updating panel")
		return
	}

	h.activation.Invalidate(r.Context(), f)
	slog.Info("config panel updated", "category", "config", "panel_id", existing.ID, "family", string(f))
	flashSuccess(w, r, h.renderer, panelURL, "Panel updated successfully")
}

// Delete handles POST /admin/panels/{family}/{id}/delete.
func (h *PanelsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	f := panelFamilyParam(r)
	if f == "" {
		flashError(w, r, h.renderer, redirectAdminPanels, "Unknown panel family")
		return
	}

	panel, ok := h.requirePanel(w, r, f)
	if !ok {
		return
	}

	if err := h.queries.DeleteConfigPanel(r.Context(), panel.ID); err != nil {
		slog.Error("failed to delete config panel", "error", err, "panel_id", panel.ID)
		flashError(w, r, h.renderer, panelFamilyURL(f), "Error deleting panel")
		return
	}

	h.activation.Invalidate(r.Context(), f)
	slog.Info("config panel deleted", "category", "config", "panel_id", panel.ID, "family", string(f))
	flashSuccess(w, r, h.renderer, panelFamilyURL(f), "Panel deleted successfully")
}

// Activate handles POST /admin/panels/{family}/{id}/activate.
func (h *PanelsHandler) Activate(w http.ResponseWriter, r *http.Request) {
	f := panelFamilyParam(r)
	if f == "" {
		flashError(w, r, h.renderer, redirectAdminPanels, "Unknown panel family")
		return
	}

	panel, ok := h.requirePanel(w, r, f)
	if !ok {
		return
	}

	activateRecord(w, r, h.renderer, h.activation, f, panel.ID, panelFamilyURL(f))
}

// Deactivate handles POST /admin/panels/{family}/{id}/deactivate.
func (h *PanelsHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	f := panelFamilyParam(r)
	if f == "" {
		flashError(w, r, h.renderer, redirectAdminPanels, "Unknown panel family")
		return
	}

	panel, ok := h.requirePanel(w, r, f)
	if !ok {
		return
	}

	deactivateRecord(w, r, h.renderer, h.activation, f, panel.ID, panelFamilyURL(f))
}

// requirePanel fetches the panel named by the id segment and checks it
// belongs to the family named by the family segment.
func (h *PanelsHandler) requirePanel(w http.ResponseWriter, r *http.Request, f model.Family) (model.ConfigPanel, bool) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, panelFamilyURL(f), "Invalid panel ID")
		return model.ConfigPanel{}, false
	}

	panel, ok := requireEntityWithRedirect(w, r, h.renderer, panelFamilyURL(f), "panel", id,
		func(id int64) (model.ConfigPanel, error) { return h.queries.GetConfigPanelByID(r.Context(), id) })
	if !ok {
		return model.ConfigPanel{}, false
	}
	if panel.Family != f {
		flashError(w, r, h.renderer, panelFamilyURL(f), "Panel belongs to another family")
		return model.ConfigPanel{}, false
	}
	return panel, true
}

func panelFromForm(r *http.Request, f model.Family) (model.ConfigPanel, map[string]string, map[string]string) {
	title := formString(r, "title")
	contentHTML := r.FormValue("content_html")
	contactEmail := formString(r, "contact_email")

	formValues := map[string]string{
		"title":         title,
		"content_html":  contentHTML,
		"document_path": formString(r, "document_path"),
		"contact_email": contactEmail,
	}

	errors := make(map[string]string)

	if title == "" {
		errors["title"] = "Title is required"
	}
	if contactEmail != "" {
		if _, err := mail.ParseAddress(contactEmail); err != nil {
			errors["contact_email"] = "Invalid email address"
		}
	}

	panel := model.ConfigPanel{
		Family:       f,
		Title:        title,
		ContentHTML:  htmlPolicy.Sanitize(contentHTML),
		DocumentPath: formString(r, "document_path"),
		ContactEmail: contactEmail,
	}
	return panel, errors, formValues
}

func (h *PanelsHandler) renderForm(w http.ResponseWriter, r *http.Request, f model.Family, panel *model.ConfigPanel, errors, formValues map[string]string) {
	user := middleware.GetUser(r)

	title := fmt.Sprintf("New Panel - %s", string(f))
	crumbs := []render.Breadcrumb{
		{Label: "Dashboard", URL: redirectAdmin},
		{Label: "Info Panels", URL: redirectAdminPanels},
		{Label: string(f), URL: panelFamilyURL(f)},
	}
	if panel != nil {
		title = fmt.Sprintf("Edit Panel - %s", panel.Title)
		crumbs = append(crumbs, render.Breadcrumb{
			Label: panel.Title, URL: fmt.Sprintf("%s/%d", panelFamilyURL(f), panel.ID), Active: true})
	} else {
		crumbs = append(crumbs, render.Breadcrumb{
			Label: "New Panel", URL: panelFamilyURL(f) + RouteSuffixNew, Active: true})
	}

	if err := h.renderer.Render(w, r, "admin/panels_form", render.TemplateData{
		Title: title,
		User:  user,
		Data: PanelFormData{
			Family:     f,
			Panel:      panel,
			Errors:     errors,
			FormValues: formValues,
			IsEdit:     panel != nil,
		},
		Breadcrumbs: crumbs,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}
