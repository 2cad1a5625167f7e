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
	"github.com/campuscms/campuscms/internal/util"
)

// UtilityBarsHandler handles utility bar management routes. The utility
// bar is a promotional family: activating one demotes the incumbent.
type UtilityBarsHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	activation     *service.ActivationService
}

// NewUtilityBarsHandler creates a new UtilityBarsHandler.
func NewUtilityBarsHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, activation *service.ActivationService) *UtilityBarsHandler {
	return &UtilityBarsHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
		activation:     activation,
	}
}

// UtilityBarsListData holds data for the utility bars list template.
type UtilityBarsListData struct {
	Bars []model.UtilityBar
}

// List handles GET /admin/utility-bars.
func (h *UtilityBarsHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	bars, err := h.queries.ListUtilityBars(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list utility bars", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/utilitybars_list", render.TemplateData{
		Title: "Utility Bars",
		User:  user,
		Data:  UtilityBarsListData{Bars: bars},
		Breadcrumbs: []render.Breadcrumb{
			{Label: "Dashboard", URL: redirectAdmin},
			{Label: "Utility Bars", URL: redirectAdminUtilityBars, Active: true},
		},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// UtilityBarFormData holds data for the utility bar form template.
type UtilityBarFormData struct {
	Bar        *model.UtilityBar
	Links      []model.CustomLink
	Positions  []string
	Errors     map[string]string
	FormValues map[string]string
	IsEdit     bool
}

// NewForm handles GET /admin/utility-bars/new.
func (h *UtilityBarsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, nil, make(map[string]string), make(map[string]string))
}

// Create handles POST /admin/utility-bars. New bars start inactive;
// activation is a separate step.
func (h *UtilityBarsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminUtilityBars+RouteSuffixNew) {
		return
	}

	bar, errors, formValues := barFromForm(r)
	if len(errors) > 0 {
		h.renderForm(w, r, nil, errors, formValues)
		return
	}

	created, err := h.queries.CreateUtilityBar(r.Context(), bar)
	if err != nil {
		slog.Error("failed to create utility bar", "error", err)
		flashError(w, r, h.renderer, redirectAdminUtilityBars+RouteSuffixNew, "Error creating utility bar")
		return
	}

	h.activation.Invalidate(r.Context(), model.FamilyUtilityBar)
	slog.Info("utility bar created", "category", "config", "bar_id", created.ID)
	flashSuccess(w, r, h.renderer, fmt.Sprintf("%s/%d", redirectAdminUtilityBars, created.ID), "Utility bar created successfully")
}

// EditForm handles GET /admin/utility-bars/{id}.
func (h *UtilityBarsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminUtilityBars, "Invalid utility bar ID")
		return
	}

	bar, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminUtilityBars, "utility bar", id,
		func(id int64) (model.UtilityBar, error) { return h.queries.GetUtilityBarByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, &bar, make(map[string]string), make(map[string]string))
}

// Update handles POST /admin/utility-bars/{id}. The active flag is not
// writable here; use the activate and deactivate endpoints.
func (h *UtilityBarsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminUtilityBars, "Invalid utility bar ID")
		return
	}
	barURL := fmt.Sprintf("%s/%d", redirectAdminUtilityBars, id)

	existing, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminUtilityBars, "utility bar", id,
		func(id int64) (model.UtilityBar, error) { return h.queries.GetUtilityBarByID(r.Context(), id) })
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, barURL) {
		return
	}

	bar, errors, formValues := barFromForm(r)
	if len(errors) > 0 {
		h.renderForm(w, r, &existing, errors, formValues)
		return
	}
	bar.ID = id

	if _, err := h.queries.UpdateUtilityBar(r.Context(), bar); err != nil {
		slog.Error("failed to update utility bar", "error", err, "bar_id", id)
		flashError(w, r, h.renderer, barURL, "Error updating utility bar")
		return
	}

	h.activation.Invalidate(r.Context(), model.FamilyUtilityBar)
	slog.Info("utility bar updated", "category", "config", "bar_id", id)
	flashSuccess(w, r, h.renderer, barURL, "Utility bar updated successfully")
}

// Delete handles POST /admin/utility-bars/{id}/delete. Custom links cascade.
func (h *UtilityBarsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminUtilityBars, "Invalid utility bar ID")
		return
	}

	if err := h.queries.DeleteUtilityBar(r.Context(), id); err != nil {
		slog.Error("failed to delete utility bar", "error", err, "bar_id", id)
		flashError(w, r, h.renderer, redirectAdminUtilityBars, "Error deleting utility bar")
		return
	}

	h.activation.Invalidate(r.Context(), model.FamilyUtilityBar)
	slog.Info("utility bar deleted", "category", "config", "bar_id", id)
	flashSuccess(w, r, h.renderer, redirectAdminUtilityBars, "Utility bar deleted successfully")
}

// Activate handles POST /admin/utility-bars/{id}/activate.
func (h *UtilityBarsHandler) Activate(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminUtilityBars, "Invalid utility bar ID")
		return
	}
	activateRecord(w, r, h.renderer, h.activation, model.FamilyUtilityBar, id, redirectAdminUtilityBars)
}

// Deactivate handles POST /admin/utility-bars/{id}/deactivate.
func (h *UtilityBarsHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminUtilityBars, "Invalid utility bar ID")
		return
	}
	deactivateRecord(w, r, h.renderer, h.activation, model.FamilyUtilityBar, id, redirectAdminUtilityBars)
}

func barFromForm(r *http.Request) (model.UtilityBar, map[string]string, map[string]string) {
	name := formString(r, "name")
	position := formString(r, "position")

	formValues := map[string]string{
		"name":     name,
		"position": position,
	}

	errors := make(map[string]string)

	if name == "" {
		errors["name"] = "Name is required"
	}
	if position == "" {
		position = model.PositionTop
	}
	if position != model.PositionTop && position != model.PositionBelowHeader {
		errors["position"] = "Invalid position"
	}
	for _, field := range []string{"background_color", "text_color"} {
		if v := formString(r, field); v != "" && !util.IsValidHexColor(v) {
			errors[field] = "Invalid hex color"
		}
	}
	for _, field := range []string{"facebook_url", "twitter_url", "instagram_url", "youtube_url", "linkedin_url"} {
		if v := formString(r, field); v != "" && !util.IsValidLinkURL(v) {
			errors[field] = "Invalid URL"
		}
	}

	bar := model.UtilityBar{
		Name:            name,
		BackgroundColor: formString(r, "background_color"),
		TextColor:       formString(r, "text_color"),
		Height:          formInt64(r, "height", 36),
		Position:        position,

		ShowSocialIcons: formBool(r, "show_social_icons"),
		EnableFacebook:  formBool(r, "enable_facebook"),
		FacebookURL:     formString(r, "facebook_url"),
		EnableTwitter:   formBool(r, "enable_twitter"),
		TwitterURL:      formString(r, "twitter_url"),
		EnableInstagram: formBool(r, "enable_instagram"),
		InstagramURL:    formString(r, "instagram_url"),
		EnableYouTube:   formBool(r, "enable_youtube"),
		YouTubeURL:      formString(r, "youtube_url"),
		EnableLinkedIn:  formBool(r, "enable_linkedin"),
		LinkedInURL:     formString(r, "linkedin_url"),

		ShowContactInfo: formBool(r, "show_contact_info"),
		ContactPhone:    formString(r, "contact_phone"),
		ContactEmail:    formString(r, "contact_email"),

		ShowCustomLinks: formBool(r, "show_custom_links"),
		Link1Text:       formString(r, "link1_text"),
		Link1URL:        formString(r, "link1_url"),
		Link2Text:       formString(r, "link2_text"),
		Link2URL:        formString(r, "link2_url"),
		Link3Text:       formString(r, "link3_text"),
		Link3URL:        formString(r, "link3_url"),

		ShowOnMobile:    formBool(r, "show_on_mobile"),
		MobileCollapsed: formBool(r, "mobile_collapsed"),
	}
	return bar, errors, formValues
}

func (h *UtilityBarsHandler) renderForm(w http.ResponseWriter, r *http.Request, bar *model.UtilityBar, errors, formValues map[string]string) {
	user := middleware.GetUser(r)

	data := UtilityBarFormData{
		Bar:        bar,
		Positions:  []string{model.PositionTop, model.PositionBelowHeader},
		Errors:     errors,
		FormValues: formValues,
		IsEdit:     bar != nil,
	}

	title := "New Utility Bar"
	crumbs := []render.Breadcrumb{
		{Label: "Dashboard", URL: redirectAdmin},
		{Label: "Utility Bars", URL: redirectAdminUtilityBars},
	}
	if bar != nil {
		title = fmt.Sprintf("Edit Utility Bar - %s", bar.Name)
		crumbs = append(crumbs, render.Breadcrumb{
			Label: bar.Name, URL: fmt.Sprintf("%s/%d", redirectAdminUtilityBars, bar.ID), Active: true})

		links, err := h.queries.ListCustomLinks(r.Context(), bar.ID)
		if err != nil {
			slog.Error("failed to list custom links", "error", err, "bar_id", bar.ID)
			links = nil
		}
		data.Links = links
	} else {
		crumbs = append(crumbs, render.Breadcrumb{
			Label: "New Utility Bar", URL: redirectAdminUtilityBars + RouteSuffixNew, Active: true})
	}

	if err := h.renderer.Render(w, r, "admin/utilitybars_form", render.TemplateData{
		Title:       title,
		User:        user,
		Data:        data,
		Breadcrumbs: crumbs,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// CreateLink handles POST /admin/utility-bars/{id}/links.
func (h *UtilityBarsHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	barID := parseIDParam(r, "id")
	if barID == 0 {
		flashError(w, r, h.renderer, redirectAdminUtilityBars, "Invalid utility bar ID")
		return
	}
	barURL := fmt.Sprintf("%s/%d", redirectAdminUtilityBars, barID)

	if _, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminUtilityBars, "utility bar", barID,
		func(id int64) (model.UtilityBar, error) { return h.queries.GetUtilityBarByID(r.Context(), id) }); !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, barURL) {
		return
	}

	link, errMsg := customLinkFromForm(r, barID)
	if errMsg != "" {
		flashError(w, r, h.renderer, barURL, errMsg)
		return
	}

	created, err := h.queries.CreateCustomLink(r.Context(), link)
	if err != nil {
		slog.Error("failed to create custom link", "error", err, "bar_id", barID)
		flashError(w, r, h.renderer, barURL, "Error creating link")
		return
	}

	h.activation.Invalidate(r.Context(), model.FamilyUtilityBar)
	slog.Info("custom link created", "category", "config", "link_id", created.ID, "bar_id", barID)
	flashSuccess(w, r, h.renderer, barURL, "Link added successfully")
}

// UpdateLink handles POST /admin/utility-bars/{id}/links/{linkId}.
func (h *UtilityBarsHandler) UpdateLink(w http.ResponseWriter, r *http.Request) {
	barID := parseIDParam(r, "id")
	linkID := parseIDParam(r, "linkId")
	if barID == 0 || linkID == 0 {
		flashError(w, r, h.renderer, redirectAdminUtilityBars, "Invalid link ID")
		return
	}
	barURL := fmt.Sprintf("%s/%d", redirectAdminUtilityBars, barID)

	existing, ok := requireEntityWithRedirect(w, r, h.renderer, barURL, "link", linkID,
		func(id int64) (model.CustomLink, error) { return h.queries.GetCustomLinkByID(r.Context(), id) })
	if !ok {
		return
	}
	if existing.UtilityBarID != barID {
		flashError(w, r, h.renderer, barURL, "Link belongs to another utility bar")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, barURL) {
		return
	}

	link, errMsg := customLinkFromForm(r, barID)
	if errMsg != "" {
		flashError(w, r, h.renderer, barURL, errMsg)
		return
	}
	link.ID = linkID

	if _, err := h.queries.UpdateCustomLink(r.Context(), link); err != nil {
		slog.Error("failed to update custom link", "error", err, "link_id", linkID)
		flashError(w, r, h.renderer, barURL, "Error updating link")
		return
	}

	h.activation.Invalidate(r.Context(), model.FamilyUtilityBar)
	slog.Info("custom link updated", "category", "config", "link_id", linkID, "bar_id", barID)
	flashSuccess(w, r, h.renderer, barURL, "Link updated successfully")
}

// DeleteLink handles POST /admin/utility-bars/{id}/links/{linkId}/delete.
func (h *UtilityBarsHandler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	barID := parseIDParam(r, "id")
	linkID := parseIDParam(r, "linkId")
	if barID == 0 || linkID == 0 {
		flashError(w, r, h.renderer, redirectAdminUtilityBars, "Invalid link ID")
		return
	}
	barURL := fmt.Sprintf("%s/%d", redirectAdminUtilityBars, barID)

	if err := h.queries.DeleteCustomLink(r.Context(), linkID); err != nil {
		slog.Error("failed to delete custom link", "error", err, "link_id", linkID)
		flashError(w, r, h.renderer, barURL, "Error deleting link")
		return
	}

	h.activation.Invalidate(r.Context(), model.FamilyUtilityBar)
	slog.Info("custom link deleted", "category", "config", "link_id", linkID, "bar_id", barID)
	flashSuccess(w, r, h.renderer, barURL, "Link deleted successfully")
}

func customLinkFromForm(r *http.Request, barID int64) (model.CustomLink, string) {
	text := formString(r, "text")
	url := formString(r, "url")
	if text == "" || url == "" {
		return model.CustomLink{}, "Link text and URL are required"
	}
	if !util.IsValidLinkURL(url) {
		return model.CustomLink{}, "Invalid link URL"
	}

	return model.CustomLink{
		UtilityBarID: barID,
		Text:         text,
		URL:          url,
		IconClass:    formString(r, "icon_class"),
		Tooltip:      formString(r, "tooltip"),
		OpenInNewTab: formBool(r, "open_in_new_tab"),
		Ordering:     formInt64(r, "ordering", 0),
		IsActive:     formBool(r, "is_active"),
	}, ""
}
