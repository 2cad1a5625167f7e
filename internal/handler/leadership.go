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

// LeadershipHandler handles director and principal message routes.
// Each role is its own strict family scoped by the role column.
type LeadershipHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	activation     *service.ActivationService
}

// NewLeadershipHandler creates a new LeadershipHandler.
func NewLeadershipHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, activation *service.ActivationService) *LeadershipHandler {
	return &LeadershipHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
		activation:     activation,
	}
}

// LeadershipListData holds data for the leadership messages list template.
type LeadershipListData struct {
	Directors  []model.LeadershipMessage
	Principals []model.LeadershipMessage
}

// List handles GET /admin/leadership.
func (h *LeadershipHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	directors, err := h.queries.ListLeadershipMessages(r.Context(), model.RoleDirector)
	if err != nil {
		logAndInternalError(w, "failed to list director messages", "error", err)
		return
	}
	principals, err := h.queries.ListLeadershipMessages(r.Context(), model.RolePrincipal)
	if err != nil {
		logAndInternalError(w, "failed to list principal messages", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/leadership_list", render.TemplateData{
		Title: "Leadership Messages",
		User:  user,
		Data:  LeadershipListData{Directors: directors, Principals: principals},
		Breadcrumbs: []render.Breadcrumb{
			{Label: "Dashboard", URL: redirectAdmin},
			{Label: "Leadership", URL: redirectAdminLeadership, Active: true},
		},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// LeadershipFormData holds data for the leadership message form template.
type LeadershipFormData struct {
	Message    *model.LeadershipMessage
	Roles      []string
	Errors     map[string]string
	FormValues map[string]string
	IsEdit     bool
}

// NewForm handles GET /admin/leadership/new.
func (h *LeadershipHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, nil, make(map[string]string), make(map[string]string))
}

// Create handles POST /admin/leadership.
func (h *LeadershipHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminLeadership+RouteSuffixNew) {
		return
	}

	msg, errors, formValues := leadershipFromForm(r)
	if len(errors) > 0 {
		h.renderForm(w, r, nil, errors, formValues)
		return
	}

	created, err := h.queries.CreateLeadershipMessage(r.Context(), msg)
	if err != nil {
		slog.Error("failed to create leadership message", "error", err)
		flashError(w, r, h.renderer, redirectAdminLeadership+RouteSuffixNew, "Error creating message")
		return
	}

	h.activation.Invalidate(r.Context(), leadershipFamily(created.Role))
	slog.Info("leadership message created", "category", "config", "message_id", created.ID, "role", created.Role)
	flashSuccess(w, r, h.renderer, redirectAdminLeadership, "Message created successfully")
}

// EditForm handles GET /admin/leadership/{id}.
func (h *LeadershipHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminLeadership, "Invalid message ID")
		return
	}

	msg, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminLeadership, "message", id,
		func(id int64) (model.LeadershipMessage, error) { return h.queries.GetLeadershipMessageByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, &msg, make(map[string]string), make(map[string]string))
}

// Update handles POST /admin/leadership/{id}. The role is fixed at
// creation; moving a message between families is not supported.
func (h *LeadershipHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminLeadership, "Invalid message ID")
		return
	}
	msgURL := fmt.Sprintf("%s/%d", redirectAdminLeadership, id)

	existing, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminLeadership, "message", id,
		func(id int64) (model.LeadershipMessage, error) { return h.queries.GetLeadershipMessageByID(r.Context(), id) })
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, msgURL) {
		return
	}

	msg, errors, formValues := leadershipFromForm(r)
	if len(errors) > 0 {
		h.renderForm(w, r, &existing, errors, formValues)
		return
	}
	msg.ID = id
	msg.Role = existing.Role

	if _, err := h.queries.UpdateLeadershipMessage(r.Context(), msg); err != nil {
		slog.Error("failed to update leadership message", "error", err, "message_id", id)
		flashError(w, r, h.renderer, msgURL, "Error updating message")
		return
	}

	h.activation.Invalidate(r.Context(), leadershipFamily(existing.Role))
	slog.Info("leadership message updated", "category", "config", "message_id", id, "role", existing.Role)
	flashSuccess(w, r, h.renderer, msgURL, "Message updated successfully")
}

// Delete handles POST /admin/leadership/{id}/delete.
func (h *LeadershipHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminLeadership, "Invalid message ID")
		return
	}

	msg, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminLeadership, "message", id,
		func(id int64) (model.LeadershipMessage, error) { return h.queries.GetLeadershipMessageByID(r.Context(), id) })
	if !ok {
		return
	}

	if err := h.queries.DeleteLeadershipMessage(r.Context(), id); err != nil {
		slog.Error("failed to delete leadership message", "error", err, "message_id", id)
		flashError(w, r, h.renderer, redirectAdminLeadership, "Error deleting message")
		return
	}

	h.activation.Invalidate(r.Context(), leadershipFamily(msg.Role))
	slog.Info("leadership message deleted", "category", "config", "message_id", id, "role", msg.Role)
	flashSuccess(w, r, h.renderer, redirectAdminLeadership, "Message deleted successfully")
}

// Activate handles POST /admin/leadership/{id}/activate. The family is
// derived from the record's role.
func (h *LeadershipHandler) Activate(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminLeadership, "Invalid message ID")
		return
	}

	msg, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminLeadership, "message", id,
		func(id int64) (model.LeadershipMessage, error) { return h.queries.GetLeadershipMessageByID(r.Context(), id) })
	if !ok {
		return
	}

	activateRecord(w, r, h.renderer, h.activation, leadershipFamily(msg.Role), id, redirectAdminLeadership)
}

// Deactivate handles POST /admin/leadership/{id}/deactivate.
func (h *LeadershipHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminLeadership, "Invalid message ID")
		return
	}

	msg, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminLeadership, "message", id,
		func(id int64) (model.LeadershipMessage, error) { return h.queries.GetLeadershipMessageByID(r.Context(), id) })
	if !ok {
		return
	}

	deactivateRecord(w, r, h.renderer, h.activation, leadershipFamily(msg.Role), id, redirectAdminLeadership)
}

func leadershipFamily(role string) model.Family {
	if role == model.RolePrincipal {
		return model.FamilyPrincipalMessage
	}
	return model.FamilyDirectorMessage
}

func leadershipFromForm(r *http.Request) (model.LeadershipMessage, map[string]string, map[string]string) {
	role := formString(r, "role")
	name := formString(r, "name")
	messageContent := r.FormValue("message_content")

	formValues := map[string]string{
		"role":            role,
		"name":            name,
		"designation":     formString(r, "designation"),
		"message_title":   formString(r, "message_title"),
		"message_content": messageContent,
	}

	errors := make(map[string]string)

	if role != model.RoleDirector && role != model.RolePrincipal {
		errors["role"] = "Invalid role"
	}
	if name == "" {
		errors["name"] = "Name is required"
	}
	if messageContent == "" {
		errors["message_content"] = "Message content is required"
	}
	for _, field := range []string{"linkedin_url", "twitter_url", "facebook_url"} {
		if v := formString(r, field); v != "" && !util.IsValidLinkURL(v) {
			errors[field] = "Invalid URL"
		}
	}

	msg := model.LeadershipMessage{
		Role:             role,
		Name:             name,
		Designation:      formString(r, "designation"),
		Qualifications:   formString(r, "qualifications"),
		ExperienceYears:  formInt64(r, "experience_years", 0),
		MessageTitle:     formString(r, "message_title"),
		MessageContent:   htmlPolicy.Sanitize(messageContent),
		Vision:           formString(r, "vision"),
		Achievements:     formString(r, "achievements"),
		ProfilePhoto:     formString(r, "profile_photo"),
		Email:            formString(r, "email"),
		Phone:            formString(r, "phone"),
		LinkedInURL:      formString(r, "linkedin_url"),
		TwitterURL:       formString(r, "twitter_url"),
		FacebookURL:      formString(r, "facebook_url"),
		ShowOnHomepage:   formBool(r, "show_on_homepage"),
		ShowAchievements: formBool(r, "show_achievements"),
		ShowContactInfo:  formBool(r, "show_contact_info"),
		MetaDescription:  formString(r, "meta_description"),
	}
	return msg, errors, formValues
}

func (h *LeadershipHandler) renderForm(w http.ResponseWriter, r *http.Request, msg *model.LeadershipMessage, errors, formValues map[string]string) {
	user := middleware.GetUser(r)

	title := "New Leadership Message"
	crumbs := []render.Breadcrumb{
		{Label: "Dashboard", URL: redirectAdmin},
		{Label: "Leadership", URL: redirectAdminLeadership},
	}
	if msg != nil {
		title = fmt.Sprintf("Edit Message - %s", msg.Name)
		crumbs = append(crumbs, render.Breadcrumb{
			Label: msg.Name, URL: fmt.Sprintf("%s/%d", redirectAdminLeadership, msg.ID), Active: true})
	} else {
		crumbs = append(crumbs, render.Breadcrumb{
			Label: "New Message", URL: redirectAdminLeadership + RouteSuffixNew, Active: true})
	}

	if err := h.renderer.Render(w, r, "admin/leadership_form", render.TemplateData{
		Title: title,
		User:  user,
		Data: LeadershipFormData{
			Message:    msg,
			Roles:      []string{model.RoleDirector, model.RolePrincipal},
			Errors:     errors,
			FormValues: formValues,
			IsEdit:     msg != nil,
		},
		Breadcrumbs: crumbs,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}
