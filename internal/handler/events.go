// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/alexedwards/scs/v2"

	"github.com/campuscms/campuscms/internal/middleware"
	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/render"
	"github.com/campuscms/campuscms/internal/store"
)

const eventsPerPage = 50

// EventsHandler handles the event log viewer.
type EventsHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager) *EventsHandler {
	return &EventsHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
	}
}

// EventsListData holds data for the event log template.
type EventsListData struct {
	Events     []model.Event
	Page       int64
	TotalPages int64
	Total      int64
}

// List handles GET /admin/events with ?page=N pagination.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	page := int64(1)
	if raw := r.URL.Query().Get("page"); raw != "" {
		if p, err := strconv.ParseInt(raw, 10, 64); err == nil && p > 0 {
			page = p
		}
	}

	total, err := h.queries.CountEvents(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to count events", "error", err)
		return
	}
	totalPages := (total + eventsPerPage - 1) / eventsPerPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	events, err := h.queries.ListEvents(r.Context(), eventsPerPage, (page-1)*eventsPerPage)
	if err != nil {
		logAndInternalError(w, "failed to list events", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/events_list", render.TemplateData{
		Title: "Event Log",
		User:  user,
		Data: EventsListData{
			Events:     events,
			Page:       page,
			TotalPages: totalPages,
			Total:      total,
		},
		Breadcrumbs: []render.Breadcrumb{
			{Label: "Dashboard", URL: redirectAdmin},
			{Label: "Event Log", URL: redirectAdmin + RouteEvents, Active: true},
		},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}
