// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/campuscms/campuscms/internal/middleware"
	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/render"
	"github.com/campuscms/campuscms/internal/store"
)

// AdminHandler handles the admin dashboard.
type AdminHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager) *AdminHandler {
	return &AdminHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
	}
}

// DashboardStats aggregates the counters shown on the dashboard.
type DashboardStats struct {
	Pages          int
	Menus          int
	SideMenus      int
	Departments    int
	Notifications  int
	CurrentNotices int
	Events         int64
}

// Dashboard renders the admin dashboard with content counters and the
// most recent event log entries.
func (a *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var stats DashboardStats

	if pages, err := a.queries.ListPages(ctx); err == nil {
		stats.Pages = len(pages)
	}
	if menus, err := a.queries.ListMenus(ctx); err == nil {
		stats.Menus = len(menus)
	}
	if sideMenus, err := a.queries.ListSideMenus(ctx); err == nil {
		stats.SideMenus = len(sideMenus)
	}
	if deps, err := a.queries.ListDepartments(ctx); err == nil {
		stats.Departments = len(deps)
	}
	if notifications, err := a.queries.ListNotifications(ctx); err == nil {
		stats.Notifications = len(notifications)
	}
	if notices, err := a.queries.ListCurrentNotices(ctx, time.Now(), noticeListLimit); err == nil {
		stats.CurrentNotices = len(notices)
	}
	if n, err := a.queries.CountEvents(ctx); err == nil {
		stats.Events = n
	}

	recentEvents, err := a.queries.ListEvents(ctx, 10, 0)
	if err != nil {
		recentEvents = nil
	}

	type dashboardData struct {
		Stats        DashboardStats
		RecentEvents []model.Event
	}
	if err := a.renderer.Render(w, r, "admin/dashboard", render.TemplateData{
		Title: "Dashboard",
		User:  middleware.GetUser(r),
		Data: dashboardData{
			Stats:        stats,
			RecentEvents: recentEvents,
		},
		Breadcrumbs: []render.Breadcrumb{
			{Label: "Dashboard", URL: redirectAdmin, Active: true},
		},
	}); err != nil {
		logAndInternalError(w, "failed to render dashboard", "error", err)
	}
}
