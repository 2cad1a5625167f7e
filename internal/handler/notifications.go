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

// NotificationsHandler handles scrolling notification management routes.
type NotificationsHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	records        *cache.ActiveRecordCache
}

// NewNotificationsHandler creates a new NotificationsHandler.
func NewNotificationsHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, records *cache.ActiveRecordCache) *NotificationsHandler {
	return &NotificationsHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
		records:        records,
	}
}

func (h *NotificationsHandler) invalidate(r *http.Request) {
	if h.records != nil {
		h.records.InvalidateSiteContext(r.Context())
	}
}

// NotificationsListData holds data for the notifications list template.
type NotificationsListData struct {
	Notifications []model.ScrollingNotification
	Now           time.Time
}

// List handles GET /admin/notifications.
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	notifications, err := h.queries.ListNotifications(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list notifications", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/notifications_list", render.TemplateData{
		Title: "Notifications",
		User:  user,
		Data:  NotificationsListData{Notifications: notifications, Now: time.Now()},
		Breadcrumbs: []render.Breadcrumb{
			{Label: "Dashboard", URL: redirectAdmin},
			{Label: "Notifications", URL: redirectAdminNotifications, Active: true},
		},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// NotificationFormData holds data for the notification form template.
type NotificationFormData struct {
	Notification *model.ScrollingNotification
	Priorities   []string
	Errors       map[string]string
	FormValues   map[string]string
	IsEdit       bool
}

// NewForm handles GET /admin/notifications/new.
func (h *NotificationsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, nil, make(map[string]string), make(map[string]string))
}

// Create handles POST /admin/notifications.
func (h *NotificationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminNotifications+RouteSuffixNew) {
		return
	}

	arg, errors, formValues := notificationParamsFromForm(r)
	if len(errors) > 0 {
		h.renderForm(w, r, nil, errors, formValues)
		return
	}

	n, err := h.queries.CreateNotification(r.Context(), arg)
	if err != nil {
		slog.Error("failed to create notification", "error", err)
		flashError(w, r, h.renderer, redirectAdminNotifications+RouteSuffixNew, "Error creating notification")
		return
	}

	h.invalidate(r)
	slog.Info("notification created", "category", "content", "notification_id", n.ID)
	flashSuccess(w, r, h.renderer, redirectAdminNotifications, "Notification created successfully")
}

// EditForm handles GET /admin/notifications/{id}.
func (h *NotificationsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminNotifications, "Invalid notification ID")
		return
	}

	n, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminNotifications, "notification", id,
		func(id int64) (model.ScrollingNotification, error) { return h.queries.GetNotificationByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, &n, make(map[string]string), make(map[string]string))
}

// Update handles POST /admin/notifications/{id}.
func (h *NotificationsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminNotifications, "Invalid notification ID")
		return
	}

	n, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminNotifications, "notification", id,
		func(id int64) (model.ScrollingNotification, error) { return h.queries.GetNotificationByID(r.Context(), id) })
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminNotifications) {
		return
	}

	arg, errors, formValues := notificationParamsFromForm(r)
	if len(errors) > 0 {
		h.renderForm(w, r, &n, errors, formValues)
		return
	}

	if _, err := h.queries.UpdateNotification(r.Context(), store.UpdateNotificationParams{
		ID:        id,
		Message:   arg.Message,
		LinkURL:   arg.LinkURL,
		LinkText:  arg.LinkText,
		Priority:  arg.Priority,
		Color:     arg.Color,
		IconClass: arg.IconClass,
		StartDate: arg.StartDate,
		EndDate:   arg.EndDate,
		IsActive:  arg.IsActive,
		Ordering:  arg.Ordering,
	}); err != nil {
		slog.Error("failed to update notification", "error", err, "notification_id", id)
		flashError(w, r, h.renderer, redirectAdminNotifications, "Error updating notification")
		return
	}

	h.invalidate(r)
	slog.Info("notification updated", "category", "content", "notification_id", id)
	flashSuccess(w, r, h.renderer, redirectAdminNotifications, "Notification updated successfully")
}

// Delete handles POST /admin/notifications/{id}/delete.
func (h *NotificationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminNotifications, "Invalid notification ID")
		return
	}

	if err := h.queries.DeleteNotification(r.Context(), id); err != nil {
		slog.Error("failed to delete notification", "error", err, "notification_id", id)
		flashError(w, r, h.renderer, redirectAdminNotifications, "Error deleting notification")
		return
	}

	h.invalidate(r)
	slog.Info("notification deleted", "category", "content", "notification_id", id)
	flashSuccess(w, r, h.renderer, redirectAdminNotifications, "Notification deleted successfully")
}

func notificationParamsFromForm(r *http.Request) (store.CreateNotificationParams, map[string]string, map[string]string) {
	message := formString(r, "message")
	priority := formString(r, "priority")
	color := formString(r, "color")
	linkURL := formString(r, "link_url")
	startRaw := formString(r, "start_date")
	endRaw := formString(r, "end_date")

	formValues := map[string]string{
		"message":    message,
		"priority":   priority,
		"color":      color,
		"link_url":   linkURL,
		"link_text":  formString(r, "link_text"),
		"icon_class": formString(r, "icon_class"),
		"start_date": startRaw,
		"end_date":   endRaw,
		"ordering":   formString(r, "ordering"),
	}

	errors := make(map[string]string)

	if message == "" {
		errors["message"] = "Message is required"
	}

	if priority == "" {
		priority = model.PriorityNormal
	}
	if !model.IsValidPriority(priority) {
		errors["priority"] = "Invalid priority"
	}

	if color != "" && !util.IsValidHexColor(color) {
		errors["color"] = "Invalid hex color"
	}
	if linkURL != "" && !util.IsValidLinkURL(linkURL) {
		errors["link_url"] = "Invalid link URL"
	}

	startDate := time.Now()
	if startRaw != "" {
		if parsed := util.ParseNullTime(startRaw); parsed.Valid {
			startDate = parsed.Time
		} else {
			errors["start_date"] = "Invalid start date"
		}
	}

	endDate := util.ParseNullTime(endRaw)
	if endRaw != "" && !endDate.Valid {
		errors["end_date"] = "Invalid end date"
	}
	if endDate.Valid && endDate.Time.Before(startDate) {
		errors["end_date"] = "End date must not be before start date"
	}

	arg := store.CreateNotificationParams{
		Message:   message,
		LinkURL:   linkURL,
		LinkText:  formString(r, "link_text"),
		Priority:  priority,
		Color:     color,
		IconClass: formString(r, "icon_class"),
		StartDate: startDate,
		EndDate:   endDate,
		IsActive:  formBool(r, "is_active"),
		Ordering:  formInt64(r, "ordering", 0),
	}
	return arg, errors, formValues
}

func (h *NotificationsHandler) renderForm(w http.ResponseWriter, r *http.Request, n *model.ScrollingNotification, errors, formValues map[string]string) {
	user := middleware.GetUser(r)

	title := "New Notification"
	crumbs := []render.Breadcrumb{
		{Label: "Dashboard", URL: redirectAdmin},
		{Label: "Notifications", URL: redirectAdminNotifications},
	}
	if n != nil {
		title = "Edit Notification"
		crumbs = append(crumbs, render.Breadcrumb{
			Label: "Edit", URL: fmt.Sprintf("%s/%d", redirectAdminNotifications, n.ID), Active: true})
	} else {
		crumbs = append(crumbs, render.Breadcrumb{
			Label: "New Notification", URL: redirectAdminNotifications + RouteSuffixNew, Active: true})
	}

	if err := h.renderer.Render(w, r, "admin/notifications_form", render.TemplateData{
		Title: title,
		User:  user,
		Data: NotificationFormData{
			Notification: n,
			Priorities:   model.Priorities,
			Errors:       errors,
			FormValues:   formValues,
			IsEdit:       n != nil,
		},
		Breadcrumbs: crumbs,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}
