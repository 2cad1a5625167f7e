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

	"github.com/campuscms/campuscms/internal/cache"
	"github.com/campuscms/campuscms/internal/middleware"
	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/render"
	"github.com/campuscms/campuscms/internal/store"
	"github.com/campuscms/campuscms/internal/util"
)

// DepartmentsHandler handles department management routes.
type DepartmentsHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	records        *cache.ActiveRecordCache
}

// NewDepartmentsHandler creates a new DepartmentsHandler.
func NewDepartmentsHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, records *cache.ActiveRecordCache) *DepartmentsHandler {
	return &DepartmentsHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
		records:        records,
	}
}

func (h *DepartmentsHandler) invalidate(r *http.Request) {
	if h.records != nil {
		h.records.InvalidateSiteContext(r.Context())
	}
}

// DepartmentsListData holds data for the departments list template.
type DepartmentsListData struct {
	Departments []model.Department
}

// List handles GET /admin/departments.
func (h *DepartmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	departments, err := h.queries.ListDepartments(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list departments", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/departments_list", render.TemplateData{
		Title: "Departments",
		User:  user,
		Data:  DepartmentsListData{Departments: departments},
		Breadcrumbs: []render.Breadcrumb{
			{Label: "Dashboard", URL: redirectAdmin},
			{Label: "Departments", URL: redirectAdminDepartments, Active: true},
		},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// DepartmentFormData holds data for the department form template.
type DepartmentFormData struct {
	Department *model.Department
	Errors     map[string]string
	FormValues map[string]string
	IsEdit     bool
}

// NewForm handles GET /admin/departments/new.
func (h *DepartmentsHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, nil, make(map[string]string), make(map[string]string))
}

// Create handles POST /admin/departments.
func (h *DepartmentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminDepartments+RouteSuffixNew) {
		return
	}

	arg, errors, formValues := h.departmentParamsFromForm(r, 0)
	if len(errors) > 0 {
		h.renderForm(w, r, nil, errors, formValues)
		return
	}

	d, err := h.queries.CreateDepartment(r.Context(), arg)
	if err != nil {
		slog.Error("failed to create department", "error", err)
		flashError(w, r, h.renderer, redirectAdminDepartments+RouteSuffixNew, "Error creating department")
		return
	}

	h.invalidate(r)
	slog.Info("department created", "category", "content", "department_id", d.ID, "slug", d.Slug)
	flashSuccess(w, r, h.renderer, redirectAdminDepartments, "Department created successfully")
}

// EditForm handles GET /admin/departments/{id}.
func (h *DepartmentsHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminDepartments, "Invalid department ID")
		return
	}

	d, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminDepartments, "department", id,
		func(id int64) (model.Department, error) { return h.queries.GetDepartmentByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, &d, make(map[string]string), make(map[string]string))
}

// Update handles POST /admin/departments/{id}.
func (h *DepartmentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminDepartments, "Invalid department ID")
		return
	}

	d, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminDepartments, "department", id,
		func(id int64) (model.Department, error) { return h.queries.GetDepartmentByID(r.Context(), id) })
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminDepartments) {
		return
	}

	arg, errors, formValues := h.departmentParamsFromForm(r, id)
	if len(errors) > 0 {
		h.renderForm(w, r, &d, errors, formValues)
		return
	}

	if _, err := h.queries.UpdateDepartment(r.Context(), store.UpdateDepartmentParams{
		ID:          id,
		Name:        arg.Name,
		Slug:        arg.Slug,
		Description: arg.Description,
		HeadName:    arg.HeadName,
		Email:       arg.Email,
		Phone:       arg.Phone,
		Ordering:    arg.Ordering,
		IsActive:    arg.IsActive,
	}); err != nil {
		slog.Error("failed to update department", "error", err, "department_id", id)
		flashError(w, r, h.renderer, redirectAdminDepartments, "Error updating department")
		return
	}

	h.invalidate(r)
	slog.Info("department updated", "category", "content", "department_id", id)
	flashSuccess(w, r, h.renderer, redirectAdminDepartments, "Department updated successfully")
}

// Delete handles POST /admin/departments/{id}/delete.
func (h *DepartmentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminDepartments, "Invalid department ID")
		return
	}

	if err := h.queries.DeleteDepartment(r.Context(), id); err != nil {
		slog.Error("failed to delete department", "error", err, "department_id", id)
		flashError(w, r, h.renderer, redirectAdminDepartments, "Error deleting department")
		return
	}

	h.invalidate(r)
	slog.Info("department deleted", "category", "content", "department_id", id)
	flashSuccess(w, r, h.renderer, redirectAdminDepartments, "Department deleted successfully")
}

func (h *DepartmentsHandler) departmentParamsFromForm(r *http.Request, excludeID int64) (store.CreateDepartmentParams, map[string]string, map[string]string) {
	name := formString(r, "name")
	slug := formString(r, "slug")
	email := formString(r, "email")

	formValues := map[string]string{
		"name":      name,
		"slug":      slug,
		"email":     email,
		"head_name": formString(r, "head_name"),
		"phone":     formString(r, "phone"),
		"ordering":  formString(r, "ordering"),
	}

	errors := make(map[string]string)

	if len(name) < 2 {
		errors["name"] = "Name must be at least 2 characters"
	}

	if slug == "" {
		slug = util.Slugify(name)
		formValues["slug"] = slug
	}
	if slug == "" {
		errors["slug"] = "Slug is required"
	} else if !util.IsValidSlug(slug) {
		errors["slug"] = "Invalid slug format"
	} else if count, err := h.queries.CountDepartmentSlug(r.Context(), slug, excludeID); err == nil && count > 0 {
		errors["slug"] = "Slug already exists"
	}

	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			errors["email"] = "Invalid email address"
		}
	}

	arg := store.CreateDepartmentParams{
		Name:        name,
		Slug:        slug,
		Description: formString(r, "description"),
		HeadName:    formString(r, "head_name"),
		Email:       email,
		Phone:       formString(r, "phone"),
		Ordering:    formInt64(r, "ordering", 0),
		IsActive:    formBool(r, "is_active"),
	}
	return arg, errors, formValues
}

func (h *DepartmentsHandler) renderForm(w http.ResponseWriter, r *http.Request, d *model.Department, errors, formValues map[string]string) {
	user := middleware.GetUser(r)

	title := "New Department"
	crumbs := []render.Breadcrumb{
		{Label: "Dashboard", URL: redirectAdmin},
		{Label: "Departments", URL: redirectAdminDepartments},
	}
	if d != nil {
		title = fmt.Sprintf("Edit Department - %s", d.Name)
		crumbs = append(crumbs, render.Breadcrumb{
			Label: d.Name, URL: fmt.Sprintf("%s/%d", redirectAdminDepartments, d.ID), Active: true})
	} else {
		crumbs = append(crumbs, render.Breadcrumb{
			Label: "New Department", URL: redirectAdminDepartments + RouteSuffixNew, Active: true})
	}

	if err := h.renderer.Render(w, r, "admin/departments_form", render.TemplateData{
		Title: title,
		User:  user,
		Data: DepartmentFormData{
			Department: d,
			Errors:     errors,
			FormValues: formValues,
			IsEdit:     d != nil,
		},
		Breadcrumbs: crumbs,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}
