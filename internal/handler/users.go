// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/campuscms/campuscms/internal/auth"
	"github.com/campuscms/campuscms/internal/middleware"
	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/render"
	"github.com/campuscms/campuscms/internal/store"
)

const minPasswordLength = 10

const redirectAdminUsers = redirectAdmin + RouteUsers

// UsersHandler handles user management routes. Admin only.
type UsersHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager) *UsersHandler {
	return &UsersHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
	}
}

// UsersListData holds data for the users list template.
type UsersListData struct {
	Users []model.User
}

// List handles GET /admin/users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	users, err := h.queries.ListUsers(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list users", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/users_list", render.TemplateData{
		Title: "Users",
		User:  user,
		Data:  UsersListData{Users: users},
		Breadcrumbs: []render.Breadcrumb{
			{Label: "Dashboard", URL: redirectAdmin},
			{Label: "Users", URL: redirectAdminUsers, Active: true},
		},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// UserFormData holds data for the user form template.
type UserFormData struct {
	Account    *model.User
	Roles      []string
	Errors     map[string]string
	FormValues map[string]string
	IsEdit     bool
}

// NewForm handles GET /admin/users/new.
func (h *UsersHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, nil, make(map[string]string), make(map[string]string))
}

// Create handles POST /admin/users.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminUsers+RouteSuffixNew) {
		return
	}

	email, role, name, errors, formValues := h.userFieldsFromForm(r, 0)

	password := r.FormValue("password")
	if len(password) < minPasswordLength {
		errors["password"] = fmt.Sprintf("Password must be at least %d characters", minPasswordLength)
	}

	if len(errors) > 0 {
		h.renderForm(w, r, nil, errors, formValues)
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		flashError(w, r, h.renderer, redirectAdminUsers+RouteSuffixNew, "Error creating user")
		return
	}

	now := time.Now()
	created, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Name:         name,
		IsStaff:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		slog.Error("failed to create user", "error", err)
		flashError(w, r, h.renderer, redirectAdminUsers+RouteSuffixNew, "Error creating user")
		return
	}

	slog.Info("user created", "category", "auth", "created_user_id", created.ID, "by_user_id", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectAdminUsers, "User created successfully")
}

// EditForm handles GET /admin/users/{id}.
func (h *UsersHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminUsers, "Invalid user ID")
		return
	}

	account, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminUsers, "user", id,
		func(id int64) (model.User, error) { return h.queries.GetUserByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, &account, make(map[string]string), make(map[string]string))
}

// Update handles POST /admin/users/{id}. An optional password field
// rotates the credential in the same submit.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminUsers, "Invalid user ID")
		return
	}
	userURL := fmt.Sprintf("%s/%d", redirectAdminUsers, id)

	account, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminUsers, "user", id,
		func(id int64) (model.User, error) { return h.queries.GetUserByID(r.Context(), id) })
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, userURL) {
		return
	}

	email, role, name, errors, formValues := h.userFieldsFromForm(r, id)

	password := r.FormValue("password")
	if password != "" && len(password) < minPasswordLength {
		errors["password"] = fmt.Sprintf("Password must be at least %d characters", minPasswordLength)
	}

	// The last admin cannot demote themselves to editor.
	if account.Role == model.RoleAdmin && role != model.RoleAdmin {
		if last, err := h.isLastAdmin(r, id); err == nil && last {
			errors["role"] = "Cannot demote the only admin"
		}
	}

	if len(errors) > 0 {
		h.renderForm(w, r, &account, errors, formValues)
		return
	}

	if _, err := h.queries.UpdateUser(r.Context(), store.UpdateUserParams{
		ID:      id,
		Email:   email,
		Role:    role,
		Name:    name,
		IsStaff: true,
	}); err != nil {
		slog.Error("failed to update user", "error", err, "user_id", id)
		flashError(w, r, h.renderer, userURL, "Error updating user")
		return
	}

	if password != "" {
		hash, err := auth.HashPassword(password)
		if err == nil {
			err = h.queries.UpdateUserPassword(r.Context(), id, hash)
		}
		if err != nil {
			slog.Error("failed to rotate password", "error", err, "user_id", id)
			flashError(w, r, h.renderer, userURL, "Profile saved but the password change failed")
			return
		}
	}

	slog.Info("user updated", "category", "auth", "updated_user_id", id, "by_user_id", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectAdminUsers, "User updated successfully")
}

// Delete handles POST /admin/users/{id}/delete. Self-deletion and
// removing the last admin are rejected.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminUsers, "Invalid user ID")
		return
	}

	if id == middleware.GetUserID(r) {
		flashError(w, r, h.renderer, redirectAdminUsers, "You cannot delete your own account")
		return
	}

	account, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminUsers, "user", id,
		func(id int64) (model.User, error) { return h.queries.GetUserByID(r.Context(), id) })
	if !ok {
		return
	}
	if account.Role == model.RoleAdmin {
		if last, err := h.isLastAdmin(r, id); err == nil && last {
			flashError(w, r, h.renderer, redirectAdminUsers, "Cannot delete the only admin")
			return
		}
	}

	if err := h.queries.DeleteUser(r.Context(), id); err != nil {
		slog.Error("failed to delete user", "error", err, "user_id", id)
		flashError(w, r, h.renderer, redirectAdminUsers, "Error deleting user")
		return
	}

	slog.Info("user deleted", "category", "auth", "deleted_user_id", id, "by_user_id", middleware.GetUserID(r))
	flashSuccess(w, r, h.renderer, redirectAdminUsers, "User deleted successfully")
}

func (h *UsersHandler) isLastAdmin(r *http.Request, id int64) (bool, error) {
	users, err := h.queries.ListUsers(r.Context())
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u.Role == model.RoleAdmin && u.ID != id {
			return false, nil
		}
	}
	return true, nil
}

func (h *UsersHandler) userFieldsFromForm(r *http.Request, excludeID int64) (email, role, name string, errs map[string]string, formValues map[string]string) {
	email = strings.ToLower(formString(r, "email"))
	role = formString(r, "role")
	name = formString(r, "name")

	formValues = map[string]string{
		"email": email,
		"role":  role,
		"name":  name,
	}
	errs = make(map[string]string)

	if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "Invalid email address"
	} else if existing, err := h.queries.GetUserByEmail(r.Context(), email); err == nil && existing.ID != excludeID {
		errs["email"] = "Email already in use"
	} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
		errs["email"] = "Error checking email"
	}

	if role != model.RoleAdmin && role != model.RoleEditor {
		errs["role"] = "Invalid role"
	}
	if name == "" {
		errs["name"] = "Name is required"
	}
	return email, role, name, errs, formValues
}

func (h *UsersHandler) renderForm(w http.ResponseWriter, r *http.Request, account *model.User, errors, formValues map[string]string) {
	user := middleware.GetUser(r)

	title := "New User"
	crumbs := []render.Breadcrumb{
		{Label: "Dashboard", URL: redirectAdmin},
		{Label: "Users", URL: redirectAdminUsers},
	}
	if account != nil {
		title = fmt.Sprintf("Edit User - %s", account.Email)
		crumbs = append(crumbs, render.Breadcrumb{
			Label: account.Email, URL: fmt.Sprintf("%s/%d", redirectAdminUsers, account.ID), Active: true})
	} else {
		crumbs = append(crumbs, render.Breadcrumb{
			Label: "New User", URL: redirectAdminUsers + RouteSuffixNew, Active: true})
	}

	if err := h.renderer.Render(w, r, "admin/users_form", render.TemplateData{
		Title: title,
		User:  user,
		Data: UserFormData{
			Account:    account,
			Roles:      []string{model.RoleAdmin, model.RoleEditor},
			Errors:     errors,
			FormValues: formValues,
			IsEdit:     account != nil,
		},
		Breadcrumbs: crumbs,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}
