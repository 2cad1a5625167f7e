// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/campuscms/campuscms/internal/auth"
	"github.com/campuscms/campuscms/internal/middleware"
	"github.com/campuscms/campuscms/internal/render"
	"github.com/campuscms/campuscms/internal/store"
)

// SessionKeyUserID is the session key for storing the authenticated user ID.
const SessionKeyUserID = "user_id"

// AuthHandler handles authentication routes.
type AuthHandler struct {
	queries         *store.Queries
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		queries:         store.New(db),
		renderer:        renderer,
		sessionManager:  sm,
		loginProtection: lp,
	}
}

// LoginForm renders the login page. Already-authenticated users are
// redirected to the admin dashboard.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if userID := h.sessionManager.GetInt64(r.Context(), SessionKeyUserID); userID > 0 {
		if _, err := h.queries.GetUserByID(r.Context(), userID); err == nil {
			http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
			return
		}
	}

	if err := h.renderer.Render(w, r, "auth/login", render.TemplateData{
		Title: "Sign In",
	}); err != nil {
		logAndInternalError(w, "failed to render login page", "error", err)
	}
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectLogin) {
		return
	}

	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	password := r.FormValue("password")

	if email == "" || password == "" {
		flashError(w, r, h.renderer, redirectLogin, "Email and password are required")
		return
	}

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(email); locked {
			flashError(w, r, h.renderer, redirectLogin,
				fmt.Sprintf("Account temporarily locked. Try again in %s", remaining.Round(time.Second)))
			return
		}
	}

	user, err := h.queries.GetUserByEmail(r.Context(), email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("failed to get user by email", "error", err)
		}
		h.recordFailure(w, r, email)
		return
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		slog.Error("failed to verify password", "error", err, "user_id", user.ID)
		flashError(w, r, h.renderer, redirectLogin, "Invalid email or password")
		return
	}
	if !ok {
		h.recordFailure(w, r, email)
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(email)
	}

	// Rotate the session token on privilege change.
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "failed to renew session token", "error", err)
		return
	}
	h.sessionManager.Put(r.Context(), SessionKeyUserID, user.ID)

	if err := h.queries.TouchUserLogin(r.Context(), user.ID, time.Now()); err != nil {
		slog.Warn("failed to record login time", "error", err, "user_id", user.ID)
	}

	// Rehash on login when parameters have been strengthened since the
	// password was stored.
	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(password); err == nil {
			if err := h.queries.UpdateUserPassword(r.Context(), user.ID, newHash); err != nil {
				slog.Warn("failed to rehash password", "error", err, "user_id", user.ID)
			}
		}
	}

	slog.Info("user logged in", "category", "auth", "user_id", user.ID, "email", user.Email)
	http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
}

func (h *AuthHandler) recordFailure(w http.ResponseWriter, r *http.Request, email string) {
	if h.loginProtection != nil {
		if locked, lockout := h.loginProtection.RecordFailedAttempt(email); locked {
			slog.Warn("account locked after failed attempts", "category", "auth", "email", email)
			flashError(w, r, h.renderer, redirectLogin,
				fmt.Sprintf("Too many failed attempts. Account locked for %s", lockout.Round(time.Second)))
			return
		}
	}
	flashError(w, r, h.renderer, redirectLogin, "Invalid email or password")
}

// Logout destroys the session and redirects to the homepage.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := h.sessionManager.GetInt64(r.Context(), SessionKeyUserID)

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		logAndInternalError(w, "failed to destroy session", "error", err)
		return
	}

	if userID > 0 {
		slog.Info("user logged out", "category", "auth", "user_id", userID)
	}
	http.Redirect(w, r, RouteRoot, http.StatusSeeOther)
}
