// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campuscms/campuscms/internal/model"
)

func requestWithUser(u model.User) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/admin", nil)
	ctx := context.WithValue(r.Context(), ContextKeyUser, u)
	return r.WithContext(ctx)
}

func TestGetUser_NoUser(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if GetUser(r) != nil {
		t.Error("expected nil user for empty context")
	}
	if GetUserID(r) != 0 {
		t.Error("expected 0 user ID for empty context")
	}
}

func TestGetUser_WithUser(t *testing.T) {
	r := requestWithUser(model.User{ID: 42, Email: "admin@example.edu", Role: model.RoleAdmin})

	user := GetUser(r)
	if user == nil {
		t.Fatal("expected user in context")
	}
	if user.ID != 42 {
		t.Errorf("ID = %d, want 42", user.ID)
	}
	if GetUserID(r) != 42 {
		t.Errorf("GetUserID = %d, want 42", GetUserID(r))
	}
}

func TestIsStaff(t *testing.T) {
	if IsStaff(httptest.NewRequest(http.MethodGet, "/", nil)) {
		t.Error("anonymous request should not be staff")
	}
	if IsStaff(requestWithUser(model.User{ID: 1, IsStaff: false})) {
		t.Error("non-staff user should not be staff")
	}
	if !IsStaff(requestWithUser(model.User{ID: 1, IsStaff: true})) {
		t.Error("staff user should be staff")
	}
}

func TestRequireRole_Hierarchy(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	testCases := []struct {
		name       string
		minRole    string
		userRole   string
		wantStatus int
	}{
		{"admin accessing admin route", model.RoleAdmin, model.RoleAdmin, http.StatusOK},
		{"editor accessing admin route", model.RoleAdmin, model.RoleEditor, http.StatusForbidden},
		{"admin accessing editor route", model.RoleEditor, model.RoleAdmin, http.StatusOK},
		{"editor accessing editor route", model.RoleEditor, model.RoleEditor, http.StatusOK},
		{"unknown role accessing editor route", model.RoleEditor, "viewer", http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := RequireRole(tc.minRole)(next)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, requestWithUser(model.User{ID: 1, Role: tc.userRole}))

			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}

func TestRequireRole_NoUser_Redirects(t *testing.T) {
	handler := RequireAdmin()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/login" {
		t.Errorf("Location = %q, want /admin/login", loc)
	}
}

func TestRequestPath(t *testing.T) {
	var got string
	handler := RequestPath(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetRequestPath(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/departments/physics", nil))

	if got != "/departments/physics" {
		t.Errorf("request path = %q", got)
	}
}
