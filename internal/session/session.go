// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the server-side session manager backed by SQLite.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// New creates a new session manager configured with the SQLite store.
// In production the cookie uses the __Host- prefix, which requires
// Secure and Path=/ with no Domain attribute.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.New(db)

	sm.Lifetime = 24 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"
	if isDev {
		sm.Cookie.Secure = false
	} else {
		sm.Cookie.Secure = true
		sm.Cookie.Name = "__Host-session"
	}

	return sm
}
