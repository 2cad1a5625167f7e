// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/store"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	db         *sql.DB
	queries    *store.Queries
	sm         *scs.SessionManager
	uploadsDir string
	startTime  time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *sql.DB, sm *scs.SessionManager, uploadsDir string) *HealthHandler {
	return &HealthHandler{
		db:         db,
		queries:    store.New(db),
		sm:         sm,
		uploadsDir: uploadsDir,
		startTime:  time.Now(),
	}
}

// StartTime returns when the handler (and application) was started.
func (h *HealthHandler) StartTime() time.Time {
	return h.startTime
}

// HealthStatusPublic is the minimal health response for unauthenticated callers.
type HealthStatusPublic struct {
	Status string `json:"status"`
}

// HealthStatus is the full health response for authenticated callers.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Checks    map[string]Check `json:"checks,omitempty"`
	System    *SystemInfo      `json:"system,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo contains system-level information.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutines"`
	NumCPU       int    `json:"num_cpus"`
	MemAlloc     string `json:"mem_alloc"`
	MemSys       string `json:"mem_sys"`
}

// Health handles GET /health requests. Unauthenticated callers get a
// minimal status; admin sessions get check details.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbCheck := h.checkDatabase(r.Context())
	uploadsCheck := h.checkUploadsDir()

	overallStatus := "healthy"
	if dbCheck.Status != "healthy" || uploadsCheck.Status != "healthy" {
		overallStatus = "degraded"
	}

	w.Header().Set(HeaderContentType, "application/json")
	if overallStatus != "healthy" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	if !h.isAdmin(r) {
		_ = json.NewEncoder(w).Encode(HealthStatusPublic{Status: overallStatus})
		return
	}

	status := HealthStatus{
		Status:    overallStatus,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Checks: map[string]Check{
			"database": dbCheck,
			"uploads":  uploadsCheck,
		},
	}
	if r.URL.Query().Get("verbose") == "true" {
		status.System = systemInfo()
	}

	_ = json.NewEncoder(w).Encode(status)
}

// Liveness handles GET /health/live.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(HeaderContentType, "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
}

// Readiness handles GET /health/ready. Ready means the database answers.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	dbCheck := h.checkDatabase(r.Context())

	w.Header().Set(HeaderContentType, "application/json")
	if dbCheck.Status == "healthy" {
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
		return
	}

	w.WriteHeader(http.StatusServiceUnavailable)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "not_ready"})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) Check {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		return Check{Status: "unhealthy", Message: err.Error()}
	}
	return Check{Status: "healthy", Latency: time.Since(start).Round(time.Microsecond).String()}
}

func (h *HealthHandler) checkUploadsDir() Check {
	info, err := os.Stat(h.uploadsDir)
	if err != nil {
		return Check{Status: "unhealthy", Message: err.Error()}
	}
	if !info.IsDir() {
		return Check{Status: "unhealthy", Message: "uploads path is not a directory"}
	}
	return Check{Status: "healthy"}
}

// isAdmin checks for an admin session. SCS panics when session data is
// not loaded into the context, so recover gracefully.
func (h *HealthHandler) isAdmin(r *http.Request) (admin bool) {
	if h.sm == nil {
		return false
	}
	defer func() {
		if rec := recover(); rec != nil {
			admin = false
		}
	}()

	userID := h.sm.GetInt64(r.Context(), SessionKeyUserID)
	if userID < 1 {
		return false
	}
	user, err := h.queries.GetUserByID(r.Context(), userID)
	return err == nil && user.Role == model.RoleAdmin
}

func systemInfo() *SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return &SystemInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     fmt.Sprintf("%d MiB", m.Alloc/1024/1024),
		MemSys:       fmt.Sprintf("%d MiB", m.Sys/1024/1024),
	}
}
