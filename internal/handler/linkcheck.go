// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/campuscms/campuscms/internal/middleware"
	"github.com/campuscms/campuscms/internal/render"
	"github.com/campuscms/campuscms/internal/service"
)

// LinkCheckHandler runs the external link checker from the admin
// console and shows the results.
type LinkCheckHandler struct {
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	checker        *service.LinkChecker
}

// NewLinkCheckHandler creates a new LinkCheckHandler.
func NewLinkCheckHandler(renderer *render.Renderer, sm *scs.SessionManager, checker *service.LinkChecker) *LinkCheckHandler {
	return &LinkCheckHandler{
		renderer:       renderer,
		sessionManager: sm,
		checker:        checker,
	}
}

// LinkCheckData holds data for the link check template.
type LinkCheckData struct {
	Results []service.LinkResult
	Broken  int
	Ran     bool
	Took    time.Duration
}

// Form handles GET /admin/link-check.
func (h *LinkCheckHandler) Form(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, LinkCheckData{})
}

// Run handles POST /admin/link-check. The check probes every external
// URL stored in navigation records synchronously, so it can take a
// while on link-heavy sites.
func (h *LinkCheckHandler) Run(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	results, err := h.checker.CheckAll(r.Context())
	if err != nil {
		slog.Error("link check failed", "error", err)
		flashError(w, r, h.renderer, redirectAdminLinkCheck, "Error running link check")
		return
	}

	broken := 0
	for _, res := range results {
		if !res.OK {
			broken++
		}
	}

	slog.Info("link check completed", "category", "system",
		"checked", len(results), "broken", broken, "took", time.Since(start))

	h.render(w, r, LinkCheckData{
		Results: results,
		Broken:  broken,
		Ran:     true,
		Took:    time.Since(start).Round(time.Millisecond),
	})
}

func (h *LinkCheckHandler) render(w http.ResponseWriter, r *http.Request, data LinkCheckData) {
	if err := h.renderer.Render(w, r, "admin/linkcheck", render.TemplateData{
		Title: "Link Check",
		User:  middleware.GetUser(r),
		Data:  data,
		Breadcrumbs: []render.Breadcrumb{
			{Label: "Dashboard", URL: redirectAdmin},
			{Label: "Link Check", URL: redirectAdminLinkCheck, Active: true},
		},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}
