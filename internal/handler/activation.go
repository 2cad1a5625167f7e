// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/render"
	"github.com/campuscms/campuscms/internal/service"
)

// activateRecord runs the singleton-active promotion for a family
// record and reports the outcome as a flash. A strict-mode conflict
// comes back as a FieldErrors naming the incumbent; its message is
// surfaced to the operator instead of a generic failure.
func activateRecord(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, activation *service.ActivationService, f model.Family, id int64, redirectURL string) {
	if err := activation.Activate(r.Context(), f, id); err != nil {
		if fieldErrs, ok := service.AsFieldErrors(err); ok {
			flashError(w, r, renderer, redirectURL, fieldErrs["is_active"])
			return
		}
		slog.Error("failed to activate record", "error", err, "family", string(f), "record_id", id)
		flashError(w, r, renderer, redirectURL, "Error activating record")
		return
	}

	slog.Info("record activated", "category", "config", "family", string(f), "record_id", id)
	flashSuccess(w, r, renderer, redirectURL, "Record activated successfully")
}

// deactivateRecord clears the record's active flag. Nothing is promoted
// in its place.
func deactivateRecord(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, activation *service.ActivationService, f model.Family, id int64, redirectURL string) {
	if err := activation.Deactivate(r.Context(), f, id); err != nil {
		slog.Error("failed to deactivate record", "error", err, "family", string(f), "record_id", id)
		flashError(w, r, renderer, redirectURL, "Error deactivating record")
		return
	}

	slog.Info("record deactivated", "category", "config", "family", string(f), "record_id", id)
	flashSuccess(w, r, renderer, redirectURL, "Record deactivated successfully")
}
