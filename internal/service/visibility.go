// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"log/slog"

	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/store"
)

// VisibilityService answers whether a tagged navigation branch should be
// rendered. Unknown tags and lookup failures are visible (fail-open).
type VisibilityService struct {
	queries *store.Queries
}

// NewVisibilityService creates a VisibilityService.
func NewVisibilityService(queries *store.Queries) *VisibilityService {
	return &VisibilityService{queries: queries}
}

// Settings returns the current visibility record, lazily created with
// every flag on when absent.
func (s *VisibilityService) Settings(ctx context.Context) (model.VisibilitySettings, error) {
	return s.queries.GetVisibilitySettings(ctx)
}

// Visible reports whether the branch carrying the tag should render.
// An empty tag always renders.
func (s *VisibilityService) Visible(ctx context.Context, tag string) bool {
	if tag == "" {
		return true
	}

	settings, err := s.queries.GetVisibilitySettings(ctx)
	if err != nil {
		slog.Warn("visibility settings unavailable", "error", err)
		return true
	}

	visible, _ := settings.FlagFor(tag)
	return visible
}

// AllVisibleSettings returns a settings record with every flag on. It is
// the fail-open stand-in when the stored record cannot be read.
func AllVisibleSettings() model.VisibilitySettings {
	return model.VisibilitySettings{
		ShowResearch:          true,
		ShowPlacement:         true,
		ShowAlumni:            true,
		ShowEvents:            true,
		ShowExamTimetable:     true,
		ShowExamRevaluation:   true,
		ShowExamQuestionPaper: true,
		ShowExamRules:         true,
		ShowStudentPortal:     true,
		ShowSportsCultural:    true,
		ShowNSSNCC:            true,
		ShowResearchCenters:   true,
		ShowPublications:      true,
		ShowPatentsProjects:   true,
	}
}

// VisibleIn is Visible against an already-loaded settings record. Use it
// when gating many nodes in one request to avoid repeated lookups.
func VisibleIn(settings model.VisibilitySettings, tag string) bool {
	if tag == "" {
		return true
	}
	visible, _ := settings.FlagFor(tag)
	return visible
}
