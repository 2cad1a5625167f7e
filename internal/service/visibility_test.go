// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"

	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/store"
)

func TestVisibleIn(t *testing.T) {
	settings := AllVisibleSettings()
	settings.ShowPlacement = false

	tests := []struct {
		name string
		tag  string
		want bool
	}{
		{"empty tag is visible", "", true},
		{"enabled tag is visible", model.TagResearch, true},
		{"disabled tag is hidden", model.TagPlacement, false},
		{"unknown tag is visible", "made-up-tag", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VisibleIn(settings, tt.tag); got != tt.want {
				t.Errorf("VisibleIn(%q) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestVisibilityService_Visible(t *testing.T) {
	db := testDB(t)
	q := store.New(db)
	ctx := context.Background()

	svc := NewVisibilityService(q)

	// The settings row is created lazily with every flag on.
	if !svc.Visible(ctx, model.TagAlumni) {
		t.Error("Visible(alumni) = false on fresh settings, want true")
	}

	settings, err := svc.Settings(ctx)
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	settings.ShowAlumni = false
	if _, err := q.UpdateVisibilitySettings(ctx, settings); err != nil {
		t.Fatalf("UpdateVisibilitySettings: %v", err)
	}

	if svc.Visible(ctx, model.TagAlumni) {
		t.Error("Visible(alumni) = true after disabling, want false")
	}
	if !svc.Visible(ctx, model.TagResearch) {
		t.Error("Visible(research) = false, want true")
	}
}
