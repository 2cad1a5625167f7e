// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/campuscms/campuscms/internal/model"
)

func TestActiveRecordCache_RoundTrip(t *testing.T) {
	backend := NewSimpleMemoryCache(time.Minute)
	defer backend.Close()
	arc := NewActiveRecordCache(backend, time.Minute)
	ctx := context.Background()

	bar := model.UtilityBar{ID: 7, ContactEmail: "office@example.edu"}
	if err := arc.Set(ctx, model.FamilyUtilityBar, &bar); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	var got model.UtilityBar
	if !arc.Get(ctx, model.FamilyUtilityBar, &got) {
		t.Fatal("Get returned miss for stored family")
	}
	if got.ID != 7 || got.ContactEmail != "office@example.edu" {
		t.Errorf("Get = %+v", got)
	}
}

func TestActiveRecordCache_InvalidateDropsSiteContext(t *testing.T) {
	backend := NewSimpleMemoryCache(time.Minute)
	defer backend.Close()
	arc := NewActiveRecordCache(backend, time.Minute)
	ctx := context.Background()

	_ = arc.Set(ctx, model.FamilyHeaderInfo, &model.HeaderInfo{ID: 1})
	_ = backend.Set(ctx, SiteContextKey, []byte(`{}`), 0)

	arc.Invalidate(ctx, model.FamilyHeaderInfo)

	var hi model.HeaderInfo
	if arc.Get(ctx, model.FamilyHeaderInfo, &hi) {
		t.Error("family entry survived Invalidate")
	}
	if has, _ := backend.Has(ctx, SiteContextKey); has {
		t.Error("site context entry survived Invalidate")
	}
}

func TestActiveRecordCache_InvalidateAll(t *testing.T) {
	backend := NewSimpleMemoryCache(time.Minute)
	defer backend.Close()
	arc := NewActiveRecordCache(backend, time.Minute)
	ctx := context.Background()

	_ = arc.Set(ctx, model.FamilyNavbarInfo, &model.NavbarInfo{ID: 2})
	_ = arc.Set(ctx, model.FamilyCollegeInfo, &model.CollegeInfo{ID: 3})

	arc.InvalidateAll(ctx)

	var nb model.NavbarInfo
	if arc.Get(ctx, model.FamilyNavbarInfo, &nb) {
		t.Error("entry survived InvalidateAll")
	}
}
