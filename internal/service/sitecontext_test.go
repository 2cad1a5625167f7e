// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/campuscms/campuscms/internal/cache"
	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/store"
)

func newSiteContextService(t *testing.T, db *sql.DB, records *cache.ActiveRecordCache) *SiteContextService {
	t.Helper()

	q := store.New(db)
	resolver := NewResolver(DefaultRoutes())
	menus := NewMenuService(q, nil, resolver, NewVisibilityService(q))
	sideMenus := NewSideMenuService(q, resolver)
	activation := NewActivationService(db, records)
	return NewSiteContextService(q, records, activation, menus, sideMenus)
}

func TestBuild_ActiveRecords(t *testing.T) {
	db := testDB(t)
	q := store.New(db)
	ctx := context.Background()

	college, err := q.CreateCollegeInfo(ctx, model.CollegeInfo{Name: "Example College", Slug: "example"})
	if err != nil {
		t.Fatalf("CreateCollegeInfo: %v", err)
	}
	header, err := q.CreateHeaderInfo(ctx, model.HeaderInfo{CollegeName: "Example College"})
	if err != nil {
		t.Fatalf("CreateHeaderInfo: %v", err)
	}

	activation := NewActivationService(db, nil)
	if err := activation.Activate(ctx, model.FamilyCollegeInfo, college.ID); err != nil {
		t.Fatalf("Activate(college): %v", err)
	}
	if err := activation.Activate(ctx, model.FamilyHeaderInfo, header.ID); err != nil {
		t.Fatalf("Activate(header): %v", err)
	}

	svc := newSiteContextService(t, db, nil)

	pc := svc.Build(ctx, RequestInfo{Path: "/"})
	if pc.College == nil || pc.College.Name != "Example College" {
		t.Errorf("College = %+v, want active record", pc.College)
	}
	if pc.Header == nil {
		t.Error("Header = nil, want active record")
	}
	// Families with no active record come back nil, not an error.
	if pc.Navbar != nil {
		t.Errorf("Navbar = %+v, want nil", pc.Navbar)
	}
	if pc.UtilityBar != nil {
		t.Errorf("UtilityBar = %+v, want nil", pc.UtilityBar)
	}
	if pc.Path != "/" {
		t.Errorf("Path = %q, want /", pc.Path)
	}
}

func TestBuild_NotificationWindow(t *testing.T) {
	db := testDB(t)
	q := store.New(db)
	ctx := context.Background()

	now := time.Now()
	windowed := func(start time.Time, end sql.NullTime, active bool, msg string) {
		t.Helper()
		if _, err := q.CreateNotification(ctx, store.CreateNotificationParams{
			Message: msg, StartDate: start, EndDate: end, IsActive: active,
		}); err != nil {
			t.Fatalf("CreateNotification(%s): %v", msg, err)
		}
	}

	windowed(now.Add(-time.Hour), sql.NullTime{}, true, "open ended")
	windowed(now.Add(-time.Hour), sql.NullTime{Time: now.Add(time.Hour), Valid: true}, true, "in window")
	windowed(now.Add(time.Hour), sql.NullTime{}, true, "not started")
	windowed(now.Add(-2*time.Hour), sql.NullTime{Time: now.Add(-time.Hour), Valid: true}, true, "expired")
	windowed(now.Add(-time.Hour), sql.NullTime{}, false, "inactive")

	svc := newSiteContextService(t, db, nil)

	pc := svc.Build(ctx, RequestInfo{Path: "/"})
	if len(pc.Notifications) != 2 {
		t.Fatalf("len(Notifications) = %d, want 2", len(pc.Notifications))
	}
	for _, n := range pc.Notifications {
		if n.Message != "open ended" && n.Message != "in window" {
			t.Errorf("unexpected notification %q", n.Message)
		}
	}
}

func TestBuild_RecentNoticeCount(t *testing.T) {
	db := testDB(t)
	q := store.New(db)
	ctx := context.Background()

	now := time.Now()
	notices := []store.CreateNoticeParams{
		{Title: "Fresh", Slug: "fresh", PublishDate: now.Add(-24 * time.Hour), IsActive: true},
		{Title: "Old", Slug: "old", PublishDate: now.Add(-30 * 24 * time.Hour), IsActive: true},
		{Title: "Hidden", Slug: "hidden", PublishDate: now.Add(-24 * time.Hour), IsActive: false},
	}
	for _, n := range notices {
		if _, err := q.CreateNotice(ctx, n); err != nil {
			t.Fatalf("CreateNotice(%s): %v", n.Slug, err)
		}
	}

	svc := newSiteContextService(t, db, nil)

	pc := svc.Build(ctx, RequestInfo{Path: "/"})
	if pc.RecentNoticeCount != 1 {
		t.Errorf("RecentNoticeCount = %d, want 1", pc.RecentNoticeCount)
	}
}

func TestUtilityLinks_LegacyThenDynamic(t *testing.T) {
	db := testDB(t)
	q := store.New(db)
	ctx := context.Background()

	bar, err := q.CreateUtilityBar(ctx, model.UtilityBar{
		Name:            "Bar",
		ShowCustomLinks: true,
		Link1Text:       "Library",
		Link1URL:        "https://library.example.edu",
	})
	if err != nil {
		t.Fatalf("CreateUtilityBar: %v", err)
	}
	if _, err := q.CreateCustomLink(ctx, model.CustomLink{
		UtilityBarID: bar.ID, Text: "Dynamic", URL: "https://dyn.example.edu", IsActive: true,
	}); err != nil {
		t.Fatalf("CreateCustomLink: %v", err)
	}
	if _, err := q.CreateCustomLink(ctx, model.CustomLink{
		UtilityBarID: bar.ID, Text: "Off", URL: "https://off.example.edu", IsActive: false,
	}); err != nil {
		t.Fatalf("CreateCustomLink: %v", err)
	}

	svc := newSiteContextService(t, db, nil)

	// Legacy slots come first, active dynamic rows follow.
	links := svc.utilityLinks(ctx, &bar)
	if len(links) != 2 || links[0].Text != "Library" || links[1].Text != "Dynamic" {
		t.Errorf("links = %v, want [Library Dynamic]", links)
	}

	// With every legacy slot empty only the dynamic rows remain.
	bare, err := q.CreateUtilityBar(ctx, model.UtilityBar{Name: "Bare", ShowCustomLinks: true})
	if err != nil {
		t.Fatalf("CreateUtilityBar: %v", err)
	}
	if _, err := q.CreateCustomLink(ctx, model.CustomLink{
		UtilityBarID: bare.ID, Text: "Dynamic", URL: "https://dyn.example.edu", IsActive: true,
	}); err != nil {
		t.Fatalf("CreateCustomLink: %v", err)
	}

	links = svc.utilityLinks(ctx, &bare)
	if len(links) != 1 || links[0].Text != "Dynamic" {
		t.Errorf("links = %v, want the dynamic row", links)
	}

	// Hidden custom links yield nothing.
	hidden := bar
	hidden.ShowCustomLinks = false
	if links := svc.utilityLinks(ctx, &hidden); links != nil {
		t.Errorf("links = %v, want nil when custom links are off", links)
	}
}

func TestActiveOf_CacheRepopulation(t *testing.T) {
	db := testDB(t)
	q := store.New(db)
	ctx := context.Background()

	mem := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = mem.Close() })
	records := cache.NewActiveRecordCache(mem, time.Minute)

	college, err := q.CreateCollegeInfo(ctx, model.CollegeInfo{Name: "Cached College", Slug: "cached"})
	if err != nil {
		t.Fatalf("CreateCollegeInfo: %v", err)
	}
	activation := NewActivationService(db, records)
	if err := activation.Activate(ctx, model.FamilyCollegeInfo, college.ID); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	svc := newSiteContextService(t, db, records)

	got := activeOf(ctx, svc, model.FamilyCollegeInfo, q.GetActiveCollegeInfo)
	if got == nil || got.Name != "Cached College" {
		t.Fatalf("activeOf = %+v, want the active record", got)
	}

	// The read populated the cache; a second read must hit it.
	var cached model.CollegeInfo
	if !records.Get(ctx, model.FamilyCollegeInfo, &cached) {
		t.Fatal("cache miss after activeOf")
	}
	if cached.Name != "Cached College" {
		t.Errorf("cached.Name = %q, want Cached College", cached.Name)
	}
}

func TestActiveOf_RecoversMultiActive(t *testing.T) {
	db := testDB(t)
	q := store.New(db)
	ctx := context.Background()

	var ids []int64
	for _, name := range []string{"Bar A", "Bar B"} {
		bar, err := q.CreateUtilityBar(ctx, model.UtilityBar{Name: name})
		if err != nil {
			t.Fatalf("CreateUtilityBar: %v", err)
		}
		ids = append(ids, bar.ID)
	}
	for _, id := range ids {
		if err := q.PromoteRecord(ctx, model.FamilyUtilityBar, id); err != nil {
			t.Fatalf("PromoteRecord: %v", err)
		}
		time.Sleep(15 * time.Millisecond)
	}

	svc := newSiteContextService(t, db, nil)

	got := activeOf(ctx, svc, model.FamilyUtilityBar, q.GetActiveUtilityBar)
	if got == nil || got.ID != ids[1] {
		t.Fatalf("activeOf = %+v, want the most recently promoted bar", got)
	}

	n, err := q.CountActiveInFamily(ctx, model.FamilyUtilityBar, 0)
	if err != nil {
		t.Fatalf("CountActiveInFamily: %v", err)
	}
	if n != 1 {
		t.Errorf("active count = %d, want 1 after recovery", n)
	}
}
