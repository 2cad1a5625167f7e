// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"

	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/store"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name string
		menu model.SideMenu
		req  RequestInfo
		want bool
	}{
		{
			name: "global matches everything",
			menu: model.SideMenu{AssignmentType: model.AssignGlobal},
			req:  RequestInfo{Path: "/anything/at/all/"},
			want: true,
		},
		{
			name: "url prefix matches",
			menu: model.SideMenu{AssignmentType: model.AssignURLPrefix, URLPrefix: "/iqac/"},
			req:  RequestInfo{Path: "/iqac/reports/"},
			want: true,
		},
		{
			name: "url prefix misses",
			menu: model.SideMenu{AssignmentType: model.AssignURLPrefix, URLPrefix: "/iqac/"},
			req:  RequestInfo{Path: "/academics/"},
			want: false,
		},
		{
			name: "empty url prefix never matches",
			menu: model.SideMenu{AssignmentType: model.AssignURLPrefix},
			req:  RequestInfo{Path: "/iqac/"},
			want: false,
		},
		{
			name: "page slug matches",
			menu: model.SideMenu{AssignmentType: model.AssignPageSlug, PageSlug: "admissions"},
			req:  RequestInfo{Path: "/admissions", PageSlug: "admissions"},
			want: true,
		},
		{
			name: "page slug misses on other page",
			menu: model.SideMenu{AssignmentType: model.AssignPageSlug, PageSlug: "admissions"},
			req:  RequestInfo{Path: "/about", PageSlug: "about"},
			want: false,
		},
		{
			name: "empty page slug never matches",
			menu: model.SideMenu{AssignmentType: model.AssignPageSlug},
			req:  RequestInfo{Path: "/about"},
			want: false,
		},
		{
			name: "section matches enclosed segment",
			menu: model.SideMenu{AssignmentType: model.AssignSection, SectionName: "academics"},
			req:  RequestInfo{Path: "/academics/departments/"},
			want: true,
		},
		{
			name: "section does not match bare prefix",
			menu: model.SideMenu{AssignmentType: model.AssignSection, SectionName: "academics"},
			req:  RequestInfo{Path: "/academics"},
			want: false,
		},
		{
			name: "unknown assignment type never matches",
			menu: model.SideMenu{AssignmentType: "bogus"},
			req:  RequestInfo{Path: "/"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.menu, tt.req); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatch_PriorityOrdering(t *testing.T) {
	db := testDB(t)
	q := store.New(db)
	ctx := context.Background()

	menus := []store.CreateSideMenuParams{
		{Name: "Global", Slug: "global", AssignmentType: model.AssignGlobal, Priority: 10, IsActive: true},
		{Name: "IQAC", Slug: "iqac", AssignmentType: model.AssignURLPrefix, URLPrefix: "/iqac/", Priority: 50, IsActive: true},
		{Name: "Academics", Slug: "academics", AssignmentType: model.AssignSection, SectionName: "academics", Priority: 30, IsActive: true},
	}
	for _, m := range menus {
		if _, err := q.CreateSideMenu(ctx, m); err != nil {
			t.Fatalf("CreateSideMenu(%s): %v", m.Slug, err)
		}
	}

	svc := NewSideMenuService(q, NewResolver(nil))

	got := svc.Match(ctx, RequestInfo{Path: "/iqac/reports/"})
	if len(got) != 2 {
		t.Fatalf("len(matched) = %d, want 2", len(got))
	}
	if got[0].Slug != "iqac" || got[1].Slug != "global" {
		t.Errorf("matched = [%s %s], want [iqac global]", got[0].Slug, got[1].Slug)
	}

	got = svc.Match(ctx, RequestInfo{Path: "/academics/departments/"})
	if len(got) != 2 {
		t.Fatalf("len(matched) = %d, want 2", len(got))
	}
	if got[0].Slug != "academics" || got[1].Slug != "global" {
		t.Errorf("matched = [%s %s], want [academics global]", got[0].Slug, got[1].Slug)
	}
}

func TestMatchResolved_ViewerGating(t *testing.T) {
	db := testDB(t)
	q := store.New(db)
	ctx := context.Background()

	menu, err := q.CreateSideMenu(ctx, store.CreateSideMenuParams{
		Name: "Portal", Slug: "portal", AssignmentType: model.AssignGlobal, IsActive: true,
	})
	if err != nil {
		t.Fatalf("CreateSideMenu: %v", err)
	}

	items := []store.CreateSideMenuItemParams{
		{SideMenuID: menu.ID, Title: "Public", ItemType: model.SideItemLink,
			LinkType: model.LinkExternal, ExternalURL: "https://example.edu/", IsActive: true, Ordering: 0},
		{SideMenuID: menu.ID, Title: "Members", ItemType: model.SideItemLink,
			LinkType: model.LinkExternal, ExternalURL: "https://example.edu/members", RequireAuth: true, IsActive: true, Ordering: 1},
		{SideMenuID: menu.ID, Title: "Staff Room", ItemType: model.SideItemLink,
			LinkType: model.LinkExternal, ExternalURL: "https://example.edu/staff", RequireStaff: true, IsActive: true, Ordering: 2},
		{SideMenuID: menu.ID, Title: "Section", ItemType: model.SideItemHeading, IsActive: true, Ordering: 3},
	}
	for _, it := range items {
		if _, err := q.CreateSideMenuItem(ctx, it); err != nil {
			t.Fatalf("CreateSideMenuItem(%s): %v", it.Title, err)
		}
	}

	svc := NewSideMenuService(q, NewResolver(nil))

	titles := func(navs []SideNav) []string {
		if len(navs) != 1 {
			t.Fatalf("len(navs) = %d, want 1", len(navs))
		}
		var out []string
		for _, it := range navs[0].Items {
			out = append(out, it.Title)
		}
		return out
	}

	anon := titles(svc.MatchResolved(ctx, RequestInfo{Path: "/"}))
	if len(anon) != 2 || anon[0] != "Public" || anon[1] != "Section" {
		t.Errorf("anonymous items = %v, want [Public Section]", anon)
	}

	auth := titles(svc.MatchResolved(ctx, RequestInfo{Path: "/", Authenticated: true}))
	if len(auth) != 3 || auth[1] != "Members" {
		t.Errorf("authenticated items = %v, want [Public Members Section]", auth)
	}

	staff := titles(svc.MatchResolved(ctx, RequestInfo{Path: "/", Authenticated: true, Staff: true}))
	if len(staff) != 4 {
		t.Errorf("staff items = %v, want all four", staff)
	}

	// Headings carry no link.
	navs := svc.MatchResolved(ctx, RequestInfo{Path: "/"})
	heading := navs[0].Items[len(navs[0].Items)-1]
	if heading.URL != "" {
		t.Errorf("heading URL = %q, want empty", heading.URL)
	}
}
