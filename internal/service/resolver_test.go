// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"testing"

	"github.com/campuscms/campuscms/internal/model"
)

func TestResolveMenuItem(t *testing.T) {
	r := NewResolver(DefaultRoutes())

	tests := []struct {
		name     string
		item     model.MenuItem
		pageSlug string
		want     string
	}{
		{
			name: "external URL passes through",
			item: model.MenuItem{LinkType: model.LinkExternal, ExternalURL: "https://example.edu/portal"},
			want: "https://example.edu/portal",
		},
		{
			name: "empty external URL falls back",
			item: model.MenuItem{LinkType: model.LinkExternal},
			want: "#",
		},
		{
			name: "named route resolves",
			item: model.MenuItem{LinkType: model.LinkNamed, RouteName: "departments"},
			want: "/departments",
		},
		{
			name: "unknown route name falls back",
			item: model.MenuItem{LinkType: model.LinkNamed, RouteName: "no-such-route"},
			want: "#",
		},
		{
			name:     "internal page resolves to slug URL",
			item:     model.MenuItem{LinkType: model.LinkInternal},
			pageSlug: "admissions",
			want:     "/admissions",
		},
		{
			name: "internal page with missing target falls back",
			item: model.MenuItem{LinkType: model.LinkInternal},
			want: "#",
		},
		{
			name: "unknown link type falls back",
			item: model.MenuItem{LinkType: "bogus"},
			want: "#",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.ResolveMenuItem(tt.item, tt.pageSlug)
			if got != tt.want {
				t.Errorf("ResolveMenuItem() = %q, want %q", got, tt.want)
			}
			if got == "" {
				t.Error("ResolveMenuItem() returned empty string")
			}
		})
	}
}

func TestResolveSideMenuItem_Anchor(t *testing.T) {
	r := NewResolver(nil)

	got := r.ResolveSideMenuItem(model.SideMenuItem{LinkType: model.LinkAnchor, AnchorID: "downloads"}, "")
	if got != "#downloads" {
		t.Errorf("ResolveSideMenuItem() = %q, want %q", got, "#downloads")
	}

	got = r.ResolveSideMenuItem(model.SideMenuItem{LinkType: model.LinkAnchor}, "")
	if got != "#" {
		t.Errorf("ResolveSideMenuItem() with empty anchor = %q, want %q", got, "#")
	}
}

func TestPageURL(t *testing.T) {
	if got := PageURL("about-us"); got != "/about-us" {
		t.Errorf("PageURL(about-us) = %q, want /about-us", got)
	}
	if got := PageURL(""); got != FallbackURL {
		t.Errorf("PageURL(\"\") = %q, want %q", got, FallbackURL)
	}
}

func TestRouteRegistry(t *testing.T) {
	r := NewRouteRegistry()

	if _, ok := r.Lookup("home"); ok {
		t.Error("Lookup on empty registry should miss")
	}

	r.Register("home", "/")
	r.Register("home", "/index")

	path, ok := r.Lookup("home")
	if !ok {
		t.Fatal("Lookup(home) missed after Register")
	}
	if path != "/index" {
		t.Errorf("Lookup(home) = %q, want /index (last registration wins)", path)
	}
}
