// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
	"testing"
	"time"
)

func TestSitemapBuilder(t *testing.T) {
	b := NewSitemapBuilder("https://example.edu")
	b.AddHomepage()
	b.AddPages([]SitemapEntry{
		{Slug: "admissions", UpdatedAt: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)},
		{Slug: "about"},
	})
	b.AddDepartments([]SitemapEntry{{Slug: "physics"}})
	b.AddNotices([]SitemapEntry{{Slug: "exam-schedule"}})

	out, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	xml := string(out)

	for _, want := range []string{
		"<loc>https://example.edu</loc>",
		"<loc>https://example.edu/admissions</loc>",
		"<loc>https://example.edu/departments/physics</loc>",
		"<loc>https://example.edu/notices/exam-schedule</loc>",
		"<lastmod>2026-01-15T00:00:00Z</lastmod>",
	} {
		if !strings.Contains(xml, want) {
			t.Errorf("sitemap missing %q", want)
		}
	}
	if strings.Count(xml, "<url>") != 5 {
		t.Errorf("url count = %d, want 5", strings.Count(xml, "<url>"))
	}
}

func TestGenerateRobots(t *testing.T) {
	out := GenerateRobots("https://example.edu/", false)
	for _, want := range []string{
		"User-agent: *",
		"Disallow: /admin",
		"Allow: /",
		"Sitemap: https://example.edu/sitemap.xml",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("robots.txt missing %q", want)
		}
	}

	staging := GenerateRobots("https://example.edu", true)
	if !strings.Contains(staging, "Disallow: /\n") {
		t.Error("staging robots.txt should block everything")
	}
	if strings.Contains(staging, "Sitemap:") {
		t.Error("staging robots.txt should omit the sitemap")
	}
}

func TestBuildMeta(t *testing.T) {
	site := SiteData{SiteName: "Example College", SiteURL: "https://example.edu", SiteDescription: "A college."}

	home := BuildMeta(nil, site)
	if home.Title != "Example College" || home.Canonical != "https://example.edu" {
		t.Errorf("homepage meta = %+v", home)
	}

	page := BuildMeta(&PageData{
		Title: "Admissions",
		Slug:  "admissions",
		Body:  "<p>Apply   <b>now</b> for the new session.</p>",
	}, site)
	if page.Title != "Admissions | Example College" {
		t.Errorf("Title = %q", page.Title)
	}
	if page.Description != "Apply now for the new session." {
		t.Errorf("Description = %q", page.Description)
	}
	if page.Canonical != "https://example.edu/admissions" {
		t.Errorf("Canonical = %q", page.Canonical)
	}

	stored := BuildMeta(&PageData{
		Title:           "Admissions",
		Slug:            "admissions",
		MetaTitle:       "Apply to Example",
		MetaDescription: "Admissions info.",
		MetaKeywords:    "admissions, college",
	}, site)
	if stored.Title != "Apply to Example" || stored.Description != "Admissions info." {
		t.Errorf("stored meta = %+v", stored)
	}
	if stored.Keywords != "admissions, college" {
		t.Errorf("Keywords = %q", stored.Keywords)
	}
}
