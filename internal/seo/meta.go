// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"regexp"
	"strings"
)

// Meta holds the SEO meta tag data for a rendered page.
type Meta struct {
	Title         string
	Description   string
	Keywords      string
	Canonical     string
	OGTitle       string
	OGDescription string
	OGSiteName    string
	OGType        string
	OGURL         string
}

// PageData contains page information for building meta tags.
type PageData struct {
	Title           string
	Slug            string
	Body            string
	MetaTitle       string
	MetaDescription string
	MetaKeywords    string
}

// SiteData contains site-wide settings for SEO.
type SiteData struct {
	SiteName        string
	SiteURL         string
	SiteDescription string
}

// BuildMeta creates a Meta from page and site data with fallbacks: the
// stored meta fields win, then the page title and a truncated body, then
// the site-wide defaults. A nil page yields homepage meta.
func BuildMeta(page *PageData, site SiteData) Meta {
	meta := Meta{
		OGSiteName: site.SiteName,
		OGType:     "website",
	}

	if page == nil {
		meta.Title = site.SiteName
		meta.OGTitle = site.SiteName
		meta.Description = site.SiteDescription
		meta.OGDescription = site.SiteDescription
		meta.Canonical = site.SiteURL
		meta.OGURL = site.SiteURL
		return meta
	}

	meta.Title = page.MetaTitle
	if meta.Title == "" {
		meta.Title = page.Title
		if site.SiteName != "" {
			meta.Title += " | " + site.SiteName
		}
	}
	meta.OGTitle = meta.Title

	meta.Description = page.MetaDescription
	if meta.Description == "" && page.Body != "" {
		meta.Description = truncateText(stripHTML(page.Body), 160)
	}
	meta.OGDescription = meta.Description

	meta.Keywords = page.MetaKeywords

	if page.Slug != "" {
		meta.Canonical = strings.TrimSuffix(site.SiteURL, "/") + "/" + page.Slug
	}
	meta.OGURL = meta.Canonical

	return meta
}

var tagRegex = regexp.MustCompile(`<[^>]*>`)

// stripHTML removes markup and collapses whitespace.
func stripHTML(html string) string {
	text := tagRegex.ReplaceAllString(html, " ")
	return strings.Join(strings.Fields(text), " ")
}

// truncateText shortens text to maxLen at a word boundary.
func truncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	cut := text[:maxLen]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
