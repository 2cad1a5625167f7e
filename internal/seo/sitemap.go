// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds sitemaps, robots.txt, and page meta tags.
package seo

import (
	"encoding/xml"
	"time"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Valid change frequency values.
const (
	ChangeFreqAlways  ChangeFreq = "always"
	ChangeFreqHourly  ChangeFreq = "hourly"
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
	ChangeFreqYearly  ChangeFreq = "yearly"
	ChangeFreqNever   ChangeFreq = "never"
)

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapEntry contains the data needed to add one URL to the sitemap.
type SitemapEntry struct {
	Slug      string
	UpdatedAt time.Time
}

// SitemapBuilder builds sitemap XML from the site's content.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a new sitemap builder.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{
		siteURL: siteURL,
		urls:    make([]SitemapURL, 0),
	}
}

// AddHomepage adds the homepage to the sitemap.
func (b *SitemapBuilder) AddHomepage() {
	b.urls = append(b.urls, SitemapURL{
		Loc:        b.siteURL,
		ChangeFreq: ChangeFreqDaily,
		Priority:   "1.0",
	})
}

// AddPage adds a CMS page to the sitemap.
func (b *SitemapBuilder) AddPage(page SitemapEntry) {
	b.add("/"+page.Slug, page.UpdatedAt, ChangeFreqWeekly, "0.8")
}

// AddPages adds multiple CMS pages to the sitemap.
func (b *SitemapBuilder) AddPages(pages []SitemapEntry) {
	for _, p := range pages {
		b.AddPage(p)
	}
}

// AddDepartment adds a department page to the sitemap.
func (b *SitemapBuilder) AddDepartment(dept SitemapEntry) {
	b.add("/departments/"+dept.Slug, dept.UpdatedAt, ChangeFreqMonthly, "0.6")
}

// AddDepartments adds multiple department pages to the sitemap.
func (b *SitemapBuilder) AddDepartments(depts []SitemapEntry) {
	for _, d := range depts {
		b.AddDepartment(d)
	}
}

// AddNotice adds a notice page to the sitemap.
func (b *SitemapBuilder) AddNotice(notice SitemapEntry) {
	b.add("/notices/"+notice.Slug, notice.UpdatedAt, ChangeFreqMonthly, "0.5")
}

// AddNotices adds multiple notice pages to the sitemap.
func (b *SitemapBuilder) AddNotices(notices []SitemapEntry) {
	for _, n := range notices {
		b.AddNotice(n)
	}
}

func (b *SitemapBuilder) add(path string, updatedAt time.Time, freq ChangeFreq, priority string) {
	url := SitemapURL{
		Loc:        b.siteURL + path,
		ChangeFreq: freq,
		Priority:   priority,
	}
	if !updatedAt.IsZero() {
		url.LastMod = updatedAt.Format(time.RFC3339)
	}
	b.urls = append(b.urls, url)
}

// Build generates the sitemap XML document.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}

	output, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append([]byte(xml.Header), output...), nil
}
