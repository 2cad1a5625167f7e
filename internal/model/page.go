// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Page template variants.
const (
	TemplateDefault = "default"
	TemplateWide    = "wide"
	TemplateLanding = "landing"
)

// PageTemplates contains all valid page template variants.
var PageTemplates = []string{TemplateDefault, TemplateWide, TemplateLanding}

// Page is an editor-authored CMS document composed of ordered content blocks.
type Page struct {
	ID              int64
	Title           string
	Slug            string
	BannerImage     string
	ShowBanner      bool
	ShowSidebar     bool
	EnableSearch    bool
	MetaTitle       string
	MetaDescription string
	MetaKeywords    string
	Template        string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsValidPageTemplate checks a template variant against the closed set.
func IsValidPageTemplate(t string) bool {
	for _, v := range PageTemplates {
		if v == t {
			return true
		}
	}
	return false
}
