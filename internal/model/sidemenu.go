// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Side-menu assignment rules.
const (
	AssignGlobal    = "global"     // matches every request
	AssignURLPrefix = "url_prefix" // request path starts with the stored prefix
	AssignPageSlug  = "page_slug"  // route slug parameter equals the stored slug
	AssignSection   = "section"    // "/"+section+"/" is a substring of the path
)

// AssignmentTypes contains all valid side-menu assignment rules.
var AssignmentTypes = []string{AssignGlobal, AssignURLPrefix, AssignPageSlug, AssignSection}

// Side-menu item kinds.
const (
	SideItemLink      = "link"
	SideItemHeading   = "heading"
	SideItemSeparator = "separator"
	SideItemDropdown  = "dropdown"
)

// SideItemTypes contains all valid side-menu item kinds.
var SideItemTypes = []string{SideItemLink, SideItemHeading, SideItemSeparator, SideItemDropdown}

// SideMenu is an auxiliary navigation panel attached to requests by an
// assignment rule. Higher priority wins when several menus match.
type SideMenu struct {
	ID               int64
	Name             string
	Slug             string
	Description      string
	MenuTitle        string
	ShowTitle        bool
	TitleColor       string
	BackgroundColor  string
	BorderColor      string
	IsCollapsible    bool
	DefaultCollapsed bool
	AssignmentType   string
	URLPrefix        string
	PageSlug         string
	SectionName      string
	Priority         int64
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SideMenuItem is a node in a side menu's item forest.
type SideMenuItem struct {
	ID               int64
	SideMenuID       int64
	ParentID         sql.NullInt64
	Title            string
	ItemType         string
	LinkType         string
	ExternalURL      string
	PageID           sql.NullInt64
	RouteName        string
	AnchorID         string
	IconClass        string
	BadgeText        string
	BadgeColor       string
	Description      string
	CSSClass         string
	TextColor        string
	HoverColor       string
	OpenInNewTab     bool
	HighlightCurrent bool
	RequireAuth      bool
	RequireStaff     bool
	Ordering         int64
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsValidAssignmentType checks an assignment rule against the closed set.
func IsValidAssignmentType(t string) bool {
	for _, v := range AssignmentTypes {
		if v == t {
			return true
		}
	}
	return false
}

// IsValidSideItemType checks an item kind against the closed set.
func IsValidSideItemType(t string) bool {
	for _, v := range SideItemTypes {
		if v == t {
			return true
		}
	}
	return false
}
