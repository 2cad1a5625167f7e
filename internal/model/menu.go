// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the entities stored in the database.
package model

import (
	"database/sql"
	"time"
)

// Link types select how a navigation item's URL is computed.
const (
	LinkInternal = "internal" // links to a CMS page
	LinkExternal = "external" // verbatim URL or path
	LinkNamed    = "named"    // looked up in the route registry
	LinkAnchor   = "anchor"   // side-menu items only: "#" + anchor id
)

// MenuItemLinkTypes are the link types a navbar menu item may use.
var MenuItemLinkTypes = []string{LinkInternal, LinkExternal, LinkNamed}

// SideMenuItemLinkTypes are the link types a side-menu item may use.
var SideMenuItemLinkTypes = []string{LinkInternal, LinkExternal, LinkNamed, LinkAnchor}

// Menu is a named top-level navigation menu owning an ordered item tree.
type Menu struct {
	ID        int64
	Title     string
	Slug      string
	IsActive  bool
	Ordering  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MenuItem is a node in a menu tree. Parent, when set, must belong to
// the same menu and the parent chain must be acyclic.
type MenuItem struct {
	ID            int64
	MenuID        int64
	ParentID      sql.NullInt64
	Title         string
	Slug          string
	LinkType      string
	ExternalURL   string
	PageID        sql.NullInt64
	RouteName     string
	IconClass     string
	Description   string
	VisibilityTag string // optional; consulted by the visibility gate
	IsActive      bool
	Ordering      int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsValidMenuItemLinkType checks a link type against the closed set for
// navbar menu items.
func IsValidMenuItemLinkType(t string) bool {
	for _, v := range MenuItemLinkTypes {
		if v == t {
			return true
		}
	}
	return false
}

// IsValidSideMenuItemLinkType checks a link type against the closed set
// for side-menu items.
func IsValidSideMenuItemLinkType(t string) bool {
	for _, v := range SideMenuItemLinkTypes {
		if v == t {
			return true
		}
	}
	return false
}
