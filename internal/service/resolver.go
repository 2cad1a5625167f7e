// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides business logic and service layer functionality.
package service

import (
	"sync"

	"github.com/campuscms/campuscms/internal/model"
)

// FallbackURL is returned when a navigation link cannot be resolved.
const FallbackURL = "#"

// RouteRegistry maps symbolic route names to URL paths. Menu items using
// the named link type are resolved against it at render time.
type RouteRegistry struct {
	mu     sync.RWMutex
	routes map[string]string
}

// NewRouteRegistry creates an empty route registry.
func NewRouteRegistry() *RouteRegistry {
	return &RouteRegistry{routes: make(map[string]string)}
}

// DefaultRoutes returns a registry preloaded with the site's named routes.
func DefaultRoutes() *RouteRegistry {
	r := NewRouteRegistry()
	r.Register("home", "/")
	r.Register("about", "/about")
	r.Register("departments", "/departments")
	r.Register("notices", "/notices")
	r.Register("contact", "/contact")
	r.Register("sitemap", "/sitemap.xml")
	return r
}

// Register adds or replaces a named route.
func (r *RouteRegistry) Register(name, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[name] = path
}

// Lookup resolves a route name to its path.
func (r *RouteRegistry) Lookup(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	path, ok := r.routes[name]
	return path, ok
}

// link is the subset of navigation item fields the resolver consumes.
// Both MenuItem and SideMenuItem satisfy it through the adapters below.
type link struct {
	LinkType    string
	ExternalURL string
	RouteName   string
	AnchorID    string
	PageSlug    string // resolved slug of the internal page target, empty if unusable
}

// Resolver maps navigation items to final URL strings. It is total: every
// call returns a non-empty string, falling back to "#" for anything that
// cannot be resolved.
type Resolver struct {
	routes *RouteRegistry
}

// NewResolver creates a Resolver over the given route registry.
func NewResolver(routes *RouteRegistry) *Resolver {
	if routes == nil {
		routes = NewRouteRegistry()
	}
	return &Resolver{routes: routes}
}

// ResolveMenuItem resolves a navbar menu item. pageSlug is the slug of the
// item's internal page target, or empty when the target is missing or inactive.
func (r *Resolver) ResolveMenuItem(item model.MenuItem, pageSlug string) string {
	return r.resolve(link{
		LinkType:    item.LinkType,
		ExternalURL: item.ExternalURL,
		RouteName:   item.RouteName,
		PageSlug:    pageSlug,
	})
}

// ResolveSideMenuItem resolves a side-menu item, which additionally
// supports the anchor link type.
func (r *Resolver) ResolveSideMenuItem(item model.SideMenuItem, pageSlug string) string {
	return r.resolve(link{
		LinkType:    item.LinkType,
		ExternalURL: item.ExternalURL,
		RouteName:   item.RouteName,
		AnchorID:    item.AnchorID,
		PageSlug:    pageSlug,
	})
}

// PageURL returns the canonical URL for a page slug.
func PageURL(slug string) string {
	if slug == "" {
		return FallbackURL
	}
	return "/" + slug
}

func (r *Resolver) resolve(l link) string {
	switch l.LinkType {
	case model.LinkExternal:
		if l.ExternalURL != "" {
			return l.ExternalURL
		}
	case model.LinkNamed:
		if l.RouteName != "" {
			if path, ok := r.routes.Lookup(l.RouteName); ok {
				return path
			}
		}
	case model.LinkInternal:
		if l.PageSlug != "" {
			return PageURL(l.PageSlug)
		}
	case model.LinkAnchor:
		if l.AnchorID != "" {
			return "#" + l.AnchorID
		}
	}
	return FallbackURL
}
