// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"sort"
	"strings"

	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/store"
)

// RequestInfo describes the incoming request to the side-menu matcher.
type RequestInfo struct {
	Path      string
	RouteName string
	PageSlug  string // the resolved slug route parameter, if any

	// Viewer gating for side-menu items.
	Authenticated bool
	Staff         bool
}

// SideNavItem is a resolved side-menu item ready for rendering.
type SideNavItem struct {
	ID               int64
	Title            string
	ItemType         string
	URL              string
	IconClass        string
	BadgeText        string
	BadgeColor       string
	Description      string
	CSSClass         string
	TextColor        string
	HoverColor       string
	OpenInNewTab     bool
	HighlightCurrent bool
	Ordering         int64
	Children         []SideNavItem
}

// SideNav is a matched side menu with its resolved item forest.
type SideNav struct {
	ID               int64
	Name             string
	Slug             string
	MenuTitle        string
	ShowTitle        bool
	TitleColor       string
	BackgroundColor  string
	BorderColor      string
	IsCollapsible    bool
	DefaultCollapsed bool
	Priority         int64
	Items            []SideNavItem
}

// SideMenuService picks the auxiliary side menus for a request and
// resolves their item trees.
type SideMenuService struct {
	queries  *store.Queries
	resolver *Resolver
}

// NewSideMenuService creates a SideMenuService.
func NewSideMenuService(queries *store.Queries, resolver *Resolver) *SideMenuService {
	return &SideMenuService{queries: queries, resolver: resolver}
}

// Match returns the active side menus whose assignment rule matches the
// request, ordered by priority descending then last update descending.
// It never returns an error; failures yield an empty slice.
func (s *SideMenuService) Match(ctx context.Context, req RequestInfo) []model.SideMenu {
	menus, err := s.queries.ListActiveSideMenus(ctx)
	if err != nil {
		return []model.SideMenu{}
	}

	matched := make([]model.SideMenu, 0, len(menus))
	for _, m := range menus {
		if Matches(m, req) {
			matched = append(matched, m)
		}
	}
	// ListActiveSideMenus already orders by priority and update time;
	// keep the sort here so matching stays correct if callers pass
	// menus from elsewhere.
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Priority != matched[j].Priority {
			return matched[i].Priority > matched[j].Priority
		}
		return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
	})
	return matched
}

// MatchResolved returns the matched side menus with their item forests
// built, gated for the request's viewer.
func (s *SideMenuService) MatchResolved(ctx context.Context, req RequestInfo) []SideNav {
	matched := s.Match(ctx, req)

	navs := make([]SideNav, 0, len(matched))
	for _, m := range matched {
		items, err := s.queries.ListActiveSideMenuItems(ctx, m.ID)
		if err != nil {
			items = nil
		}
		navs = append(navs, SideNav{
			ID:               m.ID,
			Name:             m.Name,
			Slug:             m.Slug,
			MenuTitle:        m.MenuTitle,
			ShowTitle:        m.ShowTitle,
			TitleColor:       m.TitleColor,
			BackgroundColor:  m.BackgroundColor,
			BorderColor:      m.BorderColor,
			IsCollapsible:    m.IsCollapsible,
			DefaultCollapsed: m.DefaultCollapsed,
			Priority:         m.Priority,
			Items:            s.buildSideTree(ctx, items, req),
		})
	}
	return navs
}

// Matches applies a side menu's assignment rule to a request.
func Matches(m model.SideMenu, req RequestInfo) bool {
	switch m.AssignmentType {
	case model.AssignGlobal:
		return true
	case model.AssignURLPrefix:
		return m.URLPrefix != "" && strings.HasPrefix(req.Path, m.URLPrefix)
	case model.AssignPageSlug:
		return m.PageSlug != "" && req.PageSlug == m.PageSlug
	case model.AssignSection:
		return m.SectionName != "" && strings.Contains(req.Path, "/"+m.SectionName+"/")
	}
	return false
}

// buildSideTree nests active side-menu items, dropping those the viewer
// may not see, resolving URLs, and ordering siblings by (ordering, title).
func (s *SideMenuService) buildSideTree(ctx context.Context, items []model.SideMenuItem, req RequestInfo) []SideNavItem {
	pageSlugs := s.pageSlugsFor(ctx, items)

	type node struct {
		item     model.SideMenuItem
		children []int64
	}

	nodes := make(map[int64]*node)
	var rootIDs []int64

	for _, item := range items {
		if !item.IsActive {
			continue
		}
		if item.RequireAuth && !req.Authenticated {
			continue
		}
		if item.RequireStaff && !req.Staff {
			continue
		}
		nodes[item.ID] = &node{item: item}
	}

	for id, n := range nodes {
		if n.item.ParentID.Valid {
			if parent, ok := nodes[n.item.ParentID.Int64]; ok {
				parent.children = append(parent.children, id)
			}
			continue
		}
		rootIDs = append(rootIDs, id)
	}

	sortSide := func(ids []int64) {
		sort.SliceStable(ids, func(i, j int) bool {
			a, b := nodes[ids[i]].item, nodes[ids[j]].item
			if a.Ordering != b.Ordering {
				return a.Ordering < b.Ordering
			}
			return a.Title < b.Title
		})
	}

	var build func(id int64) SideNavItem
	build = func(id int64) SideNavItem {
		n := nodes[id]
		item := n.item

		sn := SideNavItem{
			ID:               item.ID,
			Title:            item.Title,
			ItemType:         item.ItemType,
			IconClass:        item.IconClass,
			BadgeText:        item.BadgeText,
			BadgeColor:       item.BadgeColor,
			Description:      item.Description,
			CSSClass:         item.CSSClass,
			TextColor:        item.TextColor,
			HoverColor:       item.HoverColor,
			OpenInNewTab:     item.OpenInNewTab,
			HighlightCurrent: item.HighlightCurrent,
			Ordering:         item.Ordering,
			Children:         []SideNavItem{},
		}

		// Headings and separators carry no link.
		if item.ItemType == model.SideItemLink || item.ItemType == model.SideItemDropdown {
			sn.URL = s.resolver.ResolveSideMenuItem(item, pageSlugs[item.ID])
		}

		sortSide(n.children)
		for _, childID := range n.children {
			sn.Children = append(sn.Children, build(childID))
		}
		return sn
	}

	sortSide(rootIDs)
	roots := make([]SideNavItem, 0, len(rootIDs))
	for _, id := range rootIDs {
		roots = append(roots, build(id))
	}
	return roots
}

func (s *SideMenuService) pageSlugsFor(ctx context.Context, items []model.SideMenuItem) map[int64]string {
	needed := false
	for _, item := range items {
		if item.LinkType == model.LinkInternal && item.PageID.Valid {
			needed = true
			break
		}
	}
	if !needed {
		return nil
	}

	pages, err := s.queries.ListActivePages(ctx)
	if err != nil {
		return nil
	}
	byID := make(map[int64]string, len(pages))
	for _, p := range pages {
		byID[p.ID] = p.Slug
	}

	slugs := make(map[int64]string)
	for _, item := range items {
		if item.LinkType == model.LinkInternal && item.PageID.Valid {
			if slug, ok := byID[item.PageID.Int64]; ok {
				slugs[item.ID] = slug
			}
		}
	}
	return slugs
}
