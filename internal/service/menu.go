// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"sort"

	"github.com/campuscms/campuscms/internal/cache"
	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/store"
)

// NavItem is a resolved menu item ready for frontend rendering.
type NavItem struct {
	ID          int64
	Title       string
	Slug        string
	URL         string
	IconClass   string
	Description string
	Ordering    int64
	Children    []NavItem
}

// NavMenu is a top-level menu with its resolved item tree.
type NavMenu struct {
	ID    int64
	Title string
	Slug  string
	Items []NavItem
}

// MenuService builds the navigation forest: active menus with their
// active items nested, URLs resolved, and hidden branches gated away.
type MenuService struct {
	queries    *store.Queries
	menuCache  *cache.MenuCache
	resolver   *Resolver
	visibility *VisibilityService
}

// NewMenuService creates a MenuService. menuCache may be nil, in which
// case every call reads the database directly.
func NewMenuService(queries *store.Queries, menuCache *cache.MenuCache, resolver *Resolver, visibility *VisibilityService) *MenuService {
	return &MenuService{
		queries:    queries,
		menuCache:  menuCache,
		resolver:   resolver,
		visibility: visibility,
	}
}

// GetMenu fetches one menu by slug as a resolved tree. A missing or
// inactive menu yields nil, never an error.
func (s *MenuService) GetMenu(ctx context.Context, slug string) []NavItem {
	menu, items := s.load(ctx, slug)
	if menu == nil || !menu.IsActive {
		return nil
	}

	settings, err := s.queries.GetVisibilitySettings(ctx)
	if err != nil {
		settings = AllVisibleSettings()
	}
	return s.buildTree(ctx, items, settings)
}

// GetForest returns every active menu with its resolved item tree, in
// display order. An empty dataset yields an empty slice.
func (s *MenuService) GetForest(ctx context.Context) []NavMenu {
	var menus []cache.MenuWithItems

	if s.menuCache != nil {
		cached, err := s.menuCache.All(ctx)
		if err == nil {
			for _, m := range cached {
				menus = append(menus, *m)
			}
		}
	}
	if menus == nil {
		loaded, err := s.queries.ListActiveMenus(ctx)
		if err != nil {
			return []NavMenu{}
		}
		for _, m := range loaded {
			items, err := s.queries.ListMenuItems(ctx, m.ID)
			if err != nil {
				return []NavMenu{}
			}
			menus = append(menus, cache.MenuWithItems{Menu: m, Items: items})
		}
	}

	settings, err := s.queries.GetVisibilitySettings(ctx)
	if err != nil {
		settings = AllVisibleSettings()
	}

	sort.SliceStable(menus, func(i, j int) bool {
		a, b := menus[i].Menu, menus[j].Menu
		if a.Ordering != b.Ordering {
			return a.Ordering < b.Ordering
		}
		return a.Title < b.Title
	})

	forest := make([]NavMenu, 0, len(menus))
	for _, m := range menus {
		if !m.Menu.IsActive {
			continue
		}
		forest = append(forest, NavMenu{
			ID:    m.Menu.ID,
			Title: m.Menu.Title,
			Slug:  m.Menu.Slug,
			Items: s.buildTree(ctx, m.Items, settings),
		})
	}
	return forest
}

// InvalidateCache drops the cached menu data after a write.
func (s *MenuService) InvalidateCache() {
	if s.menuCache != nil {
		s.menuCache.Invalidate()
	}
}

// load fetches a menu and its items, via the cache when available.
func (s *MenuService) load(ctx context.Context, slug string) (*model.Menu, []model.MenuItem) {
	if s.menuCache != nil {
		cached, err := s.menuCache.Get(ctx, slug)
		if err == nil && cached != nil {
			return &cached.Menu, cached.Items
		}
		if err == nil {
			return nil, nil
		}
	}

	menu, err := s.queries.GetMenuBySlug(ctx, slug)
	if err != nil {
		return nil, nil
	}
	items, err := s.queries.ListMenuItems(ctx, menu.ID)
	if err != nil {
		return nil, nil
	}
	return &menu, items
}

// buildTree converts the flat item list to a nested tree: inactive items
// are dropped (together with their subtrees), visibility-gated branches
// are removed, URLs are resolved, and siblings are ordered by
// (ordering, title).
func (s *MenuService) buildTree(ctx context.Context, items []model.MenuItem, settings model.VisibilitySettings) []NavItem {
	pageSlugs := s.pageSlugsFor(ctx, items)

	type node struct {
		item     model.MenuItem
		children []int64
	}

	nodes := make(map[int64]*node)
	var rootIDs []int64

	for _, item := range items {
		if !item.IsActive {
			continue
		}
		if !VisibleIn(settings, item.VisibilityTag) {
			continue
		}
		nodes[item.ID] = &node{item: item}
	}

	for id, n := range nodes {
		if n.item.ParentID.Valid {
			if parent, ok := nodes[n.item.ParentID.Int64]; ok {
				parent.children = append(parent.children, id)
			}
			// An inactive or hidden parent drops the whole subtree.
			continue
		}
		rootIDs = append(rootIDs, id)
	}

	var build func(id int64) NavItem
	build = func(id int64) NavItem {
		n := nodes[id]
		item := n.item

		ni := NavItem{
			ID:          item.ID,
			Title:       item.Title,
			Slug:        item.Slug,
			URL:         s.resolver.ResolveMenuItem(item, pageSlugs[item.ID]),
			IconClass:   item.IconClass,
			Description: item.Description,
			Ordering:    item.Ordering,
			Children:    []NavItem{},
		}

		sortItemIDs(n.children, func(id int64) model.MenuItem { return nodes[id].item })
		for _, childID := range n.children {
			ni.Children = append(ni.Children, build(childID))
		}
		return ni
	}

	sortItemIDs(rootIDs, func(id int64) model.MenuItem { return nodes[id].item })
	roots := make([]NavItem, 0, len(rootIDs))
	for _, id := range rootIDs {
		roots = append(roots, build(id))
	}
	return roots
}

// sortItemIDs orders sibling ids by (ordering, title), stable.
func sortItemIDs(ids []int64, itemOf func(int64) model.MenuItem) {
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := itemOf(ids[i]), itemOf(ids[j])
		if a.Ordering != b.Ordering {
			return a.Ordering < b.Ordering
		}
		return a.Title < b.Title
	})
}

// pageSlugsFor maps item ids with an internal page target to that page's
// slug. Targets that are missing or inactive are absent from the map, so
// the resolver falls back to "#". One bulk read covers all items.
func (s *MenuService) pageSlugsFor(ctx context.Context, items []model.MenuItem) map[int64]string {
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
