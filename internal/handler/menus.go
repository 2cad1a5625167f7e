// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/campuscms/campuscms/internal/cache"
	"github.com/campuscms/campuscms/internal/middleware"
	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/render"
	"github.com/campuscms/campuscms/internal/service"
	"github.com/campuscms/campuscms/internal/store"
	"github.com/campuscms/campuscms/internal/util"
)

// MenusHandler handles navbar menu management routes.
type MenusHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	menus          *service.MenuService
	records        *cache.ActiveRecordCache
}

// NewMenusHandler creates a new MenusHandler.
func NewMenusHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, menus *service.MenuService, records *cache.ActiveRecordCache) *MenusHandler {
	return &MenusHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
		menus:          menus,
		records:        records,
	}
}

// invalidate drops the menu tree cache and the composite site context
// after any navigation write.
func (h *MenusHandler) invalidate(r *http.Request) {
	if h.menus != nil {
		h.menus.InvalidateCache()
	}
	if h.records != nil {
		h.records.InvalidateSiteContext(r.Context())
	}
}

// MenusListData holds data for the menus list template.
type MenusListData struct {
	Menus []model.Menu
}

// List handles GET /admin/menus.
func (h *MenusHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	menus, err := h.queries.ListMenus(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list menus", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/menus_list", render.TemplateData{
		Title: "Menus",
		User:  user,
		Data:  MenusListData{Menus: menus},
		Breadcrumbs: []render.Breadcrumb{
			{Label: "Dashboard", URL: redirectAdmin},
			{Label: "Menus", URL: redirectAdminMenus, Active: true},
		},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// MenuItemNode represents a menu item with children for tree display.
type MenuItemNode struct {
	Item     model.MenuItem
	PageSlug string
	Children []MenuItemNode
}

// MenuFormData holds data for the menu builder template.
type MenuFormData struct {
	Menu           *model.Menu
	Items          []MenuItemNode
	Pages          []model.Page
	LinkTypes      []string
	VisibilityTags []string
	Errors         map[string]string
	FormValues     map[string]string
	IsEdit         bool
}

// buildItemTree builds a nested tree from flat menu items.
func buildItemTree(items []model.MenuItem, pageSlugs map[int64]string, parentID sql.NullInt64) []MenuItemNode {
	var nodes []MenuItemNode
	for _, item := range items {
		if item.ParentID.Valid != parentID.Valid ||
			(item.ParentID.Valid && item.ParentID.Int64 != parentID.Int64) {
			continue
		}
		node := MenuItemNode{
			Item:     item,
			Children: buildItemTree(items, pageSlugs, sql.NullInt64{Int64: item.ID, Valid: true}),
		}
		if item.PageID.Valid {
			node.PageSlug = pageSlugs[item.PageID.Int64]
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// NewForm handles GET /admin/menus/new.
func (h *MenusHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderMenuForm(w, r, nil, make(map[string]string), make(map[string]string))
}

// Create handles POST /admin/menus.
func (h *MenusHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminMenus+RouteSuffixNew) {
		return
	}

	title := formString(r, "title")
	slug := formString(r, "slug")

	formValues := map[string]string{
		"title":     title,
		"slug":      slug,
		"ordering":  formString(r, "ordering"),
		"is_active": r.FormValue("is_active"),
	}

	errors := h.validateMenu(r, title, &slug, 0)
	formValues["slug"] = slug

	if len(errors) > 0 {
		h.renderMenuForm(w, r, nil, errors, formValues)
		return
	}

	menu, err := h.queries.CreateMenu(r.Context(), store.CreateMenuParams{
		Title:    title,
		Slug:     slug,
		IsActive: formBool(r, "is_active"),
		Ordering: formInt64(r, "ordering", 0),
	})
	if err != nil {
		slog.Error("failed to create menu", "error", err)
		flashError(w, r, h.renderer, redirectAdminMenus+RouteSuffixNew, "Error creating menu")
		return
	}

	h.invalidate(r)
	slog.Info("menu created", "category", "menu", "menu_id", menu.ID, "slug", menu.Slug)
	flashSuccess(w, r, h.renderer, fmt.Sprintf("%s/%d", redirectAdminMenus, menu.ID), "Menu created successfully")
}

// EditForm handles GET /admin/menus/{id} - the menu builder.
func (h *MenusHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminMenus, "Invalid menu ID")
		return
	}

	menu, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminMenus, "menu", id,
		func(id int64) (model.Menu, error) { return h.queries.GetMenuByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderMenuForm(w, r, &menu, make(map[string]string), make(map[string]string))
}

// Update handles POST /admin/menus/{id}.
func (h *MenusHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminMenus, "Invalid menu ID")
		return
	}

	menu, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminMenus, "menu", id,
		func(id int64) (model.Menu, error) { return h.queries.GetMenuByID(r.Context(), id) })
	if !ok {
		return
	}

	menuURL := fmt.Sprintf("%s/%d", redirectAdminMenus, id)
	if !parseFormOrRedirect(w, r, h.renderer, menuURL) {
		return
	}

	title := formString(r, "title")
	slug := formString(r, "slug")

	formValues := map[string]string{
		"title":     title,
		"slug":      slug,
		"ordering":  formString(r, "ordering"),
		"is_active": r.FormValue("is_active"),
	}

	errors := h.validateMenu(r, title, &slug, id)
	formValues["slug"] = slug

	if len(errors) > 0 {
		h.renderMenuForm(w, r, &menu, errors, formValues)
		return
	}

	if _, err := h.queries.UpdateMenu(r.Context(), store.UpdateMenuParams{
		ID:       id,
		Title:    title,
		Slug:     slug,
		IsActive: formBool(r, "is_active"),
		Ordering: formInt64(r, "ordering", menu.Ordering),
	}); err != nil {
		slog.Error("failed to update menu", "error", err, "menu_id", id)
		flashError(w, r, h.renderer, menuURL, "Error updating menu")
		return
	}

	h.invalidate(r)
	slog.Info("menu updated", "category", "menu", "menu_id", id)
	flashSuccess(w, r, h.renderer, menuURL, "Menu updated successfully")
}

// Delete handles POST /admin/menus/{id}/delete. Items cascade.
func (h *MenusHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminMenus, "Invalid menu ID")
		return
	}

	if err := h.queries.DeleteMenu(r.Context(), id); err != nil {
		slog.Error("failed to delete menu", "error", err, "menu_id", id)
		flashError(w, r, h.renderer, redirectAdminMenus, "Error deleting menu")
		return
	}

	h.invalidate(r)
	slog.Info("menu deleted", "category", "menu", "menu_id", id)
	flashSuccess(w, r, h.renderer, redirectAdminMenus, "Menu deleted successfully")
}

// validateMenu validates shared menu form fields. An empty slug is
// derived from the title.
func (h *MenusHandler) validateMenu(r *http.Request, title string, slug *string, excludeID int64) map[string]string {
	errors := make(map[string]string)

	if title == "" {
		errors["title"] = "Title is required"
	} else if len(title) < 2 {
		errors["title"] = "Title must be at least 2 characters"
	}

	if *slug == "" {
		*slug = util.Slugify(title)
	}

	if *slug == "" {
		errors["slug"] = "Slug is required"
	} else if !util.IsValidSlug(*slug) {
		errors["slug"] = "Invalid slug format"
	} else if existing, err := h.queries.GetMenuBySlug(r.Context(), *slug); err == nil {
		if existing.ID != excludeID {
			errors["slug"] = "Slug already exists"
		}
	} else if err != sql.ErrNoRows {
		slog.Error("database error checking slug", "error", err)
		errors["slug"] = "Error checking slug"
	}

	return errors
}

func (h *MenusHandler) renderMenuForm(w http.ResponseWriter, r *http.Request, menu *model.Menu, errors, formValues map[string]string) {
	user := middleware.GetUser(r)

	data := MenuFormData{
		Menu:           menu,
		LinkTypes:      model.MenuItemLinkTypes,
		VisibilityTags: model.VisibilityTags,
		Errors:         errors,
		FormValues:     formValues,
		IsEdit:         menu != nil,
	}

	title := "New Menu"
	crumbs := []render.Breadcrumb{
		{Label: "Dashboard", URL: redirectAdmin},
		{Label: "Menus", URL: redirectAdminMenus},
	}

	if menu != nil {
		title = fmt.Sprintf("Edit Menu - %s", menu.Title)
		crumbs = append(crumbs, render.Breadcrumb{
			Label: menu.Title, URL: fmt.Sprintf("%s/%d", redirectAdminMenus, menu.ID), Active: true})

		items, err := h.queries.ListMenuItems(r.Context(), menu.ID)
		if err != nil {
			slog.Error("failed to list menu items", "error", err, "menu_id", menu.ID)
			items = nil
		}
		data.Items = buildItemTree(items, h.pageSlugs(r, items), sql.NullInt64{})

		pages, err := h.queries.ListPages(r.Context())
		if err != nil {
			slog.Error("failed to list pages", "error", err)
			pages = nil
		}
		data.Pages = pages
	} else {
		crumbs = append(crumbs, render.Breadcrumb{
			Label: "New Menu", URL: redirectAdminMenus + RouteSuffixNew, Active: true})
	}

	if err := h.renderer.Render(w, r, "admin/menus_form", render.TemplateData{
		Title:       title,
		User:        user,
		Data:        data,
		Breadcrumbs: crumbs,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

func (h *MenusHandler) pageSlugs(r *http.Request, items []model.MenuItem) map[int64]string {
	slugs := make(map[int64]string)
	for _, item := range items {
		if !item.PageID.Valid {
			continue
		}
		if _, seen := slugs[item.PageID.Int64]; seen {
			continue
		}
		if page, err := h.queries.GetPageByID(r.Context(), item.PageID.Int64); err == nil {
			slugs[page.ID] = page.Slug
		}
	}
	return slugs
}

// CreateItem handles POST /admin/menus/{id}/items.
func (h *MenusHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	menuID := parseIDParam(r, "id")
	if menuID == 0 {
		flashError(w, r, h.renderer, redirectAdminMenus, "Invalid menu ID")
		return
	}
	menuURL := fmt.Sprintf("%s/%d", redirectAdminMenus, menuID)

	if _, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminMenus, "menu", menuID,
		func(id int64) (model.Menu, error) { return h.queries.GetMenuByID(r.Context(), id) }); !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, menuURL) {
		return
	}

	arg, errMsg := h.itemParamsFromForm(r, menuID, 0)
	if errMsg != "" {
		flashError(w, r, h.renderer, menuURL, errMsg)
		return
	}

	item, err := h.queries.CreateMenuItem(r.Context(), arg)
	if err != nil {
		slog.Error("failed to create menu item", "error", err, "menu_id", menuID)
		flashError(w, r, h.renderer, menuURL, "Error creating menu item")
		return
	}

	h.invalidate(r)
	slog.Info("menu item created", "category", "menu", "item_id", item.ID, "menu_id", menuID)
	flashSuccess(w, r, h.renderer, menuURL, "Menu item added successfully")
}

// UpdateItem handles POST /admin/menus/{id}/items/{itemId}.
func (h *MenusHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	menuID := parseIDParam(r, "id")
	itemID := parseIDParam(r, "itemId")
	if menuID == 0 || itemID == 0 {
		flashError(w, r, h.renderer, redirectAdminMenus, "Invalid menu item ID")
		return
	}
	menuURL := fmt.Sprintf("%s/%d", redirectAdminMenus, menuID)

	item, ok := requireEntityWithRedirect(w, r, h.renderer, menuURL, "menu item", itemID,
		func(id int64) (model.MenuItem, error) { return h.queries.GetMenuItemByID(r.Context(), id) })
	if !ok {
		return
	}
	if item.MenuID != menuID {
		flashError(w, r, h.renderer, menuURL, "Menu item belongs to another menu")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, menuURL) {
		return
	}

	arg, errMsg := h.itemParamsFromForm(r, menuID, itemID)
	if errMsg != "" {
		flashError(w, r, h.renderer, menuURL, errMsg)
		return
	}

	if _, err := h.queries.UpdateMenuItem(r.Context(), store.UpdateMenuItemParams{
		ID:            itemID,
		ParentID:      arg.ParentID,
		Title:         arg.Title,
		Slug:          arg.Slug,
		LinkType:      arg.LinkType,
		ExternalURL:   arg.ExternalURL,
		PageID:        arg.PageID,
		RouteName:     arg.RouteName,
		IconClass:     arg.IconClass,
		Description:   arg.Description,
		VisibilityTag: arg.VisibilityTag,
		IsActive:      arg.IsActive,
		Ordering:      arg.Ordering,
	}); err != nil {
		slog.Error("failed to update menu item", "error", err, "item_id", itemID)
		flashError(w, r, h.renderer, menuURL, "Error updating menu item")
		return
	}

	h.invalidate(r)
	slog.Info("menu item updated", "category", "menu", "item_id", itemID, "menu_id", menuID)
	flashSuccess(w, r, h.renderer, menuURL, "Menu item updated successfully")
}

// DeleteItem handles POST /admin/menus/{id}/items/{itemId}/delete.
// Children cascade.
func (h *MenusHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	menuID := parseIDParam(r, "id")
	itemID := parseIDParam(r, "itemId")
	if menuID == 0 || itemID == 0 {
		flashError(w, r, h.renderer, redirectAdminMenus, "Invalid menu item ID")
		return
	}
	menuURL := fmt.Sprintf("%s/%d", redirectAdminMenus, menuID)

	if err := h.queries.DeleteMenuItem(r.Context(), itemID); err != nil {
		slog.Error("failed to delete menu item", "error", err, "item_id", itemID)
		flashError(w, r, h.renderer, menuURL, "Error deleting menu item")
		return
	}

	h.invalidate(r)
	slog.Info("menu item deleted", "category", "menu", "item_id", itemID, "menu_id", menuID)
	flashSuccess(w, r, h.renderer, menuURL, "Menu item deleted successfully")
}

// itemParamsFromForm validates a menu item form and builds the insert
// arguments. excludeID is non-zero when editing an existing item.
func (h *MenusHandler) itemParamsFromForm(r *http.Request, menuID, excludeID int64) (store.CreateMenuItemParams, string) {
	var arg store.CreateMenuItemParams

	title := formString(r, "title")
	if title == "" {
		return arg, "Item title is required"
	}

	slug := formString(r, "slug")
	if slug == "" {
		slug = util.Slugify(title)
	}
	if !util.IsValidSlug(slug) {
		return arg, "Invalid item slug format"
	}
	if n, err := h.queries.CountMenuItemSlug(r.Context(), menuID, slug, excludeID); err != nil {
		slog.Error("database error checking item slug", "error", err)
		return arg, "Error checking item slug"
	} else if n > 0 {
		return arg, "Item slug already exists in this menu"
	}

	linkType := formString(r, "link_type")
	if !model.IsValidMenuItemLinkType(linkType) {
		return arg, "Invalid link type"
	}

	var externalURL, routeName string
	var pageID sql.NullInt64
	switch linkType {
	case model.LinkInternal:
		pageID = util.ParseNullInt64(r.FormValue("page_id"))
		if !pageID.Valid {
			return arg, "Internal links require a target page"
		}
		page, err := h.queries.GetPageByID(r.Context(), pageID.Int64)
		if err != nil {
			return arg, "Target page not found"
		}
		if !page.IsActive {
			return arg, "Target page is inactive"
		}
	case model.LinkExternal:
		externalURL = formString(r, "external_url")
		if externalURL == "" {
			return arg, "External links require a URL"
		}
		if !util.IsValidLinkURL(externalURL) {
			return arg, "Invalid external URL"
		}
	case model.LinkNamed:
		routeName = formString(r, "route_name")
		if routeName == "" {
			return arg, "Named links require a route name"
		}
	}

	visibilityTag := formString(r, "visibility_tag")

	parentID := util.ParseNullInt64(r.FormValue("parent_id"))
	if parentID.Valid {
		if msg := h.checkParent(r, menuID, excludeID, parentID.Int64); msg != "" {
			return arg, msg
		}
	}

	return store.CreateMenuItemParams{
		MenuID:        menuID,
		ParentID:      parentID,
		Title:         title,
		Slug:          slug,
		LinkType:      linkType,
		ExternalURL:   externalURL,
		PageID:        pageID,
		RouteName:     routeName,
		IconClass:     formString(r, "icon_class"),
		Description:   formString(r, "description"),
		VisibilityTag: visibilityTag,
		IsActive:      formBool(r, "is_active"),
		Ordering:      formInt64(r, "ordering", 0),
	}, ""
}

// checkParent verifies that a parent item belongs to the same menu and
// that attaching to it cannot close a cycle. The ancestor walk is bounded
// in case stored data already contains one.
func (h *MenusHandler) checkParent(r *http.Request, menuID, itemID, parentID int64) string {
	if itemID != 0 && parentID == itemID {
		return "An item cannot be its own parent"
	}

	parent, err := h.queries.GetMenuItemByID(r.Context(), parentID)
	if err != nil {
		return "Parent item not found"
	}
	if parent.MenuID != menuID {
		return "Parent item belongs to another menu"
	}

	const maxDepth = 100
	current := parent
	for i := 0; current.ParentID.Valid && i < maxDepth; i++ {
		if itemID != 0 && current.ParentID.Int64 == itemID {
			return "Moving the item under its own descendant would create a cycle"
		}
		current, err = h.queries.GetMenuItemByID(r.Context(), current.ParentID.Int64)
		if err != nil {
			break
		}
	}
	return ""
}
