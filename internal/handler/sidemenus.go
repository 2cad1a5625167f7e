// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/campuscms/campuscms/internal/cache"
	"github.com/campuscms/campuscms/internal/middleware"
	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/render"
	"github.com/campuscms/campuscms/internal/store"
	"github.com/campuscms/campuscms/internal/util"
)

// SideMenusHandler handles side menu management routes.
type SideMenusHandler struct {
	queries        *store.Queries
	renderer       *render.Renderer
	sessionManager *scs.SessionManager
	records        *cache.ActiveRecordCache
}

// NewSideMenusHandler creates a new SideMenusHandler.
func NewSideMenusHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, records *cache.ActiveRecordCache) *SideMenusHandler {
	return &SideMenusHandler{
		queries:        store.New(db),
		renderer:       renderer,
		sessionManager: sm,
		records:        records,
	}
}

func (h *SideMenusHandler) invalidate(r *http.Request) {
	if h.records != nil {
		h.records.InvalidateSiteContext(r.Context())
	}
}

// SideMenusListData holds data for the side menus list template.
type SideMenusListData struct {
	SideMenus []model.SideMenu
}

// List handles GET /admin/side-menus.
func (h *SideMenusHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	menus, err := h.queries.ListSideMenus(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list side menus", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "admin/sidemenus_list", render.TemplateData{
		Title: "Side Menus",
		User:  user,
		Data:  SideMenusListData{SideMenus: menus},
		Breadcrumbs: []render.Breadcrumb{
			{Label: "Dashboard", URL: redirectAdmin},
			{Label: "Side Menus", URL: redirectAdminSideMenus, Active: true},
		},
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// SideMenuItemNode represents a side menu item with children for tree display.
type SideMenuItemNode struct {
	Item     model.SideMenuItem
	Children []SideMenuItemNode
}

// SideMenuFormData holds data for the side menu builder template.
type SideMenuFormData struct {
	SideMenu        *model.SideMenu
	Items           []SideMenuItemNode
	Pages           []model.Page
	AssignmentTypes []string
	ItemTypes       []string
	LinkTypes       []string
	Errors          map[string]string
	FormValues      map[string]string
	IsEdit          bool
}

func buildSideItemTree(items []model.SideMenuItem, parentID sql.NullInt64) []SideMenuItemNode {
	var nodes []SideMenuItemNode
	for _, item := range items {
		if item.ParentID.Valid != parentID.Valid ||
			(item.ParentID.Valid && item.ParentID.Int64 != parentID.Int64) {
			continue
		}
		nodes = append(nodes, SideMenuItemNode{
			Item:     item,
			Children: buildSideItemTree(items, sql.NullInt64{Int64: item.ID, Valid: true}),
		})
	}
	return nodes
}

// NewForm handles GET /admin/side-menus/new.
func (h *SideMenusHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, nil, make(map[string]string), make(map[string]string))
}

// Create handles POST /admin/side-menus.
func (h *SideMenusHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminSideMenus+RouteSuffixNew) {
		return
	}

	arg, errors, formValues := h.menuParamsFromForm(r, 0)
	if len(errors) > 0 {
		h.renderForm(w, r, nil, errors, formValues)
		return
	}

	menu, err := h.queries.CreateSideMenu(r.Context(), arg)
	if err != nil {
		slog.Error("failed to create side menu", "error", err)
		flashError(w, r, h.renderer, redirectAdminSideMenus+RouteSuffixNew, "Error creating side menu")
		return
	}

	h.invalidate(r)
	slog.Info("side menu created", "category", "menu", "side_menu_id", menu.ID, "slug", menu.Slug)
	flashSuccess(w, r, h.renderer, fmt.Sprintf("%s/%d", redirectAdminSideMenus, menu.ID), "Side menu created successfully")
}

// EditForm handles GET /admin/side-menus/{id} - the side menu builder.
func (h *SideMenusHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminSideMenus, "Invalid side menu ID")
		return
	}

	menu, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminSideMenus, "side menu", id,
		func(id int64) (model.SideMenu, error) { return h.queries.GetSideMenuByID(r.Context(), id) })
	if !ok {
		return
	}

	h.renderForm(w, r, &menu, make(map[string]string), make(map[string]string))
}

// Update handles POST /admin/side-menus/{id}.
func (h *SideMenusHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminSideMenus, "Invalid side menu ID")
		return
	}
	menuURL := fmt.Sprintf("%s/%d", redirectAdminSideMenus, id)

	menu, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminSideMenus, "side menu", id,
		func(id int64) (model.SideMenu, error) { return h.queries.GetSideMenuByID(r.Context(), id) })
	if !ok {
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, menuURL) {
		return
	}

	arg, errors, formValues := h.menuParamsFromForm(r, id)
	if len(errors) > 0 {
		h.renderForm(w, r, &menu, errors, formValues)
		return
	}

	if _, err := h.queries.UpdateSideMenu(r.Context(), store.UpdateSideMenuParams{
		ID:               id,
		Name:             arg.Name,
		Slug:             arg.Slug,
		Description:      arg.Description,
		MenuTitle:        arg.MenuTitle,
		ShowTitle:        arg.ShowTitle,
		TitleColor:       arg.TitleColor,
		BackgroundColor:  arg.BackgroundColor,
		BorderColor:      arg.BorderColor,
		IsCollapsible:    arg.IsCollapsible,
		DefaultCollapsed: arg.DefaultCollapsed,
		AssignmentType:   arg.AssignmentType,
		URLPrefix:        arg.URLPrefix,
		PageSlug:         arg.PageSlug,
		SectionName:      arg.SectionName,
		Priority:         arg.Priority,
		IsActive:         arg.IsActive,
	}); err != nil {
		slog.Error("failed to update side menu", "error", err, "side_menu_id", id)
		flashError(w, r, h.renderer, menuURL, "Error updating side menu")
		return
	}

	h.invalidate(r)
	slog.Info("side menu updated", "category", "menu", "side_menu_id", id)
	flashSuccess(w, r, h.renderer, menuURL, "Side menu updated successfully")
}

// Delete handles POST /admin/side-menus/{id}/delete. Items cascade.
func (h *SideMenusHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := parseIDParam(r, "id")
	if id == 0 {
		flashError(w, r, h.renderer, redirectAdminSideMenus, "Invalid side menu ID")
		return
	}

	if err := h.queries.DeleteSideMenu(r.Context(), id); err != nil {
		slog.Error("failed to delete side menu", "error", err, "side_menu_id", id)
		flashError(w, r, h.renderer, redirectAdminSideMenus, "Error deleting side menu")
		return
	}

	h.invalidate(r)
	slog.Info("side menu deleted", "category", "menu", "side_menu_id", id)
	flashSuccess(w, r, h.renderer, redirectAdminSideMenus, "Side menu deleted successfully")
}

// menuParamsFromForm validates the side menu form. The assignment rule
// decides which targeting field is required.
func (h *SideMenusHandler) menuParamsFromForm(r *http.Request, excludeID int64) (store.CreateSideMenuParams, map[string]string, map[string]string) {
	name := formString(r, "name")
	slug := formString(r, "slug")
	assignmentType := formString(r, "assignment_type")
	urlPrefix := formString(r, "url_prefix")
	pageSlug := formString(r, "page_slug")
	sectionName := formString(r, "section_name")

	formValues := map[string]string{
		"name":            name,
		"slug":            slug,
		"assignment_type": assignmentType,
		"url_prefix":      urlPrefix,
		"page_slug":       pageSlug,
		"section_name":    sectionName,
		"priority":        formString(r, "priority"),
	}

	errors := make(map[string]string)

	if name == "" {
		errors["name"] = "Name is required"
	}

	if slug == "" {
		slug = util.Slugify(name)
		formValues["slug"] = slug
	}
	if slug == "" {
		errors["slug"] = "Slug is required"
	} else if !util.IsValidSlug(slug) {
		errors["slug"] = "Invalid slug format"
	} else if existing, err := h.sideMenuBySlug(r, slug); err == nil && existing.ID != excludeID {
		errors["slug"] = "Slug already exists"
	}

	if !model.IsValidAssignmentType(assignmentType) {
		errors["assignment_type"] = "Invalid assignment rule"
	} else {
		switch assignmentType {
		case model.AssignURLPrefix:
			if urlPrefix == "" {
				errors["url_prefix"] = "URL prefix rules require a prefix"
			} else if !strings.HasPrefix(urlPrefix, "/") {
				errors["url_prefix"] = "URL prefix must start with /"
			}
		case model.AssignPageSlug:
			if pageSlug == "" {
				errors["page_slug"] = "Page slug rules require a slug"
			} else if !util.IsValidSlug(pageSlug) {
				errors["page_slug"] = "Invalid page slug format"
			}
		case model.AssignSection:
			if sectionName == "" {
				errors["section_name"] = "Section rules require a section name"
			}
		}
	}

	for _, field := range []string{"title_color", "background_color", "border_color"} {
		if v := formString(r, field); v != "" && !util.IsValidHexColor(v) {
			errors[field] = "Invalid hex color"
		}
	}

	arg := store.CreateSideMenuParams{
		Name:             name,
		Slug:             slug,
		Description:      formString(r, "description"),
		MenuTitle:        formString(r, "menu_title"),
		ShowTitle:        formBool(r, "show_title"),
		TitleColor:       formString(r, "title_color"),
		BackgroundColor:  formString(r, "background_color"),
		BorderColor:      formString(r, "border_color"),
		IsCollapsible:    formBool(r, "is_collapsible"),
		DefaultCollapsed: formBool(r, "default_collapsed"),
		AssignmentType:   assignmentType,
		URLPrefix:        urlPrefix,
		PageSlug:         pageSlug,
		SectionName:      sectionName,
		Priority:         formInt64(r, "priority", 0),
		IsActive:         formBool(r, "is_active"),
	}
	return arg, errors, formValues
}

func (h *SideMenusHandler) sideMenuBySlug(r *http.Request, slug string) (model.SideMenu, error) {
	menus, err := h.queries.ListSideMenus(r.Context())
	if err != nil {
		return model.SideMenu{}, err
	}
	for _, m := range menus {
		if m.Slug == slug {
			return m, nil
		}
	}
	return model.SideMenu{}, sql.ErrNoRows
}

func (h *SideMenusHandler) renderForm(w http.ResponseWriter, r *http.Request, menu *model.SideMenu, errors, formValues map[string]string) {
	user := middleware.GetUser(r)

	data := SideMenuFormData{
		SideMenu:        menu,
		AssignmentTypes: model.AssignmentTypes,
		ItemTypes:       model.SideItemTypes,
		LinkTypes:       model.SideMenuItemLinkTypes,
		Errors:          errors,
		FormValues:      formValues,
		IsEdit:          menu != nil,
	}

	title := "New Side Menu"
	crumbs := []render.Breadcrumb{
		{Label: "Dashboard", URL: redirectAdmin},
		{Label: "Side Menus", URL: redirectAdminSideMenus},
	}

	if menu != nil {
		title = fmt.Sprintf("Edit Side Menu - %s", menu.Name)
		crumbs = append(crumbs, render.Breadcrumb{
			Label: menu.Name, URL: fmt.Sprintf("%s/%d", redirectAdminSideMenus, menu.ID), Active: true})

		items, err := h.queries.ListSideMenuItems(r.Context(), menu.ID)
		if err != nil {
			slog.Error("failed to list side menu items", "error", err, "side_menu_id", menu.ID)
			items = nil
		}
		data.Items = buildSideItemTree(items, sql.NullInt64{})

		pages, err := h.queries.ListPages(r.Context())
		if err != nil {
			pages = nil
		}
		data.Pages = pages
	} else {
		crumbs = append(crumbs, render.Breadcrumb{
			Label: "New Side Menu", URL: redirectAdminSideMenus + RouteSuffixNew, Active: true})
	}

	if err := h.renderer.Render(w, r, "admin/sidemenus_form", render.TemplateData{
		Title:       title,
		User:        user,
		Data:        data,
		Breadcrumbs: crumbs,
	}); err != nil {
		logAndInternalError(w, "render error", "error", err)
	}
}

// CreateItem handles POST /admin/side-menus/{id}/items.
func (h *SideMenusHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	menuID := parseIDParam(r, "id")
	if menuID == 0 {
		flashError(w, r, h.renderer, redirectAdminSideMenus, "Invalid side menu ID")
		return
	}
	menuURL := fmt.Sprintf("%s/%d", redirectAdminSideMenus, menuID)

	if _, ok := requireEntityWithRedirect(w, r, h.renderer, redirectAdminSideMenus, "side menu", menuID,
		func(id int64) (model.SideMenu, error) { return h.queries.GetSideMenuByID(r.Context(), id) }); !ok {
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

	item, err := h.queries.CreateSideMenuItem(r.Context(), arg)
	if err != nil {
		slog.Error("failed to create side menu item", "error", err, "side_menu_id", menuID)
		flashError(w, r, h.renderer, menuURL, "Error creating side menu item")
		return
	}

	h.invalidate(r)
	slog.Info("side menu item created", "category", "menu", "item_id", item.ID, "side_menu_id", menuID)
	flashSuccess(w, r, h.renderer, menuURL, "Side menu item added successfully")
}

// UpdateItem handles POST /admin/side-menus/{id}/items/{itemId}.
func (h *SideMenusHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	menuID := parseIDParam(r, "id")
	itemID := parseIDParam(r, "itemId")
	if menuID == 0 || itemID == 0 {
		flashError(w, r, h.renderer, redirectAdminSideMenus, "Invalid side menu item ID")
		return
	}
	menuURL := fmt.Sprintf("%s/%d", redirectAdminSideMenus, menuID)

	item, ok := requireEntityWithRedirect(w, r, h.renderer, menuURL, "side menu item", itemID,
		func(id int64) (model.SideMenuItem, error) { return h.queries.GetSideMenuItemByID(r.Context(), id) })
	if !ok {
		return
	}
	if item.SideMenuID != menuID {
		flashError(w, r, h.renderer, menuURL, "Item belongs to another side menu")
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

	if _, err := h.queries.UpdateSideMenuItem(r.Context(), store.UpdateSideMenuItemParams{
		ID:               itemID,
		ParentID:         arg.ParentID,
		Title:            arg.Title,
		ItemType:         arg.ItemType,
		LinkType:         arg.LinkType,
		ExternalURL:      arg.ExternalURL,
		PageID:           arg.PageID,
		RouteName:        arg.RouteName,
		AnchorID:         arg.AnchorID,
		IconClass:        arg.IconClass,
		BadgeText:        arg.BadgeText,
		BadgeColor:       arg.BadgeColor,
		Description:      arg.Description,
		CSSClass:         arg.CSSClass,
		TextColor:        arg.TextColor,
		HoverColor:       arg.HoverColor,
		OpenInNewTab:     arg.OpenInNewTab,
		HighlightCurrent: arg.HighlightCurrent,
		RequireAuth:      arg.RequireAuth,
		RequireStaff:     arg.RequireStaff,
		Ordering:         arg.Ordering,
		IsActive:         arg.IsActive,
	}); err != nil {
		slog.Error("failed to update side menu item", "error", err, "item_id", itemID)
		flashError(w, r, h.renderer, menuURL, "Error updating side menu item")
		return
	}

	h.invalidate(r)
	slog.Info("side menu item updated", "category", "menu", "item_id", itemID, "side_menu_id", menuID)
	flashSuccess(w, r, h.renderer, menuURL, "Side menu item updated successfully")
}

// DeleteItem handles POST /admin/side-menus/{id}/items/{itemId}/delete.
func (h *SideMenusHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	menuID := parseIDParam(r, "id")
	itemID := parseIDParam(r, "itemId")
	if menuID == 0 || itemID == 0 {
		flashError(w, r, h.renderer, redirectAdminSideMenus, "Invalid side menu item ID")
		return
	}
	menuURL := fmt.Sprintf("%s/%d", redirectAdminSideMenus, menuID)

	if err := h.queries.DeleteSideMenuItem(r.Context(), itemID); err != nil {
		slog.Error("failed to delete side menu item", "error", err, "item_id", itemID)
		flashError(w, r, h.renderer, menuURL, "Error deleting side menu item")
		return
	}

	h.invalidate(r)
	slog.Info("side menu item deleted", "category", "menu", "item_id", itemID, "side_menu_id", menuID)
	flashSuccess(w, r, h.renderer, menuURL, "Side menu item deleted successfully")
}

// itemParamsFromForm validates a side menu item form. Only link items
// need link fields; headings, separators and dropdowns carry no URL.
func (h *SideMenusHandler) itemParamsFromForm(r *http.Request, menuID, excludeID int64) (store.CreateSideMenuItemParams, string) {
	var arg store.CreateSideMenuItemParams

	itemType := formString(r, "item_type")
	if !model.IsValidSideItemType(itemType) {
		return arg, "Invalid item type"
	}

	title := formString(r, "title")
	if title == "" && itemType != model.SideItemSeparator {
		return arg, "Item title is required"
	}

	var linkType, externalURL, routeName, anchorID string
	var pageID sql.NullInt64
	if itemType == model.SideItemLink {
		linkType = formString(r, "link_type")
		if !model.IsValidSideMenuItemLinkType(linkType) {
			return arg, "Invalid link type"
		}
		switch linkType {
		case model.LinkInternal:
			pageID = util.ParseNullInt64(r.FormValue("page_id"))
			if !pageID.Valid {
				return arg, "Internal links require a target page"
			}
			if _, err := h.queries.GetPageByID(r.Context(), pageID.Int64); err != nil {
				return arg, "Target page not found"
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
		case model.LinkAnchor:
			anchorID = strings.TrimPrefix(formString(r, "anchor_id"), "#")
			if anchorID == "" {
				return arg, "Anchor links require an anchor id"
			}
		}
	}

	for _, field := range []string{"badge_color", "text_color", "hover_color"} {
		if v := formString(r, field); v != "" && !util.IsValidHexColor(v) {
			return arg, "Invalid hex color for " + field
		}
	}

	parentID := util.ParseNullInt64(r.FormValue("parent_id"))
	if parentID.Valid {
		if excludeID != 0 && parentID.Int64 == excludeID {
			return arg, "An item cannot be its own parent"
		}
		parent, err := h.queries.GetSideMenuItemByID(r.Context(), parentID.Int64)
		if err != nil {
			return arg, "Parent item not found"
		}
		if parent.SideMenuID != menuID {
			return arg, "Parent item belongs to another side menu"
		}
		if parent.ItemType != model.SideItemDropdown {
			return arg, "Only dropdown items can have children"
		}
	}

	return store.CreateSideMenuItemParams{
		SideMenuID:       menuID,
		ParentID:         parentID,
		Title:            title,
		ItemType:         itemType,
		LinkType:         linkType,
		ExternalURL:      externalURL,
		PageID:           pageID,
		RouteName:        routeName,
		AnchorID:         anchorID,
		IconClass:        formString(r, "icon_class"),
		BadgeText:        formString(r, "badge_text"),
		BadgeColor:       formString(r, "badge_color"),
		Description:      formString(r, "description"),
		CSSClass:         formString(r, "css_class"),
		TextColor:        formString(r, "text_color"),
		HoverColor:       formString(r, "hover_color"),
		OpenInNewTab:     formBool(r, "open_in_new_tab"),
		HighlightCurrent: formBool(r, "highlight_current"),
		RequireAuth:      formBool(r, "require_auth"),
		RequireStaff:     formBool(r, "require_staff"),
		Ordering:         formInt64(r, "ordering", 0),
		IsActive:         formBool(r, "is_active"),
	}, ""
}
