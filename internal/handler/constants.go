// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteSuffixNew is the suffix for "new" routes.
	RouteSuffixNew = "/new"
	// RouteSuffixActivate is the suffix for activation routes.
	RouteSuffixActivate = "/activate"
	// RouteSuffixDeactivate is the suffix for deactivation routes.
	RouteSuffixDeactivate = "/deactivate"

	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// RouteParamSlug is the slug parameter pattern.
	RouteParamSlug = "/{slug}"
	// RouteItemsItemID is the items item-ID route pattern.
	RouteItemsItemID = "/items/{itemId}"
	// RouteBlocksBlockID is the blocks block-ID route pattern.
	RouteBlocksBlockID = "/blocks/{blockId}"
	// RouteLinksLinkID is the links link-ID route pattern.
	RouteLinksLinkID = "/links/{linkId}"

	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"

	// RouteDepartments is the public departments route.
	RouteDepartments = "/departments"
	// RouteNotices is the public notice board route.
	RouteNotices = "/notices"

	// RouteMenus is the menus admin route.
	RouteMenus = "/menus"
	// RouteSideMenus is the side menus admin route.
	RouteSideMenus = "/side-menus"
	// RoutePages is the pages admin route.
	RoutePages = "/pages"
	// RouteNotifications is the notifications admin route.
	RouteNotifications = "/notifications"
	// RouteSliders is the slider images admin route.
	RouteSliders = "/sliders"
	// RouteUtilityBars is the utility bars admin route.
	RouteUtilityBars = "/utility-bars"
	// RouteHeaders is the header infos admin route.
	RouteHeaders = "/headers"
	// RouteNavbars is the navbar infos admin route.
	RouteNavbars = "/navbars"
	// RouteColleges is the college infos admin route.
	RouteColleges = "/colleges"
	// RouteLeadership is the leadership messages admin route.
	RouteLeadership = "/leadership"
	// RouteVisionMissions is the vision/mission admin route.
	RouteVisionMissions = "/vision-missions"
	// RouteCarousels is the hero carousel settings admin route.
	RouteCarousels = "/carousels"
	// RoutePanels is the config panels admin route.
	RoutePanels = "/panels"
	// RouteVisibility is the visibility settings admin route.
	RouteVisibility = "/visibility"
	// RouteEvents is the event log admin route.
	RouteEvents = "/events"
	// RouteCache is the cache admin route.
	RouteCache = "/cache"
	// RouteLinkCheck is the link checker admin route.
	RouteLinkCheck = "/link-check"
	// RouteUsers is the users admin route.
	RouteUsers = "/users"
)

const (
	redirectAdmin               = "/admin"
	redirectAdminMenus          = redirectAdmin + RouteMenus
	redirectAdminMenusSlash     = redirectAdminMenus + RouteRoot
	redirectAdminSideMenus      = redirectAdmin + RouteSideMenus
	redirectAdminSideMenusSlash = redirectAdminSideMenus + RouteRoot
	redirectAdminPages          = redirectAdmin + RoutePages
	redirectAdminPagesSlash     = redirectAdminPages + RouteRoot
	redirectAdminNotifications  = redirectAdmin + RouteNotifications
	redirectAdminSliders        = redirectAdmin + RouteSliders
	redirectAdminNotices        = redirectAdmin + RouteNotices
	redirectAdminDepartments    = redirectAdmin + RouteDepartments
	redirectAdminUtilityBars    = redirectAdmin + RouteUtilityBars
	redirectAdminHeaders        = redirectAdmin + RouteHeaders
	redirectAdminNavbars        = redirectAdmin + RouteNavbars
	redirectAdminColleges       = redirectAdmin + RouteColleges
	redirectAdminLeadership     = redirectAdmin + RouteLeadership
	redirectAdminVisionMissions = redirectAdmin + RouteVisionMissions
	redirectAdminCarousels      = redirectAdmin + RouteCarousels
	redirectAdminPanels         = redirectAdmin + RoutePanels
	redirectAdminVisibility     = redirectAdmin + RouteVisibility
	redirectAdminCache          = redirectAdmin + RouteCache
	redirectAdminLinkCheck      = redirectAdmin + RouteLinkCheck
	redirectLogin               = RouteLogin
)

// HeaderContentType is the Content-Type header name.
const HeaderContentType = "Content-Type"
