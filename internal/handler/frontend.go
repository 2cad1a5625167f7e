// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/campuscms/campuscms/internal/middleware"
	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/render"
	"github.com/campuscms/campuscms/internal/seo"
	"github.com/campuscms/campuscms/internal/service"
	"github.com/campuscms/campuscms/internal/store"
)

// noticeListLimit caps the public notice board listing.
const noticeListLimit = 50

// FrontendHandler serves the public site.
type FrontendHandler struct {
	queries     *store.Queries
	renderer    *render.Renderer
	siteContext *service.SiteContextService
	pages       *service.PageService
	siteURL     string
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(db *sql.DB, renderer *render.Renderer, siteContext *service.SiteContextService, pages *service.PageService, siteURL string) *FrontendHandler {
	return &FrontendHandler{
		queries:     store.New(db),
		renderer:    renderer,
		siteContext: siteContext,
		pages:       pages,
		siteURL:     siteURL,
	}
}

// requestInfo describes the request to the side-menu matcher. The slug
// route parameter feeds the page_slug assignment rule.
func requestInfo(r *http.Request, pageSlug string) service.RequestInfo {
	user := middleware.GetUser(r)
	return service.RequestInfo{
		Path:          r.URL.Path,
		PageSlug:      pageSlug,
		Authenticated: user != nil,
		Staff:         user != nil && (user.IsStaff || user.IsAdmin()),
	}
}

func (h *FrontendHandler) site(r *http.Request, pageSlug string) *service.PageContext {
	ctx := h.siteContext.Build(r.Context(), requestInfo(r, pageSlug))
	ctx.User = middleware.GetUser(r)
	return &ctx
}

func (h *FrontendHandler) siteData(site *service.PageContext) seo.SiteData {
	data := seo.SiteData{SiteURL: h.siteURL}
	if site.College != nil {
		data.SiteName = site.College.Name
		data.SiteDescription = site.College.MissionShort
	}
	return data
}

// Home renders the homepage: hero carousel, notifications, leadership
// previews and department listing.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	site := h.site(r, "")

	type homeData struct {
		Meta      seo.Meta
		Carousel  *model.HeroCarouselSettings
		Director  *model.LeadershipMessage
		Principal *model.LeadershipMessage
		Vision    *model.VisionMission
		Notices   []model.Notice
	}
	data := homeData{
		Meta:     seo.BuildMeta(nil, h.siteData(site)),
		Carousel: h.siteContext.ActiveHeroCarousel(r.Context()),
		Vision:   h.siteContext.ActiveVisionMission(r.Context()),
	}
	if d := h.siteContext.ActiveLeadershipMessage(r.Context(), model.RoleDirector); d != nil && d.ShowOnHomepage {
		data.Director = d
	}
	if p := h.siteContext.ActiveLeadershipMessage(r.Context(), model.RolePrincipal); p != nil && p.ShowOnHomepage {
		data.Principal = p
	}
	if notices, err := h.queries.ListCurrentNotices(r.Context(), time.Now(), 5); err == nil {
		data.Notices = notices
	}

	if err := h.renderer.Render(w, r, "site/home", render.TemplateData{
		Title: "Home",
		Site:  site,
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "failed to render homepage", "error", err)
	}
}

// Page renders a CMS page by slug, composing its content blocks.
func (h *FrontendHandler) Page(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	composed, err := h.pages.Compose(r.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.NotFound(w, r)
			return
		}
		logAndInternalError(w, "failed to compose page", "error", err, "slug", slug)
		return
	}

	site := h.site(r, slug)
	meta := seo.BuildMeta(&seo.PageData{
		Title:           composed.Page.Title,
		Slug:            composed.Page.Slug,
		Body:            firstRichTextBody(composed.Blocks),
		MetaTitle:       composed.Page.MetaTitle,
		MetaDescription: composed.Page.MetaDescription,
		MetaKeywords:    composed.Page.MetaKeywords,
	}, h.siteData(site))

	type pageData struct {
		Meta seo.Meta
		Page *service.ComposedPage
	}
	if err := h.renderer.Render(w, r, "site/page", render.TemplateData{
		Title: composed.Page.Title,
		Site:  site,
		Data:  pageData{Meta: meta, Page: composed},
	}); err != nil {
		logAndInternalError(w, "failed to render page", "error", err, "slug", slug)
	}
}

func firstRichTextBody(blocks []service.Block) string {
	for _, b := range blocks {
		if b.Kind == model.BlockRichText && b.HTML != "" {
			return b.HTML
		}
	}
	return ""
}

// Departments lists active academic departments.
func (h *FrontendHandler) Departments(w http.ResponseWriter, r *http.Request) {
	site := h.site(r, "")

	deps, err := h.queries.ListActiveDepartments(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list departments", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "site/departments", render.TemplateData{
		Title: "Departments",
		Site:  site,
		Data:  deps,
	}); err != nil {
		logAndInternalError(w, "failed to render departments", "error", err)
	}
}

// Department renders a single department by slug.
func (h *FrontendHandler) Department(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	dep, err := h.queries.GetDepartmentBySlug(r.Context(), slug)
	if err != nil || !dep.IsActive {
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			logAndInternalError(w, "failed to get department", "error", err, "slug", slug)
			return
		}
		h.NotFound(w, r)
		return
	}

	if err := h.renderer.Render(w, r, "site/department", render.TemplateData{
		Title: dep.Name,
		Site:  h.site(r, slug),
		Data:  dep,
	}); err != nil {
		logAndInternalError(w, "failed to render department", "error", err, "slug", slug)
	}
}

// Notices renders the public notice board.
func (h *FrontendHandler) Notices(w http.ResponseWriter, r *http.Request) {
	site := h.site(r, "")

	notices, err := h.queries.ListCurrentNotices(r.Context(), time.Now(), noticeListLimit)
	if err != nil {
		logAndInternalError(w, "failed to list notices", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "site/notices", render.TemplateData{
		Title: "Notice Board",
		Site:  site,
		Data:  notices,
	}); err != nil {
		logAndInternalError(w, "failed to render notices", "error", err)
	}
}

// Notice renders a single notice by slug.
func (h *FrontendHandler) Notice(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	notice, err := h.queries.GetNoticeBySlug(r.Context(), slug)
	if err != nil || !notice.IsActive {
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			logAndInternalError(w, "failed to get notice", "error", err, "slug", slug)
			return
		}
		h.NotFound(w, r)
		return
	}

	if err := h.renderer.Render(w, r, "site/notice", render.TemplateData{
		Title: notice.Title,
		Site:  h.site(r, slug),
		Data:  notice,
	}); err != nil {
		logAndInternalError(w, "failed to render notice", "error", err, "slug", slug)
	}
}

// Leadership renders the director's or principal's message page.
func (h *FrontendHandler) Leadership(role string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msg := h.siteContext.ActiveLeadershipMessage(r.Context(), role)
		if msg == nil {
			h.NotFound(w, r)
			return
		}

		if err := h.renderer.Render(w, r, "site/leadership", render.TemplateData{
			Title: msg.MessageTitle,
			Site:  h.site(r, ""),
			Data:  msg,
		}); err != nil {
			logAndInternalError(w, "failed to render leadership page", "error", err, "role", role)
		}
	}
}

// VisionMission renders the vision and mission page.
func (h *FrontendHandler) VisionMission(w http.ResponseWriter, r *http.Request) {
	vm := h.siteContext.ActiveVisionMission(r.Context())
	if vm == nil {
		h.NotFound(w, r)
		return
	}

	if err := h.renderer.Render(w, r, "site/vision_mission", render.TemplateData{
		Title: vm.Title,
		Site:  h.site(r, ""),
		Data:  vm,
	}); err != nil {
		logAndInternalError(w, "failed to render vision mission", "error", err)
	}
}

// Panel renders one of the long-tail info pages (NAAC, NIRF, IQAC and
// the rest of the config panel families).
func (h *FrontendHandler) Panel(f model.Family) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		panel := h.siteContext.ActivePanel(r.Context(), f)
		if panel == nil {
			h.NotFound(w, r)
			return
		}

		if err := h.renderer.Render(w, r, "site/panel", render.TemplateData{
			Title: panel.Title,
			Site:  h.site(r, ""),
			Data:  panel,
		}); err != nil {
			logAndInternalError(w, "failed to render info panel", "error", err, "family", f)
		}
	}
}

// NotFound renders the 404 page with the full site chrome.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	if err := h.renderer.Render(w, r, "site/404", render.TemplateData{
		Title: "Page Not Found",
		Site:  h.site(r, ""),
	}); err != nil {
		http.Error(w, "Page Not Found", http.StatusNotFound)
	}
}

// Sitemap serves sitemap.xml built from active pages, departments and
// current notices.
func (h *FrontendHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	builder := seo.NewSitemapBuilder(h.siteURL)
	builder.AddHomepage()

	if pages, err := h.queries.ListActivePages(r.Context()); err == nil {
		for _, p := range pages {
			builder.AddPage(seo.SitemapEntry{Slug: p.Slug, UpdatedAt: p.UpdatedAt})
		}
	}
	if deps, err := h.queries.ListActiveDepartments(r.Context()); err == nil {
		for _, d := range deps {
			builder.AddDepartment(seo.SitemapEntry{Slug: d.Slug, UpdatedAt: d.UpdatedAt})
		}
	}
	if notices, err := h.queries.ListCurrentNotices(r.Context(), time.Now(), noticeListLimit); err == nil {
		for _, n := range notices {
			builder.AddNotice(seo.SitemapEntry{Slug: n.Slug, UpdatedAt: n.UpdatedAt})
		}
	}

	xml, err := builder.Build()
	if err != nil {
		logAndInternalError(w, "failed to build sitemap", "error", err)
		return
	}

	w.Header().Set(HeaderContentType, "application/xml; charset=utf-8")
	_, _ = w.Write(xml)
}

// Robots serves robots.txt.
func (h *FrontendHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(HeaderContentType, "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(seo.GenerateRobots(h.siteURL, false)))
}
