// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/campuscms/campuscms/internal/cache"
	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/render"
	"github.com/campuscms/campuscms/internal/service"
	"github.com/campuscms/campuscms/internal/session"
	"github.com/campuscms/campuscms/internal/store"
	"github.com/campuscms/campuscms/web"
)

// testApp bundles the pieces a handler test needs.
type testApp struct {
	db             *sql.DB
	queries        *store.Queries
	sessionManager *scs.SessionManager
	renderer       *render.Renderer
	frontend       *FrontendHandler
	auth           *AuthHandler
	menus          *MenusHandler
	visibilityH    *VisibilityHandler
}

// newTestApp creates a seeded test database and wires the full public
// service stack against it.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "campus-handler-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if err := store.Seed(context.Background(), db); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	queries := store.New(db)
	sessionManager := session.New(db, true)

	backend, err := cache.New(cache.Config{DefaultTTL: time.Minute})
	if err != nil {
		t.Fatalf("cache.New: %v", err)
	}
	t.Cleanup(func() { _ = backend.Close() })

	records := cache.NewActiveRecordCache(backend, time.Minute)
	menuCache := cache.NewMenuCache(queries)

	resolver := service.NewResolver(service.DefaultRoutes())
	visibility := service.NewVisibilityService(queries)
	menus := service.NewMenuService(queries, menuCache, resolver, visibility)
	sideMenus := service.NewSideMenuService(queries, resolver)
	activation := service.NewActivationService(db, records)
	siteContext := service.NewSiteContextService(queries, records, activation, menus, sideMenus)
	pages := service.NewPageService(queries)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("templates fs: %v", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          true,
	})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	return &testApp{
		db:             db,
		queries:        queries,
		sessionManager: sessionManager,
		renderer:       renderer,
		frontend:       NewFrontendHandler(db, renderer, siteContext, pages, "http://test.example.edu"),
		auth:           NewAuthHandler(db, renderer, sessionManager, nil),
		menus:          NewMenusHandler(db, renderer, sessionManager, menus, records),
		visibilityH:    NewVisibilityHandler(db, renderer, sessionManager, menus, records),
	}
}

// router builds the public routes the way the server wires them.
func (a *testApp) router() http.Handler {
	r := chi.NewRouter()
	r.Use(a.sessionManager.LoadAndSave)

	r.Get("/", a.frontend.Home)
	r.Get("/sitemap.xml", a.frontend.Sitemap)
	r.Get("/robots.txt", a.frontend.Robots)
	r.Get("/departments", a.frontend.Departments)
	r.Get("/departments/{slug}", a.frontend.Department)
	r.Get("/notices", a.frontend.Notices)
	r.Get("/notices/{slug}", a.frontend.Notice)
	r.Get("/director-message", a.frontend.Leadership(model.RoleDirector))
	r.Get("/vision-mission", a.frontend.VisionMission)
	r.Get("/naac", a.frontend.Panel(model.FamilyNAACInfo))
	r.Get("/login", a.auth.LoginForm)
	r.Post("/login", a.auth.Login)
	r.Get("/{slug}", a.frontend.Page)
	r.NotFound(a.frontend.NotFound)
	return r
}

func get(t *testing.T, h http.Handler, path string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	res := rec.Result()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	_ = res.Body.Close()
	return res, string(body)
}

func TestHomePage(t *testing.T) {
	app := newTestApp(t)
	h := app.router()

	res, body := get(t, h, "/")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
	if !strings.Contains(body, "<html") {
		t.Error("response is not an HTML document")
	}
}

func TestPageNotFound(t *testing.T) {
	app := newTestApp(t)
	h := app.router()

	res, body := get(t, h, "/no-such-page")
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", res.StatusCode)
	}
	if !strings.Contains(body, "not") {
		t.Error("404 page body looks empty")
	}
}

func TestPublishedPageBySlug(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	page, err := app.queries.CreatePage(ctx, store.CreatePageParams{
		Title:    "Admissions",
		Slug:     "admissions",
		Template: model.TemplateDefault,
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}
	if _, err := app.queries.CreateContentBlock(ctx, store.CreateContentBlockParams{
		PageID:   page.ID,
		Kind:     model.BlockRichText,
		Title:    "Eligibility",
		Body:     "<p>Apply before June.</p>",
		IsActive: true,
	}); err != nil {
		t.Fatalf("CreateContentBlock: %v", err)
	}

	h := app.router()
	res, body := get(t, h, "/admissions")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
	if !strings.Contains(body, "Admissions") || !strings.Contains(body, "Apply before June.") {
		t.Error("page content missing from response")
	}

	// Inactive pages are invisible on the public site.
	if _, err := app.queries.UpdatePage(ctx, store.UpdatePageParams{
		ID:       page.ID,
		Title:    page.Title,
		Slug:     page.Slug,
		Template: page.Template,
		IsActive: false,
	}); err != nil {
		t.Fatalf("UpdatePage: %v", err)
	}
	res, _ = get(t, h, "/admissions")
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("inactive page status = %d, want 404", res.StatusCode)
	}
}

func TestNoticeLifecycleOnSite(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	_, err := app.queries.CreateNotice(ctx, store.CreateNoticeParams{
		Title:       "Exam Schedule Released",
		Slug:        "exam-schedule-released",
		Content:     "Hall tickets available from the office.",
		PublishDate: time.Now().Add(-time.Hour),
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("CreateNotice: %v", err)
	}

	h := app.router()
	res, body := get(t, h, "/notices")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
	if !strings.Contains(body, "Exam Schedule Released") {
		t.Error("published notice missing from list")
	}

	res, body = get(t, h, "/notices/exam-schedule-released")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("detail status = %d", res.StatusCode)
	}
	if !strings.Contains(body, "Hall tickets") {
		t.Error("notice content missing from detail page")
	}
}

func TestSitemapAndRobots(t *testing.T) {
	app := newTestApp(t)
	h := app.router()

	res, body := get(t, h, "/sitemap.xml")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("sitemap status = %d", res.StatusCode)
	}
	if !strings.Contains(body, "<urlset") {
		t.Error("sitemap missing urlset element")
	}
	if !strings.Contains(body, "http://test.example.edu/") {
		t.Error("sitemap entries not rooted at the site URL")
	}

	res, body = get(t, h, "/robots.txt")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("robots status = %d", res.StatusCode)
	}
	if !strings.Contains(body, "Sitemap:") {
		t.Error("robots.txt missing sitemap reference")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app := newTestApp(t)
	h := app.router()

	res, _ := get(t, h, "/login")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("login form status = %d", res.StatusCode)
	}

	form := strings.NewReader("email=nobody%40example.edu&password=wrong")
	req := httptest.NewRequest(http.MethodPost, "/login", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want redirect", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("redirect location = %q, want /login", loc)
	}
}
