// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/campuscms/campuscms/internal/cache"
	"github.com/campuscms/campuscms/internal/config"
	"github.com/campuscms/campuscms/internal/handler"
	"github.com/campuscms/campuscms/internal/logging"
	"github.com/campuscms/campuscms/internal/middleware"
	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/render"
	"github.com/campuscms/campuscms/internal/scheduler"
	"github.com/campuscms/campuscms/internal/service"
	"github.com/campuscms/campuscms/internal/session"
	"github.com/campuscms/campuscms/internal/store"
	"github.com/campuscms/campuscms/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// crudHandlers defines the standard CRUD handler methods.
type crudHandlers struct {
	List     http.HandlerFunc
	NewForm  http.HandlerFunc
	Create   http.HandlerFunc
	EditForm http.HandlerFunc
	Update   http.HandlerFunc
	Delete   http.HandlerFunc
}

// registerCRUD registers standard CRUD routes for a resource.
// Routes: GET base, GET base/new, POST base, GET base/{id},
// POST base/{id}, POST base/{id}/delete (HTML forms can't send
// PUT or DELETE).
func registerCRUD(r chi.Router, base string, h crudHandlers) {
	baseID := base + handler.RouteParamID
	r.Get(base, h.List)
	r.Get(base+handler.RouteSuffixNew, h.NewForm)
	r.Post(base, h.Create)
	r.Get(baseID, h.EditForm)
	r.Post(baseID, h.Update)
	r.Post(baseID+"/delete", h.Delete)
}

// registerActivation registers the activate/deactivate actions of a
// singleton-active family resource.
func registerActivation(r chi.Router, base string, activate, deactivate http.HandlerFunc) {
	baseID := base + handler.RouteParamID
	r.Post(baseID+handler.RouteSuffixActivate, activate)
	r.Post(baseID+handler.RouteSuffixDeactivate, deactivate)
}

// panelRoutes maps the public info-page paths to their config panel
// families.
var panelRoutes = []struct {
	Path   string
	Family model.Family
}{
	{"/naac", model.FamilyNAACInfo},
	{"/nirf", model.FamilyNIRFInfo},
	{"/iqac", model.FamilyIQACInfo},
	{"/accreditation", model.FamilyAccreditation},
	{"/exam-rules", model.FamilyExamRules},
	{"/revaluation", model.FamilyRevaluation},
	{"/research-center", model.FamilyResearchCenter},
	{"/publications", model.FamilyPublicationInfo},
	{"/patents-projects", model.FamilyPatentsProjects},
	{"/consultancy", model.FamilyConsultancy},
}

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Campus CMS - College Content Management System\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CAMPUS_SESSION_SECRET    Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CAMPUS_DB_PATH           SQLite database path (default: ./data/campus.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CAMPUS_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CAMPUS_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CAMPUS_SITE_URL          Canonical site URL for sitemap links\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CAMPUS_REDIS_URL         Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CAMPUS_DO_SEED           Seed the default admin account on startup\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("campuscms %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data and uploads directories exist
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.MkdirAll(cfg.UploadsDir, 0755); err != nil {
		return fmt.Errorf("creating uploads directory: %w", err)
	}

	// Initialize database
	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	// Run migrations
	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the event log table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	eventLogHandler := logging.NewEventLogHandler(textHandler, db)
	logger = slog.New(eventLogHandler)
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	// Seed the default admin account when enabled
	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	queries := store.New(db)

	// Initialize session manager
	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	// Initialize cache backend (Redis when configured, memory otherwise)
	cacheBackend, err := cache.New(cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	})
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() {
		if err := cacheBackend.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	if cfg.UseRedisCache() {
		slog.Info("cache backend initialized", "backend", "redis", "url", cfg.RedisURL)
	} else {
		slog.Info("cache backend initialized", "backend", "memory", "max_size", cfg.CacheMaxSize)
	}

	records := cache.NewActiveRecordCache(cacheBackend, time.Duration(cfg.CacheTTL)*time.Second)
	menuCache := cache.NewMenuCache(queries)
	if err := menuCache.Preload(ctx); err != nil {
		slog.Warn("failed to preload menu cache", "error", err)
	}

	// Wire up services
	resolver := service.NewResolver(service.DefaultRoutes())
	visibility := service.NewVisibilityService(queries)
	menuService := service.NewMenuService(queries, menuCache, resolver, visibility)
	sideMenuService := service.NewSideMenuService(queries, resolver)
	activation := service.NewActivationService(db, records)
	siteContext := service.NewSiteContextService(queries, records, activation, menuService, sideMenuService)
	pageService := service.NewPageService(queries)
	linkChecker := service.NewLinkChecker(queries, time.Duration(cfg.LinkCheckTimeout)*time.Second)

	// Initialize template renderer
	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}

	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	// Initialize and start scheduler
	sched := scheduler.New(db, logger, linkChecker)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	// Create router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))                    // Gzip compression with level 5
	r.Use(chimw.GetHead)                        // Handle HEAD requests for uptime monitoring
	r.Use(middleware.Timeout(30 * time.Second)) // 30 second request timeout
	r.Use(middleware.StripTrailingSlash)        // Redirect /path/ to /path (301)

	// Security headers middleware (CSP, HSTS, X-Frame-Options, etc.)
	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	r.Use(middleware.SecurityHeaders(securityConfig))

	// Host header allowlist (production deployments behind a proxy)
	if len(cfg.AllowedHosts) > 0 {
		r.Use(middleware.AllowedHosts(cfg.AllowedHosts))
		slog.Info("allowed hosts restriction enabled", "hosts", cfg.AllowedHosts)
	}

	// Request path middleware for logging context
	r.Use(middleware.RequestPath)

	r.Use(sessionManager.LoadAndSave)

	// CSRF protection middleware (applied per route group)
	csrfConfig := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())
	csrfMiddleware := middleware.CSRF(csrfConfig)
	slog.Info("CSRF protection initialized", "secure", !cfg.IsDevelopment())

	// Initialize login protection
	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())

	// Public rate limiter for auth routes (defense-in-depth)
	publicRateLimiter := middleware.NewGlobalRateLimiter(10.0, 20)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(db, renderer, sessionManager, loginProtection)
	adminHandler := handler.NewAdminHandler(db, renderer, sessionManager)
	frontendHandler := handler.NewFrontendHandler(db, renderer, siteContext, pageService, cfg.SiteURL)
	healthHandler := handler.NewHealthHandler(db, sessionManager, cfg.UploadsDir)
	menusHandler := handler.NewMenusHandler(db, renderer, sessionManager, menuService, records)
	sideMenusHandler := handler.NewSideMenusHandler(db, renderer, sessionManager, records)
	pagesHandler := handler.NewPagesHandler(db, renderer, sessionManager, menuService, records)
	notificationsHandler := handler.NewNotificationsHandler(db, renderer, sessionManager, records)
	slidersHandler := handler.NewSlidersHandler(db, renderer, sessionManager, records)
	noticesHandler := handler.NewNoticesHandler(db, renderer, sessionManager, records)
	departmentsHandler := handler.NewDepartmentsHandler(db, renderer, sessionManager, records)
	utilityBarsHandler := handler.NewUtilityBarsHandler(db, renderer, sessionManager, activation)
	siteConfigHandler := handler.NewSiteConfigHandler(db, renderer, sessionManager, activation)
	leadershipHandler := handler.NewLeadershipHandler(db, renderer, sessionManager, activation)
	visionMissionsHandler := handler.NewVisionMissionsHandler(db, renderer, sessionManager, activation)
	carouselsHandler := handler.NewCarouselsHandler(db, renderer, sessionManager, activation)
	panelsHandler := handler.NewPanelsHandler(db, renderer, sessionManager, activation)
	visibilityHandler := handler.NewVisibilityHandler(db, renderer, sessionManager, menuService, records)
	eventsHandler := handler.NewEventsHandler(db, renderer, sessionManager)
	cacheHandler := handler.NewCacheHandler(renderer, sessionManager, cacheBackend, records, menuCache)
	linkCheckHandler := handler.NewLinkCheckHandler(renderer, sessionManager, linkChecker)
	usersHandler := handler.NewUsersHandler(db, renderer, sessionManager)

	// Health check routes (public, returns additional details for authenticated callers)
	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// Public frontend routes
	r.Group(func(r chi.Router) {
		// Optionally load user for context-aware rendering (doesn't require login)
		r.Use(middleware.OptionalLoadUser(sessionManager, db))

		// Specific routes first, the slug catch-all last
		r.Get("/sitemap.xml", frontendHandler.Sitemap)
		r.Get("/robots.txt", frontendHandler.Robots)
		r.Get(handler.RouteRoot, frontendHandler.Home)
		r.Get(handler.RouteDepartments, frontendHandler.Departments)
		r.Get(handler.RouteDepartments+handler.RouteParamSlug, frontendHandler.Department)
		r.Get(handler.RouteNotices, frontendHandler.Notices)
		r.Get(handler.RouteNotices+handler.RouteParamSlug, frontendHandler.Notice)
		r.Get("/director-message", frontendHandler.Leadership(model.RoleDirector))
		r.Get("/principal-message", frontendHandler.Leadership(model.RolePrincipal))
		r.Get("/vision-mission", frontendHandler.VisionMission)
		for _, pr := range panelRoutes {
			r.Get(pr.Path, frontendHandler.Panel(pr.Family))
		}
		r.Get(handler.RouteParamSlug, frontendHandler.Page)
	})

	// Auth routes (public, with CSRF and rate limiting)
	// Defense-in-depth: publicRateLimiter + loginProtection on the POST
	r.Group(func(r chi.Router) {
		r.Use(publicRateLimiter.Middleware())
		r.Use(csrfMiddleware)
		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.With(loginProtection.Middleware()).Post(handler.RouteLogin, authHandler.Login)
		r.Get(handler.RouteLogout, authHandler.Logout)
		r.Post(handler.RouteLogout, authHandler.Logout)
	})

	// Admin routes (protected with CSRF)
	r.Route("/admin", func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Use(middleware.Auth(sessionManager))
		r.Use(middleware.LoadUser(sessionManager, db))

		// Editor routes (editor + admin)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireEditor())

			// Dashboard and event log
			r.Get(handler.RouteRoot, adminHandler.Dashboard)
			r.Get(handler.RouteEvents, eventsHandler.List)

			// Menu management routes
			registerCRUD(r, handler.RouteMenus, crudHandlers{
				List: menusHandler.List, NewForm: menusHandler.NewForm, Create: menusHandler.Create,
				EditForm: menusHandler.EditForm, Update: menusHandler.Update, Delete: menusHandler.Delete,
			})
			r.Post(handler.RouteMenus+handler.RouteParamID+"/items", menusHandler.CreateItem)
			r.Post(handler.RouteMenus+handler.RouteParamID+handler.RouteItemsItemID, menusHandler.UpdateItem)
			r.Post(handler.RouteMenus+handler.RouteParamID+handler.RouteItemsItemID+"/delete", menusHandler.DeleteItem)

			// Side menu management routes
			registerCRUD(r, handler.RouteSideMenus, crudHandlers{
				List: sideMenusHandler.List, NewForm: sideMenusHandler.NewForm, Create: sideMenusHandler.Create,
				EditForm: sideMenusHandler.EditForm, Update: sideMenusHandler.Update, Delete: sideMenusHandler.Delete,
			})
			r.Post(handler.RouteSideMenus+handler.RouteParamID+"/items", sideMenusHandler.CreateItem)
			r.Post(handler.RouteSideMenus+handler.RouteParamID+handler.RouteItemsItemID, sideMenusHandler.UpdateItem)
			r.Post(handler.RouteSideMenus+handler.RouteParamID+handler.RouteItemsItemID+"/delete", sideMenusHandler.DeleteItem)

			// Page management routes (with content blocks and inner rows)
			registerCRUD(r, handler.RoutePages, crudHandlers{
				List: pagesHandler.List, NewForm: pagesHandler.NewForm, Create: pagesHandler.Create,
				EditForm: pagesHandler.EditForm, Update: pagesHandler.Update, Delete: pagesHandler.Delete,
			})
			pageID := handler.RoutePages + handler.RouteParamID
			blockID := pageID + handler.RouteBlocksBlockID
			r.Post(pageID+"/blocks", pagesHandler.CreateBlock)
			r.Post(blockID, pagesHandler.UpdateBlock)
			r.Post(blockID+"/delete", pagesHandler.DeleteBlock)
			r.Post(blockID+"/images", pagesHandler.CreateGalleryImage)
			r.Post(blockID+"/images/{imageId}/delete", pagesHandler.DeleteGalleryImage)
			r.Post(blockID+"/files", pagesHandler.CreateDownloadFile)
			r.Post(blockID+"/files/{fileId}/delete", pagesHandler.DeleteDownloadFile)

			// Content routes
			registerCRUD(r, handler.RouteNotifications, crudHandlers{
				List: notificationsHandler.List, NewForm: notificationsHandler.NewForm, Create: notificationsHandler.Create,
				EditForm: notificationsHandler.EditForm, Update: notificationsHandler.Update, Delete: notificationsHandler.Delete,
			})
			registerCRUD(r, handler.RouteSliders, crudHandlers{
				List: slidersHandler.List, NewForm: slidersHandler.NewForm, Create: slidersHandler.Create,
				EditForm: slidersHandler.EditForm, Update: slidersHandler.Update, Delete: slidersHandler.Delete,
			})
			registerCRUD(r, handler.RouteNotices, crudHandlers{
				List: noticesHandler.List, NewForm: noticesHandler.NewForm, Create: noticesHandler.Create,
				EditForm: noticesHandler.EditForm, Update: noticesHandler.Update, Delete: noticesHandler.Delete,
			})
			registerCRUD(r, handler.RouteDepartments, crudHandlers{
				List: departmentsHandler.List, NewForm: departmentsHandler.NewForm, Create: departmentsHandler.Create,
				EditForm: departmentsHandler.EditForm, Update: departmentsHandler.Update, Delete: departmentsHandler.Delete,
			})

			// Utility bar routes (with custom links)
			registerCRUD(r, handler.RouteUtilityBars, crudHandlers{
				List: utilityBarsHandler.List, NewForm: utilityBarsHandler.NewForm, Create: utilityBarsHandler.Create,
				EditForm: utilityBarsHandler.EditForm, Update: utilityBarsHandler.Update, Delete: utilityBarsHandler.Delete,
			})
			registerActivation(r, handler.RouteUtilityBars, utilityBarsHandler.Activate, utilityBarsHandler.Deactivate)
			barID := handler.RouteUtilityBars + handler.RouteParamID
			r.Post(barID+"/links", utilityBarsHandler.CreateLink)
			r.Post(barID+handler.RouteLinksLinkID, utilityBarsHandler.UpdateLink)
			r.Post(barID+handler.RouteLinksLinkID+"/delete", utilityBarsHandler.DeleteLink)

			// Site configuration families (strict activation)
			registerCRUD(r, handler.RouteHeaders, crudHandlers{
				List: siteConfigHandler.ListHeaders, NewForm: siteConfigHandler.NewHeaderForm, Create: siteConfigHandler.CreateHeader,
				EditForm: siteConfigHandler.EditHeaderForm, Update: siteConfigHandler.UpdateHeader, Delete: siteConfigHandler.DeleteHeader,
			})
			registerActivation(r, handler.RouteHeaders, siteConfigHandler.ActivateHeader, siteConfigHandler.DeactivateHeader)
			registerCRUD(r, handler.RouteNavbars, crudHandlers{
				List: siteConfigHandler.ListNavbars, NewForm: siteConfigHandler.NewNavbarForm, Create: siteConfigHandler.CreateNavbar,
				EditForm: siteConfigHandler.EditNavbarForm, Update: siteConfigHandler.UpdateNavbar, Delete: siteConfigHandler.DeleteNavbar,
			})
			registerActivation(r, handler.RouteNavbars, siteConfigHandler.ActivateNavbar, siteConfigHandler.DeactivateNavbar)
			registerCRUD(r, handler.RouteColleges, crudHandlers{
				List: siteConfigHandler.ListColleges, NewForm: siteConfigHandler.NewCollegeForm, Create: siteConfigHandler.CreateCollege,
				EditForm: siteConfigHandler.EditCollegeForm, Update: siteConfigHandler.UpdateCollege, Delete: siteConfigHandler.DeleteCollege,
			})
			registerActivation(r, handler.RouteColleges, siteConfigHandler.ActivateCollege, siteConfigHandler.DeactivateCollege)

			// Leadership messages and vision/mission (strict activation)
			registerCRUD(r, handler.RouteLeadership, crudHandlers{
				List: leadershipHandler.List, NewForm: leadershipHandler.NewForm, Create: leadershipHandler.Create,
				EditForm: leadershipHandler.EditForm, Update: leadershipHandler.Update, Delete: leadershipHandler.Delete,
			})
			registerActivation(r, handler.RouteLeadership, leadershipHandler.Activate, leadershipHandler.Deactivate)
			registerCRUD(r, handler.RouteVisionMissions, crudHandlers{
				List: visionMissionsHandler.List, NewForm: visionMissionsHandler.NewForm, Create: visionMissionsHandler.Create,
				EditForm: visionMissionsHandler.EditForm, Update: visionMissionsHandler.Update, Delete: visionMissionsHandler.Delete,
			})
			registerActivation(r, handler.RouteVisionMissions, visionMissionsHandler.Activate, visionMissionsHandler.Deactivate)

			// Hero carousel settings (promotional activation)
			registerCRUD(r, handler.RouteCarousels, crudHandlers{
				List: carouselsHandler.List, NewForm: carouselsHandler.NewForm, Create: carouselsHandler.Create,
				EditForm: carouselsHandler.EditForm, Update: carouselsHandler.Update, Delete: carouselsHandler.Delete,
			})
			registerActivation(r, handler.RouteCarousels, carouselsHandler.Activate, carouselsHandler.Deactivate)

			// Config panels, one sub-tree per family
			r.Get(handler.RoutePanels, panelsHandler.Overview)
			panelBase := handler.RoutePanels + "/{family}"
			panelID := panelBase + handler.RouteParamID
			r.Get(panelBase, panelsHandler.List)
			r.Get(panelBase+handler.RouteSuffixNew, panelsHandler.NewForm)
			r.Post(panelBase, panelsHandler.Create)
			r.Get(panelID, panelsHandler.EditForm)
			r.Post(panelID, panelsHandler.Update)
			r.Post(panelID+"/delete", panelsHandler.Delete)
			r.Post(panelID+handler.RouteSuffixActivate, panelsHandler.Activate)
			r.Post(panelID+handler.RouteSuffixDeactivate, panelsHandler.Deactivate)

			// Menu visibility settings
			r.Get(handler.RouteVisibility, visibilityHandler.Form)
			r.Post(handler.RouteVisibility, visibilityHandler.Update)

			// Link checker
			r.Get(handler.RouteLinkCheck, linkCheckHandler.Form)
			r.Post(handler.RouteLinkCheck, linkCheckHandler.Run)
		})

		// Admin-only routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin())

			// User management routes
			registerCRUD(r, handler.RouteUsers, crudHandlers{
				List: usersHandler.List, NewForm: usersHandler.NewForm, Create: usersHandler.Create,
				EditForm: usersHandler.EditForm, Update: usersHandler.Update, Delete: usersHandler.Delete,
			})

			// Cache management routes
			r.Get(handler.RouteCache, cacheHandler.Stats)
			r.Post(handler.RouteCache+"/purge", cacheHandler.Purge)
		})
	})

	// Static file serving from the embedded assets
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Serve uploaded files (configured via CAMPUS_UPLOADS_DIR)
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))

	// 404 Not Found handler with the full site chrome
	r.NotFound(frontendHandler.NotFound)

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", appVersion)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
