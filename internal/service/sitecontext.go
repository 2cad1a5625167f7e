// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/campuscms/campuscms/internal/cache"
	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/store"
)

// recentNoticeWindow is how far back the "recent notices" badge counts.
const recentNoticeWindow = 7 * 24 * time.Hour

// SiteContext is the shared slice of the template context: everything a
// page template consumes that does not depend on the specific request.
// It is cached under a single composite key and invalidated whenever a
// contributing family changes.
type SiteContext struct {
	College    *model.CollegeInfo
	Header     *model.HeaderInfo
	Navbar     *model.NavbarInfo
	UtilityBar *model.UtilityBar

	// Derived from the utility bar.
	SocialLinks []model.SocialLink
	CustomLinks []model.LinkEntry

	Menus      []NavMenu
	Visibility model.VisibilitySettings

	Departments   []model.Department
	Notifications []model.ScrollingNotification
	Sliders       []model.SliderImage

	RecentNoticeCount int64
}

// PageContext is the full per-request template context.
type PageContext struct {
	SiteContext
	Path      string
	SideMenus []SideNav
	User      *model.User
}

// SiteContextService assembles the template context for every request.
type SiteContextService struct {
	queries    *store.Queries
	records    *cache.ActiveRecordCache
	activation *ActivationService
	menus      *MenuService
	sideMenus  *SideMenuService
}

// NewSiteContextService creates a SiteContextService. records may be nil.
func NewSiteContextService(
	queries *store.Queries,
	records *cache.ActiveRecordCache,
	activation *ActivationService,
	menus *MenuService,
	sideMenus *SideMenuService,
) *SiteContextService {
	return &SiteContextService{
		queries:    queries,
		records:    records,
		activation: activation,
		menus:      menus,
		sideMenus:  sideMenus,
	}
}

// Build assembles the full context for a request. The shared portion is
// served from the composite cache key when possible; side menus are
// always matched per request.
func (s *SiteContextService) Build(ctx context.Context, req RequestInfo) PageContext {
	return PageContext{
		SiteContext: s.shared(ctx),
		Path:        req.Path,
		SideMenus:   s.sideMenus.MatchResolved(ctx, req),
	}
}

// shared returns the cacheable slice of the context.
func (s *SiteContextService) shared(ctx context.Context) SiteContext {
	if s.records != nil {
		var sc SiteContext
		if s.records.GetSiteContext(ctx, &sc) {
			return sc
		}
	}

	sc := s.assemble(ctx)

	if s.records != nil {
		if err := s.records.SetSiteContext(ctx, &sc); err != nil {
			slog.Warn("caching site context failed", "error", err)
		}
	}
	return sc
}

func (s *SiteContextService) assemble(ctx context.Context) SiteContext {
	now := time.Now()
	var sc SiteContext

	sc.College = activeOf(ctx, s, model.FamilyCollegeInfo, s.queries.GetActiveCollegeInfo)
	sc.Header = activeOf(ctx, s, model.FamilyHeaderInfo, s.queries.GetActiveHeaderInfo)
	sc.Navbar = activeOf(ctx, s, model.FamilyNavbarInfo, s.queries.GetActiveNavbarInfo)
	sc.UtilityBar = activeOf(ctx, s, model.FamilyUtilityBar, s.queries.GetActiveUtilityBar)

	if sc.UtilityBar != nil {
		sc.SocialLinks = sc.UtilityBar.SocialLinks()
		sc.CustomLinks = s.utilityLinks(ctx, sc.UtilityBar)
	}

	sc.Menus = s.menus.GetForest(ctx)

	settings, err := s.queries.GetVisibilitySettings(ctx)
	if err != nil {
		settings = AllVisibleSettings()
	}
	sc.Visibility = settings

	if deps, err := s.queries.ListActiveDepartments(ctx); err == nil {
		sc.Departments = deps
	}
	if notes, err := s.queries.ListCurrentNotifications(ctx, now); err == nil {
		sc.Notifications = notes
	}
	if sliders, err := s.queries.ListCurrentSliderImages(ctx, now); err == nil {
		sc.Sliders = sliders
	}
	if n, err := s.queries.CountRecentNotices(ctx, now.Add(-recentNoticeWindow), now); err == nil {
		sc.RecentNoticeCount = n
	}

	return sc
}

// utilityLinks returns the bar's link list: the legacy fixed slots
// first, then the dynamic custom_links rows.
func (s *SiteContextService) utilityLinks(ctx context.Context, bar *model.UtilityBar) []model.LinkEntry {
	if !bar.ShowCustomLinks {
		return nil
	}
	links := bar.LegacyLinks()

	rows, err := s.queries.ListActiveCustomLinks(ctx, bar.ID)
	if err != nil {
		return links
	}
	for _, l := range rows {
		links = append(links, model.LinkEntry{Text: l.Text, URL: l.URL, IconClass: l.IconClass})
	}
	return links
}

// activeOf reads the active record of a family through the cache. On a
// cache miss it first runs multi-active recovery, then fetches from the
// store and repopulates the cache. A family with no active record yields
// nil.
func activeOf[T any](ctx context.Context, s *SiteContextService, f model.Family, fetch func(context.Context) (T, error)) *T {
	if s.records != nil {
		var rec T
		if s.records.Get(ctx, f, &rec) {
			return &rec
		}
	}

	if s.activation != nil {
		if _, err := s.activation.Recover(ctx, f); err != nil {
			slog.Warn("multi-active recovery failed", "family", string(f), "error", err)
		}
	}

	rec, err := fetch(ctx)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Warn("loading active record failed", "family", string(f), "error", err)
		}
		return nil
	}

	if s.records != nil {
		_ = s.records.Set(ctx, f, &rec)
	}
	return &rec
}

// ActiveLeadershipMessage returns the active message for a role, nil
// when none is active.
func (s *SiteContextService) ActiveLeadershipMessage(ctx context.Context, role string) *model.LeadershipMessage {
	family := model.FamilyDirectorMessage
	if role == model.RolePrincipal {
		family = model.FamilyPrincipalMessage
	}
	return activeOf(ctx, s, family, func(ctx context.Context) (model.LeadershipMessage, error) {
		return s.queries.GetActiveLeadershipMessage(ctx, role)
	})
}

// ActiveVisionMission returns the active vision/mission record, nil when
// none is active.
func (s *SiteContextService) ActiveVisionMission(ctx context.Context) *model.VisionMission {
	return activeOf(ctx, s, model.FamilyVisionMission, s.queries.GetActiveVisionMission)
}

// ActiveHeroCarousel returns the active carousel settings, nil when none
// is active.
func (s *SiteContextService) ActiveHeroCarousel(ctx context.Context) *model.HeroCarouselSettings {
	return activeOf(ctx, s, model.FamilyHeroCarousel, s.queries.GetActiveHeroCarousel)
}

// ActivePanel returns the active payload of a config-panel family, nil
// when none is active.
func (s *SiteContextService) ActivePanel(ctx context.Context, f model.Family) *model.ConfigPanel {
	return activeOf(ctx, s, f, func(ctx context.Context) (model.ConfigPanel, error) {
		return s.queries.GetActiveConfigPanel(ctx, f)
	})
}
