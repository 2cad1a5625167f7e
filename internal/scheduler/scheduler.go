// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the site's periodic maintenance jobs.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/campuscms/campuscms/internal/service"
	"github.com/campuscms/campuscms/internal/store"
)

// eventRetention is how long event-log rows are kept.
const eventRetention = 90 * 24 * time.Hour

// Scheduler handles the periodic jobs: expiring scheduled notifications,
// purging old event-log rows, and checking stored links.
type Scheduler struct {
	db          *sql.DB
	cron        *cron.Cron
	logger      *slog.Logger
	linkChecker *service.LinkChecker
}

// New creates a new scheduler instance. linkChecker may be nil to skip
// the periodic link sweep.
func New(db *sql.DB, logger *slog.Logger, linkChecker *service.LinkChecker) *Scheduler {
	return &Scheduler{
		db:          db,
		cron:        cron.New(),
		logger:      logger,
		linkChecker: linkChecker,
	}
}

// Start registers the jobs and begins the cron loop.
func (s *Scheduler) Start() error {
	// Expire ended notifications every 10 minutes.
	if _, err := s.cron.AddFunc("*/10 * * * *", func() {
		if err := s.expireNotifications(); err != nil {
			s.logger.Error("failed to expire notifications", "error", err)
		}
	}); err != nil {
		return err
	}

	// Purge old event-log rows daily at 03:00.
	if _, err := s.cron.AddFunc("0 3 * * *", func() {
		if err := s.purgeEvents(); err != nil {
			s.logger.Error("failed to purge events", "error", err)
		}
	}); err != nil {
		return err
	}

	// Sweep stored links weekly, Sunday 04:00.
	if s.linkChecker != nil {
		if _, err := s.cron.AddFunc("0 4 * * 0", func() {
			s.sweepLinks()
		}); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// expireNotifications deactivates scrolling notifications whose window
// has closed.
func (s *Scheduler) expireNotifications() error {
	ctx := context.Background()
	queries := store.New(s.db)

	n, err := queries.ExpireNotificationsBefore(ctx, time.Now())
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.Info("expired notifications", "count", n)
	}
	return nil
}

// purgeEvents deletes event-log rows older than the retention window.
func (s *Scheduler) purgeEvents() error {
	ctx := context.Background()
	queries := store.New(s.db)

	cutoff := time.Now().Add(-eventRetention)
	n, err := queries.PurgeEventsBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.Info("purged old events", "count", n, "older_than", cutoff.Format("2006-01-02"))
	}
	return nil
}

// sweepLinks runs the link checker over every stored URL and logs the
// broken ones.
func (s *Scheduler) sweepLinks() {
	ctx := context.Background()

	results, err := s.linkChecker.CheckAll(ctx)
	if err != nil {
		s.logger.Error("link sweep failed", "error", err)
		return
	}

	broken := 0
	for _, r := range results {
		if r.OK {
			continue
		}
		broken++
		s.logger.Warn("broken link",
			"url", r.URL,
			"status", r.StatusCode,
			"error", r.Error,
			"sources", r.Sources,
		)
	}
	s.logger.Info("link sweep finished", "checked", len(results), "broken", broken)
}
