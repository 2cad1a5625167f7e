// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/campuscms/campuscms/internal/store"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "campus-scheduler-test-*.db")
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
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExpireNotifications(t *testing.T) {
	db := testDB(t)
	q := store.New(db)
	ctx := context.Background()

	now := time.Now()
	if _, err := q.CreateNotification(ctx, store.CreateNotificationParams{
		Message:   "ended",
		StartDate: now.Add(-2 * time.Hour),
		EndDate:   sql.NullTime{Time: now.Add(-time.Hour), Valid: true},
		IsActive:  true,
	}); err != nil {
		t.Fatalf("CreateNotification: %v", err)
	}
	if _, err := q.CreateNotification(ctx, store.CreateNotificationParams{
		Message:   "running",
		StartDate: now.Add(-time.Hour),
		IsActive:  true,
	}); err != nil {
		t.Fatalf("CreateNotification: %v", err)
	}

	s := New(db, testLogger(), nil)
	if err := s.expireNotifications(); err != nil {
		t.Fatalf("expireNotifications: %v", err)
	}

	current, err := q.ListCurrentNotifications(ctx, now)
	if err != nil {
		t.Fatalf("ListCurrentNotifications: %v", err)
	}
	if len(current) != 1 || current[0].Message != "running" {
		t.Errorf("current = %v, want only the running notification", current)
	}
}

func TestStartStop(t *testing.T) {
	db := testDB(t)

	s := New(db, testLogger(), nil)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Stop()
}
