// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/store"
)

// testDB creates a temporary test database with migrations applied.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "campus-logging-test-*.db")
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

// discardHandler is a slog.Handler that discards all logs.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

func TestEventLogHandler_Handle_ErrorLevel(t *testing.T) {
	db := testDB(t)

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))
	logger.Error("database connection failed", "host", "localhost")

	q := store.New(db)
	events, err := q.ListEvents(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Level != model.EventLevelError {
		t.Errorf("Level = %q, want %q", events[0].Level, model.EventLevelError)
	}
	if events[0].Message != "database connection failed" {
		t.Errorf("Message = %q", events[0].Message)
	}
}

func TestEventLogHandler_Handle_WarnLevel(t *testing.T) {
	db := testDB(t)

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))
	logger.Warn("slow query detected", "duration_ms", 5000)

	q := store.New(db)
	events, err := q.ListEvents(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Level != model.EventLevelWarning {
		t.Errorf("Level = %q, want %q", events[0].Level, model.EventLevelWarning)
	}
}

func TestEventLogHandler_Handle_InfoLevel_NotCaptured(t *testing.T) {
	db := testDB(t)

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))
	logger.Info("server started", "port", 8080)

	q := store.New(db)
	events, err := q.ListEvents(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected 0 events for INFO level, got %d", len(events))
	}
}

func TestEventLogHandler_Handle_CustomLevel(t *testing.T) {
	db := testDB(t)

	logger := slog.New(NewEventLogHandlerWithLevel(discardHandler{}, db, slog.LevelInfo))
	logger.Info("server started", "port", 8080)

	q := store.New(db)
	events, err := q.ListEvents(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("expected 1 event with custom INFO level, got %d", len(events))
	}
}

func TestEventLogHandler_CategoryInference(t *testing.T) {
	db := testDB(t)
	logger := slog.New(NewEventLogHandler(discardHandler{}, db))
	q := store.New(db)

	testCases := []struct {
		message          string
		expectedCategory string
	}{
		{"login attempt blocked", model.EventCategoryAuth},
		{"page not found", model.EventCategoryPage},
		{"menu tree rebuild failed", model.EventCategoryMenu},
		{"activation conflict detected", model.EventCategoryConfig},
		{"cache invalidation failed", model.EventCategoryCache},
		{"notification window invalid", model.EventCategoryContent},
		{"unexpected failure", model.EventCategorySystem},
	}

	for _, tc := range testCases {
		_, _ = db.Exec("DELETE FROM events")

		logger.Error(tc.message)

		events, _ := q.ListEvents(context.Background(), 1, 0)
		if len(events) != 1 {
			t.Errorf("message %q: expected 1 event, got %d", tc.message, len(events))
			continue
		}
		if events[0].Category != tc.expectedCategory {
			t.Errorf("message %q: Category = %q, want %q", tc.message, events[0].Category, tc.expectedCategory)
		}
	}
}

func TestEventLogHandler_ExplicitCategory(t *testing.T) {
	db := testDB(t)

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))
	logger.Error("something happened", "category", model.EventCategoryContent)

	q := store.New(db)
	events, _ := q.ListEvents(context.Background(), 1, 0)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Category != model.EventCategoryContent {
		t.Errorf("Category = %q, want %q", events[0].Category, model.EventCategoryContent)
	}
}

func TestEventLogHandler_MetadataExtraction(t *testing.T) {
	db := testDB(t)

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))
	logger.Error("request failed",
		"status_code", 500,
		"path", "/departments",
	)

	q := store.New(db)
	events, _ := q.ListEvents(context.Background(), 1, 0)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	metadata := events[0].Metadata
	if !strings.Contains(metadata, "status_code") || !strings.Contains(metadata, "path") {
		t.Errorf("Metadata missing attributes: %s", metadata)
	}
}

func TestEventLogHandler_MultipleEvents(t *testing.T) {
	db := testDB(t)

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))
	logger.Error("error 1")
	logger.Warn("warning 1")
	logger.Error("error 2")
	logger.Info("info 1") // below threshold

	q := store.New(db)
	count, err := q.CountEvents(context.Background())
	if err != nil {
		t.Fatalf("CountEvents: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 events, got %d", count)
	}
}

func TestEscapeJSON(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{`hello`, `hello`},
		{`hello "world"`, `hello \"world\"`},
		{`path\to\file`, `path\\to\\file`},
		{"line1\nline2", `line1\nline2`},
		{"col1\tcol2", `col1\tcol2`},
	}

	for _, tc := range testCases {
		if result := escapeJSON(tc.input); result != tc.expected {
			t.Errorf("escapeJSON(%q) = %q, want %q", tc.input, result, tc.expected)
		}
	}
}

func TestSlogLevelToEventLevel(t *testing.T) {
	testCases := []struct {
		level    slog.Level
		expected string
	}{
		{slog.LevelDebug, model.EventLevelInfo},
		{slog.LevelInfo, model.EventLevelInfo},
		{slog.LevelWarn, model.EventLevelWarning},
		{slog.LevelError, model.EventLevelError},
		{slog.LevelError + 4, model.EventLevelError},
	}

	for _, tc := range testCases {
		if result := slogLevelToEventLevel(tc.level); result != tc.expected {
			t.Errorf("slogLevelToEventLevel(%v) = %q, want %q", tc.level, result, tc.expected)
		}
	}
}
