// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/campuscms/campuscms/internal/model"
)

const createEvent = `
INSERT INTO events (level, category, message, user_id, metadata, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`

// CreateEventParams holds the arguments for CreateEvent.
type CreateEventParams struct {
	Level    string
	Category string
	Message  string
	UserID   sql.NullInt64
	Metadata string
}

// CreateEvent appends an event log entry.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) error {
	metadata := arg.Metadata
	if metadata == "" {
		metadata = "{}"
	}
	_, err := q.db.ExecContext(ctx, createEvent,
		arg.Level, arg.Category, arg.Message, arg.UserID, metadata, time.Now())
	return err
}

const listEvents = `
SELECT id, level, category, message, user_id, metadata, created_at
FROM events ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?
`

// ListEvents returns a page of event log entries, newest first.
func (q *Queries) ListEvents(ctx context.Context, limit, offset int64) ([]model.Event, error) {
	rows, err := q.db.QueryContext(ctx, listEvents, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message,
			&e.UserID, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

const countEvents = `SELECT COUNT(*) FROM events`

// CountEvents returns the total number of event log entries.
func (q *Queries) CountEvents(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countEvents).Scan(&n)
	return n, err
}

const purgeEventsBefore = `DELETE FROM events WHERE created_at < ?`

// PurgeEventsBefore deletes entries older than the cutoff and reports
// how many were removed.
func (q *Queries) PurgeEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, purgeEventsBefore, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
