// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/campuscms/campuscms/internal/cache"
	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/store"
)

// ActivationService enforces the singleton-active invariant across the
// configuration families. At most one record per family is active; how a
// second activation is handled depends on the family's mode. Strict
// families reject it with a field error, promotional families demote the
// incumbent inside the same transaction.
type ActivationService struct {
	db      *sql.DB
	queries *store.Queries
	records *cache.ActiveRecordCache
}

// NewActivationService creates an ActivationService. records may be nil
// when no cache is wired.
func NewActivationService(db *sql.DB, records *cache.ActiveRecordCache) *ActivationService {
	return &ActivationService{
		db:      db,
		queries: store.New(db),
		records: records,
	}
}

// Activate makes the record the active one in its family.
//
// Strict families fail with a FieldErrors naming the conflict when a
// competitor is already active; the operator must deactivate it first.
// Promotional families demote every competitor and promote the target in
// one transaction. Activating an already-active record is a no-op beyond
// cache invalidation, so repeated activation is idempotent.
func (s *ActivationService) Activate(ctx context.Context, f model.Family, id int64) error {
	mode, err := store.FamilyMode(f)
	if err != nil {
		return err
	}

	if mode == model.ModeStrict {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		qtx := s.queries.WithTx(tx)
		n, err := qtx.CountActiveInFamily(ctx, f, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return FieldErrors{
				"is_active": fmt.Sprintf("another %s record is already active; deactivate it first", f),
			}
		}
		if err := qtx.PromoteRecord(ctx, f, id); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		s.invalidate(ctx, f)
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	qtx := s.queries.WithTx(tx)
	if _, err := qtx.DemoteFamily(ctx, f, id); err != nil {
		return err
	}
	if err := qtx.PromoteRecord(ctx, f, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidate(ctx, f)
	return nil
}

// Deactivate clears the record's active flag. No competitor is promoted
// in its place.
func (s *ActivationService) Deactivate(ctx context.Context, f model.Family, id int64) error {
	if err := s.queries.DeactivateRecord(ctx, f, id); err != nil {
		return err
	}
	s.invalidate(ctx, f)
	return nil
}

// Invalidate drops the family's cached active record. Call it after any
// save or delete touching a family member.
func (s *ActivationService) Invalidate(ctx context.Context, f model.Family) {
	s.invalidate(ctx, f)
}

// Recover repairs a multi-active anomaly in a family: it keeps the most
// recently updated active record, demotes the rest, and logs a warning.
// Returns the id of the surviving record, or 0 when the family has no
// active record.
func (s *ActivationService) Recover(ctx context.Context, f model.Family) (int64, error) {
	ids, err := s.queries.ListActiveIDsInFamily(ctx, f)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	if len(ids) == 1 {
		return ids[0], nil
	}

	keep := ids[0]
	demoted, err := s.queries.DemoteFamily(ctx, f, keep)
	if err != nil {
		return 0, err
	}
	slog.Warn("recovered multi-active family",
		"category", model.EventCategoryConfig,
		"family", string(f),
		"kept_id", keep,
		"demoted", demoted,
	)
	s.invalidate(ctx, f)
	return keep, nil
}

func (s *ActivationService) invalidate(ctx context.Context, f model.Family) {
	if s.records != nil {
		s.records.Invalidate(ctx, f)
	}
}
