// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/campuscms/campuscms/internal/model"
)

// familyInfo describes where a singleton-active family's rows live and
// how activation conflicts are resolved. scopeColumn narrows the
// invariant to rows matching scopeValue for tables shared by several
// families.
type familyInfo struct {
	Table       string
	Mode        model.ActivationMode
	ScopeColumn string
	ScopeValue  string
}

var familyRegistry = map[model.Family]familyInfo{
	model.FamilyUtilityBar:       {Table: "utility_bars", Mode: model.ModePromotional},
	model.FamilyHeaderInfo:       {Table: "header_infos", Mode: model.ModeStrict},
	model.FamilyNavbarInfo:       {Table: "navbar_infos", Mode: model.ModeStrict},
	model.FamilyCollegeInfo:      {Table: "college_infos", Mode: model.ModeStrict},
	model.FamilyDirectorMessage:  {Table: "leadership_messages", Mode: model.ModeStrict, ScopeColumn: "role", ScopeValue: model.RoleDirector},
	model.FamilyPrincipalMessage: {Table: "leadership_messages", Mode: model.ModeStrict, ScopeColumn: "role", ScopeValue: model.RolePrincipal},
	model.FamilyVisionMission:    {Table: "vision_missions", Mode: model.ModeStrict},
	model.FamilyHeroCarousel:     {Table: "hero_carousel_settings", Mode: model.ModePromotional},
}

func init() {
	for _, f := range model.PanelFamilies {
		familyRegistry[f] = familyInfo{
			Table: "config_panels", Mode: model.ModePromotional,
			ScopeColumn: "family", ScopeValue: string(f),
		}
	}
}

// FamilyMode returns the activation mode of a registered family.
func FamilyMode(f model.Family) (model.ActivationMode, error) {
	info, ok := familyRegistry[f]
	if !ok {
		return "", fmt.Errorf("unknown family %q", f)
	}
	return info.Mode, nil
}

// Families returns every registered family name.
func Families() []model.Family {
	out := make([]model.Family, 0, len(familyRegistry))
	for f := range familyRegistry {
		out = append(out, f)
	}
	return out
}

func (info familyInfo) where(cond string, args ...any) (string, []any) {
	if info.ScopeColumn == "" {
		return cond, args
	}
	return cond + " AND " + info.ScopeColumn + " = ?", append(args, info.ScopeValue)
}

// CountActiveInFamily counts active records in a family excluding one id.
func (q *Queries) CountActiveInFamily(ctx context.Context, f model.Family, excludeID int64) (int64, error) {
	info, ok := familyRegistry[f]
	if !ok {
		return 0, fmt.Errorf("unknown family %q", f)
	}
	cond, args := info.where("is_active = 1 AND id != ?", excludeID)
	var n int64
	err := q.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM "+info.Table+" WHERE "+cond, args...).Scan(&n)
	return n, err
}

// ListActiveIDsInFamily returns the ids of active records in a family,
// most recently updated first. Used for multi-active recovery.
func (q *Queries) ListActiveIDsInFamily(ctx context.Context, f model.Family) ([]int64, error) {
	info, ok := familyRegistry[f]
	if !ok {
		return nil, fmt.Errorf("unknown family %q", f)
	}
	cond, args := info.where("is_active = 1")
	rows, err := q.db.QueryContext(ctx,
		"SELECT id FROM "+info.Table+" WHERE "+cond+" ORDER BY updated_at DESC, id DESC",
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DemoteFamily clears the active flag on every record of a family
// except the given id, and reports how many rows were demoted.
func (q *Queries) DemoteFamily(ctx context.Context, f model.Family, keepID int64) (int64, error) {
	info, ok := familyRegistry[f]
	if !ok {
		return 0, fmt.Errorf("unknown family %q", f)
	}
	cond, args := info.where("is_active = 1 AND id != ?", time.Now(), keepID)
	res, err := q.db.ExecContext(ctx,
		"UPDATE "+info.Table+" SET is_active = 0, updated_at = ? WHERE "+cond, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// PromoteRecord sets the active flag on one record of a family.
func (q *Queries) PromoteRecord(ctx context.Context, f model.Family, id int64) error {
	info, ok := familyRegistry[f]
	if !ok {
		return fmt.Errorf("unknown family %q", f)
	}
	cond, args := info.where("id = ?", time.Now(), id)
	res, err := q.db.ExecContext(ctx,
		"UPDATE "+info.Table+" SET is_active = 1, updated_at = ? WHERE "+cond, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("family %s: record %d not found", f, id)
	}
	return nil
}

// DeactivateRecord clears the active flag on one record of a family.
func (q *Queries) DeactivateRecord(ctx context.Context, f model.Family, id int64) error {
	info, ok := familyRegistry[f]
	if !ok {
		return fmt.Errorf("unknown family %q", f)
	}
	cond, args := info.where("id = ?", time.Now(), id)
	_, err := q.db.ExecContext(ctx,
		"UPDATE "+info.Table+" SET is_active = 0, updated_at = ? WHERE "+cond, args...)
	return err
}
