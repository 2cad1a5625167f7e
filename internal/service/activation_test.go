// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/store"
)

func TestActivate_PromotionalDemotesIncumbent(t *testing.T) {
	db := testDB(t)
	q := store.New(db)
	ctx := context.Background()

	a, err := q.CreateUtilityBar(ctx, model.UtilityBar{Name: "Bar A"})
	if err != nil {
		t.Fatalf("CreateUtilityBar: %v", err)
	}
	b, err := q.CreateUtilityBar(ctx, model.UtilityBar{Name: "Bar B"})
	if err != nil {
		t.Fatalf("CreateUtilityBar: %v", err)
	}

	svc := NewActivationService(db, nil)

	if err := svc.Activate(ctx, model.FamilyUtilityBar, a.ID); err != nil {
		t.Fatalf("Activate(a): %v", err)
	}
	if err := svc.Activate(ctx, model.FamilyUtilityBar, b.ID); err != nil {
		t.Fatalf("Activate(b): %v", err)
	}

	got, err := q.GetUtilityBarByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetUtilityBarByID: %v", err)
	}
	if got.IsActive {
		t.Error("bar A still active after promoting B")
	}

	active, err := q.GetActiveUtilityBar(ctx)
	if err != nil {
		t.Fatalf("GetActiveUtilityBar: %v", err)
	}
	if active.ID != b.ID {
		t.Errorf("active bar id = %d, want %d", active.ID, b.ID)
	}

	n, err := q.CountActiveInFamily(ctx, model.FamilyUtilityBar, 0)
	if err != nil {
		t.Fatalf("CountActiveInFamily: %v", err)
	}
	if n != 1 {
		t.Errorf("active count = %d, want 1", n)
	}
}

func TestActivate_StrictRejectsSecondActive(t *testing.T) {
	db := testDB(t)
	q := store.New(db)
	ctx := context.Background()

	a, err := q.CreateHeaderInfo(ctx, model.HeaderInfo{CollegeName: "Header A"})
	if err != nil {
		t.Fatalf("CreateHeaderInfo: %v", err)
	}
	b, err := q.CreateHeaderInfo(ctx, model.HeaderInfo{CollegeName: "Header B"})
	if err != nil {
		t.Fatalf("CreateHeaderInfo: %v", err)
	}

	svc := NewActivationService(db, nil)

	if err := svc.Activate(ctx, model.FamilyHeaderInfo, a.ID); err != nil {
		t.Fatalf("Activate(a): %v", err)
	}

	err = svc.Activate(ctx, model.FamilyHeaderInfo, b.ID)
	if err == nil {
		t.Fatal("Activate(b) succeeded, want rejection")
	}
	fe, ok := AsFieldErrors(err)
	if !ok {
		t.Fatalf("Activate(b) err = %T, want FieldErrors", err)
	}
	if fe["is_active"] == "" {
		t.Errorf("FieldErrors missing is_active entry: %v", fe)
	}

	// The incumbent is untouched.
	active, err := q.GetActiveHeaderInfo(ctx)
	if err != nil {
		t.Fatalf("GetActiveHeaderInfo: %v", err)
	}
	if active.ID != a.ID {
		t.Errorf("active header id = %d, want %d", active.ID, a.ID)
	}
}

func TestActivate_StrictConcurrent(t *testing.T) {
	db := testDB(t)
	q := store.New(db)
	ctx := context.Background()

	a, err := q.CreateHeaderInfo(ctx, model.HeaderInfo{CollegeName: "Header A"})
	if err != nil {
		t.Fatalf("CreateHeaderInfo: %v", err)
	}
	b, err := q.CreateHeaderInfo(ctx, model.HeaderInfo{CollegeName: "Header B"})
	if err != nil {
		t.Fatalf("CreateHeaderInfo: %v", err)
	}

	svc := NewActivationService(db, nil)

	// Racing activations may each win or lose, but the family must
	// never end up with two active records.
	var wg sync.WaitGroup
	for _, id := range []int64{a.ID, b.ID} {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_ = svc.Activate(ctx, model.FamilyHeaderInfo, id)
		}(id)
	}
	wg.Wait()

	n, err := q.CountActiveInFamily(ctx, model.FamilyHeaderInfo, 0)
	if err != nil {
		t.Fatalf("CountActiveInFamily: %v", err)
	}
	if n != 1 {
		t.Errorf("active count = %d, want 1", n)
	}
}

func TestActivate_Idempotent(t *testing.T) {
	db := testDB(t)
	q := store.New(db)
	ctx := context.Background()

	a, err := q.CreateHeaderInfo(ctx, model.HeaderInfo{CollegeName: "Header"})
	if err != nil {
		t.Fatalf("CreateHeaderInfo: %v", err)
	}

	svc := NewActivationService(db, nil)

	for i := 0; i < 2; i++ {
		if err := svc.Activate(ctx, model.FamilyHeaderInfo, a.ID); err != nil {
			t.Fatalf("Activate attempt %d: %v", i+1, err)
		}
	}

	n, err := q.CountActiveInFamily(ctx, model.FamilyHeaderInfo, 0)
	if err != nil {
		t.Fatalf("CountActiveInFamily: %v", err)
	}
	if n != 1 {
		t.Errorf("active count = %d, want 1", n)
	}
}

func TestActivate_UnknownFamily(t *testing.T) {
	db := testDB(t)
	svc := NewActivationService(db, nil)

	if err := svc.Activate(context.Background(), model.Family("nope"), 1); err == nil {
		t.Error("Activate(unknown family) succeeded, want error")
	}
}

func TestActivate_ScopedFamilies(t *testing.T) {
	db := testDB(t)
	q := store.New(db)
	ctx := context.Background()

	director, err := q.CreateLeadershipMessage(ctx, model.LeadershipMessage{Role: model.RoleDirector, Name: "Dr. A"})
	if err != nil {
		t.Fatalf("CreateLeadershipMessage: %v", err)
	}
	principal, err := q.CreateLeadershipMessage(ctx, model.LeadershipMessage{Role: model.RolePrincipal, Name: "Dr. B"})
	if err != nil {
		t.Fatalf("CreateLeadershipMessage: %v", err)
	}

	svc := NewActivationService(db, nil)

	// The two roles are independent families even though they share a
	// table, so both may hold an active record at once.
	if err := svc.Activate(ctx, model.FamilyDirectorMessage, director.ID); err != nil {
		t.Fatalf("Activate(director): %v", err)
	}
	if err := svc.Activate(ctx, model.FamilyPrincipalMessage, principal.ID); err != nil {
		t.Fatalf("Activate(principal): %v", err)
	}

	for _, role := range []string{model.RoleDirector, model.RolePrincipal} {
		if _, err := q.GetActiveLeadershipMessage(ctx, role); err != nil {
			t.Errorf("GetActiveLeadershipMessage(%s): %v", role, err)
		}
	}
}

func TestDeactivate(t *testing.T) {
	db := testDB(t)
	q := store.New(db)
	ctx := context.Background()

	a, err := q.CreateUtilityBar(ctx, model.UtilityBar{Name: "Bar"})
	if err != nil {
		t.Fatalf("CreateUtilityBar: %v", err)
	}

	svc := NewActivationService(db, nil)

	if err := svc.Activate(ctx, model.FamilyUtilityBar, a.ID); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if err := svc.Deactivate(ctx, model.FamilyUtilityBar, a.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	n, err := q.CountActiveInFamily(ctx, model.FamilyUtilityBar, 0)
	if err != nil {
		t.Fatalf("CountActiveInFamily: %v", err)
	}
	if n != 0 {
		t.Errorf("active count = %d, want 0 (no auto-promotion)", n)
	}
}

func TestRecover_KeepsMostRecent(t *testing.T) {
	db := testDB(t)
	q := store.New(db)
	ctx := context.Background()

	var ids []int64
	for _, name := range []string{"First", "Second", "Third"} {
		bar, err := q.CreateUtilityBar(ctx, model.UtilityBar{Name: name})
		if err != nil {
			t.Fatalf("CreateUtilityBar(%s): %v", name, err)
		}
		ids = append(ids, bar.ID)
	}

	// Force the anomaly by promoting all three directly, with distinct
	// update times.
	for _, id := range ids {
		if err := q.PromoteRecord(ctx, model.FamilyUtilityBar, id); err != nil {
			t.Fatalf("PromoteRecord(%d): %v", id, err)
		}
		time.Sleep(15 * time.Millisecond)
	}

	svc := NewActivationService(db, nil)

	kept, err := svc.Recover(ctx, model.FamilyUtilityBar)
	if err != nil {
		t.Fatalf("Recover: %v", err)
	}
	if kept != ids[2] {
		t.Errorf("kept id = %d, want %d (most recently updated)", kept, ids[2])
	}

	n, err := q.CountActiveInFamily(ctx, model.FamilyUtilityBar, 0)
	if err != nil {
		t.Fatalf("CountActiveInFamily: %v", err)
	}
	if n != 1 {
		t.Errorf("active count = %d, want 1", n)
	}

	// A healthy family is untouched.
	again, err := svc.Recover(ctx, model.FamilyUtilityBar)
	if err != nil {
		t.Fatalf("Recover (healthy): %v", err)
	}
	if again != kept {
		t.Errorf("second Recover kept %d, want %d", again, kept)
	}
}
