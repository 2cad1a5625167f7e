// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"errors"
	"fmt"
	"testing"
)

func TestFieldErrors_Error(t *testing.T) {
	fe := FieldErrors{}
	fe.Add("slug", "already in use")
	fe.Add("end_date", "must not precede start date")
	fe.Add("slug", "second message is ignored")

	if fe["slug"] != "already in use" {
		t.Errorf("slug message = %q, want the first one kept", fe["slug"])
	}

	want := "end_date: must not precede start date; slug: already in use"
	if got := fe.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestAsFieldErrors(t *testing.T) {
	fe := FieldErrors{"title": "required"}

	got, ok := AsFieldErrors(fe)
	if !ok || got["title"] != "required" {
		t.Errorf("AsFieldErrors(direct) = %v, %v", got, ok)
	}

	wrapped := fmt.Errorf("saving record: %w", fe)
	got, ok = AsFieldErrors(wrapped)
	if !ok || got["title"] != "required" {
		t.Errorf("AsFieldErrors(wrapped) = %v, %v", got, ok)
	}

	if _, ok := AsFieldErrors(errors.New("plain")); ok {
		t.Error("AsFieldErrors(plain error) = true, want false")
	}
}
