// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"testing"
	"time"
)

func TestParseNullInt64(t *testing.T) {
	if v := ParseNullInt64("42"); !v.Valid || v.Int64 != 42 {
		t.Errorf("ParseNullInt64(42) = %+v", v)
	}
	for _, s := range []string{"", "0", "abc"} {
		if v := ParseNullInt64(s); v.Valid {
			t.Errorf("ParseNullInt64(%q) valid, want invalid", s)
		}
	}
}

func TestNullStringFromValue(t *testing.T) {
	if v := NullStringFromValue("x"); !v.Valid || v.String != "x" {
		t.Errorf("NullStringFromValue(x) = %+v", v)
	}
	if v := NullStringFromValue(""); v.Valid {
		t.Errorf("NullStringFromValue empty should be invalid, got %+v", v)
	}
}

func TestParseNullTime(t *testing.T) {
	v := ParseNullTime("2026-06-15T09:30")
	if !v.Valid {
		t.Fatal("datetime-local value not parsed")
	}
	want := time.Date(2026, 6, 15, 9, 30, 0, 0, time.UTC)
	if !v.Time.Equal(want) {
		t.Errorf("got %v, want %v", v.Time, want)
	}

	if v := ParseNullTime("2026-06-15"); !v.Valid {
		t.Error("date-only value not parsed")
	}
	if v := ParseNullTime(""); v.Valid {
		t.Error("empty string parsed as valid time")
	}
	if v := ParseNullTime("not-a-date"); v.Valid {
		t.Error("garbage parsed as valid time")
	}
}
