// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "testing"

func TestIsValidLinkURL(t *testing.T) {
	valid := []string{
		"https://example.edu",
		"http://example.edu/page",
		"/notices",
		"/departments/physics",
		"#admissions",
	}
	for _, s := range valid {
		if !IsValidLinkURL(s) {
			t.Errorf("IsValidLinkURL(%q) = false, want true", s)
		}
	}

	invalid := []string{
		"",
		"javascript:alert(1)",
		"ftp://example.edu/file",
		"example.edu",
		"https://",
	}
	for _, s := range invalid {
		if IsValidLinkURL(s) {
			t.Errorf("IsValidLinkURL(%q) = true, want false", s)
		}
	}
}

func TestIsAbsoluteURL(t *testing.T) {
	if !IsAbsoluteURL("https://example.edu/a") {
		t.Error("absolute https URL rejected")
	}
	if IsAbsoluteURL("/relative") {
		t.Error("relative path accepted as absolute")
	}
	if IsAbsoluteURL("mailto:dean@example.edu") {
		t.Error("mailto accepted as absolute")
	}
}

func TestIsValidHexColor(t *testing.T) {
	valid := []string{"#fff", "#FFFFFF", "#1e3a8a", "#A1b"}
	for _, s := range valid {
		if !IsValidHexColor(s) {
			t.Errorf("IsValidHexColor(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "fff", "#ffff", "#gggggg", "#12345", "blue"}
	for _, s := range invalid {
		if IsValidHexColor(s) {
			t.Errorf("IsValidHexColor(%q) = true, want false", s)
		}
	}
}
