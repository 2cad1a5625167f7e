// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"
	"strings"
)

// formString returns a trimmed form value.
func formString(r *http.Request, name string) string {
	return strings.TrimSpace(r.FormValue(name))
}

// formBool interprets a checkbox form value.
func formBool(r *http.Request, name string) bool {
	switch r.FormValue(name) {
	case "on", "true", "1":
		return true
	}
	return false
}

// formInt64 parses an integer form value, falling back to def.
func formInt64(r *http.Request, name string, def int64) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(r.FormValue(name)), 10, 64)
	if err != nil {
		return def
	}
	return v
}
