// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"errors"
	"sort"
	"strings"
)

// FieldErrors maps field names to human-readable validation messages.
// A write rejected with FieldErrors leaves the store untouched.
type FieldErrors map[string]string

// Error implements the error interface.
func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var sb strings.Builder
	for i, f := range fields {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(f)
		sb.WriteString(": ")
		sb.WriteString(e[f])
	}
	return sb.String()
}

// Add records a message for a field, keeping the first message when the
// field already has one.
func (e FieldErrors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// AsFieldErrors unwraps err as FieldErrors if one is in its chain.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
