// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "regexp"

// hexColorRegex matches #RGB and #RRGGBB hex color codes.
var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// IsValidHexColor reports whether s is a well-formed hex color code.
func IsValidHexColor(s string) bool {
	return hexColorRegex.MatchString(s)
}
