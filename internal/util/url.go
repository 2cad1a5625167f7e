// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"net/url"
	"strings"
)

// IsValidLinkURL reports whether s is acceptable as a stored link target:
// an absolute http(s) URL, a site-relative path starting with "/", or a
// fragment starting with "#".
func IsValidLinkURL(s string) bool {
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, "/") || strings.HasPrefix(s, "#") {
		return true
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsAbsoluteURL reports whether s parses as an absolute http(s) URL.
func IsAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
