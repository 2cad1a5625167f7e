// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestSecurityHeaders_Production(t *testing.T) {
	handler := SecurityHeaders(DefaultSecurityHeadersConfig(false))(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if csp := rec.Header().Get("Content-Security-Policy"); !strings.Contains(csp, "default-src 'self'") {
		t.Errorf("CSP missing default-src: %q", csp)
	}
	hsts := rec.Header().Get("Strict-Transport-Security")
	if !strings.Contains(hsts, "max-age=31536000") || !strings.Contains(hsts, "includeSubDomains") {
		t.Errorf("HSTS = %q", hsts)
	}
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "SAMEORIGIN" {
		t.Errorf("X-Frame-Options = %q", got)
	}
}

func TestSecurityHeaders_Development_NoHSTS(t *testing.T) {
	handler := SecurityHeaders(DefaultSecurityHeadersConfig(true))(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if hsts := rec.Header().Get("Strict-Transport-Security"); hsts != "" {
		t.Errorf("expected no HSTS header in dev mode, got %q", hsts)
	}
}

func TestAllowedHosts(t *testing.T) {
	testCases := []struct {
		name       string
		allowed    []string
		host       string
		wantStatus int
	}{
		{"empty list allows all", nil, "anything.example.com", http.StatusOK},
		{"exact match", []string{"cms.example.edu"}, "cms.example.edu", http.StatusOK},
		{"exact match with port", []string{"cms.example.edu"}, "cms.example.edu:8080", http.StatusOK},
		{"mismatch rejected", []string{"cms.example.edu"}, "evil.example.com", http.StatusBadRequest},
		{"wildcard allows all", []string{"*"}, "anything.example.com", http.StatusOK},
		{"dot prefix matches subdomain", []string{".example.edu"}, "www.example.edu", http.StatusOK},
		{"dot prefix matches bare domain", []string{".example.edu"}, "example.edu", http.StatusOK},
		{"dot prefix rejects other domain", []string{".example.edu"}, "example.com", http.StatusBadRequest},
		{"case insensitive", []string{"CMS.Example.edu"}, "cms.example.EDU", http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := AllowedHosts(tc.allowed)(okHandler())

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Host = tc.host
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, r)

			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}

func TestStripTrailingSlash(t *testing.T) {
	handler := StripTrailingSlash(okHandler())

	testCases := []struct {
		path       string
		wantStatus int
		wantLoc    string
	}{
		{"/", http.StatusOK, ""},
		{"/about", http.StatusOK, ""},
		{"/about/", http.StatusMovedPermanently, "/about"},
		{"/a/b/c/", http.StatusMovedPermanently, "/a/b/c"},
	}

	for _, tc := range testCases {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))

		if rec.Code != tc.wantStatus {
			t.Errorf("path %q: status = %d, want %d", tc.path, rec.Code, tc.wantStatus)
		}
		if tc.wantLoc != "" {
			if loc := rec.Header().Get("Location"); loc != tc.wantLoc {
				t.Errorf("path %q: Location = %q, want %q", tc.path, loc, tc.wantLoc)
			}
		}
	}
}

func TestStripTrailingSlash_PreservesQuery(t *testing.T) {
	handler := StripTrailingSlash(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notices/?page=2", nil))

	if loc := rec.Header().Get("Location"); loc != "/notices?page=2" {
		t.Errorf("Location = %q, want /notices?page=2", loc)
	}
}
