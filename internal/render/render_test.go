// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
)

func testTemplatesFS() fstest.MapFS {
	return fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{
			Data: []byte(`{{define "base"}}<html><body>{{template "content" .}}</body></html>{{end}}`),
		},
		"layouts/site.html": &fstest.MapFile{
			Data: []byte(`{{define "chrome"}}site{{end}}`),
		},
		"layouts/admin.html": &fstest.MapFile{
			Data: []byte(`{{define "adminchrome"}}admin{{end}}`),
		},
		"site/home.html": &fstest.MapFile{
			Data: []byte(`{{define "content"}}<h1>{{.Title}}</h1>{{end}}`),
		},
		"admin/dashboard.html": &fstest.MapFile{
			Data: []byte(`{{define "content"}}dash {{.Flash}}{{end}}`),
		},
		"auth/login.html": &fstest.MapFile{
			Data: []byte(`{{define "content"}}login{{end}}`),
		},
	}
}

func TestNew_ParsesAllGroups(t *testing.T) {
	r, err := New(Config{TemplatesFS: testTemplatesFS()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, name := range []string{"site/home", "admin/dashboard", "auth/login"} {
		if _, ok := r.templates[name]; !ok {
			t.Errorf("template %q not parsed", name)
		}
	}
}

func TestRender(t *testing.T) {
	r, err := New(Config{TemplatesFS: testTemplatesFS()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)

	if err := r.Render(w, req, "site/home", TemplateData{Title: "Welcome"}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	body := w.Body.String()
	if !strings.Contains(body, "<h1>Welcome</h1>") {
		t.Errorf("body = %q, want the page title", body)
	}
	if got := w.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", got)
	}
}

func TestRender_UnknownTemplate(t *testing.T) {
	r, err := New(Config{TemplatesFS: testTemplatesFS()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)

	if err := r.Render(w, req, "site/missing", TemplateData{}); err == nil {
		t.Error("Render(missing) succeeded, want error")
	}
}
