// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestProtection() *LoginProtection {
	return NewLoginProtection(LoginProtectionConfig{
		IPRateLimit:       100, // effectively unlimited for tests
		IPBurst:           100,
		MaxFailedAttempts: 3,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})
}

func TestLoginProtection_LockAfterMaxFailures(t *testing.T) {
	lp := newTestProtection()
	email := "user@example.edu"

	for i := 0; i < 2; i++ {
		if locked, _ := lp.RecordFailedAttempt(email); locked {
			t.Fatalf("locked after %d attempts, want 3", i+1)
		}
	}

	locked, dur := lp.RecordFailedAttempt(email)
	if !locked {
		t.Fatal("expected lockout after 3 failed attempts")
	}
	if dur != time.Minute {
		t.Errorf("lock duration = %v, want 1m", dur)
	}

	isLocked, remaining := lp.IsAccountLocked(email)
	if !isLocked {
		t.Error("account should be locked")
	}
	if remaining <= 0 || remaining > time.Minute {
		t.Errorf("remaining = %v", remaining)
	}
}

func TestLoginProtection_ExponentialBackoff(t *testing.T) {
	lp := newTestProtection()
	email := "repeat@example.edu"

	// First lockout: 1 minute
	for i := 0; i < 3; i++ {
		lp.RecordFailedAttempt(email)
	}
	// Second lockout should double
	var dur time.Duration
	var locked bool
	for i := 0; i < 3; i++ {
		locked, dur = lp.RecordFailedAttempt(email)
	}
	if !locked {
		t.Fatal("expected second lockout")
	}
	if dur != 2*time.Minute {
		t.Errorf("second lock duration = %v, want 2m", dur)
	}
}

func TestLoginProtection_SuccessClearsAttempts(t *testing.T) {
	lp := newTestProtection()
	email := "user@example.edu"

	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)
	lp.RecordSuccessfulLogin(email)

	if got := lp.GetRemainingAttempts(email); got != 3 {
		t.Errorf("remaining attempts = %d, want 3", got)
	}
}

func TestLoginProtection_RemainingAttempts(t *testing.T) {
	lp := newTestProtection()
	email := "user@example.edu"

	if got := lp.GetRemainingAttempts(email); got != 3 {
		t.Errorf("initial remaining = %d, want 3", got)
	}
	lp.RecordFailedAttempt(email)
	if got := lp.GetRemainingAttempts(email); got != 2 {
		t.Errorf("after 1 failure remaining = %d, want 2", got)
	}
}

func TestLoginProtection_Middleware_OnlyLimitsPost(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		IPRateLimit: 0.001, // nearly everything blocked
		IPBurst:     1,
	})
	handler := lp.Middleware()(okHandler())

	// First POST consumes the burst
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/login", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("first POST status = %d", rec.Code)
	}

	// Second POST is rate limited
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/login", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second POST status = %d, want 429", rec.Code)
	}

	// GET requests are never rate limited
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/login", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET status = %d, want 200", rec.Code)
	}
}

func TestGlobalRateLimiter(t *testing.T) {
	rl := NewGlobalRateLimiter(0.001, 2)
	handler := rl.Middleware()(okHandler())

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", rec.Code)
	}
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	if got := getClientIP(r); got != "10.0.0.1:1234" {
		t.Errorf("RemoteAddr fallback = %q", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.7")
	if got := getClientIP(r); got != "203.0.113.7" {
		t.Errorf("X-Forwarded-For = %q", got)
	}

	r.Header.Set("X-Real-IP", "198.51.100.2")
	if got := getClientIP(r); got != "198.51.100.2" {
		t.Errorf("X-Real-IP = %q", got)
	}
}
