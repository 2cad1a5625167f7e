// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import "testing"

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("changeme")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "" {
		t.Fatal("HashPassword returned empty hash")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("changeme")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	ok, err := CheckPassword("changeme", hash)
	if err != nil {
		t.Fatalf("CheckPassword error: %v", err)
	}
	if !ok {
		t.Error("correct password rejected")
	}

	ok, err = CheckPassword("wrong", hash)
	if err != nil {
		t.Fatalf("CheckPassword error: %v", err)
	}
	if ok {
		t.Error("wrong password accepted")
	}
}

func TestCheckPassword_InvalidHash(t *testing.T) {
	if _, err := CheckPassword("x", "not-a-hash"); err == nil {
		t.Error("expected error for malformed hash")
	}
	if _, err := CheckPassword("x", "$bcrypt$v=19$m=1,t=1,p=1$abc$def"); err == nil {
		t.Error("expected error for unsupported hash type")
	}
}

func TestNeedsRehash(t *testing.T) {
	hash, err := HashPassword("changeme")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if NeedsRehash(hash) {
		t.Error("fresh hash reported as needing rehash")
	}
	if !NeedsRehash("$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA") {
		t.Error("weak hash not reported as needing rehash")
	}
}
