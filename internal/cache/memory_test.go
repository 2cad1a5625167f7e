// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewSimpleMemoryCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get = %q, want %q", got, "v")
	}
}

func TestMemoryCache_Miss(t *testing.T) {
	c := NewSimpleMemoryCache(time.Minute)
	defer c.Close()

	if _, err := c.Get(context.Background(), "absent"); err != ErrCacheMiss {
		t.Errorf("Get = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewSimpleMemoryCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Millisecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, err := c.Get(ctx, "k"); err != ErrCacheMiss {
		t.Errorf("Get after expiry = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewSimpleMemoryCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	_ = c.Set(ctx, "k", []byte("v"), 0)
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if has, _ := c.Has(ctx, "k"); has {
		t.Error("key still present after Delete")
	}
}

func TestMemoryCache_DeleteByPrefix(t *testing.T) {
	c := NewSimpleMemoryCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	_ = c.Set(ctx, "active:utility_bar", []byte("a"), 0)
	_ = c.Set(ctx, "active:header_info", []byte("b"), 0)
	_ = c.Set(ctx, "sitecontext", []byte("c"), 0)

	if err := c.DeleteByPrefix(ctx, "active:"); err != nil {
		t.Fatalf("DeleteByPrefix error: %v", err)
	}

	if has, _ := c.Has(ctx, "active:utility_bar"); has {
		t.Error("prefixed key survived DeleteByPrefix")
	}
	if has, _ := c.Has(ctx, "sitecontext"); !has {
		t.Error("unrelated key removed by DeleteByPrefix")
	}
}

func TestMemoryCache_Closed(t *testing.T) {
	c := NewSimpleMemoryCache(time.Minute)
	_ = c.Close()

	if _, err := c.Get(context.Background(), "k"); err != ErrCacheClosed {
		t.Errorf("Get after Close = %v, want ErrCacheClosed", err)
	}
	if err := c.Set(context.Background(), "k", nil, 0); err != ErrCacheClosed {
		t.Errorf("Set after Close = %v, want ErrCacheClosed", err)
	}
}

func TestMemoryCache_Stats(t *testing.T) {
	c := NewSimpleMemoryCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	_ = c.Set(ctx, "k", []byte("v"), 0)
	_, _ = c.Get(ctx, "k")
	_, _ = c.Get(ctx, "missing")

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Sets != 1 {
		t.Errorf("Stats = %+v, want 1 hit, 1 miss, 1 set", stats)
	}
}

func TestTypedCache_RoundTrip(t *testing.T) {
	type payload struct {
		Name  string
		Count int
	}

	c := NewTypedCache[payload](NewSimpleMemoryCache(time.Minute), time.Minute)
	ctx := context.Background()

	if err := c.Set(ctx, "p", &payload{Name: "x", Count: 3}); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	got, ok := c.Get(ctx, "p")
	if !ok {
		t.Fatal("Get returned miss for stored key")
	}
	if got.Name != "x" || got.Count != 3 {
		t.Errorf("Get = %+v", got)
	}
}

func TestTypedCache_GetOrSet(t *testing.T) {
	c := NewTypedCache[int](NewSimpleMemoryCache(time.Minute), time.Minute)
	ctx := context.Background()

	calls := 0
	fn := func() (*int, error) {
		calls++
		v := 42
		return &v, nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrSet(ctx, "n", fn)
		if err != nil {
			t.Fatalf("GetOrSet error: %v", err)
		}
		if *v != 42 {
			t.Errorf("GetOrSet = %d, want 42", *v)
		}
	}
	if calls != 1 {
		t.Errorf("compute called %d times, want 1", calls)
	}
}
