// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/campuscms/campuscms/internal/model"
	"github.com/campuscms/campuscms/internal/store"
)

const defaultLinkCheckTimeout = 10 * time.Second

// LinkResult is the outcome of checking one stored URL.
type LinkResult struct {
	URL        string
	Sources    []string
	StatusCode int
	OK         bool
	Error      string
	Duration   time.Duration
}

// LinkChecker probes every external URL stored in navigation records.
// Checks run against a snapshot read up front, so no database locks are
// held while requests are in flight.
type LinkChecker struct {
	queries *store.Queries
	client  *http.Client
	timeout time.Duration
}

// NewLinkChecker creates a LinkChecker. A non-positive timeout falls
// back to the default per-URL timeout.
func NewLinkChecker(queries *store.Queries, timeout time.Duration) *LinkChecker {
	if timeout <= 0 {
		timeout = defaultLinkCheckTimeout
	}
	return &LinkChecker{
		queries: queries,
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// CheckAll collects the external URLs from menu items, side-menu items
// and utility-bar custom links, then issues a HEAD request per unique
// URL. Results come back sorted by URL.
func (c *LinkChecker) CheckAll(ctx context.Context) ([]LinkResult, error) {
	targets, err := c.collect(ctx)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(targets))
	for u := range targets {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	results := make([]LinkResult, 0, len(urls))
	for _, u := range urls {
		res := c.check(ctx, u)
		res.Sources = targets[u]
		results = append(results, res)
	}
	return results, nil
}

// collect snapshots every stored external URL, keyed by URL with the
// human-readable places it appears.
func (c *LinkChecker) collect(ctx context.Context) (map[string][]string, error) {
	targets := make(map[string][]string)
	add := func(u, source string) {
		if u == "" {
			return
		}
		targets[u] = append(targets[u], source)
	}

	menus, err := c.queries.ListMenus(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range menus {
		items, err := c.queries.ListMenuItems(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			if it.LinkType == model.LinkExternal {
				add(it.ExternalURL, "menu "+m.Title+": "+it.Title)
			}
		}
	}

	sideMenus, err := c.queries.ListSideMenus(ctx)
	if err != nil {
		return nil, err
	}
	for _, sm := range sideMenus {
		items, err := c.queries.ListSideMenuItems(ctx, sm.ID)
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			if it.LinkType == model.LinkExternal {
				add(it.ExternalURL, "side menu "+sm.Name+": "+it.Title)
			}
		}
	}

	bar, err := c.queries.GetActiveUtilityBar(ctx)
	if err == nil {
		links, err := c.queries.ListActiveCustomLinks(ctx, bar.ID)
		if err != nil {
			return nil, err
		}
		for _, l := range links {
			add(l.URL, "utility bar: "+l.Text)
		}
	}

	return targets, nil
}

// check issues a single HEAD request with the per-URL timeout.
func (c *LinkChecker) check(ctx context.Context, url string) LinkResult {
	started := time.Now()
	res := LinkResult{URL: url}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodHead, url, nil)
	if err != nil {
		res.Error = "invalid URL: " + err.Error()
		res.Duration = time.Since(started)
		return res
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible)")

	resp, err := c.client.Do(req)
	if err != nil {
		res.Error = "request failed: " + err.Error()
		res.Duration = time.Since(started)
		return res
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	res.StatusCode = resp.StatusCode
	// Some servers reject HEAD outright; do not report those as broken.
	res.OK = resp.StatusCode < 400 || resp.StatusCode == http.StatusMethodNotAllowed
	res.Duration = time.Since(started)
	return res
}
