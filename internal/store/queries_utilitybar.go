// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/campuscms/campuscms/internal/model"
)

const utilityBarColumns = `id, name, is_active, background_color, text_color, height, position,
show_social_icons, enable_facebook, facebook_url, enable_twitter, twitter_url,
enable_instagram, instagram_url, enable_youtube, youtube_url, enable_linkedin, linkedin_url,
show_contact_info, contact_phone, contact_email, show_custom_links,
link1_text, link1_url, link2_text, link2_url, link3_text, link3_url,
show_on_mobile, mobile_collapsed, created_at, updated_at`

const createUtilityBar = `
INSERT INTO utility_bars (name, is_active, background_color, text_color, height, position,
	show_social_icons, enable_facebook, facebook_url, enable_twitter, twitter_url,
	enable_instagram, instagram_url, enable_youtube, youtube_url, enable_linkedin, linkedin_url,
	show_contact_info, contact_phone, contact_email, show_custom_links,
	link1_text, link1_url, link2_text, link2_url, link3_text, link3_url,
	show_on_mobile, mobile_collapsed, created_at, updated_at)
VALUES (?, 0, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + utilityBarColumns

// CreateUtilityBar inserts a utility bar in the inactive state and
// returns the stored row. Activation goes through the activation engine.
func (q *Queries) CreateUtilityBar(ctx context.Context, b model.UtilityBar) (model.UtilityBar, error) {
	now := time.Now()
	row := q.db.QueryRowContext(ctx, createUtilityBar,
		b.Name, b.BackgroundColor, b.TextColor, b.Height, b.Position,
		b.ShowSocialIcons, b.EnableFacebook, b.FacebookURL, b.EnableTwitter, b.TwitterURL,
		b.EnableInstagram, b.InstagramURL, b.EnableYouTube, b.YouTubeURL,
		b.EnableLinkedIn, b.LinkedInURL,
		b.ShowContactInfo, b.ContactPhone, b.ContactEmail, b.ShowCustomLinks,
		b.Link1Text, b.Link1URL, b.Link2Text, b.Link2URL, b.Link3Text, b.Link3URL,
		b.ShowOnMobile, b.MobileCollapsed, now, now)
	return scanUtilityBar(row)
}

const getUtilityBarByID = `SELECT ` + utilityBarColumns + ` FROM utility_bars WHERE id = ?`

// GetUtilityBarByID returns the utility bar with the given id.
func (q *Queries) GetUtilityBarByID(ctx context.Context, id int64) (model.UtilityBar, error) {
	return scanUtilityBar(q.db.QueryRowContext(ctx, getUtilityBarByID, id))
}

const getActiveUtilityBar = `
SELECT ` + utilityBarColumns + ` FROM utility_bars
WHERE is_active = 1 ORDER BY updated_at DESC, id DESC LIMIT 1`

// GetActiveUtilityBar returns the most recently updated active utility bar.
func (q *Queries) GetActiveUtilityBar(ctx context.Context) (model.UtilityBar, error) {
	return scanUtilityBar(q.db.QueryRowContext(ctx, getActiveUtilityBar))
}

const listUtilityBars = `
SELECT ` + utilityBarColumns + ` FROM utility_bars ORDER BY updated_at DESC, id DESC`

// ListUtilityBars returns every utility bar, most recently updated first.
func (q *Queries) ListUtilityBars(ctx context.Context) ([]model.UtilityBar, error) {
	rows, err := q.db.QueryContext(ctx, listUtilityBars)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bars []model.UtilityBar
	for rows.Next() {
		b, err := scanUtilityBar(rows)
		if err != nil {
			return nil, err
		}
		bars = append(bars, b)
	}
	return bars, rows.Err()
}

const updateUtilityBar = `
UPDATE utility_bars SET name = ?, background_color = ?, text_color = ?, height = ?,
	position = ?, show_social_icons = ?, enable_facebook = ?, facebook_url = ?,
	enable_twitter = ?, twitter_url = ?, enable_instagram = ?, instagram_url = ?,
	enable_youtube = ?, youtube_url = ?, enable_linkedin = ?, linkedin_url = ?,
	show_contact_info = ?, contact_phone = ?, contact_email = ?, show_custom_links = ?,
	link1_text = ?, link1_url = ?, link2_text = ?, link2_url = ?, link3_text = ?, link3_url = ?,
	show_on_mobile = ?, mobile_collapsed = ?, updated_at = ?
WHERE id = ?
RETURNING ` + utilityBarColumns

// UpdateUtilityBar rewrites a utility bar's payload fields. The active
// flag is managed by the activation engine.
func (q *Queries) UpdateUtilityBar(ctx context.Context, b model.UtilityBar) (model.UtilityBar, error) {
	row := q.db.QueryRowContext(ctx, updateUtilityBar,
		b.Name, b.BackgroundColor, b.TextColor, b.Height, b.Position,
		b.ShowSocialIcons, b.EnableFacebook, b.FacebookURL, b.EnableTwitter, b.TwitterURL,
		b.EnableInstagram, b.InstagramURL, b.EnableYouTube, b.YouTubeURL,
		b.EnableLinkedIn, b.LinkedInURL,
		b.ShowContactInfo, b.ContactPhone, b.ContactEmail, b.ShowCustomLinks,
		b.Link1Text, b.Link1URL, b.Link2Text, b.Link2URL, b.Link3Text, b.Link3URL,
		b.ShowOnMobile, b.MobileCollapsed, time.Now(), b.ID)
	return scanUtilityBar(row)
}

const deleteUtilityBar = `DELETE FROM utility_bars WHERE id = ?`

// DeleteUtilityBar removes a utility bar; its custom links cascade.
func (q *Queries) DeleteUtilityBar(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteUtilityBar, id)
	return err
}

func scanUtilityBar(r rowScanner) (model.UtilityBar, error) {
	var b model.UtilityBar
	err := r.Scan(&b.ID, &b.Name, &b.IsActive, &b.BackgroundColor, &b.TextColor, &b.Height,
		&b.Position, &b.ShowSocialIcons, &b.EnableFacebook, &b.FacebookURL,
		&b.EnableTwitter, &b.TwitterURL, &b.EnableInstagram, &b.InstagramURL,
		&b.EnableYouTube, &b.YouTubeURL, &b.EnableLinkedIn, &b.LinkedInURL,
		&b.ShowContactInfo, &b.ContactPhone, &b.ContactEmail, &b.ShowCustomLinks,
		&b.Link1Text, &b.Link1URL, &b.Link2Text, &b.Link2URL, &b.Link3Text, &b.Link3URL,
		&b.ShowOnMobile, &b.MobileCollapsed, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

const customLinkColumns = `id, utility_bar_id, text, url, icon_class, tooltip,
open_in_new_tab, ordering, is_active, created_at, updated_at`

const createCustomLink = `
INSERT INTO custom_links (utility_bar_id, text, url, icon_class, tooltip, open_in_new_tab,
	ordering, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + customLinkColumns

// CreateCustomLink inserts a custom link row for a utility bar.
func (q *Queries) CreateCustomLink(ctx context.Context, l model.CustomLink) (model.CustomLink, error) {
	now := time.Now()
	row := q.db.QueryRowContext(ctx, createCustomLink,
		l.UtilityBarID, l.Text, l.URL, l.IconClass, l.Tooltip, l.OpenInNewTab,
		l.Ordering, l.IsActive, now, now)
	return scanCustomLink(row)
}

const listActiveCustomLinks = `
SELECT ` + customLinkColumns + ` FROM custom_links
WHERE utility_bar_id = ? AND is_active = 1 ORDER BY ordering, id`

// ListActiveCustomLinks returns a bar's active custom links in order.
func (q *Queries) ListActiveCustomLinks(ctx context.Context, barID int64) ([]model.CustomLink, error) {
	rows, err := q.db.QueryContext(ctx, listActiveCustomLinks, barID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []model.CustomLink
	for rows.Next() {
		l, err := scanCustomLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

const getCustomLinkByID = `SELECT ` + customLinkColumns + ` FROM custom_links WHERE id = ?`

// GetCustomLinkByID returns the custom link with the given id.
func (q *Queries) GetCustomLinkByID(ctx context.Context, id int64) (model.CustomLink, error) {
	return scanCustomLink(q.db.QueryRowContext(ctx, getCustomLinkByID, id))
}

const listCustomLinks = `
SELECT ` + customLinkColumns + ` FROM custom_links
WHERE utility_bar_id = ? ORDER BY ordering, id`

// ListCustomLinks returns every custom link of a bar, active or not.
func (q *Queries) ListCustomLinks(ctx context.Context, barID int64) ([]model.CustomLink, error) {
	rows, err := q.db.QueryContext(ctx, listCustomLinks, barID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []model.CustomLink
	for rows.Next() {
		l, err := scanCustomLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

const updateCustomLink = `
UPDATE custom_links SET text = ?, url = ?, icon_class = ?, tooltip = ?, open_in_new_tab = ?,
	ordering = ?, is_active = ?, updated_at = ?
WHERE id = ?
RETURNING ` + customLinkColumns

// UpdateCustomLink rewrites a custom link row.
func (q *Queries) UpdateCustomLink(ctx context.Context, l model.CustomLink) (model.CustomLink, error) {
	row := q.db.QueryRowContext(ctx, updateCustomLink,
		l.Text, l.URL, l.IconClass, l.Tooltip, l.OpenInNewTab,
		l.Ordering, l.IsActive, time.Now(), l.ID)
	return scanCustomLink(row)
}

const deleteCustomLink = `DELETE FROM custom_links WHERE id = ?`

// DeleteCustomLink removes a custom link row.
func (q *Queries) DeleteCustomLink(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteCustomLink, id)
	return err
}

func scanCustomLink(r rowScanner) (model.CustomLink, error) {
	var l model.CustomLink
	err := r.Scan(&l.ID, &l.UtilityBarID, &l.Text, &l.URL, &l.IconClass, &l.Tooltip,
		&l.OpenInNewTab, &l.Ordering, &l.IsActive, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}
