// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/campuscms/campuscms/internal/model"
)

const leadershipColumns = `id, role, name, designation, qualifications, experience_years,
message_title, message_content, vision, achievements, profile_photo, email, phone,
linkedin_url, twitter_url, facebook_url, show_on_homepage, show_achievements,
show_contact_info, meta_description, is_active, created_at, updated_at`

const createLeadershipMessage = `
INSERT INTO leadership_messages (role, name, designation, qualifications, experience_years,
	message_title, message_content, vision, achievements, profile_photo, email, phone,
	linkedin_url, twitter_url, facebook_url, show_on_homepage, show_achievements,
	show_contact_info, meta_description, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)
RETURNING ` + leadershipColumns

// CreateLeadershipMessage inserts a leadership record in the inactive state.
func (q *Queries) CreateLeadershipMessage(ctx context.Context, m model.LeadershipMessage) (model.LeadershipMessage, error) {
	now := time.Now()
	row := q.db.QueryRowContext(ctx, createLeadershipMessage,
		m.Role, m.Name, m.Designation, m.Qualifications, m.ExperienceYears,
		m.MessageTitle, m.MessageContent, m.Vision, m.Achievements, m.ProfilePhoto,
		m.Email, m.Phone, m.LinkedInURL, m.TwitterURL, m.FacebookURL,
		m.ShowOnHomepage, m.ShowAchievements, m.ShowContactInfo, m.MetaDescription,
		now, now)
	return scanLeadershipMessage(row)
}

const getLeadershipMessageByID = `
SELECT ` + leadershipColumns + ` FROM leadership_messages WHERE id = ?`

// GetLeadershipMessageByID returns the leadership record with the given id.
func (q *Queries) GetLeadershipMessageByID(ctx context.Context, id int64) (model.LeadershipMessage, error) {
	return scanLeadershipMessage(q.db.QueryRowContext(ctx, getLeadershipMessageByID, id))
}

const getActiveLeadershipMessage = `
SELECT ` + leadershipColumns + ` FROM leadership_messages
WHERE role = ? AND is_active = 1 ORDER BY updated_at DESC, id DESC LIMIT 1`

// GetActiveLeadershipMessage returns the active record for a role.
func (q *Queries) GetActiveLeadershipMessage(ctx context.Context, role string) (model.LeadershipMessage, error) {
	return scanLeadershipMessage(q.db.QueryRowContext(ctx, getActiveLeadershipMessage, role))
}

const listLeadershipMessages = `
SELECT ` + leadershipColumns + ` FROM leadership_messages
WHERE role = ? ORDER BY updated_at DESC, id DESC`

// ListLeadershipMessages returns every record for a role, most recently
// updated first.
func (q *Queries) ListLeadershipMessages(ctx context.Context, role string) ([]model.LeadershipMessage, error) {
	rows, err := q.db.QueryContext(ctx, listLeadershipMessages, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []model.LeadershipMessage
	for rows.Next() {
		m, err := scanLeadershipMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

const updateLeadershipMessage = `
UPDATE leadership_messages SET name = ?, designation = ?, qualifications = ?,
	experience_years = ?, message_title = ?, message_content = ?, vision = ?,
	achievements = ?, profile_photo = ?, email = ?, phone = ?, linkedin_url = ?,
	twitter_url = ?, facebook_url = ?, show_on_homepage = ?, show_achievements = ?,
	show_contact_info = ?, meta_description = ?, updated_at = ?
WHERE id = ?
RETURNING ` + leadershipColumns

// UpdateLeadershipMessage rewrites a leadership record's payload fields.
// The role is immutable once created.
func (q *Queries) UpdateLeadershipMessage(ctx context.Context, m model.LeadershipMessage) (model.LeadershipMessage, error) {
	row := q.db.QueryRowContext(ctx, updateLeadershipMessage,
		m.Name, m.Designation, m.Qualifications, m.ExperienceYears,
		m.MessageTitle, m.MessageContent, m.Vision, m.Achievements, m.ProfilePhoto,
		m.Email, m.Phone, m.LinkedInURL, m.TwitterURL, m.FacebookURL,
		m.ShowOnHomepage, m.ShowAchievements, m.ShowContactInfo, m.MetaDescription,
		time.Now(), m.ID)
	return scanLeadershipMessage(row)
}

const deleteLeadershipMessage = `DELETE FROM leadership_messages WHERE id = ?`

// DeleteLeadershipMessage removes a leadership record.
func (q *Queries) DeleteLeadershipMessage(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteLeadershipMessage, id)
	return err
}

func scanLeadershipMessage(r rowScanner) (model.LeadershipMessage, error) {
	var m model.LeadershipMessage
	err := r.Scan(&m.ID, &m.Role, &m.Name, &m.Designation, &m.Qualifications,
		&m.ExperienceYears, &m.MessageTitle, &m.MessageContent, &m.Vision,
		&m.Achievements, &m.ProfilePhoto, &m.Email, &m.Phone, &m.LinkedInURL,
		&m.TwitterURL, &m.FacebookURL, &m.ShowOnHomepage, &m.ShowAchievements,
		&m.ShowContactInfo, &m.MetaDescription, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

const visionMissionColumns = `id, title, vision, mission, core_values, is_active, created_at, updated_at`

const createVisionMission = `
INSERT INTO vision_missions (title, vision, mission, core_values, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, 0, ?, ?)
RETURNING ` + visionMissionColumns

// CreateVisionMission inserts a vision/mission record in the inactive state.
func (q *Queries) CreateVisionMission(ctx context.Context, v model.VisionMission) (model.VisionMission, error) {
	now := time.Now()
	row := q.db.QueryRowContext(ctx, createVisionMission,
		v.Title, v.Vision, v.Mission, v.CoreValues, now, now)
	return scanVisionMission(row)
}

const getVisionMissionByID = `SELECT ` + visionMissionColumns + ` FROM vision_missions WHERE id = ?`

// GetVisionMissionByID returns the record with the given id.
func (q *Queries) GetVisionMissionByID(ctx context.Context, id int64) (model.VisionMission, error) {
	return scanVisionMission(q.db.QueryRowContext(ctx, getVisionMissionByID, id))
}

const getActiveVisionMission = `
SELECT ` + visionMissionColumns + ` FROM vision_missions
WHERE is_active = 1 ORDER BY updated_at DESC, id DESC LIMIT 1`

// GetActiveVisionMission returns the active vision/mission record.
func (q *Queries) GetActiveVisionMission(ctx context.Context) (model.VisionMission, error) {
	return scanVisionMission(q.db.QueryRowContext(ctx, getActiveVisionMission))
}

const listVisionMissions = `
SELECT ` + visionMissionColumns + ` FROM vision_missions ORDER BY updated_at DESC, id DESC`

// ListVisionMissions returns every record, most recently updated first.
func (q *Queries) ListVisionMissions(ctx context.Context) ([]model.VisionMission, error) {
	rows, err := q.db.QueryContext(ctx, listVisionMissions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.VisionMission
	for rows.Next() {
		v, err := scanVisionMission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

const updateVisionMission = `
UPDATE vision_missions SET title = ?, vision = ?, mission = ?, core_values = ?, updated_at = ?
WHERE id = ?
RETURNING ` + visionMissionColumns

// UpdateVisionMission rewrites a record's payload fields.
func (q *Queries) UpdateVisionMission(ctx context.Context, v model.VisionMission) (model.VisionMission, error) {
	row := q.db.QueryRowContext(ctx, updateVisionMission,
		v.Title, v.Vision, v.Mission, v.CoreValues, time.Now(), v.ID)
	return scanVisionMission(row)
}

const deleteVisionMission = `DELETE FROM vision_missions WHERE id = ?`

// DeleteVisionMission removes a record.
func (q *Queries) DeleteVisionMission(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteVisionMission, id)
	return err
}

func scanVisionMission(r rowScanner) (model.VisionMission, error) {
	var v model.VisionMission
	err := r.Scan(&v.ID, &v.Title, &v.Vision, &v.Mission, &v.CoreValues, &v.IsActive,
		&v.CreatedAt, &v.UpdatedAt)
	return v, err
}

const carouselColumns = `id, name, autoplay, interval_millis, show_indicators, show_captions,
transition, is_active, created_at, updated_at`

const createHeroCarousel = `
INSERT INTO hero_carousel_settings (name, autoplay, interval_millis, show_indicators,
	show_captions, transition, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, 0, ?, ?)
RETURNING ` + carouselColumns

// CreateHeroCarousel inserts a carousel settings record in the inactive state.
func (q *Queries) CreateHeroCarousel(ctx context.Context, c model.HeroCarouselSettings) (model.HeroCarouselSettings, error) {
	now := time.Now()
	row := q.db.QueryRowContext(ctx, createHeroCarousel,
		c.Name, c.Autoplay, c.IntervalMillis, c.ShowIndicators, c.ShowCaptions,
		c.Transition, now, now)
	return scanHeroCarousel(row)
}

const getHeroCarouselByID = `
SELECT ` + carouselColumns + ` FROM hero_carousel_settings WHERE id = ?`

// GetHeroCarouselByID returns the carousel record with the given id.
func (q *Queries) GetHeroCarouselByID(ctx context.Context, id int64) (model.HeroCarouselSettings, error) {
	return scanHeroCarousel(q.db.QueryRowContext(ctx, getHeroCarouselByID, id))
}

const getActiveHeroCarousel = `
SELECT ` + carouselColumns + ` FROM hero_carousel_settings
WHERE is_active = 1 ORDER BY updated_at DESC, id DESC LIMIT 1`

// GetActiveHeroCarousel returns the active carousel settings.
func (q *Queries) GetActiveHeroCarousel(ctx context.Context) (model.HeroCarouselSettings, error) {
	return scanHeroCarousel(q.db.QueryRowContext(ctx, getActiveHeroCarousel))
}

const listHeroCarousels = `
SELECT ` + carouselColumns + ` FROM hero_carousel_settings ORDER BY updated_at DESC, id DESC`

// ListHeroCarousels returns every carousel record, most recently updated first.
func (q *Queries) ListHeroCarousels(ctx context.Context) ([]model.HeroCarouselSettings, error) {
	rows, err := q.db.QueryContext(ctx, listHeroCarousels)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.HeroCarouselSettings
	for rows.Next() {
		c, err := scanHeroCarousel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

const updateHeroCarousel = `
UPDATE hero_carousel_settings SET name = ?, autoplay = ?, interval_millis = ?,
	show_indicators = ?, show_captions = ?, transition = ?, updated_at = ?
WHERE id = ?
RETURNING ` + carouselColumns

// UpdateHeroCarousel rewrites a carousel record's payload fields.
func (q *Queries) UpdateHeroCarousel(ctx context.Context, c model.HeroCarouselSettings) (model.HeroCarouselSettings, error) {
	row := q.db.QueryRowContext(ctx, updateHeroCarousel,
		c.Name, c.Autoplay, c.IntervalMillis, c.ShowIndicators, c.ShowCaptions,
		c.Transition, time.Now(), c.ID)
	return scanHeroCarousel(row)
}

const deleteHeroCarousel = `DELETE FROM hero_carousel_settings WHERE id = ?`

// DeleteHeroCarousel removes a carousel record.
func (q *Queries) DeleteHeroCarousel(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteHeroCarousel, id)
	return err
}

func scanHeroCarousel(r rowScanner) (model.HeroCarouselSettings, error) {
	var c model.HeroCarouselSettings
	err := r.Scan(&c.ID, &c.Name, &c.Autoplay, &c.IntervalMillis, &c.ShowIndicators,
		&c.ShowCaptions, &c.Transition, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

const panelColumns = `id, family, title, content_html, document_path, contact_email,
is_active, created_at, updated_at`

const createConfigPanel = `
INSERT INTO config_panels (family, title, content_html, document_path, contact_email,
	is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, 0, ?, ?)
RETURNING ` + panelColumns

// CreateConfigPanel inserts a panel record in the inactive state.
func (q *Queries) CreateConfigPanel(ctx context.Context, p model.ConfigPanel) (model.ConfigPanel, error) {
	now := time.Now()
	row := q.db.QueryRowContext(ctx, createConfigPanel,
		p.Family, p.Title, p.ContentHTML, p.DocumentPath, p.ContactEmail, now, now)
	return scanConfigPanel(row)
}

const getConfigPanelByID = `SELECT ` + panelColumns + ` FROM config_panels WHERE id = ?`

// GetConfigPanelByID returns the panel record with the given id.
func (q *Queries) GetConfigPanelByID(ctx context.Context, id int64) (model.ConfigPanel, error) {
	return scanConfigPanel(q.db.QueryRowContext(ctx, getConfigPanelByID, id))
}

const getActiveConfigPanel = `
SELECT ` + panelColumns + ` FROM config_panels
WHERE family = ? AND is_active = 1 ORDER BY updated_at DESC, id DESC LIMIT 1`

// GetActiveConfigPanel returns the active panel for a family.
func (q *Queries) GetActiveConfigPanel(ctx context.Context, f model.Family) (model.ConfigPanel, error) {
	return scanConfigPanel(q.db.QueryRowContext(ctx, getActiveConfigPanel, f))
}

const listConfigPanels = `
SELECT ` + panelColumns + ` FROM config_panels
WHERE family = ? ORDER BY updated_at DESC, id DESC`

// ListConfigPanels returns every panel of a family, most recently updated first.
func (q *Queries) ListConfigPanels(ctx context.Context, f model.Family) ([]model.ConfigPanel, error) {
	rows, err := q.db.QueryContext(ctx, listConfigPanels, f)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var panels []model.ConfigPanel
	for rows.Next() {
		p, err := scanConfigPanel(rows)
		if err != nil {
			return nil, err
		}
		panels = append(panels, p)
	}
	return panels, rows.Err()
}

const updateConfigPanel = `
UPDATE config_panels SET title = ?, content_html = ?, document_path = ?, contact_email = ?,
	updated_at = ?
WHERE id = ?
RETURNING ` + panelColumns

// UpdateConfigPanel rewrites a panel record's payload fields. The family
// tag is immutable once created.
func (q *Queries) UpdateConfigPanel(ctx context.Context, p model.ConfigPanel) (model.ConfigPanel, error) {
	row := q.db.QueryRowContext(ctx, updateConfigPanel,
		p.Title, p.ContentHTML, p.DocumentPath, p.ContactEmail, time.Now(), p.ID)
	return scanConfigPanel(row)
}

const deleteConfigPanel = `DELETE FROM config_panels WHERE id = ?`

// DeleteConfigPanel removes a panel record.
func (q *Queries) DeleteConfigPanel(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteConfigPanel, id)
	return err
}

func scanConfigPanel(r rowScanner) (model.ConfigPanel, error) {
	var p model.ConfigPanel
	err := r.Scan(&p.ID, &p.Family, &p.Title, &p.ContentHTML, &p.DocumentPath,
		&p.ContactEmail, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
