// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/campuscms/campuscms/internal/model"
)

const headerInfoColumns = `id, college_name, name_font_size, name_font_weight, name_font_family,
name_color, show_college_name, address, address_color, show_address, affiliations,
affiliations_color, show_affiliations, email, phone, website_url, show_contact_info,
logo_left, logo_left_alt, logo_right, logo_right_alt, logo_size,
facebook_url, youtube_url, instagram_url, twitter_url, linkedin_url, whatsapp_number,
show_social_links, layout, background_color, border_bottom, border_color, shadow,
is_active, created_at, updated_at`

const createHeaderInfo = `
INSERT INTO header_infos (college_name, name_font_size, name_font_weight, name_font_family,
	name_color, show_college_name, address, address_color, show_address, affiliations,
	affiliations_color, show_affiliations, email, phone, website_url, show_contact_info,
	logo_left, logo_left_alt, logo_right, logo_right_alt, logo_size,
	facebook_url, youtube_url, instagram_url, twitter_url, linkedin_url, whatsapp_number,
	show_social_links, layout, background_color, border_bottom, border_color, shadow,
	is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)
RETURNING ` + headerInfoColumns

// CreateHeaderInfo inserts a header record in the inactive state.
func (q *Queries) CreateHeaderInfo(ctx context.Context, h model.HeaderInfo) (model.HeaderInfo, error) {
	now := time.Now()
	row := q.db.QueryRowContext(ctx, createHeaderInfo,
		h.CollegeName, h.NameFontSize, h.NameFontWeight, h.NameFontFamily,
		h.NameColor, h.ShowCollegeName, h.Address, h.AddressColor, h.ShowAddress,
		h.Affiliations, h.AffiliationsColor, h.ShowAffiliations,
		h.Email, h.Phone, h.WebsiteURL, h.ShowContactInfo,
		h.LogoLeft, h.LogoLeftAlt, h.LogoRight, h.LogoRightAlt, h.LogoSize,
		h.FacebookURL, h.YouTubeURL, h.InstagramURL, h.TwitterURL, h.LinkedInURL,
		h.WhatsAppNumber, h.ShowSocialLinks, h.Layout, h.BackgroundColor,
		h.BorderBottom, h.BorderColor, h.Shadow, now, now)
	return scanHeaderInfo(row)
}

const getHeaderInfoByID = `SELECT ` + headerInfoColumns + ` FROM header_infos WHERE id = ?`

// GetHeaderInfoByID returns the header record with the given id.
func (q *Queries) GetHeaderInfoByID(ctx context.Context, id int64) (model.HeaderInfo, error) {
	return scanHeaderInfo(q.db.QueryRowContext(ctx, getHeaderInfoByID, id))
}

const getActiveHeaderInfo = `
SELECT ` + headerInfoColumns + ` FROM header_infos
WHERE is_active = 1 ORDER BY updated_at DESC, id DESC LIMIT 1`

// GetActiveHeaderInfo returns the active header record.
func (q *Queries) GetActiveHeaderInfo(ctx context.Context) (model.HeaderInfo, error) {
	return scanHeaderInfo(q.db.QueryRowContext(ctx, getActiveHeaderInfo))
}

const listHeaderInfos = `
SELECT ` + headerInfoColumns + ` FROM header_infos ORDER BY updated_at DESC, id DESC`

// ListHeaderInfos returns every header record, most recently updated first.
func (q *Queries) ListHeaderInfos(ctx context.Context) ([]model.HeaderInfo, error) {
	rows, err := q.db.QueryContext(ctx, listHeaderInfos)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []model.HeaderInfo
	for rows.Next() {
		h, err := scanHeaderInfo(rows)
		if err != nil {
			return nil, err
		}
		infos = append(infos, h)
	}
	return infos, rows.Err()
}

const updateHeaderInfo = `
UPDATE header_infos SET college_name = ?, name_font_size = ?, name_font_weight = ?,
	name_font_family = ?, name_color = ?, show_college_name = ?, address = ?,
	address_color = ?, show_address = ?, affiliations = ?, affiliations_color = ?,
	show_affiliations = ?, email = ?, phone = ?, website_url = ?, show_contact_info = ?,
	logo_left = ?, logo_left_alt = ?, logo_right = ?, logo_right_alt = ?, logo_size = ?,
	facebook_url = ?, youtube_url = ?, instagram_url = ?, twitter_url = ?, linkedin_url = ?,
	whatsapp_number = ?, show_social_links = ?, layout = ?, background_color = ?,
	border_bottom = ?, border_color = ?, shadow = ?, updated_at = ?
WHERE id = ?
RETURNING ` + headerInfoColumns

// UpdateHeaderInfo rewrites a header record's payload fields.
func (q *Queries) UpdateHeaderInfo(ctx context.Context, h model.HeaderInfo) (model.HeaderInfo, error) {
	row := q.db.QueryRowContext(ctx, updateHeaderInfo,
		h.CollegeName, h.NameFontSize, h.NameFontWeight, h.NameFontFamily,
		h.NameColor, h.ShowCollegeName, h.Address, h.AddressColor, h.ShowAddress,
		h.Affiliations, h.AffiliationsColor, h.ShowAffiliations,
		h.Email, h.Phone, h.WebsiteURL, h.ShowContactInfo,
		h.LogoLeft, h.LogoLeftAlt, h.LogoRight, h.LogoRightAlt, h.LogoSize,
		h.FacebookURL, h.YouTubeURL, h.InstagramURL, h.TwitterURL, h.LinkedInURL,
		h.WhatsAppNumber, h.ShowSocialLinks, h.Layout, h.BackgroundColor,
		h.BorderBottom, h.BorderColor, h.Shadow, time.Now(), h.ID)
	return scanHeaderInfo(row)
}

const deleteHeaderInfo = `DELETE FROM header_infos WHERE id = ?`

// DeleteHeaderInfo removes a header record.
func (q *Queries) DeleteHeaderInfo(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteHeaderInfo, id)
	return err
}

func scanHeaderInfo(r rowScanner) (model.HeaderInfo, error) {
	var h model.HeaderInfo
	err := r.Scan(&h.ID, &h.CollegeName, &h.NameFontSize, &h.NameFontWeight, &h.NameFontFamily,
		&h.NameColor, &h.ShowCollegeName, &h.Address, &h.AddressColor, &h.ShowAddress,
		&h.Affiliations, &h.AffiliationsColor, &h.ShowAffiliations,
		&h.Email, &h.Phone, &h.WebsiteURL, &h.ShowContactInfo,
		&h.LogoLeft, &h.LogoLeftAlt, &h.LogoRight, &h.LogoRightAlt, &h.LogoSize,
		&h.FacebookURL, &h.YouTubeURL, &h.InstagramURL, &h.TwitterURL, &h.LinkedInURL,
		&h.WhatsAppNumber, &h.ShowSocialLinks, &h.Layout, &h.BackgroundColor,
		&h.BorderBottom, &h.BorderColor, &h.Shadow, &h.IsActive, &h.CreatedAt, &h.UpdatedAt)
	return h, err
}

const navbarInfoColumns = `id, brand_name, brand_subtitle, logo, show_logo, show_brand_text,
background_color, text_color, hover_color, border_color, enable_search, search_placeholder,
is_sticky, show_below_header, is_active, created_at, updated_at`

const createNavbarInfo = `
INSERT INTO navbar_infos (brand_name, brand_subtitle, logo, show_logo, show_brand_text,
	background_color, text_color, hover_color, border_color, enable_search,
	search_placeholder, is_sticky, show_below_header, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)
RETURNING ` + navbarInfoColumns

// CreateNavbarInfo inserts a navbar record in the inactive state.
func (q *Queries) CreateNavbarInfo(ctx context.Context, n model.NavbarInfo) (model.NavbarInfo, error) {
	now := time.Now()
	row := q.db.QueryRowContext(ctx, createNavbarInfo,
		n.BrandName, n.BrandSubtitle, n.Logo, n.ShowLogo, n.ShowBrandText,
		n.BackgroundColor, n.TextColor, n.HoverColor, n.BorderColor, n.EnableSearch,
		n.SearchPlaceholder, n.IsSticky, n.ShowBelowHeader, now, now)
	return scanNavbarInfo(row)
}

const getNavbarInfoByID = `SELECT ` + navbarInfoColumns + ` FROM navbar_infos WHERE id = ?`

// GetNavbarInfoByID returns the navbar record with the given id.
func (q *Queries) GetNavbarInfoByID(ctx context.Context, id int64) (model.NavbarInfo, error) {
	return scanNavbarInfo(q.db.QueryRowContext(ctx, getNavbarInfoByID, id))
}

const getActiveNavbarInfo = `
SELECT ` + navbarInfoColumns + ` FROM navbar_infos
WHERE is_active = 1 ORDER BY updated_at DESC, id DESC LIMIT 1`

// GetActiveNavbarInfo returns the active navbar record.
func (q *Queries) GetActiveNavbarInfo(ctx context.Context) (model.NavbarInfo, error) {
	return scanNavbarInfo(q.db.QueryRowContext(ctx, getActiveNavbarInfo))
}

const listNavbarInfos = `
SELECT ` + navbarInfoColumns + ` FROM navbar_infos ORDER BY updated_at DESC, id DESC`

// ListNavbarInfos returns every navbar record, most recently updated first.
func (q *Queries) ListNavbarInfos(ctx context.Context) ([]model.NavbarInfo, error) {
	rows, err := q.db.QueryContext(ctx, listNavbarInfos)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []model.NavbarInfo
	for rows.Next() {
		n, err := scanNavbarInfo(rows)
		if err != nil {
			return nil, err
		}
		infos = append(infos, n)
	}
	return infos, rows.Err()
}

const updateNavbarInfo = `
UPDATE navbar_infos SET brand_name = ?, brand_subtitle = ?, logo = ?, show_logo = ?,
	show_brand_text = ?, background_color = ?, text_color = ?, hover_color = ?,
	border_color = ?, enable_search = ?, search_placeholder = ?, is_sticky = ?,
	show_below_header = ?, updated_at = ?
WHERE id = ?
RETURNING ` + navbarInfoColumns

// UpdateNavbarInfo rewrites a navbar record's payload fields.
func (q *Queries) UpdateNavbarInfo(ctx context.Context, n model.NavbarInfo) (model.NavbarInfo, error) {
	row := q.db.QueryRowContext(ctx, updateNavbarInfo,
		n.BrandName, n.BrandSubtitle, n.Logo, n.ShowLogo, n.ShowBrandText,
		n.BackgroundColor, n.TextColor, n.HoverColor, n.BorderColor, n.EnableSearch,
		n.SearchPlaceholder, n.IsSticky, n.ShowBelowHeader, time.Now(), n.ID)
	return scanNavbarInfo(row)
}

const deleteNavbarInfo = `DELETE FROM navbar_infos WHERE id = ?`

// DeleteNavbarInfo removes a navbar record.
func (q *Queries) DeleteNavbarInfo(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteNavbarInfo, id)
	return err
}

func scanNavbarInfo(r rowScanner) (model.NavbarInfo, error) {
	var n model.NavbarInfo
	err := r.Scan(&n.ID, &n.BrandName, &n.BrandSubtitle, &n.Logo, &n.ShowLogo, &n.ShowBrandText,
		&n.BackgroundColor, &n.TextColor, &n.HoverColor, &n.BorderColor, &n.EnableSearch,
		&n.SearchPlaceholder, &n.IsSticky, &n.ShowBelowHeader, &n.IsActive,
		&n.CreatedAt, &n.UpdatedAt)
	return n, err
}

const collegeInfoColumns = `id, name, slug, establishment_year, affiliation, address, email,
phone, mission_short, mission_long, founder_name, founder_message, principal_name,
principal_message, courses_count, students_count, faculty_staff_count, years_of_excellence,
naac_grade, iic_rating, facebook_url, youtube_url, instagram_url, logo, hero_image,
is_active, created_at, updated_at`

const createCollegeInfo = `
INSERT INTO college_infos (name, slug, establishment_year, affiliation, address, email,
	phone, mission_short, mission_long, founder_name, founder_message, principal_name,
	principal_message, courses_count, students_count, faculty_staff_count,
	years_of_excellence, naac_grade, iic_rating, facebook_url, youtube_url, instagram_url,
	logo, hero_image, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)
RETURNING ` + collegeInfoColumns

// CreateCollegeInfo inserts a college record in the inactive state.
func (q *Queries) CreateCollegeInfo(ctx context.Context, c model.CollegeInfo) (model.CollegeInfo, error) {
	now := time.Now()
	row := q.db.QueryRowContext(ctx, createCollegeInfo,
		c.Name, c.Slug, c.EstablishmentYear, c.Affiliation, c.Address, c.Email, c.Phone,
		c.MissionShort, c.MissionLong, c.FounderName, c.FounderMessage,
		c.PrincipalName, c.PrincipalMessage, c.CoursesCount, c.StudentsCount,
		c.FacultyStaffCount, c.YearsOfExcellence, c.NAACGrade, c.IICRating,
		c.FacebookURL, c.YouTubeURL, c.InstagramURL, c.Logo, c.HeroImage, now, now)
	return scanCollegeInfo(row)
}

const getCollegeInfoByID = `SELECT ` + collegeInfoColumns + ` FROM college_infos WHERE id = ?`

// GetCollegeInfoByID returns the college record with the given id.
func (q *Queries) GetCollegeInfoByID(ctx context.Context, id int64) (model.CollegeInfo, error) {
	return scanCollegeInfo(q.db.QueryRowContext(ctx, getCollegeInfoByID, id))
}

const getActiveCollegeInfo = `
SELECT ` + collegeInfoColumns + ` FROM college_infos
WHERE is_active = 1 ORDER BY updated_at DESC, id DESC LIMIT 1`

// GetActiveCollegeInfo returns the active college record.
func (q *Queries) GetActiveCollegeInfo(ctx context.Context) (model.CollegeInfo, error) {
	return scanCollegeInfo(q.db.QueryRowContext(ctx, getActiveCollegeInfo))
}

const listCollegeInfos = `
SELECT ` + collegeInfoColumns + ` FROM college_infos ORDER BY updated_at DESC, id DESC`

// ListCollegeInfos returns every college record, most recently updated first.
func (q *Queries) ListCollegeInfos(ctx context.Context) ([]model.CollegeInfo, error) {
	rows, err := q.db.QueryContext(ctx, listCollegeInfos)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []model.CollegeInfo
	for rows.Next() {
		c, err := scanCollegeInfo(rows)
		if err != nil {
			return nil, err
		}
		infos = append(infos, c)
	}
	return infos, rows.Err()
}

const updateCollegeInfo = `
UPDATE college_infos SET name = ?, slug = ?, establishment_year = ?, affiliation = ?,
	address = ?, email = ?, phone = ?, mission_short = ?, mission_long = ?,
	founder_name = ?, founder_message = ?, principal_name = ?, principal_message = ?,
	courses_count = ?, students_count = ?, faculty_staff_count = ?, years_of_excellence = ?,
	naac_grade = ?, iic_rating = ?, facebook_url = ?, youtube_url = ?, instagram_url = ?,
	logo = ?, hero_image = ?, updated_at = ?
WHERE id = ?
RETURNING ` + collegeInfoColumns

// UpdateCollegeInfo rewrites a college record's payload fields.
func (q *Queries) UpdateCollegeInfo(ctx context.Context, c model.CollegeInfo) (model.CollegeInfo, error) {
	row := q.db.QueryRowContext(ctx, updateCollegeInfo,
		c.Name, c.Slug, c.EstablishmentYear, c.Affiliation, c.Address, c.Email, c.Phone,
		c.MissionShort, c.MissionLong, c.FounderName, c.FounderMessage,
		c.PrincipalName, c.PrincipalMessage, c.CoursesCount, c.StudentsCount,
		c.FacultyStaffCount, c.YearsOfExcellence, c.NAACGrade, c.IICRating,
		c.FacebookURL, c.YouTubeURL, c.InstagramURL, c.Logo, c.HeroImage,
		time.Now(), c.ID)
	return scanCollegeInfo(row)
}

const deleteCollegeInfo = `DELETE FROM college_infos WHERE id = ?`

// DeleteCollegeInfo removes a college record.
func (q *Queries) DeleteCollegeInfo(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteCollegeInfo, id)
	return err
}

func scanCollegeInfo(r rowScanner) (model.CollegeInfo, error) {
	var c model.CollegeInfo
	err := r.Scan(&c.ID, &c.Name, &c.Slug, &c.EstablishmentYear, &c.Affiliation, &c.Address,
		&c.Email, &c.Phone, &c.MissionShort, &c.MissionLong, &c.FounderName,
		&c.FounderMessage, &c.PrincipalName, &c.PrincipalMessage, &c.CoursesCount,
		&c.StudentsCount, &c.FacultyStaffCount, &c.YearsOfExcellence, &c.NAACGrade,
		&c.IICRating, &c.FacebookURL, &c.YouTubeURL, &c.InstagramURL, &c.Logo,
		&c.HeroImage, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
