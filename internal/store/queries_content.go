// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/campuscms/campuscms/internal/model"
)

const notificationColumns = `id, message, link_url, link_text, priority, color, icon_class,
start_date, end_date, is_active, ordering, created_at, updated_at`

const createNotification = `
INSERT INTO scrolling_notifications (message, link_url, link_text, priority, color,
	icon_class, start_date, end_date, is_active, ordering, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + notificationColumns

// CreateNotificationParams holds the arguments for CreateNotification.
type CreateNotificationParams struct {
	Message   string
	LinkURL   string
	LinkText  string
	Priority  string
	Color     string
	IconClass string
	StartDate time.Time
	EndDate   sql.NullTime
	IsActive  bool
	Ordering  int64
}

// CreateNotification inserts a scrolling notification.
func (q *Queries) CreateNotification(ctx context.Context, arg CreateNotificationParams) (model.ScrollingNotification, error) {
	now := time.Now()
	row := q.db.QueryRowContext(ctx, createNotification,
		arg.Message, arg.LinkURL, arg.LinkText, arg.Priority, arg.Color, arg.IconClass,
		arg.StartDate, arg.EndDate, arg.IsActive, arg.Ordering, now, now)
	return scanNotification(row)
}

const getNotificationByID = `
SELECT ` + notificationColumns + ` FROM scrolling_notifications WHERE id = ?`

// GetNotificationByID returns the notification with the given id.
func (q *Queries) GetNotificationByID(ctx context.Context, id int64) (model.ScrollingNotification, error) {
	return scanNotification(q.db.QueryRowContext(ctx, getNotificationByID, id))
}

const listNotifications = `
SELECT ` + notificationColumns + ` FROM scrolling_notifications ORDER BY ordering, id`

// ListNotifications returns every notification in display order.
func (q *Queries) ListNotifications(ctx context.Context) ([]model.ScrollingNotification, error) {
	return q.queryNotifications(ctx, listNotifications)
}

const listCurrentNotifications = `
SELECT ` + notificationColumns + ` FROM scrolling_notifications
WHERE is_active = 1 AND start_date <= ? AND (end_date IS NULL OR end_date >= ?)
ORDER BY ordering, id`

// ListCurrentNotifications returns active notifications whose schedule
// window contains now.
func (q *Queries) ListCurrentNotifications(ctx context.Context, now time.Time) ([]model.ScrollingNotification, error) {
	return q.queryNotifications(ctx, listCurrentNotifications, now, now)
}

const updateNotification = `
UPDATE scrolling_notifications SET message = ?, link_url = ?, link_text = ?, priority = ?,
	color = ?, icon_class = ?, start_date = ?, end_date = ?, is_active = ?, ordering = ?,
	updated_at = ?
WHERE id = ?
RETURNING ` + notificationColumns

// UpdateNotificationParams holds the arguments for UpdateNotification.
type UpdateNotificationParams struct {
	ID        int64
	Message   string
	LinkURL   string
	LinkText  string
	Priority  string
	Color     string
	IconClass string
	StartDate time.Time
	EndDate   sql.NullTime
	IsActive  bool
	Ordering  int64
}

// UpdateNotification rewrites a notification row.
func (q *Queries) UpdateNotification(ctx context.Context, arg UpdateNotificationParams) (model.ScrollingNotification, error) {
	row := q.db.QueryRowContext(ctx, updateNotification,
		arg.Message, arg.LinkURL, arg.LinkText, arg.Priority, arg.Color, arg.IconClass,
		arg.StartDate, arg.EndDate, arg.IsActive, arg.Ordering, time.Now(), arg.ID)
	return scanNotification(row)
}

const deleteNotification = `DELETE FROM scrolling_notifications WHERE id = ?`

// DeleteNotification removes a notification.
func (q *Queries) DeleteNotification(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteNotification, id)
	return err
}

const expireNotificationsBefore = `
UPDATE scrolling_notifications SET is_active = 0, updated_at = ?
WHERE is_active = 1 AND end_date IS NOT NULL AND end_date < ?`

// ExpireNotificationsBefore deactivates notifications whose window has
// closed and reports how many were expired.
func (q *Queries) ExpireNotificationsBefore(ctx context.Context, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, expireNotificationsBefore, now, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *Queries) queryNotifications(ctx context.Context, query string, args ...any) ([]model.ScrollingNotification, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ScrollingNotification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func scanNotification(r rowScanner) (model.ScrollingNotification, error) {
	var n model.ScrollingNotification
	err := r.Scan(&n.ID, &n.Message, &n.LinkURL, &n.LinkText, &n.Priority, &n.Color,
		&n.IconClass, &n.StartDate, &n.EndDate, &n.IsActive, &n.Ordering,
		&n.CreatedAt, &n.UpdatedAt)
	return n, err
}

const sliderColumns = `id, title, caption, image_path, link_url, button_text, ordering,
is_active, start_date, end_date, created_at, updated_at`

const createSliderImage = `
INSERT INTO slider_images (title, caption, image_path, link_url, button_text, ordering,
	is_active, start_date, end_date, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + sliderColumns

// CreateSliderImageParams holds the arguments for CreateSliderImage.
type CreateSliderImageParams struct {
	Title      string
	Caption    string
	ImagePath  string
	LinkURL    string
	ButtonText string
	Ordering   int64
	IsActive   bool
	StartDate  sql.NullTime
	EndDate    sql.NullTime
}

// CreateSliderImage inserts a carousel slide.
func (q *Queries) CreateSliderImage(ctx context.Context, arg CreateSliderImageParams) (model.SliderImage, error) {
	now := time.Now()
	row := q.db.QueryRowContext(ctx, createSliderImage,
		arg.Title, arg.Caption, arg.ImagePath, arg.LinkURL, arg.ButtonText, arg.Ordering,
		arg.IsActive, arg.StartDate, arg.EndDate, now, now)
	return scanSliderImage(row)
}

const getSliderImageByID = `SELECT ` + sliderColumns + ` FROM slider_images WHERE id = ?`

// GetSliderImageByID returns the slide with the given id.
func (q *Queries) GetSliderImageByID(ctx context.Context, id int64) (model.SliderImage, error) {
	return scanSliderImage(q.db.QueryRowContext(ctx, getSliderImageByID, id))
}

const listSliderImages = `
SELECT ` + sliderColumns + ` FROM slider_images ORDER BY ordering, id`

// ListSliderImages returns every slide in display order.
func (q *Queries) ListSliderImages(ctx context.Context) ([]model.SliderImage, error) {
	return q.querySliderImages(ctx, listSliderImages)
}

const listCurrentSliderImages = `
SELECT ` + sliderColumns + ` FROM slider_images
WHERE is_active = 1 AND (start_date IS NULL OR start_date <= ?)
	AND (end_date IS NULL OR end_date >= ?)
ORDER BY ordering, id`

// ListCurrentSliderImages returns active slides whose schedule window
// contains now.
func (q *Queries) ListCurrentSliderImages(ctx context.Context, now time.Time) ([]model.SliderImage, error) {
	return q.querySliderImages(ctx, listCurrentSliderImages, now, now)
}

const updateSliderImage = `
UPDATE slider_images SET title = ?, caption = ?, image_path = ?, link_url = ?,
	button_text = ?, ordering = ?, is_active = ?, start_date = ?, end_date = ?, updated_at = ?
WHERE id = ?
RETURNING ` + sliderColumns

// UpdateSliderImageParams holds the arguments for UpdateSliderImage.
type UpdateSliderImageParams struct {
	ID         int64
	Title      string
	Caption    string
	ImagePath  string
	LinkURL    string
	ButtonText string
	Ordering   int64
	IsActive   bool
	StartDate  sql.NullTime
	EndDate    sql.NullTime
}

// UpdateSliderImage rewrites a slide row.
func (q *Queries) UpdateSliderImage(ctx context.Context, arg UpdateSliderImageParams) (model.SliderImage, error) {
	row := q.db.QueryRowContext(ctx, updateSliderImage,
		arg.Title, arg.Caption, arg.ImagePath, arg.LinkURL, arg.ButtonText, arg.Ordering,
		arg.IsActive, arg.StartDate, arg.EndDate, time.Now(), arg.ID)
	return scanSliderImage(row)
}

const deleteSliderImage = `DELETE FROM slider_images WHERE id = ?`

// DeleteSliderImage removes a slide.
func (q *Queries) DeleteSliderImage(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteSliderImage, id)
	return err
}

func (q *Queries) querySliderImages(ctx context.Context, query string, args ...any) ([]model.SliderImage, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SliderImage
	for rows.Next() {
		s, err := scanSliderImage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanSliderImage(r rowScanner) (model.SliderImage, error) {
	var s model.SliderImage
	err := r.Scan(&s.ID, &s.Title, &s.Caption, &s.ImagePath, &s.LinkURL, &s.ButtonText,
		&s.Ordering, &s.IsActive, &s.StartDate, &s.EndDate, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

const noticeColumns = `id, title, slug, content, attachment_path, publish_date, expiry_date,
is_active, created_at, updated_at`

const createNotice = `
INSERT INTO notices (title, slug, content, attachment_path, publish_date, expiry_date,
	is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + noticeColumns

// CreateNoticeParams holds the arguments for CreateNotice.
type CreateNoticeParams struct {
	Title          string
	Slug           string
	Content        string
	AttachmentPath string
	PublishDate    time.Time
	ExpiryDate     sql.NullTime
	IsActive       bool
}

// CreateNotice inserts a notice.
func (q *Queries) CreateNotice(ctx context.Context, arg CreateNoticeParams) (model.Notice, error) {
	now := time.Now()
	row := q.db.QueryRowContext(ctx, createNotice,
		arg.Title, arg.Slug, arg.Content, arg.AttachmentPath, arg.PublishDate,
		arg.ExpiryDate, arg.IsActive, now, now)
	return scanNotice(row)
}

const getNoticeBySlug = `SELECT ` + noticeColumns + ` FROM notices WHERE slug = ?`

// GetNoticeBySlug returns the notice with the given slug.
func (q *Queries) GetNoticeBySlug(ctx context.Context, slug string) (model.Notice, error) {
	return scanNotice(q.db.QueryRowContext(ctx, getNoticeBySlug, slug))
}

const listCurrentNotices = `
SELECT ` + noticeColumns + ` FROM notices
WHERE is_active = 1 AND publish_date <= ? AND (expiry_date IS NULL OR expiry_date >= ?)
ORDER BY publish_date DESC, id DESC LIMIT ?`

// ListCurrentNotices returns published, unexpired notices, newest first.
func (q *Queries) ListCurrentNotices(ctx context.Context, now time.Time, limit int64) ([]model.Notice, error) {
	rows, err := q.db.QueryContext(ctx, listCurrentNotices, now, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notices []model.Notice
	for rows.Next() {
		n, err := scanNotice(rows)
		if err != nil {
			return nil, err
		}
		notices = append(notices, n)
	}
	return notices, rows.Err()
}

const getNoticeByID = `SELECT ` + noticeColumns + ` FROM notices WHERE id = ?`

// GetNoticeByID returns the notice with the given id.
func (q *Queries) GetNoticeByID(ctx context.Context, id int64) (model.Notice, error) {
	return scanNotice(q.db.QueryRowContext(ctx, getNoticeByID, id))
}

const listNotices = `
SELECT ` + noticeColumns + ` FROM notices ORDER BY publish_date DESC, id DESC`

// ListNotices returns every notice, newest first.
func (q *Queries) ListNotices(ctx context.Context) ([]model.Notice, error) {
	rows, err := q.db.QueryContext(ctx, listNotices)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notices []model.Notice
	for rows.Next() {
		n, err := scanNotice(rows)
		if err != nil {
			return nil, err
		}
		notices = append(notices, n)
	}
	return notices, rows.Err()
}

const updateNotice = `
UPDATE notices SET title = ?, slug = ?, content = ?, attachment_path = ?, publish_date = ?,
	expiry_date = ?, is_active = ?, updated_at = ?
WHERE id = ?
RETURNING ` + noticeColumns

// UpdateNoticeParams holds the arguments for UpdateNotice.
type UpdateNoticeParams struct {
	ID             int64
	Title          string
	Slug           string
	Content        string
	AttachmentPath string
	PublishDate    time.Time
	ExpiryDate     sql.NullTime
	IsActive       bool
}

// UpdateNotice rewrites a notice row.
func (q *Queries) UpdateNotice(ctx context.Context, arg UpdateNoticeParams) (model.Notice, error) {
	row := q.db.QueryRowContext(ctx, updateNotice,
		arg.Title, arg.Slug, arg.Content, arg.AttachmentPath, arg.PublishDate,
		arg.ExpiryDate, arg.IsActive, time.Now(), arg.ID)
	return scanNotice(row)
}

const countNoticeSlug = `SELECT COUNT(*) FROM notices WHERE slug = ? AND id != ?`

// CountNoticeSlug counts notices using a slug, excluding one id.
func (q *Queries) CountNoticeSlug(ctx context.Context, slug string, excludeID int64) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countNoticeSlug, slug, excludeID).Scan(&n)
	return n, err
}

const countRecentNotices = `
SELECT COUNT(*) FROM notices
WHERE is_active = 1 AND publish_date >= ? AND publish_date <= ?`

// CountRecentNotices counts notices published in the window (since, now].
func (q *Queries) CountRecentNotices(ctx context.Context, since, now time.Time) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countRecentNotices, since, now).Scan(&n)
	return n, err
}

const deleteNotice = `DELETE FROM notices WHERE id = ?`

// DeleteNotice removes a notice.
func (q *Queries) DeleteNotice(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteNotice, id)
	return err
}

func scanNotice(r rowScanner) (model.Notice, error) {
	var n model.Notice
	err := r.Scan(&n.ID, &n.Title, &n.Slug, &n.Content, &n.AttachmentPath, &n.PublishDate,
		&n.ExpiryDate, &n.IsActive, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

const departmentColumns = `id, name, slug, description, head_name, email, phone, ordering,
is_active, created_at, updated_at`

const createDepartment = `
INSERT INTO departments (name, slug, description, head_name, email, phone, ordering,
	is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + departmentColumns

// CreateDepartmentParams holds the arguments for CreateDepartment.
type CreateDepartmentParams struct {
	Name        string
	Slug        string
	Description string
	HeadName    string
	Email       string
	Phone       string
	Ordering    int64
	IsActive    bool
}

// CreateDepartment inserts a department.
func (q *Queries) CreateDepartment(ctx context.Context, arg CreateDepartmentParams) (model.Department, error) {
	now := time.Now()
	row := q.db.QueryRowContext(ctx, createDepartment,
		arg.Name, arg.Slug, arg.Description, arg.HeadName, arg.Email, arg.Phone,
		arg.Ordering, arg.IsActive, now, now)
	return scanDepartment(row)
}

const getDepartmentBySlug = `SELECT ` + departmentColumns + ` FROM departments WHERE slug = ?`

// GetDepartmentBySlug returns the department with the given slug.
func (q *Queries) GetDepartmentBySlug(ctx context.Context, slug string) (model.Department, error) {
	return scanDepartment(q.db.QueryRowContext(ctx, getDepartmentBySlug, slug))
}

const listActiveDepartments = `
SELECT ` + departmentColumns + ` FROM departments
WHERE is_active = 1 ORDER BY ordering, name`

// ListActiveDepartments returns active departments in display order.
func (q *Queries) ListActiveDepartments(ctx context.Context) ([]model.Department, error) {
	rows, err := q.db.QueryContext(ctx, listActiveDepartments)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deps []model.Department
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		deps = append(deps, d)
	}
	return deps, rows.Err()
}

const getDepartmentByID = `SELECT ` + departmentColumns + ` FROM departments WHERE id = ?`

// GetDepartmentByID returns the department with the given id.
func (q *Queries) GetDepartmentByID(ctx context.Context, id int64) (model.Department, error) {
	return scanDepartment(q.db.QueryRowContext(ctx, getDepartmentByID, id))
}

const listDepartments = `
SELECT ` + departmentColumns + ` FROM departments ORDER BY ordering, name`

// ListDepartments returns every department in display order.
func (q *Queries) ListDepartments(ctx context.Context) ([]model.Department, error) {
	rows, err := q.db.QueryContext(ctx, listDepartments)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deps []model.Department
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		deps = append(deps, d)
	}
	return deps, rows.Err()
}

const updateDepartment = `
UPDATE departments SET name = ?, slug = ?, description = ?, head_name = ?, email = ?,
	phone = ?, ordering = ?, is_active = ?, updated_at = ?
WHERE id = ?
RETURNING ` + departmentColumns

// UpdateDepartmentParams holds the arguments for UpdateDepartment.
type UpdateDepartmentParams struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	HeadName    string
	Email       string
	Phone       string
	Ordering    int64
	IsActive    bool
}

// UpdateDepartment rewrites a department row.
func (q *Queries) UpdateDepartment(ctx context.Context, arg UpdateDepartmentParams) (model.Department, error) {
	row := q.db.QueryRowContext(ctx, updateDepartment,
		arg.Name, arg.Slug, arg.Description, arg.HeadName, arg.Email, arg.Phone,
		arg.Ordering, arg.IsActive, time.Now(), arg.ID)
	return scanDepartment(row)
}

const countDepartmentSlug = `SELECT COUNT(*) FROM departments WHERE slug = ? AND id != ?`

// CountDepartmentSlug counts departments using a slug, excluding one id.
func (q *Queries) CountDepartmentSlug(ctx context.Context, slug string, excludeID int64) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countDepartmentSlug, slug, excludeID).Scan(&n)
	return n, err
}

const deleteDepartment = `DELETE FROM departments WHERE id = ?`

// DeleteDepartment removes a department.
func (q *Queries) DeleteDepartment(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteDepartment, id)
	return err
}

func scanDepartment(r rowScanner) (model.Department, error) {
	var d model.Department
	err := r.Scan(&d.ID, &d.Name, &d.Slug, &d.Description, &d.HeadName, &d.Email, &d.Phone,
		&d.Ordering, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}
