// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Notification priorities.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Priorities contains all valid notification priorities.
var Priorities = []string{PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent}

// IsValidPriority checks a priority against the closed set.
func IsValidPriority(p string) bool {
	for _, v := range Priorities {
		if v == p {
			return true
		}
	}
	return false
}

// ScrollingNotification is a ticker entry shown on the homepage. It is
// visible while its schedule window is open.
type ScrollingNotification struct {
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
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InWindow reports whether the notification's schedule window contains now.
func (n *ScrollingNotification) InWindow(now time.Time) bool {
	if n.StartDate.After(now) {
		return false
	}
	return !n.EndDate.Valid || !n.EndDate.Time.Before(now)
}

// SliderImage is a homepage hero carousel slide.
type SliderImage struct {
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
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// InWindow reports whether the slide's schedule window contains now.
// A null start means visible since creation.
func (s *SliderImage) InWindow(now time.Time) bool {
	if s.StartDate.Valid && s.StartDate.Time.After(now) {
		return false
	}
	return !s.EndDate.Valid || !s.EndDate.Time.Before(now)
}

// Notice is a dated announcement listed on notice boards and counted
// for the "recent notices" badge.
type Notice struct {
	ID             int64
	Title          string
	Slug           string
	Content        string
	AttachmentPath string
	PublishDate    time.Time
	ExpiryDate     sql.NullTime
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Department is an academic department referenced from pages and menus.
type Department struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	HeadName    string
	Email       string
	Phone       string
	Ordering    int64
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
