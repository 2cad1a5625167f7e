// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/campuscms/campuscms/internal/auth"
	"github.com/campuscms/campuscms/internal/model"
)

// Default admin credentials
const (
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "changeme"
	DefaultAdminName     = "Administrator"
)

// Seed creates initial data in the database.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	// Check if admin user already exists
	_, err := queries.GetUserByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	// Hash the default password
	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user, err := queries.CreateUser(ctx, CreateUserParams{
		Email:        DefaultAdminEmail,
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
		Name:         DefaultAdminName,
		IsStaff:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created default admin user",
		"id", user.ID,
		"email", user.Email,
		"password", DefaultAdminPassword,
	)

	if err := seedNavigation(ctx, queries); err != nil {
		return fmt.Errorf("seeding navigation: %w", err)
	}

	// A lazy read materialises the all-true visibility record.
	if _, err := queries.GetVisibilitySettings(ctx); err != nil {
		return fmt.Errorf("seeding visibility settings: %w", err)
	}

	return nil
}

// seedNavigation creates the primary menu and a home page so a fresh
// install renders something.
func seedNavigation(ctx context.Context, queries *Queries) error {
	if _, err := queries.GetMenuBySlug(ctx, "main"); err == nil {
		return nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	home, err := queries.CreatePage(ctx, CreatePageParams{
		Title:    "Home",
		Slug:     "home",
		Template: model.TemplateLanding,
		IsActive: true,
	})
	if err != nil {
		return err
	}

	if _, err := queries.CreateContentBlock(ctx, CreateContentBlockParams{
		PageID:   home.ID,
		Kind:     model.BlockRichText,
		Title:    "Welcome",
		IsActive: true,
		Body:     "<p>Welcome to the college website.</p>",
	}); err != nil {
		return err
	}

	menu, err := queries.CreateMenu(ctx, CreateMenuParams{
		Title:    "Main Menu",
		Slug:     "main",
		IsActive: true,
	})
	if err != nil {
		return err
	}

	_, err = queries.CreateMenuItem(ctx, CreateMenuItemParams{
		MenuID:   menu.ID,
		Title:    "Home",
		Slug:     "home",
		LinkType: model.LinkInternal,
		PageID:   sql.NullInt64{Int64: home.ID, Valid: true},
		IsActive: true,
	})
	return err
}
