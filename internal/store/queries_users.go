// Copyright (c) 2025-2026 Campus CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/campuscms/campuscms/internal/model"
)

const createUser = `
INSERT INTO users (email, password_hash, role, name, is_staff, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, email, password_hash, role, name, is_staff, created_at, updated_at, last_login_at
`

// CreateUserParams holds the arguments for CreateUser.
type CreateUserParams struct {
	Email        string
	PasswordHash string
	Role         string
	Name         string
	IsStaff      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateUser inserts a user and returns the stored row.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	row := q.db.QueryRowContext(ctx, createUser,
		arg.Email, arg.PasswordHash, arg.Role, arg.Name, arg.IsStaff, arg.CreatedAt, arg.UpdatedAt)
	return scanUser(row)
}

const getUserByEmail = `
SELECT id, email, password_hash, role, name, is_staff, created_at, updated_at, last_login_at
FROM users WHERE email = ?
`

// GetUserByEmail returns the user with the given email.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByEmail, email))
}

const getUserByID = `
SELECT id, email, password_hash, role, name, is_staff, created_at, updated_at, last_login_at
FROM users WHERE id = ?
`

// GetUserByID returns the user with the given id.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByID, id))
}

const listUsers = `
SELECT id, email, password_hash, role, name, is_staff, created_at, updated_at, last_login_at
FROM users ORDER BY email
`

// ListUsers returns all users ordered by email.
func (q *Queries) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := q.db.QueryContext(ctx, listUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

const touchUserLogin = `
UPDATE users SET last_login_at = ?, updated_at = ? WHERE id = ?
`

// TouchUserLogin records a successful login.
func (q *Queries) TouchUserLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := q.db.ExecContext(ctx, touchUserLogin, at, at, id)
	return err
}

const updateUser = `
UPDATE users SET email = ?, role = ?, name = ?, is_staff = ?, updated_at = ?
WHERE id = ?
RETURNING id, email, password_hash, role, name, is_staff, created_at, updated_at, last_login_at
`

// UpdateUserParams holds the arguments for UpdateUser.
type UpdateUserParams struct {
	ID      int64
	Email   string
	Role    string
	Name    string
	IsStaff bool
}

// UpdateUser updates a user's profile fields. The password hash is
// untouched; use UpdateUserPassword for that.
func (q *Queries) UpdateUser(ctx context.Context, arg UpdateUserParams) (model.User, error) {
	row := q.db.QueryRowContext(ctx, updateUser,
		arg.Email, arg.Role, arg.Name, arg.IsStaff, time.Now(), arg.ID)
	return scanUser(row)
}

const updateUserPassword = `
UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?
`

// UpdateUserPassword replaces a user's password hash.
func (q *Queries) UpdateUserPassword(ctx context.Context, id int64, hash string) error {
	_, err := q.db.ExecContext(ctx, updateUserPassword, hash, time.Now(), id)
	return err
}

const deleteUser = `DELETE FROM users WHERE id = ?`

// DeleteUser removes a user.
func (q *Queries) DeleteUser(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteUser, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(r rowScanner) (model.User, error) {
	var u model.User
	err := r.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Name, &u.IsStaff,
		&u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt)
	return u, err
}
