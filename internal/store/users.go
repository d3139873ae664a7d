// Copyright (c) 2025-2026 Joao M. Ribeiro
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jmribeiro/newsdesk-go/internal/model"
	"github.com/jmribeiro/newsdesk-go/internal/util"
)

const userColumns = `id, email, password_hash, first_name, last_name,
	profile_image_url, role, is_active, created_at, updated_at`

// CreateUserParams holds the input for CreateUser. ID is generated
// when empty; identity-provider sync passes its own. Role defaults to
// editor and IsActive to true.
type CreateUserParams struct {
	ID              string
	Email           sql.NullString
	PasswordHash    string
	FirstName       string
	LastName        string
	ProfileImageURL sql.NullString
	Role            string
	IsActive        *bool
}

// CreateUser inserts a new user. A duplicate email surfaces as
// ErrDuplicate.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	role := arg.Role
	if role == "" {
		role = model.RoleEditor
	}
	if !model.IsValidRole(role) {
		return model.User{}, validationErr("role", fmt.Sprintf("must be one of %s", strings.Join(model.ValidRoles, ", ")))
	}

	id := arg.ID
	if id == "" {
		id = uuid.NewString()
	}
	active := true
	if arg.IsActive != nil {
		active = *arg.IsActive
	}

	now := time.Now().UTC()
	user := model.User{
		ID:              id,
		Email:           arg.Email,
		PasswordHash:    arg.PasswordHash,
		FirstName:       arg.FirstName,
		LastName:        arg.LastName,
		ProfileImageURL: arg.ProfileImageURL,
		Role:            role,
		IsActive:        active,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	_, err := q.db.ExecContext(ctx, `
		INSERT INTO users (
			id, email, password_hash, first_name, last_name,
			profile_image_url, role, is_active, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.ProfileImageURL, user.Role, user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return model.User{}, classifyErr(err)
	}

	return user, nil
}

// GetUserByID returns a user or ErrNotFound.
func (q *Queries) GetUserByID(ctx context.Context, id string) (model.User, error) {
	return q.getUser(ctx, "id = ?", id)
}

// GetUserByEmail returns a user or ErrNotFound.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return q.getUser(ctx, "email = ?", email)
}

// ListUsers returns all users ordered by name.
func (q *Queries) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users ORDER BY first_name, last_name
	`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// UpdateUserParams holds a partial patch for UpdateUser. Nil fields
// are left unchanged.
type UpdateUserParams struct {
	Email           *string
	PasswordHash    *string
	FirstName       *string
	LastName        *string
	ProfileImageURL *string
	Role            *string
	IsActive        *bool
}

// UpdateUser applies a partial patch and returns the updated row.
func (q *Queries) UpdateUser(ctx context.Context, id string, arg UpdateUserParams) (model.User, error) {
	user, err := q.GetUserByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}

	if arg.Email != nil {
		user.Email = util.NullStringFromValue(*arg.Email)
	}
	if arg.PasswordHash != nil {
		user.PasswordHash = *arg.PasswordHash
	}
	if arg.FirstName != nil {
		user.FirstName = *arg.FirstName
	}
	if arg.LastName != nil {
		user.LastName = *arg.LastName
	}
	if arg.ProfileImageURL != nil {
		user.ProfileImageURL = util.NullStringFromValue(*arg.ProfileImageURL)
	}
	if arg.Role != nil {
		if !model.IsValidRole(*arg.Role) {
			return model.User{}, validationErr("role", fmt.Sprintf("must be one of %s", strings.Join(model.ValidRoles, ", ")))
		}
		user.Role = *arg.Role
	}
	if arg.IsActive != nil {
		user.IsActive = *arg.IsActive
	}
	user.UpdatedAt = time.Now().UTC()

	_, err = q.db.ExecContext(ctx, `
		UPDATE users
		SET email = ?, password_hash = ?, first_name = ?, last_name = ?,
			profile_image_url = ?, role = ?, is_active = ?, updated_at = ?
		WHERE id = ?
	`,
		user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.ProfileImageURL, user.Role, user.IsActive, user.UpdatedAt, id,
	)
	if err != nil {
		return model.User{}, classifyErr(err)
	}

	return user, nil
}

// DeleteUser removes a user. The delete fails with ErrInvalidReference
// while articles still name the user as author. Returns whether a row
// was removed.
func (q *Queries) DeleteUser(ctx context.Context, id string) (bool, error) {
	result, err := q.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, classifyErr(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking rows affected: %w", err)
	}
	return rows > 0, nil
}

// UpsertUserParams holds the input for UpsertUser. ID is required: it
// is the external identity the upsert is keyed on.
type UpsertUserParams struct {
	Email           sql.NullString
	FirstName       string
	LastName        string
	ProfileImageURL sql.NullString
	Role            string
	IsActive        *bool
}

// UpsertUser inserts the user or, when the id already exists, refreshes
// its profile fields in place. The stored password hash and created_at
// survive updates untouched.
func (q *Queries) UpsertUser(ctx context.Context, id string, arg UpsertUserParams) (model.User, error) {
	if id == "" {
		return model.User{}, validationErr("id", "required")
	}
	role := arg.Role
	if role == "" {
		role = model.RoleEditor
	}
	if !model.IsValidRole(role) {
		return model.User{}, validationErr("role", fmt.Sprintf("must be one of %s", strings.Join(model.ValidRoles, ", ")))
	}
	active := true
	if arg.IsActive != nil {
		active = *arg.IsActive
	}

	now := time.Now().UTC()
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO users (
			id, email, password_hash, first_name, last_name,
			profile_image_url, role, is_active, created_at, updated_at
		) VALUES (?, ?, '', ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			email = excluded.email,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			profile_image_url = excluded.profile_image_url,
			role = excluded.role,
			is_active = excluded.is_active,
			updated_at = excluded.updated_at
	`,
		id, arg.Email, arg.FirstName, arg.LastName,
		arg.ProfileImageURL, role, active, now, now,
	)
	if err != nil {
		return model.User{}, classifyErr(err)
	}

	return q.GetUserByID(ctx, id)
}

func (q *Queries) getUser(ctx context.Context, cond string, arg any) (model.User, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+cond, arg)
	return scanUser(row)
}

func scanUser(row rowScanner) (model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.ProfileImageURL, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return model.User{}, classifyErr(err)
	}
	return u, nil
}
