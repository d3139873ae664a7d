// Copyright (c) 2025-2026 Joao M. Ribeiro
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain records shared between the store and the
// HTTP layer: User, Category, Article, SavedArticle and Stats.
package model

import (
	"database/sql"
	"strings"
	"time"
)

// User roles. The role set is closed; see IsValidRole.
const (
	RoleAdmin      = "admin"
	RoleEditor     = "editor"
	RoleJournalist = "journalist"
)

// ValidRoles contains all valid user roles.
var ValidRoles = []string{RoleAdmin, RoleEditor, RoleJournalist}

// IsValidRole reports whether role belongs to the closed role set.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User represents a staff or reader account.
type User struct {
	ID              string         `json:"id"`
	Email           sql.NullString `json:"email"`
	PasswordHash    string         `json:"-"` // Never expose in JSON
	FirstName       string         `json:"first_name"`
	LastName        string         `json:"last_name"`
	ProfileImageURL sql.NullString `json:"profile_image_url"`
	Role            string         `json:"role"`
	IsActive        bool           `json:"is_active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// IsAdmin returns true if the user has admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
