// Copyright (c) 2025-2026 Joao M. Ribeiro
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// DefaultCategoryColor is the color assigned to categories created
// without an explicit one.
const DefaultCategoryColor = "#3498DB"

// Category groups articles into a flat taxonomy.
type Category struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Description sql.NullString `json:"description"`
	Color       string         `json:"color"`
	CreatedAt   time.Time      `json:"created_at"`
}
