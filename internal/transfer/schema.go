// Copyright (c) 2025-2026 Joao M. Ribeiro
// SPDX-License-Identifier: GPL-3.0-or-later

// Package transfer provides import/export of newsroom content as a
// portable JSON document. Rows reference each other by natural keys
// (category slug, author email) so an export restores cleanly into a
// database with different generated IDs.
package transfer

import "time"

// ExportVersion is the current version of the export format.
const ExportVersion = "1.0"

// ExportData is the complete export document.
type ExportData struct {
	Version    string           `json:"version"`
	ExportedAt time.Time        `json:"exported_at"`
	Users      []ExportUser     `json:"users,omitempty"`
	Categories []ExportCategory `json:"categories,omitempty"`
	Articles   []ExportArticle  `json:"articles,omitempty"`
}

// ExportUser is a user profile for export. Password hashes never leave
// the database; restored accounts cannot sign in until a new password
// is set.
type ExportUser struct {
	Email           string    `json:"email"`
	FirstName       string    `json:"first_name,omitempty"`
	LastName        string    `json:"last_name,omitempty"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	Role            string    `json:"role"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

// ExportCategory is a category for export.
type ExportCategory struct {
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExportArticle is an article with its relationships flattened to
// natural keys.
type ExportArticle struct {
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Excerpt      string     `json:"excerpt,omitempty"`
	Content      string     `json:"content"`
	ImageURL     string     `json:"image_url,omitempty"`
	VideoURL     string     `json:"video_url,omitempty"`
	Status       string     `json:"status"`
	CategorySlug string     `json:"category_slug,omitempty"`
	AuthorEmail  string     `json:"author_email"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	ViewCount    int64      `json:"view_count"`
	Tags         []string   `json:"tags,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
