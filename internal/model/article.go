// Copyright (c) 2025-2026 Joao M. Ribeiro
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"strings"
	"time"
)

// Article statuses
const (
	StatusDraft     = "draft"
	StatusReview    = "review"
	StatusPublished = "published"
)

// ValidStatuses contains all valid article statuses.
var ValidStatuses = []string{StatusDraft, StatusReview, StatusPublished}

// IsValidStatus reports whether status is a known article status.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Article represents a news article as persisted.
//
// CategoryID is nullable: deleting a category detaches its articles
// rather than deleting them, and reads must treat a missing category as
// "unknown category".
type Article struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Excerpt     sql.NullString `json:"excerpt"`
	Content     string         `json:"content"`
	ImageURL    sql.NullString `json:"image_url"`
	VideoURL    sql.NullString `json:"video_url"`
	Status      string         `json:"status"`
	CategoryID  sql.NullString `json:"category_id"`
	AuthorID    string         `json:"author_id"`
	PublishedAt sql.NullTime   `json:"published_at"`
	ViewCount   int64          `json:"view_count"`
	Tags        sql.NullString `json:"tags"` // Comma-separated
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// IsPublished returns true if the article is published.
func (a *Article) IsPublished() bool {
	return a.Status == StatusPublished
}

// IsDraft returns true if the article is a draft.
func (a *Article) IsDraft() bool {
	return a.Status == StatusDraft
}

// TagList splits the comma-separated tags field into trimmed tags.
func (a *Article) TagList() []string {
	if !a.Tags.Valid || a.Tags.String == "" {
		return nil
	}
	parts := strings.Split(a.Tags.String, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ArticleWithRelations is the read-time projection of an article with
// its category and author attached. It is distinct from the persisted
// row shape: Category is nil when the referenced category no longer
// exists.
type ArticleWithRelations struct {
	Article
	Category *Category `json:"category"`
	Author   User      `json:"author"`
}
