// Copyright (c) 2025-2026 Joao M. Ribeiro
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// SavedArticle is a user's "read later" marker on an article.
// At most one row exists per (user, article) pair; the store enforces
// this with a uniqueness constraint.
type SavedArticle struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ArticleID string    `json:"article_id"`
	CreatedAt time.Time `json:"created_at"`
}
