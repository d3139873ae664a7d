// Copyright (c) 2025-2026 Joao M. Ribeiro
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Stats holds dashboard aggregates. All five numbers are independent
// aggregates computed from current table contents at read time.
type Stats struct {
	TotalArticles     int64 `json:"total_articles"`
	PublishedArticles int64 `json:"published_articles"`
	DraftArticles     int64 `json:"draft_articles"`
	TotalUsers        int64 `json:"total_users"`
	TotalViews        int64 `json:"total_views"`
}
