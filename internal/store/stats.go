// Copyright (c) 2025-2026 Joao M. Ribeiro
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/jmribeiro/newsdesk-go/internal/model"
)

// GetStats aggregates whole-table counters for the dashboard. The
// counts are independent queries, not a snapshot: writes landing
// between them may show through.
func (q *Queries) GetStats(ctx context.Context) (model.Stats, error) {
	var stats model.Stats

	counts := []struct {
		query string
		dest  *int64
	}{
		{`SELECT COUNT(*) FROM articles`, &stats.TotalArticles},
		{`SELECT COUNT(*) FROM articles WHERE status = 'published'`, &stats.PublishedArticles},
		{`SELECT COUNT(*) FROM articles WHERE status = 'draft'`, &stats.DraftArticles},
		{`SELECT COUNT(*) FROM users`, &stats.TotalUsers},
		{`SELECT COALESCE(SUM(view_count), 0) FROM articles`, &stats.TotalViews},
	}

	for _, c := range counts {
		if err := q.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return model.Stats{}, fmt.Errorf("aggregating stats: %w", err)
		}
	}

	return stats, nil
}
