// Copyright (c) 2025-2026 Joao M. Ribeiro
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmribeiro/newsdesk-go/internal/model"
	"github.com/jmribeiro/newsdesk-go/internal/store"
)

// exportPageSize is the batch size used when walking the article table.
const exportPageSize = 200

// Exporter serializes newsroom content to the export format.
type Exporter struct {
	store  *store.Queries
	logger *slog.Logger
}

// NewExporter creates a new Exporter.
func NewExporter(queries *store.Queries, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{store: queries, logger: logger}
}

// Export collects all users, categories and articles into a single
// document.
func (e *Exporter) Export(ctx context.Context) (*ExportData, error) {
	data := &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now().UTC(),
	}

	users, err := e.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("exporting users: %w", err)
	}
	for _, u := range users {
		if !u.Email.Valid || u.Email.String == "" {
			e.logger.Warn("skipping user without email in export", "user_id", u.ID)
			continue
		}
		data.Users = append(data.Users, ExportUser{
			Email:           u.Email.String,
			FirstName:       u.FirstName,
			LastName:        u.LastName,
			ProfileImageURL: u.ProfileImageURL.String,
			Role:            u.Role,
			IsActive:        u.IsActive,
			CreatedAt:       u.CreatedAt,
		})
	}

	categories, err := e.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("exporting categories: %w", err)
	}
	for _, c := range categories {
		data.Categories = append(data.Categories, ExportCategory{
			Name:        c.Name,
			Slug:        c.Slug,
			Description: c.Description.String,
			Color:       c.Color,
			CreatedAt:   c.CreatedAt,
		})
	}

	for offset := 0; ; offset += exportPageSize {
		batch, err := e.store.ListArticles(ctx, store.ArticleFilter{
			Limit:  exportPageSize,
			Offset: offset,
		})
		if err != nil {
			return nil, fmt.Errorf("exporting articles: %w", err)
		}
		for _, a := range batch {
			data.Articles = append(data.Articles, exportArticle(a))
		}
		if len(batch) < exportPageSize {
			break
		}
	}

	e.logger.Info("content exported",
		"users", len(data.Users),
		"categories", len(data.Categories),
		"articles", len(data.Articles))
	return data, nil
}

// ExportToWriter writes the export document as indented JSON.
func (e *Exporter) ExportToWriter(ctx context.Context, w io.Writer) error {
	data, err := e.Export(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func exportArticle(a model.ArticleWithRelations) ExportArticle {
	out := ExportArticle{
		Title:       a.Title,
		Slug:        a.Slug,
		Excerpt:     a.Excerpt.String,
		Content:     a.Content,
		ImageURL:    a.ImageURL.String,
		VideoURL:    a.VideoURL.String,
		Status:      a.Status,
		AuthorEmail: a.Author.Email.String,
		ViewCount:   a.ViewCount,
		Tags:        a.TagList(),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if a.Category != nil {
		out.CategorySlug = a.Category.Slug
	}
	if a.PublishedAt.Valid {
		t := a.PublishedAt.Time
		out.PublishedAt = &t
	}
	return out
}
