// Copyright (c) 2025-2026 Joao M. Ribeiro
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jmribeiro/newsdesk-go/internal/model"
	"github.com/jmribeiro/newsdesk-go/internal/store"
	"github.com/jmribeiro/newsdesk-go/internal/util"
)

// ImportOptions controls what an import touches.
type ImportOptions struct {
	DryRun           bool
	ImportUsers      bool
	ImportCategories bool
	ImportArticles   bool
}

// DefaultImportOptions imports everything for real.
func DefaultImportOptions() ImportOptions {
	return ImportOptions{
		ImportUsers:      true,
		ImportCategories: true,
		ImportArticles:   true,
	}
}

// ImportError describes a single entity that could not be imported.
type ImportError struct {
	Entity  string `json:"entity"`
	Key     string `json:"key"`
	Message string `json:"message"`
}

// ImportResult summarizes an import run. Existing rows are never
// overwritten; they are counted as skipped.
type ImportResult struct {
	Success bool           `json:"success"`
	DryRun  bool           `json:"dry_run"`
	Created map[string]int `json:"created"`
	Skipped map[string]int `json:"skipped"`
	Errors  []ImportError  `json:"errors,omitempty"`
}

// NewImportResult creates an empty result.
func NewImportResult(dryRun bool) *ImportResult {
	return &ImportResult{
		Success: true,
		DryRun:  dryRun,
		Created: make(map[string]int),
		Skipped: make(map[string]int),
	}
}

// IncrementCreated counts a created entity.
func (r *ImportResult) IncrementCreated(entity string) { r.Created[entity]++ }

// IncrementSkipped counts a skipped entity.
func (r *ImportResult) IncrementSkipped(entity string) { r.Skipped[entity]++ }

// AddError records an entity failure and marks the run unsuccessful.
func (r *ImportResult) AddError(entity, key, message string) {
	r.Success = false
	r.Errors = append(r.Errors, ImportError{Entity: entity, Key: key, Message: message})
}

// TotalCreated sums created counts across entities.
func (r *ImportResult) TotalCreated() int {
	total := 0
	for _, n := range r.Created {
		total += n
	}
	return total
}

// TotalSkipped sums skipped counts across entities.
func (r *ImportResult) TotalSkipped() int {
	total := 0
	for _, n := range r.Skipped {
		total += n
	}
	return total
}

// Importer restores newsroom content from an export document.
type Importer struct {
	store  *store.Queries
	logger *slog.Logger
}

// NewImporter creates a new Importer.
func NewImporter(queries *store.Queries, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{store: queries, logger: logger}
}

// Validate checks the document structure without touching the database.
func (i *Importer) Validate(data *ExportData) []ImportError {
	var errs []ImportError
	add := func(entity, key, message string) {
		errs = append(errs, ImportError{Entity: entity, Key: key, Message: message})
	}

	if data.Version != ExportVersion {
		add("document", "version", fmt.Sprintf("unsupported export version %q", data.Version))
	}

	for _, u := range data.Users {
		if u.Email == "" {
			add("user", u.FirstName+" "+u.LastName, "missing email")
		}
		if !model.IsValidRole(u.Role) {
			add("user", u.Email, fmt.Sprintf("unknown role %q", u.Role))
		}
	}

	for _, c := range data.Categories {
		if c.Name == "" {
			add("category", c.Slug, "missing name")
		}
		if !util.IsValidSlug(c.Slug) {
			add("category", c.Name, fmt.Sprintf("invalid slug %q", c.Slug))
		}
	}

	for _, a := range data.Articles {
		switch {
		case a.Title == "":
			add("article", a.Slug, "missing title")
		case a.Content == "":
			add("article", a.Slug, "missing content")
		case a.AuthorEmail == "":
			add("article", a.Slug, "missing author email")
		case !model.IsValidStatus(a.Status):
			add("article", a.Slug, fmt.Sprintf("unknown status %q", a.Status))
		}
	}

	return errs
}

// Import restores the document's content. Rows whose natural key
// already exists are skipped, so re-importing the same document is
// idempotent.
func (i *Importer) Import(ctx context.Context, data *ExportData, opts ImportOptions) (*ImportResult, error) {
	result := NewImportResult(opts.DryRun)

	if errs := i.Validate(data); len(errs) > 0 {
		result.Success = false
		result.Errors = errs
		return result, nil
	}

	if opts.ImportUsers {
		i.importUsers(ctx, data.Users, opts, result)
	}
	if opts.ImportCategories {
		i.importCategories(ctx, data.Categories, opts, result)
	}
	if opts.ImportArticles {
		i.importArticles(ctx, data.Articles, opts, result)
	}

	i.logger.Info("content import finished",
		"dry_run", opts.DryRun,
		"created", result.TotalCreated(),
		"skipped", result.TotalSkipped(),
		"errors", len(result.Errors))
	return result, nil
}

// ImportFromReader decodes an export document from r and imports it.
func (i *Importer) ImportFromReader(ctx context.Context, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	var data ExportData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding export document: %w", err)
	}
	return i.Import(ctx, &data, opts)
}

func (i *Importer) importUsers(ctx context.Context, users []ExportUser, opts ImportOptions, result *ImportResult) {
	for _, u := range users {
		_, err := i.store.GetUserByEmail(ctx, u.Email)
		if err == nil {
			result.IncrementSkipped("users")
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			result.AddError("user", u.Email, err.Error())
			continue
		}

		if !opts.DryRun {
			active := u.IsActive
			// Imported accounts carry no password hash and cannot
			// sign in until one is set.
			_, err = i.store.CreateUser(ctx, store.CreateUserParams{
				Email:           util.NullStringFromValue(u.Email),
				FirstName:       u.FirstName,
				LastName:        u.LastName,
				ProfileImageURL: util.NullStringFromValue(u.ProfileImageURL),
				Role:            u.Role,
				IsActive:        &active,
			})
			if err != nil {
				result.AddError("user", u.Email, err.Error())
				continue
			}
		}
		result.IncrementCreated("users")
	}
}

func (i *Importer) importCategories(ctx context.Context, categories []ExportCategory, opts ImportOptions, result *ImportResult) {
	for _, c := range categories {
		_, err := i.store.GetCategoryBySlug(ctx, c.Slug)
		if err == nil {
			result.IncrementSkipped("categories")
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			result.AddError("category", c.Slug, err.Error())
			continue
		}

		if !opts.DryRun {
			_, err = i.store.CreateCategory(ctx, store.CreateCategoryParams{
				Name:        c.Name,
				Slug:        c.Slug,
				Description: util.NullStringFromValue(c.Description),
				Color:       c.Color,
			})
			if err != nil {
				result.AddError("category", c.Slug, err.Error())
				continue
			}
		}
		result.IncrementCreated("categories")
	}
}

func (i *Importer) importArticles(ctx context.Context, articles []ExportArticle, opts ImportOptions, result *ImportResult) {
	for _, a := range articles {
		_, err := i.store.GetArticleBySlug(ctx, a.Slug)
		if err == nil {
			result.IncrementSkipped("articles")
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			result.AddError("article", a.Slug, err.Error())
			continue
		}

		// References may target rows created earlier in this same run,
		// so a dry run cannot resolve them.
		if opts.DryRun {
			result.IncrementCreated("articles")
			continue
		}

		author, err := i.store.GetUserByEmail(ctx, a.AuthorEmail)
		if err != nil {
			result.AddError("article", a.Slug, fmt.Sprintf("author %q not found", a.AuthorEmail))
			continue
		}

		var categoryID string
		if a.CategorySlug != "" {
			category, err := i.store.GetCategoryBySlug(ctx, a.CategorySlug)
			if err != nil {
				result.AddError("article", a.Slug, fmt.Sprintf("category %q not found", a.CategorySlug))
				continue
			}
			categoryID = category.ID
		}

		var publishedAt sql.NullTime
		if a.PublishedAt != nil {
			publishedAt = util.NullTimeFromValue(*a.PublishedAt)
		}
		_, err = i.store.CreateArticle(ctx, store.CreateArticleParams{
			Title:       a.Title,
			Content:     a.Content,
			Excerpt:     util.NullStringFromValue(a.Excerpt),
			ImageURL:    util.NullStringFromValue(a.ImageURL),
			VideoURL:    util.NullStringFromValue(a.VideoURL),
			Status:      a.Status,
			CategoryID:  categoryID,
			AuthorID:    author.ID,
			Tags:        util.NullStringFromValue(strings.Join(a.Tags, ",")),
			PublishedAt: publishedAt,
		})
		if err != nil {
			result.AddError("article", a.Slug, err.Error())
			continue
		}
		result.IncrementCreated("articles")
	}
}
