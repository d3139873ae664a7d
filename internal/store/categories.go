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

// CreateCategoryParams holds the input for CreateCategory. Slug is
// derived from the name when empty; Color falls back to the default
// badge color.
type CreateCategoryParams struct {
	Name        string
	Slug        string
	Description sql.NullString
	Color       string
}

// CreateCategory inserts a new category. A duplicate slug surfaces as
// ErrDuplicate.
func (q *Queries) CreateCategory(ctx context.Context, arg CreateCategoryParams) (model.Category, error) {
	if strings.TrimSpace(arg.Name) == "" {
		return model.Category{}, validationErr("name", "required")
	}

	slug := arg.Slug
	if slug == "" {
		slug = util.Slugify(arg.Name)
	}
	if !util.IsValidSlug(slug) {
		return model.Category{}, validationErr("slug", "must contain only lowercase letters, digits and hyphens")
	}

	color := arg.Color
	if color == "" {
		color = model.DefaultCategoryColor
	}

	category := model.Category{
		ID:          uuid.NewString(),
		Name:        arg.Name,
		Slug:        slug,
		Description: arg.Description,
		Color:       color,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := q.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, slug, description, color, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, category.ID, category.Name, category.Slug, category.Description, category.Color, category.CreatedAt)
	if err != nil {
		return model.Category{}, classifyErr(err)
	}

	return category, nil
}

// GetCategoryByID returns a category or ErrNotFound.
func (q *Queries) GetCategoryByID(ctx context.Context, id string) (model.Category, error) {
	return q.getCategory(ctx, "id = ?", id)
}

// GetCategoryBySlug returns a category or ErrNotFound.
func (q *Queries) GetCategoryBySlug(ctx context.Context, slug string) (model.Category, error) {
	return q.getCategory(ctx, "slug = ?", slug)
}

// ListCategories returns all categories ordered by name.
func (q *Queries) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, name, slug, description, color, created_at
		FROM categories ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Color, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// UpdateCategoryParams holds a partial patch for UpdateCategory.
// Nil fields are left unchanged. Patching the name does not recompute
// the slug; pass Slug explicitly to change it.
type UpdateCategoryParams struct {
	Name        *string
	Slug        *string
	Description *string
	Color       *string
}

// UpdateCategory applies a partial patch and returns the updated row.
func (q *Queries) UpdateCategory(ctx context.Context, id string, arg UpdateCategoryParams) (model.Category, error) {
	category, err := q.GetCategoryByID(ctx, id)
	if err != nil {
		return model.Category{}, err
	}

	if arg.Name != nil {
		if strings.TrimSpace(*arg.Name) == "" {
			return model.Category{}, validationErr("name", "required")
		}
		category.Name = *arg.Name
	}
	if arg.Slug != nil {
		if !util.IsValidSlug(*arg.Slug) {
			return model.Category{}, validationErr("slug", "must contain only lowercase letters, digits and hyphens")
		}
		category.Slug = *arg.Slug
	}
	if arg.Description != nil {
		category.Description = util.NullStringFromValue(*arg.Description)
	}
	if arg.Color != nil {
		if *arg.Color == "" {
			category.Color = model.DefaultCategoryColor
		} else {
			category.Color = *arg.Color
		}
	}

	_, err = q.db.ExecContext(ctx, `
		UPDATE categories SET name = ?, slug = ?, description = ?, color = ?
		WHERE id = ?
	`, category.Name, category.Slug, category.Description, category.Color, id)
	if err != nil {
		return model.Category{}, classifyErr(err)
	}

	return category, nil
}

// DeleteCategory removes a category. Articles referencing it keep
// existing with their category detached. Returns whether a row was
// removed.
func (q *Queries) DeleteCategory(ctx context.Context, id string) (bool, error) {
	result, err := q.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return false, classifyErr(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking rows affected: %w", err)
	}
	return rows > 0, nil
}

func (q *Queries) getCategory(ctx context.Context, cond string, arg any) (model.Category, error) {
	var c model.Category
	err := q.db.QueryRowContext(ctx, `
		SELECT id, name, slug, description, color, created_at
		FROM categories WHERE `+cond, arg,
	).Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Color, &c.CreatedAt)
	if err != nil {
		return model.Category{}, classifyErr(err)
	}
	return c, nil
}
