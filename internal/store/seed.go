// Copyright (c) 2025-2026 Joao M. Ribeiro
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmribeiro/newsdesk-go/internal/auth"
	"github.com/jmribeiro/newsdesk-go/internal/model"
	"github.com/jmribeiro/newsdesk-go/internal/util"
)

// Default admin credentials
const (
	DefaultAdminEmail     = "admin@example.com"
	DefaultAdminPassword  = "changeme"
	DefaultAdminFirstName = "Admin"
	DefaultAdminLastName  = "User"
)

// defaultCategories are the sections a fresh portal starts with.
var defaultCategories = []CreateCategoryParams{
	{Name: "Local", Slug: "local", Description: util.NullStringFromValue("Notícias da cidade e região metropolitana"), Color: "#2563EB"},
	{Name: "Regional", Slug: "regional", Description: util.NullStringFromValue("Notícias do estado e municípios vizinhos"), Color: "#16A34A"},
	{Name: "Nacional", Slug: "nacional", Description: util.NullStringFromValue("Notícias de todo o país"), Color: "#D97706"},
	{Name: "Internacional", Slug: "internacional", Description: util.NullStringFromValue("Notícias do mundo"), Color: "#DC2626"},
}

// Seed creates initial data in the database: the default admin account
// and the standard news sections. Running it again is a no-op for
// anything that already exists.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	if err := seedAdmin(ctx, queries); err != nil {
		return err
	}
	return seedCategories(ctx, queries)
}

func seedAdmin(ctx context.Context, queries *Queries) error {
	_, err := queries.GetUserByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user, err := queries.CreateUser(ctx, CreateUserParams{
		Email:        util.NullStringFromValue(DefaultAdminEmail),
		PasswordHash: passwordHash,
		FirstName:    DefaultAdminFirstName,
		LastName:     DefaultAdminLastName,
		Role:         model.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created default admin user",
		"id", user.ID,
		"email", user.Email.String,
		"password", DefaultAdminPassword,
	)
	return nil
}

func seedCategories(ctx context.Context, queries *Queries) error {
	for _, params := range defaultCategories {
		_, err := queries.GetCategoryBySlug(ctx, params.Slug)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("checking for category %s: %w", params.Slug, err)
		}

		category, err := queries.CreateCategory(ctx, params)
		if err != nil {
			return fmt.Errorf("creating category %s: %w", params.Slug, err)
		}
		slog.Info("created default category", "slug", category.Slug, "name", category.Name)
	}
	return nil
}
