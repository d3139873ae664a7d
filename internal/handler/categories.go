// Copyright (c) 2025-2026 Joao M. Ribeiro
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jmribeiro/newsdesk-go/internal/middleware"
	"github.com/jmribeiro/newsdesk-go/internal/model"
	"github.com/jmribeiro/newsdesk-go/internal/store"
	"github.com/jmribeiro/newsdesk-go/internal/util"
)

// CreateCategoryRequest is the request body for POST /api/admin/categories.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"omitempty,max=100"`
	Description string `json:"description" validate:"max=500"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
}

// UpdateCategoryRequest is the request body for PUT /api/admin/categories/{id}.
// Absent fields are left unchanged.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Slug        *string `json:"slug" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Color       *string `json:"color" validate:"omitempty,hexcolor"`
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
}

func categoryToResponse(c model.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description.String,
		Color:       c.Color,
		CreatedAt:   c.CreatedAt,
	}
}

// ListCategories handles GET /api/categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.queries.ListCategories(r.Context())
	if err != nil {
		writeStoreError(w, err, "categories")
		return
	}

	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryToResponse(c))
	}
	WriteSuccess(w, out, nil)
}

// GetCategory handles GET /api/categories/{slug}.
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.queries.GetCategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeStoreError(w, err, "category")
		return
	}
	WriteSuccess(w, categoryToResponse(category), nil)
}

// CreateCategory handles POST /api/admin/categories.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	category, err := h.queries.CreateCategory(r.Context(), store.CreateCategoryParams{
		Name:        strings.TrimSpace(req.Name),
		Slug:        req.Slug,
		Description: util.NullStringFromValue(req.Description),
		Color:       req.Color,
	})
	if err != nil {
		writeStoreError(w, err, "category")
		return
	}

	slog.Info("category created", "category_id", category.ID, "slug", category.Slug, "user_id", middleware.GetUserID(r))
	WriteCreated(w, categoryToResponse(category))
}

// UpdateCategory handles PUT /api/admin/categories/{id}.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req UpdateCategoryRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	category, err := h.queries.UpdateCategory(r.Context(), chi.URLParam(r, "id"), store.UpdateCategoryParams{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		writeStoreError(w, err, "category")
		return
	}

	slog.Info("category updated", "category_id", category.ID, "user_id", middleware.GetUserID(r))
	WriteSuccess(w, categoryToResponse(category), nil)
}

// DeleteCategory handles DELETE /api/admin/categories/{id}. Articles in
// the category are detached, not deleted.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.queries.DeleteCategory(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "category")
		return
	}
	if !deleted {
		WriteNotFound(w, "Category not found")
		return
	}

	slog.Info("category deleted", "category_id", id, "user_id", middleware.GetUserID(r))
	w.WriteHeader(http.StatusNoContent)
}
