// Copyright (c) 2025-2026 Joao M. Ribeiro
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jmribeiro/newsdesk-go/internal/auth"
	"github.com/jmribeiro/newsdesk-go/internal/middleware"
	"github.com/jmribeiro/newsdesk-go/internal/store"
	"github.com/jmribeiro/newsdesk-go/internal/util"
)

// CreateUserRequest is the request body for POST /api/admin/users.
type CreateUserRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8,max=128"`
	FirstName       string `json:"first_name" validate:"max=100"`
	LastName        string `json:"last_name" validate:"max=100"`
	ProfileImageURL string `json:"profile_image_url" validate:"omitempty,url"`
	Role            string `json:"role" validate:"omitempty,oneof=admin editor journalist"`
	IsActive        *bool  `json:"is_active"`
}

// UpdateUserRequest is the request body for PATCH /api/admin/users/{id}.
// Absent fields are left unchanged.
type UpdateUserRequest struct {
	Email           *string `json:"email" validate:"omitempty,email"`
	Password        *string `json:"password" validate:"omitempty,min=8,max=128"`
	FirstName       *string `json:"first_name" validate:"omitempty,max=100"`
	LastName        *string `json:"last_name" validate:"omitempty,max=100"`
	ProfileImageURL *string `json:"profile_image_url" validate:"omitempty,url"`
	Role            *string `json:"role" validate:"omitempty,oneof=admin editor journalist"`
	IsActive        *bool   `json:"is_active"`
}

// UpsertUserRequest is the request body for PUT /api/admin/users/{id}:
// profile sync keyed on an externally assigned ID. Password and
// creation time are never touched by a sync.
type UpsertUserRequest struct {
	Email           string `json:"email" validate:"omitempty,email"`
	FirstName       string `json:"first_name" validate:"max=100"`
	LastName        string `json:"last_name" validate:"max=100"`
	ProfileImageURL string `json:"profile_image_url" validate:"omitempty,url"`
	Role            string `json:"role" validate:"omitempty,oneof=admin editor journalist"`
	IsActive        *bool  `json:"is_active"`
}

// ListUsers handles GET /api/admin/users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.queries.ListUsers(r.Context())
	if err != nil {
		writeStoreError(w, err, "users")
		return
	}

	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userToResponse(u))
	}
	WriteSuccess(w, out, nil)
}

// GetUser handles GET /api/admin/users/{id}.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.queries.GetUserByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err, "user")
		return
	}
	WriteSuccess(w, userToResponse(user), nil)
}

// CreateUser handles POST /api/admin/users.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("password hashing failed", "error", err)
		WriteInternalError(w, "Failed to process user")
		return
	}

	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Email:           util.NullStringFromValue(req.Email),
		PasswordHash:    hash,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ProfileImageURL: util.NullStringFromValue(req.ProfileImageURL),
		Role:            req.Role,
		IsActive:        req.IsActive,
	})
	if err != nil {
		writeStoreError(w, err, "user")
		return
	}

	slog.Info("user created", "user_id", user.ID, "role", user.Role, "created_by", middleware.GetUserID(r))
	WriteCreated(w, userToResponse(user))
}

// UpdateUser handles PATCH /api/admin/users/{id}.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	params := store.UpdateUserParams{
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ProfileImageURL: req.ProfileImageURL,
		Role:            req.Role,
		IsActive:        req.IsActive,
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			slog.Error("password hashing failed", "error", err)
			WriteInternalError(w, "Failed to process user")
			return
		}
		params.PasswordHash = &hash
	}

	user, err := h.queries.UpdateUser(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		writeStoreError(w, err, "user")
		return
	}

	slog.Info("user updated", "user_id", user.ID, "updated_by", middleware.GetUserID(r))
	WriteSuccess(w, userToResponse(user), nil)
}

// UpsertUser handles PUT /api/admin/users/{id}.
func (h *Handler) UpsertUser(w http.ResponseWriter, r *http.Request) {
	var req UpsertUserRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.queries.UpsertUser(r.Context(), chi.URLParam(r, "id"), store.UpsertUserParams{
		Email:           util.NullStringFromValue(req.Email),
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ProfileImageURL: util.NullStringFromValue(req.ProfileImageURL),
		Role:            req.Role,
		IsActive:        req.IsActive,
	})
	if err != nil {
		writeStoreError(w, err, "user")
		return
	}

	slog.Info("user synced", "user_id", user.ID, "synced_by", middleware.GetUserID(r))
	WriteSuccess(w, userToResponse(user), nil)
}

// DeleteUser handles DELETE /api/admin/users/{id}. Self-deletion is
// rejected; users with authored articles cannot be removed.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if actor := middleware.GetUser(r); actor != nil && actor.ID == id {
		WriteBadRequest(w, "Cannot delete your own account", nil)
		return
	}

	deleted, err := h.queries.DeleteUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrConstraint) {
			WriteConflict(w, "User has authored articles and cannot be deleted")
			return
		}
		writeStoreError(w, err, "user")
		return
	}
	if !deleted {
		WriteNotFound(w, "User not found")
		return
	}

	slog.Info("user deleted", "user_id", id, "deleted_by", middleware.GetUserID(r))
	w.WriteHeader(http.StatusNoContent)
}
