// Copyright (c) 2025-2026 Joao M. Ribeiro
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmribeiro/newsdesk-go/internal/auth"
	"github.com/jmribeiro/newsdesk-go/internal/middleware"
	"github.com/jmribeiro/newsdesk-go/internal/model"
	"github.com/jmribeiro/newsdesk-go/internal/store"
)

// LoginRequest is the request body for POST /api/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse represents a user in API responses. The password hash
// never leaves the server.
type UserResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email,omitempty"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	Role            string    `json:"role"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func userToResponse(u model.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email.String,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL.String,
		Role:            u.Role,
		IsActive:        u.IsActive,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

// Login handles POST /api/login. Invalid email and invalid password
// produce the same response to prevent account enumeration.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.queries.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.Debug("login attempt for non-existent user", "email", req.Email)
		} else {
			slog.Error("database error during login", "error", err)
		}
		WriteUnauthorized(w, "Invalid credentials")
		return
	}

	valid, err := auth.CheckPassword(req.Password, user.PasswordHash)
	if err != nil || !valid {
		if err != nil {
			slog.Error("password check error", "error", err)
		} else {
			slog.Debug("invalid password attempt", "email", req.Email)
		}
		WriteUnauthorized(w, "Invalid credentials")
		return
	}

	if !user.IsActive {
		slog.Warn("login attempt for deactivated user", "user_id", user.ID)
		WriteUnauthorized(w, "Invalid credentials")
		return
	}

	// Re-hash password if it uses old parameters
	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, hashErr := auth.HashPassword(req.Password); hashErr == nil {
			if _, updErr := h.queries.UpdateUser(r.Context(), user.ID, store.UpdateUserParams{
				PasswordHash: &newHash,
			}); updErr != nil {
				slog.Error("failed to re-hash password", "error", updErr, "user_id", user.ID)
			}
		}
	}

	// Regenerate session ID to prevent session fixation
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		slog.Error("session renewal error", "error", err)
		WriteInternalError(w, "Failed to establish session")
		return
	}
	h.sessions.Put(r.Context(), middleware.SessionKeyUserID, user.ID)

	slog.Info("user logged in", "user_id", user.ID, "email", user.Email.String)
	WriteSuccess(w, userToResponse(user), nil)
}

// Logout handles POST /api/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := h.sessions.GetString(r.Context(), middleware.SessionKeyUserID)

	if err := h.sessions.Destroy(r.Context()); err != nil {
		slog.Error("session destroy error", "error", err)
		WriteInternalError(w, "Failed to destroy session")
		return
	}

	slog.Info("user logged out", "user_id", userID)
	w.WriteHeader(http.StatusNoContent)
}

// AuthUser handles GET /api/auth/user: the signed-in user's profile.
func (h *Handler) AuthUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, "Unauthorized")
		return
	}
	WriteSuccess(w, userToResponse(*user), nil)
}
