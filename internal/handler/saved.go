// Copyright (c) 2025-2026 Joao M. Ribeiro
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jmribeiro/newsdesk-go/internal/middleware"
	"github.com/jmribeiro/newsdesk-go/internal/model"
)

// SavedArticleResponse represents a bookmark in API responses.
type SavedArticleResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ArticleID string    `json:"article_id"`
	SavedAt   time.Time `json:"saved_at"`
}

func savedArticleToResponse(s model.SavedArticle) SavedArticleResponse {
	return SavedArticleResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		ArticleID: s.ArticleID,
		SavedAt:   s.CreatedAt,
	}
}

// ListSavedArticles handles GET /api/saved-articles: the signed-in
// user's reading list, most recently saved first.
func (h *Handler) ListSavedArticles(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	articles, err := h.queries.ListSavedArticles(r.Context(), userID)
	if err != nil {
		writeStoreError(w, err, "saved articles")
		return
	}
	WriteSuccess(w, articlesToResponse(articles), nil)
}

// SaveArticle handles POST /api/articles/{id}/save. Saving an already
// saved article returns the existing bookmark unchanged.
func (h *Handler) SaveArticle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	articleID := chi.URLParam(r, "id")

	saved, err := h.queries.SaveArticle(r.Context(), userID, articleID)
	if err != nil {
		writeStoreError(w, err, "saved article")
		return
	}

	slog.Info("article saved", "user_id", userID, "article_id", articleID)
	WriteCreated(w, savedArticleToResponse(saved))
}

// UnsaveArticle handles DELETE /api/articles/{id}/save. Removing a
// bookmark that does not exist is a no-op.
func (h *Handler) UnsaveArticle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	articleID := chi.URLParam(r, "id")

	if _, err := h.queries.UnsaveArticle(r.Context(), userID, articleID); err != nil {
		writeStoreError(w, err, "saved article")
		return
	}

	slog.Info("article unsaved", "user_id", userID, "article_id", articleID)
	w.WriteHeader(http.StatusNoContent)
}

// IsArticleSaved handles GET /api/articles/{id}/is-saved.
func (h *Handler) IsArticleSaved(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	articleID := chi.URLParam(r, "id")

	saved, err := h.queries.IsArticleSaved(r.Context(), userID, articleID)
	if err != nil {
		writeStoreError(w, err, "saved article")
		return
	}
	WriteSuccess(w, map[string]bool{"saved": saved}, nil)
}
