// Copyright (c) 2025-2026 Joao M. Ribeiro
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jmribeiro/newsdesk-go/internal/middleware"
	"github.com/jmribeiro/newsdesk-go/internal/model"
	"github.com/jmribeiro/newsdesk-go/internal/store"
	"github.com/jmribeiro/newsdesk-go/internal/util"
)

// CreateArticleRequest is the request body for POST /api/articles.
type CreateArticleRequest struct {
	Title      string   `json:"title" validate:"required,max=300"`
	Content    string   `json:"content" validate:"required"`
	Excerpt    string   `json:"excerpt" validate:"max=1000"`
	ImageURL   string   `json:"image_url" validate:"omitempty,url"`
	VideoURL   string   `json:"video_url" validate:"omitempty,url"`
	Status     string   `json:"status" validate:"omitempty,oneof=draft review published"`
	CategoryID string   `json:"category_id" validate:"required"`
	Tags       []string `json:"tags" validate:"max=20,dive,max=50"`
}

// UpdateArticleRequest is the request body for PUT /api/articles/{id}.
// Absent fields are left unchanged.
type UpdateArticleRequest struct {
	Title      *string   `json:"title" validate:"omitempty,max=300"`
	Content    *string   `json:"content"`
	Excerpt    *string   `json:"excerpt" validate:"omitempty,max=1000"`
	ImageURL   *string   `json:"image_url" validate:"omitempty,url"`
	VideoURL   *string   `json:"video_url" validate:"omitempty,url"`
	Status     *string   `json:"status" validate:"omitempty,oneof=draft review published"`
	CategoryID *string   `json:"category_id"`
	Tags       *[]string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
}

// ArticleResponse represents an article in API responses.
type ArticleResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Slug        string            `json:"slug"`
	Excerpt     string            `json:"excerpt,omitempty"`
	Content     string            `json:"content"`
	ImageURL    string            `json:"image_url,omitempty"`
	VideoURL    string            `json:"video_url,omitempty"`
	Status      string            `json:"status"`
	CategoryID  string            `json:"category_id,omitempty"`
	AuthorID    string            `json:"author_id"`
	PublishedAt *time.Time        `json:"published_at,omitempty"`
	ViewCount   int64             `json:"view_count"`
	Tags        []string          `json:"tags,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Category    *CategoryResponse `json:"category,omitempty"`
	Author      *UserResponse     `json:"author,omitempty"`
}

func articleToResponse(a model.Article) ArticleResponse {
	resp := ArticleResponse{
		ID:         a.ID,
		Title:      a.Title,
		Slug:       a.Slug,
		Excerpt:    a.Excerpt.String,
		Content:    a.Content,
		ImageURL:   a.ImageURL.String,
		VideoURL:   a.VideoURL.String,
		Status:     a.Status,
		CategoryID: a.CategoryID.String,
		AuthorID:   a.AuthorID,
		ViewCount:  a.ViewCount,
		Tags:       a.TagList(),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
	if a.PublishedAt.Valid {
		t := a.PublishedAt.Time
		resp.PublishedAt = &t
	}
	return resp
}

func articleWithRelationsToResponse(a model.ArticleWithRelations) ArticleResponse {
	resp := articleToResponse(a.Article)
	if a.Category != nil {
		c := categoryToResponse(*a.Category)
		resp.Category = &c
	}
	author := userToResponse(a.Author)
	resp.Author = &author
	return resp
}

func articlesToResponse(articles []model.ArticleWithRelations) []ArticleResponse {
	out := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, articleWithRelationsToResponse(a))
	}
	return out
}

// maxPerPage caps the page size a client can request.
const maxPerPage = 100

// parsePagination reads page/per_page query parameters with sane
// defaults and caps.
func parsePagination(r *http.Request) (page, perPage int) {
	page = 1
	perPage = store.DefaultArticleLimit

	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := r.URL.Query().Get("per_page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			perPage = n
			if perPage > maxPerPage {
				perPage = maxPerPage
			}
		}
	}
	return page, perPage
}

func articleFilterFromRequest(r *http.Request) (store.ArticleFilter, *Meta) {
	page, perPage := parsePagination(r)
	q := r.URL.Query()
	filter := store.ArticleFilter{
		Status:     q.Get("status"),
		CategoryID: q.Get("category_id"),
		AuthorID:   q.Get("author_id"),
		Search:     strings.TrimSpace(q.Get("q")),
		Limit:      perPage,
		Offset:     (page - 1) * perPage,
	}
	return filter, &Meta{Page: page, PerPage: perPage}
}

// ListPublishedArticles handles GET /api/articles: the public feed.
// Only published articles are returned regardless of filters.
func (h *Handler) ListPublishedArticles(w http.ResponseWriter, r *http.Request) {
	filter, meta := articleFilterFromRequest(r)

	articles, err := h.queries.ListPublishedArticles(r.Context(), filter)
	if err != nil {
		writeStoreError(w, err, "articles")
		return
	}
	WriteSuccess(w, articlesToResponse(articles), meta)
}

// GetPublishedArticle handles GET /api/articles/{slug}. Unpublished
// articles are indistinguishable from missing ones.
func (h *Handler) GetPublishedArticle(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	article, err := h.queries.GetArticleBySlug(r.Context(), slug)
	if err != nil {
		writeStoreError(w, err, "article")
		return
	}
	if !article.IsPublished() {
		WriteNotFound(w, "Article not found")
		return
	}
	WriteSuccess(w, articleWithRelationsToResponse(article), nil)
}

// RecordArticleView handles POST /api/articles/{id}/view. Unknown IDs
// are accepted silently so clients need no error handling here.
func (h *Handler) RecordArticleView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.queries.IncrementViewCount(r.Context(), id); err != nil {
		slog.Error("view count increment failed", "article_id", id, "error", err)
		WriteInternalError(w, "Failed to record view")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListArticles handles GET /api/admin/articles: all statuses, filtered
// by the same query parameters as the public feed.
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	filter, meta := articleFilterFromRequest(r)

	articles, err := h.queries.ListArticles(r.Context(), filter)
	if err != nil {
		writeStoreError(w, err, "articles")
		return
	}
	WriteSuccess(w, articlesToResponse(articles), meta)
}

// GetArticle handles GET /api/admin/articles/{id}.
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	article, err := h.queries.GetArticleByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err, "article")
		return
	}
	WriteSuccess(w, articleWithRelationsToResponse(article), nil)
}

// CreateArticle handles POST /api/admin/articles. The signed-in user
// becomes the author.
func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, "Unauthorized")
		return
	}

	var req CreateArticleRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	article, err := h.queries.CreateArticle(r.Context(), store.CreateArticleParams{
		Title:      strings.TrimSpace(req.Title),
		Content:    h.sanitizer.Sanitize(req.Content),
		Excerpt:    util.NullStringFromValue(h.sanitizer.Sanitize(req.Excerpt)),
		ImageURL:   util.NullStringFromValue(req.ImageURL),
		VideoURL:   util.NullStringFromValue(req.VideoURL),
		Status:     req.Status,
		CategoryID: req.CategoryID,
		AuthorID:   user.ID,
		Tags:       util.NullStringFromValue(strings.Join(req.Tags, ",")),
	})
	if err != nil {
		writeStoreError(w, err, "article")
		return
	}

	slog.Info("article created", "article_id", article.ID, "slug", article.Slug, "user_id", user.ID)
	WriteCreated(w, articleToResponse(article))
}

// canModifyArticle reports whether the request user may edit or delete
// the article: its author, or an admin.
func (h *Handler) canModifyArticle(w http.ResponseWriter, r *http.Request, id string) bool {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, "Unauthorized")
		return false
	}
	if user.IsAdmin() {
		return true
	}

	article, err := h.queries.GetArticleByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "article")
		return false
	}
	if article.AuthorID != user.ID {
		WriteForbidden(w, "Only the author or an admin can modify this article")
		return false
	}
	return true
}

// UpdateArticle handles PUT /api/admin/articles/{id}.
func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.canModifyArticle(w, r, id) {
		return
	}

	var req UpdateArticleRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	params := store.UpdateArticleParams{
		Title:      req.Title,
		ImageURL:   req.ImageURL,
		VideoURL:   req.VideoURL,
		Status:     req.Status,
		CategoryID: req.CategoryID,
	}
	if req.Content != nil {
		clean := h.sanitizer.Sanitize(*req.Content)
		params.Content = &clean
	}
	if req.Excerpt != nil {
		clean := h.sanitizer.Sanitize(*req.Excerpt)
		params.Excerpt = &clean
	}
	if req.Tags != nil {
		joined := strings.Join(*req.Tags, ",")
		params.Tags = &joined
	}

	article, err := h.queries.UpdateArticle(r.Context(), id, params)
	if err != nil {
		writeStoreError(w, err, "article")
		return
	}

	slog.Info("article updated", "article_id", article.ID, "user_id", middleware.GetUserID(r))
	WriteSuccess(w, articleToResponse(article), nil)
}

// DeleteArticle handles DELETE /api/admin/articles/{id}.
func (h *Handler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.canModifyArticle(w, r, id) {
		return
	}

	deleted, err := h.queries.DeleteArticle(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "article")
		return
	}
	if !deleted {
		WriteNotFound(w, "Article not found")
		return
	}

	slog.Info("article deleted", "article_id", id, "user_id", middleware.GetUserID(r))
	w.WriteHeader(http.StatusNoContent)
}
