// Copyright (c) 2025-2026 Joao M. Ribeiro
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/jmribeiro/newsdesk-go/internal/middleware"
)

// RouterConfig carries the knobs the router needs from the app config.
type RouterConfig struct {
	IsDevelopment      bool
	LoginRatePerMinute int
	LoginRateBurst     int
}

// Routes builds the API router.
func (h *Handler) Routes(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment)))
	r.Use(h.sessions.LoadAndSave)
	r.Use(middleware.LoadUser(h.sessions, h.db))

	loginLimiter := middleware.NewIPRateLimiter(cfg.LoginRatePerMinute, cfg.LoginRateBurst)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.With(loginLimiter.Middleware()).Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Get("/auth/user", h.AuthUser)

		// Public reads
		r.Get("/articles", h.ListPublishedArticles)
		r.Get("/articles/{slug}", h.GetPublishedArticle)
		r.Post("/articles/{id}/view", h.RecordArticleView)
		r.Get("/categories", h.ListCategories)
		r.Get("/categories/{slug}", h.GetCategory)

		// Signed-in reading list
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth())
			r.Get("/saved-articles", h.ListSavedArticles)
			r.Post("/articles/{id}/save", h.SaveArticle)
			r.Delete("/articles/{id}/save", h.UnsaveArticle)
			r.Get("/articles/{id}/is-saved", h.IsArticleSaved)
			r.Get("/stats", h.Stats)
		})

		// Newsroom staff
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAuth())

			r.Get("/articles", h.ListArticles)
			r.Post("/articles", h.CreateArticle)
			r.Get("/articles/{id}", h.GetArticle)
			r.Put("/articles/{id}", h.UpdateArticle)
			r.Delete("/articles/{id}", h.DeleteArticle)

			// Taxonomy changes are admin only
			r.With(middleware.RequireAdmin()).Post("/categories", h.CreateCategory)
			r.With(middleware.RequireAdmin()).Put("/categories/{id}", h.UpdateCategory)
			r.With(middleware.RequireAdmin()).Delete("/categories/{id}", h.DeleteCategory)

			// Content backup and restore is admin only
			r.With(middleware.RequireAdmin()).Get("/export", h.ExportContent)
			r.With(middleware.RequireAdmin()).Post("/import", h.ImportContent)

			// User management is admin only
			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireAdmin())
				r.Get("/", h.ListUsers)
				r.Post("/", h.CreateUser)
				r.Get("/{id}", h.GetUser)
				r.Patch("/{id}", h.UpdateUser)
				r.Put("/{id}", h.UpsertUser)
				r.Delete("/{id}", h.DeleteUser)
			})
		})
	})

	return r
}
