// Copyright (c) 2025-2026 Joao M. Ribeiro
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jmribeiro/newsdesk-go/internal/model"
)

// SaveArticle records a bookmark for the user. Saving an already saved
// article is idempotent: the existing bookmark is returned with its
// original save time. Unknown user or article ids surface as
// ErrInvalidReference.
func (q *Queries) SaveArticle(ctx context.Context, userID, articleID string) (model.SavedArticle, error) {
	if userID == "" {
		return model.SavedArticle{}, validationErr("user_id", "required")
	}
	if articleID == "" {
		return model.SavedArticle{}, validationErr("article_id", "required")
	}

	saved := model.SavedArticle{
		ID:        uuid.NewString(),
		UserID:    userID,
		ArticleID: articleID,
		CreatedAt: time.Now().UTC(),
	}

	_, err := q.db.ExecContext(ctx, `
		INSERT INTO saved_articles (id, user_id, article_id, created_at)
		VALUES (?, ?, ?, ?)
	`, saved.ID, saved.UserID, saved.ArticleID, saved.CreatedAt)
	if err != nil {
		classified := classifyErr(err)
		if errors.Is(classified, ErrDuplicate) {
			return q.getSavedArticle(ctx, userID, articleID)
		}
		return model.SavedArticle{}, classified
	}

	return saved, nil
}

// UnsaveArticle removes a bookmark. Returns whether one existed; a
// missing bookmark is not an error.
func (q *Queries) UnsaveArticle(ctx context.Context, userID, articleID string) (bool, error) {
	result, err := q.db.ExecContext(ctx, `
		DELETE FROM saved_articles WHERE user_id = ? AND article_id = ?
	`, userID, articleID)
	if err != nil {
		return false, classifyErr(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking rows affected: %w", err)
	}
	return rows > 0, nil
}

// IsArticleSaved reports whether the user has bookmarked the article.
func (q *Queries) IsArticleSaved(ctx context.Context, userID, articleID string) (bool, error) {
	var saved bool
	err := q.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM saved_articles WHERE user_id = ? AND article_id = ?
		)
	`, userID, articleID).Scan(&saved)
	if err != nil {
		return false, classifyErr(err)
	}
	return saved, nil
}

// ListSavedArticles returns the user's bookmarked articles with
// relations attached, most recently saved first.
func (q *Queries) ListSavedArticles(ctx context.Context, userID string) ([]model.ArticleWithRelations, error) {
	rows, err := q.db.QueryContext(ctx, articleRelationsQuery+`
		INNER JOIN saved_articles s ON s.article_id = a.id
		WHERE s.user_id = ?
		ORDER BY s.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing saved articles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var articles []model.ArticleWithRelations
	for rows.Next() {
		article, err := scanArticleWithRelations(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

func (q *Queries) getSavedArticle(ctx context.Context, userID, articleID string) (model.SavedArticle, error) {
	var s model.SavedArticle
	err := q.db.QueryRowContext(ctx, `
		SELECT id, user_id, article_id, created_at
		FROM saved_articles WHERE user_id = ? AND article_id = ?
	`, userID, articleID).Scan(&s.ID, &s.UserID, &s.ArticleID, &s.CreatedAt)
	if err != nil {
		return model.SavedArticle{}, classifyErr(err)
	}
	return s, nil
}
