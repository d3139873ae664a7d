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

// DefaultArticleLimit is the page size used when a filter does not set one.
const DefaultArticleLimit = 50

// CreateArticleParams holds the input for CreateArticle.
// PublishedAt backdates the publish stamp for content restored from an
// export; it is ignored unless the article is created published.
type CreateArticleParams struct {
	Title       string
	Content     string
	Excerpt     sql.NullString
	ImageURL    sql.NullString
	VideoURL    sql.NullString
	Status      string // defaults to draft
	CategoryID  string
	AuthorID    string
	Tags        sql.NullString
	PublishedAt sql.NullTime
}

// CreateArticle inserts a new article. The slug is derived from the
// title; uniqueness is not checked up front, so a duplicate title
// surfaces as ErrDuplicate from the unique index on articles.slug.
// CategoryID and AuthorID must reference existing rows or the insert
// fails with ErrInvalidReference.
func (q *Queries) CreateArticle(ctx context.Context, arg CreateArticleParams) (model.Article, error) {
	if strings.TrimSpace(arg.Title) == "" {
		return model.Article{}, validationErr("title", "required")
	}
	if arg.Content == "" {
		return model.Article{}, validationErr("content", "required")
	}
	if arg.CategoryID == "" {
		return model.Article{}, validationErr("category_id", "required")
	}
	if arg.AuthorID == "" {
		return model.Article{}, validationErr("author_id", "required")
	}

	status := arg.Status
	if status == "" {
		status = model.StatusDraft
	}
	if !model.IsValidStatus(status) {
		return model.Article{}, validationErr("status", fmt.Sprintf("must be one of %s", strings.Join(model.ValidStatuses, ", ")))
	}

	slug := util.Slugify(arg.Title)
	if slug == "" {
		return model.Article{}, validationErr("title", "must contain at least one alphanumeric character")
	}

	now := time.Now().UTC()
	article := model.Article{
		ID:         uuid.NewString(),
		Title:      arg.Title,
		Slug:       slug,
		Excerpt:    arg.Excerpt,
		Content:    arg.Content,
		ImageURL:   arg.ImageURL,
		VideoURL:   arg.VideoURL,
		Status:     status,
		CategoryID: util.NullStringFromValue(arg.CategoryID),
		AuthorID:   arg.AuthorID,
		Tags:       arg.Tags,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if status == model.StatusPublished {
		article.PublishedAt = util.NullTimeFromValue(now)
		if arg.PublishedAt.Valid {
			article.PublishedAt = arg.PublishedAt
		}
	}

	_, err := q.db.ExecContext(ctx, `
		INSERT INTO articles (
			id, title, slug, excerpt, content, image_url, video_url,
			status, category_id, author_id, published_at, view_count,
			tags, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?)
	`,
		article.ID, article.Title, article.Slug, article.Excerpt, article.Content,
		article.ImageURL, article.VideoURL, article.Status, article.CategoryID,
		article.AuthorID, article.PublishedAt, article.Tags,
		article.CreatedAt, article.UpdatedAt,
	)
	if err != nil {
		return model.Article{}, classifyErr(err)
	}

	return article, nil
}

// UpdateArticleParams holds a partial patch for UpdateArticle.
// Nil fields are left unchanged.
type UpdateArticleParams struct {
	Title      *string
	Excerpt    *string
	Content    *string
	ImageURL   *string
	VideoURL   *string
	Status     *string
	CategoryID *string
	Tags       *string
}

// UpdateArticle applies a partial patch. When the title is patched the
// slug is recomputed from it (again without a uniqueness pre-check).
// The first transition to published stamps published_at; later updates
// never clear or reset it. updated_at is always refreshed.
func (q *Queries) UpdateArticle(ctx context.Context, id string, arg UpdateArticleParams) (model.Article, error) {
	article, err := q.getArticleRow(ctx, id)
	if err != nil {
		return model.Article{}, err
	}

	if arg.Title != nil {
		if strings.TrimSpace(*arg.Title) == "" {
			return model.Article{}, validationErr("title", "required")
		}
		slug := util.Slugify(*arg.Title)
		if slug == "" {
			return model.Article{}, validationErr("title", "must contain at least one alphanumeric character")
		}
		article.Title = *arg.Title
		article.Slug = slug
	}
	if arg.Excerpt != nil {
		article.Excerpt = util.NullStringFromValue(*arg.Excerpt)
	}
	if arg.Content != nil {
		if *arg.Content == "" {
			return model.Article{}, validationErr("content", "required")
		}
		article.Content = *arg.Content
	}
	if arg.ImageURL != nil {
		article.ImageURL = util.NullStringFromValue(*arg.ImageURL)
	}
	if arg.VideoURL != nil {
		article.VideoURL = util.NullStringFromValue(*arg.VideoURL)
	}
	if arg.CategoryID != nil {
		if *arg.CategoryID == "" {
			return model.Article{}, validationErr("category_id", "required")
		}
		article.CategoryID = util.NullStringFromValue(*arg.CategoryID)
	}
	if arg.Tags != nil {
		article.Tags = util.NullStringFromValue(*arg.Tags)
	}

	now := time.Now().UTC()
	if arg.Status != nil {
		if !model.IsValidStatus(*arg.Status) {
			return model.Article{}, validationErr("status", fmt.Sprintf("must be one of %s", strings.Join(model.ValidStatuses, ", ")))
		}
		article.Status = *arg.Status
		if article.Status == model.StatusPublished && !article.PublishedAt.Valid {
			article.PublishedAt = util.NullTimeFromValue(now)
		}
	}
	article.UpdatedAt = now

	result, err := q.db.ExecContext(ctx, `
		UPDATE articles
		SET title = ?, slug = ?, excerpt = ?, content = ?, image_url = ?,
			video_url = ?, status = ?, category_id = ?, published_at = ?,
			tags = ?, updated_at = ?
		WHERE id = ?
	`,
		article.Title, article.Slug, article.Excerpt, article.Content,
		article.ImageURL, article.VideoURL, article.Status, article.CategoryID,
		article.PublishedAt, article.Tags, article.UpdatedAt, id,
	)
	if err != nil {
		return model.Article{}, classifyErr(err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return model.Article{}, ErrNotFound
	}

	return article, nil
}

// DeleteArticle removes an article. Returns whether a row was removed;
// a missing article is not an error.
func (q *Queries) DeleteArticle(ctx context.Context, id string) (bool, error) {
	result, err := q.db.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return false, classifyErr(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking rows affected: %w", err)
	}
	return rows > 0, nil
}

// GetArticleByID returns the article with its category and author
// attached, or ErrNotFound.
func (q *Queries) GetArticleByID(ctx context.Context, id string) (model.ArticleWithRelations, error) {
	return q.getArticleWithRelations(ctx, "a.id = ?", id)
}

// GetArticleBySlug returns the article with its category and author
// attached, or ErrNotFound.
func (q *Queries) GetArticleBySlug(ctx context.Context, slug string) (model.ArticleWithRelations, error) {
	return q.getArticleWithRelations(ctx, "a.slug = ?", slug)
}

// ArticleFilter narrows ListArticles results. Zero values mean "no
// constraint"; conditions combine with AND. Search matches a
// case-insensitive substring of the title or the content.
type ArticleFilter struct {
	Status     string
	CategoryID string
	AuthorID   string
	Search     string
	Limit      int
	Offset     int
}

// ListArticles returns articles with relations attached, newest first
// by creation time.
func (q *Queries) ListArticles(ctx context.Context, filter ArticleFilter) ([]model.ArticleWithRelations, error) {
	var conds []string
	var args []any

	if filter.Status != "" {
		conds = append(conds, "a.status = ?")
		args = append(args, filter.Status)
	}
	if filter.CategoryID != "" {
		conds = append(conds, "a.category_id = ?")
		args = append(args, filter.CategoryID)
	}
	if filter.AuthorID != "" {
		conds = append(conds, "a.author_id = ?")
		args = append(args, filter.AuthorID)
	}
	if filter.Search != "" {
		conds = append(conds, "(a.title LIKE ? COLLATE NOCASE OR a.content LIKE ? COLLATE NOCASE)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}

	query := articleRelationsQuery
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY a.created_at DESC LIMIT ? OFFSET ?"

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultArticleLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
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

// ListPublishedArticles is ListArticles with the status forced to
// published.
func (q *Queries) ListPublishedArticles(ctx context.Context, filter ArticleFilter) ([]model.ArticleWithRelations, error) {
	filter.Status = model.StatusPublished
	return q.ListArticles(ctx, filter)
}

// IncrementViewCount bumps an article's view counter by one. The
// increment is a single atomic update expression so concurrent calls
// never lose updates. A missing article is a no-op.
func (q *Queries) IncrementViewCount(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE articles SET view_count = view_count + 1 WHERE id = ?
	`, id)
	if err != nil {
		return classifyErr(err)
	}
	return nil
}

// articleRelationsQuery selects an article together with its category
// (left join: the category may have been deleted) and author.
const articleRelationsQuery = `
	SELECT a.id, a.title, a.slug, a.excerpt, a.content, a.image_url,
		a.video_url, a.status, a.category_id, a.author_id, a.published_at,
		a.view_count, a.tags, a.created_at, a.updated_at,
		c.id, c.name, c.slug, c.description, c.color, c.created_at,
		u.id, u.email, u.first_name, u.last_name, u.profile_image_url,
		u.role, u.is_active, u.created_at, u.updated_at
	FROM articles a
	LEFT JOIN categories c ON c.id = a.category_id
	INNER JOIN users u ON u.id = a.author_id`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanArticleWithRelations scans one row of articleRelationsQuery.
func scanArticleWithRelations(row rowScanner) (model.ArticleWithRelations, error) {
	var a model.ArticleWithRelations
	var cID, cName, cSlug, cDescription, cColor sql.NullString
	var cCreatedAt sql.NullTime

	err := row.Scan(
		&a.ID, &a.Title, &a.Slug, &a.Excerpt, &a.Content, &a.ImageURL,
		&a.VideoURL, &a.Status, &a.CategoryID, &a.AuthorID, &a.PublishedAt,
		&a.ViewCount, &a.Tags, &a.CreatedAt, &a.UpdatedAt,
		&cID, &cName, &cSlug, &cDescription, &cColor, &cCreatedAt,
		&a.Author.ID, &a.Author.Email, &a.Author.FirstName, &a.Author.LastName,
		&a.Author.ProfileImageURL, &a.Author.Role, &a.Author.IsActive,
		&a.Author.CreatedAt, &a.Author.UpdatedAt,
	)
	if err != nil {
		return model.ArticleWithRelations{}, classifyErr(err)
	}

	// A deleted category leaves the article with an unknown category,
	// not an error.
	if cID.Valid {
		a.Category = &model.Category{
			ID:          cID.String,
			Name:        cName.String,
			Slug:        cSlug.String,
			Description: cDescription,
			Color:       cColor.String,
			CreatedAt:   cCreatedAt.Time,
		}
	}

	return a, nil
}

// getArticleWithRelations fetches a single projected article by an
// arbitrary equality condition.
func (q *Queries) getArticleWithRelations(ctx context.Context, cond string, arg any) (model.ArticleWithRelations, error) {
	row := q.db.QueryRowContext(ctx, articleRelationsQuery+" WHERE "+cond, arg)
	return scanArticleWithRelations(row)
}

// getArticleRow fetches the bare persisted article row by id.
func (q *Queries) getArticleRow(ctx context.Context, id string) (model.Article, error) {
	var a model.Article
	err := q.db.QueryRowContext(ctx, `
		SELECT id, title, slug, excerpt, content, image_url, video_url,
			status, category_id, author_id, published_at, view_count,
			tags, created_at, updated_at
		FROM articles WHERE id = ?
	`, id).Scan(
		&a.ID, &a.Title, &a.Slug, &a.Excerpt, &a.Content, &a.ImageURL,
		&a.VideoURL, &a.Status, &a.CategoryID, &a.AuthorID, &a.PublishedAt,
		&a.ViewCount, &a.Tags, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return model.Article{}, classifyErr(err)
	}
	return a, nil
}
