// Copyright (c) 2025-2026 Joao M. Ribeiro
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmribeiro/newsdesk-go/internal/model"
	"github.com/jmribeiro/newsdesk-go/internal/store"
	"github.com/jmribeiro/newsdesk-go/internal/testutil"
	"github.com/jmribeiro/newsdesk-go/internal/util"
)

func newQueries(t *testing.T) *store.Queries {
	t.Helper()
	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)
	return store.New(db)
}

func seedContent(t *testing.T, queries *store.Queries) {
	t.Helper()
	ctx := context.Background()

	author, err := queries.CreateUser(ctx, store.CreateUserParams{
		Email:        util.NullStringFromValue("ana@example.com"),
		PasswordHash: "x",
		FirstName:    "Ana",
		LastName:     "Matos",
		Role:         model.RoleJournalist,
	})
	require.NoError(t, err)

	category, err := queries.CreateCategory(ctx, store.CreateCategoryParams{Name: "Local"})
	require.NoError(t, err)

	_, err = queries.CreateArticle(ctx, store.CreateArticleParams{
		Title:      "Feira do livro regressa",
		Content:    "O certame volta ao parque da cidade.",
		Status:     model.StatusPublished,
		CategoryID: category.ID,
		AuthorID:   author.ID,
		Tags:       util.NullStringFromValue("cultura,agenda"),
	})
	require.NoError(t, err)

	_, err = queries.CreateArticle(ctx, store.CreateArticleParams{
		Title:      "Rascunho interno",
		Content:    "Ainda por rever.",
		CategoryID: category.ID,
		AuthorID:   author.ID,
	})
	require.NoError(t, err)
}

func TestImportOptions_Defaults(t *testing.T) {
	opts := DefaultImportOptions()

	assert.False(t, opts.DryRun)
	assert.True(t, opts.ImportUsers)
	assert.True(t, opts.ImportCategories)
	assert.True(t, opts.ImportArticles)
}

func TestImportResult_Operations(t *testing.T) {
	result := NewImportResult(false)

	assert.True(t, result.Success)
	assert.False(t, result.DryRun)
	assert.Empty(t, result.Errors)

	result.IncrementCreated("articles")
	result.IncrementCreated("articles")
	result.IncrementSkipped("users")

	assert.Equal(t, 2, result.Created["articles"])
	assert.Equal(t, 1, result.Skipped["users"])
	assert.Equal(t, 2, result.TotalCreated())
	assert.Equal(t, 1, result.TotalSkipped())

	result.AddError("article", "some-slug", "boom")
	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "article", result.Errors[0].Entity)
	assert.Equal(t, "some-slug", result.Errors[0].Key)
}

func TestImporter_Validate(t *testing.T) {
	importer := NewImporter(nil, nil)

	tests := []struct {
		name      string
		data      *ExportData
		wantError bool
	}{
		{
			name: "valid document",
			data: &ExportData{
				Version: ExportVersion,
				Users:   []ExportUser{{Email: "ana@example.com", Role: model.RoleEditor}},
				Categories: []ExportCategory{
					{Name: "Local", Slug: "local"},
				},
				Articles: []ExportArticle{
					{Title: "Título", Slug: "titulo", Content: "x", AuthorEmail: "ana@example.com", Status: model.StatusDraft},
				},
			},
		},
		{
			name:      "unsupported version",
			data:      &ExportData{Version: "9.9"},
			wantError: true,
		},
		{
			name: "user without email",
			data: &ExportData{
				Version: ExportVersion,
				Users:   []ExportUser{{Role: model.RoleEditor}},
			},
			wantError: true,
		},
		{
			name: "unknown role",
			data: &ExportData{
				Version: ExportVersion,
				Users:   []ExportUser{{Email: "x@example.com", Role: "owner"}},
			},
			wantError: true,
		},
		{
			name: "bad category slug",
			data: &ExportData{
				Version:    ExportVersion,
				Categories: []ExportCategory{{Name: "Local", Slug: "Not A Slug"}},
			},
			wantError: true,
		},
		{
			name: "article without author",
			data: &ExportData{
				Version:  ExportVersion,
				Articles: []ExportArticle{{Title: "T", Slug: "t", Content: "x", Status: model.StatusDraft}},
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := importer.Validate(tt.data)
			if tt.wantError {
				assert.NotEmpty(t, errs)
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	ctx := context.Background()

	source := newQueries(t)
	seedContent(t, source)

	data, err := NewExporter(source, nil).Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExportVersion, data.Version)
	require.Len(t, data.Users, 1)
	require.Len(t, data.Categories, 1)
	require.Len(t, data.Articles, 2)

	target := newQueries(t)
	result, err := NewImporter(target, nil).Import(ctx, data, DefaultImportOptions())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Created["users"])
	assert.Equal(t, 1, result.Created["categories"])
	assert.Equal(t, 2, result.Created["articles"])

	// The publish stamp survives the round trip
	var exported *ExportArticle
	for idx := range data.Articles {
		if data.Articles[idx].Status == model.StatusPublished {
			exported = &data.Articles[idx]
		}
	}
	require.NotNil(t, exported)
	require.NotNil(t, exported.PublishedAt)

	restored, err := target.GetArticleBySlug(ctx, exported.Slug)
	require.NoError(t, err)
	require.True(t, restored.PublishedAt.Valid)
	assert.WithinDuration(t, *exported.PublishedAt, restored.PublishedAt.Time, time.Second)

	// Relations resolve by natural key
	assert.NotNil(t, restored.Category)
	assert.Equal(t, "local", restored.Category.Slug)
	assert.Equal(t, "ana@example.com", restored.Author.Email.String)
	assert.Equal(t, []string{"cultura", "agenda"}, restored.TagList())

	// Imported accounts carry no usable password
	user, err := target.GetUserByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)
}

func TestImport_Idempotent(t *testing.T) {
	ctx := context.Background()

	source := newQueries(t)
	seedContent(t, source)
	data, err := NewExporter(source, nil).Export(ctx)
	require.NoError(t, err)

	target := newQueries(t)
	importer := NewImporter(target, nil)

	_, err = importer.Import(ctx, data, DefaultImportOptions())
	require.NoError(t, err)

	second, err := importer.Import(ctx, data, DefaultImportOptions())
	require.NoError(t, err)
	assert.True(t, second.Success)
	assert.Equal(t, 0, second.TotalCreated())
	assert.Equal(t, 4, second.TotalSkipped())
}

func TestImport_DryRun(t *testing.T) {
	ctx := context.Background()

	source := newQueries(t)
	seedContent(t, source)
	data, err := NewExporter(source, nil).Export(ctx)
	require.NoError(t, err)

	target := newQueries(t)
	opts := DefaultImportOptions()
	opts.DryRun = true

	result, err := NewImporter(target, nil).Import(ctx, data, opts)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, result.DryRun)
	assert.Equal(t, 1, result.Created["categories"])
	assert.Equal(t, 2, result.Created["articles"])

	// Nothing was written
	categories, err := target.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestImport_MissingReferences(t *testing.T) {
	ctx := context.Background()
	target := newQueries(t)

	data := &ExportData{
		Version: ExportVersion,
		Articles: []ExportArticle{
			{Title: "Órfã", Slug: "orfa", Content: "x", Status: model.StatusDraft, AuthorEmail: "ghost@example.com"},
		},
	}

	result, err := NewImporter(target, nil).Import(ctx, data, DefaultImportOptions())
	require.NoError(t, err)
	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "article", result.Errors[0].Entity)
}

func TestImportFromReader(t *testing.T) {
	ctx := context.Background()

	source := newQueries(t)
	seedContent(t, source)

	var buf bytes.Buffer
	require.NoError(t, NewExporter(source, nil).ExportToWriter(ctx, &buf))

	target := newQueries(t)
	result, err := NewImporter(target, nil).ImportFromReader(ctx, &buf, DefaultImportOptions())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Created["articles"])

	// Garbage input fails cleanly
	_, err = NewImporter(target, nil).ImportFromReader(ctx, bytes.NewBufferString("{nope"), DefaultImportOptions())
	assert.Error(t, err)
}
