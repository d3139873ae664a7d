package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/jmribeiro/newsdesk-go/internal/model"
	"github.com/jmribeiro/newsdesk-go/internal/util"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "newsdesk-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	db, err := NewDB(dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

// createTestUser inserts a user for tests that need an author.
func createTestUser(t *testing.T, q *Queries, email string) model.User {
	t.Helper()
	user, err := q.CreateUser(context.Background(), CreateUserParams{
		Email:        util.NullStringFromValue(email),
		PasswordHash: "hash",
		FirstName:    "Test",
		LastName:     "User",
		Role:         model.RoleEditor,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

// createTestCategory inserts a category for tests that need one.
func createTestCategory(t *testing.T, q *Queries, name string) model.Category {
	t.Helper()
	category, err := q.CreateCategory(context.Background(), CreateCategoryParams{Name: name})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	return category
}

// createTestArticle inserts an article by the given author in the given
// category.
func createTestArticle(t *testing.T, q *Queries, title string, categoryID, authorID string) model.Article {
	t.Helper()
	article, err := q.CreateArticle(context.Background(), CreateArticleParams{
		Title:      title,
		Content:    "<p>Content</p>",
		CategoryID: categoryID,
		AuthorID:   authorID,
	})
	if err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}
	return article
}

func TestSeed(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	// First seed should create admin and default categories
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	admin, err := q.GetUserByEmail(ctx, DefaultAdminEmail)
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if admin.Role != model.RoleAdmin {
		t.Errorf("Role = %q, want admin", admin.Role)
	}
	if admin.PasswordHash == "" {
		t.Error("admin should have a password hash")
	}

	categories, err := q.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(categories) != 4 {
		t.Fatalf("len(categories) = %d, want 4", len(categories))
	}
	for _, slug := range []string{"local", "regional", "nacional", "internacional"} {
		if _, err := q.GetCategoryBySlug(ctx, slug); err != nil {
			t.Errorf("GetCategoryBySlug(%q): %v", slug, err)
		}
	}

	// Second seed should skip (no error, no duplicates)
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Second Seed: %v", err)
	}

	users, err := q.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("len(users) = %d, want 1 (seed should skip if exists)", len(users))
	}

	categories, err = q.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(categories) != 4 {
		t.Errorf("len(categories) = %d, want 4 after reseed", len(categories))
	}
}

func TestClassifyErr_Passthrough(t *testing.T) {
	sentinel := errors.New("network down")
	if got := classifyErr(sentinel); !errors.Is(got, sentinel) {
		t.Errorf("classifyErr should pass through unknown errors, got %v", got)
	}
	if got := classifyErr(nil); got != nil {
		t.Errorf("classifyErr(nil) = %v, want nil", got)
	}
	if got := classifyErr(sql.ErrNoRows); !errors.Is(got, ErrNotFound) {
		t.Errorf("classifyErr(sql.ErrNoRows) = %v, want ErrNotFound", got)
	}
}
