package store

import (
	"context"
	"errors"
	"testing"

	"github.com/jmribeiro/newsdesk-go/internal/model"
	"github.com/jmribeiro/newsdesk-go/internal/util"
)

func TestCreateUser(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	user, err := q.CreateUser(ctx, CreateUserParams{
		Email:        util.NullStringFromValue("test@example.com"),
		PasswordHash: "hashed-password",
		FirstName:    "Test",
		LastName:     "User",
		Role:         model.RoleJournalist,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if user.ID == "" {
		t.Error("user.ID should not be empty")
	}
	if user.Email.String != "test@example.com" {
		t.Errorf("Email = %q, want %q", user.Email.String, "test@example.com")
	}
	if user.Role != model.RoleJournalist {
		t.Errorf("Role = %q, want journalist", user.Role)
	}
	if !user.IsActive {
		t.Error("new users should be active by default")
	}
}

func TestCreateUser_Defaults(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	user, err := q.CreateUser(ctx, CreateUserParams{
		Email: util.NullStringFromValue("defaults@example.com"),
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if user.Role != model.RoleEditor {
		t.Errorf("Role = %q, want editor by default", user.Role)
	}
	if !user.IsActive {
		t.Error("IsActive should default to true")
	}
}

func TestCreateUser_InvalidRole(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	_, err := q.CreateUser(ctx, CreateUserParams{
		Email: util.NullStringFromValue("bad@example.com"),
		Role:  "superuser",
	})
	if !IsValidationError(err) {
		t.Errorf("expected validation error for invalid role, got %v", err)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	createTestUser(t, q, "dup@example.com")

	_, err := q.CreateUser(ctx, CreateUserParams{
		Email: util.NullStringFromValue("dup@example.com"),
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestGetUserByEmail(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	created := createTestUser(t, q, "find@example.com")

	found, err := q.GetUserByEmail(ctx, "find@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}

	if found.ID != created.ID {
		t.Errorf("ID = %q, want %q", found.ID, created.ID)
	}
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	_, err := q.GetUserByEmail(ctx, "nonexistent@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetUserByID(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	created := createTestUser(t, q, "byid@example.com")

	found, err := q.GetUserByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}

	if found.Email.String != "byid@example.com" {
		t.Errorf("Email = %q, want %q", found.Email.String, "byid@example.com")
	}
}

func TestUpdateUser(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	created := createTestUser(t, q, "update@example.com")

	email := "updated@example.com"
	role := model.RoleAdmin
	firstName := "Updated"
	inactive := false
	updated, err := q.UpdateUser(ctx, created.ID, UpdateUserParams{
		Email:     &email,
		Role:      &role,
		FirstName: &firstName,
		IsActive:  &inactive,
	})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	if updated.Email.String != email {
		t.Errorf("Email = %q, want %q", updated.Email.String, email)
	}
	if updated.Role != model.RoleAdmin {
		t.Errorf("Role = %q, want admin", updated.Role)
	}
	if updated.FirstName != "Updated" {
		t.Errorf("FirstName = %q, want %q", updated.FirstName, "Updated")
	}
	// Unpatched fields stay put
	if updated.LastName != created.LastName {
		t.Errorf("LastName = %q, want %q", updated.LastName, created.LastName)
	}
	if updated.IsActive {
		t.Error("IsActive should have been patched to false")
	}
}

func TestUpdateUser_NotFound(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	name := "Ghost"
	_, err := q.UpdateUser(ctx, "no-such-id", UpdateUserParams{FirstName: &name})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	created := createTestUser(t, q, "delete@example.com")

	deleted, err := q.DeleteUser(ctx, created.ID)
	if err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if !deleted {
		t.Error("DeleteUser should report a removed row")
	}

	_, err = q.GetUserByID(ctx, created.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// A second delete is a no-op, not an error
	deleted, err = q.DeleteUser(ctx, created.ID)
	if err != nil {
		t.Fatalf("second DeleteUser: %v", err)
	}
	if deleted {
		t.Error("second DeleteUser should report no removed row")
	}
}

func TestDeleteUser_Referenced(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	author := createTestUser(t, q, "author@example.com")
	category := createTestCategory(t, q, "News")
	createTestArticle(t, q, "Referenced Author", category.ID, author.ID)

	_, err := q.DeleteUser(ctx, author.ID)
	if !errors.Is(err, ErrConstraint) {
		t.Errorf("expected constraint error deleting a referenced author, got %v", err)
	}
}

func TestListUsers(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		createTestUser(t, q, email)
	}

	users, err := q.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 3 {
		t.Errorf("len(users) = %d, want 3", len(users))
	}
}

func TestUpsertUser_InsertThenUpdate(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	created, err := q.UpsertUser(ctx, "ext-123", UpsertUserParams{
		Email:     util.NullStringFromValue("sync@example.com"),
		FirstName: "First",
		LastName:  "Sync",
	})
	if err != nil {
		t.Fatalf("UpsertUser insert: %v", err)
	}
	if created.ID != "ext-123" {
		t.Errorf("ID = %q, want ext-123", created.ID)
	}
	if created.Role != model.RoleEditor {
		t.Errorf("Role = %q, want editor by default", created.Role)
	}

	// Upsert again with refreshed profile fields
	updated, err := q.UpsertUser(ctx, "ext-123", UpsertUserParams{
		Email:     util.NullStringFromValue("sync@example.com"),
		FirstName: "Renamed",
		LastName:  "Sync",
		Role:      model.RoleJournalist,
	})
	if err != nil {
		t.Fatalf("UpsertUser update: %v", err)
	}

	if updated.FirstName != "Renamed" {
		t.Errorf("FirstName = %q, want Renamed", updated.FirstName)
	}
	if updated.Role != model.RoleJournalist {
		t.Errorf("Role = %q, want journalist", updated.Role)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt changed on upsert: %v -> %v", created.CreatedAt, updated.CreatedAt)
	}

	users, err := q.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("len(users) = %d, want 1 after double upsert", len(users))
	}
}

func TestUpsertUser_PreservesPasswordHash(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	created, err := q.CreateUser(ctx, CreateUserParams{
		ID:           "ext-pw",
		Email:        util.NullStringFromValue("pw@example.com"),
		PasswordHash: "argon-hash",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	updated, err := q.UpsertUser(ctx, created.ID, UpsertUserParams{
		Email:     util.NullStringFromValue("pw@example.com"),
		FirstName: "Kept",
	})
	if err != nil {
		t.Fatalf("UpsertUser: %v", err)
	}

	if updated.PasswordHash != "argon-hash" {
		t.Errorf("PasswordHash = %q, want original hash preserved", updated.PasswordHash)
	}
}

func TestUpsertUser_MissingID(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	_, err := q.UpsertUser(ctx, "", UpsertUserParams{})
	if !IsValidationError(err) {
		t.Errorf("expected validation error for empty id, got %v", err)
	}
}
