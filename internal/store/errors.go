// Copyright (c) 2025-2026 Joao M. Ribeiro
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"errors"
	"fmt"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Error kinds returned by the store. Callers distinguish "nothing
// matched" (ErrNotFound) from "write rejected by an integrity rule"
// (anything matching ErrConstraint).
var (
	// ErrNotFound indicates a lookup by id or slug matched no row.
	ErrNotFound = errors.New("not found")

	// ErrConstraint is the base kind for writes rejected by the database.
	ErrConstraint = errors.New("constraint violation")

	// ErrDuplicate indicates a unique constraint was violated
	// (e.g. duplicate slug or email).
	ErrDuplicate = fmt.Errorf("%w: duplicate value", ErrConstraint)

	// ErrInvalidReference indicates a foreign key points at a missing row.
	ErrInvalidReference = fmt.Errorf("%w: referenced row does not exist", ErrConstraint)
)

// ValidationError reports invalid input rejected before reaching the
// database.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// validationErr is a shorthand constructor.
func validationErr(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// classifyErr maps low-level database errors to store error kinds.
// sql.ErrNoRows becomes ErrNotFound; SQLite constraint result codes
// become the matching ErrConstraint kind; everything else passes
// through unchanged.
func classifyErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %v", ErrDuplicate, err)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fmt.Errorf("%w: %v", ErrInvalidReference, err)
		}
		if se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			return fmt.Errorf("%w: %v", ErrConstraint, err)
		}
	}

	return err
}
