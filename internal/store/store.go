// Copyright (c) 2025-2026 Joao M. Ribeiro
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "database/sql"

// Queries provides typed access to all persisted entities. Each
// operation is an independent request-scoped statement against the
// shared database handle; the database provides the only atomicity and
// durability guarantees the design relies on.
type Queries struct {
	db *sql.DB
}

// New creates a Queries instance bound to the given database handle.
func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}
