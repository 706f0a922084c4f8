// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package sqlite specializes the core GORM driver for the local SQLite
// run-history database.
package sqlite

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/inkdash/inkdash/app/storage/core"
)

const (
	// InMemoryDSN gives each connection an isolated in-memory database,
	// used by tests.
	InMemoryDSN = ":memory:"
)

// NewSQLiteDriver opens the SQLite database at dsn with the shared driver
// configuration.
func NewSQLiteDriver(dsn string) (*gorm.DB, error) {
	db, err := core.NewDriver(sqlite.Open(dsn))
	if err != nil {
		return nil, err
	}
	return db, nil
}
