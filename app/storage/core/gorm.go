// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package core provides GORM driver initialization and the small repository
// base used by the run-history store.
package core

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// NewDriver opens a GORM database with the settings shared by every backend:
// singular table names, UTC millisecond timestamps, structured logging
// through the zerolog adapter, and error translation.
func NewDriver(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
		NowFunc:        DatabaseNow,
		Logger:         &ZeroLogAdapter{},
		TranslateError: true,
	})
}

// DatabaseNow returns the current time in UTC truncated to millisecond
// precision, used for every created_at/updated_at field.
func DatabaseNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
