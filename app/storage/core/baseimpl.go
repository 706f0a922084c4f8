// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"

	"gorm.io/gorm"
)

// BaseRepoImpl is the embeddable base for repository implementations. DB
// applies the caller's context to the underlying connection so cancellation
// and timeouts propagate into queries.
type BaseRepoImpl struct {
	db *gorm.DB
}

func NewBaseRepoImpl(db *gorm.DB) BaseRepoImpl {
	return BaseRepoImpl{db: db}
}

func (r *BaseRepoImpl) DB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}
