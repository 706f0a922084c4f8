// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"
)

// ZeroLogAdapter bridges GORM's logger interface onto the zerolog logger
// carried in the context, so database activity lands in the same structured
// stream as everything else.
type ZeroLogAdapter struct{}

func (ZeroLogAdapter) LogMode(gormlogger.LogLevel) gormlogger.Interface {
	return ZeroLogAdapter{}
}

func (ZeroLogAdapter) Info(ctx context.Context, msg string, args ...interface{}) {
	zerolog.Ctx(ctx).Info().Msgf(msg, args...)
}

func (ZeroLogAdapter) Warn(ctx context.Context, msg string, args ...interface{}) {
	zerolog.Ctx(ctx).Warn().Msgf(msg, args...)
}

func (ZeroLogAdapter) Error(ctx context.Context, msg string, args ...interface{}) {
	zerolog.Ctx(ctx).Error().Msgf(msg, args...)
}

func (ZeroLogAdapter) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	sql, rows := fc()

	event := zerolog.Ctx(ctx).Debug()
	if err != nil {
		event = zerolog.Ctx(ctx).Error().Err(err)
	}

	event.
		Str("sql", sql).
		Int64("rows", rows).
		Dur("elapsed", time.Since(begin)).
		Msg("gorm query")
}
