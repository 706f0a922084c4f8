// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/inkdash/inkdash/app/storage/core"
)

type captureWriter struct {
	entries []map[string]interface{}
}

func (w *captureWriter) Write(p []byte) (int, error) {
	entry := map[string]interface{}{}
	if err := json.Unmarshal(p, &entry); err != nil {
		return 0, err
	}
	w.entries = append(w.entries, entry)
	return len(p), nil
}

func TestZeroLogAdapter_Trace(t *testing.T) {
	writer := &captureWriter{}
	logger := zerolog.New(writer).Level(zerolog.DebugLevel)
	ctx := logger.WithContext(context.Background())

	adapter := core.ZeroLogAdapter{}
	adapter.Trace(ctx, time.Now(), func() (string, int64) {
		return "SELECT * FROM `run`", 3
	}, nil)

	require.Len(t, writer.entries, 1)
	assert.Equal(t, "SELECT * FROM `run`", writer.entries[0]["sql"])
	assert.Equal(t, float64(3), writer.entries[0]["rows"])
}

func TestZeroLogAdapter_TraceError(t *testing.T) {
	writer := &captureWriter{}
	logger := zerolog.New(writer)
	ctx := logger.WithContext(context.Background())

	adapter := core.ZeroLogAdapter{}
	adapter.Trace(ctx, time.Now(), func() (string, int64) {
		return "INSERT INTO `run`", 0
	}, errors.New("disk full"))

	require.Len(t, writer.entries, 1)
	assert.Equal(t, "error", writer.entries[0]["level"])
	assert.Equal(t, "disk full", writer.entries[0]["error"])
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, core.TranslateError(nil))
	assert.ErrorIs(t, core.TranslateError(gorm.ErrRecordNotFound), core.ErrNotFound)

	boom := errors.New("boom")
	assert.ErrorIs(t, core.TranslateError(boom), boom)
}

func TestDatabaseNow(t *testing.T) {
	now := core.DatabaseNow()
	assert.Equal(t, time.UTC, now.Location())
	assert.Equal(t, now.Truncate(time.Millisecond), now)
}
