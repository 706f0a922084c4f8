// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package history persists the outcome of diagnostic runs in the local
// SQLite database. Only outcomes are stored; session material never leaves
// the process.
package history

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/inkdash/inkdash/app/storage/core"
	"github.com/inkdash/inkdash/app/types/status"
)

// Run is one recorded diagnostic run. Checks holds the per-probe outcomes
// JSON-encoded, matching the serialized report shape.
type Run struct {
	ID           string `gorm:"primaryKey"`
	StartedAt    time.Time
	FinishedAt   time.Time
	Address      string
	Ready        bool
	Blocking     string
	Checks       string
	Refreshed    bool
	RefreshError string
}

type Repo struct {
	core.BaseRepoImpl
}

// NewRepo migrates the run table and returns the repository.
func NewRepo(db *gorm.DB) (*Repo, error) {
	if err := db.AutoMigrate(&Run{}); err != nil {
		return nil, errors.Wrap(err, "migrate run history schema")
	}
	return &Repo{BaseRepoImpl: core.NewBaseRepoImpl(db)}, nil
}

// Record stores the report held by the accessor, together with the refresh
// outcome when one was attempted.
func (r *Repo) Record(ctx context.Context, accessor status.Accessor, refreshed bool, refreshErr error) error {
	var run Run
	var encodeErr error

	accessor.ReadFromReport(func(s *status.ApplianceStatus) {
		var raw []byte
		raw, encodeErr = json.Marshal(s.Checks)
		run = Run{
			ID:         s.ReportID,
			StartedAt:  s.StartedAt,
			FinishedAt: s.FinishedAt,
			Address:    s.Address,
			Ready:      s.Ready(),
			Blocking:   s.Blocking,
			Checks:     string(raw),
		}
	})
	if encodeErr != nil {
		return errors.Wrap(encodeErr, "encode check outcomes")
	}

	run.Refreshed = refreshed
	if refreshErr != nil {
		run.RefreshError = refreshErr.Error()
	}

	return core.TranslateError(r.DB(ctx).Create(&run).Error)
}

// Latest returns the most recent recorded run, or core.ErrNotFound.
func (r *Repo) Latest(ctx context.Context) (*Run, error) {
	var run Run
	err := r.DB(ctx).Order("started_at DESC").First(&run).Error
	if err != nil {
		return nil, core.TranslateError(err)
	}
	return &run, nil
}
