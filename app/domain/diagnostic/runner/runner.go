// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package runner executes the registered diagnostic probes strictly in
// catalog order against a single appliance.
//
// Control flows forward only: a stage may short-circuit but nothing reruns.
// The blocking probe is the one gated stage, skipped unless the summary
// probe succeeded. Every other probe is attempted regardless of what came
// before it, each issuing exactly one request.
package runner

import (
	"context"
	net "net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	config "github.com/inkdash/inkdash/app/config/display"
	"github.com/inkdash/inkdash/app/domain/diagnostic/catalog"
	"github.com/inkdash/inkdash/app/logging"
	"github.com/inkdash/inkdash/app/types/status"
)

type Runner struct {
	cfg      *config.Settings
	registry catalog.Registry
	logger   *logrus.Entry
}

func NewRunner(cfg *config.Settings, registry catalog.Registry) *Runner {
	return &Runner{
		cfg:      cfg,
		registry: registry,
		logger:   logging.NewLogger().WithField(logging.OpField, "runner"),
	}
}

// Run executes the diagnostic sequence once and returns the populated
// report accessor. Probe failures are recorded in the report, not returned;
// the error covers only unrecoverable engine conditions.
func (r *Runner) Run(ctx context.Context) (status.Accessor, error) {
	report := &status.ApplianceStatus{
		ReportID:  uuid.NewString(),
		Address:   r.cfg.Appliance.BaseURL(),
		StartedAt: time.Now().UTC(),
	}
	accessor := status.NewAccessor(report)

	// Ambient client for everything after the connectivity touch. The
	// timeout is finite by configuration validation.
	client := &net.Client{Timeout: r.cfg.Appliance.Timeout}

	for _, name := range r.registry.List() {
		if !r.cfg.Diagnostics.Selected(name) {
			continue
		}

		if name == config.DiagnosticDNSBlocking && !summaryPassed(accessor) {
			r.logger.Info("skipping DNS blocking probe, summary probe did not succeed")
			accessor.AddCheck(&status.StatusCheck{Name: name, Skipped: true})
			continue
		}

		provider, ok := r.registry.Get(name)
		if !ok {
			continue
		}

		if err := provider.Check(ctx, client, accessor); err != nil {
			// Providers classify their own failures; an error here is
			// unrecoverable and recorded before halting the sequence.
			r.logger.WithError(err).Errorf("check %s aborted", name)
			accessor.AddCheck(&status.StatusCheck{Name: name, Error: err.Error()})
			break
		}
	}

	accessor.WriteToReport(func(s *status.ApplianceStatus) {
		s.FinishedAt = time.Now().UTC()
	})
	return accessor, nil
}

// Ready reports whether the sequence authorizes the downstream display
// refresh.
func Ready(accessor status.Accessor) bool {
	var ready bool
	accessor.ReadFromReport(func(s *status.ApplianceStatus) {
		ready = s.Ready()
	})
	return ready
}

func summaryPassed(accessor status.Accessor) bool {
	var passed bool
	accessor.ReadFromReport(func(s *status.ApplianceStatus) {
		passed = s.SummaryPassed
	})
	return passed
}
