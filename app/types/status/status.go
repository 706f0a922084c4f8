// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package status contains the aggregate diagnostic report for a single run
// and the thread-safe accessor the probes use to populate it.
package status

import (
	"time"

	"github.com/inkdash/inkdash/app/types"
)

// StatusCheck is the tri-state outcome of a single probe: passing, failed
// with a diagnostic, or skipped (only the dns_blocking probe is ever
// skipped, when the summary probe did not succeed).
type StatusCheck struct {
	Name    string `json:"name"`
	Passing bool   `json:"passing"`
	Skipped bool   `json:"skipped,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ApplianceStatus aggregates the outcome of one diagnostic run against the
// appliance. All entities referenced here are created and discarded within a
// single run.
type ApplianceStatus struct {
	ReportID   string         `json:"report_id"`
	Address    string         `json:"address"`
	Version    string         `json:"version,omitempty"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Checks     []*StatusCheck `json:"checks"`

	Reachable     bool   `json:"reachable"`
	AuthPassed    bool   `json:"auth_passed"`
	SummaryPassed bool   `json:"summary_passed"`
	Blocking      string `json:"blocking,omitempty"` // "enabled" or "disabled"

	// Stage plumbing, not part of the serialized report. The session is
	// written by the auth probe and read by the protected probes; the
	// header set is established once by the summary probe and reused
	// verbatim by the blocking probe.
	Session    *types.Session    `json:"-"`
	APIHeaders map[string]string `json:"-"`
}

// Ready reports whether the run authorizes the downstream display refresh.
// Only the summary probe gates readiness; the blocking probe outcome is
// informational.
func (s *ApplianceStatus) Ready() bool {
	return s.SummaryPassed
}

// Check returns the recorded outcome with the given name, or nil.
func (s *ApplianceStatus) Check(name string) *StatusCheck {
	for _, c := range s.Checks {
		if c.Name == name {
			return c
		}
	}
	return nil
}
