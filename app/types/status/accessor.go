// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package status

import "sync"

// Accessor serializes access to the run report so that probe implementations
// never touch the report struct directly.
type Accessor interface {
	// AddCheck appends probe outcomes to the report.
	AddCheck(...*StatusCheck)
	// WriteToReport mutates the report under the write lock.
	WriteToReport(func(*ApplianceStatus))
	// ReadFromReport observes the report under the read lock.
	ReadFromReport(func(*ApplianceStatus))
}

type accessor struct {
	mu     sync.RWMutex
	report *ApplianceStatus
}

func NewAccessor(report *ApplianceStatus) Accessor {
	return &accessor{report: report}
}

func (a *accessor) AddCheck(checks ...*StatusCheck) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.report.Checks = append(a.report.Checks, checks...)
}

func (a *accessor) WriteToReport(fn func(*ApplianceStatus)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(a.report)
}

func (a *accessor) ReadFromReport(fn func(*ApplianceStatus)) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	fn(a.report)
}
