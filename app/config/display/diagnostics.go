// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import "github.com/pkg/errors"

// KnownChecks lists every diagnostic check in its fixed execution order.
// The runner never reorders stages; a configured subset only filters.
var KnownChecks = []string{
	DiagnosticAPIConnectivity,
	DiagnosticAPIAuth,
	DiagnosticAPISummary,
	DiagnosticDNSBlocking,
}

// Diagnostics selects which checks run. An empty list means all of them.
type Diagnostics struct {
	Checks []string `yaml:"checks" env:"INKDASH_CHECKS" env-description:"Subset of checks to run (empty runs all)"`
}

func (d *Diagnostics) Validate() error {
	for _, name := range d.Checks {
		if !isKnownCheck(name) {
			return errors.Errorf("unknown diagnostic check %q", name)
		}
	}
	return nil
}

// Selected reports whether the named check should run under this
// configuration.
func (d *Diagnostics) Selected(name string) bool {
	if len(d.Checks) == 0 {
		return true
	}
	for _, c := range d.Checks {
		if c == name {
			return true
		}
	}
	return false
}

func isKnownCheck(name string) bool {
	for _, c := range KnownChecks {
		if c == name {
			return true
		}
	}
	return false
}
