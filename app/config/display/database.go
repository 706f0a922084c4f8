// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

// Database configures the local run-history store. An empty location
// disables history recording entirely.
type Database struct {
	Location string `yaml:"location" env:"INKDASH_DB_LOCATION" env-description:"SQLite file for run history (empty disables)"`
}

// Enabled reports whether diagnostic runs should be recorded.
func (d *Database) Enabled() bool {
	return d.Location != ""
}
