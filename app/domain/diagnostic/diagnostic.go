// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package diagnostic defines the provider model for the staged probes run
// against the appliance HTTP API.
//
// Each probe is a Provider focused on one interaction: root connectivity,
// session negotiation, the authorized summary call, and the blocking-status
// call. Providers catch their own transport- and HTTP-level failures and
// convert them into reported outcomes on the status accessor; an error
// return is reserved for unrecoverable conditions and halts the sequence.
package diagnostic

import (
	"context"
	"net/http"

	"github.com/inkdash/inkdash/app/types/status"
)

// Provider is implemented by every diagnostic probe.
//
// Check issues at most one HTTP request against the appliance, records its
// tri-state outcome through the accessor, and returns nil for everything the
// probe could classify itself. Probes do not rerun earlier stages and read
// any material established by prior stages (session, header set) from the
// report.
type Provider interface {
	Check(_ context.Context, _ *http.Client, _ status.Accessor) error
}
