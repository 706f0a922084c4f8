// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package diagnostic

import (
	"fmt"
	"strings"
)

// Error taxonomy for reported probe failures. Every diagnostic recorded on a
// failed check starts with one of these kinds so callers and operators can
// classify without parsing free text.
const (
	KindTransport   = "unreachable-transport"
	KindClientError = "http-client-error"
	KindServerError = "http-server-error"
	KindMalformed   = "malformed-response"
	KindRefresh     = "refresh-operation-error"
)

// ClassifyStatus maps a non-success HTTP status code to its taxonomy kind.
func ClassifyStatus(code int) string {
	if code >= 500 {
		return KindServerError
	}
	return KindClientError
}

// StatusDiagnosis renders a failed HTTP exchange as a taxonomy-prefixed
// diagnostic. The reason phrase already carries the code ("404 Not Found");
// detail is appended only when non-empty, typically a redacted body.
func StatusDiagnosis(code int, reason, detail string) string {
	msg := fmt.Sprintf("%s: %s", ClassifyStatus(code), strings.TrimSpace(reason))
	if detail != "" {
		msg += ": " + detail
	}
	return msg
}

// TransportDiagnosis renders a connection-level failure.
func TransportDiagnosis(err error) string {
	return KindTransport + ": " + err.Error()
}
