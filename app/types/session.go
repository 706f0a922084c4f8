// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package types contains shared value types used across the inkdash domain.
package types

// Session is the transient credential material issued by the appliance auth
// endpoint. It lives for a single diagnostic run and is never persisted.
//
// Invariant: a Session carrying a CSRF token always carries a non-empty SID.
// NewSession is the only constructor and enforces this.
type Session struct {
	SID  string
	CSRF string
}

// NewSession builds a Session from the identifiers returned by the appliance.
// Returns nil when sid is empty; a CSRF token without a session identifier is
// unusable and is discarded with it.
func NewSession(sid, csrf string) *Session {
	if sid == "" {
		return nil
	}
	return &Session{SID: sid, CSRF: csrf}
}
