// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package redact provides the single formatting policy consulted everywhere
// response detail is emitted. Debug mode is the sole control over how much
// detail (raw bodies, full session identifiers) is surfaced; outside debug
// mode, output is always truncated or replaced with a placeholder so secrets
// never reach the logs.
package redact

const (
	bodyPlaceholder = "(response body redacted, rerun with --debug to print it)"
	tokenKeepRunes  = 4
)

// Policy decides between full and redacted rendition of sensitive detail.
// The zero value redacts everything.
type Policy struct {
	Debug bool
}

func NewPolicy(debug bool) Policy {
	return Policy{Debug: debug}
}

// Body renders a raw response body. Redacted unless debug is set.
func (p Policy) Body(raw []byte) string {
	if p.Debug {
		return string(raw)
	}
	return bodyPlaceholder
}

// Token renders a session identifier or anti-forgery token, keeping only a
// short prefix unless debug is set.
func (p Policy) Token(tok string) string {
	if p.Debug {
		return tok
	}
	r := []rune(tok)
	if len(r) <= tokenKeepRunes {
		return "****"
	}
	return string(r[:tokenKeepRunes]) + "****"
}

// Secret renders a configured credential. Never shown in full, debug or not;
// only its presence is ever reported.
func (p Policy) Secret(set bool) string {
	if set {
		return "(set)"
	}
	return "(not set)"
}
