// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

const (
	// Diagnostic check names, in execution order.
	DiagnosticAPIConnectivity = "api_connectivity"
	DiagnosticAPIAuth         = "api_auth"
	DiagnosticAPISummary      = "api_summary"
	DiagnosticDNSBlocking     = "dns_blocking"

	// Appliance API paths.
	APIPathAuth     = "/api/auth"
	APIPathSummary  = "/api/stats/summary"
	APIPathBlocking = "/api/dns/blocking"

	FlagConfigFile   = "config"
	FlagDescConfFile = "config file location (repeatable)"

	ErrNoApplianceHostMsg = "appliance host must be configured"
)
