// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package runner_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/inkdash/inkdash/app/config/display"
	"github.com/inkdash/inkdash/app/domain/diagnostic/catalog"
	"github.com/inkdash/inkdash/app/domain/diagnostic/runner"
	"github.com/inkdash/inkdash/app/redact"
	"github.com/inkdash/inkdash/app/types/status"
)

// fakeAppliance mimics the appliance API: root denies unauthenticated
// access with 403, auth issues a nested-shape session, and the protected
// endpoints honor it via header or cookie.
func fakeAppliance(t *testing.T, password, sid string) *httptest.Server {
	t.Helper()

	authorized := func(r *http.Request) bool {
		if password == "" {
			return true
		}
		if r.Header.Get("sid") == sid {
			return true
		}
		cookie, err := r.Cookie("sid")
		return err == nil && cookie.Value == sid
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusForbidden)
	})
	mux.HandleFunc(config.APIPathAuth, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.Password != password {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"session":{"sid":"` + sid + `","csrf":"tok"}}`))
	})
	mux.HandleFunc(config.APIPathSummary, func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"queries":{"total":10}}`))
	})
	mux.HandleFunc(config.APIPathBlocking, func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"blocking":true}`))
	})
	return httptest.NewServer(mux)
}

func settingsFor(t *testing.T, rawURL, password string) *config.Settings {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return &config.Settings{
		Appliance: config.Appliance{
			Host:           u.Hostname(),
			Port:           port,
			Password:       password,
			ConnectTimeout: 2 * time.Second,
			Timeout:        5 * time.Second,
		},
	}
}

func TestRunner_RunHappyPath(t *testing.T) {
	srv := fakeAppliance(t, "hunter2", "abc123")
	defer srv.Close()

	ctx := context.Background()
	cfg := settingsFor(t, srv.URL, "hunter2")
	engine := runner.NewRunner(cfg, catalog.NewCatalog(ctx, cfg, redact.NewPolicy(false)))

	report, err := engine.Run(ctx)
	require.NoError(t, err)

	assert.True(t, runner.Ready(report))
	report.ReadFromReport(func(s *status.ApplianceStatus) {
		require.Len(t, s.Checks, 4)
		for _, c := range s.Checks {
			assert.True(t, c.Passing, "check %s should pass: %s", c.Name, c.Error)
			assert.False(t, c.Skipped)
		}
		assert.True(t, s.Reachable)
		assert.True(t, s.AuthPassed)
		assert.True(t, s.SummaryPassed)
		assert.Equal(t, "enabled", s.Blocking)
		require.NotNil(t, s.Session)
		assert.Equal(t, "abc123", s.Session.SID)
		assert.NotEmpty(t, s.ReportID)
		assert.False(t, s.FinishedAt.Before(s.StartedAt))
	})
}

func TestRunner_RunStageOrder(t *testing.T) {
	srv := fakeAppliance(t, "hunter2", "abc123")
	defer srv.Close()

	ctx := context.Background()
	cfg := settingsFor(t, srv.URL, "hunter2")
	engine := runner.NewRunner(cfg, catalog.NewCatalog(ctx, cfg, redact.NewPolicy(false)))

	report, err := engine.Run(ctx)
	require.NoError(t, err)

	report.ReadFromReport(func(s *status.ApplianceStatus) {
		var names []string
		for _, c := range s.Checks {
			names = append(names, c.Name)
		}
		assert.Equal(t, config.KnownChecks, names)
	})
}

func TestRunner_RunNoCredentialAuthRequired(t *testing.T) {
	srv := fakeAppliance(t, "hunter2", "abc123")
	defer srv.Close()

	ctx := context.Background()
	cfg := settingsFor(t, srv.URL, "") // appliance wants auth, none configured
	engine := runner.NewRunner(cfg, catalog.NewCatalog(ctx, cfg, redact.NewPolicy(false)))

	report, err := engine.Run(ctx)
	require.NoError(t, err)

	assert.False(t, runner.Ready(report))
	report.ReadFromReport(func(s *status.ApplianceStatus) {
		require.Len(t, s.Checks, 4)

		assert.True(t, s.Check(config.DiagnosticAPIConnectivity).Passing)

		authCheck := s.Check(config.DiagnosticAPIAuth)
		assert.False(t, authCheck.Passing)
		assert.Contains(t, authCheck.Error, "no credential configured")

		// The summary probe still ran independently and failed on its own.
		summaryCheck := s.Check(config.DiagnosticAPISummary)
		assert.False(t, summaryCheck.Passing)
		assert.False(t, summaryCheck.Skipped)

		// The blocking probe is the only gated stage.
		blockingCheck := s.Check(config.DiagnosticDNSBlocking)
		assert.True(t, blockingCheck.Skipped)
		assert.False(t, blockingCheck.Passing)
		assert.Empty(t, s.Blocking)
	})
}

func TestRunner_RunWrongCredentialStillProbesSummary(t *testing.T) {
	srv := fakeAppliance(t, "hunter2", "abc123")
	defer srv.Close()

	ctx := context.Background()
	cfg := settingsFor(t, srv.URL, "wrong")
	engine := runner.NewRunner(cfg, catalog.NewCatalog(ctx, cfg, redact.NewPolicy(false)))

	report, err := engine.Run(ctx)
	require.NoError(t, err)

	assert.False(t, runner.Ready(report))
	report.ReadFromReport(func(s *status.ApplianceStatus) {
		authCheck := s.Check(config.DiagnosticAPIAuth)
		require.NotNil(t, authCheck)
		assert.Contains(t, authCheck.Error, "incorrect credential")

		summaryCheck := s.Check(config.DiagnosticAPISummary)
		require.NotNil(t, summaryCheck)
		assert.False(t, summaryCheck.Skipped)
		assert.Contains(t, summaryCheck.Error, "session not accepted")
	})
}

func TestRunner_RunSubsetFilter(t *testing.T) {
	srv := fakeAppliance(t, "", "")
	defer srv.Close()

	ctx := context.Background()
	cfg := settingsFor(t, srv.URL, "")
	cfg.Diagnostics.Checks = []string{config.DiagnosticAPIConnectivity}
	engine := runner.NewRunner(cfg, catalog.NewCatalog(ctx, cfg, redact.NewPolicy(false)))

	report, err := engine.Run(ctx)
	require.NoError(t, err)

	report.ReadFromReport(func(s *status.ApplianceStatus) {
		require.Len(t, s.Checks, 1)
		assert.Equal(t, config.DiagnosticAPIConnectivity, s.Checks[0].Name)
	})
}
