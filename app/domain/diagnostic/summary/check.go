// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package summary contains code for checking authorized access to the
// protected summary endpoint.
//
// The probe always runs, independent of the session negotiation outcome,
// because it yields diagnostic signal on its own: a 401 here after a
// successful negotiation means the auth endpoint issued a session the rest
// of the API does not honor, a known appliance-version inconsistency.
package summary

import (
	"context"
	"encoding/json"
	net "net/http"

	"github.com/sirupsen/logrus"

	config "github.com/inkdash/inkdash/app/config/display"
	"github.com/inkdash/inkdash/app/domain/diagnostic"
	httpclient "github.com/inkdash/inkdash/app/http/client"
	"github.com/inkdash/inkdash/app/logging"
	"github.com/inkdash/inkdash/app/redact"
	"github.com/inkdash/inkdash/app/types"
	"github.com/inkdash/inkdash/app/types/status"
)

const DiagnosticAPISummary = config.DiagnosticAPISummary

type checker struct {
	cfg    *config.Settings
	logger *logrus.Entry
	pol    redact.Policy
}

func NewProvider(ctx context.Context, cfg *config.Settings, pol redact.Policy) diagnostic.Provider {
	return &checker{
		cfg: cfg,
		pol: pol,
		logger: logging.NewLogger().
			WithContext(ctx).WithField(logging.OpField, "summary"),
	}
}

// Headers builds the auth header set for the protected API endpoints. The
// session identifier is attached both as a bare header and as a cookie, the
// appliance accepts either transport. Always non-nil: with no session the
// protected calls go out unauthenticated with an empty header set.
func Headers(sess *types.Session) map[string]string {
	headers := map[string]string{}
	if sess == nil {
		return headers
	}
	headers[httpclient.HeaderSID] = sess.SID
	headers[httpclient.HeaderCookie] = "sid=" + sess.SID
	if sess.CSRF != "" {
		headers[httpclient.HeaderCSRFToken] = sess.CSRF
	}
	return headers
}

func (c *checker) Check(ctx context.Context, client *net.Client, accessor status.Accessor) error {
	var sess *types.Session
	var negotiated bool
	accessor.ReadFromReport(func(s *status.ApplianceStatus) {
		sess = s.Session
		negotiated = s.AuthPassed
	})

	headers := Headers(sess)
	// Record the exact header set so the gated blocking probe reuses it
	// rather than recomputing.
	accessor.WriteToReport(func(s *status.ApplianceStatus) {
		s.APIHeaders = headers
	})

	if sess != nil {
		c.logger.Infof("querying summary with session %s", c.pol.Token(sess.SID))
	} else {
		c.logger.Info("querying summary without a session")
	}

	endpoint := c.cfg.Appliance.BaseURL() + config.APIPathSummary

	code, reason, payload, err := httpclient.Fetch(ctx, client, net.MethodGet, headers, endpoint, nil)
	if err != nil {
		c.logger.WithError(err).Error("summary endpoint unreachable")
		accessor.AddCheck(&status.StatusCheck{Name: DiagnosticAPISummary, Error: diagnostic.TransportDiagnosis(err)})
		return nil
	}

	switch {
	case code == net.StatusUnauthorized:
		msg := "session not accepted by the protected endpoint"
		if negotiated && sess != nil {
			msg += " despite successful negotiation, the appliance may not honor its own sessions across endpoints"
		}
		c.logger.Warn(msg)
		accessor.AddCheck(&status.StatusCheck{Name: DiagnosticAPISummary, Error: msg})
		return nil
	case code < 200 || code >= 300:
		c.logger.Warnf("summary endpoint responded %s", reason)
		accessor.AddCheck(&status.StatusCheck{
			Name:  DiagnosticAPISummary,
			Error: diagnostic.StatusDiagnosis(code, reason, c.pol.Body(payload)),
		})
		return nil
	}

	var parsed map[string]any
	if err := json.Unmarshal(payload, &parsed); err != nil {
		accessor.AddCheck(&status.StatusCheck{
			Name:  DiagnosticAPISummary,
			Error: diagnostic.KindMalformed + ": summary payload is not valid JSON: " + c.pol.Body(payload),
		})
		return nil
	}

	c.logger.Infof("summary payload received: %s", c.pol.Body(payload))
	accessor.WriteToReport(func(s *status.ApplianceStatus) {
		s.SummaryPassed = true
	})
	accessor.AddCheck(&status.StatusCheck{Name: DiagnosticAPISummary, Passing: true})
	return nil
}
