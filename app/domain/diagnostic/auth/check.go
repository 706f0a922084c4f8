// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package auth contains code for negotiating an API session with the
// appliance.
//
// The negotiation branches on whether a credential is configured. With one,
// the password is exchanged for a session at the auth endpoint; without one,
// an unauthenticated summary call decides whether the appliance has API
// authentication disabled for local access, which is itself a valid passing
// end-state.
package auth

import (
	"bytes"
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

const DiagnosticAPIAuth = config.DiagnosticAPIAuth

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
			WithContext(ctx).WithField(logging.OpField, "auth"),
	}
}

func (c *checker) Check(ctx context.Context, client *net.Client, accessor status.Accessor) error {
	if c.cfg.Appliance.HasCredential() {
		c.authenticate(ctx, client, accessor)
	} else {
		c.probeAnonymous(ctx, client, accessor)
	}
	return nil
}

// authenticate exchanges the configured password for a session at the auth
// endpoint.
func (c *checker) authenticate(ctx context.Context, client *net.Client, accessor status.Accessor) {
	c.logger.Info("authenticating with configured credential")

	body, err := json.Marshal(map[string]string{"password": c.cfg.Appliance.Password})
	if err != nil {
		accessor.AddCheck(&status.StatusCheck{Name: DiagnosticAPIAuth, Error: err.Error()})
		return
	}

	endpoint := c.cfg.Appliance.BaseURL() + config.APIPathAuth
	headers := map[string]string{httpclient.HeaderContentType: httpclient.ContentTypeJSON}

	code, reason, payload, err := httpclient.Fetch(ctx, client, net.MethodPost, headers, endpoint, bytes.NewReader(body))
	if err != nil {
		c.logger.WithError(err).Error("auth endpoint unreachable")
		accessor.AddCheck(&status.StatusCheck{Name: DiagnosticAPIAuth, Error: diagnostic.TransportDiagnosis(err)})
		return
	}

	switch {
	case code == net.StatusUnauthorized:
		// Distinct from generic auth errors: the endpoint is up, the
		// password is wrong.
		c.logger.Warn("appliance rejected the configured credential")
		accessor.AddCheck(&status.StatusCheck{
			Name:  DiagnosticAPIAuth,
			Error: "incorrect credential: appliance rejected the configured password",
		})
		return
	case code < 200 || code >= 300:
		c.logger.Warnf("auth endpoint responded %s", reason)
		accessor.AddCheck(&status.StatusCheck{
			Name:  DiagnosticAPIAuth,
			Error: diagnostic.StatusDiagnosis(code, reason, c.pol.Body(payload)),
		})
		return
	}

	reply, err := decodeAuthReply(payload)
	if err != nil || reply.Shape == ShapeNone {
		// Soft failure: negotiation did not yield a session identifier, but
		// the raw body is retained (redacted outside debug) for diagnosis.
		c.logger.Warn("auth reply carried no session identifier")
		accessor.AddCheck(&status.StatusCheck{
			Name:  DiagnosticAPIAuth,
			Error: diagnostic.KindMalformed + ": auth reply carried no session identifier; body: " + c.pol.Body(payload),
		})
		return
	}

	c.logger.Infof("session established (sid %s)", c.pol.Token(reply.Session.SID))
	accessor.WriteToReport(func(s *status.ApplianceStatus) {
		s.Session = reply.Session
		s.AuthPassed = true
	})
	accessor.AddCheck(&status.StatusCheck{Name: DiagnosticAPIAuth, Passing: true})
}

// probeAnonymous checks whether the appliance answers the summary endpoint
// without authentication.
func (c *checker) probeAnonymous(ctx context.Context, client *net.Client, accessor status.Accessor) {
	c.logger.Info("no credential configured, probing unauthenticated API access")

	endpoint := c.cfg.Appliance.BaseURL() + config.APIPathSummary

	code, reason, payload, err := httpclient.Fetch(ctx, client, net.MethodGet, nil, endpoint, nil)
	if err != nil {
		c.logger.WithError(err).Error("summary endpoint unreachable")
		accessor.AddCheck(&status.StatusCheck{Name: DiagnosticAPIAuth, Error: diagnostic.TransportDiagnosis(err)})
		return
	}

	switch {
	case code == net.StatusUnauthorized:
		c.logger.Warn("appliance requires authentication but no credential is configured")
		accessor.AddCheck(&status.StatusCheck{
			Name:  DiagnosticAPIAuth,
			Error: "authentication required but no credential configured",
		})
		return
	case code < 200 || code >= 300:
		accessor.AddCheck(&status.StatusCheck{
			Name:  DiagnosticAPIAuth,
			Error: diagnostic.StatusDiagnosis(code, reason, c.pol.Body(payload)),
		})
		return
	}

	// API authentication is disabled for local access; a valid end-state
	// with no session.
	c.logger.Info("appliance API reachable without authentication")
	accessor.WriteToReport(func(s *status.ApplianceStatus) {
		s.AuthPassed = true
	})
	accessor.AddCheck(&status.StatusCheck{Name: DiagnosticAPIAuth, Passing: true})
}

// AuthShape tags which of the two accepted auth response layouts produced a
// decoded reply.
type AuthShape int

const (
	// ShapeNone means neither layout yielded a session identifier.
	ShapeNone AuthShape = iota
	// ShapeNested is {"session": {"sid": ..., "csrf": ...}}.
	ShapeNested
	// ShapeFlat is {"sid": ...}; it never carries a csrf token.
	ShapeFlat
)

// AuthReply is the decoded auth response as an explicit tagged result rather
// than key probing scattered through control flow.
type AuthReply struct {
	Shape   AuthShape
	Session *types.Session
}

func decodeAuthReply(raw []byte) (AuthReply, error) {
	var envelope struct {
		Session *struct {
			SID  string `json:"sid"`
			CSRF string `json:"csrf"`
		} `json:"session"`
		SID string `json:"sid"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return AuthReply{}, err
	}

	switch {
	case envelope.Session != nil && envelope.Session.SID != "":
		return AuthReply{
			Shape:   ShapeNested,
			Session: types.NewSession(envelope.Session.SID, envelope.Session.CSRF),
		}, nil
	case envelope.SID != "":
		return AuthReply{
			Shape:   ShapeFlat,
			Session: types.NewSession(envelope.SID, ""),
		}, nil
	}
	return AuthReply{Shape: ShapeNone}, nil
}
