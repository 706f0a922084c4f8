// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package blocking contains code for checking the appliance's DNS blocking
// flag. The probe is gated: the runner only invokes it after the summary
// probe succeeded, and its failure never downgrades that success.
package blocking

import (
	"context"
	"encoding/json"
	net "net/http"

	"github.com/sirupsen/logrus"

	config "github.com/inkdash/inkdash/app/config/display"
	"github.com/inkdash/inkdash/app/domain/diagnostic"
	httpclient "github.com/inkdash/inkdash/app/http/client"
	"github.com/inkdash/inkdash/app/logging"
	"github.com/inkdash/inkdash/app/types/status"
)

const DiagnosticDNSBlocking = config.DiagnosticDNSBlocking

const (
	StateEnabled  = "enabled"
	StateDisabled = "disabled"
)

type checker struct {
	cfg    *config.Settings
	logger *logrus.Entry
}

func NewProvider(ctx context.Context, cfg *config.Settings) diagnostic.Provider {
	return &checker{
		cfg: cfg,
		logger: logging.NewLogger().
			WithContext(ctx).WithField(logging.OpField, "blocking"),
	}
}

func (c *checker) Check(ctx context.Context, client *net.Client, accessor status.Accessor) error {
	// Reuse the header set the summary probe established; never recomputed
	// here, and empty when no session exists.
	headers := map[string]string{}
	accessor.ReadFromReport(func(s *status.ApplianceStatus) {
		if s.APIHeaders != nil {
			headers = s.APIHeaders
		}
	})

	endpoint := c.cfg.Appliance.BaseURL() + config.APIPathBlocking
	c.logger.Info("querying DNS blocking status")

	code, reason, payload, err := httpclient.Fetch(ctx, client, net.MethodGet, headers, endpoint, nil)
	if err != nil {
		c.logger.WithError(err).Error("blocking endpoint unreachable")
		accessor.AddCheck(&status.StatusCheck{Name: DiagnosticDNSBlocking, Error: diagnostic.TransportDiagnosis(err)})
		return nil
	}
	if code < 200 || code >= 300 {
		c.logger.Warnf("blocking endpoint responded %s", reason)
		accessor.AddCheck(&status.StatusCheck{
			Name:  DiagnosticDNSBlocking,
			Error: diagnostic.StatusDiagnosis(code, reason, ""),
		})
		return nil
	}

	// The blocking key defaults to false when absent.
	var reply struct {
		Blocking bool `json:"blocking"`
	}
	if err := json.Unmarshal(payload, &reply); err != nil {
		accessor.AddCheck(&status.StatusCheck{
			Name:  DiagnosticDNSBlocking,
			Error: diagnostic.KindMalformed + ": blocking payload is not valid JSON",
		})
		return nil
	}

	state := StateDisabled
	if reply.Blocking {
		state = StateEnabled
	}
	c.logger.Infof("DNS blocking is %s", state)

	accessor.WriteToReport(func(s *status.ApplianceStatus) {
		s.Blocking = state
	})
	accessor.AddCheck(&status.StatusCheck{Name: DiagnosticDNSBlocking, Passing: true})
	return nil
}
