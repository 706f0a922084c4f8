// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package connectivity contains code for checking basic reachability of the
// appliance HTTP root.
package connectivity

import (
	"context"
	net "net/http"

	"github.com/sirupsen/logrus"

	config "github.com/inkdash/inkdash/app/config/display"
	"github.com/inkdash/inkdash/app/domain/diagnostic"
	httpclient "github.com/inkdash/inkdash/app/http/client"
	"github.com/inkdash/inkdash/app/logging"
	"github.com/inkdash/inkdash/app/types/status"
)

const DiagnosticAPIConnectivity = config.DiagnosticAPIConnectivity

type checker struct {
	cfg    *config.Settings
	logger *logrus.Entry
}

func NewProvider(ctx context.Context, cfg *config.Settings) diagnostic.Provider {
	return &checker{
		cfg: cfg,
		logger: logging.NewLogger().
			WithContext(ctx).WithField(logging.OpField, "connectivity"),
	}
}

func (c *checker) Check(ctx context.Context, _ *net.Client, accessor status.Accessor) error {
	root := c.cfg.Appliance.BaseURL() + "/"
	c.logger.Infof("checking reachability of %s", root)

	// The root touch is the only probe with its own bounded timeout; later
	// stages share the ambient client.
	probeClient := &net.Client{Timeout: c.cfg.Appliance.ConnectTimeout}

	code, reason, _, err := httpclient.Fetch(ctx, probeClient, net.MethodGet, nil, root, nil)
	if err != nil {
		c.logger.WithError(err).Error("appliance unreachable")
		accessor.AddCheck(&status.StatusCheck{Name: DiagnosticAPIConnectivity, Error: diagnostic.TransportDiagnosis(err)})
		return nil
	}

	// A 403 on the root is the appliance's known behavior of rejecting
	// unauthenticated root access while the API itself is up.
	reachable := (code >= 200 && code < 300) || code == net.StatusForbidden
	if !reachable {
		c.logger.Warnf("appliance responded %s on root", reason)
		accessor.AddCheck(&status.StatusCheck{
			Name:  DiagnosticAPIConnectivity,
			Error: diagnostic.StatusDiagnosis(code, reason, ""),
		})
		return nil
	}

	if code == net.StatusForbidden {
		c.logger.Info("root access denied (403), appliance reachable and API-capable")
	} else {
		c.logger.Info("appliance reachable")
	}

	accessor.WriteToReport(func(s *status.ApplianceStatus) {
		s.Reachable = true
	})
	accessor.AddCheck(&status.StatusCheck{Name: DiagnosticAPIConnectivity, Passing: true})
	return nil
}
