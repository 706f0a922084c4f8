// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package display wraps the external panel refresh operation. The renderer
// itself is a black box: an external command that draws the appliance stats
// onto the e-ink panel. The diagnostic engine only decides whether it runs.
package display

import (
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	config "github.com/inkdash/inkdash/app/config/display"
	"github.com/inkdash/inkdash/app/logging"
)

// Refresher updates the attached e-ink panel.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type commandRefresher struct {
	cfg    *config.Settings
	logger *logrus.Entry
}

// NewRefresher returns the exec-based refresher that shells out to the
// configured render command.
func NewRefresher(cfg *config.Settings) Refresher {
	return &commandRefresher{
		cfg:    cfg,
		logger: logging.NewLogger().WithField(logging.OpField, "display"),
	}
}

func (r *commandRefresher) Refresh(ctx context.Context) error {
	command := strings.Fields(r.cfg.Display.RefreshCommand)
	if len(command) == 0 {
		return errors.New("no display refresh command configured")
	}

	args := append(command[1:],
		"--interface", r.cfg.Display.Interface,
		"--screen", r.cfg.Display.ScreenType,
		"--rotate", strconv.Itoa(r.cfg.Display.Rotation),
	)

	r.logger.Infof("refreshing %s panel", r.cfg.Display.ScreenType)

	cmd := exec.CommandContext(ctx, command[0], args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "refresh command failed: %s", strings.TrimSpace(string(out)))
	}

	r.logger.Info("panel refreshed")
	return nil
}
