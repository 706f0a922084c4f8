// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"strings"

	"github.com/pkg/errors"
)

// Display describes the attached e-ink panel and the external command that
// renders to it. The renderer is a black box to the diagnostic engine.
type Display struct {
	Interface      string `yaml:"interface" env:"INKDASH_INTERFACE" env-default:"wlan0" env-description:"Network interface shown on the panel"`
	ScreenType     string `yaml:"screen_type" env:"INKDASH_SCREEN_TYPE" env-default:"waveshare_2in13" env-description:"Panel model identifier"`
	Rotation       int    `yaml:"rotation" env:"INKDASH_ROTATION" env-default:"0" env-description:"Panel rotation in degrees"`
	RefreshCommand string `yaml:"refresh_command" env:"INKDASH_REFRESH_COMMAND" env-description:"External command invoked to redraw the panel"`
}

func (d *Display) Validate() error {
	d.Interface = strings.TrimSpace(d.Interface)
	d.ScreenType = strings.TrimSpace(d.ScreenType)

	switch d.Rotation {
	case 0, 90, 180, 270:
	default:
		return errors.Errorf("display rotation %d not one of 0, 90, 180, 270", d.Rotation)
	}
	if d.ScreenType == "" {
		return errors.New("display screen_type must be configured")
	}
	return nil
}
