// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Appliance describes the DNS-blocking appliance whose HTTP API is probed.
// The resolved address is immutable for the lifetime of a run.
type Appliance struct {
	Host     string `yaml:"host" env:"PIHOLE_HOST" env-default:"pi.hole" env-description:"Appliance hostname or IP"`
	Port     int    `yaml:"port" env:"PIHOLE_PORT" env-default:"80" env-description:"Appliance HTTP port"`
	Password string `yaml:"password" env:"PIHOLE_PASSWORD" env-description:"Appliance API password (optional)"`

	// ConnectTimeout bounds the initial connectivity probe only. Timeout is
	// the ambient client timeout for every later call; it must stay finite,
	// indefinite blocking is a failure mode to avoid.
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"PIHOLE_CONNECT_TIMEOUT" env-default:"5s"`
	Timeout        time.Duration `yaml:"timeout" env:"PIHOLE_TIMEOUT" env-default:"15s"`
}

func (a *Appliance) Validate() error {
	a.Host = strings.TrimSpace(a.Host)
	a.Password = strings.TrimSpace(a.Password)

	if a.Host == "" {
		return errors.New(ErrNoApplianceHostMsg)
	}
	if a.Port <= 0 || a.Port > 65535 {
		return errors.Errorf("appliance port %d out of range", a.Port)
	}
	if a.ConnectTimeout <= 0 {
		return errors.New("appliance connect_timeout must be positive")
	}
	if a.Timeout <= 0 {
		return errors.New("appliance timeout must be positive")
	}
	return nil
}

// BaseURL returns the plain-HTTP root address of the appliance API.
func (a *Appliance) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", a.Host, a.Port)
}

// HasCredential reports whether a password is configured; presence toggles
// the authentication branch of the session negotiation.
func (a *Appliance) HasCredential() bool {
	return a.Password != ""
}
