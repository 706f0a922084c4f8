// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package config contains configuration settings for the display agent.
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Settings struct {
	Logging     Logging     `yaml:"logging"`
	Appliance   Appliance   `yaml:"appliance"`
	Display     Display     `yaml:"display"`
	Database    Database    `yaml:"database"`
	Diagnostics Diagnostics `yaml:"diagnostics"`
}

// NewSettings layers the given config files over environment defaults. Empty
// entries are skipped; missing files are an error.
func NewSettings(configFiles ...string) (*Settings, error) {
	var cfg Settings

	if configFiles == nil {
		return nil, errors.New("the config files slice cannot be nil")
	}

	for _, cfgFile := range configFiles {
		if cfgFile == "" {
			continue
		}

		if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
			return nil, fmt.Errorf("no config file %s: %w", cfgFile, err)
		}

		if err := cleanenv.ReadConfig(cfgFile, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config from %s: %w", cfgFile, err)
		}
	}
	return &cfg, nil
}

// NewSettingsFromEnv builds settings from environment variables and struct
// defaults only, for running without a config file.
func NewSettingsFromEnv() (*Settings, error) {
	var cfg Settings
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, errors.Wrap(err, "read settings from environment")
	}
	return &cfg, nil
}

func (s *Settings) Validate() error {
	if err := s.Logging.Validate(); err != nil {
		return err
	}

	if err := s.Appliance.Validate(); err != nil {
		return err
	}

	if err := s.Display.Validate(); err != nil {
		return err
	}

	if err := s.Diagnostics.Validate(); err != nil {
		return err
	}

	return nil
}

func (s *Settings) ToYAML() ([]byte, error) {
	raw, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode into yaml: %w", err)
	}
	return raw, nil
}

// ToBytes returns a serialized representation of the settings.
func (s *Settings) ToBytes() ([]byte, error) {
	return s.ToYAML()
}
