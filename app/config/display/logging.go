// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Logging struct {
	Level    string `yaml:"level" env:"LOG_LEVEL" env-default:"info" env-description:"Log level"`
	Format   string `yaml:"format" env:"LOG_FORMAT" env-default:"text" env-description:"Log format (text or json)"`
	Location string `yaml:"location" env:"LOG_LOCATION" env-description:"Optional log file location"`
}

func (l *Logging) Validate() error {
	if _, err := logrus.ParseLevel(l.Level); err != nil {
		return errors.Wrapf(err, "invalid log level %q", l.Level)
	}
	switch l.Format {
	case "text", "json":
	default:
		return errors.Errorf("invalid log format %q", l.Format)
	}
	return nil
}
