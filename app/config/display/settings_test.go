// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/inkdash/inkdash/app/config/display"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inkdash.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewSettings(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
appliance:
  host: 192.168.1.5
  port: 8080
  password: hunter2
display:
  interface: eth0
  screen_type: waveshare_2in13
  rotation: 180
`)

	cfg, err := config.NewSettings(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "http://192.168.1.5:8080", cfg.Appliance.BaseURL())
	assert.True(t, cfg.Appliance.HasCredential())
	assert.Equal(t, "eth0", cfg.Display.Interface)
	assert.Equal(t, 180, cfg.Display.Rotation)
	// Defaults applied by cleanenv.
	assert.Equal(t, 5*time.Second, cfg.Appliance.ConnectTimeout)
	assert.Equal(t, 15*time.Second, cfg.Appliance.Timeout)
}

func TestNewSettings_Errors(t *testing.T) {
	t.Run("NilSlice", func(t *testing.T) {
		_, err := config.NewSettings()
		assert.Error(t, err)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := config.NewSettings("/does/not/exist.yaml")
		assert.Error(t, err)
	})

	t.Run("EmptyEntriesSkipped", func(t *testing.T) {
		path := writeConfig(t, `appliance: {host: pi.hole}`)
		_, err := config.NewSettings("", path, "")
		assert.NoError(t, err)
	})
}

func TestSettings_Validate(t *testing.T) {
	valid := func() *config.Settings {
		return &config.Settings{
			Logging: config.Logging{Level: "info", Format: "text"},
			Appliance: config.Appliance{
				Host:           "pi.hole",
				Port:           80,
				ConnectTimeout: 5 * time.Second,
				Timeout:        15 * time.Second,
			},
			Display: config.Display{ScreenType: "waveshare_2in13", Rotation: 0},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*config.Settings)
		wantErr string
	}{
		{name: "Valid", mutate: func(*config.Settings) {}},
		{
			name:    "NoHost",
			mutate:  func(s *config.Settings) { s.Appliance.Host = "  " },
			wantErr: config.ErrNoApplianceHostMsg,
		},
		{
			name:    "PortOutOfRange",
			mutate:  func(s *config.Settings) { s.Appliance.Port = 70000 },
			wantErr: "out of range",
		},
		{
			name:    "ZeroTimeout",
			mutate:  func(s *config.Settings) { s.Appliance.Timeout = 0 },
			wantErr: "timeout must be positive",
		},
		{
			name:    "BadRotation",
			mutate:  func(s *config.Settings) { s.Display.Rotation = 45 },
			wantErr: "rotation",
		},
		{
			name:    "BadLogLevel",
			mutate:  func(s *config.Settings) { s.Logging.Level = "chatty" },
			wantErr: "log level",
		},
		{
			name:    "UnknownCheck",
			mutate:  func(s *config.Settings) { s.Diagnostics.Checks = []string{"bogus"} },
			wantErr: "unknown diagnostic check",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestSettings_ToYAML(t *testing.T) {
	cfg := &config.Settings{Appliance: config.Appliance{Host: "pi.hole", Port: 80}}
	raw, err := cfg.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(raw), "pi.hole")

	asBytes, err := cfg.ToBytes()
	require.NoError(t, err)
	assert.Equal(t, raw, asBytes)
}

func TestDiagnostics_Selected(t *testing.T) {
	var d config.Diagnostics
	assert.True(t, d.Selected(config.DiagnosticAPIAuth))

	d.Checks = []string{config.DiagnosticAPIConnectivity}
	assert.True(t, d.Selected(config.DiagnosticAPIConnectivity))
	assert.False(t, d.Selected(config.DiagnosticAPIAuth))
}
