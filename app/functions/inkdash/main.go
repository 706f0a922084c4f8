// SPDX-FileCopyrightText: Copyright (c) 2024-2026, Inkdash Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package main is the inkdash CLI. The default invocation refreshes the
// attached e-ink panel; --test runs the appliance diagnostics only, and
// --verbose runs them with a configuration echo before deciding whether to
// refresh. --debug additionally prints full response bodies and session
// identifiers.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	config "github.com/inkdash/inkdash/app/config/display"
	"github.com/inkdash/inkdash/app/domain/diagnostic"
	"github.com/inkdash/inkdash/app/domain/diagnostic/catalog"
	"github.com/inkdash/inkdash/app/domain/diagnostic/runner"
	"github.com/inkdash/inkdash/app/domain/display"
	"github.com/inkdash/inkdash/app/logging"
	"github.com/inkdash/inkdash/app/redact"
	"github.com/inkdash/inkdash/app/storage/core"
	"github.com/inkdash/inkdash/app/storage/history"
	"github.com/inkdash/inkdash/app/storage/sqlite"
	"github.com/inkdash/inkdash/app/types/status"
	"github.com/pkg/errors"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("inkdash failed")
	}
}

func newApp() *cli.App {
	// The built-in version flag is aliased -v, which collides with the
	// verbose alias. Keep --version only.
	cli.VersionFlag = &cli.BoolFlag{Name: "version", Usage: "print the version"}

	return &cli.App{
		Name:    "inkdash",
		Usage:   "e-ink status display for a Pi-hole appliance",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: config.FlagConfigFile, Aliases: []string{"f"}, Usage: config.FlagDescConfFile},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "echo configuration, run connection diagnostics, then refresh when ready"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "like --verbose, with full response bodies and session identifiers"},
			&cli.BoolFlag{Name: "test", Aliases: []string{"t"}, Usage: "run the diagnostic sequence only, never refresh"},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	cfg := loadSettings(c)

	level := cfg.Logging.Level
	if c.Bool("debug") {
		level = "debug"
	}
	logging.SetUpLogging(level, cfg.Logging.Format)
	if cfg.Logging.Location != "" {
		if err := logging.LogToFile(cfg.Logging.Location); err != nil {
			logrus.WithError(err).Warn("failed to open log file")
		}
	}

	pol := redact.NewPolicy(c.Bool("debug"))

	switch {
	case c.Bool("test"):
		return runDiagnostics(c.Context, cfg, pol, false)
	case c.Bool("verbose") || c.Bool("debug"):
		return runDiagnostics(c.Context, cfg, pol, true)
	default:
		return refreshOnly(c.Context, cfg)
	}
}

func loadSettings(c *cli.Context) *config.Settings {
	var (
		cfg *config.Settings
		err error
	)

	if files := c.StringSlice(config.FlagConfigFile); len(files) > 0 {
		cfg, err = config.NewSettings(files...)
	} else {
		cfg, err = config.NewSettingsFromEnv()
	}
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err = cfg.Validate(); err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}
	return cfg
}

// refreshOnly is the default path: refresh the panel, and on any failure
// point the operator at the diagnostic mode instead of crashing with a
// stack.
func refreshOnly(ctx context.Context, cfg *config.Settings) error {
	if err := guardedRefresh(ctx, cfg); err != nil {
		logging.NewLogger().WithField(logging.OpField, "main").
			WithError(err).Error("display refresh failed")
		fmt.Println("inkdash: display refresh failed, rerun with --verbose for connection diagnostics")
		return cli.Exit("", 1)
	}
	return nil
}

func runDiagnostics(ctx context.Context, cfg *config.Settings, pol redact.Policy, withRefresh bool) error {
	if withRefresh {
		echoConfig(ctx, cfg, pol)
	}

	engine := runner.NewRunner(cfg, catalog.NewCatalog(ctx, cfg, pol))
	report, err := engine.Run(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to run diagnostics")
	}

	report.ReadFromReport(func(s *status.ApplianceStatus) {
		printReport(s)
	})

	ready := runner.Ready(report)

	var refreshed bool
	var refreshErr error
	if withRefresh {
		if ready {
			if refreshErr = guardedRefresh(ctx, cfg); refreshErr != nil {
				fmt.Printf("Display refresh failed: %v\n", refreshErr)
			} else {
				refreshed = true
				fmt.Println("Display refreshed.")
			}
		} else {
			fmt.Println("Summary probe failed, skipping display refresh.")
		}
	}

	recordHistory(ctx, cfg, report, refreshed, refreshErr)

	if !ready {
		return cli.Exit("appliance API diagnostics failed", 1)
	}
	return nil
}

// guardedRefresh wraps the external refresh operation so that nothing it
// does, error or panic, takes the process down.
func guardedRefresh(ctx context.Context, cfg *config.Settings) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("%s: panic in display refresh: %v", diagnostic.KindRefresh, r)
		}
	}()

	if err := display.NewRefresher(cfg).Refresh(ctx); err != nil {
		return errors.Wrap(err, diagnostic.KindRefresh)
	}
	return nil
}

func echoConfig(ctx context.Context, cfg *config.Settings, pol redact.Policy) {
	raw, err := maskedSettingsYAML(cfg, pol)
	if err != nil {
		logrus.WithError(err).Warn("failed to render settings")
	} else {
		fmt.Println("Configuration:")
		fmt.Print(string(raw))
	}
	printLastRun(ctx, cfg)
	fmt.Println()
}

// maskedSettingsYAML renders the resolved settings with the credential
// replaced by its presence marker, so the echo never carries the password.
func maskedSettingsYAML(cfg *config.Settings, pol redact.Policy) ([]byte, error) {
	masked := *cfg
	masked.Appliance.Password = pol.Secret(cfg.Appliance.HasCredential())
	return masked.ToYAML()
}

func printLastRun(ctx context.Context, cfg *config.Settings) {
	if !cfg.Database.Enabled() {
		return
	}
	repo, err := openHistory(cfg)
	if err != nil {
		logrus.WithError(err).Warn("run history unavailable")
		return
	}
	printLatest(ctx, repo)
}

type latestReader interface {
	Latest(ctx context.Context) (*history.Run, error)
}

func printLatest(ctx context.Context, repo latestReader) {
	last, err := repo.Latest(ctx)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return
	case err != nil:
		logrus.WithError(err).Warn("failed to read run history")
		return
	}
	fmt.Printf("Last run:   %s (ready=%v)\n", last.StartedAt.Format("2006-01-02 15:04:05 MST"), last.Ready)
}

func recordHistory(ctx context.Context, cfg *config.Settings, report status.Accessor, refreshed bool, refreshErr error) {
	if !cfg.Database.Enabled() {
		return
	}
	repo, err := openHistory(cfg)
	if err != nil {
		logrus.WithError(err).Warn("failed to open run history")
		return
	}
	if err := repo.Record(ctx, report, refreshed, refreshErr); err != nil {
		logrus.WithError(err).Warn("failed to record run history")
	}
}

func openHistory(cfg *config.Settings) (*history.Repo, error) {
	db, err := sqlite.NewSQLiteDriver(cfg.Database.Location)
	if err != nil {
		return nil, err
	}
	return history.NewRepo(db)
}

func printReport(s *status.ApplianceStatus) {
	if s == nil || len(s.Checks) == 0 {
		return
	}

	fmt.Println("Checks:")
	fmt.Printf("%-20s %-10s %-10s %-50s\n", "Name", "Passing", "Skipped", "Error")
	fmt.Printf("%-20s %-10s %-10s %-50s\n", strings.Repeat("-", 20), strings.Repeat("-", 10), strings.Repeat("-", 10), strings.Repeat("-", 50))
	for _, check := range s.Checks {
		fmt.Printf("%-20s %-10v %-10v %-50s\n", check.Name, check.Passing, check.Skipped, check.Error)
	}

	fmt.Printf("Overall ready: %v\n", s.Ready())
	if s.Blocking != "" {
		fmt.Printf("DNS blocking: %s\n", s.Blocking)
	}
}
