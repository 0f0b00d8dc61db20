// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// SPDX-License-Identifier: MIT

// Command epgrab fetches the programme guide of the configured channels and
// writes it as an XMLTV file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ManuGH/epgrab/internal/config"
	"github.com/ManuGH/epgrab/internal/jobs"
	xglog "github.com/ManuGH/epgrab/internal/log"
	"github.com/ManuGH/epgrab/internal/metrics"
	"github.com/ManuGH/epgrab/internal/telemetry"
	"github.com/ManuGH/epgrab/internal/version"
)

// Exit codes.
const (
	exitOK     = 0
	exitNoData = 1
	exitError  = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("epgrab", flag.ContinueOnError)
	fs.SetOutput(stderr)
	showVersion := fs.Bool("version", false, "print version and exit")
	configPath := fs.String("config", "", "path to config file (YAML)")
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	if *showVersion {
		fmt.Fprintln(stdout, version.String())
		return exitOK
	}

	// Safe defaults until config is loaded
	xglog.Configure(xglog.Config{
		Level:   "info",
		Output:  stdout,
		Service: "epgrab",
		Version: version.Version,
	})
	logger := xglog.WithComponent("main")

	path := strings.TrimSpace(*configPath)
	cfg, err := config.NewLoader(path, version.Version).Load()
	if err != nil {
		metrics.IncConfigValidationError()
		logger.Error().
			Err(err).
			Str("event", "config.load_failed").
			Str("config_path", path).
			Msg("failed to load configuration")
		return exitError
	}

	xglog.Configure(xglog.Config{
		Level:   cfg.LogLevel,
		Output:  stdout,
		Service: "epgrab",
		Version: cfg.Version,
	})
	logger = xglog.WithComponent("main")

	if path != "" {
		logger.Info().
			Str("event", "config.loaded").
			Str("source", "file").
			Str("path", path).
			Msg("loaded configuration from file")
	} else {
		logger.Info().
			Str("event", "config.loaded").
			Str("source", "env+defaults").
			Msg("loaded configuration from environment and defaults")
	}

	tp, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Tracing.Enabled,
		ServiceName:    "epgrab",
		ServiceVersion: cfg.Version,
		ExporterType:   cfg.Tracing.Exporter,
		Endpoint:       cfg.Tracing.Endpoint,
		SamplingRate:   cfg.Tracing.SamplingRate,
	})
	if err != nil {
		logger.Error().
			Err(err).
			Str("event", "telemetry.init_failed").
			Msg("failed to initialize tracing")
		return exitError
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Warn().Err(err).Str("event", "telemetry.shutdown_failed").Msg("tracing shutdown failed")
		}
	}()

	status, err := jobs.Run(ctx, cfg)
	switch {
	case errors.Is(err, jobs.ErrNoData):
		return exitNoData
	case err != nil:
		logger.Error().
			Err(err).
			Str("event", "run.failed").
			Msg("guide run failed")
		return exitError
	}

	logger.Info().
		Str("event", "run.summary").
		Str("path", status.Path).
		Int("channels", status.Channels).
		Int("programmes", status.Programmes).
		Dur("duration", status.Duration).
		Msg("XMLTV written")
	return exitOK
}
