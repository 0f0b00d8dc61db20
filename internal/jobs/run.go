// SPDX-License-Identifier: MIT

package jobs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ManuGH/epgrab/internal/channels"
	"github.com/ManuGH/epgrab/internal/config"
	"github.com/ManuGH/epgrab/internal/epg"
	xglog "github.com/ManuGH/epgrab/internal/log"
	"github.com/ManuGH/epgrab/internal/metrics"
	"github.com/ManuGH/epgrab/internal/telemetry"
	"github.com/ManuGH/epgrab/internal/upstream"
	"github.com/ManuGH/epgrab/internal/window"
)

// clock is swapped in tests to pin "today".
var clock = time.Now

// Run performs one complete acquisition: registry, window, fetch, normalize,
// serialize. A run that produced no programme returns ErrNoData together
// with a Status whose Written field is false.
func Run(ctx context.Context, cfg config.AppConfig) (*Status, error) {
	reg, err := loadRegistry(cfg.Guide.ChannelsFile)
	if err != nil {
		return nil, err
	}

	client := upstream.New(cfg.Upstream.BaseURL, upstream.Options{
		Identity: cfg.Identity(),
		Timeout:  cfg.Upstream.Timeout,
		Delay:    cfg.Upstream.Delay,
	})
	return runWithFetcher(ctx, cfg, reg, client)
}

func loadRegistry(path string) (*channels.Registry, error) {
	if path == "" {
		return channels.Default(), nil
	}
	reg, err := channels.Load(path)
	if err != nil {
		return nil, fmt.Errorf("channel registry: %w", err)
	}
	return reg, nil
}

// runWithFetcher is separated for easier testing
func runWithFetcher(ctx context.Context, cfg config.AppConfig, reg *channels.Registry, fetcher Fetcher) (*Status, error) {
	zone, err := epg.ParseOffset(cfg.Guide.UTCOffset)
	if err != nil {
		return nil, fmt.Errorf("utc offset: %w", err)
	}

	started := clock()
	runID := uuid.NewString()
	ctx = xglog.ContextWithRunID(ctx, runID)
	logger := xglog.WithComponentFromContext(ctx, "jobs")

	chans := reg.All()
	today := window.Today(started, zone)

	ctx, span := telemetry.Tracer(tracerName).Start(ctx, "epg.run")
	span.SetAttributes(telemetry.RunAttributes(runID, cfg.Guide.Days, len(chans))...)
	defer span.End()

	logger.Info().
		Str(xglog.FieldEvent, "run.start").
		Str(xglog.FieldBaseURL, cfg.Upstream.BaseURL).
		Str(xglog.FieldDate, today.String()).
		Int("days", cfg.Guide.Days).
		Int(xglog.FieldChannels, len(chans)).
		Msg("starting guide run")

	schedule, stats := Aggregate(ctx, fetcher, chans, window.Dates(today, cfg.Guide.Days), AggregateOptions{Zone: zone})

	status := &Status{
		RunID:        runID,
		Channels:     len(chans),
		Programmes:   len(schedule),
		PairsOK:      stats.PairsOK,
		PairsFailed:  stats.PairsFailed,
		ItemsDropped: stats.ItemsDropped,
	}
	span.SetAttributes(telemetry.ScheduleAttributes(len(schedule), stats.ItemsDropped, stats.PairsOK, stats.PairsFailed)...)

	metrics.RecordChannelsWithData(channelsWithData(schedule))

	res, werr := write(ctx, cfg, chans, schedule)
	metrics.RecordXMLTV(res.Written, len(schedule), werr)
	status.Written = res.Written
	status.Path = res.Path
	status.Duration = clock().Sub(started)
	metrics.RecordRun(clock(), status.Duration)
	exportMetrics(ctx, cfg.MetricsTextfile)

	if werr != nil {
		telemetry.RecordError(span, werr, "write")
		logger.Error().
			Err(werr).
			Str(xglog.FieldEvent, "run.failed").
			Str(xglog.FieldPath, cfg.OutputPath).
			Msg("guide run failed")
		return status, werr
	}

	if !status.Written {
		telemetry.RecordError(span, ErrNoData, "no_data")
		logger.Warn().
			Str(xglog.FieldEvent, "run.no_data").
			Int("pairs_failed", stats.PairsFailed).
			Dur("duration", status.Duration).
			Msg("guide run produced no programmes")
		return status, ErrNoData
	}

	logger.Info().
		Str(xglog.FieldEvent, "run.done").
		Str(xglog.FieldPath, status.Path).
		Int(xglog.FieldChannels, status.Channels).
		Int(xglog.FieldProgrammes, status.Programmes).
		Int("pairs_ok", status.PairsOK).
		Int("pairs_failed", status.PairsFailed).
		Int("items_dropped", status.ItemsDropped).
		Dur("duration", status.Duration).
		Msg("guide run finished")
	return status, nil
}

func channelsWithData(schedule epg.Schedule) int {
	seen := make(map[string]struct{})
	for _, p := range schedule {
		seen[p.ChannelID] = struct{}{}
	}
	return len(seen)
}

func write(ctx context.Context, cfg config.AppConfig, chans []channels.Channel, schedule epg.Schedule) (epg.WriteResult, error) {
	if len(schedule) > 0 {
		if dir := filepath.Dir(cfg.OutputPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return epg.WriteResult{}, fmt.Errorf("create output dir: %w", err)
			}
		}
	}
	res, err := epg.Serialize(ctx, cfg.OutputPath, chans, schedule, epg.Options{Language: cfg.Guide.Language})
	if err != nil {
		return res, fmt.Errorf("write xmltv: %w", err)
	}
	return res, nil
}

func exportMetrics(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path); err != nil {
		l := xglog.WithComponentFromContext(ctx, "metrics")
		l.Warn().
			Err(err).
			Str(xglog.FieldEvent, "metrics.textfile_failed").
			Str(xglog.FieldPath, path).
			Msg("could not export metrics textfile")
	}
}
