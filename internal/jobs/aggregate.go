// SPDX-License-Identifier: MIT

// Package jobs runs the guide pipeline: fetch every (channel, date) pair,
// normalize what comes back and hand the schedule to the serializer.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ManuGH/epgrab/internal/channels"
	"github.com/ManuGH/epgrab/internal/epg"
	xglog "github.com/ManuGH/epgrab/internal/log"
	"github.com/ManuGH/epgrab/internal/metrics"
	"github.com/ManuGH/epgrab/internal/telemetry"
	"github.com/ManuGH/epgrab/internal/upstream"
	"github.com/ManuGH/epgrab/internal/window"
)

const tracerName = "github.com/ManuGH/epgrab/internal/jobs"

// reasonUnknown labels pair failures that did not come from the fetcher's
// typed errors.
const reasonUnknown upstream.Reason = "unknown"

func failureReason(err error) upstream.Reason {
	if r := upstream.ReasonOf(err); r != "" {
		return r
	}
	return reasonUnknown
}

// Aggregate sweeps dates (outer) by channels (inner) in registry order and
// concatenates every normalized programme. Pair and item failures are logged
// and absorbed; the returned schedule may be empty.
func Aggregate(ctx context.Context, fetcher Fetcher, chans []channels.Channel, dates iter.Seq[window.Date], opts AggregateOptions) (epg.Schedule, Stats) {
	logger := xglog.WithComponentFromContext(ctx, "aggregate")
	stats := Stats{Failures: make(map[upstream.Reason]int)}
	var schedule epg.Schedule

	for day := range dates {
		for _, ch := range chans {
			if err := ctx.Err(); err != nil {
				stats.Canceled = true
				logger.Warn().
					Err(err).
					Str(xglog.FieldEvent, "aggregate.canceled").
					Str(xglog.FieldDate, day.String()).
					Int(xglog.FieldProgrammes, len(schedule)).
					Msg("sweep stopped before completion")
				return schedule, stats
			}

			out := fetchPair(ctx, fetcher, ch, day, opts)
			schedule = apply(ctx, schedule, out, &stats)
		}
	}

	logger.Info().
		Str(xglog.FieldEvent, "aggregate.done").
		Int("pairs_ok", stats.PairsOK).
		Int("pairs_failed", stats.PairsFailed).
		Int("items_dropped", stats.ItemsDropped).
		Int(xglog.FieldProgrammes, stats.Programmes).
		Msg("aggregation finished")
	return schedule, stats
}

// apply folds one pair outcome into the schedule and the stats.
func apply(ctx context.Context, schedule epg.Schedule, out PairOutcome, stats *Stats) epg.Schedule {
	logger := xglog.WithComponentFromContext(ctx, "aggregate")
	date := out.Date.String()

	if !out.OK() {
		stats.PairsFailed++
		reason := failureReason(out.Err)
		stats.Failures[reason]++
		logger.Warn().
			Err(out.Err).
			Str(xglog.FieldEvent, "fetch.failed").
			Str(xglog.FieldChannel, out.Channel.ID).
			Str(xglog.FieldChannelName, out.Channel.Name).
			Str(xglog.FieldDate, date).
			Str(xglog.FieldReason, string(reason)).
			Msg("skipping channel/date pair")
		return schedule
	}

	stats.PairsOK++
	for _, nerr := range out.Dropped {
		stats.ItemsDropped++
		metrics.RecordDropped(string(nerr.Reason))
		logger.Warn().
			Err(nerr).
			Str(xglog.FieldEvent, "item.dropped").
			Str(xglog.FieldChannel, out.Channel.ID).
			Str(xglog.FieldDate, date).
			Str(xglog.FieldReason, string(nerr.Reason)).
			Msg("skipping programme")
	}
	for _, rec := range out.Programmes {
		if rec.Suspect {
			stats.Suspect++
			logger.Warn().
				Str(xglog.FieldEvent, "item.suspect").
				Str(xglog.FieldChannel, rec.ChannelID).
				Str("start", rec.Start).
				Str("stop", rec.Stop).
				Msg("programme stop is not after start")
		}
	}
	stats.Programmes += len(out.Programmes)
	metrics.RecordNormalized(len(out.Programmes))

	logger.Debug().
		Str(xglog.FieldEvent, "fetch.ok").
		Str(xglog.FieldChannel, out.Channel.ID).
		Str(xglog.FieldDate, date).
		Int(xglog.FieldProgrammes, len(out.Programmes)).
		Msg("pair collected")
	return append(schedule, out.Programmes...)
}

// fetchPair fetches and normalizes one pair. It never panics; a panic in
// the fetcher surfaces as the outcome's error.
func fetchPair(ctx context.Context, fetcher Fetcher, ch channels.Channel, day window.Date, opts AggregateOptions) (out PairOutcome) {
	out = PairOutcome{Channel: ch, Date: day}

	ctx, span := telemetry.Tracer(tracerName).Start(ctx, "epg.fetch_pair")
	span.SetAttributes(telemetry.PairAttributes(ch.ID, ch.Alias, day.String())...)
	defer func() {
		if r := recover(); r != nil {
			out.Programmes = nil
			out.Dropped = nil
			out.Err = fmt.Errorf("fetch %s@%s: panic: %v", ch.ID, day, r)
		}
		if out.Err != nil {
			telemetry.RecordError(span, out.Err, string(failureReason(out.Err)))
		} else {
			span.SetAttributes(
				attribute.Int(telemetry.ProgrammesKey, len(out.Programmes)),
				attribute.Int(telemetry.DroppedKey, len(out.Dropped)),
			)
		}
		span.End()
	}()

	listing, err := fetcher.Fetch(ctx, ch, day)
	if err != nil {
		out.Err = err
		return out
	}
	if listing == nil {
		out.Err = &upstream.FetchError{Reason: upstream.ReasonEmpty, Channel: ch.ID, Date: day.String()}
		return out
	}

	for _, rej := range listing.Rejected {
		out.Dropped = append(out.Dropped, epg.RejectItem(rej))
	}
	for _, item := range listing.Items {
		rec, err := epg.NormalizeItem(item, ch.ID, opts.Zone)
		if err != nil {
			var nerr *epg.NormalizeError
			if !errors.As(err, &nerr) {
				nerr = &epg.NormalizeError{Reason: epg.ReasonBadTimestamp, Err: err}
			}
			out.Dropped = append(out.Dropped, nerr)
			continue
		}
		out.Programmes = append(out.Programmes, rec)
	}
	return out
}
