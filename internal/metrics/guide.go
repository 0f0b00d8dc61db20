// SPDX-License-Identifier: MIT

// Package metrics provides Prometheus metrics for guide runs.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "epgrab_fetch_total",
		Help: "Upstream listing requests per (channel, date) pair, by outcome",
	}, []string{"outcome"}) // outcome=ok|network|http_status|unexpected_content_type|empty|decode|invalid_request

	fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "epgrab_fetch_duration_seconds",
		Help:    "Duration of upstream listing requests",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
	})

	programmesNormalized = promauto.NewCounter(prometheus.CounterOpts{
		Name: "epgrab_programmes_normalized_total",
		Help: "Total number of upstream items normalized into programmes",
	})

	itemsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "epgrab_items_dropped_total",
		Help: "Upstream items dropped during normalization, by reason",
	}, []string{"reason"}) // reason=bad_timestamp|missing_title|bad_item

	scheduleProgrammes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "epgrab_schedule_programmes",
		Help: "Number of programmes in the schedule of the last run",
	})

	xmltvWritten = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "epgrab_xmltv_written",
		Help: "Whether the last run produced an XMLTV document (1) or not (0)",
	})

	xmltvWriteErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "epgrab_xmltv_write_errors_total",
		Help: "Total number of XMLTV write failures",
	})

	lastRunTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "epgrab_last_run_timestamp_seconds",
		Help: "Unix time the last run finished",
	})

	lastRunDuration = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "epgrab_last_run_duration_seconds",
		Help: "Wall clock duration of the last run",
	})

	channelsWithData = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "epgrab_channels_with_data",
		Help: "Number of channels with at least one programme (last run)",
	})

	configValidationErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "epgrab_config_validation_errors_total",
		Help: "Total number of configuration load or validation failures",
	})
)

// RecordChannelsWithData sets the number of channels that received programmes.
func RecordChannelsWithData(n int) { channelsWithData.Set(float64(n)) }

// IncConfigValidationError counts one rejected configuration.
func IncConfigValidationError() { configValidationErrors.Inc() }

// RecordFetch counts one upstream request outcome and its duration.
func RecordFetch(outcome string, d time.Duration) {
	fetchTotal.WithLabelValues(outcome).Inc()
	fetchDuration.Observe(d.Seconds())
}

// RecordNormalized counts successfully normalized programmes.
func RecordNormalized(n int) {
	programmesNormalized.Add(float64(n))
}

// RecordDropped counts one dropped upstream item.
func RecordDropped(reason string) {
	itemsDropped.WithLabelValues(reason).Inc()
}

// RecordXMLTV records the outcome of the serialization step.
func RecordXMLTV(written bool, programmes int, err error) {
	if err != nil {
		xmltvWriteErrors.Inc()
	}
	scheduleProgrammes.Set(float64(programmes))
	if written {
		xmltvWritten.Set(1)
	} else {
		xmltvWritten.Set(0)
	}
}

// RecordRun stamps the end of a run.
func RecordRun(finished time.Time, d time.Duration) {
	lastRunTimestamp.Set(float64(finished.Unix()))
	lastRunDuration.Set(d.Seconds())
}

// WriteTextfile dumps the default registry in the Prometheus text format so
// a node_exporter textfile collector can pick up batch run results.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
