// SPDX-License-Identifier: MIT

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Common attribute keys for consistent tracing across the application.
const (
	// Run attributes
	RunIDKey       = "epg.run_id"
	RunDaysKey     = "epg.days"
	RunChannelsKey = "epg.channels"

	// Pair attributes
	ChannelIDKey    = "epg.channel.id"
	ChannelAliasKey = "epg.channel.alias"
	DateKey         = "epg.date"

	// Result attributes
	ProgrammesKey = "epg.programmes"
	DroppedKey    = "epg.items_dropped"
	PairsOKKey    = "epg.pairs_ok"
	PairsFailKey  = "epg.pairs_failed"

	// Error attributes
	ErrorKey     = "error"
	ErrorTypeKey = "error.type"
)

// RunAttributes creates span attributes describing a guide run.
func RunAttributes(runID string, days, channels int) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 3)
	if runID != "" {
		attrs = append(attrs, attribute.String(RunIDKey, runID))
	}
	return append(attrs,
		attribute.Int(RunDaysKey, days),
		attribute.Int(RunChannelsKey, channels),
	)
}

// PairAttributes creates span attributes for one (channel, date) fetch.
func PairAttributes(channelID, alias, date string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 3)
	if channelID != "" {
		attrs = append(attrs, attribute.String(ChannelIDKey, channelID))
	}
	if alias != "" {
		attrs = append(attrs, attribute.String(ChannelAliasKey, alias))
	}
	if date != "" {
		attrs = append(attrs, attribute.String(DateKey, date))
	}
	return attrs
}

// ScheduleAttributes summarises what a run or pair contributed.
func ScheduleAttributes(programmes, dropped, pairsOK, pairsFailed int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(ProgrammesKey, programmes),
		attribute.Int(DroppedKey, dropped),
		attribute.Int(PairsOKKey, pairsOK),
		attribute.Int(PairsFailKey, pairsFailed),
	}
}

// ErrorAttributes creates error-related span attributes.
func ErrorAttributes(errorType string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorTypeKey, errorType),
	}
}
