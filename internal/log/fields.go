// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldService = "service"
	FieldVersion = "version"
	FieldRunID   = "run_id"

	// Process / pipeline fields
	FieldEvent     = "event"
	FieldComponent = "component"

	// Guide fields
	FieldChannel     = "channel"
	FieldChannelName = "channel_name"
	FieldDate        = "date"
	FieldReason      = "reason"
	FieldStatus      = "status"
	FieldProgrammes  = "programmes"
	FieldChannels    = "channels"

	// Path / URL fields
	FieldPath    = "path"
	FieldBaseURL = "base_url"
)
