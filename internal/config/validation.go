// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ManuGH/epgrab/internal/epg"
	"github.com/ManuGH/epgrab/internal/validate"
	"golang.org/x/text/language"
)

const (
	maxTimeout = 5 * time.Minute
	maxDelay   = time.Minute
	maxDays    = 14
)

// Validate validates an AppConfig using the centralized validation package
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.URL("upstream.baseURL", cfg.Upstream.BaseURL, []string{"http", "https"})
	v.NotEmpty("upstream.userAgent", cfg.Upstream.UserAgent)
	if cfg.Upstream.Referer != "" {
		v.URL("upstream.referer", cfg.Upstream.Referer, []string{"http", "https"})
	}
	if cfg.Upstream.Origin != "" {
		v.URL("upstream.origin", cfg.Upstream.Origin, []string{"http", "https"})
	}
	v.DurationRange("upstream.timeout", cfg.Upstream.Timeout, 0, maxTimeout)
	v.DurationRange("upstream.delay", cfg.Upstream.Delay, 0, maxDelay)

	v.Range("guide.days", cfg.Guide.Days, 1, maxDays)
	v.Custom("guide.utcOffset", cfg.Guide.UTCOffset, func(value interface{}) error {
		_, err := epg.ParseOffset(value.(string))
		return err
	})
	v.Custom("guide.language", cfg.Guide.Language, func(value interface{}) error {
		return validateLanguage(value.(string))
	})

	v.NotEmpty("output.path", cfg.OutputPath)

	if _, err := validate.ParseLogLevel(strings.ToLower(cfg.LogLevel)); err != nil {
		v.AddError("log.level", err.Error(), cfg.LogLevel)
	}

	if cfg.Tracing.Enabled {
		v.OneOf("tracing.exporter", cfg.Tracing.Exporter, []string{"grpc", "http"})
		v.NotEmpty("tracing.endpoint", cfg.Tracing.Endpoint)
		v.FloatRange("tracing.samplingRate", cfg.Tracing.SamplingRate, 0, 1)
	}

	return v.Err()
}

func validateLanguage(tag string) error {
	if strings.TrimSpace(tag) == "" {
		return fmt.Errorf("language tag cannot be empty")
	}
	if _, err := language.Parse(tag); err != nil {
		return fmt.Errorf("invalid language tag %q: %w", tag, err)
	}
	return nil
}
