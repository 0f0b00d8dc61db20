// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"testing"
	"time"

	"github.com/ManuGH/epgrab/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Defaults(t *testing.T) {
	require.NoError(t, Validate(Defaults()))
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppConfig)
		field  string
	}{
		{"base url scheme", func(c *AppConfig) { c.Upstream.BaseURL = "ftp://tv.example.mo" }, "upstream.baseURL"},
		{"base url empty", func(c *AppConfig) { c.Upstream.BaseURL = "" }, "upstream.baseURL"},
		{"user agent", func(c *AppConfig) { c.Upstream.UserAgent = " " }, "upstream.userAgent"},
		{"negative timeout", func(c *AppConfig) { c.Upstream.Timeout = -time.Second }, "upstream.timeout"},
		{"huge timeout", func(c *AppConfig) { c.Upstream.Timeout = time.Hour }, "upstream.timeout"},
		{"negative delay", func(c *AppConfig) { c.Upstream.Delay = -time.Millisecond }, "upstream.delay"},
		{"zero days", func(c *AppConfig) { c.Guide.Days = 0 }, "guide.days"},
		{"too many days", func(c *AppConfig) { c.Guide.Days = 15 }, "guide.days"},
		{"offset", func(c *AppConfig) { c.Guide.UTCOffset = "+2500" }, "guide.utcOffset"},
		{"language", func(c *AppConfig) { c.Guide.Language = "not a tag" }, "guide.language"},
		{"output", func(c *AppConfig) { c.OutputPath = "" }, "output.path"},
		{"log level", func(c *AppConfig) { c.LogLevel = "loud" }, "log.level"},
		{"exporter", func(c *AppConfig) {
			c.Tracing.Enabled = true
			c.Tracing.Exporter = "zipkin"
		}, "tracing.exporter"},
		{"sampling", func(c *AppConfig) {
			c.Tracing.Enabled = true
			c.Tracing.SamplingRate = 2
		}, "tracing.samplingRate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)

			err := Validate(cfg)
			require.Error(t, err)

			var ve validate.ValidationError
			require.True(t, errors.As(err, &ve))
			fields := make([]string, 0, len(ve.Errors()))
			for _, e := range ve.Errors() {
				fields = append(fields, e.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidate_AccumulatesErrors(t *testing.T) {
	cfg := Defaults()
	cfg.Guide.Days = 0
	cfg.OutputPath = ""

	var ve validate.ValidationError
	require.True(t, errors.As(Validate(cfg), &ve))
	assert.Len(t, ve.Errors(), 2)
}

func TestValidate_TracingIgnoredWhenDisabled(t *testing.T) {
	cfg := Defaults()
	cfg.Tracing.Exporter = "zipkin"
	assert.NoError(t, Validate(cfg))
}
