// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package config provides configuration management for epgrab.
package config

import (
	"strings"
	"time"

	"github.com/ManuGH/epgrab/internal/epg"
	"github.com/ManuGH/epgrab/internal/upstream"
	"github.com/ManuGH/epgrab/internal/window"
)

// Defaults for values that have no natural zero.
const (
	DefaultBaseURL      = "https://tv.example.mo"
	DefaultUserAgent    = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1"
	DefaultOutputPath   = "epg.xml"
	DefaultLogLevel     = "info"
	DefaultExporter     = "grpc"
	DefaultEndpoint     = "localhost:4317"
	DefaultSamplingRate = 1.0
)

// UpstreamConfig describes how the guide API is reached.
type UpstreamConfig struct {
	BaseURL   string
	UserAgent string
	Referer   string
	Origin    string
	Timeout   time.Duration
	Delay     time.Duration
}

// GuideConfig controls which listings are collected and how they are labelled.
type GuideConfig struct {
	Days         int
	UTCOffset    string
	Language     string
	ChannelsFile string
}

// TracingConfig mirrors telemetry.Config for the file/env surface.
type TracingConfig struct {
	Enabled      bool
	Exporter     string
	Endpoint     string
	SamplingRate float64
}

// AppConfig is the fully resolved runtime configuration.
type AppConfig struct {
	Version         string
	Upstream        UpstreamConfig
	Guide           GuideConfig
	OutputPath      string
	LogLevel        string
	MetricsTextfile string
	Tracing         TracingConfig
}

// Defaults returns the configuration used when neither file nor ENV set a value.
func Defaults() AppConfig {
	cfg := AppConfig{
		Upstream: UpstreamConfig{
			BaseURL:   DefaultBaseURL,
			UserAgent: DefaultUserAgent,
			Timeout:   upstream.DefaultTimeout,
			Delay:     upstream.DefaultDelay,
		},
		Guide: GuideConfig{
			Days:      window.DefaultDays,
			UTCOffset: epg.DefaultUTCOffset,
			Language:  epg.DefaultLanguage,
		},
		OutputPath: DefaultOutputPath,
		LogLevel:   DefaultLogLevel,
		Tracing: TracingConfig{
			Exporter:     DefaultExporter,
			Endpoint:     DefaultEndpoint,
			SamplingRate: DefaultSamplingRate,
		},
	}
	return cfg
}

// Identity returns the request identity headers for the upstream client.
// Referer and Origin fall back to values derived from the base URL.
func (c AppConfig) Identity() upstream.Identity {
	base := strings.TrimRight(c.Upstream.BaseURL, "/")
	id := upstream.Identity{
		UserAgent: c.Upstream.UserAgent,
		Referer:   c.Upstream.Referer,
		Origin:    c.Upstream.Origin,
	}
	if id.Referer == "" {
		id.Referer = base + "/"
	}
	if id.Origin == "" {
		id.Origin = base
	}
	return id
}
