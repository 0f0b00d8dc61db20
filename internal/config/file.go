// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import "time"

// FileConfig is the YAML shape of the configuration file. Pointer fields
// distinguish "unset" from an explicit zero.
type FileConfig struct {
	Upstream UpstreamFileConfig `yaml:"upstream"`
	Guide    GuideFileConfig    `yaml:"guide"`
	Output   OutputFileConfig   `yaml:"output"`
	Log      LogFileConfig      `yaml:"log"`
	Metrics  MetricsFileConfig  `yaml:"metrics"`
	Tracing  TracingFileConfig  `yaml:"tracing"`
}

type UpstreamFileConfig struct {
	BaseURL   string         `yaml:"baseURL,omitempty"`
	UserAgent string         `yaml:"userAgent,omitempty"`
	Referer   string         `yaml:"referer,omitempty"`
	Origin    string         `yaml:"origin,omitempty"`
	Timeout   *time.Duration `yaml:"timeout,omitempty"`
	Delay     *time.Duration `yaml:"delay,omitempty"`
}

type GuideFileConfig struct {
	Days         *int   `yaml:"days,omitempty"`
	UTCOffset    string `yaml:"utcOffset,omitempty"`
	Language     string `yaml:"language,omitempty"`
	ChannelsFile string `yaml:"channelsFile,omitempty"`
}

type OutputFileConfig struct {
	Path string `yaml:"path,omitempty"`
}

type LogFileConfig struct {
	Level string `yaml:"level,omitempty"`
}

type MetricsFileConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

type TracingFileConfig struct {
	Enabled      *bool    `yaml:"enabled,omitempty"`
	Exporter     string   `yaml:"exporter,omitempty"`
	Endpoint     string   `yaml:"endpoint,omitempty"`
	SamplingRate *float64 `yaml:"samplingRate,omitempty"`
}
