// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Loader handles configuration loading with precedence
type Loader struct {
	configPath      string
	version         string
	ConsumedEnvKeys map[string]struct{}
}

// NewLoader creates a new configuration loader
func NewLoader(configPath, version string) *Loader {
	return &Loader{
		configPath:      configPath,
		version:         version,
		ConsumedEnvKeys: make(map[string]struct{}),
	}
}

func (l *Loader) envString(key, defaultVal string) string {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseString(key, defaultVal)
}

func (l *Loader) envBool(key string, defaultVal bool) bool {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseBool(key, defaultVal)
}

func (l *Loader) envInt(key string, defaultVal int) int {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseInt(key, defaultVal)
}

func (l *Loader) envDuration(key string, defaultVal time.Duration) time.Duration {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseDuration(key, defaultVal)
}

func (l *Loader) envFloat(key string, defaultVal float64) float64 {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseFloat(key, defaultVal)
}

// Load loads configuration with precedence: ENV > File > Defaults.
// The file is parsed strictly before ENV is applied, then the result is validated.
func (l *Loader) Load() (AppConfig, error) {
	cfg := Defaults()

	if l.configPath != "" {
		fileCfg, err := l.loadFile(l.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
		mergeFileConfig(&cfg, fileCfg)
	}

	l.mergeEnvConfig(&cfg)
	cfg.Version = l.version

	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// loadFile loads configuration from a YAML file with STRICT parsing.
// Unknown fields will cause a fatal error to prevent misconfiguration.
func (l *Loader) loadFile(path string) (*FileConfig, error) {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var fileCfg FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&fileCfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &FileConfig{}, nil
		}
		return nil, fmt.Errorf("strict config parse error: %w", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config file contains multiple documents or trailing content")
	}

	return &fileCfg, nil
}

func mergeFileConfig(dst *AppConfig, src *FileConfig) {
	setString(&dst.Upstream.BaseURL, src.Upstream.BaseURL)
	setString(&dst.Upstream.UserAgent, src.Upstream.UserAgent)
	setString(&dst.Upstream.Referer, src.Upstream.Referer)
	setString(&dst.Upstream.Origin, src.Upstream.Origin)
	if src.Upstream.Timeout != nil {
		dst.Upstream.Timeout = *src.Upstream.Timeout
	}
	if src.Upstream.Delay != nil {
		dst.Upstream.Delay = *src.Upstream.Delay
	}

	if src.Guide.Days != nil {
		dst.Guide.Days = *src.Guide.Days
	}
	setString(&dst.Guide.UTCOffset, src.Guide.UTCOffset)
	setString(&dst.Guide.Language, src.Guide.Language)
	setString(&dst.Guide.ChannelsFile, src.Guide.ChannelsFile)

	setString(&dst.OutputPath, src.Output.Path)
	setString(&dst.LogLevel, src.Log.Level)
	setString(&dst.MetricsTextfile, src.Metrics.Textfile)

	if src.Tracing.Enabled != nil {
		dst.Tracing.Enabled = *src.Tracing.Enabled
	}
	setString(&dst.Tracing.Exporter, src.Tracing.Exporter)
	setString(&dst.Tracing.Endpoint, src.Tracing.Endpoint)
	if src.Tracing.SamplingRate != nil {
		dst.Tracing.SamplingRate = *src.Tracing.SamplingRate
	}
}

func (l *Loader) mergeEnvConfig(cfg *AppConfig) {
	cfg.Upstream.BaseURL = l.envString(EnvBaseURL, cfg.Upstream.BaseURL)
	cfg.Upstream.UserAgent = l.envString(EnvUserAgent, cfg.Upstream.UserAgent)
	cfg.Upstream.Referer = l.envString(EnvReferer, cfg.Upstream.Referer)
	cfg.Upstream.Origin = l.envString(EnvOrigin, cfg.Upstream.Origin)
	cfg.Upstream.Timeout = l.envDuration(EnvTimeout, cfg.Upstream.Timeout)
	cfg.Upstream.Delay = l.envDuration(EnvRequestDelay, cfg.Upstream.Delay)

	cfg.Guide.Days = l.envInt(EnvDays, cfg.Guide.Days)
	cfg.Guide.UTCOffset = l.envString(EnvUTCOffset, cfg.Guide.UTCOffset)
	cfg.Guide.Language = l.envString(EnvLanguage, cfg.Guide.Language)
	cfg.Guide.ChannelsFile = l.envString(EnvChannelsFile, cfg.Guide.ChannelsFile)

	cfg.OutputPath = l.envString(EnvOutput, cfg.OutputPath)
	cfg.LogLevel = l.envString(EnvLogLevel, cfg.LogLevel)
	cfg.MetricsTextfile = l.envString(EnvMetricsTextfile, cfg.MetricsTextfile)

	cfg.Tracing.Enabled = l.envBool(EnvTracingEnabled, cfg.Tracing.Enabled)
	cfg.Tracing.Exporter = l.envString(EnvTracingExporter, cfg.Tracing.Exporter)
	cfg.Tracing.Endpoint = l.envString(EnvTracingEndpoint, cfg.Tracing.Endpoint)
	cfg.Tracing.SamplingRate = l.envFloat(EnvTracingSampling, cfg.Tracing.SamplingRate)
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}
