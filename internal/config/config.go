// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the runtime configuration of the daydiff commands.
//
// A Config starts out as Default, is then overlaid with an optional YAML
// file and finally with DAYDIFF_* environment variables.
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"cloudeng.io/errors"
	"gonih.org/daydiff"
	"gopkg.in/yaml.v3"
)

// Config is the configuration shared by the CLI, the HTTP server and the
// Lambda handler.
type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string `yaml:"addr"`
	// Format is used for dates whose request does not name a format.
	Format string `yaml:"format"`
	// IncludeFirst and IncludeLast are the default boundary semantics.
	IncludeFirst bool `yaml:"include_first"`
	IncludeLast  bool `yaml:"include_last"`

	LogLevel  string `yaml:"log_level"`  // debug, info, warn or error
	LogFormat string `yaml:"log_format"` // json or text

	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:            ":8080",
		Format:          daydiff.DefaultFormat,
		LogLevel:        "info",
		LogFormat:       "json",
		MaxBodyBytes:    1 << 16,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load returns Default, overlaid with the YAML file at path (if path is not
// empty) and then with the environment. It does not call Validate.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, err
		}
		defer f.Close()
		if err := cfg.decode(f); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// decode overlays the YAML document read from r. Unknown keys are an error.
func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Addr = getEnv("DAYDIFF_ADDR", c.Addr)
	c.Format = getEnv("DAYDIFF_FORMAT", c.Format)
	c.IncludeFirst = getEnvBool("DAYDIFF_INCLUDE_FIRST", c.IncludeFirst)
	c.IncludeLast = getEnvBool("DAYDIFF_INCLUDE_LAST", c.IncludeLast)
	c.LogLevel = getEnv("DAYDIFF_LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("DAYDIFF_LOG_FORMAT", c.LogFormat)
	c.MaxBodyBytes = int64(getEnvInt("DAYDIFF_MAX_BODY_BYTES", int(c.MaxBodyBytes)))
	c.ShutdownTimeout = getEnvDuration("DAYDIFF_SHUTDOWN_TIMEOUT", c.ShutdownTimeout)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// Bounds returns the default boundary semantics.
func (c Config) Bounds() daydiff.Bounds {
	var b daydiff.Bounds
	if c.IncludeFirst {
		b |= daydiff.IncludeFirst
	}
	if c.IncludeLast {
		b |= daydiff.IncludeLast
	}
	return b
}

// Validate reports every problem with c.
func (c Config) Validate() error {
	errs := &errors.M{}
	if strings.TrimSpace(c.Addr) == "" {
		errs.Append(fmt.Errorf("addr must not be empty"))
	}
	errs.Append(daydiff.ValidateFormat(c.Format))
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs.Append(fmt.Errorf("log_level must be one of debug, info, warn or error, not %q", c.LogLevel))
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		errs.Append(fmt.Errorf("log_format must be json or text, not %q", c.LogFormat))
	}
	if c.MaxBodyBytes < 1024 {
		errs.Append(fmt.Errorf("max_body_bytes must be at least 1024"))
	}
	if c.ShutdownTimeout <= 0 {
		errs.Append(fmt.Errorf("shutdown_timeout must be positive"))
	}
	return errs.Err()
}
