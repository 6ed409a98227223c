// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package config loads the console configuration file (console.hjson).
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the console tools.
type Config struct {
	API     APIConfig     `json:"api"`
	Logging LoggingConfig `json:"logging"`
	Stub    StubConfig    `json:"stub"`
}

// APIConfig locates the dispute API and selects the acting persona.
type APIConfig struct {
	// BaseURL is the root URL of the marketplace API.
	BaseURL string `json:"base_url"`

	// Persona is "customer" or "provider".
	Persona string `json:"persona"`

	// Timeout is an optional transport timeout, e.g. "30s". Empty means no
	// timeout; mutation semantics do not depend on one.
	Timeout string `json:"timeout"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `json:"level"`  // "debug", "info", "warn", "error"
	Format string `json:"format"` // "json" or "text"
}

// StubConfig configures the local development API stub.
type StubConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// Validate checks the configuration for values the tools cannot work with.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.Persona != "customer" && c.API.Persona != "provider" {
		return fmt.Errorf("api.persona must be \"customer\" or \"provider\", got %q", c.API.Persona)
	}
	if c.API.Timeout != "" {
		if _, err := time.ParseDuration(c.API.Timeout); err != nil {
			return fmt.Errorf("api.timeout: %w", err)
		}
	}
	switch c.Logging.Format {
	case "", "json", "text":
	default:
		return fmt.Errorf("logging.format must be \"json\" or \"text\", got %q", c.Logging.Format)
	}
	return nil
}

// APITimeout returns the parsed transport timeout, or zero when unset.
func (c *Config) APITimeout() time.Duration {
	if c.API.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 0
	}
	return d
}
