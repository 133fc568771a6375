// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads the tool's YAML configuration from
// ~/.graphlite/graphlite.yaml, creating it with defaults on first run.
// GRAPHLITE_* environment variables override file values, and flags
// override both.
package config

import (
	"github.com/go-playground/validator/v10"
)

// Config holds every user-tunable setting.
type Config struct {
	// Language is the default query language for new sessions.
	Language string `yaml:"language" validate:"oneof=cypher dotmotif"`

	// Output is the non-interactive output format.
	Output string `yaml:"output" validate:"oneof=csv json jsonl"`

	// DanglingEdges controls the opencypher composite loader when an
	// edge references an undeclared vertex: create it or fail the load.
	DanglingEdges string `yaml:"dangling_edges" validate:"oneof=create error"`

	// FetchTimeoutSeconds bounds a remote graph download.
	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds" validate:"gte=1,lte=600"`

	// Log configures the structured logger.
	Log LogConfig `yaml:"log"`
}

// LogConfig mirrors pkg/logging.Config's user-facing knobs.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	Dir   string `yaml:"dir"`
	JSON  bool   `yaml:"json"`
}

// Default returns the configuration written on first run.
func Default() Config {
	return Config{
		Language:            "cypher",
		Output:              "json",
		DanglingEdges:       "create",
		FetchTimeoutSeconds: 30,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks field constraints.
func (c Config) Validate() error {
	return validator.New().Struct(c)
}
