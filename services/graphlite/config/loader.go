// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load reads the config from ~/.graphlite/graphlite.yaml, creating the
// file with defaults on first run, then applies environment overrides.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("could not find the user's home directory: %w", err)
	}
	return LoadFrom(filepath.Join(home, ".graphlite", "graphlite.yaml"))
}

// LoadFrom reads the config from an explicit path.
func LoadFrom(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "First run detected, creating the config at %s\n", path)
		if err := createDefault(path); err != nil {
			return Config{}, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read the config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse the config file %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func createDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create the config directory: %w", err)
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// applyEnvOverrides layers GRAPHLITE_* variables over file values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GRAPHLITE_LANGUAGE"); v != "" {
		cfg.Language = v
	}
	if v := os.Getenv("GRAPHLITE_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("GRAPHLITE_DANGLING_EDGES"); v != "" {
		cfg.DanglingEdges = v
	}
	if v := os.Getenv("GRAPHLITE_FETCH_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.FetchTimeoutSeconds = n
		}
	}
	if v := os.Getenv("GRAPHLITE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("GRAPHLITE_LOG_DIR"); v != "" {
		cfg.Log.Dir = v
	}
}
