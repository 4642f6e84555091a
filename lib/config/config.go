// Copyright 2026 The Tubeview Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for tubeview.
//
// Configuration comes from a single YAML file specified by the
// --config flag or the TUBEVIEW_CONFIG environment variable. When
// neither is set, built-in defaults apply and tubeview works out of
// the box. There is no discovery chain beyond that: one file, no
// hidden overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full tubeview configuration.
type Config struct {
	// Player configures the external media player.
	Player PlayerConfig `yaml:"player"`

	// YouTube configures the search/metadata provider.
	YouTube YouTubeConfig `yaml:"youtube"`
}

// PlayerConfig configures the external media player invocation.
type PlayerConfig struct {
	// Binary is the player executable. Default: mpv (found in PATH).
	Binary string `yaml:"binary"`

	// Args are extra arguments appended to every player invocation,
	// before the playback URL.
	Args []string `yaml:"args"`
}

// YouTubeConfig configures the Innertube provider.
type YouTubeConfig struct {
	// Region is the gl request field (result localization).
	// Default: US.
	Region string `yaml:"region"`

	// Language is the hl request field. Default: en.
	Language string `yaml:"language"`

	// MaxPages bounds continuation-following when listing a channel's
	// videos. Default: 4 (roughly 120 entries).
	MaxPages int `yaml:"max_pages"`
}

// Default returns the built-in configuration. Unlike most of the
// fields' zero values these are directly usable; a config file only
// has to name what it changes.
func Default() *Config {
	return &Config{
		Player: PlayerConfig{
			Binary: "mpv",
		},
		YouTube: YouTubeConfig{
			Region:   "US",
			Language: "en",
			MaxPages: 4,
		},
	}
}

// Load resolves the configuration: an explicit path wins, then the
// TUBEVIEW_CONFIG environment variable, then built-in defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("TUBEVIEW_CONFIG")
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path, merged over
// the defaults. The file is the single source of truth; environment
// variables do not override its values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Player.Binary == "" {
		cfg.Player.Binary = "mpv"
	}
	if cfg.YouTube.MaxPages < 1 {
		cfg.YouTube.MaxPages = 1
	}
	return cfg, nil
}
