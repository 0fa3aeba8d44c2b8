// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for unitconv.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, validation and live reload.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - UIConfig: Theme, precision, digit grouping and TUI options
//   - HistoryConfig: History length cap
//   - Watcher: fsnotify watcher that reloads the config file on change
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (UNITCONV_*)
//   - ~/.unitconv/config.toml
//   - ~/.unitconv/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Printf("CONFIG_LOAD_FAILED | error=%v", err)
//	}
//
// Start a session from it:
//
//	st := session.New(cfg.SessionOptions(styles.DetectMode))
package config
