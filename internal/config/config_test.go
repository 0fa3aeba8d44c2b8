// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jeranaias/unitconv/internal/convert"
	"github.com/jeranaias/unitconv/internal/session"
)

// isolateHome points the config directory at a temp dir and clears env overrides.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, v := range []string{"UNITCONV_THEME", "UNITCONV_DECIMALS", "UNITCONV_CATEGORY", "UNITCONV_LOCALE"} {
		t.Setenv(v, "")
	}
	return home
}

// TestConfig_ConcurrentAccess tests that Global() and SetGlobal()
// can be safely called concurrently without race conditions.
// Run with: go test -race -v ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	isolateHome(t)
	ResetGlobalForTesting()

	var wg sync.WaitGroup

	// 50 writers using SetGlobal, 50 readers using Global
	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			c := Default()
			c.UI.Theme = "dark"
			SetGlobal(c)
		}()

		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}

	wg.Wait()
}

// TestConfig_ConcurrentReload tests concurrent ReloadGlobal and Global calls.
func TestConfig_ConcurrentReload(t *testing.T) {
	isolateHome(t)
	ResetGlobalForTesting()
	_ = Global()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := ReloadGlobal(); err != nil {
				t.Errorf("ReloadGlobal() with no config file: %v", err)
			}
		}()
	}
	for i := 0; i < 80; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}

// TestConfig_GlobalInitialization tests that Global() properly initializes
// the config on first access.
func TestConfig_GlobalInitialization(t *testing.T) {
	isolateHome(t)
	ResetGlobalForTesting()

	cfg := Global()
	if cfg == nil {
		t.Fatal("Global() returned nil")
	}
	if cfg.Version == "" {
		t.Error("Config version should not be empty")
	}
	if cfg.Defaults.Category != "Length" {
		t.Errorf("default category = %q, want Length", cfg.Defaults.Category)
	}
}

// TestConfig_SetGlobalOverwrites tests that SetGlobal properly overwrites
// the existing global config.
func TestConfig_SetGlobalOverwrites(t *testing.T) {
	isolateHome(t)
	ResetGlobalForTesting()
	_ = Global()

	custom := Default()
	custom.Version = "custom-version"
	custom.UI.DecimalPlaces = 3
	SetGlobal(custom)

	result := Global()
	if result.Version != "custom-version" {
		t.Errorf("Expected version 'custom-version', got '%s'", result.Version)
	}
	if result.UI.DecimalPlaces != 3 {
		t.Errorf("Expected 3 decimal places, got %d", result.UI.DecimalPlaces)
	}
}

func TestConfig_Default(t *testing.T) {
	cfg := Default()

	if cfg.Version != CurrentVersion {
		t.Errorf("Version = %q, want %q", cfg.Version, CurrentVersion)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("UI.Theme = %q, want light", cfg.UI.Theme)
	}
	if cfg.UI.DecimalPlaces != 8 {
		t.Errorf("UI.DecimalPlaces = %d, want 8", cfg.UI.DecimalPlaces)
	}
	if cfg.History.MaxEntries != 50 {
		t.Errorf("History.MaxEntries = %d, want 50", cfg.History.MaxEntries)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"valid default", func(c *Config) {}, ""},
		{"auto theme", func(c *Config) { c.UI.Theme = "auto" }, ""},
		{"zero decimals", func(c *Config) { c.UI.DecimalPlaces = 0 }, ""},
		{"ten decimals", func(c *Config) { c.UI.DecimalPlaces = 10 }, ""},
		{"german locale", func(c *Config) { c.UI.Locale = "de-DE" }, ""},
		{"alias category", func(c *Config) { c.Defaults.Category = "data size" }, ""},
		{"bad theme", func(c *Config) { c.UI.Theme = "solarized" }, "ui.theme"},
		{"decimals too high", func(c *Config) { c.UI.DecimalPlaces = 11 }, "ui.decimal_places"},
		{"negative decimals", func(c *Config) { c.UI.DecimalPlaces = -1 }, "ui.decimal_places"},
		{"bad locale", func(c *Config) { c.UI.Locale = "not a tag!" }, "ui.locale"},
		{"zero history", func(c *Config) { c.History.MaxEntries = 0 }, "history.max_entries"},
		{"huge history", func(c *Config) { c.History.MaxEntries = 5000 }, "history.max_entries"},
		{"bad category", func(c *Config) { c.Defaults.Category = "Currency" }, "defaults.category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error on %s", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateCollectsAll(t *testing.T) {
	cfg := Default()
	cfg.UI.Theme = "neon"
	cfg.History.MaxEntries = -1

	errs, ok := cfg.Validate().(ValidateErrors)
	if !ok {
		t.Fatalf("Validate() should return ValidateErrors")
	}
	if len(errs) != 2 {
		t.Errorf("got %d errors, want 2: %v", len(errs), errs)
	}
}

func TestConfig_GetSet(t *testing.T) {
	cfg := Default()

	if err := cfg.Set("ui.theme", "dark"); err != nil {
		t.Fatalf("Set(ui.theme) error: %v", err)
	}
	if v, _ := cfg.Get("ui.theme"); v != "dark" {
		t.Errorf("Get(ui.theme) = %v, want dark", v)
	}

	if err := cfg.Set("ui.decimal_places", "4"); err != nil {
		t.Fatalf("Set(ui.decimal_places) error: %v", err)
	}
	if cfg.UI.DecimalPlaces != 4 {
		t.Errorf("UI.DecimalPlaces = %d, want 4", cfg.UI.DecimalPlaces)
	}

	if err := cfg.Set("ui.grouping", "yes"); err != nil {
		t.Fatalf("Set(ui.grouping) error: %v", err)
	}
	if !cfg.UI.Grouping {
		t.Error("UI.Grouping should be true")
	}

	if err := cfg.Set("history.max_entries", 25); err != nil {
		t.Fatalf("Set(history.max_entries, int) error: %v", err)
	}
	if cfg.History.MaxEntries != 25 {
		t.Errorf("History.MaxEntries = %d, want 25", cfg.History.MaxEntries)
	}

	for _, bad := range []string{"", "ui.nope", "nope", "ui.theme.deeper"} {
		if _, err := cfg.Get(bad); err == nil {
			t.Errorf("Get(%q) should fail", bad)
		}
	}
	if err := cfg.Set("ui.decimal_places", "many"); err == nil {
		t.Error("Set with non-numeric string should fail")
	}
	if err := cfg.Set("ui.grouping", "maybe"); err == nil {
		t.Error("Set with non-boolean string should fail")
	}
}

func TestConfig_GetAllKeysResolve(t *testing.T) {
	cfg := Default()
	for _, key := range GetAllKeys() {
		if _, err := cfg.Get(key); err != nil {
			t.Errorf("Get(%q) error: %v", key, err)
		}
	}
}

func TestConfig_Clone(t *testing.T) {
	original := Default()
	clone := original.Clone()

	clone.UI.Theme = "dark"
	clone.History.MaxEntries = 10

	if original.UI.Theme != "light" {
		t.Error("modifying clone changed the original theme")
	}
	if original.History.MaxEntries != 50 {
		t.Error("modifying clone changed the original history cap")
	}
}

func TestConfig_Merge(t *testing.T) {
	base := Default()
	base.UI.ShowChart = false

	other := &Config{
		UI:       UIConfig{Theme: "dark", ShowChart: true},
		Defaults: DefaultsConfig{Category: "Volume"},
	}
	base.Merge(other)

	if base.UI.Theme != "dark" {
		t.Errorf("UI.Theme = %q, want dark", base.UI.Theme)
	}
	if !base.UI.ShowChart {
		t.Error("UI.ShowChart should be switched on")
	}
	if base.Defaults.Category != "Volume" {
		t.Errorf("Defaults.Category = %q, want Volume", base.Defaults.Category)
	}
	if base.UI.DecimalPlaces != 8 {
		t.Error("zero values in other must not overwrite")
	}

	base.Merge(nil)
}

func TestConfig_Migrate(t *testing.T) {
	cfg := Default()
	cfg.Version = "1.0.0"
	cfg.UI.Theme = "  DARK "
	cfg.Defaults.Category = "mass"

	if err := cfg.Migrate(); err != nil {
		t.Fatal(err)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("theme = %q, want dark", cfg.UI.Theme)
	}
	if cfg.Defaults.Category != "Weight" {
		t.Errorf("category = %q, want Weight", cfg.Defaults.Category)
	}
	if cfg.Version != CurrentVersion {
		t.Errorf("version = %q, want %q", cfg.Version, CurrentVersion)
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	isolateHome(t)
	t.Setenv("UNITCONV_THEME", "dark")
	t.Setenv("UNITCONV_DECIMALS", "3")
	t.Setenv("UNITCONV_CATEGORY", "temp")
	t.Setenv("UNITCONV_LOCALE", "de")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.UI.Theme != "dark" || cfg.UI.DecimalPlaces != 3 {
		t.Errorf("env overrides not applied: %+v", cfg.UI)
	}
	if cfg.DefaultCategory() != convert.Temperature {
		t.Errorf("DefaultCategory() = %v, want Temperature", cfg.DefaultCategory())
	}
	if !cfg.UI.Grouping || cfg.UI.Locale != "de" {
		t.Error("UNITCONV_LOCALE should enable grouping")
	}
	if got := cfg.FormatResult(1234567.5, 8); got != "1.234.567,5" {
		t.Errorf("FormatResult() = %q, want 1.234.567,5", got)
	}

	t.Setenv("UNITCONV_DECIMALS", "lots")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.UI.DecimalPlaces != 8 {
		t.Errorf("unparsable UNITCONV_DECIMALS should be ignored, got %d", cfg.UI.DecimalPlaces)
	}
}

func TestConfig_SaveLoadTOML(t *testing.T) {
	home := isolateHome(t)

	cfg := Default()
	cfg.UI.Theme = "dark"
	cfg.UI.DecimalPlaces = 0
	cfg.Defaults.Category = "Speed"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	path := filepath.Join(home, ".unitconv", "config.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config.toml not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "# unitconv configuration file") {
		t.Error("TOML file should start with the header comment")
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.UI.Theme != "dark" {
		t.Errorf("theme = %q, want dark", loaded.UI.Theme)
	}
	if loaded.UI.DecimalPlaces != 0 {
		t.Errorf("zero decimal places should survive a round trip, got %d", loaded.UI.DecimalPlaces)
	}
	if loaded.DefaultCategory() != convert.Speed {
		t.Errorf("category = %v, want Speed", loaded.DefaultCategory())
	}

	active, err := ActivePath()
	if err != nil || active != path {
		t.Errorf("ActivePath() = %q, %v; want %q", active, err, path)
	}
}

func TestConfig_LoadJSONPartial(t *testing.T) {
	home := isolateHome(t)
	dir := filepath.Join(home, ".unitconv")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"ui": {"theme": "auto"}}`), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("theme = %q, want auto", cfg.UI.Theme)
	}
	if cfg.UI.DecimalPlaces != 8 || cfg.History.MaxEntries != 50 {
		t.Error("missing keys should keep their defaults")
	}
}

func TestConfig_LoadInvalidFallsBack(t *testing.T) {
	home := isolateHome(t)
	dir := filepath.Join(home, ".unitconv")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[ui]\ndecimal_places = 42\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err == nil {
		t.Fatal("Load() should report the invalid file")
	}
	if cfg == nil || cfg.UI.DecimalPlaces != 8 {
		t.Error("Load() should still return defaults")
	}
}

func TestConfig_ResolveTheme(t *testing.T) {
	cfg := Default()
	dark := func() session.Theme { return session.ThemeDark }

	if got := cfg.ResolveTheme(dark); got != session.ThemeLight {
		t.Errorf("light config resolved to %q", got)
	}
	cfg.UI.Theme = "auto"
	if got := cfg.ResolveTheme(dark); got != session.ThemeDark {
		t.Errorf("auto config resolved to %q, want dark", got)
	}
	if got := cfg.ResolveTheme(nil); got != session.ThemeLight {
		t.Errorf("auto without detector resolved to %q, want light", got)
	}

	cfg.UI.Theme = "dark"
	cfg.History.MaxEntries = 5
	cfg.UI.DecimalPlaces = 2
	opts := cfg.SessionOptions(nil)
	if opts.Theme != session.ThemeDark || opts.MaxHistory != 5 || opts.DecimalPlaces != 2 {
		t.Errorf("SessionOptions() = %+v", opts)
	}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UNITCONV_THEME", "")
	t.Setenv("UNITCONV_DECIMALS", "")
	t.Setenv("UNITCONV_CATEGORY", "")
	t.Setenv("UNITCONV_LOCALE", "")

	w, err := NewWatcher(dir, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher() error: %v", err)
	}
	defer w.Close()
	if err := w.Watch(); err != nil {
		t.Fatalf("Watch() error: %v", err)
	}

	// Ignored file
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	cfg.UI.Theme = "dark"
	if err := SaveTOML(cfg, filepath.Join(dir, "config.toml")); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-w.Events():
		if ev.Err != nil {
			t.Fatalf("reload error: %v", ev.Err)
		}
		if filepath.Base(ev.Path) != "config.toml" {
			t.Errorf("reload path = %q", ev.Path)
		}
		if ev.Config.UI.Theme != "dark" {
			t.Errorf("reloaded theme = %q, want dark", ev.Config.UI.Theme)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload event")
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
	// Drains buffered events and returns only once the channel is closed.
	for range w.Events() {
	}
}
