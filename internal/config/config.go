// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"

	"github.com/jeranaias/unitconv/internal/convert"
	"github.com/jeranaias/unitconv/internal/format"
	"github.com/jeranaias/unitconv/internal/session"
	"github.com/jeranaias/unitconv/internal/util"
)

// CurrentVersion is written to new config files.
const CurrentVersion = "1.1.0"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete unitconv configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// History configuration
	History HistoryConfig `toml:"history" json:"history"`

	// Defaults for new sessions and commands
	Defaults DefaultsConfig `toml:"defaults" json:"defaults"`
}

// UIConfig contains display settings.
type UIConfig struct {
	// Theme is "light", "dark" or "auto" (follow the terminal background)
	Theme string `toml:"theme" json:"theme"`
	// DecimalPlaces is the number of significant digits shown (0-10)
	DecimalPlaces int `toml:"decimal_places" json:"decimal_places"`
	// Grouping inserts locale digit separators in results
	Grouping bool `toml:"grouping" json:"grouping"`
	// Locale is a BCP-47 tag used for digit grouping (empty = English)
	Locale string `toml:"locale" json:"locale"`
	// AltScreen runs the TUI in the terminal's alternate screen
	AltScreen bool `toml:"alt_screen" json:"alt_screen"`
	// ShowChart shows the comparison chart on conversion pages
	ShowChart bool `toml:"show_chart" json:"show_chart"`
	// WatchConfig reloads this file while the TUI runs
	WatchConfig bool `toml:"watch_config" json:"watch_config"`
}

// HistoryConfig contains history settings.
type HistoryConfig struct {
	// MaxEntries caps the in-memory history (1-1000)
	MaxEntries int `toml:"max_entries" json:"max_entries"`
}

// DefaultsConfig contains startup defaults.
type DefaultsConfig struct {
	// Category is the category shown first and used by "convert" without --category
	Category string `toml:"category" json:"category"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,

		UI: UIConfig{
			Theme:         "light",
			DecimalPlaces: format.DefaultDigits,
			Grouping:      false,
			Locale:        "",
			AltScreen:     true,
			ShowChart:     true,
			WatchConfig:   true,
		},

		History: HistoryConfig{
			MaxEntries: session.DefaultMaxHistory,
		},

		Defaults: DefaultsConfig{
			Category: convert.Length.String(),
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the unitconv configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".unitconv"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// ActivePath returns the config file Load would read: the TOML file if it
// exists, else the JSON file if it exists, else the TOML path.
func ActivePath() (string, error) {
	tomlPath, err := ConfigPathTOML()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath, nil
	}
	jsonPath, err := ConfigPathJSON()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath, nil
	}
	return tomlPath, nil
}

// HistoryFilePath returns the REPL input history file path.
func HistoryFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "repl_history"), nil
}

// StatePath returns the file that carries theme, favorites and decimal
// places between runs.
func StatePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last. A file that fails to parse is
// reported alongside the defaults.
func Load() (*Config, error) {
	var loadErr error

	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		cfg, err := LoadFromPath(path)
		if err != nil {
			loadErr = err
			break
		}
		return cfg, nil
	}

	cfg := Default()
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, loadErr
}

// LoadFromPath loads configuration from a specific file path with full
// validation. Missing keys keep their default values.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// finish applies env overrides, migration, defaults and validation.
func (c *Config) finish() error {
	c.ApplyEnvOverrides()
	if err := c.Migrate(); err != nil {
		return fmt.Errorf("config migration failed: %w", err)
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	for _, key := range md.Undecoded() {
		log.Printf("CONFIG_UNKNOWN_KEY | path=%s key=%s", path, key.String())
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file with a header comment.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# unitconv configuration file\n")
	buf.WriteString("# Generated by unitconv - edit with care\n")
	buf.WriteString("#\n")
	buf.WriteString("# ui.theme: light, dark or auto; ui.decimal_places: 0-10\n")
	buf.WriteString("\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveToPath saves in the format chosen by the file extension.
func SaveToPath(cfg *Config, path string) error {
	if strings.HasSuffix(path, ".json") {
		return SaveJSON(cfg, path)
	}
	return SaveTOML(cfg, path)
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// ==========================================================================
	// UI
	// ==========================================================================

	validThemes := map[string]bool{"light": true, "dark": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: light, dark, auto", c.UI.Theme),
		})
	}

	if c.UI.DecimalPlaces < format.MinDigits || c.UI.DecimalPlaces > format.MaxDigits {
		errs = append(errs, ValidationError{
			Field:   "ui.decimal_places",
			Message: fmt.Sprintf("must be %d-%d, got %d", format.MinDigits, format.MaxDigits, c.UI.DecimalPlaces),
		})
	}

	if c.UI.Locale != "" {
		if _, err := language.Parse(c.UI.Locale); err != nil {
			errs = append(errs, ValidationError{
				Field:   "ui.locale",
				Message: fmt.Sprintf("invalid language tag '%s'", c.UI.Locale),
			})
		}
	}

	// ==========================================================================
	// History
	// ==========================================================================

	if c.History.MaxEntries < 1 || c.History.MaxEntries > 1000 {
		errs = append(errs, ValidationError{
			Field:   "history.max_entries",
			Message: fmt.Sprintf("must be 1-1000, got %d", c.History.MaxEntries),
		})
	}

	// ==========================================================================
	// Defaults
	// ==========================================================================

	if _, err := convert.ParseCategory(c.Defaults.Category); err != nil {
		errs = append(errs, ValidationError{
			Field:   "defaults.category",
			Message: fmt.Sprintf("unknown category '%s'", c.Defaults.Category),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults sets default values for missing fields. Zero decimal places
// is a valid setting and is left alone.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.History.MaxEntries == 0 {
		c.History.MaxEntries = defaults.History.MaxEntries
	}
	if c.Defaults.Category == "" {
		c.Defaults.Category = defaults.Defaults.Category
	}
}

// Migrate normalises values written by older versions.
func (c *Config) Migrate() error {
	c.UI.Theme = strings.ToLower(strings.TrimSpace(c.UI.Theme))

	// Category aliases ("data size", "mass") become display names.
	if cat, err := convert.ParseCategory(c.Defaults.Category); err == nil {
		c.Defaults.Category = cat.String()
	}

	if c.Version != CurrentVersion && c.Version != "" {
		log.Printf("CONFIG_MIGRATE | from=%s to=%s", c.Version, CurrentVersion)
		c.Version = CurrentVersion
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - UNITCONV_THEME: overrides ui.theme
//   - UNITCONV_DECIMALS: overrides ui.decimal_places
//   - UNITCONV_CATEGORY: overrides defaults.category
//   - UNITCONV_LOCALE: overrides ui.locale and enables grouping
func (c *Config) ApplyEnvOverrides() {
	if theme := os.Getenv("UNITCONV_THEME"); theme != "" {
		c.UI.Theme = theme
	}

	if decimals := os.Getenv("UNITCONV_DECIMALS"); decimals != "" {
		if n, err := strconv.Atoi(decimals); err == nil {
			c.UI.DecimalPlaces = n
		} else {
			log.Printf("CONFIG_ENV_IGNORED | var=UNITCONV_DECIMALS value=%q error=%v", decimals, err)
		}
	}

	if category := os.Getenv("UNITCONV_CATEGORY"); category != "" {
		c.Defaults.Category = category
	}

	if locale := os.Getenv("UNITCONV_LOCALE"); locale != "" {
		c.UI.Locale = locale
		c.UI.Grouping = true
	}
}

// =============================================================================
// DERIVED VALUES
// =============================================================================

// DefaultCategory returns the configured start category (Length if unset).
func (c *Config) DefaultCategory() convert.Category {
	cat, err := convert.ParseCategory(c.Defaults.Category)
	if err != nil {
		return convert.Length
	}
	return cat
}

// ResolveTheme returns the session theme. "auto" asks detect.
func (c *Config) ResolveTheme(detect func() session.Theme) session.Theme {
	switch strings.ToLower(c.UI.Theme) {
	case "dark":
		return session.ThemeDark
	case "auto":
		if detect != nil {
			return detect()
		}
	}
	return session.ThemeLight
}

// SessionOptions returns session options derived from the config.
func (c *Config) SessionOptions(detect func() session.Theme) session.Options {
	opts := session.DefaultOptions()
	opts.MaxHistory = c.History.MaxEntries
	opts.Theme = c.ResolveTheme(detect)
	opts.DecimalPlaces = c.UI.DecimalPlaces
	return opts
}

// FormatResult renders v with the configured precision and grouping.
func (c *Config) FormatResult(v float64, digits int) string {
	if c.UI.Grouping {
		return format.Grouped(v, digits, c.UI.Locale)
	}
	return format.Result(v, digits)
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "ui.theme").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "ui.theme").
// String values are converted to the field's type.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

// lookup walks a dotted key to its struct field.
func (c *Config) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			boolVal, err := parseBool(strVal)
			if err != nil {
				return err
			}
			field.SetBool(boolVal)
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) && val.Kind() != reflect.String {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean value: %q", s)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"ui.theme",
		"ui.decimal_places",
		"ui.grouping",
		"ui.locale",
		"ui.alt_screen",
		"ui.show_chart",
		"ui.watch_config",
		"history.max_entries",
		"defaults.category",
	}
}

// Merge merges another config into this one, overwriting only non-zero
// values. Booleans are only ever switched on.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Version != "" {
		c.Version = other.Version
	}

	if other.UI.Theme != "" {
		c.UI.Theme = other.UI.Theme
	}
	if other.UI.DecimalPlaces != 0 {
		c.UI.DecimalPlaces = other.UI.DecimalPlaces
	}
	if other.UI.Grouping {
		c.UI.Grouping = true
	}
	if other.UI.Locale != "" {
		c.UI.Locale = other.UI.Locale
	}
	if other.UI.AltScreen {
		c.UI.AltScreen = true
	}
	if other.UI.ShowChart {
		c.UI.ShowChart = true
	}
	if other.UI.WatchConfig {
		c.UI.WatchConfig = true
	}

	if other.History.MaxEntries != 0 {
		c.History.MaxEntries = other.History.MaxEntries
	}

	if other.Defaults.Category != "" {
		c.Defaults.Category = other.Defaults.Category
	}
}

// Clone creates a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns the config as indented JSON for debugging.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		if cfg == nil {
			cfg = Default()
		}
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	SetGlobal(cfg)
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
