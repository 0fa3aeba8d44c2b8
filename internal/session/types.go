// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/unitconv/internal/convert"
)

// =============================================================================
// THEME
// =============================================================================

// Theme is the UI colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme parses "light" or "dark", case-insensitively.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", fmt.Errorf("invalid theme %q: must be light or dark", s)
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// =============================================================================
// REQUESTS AND ENTRIES
// =============================================================================

// Request is a single conversion request.
type Request struct {
	Category convert.Category
	Value    float64
	From     string
	To       string
}

// HistoryEntry is a completed conversion.
type HistoryEntry struct {
	ID        string           `json:"id"`
	Timestamp time.Time        `json:"timestamp"`
	Category  convert.Category `json:"category"`
	Value     float64          `json:"value"`
	FromUnit  string           `json:"from_unit"`
	ToUnit    string           `json:"to_unit"`
	Result    float64          `json:"result"`
}

// Favorite converts the entry into a favorite.
func (h HistoryEntry) Favorite() Favorite {
	return Favorite{
		Category: h.Category,
		Value:    h.Value,
		FromUnit: h.FromUnit,
		ToUnit:   h.ToUnit,
		Result:   h.Result,
	}
}

// Favorite is a saved conversion. Field names match the settings file.
type Favorite struct {
	Category convert.Category `json:"category"`
	Value    float64          `json:"value"`
	FromUnit string           `json:"from_unit"`
	ToUnit   string           `json:"to_unit"`
	Result   float64          `json:"result"`
}

// Request returns the conversion request that produced the favorite.
func (f Favorite) Request() Request {
	return Request{Category: f.Category, Value: f.Value, From: f.FromUnit, To: f.ToUnit}
}

// sameConversion reports whether f and o describe the same conversion.
// The stored result is not part of the identity.
func (f Favorite) sameConversion(o Favorite) bool {
	return f.Category == o.Category &&
		f.Value == o.Value &&
		f.FromUnit == o.FromUnit &&
		f.ToUnit == o.ToUnit
}
