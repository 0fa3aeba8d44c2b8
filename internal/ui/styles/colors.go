// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for unitconv.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/unitconv/internal/session"
)

// =============================================================================
// PALETTES
// =============================================================================

// Palette is a named set of hex colours for one theme.
type Palette struct {
	Primary    string
	Secondary  string
	Text       string
	Accent     string
	Background string
	Card       string
	Success    string
	Info       string
	Warning    string
	Danger     string
}

// LightPalette is the light theme.
var LightPalette = Palette{
	Primary:    "#4361EE",
	Secondary:  "#F5F5F5",
	Text:       "#333333",
	Accent:     "#F72585",
	Background: "#FFFFFF",
	Card:       "#F9F9F9",
	Success:    "#4CAF50",
	Info:       "#3A86FF",
	Warning:    "#FFBE0B",
	Danger:     "#FF006E",
}

// DarkPalette is the dark theme.
var DarkPalette = Palette{
	Primary:    "#4CC9F0",
	Secondary:  "#1E1E1E",
	Text:       "#E1E1E1",
	Accent:     "#F72585",
	Background: "#121212",
	Card:       "#1F1F1F",
	Success:    "#4CAF50",
	Info:       "#3A86FF",
	Warning:    "#FFBE0B",
	Danger:     "#FF006E",
}

// PaletteFor returns the palette of a session theme.
func PaletteFor(t session.Theme) Palette {
	if t == session.ThemeDark {
		return DarkPalette
	}
	return LightPalette
}

// Muted is used for hints and secondary labels in both themes.
var Muted = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// =============================================================================
// ACCESSIBILITY: Shapes alongside colour
// =============================================================================

// StatusIndicatorSet contains text indicators for status states.
type StatusIndicatorSet struct {
	Success string
	Error   string
	Warning string
	Info    string
}

// StatusIndicators are ASCII-only so they survive any terminal.
var StatusIndicators = StatusIndicatorSet{
	Success: "[OK]",
	Error:   "[X]",
	Warning: "[!]",
	Info:    "[i]",
}

// RenderSuccess renders a success message with its indicator.
func RenderSuccess(message string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(LightPalette.Success)).
		Bold(true).
		Render(StatusIndicators.Success + " " + message)
}

// RenderError renders an error message with its indicator.
func RenderError(message string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(LightPalette.Danger)).
		Bold(true).
		Render(StatusIndicators.Error + " " + message)
}

// RenderWarning renders a warning message with its indicator.
func RenderWarning(message string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(LightPalette.Warning)).
		Bold(true).
		Render(StatusIndicators.Warning + " " + message)
}

// RenderInfo renders an info message with its indicator.
func RenderInfo(message string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(LightPalette.Info)).
		Bold(true).
		Render(StatusIndicators.Info + " " + message)
}
