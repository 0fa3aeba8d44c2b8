// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for unitconv.

# Palettes (colors.go)

Two fixed palettes, light and dark, each with ten named colours:

	Primary, Secondary, Text, Accent, Background,
	Card, Success, Info, Warning, Danger

PaletteFor maps a session theme to its palette. Status helpers
(RenderSuccess, RenderError, ...) prefix an ASCII indicator so state is
readable without colour.

# Theme (theme.go)

NewTheme builds every lipgloss style used by the TUI from a palette.
DetectMode reads the terminal background through termenv for the "auto"
config setting.

# Bars (bars.go)

RenderBar draws fractional horizontal bars for the comparison and history
charts.
*/
package styles
