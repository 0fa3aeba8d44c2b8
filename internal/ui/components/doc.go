// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the reusable pieces of the unitconv TUI.

Each component is a small value with a View method, styled from a
styles.Theme. Interactive components also have an Update method in the
Bubble Tea style.

# Charts

BarChart (barchart.go) - Horizontal bars for the input and result of a
conversion, switching to a log scale when the values differ by more than
a factor of 1000. Gauge draws a single bar for temperatures.

Distribution (distribution.go) - One bar per category with its share of
the conversion history.

# Feedback

Toast and ToastManager (toast.go) - Non-blocking notifications that
auto-dismiss. Errors stay on screen longer than status messages.

# Navigation

NavPalette (palette.go) - Ctrl+P overlay that fuzzy-filters pages and
categories and reports the chosen item with a PaletteSelectMsg.
*/
package components
