// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - Terminal detection for the unitconv CLI.
//
// Colours, glamour rendering and syntax highlighting are only used when
// stdout is a terminal, so piped output such as `unitconv convert 1 km m |`
// stays plain.
package cli

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Width limits for wrapped output such as `unitconv explain`.
const (
	DefaultTerminalWidth = 80
	MinTerminalWidth     = 40
)

// IsTTY reports whether stdin is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY reports whether output goes to a terminal. A redirected
// stdout writer (tests, --json capture) never counts.
func IsStdoutTTY() bool {
	return stdout == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
}

// GetTerminalWidth returns the stdout width, clamped to MinTerminalWidth,
// or DefaultTerminalWidth when it cannot be read.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	return max(width, MinTerminalWidth)
}

var (
	colorMu       sync.Mutex
	colorDecided  bool
	colorsEnabled bool
)

// ColorsEnabled reports whether output is coloured. NO_COLOR wins over
// FORCE_COLOR, which wins over TTY detection. --no-color calls
// ForceColorsEnabled(false) before any command runs.
func ColorsEnabled() bool {
	colorMu.Lock()
	defer colorMu.Unlock()
	if !colorDecided {
		switch {
		case os.Getenv("NO_COLOR") != "":
			colorsEnabled = false
		case os.Getenv("FORCE_COLOR") != "":
			colorsEnabled = true
		default:
			colorsEnabled = IsStdoutTTY()
		}
		colorDecided = true
	}
	return colorsEnabled
}

// ForceColorsEnabled overrides detection and updates the lipgloss profile
// used by the CLI styles.
func ForceColorsEnabled(enabled bool) {
	colorMu.Lock()
	colorsEnabled, colorDecided = enabled, true
	colorMu.Unlock()
	lipgloss.SetColorProfile(GetColorProfile())
}

// GetColorProfile returns termenv.Ascii when colours are off.
func GetColorProfile() termenv.Profile {
	if !ColorsEnabled() {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

// TTYRequiredError is returned by commands that need an interactive stdin.
type TTYRequiredError struct {
	Operation string
}

func (e *TTYRequiredError) Error() string {
	return "stdin is not a terminal; cannot " + e.Operation + " interactively (pipe statements to `unitconv history export` instead)"
}

// RequiresTTY fails with a TTYRequiredError when stdin is not a terminal.
func RequiresTTY(operation string) error {
	if !IsTTY() {
		return &TTYRequiredError{Operation: operation}
	}
	return nil
}
