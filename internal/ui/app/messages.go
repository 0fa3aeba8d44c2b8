// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/unitconv/internal/config"
)

// =============================================================================
// MESSAGES
// =============================================================================

// configReloadMsg carries a reload from the config watcher.
type configReloadMsg config.Reload

// copiedMsg reports the outcome of a clipboard copy.
type copiedMsg struct {
	text string
	err  error
}

// =============================================================================
// COMMANDS
// =============================================================================

// waitForReload blocks on the watcher channel and returns the next reload.
// It returns nil once the channel is closed.
func waitForReload(events <-chan config.Reload) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-events
		if !ok {
			return nil
		}
		return configReloadMsg(r)
	}
}

// copyCmd writes text to the clipboard off the update loop.
func copyCmd(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{text: text, err: write(text)}
	}
}
