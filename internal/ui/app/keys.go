// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the keyboard bindings of the TUI.
type KeyMap struct {
	// Global
	Palette     key.Binding
	ToggleTheme key.Binding
	Help        key.Binding
	Quit        key.Binding
	Dismiss     key.Binding
	Sidebar     key.Binding

	// Focus and movement
	NextField key.Binding
	PrevField key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Enter     key.Binding

	// Conversion page
	Swap     key.Binding
	Favorite key.Binding
	Copy     key.Binding
	Explain  key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Lists
	Remove   key.Binding
	ClearAll key.Binding
	Star     key.Binding
}

// DefaultKeyMap returns the default key bindings. Bindings that work while
// a text field has focus use ctrl chords.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Palette: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("C-p", "go to"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("C-q", "quit"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("C-x", "dismiss"),
		),
		Sidebar: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "sidebar"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "prev field"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "convert"),
		),
		Swap: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "swap"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("C-f", "favorite"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "copy"),
		),
		Explain: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("C-e", "formula"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll down"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "remove"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear all"),
		),
		Star: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite"),
		),
	}
}

// =============================================================================
// HELP VIEWS
// =============================================================================

// contextKeys adapts the key map to the help model for one page, so the
// footer only lists bindings that do something there.
type contextKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func (c contextKeys) ShortHelp() []key.Binding  { return c.short }
func (c contextKeys) FullHelp() [][]key.Binding { return c.full }

// helpFor returns the bindings shown in the footer for the current view.
func (k KeyMap) helpFor(p page, f focus) contextKeys {
	global := []key.Binding{k.Palette, k.ToggleTheme, k.Help, k.Quit}

	if f == focusSidebar {
		open := k.Enter
		open.SetHelp("Enter", "open")
		nav := []key.Binding{k.Up, k.Down, open}
		return contextKeys{
			short: append(nav, k.Palette, k.Quit),
			full:  [][]key.Binding{nav, global},
		}
	}

	use := k.Enter
	use.SetHelp("Enter", "use")
	apply := k.Enter
	apply.SetHelp("Enter", "apply")

	var pageKeys []key.Binding
	switch p {
	case pageConvert:
		pageKeys = []key.Binding{k.Enter, k.NextField, k.Swap, k.Favorite, k.Copy, k.Explain}
	case pageHistory:
		pageKeys = []key.Binding{use, k.Star, k.ClearAll}
	case pageFavorites:
		pageKeys = []key.Binding{use, k.Remove, k.ClearAll}
	case pageSettings:
		pageKeys = []key.Binding{k.NextField, k.Left, k.Right, apply}
	}
	return contextKeys{
		short: append(append([]key.Binding{}, pageKeys...), k.Sidebar, k.Quit),
		full:  [][]key.Binding{pageKeys, {k.Sidebar, k.NextField, k.PrevField, k.PageUp, k.PageDown, k.Dismiss}, global},
	}
}
