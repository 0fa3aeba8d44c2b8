// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/unitconv/internal/ui/styles"
	"github.com/jeranaias/unitconv/internal/util"
)

// =============================================================================
// NAVIGATION PALETTE
// =============================================================================

// PaletteItem is one destination in the palette.
type PaletteItem struct {
	Title  string
	Detail string
}

// PaletteSelectMsg is sent when an item is chosen. Index refers to the
// slice passed to NewNavPalette.
type PaletteSelectMsg struct {
	Index int
	Item  PaletteItem
}

// NavPalette is an overlay for jumping to a page by fuzzy search.
type NavPalette struct {
	input    textinput.Model
	items    []PaletteItem
	filtered []util.ScoredMatch
	selected int
	visible  bool
	maxItems int
	width    int
	height   int
	theme    *styles.Theme
}

// NewNavPalette creates a hidden palette over items.
func NewNavPalette(theme *styles.Theme, items []PaletteItem) *NavPalette {
	ti := textinput.New()
	ti.Placeholder = "Go to..."
	ti.Prompt = "> "
	ti.CharLimit = 40
	ti.Width = 36

	p := &NavPalette{
		input:    ti,
		items:    items,
		maxItems: 8,
		theme:    theme,
	}
	p.updateFiltered()
	return p
}

// SetTheme restyles the palette.
func (p *NavPalette) SetTheme(theme *styles.Theme) {
	p.theme = theme
}

// SetSize sets the area the palette is centered in.
func (p *NavPalette) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Visible reports whether the palette is open.
func (p *NavPalette) Visible() bool {
	return p.visible
}

// Show opens the palette with an empty query.
func (p *NavPalette) Show() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	p.updateFiltered()
	p.selected = 0
	return p.input.Focus()
}

// Hide closes the palette.
func (p *NavPalette) Hide() {
	p.visible = false
	p.input.Blur()
}

// Matches returns the titles currently listed, best match first.
func (p *NavPalette) Matches() []string {
	out := make([]string, len(p.filtered))
	for i, m := range p.filtered {
		out[i] = m.Target
	}
	return out
}

// Update handles keys while the palette is open.
func (p *NavPalette) Update(msg tea.Msg) (*NavPalette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "ctrl+p":
			p.Hide()
			return p, nil

		case "enter":
			if p.selected < 0 || p.selected >= len(p.filtered) {
				return p, nil
			}
			idx := p.filtered[p.selected].Index
			p.Hide()
			item := p.items[idx]
			return p, func() tea.Msg {
				return PaletteSelectMsg{Index: idx, Item: item}
			}

		case "up", "ctrl+k", "shift+tab":
			if n := len(p.filtered); n > 0 {
				p.selected = (p.selected - 1 + n) % n
			}
			return p, nil

		case "down", "ctrl+j", "tab":
			if n := len(p.filtered); n > 0 {
				p.selected = (p.selected + 1) % n
			}
			return p, nil
		}
	}

	previous := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != previous {
		p.updateFiltered()
		p.selected = 0
	}
	return p, cmd
}

// updateFiltered fuzzy-matches the query against item titles. An empty
// query lists every item in its original order.
func (p *NavPalette) updateFiltered() {
	titles := make([]string, len(p.items))
	for i, it := range p.items {
		titles[i] = it.Title
	}
	p.filtered = util.FuzzyFilter(strings.TrimSpace(p.input.Value()), titles)
}

// View renders the palette, centered when a size is set.
func (p *NavPalette) View() string {
	if !p.visible {
		return ""
	}

	query := strings.TrimSpace(p.input.Value())
	var rows []string
	for i, m := range p.filtered {
		if i >= p.maxItems {
			rows = append(rows, p.theme.Muted.Italic(true).Render("  ... "+strconv.Itoa(len(p.filtered)-p.maxItems)+" more"))
			break
		}
		rows = append(rows, p.renderItem(m, query, i == p.selected))
	}
	if len(p.filtered) == 0 {
		rows = append(rows, p.theme.Muted.Italic(true).Render("No matches"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		p.theme.HeaderTitle.Render("Go to"),
		p.input.View(),
		p.theme.Divider.Render(strings.Repeat("─", 36)),
		strings.Join(rows, "\n"),
		p.theme.Muted.Render("↑/↓ move  enter go  esc close"),
	)
	box := p.theme.PaletteOverlay.Render(content)

	if p.width > 0 && p.height > 0 {
		return lipgloss.Place(p.width, p.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

// renderItem renders one row with the matched runes highlighted.
func (p *NavPalette) renderItem(m util.ScoredMatch, query string, selected bool) string {
	if selected {
		line := "> " + m.Target
		if d := p.items[m.Index].Detail; d != "" {
			line += "  " + d
		}
		return p.theme.PaletteSelected.Render(padLabel(line, 36))
	}

	hits := make(map[int]bool)
	for _, pos := range util.HighlightPositions(query, m.Target) {
		hits[pos] = true
	}
	var sb strings.Builder
	sb.WriteString("  ")
	for i, r := range []rune(m.Target) {
		if hits[i] {
			sb.WriteString(p.theme.PaletteMatch.Render(string(r)))
		} else {
			sb.WriteString(p.theme.PaletteItem.Render(string(r)))
		}
	}
	if d := p.items[m.Index].Detail; d != "" {
		sb.WriteString("  " + p.theme.Muted.Render(d))
	}
	return sb.String()
}
