// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/unitconv/internal/convert"
	"github.com/jeranaias/unitconv/internal/session"
	"github.com/jeranaias/unitconv/internal/ui/components"
	"github.com/jeranaias/unitconv/internal/ui/styles"
)

// tableStyles builds bubbles table styles from the theme.
func tableStyles(theme *styles.Theme) table.Styles {
	s := table.DefaultStyles()
	s.Header = theme.TableHeader.Padding(0, 1)
	s.Cell = theme.TableCell.Padding(0, 1)
	s.Selected = theme.TableActive
	return s
}

// =============================================================================
// HISTORY PAGE
// =============================================================================

// historyPage lists past conversions, newest first.
type historyPage struct {
	table   table.Model
	entries []session.HistoryEntry // newest first, matching the rows
}

func newHistoryPage() *historyPage {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Time", Width: 8},
			{Title: "Category", Width: 12},
			{Title: "Conversion", Width: 44},
		}),
		table.WithHeight(10),
	)
	return &historyPage{table: t}
}

func (p *historyPage) setStyles(theme *styles.Theme) {
	p.table.SetStyles(tableStyles(theme))
}

// selected returns the entry under the cursor.
func (p *historyPage) selected() (session.HistoryEntry, bool) {
	i := p.table.Cursor()
	if i < 0 || i >= len(p.entries) {
		return session.HistoryEntry{}, false
	}
	return p.entries[i], true
}

// refreshHistory reloads the table from the session.
func (m *Model) refreshHistory() {
	hist := m.st.History()
	p := m.history
	p.entries = make([]session.HistoryEntry, 0, len(hist))
	rows := make([]table.Row, 0, len(hist))
	for i := len(hist) - 1; i >= 0; i-- {
		h := hist[i]
		p.entries = append(p.entries, h)
		rows = append(rows, table.Row{
			h.Timestamp.Local().Format("15:04:05"),
			h.Category.String(),
			m.line(h.Value, h.FromUnit, h.Result, h.ToUnit),
		})
	}
	p.table.SetRows(rows)
	if p.table.Cursor() >= len(rows) {
		p.table.SetCursor(max(len(rows)-1, 0))
	}
}

// historyKey handles keys on the history page.
func (m *Model) historyKey(msg tea.KeyMsg) tea.Cmd {
	p := m.history
	switch {
	case key.Matches(msg, m.keys.Enter):
		if h, ok := p.selected(); ok {
			return m.openConversion(h.Favorite().Request())
		}
		return nil
	case key.Matches(msg, m.keys.Star):
		h, ok := p.selected()
		if !ok {
			return nil
		}
		if !m.st.AddFavorite(h.Favorite()) {
			return m.notify(components.ToastStatus, "Already a favorite")
		}
		return m.notify(components.ToastSuccess, "Added to favorites")
	case key.Matches(msg, m.keys.ClearAll):
		if m.st.HistoryLen() == 0 {
			return nil
		}
		m.st.ClearHistory()
		m.conv.last = nil
		m.refreshHistory()
		return m.notify(components.ToastSuccess, "History cleared")
	}

	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return cmd
}

// distribution builds the category chart for the history page.
func (m *Model) distribution(width int) *components.Distribution {
	counts := m.st.CategoryCounts()
	slices := make([]components.Slice, 0, len(counts))
	for _, c := range convert.Categories() {
		slices = append(slices, components.Slice{Label: c.String(), Count: counts[c]})
	}
	d := components.NewDistribution(m.theme, "Conversion Categories", slices)
	d.SetWidth(width)
	return d
}

// =============================================================================
// FAVORITES PAGE
// =============================================================================

// favoritesPage lists saved conversions in the order they were added.
type favoritesPage struct {
	table table.Model
	favs  []session.Favorite
}

func newFavoritesPage() *favoritesPage {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 3},
			{Title: "Category", Width: 12},
			{Title: "Conversion", Width: 49},
		}),
		table.WithHeight(10),
	)
	return &favoritesPage{table: t}
}

func (p *favoritesPage) setStyles(theme *styles.Theme) {
	p.table.SetStyles(tableStyles(theme))
}

// refreshFavorites reloads the table from the session.
func (m *Model) refreshFavorites() {
	p := m.favs
	p.favs = m.st.Favorites()
	rows := make([]table.Row, len(p.favs))
	for i, f := range p.favs {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			f.Category.String(),
			m.line(f.Value, f.FromUnit, f.Result, f.ToUnit),
		}
	}
	p.table.SetRows(rows)
	if p.table.Cursor() >= len(rows) {
		p.table.SetCursor(max(len(rows)-1, 0))
	}
}

// favoritesKey handles keys on the favorites page.
func (m *Model) favoritesKey(msg tea.KeyMsg) tea.Cmd {
	p := m.favs
	i := p.table.Cursor()
	valid := i >= 0 && i < len(p.favs)

	switch {
	case key.Matches(msg, m.keys.Enter):
		if !valid {
			return nil
		}
		return m.openConversion(p.favs[i].Request())
	case key.Matches(msg, m.keys.Remove):
		if !valid || !m.st.RemoveFavorite(i) {
			return nil
		}
		m.refreshFavorites()
		return m.notify(components.ToastStatus, "Favorite removed")
	case key.Matches(msg, m.keys.ClearAll):
		if len(p.favs) == 0 {
			return nil
		}
		m.st.ClearFavorites()
		m.refreshFavorites()
		return m.notify(components.ToastSuccess, "Favorites cleared")
	}

	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return cmd
}

// line renders "value from = result to" with the session precision.
func (m *Model) line(value float64, from string, result float64, to string) string {
	return m.format(value) + " " + from + " = " + m.format(result) + " " + to
}
