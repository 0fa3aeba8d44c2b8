// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/unitconv/internal/convert"
	"github.com/jeranaias/unitconv/internal/session"
	"github.com/jeranaias/unitconv/internal/ui/components"
	"github.com/jeranaias/unitconv/internal/ui/styles"
)

// Layout constants. They are upper bounds; View measures what it draws.
const (
	sidebarWidth   = 20
	headerHeight   = 2
	footerHeight   = 2
	defaultWidth   = 80
	defaultHeight  = 24
	formulaMinRows = 4
)

// contentSize returns the space next to the sidebar.
func (m *Model) contentSize() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	if m.theme.GetLayoutMode() != styles.LayoutNarrow && m.width > 0 {
		w -= sidebarWidth + 1
	}
	return max(w-2, 20), max(h-headerHeight-footerHeight, 6)
}

// layout sizes the widgets after a resize, a page switch or a new result.
func (m *Model) layout() {
	w, h := m.contentSize()

	// The distribution below the history table takes a title and one row
	// per used category.
	used := 0
	for _, n := range m.st.CategoryCounts() {
		if n > 0 {
			used++
		}
	}
	tableHeight := max(h-5-used, 3)
	m.history.table.SetWidth(w)
	m.history.table.SetHeight(tableHeight)
	m.favs.table.SetWidth(w)
	m.favs.table.SetHeight(max(h-3, 3))

	p := m.conv
	p.formula.Width = w
	p.formula.Height = max(h-16, formulaMinRows)
	key := fmt.Sprintf("%d|%s|%d", p.category, m.st.Theme(), w)
	if p.formulaKey != key {
		p.formula.SetContent(m.renderFormula(p.category, w))
		p.formula.GotoTop()
		p.formulaKey = key
	}
}

// renderFormula renders the category explanation with glamour. The raw
// markdown is shown if rendering fails.
func (m *Model) renderFormula(c convert.Category, width int) string {
	md, err := m.engine.Explain(c)
	if err != nil {
		return err.Error()
	}
	style := "light"
	if m.st.Theme() == session.ThemeDark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err != nil {
		log.Printf("FORMULA_RENDER_FAILED | category=%s error=%v", c, err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		log.Printf("FORMULA_RENDER_FAILED | category=%s error=%v", c, err)
		return md
	}
	return strings.TrimRight(out, "\n")
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the whole screen.
func (m *Model) View() string {
	if m.palette.Visible() {
		return m.palette.View()
	}

	header := m.renderHeader()
	body := m.renderPage()
	if m.theme.GetLayoutMode() != styles.LayoutNarrow || m.width == 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), " ", body)
	}
	footer := m.theme.StatusBar.Render(m.help.View(m.keys.helpFor(m.currentPage(), m.focus)))

	screen := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	if m.height > 0 {
		screen = lipgloss.NewStyle().Height(m.height).MaxHeight(m.height).Render(screen)
	}

	toasts := components.RenderToastStack(m.theme, m.toasts.Toasts(), m.width, time.Now())
	return components.OverlayBottom(screen, toasts)
}

func (m *Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("unitconv")
	sub := m.theme.Subtitle.Render("  " + m.nav[m.cur].title)
	w := m.width
	if w <= 0 {
		w = defaultWidth
	}
	return m.theme.Header.Width(w - 2).Render(title + sub)
}

func (m *Model) renderSidebar() string {
	_, h := m.contentSize()
	var rows []string
	for i, e := range m.nav {
		if e.page == pageHistory {
			rows = append(rows, m.theme.Muted.Render(strings.Repeat("─", sidebarWidth-4)))
		}
		label := e.title
		if e.page == pageFavorites {
			label = fmt.Sprintf("%s (%d)", label, len(m.st.Favorites()))
		}
		style := m.theme.SidebarItem
		if i == m.cur {
			style = m.theme.SidebarActive
			if m.focus == focusSidebar {
				label = "> " + label
			}
		}
		rows = append(rows, style.Width(sidebarWidth-3).Render(label))
	}
	return m.theme.Sidebar.Height(h).Render(strings.Join(rows, "\n"))
}

func (m *Model) renderPage() string {
	switch m.currentPage() {
	case pageHistory:
		return m.renderHistory()
	case pageFavorites:
		return m.renderFavorites()
	case pageSettings:
		return m.renderSettings()
	}
	return m.renderConvert()
}

// field renders a labelled input box, highlighted when focused.
func (m *Model) field(label, content string, focused bool) string {
	style := m.theme.Field
	if focused && m.focus == focusContent {
		style = m.theme.FieldFocused
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		m.theme.Label.Render(label),
		style.Width(28).Render(content),
	)
}

func (m *Model) renderConvert() string {
	p := m.conv
	w, _ := m.contentSize()
	var parts []string

	strategy := "linear"
	if s, err := m.engine.Strategy(p.category); err == nil {
		strategy = s.Kind().String()
	}
	parts = append(parts,
		m.theme.HeaderTitle.Render(p.category.String())+
			m.theme.Muted.Render(fmt.Sprintf("  %s, base unit %s", strategy, m.engine.BaseUnit(p.category))),
	)

	parts = append(parts, m.field("Value", p.value.View(), p.field == fieldValue))
	parts = append(parts, m.field("From", m.selectorView(p.from), p.field == fieldFrom))
	parts = append(parts, m.field("To", m.selectorView(p.to), p.field == fieldTo))
	if p.field != fieldValue && m.focus == focusContent {
		parts = append(parts, m.theme.Muted.Render("←/→ cycle units, type to search"))
	}

	if p.errMsg != "" {
		parts = append(parts, m.theme.ErrorStyle.Render(styles.StatusIndicators.Error+" "+p.errMsg))
	}

	if h := p.last; h != nil {
		line := m.format(h.Value) + " " + h.FromUnit + " = " +
			m.theme.ResultValue.Render(m.format(h.Result)) + " " + h.ToUnit
		if m.st.IsFavorite(h.Favorite().Request()) {
			line += " " + m.theme.Star.Render("★")
		}
		parts = append(parts, m.theme.Result.Render(line))

		if m.cfg.UI.ShowChart {
			parts = append(parts, m.chart(*h, w).View())
		}
	}

	if p.showFormula {
		parts = append(parts, m.theme.Card.Width(w-2).Render(p.formula.View()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) selectorView(s *unitSelector) string {
	out := "‹ " + s.Selected() + " ›"
	if f := s.Filter(); f != "" {
		out += " " + m.theme.Muted.Render("/"+f)
	}
	return out
}

// chart builds the comparison chart for a result. Temperatures use a gauge.
func (m *Model) chart(h session.HistoryEntry, width int) *components.BarChart {
	from := components.Bar{Label: h.FromUnit, Value: h.Value, Text: m.format(h.Value)}
	to := components.Bar{Label: h.ToUnit, Value: h.Result, Text: m.format(h.Result)}

	var c *components.BarChart
	if h.Category == convert.Temperature {
		c = components.NewTemperatureGauge(m.theme, "Temperature", from, to)
	} else {
		c = components.NewComparisonChart(m.theme, h.Category.String()+" comparison", from, to)
	}
	c.SetWidth(width)
	return c
}

func (m *Model) renderHistory() string {
	w, _ := m.contentSize()
	if m.st.HistoryLen() == 0 {
		return m.theme.Muted.Render("No conversions yet. Results appear here after you convert.")
	}
	title := m.theme.HeaderTitle.Render(fmt.Sprintf("History (%d of %d)", m.st.HistoryLen(), m.st.MaxHistory()))
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.history.table.View(),
		"",
		m.distribution(w).View(),
	)
}

func (m *Model) renderFavorites() string {
	if len(m.favs.favs) == 0 {
		return m.theme.Muted.Render("No favorites yet. Press C-f after a conversion to save it.")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.HeaderTitle.Render(fmt.Sprintf("Favorites (%d)", len(m.favs.favs))),
		m.favs.table.View(),
	)
}

func (m *Model) renderSettings() string {
	p := m.settings
	focused := func(f settingsField) bool { return p.field == f }

	theme := "Light"
	if m.st.Theme() == session.ThemeDark {
		theme = "Dark"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.HeaderTitle.Render("Settings"),
		m.field("Theme", "‹ "+theme+" ›", focused(settingTheme)),
		m.field("Digits", fmt.Sprintf("‹ %d ›", m.st.DecimalPlaces()), focused(settingDecimals)),
		m.theme.Muted.Render("Significant digits shown in results (0-10)."),
		"",
		m.field("Export", p.exportPath.View(), focused(settingExport)),
		m.field("Import", p.importPath.View(), focused(settingImport)),
		m.theme.Muted.Render("Theme, favorites and digits as JSON, or .msgpack."),
		"",
		m.field("Report", p.reportPath.View(), focused(settingReport)),
		m.theme.Muted.Render("History as Markdown, HTML or JSON, by extension."),
	)
}
