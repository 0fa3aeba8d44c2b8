// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/unitconv/internal/session"
)

// Theme holds all the styled components for the application.
type Theme struct {
	Mode    session.Theme
	Palette Palette

	// Terminal capabilities
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// LAYOUT
	// ==========================================================================

	App         lipgloss.Style
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	Subtitle    lipgloss.Style
	Card        lipgloss.Style
	Divider     lipgloss.Style

	// ==========================================================================
	// SIDEBAR
	// ==========================================================================

	Sidebar       lipgloss.Style
	SidebarItem   lipgloss.Style
	SidebarActive lipgloss.Style

	// ==========================================================================
	// CONVERSION PAGE
	// ==========================================================================

	Label        lipgloss.Style
	Field        lipgloss.Style
	FieldFocused lipgloss.Style
	Result       lipgloss.Style
	ResultValue  lipgloss.Style
	Star         lipgloss.Style

	// ==========================================================================
	// CHARTS AND TABLES
	// ==========================================================================

	ChartBar    lipgloss.Style
	ChartAccent lipgloss.Style
	ChartLabel  lipgloss.Style
	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
	TableActive lipgloss.Style

	// ==========================================================================
	// STATUS AND FEEDBACK
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	Muted        lipgloss.Style

	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style

	// ==========================================================================
	// PALETTE OVERLAY
	// ==========================================================================

	PaletteOverlay  lipgloss.Style
	PaletteItem     lipgloss.Style
	PaletteSelected lipgloss.Style
	PaletteMatch    lipgloss.Style
}

// DetectMode picks dark or light from the terminal background.
func DetectMode() session.Theme {
	if termenv.HasDarkBackground() {
		return session.ThemeDark
	}
	return session.ThemeLight
}

// NewTheme creates a theme for the given mode.
func NewTheme(mode session.Theme) *Theme {
	profile := termenv.ColorProfile()
	if mode != session.ThemeDark {
		mode = session.ThemeLight
	}

	t := &Theme{
		Mode:         mode,
		Palette:      PaletteFor(mode),
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
	}
	t.initStyles()
	return t
}

// initStyles builds every style from the palette.
func (t *Theme) initStyles() {
	p := t.Palette
	primary := lipgloss.Color(p.Primary)
	text := lipgloss.Color(p.Text)
	accent := lipgloss.Color(p.Accent)
	card := lipgloss.Color(p.Card)
	secondary := lipgloss.Color(p.Secondary)

	t.App = lipgloss.NewStyle().Foreground(text)

	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(primary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(primary).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(primary)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true)

	t.Card = lipgloss.NewStyle().
		Background(card).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(secondary).
		Padding(0, 1)

	t.Divider = lipgloss.NewStyle().Foreground(secondary)

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(primary).
		Padding(0, 1).
		Width(18)

	t.SidebarItem = lipgloss.NewStyle().
		Foreground(text).
		PaddingLeft(1)

	t.SidebarActive = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Background)).
		Background(primary).
		Bold(true).
		PaddingLeft(1)

	// Conversion page
	t.Label = lipgloss.NewStyle().
		Foreground(Muted).
		Width(8)

	t.Field = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(secondary).
		Padding(0, 1)

	t.FieldFocused = t.Field.
		BorderForeground(primary)

	t.Result = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(primary).
		Padding(0, 2).
		MarginTop(1)

	t.ResultValue = lipgloss.NewStyle().
		Foreground(primary).
		Bold(true)

	t.Star = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Warning))

	// Charts and tables
	t.ChartBar = lipgloss.NewStyle().Foreground(primary)
	t.ChartAccent = lipgloss.NewStyle().Foreground(accent)
	t.ChartLabel = lipgloss.NewStyle().Foreground(text)

	t.TableHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(primary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(secondary)
	t.TableCell = lipgloss.NewStyle().Foreground(text)
	t.TableActive = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Background)).
		Background(accent)

	// Status
	t.StatusBar = lipgloss.NewStyle().
		Foreground(Muted).
		Padding(0, 1)
	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(primary).
		Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().Foreground(Muted)
	t.Muted = lipgloss.NewStyle().Foreground(Muted)

	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Success)).
		Bold(true)
	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Danger)).
		Bold(true)
	t.WarningStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Warning)).
		Bold(true)
	t.InfoStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Info)).
		Bold(true)

	// Palette overlay
	t.PaletteOverlay = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Width(40)
	t.PaletteItem = lipgloss.NewStyle().Foreground(text)
	t.PaletteSelected = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Background)).
		Background(primary)
	t.PaletteMatch = lipgloss.NewStyle().
		Foreground(accent).
		Bold(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns, sidebar hidden
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
