// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/unitconv/internal/session"
)

func TestPaletteFor(t *testing.T) {
	if PaletteFor(session.ThemeDark) != DarkPalette {
		t.Error("PaletteFor(dark) should return DarkPalette")
	}
	if PaletteFor(session.ThemeLight) != LightPalette {
		t.Error("PaletteFor(light) should return LightPalette")
	}
	if PaletteFor("unknown") != LightPalette {
		t.Error("unknown themes fall back to light")
	}
	if LightPalette.Primary != "#4361EE" || DarkPalette.Background != "#121212" {
		t.Error("palette colours changed")
	}
}

func TestNewTheme(t *testing.T) {
	for _, mode := range []session.Theme{session.ThemeLight, session.ThemeDark, "bogus"} {
		theme := NewTheme(mode)
		if theme == nil {
			t.Fatalf("NewTheme(%q) returned nil", mode)
		}
		if theme.Mode != session.ThemeLight && theme.Mode != session.ThemeDark {
			t.Errorf("NewTheme(%q).Mode = %q", mode, theme.Mode)
		}

		styles := []struct {
			name  string
			style lipgloss.Style
		}{
			{"Header", theme.Header},
			{"SidebarActive", theme.SidebarActive},
			{"Result", theme.Result},
			{"ChartBar", theme.ChartBar},
			{"ErrorStyle", theme.ErrorStyle},
		}
		for _, s := range styles {
			if !strings.Contains(s.style.Render("test"), "test") {
				t.Errorf("%s style lost its content", s.name)
			}
		}
	}
}

func TestThemeGetLayoutMode(t *testing.T) {
	theme := NewTheme(session.ThemeLight)
	cases := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
	}
	for _, tc := range cases {
		theme.SetSize(tc.width, 30)
		if got := theme.GetLayoutMode(); got != tc.want {
			t.Errorf("width %d: GetLayoutMode() = %d, want %d", tc.width, got, tc.want)
		}
	}
}

func TestRenderBar(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		fraction float64
		full     int
	}{
		{"empty", 10, 0, 0},
		{"half", 10, 0.5, 5},
		{"full", 10, 1, 10},
		{"clamped high", 10, 2, 10},
		{"clamped low", 10, -1, 0},
		{"nan", 10, math.NaN(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := RenderBar(tt.width, tt.fraction)
			if n := utf8.RuneCountInString(bar); n != tt.width {
				t.Errorf("RenderBar() has %d runes, want %d", n, tt.width)
			}
			if got := strings.Count(bar, BarFull); got != tt.full {
				t.Errorf("RenderBar() has %d full blocks, want %d", got, tt.full)
			}
		})
	}

	if RenderBar(0, 0.5) != "" {
		t.Error("zero width should render nothing")
	}
	if strings.TrimSpace(RenderBar(10, 0.001)) == "" {
		t.Error("tiny non-zero fraction should show a sliver")
	}
}

func TestRenderHelpers(t *testing.T) {
	cases := map[string]string{
		RenderSuccess("done"): StatusIndicators.Success,
		RenderError("fail"):   StatusIndicators.Error,
		RenderWarning("hmm"):  StatusIndicators.Warning,
		RenderInfo("fyi"):     StatusIndicators.Info,
	}
	for out, indicator := range cases {
		if !strings.Contains(out, indicator) {
			t.Errorf("%q missing indicator %q", out, indicator)
		}
	}
}
