// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/unitconv/internal/ui/styles"
)

// LogScaleRatio is the ratio between the larger and smaller value above
// which a comparison chart switches to a log scale.
const LogScaleRatio = 1000.0

// minBarWidth keeps bars visible on very narrow terminals.
const minBarWidth = 4

// =============================================================================
// BAR CHART
// =============================================================================

// Bar is one row of a chart.
type Bar struct {
	Label  string
	Value  float64
	Text   string // shown after the bar, usually the formatted value
	Accent bool
}

// BarChart draws labelled horizontal bars.
type BarChart struct {
	Title    string
	Bars     []Bar
	Width    int
	LogScale bool

	// Max fixes the top of a linear scale. Zero scales to the largest bar.
	Max float64

	theme *styles.Theme
}

// NewComparisonChart charts the input and the result of a conversion.
func NewComparisonChart(theme *styles.Theme, title string, from, to Bar) *BarChart {
	to.Accent = true
	return &BarChart{
		Title:    title,
		Bars:     []Bar{from, to},
		Width:    60,
		LogScale: NeedsLogScale(from.Value, to.Value),
		theme:    theme,
	}
}

// NewTemperatureGauge shows a temperature result on a gauge running from
// zero to 1.2 times the larger magnitude. Temperatures cross zero, so the
// log scale never applies.
func NewTemperatureGauge(theme *styles.Theme, title string, from, to Bar) *BarChart {
	to.Accent = true
	top := math.Max(math.Abs(from.Value), math.Abs(to.Value)) * 1.2
	return &BarChart{
		Title: title,
		Bars:  []Bar{to},
		Width: 60,
		Max:   top,
		theme: theme,
	}
}

// NeedsLogScale reports whether a and b differ by more than LogScaleRatio.
// Zero values never trigger the log scale.
func NeedsLogScale(a, b float64) bool {
	a, b = math.Abs(a), math.Abs(b)
	lo, hi := math.Min(a, b), math.Max(a, b)
	if lo == 0 || math.IsInf(hi, 0) || math.IsNaN(hi) {
		return false
	}
	return hi/lo > LogScaleRatio
}

// SetWidth sets the total width of the chart in cells.
func (c *BarChart) SetWidth(width int) {
	c.Width = width
}

// Fractions returns each bar's fill in [0, 1].
func (c *BarChart) Fractions() []float64 {
	out := make([]float64, len(c.Bars))
	if c.LogScale {
		c.logFractions(out)
	} else {
		c.linearFractions(out)
	}
	return out
}

func (c *BarChart) linearFractions(out []float64) {
	top := c.Max
	if top <= 0 {
		for _, b := range c.Bars {
			top = math.Max(top, math.Abs(b.Value))
		}
	}
	if top == 0 {
		return
	}
	for i, b := range c.Bars {
		out[i] = math.Min(math.Abs(b.Value)/top, 1)
	}
}

// logFractions maps log10 of each magnitude onto a range that starts one
// decade below the smallest non-zero value, so the smallest bar stays visible.
func (c *BarChart) logFractions(out []float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, b := range c.Bars {
		v := math.Abs(b.Value)
		if v == 0 {
			continue
		}
		lo = math.Min(lo, math.Log10(v))
		hi = math.Max(hi, math.Log10(v))
	}
	if math.IsInf(lo, 1) {
		return
	}
	lo--
	span := hi - lo
	for i, b := range c.Bars {
		v := math.Abs(b.Value)
		if v == 0 {
			continue
		}
		out[i] = (math.Log10(v) - lo) / span
	}
}

// View renders the chart.
func (c *BarChart) View() string {
	if len(c.Bars) == 0 {
		return ""
	}

	labels := make([]string, len(c.Bars))
	texts := make([]string, len(c.Bars))
	for i, b := range c.Bars {
		labels[i] = b.Label
		texts[i] = b.Text
	}
	labelW := clamp(maxLabelWidth(labels), 1, 18)
	textW := maxLabelWidth(texts)
	barW := c.Width - labelW - textW - 2
	if barW < minBarWidth {
		barW = minBarWidth
	}

	var sb strings.Builder
	if c.Title != "" {
		sb.WriteString(c.theme.ChartLabel.Bold(true).Render(c.Title))
		if c.LogScale {
			sb.WriteString(" " + c.theme.Muted.Render("(log scale)"))
		}
		sb.WriteString("\n")
	}

	fractions := c.Fractions()
	for i, b := range c.Bars {
		barStyle := c.theme.ChartBar
		if b.Accent {
			barStyle = c.theme.ChartAccent
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			c.theme.ChartLabel.Render(padLabel(b.Label, labelW)),
			" ",
			barStyle.Render(styles.RenderBar(barW, fractions[i])),
			" ",
			c.theme.Muted.Render(runewidth.FillLeft(b.Text, textW)),
		)
		sb.WriteString(row)
		if i < len(c.Bars)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
