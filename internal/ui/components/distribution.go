// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"sort"
	"strings"

	"github.com/jeranaias/unitconv/internal/ui/styles"
)

// =============================================================================
// CATEGORY DISTRIBUTION
// =============================================================================

// Slice is one category and how many conversions used it.
type Slice struct {
	Label string
	Count int
}

// Distribution shows each slice's share of the total as a bar.
type Distribution struct {
	Title  string
	Slices []Slice
	Width  int
	theme  *styles.Theme
}

// NewDistribution sorts slices by count, largest first, and drops empty ones.
// Equal counts keep their input order.
func NewDistribution(theme *styles.Theme, title string, slices []Slice) *Distribution {
	kept := make([]Slice, 0, len(slices))
	for _, s := range slices {
		if s.Count > 0 {
			kept = append(kept, s)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Count > kept[j].Count
	})
	return &Distribution{Title: title, Slices: kept, Width: 60, theme: theme}
}

// SetWidth sets the total width in cells.
func (d *Distribution) SetWidth(width int) {
	d.Width = width
}

// Total returns the sum of all counts.
func (d *Distribution) Total() int {
	n := 0
	for _, s := range d.Slices {
		n += s.Count
	}
	return n
}

// Share returns the percentage of the total for slice i.
func (d *Distribution) Share(i int) float64 {
	total := d.Total()
	if total == 0 || i < 0 || i >= len(d.Slices) {
		return 0
	}
	return float64(d.Slices[i].Count) * 100 / float64(total)
}

// View renders the distribution.
func (d *Distribution) View() string {
	var sb strings.Builder
	if d.Title != "" {
		sb.WriteString(d.theme.ChartLabel.Bold(true).Render(d.Title))
		sb.WriteString("\n")
	}
	if len(d.Slices) == 0 {
		sb.WriteString(d.theme.Muted.Render("No conversions yet."))
		return sb.String()
	}

	labels := make([]string, len(d.Slices))
	texts := make([]string, len(d.Slices))
	for i, s := range d.Slices {
		labels[i] = s.Label
		texts[i] = fmtCount(s.Count) + " (" + fmtPercent(d.Share(i)) + ")"
	}
	labelW := maxLabelWidth(labels)
	textW := maxLabelWidth(texts)
	barW := d.Width - labelW - textW - 2
	if barW < minBarWidth {
		barW = minBarWidth
	}

	for i := range d.Slices {
		style := d.theme.ChartBar
		if i == 0 {
			style = d.theme.ChartAccent
		}
		sb.WriteString(d.theme.ChartLabel.Render(padLabel(labels[i], labelW)))
		sb.WriteString(" ")
		sb.WriteString(style.Render(styles.RenderBar(barW, d.Share(i)/100)))
		sb.WriteString(" ")
		sb.WriteString(d.theme.Muted.Render(texts[i]))
		if i < len(d.Slices)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
