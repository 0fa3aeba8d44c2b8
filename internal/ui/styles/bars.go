// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "strings"

// Bar characters for charts.
var (
	BarFull    = "█"
	BarEmpty   = " "
	BarPartial = []string{"▏", "▎", "▍", "▌", "▋", "▊", "▉"}
)

// RenderBar draws a horizontal bar filled to fraction (0-1) of width.
// A non-zero fraction always shows at least a sliver.
func RenderBar(width int, fraction float64) string {
	if width <= 0 {
		return ""
	}
	if fraction < 0 || fraction != fraction {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	filled := float64(width) * fraction
	full := int(filled)
	partial := int((filled - float64(full)) * float64(len(BarPartial)+1))
	if fraction > 0 && full == 0 && partial == 0 {
		partial = 1
	}

	var sb strings.Builder
	sb.Grow(width * 3)
	sb.WriteString(strings.Repeat(BarFull, full))
	drawn := full
	if drawn < width && partial > 0 {
		sb.WriteString(BarPartial[partial-1])
		drawn++
	}
	sb.WriteString(strings.Repeat(BarEmpty, width-drawn))
	return sb.String()
}
