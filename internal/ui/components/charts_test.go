// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"math"
	"strings"
	"testing"

	"github.com/jeranaias/unitconv/internal/session"
	"github.com/jeranaias/unitconv/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme(session.ThemeLight)
}

func TestNeedsLogScale(t *testing.T) {
	tests := []struct {
		a, b float64
		want bool
	}{
		{1, 1000, false},
		{1, 1000.5, true},
		{1, 1e6, true},
		{1e6, 1, true},
		{-1, -5000, true},
		{0, 1e9, false},
		{5, 8.04672, false},
	}
	for _, tc := range tests {
		if got := NeedsLogScale(tc.a, tc.b); got != tc.want {
			t.Errorf("NeedsLogScale(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestComparisonChart_LinearFractions(t *testing.T) {
	c := NewComparisonChart(testTheme(), "Length",
		Bar{Label: "Kilometers", Value: 5, Text: "5"},
		Bar{Label: "Miles", Value: 3.1068560, Text: "3.106856"},
	)
	if c.LogScale {
		t.Fatal("5 km -> mi should use a linear scale")
	}
	if !c.Bars[1].Accent || c.Bars[0].Accent {
		t.Error("only the result bar should be accented")
	}

	f := c.Fractions()
	if f[0] != 1 {
		t.Errorf("largest bar should be full, got %v", f[0])
	}
	if math.Abs(f[1]-3.106856/5) > 1e-6 {
		t.Errorf("result fraction = %v", f[1])
	}
}

func TestComparisonChart_LogFractions(t *testing.T) {
	c := NewComparisonChart(testTheme(), "Length",
		Bar{Label: "Kilometers", Value: 1, Text: "1"},
		Bar{Label: "Millimeters", Value: 1e6, Text: "1000000"},
	)
	if !c.LogScale {
		t.Fatal("1 km -> mm should use a log scale")
	}

	f := c.Fractions()
	// The range starts one decade below the smallest value: [-1, 6].
	if math.Abs(f[0]-1.0/7) > 1e-9 {
		t.Errorf("small bar fraction = %v, want %v", f[0], 1.0/7)
	}
	if f[1] != 1 {
		t.Errorf("large bar fraction = %v, want 1", f[1])
	}
	if !strings.Contains(c.View(), "(log scale)") {
		t.Error("log scale charts should say so in the title")
	}
}

func TestComparisonChart_Zero(t *testing.T) {
	c := NewComparisonChart(testTheme(), "", Bar{Label: "a"}, Bar{Label: "b"})
	for i, f := range c.Fractions() {
		if f != 0 {
			t.Errorf("bar %d fraction = %v, want 0", i, f)
		}
	}
}

func TestComparisonChart_View(t *testing.T) {
	c := NewComparisonChart(testTheme(), "Weight",
		Bar{Label: "Kilograms", Value: 1, Text: "1"},
		Bar{Label: "Pounds", Value: 2.2046226, Text: "2.2046226"},
	)
	c.SetWidth(50)
	out := c.View()
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected title + 2 bars, got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "Kilograms") || !strings.Contains(lines[2], "Pounds") {
		t.Errorf("bars out of order:\n%s", out)
	}
	if !strings.Contains(lines[2], styles.BarFull) {
		t.Error("the larger bar should be drawn")
	}
}

func TestTemperatureGauge(t *testing.T) {
	c := NewTemperatureGauge(testTheme(), "Temperature",
		Bar{Label: "Celsius", Value: 100, Text: "100"},
		Bar{Label: "Fahrenheit", Value: 212, Text: "212"},
	)
	if c.LogScale {
		t.Error("temperature gauge should never use a log scale")
	}
	if len(c.Bars) != 1 || c.Bars[0].Label != "Fahrenheit" {
		t.Fatalf("gauge should show the result only, got %+v", c.Bars)
	}
	if f := c.Fractions()[0]; math.Abs(f-1/1.2) > 1e-9 {
		t.Errorf("gauge fraction = %v, want %v", f, 1/1.2)
	}
}

func TestDistribution(t *testing.T) {
	d := NewDistribution(testTheme(), "Conversion Categories", []Slice{
		{Label: "Length", Count: 1},
		{Label: "Weight", Count: 0},
		{Label: "Temperature", Count: 3},
		{Label: "Data", Count: 1},
	})

	if len(d.Slices) != 3 {
		t.Fatalf("empty slices should be dropped, got %+v", d.Slices)
	}
	if d.Slices[0].Label != "Temperature" || d.Slices[1].Label != "Length" || d.Slices[2].Label != "Data" {
		t.Errorf("unexpected order: %+v", d.Slices)
	}
	if d.Total() != 5 {
		t.Errorf("Total = %d, want 5", d.Total())
	}
	if d.Share(0) != 60 {
		t.Errorf("Share(0) = %v, want 60", d.Share(0))
	}
	if d.Share(9) != 0 {
		t.Error("out of range share should be 0")
	}

	out := d.View()
	if !strings.Contains(out, "3 (60.0%)") || !strings.Contains(out, "1 (20.0%)") {
		t.Errorf("missing counts:\n%s", out)
	}
}

func TestDistribution_Empty(t *testing.T) {
	d := NewDistribution(testTheme(), "", nil)
	if !strings.Contains(d.View(), "No conversions yet.") {
		t.Errorf("empty view = %q", d.View())
	}
}
