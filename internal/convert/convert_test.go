// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// KNOWN VALUES
// =============================================================================

func TestConvert_KnownValues(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		value    float64
		from, to string
		want     float64
		tol      float64 // relative tolerance, 0 means exact
	}{
		{"km to m", Length, 1, "Kilometers", "Meters", 1000, 0},
		{"mile to feet", Length, 1, "Miles", "Feet", 5280, 0.005},
		{"inch to cm", Length, 1, "Inches", "Centimeters", 2.54, 1e-12},
		{"kg to pounds", Weight, 1, "Kilograms", "Pounds", 2.20462, 1e-5},
		{"GB to MB", Data, 1, "Gigabytes", "Megabytes", 1024, 0},
		{"bits to bytes", Data, 8, "Bits", "Bytes", 1, 0},
		{"hour to seconds", Time, 2, "Hours", "Seconds", 7200, 0},
		{"atm to psi", Pressure, 1, "Atmospheres", "Pounds per Square Inch", 14.6959, 1e-5},
		{"kWh to J", Energy, 1, "Kilowatt-hours", "Joules", 3.6e6, 0},
		{"hectare to m2", Area, 1, "Hectares", "Square Meters", 10000, 0},
		{"US gallon to L", Volume, 1, "US Gallons", "Liters", 3.78541, 0},
		{"m/s to km/h", Speed, 1, "Meters per second", "Kilometers per hour", 3.6, 1e-5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.category, tt.value, tt.from, tt.to)
			require.NoError(t, err)
			if tt.tol == 0 {
				assert.Equal(t, tt.want, got)
				return
			}
			assert.InEpsilon(t, tt.want, got, tt.tol)
		})
	}
}

func TestConvert_Temperature(t *testing.T) {
	tests := []struct {
		value    float64
		from, to string
		want     float64
	}{
		{0, Celsius, Fahrenheit, 32},
		{100, Celsius, Fahrenheit, 212},
		{0, Celsius, Kelvin, 273.15},
		{32, Fahrenheit, Celsius, 0},
		{212, Fahrenheit, Celsius, 100},
		{-40, Celsius, Fahrenheit, -40},
		{-40, Fahrenheit, Celsius, -40},
		{273.15, Kelvin, Celsius, 0},
		{32, Fahrenheit, Kelvin, 273.15},
		{273.15, Kelvin, Fahrenheit, 32},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			got, err := Convert(Temperature, tt.value, tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

// =============================================================================
// PROPERTIES
// =============================================================================

func TestConvert_IdentityIsExact(t *testing.T) {
	values := []float64{0, 1, -3.5, 1e-19, 123456.789, math.MaxFloat64 / 2}
	for _, c := range Categories() {
		for _, u := range Units(c) {
			for _, v := range values {
				got, err := Convert(c, v, u, u)
				require.NoError(t, err)
				assert.Equal(t, v, got, "%s %s", c, u)
			}
		}
	}
}

func TestConvert_RoundTrip(t *testing.T) {
	values := []float64{1, 0.001, 42.5, 1e6, -7}
	for _, c := range Categories() {
		units := Units(c)
		for _, a := range units {
			for _, b := range units {
				for _, v := range values {
					there, err := Convert(c, v, a, b)
					require.NoError(t, err)
					back, err := Convert(c, there, b, a)
					require.NoError(t, err)
					assert.InEpsilon(t, v, back, 1e-9, "%s: %s -> %s -> %s", c, a, b, a)
				}
			}
		}
	}
}

func TestConvert_NoNaNOrInf(t *testing.T) {
	for _, c := range Categories() {
		units := Units(c)
		for _, a := range units {
			for _, b := range units {
				got, err := Convert(c, 1, a, b)
				require.NoError(t, err)
				assert.False(t, math.IsNaN(got) || math.IsInf(got, 0), "%s %s->%s", c, a, b)
			}
		}
	}
}

// =============================================================================
// ERRORS
// =============================================================================

func TestConvert_InvalidUnit(t *testing.T) {
	_, err := Convert(Length, 1, "Parsecs", "Meters")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidUnit))

	var ue *UnitError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "Parsecs", ue.Unit)
	assert.Equal(t, Length, ue.Category)

	// Units from another category are rejected too.
	_, err = Convert(Weight, 1, "Kilograms", "Meters")
	assert.ErrorIs(t, err, ErrInvalidUnit)

	_, err = Convert(Temperature, 1, "Rankine", Celsius)
	assert.ErrorIs(t, err, ErrInvalidUnit)
}

func TestConvert_InvalidCategory(t *testing.T) {
	_, err := Convert(Category(42), 1, "Meters", "Meters")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCategory)
	assert.NotErrorIs(t, err, ErrInvalidUnit)

	_, err = ParseCategory("Luminosity")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

// =============================================================================
// CATEGORY METADATA
// =============================================================================

func TestParseCategory(t *testing.T) {
	tests := map[string]Category{
		"Length":      Length,
		"length":      Length,
		"  WEIGHT ":   Weight,
		"mass":        Weight,
		"temperature": Temperature,
		"data size":   Data,
		"Data":        Data,
	}
	for in, want := range tests {
		got, err := ParseCategory(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestCategory_TextRoundTrip(t *testing.T) {
	for _, c := range Categories() {
		text, err := c.MarshalText()
		require.NoError(t, err)
		var back Category
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, c, back)
	}
}

func TestUnits_DisplayOrder(t *testing.T) {
	assert.Len(t, Categories(), 10)
	assert.Equal(t, []string{Celsius, Fahrenheit, Kelvin}, Units(Temperature))
	assert.Equal(t, "Millimeters", Units(Length)[0])
	assert.Equal(t, "Petabytes", Units(Data)[len(Units(Data))-1])
	assert.Nil(t, Units(Category(-1)))

	// Returned slices are copies.
	u := Units(Length)
	u[0] = "changed"
	assert.Equal(t, "Millimeters", Units(Length)[0])
}

func TestDefaultPair(t *testing.T) {
	e := Default()
	tests := []struct {
		category Category
		want     Pair
	}{
		{Length, Pair{"Millimeters", "Meters"}},
		{Temperature, Pair{Celsius, Fahrenheit}},
		{Time, Pair{"Nanoseconds", "Seconds"}},
		{Pressure, Pair{"Pascals", "Atmospheres"}},
		{Data, Pair{"Bits", "Kilobytes"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, e.DefaultPair(tt.category), tt.category.String())
	}
	assert.Equal(t, 0.0, e.DefaultValue(Temperature))
	assert.Equal(t, 1.0, e.DefaultValue(Volume))
}

func TestStrategyKinds(t *testing.T) {
	e := New()
	for _, c := range Categories() {
		s, err := e.Strategy(c)
		require.NoError(t, err)
		want := KindLinear
		if c == Temperature {
			want = KindAffine
		}
		assert.Equal(t, want, s.Kind(), c.String())
	}
}

func TestExplain(t *testing.T) {
	md, err := Explain(Temperature)
	require.NoError(t, err)
	assert.Contains(t, md, "273.15")
	assert.Contains(t, md, "9/5")

	md, err = Explain(Length)
	require.NoError(t, err)
	assert.Contains(t, md, "**meter**")
	for _, u := range Units(Length) {
		assert.True(t, strings.Contains(md, "| "+u+" |"), u)
	}

	_, err = Explain(Category(99))
	assert.ErrorIs(t, err, ErrInvalidCategory)
}
