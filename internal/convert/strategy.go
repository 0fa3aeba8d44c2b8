// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

// =============================================================================
// STRATEGIES
// =============================================================================

// Kind identifies the strategy variant serving a category.
type Kind int

const (
	KindLinear Kind = iota // value * factor(from) / factor(to)
	KindAffine             // scale and offset, temperature only
)

func (k Kind) String() string {
	switch k {
	case KindLinear:
		return "linear"
	case KindAffine:
		return "affine"
	default:
		return "unknown"
	}
}

// Strategy converts values between the units of a single category.
type Strategy interface {
	// Kind reports the strategy variant.
	Kind() Kind

	// Units returns the unit names in display order. The slice is a copy.
	Units() []string

	// Has reports whether unit is a canonical unit name of the category.
	Has(unit string) bool

	// Convert converts value from one unit to another.
	// Unknown units return a *UnitError.
	Convert(value float64, from, to string) (float64, error)
}

// -----------------------------------------------------------------------------
// linear
// -----------------------------------------------------------------------------

type linearStrategy struct {
	category Category
	names    []string
	factors  map[string]float64
}

func newLinear(c Category, def tableDef) *linearStrategy {
	s := &linearStrategy{
		category: c,
		names:    make([]string, 0, len(def.units)),
		factors:  make(map[string]float64, len(def.units)),
	}
	for _, u := range def.units {
		s.names = append(s.names, u.name)
		s.factors[u.name] = u.factor
	}
	return s
}

func (s *linearStrategy) Kind() Kind { return KindLinear }

func (s *linearStrategy) Units() []string {
	return append([]string(nil), s.names...)
}

func (s *linearStrategy) Has(unit string) bool {
	_, ok := s.factors[unit]
	return ok
}

// Factor returns the number of base units in one unit.
func (s *linearStrategy) Factor(unit string) (float64, bool) {
	f, ok := s.factors[unit]
	return f, ok
}

func (s *linearStrategy) Convert(value float64, from, to string) (float64, error) {
	ff, ok := s.factors[from]
	if !ok {
		return 0, &UnitError{Category: s.category, Unit: from}
	}
	tf, ok := s.factors[to]
	if !ok {
		return 0, &UnitError{Category: s.category, Unit: to}
	}
	// Same-unit conversion must return the input bit for bit.
	if from == to {
		return value, nil
	}
	return value * ff / tf, nil
}

// -----------------------------------------------------------------------------
// affine
// -----------------------------------------------------------------------------

// affineUnit maps a unit to and from the pivot unit (Celsius).
// Keeping the arithmetic in these exact forms makes every pair reduce to
// the textbook formula, e.g. F->K is (v-32)*5/9 + 273.15.
type affineUnit struct {
	toPivot   func(v float64) float64
	fromPivot func(v float64) float64
}

type affineStrategy struct {
	category Category
	names    []string
	units    map[string]affineUnit
}

func newTemperature() *affineStrategy {
	return &affineStrategy{
		category: Temperature,
		names:    []string{Celsius, Fahrenheit, Kelvin},
		units: map[string]affineUnit{
			Celsius: {
				toPivot:   func(v float64) float64 { return v },
				fromPivot: func(v float64) float64 { return v },
			},
			Fahrenheit: {
				toPivot:   func(v float64) float64 { return (v - 32) * 5 / 9 },
				fromPivot: func(v float64) float64 { return v*9/5 + 32 },
			},
			Kelvin: {
				toPivot:   func(v float64) float64 { return v - 273.15 },
				fromPivot: func(v float64) float64 { return v + 273.15 },
			},
		},
	}
}

func (s *affineStrategy) Kind() Kind { return KindAffine }

func (s *affineStrategy) Units() []string {
	return append([]string(nil), s.names...)
}

func (s *affineStrategy) Has(unit string) bool {
	_, ok := s.units[unit]
	return ok
}

func (s *affineStrategy) Convert(value float64, from, to string) (float64, error) {
	fu, ok := s.units[from]
	if !ok {
		return 0, &UnitError{Category: s.category, Unit: from}
	}
	tu, ok := s.units[to]
	if !ok {
		return 0, &UnitError{Category: s.category, Unit: to}
	}
	if from == to {
		return value, nil
	}
	return tu.fromPivot(fu.toPivot(value)), nil
}
