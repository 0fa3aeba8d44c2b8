// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

import "sync"

// =============================================================================
// ENGINE
// =============================================================================

// Engine maps each category to its conversion strategy.
// An Engine is immutable after construction.
type Engine struct {
	strategies [numCategories]Strategy
	defaults   [numCategories]Pair
	bases      [numCategories]string
	aliases    [numCategories]*aliasIndex
}

// Pair is a (from, to) unit selection.
type Pair struct {
	From string
	To   string
}

// New builds an engine from the built-in unit tables.
func New() *Engine {
	e := &Engine{}
	for c, def := range linearTables {
		e.strategies[c] = newLinear(c, def)
		e.defaults[c] = Pair{From: def.units[0].name, To: def.units[def.defaultTo].name}
		e.bases[c] = def.base
		e.aliases[c] = newAliasIndex(def.units)
	}

	temp := newTemperature()
	e.strategies[Temperature] = temp
	e.defaults[Temperature] = Pair{From: Celsius, To: Fahrenheit}
	e.bases[Temperature] = "degree Celsius"
	e.aliases[Temperature] = newTemperatureAliasIndex()

	return e
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// Default returns the shared engine built from the built-in tables.
func Default() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = New()
	})
	return defaultEngine
}

// Strategy returns the strategy serving category c.
func (e *Engine) Strategy(c Category) (Strategy, error) {
	if !c.Valid() {
		return nil, &CategoryError{Name: c.String()}
	}
	return e.strategies[c], nil
}

// Convert converts value from one unit to another within category c.
func (e *Engine) Convert(c Category, value float64, from, to string) (float64, error) {
	s, err := e.Strategy(c)
	if err != nil {
		return 0, err
	}
	return s.Convert(value, from, to)
}

// Units returns the unit names of category c in display order.
// An invalid category yields nil.
func (e *Engine) Units(c Category) []string {
	s, err := e.Strategy(c)
	if err != nil {
		return nil
	}
	return s.Units()
}

// Has reports whether unit is a canonical unit of category c.
func (e *Engine) Has(c Category, unit string) bool {
	s, err := e.Strategy(c)
	if err != nil {
		return false
	}
	return s.Has(unit)
}

// DefaultPair returns the units preselected when category c is opened.
func (e *Engine) DefaultPair(c Category) Pair {
	if !c.Valid() {
		return Pair{}
	}
	return e.defaults[c]
}

// DefaultValue returns the value preselected when category c is opened.
func (e *Engine) DefaultValue(c Category) float64 {
	if c == Temperature {
		return 0
	}
	return 1
}

// BaseUnit returns the name of the unit all factors of c are expressed in.
func (e *Engine) BaseUnit(c Category) string {
	if !c.Valid() {
		return ""
	}
	return e.bases[c]
}

// Factor returns the number of base units in one unit of a linear category.
// ok is false for temperature and for unknown units.
func (e *Engine) Factor(c Category, unit string) (factor float64, ok bool) {
	s, err := e.Strategy(c)
	if err != nil {
		return 0, false
	}
	lin, isLinear := s.(*linearStrategy)
	if !isLinear {
		return 0, false
	}
	return lin.Factor(unit)
}

// =============================================================================
// PACKAGE-LEVEL HELPERS
// =============================================================================

// Convert converts value using the default engine.
func Convert(c Category, value float64, from, to string) (float64, error) {
	return Default().Convert(c, value, from, to)
}

// Units returns the unit names of category c using the default engine.
func Units(c Category) []string {
	return Default().Units(c)
}
