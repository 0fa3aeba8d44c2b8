// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package convert provides the unit conversion engine for unitconv.
//
// Every category is served by one Strategy. Nine categories use a linear
// factor table where each unit is expressed in the category's base unit;
// temperature uses an affine strategy with explicit offsets. Tables are
// built once and never mutated, so an Engine is safe for concurrent use.
//
// # Key Types
//
//   - Category: enumerated measurement category (Length, Weight, ...)
//   - Strategy: per-category conversion behaviour (linear or affine)
//   - Engine: immutable category -> strategy registry
//   - UnitError / CategoryError: typed errors matching ErrInvalidUnit and
//     ErrInvalidCategory via errors.Is
//
// # Usage
//
//	v, err := convert.Convert(convert.Length, 1, "Kilometers", "Meters")
//	if errors.Is(err, convert.ErrInvalidUnit) {
//	    // unknown unit for the category
//	}
//
// Free-form unit input ("km", "°F", "square feet") is resolved with
// ResolveUnit before converting.
package convert
