// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is matching.
var (
	ErrInvalidUnit     = errors.New("invalid unit")
	ErrInvalidCategory = errors.New("invalid category")
)

// UnitError is returned when a unit does not belong to the requested category.
type UnitError struct {
	Category    Category
	Unit        string
	Suggestions []string // closest known units, best first
}

func (e *UnitError) Error() string {
	msg := fmt.Sprintf("invalid unit %q for %s", e.Unit, e.Category)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// Is reports whether target is ErrInvalidUnit.
func (e *UnitError) Is(target error) bool {
	return target == ErrInvalidUnit
}

// CategoryError is returned for an unrecognised category tag.
type CategoryError struct {
	Name string
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("invalid category %q", e.Name)
}

// Is reports whether target is ErrInvalidCategory.
func (e *CategoryError) Is(target error) bool {
	return target == ErrInvalidCategory
}
