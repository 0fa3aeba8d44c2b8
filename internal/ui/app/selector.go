// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/jeranaias/unitconv/internal/util"
)

// unitSelector picks one unit of a category. Left and right cycle through
// the units; typed characters build a filter and jump to the best fuzzy match.
type unitSelector struct {
	units  []string
	index  int
	filter string
}

func newUnitSelector(units []string, selected string) *unitSelector {
	s := &unitSelector{units: units}
	s.Select(selected)
	return s
}

// Selected returns the current unit, or "" when there are none.
func (s *unitSelector) Selected() string {
	if len(s.units) == 0 {
		return ""
	}
	return s.units[s.index]
}

// Select makes unit current and reports whether it exists.
func (s *unitSelector) Select(unit string) bool {
	for i, u := range s.units {
		if u == unit {
			s.index = i
			return true
		}
	}
	return false
}

// Next moves to the next unit, wrapping around.
func (s *unitSelector) Next() {
	s.filter = ""
	if n := len(s.units); n > 0 {
		s.index = (s.index + 1) % n
	}
}

// Prev moves to the previous unit, wrapping around.
func (s *unitSelector) Prev() {
	s.filter = ""
	if n := len(s.units); n > 0 {
		s.index = (s.index - 1 + n) % n
	}
}

// Type appends r to the filter. It reports false, leaving the filter
// unchanged, when nothing would match.
func (s *unitSelector) Type(r rune) bool {
	return s.applyFilter(s.filter + string(r))
}

// Backspace removes the last filter rune.
func (s *unitSelector) Backspace() {
	if s.filter == "" {
		return
	}
	runes := []rune(s.filter)
	s.applyFilter(string(runes[:len(runes)-1]))
}

// Filter returns the typed filter text.
func (s *unitSelector) Filter() string {
	return s.filter
}

// ClearFilter forgets the typed filter and keeps the selection.
func (s *unitSelector) ClearFilter() {
	s.filter = ""
}

func (s *unitSelector) applyFilter(filter string) bool {
	if strings.TrimSpace(filter) == "" {
		s.filter = filter
		return true
	}
	matches := util.FuzzyFilter(filter, s.units)
	if len(matches) == 0 {
		return false
	}
	s.filter = filter
	s.index = matches[0].Index
	return true
}
