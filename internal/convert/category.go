// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

import (
	"strconv"
	"strings"
)

// =============================================================================
// CATEGORY
// =============================================================================

// Category is a measurement category. The zero value is Length.
type Category int

const (
	Length Category = iota
	Weight
	Temperature
	Volume
	Area
	Time
	Speed
	Pressure
	Energy
	Data

	numCategories
)

var categoryNames = [numCategories]string{
	Length:      "Length",
	Weight:      "Weight",
	Temperature: "Temperature",
	Volume:      "Volume",
	Area:        "Area",
	Time:        "Time",
	Speed:       "Speed",
	Pressure:    "Pressure",
	Energy:      "Energy",
	Data:        "Data",
}

// String returns the display name of the category.
func (c Category) String() string {
	if !c.Valid() {
		return "Category(" + strconv.Itoa(int(c)) + ")"
	}
	return categoryNames[c]
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c >= 0 && c < numCategories
}

// Categories returns all categories in display order.
func Categories() []Category {
	out := make([]Category, 0, numCategories)
	for c := Category(0); c < numCategories; c++ {
		out = append(out, c)
	}
	return out
}

// ParseCategory parses a category name case-insensitively.
// "data size" and "mass" are accepted as aliases for Data and Weight.
func ParseCategory(name string) (Category, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for c, n := range categoryNames {
		if strings.ToLower(n) == key {
			return Category(c), nil
		}
	}
	switch key {
	case "data size", "datasize", "storage":
		return Data, nil
	case "mass":
		return Weight, nil
	case "temp":
		return Temperature, nil
	case "duration":
		return Time, nil
	}
	return 0, &CategoryError{Name: name}
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, &CategoryError{Name: c.String()}
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
