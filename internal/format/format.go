// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package format renders conversion values for display.
//
// Values are shown with a fixed number of significant digits (printf %g
// semantics), 8 by default. Grouped output inserts locale digit separators
// for large magnitudes.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	// DefaultDigits is the number of significant digits shown by default.
	DefaultDigits = 8
	// MinDigits and MaxDigits bound the user-selectable precision.
	MinDigits = 0
	MaxDigits = 10
)

// ClampDigits limits digits to [MinDigits, MaxDigits].
func ClampDigits(digits int) int {
	return max(MinDigits, min(MaxDigits, digits))
}

// Result formats v with the given number of significant digits.
// Zero digits is treated as one, as with printf's %.0g.
func Result(v float64, digits int) string {
	digits = ClampDigits(digits)
	if digits == 0 {
		digits = 1
	}
	return strconv.FormatFloat(v, 'g', digits, 64)
}

// Line renders a complete conversion, e.g. "1 Kilometers = 1000 Meters".
func Line(value float64, from string, result float64, to string, digits int) string {
	return fmt.Sprintf("%s %s = %s %s", Result(value, digits), from, Result(result, digits), to)
}

// Grouped formats v like Result but with locale digit grouping for values
// printed without an exponent ("1,234,567.5" in en, "1.234.567,5" in de).
// An empty or unparsable tag falls back to English.
func Grouped(v float64, digits int, tag string) string {
	plain := Result(v, digits)
	if strings.ContainsAny(plain, "eE") || math.IsNaN(v) || math.IsInf(v, 0) {
		return plain
	}

	lang, err := language.Parse(tag)
	if err != nil || tag == "" {
		lang = language.English
	}

	frac := 0
	if i := strings.IndexByte(plain, '.'); i >= 0 {
		frac = len(plain) - i - 1
	}
	p := message.NewPrinter(lang)
	return p.Sprint(number.Decimal(v, number.Scale(frac)))
}
