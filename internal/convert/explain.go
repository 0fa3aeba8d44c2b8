// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

import (
	"fmt"
	"strconv"
	"strings"
)

// Explain returns a markdown description of how category c converts:
// the base unit and a table of per-unit factors for linear categories,
// the six formulas for temperature.
func (e *Engine) Explain(c Category) (string, error) {
	s, err := e.Strategy(c)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", c)

	if s.Kind() == KindAffine {
		sb.WriteString("Temperature scales have different zero points, so each pair uses its own formula:\n\n")
		sb.WriteString("| From | To | Formula |\n|---|---|---|\n")
		sb.WriteString("| Celsius | Fahrenheit | °F = (°C × 9/5) + 32 |\n")
		sb.WriteString("| Celsius | Kelvin | K = °C + 273.15 |\n")
		sb.WriteString("| Fahrenheit | Celsius | °C = (°F − 32) × 5/9 |\n")
		sb.WriteString("| Fahrenheit | Kelvin | K = (°F − 32) × 5/9 + 273.15 |\n")
		sb.WriteString("| Kelvin | Celsius | °C = K − 273.15 |\n")
		sb.WriteString("| Kelvin | Fahrenheit | °F = (K − 273.15) × 9/5 + 32 |\n")
		return sb.String(), nil
	}

	base := e.BaseUnit(c)
	fmt.Fprintf(&sb, "%s conversion is based on the **%s** as the base unit.\n\n", c, base)
	sb.WriteString("`result = value × factor(from) ÷ factor(to)`\n\n")
	fmt.Fprintf(&sb, "| Unit | 1 unit = N × %s | 1 %s = N units |\n|---|---:|---:|\n", base, base)
	for _, name := range s.Units() {
		f, _ := e.Factor(c, name)
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", name, shortFloat(f), shortFloat(1/f))
	}
	return sb.String(), nil
}

// shortFloat renders v with six significant digits.
func shortFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// Explain returns the explanation of category c from the default engine.
func Explain(c Category) (string, error) {
	return Default().Explain(c)
}
