// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// units_cmd.go - The units and categories commands.
//
// Commands:
//
//	units [category]   List the units of one category, or of all of them
//	categories         List the categories with their base units
//
// The base unit is marked with "*", the default pair with "<" (from) and
// ">" (to).
package cli

import (
	"fmt"
	"strings"

	"github.com/jeranaias/unitconv/internal/convert"
)

// HandleUnits handles the "units" command.
func HandleUnits(args Args) error {
	p := NewArgParser(args.Raw)
	engine := convert.Default()

	cats := convert.Categories()
	if name := JoinPositionalArgs(p, 0); name != "" {
		cat, err := convert.ParseCategory(name)
		if err != nil {
			return err
		}
		cats = []convert.Category{cat}
	}

	data := make([]UnitsData, 0, len(cats))
	for _, cat := range cats {
		data = append(data, unitsData(engine, cat))
	}

	if args.JSON {
		if len(data) == 1 {
			return NewJSONResponse("units", data[0]).Print()
		}
		return NewJSONResponse("units", data).Print()
	}

	for i, d := range data {
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		printUnits(engine, d)
	}
	return nil
}

// unitsData collects the listing of one category.
func unitsData(engine *convert.Engine, cat convert.Category) UnitsData {
	d := UnitsData{
		Category: cat.String(),
		BaseUnit: engine.BaseUnit(cat),
		Units:    engine.Units(cat),
	}
	if s, err := engine.Strategy(cat); err == nil {
		d.Strategy = s.Kind().String()
	}
	pair := engine.DefaultPair(cat)
	d.Default = [2]string{pair.From, pair.To}
	return d
}

func printUnits(engine *convert.Engine, d UnitsData) {
	cat, _ := convert.ParseCategory(d.Category)

	fmt.Fprintf(stdout, "%s %s\n", RenderConditional(TitleStyle, d.Category),
		RenderConditional(DimStyle, "("+d.Strategy+")"))
	fmt.Fprintln(stdout, RenderSeparator(len(d.Category)+len(d.Strategy)+3))

	for _, unit := range d.Units {
		var marks []string
		if unit == d.Default[0] {
			marks = append(marks, "<")
		}
		if unit == d.Default[1] {
			marks = append(marks, ">")
		}
		if f, ok := engine.Factor(cat, unit); ok && f == 1 {
			marks = append(marks, "*")
		}
		fmt.Fprintf(stdout, "  %s %s\n", RenderLabel(unit, 20), RenderConditional(DimStyle, strings.Join(marks, " ")))
	}
}

// categoryRow is one line of the categories listing.
type categoryRow struct {
	Name     string `json:"name"`
	Strategy string `json:"strategy"`
	BaseUnit string `json:"base_unit"`
	Units    int    `json:"units"`
}

// HandleCategories handles the "categories" command.
func HandleCategories(args Args) error {
	engine := convert.Default()

	rows := make([]categoryRow, 0, len(convert.Categories()))
	for _, cat := range convert.Categories() {
		d := unitsData(engine, cat)
		rows = append(rows, categoryRow{
			Name:     d.Category,
			Strategy: d.Strategy,
			BaseUnit: d.BaseUnit,
			Units:    len(d.Units),
		})
	}

	if args.JSON {
		return NewJSONResponse("categories", rows).Print()
	}

	for _, r := range rows {
		fmt.Fprintf(stdout, "%s %2d units  %s\n",
			RenderLabel(r.Name, 12), r.Units, RenderConditional(DimStyle, "base: "+r.BaseUnit))
	}
	return nil
}
