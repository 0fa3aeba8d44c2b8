// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// convert_cmd.go - The convert command.
//
// Command: convert <value> <from> [to] <to>
// Aliases: conv, c, or a bare number ("unitconv 5 km mi")
//
// Flags:
//
//	--category, -c NAME   Category to convert in (inferred if omitted)
//	--json                Output in JSON format
//
// Examples:
//
//	unitconv convert 100 C F
//	unitconv convert 1 square miles to km2
//	unitconv convert -40 celsius fahrenheit --json
package cli

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/jeranaias/unitconv/internal/convert"
	"github.com/jeranaias/unitconv/internal/session"
)

const convertUsage = "unitconv convert 5 km mi"

// HandleConvert handles the "convert" command.
func HandleConvert(args Args) error {
	p := NewArgParser(args.Raw)

	env, err := newEnv(args)
	if err != nil {
		return err
	}

	req, err := parseConversion(env.st.Engine(), p.PositionalFrom(0), p.Flag("category", "c"), env.cfg.DefaultCategory())
	if err != nil {
		return err
	}

	entry, err := env.st.Convert(req)
	if err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("convert", ConvertData{
			Category:  entry.Category.String(),
			Value:     entry.Value,
			FromUnit:  entry.FromUnit,
			ToUnit:    entry.ToUnit,
			Result:    entry.Result,
			Formatted: env.format(entry.Result),
		}).Print()
	}

	fmt.Fprintf(stdout, "%s %s = %s %s\n",
		env.format(entry.Value), entry.FromUnit,
		RenderConditional(ResultStyle, env.format(entry.Result)), entry.ToUnit)
	return nil
}

// parseConversion turns "<value> <from> [to] <to>" into a request.
//
// Unit names may span several words when separated by "to". With a category
// the units are resolved in it; otherwise every category where both units
// resolve is a candidate and preferred wins ties, then display order.
func parseConversion(engine *convert.Engine, tokens []string, category string, preferred convert.Category) (session.Request, error) {
	if len(tokens) < 3 {
		return session.Request{}, ErrMissingArgument("conversion", convertUsage)
	}

	value, err := parseValue(tokens[0])
	if err != nil {
		return session.Request{}, err
	}

	from, to, err := splitUnits(tokens[1:])
	if err != nil {
		return session.Request{}, err
	}

	if category != "" {
		cat, err := convert.ParseCategory(category)
		if err != nil {
			return session.Request{}, err
		}
		return resolveIn(engine, cat, value, from, to)
	}

	var candidates []convert.Category
	for _, cat := range convert.Categories() {
		if _, err := resolveIn(engine, cat, value, from, to); err == nil {
			candidates = append(candidates, cat)
		}
	}

	switch {
	case len(candidates) == 0:
		// Report against the preferred category so suggestions make sense.
		return resolveIn(engine, preferred, value, from, to)
	case slices.Contains(candidates, preferred):
		return resolveIn(engine, preferred, value, from, to)
	default:
		return resolveIn(engine, candidates[0], value, from, to)
	}
}

// parseValue parses a finite number.
func parseValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, "_", ""), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, NewValidationErrorWithExample("value", s, "must be a finite number", convertUsage)
	}
	return v, nil
}

// splitUnits splits the unit words at "to", or takes exactly two words.
func splitUnits(words []string) (from, to string, err error) {
	for i, w := range words {
		if strings.EqualFold(w, "to") && i > 0 && i < len(words)-1 {
			return strings.Join(words[:i], " "), strings.Join(words[i+1:], " "), nil
		}
	}
	if len(words) == 2 {
		return words[0], words[1], nil
	}
	return "", "", NewValidationErrorWithExample("units", strings.Join(words, " "),
		`use "<from> to <to>" for unit names with spaces`, "unitconv convert 1 square miles to km2")
}

// resolveIn resolves both units in cat.
func resolveIn(engine *convert.Engine, cat convert.Category, value float64, from, to string) (session.Request, error) {
	fromUnit, err := engine.ResolveUnit(cat, from)
	if err != nil {
		return session.Request{}, err
	}
	toUnit, err := engine.ResolveUnit(cat, to)
	if err != nil {
		return session.Request{}, err
	}
	return session.Request{Category: cat, Value: value, From: fromUnit, To: toUnit}, nil
}
