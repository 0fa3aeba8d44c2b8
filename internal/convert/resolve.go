// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/unitconv/internal/util"
)

// =============================================================================
// UNIT NAME RESOLUTION
// =============================================================================

// maxSuggestions caps the "did you mean" list on a failed lookup.
const maxSuggestions = 3

// aliasIndex resolves free-form unit input to canonical names.
type aliasIndex struct {
	names []string
	// exact holds canonical names and case-sensitive aliases.
	exact map[string]string
	// folded maps a normalised key to every unit it could mean.
	folded map[string][]string
}

func newAliasIndex(units []unitDef) *aliasIndex {
	idx := &aliasIndex{
		exact:  make(map[string]string),
		folded: make(map[string][]string),
	}
	for _, u := range units {
		idx.add(u.name, u.aliases)
	}
	return idx
}

func newTemperatureAliasIndex() *aliasIndex {
	idx := &aliasIndex{
		exact:  make(map[string]string),
		folded: make(map[string][]string),
	}
	for _, name := range []string{Celsius, Fahrenheit, Kelvin} {
		idx.add(name, temperatureAliases[name])
	}
	return idx
}

func (idx *aliasIndex) add(name string, aliases []string) {
	idx.names = append(idx.names, name)
	idx.exact[name] = name
	idx.addFolded(foldKey(name), name)
	for _, a := range aliases {
		if _, taken := idx.exact[a]; !taken {
			idx.exact[a] = name
		}
		idx.addFolded(foldKey(a), name)
	}
}

func (idx *aliasIndex) addFolded(key, name string) {
	for _, existing := range idx.folded[key] {
		if existing == name {
			return
		}
	}
	idx.folded[key] = append(idx.folded[key], name)
}

// foldKey normalises input for comparison: NFKC (so "℃" becomes "°C" and
// "m²" becomes "m2"), full case folding, and collapsed whitespace.
func foldKey(s string) string {
	s = norm.NFKC.String(s)
	s = cases.Fold().String(s)
	return strings.Join(strings.Fields(s), " ")
}

// ResolveUnit maps user input to a canonical unit name of category c.
//
// Lookup order: canonical name, case-sensitive alias ("B" is bytes, "b" is
// bits), then the normalised key. A key that could mean more than one unit
// is reported as invalid with the candidates as suggestions.
func (e *Engine) ResolveUnit(c Category, input string) (string, error) {
	if !c.Valid() {
		return "", &CategoryError{Name: c.String()}
	}
	idx := e.aliases[c]

	trimmed := strings.TrimSpace(input)
	if name, ok := idx.exact[trimmed]; ok {
		return name, nil
	}

	key := foldKey(trimmed)
	switch candidates := idx.folded[key]; len(candidates) {
	case 0:
	case 1:
		return candidates[0], nil
	default:
		return "", &UnitError{Category: c, Unit: input, Suggestions: append([]string(nil), candidates...)}
	}

	// Plural forms of aliases are the common near miss.
	if trimmedKey := strings.TrimSuffix(key, "s"); len(key) >= 3 && trimmedKey != key {
		if candidates := idx.folded[trimmedKey]; len(candidates) == 1 {
			return candidates[0], nil
		}
	}

	return "", &UnitError{Category: c, Unit: input, Suggestions: idx.suggest(trimmed)}
}

// suggest returns up to maxSuggestions canonical names close to input.
// Subsequence matches rank first, then names within edit distance 3.
func (idx *aliasIndex) suggest(input string) []string {
	if input == "" {
		return nil
	}

	var out []string
	seen := make(map[string]bool)
	for _, m := range util.FuzzyFilter(input, idx.names) {
		if len(out) == maxSuggestions {
			return out
		}
		out = append(out, m.Target)
		seen[m.Target] = true
	}

	type near struct {
		name string
		dist int
	}
	var nearby []near
	for _, name := range idx.names {
		if seen[name] {
			continue
		}
		if d := util.EditDistance(input, name); d <= 3 {
			nearby = append(nearby, near{name, d})
		}
	}
	sort.SliceStable(nearby, func(i, j int) bool { return nearby[i].dist < nearby[j].dist })
	for _, n := range nearby {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, n.name)
	}
	return out
}

// ResolveUnit resolves a unit name using the default engine.
func ResolveUnit(c Category, input string) (string, error) {
	return Default().ResolveUnit(c, input)
}
