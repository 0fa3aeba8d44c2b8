// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// suggest.go - Command suggestion for typo correction.
package cli

import (
	"strings"

	"github.com/jeranaias/unitconv/internal/util"
)

// validCommands is the list of all valid unitconv commands and aliases.
var validCommands = []string{
	"tui",
	"convert",
	"units",
	"categories",
	"explain",
	"repl",
	"settings",
	"history",
	"config",
	"version",
	"help",
	// Aliases
	"conv",
	"cats",
	"formula",
	"shell",
}

// SuggestCommand returns a suggested command if the input is close to a valid command.
// Returns empty string if no good match is found.
func SuggestCommand(input string) string {
	input = strings.ToLower(input)

	// Don't suggest for very short inputs (likely intentional)
	if len(input) < 2 {
		return ""
	}

	// Short inputs get 1 edit, medium 2 (catches "hlep"), long 3.
	maxDistance := 1
	if len(input) >= 4 {
		maxDistance = 2
	}
	if len(input) > 8 {
		maxDistance = 3
	}

	bestMatch := ""
	bestDistance := -1
	for _, cmd := range validCommands {
		distance := util.EditDistance(input, cmd)
		if distance == 0 {
			return ""
		}
		if distance <= maxDistance && (bestDistance == -1 || distance < bestDistance) {
			bestDistance = distance
			bestMatch = cmd
		}
	}

	return bestMatch
}
