// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-interactive
// commands of unitconv.
//
// # Key Types
//
//   - Command: Enumeration of the CLI commands
//   - Args: Parsed global flags plus the raw command arguments
//   - ArgParser: Per-command flag and positional parsing
//   - JSONResponse: The envelope every --json command prints
//
// # Usage
//
//	cmd, args := cli.Parse()
//	if cmd == cli.CmdTUI {
//	    // start the Bubble Tea program
//	}
//	cli.Main(cmd, args)
//
// # Commands
//
//   - convert: One conversion, category inferred from the units
//   - units, categories: List what can be converted
//   - explain: Base unit and factors, or the temperature formulas
//   - repl: Line-edited prompt with favorites and history
//   - settings: Show, export, import or reset theme, favorites and decimals
//   - history: Run a batch and export it as JSON, Markdown or HTML
//   - config: Show and edit ~/.unitconv/config.toml
//
// # Exit Codes
//
// Errors are mapped to exit codes by GetExitCode: 2 for usage errors, 3 for
// configuration errors, 4 for unknown units or categories, 5 for malformed
// settings files and 7 for missing files or keys.
package cli
