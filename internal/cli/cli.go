// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for unitconv.
package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Output streams. Tests swap these for buffers.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdConvert
	CmdUnits
	CmdCategories
	CmdExplain
	CmdRepl
	CmdSettings
	CmdHistory
	CmdConfig
	CmdVersion
	CmdHelp
	CmdUnknown
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Verbose bool
	JSON    bool   // Output in JSON format
	NoColor bool   // Disable ANSI colours
	Theme   string // Overrides ui.theme for this run

	// Decimals overrides ui.decimal_places when DecimalsSet is true
	Decimals    int
	DecimalsSet bool

	// Command-specific
	Subcommand string
	Name       string // original command word, kept for CmdUnknown

	// Raw args (remaining after flag parsing)
	Raw []string

	// Errors collected while parsing global flags
	FlagErrors []error
}

const usageText = `unitconv - unit conversion calculator

Converts between units of ten categories: Length, Weight, Volume,
Temperature, Area, Time, Speed, Pressure, Energy and Data.

Usage:
  unitconv                              Start the TUI (default)
  unitconv convert <value> <from> <to>  Convert a value
  unitconv convert 5 km to mi           "to" is optional
  unitconv units [category]             List units
  unitconv categories                   List categories
  unitconv explain <category>           Show how a category converts
  unitconv repl                         Interactive prompt with history
  unitconv settings export [file]       Print or save theme/favorites/decimals
  unitconv settings import <file>       Load a settings file (.json or .msgpack)
  unitconv history export <file>        Save a converted batch as json/md/html
  unitconv config [show|get|set|path|reset]
  unitconv version
  unitconv help

Convert Flags:
  --category, -c NAME     Category to convert in (inferred from the units if omitted)

Global Flags:
  --json                  Output in JSON format
  --decimals N            Significant digits to display (0-10)
  --theme light|dark      Theme for this run
  --no-color              Disable colours
  --verbose               Log to stderr

Examples:
  unitconv convert 100 C F
  unitconv convert 1 "US Gallons" to liters --category volume
  unitconv convert -40 celsius fahrenheit --json
  unitconv units "data size"
  unitconv explain temperature
  unitconv settings export - | jq .favorites
  unitconv history export report.html 1 km m, 100 C F

Environment:
  UNITCONV_THEME, UNITCONV_DECIMALS, UNITCONV_CATEGORY, UNITCONV_LOCALE
  UNITCONV_LOG            Write logs to this file

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Fprintf(stdout, usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Fprintf(stdout, "unitconv version %s\n", Version)
	fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(stdout, "  Build date: %s\n", BuildDate)
}

// Parse parses os.Args and returns the command and args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses command-line arguments (without the program name).
func ParseArgs(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining
	parsedArgs.Name = cmd
	if len(remaining) > 0 {
		parsedArgs.Subcommand = strings.ToLower(remaining[0])
	}

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs
	case "convert", "c", "conv":
		return CmdConvert, parsedArgs
	case "units", "u":
		return CmdUnits, parsedArgs
	case "categories", "cats":
		return CmdCategories, parsedArgs
	case "explain", "formula":
		return CmdExplain, parsedArgs
	case "repl", "shell":
		return CmdRepl, parsedArgs
	case "settings":
		return CmdSettings, parsedArgs
	case "history":
		return CmdHistory, parsedArgs
	case "config":
		return CmdConfig, parsedArgs
	case "version", "-v", "--version":
		return CmdVersion, parsedArgs
	case "help", "-h", "--help":
		return CmdHelp, parsedArgs
	default:
		// "unitconv 5 km mi" is shorthand for convert.
		if _, err := strconv.ParseFloat(cmd, 64); err == nil {
			parsedArgs.Raw = append([]string{cmd}, remaining...)
			parsedArgs.Subcommand = ""
			return CmdConvert, parsedArgs
		}
		return CmdUnknown, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	i := 0
	for i < len(args) {
		arg := args[i]
		name, value, hasValue := strings.Cut(arg, "=")

		switch name {
		case "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--no-color":
			parsedArgs.NoColor = true
		case "--theme":
			if !hasValue && i+1 < len(args) {
				i++
				value = args[i]
			}
			parsedArgs.Theme = value
		case "--decimals", "--digits":
			if !hasValue && i+1 < len(args) {
				i++
				value = args[i]
			}
			n, err := strconv.Atoi(value)
			if err != nil {
				parsedArgs.FlagErrors = append(parsedArgs.FlagErrors,
					NewValidationErrorWithExample("decimals", value, "must be an integer", "--decimals 4"))
			} else {
				parsedArgs.Decimals = n
				parsedArgs.DecimalsSet = true
			}
		default:
			remaining = append(remaining, arg)
		}
		i++
	}

	return remaining, parsedArgs
}

// =============================================================================
// COMMAND HANDLERS
// =============================================================================

// Run executes a non-TUI command.
func Run(cmd Command, args Args) error {
	if len(args.FlagErrors) > 0 {
		return args.FlagErrors[0]
	}
	if args.NoColor {
		ForceColorsEnabled(false)
	}

	switch cmd {
	case CmdConvert:
		return HandleConvert(args)
	case CmdUnits:
		return HandleUnits(args)
	case CmdCategories:
		return HandleCategories(args)
	case CmdExplain:
		return HandleExplain(args)
	case CmdRepl:
		return HandleRepl(args)
	case CmdSettings:
		return HandleSettings(args)
	case CmdHistory:
		return HandleHistory(args)
	case CmdConfig:
		return HandleConfig(args)
	case CmdVersion:
		return HandleVersionWithJSON(args)
	case CmdHelp:
		HandleHelp()
		return nil
	case CmdUnknown:
		return unknownCommand(args.Name)
	}
	return NewCommandError("unitconv", "dispatch", "no handler for command", nil)
}

// Main runs a non-TUI command and exits with its exit code on failure.
func Main(cmd Command, args Args) {
	if err := Run(cmd, args); err != nil {
		HandleErrorAndExit(err, args.JSON)
	}
}

// unknownCommand builds the error for an unrecognised command word.
func unknownCommand(name string) error {
	reason := "unknown command"
	if s := SuggestCommand(name); s != "" {
		reason = fmt.Sprintf("unknown command, did you mean %q?", s)
	}
	return NewValidationErrorWithExample("command", name, reason, "unitconv help")
}

// HandleVersionWithJSON handles the "version" command with JSON output support.
func HandleVersionWithJSON(args Args) error {
	if args.JSON {
		data := VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}
		return NewJSONResponse("version", data).Print()
	}
	PrintVersion()
	return nil
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}
