// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// settings_cmd.go - The settings command.
//
// Subcommands:
//
//	settings show              Show theme, decimal places and favorites
//	settings export [file|-]   Write the settings document (stdout by default)
//	settings import <file>     Load a settings document and keep it
//	settings reset             Forget the saved state
//
// Files ending in .msgpack use the MessagePack snapshot codec, everything
// else is JSON.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/jeranaias/unitconv/internal/settings"
)

// HandleSettings handles the "settings" command.
func HandleSettings(args Args) error {
	p := NewArgParser(args.Raw)

	switch strings.ToLower(p.Subcommand()) {
	case "", "show":
		return settingsShow(args)
	case "export", "save":
		return settingsExport(args, p.Positional(1))
	case "import", "load":
		return settingsImport(args, p.Positional(1))
	case "reset":
		return settingsReset(args)
	default:
		return NewValidationErrorWithExample("settings subcommand", p.Subcommand(),
			"must be show, export, import or reset", "unitconv settings export settings.json")
	}
}

func settingsShow(args Args) error {
	env, err := newEnv(args)
	if err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("settings", settings.Export(env.st)).Print()
	}

	fmt.Fprintf(stdout, "%s %s\n", RenderLabel("Theme", 16), env.st.Theme())
	fmt.Fprintf(stdout, "%s %d\n", RenderLabel("Decimal places", 16), env.st.DecimalPlaces())
	favs := env.st.Favorites()
	fmt.Fprintf(stdout, "%s %d\n", RenderLabel("Favorites", 16), len(favs))
	for i, f := range favs {
		fmt.Fprintf(stdout, "  %2d. %s %s = %s %s %s\n", i+1,
			env.format(f.Value), f.FromUnit, env.format(f.Result), f.ToUnit,
			RenderConditional(DimStyle, "("+f.Category.String()+")"))
	}
	return nil
}

func settingsExport(args Args, path string) error {
	env, err := newEnv(args)
	if err != nil {
		return err
	}

	if path == "" || path == "-" {
		data, err := settings.Marshal(settings.Export(env.st))
		if err != nil {
			return err
		}
		fmt.Fprint(stdout, highlight(string(data), "json"))
		return nil
	}

	if err := settings.SaveFile(path, env.st); err != nil {
		return NewCommandError("settings", "export", "could not write "+path, err)
	}

	if args.JSON {
		return NewJSONResponse("settings export", FileData{Path: path, Entries: len(env.st.Favorites())}).Print()
	}
	fmt.Fprintf(stdout, "%s Settings written to %s\n", RenderConditional(SuccessStyle, "[OK]"), path)
	return nil
}

func settingsImport(args Args, path string) error {
	if path == "" {
		return ErrMissingArgument("file", "unitconv settings import settings.json")
	}

	env, err := newEnv(args)
	if err != nil {
		return err
	}

	applied, err := settings.LoadFile(path, env.st)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewNotFoundError("settings file", path)
		}
		return err
	}

	if err := env.persist(); err != nil {
		return NewCommandError("settings", "import", "could not save state", err)
	}
	log.Printf("SETTINGS_IMPORT | path=%s applied=%q", path, applied.String())

	if args.JSON {
		return NewJSONResponse("settings import", SettingsImportData{
			Path:          path,
			Theme:         applied.Theme,
			Favorites:     applied.Favorites,
			FavoriteCount: applied.FavoriteCount,
			DecimalPlaces: applied.DecimalPlaces,
		}).Print()
	}
	fmt.Fprintf(stdout, "%s Imported %s from %s\n", RenderConditional(SuccessStyle, "[OK]"), applied, path)
	return nil
}

func settingsReset(args Args) error {
	env, err := newEnv(args)
	if err != nil {
		return err
	}

	if env.statePath != "" {
		if err := os.Remove(env.statePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return NewCommandError("settings", "reset", "could not remove "+env.statePath, err)
		}
	}
	log.Printf("SETTINGS_RESET | path=%s", env.statePath)

	if args.JSON {
		return NewJSONResponse("settings reset", FileData{Path: env.statePath}).Print()
	}
	fmt.Fprintf(stdout, "%s Saved state cleared\n", RenderConditional(SuccessStyle, "[OK]"))
	return nil
}
