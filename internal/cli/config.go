// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - The config command.
//
// Subcommands:
//
//	config [show]          Show the effective configuration
//	config get <key>       Print one value (dot notation, e.g. ui.theme)
//	config set <key> <v>   Change one value in the config file
//	config path            Print the config file path
//	config reset           Write the defaults to the config file
//
// "show" and "get" include environment overrides; "set" and "reset" edit
// the file only.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/jeranaias/unitconv/internal/config"
)

// HandleConfig handles the "config" command.
func HandleConfig(args Args) error {
	p := NewArgParser(args.Raw)

	switch strings.ToLower(p.Subcommand()) {
	case "", "show":
		return handleConfigShow(args)
	case "get":
		return handleConfigGet(args, p.Positional(1))
	case "set":
		return handleConfigSet(args, p.Positional(1), JoinPositionalArgs(p, 2))
	case "path":
		return handleConfigPath(args)
	case "reset":
		return handleConfigReset(args)
	default:
		return NewValidationErrorWithExample("config subcommand", p.Subcommand(),
			"must be show, get, set, path or reset", "unitconv config set ui.theme dark")
	}
}

func handleConfigShow(args Args) error {
	cfg := config.Global()
	path, _ := config.ActivePath()

	if args.JSON {
		values := make(map[string]interface{}, len(config.GetAllKeys()))
		for _, key := range config.GetAllKeys() {
			if v, err := cfg.Get(key); err == nil {
				values[key] = v
			}
		}
		return NewJSONResponse("config show", map[string]interface{}{
			"path":   path,
			"values": values,
		}).Print()
	}

	fmt.Fprintln(stdout, RenderConditional(TitleStyle, "unitconv configuration"))
	fmt.Fprintln(stdout, RenderSeparator())

	section := ""
	for _, key := range config.GetAllKeys() {
		v, err := cfg.Get(key)
		if err != nil {
			continue
		}
		if head, _, ok := strings.Cut(key, "."); ok && head != section {
			section = head
			fmt.Fprintln(stdout, RenderConditional(DimStyle, "["+section+"]"))
		}
		fmt.Fprintf(stdout, "  %s %v\n", RenderLabel(key, 22), v)
	}

	fmt.Fprintln(stdout, RenderSeparator())
	fmt.Fprintf(stdout, "Config file: %s\n", path)
	return nil
}

func handleConfigGet(args Args, key string) error {
	if key == "" {
		return ErrMissingArgument("key", "unitconv config get ui.theme")
	}
	v, err := config.Global().Get(key)
	if err != nil {
		return NewNotFoundError("config key", key)
	}

	if args.JSON {
		return NewJSONResponse("config get", ConfigValueData{Key: key, Value: v}).Print()
	}
	fmt.Fprintln(stdout, v)
	return nil
}

// loadConfigFile reads the config file without environment overrides, so
// that saving it back does not persist them.
func loadConfigFile(path string) (*config.Config, error) {
	cfg := config.Default()

	_, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return cfg, nil
	case err != nil:
		return nil, err
	}

	if strings.HasSuffix(path, ".json") {
		err = config.LoadJSON(cfg, path)
	} else {
		err = config.LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Migrate(); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	return cfg, nil
}

func handleConfigSet(args Args, key, value string) error {
	if key == "" {
		return ErrMissingArgument("key", "unitconv config set ui.theme dark")
	}
	if value == "" {
		return ErrMissingArgument("value", "unitconv config set "+key+" <value>")
	}

	path, err := config.ActivePath()
	if err != nil {
		return NewCommandError("config", "set", "no config path", err)
	}
	cfg, err := loadConfigFile(path)
	if err != nil {
		return NewCommandError("config", "set", "could not read "+path, err)
	}

	if _, err := cfg.Get(key); err != nil {
		return NewNotFoundError("config key", key)
	}
	if err := cfg.Set(key, value); err != nil {
		return NewValidationError(key, value, err.Error())
	}
	if err := cfg.Migrate(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := config.EnsureConfigDir(); err != nil {
		return NewCommandError("config", "set", "could not create config directory", err)
	}
	if err := config.SaveToPath(cfg, path); err != nil {
		return NewCommandError("config", "set", "could not write "+path, err)
	}
	log.Printf("CONFIG_SET | path=%s key=%s", path, key)

	if err := config.ReloadGlobal(); err != nil {
		log.Printf("CONFIG_RELOAD_FAILED | error=%v", err)
	}

	saved, _ := cfg.Get(key)
	if args.JSON {
		return NewJSONResponse("config set", ConfigValueData{Key: key, Value: saved}).Print()
	}
	fmt.Fprintf(stdout, "%s %s = %v\n", RenderConditional(SuccessStyle, "[OK]"), key, saved)
	return nil
}

func handleConfigPath(args Args) error {
	path, err := config.ActivePath()
	if err != nil {
		return NewCommandError("config", "path", "no config path", err)
	}
	_, statErr := os.Stat(path)
	exists := statErr == nil

	if args.JSON {
		return NewJSONResponse("config path", map[string]interface{}{
			"path":   path,
			"exists": exists,
		}).Print()
	}

	fmt.Fprintln(stdout, path)
	if !exists {
		fmt.Fprintf(stderr, "%s (file does not exist; defaults are used)\n", RenderConditional(DimStyle, "Note"))
	}
	return nil
}

func handleConfigReset(args Args) error {
	path, err := config.ActivePath()
	if err != nil {
		return NewCommandError("config", "reset", "no config path", err)
	}
	if err := config.EnsureConfigDir(); err != nil {
		return NewCommandError("config", "reset", "could not create config directory", err)
	}
	if err := config.SaveToPath(config.Default(), path); err != nil {
		return NewCommandError("config", "reset", "could not write "+path, err)
	}
	log.Printf("CONFIG_RESET | path=%s", path)

	if err := config.ReloadGlobal(); err != nil {
		log.Printf("CONFIG_RELOAD_FAILED | error=%v", err)
	}

	if args.JSON {
		return NewJSONResponse("config reset", FileData{Path: path}).Print()
	}
	fmt.Fprintf(stdout, "%s Configuration reset to defaults\n", RenderConditional(SuccessStyle, "[OK]"))
	fmt.Fprintf(stdout, "Config file: %s\n", path)
	return nil
}
