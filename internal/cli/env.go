// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// env.go - Per-run session setup shared by the CLI commands and the REPL.
package cli

import (
	"fmt"
	"log"
	"strings"

	"github.com/jeranaias/unitconv/internal/config"
	"github.com/jeranaias/unitconv/internal/format"
	"github.com/jeranaias/unitconv/internal/session"
	"github.com/jeranaias/unitconv/internal/settings"
	"github.com/jeranaias/unitconv/internal/ui/styles"
)

// runEnv is the state one command runs against.
type runEnv struct {
	cfg       *config.Config
	st        *session.State
	statePath string
}

// loadConfig returns the global config with --theme and --decimals applied.
func loadConfig(args Args) (*config.Config, error) {
	cfg := config.Global().Clone()

	if args.Theme != "" {
		theme := strings.ToLower(args.Theme)
		if theme != "light" && theme != "dark" && theme != "auto" {
			return nil, NewValidationErrorWithExample("theme", args.Theme, "must be light, dark or auto", "--theme dark")
		}
		cfg.UI.Theme = theme
	}
	if args.DecimalsSet {
		if args.Decimals < format.MinDigits || args.Decimals > format.MaxDigits {
			return nil, NewValidationErrorWithExample("decimals", fmt.Sprint(args.Decimals),
				fmt.Sprintf("must be %d-%d", format.MinDigits, format.MaxDigits), "--decimals 4")
		}
		cfg.UI.DecimalPlaces = args.Decimals
	}
	return cfg, nil
}

// newEnv builds a session from the config, restores the saved state file
// and re-applies the per-run flags on top of it.
func newEnv(args Args) (*runEnv, error) {
	cfg, err := loadConfig(args)
	if err != nil {
		return nil, err
	}

	env := &runEnv{
		cfg: cfg,
		st:  session.New(cfg.SessionOptions(styles.DetectMode)),
	}

	if path, err := config.StatePath(); err == nil {
		env.statePath = path
		if _, err := settings.Restore(path, env.st); err != nil {
			log.Printf("STATE_RESTORE_FAILED | path=%s error=%v", path, err)
			fmt.Fprintf(stderr, "%s ignoring saved state: %v\n", RenderConditional(WarningStyle, "[WARN]"), err)
		}
	}

	if args.Theme != "" {
		env.st.SetTheme(cfg.ResolveTheme(styles.DetectMode))
	}
	if args.DecimalsSet {
		env.st.SetDecimalPlaces(args.Decimals)
	}
	return env, nil
}

// persist writes theme, favorites and decimal places to the state file.
func (e *runEnv) persist() error {
	if e.statePath == "" {
		return nil
	}
	if err := config.EnsureConfigDir(); err != nil {
		return err
	}
	return settings.SaveFile(e.statePath, e.st)
}

// format renders v with the session precision and the configured grouping.
func (e *runEnv) format(v float64) string {
	return e.cfg.FormatResult(v, e.st.DecimalPlaces())
}

// line renders "value from = result to".
func (e *runEnv) line(h session.HistoryEntry) string {
	return fmt.Sprintf("%s %s = %s %s", e.format(h.Value), h.FromUnit, e.format(h.Result), h.ToUnit)
}

// Session is the config and state a front end runs against. The TUI opens
// one the same way the commands do.
type Session struct {
	Config    *config.Config
	State     *session.State
	StatePath string
}

// OpenSession loads the config, applies the global flags and restores the
// saved state file.
func OpenSession(args Args) (*Session, error) {
	if len(args.FlagErrors) > 0 {
		return nil, args.FlagErrors[0]
	}
	env, err := newEnv(args)
	if err != nil {
		return nil, err
	}
	return &Session{Config: env.cfg, State: env.st, StatePath: env.statePath}, nil
}

// Save writes the session's theme, favorites and decimal places back to
// the state file.
func (s *Session) Save() error {
	env := &runEnv{cfg: s.Config, st: s.State, statePath: s.StatePath}
	return env.persist()
}
