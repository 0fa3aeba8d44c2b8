// unitconv - A terminal unit converter with a TUI, a CLI and a REPL.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/unitconv/internal/cli"
	"github.com/jeranaias/unitconv/internal/config"
	"github.com/jeranaias/unitconv/internal/ui/app"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	closeLog := setupLogging(args.Verbose)
	defer closeLog()

	if cmd == cli.CmdTUI {
		if err := runTUI(args); err != nil {
			closeLog()
			cli.HandleErrorAndExit(err, args.JSON)
		}
		return
	}
	cli.Main(cmd, args)
}

// setupLogging discards log output unless --verbose or UNITCONV_LOG asks
// for it. The returned func closes the log file, if any.
func setupLogging(verbose bool) func() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if path := os.Getenv("UNITCONV_LOG"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err == nil {
			log.SetOutput(f)
			return func() { f.Close() }
		}
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file %s: %v\n", path, err)
	}
	if verbose {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}
	return func() {}
}

// runTUI starts the interactive interface and saves the session when it exits.
func runTUI(args cli.Args) error {
	sess, err := cli.OpenSession(args)
	if err != nil {
		return err
	}

	opts := app.Options{Config: sess.Config, State: sess.State}
	if sess.Config.UI.WatchConfig {
		if w, err := config.NewDefaultWatcher(); err != nil {
			log.Printf("CONFIG_WATCH_FAILED | error=%v", err)
		} else {
			defer w.Close()
			if err := w.Watch(); err != nil {
				log.Printf("CONFIG_WATCH_FAILED | error=%v", err)
			} else {
				opts.Watcher = w
			}
		}
	}

	var progOpts []tea.ProgramOption
	if sess.Config.UI.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	log.Printf("TUI_START | version=%s theme=%s", Version, sess.State.Theme())
	p := tea.NewProgram(app.New(opts), progOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	if err := sess.Save(); err != nil {
		log.Printf("STATE_SAVE_FAILED | path=%s error=%v", sess.StatePath, err)
		return err
	}
	log.Printf("TUI_EXIT | history=%d favorites=%d", sess.State.HistoryLen(), len(sess.State.Favorites()))
	return nil
}
