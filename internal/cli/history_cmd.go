// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// history_cmd.go - The history command.
//
// History lives in memory for one session, so the command runs a batch of
// conversions and exports them as a report.
//
// Usage:
//
//	history export <file> [statements]
//	history export --dir DIR [--format md] [statements]
//
// Statements are "<value> <from> [to] <to>", separated by commas. Without
// statements they are read from stdin, one per line. The format follows the
// file extension (.json, .md, .html) unless --format is given.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeranaias/unitconv/internal/export"
	"github.com/jeranaias/unitconv/internal/session"
)

// stdin is read by "history export" when no statements are given.
var stdin io.Reader = os.Stdin

// HandleHistory handles the "history" command.
func HandleHistory(args Args) error {
	p := NewArgParser(args.Raw)

	if sub := strings.ToLower(p.Subcommand()); sub != "export" {
		return NewValidationErrorWithExample("history subcommand", p.Subcommand(),
			"must be export", "unitconv history export report.md 1 km m, 100 C F")
	}

	env, err := newEnv(args)
	if err != nil {
		return err
	}

	opts := export.DefaultOptions()
	opts.Theme = env.st.Theme()
	opts.OpenAfterExport = p.BoolFlag("open")

	dir := p.Flag("dir", "d")
	path := ""
	first := 1
	if dir == "" {
		path = p.Positional(1)
		first = 2
		if path == "" {
			return ErrMissingArgument("file", "unitconv history export report.md 1 km m, 100 C F")
		}
	}

	name := p.Flag("format", "f")
	switch {
	case name != "":
	case path != "":
		name = filepath.Ext(path)
	default:
		name = "markdown"
	}
	exporter, err := export.ForFormat(name, opts)
	if err != nil {
		return ErrUnsupportedFormat(name, export.Formats)
	}

	statements := splitStatements(JoinPositionalArgs(p, first))
	if len(statements) == 0 {
		statements, err = readStatements(stdin)
		if err != nil {
			return NewCommandError("history", "export", "could not read statements", err)
		}
	}
	if len(statements) == 0 {
		return ErrMissingArgument("statements", "unitconv history export report.md 1 km m, 100 C F")
	}

	converted, err := runBatch(env, statements, !args.JSON)
	if err != nil {
		return err
	}

	report := export.NewReport(env.st)
	if dir != "" {
		opts.OutputDir = dir
		path, err = export.ExportToFile(report, exporter, opts)
	} else {
		err = export.WriteFile(report, exporter, path)
	}
	if err != nil {
		return NewCommandError("history", "export", "could not write report", err)
	}

	if args.JSON {
		return NewJSONResponse("history export", FileData{Path: path, Entries: converted}).Print()
	}
	fmt.Fprintf(stdout, "%s %d conversions written to %s\n", RenderConditional(SuccessStyle, "[OK]"), converted, path)
	return nil
}

// runBatch converts each statement into env's history, echoing results when
// echo is set. Failed statements are reported on stderr and skipped; the last
// error is returned when none succeed.
func runBatch(env *runEnv, statements []string, echo bool) (int, error) {
	var lastErr error
	converted := 0
	for _, stmt := range statements {
		entry, err := convertStatement(env, stmt)
		if err != nil {
			lastErr = err
			fmt.Fprintf(stderr, "%s %s: %v\n", RenderConditional(WarningStyle, "[SKIP]"), stmt, err)
			continue
		}
		converted++
		if echo {
			fmt.Fprintln(stdout, env.line(entry))
		}
	}
	if converted == 0 && lastErr != nil {
		return 0, lastErr
	}
	return converted, nil
}

// convertStatement parses and runs one "<value> <from> [to] <to>" statement.
func convertStatement(env *runEnv, stmt string) (session.HistoryEntry, error) {
	req, err := parseConversion(env.st.Engine(), strings.Fields(stmt), "", env.cfg.DefaultCategory())
	if err != nil {
		return session.HistoryEntry{}, err
	}
	return env.st.Convert(req)
}

// splitStatements splits s at commas and drops blank statements.
func splitStatements(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// readStatements reads one statement per non-blank line. Lines starting
// with "#" are comments.
func readStatements(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, scanner.Err()
}
