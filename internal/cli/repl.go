// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - Interactive conversion prompt.
//
// Command: repl
// Alias: shell
//
// Each line is a conversion ("5 km mi", "100 C to F") or a command starting
// with "/" or ":".
// Input history is kept across runs in ~/.unitconv/repl_history, and the
// theme, favorites and decimal places are saved on exit.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/unitconv/internal/config"
	"github.com/jeranaias/unitconv/internal/convert"
	"github.com/jeranaias/unitconv/internal/export"
	"github.com/jeranaias/unitconv/internal/session"
	"github.com/jeranaias/unitconv/internal/settings"
)

// =============================================================================
// LINE EDITING
// =============================================================================

// replInput provides input history and line editing for the REPL.
type replInput struct {
	line        *liner.State
	historyFile string
}

func newReplInput(complete liner.Completer) *replInput {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(complete)

	in := &replInput{line: line}
	if path, err := config.HistoryFilePath(); err == nil {
		in.historyFile = path
		in.loadHistory()
	}
	return in
}

func (in *replInput) loadHistory() {
	if f, err := os.Open(in.historyFile); err == nil {
		in.line.ReadHistory(f)
		f.Close()
	}
}

// readInput reads a line and appends non-blank input to the history.
func (in *replInput) readInput(prompt string) (string, error) {
	input, err := in.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		in.line.AppendHistory(input)
	}
	return input, nil
}

// saveHistory persists the input history with owner-only permissions.
func (in *replInput) saveHistory() {
	if in.historyFile == "" {
		return
	}
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(in.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		log.Printf("REPL_HISTORY_SAVE_FAILED | path=%s error=%v", in.historyFile, err)
		return
	}
	defer f.Close()
	in.line.WriteHistory(f)
}

func (in *replInput) close() {
	in.saveHistory()
	in.line.Close()
}

// =============================================================================
// REPL
// =============================================================================

// errQuit ends the REPL loop.
var errQuit = errors.New("quit")

// repl is the REPL state between lines.
type repl struct {
	env      *runEnv
	out      io.Writer
	category convert.Category
	last     *session.HistoryEntry
}

func newRepl(env *runEnv, out io.Writer) *repl {
	return &repl{env: env, out: out, category: env.cfg.DefaultCategory()}
}

// HandleRepl handles the "repl" command.
func HandleRepl(args Args) error {
	if err := RequiresTTY("run the REPL"); err != nil {
		return err
	}

	env, err := newEnv(args)
	if err != nil {
		return err
	}

	r := newRepl(env, stdout)
	in := newReplInput(r.complete)
	defer in.close()

	log.Printf("REPL_START | session=%s category=%s", env.st.ID(), r.category)
	r.printWelcome()

	for {
		input, err := in.readInput(RenderConditional(PromptStyle, r.prompt()))
		if err != nil {
			// Ctrl+C, Ctrl+D and read errors all end the session.
			fmt.Fprintln(stdout)
			break
		}

		if err := r.exec(input); err != nil {
			if errors.Is(err, errQuit) {
				break
			}
			fmt.Fprintf(stderr, "%s %v\n", RenderConditional(ErrorStyle, "[Error]"), err)
		}
	}

	r.printExitSummary()
	if err := env.persist(); err != nil {
		return NewCommandError("repl", "save", "could not save state", err)
	}
	return nil
}

func (r *repl) prompt() string {
	return strings.ToLower(r.category.String()) + "> "
}

// exec runs one input line.
func (r *repl) exec(input string) error {
	input = strings.TrimSpace(input)
	switch {
	case input == "":
		return nil
	case strings.EqualFold(input, "exit"), strings.EqualFold(input, "quit"):
		return errQuit
	case strings.HasPrefix(input, "/"):
		return r.slash(input)
	case strings.HasPrefix(input, ":"):
		return r.slash("/" + input[1:])
	default:
		return r.convert(input)
	}
}

// convert runs a conversion statement. The current category wins when both
// units resolve in more than one category, and becomes the category of the
// result otherwise.
func (r *repl) convert(input string) error {
	req, err := parseConversion(r.env.st.Engine(), strings.Fields(input), "", r.category)
	if err != nil {
		return err
	}
	entry, err := r.env.st.Convert(req)
	if err != nil {
		return err
	}
	r.category = entry.Category
	r.last = &entry
	fmt.Fprintln(r.out, r.renderEntry(entry))
	return nil
}

func (r *repl) renderEntry(h session.HistoryEntry) string {
	return fmt.Sprintf("%s %s = %s %s",
		r.env.format(h.Value), h.FromUnit, RenderConditional(ResultStyle, r.env.format(h.Result)), h.ToUnit)
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// replCommands lists the slash commands for completion and help.
var replCommands = []struct{ name, usage, help string }{
	{"/cat", "/cat [name]", "Show or switch the current category"},
	{"/units", "/units", "List the units of the current category"},
	{"/explain", "/explain", "Explain how the current category converts"},
	{"/swap", "/swap", "Convert the last result back"},
	{"/fav", "/fav [n]", "Favorite the last conversion, or history entry n"},
	{"/favs", "/favs", "List favorites"},
	{"/unfav", "/unfav <n>", "Remove favorite n"},
	{"/run", "/run <n>", "Run favorite n again"},
	{"/history", "/history", "Show this session's conversions"},
	{"/clear", "/clear", "Clear the history"},
	{"/theme", "/theme [light|dark]", "Show, set or toggle the theme"},
	{"/decimals", "/decimals <n>", "Set significant digits (0-10)"},
	{"/export", "/export <file>", "Save settings (.json or .msgpack)"},
	{"/import", "/import <file>", "Load settings (.json or .msgpack)"},
	{"/report", "/report <file>", "Save the history as .json, .md or .html"},
	{"/help", "/help", "Show this help"},
	{"/quit", "/quit", "Save and exit"},
}

// slash runs a slash command.
func (r *repl) slash(input string) error {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	rest := parts[1:]

	switch cmd {
	case "/help", "/h", "/?", "/":
		r.printHelp()
	case "/quit", "/q", "/exit":
		return errQuit
	case "/cat", "/category":
		return r.cmdCategory(strings.Join(rest, " "))
	case "/units", "/u":
		printUnits(r.env.st.Engine(), unitsData(r.env.st.Engine(), r.category))
	case "/explain":
		md, err := r.env.st.Engine().Explain(r.category)
		if err != nil {
			return err
		}
		fmt.Fprint(r.out, renderMarkdown(md))
	case "/swap":
		return r.cmdSwap()
	case "/fav", "/f":
		return r.cmdFavorite(rest)
	case "/favs", "/favorites":
		r.printFavorites()
	case "/unfav":
		n, err := r.index(rest, len(r.env.st.Favorites()))
		if err != nil {
			return err
		}
		r.env.st.RemoveFavorite(n)
		fmt.Fprintln(r.out, RenderConditional(DimStyle, "[favorite removed]"))
	case "/run":
		return r.cmdRun(rest)
	case "/history", "/hist":
		r.printHistory()
	case "/clear":
		r.env.st.ClearHistory()
		r.last = nil
		fmt.Fprintln(r.out, RenderConditional(DimStyle, "[history cleared]"))
	case "/theme":
		return r.cmdTheme(rest)
	case "/decimals", "/digits":
		return r.cmdDecimals(rest)
	case "/export":
		return r.cmdExport(rest)
	case "/import":
		return r.cmdImport(rest)
	case "/report":
		return r.cmdReport(rest)
	default:
		return fmt.Errorf("unknown command: %s (type /help for commands)", cmd)
	}
	return nil
}

func (r *repl) cmdCategory(name string) error {
	if name == "" {
		fmt.Fprintf(r.out, "Category: %s\n", r.category)
		return nil
	}
	cat, err := convert.ParseCategory(name)
	if err != nil {
		return err
	}
	r.category = cat
	pair := r.env.st.Engine().DefaultPair(cat)
	fmt.Fprintf(r.out, "Category: %s %s\n", cat,
		RenderConditional(DimStyle, fmt.Sprintf("(default %s -> %s)", pair.From, pair.To)))
	return nil
}

func (r *repl) cmdSwap() error {
	if r.last == nil {
		return errors.New("nothing to swap yet")
	}
	entry, err := r.env.st.Convert(session.Request{
		Category: r.last.Category,
		Value:    r.last.Result,
		From:     r.last.ToUnit,
		To:       r.last.FromUnit,
	})
	if err != nil {
		return err
	}
	r.last = &entry
	fmt.Fprintln(r.out, r.renderEntry(entry))
	return nil
}

func (r *repl) cmdFavorite(rest []string) error {
	var entry session.HistoryEntry
	if len(rest) > 0 {
		history := r.env.st.History()
		n, err := r.index(rest, len(history))
		if err != nil {
			return err
		}
		entry = history[n]
	} else {
		if r.last == nil {
			return errors.New("nothing to favorite yet")
		}
		entry = *r.last
	}

	if !r.env.st.AddFavorite(entry.Favorite()) {
		fmt.Fprintln(r.out, RenderConditional(DimStyle, "[already a favorite]"))
		return nil
	}
	fmt.Fprintln(r.out, RenderConditional(SuccessStyle, "[favorite added]"))
	return nil
}

func (r *repl) cmdRun(rest []string) error {
	favs := r.env.st.Favorites()
	n, err := r.index(rest, len(favs))
	if err != nil {
		return err
	}
	entry, err := r.env.st.Convert(favs[n].Request())
	if err != nil {
		return err
	}
	r.category = entry.Category
	r.last = &entry
	fmt.Fprintln(r.out, r.renderEntry(entry))
	return nil
}

func (r *repl) cmdTheme(rest []string) error {
	if len(rest) == 0 {
		fmt.Fprintf(r.out, "Theme: %s\n", r.env.st.ToggleTheme())
		return nil
	}
	theme, err := session.ParseTheme(rest[0])
	if err != nil {
		return err
	}
	if err := r.env.st.SetTheme(theme); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Theme: %s\n", theme)
	return nil
}

func (r *repl) cmdDecimals(rest []string) error {
	if len(rest) == 0 {
		fmt.Fprintf(r.out, "Decimal places: %d\n", r.env.st.DecimalPlaces())
		return nil
	}
	n, err := strconv.Atoi(rest[0])
	if err != nil {
		return NewValidationError("decimals", rest[0], "must be an integer")
	}
	if err := r.env.st.SetDecimalPlaces(n); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Decimal places: %d\n", n)
	return nil
}

func (r *repl) cmdExport(rest []string) error {
	if len(rest) == 0 {
		return ErrMissingArgument("file", "/export settings.json")
	}
	if err := settings.SaveFile(rest[0], r.env.st); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "%s Settings written to %s\n", RenderConditional(SuccessStyle, "[OK]"), rest[0])
	return nil
}

func (r *repl) cmdImport(rest []string) error {
	if len(rest) == 0 {
		return ErrMissingArgument("file", "/import settings.json")
	}
	applied, err := settings.LoadFile(rest[0], r.env.st)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "%s Imported %s\n", RenderConditional(SuccessStyle, "[OK]"), applied)
	return nil
}

func (r *repl) cmdReport(rest []string) error {
	if len(rest) == 0 {
		return ErrMissingArgument("file", "/report history.md")
	}
	opts := export.DefaultOptions()
	opts.Theme = r.env.st.Theme()
	exporter, err := export.ForPath(rest[0], opts)
	if err != nil {
		return err
	}
	if err := export.WriteFile(export.NewReport(r.env.st), exporter, rest[0]); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "%s %d conversions written to %s\n",
		RenderConditional(SuccessStyle, "[OK]"), r.env.st.HistoryLen(), rest[0])
	return nil
}

// index parses a 1-based list position into a 0-based index below n.
func (r *repl) index(rest []string, n int) (int, error) {
	if len(rest) == 0 {
		return 0, ErrMissingArgument("number", "/run 1")
	}
	i, err := strconv.Atoi(rest[0])
	if err != nil || i < 1 || i > n {
		return 0, NewValidationError("number", rest[0], fmt.Sprintf("must be 1-%d", n))
	}
	return i - 1, nil
}

// complete offers slash commands, category names after /cat and unit names
// of the current category for the last word of a conversion.
func (r *repl) complete(line string) []string {
	var out []string
	lower := strings.ToLower(line)

	if strings.HasPrefix(lower, "/cat ") {
		prefix := strings.TrimSpace(lower[len("/cat "):])
		for _, c := range convert.Categories() {
			if strings.HasPrefix(strings.ToLower(c.String()), prefix) {
				out = append(out, "/cat "+c.String())
			}
		}
		return out
	}

	if strings.HasPrefix(lower, "/") {
		for _, c := range replCommands {
			if strings.HasPrefix(c.name, lower) {
				out = append(out, c.name)
			}
		}
		return out
	}

	head, word := "", line
	if i := strings.LastIndex(line, " "); i >= 0 {
		head, word = line[:i+1], line[i+1:]
	}
	if head == "" {
		return nil
	}
	for _, unit := range r.env.st.Engine().Units(r.category) {
		if strings.HasPrefix(strings.ToLower(unit), strings.ToLower(word)) && !strings.Contains(unit, " ") {
			out = append(out, head+unit)
		}
	}
	return out
}

// =============================================================================
// OUTPUT
// =============================================================================

func (r *repl) printWelcome() {
	fmt.Fprintln(r.out, RenderConditional(TitleStyle, "unitconv")+" "+RenderConditional(DimStyle, Version))
	fmt.Fprintln(r.out, RenderConditional(DimStyle, `Type "5 km mi" or "100 C to F". /help for commands, /quit to exit.`))
	fmt.Fprintln(r.out)
}

func (r *repl) printHelp() {
	fmt.Fprintln(r.out, RenderConditional(TitleStyle, "Commands"))
	for _, c := range replCommands {
		fmt.Fprintf(r.out, "  %s %s\n", RenderLabel(c.usage, 22), c.help)
	}
}

func (r *repl) printFavorites() {
	favs := r.env.st.Favorites()
	if len(favs) == 0 {
		fmt.Fprintln(r.out, RenderConditional(DimStyle, "No favorites yet. /fav adds the last conversion."))
		return
	}
	for i, f := range favs {
		fmt.Fprintf(r.out, "  %2d. %s %s = %s %s\n", i+1,
			r.env.format(f.Value), f.FromUnit, r.env.format(f.Result), f.ToUnit)
	}
}

func (r *repl) printHistory() {
	history := r.env.st.History()
	if len(history) == 0 {
		fmt.Fprintln(r.out, RenderConditional(DimStyle, "No conversions yet."))
		return
	}
	for i, h := range history {
		fmt.Fprintf(r.out, "  %2d. %s %s\n", i+1, r.env.line(h),
			RenderConditional(DimStyle, h.Timestamp.Format("15:04:05")))
	}
}

func (r *repl) printExitSummary() {
	fmt.Fprintf(r.out, "%s %d conversions, %d favorites\n",
		RenderConditional(DimStyle, "Session:"), r.env.st.HistoryLen(), len(r.env.st.Favorites()))
}
