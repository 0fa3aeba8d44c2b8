// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// explain_cmd.go - The explain command.
//
// Command: explain <category>
// Alias: formula
//
// Prints the base unit and factor table of a linear category, or the six
// temperature formulas. Markdown is rendered with glamour on a terminal and
// printed raw when piped.
package cli

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/unitconv/internal/convert"
)

var (
	markdownRenderer     *glamour.TermRenderer
	markdownRendererOnce sync.Once
)

// renderMarkdown renders content for the terminal, or returns it unchanged
// when stdout is not a terminal or the renderer is unavailable.
func renderMarkdown(content string) string {
	if !IsStdoutTTY() {
		return content
	}

	markdownRendererOnce.Do(func() {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(min(GetTerminalWidth(), 100)),
		)
		if err != nil {
			log.Printf("MARKDOWN_RENDERER_FAILED | error=%v", err)
			return
		}
		markdownRenderer = r
	})
	if markdownRenderer == nil {
		return content
	}

	out, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n") + "\n"
}

// HandleExplain handles the "explain" command.
func HandleExplain(args Args) error {
	p := NewArgParser(args.Raw)

	name := JoinPositionalArgs(p, 0)
	if name == "" {
		return ErrMissingArgument("category", "unitconv explain temperature")
	}

	cat, err := convert.ParseCategory(name)
	if err != nil {
		return err
	}

	md, err := convert.Default().Explain(cat)
	if err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("explain", ExplainData{
			Category: cat.String(),
			Markdown: md,
		}).Print()
	}

	fmt.Fprint(stdout, renderMarkdown(md))
	return nil
}
