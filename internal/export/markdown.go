// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/unitconv/internal/format"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports the history as a Markdown table.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts the report to Markdown.
func (e *MarkdownExporter) Export(r *Report) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("report is nil")
	}

	var sb strings.Builder

	// YAML frontmatter with metadata
	if e.options.IncludeMetadata {
		sb.WriteString("---\n")
		fmt.Fprintf(&sb, "session: %s\n", escapeYAML(r.SessionID))
		fmt.Fprintf(&sb, "started: %s\n", r.StartedAt.Format(time.RFC3339))
		fmt.Fprintf(&sb, "exported: %s\n", r.ExportedAt.Format(time.RFC3339))
		fmt.Fprintf(&sb, "conversions: %d\n", len(r.Entries))
		fmt.Fprintf(&sb, "decimal_places: %d\n", r.DecimalPlaces)
		sb.WriteString("generator: unitconv\n")
		sb.WriteString("---\n\n")
	}

	sb.WriteString("# Conversion History\n\n")

	if len(r.Entries) == 0 {
		sb.WriteString("*No conversions yet.*\n")
		return []byte(sb.String()), nil
	}

	if e.options.IncludeTimestamps {
		sb.WriteString("| Time | Category | Value | From | Result | To |\n")
		sb.WriteString("|---|---|---:|---|---:|---|\n")
	} else {
		sb.WriteString("| Category | Value | From | Result | To |\n")
		sb.WriteString("|---|---:|---|---:|---|\n")
	}
	for _, h := range r.Entries {
		if e.options.IncludeTimestamps {
			fmt.Fprintf(&sb, "| %s ", formatTimestamp(h.Timestamp))
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
			h.Category,
			format.Result(h.Value, r.DecimalPlaces),
			escapeMarkdown(h.FromUnit),
			format.Result(h.Result, r.DecimalPlaces),
			escapeMarkdown(h.ToUnit),
		)
	}

	if e.options.IncludeMetadata && len(r.Counts) > 0 {
		sb.WriteString("\n## By Category\n\n")
		for _, c := range r.Counts {
			fmt.Fprintf(&sb, "- **%s**: %d\n", c.Category, c.Count)
		}
	}

	sb.WriteString("\n---\n\n")
	fmt.Fprintf(&sb, "*Exported from unitconv on %s*\n",
		r.ExportedAt.Format("January 2, 2006 at 3:04 PM"))

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// escapeMarkdown escapes characters that break table cells or emphasis.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return s
}

// escapeYAML quotes values containing YAML special characters.
func escapeYAML(s string) string {
	if strings.ContainsAny(s, ":#|>@`\"'[]{}!%&*\n\r\\") || strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		s = strings.ReplaceAll(s, "\\", "\\\\")
		s = strings.ReplaceAll(s, "\"", "\\\"")
		s = strings.ReplaceAll(s, "\n", "\\n")
		s = strings.ReplaceAll(s, "\r", "\\r")
		return fmt.Sprintf("\"%s\"", s)
	}
	return s
}
