// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/jeranaias/unitconv/internal/format"
	"github.com/jeranaias/unitconv/internal/ui/styles"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports the history as a standalone HTML page styled with the
// session's theme palette.
type HTMLExporter struct {
	options *Options
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{options: opts}
}

// Export converts the report to HTML.
func (e *HTMLExporter) Export(r *Report) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("report is nil")
	}

	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n")
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	sb.WriteString("    <title>Conversion History</title>\n")
	sb.WriteString("    <meta name=\"generator\" content=\"unitconv\">\n")
	fmt.Fprintf(&sb, "    <meta name=\"date\" content=\"%s\">\n", r.ExportedAt.Format(time.RFC3339))
	sb.WriteString(e.getCSS())
	sb.WriteString("</head>\n")
	fmt.Fprintf(&sb, "<body class=\"%s-theme\">\n", html.EscapeString(string(e.options.Theme)))
	sb.WriteString("    <div class=\"container\">\n")

	if e.options.IncludeMetadata {
		sb.WriteString(e.renderHeader(r))
	}

	sb.WriteString("        <main>\n")
	if len(r.Entries) == 0 {
		sb.WriteString("            <p class=\"empty\">No conversions yet.</p>\n")
	} else {
		sb.WriteString(e.renderTable(r))
	}
	if e.options.IncludeMetadata && len(r.Counts) > 0 {
		sb.WriteString(e.renderCounts(r))
	}
	sb.WriteString("        </main>\n")

	sb.WriteString("        <footer class=\"footer\">\n")
	fmt.Fprintf(&sb, "            <p>Exported from <strong>unitconv</strong> on %s</p>\n",
		r.ExportedAt.Format("January 2, 2006 at 3:04 PM"))
	sb.WriteString("        </footer>\n")
	sb.WriteString("    </div>\n")
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html"
}

// =============================================================================
// RENDERING FUNCTIONS
// =============================================================================

func (e *HTMLExporter) renderHeader(r *Report) string {
	var sb strings.Builder
	sb.WriteString("        <header class=\"header\">\n")
	sb.WriteString("            <h1>Conversion History</h1>\n")
	sb.WriteString("            <div class=\"metadata\">\n")
	fmt.Fprintf(&sb, "                <span><strong>Session:</strong> %s</span>\n", html.EscapeString(r.SessionID))
	fmt.Fprintf(&sb, "                <span><strong>Started:</strong> %s</span>\n", formatTimestamp(r.StartedAt))
	fmt.Fprintf(&sb, "                <span><strong>Conversions:</strong> %d</span>\n", len(r.Entries))
	sb.WriteString("            </div>\n")
	sb.WriteString("        </header>\n")
	return sb.String()
}

func (e *HTMLExporter) renderTable(r *Report) string {
	var sb strings.Builder
	sb.WriteString("            <table>\n")
	sb.WriteString("                <thead><tr>")
	if e.options.IncludeTimestamps {
		sb.WriteString("<th>Time</th>")
	}
	sb.WriteString("<th>Category</th><th>Conversion</th></tr></thead>\n")
	sb.WriteString("                <tbody>\n")
	for _, h := range r.Entries {
		sb.WriteString("                    <tr>")
		if e.options.IncludeTimestamps {
			fmt.Fprintf(&sb, "<td class=\"time\">%s</td>", formatShortTimestamp(h.Timestamp))
		}
		fmt.Fprintf(&sb, "<td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(h.Category.String()),
			html.EscapeString(r.line(h)))
	}
	sb.WriteString("                </tbody>\n")
	sb.WriteString("            </table>\n")
	return sb.String()
}

// renderCounts draws the category distribution as CSS bars.
func (e *HTMLExporter) renderCounts(r *Report) string {
	top := r.Counts[0].Count
	var sb strings.Builder
	sb.WriteString("            <section class=\"counts\">\n")
	sb.WriteString("                <h2>By Category</h2>\n")
	for _, c := range r.Counts {
		pct := 100 * float64(c.Count) / float64(top)
		fmt.Fprintf(&sb, "                <div class=\"count\"><span class=\"label\">%s</span>"+
			"<span class=\"bar\" style=\"width: %s%%\"></span><span class=\"n\">%d</span></div>\n",
			html.EscapeString(c.Category.String()), format.Result(pct, 4), c.Count)
	}
	sb.WriteString("            </section>\n")
	return sb.String()
}

// =============================================================================
// EMBEDDED CSS
// =============================================================================

// themeVars renders a palette as CSS custom properties.
func themeVars(selector string, p styles.Palette) string {
	return fmt.Sprintf(`        %s {
            --primary: %s;
            --secondary: %s;
            --text: %s;
            --accent: %s;
            --background: %s;
            --card: %s;
        }
`, selector, p.Primary, p.Secondary, p.Text, p.Accent, p.Background, p.Card)
}

// getCSS returns the embedded stylesheet with both palettes.
func (e *HTMLExporter) getCSS() string {
	var sb strings.Builder
	sb.WriteString("    <style>\n")
	sb.WriteString(themeVars(".light-theme", styles.LightPalette))
	sb.WriteString(themeVars(".dark-theme", styles.DarkPalette))
	sb.WriteString(`        * { box-sizing: border-box; margin: 0; padding: 0; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
            background: var(--background);
            color: var(--text);
            line-height: 1.6;
        }
        .container { max-width: 900px; margin: 0 auto; padding: 2rem 1rem; }
        .header { border-bottom: 2px solid var(--primary); margin-bottom: 1.5rem; padding-bottom: 1rem; }
        .header h1 { color: var(--primary); }
        .metadata { display: flex; flex-wrap: wrap; gap: 1.5rem; font-size: 0.9rem; }
        table { width: 100%; border-collapse: collapse; background: var(--card); }
        th { text-align: left; color: var(--primary); border-bottom: 1px solid var(--secondary); }
        th, td { padding: 0.4rem 0.8rem; }
        tr:nth-child(even) td { background: var(--secondary); }
        td.time { font-family: monospace; white-space: nowrap; }
        .counts { margin-top: 2rem; }
        .counts h2 { color: var(--primary); font-size: 1.2rem; margin-bottom: 0.5rem; }
        .count { display: flex; align-items: center; gap: 0.5rem; margin: 0.2rem 0; }
        .count .label { width: 8rem; }
        .count .bar { display: inline-block; height: 0.9rem; background: var(--accent); max-width: 60%; }
        .empty { font-style: italic; }
        .footer { margin-top: 2rem; font-size: 0.8rem; text-align: center; opacity: 0.7; }
    </style>
`)
	return sb.String()
}
