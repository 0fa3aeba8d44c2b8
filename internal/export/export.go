// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"log"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/jeranaias/unitconv/internal/convert"
	"github.com/jeranaias/unitconv/internal/format"
	"github.com/jeranaias/unitconv/internal/session"
	"github.com/jeranaias/unitconv/internal/util"
)

// =============================================================================
// REPORT
// =============================================================================

// Report is a snapshot of a session's history ready for export.
type Report struct {
	SessionID     string                 `json:"session_id"`
	StartedAt     time.Time              `json:"started_at"`
	ExportedAt    time.Time              `json:"exported_at"`
	DecimalPlaces int                    `json:"decimal_places"`
	Entries       []session.HistoryEntry `json:"entries"`
	Counts        []CategoryCount        `json:"category_counts"`
}

// CategoryCount is the number of history entries in one category.
type CategoryCount struct {
	Category convert.Category `json:"category"`
	Count    int              `json:"count"`
}

// NewReport captures st's history.
func NewReport(st *session.State) *Report {
	counts := st.CategoryCounts()
	r := &Report{
		SessionID:     st.ID(),
		StartedAt:     st.StartedAt(),
		ExportedAt:    time.Now(),
		DecimalPlaces: st.DecimalPlaces(),
		Entries:       st.History(),
		Counts:        make([]CategoryCount, 0, len(counts)),
	}
	for c, n := range counts {
		r.Counts = append(r.Counts, CategoryCount{Category: c, Count: n})
	}
	// Most used first, display order breaks ties.
	sort.Slice(r.Counts, func(i, j int) bool {
		if r.Counts[i].Count != r.Counts[j].Count {
			return r.Counts[i].Count > r.Counts[j].Count
		}
		return r.Counts[i].Category < r.Counts[j].Category
	})
	if r.Entries == nil {
		r.Entries = []session.HistoryEntry{}
	}
	return r
}

// line renders one entry with the report's precision.
func (r *Report) line(h session.HistoryEntry) string {
	return format.Line(h.Value, h.FromUnit, h.Result, h.ToUnit, r.DecimalPlaces)
}

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter renders a history report in one file format.
type Exporter interface {
	// Export renders the report and returns the file content.
	Export(r *Report) ([]byte, error)

	// FileExtension returns the file extension, e.g. ".md".
	FileExtension() string

	// MimeType returns the MIME type of the format.
	MimeType() string
}

// Formats lists the names accepted by ForFormat.
var Formats = []string{"json", "markdown", "html"}

// ForFormat returns the exporter for a format name ("json", "md",
// "markdown", "html").
func ForFormat(name string, opts *Options) (Exporter, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "json":
		return NewJSONExporter(opts), nil
	case "md", "markdown":
		return NewMarkdownExporter(opts), nil
	case "html", "htm":
		return NewHTMLExporter(opts), nil
	}
	return nil, fmt.Errorf("unknown export format %q (supported: %s)", name, strings.Join(Formats, ", "))
}

// ForPath picks the exporter from a file extension.
func ForPath(path string, opts *Options) (Exporter, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return nil, fmt.Errorf("cannot infer export format from %q", path)
	}
	return ForFormat(ext, opts)
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is the directory used by ExportToFile.
	// Default: current working directory
	OutputDir string

	// OpenAfterExport opens the file in the default application.
	OpenAfterExport bool

	// IncludeMetadata includes the session header and category summary.
	IncludeMetadata bool

	// IncludeTimestamps includes per-entry timestamps.
	IncludeTimestamps bool

	// Theme for HTML export ("light" or "dark").
	Theme session.Theme
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:         ".",
		IncludeMetadata:   true,
		IncludeTimestamps: true,
		Theme:             session.ThemeLight,
	}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile writes the report to a generated file name in opts.OutputDir
// and returns the path.
func ExportToFile(r *Report, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	filename := fmt.Sprintf("history_%s_%s%s",
		sanitizeFilename(shortID(r.SessionID)),
		r.ExportedAt.Format("20060102_150405"),
		exporter.FileExtension(),
	)
	outputPath := filepath.Join(opts.OutputDir, filename)
	if err := WriteFile(r, exporter, outputPath); err != nil {
		return "", err
	}

	if opts.OpenAfterExport {
		if err := openFile(outputPath); err != nil {
			log.Printf("EXPORT_OPEN_FAILED | path=%s error=%v", outputPath, err)
		}
	}
	return outputPath, nil
}

// WriteFile renders the report and writes it to path atomically.
func WriteFile(r *Report, exporter Exporter, path string) error {
	content, err := exporter.Export(r)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if err := util.AtomicWriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	log.Printf("HISTORY_EXPORT | session=%s path=%s entries=%d", r.SessionID, path, len(r.Entries))
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// shortID strips the "sess_" prefix and keeps the first 8 characters.
func shortID(id string) string {
	id = strings.TrimPrefix(id, "sess_")
	if len(id) > 8 {
		id = id[:8]
	}
	if id == "" {
		return "session"
	}
	return id
}

// sanitizeFilename removes or replaces characters that are invalid in filenames.
func sanitizeFilename(s string) string {
	runes := []rune(s)
	if len(runes) > 50 {
		runes = runes[:50]
	}

	var sb strings.Builder
	for _, r := range runes {
		switch {
		case strings.ContainsRune(`/\:*?"<>|`, r):
			sb.WriteRune('-')
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			sb.WriteRune('_')
		case r < 32 || r == 127:
			sb.WriteRune('-')
		default:
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return "history"
	}
	return sb.String()
}

// openFile opens a file in the default application for the OS.
func openFile(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", `""`, path)
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

// formatTimestamp formats a timestamp for display.
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// formatShortTimestamp formats a timestamp for inline display.
func formatShortTimestamp(t time.Time) string {
	return t.Format("15:04:05")
}
