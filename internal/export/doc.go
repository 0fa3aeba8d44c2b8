// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes a session's conversion history to files.
//
// # Key Types
//
//   - Report: snapshot of the history, precision and per-category counts
//   - Exporter: one output format
//   - Options: export configuration
//
// # Supported Formats
//
//   - JSON: machine-readable, always complete
//   - Markdown: a table plus a category summary
//   - HTML: standalone page styled with the light or dark palette
//
// # Usage
//
//	r := export.NewReport(state)
//	exp, err := export.ForPath("history.md", nil)
//	if err != nil {
//	    return err
//	}
//	err = export.WriteFile(r, exp, "history.md")
package export
