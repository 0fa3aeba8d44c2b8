// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds the small helpers shared by the unitconv packages.
//
// Fuzzy matching ranks unit and page names for the TUI selectors and the
// Ctrl+P palette:
//
//	matches := util.FuzzyFilter("km", units) // best match first
//
// EditDistance backs the "did you mean" suggestions of the CLI, and
// AtomicWriteFile is how settings, reports and config files reach disk:
//
//	err := util.AtomicWriteFile(path, data, 0600)
package util
