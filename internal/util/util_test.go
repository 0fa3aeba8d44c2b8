// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_Basic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	data := []byte(`{"theme":"dark"}`)

	if err := AtomicWriteFile(path, data, 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != string(data) {
		t.Errorf("Content mismatch: got %q, want %q", content, data)
	}
}

func TestAtomicWriteFile_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "2025", "history.md")

	if err := AtomicWriteFile(path, []byte("# History\n"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("File not created: %v", err)
	}
}

func TestAtomicWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	if err := AtomicWriteFile(path, []byte("initial"), 0644); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if err := AtomicWriteFile(path, []byte("updated"), 0644); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != "updated" {
		t.Errorf("Content not updated: got %q", content)
	}
}

func TestAtomicWriteFile_EmptyData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")

	if err := AtomicWriteFile(path, nil, 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed for empty data: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("File not created: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("Expected empty file, got size %d", info.Size())
	}
}

func TestAtomicWriteFile_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 3; i++ {
		if err := AtomicWriteFile(filepath.Join(dir, "out.json"), []byte("{}"), 0600); err != nil {
			t.Fatalf("write %d failed: %v", i, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory holds %v, want only out.json", names)
	}
}

func TestAtomicWriteFile_Permissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not enforced on Windows")
	}
	path := filepath.Join(t.TempDir(), "private.json")
	if err := AtomicWriteFile(path, []byte("{}"), 0600); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := info.Mode().Perm(); got != 0600 {
		t.Errorf("mode = %o, want 600", got)
	}
}

// =============================================================================
// FUZZY MATCHING TESTS
// =============================================================================

func TestFuzzyMatch(t *testing.T) {
	tests := []struct {
		query, target string
		want          bool
	}{
		{"", "Meters", true},
		{"km", "Kilometers", true},
		{"KM", "kilometers", true},
		{"sqkm", "Square Kilometers", true},
		{"mk", "Kilometers", false},
		{"metersx", "Meters", false},
	}
	for _, tt := range tests {
		if _, got := FuzzyMatch(tt.query, tt.target); got != tt.want {
			t.Errorf("FuzzyMatch(%q, %q) matched = %v, want %v", tt.query, tt.target, got, tt.want)
		}
	}
}

func TestFuzzyMatch_PrefersShortAndBoundary(t *testing.T) {
	short, _ := FuzzyMatch("km", "Kilometers")
	long, _ := FuzzyMatch("km", "Square Kilometers")
	if short <= long {
		t.Errorf("Kilometers scored %d, Square Kilometers %d", short, long)
	}

	miles, _ := FuzzyMatch("mi", "Miles")
	mm, _ := FuzzyMatch("mi", "Millimeters")
	if miles <= mm {
		t.Errorf("Miles scored %d, Millimeters %d", miles, mm)
	}
}

func TestFuzzyFilter(t *testing.T) {
	targets := []string{"Square Meters", "Square Kilometers", "Hectares", "Kilometers"}

	got := FuzzyFilter("km", targets)
	if len(got) != 2 {
		t.Fatalf("got %d matches, want 2: %+v", len(got), got)
	}
	if got[0].Target != "Kilometers" || got[0].Index != 3 {
		t.Errorf("best match = %+v, want Kilometers at 3", got[0])
	}

	all := FuzzyFilter("", targets)
	if len(all) != len(targets) {
		t.Fatalf("empty query matched %d, want %d", len(all), len(targets))
	}
	for i, m := range all {
		if m.Index != i {
			t.Errorf("empty query changed order: %+v", all)
			break
		}
	}

	if none := FuzzyFilter("zzz", targets); len(none) != 0 {
		t.Errorf("expected no matches, got %+v", none)
	}
}

func TestHighlightPositions(t *testing.T) {
	got := HighlightPositions("tmp", "Temperature")
	want := []int{0, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("HighlightPositions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("HighlightPositions = %v, want %v", got, want)
		}
	}
	if HighlightPositions("", "Temperature") != nil {
		t.Error("empty query should highlight nothing")
	}
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"convert", "convert", 0},
		{"Convert", "convert", 0},
		{"covnert", "convert", 2},
		{"unit", "units", 1},
		{"kitten", "sitting", 3},
	}
	for _, tt := range tests {
		if got := EditDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("EditDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
