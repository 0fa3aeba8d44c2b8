// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/unitconv/internal/convert"
	"github.com/jeranaias/unitconv/internal/session"
)

func sampleState(t *testing.T) *session.State {
	t.Helper()
	st := session.New(session.DefaultOptions())
	reqs := []session.Request{
		{Category: convert.Length, Value: 1, From: "Kilometers", To: "Meters"},
		{Category: convert.Temperature, Value: 100, From: "Celsius", To: "Fahrenheit"},
		{Category: convert.Length, Value: 3, From: "Feet", To: "Inches"},
	}
	for _, r := range reqs {
		_, err := st.Convert(r)
		require.NoError(t, err)
	}
	return st
}

func TestNewReport(t *testing.T) {
	r := NewReport(sampleState(t))

	assert.Len(t, r.Entries, 3)
	require.Len(t, r.Counts, 2)
	assert.Equal(t, CategoryCount{Category: convert.Length, Count: 2}, r.Counts[0])
	assert.Equal(t, CategoryCount{Category: convert.Temperature, Count: 1}, r.Counts[1])
	assert.Equal(t, 8, r.DecimalPlaces)
}

func TestNewReport_EmptyHistory(t *testing.T) {
	r := NewReport(session.New(session.DefaultOptions()))
	assert.NotNil(t, r.Entries)
	assert.Empty(t, r.Counts)

	for _, name := range Formats {
		exp, err := ForFormat(name, nil)
		require.NoError(t, err)
		_, err = exp.Export(r)
		assert.NoError(t, err, name)
	}
}

func TestJSONExporter(t *testing.T) {
	data, err := NewJSONExporter(nil).Export(NewReport(sampleState(t)))
	require.NoError(t, err)

	var decoded struct {
		Entries []struct {
			Category string  `json:"category"`
			FromUnit string  `json:"from_unit"`
			Result   float64 `json:"result"`
		} `json:"entries"`
		Counts []struct {
			Category string `json:"category"`
			Count    int    `json:"count"`
		} `json:"category_counts"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Entries, 3)
	assert.Equal(t, "Temperature", decoded.Entries[1].Category)
	assert.Equal(t, 212.0, decoded.Entries[1].Result)
	assert.Equal(t, "Length", decoded.Counts[0].Category)
}

func TestMarkdownExporter(t *testing.T) {
	r := NewReport(sampleState(t))

	out, err := NewMarkdownExporter(nil).Export(r)
	require.NoError(t, err)
	md := string(out)

	assert.True(t, strings.HasPrefix(md, "---\n"), "frontmatter expected")
	assert.Contains(t, md, "conversions: 3")
	assert.Contains(t, md, "| Length | 1 | Kilometers | 1000 | Meters |")
	assert.Contains(t, md, "| Temperature | 100 | Celsius | 212 | Fahrenheit |")
	assert.Contains(t, md, "- **Length**: 2")

	opts := DefaultOptions()
	opts.IncludeMetadata = false
	opts.IncludeTimestamps = false
	out, err = NewMarkdownExporter(opts).Export(r)
	require.NoError(t, err)
	md = string(out)
	assert.False(t, strings.HasPrefix(md, "---\n"))
	assert.NotContains(t, md, "By Category")
	assert.Contains(t, md, "| Category | Value | From | Result | To |")
}

func TestHTMLExporter(t *testing.T) {
	opts := DefaultOptions()
	opts.Theme = session.ThemeDark

	out, err := NewHTMLExporter(opts).Export(NewReport(sampleState(t)))
	require.NoError(t, err)
	page := string(out)

	assert.Contains(t, page, `<body class="dark-theme">`)
	assert.Contains(t, page, "--primary: #4CC9F0")
	assert.Contains(t, page, "1 Kilometers = 1000 Meters")
	assert.Contains(t, page, "width: 100%")
	assert.Contains(t, page, "width: 50%")
}

func TestHTMLExporter_Escapes(t *testing.T) {
	r := NewReport(session.New(session.DefaultOptions()))
	r.SessionID = "<script>alert(1)</script>"
	out, err := NewHTMLExporter(nil).Export(r)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>")
	assert.Contains(t, string(out), "&lt;script&gt;")
}

func TestForFormat(t *testing.T) {
	cases := map[string]string{
		"json":     ".json",
		".md":      ".md",
		"Markdown": ".md",
		"html":     ".html",
	}
	for name, ext := range cases {
		exp, err := ForFormat(name, nil)
		require.NoError(t, err, name)
		assert.Equal(t, ext, exp.FileExtension())
	}

	_, err := ForFormat("pdf", nil)
	assert.Error(t, err)

	_, err = ForPath("history", nil)
	assert.Error(t, err)
}

func TestWriteFileAndExportToFile(t *testing.T) {
	dir := t.TempDir()
	r := NewReport(sampleState(t))

	path := filepath.Join(dir, "nested", "history.md")
	exp, err := ForPath(path, nil)
	require.NoError(t, err)
	require.NoError(t, WriteFile(r, exp, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Conversion History")

	opts := DefaultOptions()
	opts.OutputDir = dir
	out, err := ExportToFile(r, NewJSONExporter(opts), opts)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(out))
	assert.True(t, strings.HasPrefix(filepath.Base(out), "history_"))
	assert.Equal(t, ".json", filepath.Ext(out))
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"abc123":          "abc123",
		"a/b\\c:d":        "a-b-c-d",
		"with space":      "with_space",
		"":                "history",
		"ctrl\x01char":    "ctrl-char",
		"quote\"and<tag>": "quote-and-tag-",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitizeFilename(in), in)
	}
}

func TestEscapeYAML(t *testing.T) {
	assert.Equal(t, "plain", escapeYAML("plain"))
	assert.Equal(t, `"a\nb: c"`, escapeYAML("a\nb: c"))
}
