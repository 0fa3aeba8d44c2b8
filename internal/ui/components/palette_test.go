// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func paletteItems() []PaletteItem {
	return []PaletteItem{
		{Title: "Length"},
		{Title: "Temperature"},
		{Title: "Time"},
		{Title: "History", Detail: "past conversions"},
		{Title: "Settings"},
	}
}

func typeInto(p *NavPalette, s string) *NavPalette {
	for _, r := range s {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return p
}

func TestNavPalette_ShowHide(t *testing.T) {
	p := NewNavPalette(testTheme(), paletteItems())
	if p.Visible() || p.View() != "" {
		t.Fatal("palette should start hidden")
	}

	p.Show()
	if !p.Visible() {
		t.Fatal("Show should open the palette")
	}
	if got := len(p.Matches()); got != 5 {
		t.Errorf("empty query should list every item, got %d", got)
	}
	if !strings.Contains(p.View(), "Go to") {
		t.Error("view should contain the header")
	}

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.Visible() {
		t.Error("esc should close the palette")
	}
}

func TestNavPalette_FilterAndSelect(t *testing.T) {
	p := NewNavPalette(testTheme(), paletteItems())
	p.Show()

	p = typeInto(p, "tmp")
	matches := p.Matches()
	if len(matches) == 0 || matches[0] != "Temperature" {
		t.Fatalf("expected Temperature first, got %v", matches)
	}

	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should produce a selection command")
	}
	msg, ok := cmd().(PaletteSelectMsg)
	if !ok {
		t.Fatalf("expected PaletteSelectMsg, got %T", cmd())
	}
	if msg.Index != 1 || msg.Item.Title != "Temperature" {
		t.Errorf("selected %+v", msg)
	}
	if p.Visible() {
		t.Error("selecting should close the palette")
	}
}

func TestNavPalette_Navigation(t *testing.T) {
	p := NewNavPalette(testTheme(), paletteItems())
	p.Show()

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := cmd().(PaletteSelectMsg)
	if msg.Item.Title != "Settings" {
		t.Errorf("up from the first item should wrap to the last, got %q", msg.Item.Title)
	}
}

func TestNavPalette_NoMatches(t *testing.T) {
	p := NewNavPalette(testTheme(), paletteItems())
	p.Show()
	p = typeInto(p, "zzz")

	if len(p.Matches()) != 0 {
		t.Fatalf("expected no matches, got %v", p.Matches())
	}
	if !strings.Contains(p.View(), "No matches") {
		t.Error("view should say there are no matches")
	}
	if _, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("enter with no matches should do nothing")
	}
}
