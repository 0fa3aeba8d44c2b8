// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jeranaias/unitconv/internal/convert"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	base := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	n := 0
	opts := DefaultOptions()
	opts.Now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
	return New(opts)
}

// =============================================================================
// HISTORY
// =============================================================================

func TestHistory_CapEvictsOldest(t *testing.T) {
	st := newTestState(t)

	for i := 0; i < DefaultMaxHistory+1; i++ {
		st.AddHistory(Request{Category: convert.Length, Value: float64(i), From: "Meters", To: "Feet"}, 0)
	}

	h := st.History()
	if len(h) != DefaultMaxHistory {
		t.Fatalf("len(History()) = %d, want %d", len(h), DefaultMaxHistory)
	}
	if h[0].Value != 1 {
		t.Errorf("oldest entry value = %v, want 1 (entry 0 evicted)", h[0].Value)
	}
	if h[len(h)-1].Value != float64(DefaultMaxHistory) {
		t.Errorf("newest entry value = %v, want %d", h[len(h)-1].Value, DefaultMaxHistory)
	}
	for i := 1; i < len(h); i++ {
		if !h[i].Timestamp.After(h[i-1].Timestamp) {
			t.Fatalf("history not in chronological order at %d", i)
		}
	}
}

func TestHistory_SetMaxHistoryTrims(t *testing.T) {
	st := newTestState(t)
	for i := 0; i < 10; i++ {
		st.AddHistory(Request{Category: convert.Time, Value: float64(i), From: "Hours", To: "Minutes"}, 0)
	}
	st.SetMaxHistory(3)
	h := st.History()
	if len(h) != 3 || h[0].Value != 7 {
		t.Fatalf("after SetMaxHistory(3): len=%d first=%v, want 3 entries starting at 7", len(h), h[0].Value)
	}
	st.SetMaxHistory(0)
	if st.MaxHistory() != 3 {
		t.Errorf("SetMaxHistory(0) changed the cap to %d", st.MaxHistory())
	}
}

func TestConvert_RecordsOnlySuccess(t *testing.T) {
	st := newTestState(t)

	entry, err := st.Convert(Request{Category: convert.Length, Value: 1, From: "Kilometers", To: "Meters"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if entry.Result != 1000 {
		t.Errorf("Result = %v, want 1000", entry.Result)
	}
	if entry.ID == "" {
		t.Error("history entry has no ID")
	}

	if _, err := st.Convert(Request{Category: convert.Length, Value: 1, From: "Lightyears", To: "Meters"}); err == nil {
		t.Fatal("expected error for unknown unit")
	}
	if st.HistoryLen() != 1 {
		t.Errorf("HistoryLen() = %d, want 1", st.HistoryLen())
	}
}

func TestCategoryCounts(t *testing.T) {
	st := newTestState(t)
	st.AddHistory(Request{Category: convert.Length}, 0)
	st.AddHistory(Request{Category: convert.Length}, 0)
	st.AddHistory(Request{Category: convert.Data}, 0)

	counts := st.CategoryCounts()
	if counts[convert.Length] != 2 || counts[convert.Data] != 1 || len(counts) != 2 {
		t.Errorf("CategoryCounts() = %v", counts)
	}

	st.ClearHistory()
	if st.HistoryLen() != 0 || len(st.CategoryCounts()) != 0 {
		t.Error("ClearHistory() left entries behind")
	}
}

// =============================================================================
// FAVORITES
// =============================================================================

func TestFavorites_Dedup(t *testing.T) {
	st := newTestState(t)
	fav := Favorite{Category: convert.Weight, Value: 2, FromUnit: "Pounds", ToUnit: "Kilograms", Result: 0.907184}

	if !st.AddFavorite(fav) {
		t.Fatal("first AddFavorite() returned false")
	}
	// Same conversion with a different stored result is still a duplicate.
	dup := fav
	dup.Result = 123
	if st.AddFavorite(dup) {
		t.Error("duplicate AddFavorite() returned true")
	}
	if n := len(st.Favorites()); n != 1 {
		t.Fatalf("len(Favorites()) = %d, want 1", n)
	}

	other := fav
	other.Value = 3
	if !st.AddFavorite(other) {
		t.Error("AddFavorite() with a different value returned false")
	}
	if !st.IsFavorite(Request{Category: convert.Weight, Value: 3, From: "Pounds", To: "Kilograms"}) {
		t.Error("IsFavorite() = false for saved conversion")
	}
}

func TestFavorites_RemoveAndClear(t *testing.T) {
	st := newTestState(t)
	for i := 0; i < 3; i++ {
		st.AddFavorite(Favorite{Category: convert.Speed, Value: float64(i), FromUnit: "Knots", ToUnit: "Miles per hour"})
	}

	if st.RemoveFavorite(5) || st.RemoveFavorite(-1) {
		t.Error("RemoveFavorite() accepted an out-of-range index")
	}
	if !st.RemoveFavorite(1) {
		t.Fatal("RemoveFavorite(1) returned false")
	}
	favs := st.Favorites()
	if len(favs) != 2 || favs[0].Value != 0 || favs[1].Value != 2 {
		t.Errorf("Favorites() after remove = %+v", favs)
	}

	st.ClearFavorites()
	if len(st.Favorites()) != 0 {
		t.Error("ClearFavorites() left entries behind")
	}
}

// =============================================================================
// SETTINGS
// =============================================================================

func TestThemeAndDecimals(t *testing.T) {
	st := newTestState(t)
	if st.Theme() != ThemeLight {
		t.Errorf("default theme = %q, want light", st.Theme())
	}
	if got := st.ToggleTheme(); got != ThemeDark {
		t.Errorf("ToggleTheme() = %q, want dark", got)
	}
	if err := st.SetTheme("sepia"); err == nil {
		t.Error("SetTheme(sepia) succeeded")
	}

	if st.DecimalPlaces() != 8 {
		t.Errorf("default decimals = %d, want 8", st.DecimalPlaces())
	}
	if err := st.SetDecimalPlaces(11); err == nil {
		t.Error("SetDecimalPlaces(11) succeeded")
	}
	if err := st.SetDecimalPlaces(3); err != nil {
		t.Fatalf("SetDecimalPlaces(3) error = %v", err)
	}
	if got := st.Format(1.0 / 3.0); got != "0.333" {
		t.Errorf("Format() = %q, want 0.333", got)
	}
}

func TestApply_AllOrNothing(t *testing.T) {
	st := newTestState(t)
	st.AddFavorite(Favorite{Category: convert.Area, Value: 1, FromUnit: "Acres", ToUnit: "Hectares"})

	dark := ThemeDark
	bad := 42
	err := st.Apply(Update{Theme: &dark, DecimalPlaces: &bad, SetFavorites: true})
	if err == nil {
		t.Fatal("Apply() with invalid decimals succeeded")
	}
	if st.Theme() != ThemeLight || len(st.Favorites()) != 1 {
		t.Error("failed Apply() modified state")
	}

	two := 2
	fav := Favorite{Category: convert.Energy, Value: 1, FromUnit: "Joules", ToUnit: "Calories"}
	err = st.Apply(Update{Theme: &dark, DecimalPlaces: &two, SetFavorites: true, Favorites: []Favorite{fav, fav}})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if st.Theme() != ThemeDark || st.DecimalPlaces() != 2 {
		t.Error("Apply() did not set theme and decimals")
	}
	if favs := st.Favorites(); len(favs) != 1 || favs[0] != fav {
		t.Errorf("Favorites() after Apply() = %+v, want one deduplicated entry", favs)
	}
}

func TestParseTheme(t *testing.T) {
	if th, err := ParseTheme(" Dark "); err != nil || th != ThemeDark {
		t.Errorf("ParseTheme(Dark) = %q, %v", th, err)
	}
	if _, err := ParseTheme("blue"); err == nil {
		t.Error("ParseTheme(blue) succeeded")
	}
}

func TestState_IDAndIsolation(t *testing.T) {
	a := New(DefaultOptions())
	b := New(DefaultOptions())
	if !strings.HasPrefix(a.ID(), "sess_") || a.ID() == b.ID() {
		t.Errorf("session IDs %q and %q", a.ID(), b.ID())
	}
	a.AddFavorite(Favorite{Category: convert.Length, Value: 1, FromUnit: "Feet", ToUnit: "Meters"})
	if len(b.Favorites()) != 0 {
		t.Error("sessions share favorites")
	}
}

func TestState_ConcurrentAccess(t *testing.T) {
	st := New(DefaultOptions())
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(v int) {
			defer wg.Done()
			st.Convert(Request{Category: convert.Data, Value: float64(v), From: "Bytes", To: "Bits"})
			st.AddFavorite(Favorite{Category: convert.Data, Value: float64(v % 5), FromUnit: "Bytes", ToUnit: "Bits"})
		}(i)
		go func() {
			defer wg.Done()
			_ = st.History()
			_ = st.Favorites()
			_ = st.CategoryCounts()
		}()
	}
	wg.Wait()

	if n := len(st.Favorites()); n != 5 {
		t.Errorf("len(Favorites()) = %d, want 5", n)
	}
	if st.HistoryLen() != DefaultMaxHistory {
		t.Errorf("HistoryLen() = %d, want %d", st.HistoryLen(), DefaultMaxHistory)
	}
}
