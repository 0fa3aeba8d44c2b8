// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package settings

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/unitconv/internal/convert"
	"github.com/jeranaias/unitconv/internal/session"
)

func seededState(t *testing.T) *session.State {
	t.Helper()
	st := session.New(session.DefaultOptions())
	st.AddFavorite(session.Favorite{
		Category: convert.Length, Value: 1, FromUnit: "Kilometers", ToUnit: "Meters", Result: 1000,
	})
	return st
}

type snapshotOf struct {
	theme    session.Theme
	decimals int
	favs     []session.Favorite
}

func capture(st *session.State) snapshotOf {
	return snapshotOf{theme: st.Theme(), decimals: st.DecimalPlaces(), favs: st.Favorites()}
}

// =============================================================================
// EXPORT
// =============================================================================

func TestExport_Shape(t *testing.T) {
	st := seededState(t)
	require.NoError(t, st.SetDecimalPlaces(4))

	data, err := Marshal(Export(st))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "light", raw["theme"])
	assert.EqualValues(t, 4, raw["decimal_places"])

	favs, ok := raw["favorites"].([]any)
	require.True(t, ok)
	require.Len(t, favs, 1)
	fav := favs[0].(map[string]any)
	assert.Equal(t, "Length", fav["category"])
	assert.Equal(t, "Kilometers", fav["from_unit"])
	assert.Equal(t, "Meters", fav["to_unit"])
	assert.EqualValues(t, 1000, fav["result"])
}

func TestExport_EmptyFavoritesIsArray(t *testing.T) {
	data, err := Marshal(Export(session.New(session.DefaultOptions())))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"favorites": []`)
}

func TestExportImport_RoundTrip(t *testing.T) {
	src := seededState(t)
	src.ToggleTheme()
	require.NoError(t, src.SetDecimalPlaces(3))

	data, err := Marshal(Export(src))
	require.NoError(t, err)

	dst := session.New(session.DefaultOptions())
	applied, err := Import(data, dst)
	require.NoError(t, err)
	assert.True(t, applied.Theme && applied.Favorites && applied.DecimalPlaces)
	assert.Equal(t, capture(src), capture(dst))
}

// =============================================================================
// IMPORT
// =============================================================================

func TestImport_OnlyPresentKeys(t *testing.T) {
	st := seededState(t)
	before := capture(st)

	applied, err := Import([]byte(`{"theme":"dark"}`), st)
	require.NoError(t, err)
	assert.Equal(t, Applied{Theme: true}, applied)
	assert.Equal(t, "theme", applied.String())

	assert.Equal(t, session.ThemeDark, st.Theme())
	assert.Equal(t, before.decimals, st.DecimalPlaces())
	assert.Equal(t, before.favs, st.Favorites())
}

func TestImport_EmptyObject(t *testing.T) {
	st := seededState(t)
	before := capture(st)

	applied, err := Import([]byte(`{"unrelated": true}`), st)
	require.NoError(t, err)
	assert.True(t, applied.Empty())
	assert.Equal(t, "nothing", applied.String())
	assert.Equal(t, before, capture(st))
}

func TestImport_ReplacesFavorites(t *testing.T) {
	st := seededState(t)
	doc := `{"favorites":[
		{"category":"Temperature","value":100,"from_unit":"Celsius","to_unit":"Fahrenheit","result":212},
		{"category":"temperature","value":100,"from_unit":"Celsius","to_unit":"Fahrenheit","result":212},
		{"category":"Data Size","value":1,"from_unit":"Gigabytes","to_unit":"Megabytes","result":1024}
	]}`

	applied, err := Import([]byte(doc), st)
	require.NoError(t, err)
	assert.Equal(t, 3, applied.FavoriteCount)

	favs := st.Favorites()
	require.Len(t, favs, 2, "duplicate favorite should collapse")
	assert.Equal(t, convert.Temperature, favs[0].Category)
	assert.Equal(t, convert.Data, favs[1].Category)
}

func TestImport_MalformedLeavesStateUntouched(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{"not json", `{"theme": "dark"`, ""},
		{"empty input", ``, ""},
		{"array root", `[1,2,3]`, ""},
		{"theme not string", `{"theme": 1}`, "theme"},
		{"unknown theme", `{"theme": "solarized", "decimal_places": 2}`, "theme"},
		{"decimals out of range", `{"theme": "dark", "decimal_places": 11}`, "decimal_places"},
		{"decimals fractional", `{"decimal_places": 2.5}`, "decimal_places"},
		{"decimals string", `{"decimal_places": "2"}`, "decimal_places"},
		{"favorites not array", `{"favorites": {}}`, "favorites"},
		{"favorite not object", `{"favorites": [42]}`, "favorites[0]"},
		{"favorite missing field", `{"favorites": [{"category":"Length","value":1,"from_unit":"Meters","to_unit":"Feet"}]}`, "favorites[0]"},
		{"favorite bad value", `{"favorites": [{"category":"Length","value":"1","from_unit":"Meters","to_unit":"Feet","result":3.28}]}`, "favorites[0]"},
		{"favorite bad category", `{"favorites": [{"category":"Luminance","value":1,"from_unit":"Lux","to_unit":"Nits","result":1}]}`, "favorites[0]"},
		{"favorite bad unit", `{"theme":"dark","favorites": [{"category":"Length","value":1,"from_unit":"Meters","to_unit":"Parsecs","result":1}]}`, "favorites[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := seededState(t)
			before := capture(st)

			applied, err := Import([]byte(tt.doc), st)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedImport), "error %v should match ErrMalformedImport", err)

			var mErr *MalformedImportError
			require.True(t, errors.As(err, &mErr))
			assert.Equal(t, tt.field, mErr.Field)

			assert.True(t, applied.Empty())
			assert.Equal(t, before, capture(st), "state changed after rejected import")
		})
	}
}

func TestImport_UnitErrorIsReachable(t *testing.T) {
	st := seededState(t)
	doc := `{"favorites": [{"category":"Length","value":1,"from_unit":"Meters","to_unit":"Parsecs","result":1}]}`
	_, err := Import([]byte(doc), st)
	assert.True(t, errors.Is(err, convert.ErrInvalidUnit))
}

// =============================================================================
// SNAPSHOT AND FILES
// =============================================================================

func TestSnapshot_RoundTrip(t *testing.T) {
	src := seededState(t)
	src.ToggleTheme()

	data, err := MarshalSnapshot(Export(src))
	require.NoError(t, err)

	dst := session.New(session.DefaultOptions())
	_, err = ImportSnapshot(data, dst)
	require.NoError(t, err)
	assert.Equal(t, capture(src), capture(dst))
}

func TestSnapshot_Malformed(t *testing.T) {
	st := seededState(t)
	before := capture(st)
	_, err := ImportSnapshot([]byte{0xc1, 0x00}, st)
	assert.ErrorIs(t, err, ErrMalformedImport)
	assert.Equal(t, before, capture(st))
}

func TestSaveLoadFile(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"settings.json", "settings.msgpack"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			src := seededState(t)
			require.NoError(t, src.SetDecimalPlaces(5))
			require.NoError(t, SaveFile(path, src))

			dst := session.New(session.DefaultOptions())
			applied, err := LoadFile(path, dst)
			require.NoError(t, err)
			assert.Equal(t, 1, applied.FavoriteCount)
			assert.Equal(t, capture(src), capture(dst))
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	st := seededState(t)
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"), st)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.False(t, errors.Is(err, ErrMalformedImport))
}

func TestRestore(t *testing.T) {
	dir := t.TempDir()
	st := seededState(t)
	before := Export(st)

	applied, err := Restore(filepath.Join(dir, "state.json"), st)
	require.NoError(t, err)
	assert.True(t, applied.Empty())
	assert.Equal(t, before, Export(st))

	path := filepath.Join(dir, "saved.json")
	require.NoError(t, SaveFile(path, st))

	fresh := session.New(session.DefaultOptions())
	applied, err = Restore(path, fresh)
	require.NoError(t, err)
	assert.True(t, applied.Theme)
	assert.Equal(t, before, Export(fresh))
}
