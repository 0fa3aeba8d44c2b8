// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package settings reads and writes the settings export file.
//
// The file is a JSON object:
//
//	{
//	  "theme": "light",
//	  "favorites": [
//	    {"category": "Length", "value": 1, "from_unit": "Kilometers",
//	     "to_unit": "Meters", "result": 1000}
//	  ],
//	  "decimal_places": 8
//	}
//
// Import applies only the keys that are present. The whole document is
// validated before anything is applied, so a malformed file never leaves a
// session half-updated. A MessagePack snapshot with the same shape is
// supported for compact backups.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/tidwall/pretty"

	"github.com/jeranaias/unitconv/internal/convert"
	"github.com/jeranaias/unitconv/internal/session"
)

// ErrMalformedImport matches every import failure via errors.Is.
var ErrMalformedImport = errors.New("malformed settings import")

// MalformedImportError describes why a settings document was rejected.
type MalformedImportError struct {
	Field string // offending key path, empty for document-level errors
	Err   error
}

func (e *MalformedImportError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed settings: %v", e.Err)
	}
	return fmt.Sprintf("malformed settings: %s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying cause.
func (e *MalformedImportError) Unwrap() error { return e.Err }

// Is reports whether target is ErrMalformedImport.
func (e *MalformedImportError) Is(target error) bool {
	return target == ErrMalformedImport
}

func malformed(field string, format string, args ...any) error {
	return &MalformedImportError{Field: field, Err: fmt.Errorf(format, args...)}
}

// =============================================================================
// WIRE TYPES
// =============================================================================

// Settings is the exported settings document.
type Settings struct {
	Theme         string           `json:"theme" msgpack:"theme"`
	Favorites     []FavoriteRecord `json:"favorites" msgpack:"favorites"`
	DecimalPlaces int              `json:"decimal_places" msgpack:"decimal_places"`
}

// FavoriteRecord is a favorite as stored in the settings file.
type FavoriteRecord struct {
	Category string  `json:"category" msgpack:"category"`
	Value    float64 `json:"value" msgpack:"value"`
	FromUnit string  `json:"from_unit" msgpack:"from_unit"`
	ToUnit   string  `json:"to_unit" msgpack:"to_unit"`
	Result   float64 `json:"result" msgpack:"result"`
}

// Applied records which keys an import changed.
type Applied struct {
	Theme         bool
	Favorites     bool
	DecimalPlaces bool
	FavoriteCount int
}

// Empty reports whether the import changed nothing.
func (a Applied) Empty() bool {
	return !a.Theme && !a.Favorites && !a.DecimalPlaces
}

// String summarises the applied keys, e.g. "theme, 3 favorites".
func (a Applied) String() string {
	var parts []string
	if a.Theme {
		parts = append(parts, "theme")
	}
	if a.Favorites {
		parts = append(parts, fmt.Sprintf("%d favorites", a.FavoriteCount))
	}
	if a.DecimalPlaces {
		parts = append(parts, "decimal places")
	}
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, ", ")
}

// =============================================================================
// EXPORT
// =============================================================================

// Export captures the session's settings.
func Export(st *session.State) Settings {
	favs := st.Favorites()
	out := Settings{
		Theme:         string(st.Theme()),
		Favorites:     make([]FavoriteRecord, 0, len(favs)),
		DecimalPlaces: st.DecimalPlaces(),
	}
	for _, f := range favs {
		out.Favorites = append(out.Favorites, FavoriteRecord{
			Category: f.Category.String(),
			Value:    f.Value,
			FromUnit: f.FromUnit,
			ToUnit:   f.ToUnit,
			Result:   f.Result,
		})
	}
	return out
}

// Marshal encodes s as indented JSON with a trailing newline.
func Marshal(s Settings) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	return pretty.Pretty(data), nil
}

// =============================================================================
// IMPORT
// =============================================================================

// document is a decoded settings file. Nil fields were absent.
type document struct {
	Theme         *string
	Favorites     *[]FavoriteRecord
	DecimalPlaces *int
}

// Import validates a JSON settings document and applies the keys present
// to st. Any error is a *MalformedImportError and st is left unchanged.
func Import(data []byte, st *session.State) (Applied, error) {
	doc, err := decodeJSON(data)
	if err != nil {
		log.Printf("SETTINGS_IMPORT_REJECTED | session=%s error=%v", st.ID(), err)
		return Applied{}, err
	}
	return apply(doc, st)
}

func apply(doc document, st *session.State) (Applied, error) {
	upd, applied, err := doc.update(st.Engine())
	if err != nil {
		log.Printf("SETTINGS_IMPORT_REJECTED | session=%s error=%v", st.ID(), err)
		return Applied{}, err
	}
	if err := st.Apply(upd); err != nil {
		return Applied{}, &MalformedImportError{Err: err}
	}
	log.Printf("SETTINGS_IMPORT | session=%s applied=%q", st.ID(), applied.String())
	return applied, nil
}

// update validates doc against the engine and builds a session update.
func (d document) update(engine *convert.Engine) (session.Update, Applied, error) {
	var (
		upd     session.Update
		applied Applied
	)

	if d.Theme != nil {
		th, err := session.ParseTheme(*d.Theme)
		if err != nil {
			return upd, applied, &MalformedImportError{Field: "theme", Err: err}
		}
		upd.Theme = &th
		applied.Theme = true
	}

	if d.DecimalPlaces != nil {
		n := *d.DecimalPlaces
		if n < 0 || n > 10 {
			return upd, applied, malformed("decimal_places", "must be 0-10, got %d", n)
		}
		upd.DecimalPlaces = &n
		applied.DecimalPlaces = true
	}

	if d.Favorites != nil {
		favs := make([]session.Favorite, 0, len(*d.Favorites))
		for i, rec := range *d.Favorites {
			fav, err := rec.favorite(engine)
			if err != nil {
				return upd, applied, &MalformedImportError{Field: fmt.Sprintf("favorites[%d]", i), Err: err}
			}
			favs = append(favs, fav)
		}
		upd.Favorites = favs
		upd.SetFavorites = true
		applied.Favorites = true
		applied.FavoriteCount = len(favs)
	}

	return upd, applied, nil
}

// favorite checks rec against the engine's tables.
func (rec FavoriteRecord) favorite(engine *convert.Engine) (session.Favorite, error) {
	c, err := convert.ParseCategory(rec.Category)
	if err != nil {
		return session.Favorite{}, err
	}
	for _, u := range []string{rec.FromUnit, rec.ToUnit} {
		if !engine.Has(c, u) {
			return session.Favorite{}, &convert.UnitError{Category: c, Unit: u}
		}
	}
	return session.Favorite{
		Category: c,
		Value:    rec.Value,
		FromUnit: rec.FromUnit,
		ToUnit:   rec.ToUnit,
		Result:   rec.Result,
	}, nil
}
