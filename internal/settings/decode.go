// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package settings

import (
	"errors"
	"fmt"
	"math"

	"github.com/tidwall/gjson"
)

var favoriteFields = []string{"category", "value", "from_unit", "to_unit", "result"}

// decodeJSON parses a settings document, recording which keys exist.
// Unknown keys are ignored.
func decodeJSON(data []byte) (document, error) {
	var doc document

	if !gjson.ValidBytes(data) {
		return doc, &MalformedImportError{Err: errors.New("invalid JSON")}
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return doc, &MalformedImportError{Err: fmt.Errorf("expected a JSON object, got %s", kind(root))}
	}

	if r := root.Get("theme"); r.Exists() {
		if r.Type != gjson.String {
			return doc, malformed("theme", "expected string, got %s", kind(r))
		}
		s := r.String()
		doc.Theme = &s
	}

	if r := root.Get("decimal_places"); r.Exists() {
		n, err := integer(r)
		if err != nil {
			return doc, &MalformedImportError{Field: "decimal_places", Err: err}
		}
		doc.DecimalPlaces = &n
	}

	if r := root.Get("favorites"); r.Exists() {
		if !r.IsArray() {
			return doc, malformed("favorites", "expected array, got %s", kind(r))
		}
		items := r.Array()
		favs := make([]FavoriteRecord, 0, len(items))
		for i, item := range items {
			rec, err := favoriteRecord(item)
			if err != nil {
				return doc, &MalformedImportError{Field: fmt.Sprintf("favorites[%d]", i), Err: err}
			}
			favs = append(favs, rec)
		}
		doc.Favorites = &favs
	}

	return doc, nil
}

func favoriteRecord(item gjson.Result) (FavoriteRecord, error) {
	if !item.IsObject() {
		return FavoriteRecord{}, fmt.Errorf("expected object, got %s", kind(item))
	}
	fields := item.Map()
	for _, name := range favoriteFields {
		if _, ok := fields[name]; !ok {
			return FavoriteRecord{}, fmt.Errorf("missing %q", name)
		}
	}

	for _, name := range []string{"category", "from_unit", "to_unit"} {
		if fields[name].Type != gjson.String {
			return FavoriteRecord{}, fmt.Errorf("%s: expected string, got %s", name, kind(fields[name]))
		}
	}
	for _, name := range []string{"value", "result"} {
		if fields[name].Type != gjson.Number {
			return FavoriteRecord{}, fmt.Errorf("%s: expected number, got %s", name, kind(fields[name]))
		}
	}

	return FavoriteRecord{
		Category: fields["category"].String(),
		Value:    fields["value"].Float(),
		FromUnit: fields["from_unit"].String(),
		ToUnit:   fields["to_unit"].String(),
		Result:   fields["result"].Float(),
	}, nil
}

// integer accepts whole JSON numbers only (8 or 8.0, not 8.5).
func integer(r gjson.Result) (int, error) {
	if r.Type != gjson.Number {
		return 0, fmt.Errorf("expected integer, got %s", kind(r))
	}
	f := r.Float()
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("expected integer, got %s", r.Raw)
	}
	return int(f), nil
}

// kind names the JSON type of r for error messages.
func kind(r gjson.Result) string {
	switch {
	case r.IsObject():
		return "object"
	case r.IsArray():
		return "array"
	}
	switch r.Type {
	case gjson.String:
		return "string"
	case gjson.Number:
		return "number"
	case gjson.True, gjson.False:
		return "boolean"
	case gjson.Null:
		return "null"
	}
	return "nothing"
}
