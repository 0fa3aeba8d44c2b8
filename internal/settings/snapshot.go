// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package settings

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/jeranaias/unitconv/internal/session"
)

// snapshot mirrors Settings with optional fields for decoding.
type snapshot struct {
	Theme         *string           `msgpack:"theme,omitempty"`
	Favorites     *[]FavoriteRecord `msgpack:"favorites,omitempty"`
	DecimalPlaces *int              `msgpack:"decimal_places,omitempty"`
}

// MarshalSnapshot encodes s as MessagePack.
func MarshalSnapshot(s Settings) ([]byte, error) {
	data, err := msgpack.Marshal(&s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// ImportSnapshot is Import for a MessagePack snapshot. Validation rules are
// the same as for JSON.
func ImportSnapshot(data []byte, st *session.State) (Applied, error) {
	var snap snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return Applied{}, &MalformedImportError{Err: fmt.Errorf("invalid snapshot: %w", err)}
	}
	return apply(document{
		Theme:         snap.Theme,
		Favorites:     snap.Favorites,
		DecimalPlaces: snap.DecimalPlaces,
	}, st)
}
