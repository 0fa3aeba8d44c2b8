// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the per-user state of a unitconv session.
//
// A State is created explicitly and passed to the front-ends; nothing in
// this package is global. It owns:
//
//   - the conversion history, capped (50 by default) with the oldest entry
//     evicted first
//   - the favorites list, where no two entries share the same category,
//     value, from-unit and to-unit
//   - the theme (light or dark) and the number of displayed digits
//
// # Usage
//
//	st := session.New(session.DefaultOptions())
//	entry, err := st.Convert(session.Request{
//	    Category: convert.Length, Value: 1, From: "Kilometers", To: "Meters",
//	})
//	st.AddFavorite(entry.Favorite())
//
// All methods are safe for concurrent use.
package session
