// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the Bubble Tea model of the unitconv TUI.
//
// The screen is a sidebar with the ten categories, History, Favorites and
// Settings, a page area and a help footer. All category pages share one
// conversion page: a value field, two unit selectors, the result with a
// comparison chart and the formula panel. Errors never leave the model;
// they are shown as toasts.
//
// Key handling order: the Ctrl+P palette when open, then global bindings,
// then the sidebar or the current page. See KeyMap for the bindings.
//
// The model works on a *session.State owned by the caller, who saves it
// after the program exits.
package app
