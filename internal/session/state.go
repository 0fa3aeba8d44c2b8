// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/unitconv/internal/convert"
	"github.com/jeranaias/unitconv/internal/format"
)

// DefaultMaxHistory is the number of history entries kept by default.
const DefaultMaxHistory = 50

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures a new State.
type Options struct {
	// MaxHistory caps the history length. Values < 1 use DefaultMaxHistory.
	MaxHistory int

	// Theme is the initial theme (default: light).
	Theme Theme

	// DecimalPlaces is the initial number of displayed significant digits.
	DecimalPlaces int

	// Engine performs conversions. Nil uses convert.Default().
	Engine *convert.Engine

	// Now returns the current time. Nil uses time.Now.
	Now func() time.Time
}

// DefaultOptions returns the default session options.
func DefaultOptions() Options {
	return Options{
		MaxHistory:    DefaultMaxHistory,
		Theme:         ThemeLight,
		DecimalPlaces: format.DefaultDigits,
	}
}

// =============================================================================
// STATE
// =============================================================================

// State is the mutable state of one session.
type State struct {
	mu sync.Mutex

	id         string
	startedAt  time.Time
	theme      Theme
	decimals   int
	maxHistory int
	history    []HistoryEntry
	favorites  []Favorite

	engine *convert.Engine
	now    func() time.Time
}

// New creates a session with the given options.
func New(opts Options) *State {
	if opts.MaxHistory < 1 {
		opts.MaxHistory = DefaultMaxHistory
	}
	if opts.Theme != ThemeDark {
		opts.Theme = ThemeLight
	}
	if opts.Engine == nil {
		opts.Engine = convert.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &State{
		id:         "sess_" + uuid.NewString(),
		startedAt:  opts.Now(),
		theme:      opts.Theme,
		decimals:   format.ClampDigits(opts.DecimalPlaces),
		maxHistory: opts.MaxHistory,
		history:    make([]HistoryEntry, 0, opts.MaxHistory),
		engine:     opts.Engine,
		now:        opts.Now,
	}
}

// ID returns the session identifier.
func (s *State) ID() string { return s.id }

// StartedAt returns when the session was created.
func (s *State) StartedAt() time.Time { return s.startedAt }

// Engine returns the conversion engine used by the session.
func (s *State) Engine() *convert.Engine { return s.engine }

// -----------------------------------------------------------------------------
// Conversion
// -----------------------------------------------------------------------------

// Convert runs req through the engine and records it in the history.
// Failed conversions are not recorded.
func (s *State) Convert(req Request) (HistoryEntry, error) {
	result, err := s.engine.Convert(req.Category, req.Value, req.From, req.To)
	if err != nil {
		log.Printf("CONVERT_FAILED | session=%s category=%s from=%q to=%q error=%v",
			s.id, req.Category, req.From, req.To, err)
		return HistoryEntry{}, err
	}
	return s.AddHistory(req, result), nil
}

// -----------------------------------------------------------------------------
// History
// -----------------------------------------------------------------------------

// AddHistory appends a completed conversion. When the history is full the
// oldest entry is evicted.
func (s *State) AddHistory(req Request, result float64) HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := HistoryEntry{
		ID:        uuid.NewString(),
		Timestamp: s.now(),
		Category:  req.Category,
		Value:     req.Value,
		FromUnit:  req.From,
		ToUnit:    req.To,
		Result:    result,
	}

	s.history = append(s.history, entry)
	if over := len(s.history) - s.maxHistory; over > 0 {
		// Evict from the front in place; the backing array stays at maxHistory.
		copy(s.history, s.history[over:])
		s.history = s.history[:s.maxHistory]
	}
	return entry
}

// History returns a copy of the history, oldest first.
func (s *State) History() []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]HistoryEntry(nil), s.history...)
}

// HistoryLen returns the number of history entries.
func (s *State) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

// MaxHistory returns the history cap.
func (s *State) MaxHistory() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxHistory
}

// SetMaxHistory changes the history cap, evicting the oldest entries if the
// history is now over it. Values < 1 are ignored.
func (s *State) SetMaxHistory(n int) {
	if n < 1 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxHistory = n
	if over := len(s.history) - n; over > 0 {
		s.history = append([]HistoryEntry(nil), s.history[over:]...)
	}
}

// ClearHistory removes all history entries.
func (s *State) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = s.history[:0]
}

// CategoryCounts returns the number of history entries per category.
func (s *State) CategoryCounts() map[convert.Category]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[convert.Category]int)
	for _, h := range s.history {
		counts[h.Category]++
	}
	return counts
}

// -----------------------------------------------------------------------------
// Favorites
// -----------------------------------------------------------------------------

// AddFavorite appends fav unless a favorite with the same category, value
// and units already exists. Returns false for duplicates.
func (s *State) AddFavorite(fav Favorite) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.favorites {
		if f.sameConversion(fav) {
			return false
		}
	}
	s.favorites = append(s.favorites, fav)
	return true
}

// IsFavorite reports whether req is already saved as a favorite.
func (s *State) IsFavorite(req Request) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	probe := Favorite{Category: req.Category, Value: req.Value, FromUnit: req.From, ToUnit: req.To}
	for _, f := range s.favorites {
		if f.sameConversion(probe) {
			return true
		}
	}
	return false
}

// RemoveFavorite removes the favorite at index i. Returns false when i is
// out of range.
func (s *State) RemoveFavorite(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.favorites) {
		return false
	}
	s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
	return true
}

// ClearFavorites removes all favorites.
func (s *State) ClearFavorites() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.favorites = nil
}

// Favorites returns a copy of the favorites in insertion order.
func (s *State) Favorites() []Favorite {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Favorite(nil), s.favorites...)
}

// -----------------------------------------------------------------------------
// Display settings
// -----------------------------------------------------------------------------

// Theme returns the current theme.
func (s *State) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// SetTheme sets the theme. Only light and dark are accepted.
func (s *State) SetTheme(t Theme) error {
	if t != ThemeLight && t != ThemeDark {
		return fmt.Errorf("invalid theme %q: must be light or dark", t)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = t
	return nil
}

// ToggleTheme flips between light and dark and returns the new theme.
func (s *State) ToggleTheme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = s.theme.Toggle()
	return s.theme
}

// DecimalPlaces returns the number of displayed significant digits.
func (s *State) DecimalPlaces() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.decimals
}

// SetDecimalPlaces sets the number of displayed significant digits (0-10).
func (s *State) SetDecimalPlaces(n int) error {
	if n < format.MinDigits || n > format.MaxDigits {
		return fmt.Errorf("decimal places must be %d-%d, got %d", format.MinDigits, format.MaxDigits, n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decimals = n
	return nil
}

// Format renders v with the session's precision.
func (s *State) Format(v float64) string {
	return format.Result(v, s.DecimalPlaces())
}

// =============================================================================
// BULK UPDATES
// =============================================================================

// Update is a set of settings changes applied together. Nil fields are
// left unchanged.
type Update struct {
	Theme         *Theme
	Favorites     []Favorite
	SetFavorites  bool // replace favorites with Favorites, even when empty
	DecimalPlaces *int
}

// Apply validates u and applies it in one step. On error nothing changes.
// Replacement favorites are de-duplicated, first occurrence wins.
func (s *State) Apply(u Update) error {
	if u.Theme != nil && *u.Theme != ThemeLight && *u.Theme != ThemeDark {
		return fmt.Errorf("invalid theme %q: must be light or dark", *u.Theme)
	}
	if u.DecimalPlaces != nil && (*u.DecimalPlaces < format.MinDigits || *u.DecimalPlaces > format.MaxDigits) {
		return fmt.Errorf("decimal places must be %d-%d, got %d", format.MinDigits, format.MaxDigits, *u.DecimalPlaces)
	}

	var favs []Favorite
	if u.SetFavorites {
		for _, f := range u.Favorites {
			dup := false
			for _, kept := range favs {
				if kept.sameConversion(f) {
					dup = true
					break
				}
			}
			if !dup {
				favs = append(favs, f)
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if u.Theme != nil {
		s.theme = *u.Theme
	}
	if u.DecimalPlaces != nil {
		s.decimals = *u.DecimalPlaces
	}
	if u.SetFavorites {
		s.favorites = favs
	}
	return nil
}
