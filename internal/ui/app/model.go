// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"log"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/unitconv/internal/config"
	"github.com/jeranaias/unitconv/internal/convert"
	"github.com/jeranaias/unitconv/internal/session"
	"github.com/jeranaias/unitconv/internal/ui/components"
	"github.com/jeranaias/unitconv/internal/ui/styles"
)

// =============================================================================
// PAGES AND FOCUS
// =============================================================================

// page is a kind of screen. All ten categories share pageConvert.
type page int

const (
	pageConvert page = iota
	pageHistory
	pageFavorites
	pageSettings
)

// focus is where keys go.
type focus int

const (
	focusContent focus = iota
	focusSidebar
)

// navEntry is one sidebar row.
type navEntry struct {
	title    string
	page     page
	category convert.Category
}

// navEntries lists the categories followed by History, Favorites and Settings.
func navEntries() []navEntry {
	var out []navEntry
	for _, c := range convert.Categories() {
		out = append(out, navEntry{title: c.String(), page: pageConvert, category: c})
	}
	return append(out,
		navEntry{title: "History", page: pageHistory},
		navEntry{title: "Favorites", page: pageFavorites},
		navEntry{title: "Settings", page: pageSettings},
	)
}

// =============================================================================
// MODEL
// =============================================================================

// Options configures a Model.
type Options struct {
	Config *config.Config
	State  *session.State

	// Watcher, when set, feeds config reloads into the program.
	Watcher *config.Watcher

	// Clipboard writes copied results. Defaults to the system clipboard.
	Clipboard func(string) error
}

// Model is the root Bubble Tea model of the TUI.
type Model struct {
	cfg    *config.Config
	st     *session.State
	engine *convert.Engine
	theme  *styles.Theme
	keys   KeyMap
	help   help.Model

	nav   []navEntry
	cur   int
	focus focus

	conv     *convertPage
	history  *historyPage
	favs     *favoritesPage
	settings *settingsPage

	palette *components.NavPalette
	toasts  *components.ToastManager
	ticking bool

	watcher   *config.Watcher
	clipboard func(string) error

	width  int
	height int
}

// New creates the TUI model over a session.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	st := opts.State
	if st == nil {
		st = session.New(cfg.SessionOptions(styles.DetectMode))
	}
	write := opts.Clipboard
	if write == nil {
		write = clipboard.WriteAll
	}

	m := &Model{
		cfg:       cfg,
		st:        st,
		engine:    st.Engine(),
		theme:     styles.NewTheme(st.Theme()),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		nav:       navEntries(),
		toasts:    components.NewToastManager(),
		watcher:   opts.Watcher,
		clipboard: write,
	}

	start := cfg.DefaultCategory()
	m.conv = newConvertPage(m.engine, start)
	m.history = newHistoryPage()
	m.favs = newFavoritesPage()
	m.settings = newSettingsPage()

	items := make([]components.PaletteItem, len(m.nav))
	for i, e := range m.nav {
		items[i] = components.PaletteItem{Title: e.title}
		if e.page == pageConvert {
			items[i].Detail = e.category.String() + " conversions"
		}
	}
	m.palette = components.NewNavPalette(m.theme, items)

	m.cur = m.navIndex(pageConvert, start)
	m.applyTheme()
	m.focusContent()
	return m
}

// Init starts the cursor blink and the config watcher.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.watcher != nil {
		cmds = append(cmds, waitForReload(m.watcher.Events()))
	}
	return tea.Batch(cmds...)
}

// State returns the session the model works on.
func (m *Model) State() *session.State {
	return m.st
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case components.PaletteSelectMsg:
		return m, m.open(msg.Index)

	case components.ToastTickMsg:
		if m.toasts.Tick(msg.Time) {
			return m, components.ToastTickCmd()
		}
		m.ticking = false
		return m, nil

	case configReloadMsg:
		return m, m.handleReload(config.Reload(msg))

	case copiedMsg:
		if msg.err != nil {
			log.Printf("CLIPBOARD_FAILED | error=%v", msg.err)
			return m, m.notify(components.ToastError, "Copy failed: "+msg.err.Error())
		}
		return m, m.notify(components.ToastSuccess, "Copied "+msg.text)
	}

	// Cursor blink and other widget messages go to the focused field.
	return m, m.updateFocusedInput(msg)
}

// handleKey routes a key to the palette, a global binding, the sidebar or
// the current page.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Palette):
		return m.palette.Show()
	case key.Matches(msg, m.keys.ToggleTheme):
		m.st.ToggleTheme()
		m.applyTheme()
		return m.notify(components.ToastStatus, "Theme: "+string(m.st.Theme()))
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.Dismiss):
		m.toasts.DismissAll()
		return nil
	}

	if m.focus == focusSidebar {
		return m.sidebarKey(msg)
	}
	if key.Matches(msg, m.keys.Sidebar) {
		m.blurContent()
		m.focus = focusSidebar
		return nil
	}

	switch m.currentPage() {
	case pageConvert:
		return m.convertKey(msg)
	case pageHistory:
		return m.historyKey(msg)
	case pageFavorites:
		return m.favoritesKey(msg)
	case pageSettings:
		return m.settingsKey(msg)
	}
	return nil
}

// sidebarKey moves the sidebar selection. Moving opens the page straight away;
// enter moves focus into it.
func (m *Model) sidebarKey(msg tea.KeyMsg) tea.Cmd {
	n := len(m.nav)
	switch {
	case key.Matches(msg, m.keys.Up):
		m.show((m.cur - 1 + n) % n)
	case key.Matches(msg, m.keys.Down):
		m.show((m.cur + 1) % n)
	case key.Matches(msg, m.keys.Enter), key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.NextField):
		m.focus = focusContent
		return m.focusContent()
	case msg.String() == "q":
		return tea.Quit
	}
	return nil
}

// =============================================================================
// NAVIGATION
// =============================================================================

func (m *Model) currentPage() page {
	return m.nav[m.cur].page
}

func (m *Model) navIndex(p page, c convert.Category) int {
	for i, e := range m.nav {
		if e.page == p && (p != pageConvert || e.category == c) {
			return i
		}
	}
	return 0
}

// show switches to nav entry i without moving focus.
func (m *Model) show(i int) {
	if i < 0 || i >= len(m.nav) {
		return
	}
	m.blurContent()
	m.cur = i
	e := m.nav[i]
	switch e.page {
	case pageConvert:
		if m.conv.category != e.category {
			m.conv.reset(m.engine, e.category)
		}
	case pageHistory:
		m.refreshHistory()
	case pageFavorites:
		m.refreshFavorites()
	}
	m.layout()
}

// open switches to nav entry i and focuses its content.
func (m *Model) open(i int) tea.Cmd {
	m.show(i)
	m.focus = focusContent
	return m.focusContent()
}

// openConversion jumps to the category page of req with its fields filled in.
func (m *Model) openConversion(req session.Request) tea.Cmd {
	m.blurContent()
	m.cur = m.navIndex(pageConvert, req.Category)
	m.conv.prefill(m.engine, req)
	m.layout()
	m.focus = focusContent
	return m.focusContent()
}

// focusContent focuses the active field of the current page.
func (m *Model) focusContent() tea.Cmd {
	switch m.currentPage() {
	case pageConvert:
		return m.conv.focusField(m.conv.field)
	case pageHistory:
		m.history.table.Focus()
	case pageFavorites:
		m.favs.table.Focus()
	case pageSettings:
		return m.settings.focusField(m.settings.field)
	}
	return nil
}

func (m *Model) blurContent() {
	m.conv.blur()
	m.history.table.Blur()
	m.favs.table.Blur()
	m.settings.blur()
}

// updateFocusedInput forwards non-key messages to the focused text input.
func (m *Model) updateFocusedInput(msg tea.Msg) tea.Cmd {
	if m.focus != focusContent {
		return nil
	}
	var cmd tea.Cmd
	switch m.currentPage() {
	case pageConvert:
		m.conv.value, cmd = m.conv.value.Update(msg)
	case pageSettings:
		cmd = m.settings.updateInputs(msg)
	}
	return cmd
}

// =============================================================================
// THEME, SIZE AND TOASTS
// =============================================================================

// applyTheme rebuilds the styles from the session theme.
func (m *Model) applyTheme() {
	width, height := m.width, m.height
	m.theme = styles.NewTheme(m.st.Theme())
	m.theme.SetSize(width, height)
	m.palette.SetTheme(m.theme)
	m.history.setStyles(m.theme)
	m.favs.setStyles(m.theme)
	m.conv.formulaKey = ""
	m.layout()
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.theme.SetSize(width, height)
	m.palette.SetSize(width, height)
	m.help.Width = width
	m.layout()
}

// notify shows a toast and starts the expiry ticker if it is not running.
func (m *Model) notify(kind components.ToastKind, message string) tea.Cmd {
	m.toasts.Add(components.NewToast(kind, message))
	if m.ticking {
		return nil
	}
	m.ticking = true
	return components.ToastTickCmd()
}

// format renders v with the session precision and the configured grouping.
func (m *Model) format(v float64) string {
	return m.cfg.FormatResult(v, m.st.DecimalPlaces())
}

// =============================================================================
// CONFIG RELOAD
// =============================================================================

// handleReload applies a changed config file. Theme, precision and history
// size follow the file only when the file itself changed them, so values the
// user picked in the TUI survive unrelated edits.
func (m *Model) handleReload(r config.Reload) tea.Cmd {
	var next tea.Cmd
	if m.watcher != nil {
		next = waitForReload(m.watcher.Events())
	}

	if r.Err != nil {
		log.Printf("CONFIG_RELOAD_FAILED | path=%s error=%v", r.Path, r.Err)
		return tea.Batch(next, m.notify(components.ToastError, "Config not reloaded: "+r.Err.Error()))
	}

	old := m.cfg
	m.cfg = r.Config
	config.SetGlobal(r.Config)

	if old.UI.Theme != r.Config.UI.Theme {
		_ = m.st.SetTheme(r.Config.ResolveTheme(styles.DetectMode))
		m.applyTheme()
	}
	if old.UI.DecimalPlaces != r.Config.UI.DecimalPlaces {
		_ = m.st.SetDecimalPlaces(r.Config.UI.DecimalPlaces)
	}
	if old.History.MaxEntries != r.Config.History.MaxEntries {
		m.st.SetMaxHistory(r.Config.History.MaxEntries)
	}
	m.refreshHistory()
	m.layout()

	log.Printf("CONFIG_RELOAD | path=%s", r.Path)
	return tea.Batch(next, m.notify(components.ToastStatus, "Configuration reloaded"))
}
