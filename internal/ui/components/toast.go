// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// toast.go - Non-blocking notifications.
//
// Toasts stack in the bottom-right corner and dismiss themselves, so a failed
// import or a copied result never interrupts typing.
package components

import (
	"strconv"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/unitconv/internal/ui/styles"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// ToastKind is the type of a toast.
type ToastKind int

const (
	ToastStatus ToastKind = iota
	ToastError
	ToastWarning
	ToastSuccess
)

// Display durations per kind.
const (
	StatusToastDuration  = 3 * time.Second
	WarningToastDuration = 5 * time.Second
	ErrorToastDuration   = 6 * time.Second
)

// maxToasts is how many toasts are visible at once.
const maxToasts = 4

// Toast is one notification.
type Toast struct {
	ID        int
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
	Duration  time.Duration
}

// NewToast creates a toast with the default duration for its kind.
func NewToast(kind ToastKind, message string) Toast {
	d := StatusToastDuration
	switch kind {
	case ToastError:
		d = ErrorToastDuration
	case ToastWarning:
		d = WarningToastDuration
	}
	return Toast{Message: message, Kind: kind, CreatedAt: time.Now(), Duration: d}
}

// IsExpired reports whether the toast should be dismissed at now.
func (t Toast) IsExpired(now time.Time) bool {
	return now.Sub(t.CreatedAt) >= t.Duration
}

// Remaining returns how long the toast stays on screen after now.
func (t Toast) Remaining(now time.Time) time.Duration {
	r := t.Duration - now.Sub(t.CreatedAt)
	if r < 0 {
		return 0
	}
	return r
}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// ToastManager holds the visible toasts, newest first.
type ToastManager struct {
	mu     sync.Mutex
	toasts []Toast
	nextID int
}

// NewToastManager creates an empty manager.
func NewToastManager() *ToastManager {
	return &ToastManager{nextID: 1}
}

// Add shows a toast and returns its ID. The oldest toast is dropped when
// more than maxToasts are visible.
func (m *ToastManager) Add(t Toast) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	t.ID = m.nextID
	m.nextID++
	m.toasts = append([]Toast{t}, m.toasts...)
	if len(m.toasts) > maxToasts {
		m.toasts = m.toasts[:maxToasts]
	}
	return t.ID
}

// Error adds an error toast.
func (m *ToastManager) Error(message string) int {
	return m.Add(NewToast(ToastError, message))
}

// Warning adds a warning toast.
func (m *ToastManager) Warning(message string) int {
	return m.Add(NewToast(ToastWarning, message))
}

// Status adds a status toast.
func (m *ToastManager) Status(message string) int {
	return m.Add(NewToast(ToastStatus, message))
}

// Success adds a success toast.
func (m *ToastManager) Success(message string) int {
	return m.Add(NewToast(ToastSuccess, message))
}

// Dismiss removes the toast with the given ID.
func (m *ToastManager) Dismiss(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, t := range m.toasts {
		if t.ID == id {
			m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
			return
		}
	}
}

// DismissAll removes every toast.
func (m *ToastManager) DismissAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.toasts = nil
}

// Tick drops expired toasts and reports whether any remain.
func (m *ToastManager) Tick(now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	active := m.toasts[:0]
	for _, t := range m.toasts {
		if !t.IsExpired(now) {
			active = append(active, t)
		}
	}
	m.toasts = active
	return len(m.toasts) > 0
}

// Toasts returns a copy of the visible toasts, newest first.
func (m *ToastManager) Toasts() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Toast, len(m.toasts))
	copy(out, m.toasts)
	return out
}

// Len returns the number of visible toasts.
func (m *ToastManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.toasts)
}

// =============================================================================
// TOAST MESSAGES
// =============================================================================

// ToastTickMsg drives toast expiry.
type ToastTickMsg struct {
	Time time.Time
}

// ToastTickCmd ticks toasts every 200ms.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return ToastTickMsg{Time: t}
	})
}

// =============================================================================
// TOAST RENDERING
// =============================================================================

// RenderToast renders one toast no wider than width.
func RenderToast(theme *styles.Theme, t Toast, width int, now time.Time) string {
	maxWidth := clamp(width-4, 24, 56)

	var icon string
	var accent lipgloss.Style
	switch t.Kind {
	case ToastError:
		icon, accent = styles.StatusIndicators.Error, theme.ErrorStyle
	case ToastWarning:
		icon, accent = styles.StatusIndicators.Warning, theme.WarningStyle
	case ToastSuccess:
		icon, accent = styles.StatusIndicators.Success, theme.SuccessStyle
	default:
		icon, accent = styles.StatusIndicators.Info, theme.InfoStyle
	}

	message := lipgloss.NewStyle().Width(maxWidth - 8).Render(t.Message)
	body := accent.Render(icon) + " " + message

	if secs := int(t.Remaining(now).Seconds()); secs > 0 {
		body += "\n" + theme.Muted.Italic(true).Render("C-x dismiss  "+strconv.Itoa(secs)+"s")
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(accent.GetForeground()).
		Padding(0, 1).
		MaxWidth(maxWidth).
		Render(body)
}

// RenderToastStack renders the toasts stacked vertically, newest at the bottom,
// right-aligned within width.
func RenderToastStack(theme *styles.Theme, toasts []Toast, width int, now time.Time) string {
	if len(toasts) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(toasts))
	for i := len(toasts) - 1; i >= 0; i-- {
		rendered = append(rendered, RenderToast(theme, toasts[i], width, now))
	}
	stack := lipgloss.JoinVertical(lipgloss.Right, rendered...)
	if width <= 0 {
		return stack
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, stack)
}

// OverlayBottom replaces the last lines of base with overlay.
func OverlayBottom(base, overlay string) string {
	if overlay == "" {
		return base
	}
	baseLines := strings.Split(base, "\n")
	overLines := strings.Split(overlay, "\n")
	if len(overLines) >= len(baseLines) {
		return overlay
	}
	copy(baseLines[len(baseLines)-len(overLines):], overLines)
	return strings.Join(baseLines, "\n")
}
