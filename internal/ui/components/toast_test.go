// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/unitconv/internal/session"
	"github.com/jeranaias/unitconv/internal/ui/styles"
)

func TestNewToast_Durations(t *testing.T) {
	tests := []struct {
		kind ToastKind
		want time.Duration
	}{
		{ToastStatus, StatusToastDuration},
		{ToastSuccess, StatusToastDuration},
		{ToastWarning, WarningToastDuration},
		{ToastError, ErrorToastDuration},
	}
	for _, tc := range tests {
		toast := NewToast(tc.kind, "msg")
		if toast.Duration != tc.want {
			t.Errorf("kind %d: duration = %v, want %v", tc.kind, toast.Duration, tc.want)
		}
	}
}

func TestToast_Expiry(t *testing.T) {
	toast := NewToast(ToastStatus, "Copied")
	now := toast.CreatedAt

	if toast.IsExpired(now) {
		t.Error("fresh toast should not be expired")
	}
	if toast.Remaining(now) != StatusToastDuration {
		t.Errorf("Remaining = %v, want %v", toast.Remaining(now), StatusToastDuration)
	}

	later := now.Add(StatusToastDuration)
	if !toast.IsExpired(later) {
		t.Error("toast should be expired after its duration")
	}
	if toast.Remaining(later.Add(time.Second)) != 0 {
		t.Error("Remaining should not go negative")
	}
}

func TestToastManager(t *testing.T) {
	m := NewToastManager()

	first := m.Status("one")
	second := m.Error("two")
	if first == second {
		t.Fatal("toast IDs should be unique")
	}

	toasts := m.Toasts()
	if len(toasts) != 2 {
		t.Fatalf("expected 2 toasts, got %d", len(toasts))
	}
	if toasts[0].Message != "two" {
		t.Errorf("newest toast should be first, got %q", toasts[0].Message)
	}

	m.Dismiss(second)
	if m.Len() != 1 || m.Toasts()[0].ID != first {
		t.Error("Dismiss removed the wrong toast")
	}

	m.DismissAll()
	if m.Len() != 0 {
		t.Error("DismissAll should remove every toast")
	}
}

func TestToastManager_Cap(t *testing.T) {
	m := NewToastManager()
	for i := 0; i < maxToasts+3; i++ {
		m.Status("toast")
	}
	if m.Len() != maxToasts {
		t.Errorf("expected %d toasts, got %d", maxToasts, m.Len())
	}
}

func TestToastManager_Tick(t *testing.T) {
	m := NewToastManager()
	m.Success("saved")
	m.Error("failed")

	now := time.Now()
	if !m.Tick(now) {
		t.Fatal("toasts should survive the first tick")
	}

	// Status toasts expire before error toasts.
	if !m.Tick(now.Add(StatusToastDuration + time.Millisecond)) {
		t.Fatal("error toast should still be visible")
	}
	toasts := m.Toasts()
	if len(toasts) != 1 || toasts[0].Kind != ToastError {
		t.Fatalf("expected only the error toast, got %+v", toasts)
	}

	if m.Tick(now.Add(ErrorToastDuration + time.Second)) {
		t.Error("all toasts should have expired")
	}
}

func TestRenderToastStack(t *testing.T) {
	theme := styles.NewTheme(session.ThemeLight)
	now := time.Now()

	if got := RenderToastStack(theme, nil, 80, now); got != "" {
		t.Errorf("empty stack should render nothing, got %q", got)
	}

	toasts := []Toast{
		NewToast(ToastError, "Import failed: malformed settings"),
		NewToast(ToastSuccess, "Copied 1.609344"),
	}
	out := RenderToastStack(theme, toasts, 80, now)
	if !strings.Contains(out, "Import failed") || !strings.Contains(out, "Copied") {
		t.Errorf("stack missing messages:\n%s", out)
	}
	if strings.Index(out, "Copied") > strings.Index(out, "Import failed") {
		t.Error("newest toast should render at the bottom")
	}
	if !strings.Contains(out, styles.StatusIndicators.Error) {
		t.Error("error toast should carry the error indicator")
	}
}

func TestOverlayBottom(t *testing.T) {
	base := "a\nb\nc\nd"
	if got := OverlayBottom(base, "X\nY"); got != "a\nb\nX\nY" {
		t.Errorf("OverlayBottom = %q", got)
	}
	if got := OverlayBottom(base, ""); got != base {
		t.Errorf("empty overlay changed base: %q", got)
	}
	if got := OverlayBottom("a", "X\nY"); got != "X\nY" {
		t.Errorf("tall overlay = %q", got)
	}
}
