// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"errors"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/unitconv/internal/export"
	"github.com/jeranaias/unitconv/internal/format"
	"github.com/jeranaias/unitconv/internal/settings"
	"github.com/jeranaias/unitconv/internal/ui/components"
)

// settingsField is a focusable row of the settings page.
type settingsField int

const (
	settingTheme settingsField = iota
	settingDecimals
	settingExport
	settingImport
	settingReport
	settingsFieldCount
)

// settingsPage holds the path inputs of the settings page. Theme and
// decimal places are read from the session when drawn.
type settingsPage struct {
	field      settingsField
	exportPath textinput.Model
	importPath textinput.Model
	reportPath textinput.Model
}

func newPathInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Width = 40
	return ti
}

func newSettingsPage() *settingsPage {
	return &settingsPage{
		exportPath: newPathInput("settings.json"),
		importPath: newPathInput("settings.json"),
		reportPath: newPathInput("history.md, .html or .json"),
	}
}

// input returns the text input of the focused row, or nil.
func (p *settingsPage) input() *textinput.Model {
	switch p.field {
	case settingExport:
		return &p.exportPath
	case settingImport:
		return &p.importPath
	case settingReport:
		return &p.reportPath
	}
	return nil
}

func (p *settingsPage) focusField(f settingsField) tea.Cmd {
	p.blur()
	p.field = f
	if in := p.input(); in != nil {
		return in.Focus()
	}
	return nil
}

func (p *settingsPage) blur() {
	p.exportPath.Blur()
	p.importPath.Blur()
	p.reportPath.Blur()
}

func (p *settingsPage) updateInputs(msg tea.Msg) tea.Cmd {
	in := p.input()
	if in == nil {
		return nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return cmd
}

// settingsKey handles keys on the settings page.
func (m *Model) settingsKey(msg tea.KeyMsg) tea.Cmd {
	p := m.settings
	in := p.input()

	switch {
	case key.Matches(msg, m.keys.NextField), in == nil && key.Matches(msg, m.keys.Down):
		return p.focusField((p.field + 1) % settingsFieldCount)
	case key.Matches(msg, m.keys.PrevField), in == nil && key.Matches(msg, m.keys.Up):
		return p.focusField((p.field + settingsFieldCount - 1) % settingsFieldCount)
	}

	switch p.field {
	case settingTheme:
		if key.Matches(msg, m.keys.Enter, m.keys.Left, m.keys.Right) || msg.String() == " " {
			m.st.ToggleTheme()
			m.applyTheme()
		}
		return nil

	case settingDecimals:
		n := m.st.DecimalPlaces()
		switch {
		case key.Matches(msg, m.keys.Left) || msg.String() == "-":
			n--
		case key.Matches(msg, m.keys.Right) || msg.String() == "+":
			n++
		default:
			return nil
		}
		if err := m.st.SetDecimalPlaces(format.ClampDigits(n)); err != nil {
			return m.notify(components.ToastError, err.Error())
		}
		m.refreshHistory()
		m.refreshFavorites()
		return nil
	}

	if key.Matches(msg, m.keys.Enter) {
		path := strings.TrimSpace(in.Value())
		if path == "" {
			return m.notify(components.ToastWarning, "Enter a file path first")
		}
		switch p.field {
		case settingExport:
			return m.exportSettings(path)
		case settingImport:
			return m.importSettings(path)
		case settingReport:
			return m.exportReport(path)
		}
	}

	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return cmd
}

// exportSettings writes theme, favorites and decimal places to path.
func (m *Model) exportSettings(path string) tea.Cmd {
	if err := settings.SaveFile(path, m.st); err != nil {
		log.Printf("SETTINGS_EXPORT_FAILED | path=%s error=%v", path, err)
		return m.notify(components.ToastError, "Export failed: "+err.Error())
	}
	return m.notify(components.ToastSuccess, "Settings exported to "+filepath.Base(path))
}

// importSettings loads a settings file. A bad file leaves the session as it was.
func (m *Model) importSettings(path string) tea.Cmd {
	applied, err := settings.LoadFile(path, m.st)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, fs.ErrNotExist) {
			msg = "no such file: " + path
		}
		return m.notify(components.ToastError, "Import failed: "+msg)
	}

	m.applyTheme()
	m.refreshFavorites()
	m.refreshHistory()
	if applied.Empty() {
		return m.notify(components.ToastWarning, "Nothing to import in "+filepath.Base(path))
	}
	return m.notify(components.ToastSuccess, "Imported "+applied.String())
}

// exportReport writes the history report in the format named by the
// file extension.
func (m *Model) exportReport(path string) tea.Cmd {
	opts := export.DefaultOptions()
	opts.Theme = m.st.Theme()
	exporter, err := export.ForPath(path, opts)
	if err != nil {
		return m.notify(components.ToastError, err.Error())
	}
	if err := export.WriteFile(export.NewReport(m.st), exporter, path); err != nil {
		log.Printf("REPORT_EXPORT_FAILED | path=%s error=%v", path, err)
		return m.notify(components.ToastError, "Report failed: "+err.Error())
	}
	return m.notify(components.ToastSuccess, "History exported to "+filepath.Base(path))
}
