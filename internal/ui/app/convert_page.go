// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/unitconv/internal/convert"
	"github.com/jeranaias/unitconv/internal/session"
	"github.com/jeranaias/unitconv/internal/ui/components"
)

// convertField is a focusable field of the conversion page.
type convertField int

const (
	fieldValue convertField = iota
	fieldFrom
	fieldTo
	convertFieldCount
)

// errNotANumber is shown when the value field does not parse.
var errNotANumber = errors.New("enter a finite number")

// convertPage is the state of the conversion page for one category.
type convertPage struct {
	category convert.Category
	value    textinput.Model
	from     *unitSelector
	to       *unitSelector
	field    convertField

	// last is the most recent conversion made on this page.
	last   *session.HistoryEntry
	errMsg string

	showFormula bool
	formula     viewport.Model
	formulaKey  string
}

func newConvertPage(engine *convert.Engine, c convert.Category) *convertPage {
	ti := textinput.New()
	ti.Placeholder = "value"
	ti.Prompt = ""
	ti.CharLimit = 32
	ti.Width = 20

	p := &convertPage{
		value:       ti,
		showFormula: true,
		formula:     viewport.New(60, 8),
	}
	p.reset(engine, c)
	return p
}

// reset switches to category c with its default units and value.
func (p *convertPage) reset(engine *convert.Engine, c convert.Category) {
	pair := engine.DefaultPair(c)
	units := engine.Units(c)
	p.category = c
	p.from = newUnitSelector(units, pair.From)
	p.to = newUnitSelector(units, pair.To)
	p.value.SetValue(formatInput(engine.DefaultValue(c)))
	p.last = nil
	p.errMsg = ""
	p.formulaKey = ""
	p.field = fieldValue
}

// prefill loads a saved or past conversion into the page.
func (p *convertPage) prefill(engine *convert.Engine, req session.Request) {
	if p.category != req.Category {
		p.reset(engine, req.Category)
	}
	p.from.Select(req.From)
	p.to.Select(req.To)
	p.value.SetValue(formatInput(req.Value))
	p.last = nil
	p.errMsg = ""
	p.field = fieldValue
}

// request builds a conversion request from the fields.
func (p *convertPage) request() (session.Request, error) {
	v, err := parseInput(p.value.Value())
	if err != nil {
		return session.Request{}, err
	}
	return session.Request{
		Category: p.category,
		Value:    v,
		From:     p.from.Selected(),
		To:       p.to.Selected(),
	}, nil
}

// showsCurrent reports whether last matches the selected units.
func (p *convertPage) showsCurrent() bool {
	return p.last != nil &&
		p.last.Category == p.category &&
		p.last.FromUnit == p.from.Selected() &&
		p.last.ToUnit == p.to.Selected()
}

func (p *convertPage) selector() *unitSelector {
	if p.field == fieldTo {
		return p.to
	}
	return p.from
}

func (p *convertPage) focusField(f convertField) tea.Cmd {
	p.from.ClearFilter()
	p.to.ClearFilter()
	p.field = f
	if f == fieldValue {
		return p.value.Focus()
	}
	p.value.Blur()
	return nil
}

func (p *convertPage) blur() {
	p.value.Blur()
	p.from.ClearFilter()
	p.to.ClearFilter()
}

// parseInput parses the value field. Underscores and spaces may group digits.
func parseInput(s string) (float64, error) {
	s = strings.NewReplacer("_", "", " ", "").Replace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotANumber
	}
	return v, nil
}

// formatInput renders v for the value field without losing precision.
func formatInput(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

// convertKey handles keys on the conversion page.
func (m *Model) convertKey(msg tea.KeyMsg) tea.Cmd {
	p := m.conv

	switch {
	case key.Matches(msg, m.keys.Enter):
		return m.runConversion()
	case key.Matches(msg, m.keys.NextField):
		return p.focusField((p.field + 1) % convertFieldCount)
	case key.Matches(msg, m.keys.PrevField):
		return p.focusField((p.field + convertFieldCount - 1) % convertFieldCount)
	case key.Matches(msg, m.keys.Swap):
		return m.swapUnits()
	case key.Matches(msg, m.keys.Favorite):
		return m.favoriteCurrent()
	case key.Matches(msg, m.keys.Copy):
		return m.copyResult()
	case key.Matches(msg, m.keys.Explain):
		p.showFormula = !p.showFormula
		m.layout()
		return nil
	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		p.formula, cmd = p.formula.Update(msg)
		return cmd
	}

	if p.field == fieldValue {
		var cmd tea.Cmd
		p.value, cmd = p.value.Update(msg)
		return cmd
	}

	sel := p.selector()
	switch msg.Type {
	case tea.KeyLeft, tea.KeyUp:
		sel.Prev()
	case tea.KeyRight, tea.KeyDown:
		sel.Next()
	case tea.KeyBackspace:
		sel.Backspace()
	case tea.KeyRunes, tea.KeySpace:
		for _, r := range msg.Runes {
			if !sel.Type(r) {
				return m.notify(components.ToastWarning, "No "+p.category.String()+" unit matches "+strconv.Quote(sel.Filter()+string(r)))
			}
		}
	}
	return nil
}

// runConversion converts the current fields and records the result.
func (m *Model) runConversion() tea.Cmd {
	p := m.conv
	p.from.ClearFilter()
	p.to.ClearFilter()

	req, err := p.request()
	if err == nil {
		var entry session.HistoryEntry
		entry, err = m.st.Convert(req)
		if err == nil {
			p.last = &entry
			p.errMsg = ""
			m.layout()
			return nil
		}
	}

	p.errMsg = err.Error()
	return m.notify(components.ToastError, err.Error())
}

// swapUnits exchanges the units. When the page shows a result for the
// current units, the result becomes the new value and is converted back.
func (m *Model) swapUnits() tea.Cmd {
	p := m.conv
	current := p.showsCurrent()
	from, to := p.from.Selected(), p.to.Selected()
	p.from.Select(to)
	p.to.Select(from)

	if current {
		p.value.SetValue(formatInput(p.last.Result))
		return m.runConversion()
	}
	return nil
}

// favoriteCurrent saves the last conversion as a favorite.
func (m *Model) favoriteCurrent() tea.Cmd {
	p := m.conv
	if p.last == nil {
		return m.notify(components.ToastWarning, "Convert something first")
	}
	if !m.st.AddFavorite(p.last.Favorite()) {
		return m.notify(components.ToastStatus, "Already a favorite")
	}
	return m.notify(components.ToastSuccess, "Added to favorites")
}

// copyResult copies the formatted result to the clipboard.
func (m *Model) copyResult() tea.Cmd {
	p := m.conv
	if p.last == nil {
		return m.notify(components.ToastWarning, "Nothing to copy yet")
	}
	return copyCmd(m.clipboard, m.format(p.last.Result))
}
