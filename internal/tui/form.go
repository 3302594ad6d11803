package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"duit/internal/core"
)

// form is a minimal vertical input dialog: a title, a handful of text
// fields, one of them focused. Enter advances; enter on the last field
// submits; escape cancels. Validation happens in the submit handlers so
// nothing unparseable ever reaches the ledger.
type form struct {
	title  string
	fields []formField
	active int
}

type formField struct {
	label string
	value string
}

func newForm(title string, labels ...string) *form {
	fields := make([]formField, len(labels))
	for i, l := range labels {
		fields[i] = formField{label: l}
	}
	return &form{title: title, fields: fields}
}

// handleKey consumes one key event. done is true when the user submitted
// (all fields confirmed) and the caller should read the values.
func (f *form) handleKey(msg tea.KeyMsg) (done bool) {
	switch msg.Type {
	case tea.KeyEnter:
		if f.active == len(f.fields)-1 {
			return true
		}
		f.active++
	case tea.KeyTab, tea.KeyDown:
		f.active = (f.active + 1) % len(f.fields)
	case tea.KeyShiftTab, tea.KeyUp:
		f.active = (f.active - 1 + len(f.fields)) % len(f.fields)
	case tea.KeyBackspace:
		v := f.fields[f.active].value
		if v != "" {
			f.fields[f.active].value = v[:len(v)-1]
		}
	case tea.KeySpace:
		f.fields[f.active].value += " "
	case tea.KeyRunes:
		f.fields[f.active].value += string(msg.Runes)
	}
	return false
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.fields[i].value)
}

func (f *form) view() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(f.title))
	b.WriteString("\n\n")
	for i, field := range f.fields {
		cursor := " "
		if i == f.active {
			cursor = ">"
		}
		line := cursor + " " + field.label + ": " + field.value
		if i == f.active {
			line += "_"
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n" + mutedStyle.Render("[Enter] Next/Submit  [Esc] Cancel"))
	return dialogStyle.Render(b.String())
}

// parseEntryInput validates the three entry fields shared by the new
// expense and entry forms.
func parseEntryInput(description, date, amount string) (core.Entry, error) {
	if description == "" {
		return core.Entry{}, core.ErrEmptyDescription
	}
	d, err := core.ParseDate(date)
	if err != nil {
		return core.Entry{}, err
	}
	v, err := core.ParseMoney(amount)
	if err != nil {
		return core.Entry{}, err
	}
	return core.Entry{Description: description, PaymentDate: d, Value: v}, nil
}
