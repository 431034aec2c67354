package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type field struct {
	Prompt      string
	Placeholder string
	Value       string
	Secret      bool
}

// form is a vertical list of text inputs with tab/shift+tab focus.
type form struct {
	Inputs   []textinput.Model
	FocusIdx int
}

func newForm(fields ...field) form {
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Prompt = f.Prompt
		ti.Placeholder = f.Placeholder
		ti.CharLimit = 128
		ti.SetValue(f.Value)
		if f.Secret {
			ti.EchoMode = textinput.EchoPassword
		}
		inputs[i] = ti
	}
	fm := form{Inputs: inputs}
	fm.focus(0)
	return fm
}

func (f *form) focus(i int) {
	for j := range f.Inputs {
		f.Inputs[j].Blur()
		f.Inputs[j].PromptStyle = blurredStyle
	}
	if len(f.Inputs) == 0 {
		return
	}
	f.FocusIdx = (i + len(f.Inputs)) % len(f.Inputs)
	f.Inputs[f.FocusIdx].Focus()
	f.Inputs[f.FocusIdx].PromptStyle = focusedStyle
}

func (f *form) next() { f.focus(f.FocusIdx + 1) }
func (f *form) prev() { f.focus(f.FocusIdx - 1) }

func (f form) last() bool { return f.FocusIdx == len(f.Inputs)-1 }

func (f form) value(i int) string { return strings.TrimSpace(f.Inputs[i].Value()) }

func (f form) raw(i int) string { return f.Inputs[i].Value() }

// update moves focus on tab keys and feeds every other message to the focused input.
func (f form) update(msg tea.Msg) (form, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyTab, tea.KeyDown:
			f.next()
			return f, nil
		case tea.KeyShiftTab, tea.KeyUp:
			f.prev()
			return f, nil
		}
	}
	var cmd tea.Cmd
	f.Inputs[f.FocusIdx], cmd = f.Inputs[f.FocusIdx].Update(msg)
	return f, cmd
}

func (f form) View() string {
	var b strings.Builder
	for i := range f.Inputs {
		b.WriteString(f.Inputs[i].View())
		if i < len(f.Inputs)-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}
