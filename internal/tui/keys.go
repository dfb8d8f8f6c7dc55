package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	NextField key.Binding
	PrevField key.Binding
	Commit    key.Binding
	Continue  key.Binding
	Back      key.Binding
	GoTo      key.Binding
	Refresh   key.Binding
	Save      key.Binding
	Submit    key.Binding
	Cancel    key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Commit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		Continue:  key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "continue")),
		Back:      key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "back")),
		GoTo:      key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "go to step")),
		Refresh:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh deadlines")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save & exit")),
		Submit:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "submit")),
		Cancel:    key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "cancel wizard")),
		Quit:      key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// help renders the bindings enabled for the current screen on one line.
func (k keyMap) help(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
