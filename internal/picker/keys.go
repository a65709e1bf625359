package picker

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runger/skillpick/internal/session"
)

// keyMap binds terminal keys to session inputs.
type keyMap struct {
	Cancel  key.Binding
	Confirm key.Binding
	Next    key.Binding
	Prev    key.Binding
	Erase   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Cancel:  key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Next:    key.NewBinding(key.WithKeys("down", "tab", "ctrl+n"), key.WithHelp("↓/tab", "next")),
		Prev:    key.NewBinding(key.WithKeys("up", "shift+tab", "ctrl+p"), key.WithHelp("↑/S-tab", "prev")),
		Erase:   key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("⌫", "erase")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Next, k.Prev, k.Cancel}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Confirm, k.Next, k.Prev, k.Erase, k.Cancel}}
}

// inputsFor translates one key message into session inputs. Typed or pasted
// text yields one input per rune; unbound keys yield nothing.
func (k keyMap) inputsFor(msg tea.KeyMsg) []session.Input {
	switch {
	case key.Matches(msg, k.Cancel):
		return []session.Input{session.Cancel}
	case key.Matches(msg, k.Confirm):
		return []session.Input{session.Confirm}
	case key.Matches(msg, k.Next):
		return []session.Input{session.Next}
	case key.Matches(msg, k.Prev):
		return []session.Input{session.Prev}
	case key.Matches(msg, k.Erase):
		return []session.Input{session.Erase}
	}

	if msg.Alt || (msg.Type != tea.KeyRunes && msg.Type != tea.KeySpace) {
		return nil
	}
	var inputs []session.Input
	for _, r := range msg.Runes {
		if in := session.Char(r); in.Kind == session.InputChar {
			inputs = append(inputs, in)
		}
	}
	return inputs
}
