// Package session holds the state of one open picker and turns keystrokes
// into either a state change or a final action.
//
// A State is created each time the picker opens and is discarded after its
// first terminal action. It performs no I/O: the host loads the catalog,
// recents and queued name beforehand, and persists whatever the final action
// implies.
package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/runger/skillpick/internal/catalog"
	"github.com/runger/skillpick/internal/match"
	"github.com/runger/skillpick/internal/usage"
)

// ActionKind is the kind of terminal action.
type ActionKind int

const (
	ActionSelect  ActionKind = iota // Choose the item
	ActionUnqueue                   // Drop the item from the queue
	ActionCancel                    // Close without a choice
)

// String returns a short name for logs and JSON output.
func (k ActionKind) String() string {
	switch k {
	case ActionSelect:
		return "select"
	case ActionUnqueue:
		return "unqueue"
	case ActionCancel:
		return "cancel"
	default:
		return fmt.Sprintf("action(%d)", int(k))
	}
}

// Action ends a session. Item is zero for ActionCancel.
type Action struct {
	Kind ActionKind
	Item catalog.Item
}

// State is the mutable state of one picker session. The zero value is not
// usable; call New.
type State struct {
	catalog []catalog.Item
	recents []usage.Record
	queued  string

	query   []rune
	display []match.DisplayItem
	cursor  int
	done    bool
}

// New returns a session over a catalog snapshot. queued is the name of the
// currently queued skill, or empty. The cursor starts on the first entry.
func New(items []catalog.Item, queued string, recents []usage.Record) *State {
	s := &State{
		catalog: items,
		recents: recents,
		queued:  queued,
	}
	s.refresh()
	return s
}

// Render builds the list shown for query: the grouped browse list when the
// query is blank, otherwise the ranked matches without headers.
func Render(items []catalog.Item, query string, recents []usage.Record) []match.DisplayItem {
	if strings.TrimSpace(query) == "" {
		return match.BuildDisplayList(items, recents)
	}
	return match.Flat(match.Filter(items, query))
}

// Handle applies one input. It returns the terminal action and true when
// the input ends the session. After that, every input is ignored.
func (s *State) Handle(in Input) (Action, bool) {
	if s.done {
		return Action{}, false
	}

	switch in.Kind {
	case InputCancel:
		return s.Cancel(), true
	case InputConfirm:
		it, ok := s.Current()
		if !ok {
			return Action{}, false
		}
		s.done = true
		if s.queued != "" && it.Name == s.queued {
			return Action{Kind: ActionUnqueue, Item: it}, true
		}
		return Action{Kind: ActionSelect, Item: it}, true
	case InputNext:
		s.move(1)
	case InputPrev:
		s.move(-1)
	case InputErase:
		if len(s.query) > 0 {
			s.query = s.query[:len(s.query)-1]
			s.refresh()
		}
	case InputChar:
		if in.Rune >= 0x20 {
			s.query = append(s.query, in.Rune)
			s.refresh()
		}
	case InputIgnore:
	}
	return Action{}, false
}

// Cancel ends the session without a choice. Hosts call it when the picker
// times out; it behaves exactly like the cancel key.
func (s *State) Cancel() Action {
	s.done = true
	return Action{Kind: ActionCancel}
}

// Done reports whether a terminal action has been produced.
func (s *State) Done() bool {
	return s.done
}

// RecordUsage notes that it was chosen at now and returns the updated
// recents for the host to persist. The open list is not rebuilt.
func (s *State) RecordUsage(it catalog.Item, now time.Time) []usage.Record {
	s.recents = usage.Touch(s.recents, it.Name, it.Namespace, now)
	return s.recents
}

// Query returns the text typed so far.
func (s *State) Query() string {
	return string(s.query)
}

// Display returns the current list. Callers must not modify it.
func (s *State) Display() []match.DisplayItem {
	return s.display
}

// Cursor returns the index into Display of the highlighted entry.
func (s *State) Cursor() int {
	return s.cursor
}

// Current returns the highlighted item, if the list has any entries.
func (s *State) Current() (catalog.Item, bool) {
	if s.cursor < 0 || s.cursor >= len(s.display) || !s.display[s.cursor].IsEntry() {
		return catalog.Item{}, false
	}
	return s.display[s.cursor].Item, true
}

// Queued returns the name of the queued skill, or empty.
func (s *State) Queued() string {
	return s.queued
}

// Recents returns the in-memory recents list.
func (s *State) Recents() []usage.Record {
	return s.recents
}

// Entries returns the number of selectable rows in Display.
func (s *State) Entries() int {
	n := 0
	for _, d := range s.display {
		if d.IsEntry() {
			n++
		}
	}
	return n
}

// Catalog returns the catalog snapshot the session was opened with.
func (s *State) Catalog() []catalog.Item {
	return s.catalog
}

// refresh rebuilds the display list and puts the cursor on its first entry.
func (s *State) refresh() {
	s.display = Render(s.catalog, string(s.query), s.recents)
	s.cursor = s.firstEntry()
}

func (s *State) firstEntry() int {
	for i, d := range s.display {
		if d.IsEntry() {
			return i
		}
	}
	return 0
}

// move steps the cursor dir entries forward or back, skipping headers and
// wrapping at either end.
func (s *State) move(dir int) {
	n := len(s.display)
	if n == 0 {
		return
	}
	i := s.cursor
	for range n {
		i = (i + dir + n) % n
		if s.display[i].IsEntry() {
			s.cursor = i
			return
		}
	}
}
