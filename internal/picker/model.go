// Package picker is the terminal front end of the skill picker: a Bubble
// Tea model that feeds key presses to a session.State and renders it.
package picker

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/runger/skillpick/internal/session"
)

// DefaultIdleTimeout closes an untouched picker.
const DefaultIdleTimeout = 2 * time.Minute

// defaultMaxVisible is the number of list rows shown when Options leaves
// MaxVisible unset.
const defaultMaxVisible = 15

// Options configures a picker Model.
type Options struct {
	// IdleTimeout cancels the picker after this long without a key press.
	// Zero disables the timeout.
	IdleTimeout time.Duration

	// MaxVisible caps the number of list rows.
	MaxVisible int

	// ShowDescriptions appends each skill's description to its row.
	ShowDescriptions bool

	// HighlightMatches emphasizes the query's characters in skill names.
	HighlightMatches bool

	// SessionID tags log lines; a random one is generated when empty.
	SessionID string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		IdleTimeout:      DefaultIdleTimeout,
		MaxVisible:       defaultMaxVisible,
		ShowDescriptions: true,
		HighlightMatches: true,
	}
}

// idleMsg fires when the inactivity timer expires.
type idleMsg struct {
	id uint64 // Must match the model's idleID to be accepted
}

// Model is the Bubble Tea model for the skill picker.
// It must be exported so that cmd/skill-picker can use it.
type Model struct {
	state *session.State
	opts  Options
	keys  keyMap
	help  help.Model

	width  int // Terminal width
	height int // Terminal height

	// idleID tracks the latest inactivity timer; only a matching idleMsg
	// closes the picker.
	idleID uint64

	outcome  session.Action
	finished bool
	timedOut bool
}

// NewModel creates a picker over st.
func NewModel(st *session.State, opts Options) Model {
	if opts.MaxVisible <= 0 {
		opts.MaxVisible = defaultMaxVisible
	}
	if opts.SessionID == "" {
		opts.SessionID = uuid.NewString()
	}
	return Model{
		state: st,
		opts:  opts,
		keys:  defaultKeyMap(),
		help:  help.New(),
	}
}

// Init implements tea.Model. It starts the inactivity timer.
func (m Model) Init() tea.Cmd {
	return m.idleTick(m.idleID)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case idleMsg:
		return m.handleIdle(msg)
	}

	return m, nil
}

// handleKey feeds the key to the session. A terminal action quits the
// program; anything else restarts the inactivity timer.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.finished {
		return m, nil
	}

	for _, in := range m.keys.inputsFor(msg) {
		if action, done := m.state.Handle(in); done {
			m.finish(action)
			return m, tea.Quit
		}
	}

	m.idleID++
	return m, m.idleTick(m.idleID)
}

// handleIdle cancels the session if the timer is still current.
func (m Model) handleIdle(msg idleMsg) (tea.Model, tea.Cmd) {
	if m.finished || msg.id != m.idleID {
		return m, nil // Stale timer; ignore.
	}
	m.finish(m.state.Cancel())
	m.timedOut = true
	return m, tea.Quit
}

func (m *Model) finish(action session.Action) {
	m.outcome = action
	m.finished = true
}

// idleTick returns a command that reports expiry of timer id, or nil when
// the timeout is disabled.
func (m Model) idleTick(id uint64) tea.Cmd {
	if m.opts.IdleTimeout <= 0 {
		return nil
	}
	return tea.Tick(m.opts.IdleTimeout, func(time.Time) tea.Msg {
		return idleMsg{id: id}
	})
}

// Outcome returns the action that ended the picker, if it has ended.
func (m Model) Outcome() (session.Action, bool) {
	return m.outcome, m.finished
}

// TimedOut reports whether the picker closed for lack of input.
func (m Model) TimedOut() bool {
	return m.timedOut
}

// State returns the underlying session.
func (m Model) State() *session.State {
	return m.state
}

// SessionID returns the id used in log lines for this picker.
func (m Model) SessionID() string {
	return m.opts.SessionID
}
