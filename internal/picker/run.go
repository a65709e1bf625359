package picker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	applog "github.com/runger/skillpick/internal/log"
	"github.com/runger/skillpick/internal/session"
)

// UseColorProfileOf applies the colour profile detected on w to the default
// renderer. When the picker is started via $(...) stdout is a pipe, so the
// profile must come from the terminal the picker draws on.
func UseColorProfileOf(w io.Writer) {
	lipgloss.SetColorProfile(termenv.NewOutput(w).ColorProfile())
}

// Run shows the picker on in/out until it ends and returns the final
// action. A picker stopped by ctx reports a cancellation.
func Run(ctx context.Context, st *session.State, opts Options, in io.Reader, out io.Writer, extra ...tea.ProgramOption) (session.Action, error) {
	model := NewModel(st, opts)
	logger := slog.Default()
	started := time.Now()

	applog.LogSessionStart(logger, applog.SessionInfo{
		SessionID: model.SessionID(),
		Skills:    len(st.Catalog()),
		Recents:   len(st.Recents()),
		Queued:    st.Queued(),
	})

	progOpts := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	}, extra...)

	final, err := tea.NewProgram(model, progOpts...).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return session.Action{}, fmt.Errorf("picker: %w", err)
	}

	action, done := Outcome(final)
	if !done {
		action = st.Cancel()
	}

	applog.LogSessionEnd(logger, model.SessionID(), action.Kind.String(), action.Item.Name, time.Since(started))
	return action, nil
}

// Outcome extracts the final action from the model returned by a finished
// tea.Program.
func Outcome(final tea.Model) (session.Action, bool) {
	m, ok := final.(Model)
	if !ok {
		return session.Action{}, false
	}
	return m.Outcome()
}
