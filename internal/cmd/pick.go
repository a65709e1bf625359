package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/runger/skillpick/internal/cmdutil"
	"github.com/runger/skillpick/internal/picker"
	"github.com/runger/skillpick/internal/session"
)

var (
	pickExec  string
	pickForce bool
)

var pickCmd = &cobra.Command{
	Use:     "pick [query]",
	Short:   "Choose a skill interactively",
	GroupID: groupCore,
	Long: `Open the skill picker on the terminal.

The picked skill is queued and printed to stdout. Picking the skill that
is already queued unqueues it instead. Esc cancels without changes.

With --exec, the command is run with the picked skill instead of printing
it. The template may use {name}, {namespace}, {qualified}, {description},
{path} and {dir}; without any of them the name is appended. Commands that
look destructive (rm -rf, git reset --hard, curl | sh, ...) are refused
unless --force is given.

Examples:
  skillpick pick                          # Browse all skills
  skillpick pick search:                  # Start with a namespace filter
  skillpick pick --exec 'cat {path}'      # Show the picked skill's definition`,
	Args: cobra.ArbitraryArgs,
	RunE: runPick,
}

func init() {
	pickCmd.Flags().StringVar(&pickExec, "exec", "", "command template to run with the picked skill")
	pickCmd.Flags().BoolVar(&pickForce, "force", false, "run --exec commands even when they look destructive")
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	env, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	// stdout may be captured by $(...), so the picker draws on the terminal.
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("cannot open /dev/tty: %w", err)
	}
	defer tty.Close()
	picker.UseColorProfileOf(tty)

	st := env.NewSession(ctx, strings.Join(args, " "))
	action, err := picker.Run(ctx, st, env.PickerOptions(), tty, tty, tea.WithAltScreen())
	if err != nil {
		return err
	}

	if err := env.Apply(ctx, st, action); err != nil {
		return err
	}
	return reportPick(ctx, action)
}

// reportPick prints or executes the outcome of a picker session.
func reportPick(ctx context.Context, action session.Action) error {
	switch action.Kind {
	case session.ActionSelect:
		if pickExec != "" {
			return execSkill(ctx, pickExec, action)
		}
		fmt.Println(action.Item.Name)
	case session.ActionUnqueue:
		fmt.Fprintf(os.Stderr, "%sUnqueued%s %s\n", colorDim, colorReset, action.Item.Name)
	case session.ActionCancel:
	}
	return nil
}

func execSkill(ctx context.Context, tmpl string, action session.Action) error {
	c, err := cmdutil.Command(ctx, tmpl, action.Item)
	if err != nil {
		return fmt.Errorf("invalid --exec: %w", err)
	}
	if !pickForce {
		if err := cmdutil.Check(c.Args); err != nil {
			return fmt.Errorf("%w; rerun with --force to run it anyway", err)
		}
	}
	slog.Info("running exec command", "skill", action.Item.Name, "command", cmdutil.Describe(c.Args))
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("%s: %w", c.Args[0], err)
	}
	return nil
}
