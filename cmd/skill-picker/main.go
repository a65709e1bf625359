// Command skill-picker is the shell-integration front end of skillpick.
//
// It draws the picker on the terminal and reports the outcome on stdout
// and through its exit code, so that a shell widget can run it inside
// $(...) and fall back gracefully when no picker can be shown.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/runger/skillpick/internal/app"
	"github.com/runger/skillpick/internal/config"
	applog "github.com/runger/skillpick/internal/log"
	"github.com/runger/skillpick/internal/picker"
	"github.com/runger/skillpick/internal/session"
)

// Version information (set via ldflags during build).
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Exit codes.
// These match the expectations of shell scripts:
//
//	0 = skill selected (use the result)
//	1 = cancelled or unqueued (nothing to insert)
//	2 = fallback (no TTY, bad flags, config error, etc.)
const (
	exitSuccess   = 0
	exitCancelled = 1
	exitFallback  = 2
)

// maxQueryLen is the maximum length of a query string in bytes.
const maxQueryLen = 1024

// Output formats.
const (
	outputPlain = "plain"
	outputJSON  = "json"
)

// pickerOpts holds the parsed command-line options.
type pickerOpts struct {
	query   string
	tty     string
	output  string
	version bool
}

// outcome is the JSON form of a finished session.
type outcome struct {
	Action    string `json:"action"`
	Name      string `json:"name,omitempty"`
	Namespace string `json:"namespace,omitempty"`
	Path      string `json:"path,omitempty"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run is the main entry point, returning an exit code.
// It is separated from main() to enable testing.
func run(args []string, stdout io.Writer) int {
	opts, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitSuccess
		}
		fmt.Fprintf(os.Stderr, "skill-picker: %v\n", err)
		return exitFallback
	}
	if opts.version {
		printVersion(stdout)
		return exitSuccess
	}

	// Step 1: Check the terminal is usable.
	for _, check := range []func() error{
		func() error { return checkTTY(opts.tty) },
		checkTERM,
		func() error { return checkTermWidth(opts.tty) },
	} {
		if err := check(); err != nil {
			fmt.Fprintf(os.Stderr, "skill-picker: %v\n", err)
			return exitFallback
		}
	}

	// Step 2: Load config.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "skill-picker: failed to load config: %v\n", err)
		return exitFallback
	}
	paths := config.DefaultPaths()
	if err := paths.EnsureDirectories(); err != nil {
		fmt.Fprintf(os.Stderr, "skill-picker: %v\n", err)
		return exitFallback
	}

	// Step 3: Acquire advisory file lock.
	lockFd, err := acquireLock(paths.LockFile())
	if err != nil {
		fmt.Fprintf(os.Stderr, "skill-picker: %v\n", err)
		return exitFallback
	}
	defer releaseLock(lockFd)

	logFile := paths.LogFile()
	if cfg.Log.File != "" {
		logFile = config.ExpandHome(cfg.Log.File)
	}
	_, closeLog := applog.Setup(logFile, cfg.Log.Level)
	defer closeLog()

	// Step 4: Run the picker.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	action, err := pick(ctx, cfg, paths, opts)
	if err != nil {
		slog.Error("picker failed", "error", err)
		fmt.Fprintf(os.Stderr, "skill-picker: %v\n", err)
		return exitFallback
	}

	return report(stdout, opts.output, action)
}

// pick shows the picker on the terminal and applies its outcome.
func pick(ctx context.Context, cfg *config.Config, paths *config.Paths, opts *pickerOpts) (session.Action, error) {
	env, err := app.Open(ctx, cfg, paths)
	if err != nil {
		return session.Action{}, err
	}
	defer env.Close()

	// Open the terminal for TUI input/output since stdout carries the result.
	tty, err := os.OpenFile(opts.tty, os.O_RDWR, 0)
	if err != nil {
		return session.Action{}, fmt.Errorf("cannot open %s: %w", opts.tty, err)
	}
	defer tty.Close()

	// When invoked via $(skill-picker ...), stdout is a pipe, so the colour
	// profile is detected from the terminal instead.
	picker.UseColorProfileOf(tty)

	st := env.NewSession(ctx, opts.query)
	action, err := picker.Run(ctx, st, env.PickerOptions(), tty, tty, tea.WithAltScreen())
	if err != nil {
		return session.Action{}, err
	}
	if err := env.Apply(ctx, st, action); err != nil {
		return session.Action{}, err
	}
	return action, nil
}

// parseFlags parses the command-line flags.
func parseFlags(args []string) (*pickerOpts, error) {
	fs := flag.NewFlagSet("skill-picker", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := &pickerOpts{}
	fs.StringVar(&opts.query, "query", "", "initial search query (max 1024 bytes)")
	fs.StringVar(&opts.tty, "tty", "/dev/tty", "terminal device to draw on")
	fs.StringVar(&opts.output, "output", outputPlain, "output format: plain or json")
	fs.BoolVar(&opts.version, "version", false, "print version information")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: skill-picker [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Reject unknown positional arguments.
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	if opts.output != outputPlain && opts.output != outputJSON {
		return nil, fmt.Errorf("--output must be %q or %q (got %q)", outputPlain, outputJSON, opts.output)
	}
	if opts.tty == "" {
		return nil, fmt.Errorf("--tty must not be empty")
	}

	sanitized, err := sanitizeQuery(opts.query)
	if err != nil {
		return nil, fmt.Errorf("--query: %w", err)
	}
	opts.query = sanitized

	return opts, nil
}

// sanitizeQuery strips control characters and validates the query string.
func sanitizeQuery(q string) (string, error) {
	if q == "" {
		return "", nil
	}

	// Reject newlines before stripping.
	if strings.ContainsAny(q, "\n\r") {
		return "", fmt.Errorf("query must not contain newlines")
	}

	// The picker treats every control character as ignored input, so drop
	// them all, tab included.
	var b strings.Builder
	b.Grow(len(q))
	for _, r := range q {
		if r < 0x20 || r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}
	result := b.String()

	// Truncate to maxQueryLen bytes without splitting a rune.
	if len(result) > maxQueryLen {
		cut := maxQueryLen
		for cut > 0 && !utf8.RuneStart(result[cut]) {
			cut--
		}
		result = result[:cut]
	}

	return result, nil
}

// report writes the outcome to stdout and returns the exit code.
func report(w io.Writer, format string, action session.Action) int {
	code := exitCancelled
	if action.Kind == session.ActionSelect {
		code = exitSuccess
	}

	switch format {
	case outputJSON:
		out := outcome{Action: action.Kind.String()}
		if action.Kind != session.ActionCancel {
			out.Name = action.Item.Name
			out.Namespace = action.Item.Namespace
			out.Path = action.Item.Path
		}
		if err := json.NewEncoder(w).Encode(out); err != nil {
			return exitFallback
		}
	default:
		if action.Kind == session.ActionSelect {
			fmt.Fprintln(w, action.Item.Name)
		}
	}
	return code
}

// printVersion prints version information.
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "skill-picker %s\n", Version)
	fmt.Fprintf(w, "  commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  built:  %s\n", BuildDate)
}
