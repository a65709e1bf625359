// Package cmdutil turns a picked skill into a command line for `pick --exec`.
package cmdutil

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/shlex"

	"github.com/runger/skillpick/internal/catalog"
	"github.com/runger/skillpick/internal/sanitize"
)

var (
	// ErrEmptyCommand is returned when a template expands to no arguments.
	ErrEmptyCommand = errors.New("command template is empty")
	// ErrDestructive is returned by Check for a command that matches a
	// destructive pattern.
	ErrDestructive = errors.New("command looks destructive")
)

// Placeholders lists the fields a template may reference.
var Placeholders = []string{"{name}", "{namespace}", "{qualified}", "{description}", "{path}", "{dir}"}

// Expand splits tmpl into argv using POSIX shell quoting rules and
// substitutes the item's fields into each argument. Substitution happens
// after splitting, so a description containing spaces or quotes stays a
// single argument. No shell is involved.
func Expand(tmpl string, it catalog.Item) ([]string, error) {
	argv, err := shlex.Split(tmpl)
	if err != nil {
		return nil, fmt.Errorf("failed to split command template: %w", err)
	}
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}

	r := replacer(it)
	for i, arg := range argv {
		argv[i] = r.Replace(arg)
	}
	return argv, nil
}

// Command builds the process for tmpl expanded with it. When tmpl names no
// placeholder the skill name is appended as the last argument.
func Command(ctx context.Context, tmpl string, it catalog.Item) (*exec.Cmd, error) {
	argv, err := Expand(tmpl, it)
	if err != nil {
		return nil, err
	}
	if !HasPlaceholder(tmpl) {
		argv = append(argv, it.Name)
	}
	return exec.CommandContext(ctx, argv[0], argv[1:]...), nil
}

// Check rejects argv when its command line matches a destructive pattern.
func Check(argv []string) error {
	if risk := sanitize.Risk(strings.Join(argv, " ")); risk != "" {
		return fmt.Errorf("%w (%s): %s", ErrDestructive, risk, Describe(argv))
	}
	return nil
}

// Describe returns argv as one line with credentials redacted, for logs
// and error messages.
func Describe(argv []string) string {
	return strings.Join(sanitize.RedactAll(argv), " ")
}

// HasPlaceholder reports whether tmpl references any item field.
func HasPlaceholder(tmpl string) bool {
	for _, p := range Placeholders {
		if strings.Contains(tmpl, p) {
			return true
		}
	}
	return false
}

func replacer(it catalog.Item) *strings.Replacer {
	dir := ""
	if it.Path != "" {
		dir = filepath.Dir(it.Path)
	}
	return strings.NewReplacer(
		"{name}", it.Name,
		"{namespace}", it.Namespace,
		"{qualified}", it.QualifiedName(),
		"{description}", it.Description,
		"{path}", it.Path,
		"{dir}", dir,
	)
}
