package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/runger/skillpick/internal/catalog"
)

func TestRunQueue(t *testing.T) {
	root := testEnv(t)
	writeExampleCatalog(t, root)

	out := captureStdout(t, func() {
		if err := runQueue(queueCmd, []string{"brave-search"}); err != nil {
			t.Errorf("runQueue() error: %v", err)
		}
	})
	if !strings.Contains(out, "Queued brave-search") {
		t.Errorf("runQueue() = %q", out)
	}

	out = captureStdout(t, func() {
		if err := runQueued(queuedCmd, nil); err != nil {
			t.Errorf("runQueued() error: %v", err)
		}
	})
	if out != "brave-search\n" {
		t.Errorf("runQueued() = %q, want brave-search", out)
	}
}

func TestRunQueue_UnknownSkill(t *testing.T) {
	root := testEnv(t)
	writeExampleCatalog(t, root)

	err := runQueue(queueCmd, []string{"nope"})
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("runQueue(nope) error = %v, want ErrNotFound", err)
	}
}

func TestRunQueue_RecordsUse(t *testing.T) {
	root := testEnv(t)
	writeExampleCatalog(t, root)
	withRecentJSON(t, false)

	captureStdout(t, func() {
		_ = runQueue(queueCmd, []string{"ad-creative"})
		_ = runQueue(queueCmd, []string{"ad-creative"})
	})
	out := captureStdout(t, func() {
		if err := runRecent(recentCmd, nil); err != nil {
			t.Errorf("runRecent() error: %v", err)
		}
	})

	if !strings.Contains(out, "ad-creative") || !strings.Contains(out, "used 2×") {
		t.Errorf("runRecent() = %q", out)
	}
}

func TestRunUnqueue(t *testing.T) {
	root := testEnv(t)
	writeExampleCatalog(t, root)

	captureStdout(t, func() { _ = runQueue(queueCmd, []string{"fizzy-cli"}) })

	out := captureStdout(t, func() {
		if err := runUnqueue(unqueueCmd, nil); err != nil {
			t.Errorf("runUnqueue() error: %v", err)
		}
	})
	if out != "Unqueued fizzy-cli\n" {
		t.Errorf("runUnqueue() = %q", out)
	}

	out = captureStdout(t, func() {
		if err := runUnqueue(unqueueCmd, nil); err != nil {
			t.Errorf("second runUnqueue() error: %v", err)
		}
	})
	if !strings.Contains(out, "No skill is queued") {
		t.Errorf("second runUnqueue() = %q", out)
	}
}

func TestRunQueued_Empty(t *testing.T) {
	testEnv(t)

	out := captureStdout(t, func() {
		if err := runQueued(queuedCmd, nil); err != nil {
			t.Errorf("runQueued() error: %v", err)
		}
	})
	if out != "" {
		t.Errorf("runQueued() = %q, want empty", out)
	}
}

func TestCompleteSkillNames(t *testing.T) {
	root := testEnv(t)
	writeExampleCatalog(t, root)
	writeSkill(t, root, "search", "brave-images", "Image search")

	names, directive := completeSkillNames(queueCmd, nil, "brave")
	if directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("directive = %v", directive)
	}
	if len(names) != 2 {
		t.Fatalf("completeSkillNames() = %q, want 2 names", names)
	}
	for _, n := range names {
		if !strings.HasPrefix(n, "brave-") || !strings.Contains(n, "\t") {
			t.Errorf("unexpected completion %q", n)
		}
	}

	names, _ = completeSkillNames(queueCmd, []string{"brave-search"}, "")
	if names != nil {
		t.Errorf("second argument should not complete, got %q", names)
	}
}
