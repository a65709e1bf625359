package cmd

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRunList_Grouped(t *testing.T) {
	root := testEnv(t)
	writeExampleCatalog(t, root)
	withListJSON(t, false)

	var err error
	out := captureStdout(t, func() { err = runList(listCmd, nil) })
	if err != nil {
		t.Fatalf("runList() error: %v", err)
	}

	want := strings.Join([]string{
		"marketing",
		"  ad-creative  Draft ad copy",
		"search",
		"  brave-search  Search the web with Brave",
		"tools",
		"  fizzy-cli  Fizzy command line helpers",
		"",
	}, "\n")
	if out != want {
		t.Errorf("runList() output:\n%s\nwant:\n%s", out, want)
	}
}

func TestRunList_Ranked(t *testing.T) {
	root := testEnv(t)
	writeExampleCatalog(t, root)
	withListJSON(t, false)

	out := captureStdout(t, func() {
		if err := runList(listCmd, []string{"marketing:ad"}); err != nil {
			t.Errorf("runList() error: %v", err)
		}
	})

	if out != "  ad-creative  marketing  Draft ad copy\n" {
		t.Errorf("runList() = %q", out)
	}
}

func TestRunList_NoMatches(t *testing.T) {
	root := testEnv(t)
	writeExampleCatalog(t, root)
	withListJSON(t, false)

	out := captureStdout(t, func() {
		if err := runList(listCmd, []string{"zzz"}); err != nil {
			t.Errorf("runList() error: %v", err)
		}
	})

	if !strings.Contains(out, "No matching skills") {
		t.Errorf("runList() = %q, want no-match message", out)
	}
}

func TestRunList_JSON(t *testing.T) {
	root := testEnv(t)
	writeExampleCatalog(t, root)
	withListJSON(t, true)

	out := captureStdout(t, func() {
		if err := runList(listCmd, []string{"search"}); err != nil {
			t.Errorf("runList() error: %v", err)
		}
	})

	var entries []listEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1: %+v", len(entries), entries)
	}
	e := entries[0]
	if e.Name != "brave-search" || e.Namespace != "search" || e.Origin != "trusted" {
		t.Errorf("unexpected entry %+v", e)
	}
	if e.Queued {
		t.Error("nothing is queued")
	}
}

func TestRunList_MarksQueued(t *testing.T) {
	root := testEnv(t)
	writeExampleCatalog(t, root)
	withListJSON(t, false)

	captureStdout(t, func() {
		if err := runQueue(queueCmd, []string{"fizzy-cli"}); err != nil {
			t.Errorf("runQueue() error: %v", err)
		}
	})
	out := captureStdout(t, func() {
		if err := runList(listCmd, nil); err != nil {
			t.Errorf("runList() error: %v", err)
		}
	})

	// Queuing is a use, so the skill is listed under "recent".
	if !strings.HasPrefix(out, "recent\n  fizzy-cli  [queued]  Fizzy command line helpers\n") {
		t.Errorf("runList() output:\n%s", out)
	}
}

func TestRunList_EmptyCatalog(t *testing.T) {
	testEnv(t)
	withListJSON(t, true)

	out := captureStdout(t, func() {
		if err := runList(listCmd, nil); err != nil {
			t.Errorf("runList() error: %v", err)
		}
	})

	if strings.TrimSpace(out) != "[]" {
		t.Errorf("runList() = %q, want []", out)
	}
}
