package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/runger/skillpick/internal/catalog"
	"github.com/runger/skillpick/internal/cmdutil"
	"github.com/runger/skillpick/internal/session"
)

func TestReportPick_PrintsSelection(t *testing.T) {
	withPickExec(t, "")
	action := session.Action{Kind: session.ActionSelect, Item: catalog.Item{Name: "brave-search"}}

	out := captureStdout(t, func() {
		if err := reportPick(context.Background(), action); err != nil {
			t.Errorf("reportPick() error: %v", err)
		}
	})
	if out != "brave-search\n" {
		t.Errorf("reportPick() = %q, want the skill name", out)
	}
}

func TestReportPick_CancelAndUnqueuePrintNothing(t *testing.T) {
	withPickExec(t, "")
	for _, kind := range []session.ActionKind{session.ActionCancel, session.ActionUnqueue} {
		out := captureStdout(t, func() {
			if err := reportPick(context.Background(), session.Action{Kind: kind}); err != nil {
				t.Errorf("reportPick(%v) error: %v", kind, err)
			}
		})
		if out != "" {
			t.Errorf("reportPick(%v) stdout = %q, want empty", kind, out)
		}
	}
}

func TestReportPick_Exec(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	dir := t.TempDir()
	marker := filepath.Join(dir, "picked")
	withPickExec(t, "sh -c 'printf %s \"$1\" > "+marker+"' sh {qualified}")

	action := session.Action{Kind: session.ActionSelect, Item: catalog.Item{Name: "ad-creative", Namespace: "marketing"}}
	if err := reportPick(context.Background(), action); err != nil {
		t.Fatalf("reportPick() error: %v", err)
	}

	data, err := os.ReadFile(marker)
	if err != nil {
		t.Fatalf("exec did not run: %v", err)
	}
	if string(data) != "marketing:ad-creative" {
		t.Errorf("exec received %q", data)
	}
}

func TestReportPick_ExecFailure(t *testing.T) {
	withPickExec(t, "skillpick-no-such-binary-xyz")
	action := session.Action{Kind: session.ActionSelect, Item: catalog.Item{Name: "x"}}

	if err := reportPick(context.Background(), action); err == nil {
		t.Error("reportPick() should fail when the command cannot run")
	}
}

func TestReportPick_ExecInvalidTemplate(t *testing.T) {
	withPickExec(t, `echo "unterminated`)
	action := session.Action{Kind: session.ActionSelect, Item: catalog.Item{Name: "x"}}

	if err := reportPick(context.Background(), action); err == nil {
		t.Error("reportPick() should reject an unterminated quote")
	}
}

func TestReportPick_ExecRefusesDestructive(t *testing.T) {
	dir := t.TempDir()
	skillDir := filepath.Join(dir, "fizzy-cli")
	if err := os.MkdirAll(skillDir, 0o755); err != nil {
		t.Fatal(err)
	}
	withPickExec(t, "rm -rf {dir}")
	withPickForce(t, false)

	action := session.Action{Kind: session.ActionSelect, Item: catalog.Item{Name: "fizzy-cli", Path: filepath.Join(skillDir, "SKILL.md")}}
	err := reportPick(context.Background(), action)
	if !errors.Is(err, cmdutil.ErrDestructive) {
		t.Fatalf("reportPick() error = %v, want ErrDestructive", err)
	}
	if _, err := os.Stat(skillDir); err != nil {
		t.Errorf("refused command still ran: %v", err)
	}
}

func TestReportPick_ExecForce(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses rm")
	}
	dir := t.TempDir()
	target := filepath.Join(dir, "scratch")
	if err := os.WriteFile(target, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	withPickExec(t, "rm -f {path}")
	withPickForce(t, true)

	action := session.Action{Kind: session.ActionSelect, Item: catalog.Item{Name: "scratch", Path: target}}
	captureStdout(t, func() {
		if err := reportPick(context.Background(), action); err != nil {
			t.Errorf("reportPick() error: %v", err)
		}
	})
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Errorf("forced command did not run, stat error = %v", err)
	}
}
