package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// testEnv points every skillpick directory at a temporary location and
// returns the skill root.
func testEnv(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	t.Setenv("HOME", base)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(base, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(base, "state"))
	t.Setenv("XDG_RUNTIME_DIR", filepath.Join(base, "run"))
	t.Setenv("SKILLPICK_DEBUG", "")
	t.Setenv("SKILLPICK_LOG_LEVEL", "")
	t.Setenv("SKILLPICK_RECENTS_BACKEND", "")
	t.Setenv("COLUMNS", "100")

	skills := filepath.Join(base, "skills")
	t.Setenv("SKILLPICK_SKILL_DIRS", skills)

	// Keep color codes out of captured output.
	disableColors()
	t.Cleanup(enableColors)
	return skills
}

// writeSkill creates <root>/<namespace>/<name>/SKILL.md.
func writeSkill(t *testing.T, root, namespace, name, desc string) {
	t.Helper()
	dir := filepath.Join(root, namespace, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}
	content := "---\nname: " + name + "\ndescription: " + desc + "\n---\n"
	if err := os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
}

// writeExampleCatalog creates the three-skill catalog used across tests.
func writeExampleCatalog(t *testing.T, root string) {
	t.Helper()
	writeSkill(t, root, "tools", "fizzy-cli", "Fizzy command line helpers")
	writeSkill(t, root, "search", "brave-search", "Search the web with Brave")
	writeSkill(t, root, "marketing", "ad-creative", "Draft ad copy")
}

func withListJSON(t *testing.T, v bool) {
	t.Helper()
	old := listJSON
	listJSON = v
	t.Cleanup(func() { listJSON = old })
}

func withRecentJSON(t *testing.T, v bool) {
	t.Helper()
	old := recentJSON
	recentJSON = v
	t.Cleanup(func() { recentJSON = old })
}

func withPickExec(t *testing.T, v string) {
	t.Helper()
	old := pickExec
	pickExec = v
	t.Cleanup(func() { pickExec = old })
}

func withPickForce(t *testing.T, v bool) {
	t.Helper()
	old := pickForce
	pickForce = v
	t.Cleanup(func() { pickForce = old })
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() failed: %v", err)
	}
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	fn()
	_ = w.Close()
	os.Stdout = old
	out := <-outC
	_ = r.Close()
	return out
}
