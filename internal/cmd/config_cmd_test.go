package cmd

import (
	"os"
	"strings"
	"testing"

	"github.com/runger/skillpick/internal/config"
)

func TestRunConfig_List(t *testing.T) {
	testEnv(t)

	out := captureStdout(t, func() {
		if err := runConfig(configCmd, nil); err != nil {
			t.Errorf("runConfig() error: %v", err)
		}
	})

	for _, key := range config.ListKeys() {
		if !strings.Contains(out, key) {
			t.Errorf("config list should contain %q", key)
		}
	}
	if !strings.Contains(out, "log.file = (not set)") {
		t.Errorf("empty values should be marked, got:\n%s", out)
	}
}

func TestRunConfig_GetSet(t *testing.T) {
	testEnv(t)

	out := captureStdout(t, func() {
		if err := runConfig(configCmd, []string{"picker.max_visible", "25"}); err != nil {
			t.Errorf("set error: %v", err)
		}
	})
	if !strings.Contains(out, "picker.max_visible = 25") {
		t.Errorf("set output = %q", out)
	}

	paths := config.DefaultPaths()
	if _, err := os.Stat(paths.ConfigFile()); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	out = captureStdout(t, func() {
		if err := runConfig(configCmd, []string{"picker.max_visible"}); err != nil {
			t.Errorf("get error: %v", err)
		}
	})
	if out != "25\n" {
		t.Errorf("get = %q, want 25", out)
	}
}

func TestRunConfig_InvalidKey(t *testing.T) {
	testEnv(t)

	if err := runConfig(configCmd, []string{"nope.key"}); err == nil {
		t.Error("get of unknown key should fail")
	}
	if err := runConfig(configCmd, []string{"recents.backend", "redis"}); err == nil {
		t.Error("set of invalid backend should fail")
	}
}
