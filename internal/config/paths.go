// Package config provides configuration management for skillpick.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Paths holds all the path configurations for skillpick.
type Paths struct {
	// ConfigDir is the directory for configuration files (~/.config/skillpick)
	ConfigDir string

	// DataDir is the directory for data files (~/.local/share/skillpick)
	DataDir string

	// StateDir is the directory for mutable state like the queue (~/.local/state/skillpick)
	StateDir string

	// RuntimeDir is the directory for runtime files like the picker lock
	RuntimeDir string
}

// DefaultPaths returns the default paths based on XDG Base Directory spec.
// On Windows, it uses %APPDATA% instead.
func DefaultPaths() *Paths {
	home := homeDir()

	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(home, "AppData", "Local")
		}

		return &Paths{
			ConfigDir:  filepath.Join(appData, "skillpick"),
			DataDir:    filepath.Join(localAppData, "skillpick"),
			StateDir:   filepath.Join(localAppData, "skillpick", "state"),
			RuntimeDir: filepath.Join(localAppData, "skillpick", "run"),
		}
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}

	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = filepath.Join(home, ".local", "state")
	}

	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		runtimeDir = filepath.Join(stateHome, "skillpick", "run")
	} else {
		runtimeDir = filepath.Join(runtimeDir, "skillpick")
	}

	return &Paths{
		ConfigDir:  filepath.Join(configHome, "skillpick"),
		DataDir:    filepath.Join(dataHome, "skillpick"),
		StateDir:   filepath.Join(stateHome, "skillpick"),
		RuntimeDir: runtimeDir,
	}
}

// ConfigFile returns the path to the main configuration file.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// RecentsFile returns the path to the JSON recents file.
func (p *Paths) RecentsFile() string {
	return filepath.Join(p.DataDir, "recents.json")
}

// RecentsDB returns the path to the SQLite recents database.
func (p *Paths) RecentsDB() string {
	return filepath.Join(p.DataDir, "recents.db")
}

// QueueFile returns the path to the queued-skill file.
func (p *Paths) QueueFile() string {
	return filepath.Join(p.StateDir, "queue.json")
}

// LockFile returns the path to the picker lock file.
func (p *Paths) LockFile() string {
	return filepath.Join(p.RuntimeDir, "picker.lock")
}

// LogDir returns the path to the log directory.
func (p *Paths) LogDir() string {
	return filepath.Join(p.StateDir, "logs")
}

// LogFile returns the path to the log file.
func (p *Paths) LogFile() string {
	return filepath.Join(p.LogDir(), "skillpick.log")
}

// EnsureDirectories creates all necessary directories.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.ConfigDir,
		p.DataDir,
		p.StateDir,
		p.RuntimeDir,
		p.LogDir(),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}

	return nil
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback
		if runtime.GOOS == "windows" {
			return os.Getenv("USERPROFILE")
		}
		return os.Getenv("HOME")
	}
	return home
}
