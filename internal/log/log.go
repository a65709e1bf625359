// Package log provides JSON-lines structured logging for skillpick.
//
// The picker owns the terminal while it runs, so logs go to a file by
// default. A line looks like:
//
//	{"ts":"2026-01-15T10:30:00Z","level":"INFO","msg":"picker closed","session_id":"...","action":"select"}
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config configures the structured logger.
type Config struct {
	// Output is the writer for log output (default: os.Stderr)
	Output io.Writer

	// Level is the minimum log level (default: LevelInfo)
	Level slog.Level

	// Debug enables debug level logging (overrides Level)
	Debug bool
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() *Config {
	return &Config{
		Output: os.Stderr,
		Level:  slog.LevelInfo,
		Debug:  false,
	}
}

// New creates a new JSON-lines structured logger.
//
// Log levels:
//   - debug: Verbose (enabled via SKILLPICK_DEBUG=1)
//   - info: Picker sessions and their outcome
//   - warn: Non-fatal issues (unreadable skill files, failed recents saves)
//   - error: Failures that abort a command
func New(cfg *Config) *slog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	level := cfg.Level
	if cfg.Debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Key = "ts"
			}
			return a
		},
	}

	return slog.New(slog.NewJSONHandler(output, opts))
}

// ParseLevel maps a config level name to a slog level. Unknown names map
// to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// OpenFile opens path for appending log lines, creating it and its
// directory as needed.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// Setup builds a logger writing to path at the named level and installs
// it as the slog default. When the file cannot be opened it falls back to
// a discarding logger so that logging never breaks the picker. The
// returned close function is always safe to call.
func Setup(path, level string) (*slog.Logger, func()) {
	cfg := &Config{Level: ParseLevel(level)}
	closeFn := func() {}

	f, err := OpenFile(path)
	if err != nil {
		cfg.Output = io.Discard
	} else {
		cfg.Output = f
		closeFn = func() { _ = f.Close() }
	}

	logger := New(cfg)
	slog.SetDefault(logger)
	return logger, closeFn
}

// SessionInfo describes one picker session.
type SessionInfo struct {
	SessionID string
	Skills    int
	Recents   int
	Queued    string
}

// LogSessionStart logs that a picker session opened.
func LogSessionStart(logger *slog.Logger, info SessionInfo) {
	logger.Info("picker opened",
		"session_id", info.SessionID,
		"skills", info.Skills,
		"recents", info.Recents,
		"queued", info.Queued,
	)
}

// LogSessionEnd logs a picker session's outcome.
func LogSessionEnd(logger *slog.Logger, sessionID, action, skill string, elapsed time.Duration) {
	logger.Info("picker closed",
		"session_id", sessionID,
		"action", action,
		"skill", skill,
		"elapsed_ms", elapsed.Milliseconds(),
	)
}

// LogCatalogLoaded logs a catalog scan.
func LogCatalogLoaded(logger *slog.Logger, roots, skills int, elapsed time.Duration) {
	logger.Debug("catalog loaded",
		"roots", roots,
		"skills", skills,
		"elapsed_ms", elapsed.Milliseconds(),
	)
}
