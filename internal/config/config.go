package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the skillpick configuration.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Picker  PickerConfig  `yaml:"picker"`
	Recents RecentsConfig `yaml:"recents"`
	Log     LogConfig     `yaml:"log"`
}

// CatalogConfig controls where skills are discovered.
type CatalogConfig struct {
	TrustedDirs    []string `yaml:"trusted_dirs"`    // Scanned first; win name conflicts
	LocalDirs      []string `yaml:"local_dirs"`      // Project-local roots
	FileName       string   `yaml:"file_name"`       // Definition file inside each skill directory
	FollowSymlinks bool     `yaml:"follow_symlinks"` // Follow symlinked skill directories
}

// PickerConfig holds interactive picker settings.
type PickerConfig struct {
	IdleTimeoutSecs  int  `yaml:"idle_timeout_secs"` // Close after this long without input (0 = never)
	MaxVisible       int  `yaml:"max_visible"`       // Rows shown at once
	ShowDescriptions bool `yaml:"show_descriptions"` // Show descriptions next to names
	HighlightMatches bool `yaml:"highlight_matches"` // Highlight matched characters
}

// RecentsConfig holds recently-used tracking settings.
type RecentsConfig struct {
	Enabled bool   `yaml:"enabled"` // Record and show recently used skills
	Backend string `yaml:"backend"` // json or sqlite
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Log file path (overrides default)
}

// Picker row limits.
const (
	MinVisible = 5
	MaxVisible = 100
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			TrustedDirs:    []string{"~/.claude/skills"},
			LocalDirs:      []string{".claude/skills"},
			FileName:       "SKILL.md",
			FollowSymlinks: true,
		},
		Picker: PickerConfig{
			IdleTimeoutSecs:  120,
			MaxVisible:       15,
			ShowDescriptions: true,
			HighlightMatches: true,
		},
		Recents: RecentsConfig{
			Enabled: true,
			Backend: "json",
		},
		Log: LogConfig{
			Level: "info",
			File:  "", // Use default from paths
		},
	}
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	paths := DefaultPaths()
	return LoadFromFile(paths.ConfigFile())
}

// LoadFromFile loads configuration from the specified file.
// If the file doesn't exist, returns default configuration.
// Environment variable overrides are applied after file loading.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnvOverrides()
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Save saves the configuration to the default path.
func (c *Config) Save() error {
	paths := DefaultPaths()
	return c.SaveToFile(paths.ConfigFile())
}

// SaveToFile saves the configuration to the specified file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Get retrieves a configuration value by dot-separated key.
// For example: "picker.idle_timeout_secs" or "recents.backend".
// List values are returned comma-separated.
func (c *Config) Get(key string) (string, error) {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return "", errors.New("key must be in format 'section.key'")
	}

	section, field := parts[0], parts[1]

	switch section {
	case "catalog":
		return c.getCatalogField(field)
	case "picker":
		return c.getPickerField(field)
	case "recents":
		return c.getRecentsField(field)
	case "log":
		return c.getLogField(field)
	default:
		return "", fmt.Errorf("unknown section: %s", section)
	}
}

// Set sets a configuration value by dot-separated key. List values are
// given comma-separated.
func (c *Config) Set(key, value string) error {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return errors.New("key must be in format 'section.key'")
	}

	section, field := parts[0], parts[1]

	switch section {
	case "catalog":
		return c.setCatalogField(field, value)
	case "picker":
		return c.setPickerField(field, value)
	case "recents":
		return c.setRecentsField(field, value)
	case "log":
		return c.setLogField(field, value)
	default:
		return fmt.Errorf("unknown section: %s", section)
	}
}

func (c *Config) getCatalogField(field string) (string, error) {
	switch field {
	case "trusted_dirs":
		return strings.Join(c.Catalog.TrustedDirs, ","), nil
	case "local_dirs":
		return strings.Join(c.Catalog.LocalDirs, ","), nil
	case "file_name":
		return c.Catalog.FileName, nil
	case "follow_symlinks":
		return strconv.FormatBool(c.Catalog.FollowSymlinks), nil
	default:
		return "", fmt.Errorf("unknown field: catalog.%s", field)
	}
}

func (c *Config) setCatalogField(field, value string) error {
	switch field {
	case "trusted_dirs":
		c.Catalog.TrustedDirs = splitList(value)
	case "local_dirs":
		c.Catalog.LocalDirs = splitList(value)
	case "file_name":
		if !isValidFileName(value) {
			return fmt.Errorf("invalid file_name: %q (must be a plain file name)", value)
		}
		c.Catalog.FileName = value
	case "follow_symlinks":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for follow_symlinks: %w", err)
		}
		c.Catalog.FollowSymlinks = v
	default:
		return fmt.Errorf("unknown field: catalog.%s", field)
	}
	return nil
}

func (c *Config) getPickerField(field string) (string, error) {
	switch field {
	case "idle_timeout_secs":
		return strconv.Itoa(c.Picker.IdleTimeoutSecs), nil
	case "max_visible":
		return strconv.Itoa(c.Picker.MaxVisible), nil
	case "show_descriptions":
		return strconv.FormatBool(c.Picker.ShowDescriptions), nil
	case "highlight_matches":
		return strconv.FormatBool(c.Picker.HighlightMatches), nil
	default:
		return "", fmt.Errorf("unknown field: picker.%s", field)
	}
}

func (c *Config) setPickerField(field, value string) error {
	switch field {
	case "idle_timeout_secs":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for idle_timeout_secs: %w", err)
		}
		if v < 0 {
			return fmt.Errorf("invalid idle_timeout_secs: must be non-negative")
		}
		c.Picker.IdleTimeoutSecs = v
	case "max_visible":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for max_visible: %w", err)
		}
		c.Picker.MaxVisible = clampVisible(v)
	case "show_descriptions":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for show_descriptions: %w", err)
		}
		c.Picker.ShowDescriptions = v
	case "highlight_matches":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for highlight_matches: %w", err)
		}
		c.Picker.HighlightMatches = v
	default:
		return fmt.Errorf("unknown field: picker.%s", field)
	}
	return nil
}

func (c *Config) getRecentsField(field string) (string, error) {
	switch field {
	case "enabled":
		return strconv.FormatBool(c.Recents.Enabled), nil
	case "backend":
		return c.Recents.Backend, nil
	default:
		return "", fmt.Errorf("unknown field: recents.%s", field)
	}
}

func (c *Config) setRecentsField(field, value string) error {
	switch field {
	case "enabled":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for enabled: %w", err)
		}
		c.Recents.Enabled = v
	case "backend":
		if !isValidBackend(value) {
			return fmt.Errorf("invalid backend: %s (must be json or sqlite)", value)
		}
		c.Recents.Backend = value
	default:
		return fmt.Errorf("unknown field: recents.%s", field)
	}
	return nil
}

func (c *Config) getLogField(field string) (string, error) {
	switch field {
	case "level":
		return c.Log.Level, nil
	case "file":
		return c.Log.File, nil
	default:
		return "", fmt.Errorf("unknown field: log.%s", field)
	}
}

func (c *Config) setLogField(field, value string) error {
	switch field {
	case "level":
		if !isValidLogLevel(value) {
			return fmt.Errorf("invalid level: %s (must be debug, info, warn, or error)", value)
		}
		c.Log.Level = value
	case "file":
		c.Log.File = value
	default:
		return fmt.Errorf("unknown field: log.%s", field)
	}
	return nil
}

// Validate validates the configuration. Out-of-range row counts are
// clamped rather than rejected.
func (c *Config) Validate() error {
	if !isValidFileName(c.Catalog.FileName) {
		return fmt.Errorf("catalog.file_name must be a plain file name (got: %q)", c.Catalog.FileName)
	}

	if c.Picker.IdleTimeoutSecs < 0 {
		return errors.New("picker.idle_timeout_secs must be >= 0")
	}

	c.Picker.MaxVisible = clampVisible(c.Picker.MaxVisible)

	if !isValidBackend(c.Recents.Backend) {
		return fmt.Errorf("recents.backend must be json or sqlite (got: %s)", c.Recents.Backend)
	}

	if !isValidLogLevel(c.Log.Level) {
		return fmt.Errorf("log.level must be debug, info, warn, or error (got: %s)", c.Log.Level)
	}

	return nil
}

// SkillDirs returns the catalog roots with "~" expanded, trusted first.
func (c *Config) SkillDirs() (trusted, local []string) {
	return expandAll(c.Catalog.TrustedDirs), expandAll(c.Catalog.LocalDirs)
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func isValidBackend(backend string) bool {
	switch backend {
	case "json", "sqlite":
		return true
	default:
		return false
	}
}

func isValidFileName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsRune(name, '/') && !strings.ContainsRune(name, filepath.Separator)
}

func clampVisible(v int) int {
	if v < MinVisible {
		return MinVisible
	}
	if v > MaxVisible {
		return MaxVisible
	}
	return v
}

// ApplyEnvOverrides applies environment variable overrides to the config.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("SKILLPICK_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			c.Log.Level = "debug"
		}
	}
	if v := os.Getenv("SKILLPICK_LOG_LEVEL"); v != "" {
		if isValidLogLevel(v) {
			c.Log.Level = v
		}
	}
	if v := os.Getenv("SKILLPICK_SKILL_DIRS"); v != "" {
		c.Catalog.TrustedDirs = filepath.SplitList(v)
	}
	if v := os.Getenv("SKILLPICK_RECENTS_BACKEND"); v != "" {
		if isValidBackend(v) {
			c.Recents.Backend = v
		}
	}
}

// ListKeys returns user-facing configuration keys.
func ListKeys() []string {
	return []string{
		"catalog.trusted_dirs",
		"catalog.local_dirs",
		"catalog.file_name",
		"catalog.follow_symlinks",
		"picker.idle_timeout_secs",
		"picker.max_visible",
		"picker.show_descriptions",
		"picker.highlight_matches",
		"recents.enabled",
		"recents.backend",
		"log.level",
		"log.file",
	}
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func expandAll(dirs []string) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		out = append(out, ExpandHome(d))
	}
	return out
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" {
		return homeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}
