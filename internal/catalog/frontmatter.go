package catalog

import (
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter is the YAML header of a skill definition file.
type Frontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Namespace   string `yaml:"namespace"`
	Category    string `yaml:"category"` // Accepted alias for namespace
}

// namespace returns the declared namespace, preferring Namespace over Category.
func (fm Frontmatter) namespace() string {
	if ns := strings.TrimSpace(fm.Namespace); ns != "" {
		return ns
	}
	return strings.TrimSpace(fm.Category)
}

// ParseFrontmatter extracts the YAML front matter from a definition file.
// The header must open the file with a "---" line and be closed by another
// "---" line. It returns the parsed header and the remaining body.
//
// A missing or unterminated header yields an empty Frontmatter and the
// original content. Invalid YAML is logged and treated the same way.
func ParseFrontmatter(content string) (Frontmatter, string) {
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")

	if !strings.HasPrefix(content, "---\n") {
		return Frontmatter{}, content
	}

	rest := content[len("---\n"):]
	var header, body string
	switch {
	case strings.HasPrefix(rest, "---\n"):
		body = rest[len("---\n"):]
	case rest == "---":
	default:
		end := strings.Index(rest, "\n---\n")
		if end >= 0 {
			header, body = rest[:end], rest[end+len("\n---\n"):]
		} else if strings.HasSuffix(rest, "\n---") {
			header = strings.TrimSuffix(rest, "\n---")
		} else {
			return Frontmatter{}, content
		}
	}

	if strings.TrimSpace(header) == "" {
		return Frontmatter{}, strings.TrimSpace(body)
	}

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		slog.Warn("failed to parse skill front matter",
			"error", err,
		)
		return Frontmatter{}, content
	}

	return fm, strings.TrimSpace(body)
}
