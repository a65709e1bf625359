// Package catalog discovers the skills offered by the picker.
//
// A skill is a directory holding a definition file (SKILL.md by default)
// whose YAML front matter names and describes it. Skills are collected from
// an ordered list of roots; trusted roots are scanned before local ones and
// the first skill seen with a given name wins.
package catalog

import (
	"errors"
	"fmt"
)

// DefaultNamespace is assigned to skills that declare no namespace and are
// not nested under a namespace directory.
const DefaultNamespace = "other"

// ErrNotFound is returned by Find when no skill has the requested name.
var ErrNotFound = errors.New("skill not found")

// Origin records which kind of root a skill was loaded from.
type Origin int

const (
	OriginTrusted Origin = iota // Bundled or user-level skill roots
	OriginLocal                 // Project-local skill roots
)

// String returns the lower-case origin tag.
func (o Origin) String() string {
	switch o {
	case OriginTrusted:
		return "trusted"
	case OriginLocal:
		return "local"
	default:
		return fmt.Sprintf("origin(%d)", int(o))
	}
}

// Item is one selectable skill.
type Item struct {
	Name        string // Unique across the catalog
	Namespace   string
	Description string
	Origin      Origin
	Path        string // Absolute path of the definition file
}

// QualifiedName returns "namespace:name".
func (it Item) QualifiedName() string {
	return it.Namespace + ":" + it.Name
}

// Find returns the item with the given name.
func Find(items []Item, name string) (Item, error) {
	for _, it := range items {
		if it.Name == name {
			return it, nil
		}
	}
	return Item{}, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Names returns the item names in catalog order.
func Names(items []Item) []string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	return names
}

// dedupe keeps the first item seen for each name, preserving order.
func dedupe(items []Item) []Item {
	seen := make(map[string]bool, len(items))
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if seen[it.Name] {
			continue
		}
		seen[it.Name] = true
		out = append(out, it)
	}
	return out
}
