package match

import (
	"sort"
	"strings"

	"github.com/runger/skillpick/internal/catalog"
	"github.com/runger/skillpick/internal/usage"
)

// RecentGroup labels the group of recently used skills.
const RecentGroup = "recent"

// DisplayKind distinguishes the two kinds of display rows.
type DisplayKind int

const (
	KindHeader DisplayKind = iota // Group heading; never selectable
	KindEntry                     // A selectable skill
)

// DisplayItem is one row of the picker list. For a header, Group is the
// heading text and Item is zero. For an entry, Group names the group the
// entry is shown under.
type DisplayItem struct {
	Kind  DisplayKind
	Group string
	Item  catalog.Item
}

// Header returns a header row.
func Header(group string) DisplayItem {
	return DisplayItem{Kind: KindHeader, Group: group}
}

// Entry returns an entry row for it shown under group.
func Entry(it catalog.Item, group string) DisplayItem {
	return DisplayItem{Kind: KindEntry, Group: group, Item: it}
}

// IsEntry reports whether d is selectable.
func (d DisplayItem) IsEntry() bool {
	return d.Kind == KindEntry
}

// BuildDisplayList arranges items for browsing: recently used skills first
// under a "recent" header, then the rest grouped by namespace. Namespaces
// are sorted alphabetically with "other" last, and skills are sorted by
// name within a namespace. Recents that no longer resolve to an item are
// skipped.
func BuildDisplayList(items []catalog.Item, recents []usage.Record) []DisplayItem {
	byName := make(map[string]catalog.Item, len(items))
	for _, it := range items {
		if _, dup := byName[it.Name]; !dup {
			byName[it.Name] = it
		}
	}

	var out []DisplayItem
	shown := make(map[string]bool, len(recents))
	for _, r := range recents {
		it, ok := byName[r.Name]
		if !ok || shown[r.Name] {
			continue
		}
		if len(shown) == 0 {
			out = append(out, Header(RecentGroup))
		}
		shown[r.Name] = true
		out = append(out, Entry(it, RecentGroup))
	}

	groups := make(map[string][]catalog.Item)
	var namespaces []string
	for _, it := range items {
		if shown[it.Name] {
			continue
		}
		if _, ok := groups[it.Namespace]; !ok {
			namespaces = append(namespaces, it.Namespace)
		}
		groups[it.Namespace] = append(groups[it.Namespace], it)
	}

	sort.Slice(namespaces, func(i, j int) bool {
		return namespaceLess(namespaces[i], namespaces[j])
	})

	for _, ns := range namespaces {
		group := groups[ns]
		sort.SliceStable(group, func(i, j int) bool {
			return nameLess(group[i].Name, group[j].Name)
		})
		out = append(out, Header(ns))
		for _, it := range group {
			out = append(out, Entry(it, ns))
		}
	}
	return out
}

// Flat returns one entry per item, in order, each under its own namespace
// and without headers. It is used for ranked results so that relevance
// order is never regrouped.
func Flat(items []catalog.Item) []DisplayItem {
	out := make([]DisplayItem, len(items))
	for i, it := range items {
		out[i] = Entry(it, it.Namespace)
	}
	return out
}

// namespaceLess orders namespaces alphabetically, with the catch-all
// namespace after every other.
func namespaceLess(a, b string) bool {
	aOther := a == catalog.DefaultNamespace
	bOther := b == catalog.DefaultNamespace
	if aOther != bOther {
		return bOther
	}
	return nameLess(a, b)
}

// nameLess compares case-insensitively, falling back to byte order so the
// result is total.
func nameLess(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}
