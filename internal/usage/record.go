// Package usage tracks which skills were picked recently.
//
// The recents list is ordered most-recent-first and bounded to MaxRecents
// entries. Touch is the only operation that changes it; Store
// implementations persist it between picker sessions.
package usage

import (
	"sort"
	"time"
)

// MaxRecents is the maximum number of records kept.
const MaxRecents = 8

// Record is the usage history of one skill.
type Record struct {
	Name       string    `json:"name"`
	Namespace  string    `json:"namespace"`
	LastUsedAt time.Time `json:"lastUsedAt"`
	Count      int       `json:"count"`
}

// Touch records one use of the named skill and returns the updated list.
// An existing record has its count incremented and moves to the front with
// a fresh timestamp; otherwise a record with count 1 is inserted at the
// front. The result is truncated to MaxRecents. records is not modified.
func Touch(records []Record, name, namespace string, now time.Time) []Record {
	rec := Record{Name: name, Namespace: namespace, LastUsedAt: now, Count: 1}

	out := make([]Record, 0, len(records)+1)
	out = append(out, rec)
	for _, r := range records {
		if r.Name == name {
			out[0].Count = r.Count + 1
			continue
		}
		out = append(out, r)
	}

	if len(out) > MaxRecents {
		out = out[:MaxRecents]
	}
	return out
}

// normalize drops invalid and duplicate records, orders the rest
// most-recent-first and applies the MaxRecents bound. It is used on data
// read back from a store.
func normalize(records []Record) []Record {
	seen := make(map[string]bool, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Name == "" || seen[r.Name] {
			continue
		}
		seen[r.Name] = true
		if r.Count < 1 {
			r.Count = 1
		}
		out = append(out, r)
	}

	sortByRecency(out)
	if len(out) > MaxRecents {
		out = out[:MaxRecents]
	}
	return out
}

// sortByRecency orders records by LastUsedAt descending, keeping the input
// order for equal timestamps.
func sortByRecency(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].LastUsedAt.After(records[j].LastUsedAt)
	})
}
