package match

import (
	"math"
	"sort"
	"strings"

	"github.com/runger/skillpick/internal/catalog"
)

const (
	// scopedDescriptionWeight scales description scores for "ns:query".
	scopedDescriptionWeight = 0.3
	// qualifiedNameWeight scales scores against "namespace:name".
	qualifiedNameWeight = 0.9

	descriptionBase       = 500.0
	descriptionRatioBonus = 500.0
)

// Filter narrows items to those matching query, best match first. Ties keep
// catalog order.
//
// The query forms, checked in order:
//   - empty or blank: items is returned unchanged.
//   - "ns:name": items whose namespace starts with ns, ranked by name (and,
//     weakly, description). An empty name part returns the scoped items
//     unranked.
//   - an exact namespace: every item in it, unranked.
//   - a prefix of exactly one namespace: every item in it, unranked.
//   - anything else: items ranked by name, qualified name and a
//     substring-only description match.
func Filter(items []catalog.Item, query string) []catalog.Item {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}

	if nsPart, namePart, ok := strings.Cut(q, ":"); ok {
		return filterScoped(items, strings.TrimSpace(nsPart), strings.TrimSpace(namePart))
	}

	if ns, ok := matchNamespace(items, q); ok {
		return inNamespace(items, ns)
	}

	return rank(items, func(it catalog.Item) float64 {
		return math.Max(
			math.Max(Score(q, it.Name), qualifiedNameWeight*Score(q, it.QualifiedName())),
			descriptionScore(q, it.Description),
		)
	})
}

// filterScoped handles "ns:name" queries.
func filterScoped(items []catalog.Item, nsPart, namePart string) []catalog.Item {
	var scoped []catalog.Item
	for _, it := range items {
		if strings.HasPrefix(strings.ToLower(it.Namespace), nsPart) {
			scoped = append(scoped, it)
		}
	}
	if namePart == "" {
		return scoped
	}
	return rank(scoped, func(it catalog.Item) float64 {
		return math.Max(
			Score(namePart, it.Name),
			scopedDescriptionWeight*Score(namePart, it.Description),
		)
	})
}

// matchNamespace resolves q to a namespace: an exact (case-insensitive)
// namespace name first, otherwise the only namespace q is a prefix of.
func matchNamespace(items []catalog.Item, q string) (string, bool) {
	var prefixed []string
	seen := make(map[string]bool)
	for _, it := range items {
		ns := strings.ToLower(it.Namespace)
		if ns == q {
			return ns, true
		}
		if !seen[ns] && strings.HasPrefix(ns, q) {
			seen[ns] = true
			prefixed = append(prefixed, ns)
		}
	}
	if len(prefixed) == 1 {
		return prefixed[0], true
	}
	return "", false
}

// inNamespace returns the items whose lower-cased namespace is ns.
func inNamespace(items []catalog.Item, ns string) []catalog.Item {
	var out []catalog.Item
	for _, it := range items {
		if strings.ToLower(it.Namespace) == ns {
			out = append(out, it)
		}
	}
	return out
}

// descriptionScore rewards a plain substring hit in the description. Fuzzy
// description matches produce too many weak hits, so none are scored.
func descriptionScore(q, description string) float64 {
	d := strings.ToLower(description)
	if d == "" || !strings.Contains(d, q) {
		return 0
	}
	ratio := float64(len([]rune(q))) / float64(len([]rune(d)))
	return descriptionBase + descriptionRatioBonus*ratio
}

type scored struct {
	item  catalog.Item
	score float64
}

// rank scores every item, drops non-matches and sorts by descending score,
// keeping input order among equal scores.
func rank(items []catalog.Item, score func(catalog.Item) float64) []catalog.Item {
	hits := make([]scored, 0, len(items))
	for _, it := range items {
		if s := score(it); s > 0 {
			hits = append(hits, scored{item: it, score: s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	out := make([]catalog.Item, len(hits))
	for i, h := range hits {
		out[i] = h.item
	}
	return out
}
