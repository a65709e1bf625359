package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/skillpick/internal/catalog"
)

func exampleCatalog() []catalog.Item {
	return []catalog.Item{
		{Name: "fizzy-cli", Namespace: "tools", Description: "Fizzy command line helpers"},
		{Name: "brave-search", Namespace: "search", Description: "Search the web with Brave"},
		{Name: "ad-creative", Namespace: "marketing", Description: "Draft ad copy"},
	}
}

func itemNames(items []catalog.Item) []string {
	return catalog.Names(items)
}

func TestFilter_EmptyQueryIsIdentity(t *testing.T) {
	c := exampleCatalog()
	for _, q := range []string{"", "   ", "\t"} {
		got := Filter(c, q)
		assert.Equal(t, c, got, "query %q", q)
	}
}

func TestFilter_ExampleScenarios(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"marketing:ad", []string{"ad-creative"}},
		{"search", []string{"brave-search"}},
		{"SEARCH", []string{"brave-search"}},
		{"mark", []string{"ad-creative"}},
		{"fizzy", []string{"fizzy-cli"}},
		{"tools:", []string{"fizzy-cli"}},
		{"t:fizzy", []string{"fizzy-cli"}},
		{"marketing:copy", []string{"ad-creative"}},
		{"nothing-matches", nil},
		{"zz:ad", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := Filter(exampleCatalog(), tt.query)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, itemNames(got))
		})
	}
}

func TestFilter_ExactNamespaceBeatsNameMatch(t *testing.T) {
	c := []catalog.Item{
		{Name: "search-tool", Namespace: "tools"},
		{Name: "brave-search", Namespace: "search"},
		{Name: "web-fetch", Namespace: "search"},
	}
	assert.Equal(t, []string{"brave-search", "web-fetch"}, itemNames(Filter(c, "search")))
}

func TestFilter_AmbiguousNamespacePrefixFallsThrough(t *testing.T) {
	c := []catalog.Item{
		{Name: "alpha", Namespace: "search"},
		{Name: "beta", Namespace: "security"},
		{Name: "se-linter", Namespace: "lint"},
	}
	// "se" prefixes two namespaces, so ordinary ranking applies and the
	// qualified names still match, below the direct name hit.
	assert.Equal(t, []string{"se-linter", "alpha", "beta"}, itemNames(Filter(c, "se")))
}

func TestFilter_RankingOrder(t *testing.T) {
	c := []catalog.Item{
		{Name: "docs", Namespace: "writing", Description: "Compose documents"},
		{Name: "recommend", Namespace: "misc"},
		{Name: "cxoxm", Namespace: "misc"},
		{Name: "git-commit", Namespace: "vcs"},
		{Name: "commit", Namespace: "vcs"},
	}

	got := Filter(c, "com")

	// prefix > word-start substring > substring > description-only hit;
	// the scattered "cxoxm" is dropped.
	assert.Equal(t, []string{"commit", "git-commit", "recommend", "docs"}, itemNames(got))
}

func TestFilter_TiesKeepCatalogOrder(t *testing.T) {
	c := []catalog.Item{
		{Name: "zeta-tool", Namespace: "x"},
		{Name: "acme-tool", Namespace: "x"},
		{Name: "beta-tool", Namespace: "y"},
	}
	assert.Equal(t, []string{"zeta-tool", "acme-tool", "beta-tool"}, itemNames(Filter(c, "tool")))
}

func TestFilter_DescriptionIsSubstringOnly(t *testing.T) {
	c := []catalog.Item{
		{Name: "alpha", Namespace: "x", Description: "handles web requests"},
		{Name: "beta", Namespace: "x", Description: "w e b scattered"},
	}
	assert.Equal(t, []string{"alpha"}, itemNames(Filter(c, "web")))
}

func TestFilter_QualifiedNameMatch(t *testing.T) {
	c := []catalog.Item{
		{Name: "fetch", Namespace: "web"},
		{Name: "other-fetch", Namespace: "files"},
	}
	got := Filter(c, "b:fe")
	assert.Empty(t, got, "colon queries are namespace-scoped")

	got = Filter(c, "webfetch")
	require.Len(t, got, 1)
	assert.Equal(t, "fetch", got[0].Name)
}

func TestFilter_Idempotent(t *testing.T) {
	c := []catalog.Item{
		{Name: "docs", Namespace: "writing", Description: "Compose documents"},
		{Name: "recommend", Namespace: "misc"},
		{Name: "git-commit", Namespace: "vcs"},
		{Name: "commit", Namespace: "vcs"},
		{Name: "commit-msg", Namespace: "vcs"},
	}
	for _, q := range []string{"com", "vcs:co", "mi", "writing", "c"} {
		once := Filter(c, q)
		twice := Filter(once, q)
		assert.Equal(t, itemNames(once), itemNames(twice), "query %q", q)
	}
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	c := exampleCatalog()
	snapshot := append([]catalog.Item(nil), c...)
	_ = Filter(c, "e")
	assert.Equal(t, snapshot, c)
}
