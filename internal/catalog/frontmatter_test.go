package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFrontmatter(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantFM   Frontmatter
		wantBody string
	}{
		{
			name:     "empty content",
			content:  "",
			wantBody: "",
		},
		{
			name:     "no front matter",
			content:  "# Just markdown",
			wantBody: "# Just markdown",
		},
		{
			name:     "full header",
			content:  "---\nname: brave-search\ndescription: Search the web\nnamespace: search\n---\n\nBody text\n",
			wantFM:   Frontmatter{Name: "brave-search", Description: "Search the web", Namespace: "search"},
			wantBody: "Body text",
		},
		{
			name:     "category alias",
			content:  "---\nname: x\ncategory: tools\n---\n",
			wantFM:   Frontmatter{Name: "x", Category: "tools"},
			wantBody: "",
		},
		{
			name:     "closing delimiter at end of file",
			content:  "---\nname: tail\n---",
			wantFM:   Frontmatter{Name: "tail"},
			wantBody: "",
		},
		{
			name:     "CRLF line endings",
			content:  "---\r\nname: win\r\n---\r\nbody\r\n",
			wantFM:   Frontmatter{Name: "win"},
			wantBody: "body",
		},
		{
			name:     "byte order mark",
			content:  "\ufeff---\nname: bom\n---\n",
			wantFM:   Frontmatter{Name: "bom"},
			wantBody: "",
		},
		{
			name:     "unterminated header",
			content:  "---\nname: open\nno closing",
			wantBody: "---\nname: open\nno closing",
		},
		{
			name:     "empty header",
			content:  "---\n---\nbody",
			wantBody: "body",
		},
		{
			name:     "invalid yaml",
			content:  "---\nname: [unclosed\n---\nbody",
			wantBody: "---\nname: [unclosed\n---\nbody",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body := ParseFrontmatter(tt.content)
			assert.Equal(t, tt.wantFM, fm)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestFrontmatterNamespace(t *testing.T) {
	assert.Equal(t, "a", Frontmatter{Namespace: " a ", Category: "b"}.namespace())
	assert.Equal(t, "b", Frontmatter{Category: "b"}.namespace())
	assert.Equal(t, "", Frontmatter{}.namespace())
}
