package sidebar_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cppdoc/pkg/sidebar"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func newSite(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	writeFile(t, dir, "ch00/README.md", "# 开始\n")
	writeFile(t, dir, "ch00/intro.md", "Some text\n\n# 介绍 <Badge type=\"tip\" text=\"C++11\" />\n")
	writeFile(t, dir, "ch01/README.md", "no heading here\n")
	writeFile(t, dir, "ch01/loops.md", "# Loops\n")
	writeFile(t, dir, sidebar.FileName, `
- /ch00/:
    - /ch00/intro.md
- link: /ch01/
  children:
    - link: /ch01/loops.md
      text: Custom
`)
	return dir
}

func TestLoad(t *testing.T) {
	t.Parallel()

	s, err := sidebar.Load(newSite(t))
	require.NoError(t, err)

	assert.Equal(t, []sidebar.Item{
		{
			Link:     "/ch00/",
			Text:     "开始",
			Children: []sidebar.Item{{Link: "/ch00/intro.md", Text: "介绍 (C++11)"}},
		},
		{
			Link:     "/ch01/",
			Text:     "/ch01/",
			Children: []sidebar.Item{{Link: "/ch01/loops.md", Text: "Custom"}},
		},
	}, s.Items)

	assert.Equal(t, []string{"/ch00/", "/ch00/intro.md", "/ch01/", "/ch01/loops.md"}, s.Links())
}

func TestPrevNext(t *testing.T) {
	t.Parallel()

	s, err := sidebar.Load(newSite(t))
	require.NoError(t, err)

	prev, next := s.PrevNext("/ch00/")
	assert.Nil(t, prev)
	require.NotNil(t, next)
	assert.Equal(t, "/ch00/intro.md", next.Link)

	prev, next = s.PrevNext("/ch01/")
	require.NotNil(t, prev)
	require.NotNil(t, next)
	assert.Equal(t, "介绍 (C++11)", prev.Text)
	assert.Equal(t, "/ch01/loops.md", next.Link)

	prev, next = s.PrevNext("/missing.md")
	assert.Nil(t, prev)
	assert.Nil(t, next)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		outline string
	}{
		{name: "invalid link shape", outline: "- /ch00/intro\n"},
		{name: "missing file", outline: "- /nothing.md\n"},
		{name: "not a list", outline: "link: /x/\n"},
		{name: "bad yaml", outline: "- [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFile(t, dir, sidebar.FileName, tt.outline)

			_, err := sidebar.Load(dir)
			require.Error(t, err)
		})
	}
}

func TestInvalidLinkError(t *testing.T) {
	t.Parallel()

	_, err := sidebar.FileFor("/src", "/ch00/intro")
	require.ErrorIs(t, err, sidebar.ErrInvalidLink)
}

func TestLinkForAndHref(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rel, link, href string
	}{
		{"README.md", "/", "/"},
		{"ch00/README.md", "/ch00/", "/ch00/"},
		{"ch00/intro.md", "/ch00/intro.md", "/ch00/intro.html"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.link, sidebar.LinkFor(tt.rel))
		assert.Equal(t, tt.href, sidebar.Href(tt.link))
	}
}

func TestTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Hello", sidebar.Title([]byte("intro\n# Hello\n# Second\n")))
	assert.Equal(t, "", sidebar.Title([]byte("## Not level one\n")))
	assert.Equal(t, "A (new) (x)", sidebar.Title([]byte(`# A <Badge text="new" /> <Badge type="warn" text="x" />`)))
}
