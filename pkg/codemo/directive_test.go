package codemo_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cppdoc/pkg/codemo"
)

func TestSplit_NoDirectives(t *testing.T) {
	t.Parallel()

	result, err := codemo.Split("\nint a;\nint b;\n\n")
	require.NoError(t, err)

	assert.True(t, result.Pure)
	assert.Equal(t, []string{"int a;", "int b;"}, result.FullLines)
	assert.Equal(t, result.FullLines, result.ShownLines)
	assert.Empty(t, result.ShownFocus)
	assert.Empty(t, result.FullFocus)
}

func TestSplit_HideShow(t *testing.T) {
	t.Parallel()

	src := strings.Join([]string{"a();", "// codemo hide", "b();", "// codemo show", "c();"}, "\n")
	result, err := codemo.Split(src)
	require.NoError(t, err)

	assert.False(t, result.Pure)
	assert.Equal(t, []string{"a();", "c();"}, result.ShownLines)
	assert.Equal(t, []string{"a();", "b();", "c();"}, result.FullLines)
	assert.Equal(t, "a();\nb();\nc();", result.Full())
	assert.Equal(t, "a();\nc();", result.Shown())
}

func TestSplit_ShowFirstHidesLeadingLines(t *testing.T) {
	t.Parallel()

	src := strings.Join([]string{
		"#include <iostream>",
		"int main() {",
		"// codemo show",
		"  std::cout << 1;",
		"// codemo hide",
		"}",
	}, "\n")
	result, err := codemo.Split(src)
	require.NoError(t, err)

	assert.Equal(t, []string{"  std::cout << 1;"}, result.ShownLines)
	assert.Len(t, result.FullLines, 4)
}

func TestSplit_FocusNextLine(t *testing.T) {
	t.Parallel()

	src := strings.Join([]string{
		"// codemo show",
		"int x;",
		"// codemo hide",
		"int hidden;",
		"// codemo show",
		"// codemo focus-next-line",
		"x = 1;",
		"    // codemo focus-next-line",
		"x = 2;",
	}, "\n")
	result, err := codemo.Split(src)
	require.NoError(t, err)

	assert.Equal(t, []string{"int x;", "x = 1;", "x = 2;"}, result.ShownLines)
	assert.Equal(t, []string{"int x;", "int hidden;", "x = 1;", "x = 2;"}, result.FullLines)
	assert.Equal(t, []int{2, 3}, result.ShownFocus)
	assert.Equal(t, []int{3, 4}, result.FullFocus)
}

func TestSplit_FullLinesIgnoreToggling(t *testing.T) {
	t.Parallel()

	src := "a\n// codemo hide\nb\n// codemo hide\nc\n// codemo show\nd"
	result, err := codemo.Split(src)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c", "d"}, result.FullLines)
	assert.Equal(t, []string{"a", "d"}, result.ShownLines)
}

func TestSplit_DirectiveLookalikes(t *testing.T) {
	t.Parallel()

	src := "x; // codemo hide\n//codemo hide\n// codemonkey"
	result, err := codemo.Split(src)
	require.NoError(t, err)

	assert.True(t, result.Pure)
	assert.Len(t, result.ShownLines, 3)
}

func TestSplit_UnknownDirective(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		line    int
		keyword string
	}{
		{name: "unknown keyword", src: "a\n// codemo vanish\nb", line: 2, keyword: "vanish"},
		{name: "trailing words", src: "a\n// codemo hide me please\nb", line: 2, keyword: "hide me please"},
		{name: "code after keyword", src: "// codemo show int x;", line: 1, keyword: "show int x;"},
		{name: "missing keyword", src: "a\nb\n  // codemo  ", line: 3, keyword: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := codemo.Split(tt.src)

			var dirErr *codemo.DirectiveError
			require.ErrorAs(t, err, &dirErr)
			assert.Equal(t, tt.line, dirErr.Line)
			assert.Equal(t, tt.keyword, dirErr.Keyword)
		})
	}
}

func TestSplit_DirectiveTrailingSpace(t *testing.T) {
	t.Parallel()

	result, err := codemo.Split("a\n// codemo hide  \t\nb")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, result.ShownLines)
}
