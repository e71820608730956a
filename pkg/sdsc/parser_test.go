package sdsc_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cppdoc/pkg/sdsc"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tokens, err := sdsc.Tokenize(`[ "a\"b" ]|x`)
	require.NoError(t, err)

	types := make([]sdsc.TokenType, 0, len(tokens))
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	assert.Equal(t, []sdsc.TokenType{
		sdsc.TokenLBracket,
		sdsc.TokenWhitespace,
		sdsc.TokenString,
		sdsc.TokenWhitespace,
		sdsc.TokenRBracket,
		sdsc.TokenOr,
		sdsc.TokenPlaceholder,
	}, types)
	assert.Equal(t, `"a\"b"`, tokens[2].Value)
	assert.Equal(t, 2, tokens[2].Pos)
}

func TestTokenize_PlaceholderSpansWords(t *testing.T) {
	t.Parallel()

	tokens, err := sdsc.Tokenize("nested-name-specifier template simple-template-id")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, sdsc.TokenPlaceholder, tokens[0].Type)
}

func TestTokenize_UnterminatedString(t *testing.T) {
	t.Parallel()

	_, err := sdsc.Tokenize(`decl "oops`)

	var tokErr *sdsc.TokenizeError
	require.ErrorAs(t, err, &tokErr)
	assert.Equal(t, 5, tokErr.Pos)
	assert.Equal(t, `"oops`, tokErr.Remainder)
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []sdsc.Node
	}{
		{
			name: "empty input",
			src:  "",
			want: nil,
		},
		{
			name: "alternation",
			src:  "a | b",
			want: []sdsc.Node{
				sdsc.Placeholder("a "),
				sdsc.Or(),
				sdsc.Raw(" "),
				sdsc.Placeholder("b"),
			},
		},
		{
			name: "optional literal",
			src:  `["opt"]`,
			want: []sdsc.Node{sdsc.Opt(sdsc.Raw("opt"))},
		},
		{
			name: "optional literal with spaces merges raw text",
			src:  `[ "opt" ]`,
			want: []sdsc.Node{sdsc.Opt(sdsc.Raw(" opt "))},
		},
		{
			name: "nested groups",
			src:  `"if" ( condition ) statement { "else" [ statement ] }`,
			want: []sdsc.Node{
				sdsc.Raw("if "),
				sdsc.Group(sdsc.Raw(" "), sdsc.Placeholder("condition ")),
				sdsc.Raw(" "),
				sdsc.Placeholder("statement "),
				sdsc.Repeat(
					sdsc.Raw(" else "),
					sdsc.Opt(sdsc.Raw(" "), sdsc.Placeholder("statement ")),
					sdsc.Raw(" "),
				),
			},
		},
		{
			name: "empty group",
			src:  "()",
			want: []sdsc.Node{sdsc.Group()},
		},
		{
			name: "escapes are kept verbatim",
			src:  `"\"x\""`,
			want: []sdsc.Node{sdsc.Raw(`\"x\"`)},
		},
		{
			name: "hyphenated placeholder",
			src:  "decl-specifier-seq",
			want: []sdsc.Node{sdsc.Placeholder("decl-specifier-seq")},
		},
		{
			name: "multi-word placeholder",
			src:  "decl-specifier-seq declarator",
			want: []sdsc.Node{sdsc.Placeholder("decl-specifier-seq declarator")},
		},
		{
			name: "placeholder keeps inner and trailing spaces",
			src:  `attribute-specifier-seq  init-declarator-list ";"`,
			want: []sdsc.Node{
				sdsc.Placeholder("attribute-specifier-seq  init-declarator-list "),
				sdsc.Raw(";"),
			},
		},
		{
			name: "leading whitespace stays raw",
			src:  "  type-id",
			want: []sdsc.Node{sdsc.Raw("  "), sdsc.Placeholder("type-id")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := sdsc.Parse(tt.src)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       string
		tokenize  bool
		wantInMsg string
	}{
		{name: "unclosed group", src: "(a", wantInMsg: "expected ')'"},
		{name: "unclosed optional", src: "[a", wantInMsg: "expected ']'"},
		{name: "unclosed repeat", src: "{a", wantInMsg: "expected '}'"},
		{name: "mismatched closer", src: "(a]", wantInMsg: "unexpected ']' in group"},
		{name: "closer at top level", src: "a)", wantInMsg: "unexpected ')' in top level"},
		{name: "unterminated string", src: `["x]`, tokenize: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := sdsc.Parse(tt.src)
			require.Error(t, err)

			if tt.tokenize {
				var tokErr *sdsc.TokenizeError
				assert.ErrorAs(t, err, &tokErr)
				return
			}

			var synErr *sdsc.SyntaxError
			require.True(t, errors.As(err, &synErr), "want *SyntaxError, got %T", err)
			assert.Contains(t, synErr.Error(), tt.wantInMsg)
		})
	}
}

func TestNode_MarshalJSON(t *testing.T) {
	t.Parallel()

	nodes := sdsc.MustParse(`a | [ "x" ]`)
	data, err := json.Marshal(nodes)
	require.NoError(t, err)

	assert.JSONEq(t, `[
		{"type": "placeholder", "value": "a "},
		{"type": "or"},
		{"type": "raw", "value": " "},
		{"type": "opt", "children": [{"type": "raw", "value": " x "}]}
	]`, string(data))
}
