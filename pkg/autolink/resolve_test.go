package autolink_test

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cppdoc/pkg/autolink"
)

func sym(name, link string) autolink.Entry {
	return autolink.Entry{Name: name, Link: link, Kind: autolink.KindSymbol}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		code    string
		symbols []autolink.Entry
		want    []autolink.Span
	}{
		{
			name:    "longest name wins",
			code:    "std::vector<int> v;",
			symbols: []autolink.Entry{sym("vector", "short"), sym("std::vector", "long")},
			want:    []autolink.Span{{Begin: 0, End: 11, Link: "long"}},
		},
		{
			name:    "word boundaries",
			code:    "myvector vector_ vector",
			symbols: []autolink.Entry{sym("vector", "v")},
			want:    []autolink.Span{{Begin: 17, End: 23, Link: "v"}},
		},
		{
			name:    "every occurrence sorted by offset",
			code:    "int a; int b;",
			symbols: []autolink.Entry{{Name: "int", Link: "kw", Kind: autolink.KindKeyword}},
			want: []autolink.Span{
				{Begin: 0, End: 3, Link: "kw"},
				{Begin: 7, End: 10, Link: "kw"},
			},
		},
		{
			name:    "abutting spans stay distinct",
			code:    "<iostream><<",
			symbols: []autolink.Entry{{Name: "<iostream>", Link: "h", Kind: autolink.KindHeader}, sym("<<", "op")},
			want: []autolink.Span{
				{Begin: 0, End: 10, Link: "h"},
				{Begin: 10, End: 12, Link: "op"},
			},
		},
		{
			name: "using namespace strips the prefix",
			code: "using namespace std;\nvector<int> v;\ncout << v.size();",
			symbols: []autolink.Entry{
				sym("std::vector", "vec"),
				sym("std::cout", "cout"),
			},
			want: []autolink.Span{
				{Begin: 21, End: 27, Link: "vec"},
				{Begin: 36, End: 40, Link: "cout"},
			},
		},
		{
			name:    "using namespace leaves non-symbols alone",
			code:    "using namespace std;\nbyte b;",
			symbols: []autolink.Entry{{Name: "std::byte", Link: "b", Kind: autolink.KindKeyword}},
			want:    nil,
		},
		{
			name:    "namespace alias replaces the prefix",
			code:    "namespace fs = std::filesystem;\nfs::path p;",
			symbols: []autolink.Entry{sym("std::filesystem::path", "path")},
			want:    []autolink.Span{{Begin: 32, End: 40, Link: "path"}},
		},
		{
			name:    "directive not on its own line is ignored",
			code:    "  using namespace std;\nvector<int> v;",
			symbols: []autolink.Entry{sym("std::vector", "vec")},
			want:    nil,
		},
		{
			name:    "no symbols",
			code:    "int main() {}",
			symbols: nil,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, autolink.Resolve(tt.code, tt.symbols))
		})
	}
}

func TestResolve_BlankedTextIsNotMatchedAgain(t *testing.T) {
	t.Parallel()

	spans := autolink.Resolve("std::cout<<x;", []autolink.Entry{
		sym("std::cout", "cout"),
		{Name: "  ", Link: "blank", Kind: autolink.KindKeyword},
	})

	assert.Equal(t, []autolink.Span{{Begin: 0, End: 9, Link: "cout"}}, spans)
}

func TestResolve_DoesNotMutateSymbols(t *testing.T) {
	t.Parallel()

	symbols := []autolink.Entry{sym("std::cout", "c"), sym("std", "ns")}
	autolink.Resolve("using namespace std;\ncout;", symbols)

	assert.Equal(t, []autolink.Entry{sym("std::cout", "c"), sym("std", "ns")}, symbols)
}

func TestResolve_SpansDisjointAndSorted(t *testing.T) {
	t.Parallel()

	words := []string{"a", "b", "ab", "a::b", "ba", "b::a", "::", " ", "\n", "(", "_"}
	rng := rand.New(rand.NewPCG(7, 11))

	for range 200 {
		var sb strings.Builder
		for range rng.IntN(30) {
			sb.WriteString(words[rng.IntN(len(words))])
		}
		code := sb.String()

		var symbols []autolink.Entry
		for range rng.IntN(6) {
			symbols = append(symbols, sym(words[rng.IntN(len(words))], "x"))
		}

		spans := autolink.Resolve(code, symbols)
		for i, span := range spans {
			require.Less(t, span.Begin, span.End, "code %q", code)
			require.LessOrEqual(t, span.End, len(code), "code %q", code)
			if i > 0 {
				require.LessOrEqual(t, spans[i-1].End, span.Begin, "code %q spans %v", code, spans)
			}
		}
	}
}
