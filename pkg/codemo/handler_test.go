package codemo_test

import (
	"html"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cppdoc/pkg/codemo"
	"github.com/yaklabco/cppdoc/pkg/fence"
)

type captureRenderer struct {
	got []fence.Block
}

func (c *captureRenderer) render(blk fence.Block) (string, error) {
	c.got = append(c.got, blk)
	return `<div class="language-cpp"><pre class="language-cpp"><code>` +
		html.EscapeString(blk.Content) + `</code></pre></div>`, nil
}

func newDispatcher(base *captureRenderer) *fence.Dispatcher {
	d := fence.NewDispatcher(base.render)
	codemo.NewHandler("").Register(d)
	return d
}

func TestHandler_Match(t *testing.T) {
	t.Parallel()

	h := codemo.NewHandler("")

	assert.True(t, h.Match("cpp", "codemo"))
	assert.True(t, h.Match("c", "codemo(show)"))
	assert.False(t, h.Match("python", "codemo"))
	assert.False(t, h.Match("cpp", ""))
	assert.False(t, h.Match("cpp", "{1,3}"))
}

func TestHandler_PureBlock(t *testing.T) {
	t.Parallel()

	base := &captureRenderer{}
	out, err := newDispatcher(base).Render(fence.Block{
		Lang:    "cpp",
		Attr:    "codemo",
		Content: "int main() {}\n",
	})
	require.NoError(t, err)

	require.Len(t, base.got, 1)
	assert.Equal(t, "int main() {}\n", base.got[0].Content)
	assert.Empty(t, base.got[0].Attr)

	assert.Equal(t,
		`<div style="position: relative">`+
			`<div class="language-cpp"><pre class="language-cpp"><code>int main() {}`+"\n"+`</code></pre></div>`+
			`<codemo-trigger title="显示代码" lang="cpp" code="int main() {}"></codemo-trigger>`+
			"</div>\n",
		out)
}

func TestHandler_RedactedBlock(t *testing.T) {
	t.Parallel()

	base := &captureRenderer{}
	out, err := newDispatcher(base).Render(fence.Block{
		Lang: "cpp",
		Attr: "codemo(show,input=4_2)",
		Content: "int a;\n" +
			"// codemo hide\n" +
			"int b;\n" +
			"// codemo show\n" +
			"// codemo focus-next-line\n" +
			"int c;\n",
	})
	require.NoError(t, err)

	require.Len(t, base.got, 1)
	assert.Equal(t, "int a;\nint c;\n", base.got[0].Content)
	assert.Equal(t, []int{2}, base.got[0].Highlight)

	assert.Contains(t, out, `<pre class="language-cpp dirty">`)
	assert.Contains(t, out, `<pre class="hidden-copycode-codeblock">int a;`+"\nint b;\nint c;</pre>")
	assert.Contains(t, out,
		`<codemo-trigger title="显示代码" lang="cpp" code="int a;`+"\n"+`int b;`+"\n"+`int c;" focus="3" input="4 2" show="true"></codemo-trigger>`)
}

func TestHandler_FocusMerge(t *testing.T) {
	t.Parallel()

	base := &captureRenderer{}
	out, err := newDispatcher(base).Render(fence.Block{
		Lang:    "cpp",
		Attr:    "codemo(focus=1/3)",
		Content: "a;\n// codemo focus-next-line\nb;\nc;",
	})
	require.NoError(t, err)

	assert.Contains(t, out, `focus="1,2,3"`)
}

func TestHandler_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		blk  fence.Block
	}{
		{
			name: "bad directive",
			blk:  fence.Block{Lang: "cpp", Attr: "codemo", Content: "// codemo explode\n"},
		},
		{
			name: "bad argument",
			blk:  fence.Block{Lang: "cpp", Attr: "codemo(focus=z)", Content: "x;\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := newDispatcher(&captureRenderer{}).Render(tt.blk)
			require.Error(t, err)
		})
	}
}
