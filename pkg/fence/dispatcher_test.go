package fence_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cppdoc/pkg/fence"
)

func baseRenderer(blk fence.Block) (string, error) {
	return "<base " + blk.Lang + ">" + blk.Content + "</base>", nil
}

func TestDispatcher_NoRules(t *testing.T) {
	t.Parallel()

	d := fence.NewDispatcher(baseRenderer)
	out, err := d.Render(fence.Block{Lang: "cpp", Content: "x"})
	require.NoError(t, err)
	assert.Equal(t, "<base cpp>x</base>", out)
}

func TestDispatcher_MatchAndReplace(t *testing.T) {
	t.Parallel()

	d := fence.NewDispatcher(baseRenderer)
	d.RegisterLang("sdsc", func(blk *fence.Block, _ fence.Renderer) (string, bool, error) {
		return "<sdsc>" + blk.Content + "</sdsc>", true, nil
	})

	out, err := d.Render(fence.Block{Lang: "sdsc", Content: "a"})
	require.NoError(t, err)
	assert.Equal(t, "<sdsc>a</sdsc>", out)

	out, err = d.Render(fence.Block{Lang: "cpp", Content: "a"})
	require.NoError(t, err)
	assert.Equal(t, "<base cpp>a</base>", out, "unmatched blocks reach the base renderer")
}

func TestDispatcher_DeferUsesModifiedBlock(t *testing.T) {
	t.Parallel()

	d := fence.NewDispatcher(func(blk fence.Block) (string, error) {
		if blk.NoLineNumbers {
			return "plain:" + blk.Content, nil
		}
		return "numbered:" + blk.Content, nil
	})
	d.RegisterLang("io", func(blk *fence.Block, _ fence.Renderer) (string, bool, error) {
		blk.NoLineNumbers = true
		return "", false, nil
	})

	out, err := d.Render(fence.Block{Lang: "io", Content: "1 2"})
	require.NoError(t, err)
	assert.Equal(t, "plain:1 2", out)
}

func TestDispatcher_ChainOrder(t *testing.T) {
	t.Parallel()

	d := fence.NewDispatcher(baseRenderer)
	d.RegisterLang("cpp", func(blk *fence.Block, next fence.Renderer) (string, bool, error) {
		out, err := next(*blk)
		return "[first " + out + "]", true, err
	})
	d.RegisterLang("cpp", func(blk *fence.Block, next fence.Renderer) (string, bool, error) {
		modified := blk.Clone()
		modified.Content = strings.ToUpper(blk.Content)
		out, err := next(modified)
		return "[second " + out + "]", true, err
	})

	out, err := d.Render(fence.Block{Lang: "cpp", Content: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "[second [first <base cpp>ABC</base>]]", out)
	assert.Equal(t, 2, d.Len())
}

func TestDispatcher_HandlerSeesOriginalUnaffectedByOtherCopies(t *testing.T) {
	t.Parallel()

	d := fence.NewDispatcher(func(blk fence.Block) (string, error) {
		return strings.Join(strings.Fields(strings.Repeat("x ", len(blk.Highlight))), ""), nil
	})
	d.Register(func(string, string) bool { return true }, func(blk *fence.Block, _ fence.Renderer) (string, bool, error) {
		blk.Highlight = append(blk.Highlight, 1)
		return "", false, nil
	})

	orig := fence.Block{Lang: "cpp", Highlight: []int{4}}
	out, err := d.Render(orig)
	require.NoError(t, err)
	assert.Equal(t, "xx", out)
	assert.Equal(t, []int{4}, orig.Highlight)
}

func TestDispatcher_ErrorPropagates(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("boom")
	d := fence.NewDispatcher(baseRenderer)
	d.RegisterLang("cpp", func(*fence.Block, fence.Renderer) (string, bool, error) {
		return "", false, sentinel
	})

	_, err := d.Render(fence.Block{Lang: "cpp"})
	require.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), `render "cpp" block`)
}

func TestDispatcher_NoBase(t *testing.T) {
	t.Parallel()

	_, err := fence.NewDispatcher(nil).Render(fence.Block{Lang: "c"})
	assert.Error(t, err)
}

func TestParseInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		info, lang, attr string
	}{
		{"cpp", "cpp", ""},
		{"cpp codemo(focus=1)", "cpp", "codemo(focus=1)"},
		{"  c   {1,2} extra ", "c", "{1,2} extra"},
		{"", "", ""},
	}

	for _, tt := range tests {
		lang, attr := fence.ParseInfo(tt.info)
		assert.Equal(t, tt.lang, lang, "lang of %q", tt.info)
		assert.Equal(t, tt.attr, attr, "attr of %q", tt.info)
	}
}
