package site

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/cppdoc/pkg/fence"
	"github.com/yaklabco/cppdoc/pkg/langdetect"
	"github.com/yaklabco/cppdoc/pkg/sdsc"
)

// BlockError locates a code block or span that failed to render.
type BlockError struct {
	// Line is the 1-indexed source line of the opening fence or span.
	Line int
	Lang string
	Err  error
}

// Error implements the error interface.
func (e *BlockError) Error() string {
	if e.Lang == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.Lang, e.Err)
}

// Unwrap returns the underlying error.
func (e *BlockError) Unwrap() error {
	return e.Err
}

// codeRenderer renders fenced code through the fence dispatcher and code
// spans written as @…@ as inline grammar.
type codeRenderer struct {
	dispatcher *fence.Dispatcher
	detect     bool
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *codeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
	reg.Register(ast.KindCodeSpan, r.renderCodeSpan)
}

func (r *codeRenderer) renderFencedCodeBlock(
	w util.BufWriter, source []byte, node ast.Node, entering bool,
) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n, ok := node.(*ast.FencedCodeBlock)
	if !ok {
		return ast.WalkContinue, nil
	}

	var info string
	if n.Info != nil {
		info = string(n.Info.Segment.Value(source))
	}
	lang, attr := splitInfo(info)

	var content bytes.Buffer
	lines := n.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		content.Write(seg.Value(source))
	}

	if lang == "" && r.detect {
		if detected := langdetect.Detect(content.Bytes()); detected != langdetect.LangText {
			lang = detected
		}
	}

	out, err := r.dispatcher.Render(fence.Block{
		Content: content.String(),
		Lang:    lang,
		Attr:    attr,
	})
	if err != nil {
		return ast.WalkStop, &BlockError{Line: fenceLine(n, source), Lang: lang, Err: err}
	}

	_, _ = w.WriteString(out)
	return ast.WalkContinue, nil
}

func (r *codeRenderer) renderCodeSpan(
	w util.BufWriter, source []byte, node ast.Node, entering bool,
) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	text := codeSpanText(node, source)
	if len(text) < 2 || text[0] != '@' || text[len(text)-1] != '@' {
		_, _ = w.WriteString("<code>" + html.EscapeString(text) + "</code>")
		return ast.WalkSkipChildren, nil
	}

	nodes, err := sdsc.Parse(text[1 : len(text)-1])
	if err != nil {
		return ast.WalkStop, &BlockError{Line: spanLine(node, source), Lang: "sdsc", Err: err}
	}

	_, _ = w.WriteString(sdsc.RenderInline(nodes))
	return ast.WalkSkipChildren, nil
}

// codeSpanText joins the text of a code span the way goldmark's HTML
// renderer does: a line ending becomes a space.
func codeSpanText(node ast.Node, source []byte) string {
	var sb strings.Builder
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		var value []byte
		switch t := c.(type) {
		case *ast.Text:
			value = t.Segment.Value(source)
		case *ast.String:
			value = t.Value
		default:
			continue
		}
		if bytes.HasSuffix(value, []byte("\n")) {
			sb.Write(value[:len(value)-1])
			sb.WriteByte(' ')
			continue
		}
		sb.Write(value)
	}
	return sb.String()
}

// splitInfo separates the fence language from its attributes. Metadata
// glued to the language, as in "cpp{1,3}" or "io:no-line-numbers", moves
// to the attributes.
func splitInfo(info string) (string, string) {
	lang, attr := fence.ParseInfo(info)
	if i := strings.IndexAny(lang, "{:"); i > 0 {
		attr = strings.TrimSpace(lang[i:] + " " + attr)
		lang = lang[:i]
	}
	return lang, attr
}

func fenceLine(n *ast.FencedCodeBlock, source []byte) int {
	if n.Lines().Len() > 0 {
		// The content starts on the line after the fence.
		return bytes.Count(source[:n.Lines().At(0).Start], []byte("\n"))
	}
	if n.Info != nil {
		return bytes.Count(source[:n.Info.Segment.Start], []byte("\n")) + 1
	}
	return 0
}

func spanLine(node ast.Node, source []byte) int {
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			return bytes.Count(source[:t.Segment.Start], []byte("\n")) + 1
		}
	}
	return 0
}
