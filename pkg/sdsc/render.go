package sdsc

import (
	"html"
	"strings"
)

// Render writes nodes as an HTML fragment. Literal text is escaped;
// structure is expressed with sdsc-* classes.
func Render(nodes []Node) string {
	var sb strings.Builder
	renderNodes(&sb, nodes)
	return sb.String()
}

// RenderBlock renders a fenced grammar block.
func RenderBlock(nodes []Node) string {
	return `<pre class="sdsc">` + Render(nodes) + "</pre>\n"
}

// RenderInline renders inline grammar markup.
func RenderInline(nodes []Node) string {
	return `<code class="sdsc-inline">` + Render(nodes) + "</code>"
}

func renderNodes(sb *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		renderNode(sb, n)
	}
}

func renderNode(sb *strings.Builder, n Node) {
	switch n.Kind {
	case KindRaw:
		sb.WriteString(html.EscapeString(n.Value))
	case KindOr:
		sb.WriteString(`<span class="sdsc-or">|</span>`)
	case KindPlaceholder:
		sb.WriteString(`<span class="sdsc-placeholder">`)
		sb.WriteString(html.EscapeString(n.Value))
		sb.WriteString(`</span>`)
	case KindGroup:
		sb.WriteString(`<span class="sdsc-group">(`)
		renderNodes(sb, n.Children)
		sb.WriteString(`)</span>`)
	case KindOpt:
		sb.WriteString(`<span class="sdsc-opt">`)
		renderNodes(sb, n.Children)
		sb.WriteString(`<sub class="sdsc-opt-marker">opt</sub></span>`)
	case KindRepeat:
		sb.WriteString(`<span class="sdsc-repeat">{`)
		renderNodes(sb, n.Children)
		sb.WriteString(`}</span>`)
	}
}

// Format writes nodes back in the source notation, quoting all raw text.
// Parse(Format(nodes)) yields nodes again for any tree Parse produced.
func Format(nodes []Node) string {
	var sb strings.Builder
	formatNodes(&sb, nodes)
	return sb.String()
}

func formatNodes(sb *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		switch n.Kind {
		case KindRaw:
			sb.WriteByte('"')
			sb.WriteString(n.Value)
			sb.WriteByte('"')
		case KindOr:
			sb.WriteByte('|')
		case KindPlaceholder:
			sb.WriteString(n.Value)
		case KindGroup:
			sb.WriteByte('(')
			formatNodes(sb, n.Children)
			sb.WriteByte(')')
		case KindOpt:
			sb.WriteByte('[')
			formatNodes(sb, n.Children)
			sb.WriteByte(']')
		case KindRepeat:
			sb.WriteByte('{')
			formatNodes(sb, n.Children)
			sb.WriteByte('}')
		}
	}
}
