package autolink

import (
	"golang.org/x/net/html"

	"github.com/yaklabco/cppdoc/internal/htmlfrag"
	"github.com/yaklabco/cppdoc/pkg/fence"
)

// DefaultBaseURL prefixes index links.
const DefaultBaseURL = "https://zh.cppreference.com/w/"

// Linker is a fence handler that links symbols in rendered cpp blocks.
type Linker struct {
	Index   *Index
	BaseURL string
}

// NewLinker returns a linker over index. An empty baseURL selects
// DefaultBaseURL.
func NewLinker(index *Index, baseURL string) *Linker {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Linker{Index: index, BaseURL: baseURL}
}

// Register installs the linker for cpp blocks.
func (l *Linker) Register(d *fence.Dispatcher) {
	d.RegisterLang("cpp", l.Render)
}

// Href returns the documentation URL of an index link.
func (l *Linker) Href(link string) string {
	return l.BaseURL + link
}

// Render implements fence.Handler. Output without a cpp code element is
// returned unchanged.
func (l *Linker) Render(blk *fence.Block, next fence.Renderer) (string, bool, error) {
	rendered, err := next(*blk)
	if err != nil {
		return "", false, err
	}

	nodes, err := htmlfrag.Parse(rendered)
	if err != nil {
		return "", false, err
	}

	code := findCode(nodes)
	if code == nil {
		return rendered, true, nil
	}

	spans := Resolve(htmlfrag.TextContent(code), l.Index.Entries())
	if len(spans) == 0 {
		return rendered, true, nil
	}

	linked, err := Relink(code, spans, l.Href)
	if err != nil {
		return "", false, err
	}
	nodes = htmlfrag.Replace(nodes, code, linked)

	out, err := htmlfrag.Render(nodes)
	if err != nil {
		return "", false, err
	}
	return out, true, nil
}

// findCode returns the first <code> below an element of class language-cpp.
func findCode(nodes []*html.Node) *html.Node {
	container := htmlfrag.Find(nodes, func(n *html.Node) bool {
		return n.Type == html.ElementNode && htmlfrag.HasClass(n, "language-cpp")
	})
	if container == nil {
		return nil
	}
	return htmlfrag.Find(childList(container), htmlfrag.IsElement("code"))
}

func childList(n *html.Node) []*html.Node {
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	return children
}
