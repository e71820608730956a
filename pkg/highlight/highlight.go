// Package highlight is the base renderer of fenced code blocks. It wraps
// chroma-highlighted code in the container markup the site stylesheet
// expects, with optional line-highlight and line-number overlays.
package highlight

import (
	"fmt"
	"html"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/yaklabco/cppdoc/pkg/fence"
)

// DefaultStyle is the chroma style used for the generated stylesheet.
const DefaultStyle = "github"

// PlainLang is the language class of unlabeled blocks.
const PlainLang = "text"

// Renderer renders fenced blocks to HTML.
type Renderer struct {
	// LineNumbers adds the line-number gutter unless a block opts out.
	LineNumbers bool
}

// New returns a renderer with line numbers enabled.
func New() *Renderer {
	return &Renderer{LineNumbers: true}
}

// Render implements fence.Renderer. The text content of the <code> element
// equals blk.Content.
func (r *Renderer) Render(blk fence.Block) (string, error) {
	lang := blk.Lang
	if lang == "" {
		lang = PlainLang
	}
	escapedLang := html.EscapeString(lang)

	code, err := highlightCode(lang, blk.Content)
	if err != nil {
		return "", fmt.Errorf("highlight %s: %w", lang, err)
	}

	lines := countLines(blk.Content)
	highlighted := mergeLines(blk.Highlight, ParseHighlightAttr(blk.Attr))
	lineNumbers := r.LineNumbers && !blk.NoLineNumbers && !strings.Contains(blk.Attr, ":no-line-numbers")

	var sb strings.Builder
	sb.WriteString(`<div class="language-`)
	sb.WriteString(escapedLang)
	if lineNumbers {
		sb.WriteString(" line-numbers-mode")
	}
	fmt.Fprintf(&sb, `" data-ext="%s">`, escapedLang)
	fmt.Fprintf(&sb, `<pre class="language-%s chroma"><code>`, escapedLang)
	sb.WriteString(code)
	sb.WriteString("</code></pre>")

	if len(highlighted) > 0 {
		sb.WriteString(`<div class="highlight-lines">`)
		for line := 1; line <= lines; line++ {
			if _, found := slices.BinarySearch(highlighted, line); found {
				sb.WriteString(`<div class="highlight-line">&nbsp;</div>`)
			} else {
				sb.WriteString("<br>")
			}
		}
		sb.WriteString("</div>")
	}

	if lineNumbers {
		sb.WriteString(`<div class="line-numbers" aria-hidden="true">`)
		for range lines {
			sb.WriteString(`<div class="line-number"></div>`)
		}
		sb.WriteString("</div>")
	}

	sb.WriteString("</div>\n")
	return sb.String(), nil
}

// highlightCode emits one <span> per classed token. Unknown languages and
// unclassed tokens are written as escaped text.
func highlightCode(lang, content string) (string, error) {
	lexer := lookupLexer(lang)
	if lexer == nil {
		return html.EscapeString(content), nil
	}

	it, err := chroma.Coalesce(lexer).Tokenise(&chroma.TokeniseOptions{State: "root"}, content)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, tok := range it.Tokens() {
		class := tokenClass(tok.Type)
		if class == "" {
			sb.WriteString(html.EscapeString(tok.Value))
			continue
		}
		fmt.Fprintf(&sb, `<span class="%s">%s</span>`, class, html.EscapeString(tok.Value))
	}
	return sb.String(), nil
}

func lookupLexer(lang string) chroma.Lexer {
	if lang == PlainLang {
		return nil
	}
	if lang == ioLexer.Config().Name {
		return ioLexer
	}
	return lexers.Get(lang)
}

// tokenClass resolves the CSS class of a token type, falling back to its
// sub-category and category.
func tokenClass(tt chroma.TokenType) string {
	for _, candidate := range []chroma.TokenType{tt, tt.SubCategory(), tt.Category()} {
		if class, ok := chroma.StandardTypes[candidate]; ok {
			if class == "w" {
				return ""
			}
			return class
		}
	}
	return ""
}

func countLines(content string) int {
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}

func mergeLines(a, b []int) []int {
	merged := append(slices.Clone(a), b...)
	slices.Sort(merged)
	return slices.Compact(merged)
}

var highlightAttrRe = regexp.MustCompile(`\{([\d,\s-]+)\}`)

// ParseHighlightAttr reads line-highlight metadata such as "{1,3-5}" from
// fence attributes. Malformed entries are skipped.
func ParseHighlightAttr(attr string) []int {
	m := highlightAttrRe.FindStringSubmatch(attr)
	if m == nil {
		return nil
	}

	var lines []int
	for _, part := range strings.Split(m[1], ",") {
		part = strings.TrimSpace(part)
		if startStr, endStr, isRange := strings.Cut(part, "-"); isRange {
			start, err1 := strconv.Atoi(strings.TrimSpace(startStr))
			end, err2 := strconv.Atoi(strings.TrimSpace(endStr))
			if err1 != nil || err2 != nil || start < 1 || end < start {
				continue
			}
			for line := start; line <= end; line++ {
				lines = append(lines, line)
			}
			continue
		}
		if line, err := strconv.Atoi(part); err == nil && line >= 1 {
			lines = append(lines, line)
		}
	}

	slices.Sort(lines)
	return slices.Compact(lines)
}

// WriteCSS writes the stylesheet for the named chroma style. Unknown names
// fall back to chroma's default style.
func WriteCSS(w io.Writer, styleName string) error {
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(w, styles.Get(styleName)); err != nil {
		return fmt.Errorf("write highlight css: %w", err)
	}
	_, err := io.WriteString(w, ioCSS)
	return err
}
