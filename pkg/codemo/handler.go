package codemo

import (
	"errors"
	"fmt"
	"html"
	"slices"
	"strconv"
	"strings"

	nethtml "golang.org/x/net/html"

	"github.com/yaklabco/cppdoc/internal/htmlfrag"
	"github.com/yaklabco/cppdoc/pkg/fence"
)

// DefaultTriggerTitle is the tooltip of the run trigger.
const DefaultTriggerTitle = "显示代码"

// Class names used in the rendered output.
const (
	ClassDirty      = "dirty"
	ClassHiddenCopy = "hidden-copycode-codeblock"
)

// Handler renders codemo blocks: the redacted listing, a hidden full copy
// for clipboard tooling and a trigger element for the runnable view.
type Handler struct {
	// TriggerTitle is the trigger's title attribute.
	TriggerTitle string

	// Languages are the fence languages that accept codemo attributes.
	Languages []string
}

// NewHandler returns a handler for c and cpp blocks.
func NewHandler(triggerTitle string) *Handler {
	if triggerTitle == "" {
		triggerTitle = DefaultTriggerTitle
	}
	return &Handler{
		TriggerTitle: triggerTitle,
		Languages:    []string{"c", "cpp"},
	}
}

// Match accepts blocks like "cpp codemo(...)".
func (h *Handler) Match(lang, attr string) bool {
	return slices.Contains(h.Languages, lang) && strings.HasPrefix(attr, "codemo")
}

// Register installs the handler on d.
func (h *Handler) Register(d *fence.Dispatcher) {
	d.Register(h.Match, h.Render)
}

// Render implements fence.Handler.
func (h *Handler) Render(blk *fence.Block, next fence.Renderer) (string, bool, error) {
	args, err := ParseArgs(blk.Attr)
	if err != nil {
		return "", false, err
	}

	split, err := Split(blk.Content)
	if err != nil {
		return "", false, err
	}

	shown := blk.Clone()
	shown.Content = split.Shown() + "\n"
	shown.Attr = ""
	shown.Highlight = split.ShownFocus

	rendered, err := next(shown)
	if err != nil {
		return "", false, err
	}

	full := split.Full()
	if !split.Pure {
		rendered, err = addHiddenCopy(rendered, full)
		if err != nil {
			return "", false, err
		}
	}

	var sb strings.Builder
	sb.WriteString(`<div style="position: relative">`)
	sb.WriteString(rendered)
	sb.WriteString(h.trigger(blk.Lang, full, mergeFocus(split.FullFocus, args.Focus), args))
	sb.WriteString("</div>\n")

	return sb.String(), true, nil
}

// addHiddenCopy marks the rendered <pre> as redacted and appends a hidden
// sibling carrying the full source.
func addHiddenCopy(rendered, full string) (string, error) {
	nodes, err := htmlfrag.Parse(rendered)
	if err != nil {
		return "", err
	}

	pre := htmlfrag.Find(nodes, htmlfrag.IsElement("pre"))
	if pre == nil {
		return "", errors.New("no <pre> found in rendered codemo block")
	}
	htmlfrag.AddClass(pre, ClassDirty)

	hidden := htmlfrag.Element("pre", nethtml.Attribute{Key: "class", Val: ClassHiddenCopy})
	hidden.AppendChild(htmlfrag.Text(full))

	if parent := pre.Parent; parent != nil {
		parent.AppendChild(hidden)
	} else {
		idx := slices.Index(nodes, pre)
		nodes = slices.Insert(nodes, idx+1, hidden)
	}

	return htmlfrag.Render(nodes)
}

func (h *Handler) trigger(lang, full string, focus []int, args *Args) string {
	attrs := [][2]string{
		{"title", h.TriggerTitle},
		{"lang", lang},
		{"code", full},
		{"focus", joinInts(focus)},
	}
	if args.HasInput {
		attrs = append(attrs, [2]string{"input", args.Input})
	}
	if args.Show {
		attrs = append(attrs, [2]string{"show", "true"})
	}
	if args.Text {
		text := args.TextValue
		if text == "" {
			text = "true"
		}
		attrs = append(attrs, [2]string{"text", text})
	}
	if args.Clear {
		attrs = append(attrs, [2]string{"clear", "true"})
	}

	var sb strings.Builder
	sb.WriteString("<codemo-trigger")
	for _, attr := range attrs {
		if attr[1] == "" {
			continue
		}
		fmt.Fprintf(&sb, ` %s="%s"`, attr[0], html.EscapeString(attr[1]))
	}
	sb.WriteString("></codemo-trigger>")
	return sb.String()
}

func mergeFocus(a, b []int) []int {
	merged := append(slices.Clone(a), b...)
	slices.Sort(merged)
	return slices.Compact(merged)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
