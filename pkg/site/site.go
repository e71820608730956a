// Package site renders tutorial pages: goldmark for the Markdown, the fence
// dispatcher for code blocks, and an HTML page wrapper with navigation.
package site

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/cppdoc/pkg/autolink"
	"github.com/yaklabco/cppdoc/pkg/codemo"
	"github.com/yaklabco/cppdoc/pkg/fence"
	"github.com/yaklabco/cppdoc/pkg/highlight"
	"github.com/yaklabco/cppdoc/pkg/ioblock"
	"github.com/yaklabco/cppdoc/pkg/sdsc"
)

// Markdown flavors.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// codeRendererPriority places the code renderer ahead of goldmark's HTML
// renderer, which registers at 1000.
const codeRendererPriority = 100

// Options configure a Renderer.
type Options struct {
	// Flavor is "commonmark" or "gfm". Anything else selects commonmark.
	Flavor string

	// Autolink links standard library names in cpp blocks.
	Autolink bool

	// Index is the autolink symbol index. Nil selects the embedded index.
	Index *autolink.Index

	// BaseURL prefixes autolink links.
	BaseURL string

	// TriggerTitle is the title of codemo run triggers.
	TriggerTitle string

	// DetectLanguage guesses the language of unlabeled fences.
	DetectLanguage bool

	// SiteTitle and Lang are used by Page.
	SiteTitle string
	Lang      string
}

// Renderer converts Markdown documents to HTML. It is safe for concurrent
// use.
type Renderer struct {
	opts   Options
	flavor string
	md     goldmark.Markdown
}

// New builds a renderer.
func New(opts Options) *Renderer {
	flavor := flavorOrDefault(opts.Flavor)
	code := &codeRenderer{
		dispatcher: NewDispatcher(opts),
		detect:     opts.DetectLanguage,
	}

	return &Renderer{
		opts:   opts,
		flavor: flavor,
		md:     newGoldmarkInstance(flavor, code),
	}
}

// NewDispatcher builds the fence chain. io blocks are consulted first,
// then sdsc, codemo and autolink, and finally the highlighter.
func NewDispatcher(opts Options) *fence.Dispatcher {
	d := fence.NewDispatcher(highlight.New().Render)

	if opts.Autolink {
		index := opts.Index
		if index == nil {
			index = autolink.DefaultIndex()
		}
		autolink.NewLinker(index, opts.BaseURL).Register(d)
	}
	codemo.NewHandler(opts.TriggerTitle).Register(d)
	sdsc.Register(d)
	ioblock.Register(d)

	return d
}

// Flavor returns the Markdown flavor in use.
func (r *Renderer) Flavor() string {
	return r.flavor
}

// Render converts a Markdown document body to HTML. The first failing
// code block aborts the render.
func (r *Renderer) Render(ctx context.Context, source []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("render cancelled: %w", err)
	}

	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string, code renderer.NodeRenderer) goldmark.Markdown {
	opts := []goldmark.Option{
		goldmark.WithRendererOptions(
			// Pages embed raw HTML such as badges.
			gmhtml.WithUnsafe(),
			renderer.WithNodeRenderers(util.Prioritized(code, codeRendererPriority)),
		),
	}

	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}

	return goldmark.New(opts...)
}
