// Package fence routes fenced code blocks through an ordered chain of
// language-specific handlers that sit in front of a base renderer.
package fence

import (
	"errors"
	"fmt"
	"strings"
)

var errNoBase = errors.New("no base renderer")

// Block is the render request for one fenced code block. Handlers may
// modify their copy before passing it down the chain.
type Block struct {
	// Content is the raw text between the fences.
	Content string

	// Lang is the first word of the info string.
	Lang string

	// Attr is the rest of the info string after the first space.
	Attr string

	// Highlight lists 1-indexed lines to emphasize.
	Highlight []int

	// NoLineNumbers suppresses the line number gutter.
	NoLineNumbers bool

	// Extra carries handler-specific metadata down the chain.
	Extra map[string]string
}

// Clone returns a deep copy of the block.
func (b Block) Clone() Block {
	out := b
	if b.Highlight != nil {
		out.Highlight = append([]int(nil), b.Highlight...)
	}
	if b.Extra != nil {
		out.Extra = make(map[string]string, len(b.Extra))
		for k, v := range b.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// Renderer turns a block into HTML.
type Renderer func(blk Block) (string, error)

// Matcher selects the blocks a handler applies to.
type Matcher func(lang, attr string) bool

// Handler renders a block or declines it. next renders the remainder of
// the chain. When handled is false the remainder of the chain renders
// blk as the handler left it.
type Handler func(blk *Block, next Renderer) (html string, handled bool, err error)

type rule struct {
	match   Matcher
	handler Handler
}

// Dispatcher is an ordered chain of rules over a base renderer. The most
// recently registered rule is consulted first, so every rule sees the
// output of all earlier registrations as its default.
type Dispatcher struct {
	base  Renderer
	rules []rule
}

// NewDispatcher creates a dispatcher whose chain ends in base.
func NewDispatcher(base Renderer) *Dispatcher {
	return &Dispatcher{base: base}
}

// Register adds a handler for blocks accepted by match.
func (d *Dispatcher) Register(match Matcher, handler Handler) {
	d.rules = append(d.rules, rule{match: match, handler: handler})
}

// RegisterLang adds a handler for blocks whose language equals lang.
func (d *Dispatcher) RegisterLang(lang string, handler Handler) {
	d.Register(LangIs(lang), handler)
}

// Len returns the number of registered rules.
func (d *Dispatcher) Len() int {
	return len(d.rules)
}

// Render runs blk through the chain.
func (d *Dispatcher) Render(blk Block) (string, error) {
	out, err := d.renderFrom(len(d.rules)-1, blk)
	if err != nil {
		return "", fmt.Errorf("render %q block: %w", blk.Lang, err)
	}
	return out, nil
}

func (d *Dispatcher) renderFrom(idx int, blk Block) (string, error) {
	if idx < 0 {
		if d.base == nil {
			return "", errNoBase
		}
		return d.base(blk)
	}

	r := d.rules[idx]
	if !r.match(blk.Lang, blk.Attr) {
		return d.renderFrom(idx-1, blk)
	}

	next := func(b Block) (string, error) {
		return d.renderFrom(idx-1, b)
	}

	req := blk.Clone()
	out, handled, err := r.handler(&req, next)
	if err != nil {
		return "", err
	}
	if handled {
		return out, nil
	}
	return d.renderFrom(idx-1, req)
}

// LangIs matches blocks with exactly the given language.
func LangIs(lang string) Matcher {
	return func(l, _ string) bool { return l == lang }
}

// ParseInfo splits a fence info string into language and attributes.
func ParseInfo(info string) (string, string) {
	info = strings.TrimSpace(info)
	lang, attr, _ := strings.Cut(info, " ")
	return lang, strings.TrimSpace(attr)
}
