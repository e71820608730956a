package sdsc

import (
	"encoding/json"
	"fmt"
)

// Kind is the variant tag of a Node.
type Kind int

// Node kinds.
const (
	KindRaw Kind = iota
	KindOr
	KindPlaceholder
	KindGroup
	KindOpt
	KindRepeat
)

var kindNames = [...]string{
	KindRaw:         "raw",
	KindOr:          "or",
	KindPlaceholder: "placeholder",
	KindGroup:       "group",
	KindOpt:         "opt",
	KindRepeat:      "repeat",
}

// String returns the kind name used in the JSON form.
func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Node is one element of a parsed production. Raw and placeholder nodes
// carry Value; group, opt and repeat nodes carry Children.
type Node struct {
	Kind     Kind
	Value    string
	Children []Node
}

// Raw returns a literal text node.
func Raw(value string) Node { return Node{Kind: KindRaw, Value: value} }

// Or returns an alternation marker.
func Or() Node { return Node{Kind: KindOr} }

// Placeholder returns a named non-terminal.
func Placeholder(name string) Node { return Node{Kind: KindPlaceholder, Value: name} }

// Group returns a parenthesized sequence.
func Group(children ...Node) Node { return Node{Kind: KindGroup, Children: children} }

// Opt returns an optional sequence.
func Opt(children ...Node) Node { return Node{Kind: KindOpt, Children: children} }

// Repeat returns a repeated sequence.
func Repeat(children ...Node) Node { return Node{Kind: KindRepeat, Children: children} }

// IsComposite reports whether the node owns children.
func (n Node) IsComposite() bool {
	return n.Kind == KindGroup || n.Kind == KindOpt || n.Kind == KindRepeat
}

type jsonNode struct {
	Type     string `json:"type"`
	Value    string `json:"value,omitempty"`
	Children []Node `json:"children,omitempty"`
}

// MarshalJSON encodes the node as {"type": kind, "value"|"children": …}.
func (n Node) MarshalJSON() ([]byte, error) {
	out := jsonNode{Type: n.Kind.String()}
	switch {
	case n.IsComposite():
		out.Children = n.Children
		if out.Children == nil {
			out.Children = []Node{}
		}
	case n.Kind == KindRaw || n.Kind == KindPlaceholder:
		out.Value = n.Value
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal %s node: %w", n.Kind, err)
	}
	return data, nil
}

// SyntaxError reports a misplaced or missing closing delimiter.
type SyntaxError struct {
	// Pos is the byte offset of the offending token, or the source length
	// when input ended early.
	Pos int

	// Msg describes the problem.
	Msg string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}

// Parse tokenizes and parses src into a sequence of nodes.
func Parse(src string) ([]Node, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens, end: len(src)}
	return p.sequence(KindRaw)
}

// MustParse is like Parse but panics on error. It is meant for fixed
// expressions in tests and examples.
func MustParse(src string) []Node {
	nodes, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return nodes
}

// closers maps each composite kind to the token that ends it.
var closers = map[Kind]TokenType{
	KindGroup:  TokenRParen,
	KindOpt:    TokenRBracket,
	KindRepeat: TokenRBrace,
}

var openers = map[TokenType]Kind{
	TokenLParen:   KindGroup,
	TokenLBracket: KindOpt,
	TokenLBrace:   KindRepeat,
}

type parser struct {
	tokens []Token
	pos    int
	end    int
}

// sequence consumes tokens until the closer of ctx (or end of input when
// ctx is KindRaw, i.e. top level) and returns the accumulated siblings.
func (p *parser) sequence(ctx Kind) ([]Node, error) {
	var nodes []Node

	pushRaw := func(value string) {
		if last := len(nodes) - 1; last >= 0 && nodes[last].Kind == KindRaw {
			nodes[last].Value += value
			return
		}
		nodes = append(nodes, Raw(value))
	}

	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		p.pos++

		switch tok.Type {
		case TokenRParen, TokenRBracket, TokenRBrace:
			if want, ok := closers[ctx]; ok && want == tok.Type {
				return nodes, nil
			}
			return nil, &SyntaxError{
				Pos: tok.Pos,
				Msg: fmt.Sprintf("unexpected %s in %s", tok.Type, contextName(ctx)),
			}
		case TokenLParen, TokenLBracket, TokenLBrace:
			kind := openers[tok.Type]
			children, err := p.sequence(kind)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, Node{Kind: kind, Children: children})
		case TokenString:
			pushRaw(tok.Value[1 : len(tok.Value)-1])
		case TokenWhitespace:
			pushRaw(tok.Value)
		case TokenPlaceholder:
			nodes = append(nodes, Placeholder(tok.Value))
		case TokenOr:
			nodes = append(nodes, Or())
		}
	}

	if want, ok := closers[ctx]; ok {
		return nil, &SyntaxError{
			Pos: p.end,
			Msg: fmt.Sprintf("expected %s before end of input", want),
		}
	}
	return nodes, nil
}

func contextName(ctx Kind) string {
	if ctx == KindRaw {
		return "top level"
	}
	return ctx.String()
}
