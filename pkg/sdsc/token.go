// Package sdsc parses and renders the compact notation used to typeset
// C++ standard syntax productions ("standard specification" blocks).
//
// The notation has quoted literals, bare placeholders (non-terminals),
// alternation bars and three kinds of grouping:
//
//	( … )   group
//	[ … ]   optional
//	{ … }   repeated
package sdsc

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// TokenType identifies the lexical class of a Token.
type TokenType int

// Token types, in tokenizer priority order.
const (
	TokenString TokenType = iota
	TokenOr
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenLBrace
	TokenRBrace
	TokenWhitespace
	TokenPlaceholder
)

var tokenTypeNames = [...]string{
	TokenString:      "string",
	TokenOr:          "'|'",
	TokenLParen:      "'('",
	TokenRParen:      "')'",
	TokenLBracket:    "'['",
	TokenRBracket:    "']'",
	TokenLBrace:      "'{'",
	TokenRBrace:      "'}'",
	TokenWhitespace:  "whitespace",
	TokenPlaceholder: "placeholder",
}

// String returns a human-readable name for the token type.
func (t TokenType) String() string {
	if int(t) < 0 || int(t) >= len(tokenTypeNames) {
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
	return tokenTypeNames[t]
}

// Token is a lexeme with its byte offset in the source.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

// TokenizeError reports source text that no token rule accepts.
type TokenizeError struct {
	// Pos is the byte offset where tokenizing stopped.
	Pos int

	// Remainder is the unconsumed source from Pos onwards.
	Remainder string
}

// Error implements the error interface.
func (e *TokenizeError) Error() string {
	return fmt.Sprintf("could not tokenize %q at offset %d", e.Remainder, e.Pos)
}

var delimiters = map[byte]TokenType{
	'|': TokenOr,
	'(': TokenLParen,
	')': TokenRParen,
	'[': TokenLBracket,
	']': TokenRBracket,
	'{': TokenLBrace,
	'}': TokenRBrace,
}

// Tokenize splits src into tokens. It fails with a *TokenizeError when no
// rule matches at the current position, e.g. on an unterminated string.
func Tokenize(src string) ([]Token, error) {
	var tokens []Token

	for pos := 0; pos < len(src); {
		typ, n := matchToken(src[pos:])
		if n == 0 {
			return nil, &TokenizeError{Pos: pos, Remainder: src[pos:]}
		}
		tokens = append(tokens, Token{Type: typ, Value: src[pos : pos+n], Pos: pos})
		pos += n
	}

	return tokens, nil
}

// matchToken returns the type and byte length of the token at the start of
// s, or a zero length if nothing matches.
func matchToken(s string) (TokenType, int) {
	if s[0] == '"' {
		return TokenString, matchString(s)
	}
	if typ, ok := delimiters[s[0]]; ok {
		return typ, 1
	}
	if n := matchWhitespace(s); n > 0 {
		return TokenWhitespace, n
	}
	return TokenPlaceholder, matchPlaceholder(s)
}

// matchString matches a double-quoted literal with backslash escapes.
func matchString(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return 0
}

func matchWhitespace(s string) int {
	n := 0
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if !unicode.IsSpace(r) {
			break
		}
		n += size
	}
	return n
}

// matchPlaceholder matches a run up to the next quote, bar or bracket.
// Inner and trailing whitespace belong to the placeholder, so
// "decl-specifier-seq declarator" is one token.
func matchPlaceholder(s string) int {
	n := 0
	for n < len(s) && !isPlaceholderStop(s[n]) {
		n++
	}
	return n
}

func isPlaceholderStop(c byte) bool {
	if c == '"' {
		return true
	}
	_, ok := delimiters[c]
	return ok
}
