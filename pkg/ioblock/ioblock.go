// Package ioblock handles io fences: program transcripts where "¶" starts
// an input line that ends with "↵".
package ioblock

import "github.com/yaklabco/cppdoc/pkg/fence"

// Lang is the fence language of transcripts.
const Lang = "io"

// Register installs the io handler on d.
func Register(d *fence.Dispatcher) {
	d.RegisterLang(Lang, Handle)
}

// Handle turns off line numbers and leaves rendering to the rest of the
// chain.
func Handle(blk *fence.Block, _ fence.Renderer) (string, bool, error) {
	blk.NoLineNumbers = true
	return "", false, nil
}
