// Package token defines the source-position type shared by every AST node.
//
// Parsing itself is out of scope for this module (spec §1): the parser is an
// external collaborator that hands the analyzer an already-built AST. This
// package only carries the position contract that AST nodes are assumed to
// expose, mirroring go-dws's internal/lexer.Position.
package token

import "fmt"

// Position identifies a span of source text: a file, a 1-based line and
// column, and the length in bytes of the token or node it locates.
type Position struct {
	File   string
	Line   int
	Column int
	Length int
}

// String renders the position as "file:line:col", the format used in
// diagnostics (spec §6).
func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// IsZero reports whether the position was never set.
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0 && p.File == ""
}
