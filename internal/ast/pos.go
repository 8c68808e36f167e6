// Package ast provides the source-position types shared by every later
// pipeline stage. The surface lexer/parser that produces real positions is
// an external collaborator (spec §1); this package only carries the shape
// those positions take so statics and the machine can report them.
package ast

import "fmt"

// Pos is a single point in a source file.
type Pos struct {
	File   string
	Line   int
	Column int
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Zero is the position used for synthetic nodes (builtins, desugarings)
// that have no real source location.
var Zero = Pos{}

// Span is a half-open range [Start, End) in a source file.
type Span struct {
	Start Pos
	End   Pos
}

func (s Span) String() string {
	if s.Start.File == s.End.File && s.Start.Line == s.End.Line {
		return fmt.Sprintf("%s:%d:%d-%d", s.Start.File, s.Start.Line, s.Start.Column, s.End.Column)
	}
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// Spanned is implemented by every node that carries a source span.
type Spanned interface {
	Span() Span
}
