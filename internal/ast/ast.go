// Package ast defines the immutable tree the parser produces. Every
// node carries the source.Span it was parsed from so that span
// survives into signatures and diagnostics unchanged.
package ast

import "github.com/timu-lang/timu/internal/source"

// Node is the base interface every AST node implements.
type Node interface {
	Span() source.Span
	Accept(v Visitor)
}

// Statement is a top-level or body statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is anything that evaluates to a value.
type Expression interface {
	Node
	expressionNode()
}

// Visitor lets callers (the resolver, the pretty-printer) dispatch on
// concrete node kind without a deep class hierarchy.
type Visitor interface {
	VisitFile(*File)
	VisitUse(*Use)
	VisitClass(*Class)
	VisitInterface(*Interface)
	VisitExtend(*Extend)
	VisitFunction(*Function)
	VisitField(*Field)

	VisitVarDecl(*VarDecl)
	VisitAssign(*Assign)
	VisitExprStatement(*ExprStatement)
	VisitIf(*If)

	VisitIdentifier(*Identifier)
	VisitLiteral(*Literal)
	VisitBinary(*Binary)
	VisitUnary(*Unary)
	VisitCall(*Call)
	VisitMemberAccess(*MemberAccess)
	VisitThis(*This)
}

// Identifier is a bare name reference, e.g. a variable or type
// segment.
type Identifier struct {
	Name string
	Sp   source.Span
}

func (i *Identifier) Span() source.Span  { return i.Sp }
func (i *Identifier) Accept(v Visitor)   { v.VisitIdentifier(i) }
func (i *Identifier) expressionNode()    {}

// TypeName is a dotted, possibly-nullable, possibly-reference type
// reference, e.g. "?&pkg.sub.MyClass".
type TypeName struct {
	Nullable  bool
	Reference bool
	Segments  []string
	Sp        source.Span
}

func (t *TypeName) Span() source.Span { return t.Sp }

// Dotted returns the full dotted name, e.g. "pkg.sub.MyClass".
func (t *TypeName) Dotted() string {
	out := ""
	for i, seg := range t.Segments {
		if i > 0 {
			out += "."
		}
		out += seg
	}
	return out
}

// LastSegment is the terminal name segment, used as the span anchor
// for "type not found" diagnostics.
func (t *TypeName) LastSegment() string {
	if len(t.Segments) == 0 {
		return ""
	}
	return t.Segments[len(t.Segments)-1]
}
