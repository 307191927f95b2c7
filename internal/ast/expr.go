package ast

import "github.com/timu-lang/timu/internal/source"

// LiteralKind tags the primitive kind of a Literal node. Numeric
// literal kind inference (which of i8..u64/float/double a bare number
// denotes) is a parser concern per the language's grammar; the TIR
// only ever reads this field back.
type LiteralKind int

const (
	LiteralBool LiteralKind = iota
	LiteralString
	LiteralI8
	LiteralU8
	LiteralI16
	LiteralU16
	LiteralI32
	LiteralU32
	LiteralI64
	LiteralU64
	LiteralFloat
	LiteralDouble
)

// Literal is a primitive constant leaf.
type Literal struct {
	Kind  LiteralKind
	Text  string // lexeme (a string literal's unescaped contents, without quotes), for re-printing and object interning
	Sp    source.Span
}

func (l *Literal) Span() source.Span { return l.Sp }
func (l *Literal) Accept(v Visitor)  { v.VisitLiteral(l) }
func (l *Literal) expressionNode()   {}

// This is the `this` receiver expression inside a method body.
type This struct {
	Sp source.Span
}

func (t *This) Span() source.Span { return t.Sp }
func (t *This) Accept(v Visitor)  { v.VisitThis(t) }
func (t *This) expressionNode()   {}

// Operator is the fixed binary operator set.
type Operator int

const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNotEq
	OpLt
	OpGt
	OpLtEq
	OpGtEq
	OpAnd
	OpOr
)

// Binary is `left OP right`.
type Binary struct {
	Left     Expression
	Operator Operator
	Right    Expression
	Sp       source.Span
}

func (b *Binary) Span() source.Span { return b.Sp }
func (b *Binary) Accept(v Visitor)  { v.VisitBinary(b) }
func (b *Binary) expressionNode()   {}

// UnaryOperator is the fixed unary operator set.
type UnaryOperator int

const (
	OpNeg UnaryOperator = iota
	OpNot
)

// Unary is `OP operand`.
type Unary struct {
	Operator UnaryOperator
	Operand  Expression
	Sp       source.Span
}

func (u *Unary) Span() source.Span { return u.Sp }
func (u *Unary) Accept(v Visitor)  { v.VisitUnary(u) }
func (u *Unary) expressionNode()   {}

// MemberAccess is `target.name`.
type MemberAccess struct {
	Target Expression
	Name   string
	Sp     source.Span
}

func (m *MemberAccess) Span() source.Span { return m.Sp }
func (m *MemberAccess) Accept(v Visitor)  { v.VisitMemberAccess(m) }
func (m *MemberAccess) expressionNode()   {}

// Call is `callee(arg, arg, ...)`. Callee is either an *Identifier, a
// *MemberAccess (for `this.method(...)` and qualified calls), or
// another expression, matching the source language's call grammar.
type Call struct {
	Callee    Expression
	Arguments []Expression
	Sp        source.Span
}

func (c *Call) Span() source.Span { return c.Sp }
func (c *Call) Accept(v Visitor)  { v.VisitCall(c) }
func (c *Call) expressionNode()   {}
