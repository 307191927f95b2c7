package ast

import "github.com/timu-lang/timu/internal/source"

// VarDecl is `var name: Type = expr;` (the type annotation is
// optional when an initializer is present).
type VarDecl struct {
	Name string
	Type *TypeName // nil if inferred from Value
	Value Expression
	Sp   source.Span
}

func (v *VarDecl) Span() source.Span { return v.Sp }
func (v *VarDecl) Accept(vi Visitor) { vi.VisitVarDecl(v) }
func (v *VarDecl) statementNode()    {}

// Assign is `target = expr;`.
type Assign struct {
	Target Expression
	Value  Expression
	Sp     source.Span
}

func (a *Assign) Span() source.Span { return a.Sp }
func (a *Assign) Accept(v Visitor)  { v.VisitAssign(a) }
func (a *Assign) statementNode()    {}

// ExprStatement wraps a bare expression statement, e.g. a function
// call whose result is discarded.
type ExprStatement struct {
	Value Expression
	Sp    source.Span
}

func (e *ExprStatement) Span() source.Span { return e.Sp }
func (e *ExprStatement) Accept(v Visitor)  { v.VisitExprStatement(e) }
func (e *ExprStatement) statementNode()    {}

// If is an if/else-if/else chain. An `else if` is held in ElseIf; a
// plain `else` block is held in Else. Both are nil when absent, and at
// most one of them is set.
type If struct {
	Condition Expression
	Then      []Statement
	ElseIf    *If
	Else      []Statement
	Sp        source.Span
}

func (i *If) Span() source.Span { return i.Sp }
func (i *If) Accept(v Visitor)  { v.VisitIf(i) }
func (i *If) statementNode()    {}
