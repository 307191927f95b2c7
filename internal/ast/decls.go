package ast

import "github.com/timu-lang/timu/internal/source"

// File is the root node produced by parsing one source file. Its
// top-level items are kept as a single ordered slice (Statements, used
// for registration order); passes that need one kind of item filter
// that slice by type.
type File struct {
	Path       string // dotted module path this file belongs to
	Handle     source.FileHandle
	Statements []Statement
	Sp         source.Span
}

func (f *File) Span() source.Span { return f.Sp }
func (f *File) Accept(v Visitor)  { v.VisitFile(f) }

// Use is a `use a.b.c [as alias];` import statement.
type Use struct {
	Path  []string
	Alias string // "" if no explicit alias was given
	Sp    source.Span
}

func (u *Use) Span() source.Span { return u.Sp }
func (u *Use) Accept(v Visitor)  { v.VisitUse(u) }
func (u *Use) statementNode()    {}

// AliasOrLast returns the local name a `use` binds: the explicit
// alias if given, else the last path segment.
func (u *Use) AliasOrLast() string {
	if u.Alias != "" {
		return u.Alias
	}
	return u.Path[len(u.Path)-1]
}

// Field is a class/interface/extend member: `[pub] name: Type;`.
type Field struct {
	Public   bool
	PublicSp source.Span // span of the `pub` token, for "extra accessibility" diagnostics
	Name     string
	Type     *TypeName
	Sp       source.Span
}

func (f *Field) Span() source.Span { return f.Sp }
func (f *Field) Accept(v Visitor)  { v.VisitField(f) }

// Class is `[pub] class Name { fields; methods; }`.
type Class struct {
	Public  bool
	Name    string
	Fields  []*Field
	Methods []*Function
	Sp      source.Span
	NameSp  source.Span
}

func (c *Class) Span() source.Span { return c.Sp }
func (c *Class) Accept(v Visitor)  { v.VisitClass(c) }
func (c *Class) statementNode()    {}

// InterfaceMethod is a signature-only method inside an interface body.
// Public records a stray `pub` so resolution can reject it; interface
// members are always public.
type InterfaceMethod struct {
	Public     bool
	PublicSp   source.Span
	Name       string
	Parameters []*Parameter
	ReturnType *TypeName
	Sp         source.Span
}

// Interface is `interface Name : Parent1, Parent2 { fields; methods; }`.
type Interface struct {
	Name       string
	Parents    []*TypeName
	Fields     []*Field
	Methods    []*InterfaceMethod
	Sp         source.Span
	NameSp     source.Span
}

func (i *Interface) Span() source.Span { return i.Sp }
func (i *Interface) Accept(v Visitor)  { v.VisitInterface(i) }
func (i *Interface) statementNode()    {}

// Extend is `extend Target: I1, I2 { fields; methods; }`. Fields
// contributed by an extension are implicitly public; `pub` there is
// an error (caught during resolution, not parsing; the diagnostic
// points at the `pub` token).
type Extend struct {
	Target     *TypeName
	Interfaces []*TypeName
	Fields     []*Field
	Methods    []*Function
	Sp         source.Span
}

func (e *Extend) Span() source.Span { return e.Sp }
func (e *Extend) Accept(v Visitor)  { v.VisitExtend(e) }
func (e *Extend) statementNode()    {}

// Parameter is one function parameter: either the special `this` or
// a name+type pair.
type Parameter struct {
	IsThis bool
	Name   string
	Type   *TypeName
	Sp     source.Span
}

// FunctionLocation records where a function was declared: as a
// top-level function, or as a method of a named class.
type FunctionLocation struct {
	IsMethod  bool
	ClassName string
}

// Function is `[pub] func name(params): ReturnType { body }`.
type Function struct {
	Public     bool
	Name       string
	Parameters []*Parameter
	ReturnType *TypeName
	Body       []Statement
	Location   FunctionLocation
	Sp         source.Span
	NameSp     source.Span
}

func (fn *Function) Span() source.Span { return fn.Sp }
func (fn *Function) Accept(v Visitor)  { v.VisitFunction(fn) }
func (fn *Function) statementNode()    {}

// HasThis reports whether the first parameter is the receiver.
func (fn *Function) HasThis() bool {
	return len(fn.Parameters) > 0 && fn.Parameters[0].IsThis
}
