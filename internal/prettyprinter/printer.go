// Package prettyprinter renders the subset of ast nodes that have a
// canonical printed form back into source text, adapted from funxy's
// internal/prettyprinter/code_printer.go. It exists to support the
// round-trip property (§8): parse, print, re-parse must yield an
// equal AST.
package prettyprinter

import (
	"strconv"
	"strings"

	"github.com/timu-lang/timu/internal/ast"
)

// Printer accumulates printed source text with simple brace-depth
// indentation, the same shape funxy's CodePrinter uses.
type Printer struct {
	buf    strings.Builder
	indent int
}

// New creates an empty Printer.
func New() *Printer {
	return &Printer{}
}

// String returns everything printed so far.
func (p *Printer) String() string {
	return p.buf.String()
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

func (p *Printer) line(s string) {
	p.writeIndent()
	p.buf.WriteString(s)
	p.buf.WriteByte('\n')
}

// File prints every top-level statement in order, each separated by a
// blank line.
func (p *Printer) File(f *ast.File) {
	for i, stmt := range f.Statements {
		if i > 0 {
			p.buf.WriteByte('\n')
		}
		p.Statement(stmt)
	}
}

func (p *Printer) Statement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Use:
		p.use(s)
	case *ast.Class:
		p.class(s)
	case *ast.Interface:
		p.iface(s)
	case *ast.Extend:
		p.extend(s)
	case *ast.Function:
		p.function(s)
	case *ast.VarDecl:
		p.varDecl(s)
	case *ast.Assign:
		p.assign(s)
	case *ast.ExprStatement:
		p.writeIndent()
		p.Expression(s.Value)
		p.buf.WriteString(";\n")
	case *ast.If:
		p.ifStmt(s)
	}
}

func (p *Printer) use(u *ast.Use) {
	p.writeIndent()
	p.buf.WriteString("use ")
	p.buf.WriteString(strings.Join(u.Path, "."))
	if u.Alias != "" {
		p.buf.WriteString(" as ")
		p.buf.WriteString(u.Alias)
	}
	p.buf.WriteString(";\n")
}

func (p *Printer) typeName(t *ast.TypeName) string {
	var b strings.Builder
	if t.Nullable {
		b.WriteByte('?')
	}
	if t.Reference {
		b.WriteByte('&')
	}
	b.WriteString(strings.Join(t.Segments, "."))
	return b.String()
}

func (p *Printer) field(f *ast.Field) {
	p.writeIndent()
	if f.Public {
		p.buf.WriteString("pub ")
	}
	p.buf.WriteString(f.Name)
	p.buf.WriteString(": ")
	p.buf.WriteString(p.typeName(f.Type))
	p.buf.WriteString(";\n")
}

func (p *Printer) params(params []*ast.Parameter) string {
	parts := make([]string, len(params))
	for i, param := range params {
		if param.IsThis {
			parts[i] = "this"
			continue
		}
		parts[i] = param.Name + ": " + p.typeName(param.Type)
	}
	return strings.Join(parts, ", ")
}

func (p *Printer) class(c *ast.Class) {
	p.writeIndent()
	if c.Public {
		p.buf.WriteString("pub ")
	}
	p.buf.WriteString("class ")
	p.buf.WriteString(c.Name)
	p.buf.WriteString(" {\n")
	p.indent++
	for _, f := range c.Fields {
		p.field(f)
	}
	for _, m := range c.Methods {
		p.function(m)
	}
	p.indent--
	p.line("}")
}

func (p *Printer) iface(i *ast.Interface) {
	p.writeIndent()
	p.buf.WriteString("interface ")
	p.buf.WriteString(i.Name)
	if len(i.Parents) > 0 {
		parents := make([]string, len(i.Parents))
		for idx, parent := range i.Parents {
			parents[idx] = p.typeName(parent)
		}
		p.buf.WriteString(": ")
		p.buf.WriteString(strings.Join(parents, ", "))
	}
	p.buf.WriteString(" {\n")
	p.indent++
	for _, f := range i.Fields {
		p.field(f)
	}
	for _, m := range i.Methods {
		p.writeIndent()
		p.buf.WriteString("func ")
		p.buf.WriteString(m.Name)
		p.buf.WriteByte('(')
		p.buf.WriteString(p.params(m.Parameters))
		p.buf.WriteString("): ")
		p.buf.WriteString(p.typeName(m.ReturnType))
		p.buf.WriteString(";\n")
	}
	p.indent--
	p.line("}")
}

func (p *Printer) extend(e *ast.Extend) {
	p.writeIndent()
	p.buf.WriteString("extend ")
	p.buf.WriteString(p.typeName(e.Target))
	p.buf.WriteString(": ")
	names := make([]string, len(e.Interfaces))
	for i, itf := range e.Interfaces {
		names[i] = p.typeName(itf)
	}
	p.buf.WriteString(strings.Join(names, ", "))
	p.buf.WriteString(" {\n")
	p.indent++
	for _, f := range e.Fields {
		p.field(f)
	}
	for _, m := range e.Methods {
		p.function(m)
	}
	p.indent--
	p.line("}")
}

func (p *Printer) function(fn *ast.Function) {
	p.writeIndent()
	if fn.Public {
		p.buf.WriteString("pub ")
	}
	p.buf.WriteString("func ")
	p.buf.WriteString(fn.Name)
	p.buf.WriteByte('(')
	p.buf.WriteString(p.params(fn.Parameters))
	p.buf.WriteString("): ")
	p.buf.WriteString(p.typeName(fn.ReturnType))
	p.buf.WriteString(" {\n")
	p.indent++
	for _, stmt := range fn.Body {
		p.Statement(stmt)
	}
	p.indent--
	p.line("}")
}

func (p *Printer) varDecl(v *ast.VarDecl) {
	p.writeIndent()
	p.buf.WriteString("var ")
	p.buf.WriteString(v.Name)
	if v.Type != nil {
		p.buf.WriteString(": ")
		p.buf.WriteString(p.typeName(v.Type))
	}
	p.buf.WriteString(" = ")
	p.Expression(v.Value)
	p.buf.WriteString(";\n")
}

func (p *Printer) assign(a *ast.Assign) {
	p.writeIndent()
	p.Expression(a.Target)
	p.buf.WriteString(" = ")
	p.Expression(a.Value)
	p.buf.WriteString(";\n")
}

func (p *Printer) ifStmt(i *ast.If) {
	p.writeIndent()
	p.buf.WriteString("if (")
	p.Expression(i.Condition)
	p.buf.WriteString(") {\n")
	p.indent++
	for _, stmt := range i.Then {
		p.Statement(stmt)
	}
	p.indent--
	p.writeIndent()
	p.buf.WriteString("}")
	switch {
	case i.ElseIf != nil:
		p.buf.WriteString(" else ")
		savedIndent := p.indent
		p.indent = 0
		inline := New()
		inline.indent = savedIndent
		inline.ifStmt(i.ElseIf)
		p.buf.WriteString(strings.TrimLeft(inline.String(), " \t"))
		p.indent = savedIndent
	case i.Else != nil:
		p.buf.WriteString(" else {\n")
		p.indent++
		for _, stmt := range i.Else {
			p.Statement(stmt)
		}
		p.indent--
		p.line("}")
	default:
		p.buf.WriteString("\n")
	}
}

// Expression prints an expression using the fixed operator set's
// canonical spelling. Every binary and unary expression is printed
// inside its own parentheses, so the printed text re-parses to the
// grouping the AST holds even where that grouping differs from
// operator precedence.
func (p *Printer) Expression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Literal:
		p.buf.WriteString(literalText(e))
	case *ast.Identifier:
		p.buf.WriteString(e.Name)
	case *ast.This:
		p.buf.WriteString("this")
	case *ast.Binary:
		p.buf.WriteByte('(')
		p.Expression(e.Left)
		p.buf.WriteByte(' ')
		p.buf.WriteString(binaryOpText(e.Operator))
		p.buf.WriteByte(' ')
		p.Expression(e.Right)
		p.buf.WriteByte(')')
	case *ast.Unary:
		p.buf.WriteByte('(')
		p.buf.WriteString(unaryOpText(e.Operator))
		p.Expression(e.Operand)
		p.buf.WriteByte(')')
	case *ast.MemberAccess:
		p.Expression(e.Target)
		p.buf.WriteByte('.')
		p.buf.WriteString(e.Name)
	case *ast.Call:
		p.Expression(e.Callee)
		p.buf.WriteByte('(')
		for i, arg := range e.Arguments {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.Expression(arg)
		}
		p.buf.WriteByte(')')
	}
}

func literalText(l *ast.Literal) string {
	if l.Kind == ast.LiteralString {
		return strconv.Quote(l.Text)
	}
	return l.Text
}

func binaryOpText(op ast.Operator) string {
	switch op {
	case ast.OpAdd:
		return "+"
	case ast.OpSub:
		return "-"
	case ast.OpMul:
		return "*"
	case ast.OpDiv:
		return "/"
	case ast.OpMod:
		return "%"
	case ast.OpEq:
		return "=="
	case ast.OpNotEq:
		return "!="
	case ast.OpLt:
		return "<"
	case ast.OpGt:
		return ">"
	case ast.OpLtEq:
		return "<="
	case ast.OpGtEq:
		return ">="
	case ast.OpAnd:
		return "&&"
	case ast.OpOr:
		return "||"
	default:
		return "?"
	}
}

func unaryOpText(op ast.UnaryOperator) string {
	if op == ast.OpNot {
		return "!"
	}
	return "-"
}
