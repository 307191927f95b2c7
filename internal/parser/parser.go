// Package parser turns a token stream into the ast package's File
// node. Expression precedence and token-level grammar details are an
// implementation choice; only the AST shape documented in ast.File is
// a contract the rest of the compiler depends on.
//
// Parsing halts on the first syntax error in a file (spec §4.6): a
// *ParseError is returned and no partial AST is handed to the caller.
package parser

import (
	"fmt"

	"github.com/timu-lang/timu/internal/ast"
	"github.com/timu-lang/timu/internal/lexer"
	"github.com/timu-lang/timu/internal/source"
	"github.com/timu-lang/timu/internal/token"
)

// ParseError is a single, unrecoverable syntax error.
type ParseError struct {
	Message string
	Span    source.Span
}

func (e *ParseError) Error() string {
	return e.Message
}

// Parser is a recursive-descent, two-token-lookahead parser.
type Parser struct {
	lex  *lexer.Lexer
	file source.FileHandle
	path string

	cur  token.Token
	peek token.Token
}

// New creates a Parser over already-lexed input registered under
// file/path.
func New(file source.FileHandle, path, input string) *Parser {
	p := &Parser{lex: lexer.New(file, input), file: file, path: path}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
	for p.peek.Type == token.NEWLINE {
		p.peek = p.lex.NextToken()
	}
}

func (p *Parser) errorf(span source.Span, format string, args ...interface{}) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...), Span: span}
}

func (p *Parser) expect(t token.Type, what string) (token.Token, *ParseError) {
	if p.cur.Type != t {
		return token.Token{}, p.errorf(p.cur.Span, "expected %s, found %q", what, p.cur.Lexeme)
	}
	tok := p.cur
	p.next()
	return tok, nil
}

// Parse consumes the whole input and produces a File AST, or the
// first syntax error encountered.
func Parse(file source.FileHandle, path, input string) (*ast.File, *ParseError) {
	p := New(file, path, input)
	return p.parseFile()
}

func (p *Parser) parseFile() (*ast.File, *ParseError) {
	start := p.cur.Span
	f := &ast.File{Path: p.path, Handle: p.file}

	for p.cur.Type != token.EOF {
		stmt, err := p.parseTopLevel()
		if err != nil {
			return nil, err
		}
		f.Statements = append(f.Statements, stmt)
	}

	end := start
	if len(f.Statements) > 0 {
		end = f.Statements[len(f.Statements)-1].Span()
	}
	f.Sp = start.Cover(end)
	return f, nil
}

func (p *Parser) parseTopLevel() (ast.Statement, *ParseError) {
	switch p.cur.Type {
	case token.USE:
		return p.parseUse()
	case token.PUB:
		pubSpan := p.cur.Span
		p.next()
		switch p.cur.Type {
		case token.CLASS:
			return p.parseClass(true, pubSpan)
		case token.FUNC:
			return p.parseFunction(true, pubSpan, ast.FunctionLocation{})
		default:
			return nil, p.errorf(p.cur.Span, "expected class or func after pub, found %q", p.cur.Lexeme)
		}
	case token.CLASS:
		return p.parseClass(false, source.Span{})
	case token.INTERFACE:
		return p.parseInterface()
	case token.EXTEND:
		return p.parseExtend()
	case token.FUNC:
		return p.parseFunction(false, source.Span{}, ast.FunctionLocation{})
	default:
		return nil, p.errorf(p.cur.Span, "expected a top-level declaration, found %q", p.cur.Lexeme)
	}
}

func (p *Parser) parseDottedName() ([]string, source.Span, *ParseError) {
	first, err := p.expect(token.IDENT, "identifier")
	if err != nil {
		return nil, source.Span{}, err
	}
	names := []string{first.Lexeme}
	span := first.Span
	for p.cur.Type == token.DOT {
		p.next()
		seg, err := p.expect(token.IDENT, "identifier")
		if err != nil {
			return nil, source.Span{}, err
		}
		names = append(names, seg.Lexeme)
		span = span.Cover(seg.Span)
	}
	return names, span, nil
}

func (p *Parser) parseUse() (ast.Statement, *ParseError) {
	start := p.cur.Span
	p.next() // consume "use"

	path, pathSpan, err := p.parseDottedName()
	if err != nil {
		return nil, err
	}

	alias := ""
	if p.cur.Type == token.AS {
		p.next()
		aliasTok, err := p.expect(token.IDENT, "identifier")
		if err != nil {
			return nil, err
		}
		alias = aliasTok.Lexeme
	}

	semi, err := p.expect(token.SEMICOLON, "';'")
	if err != nil {
		return nil, err
	}
	return &ast.Use{Path: path, Alias: alias, Sp: start.Cover(semi.Span).Cover(pathSpan)}, nil
}

func (p *Parser) parseTypeName() (*ast.TypeName, *ParseError) {
	start := p.cur.Span
	nullable := false
	reference := false
	if p.cur.Type == token.QUESTION {
		nullable = true
		p.next()
	}
	if p.cur.Type == token.AMP {
		reference = true
		p.next()
	}
	names, span, err := p.parseDottedName()
	if err != nil {
		return nil, err
	}
	return &ast.TypeName{Nullable: nullable, Reference: reference, Segments: names, Sp: start.Cover(span)}, nil
}

func (p *Parser) parseClass(public bool, pubSpan source.Span) (ast.Statement, *ParseError) {
	start := p.cur.Span
	if public {
		start = pubSpan
	}
	p.next() // consume "class"
	name, err := p.expect(token.IDENT, "class name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE, "'{'"); err != nil {
		return nil, err
	}

	class := &ast.Class{Public: public, Name: name.Lexeme, NameSp: name.Span}
	for p.cur.Type != token.RBRACE {
		if p.cur.Type == token.EOF {
			return nil, p.errorf(p.cur.Span, "unexpected end of file inside class %q", name.Lexeme)
		}
		fieldPublic, fieldPubSpan := false, source.Span{}
		if p.cur.Type == token.PUB {
			fieldPublic, fieldPubSpan = true, p.cur.Span
			p.next()
		}
		if p.cur.Type == token.FUNC {
			fn, err := p.parseFunction(fieldPublic, fieldPubSpan, ast.FunctionLocation{IsMethod: true, ClassName: name.Lexeme})
			if err != nil {
				return nil, err
			}
			class.Methods = append(class.Methods, fn.(*ast.Function))
			continue
		}
		field, err := p.parseField(fieldPublic, fieldPubSpan)
		if err != nil {
			return nil, err
		}
		class.Fields = append(class.Fields, field)
	}
	end, err := p.expect(token.RBRACE, "'}'")
	if err != nil {
		return nil, err
	}
	class.Sp = start.Cover(end.Span)
	return class, nil
}

func (p *Parser) parseField(public bool, pubSpan source.Span) (*ast.Field, *ParseError) {
	start := p.cur.Span
	if public {
		start = pubSpan
	}
	name, err := p.expect(token.IDENT, "field name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON, "':'"); err != nil {
		return nil, err
	}
	typ, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.SEMICOLON, "';'")
	if err != nil {
		return nil, err
	}
	return &ast.Field{Public: public, PublicSp: pubSpan, Name: name.Lexeme, Type: typ, Sp: start.Cover(end.Span)}, nil
}

func (p *Parser) parseParams() ([]*ast.Parameter, *ParseError) {
	if _, err := p.expect(token.LPAREN, "'('"); err != nil {
		return nil, err
	}
	var params []*ast.Parameter
	for p.cur.Type != token.RPAREN {
		if p.cur.Type == token.THIS {
			params = append(params, &ast.Parameter{IsThis: true, Name: "this", Sp: p.cur.Span})
			p.next()
		} else {
			name, err := p.expect(token.IDENT, "parameter name")
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.COLON, "':'"); err != nil {
				return nil, err
			}
			typ, err := p.parseTypeName()
			if err != nil {
				return nil, err
			}
			params = append(params, &ast.Parameter{Name: name.Lexeme, Type: typ, Sp: name.Span.Cover(typ.Sp)})
		}
		if p.cur.Type == token.COMMA {
			p.next()
			continue
		}
		break
	}
	if _, err := p.expect(token.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseFunction(public bool, pubSpan source.Span, loc ast.FunctionLocation) (ast.Statement, *ParseError) {
	start := p.cur.Span
	if public {
		start = pubSpan
	}
	p.next() // consume "func"
	name, err := p.expect(token.IDENT, "function name")
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON, "':'"); err != nil {
		return nil, err
	}
	ret, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE, "'{'"); err != nil {
		return nil, err
	}
	var body []ast.Statement
	for p.cur.Type != token.RBRACE {
		if p.cur.Type == token.EOF {
			return nil, p.errorf(p.cur.Span, "unexpected end of file inside function %q", name.Lexeme)
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	end, err := p.expect(token.RBRACE, "'}'")
	if err != nil {
		return nil, err
	}
	return &ast.Function{
		Public:     public,
		Name:       name.Lexeme,
		Parameters: params,
		ReturnType: ret,
		Body:       body,
		Location:   loc,
		Sp:         start.Cover(end.Span),
		NameSp:     name.Span,
	}, nil
}

func (p *Parser) parseInterface() (ast.Statement, *ParseError) {
	start := p.cur.Span
	p.next() // consume "interface"
	name, err := p.expect(token.IDENT, "interface name")
	if err != nil {
		return nil, err
	}
	var parents []*ast.TypeName
	if p.cur.Type == token.COLON {
		p.next()
		for {
			t, err := p.parseTypeName()
			if err != nil {
				return nil, err
			}
			parents = append(parents, t)
			if p.cur.Type == token.COMMA {
				p.next()
				continue
			}
			break
		}
	}
	if _, err := p.expect(token.LBRACE, "'{'"); err != nil {
		return nil, err
	}

	iface := &ast.Interface{Name: name.Lexeme, Parents: parents, NameSp: name.Span}
	for p.cur.Type != token.RBRACE {
		if p.cur.Type == token.EOF {
			return nil, p.errorf(p.cur.Span, "unexpected end of file inside interface %q", name.Lexeme)
		}
		public, pubSpan := false, source.Span{}
		if p.cur.Type == token.PUB {
			public, pubSpan = true, p.cur.Span
			p.next()
		}
		if p.cur.Type == token.FUNC {
			m, err := p.parseInterfaceMethod(public, pubSpan)
			if err != nil {
				return nil, err
			}
			iface.Methods = append(iface.Methods, m)
			continue
		}
		field, err := p.parseField(public, pubSpan)
		if err != nil {
			return nil, err
		}
		iface.Fields = append(iface.Fields, field)
	}
	end, err := p.expect(token.RBRACE, "'}'")
	if err != nil {
		return nil, err
	}
	iface.Sp = start.Cover(end.Span)
	return iface, nil
}

func (p *Parser) parseInterfaceMethod(public bool, pubSpan source.Span) (*ast.InterfaceMethod, *ParseError) {
	start := p.cur.Span
	if public {
		start = pubSpan
	}
	p.next() // consume "func"
	name, err := p.expect(token.IDENT, "method name")
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON, "':'"); err != nil {
		return nil, err
	}
	ret, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.SEMICOLON, "';'")
	if err != nil {
		return nil, err
	}
	return &ast.InterfaceMethod{Public: public, PublicSp: pubSpan, Name: name.Lexeme, Parameters: params, ReturnType: ret, Sp: start.Cover(end.Span)}, nil
}

func (p *Parser) parseExtend() (ast.Statement, *ParseError) {
	start := p.cur.Span
	p.next() // consume "extend"
	target, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON, "':'"); err != nil {
		return nil, err
	}
	var interfaces []*ast.TypeName
	for {
		t, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		interfaces = append(interfaces, t)
		if p.cur.Type == token.COMMA {
			p.next()
			continue
		}
		break
	}
	if _, err := p.expect(token.LBRACE, "'{'"); err != nil {
		return nil, err
	}

	extend := &ast.Extend{Target: target, Interfaces: interfaces}
	for p.cur.Type != token.RBRACE {
		if p.cur.Type == token.EOF {
			return nil, p.errorf(p.cur.Span, "unexpected end of file inside extend")
		}
		public, pubSpan := false, source.Span{}
		if p.cur.Type == token.PUB {
			public, pubSpan = true, p.cur.Span
			p.next()
		}
		if p.cur.Type == token.FUNC {
			fn, err := p.parseFunction(public, pubSpan, ast.FunctionLocation{IsMethod: true, ClassName: target.LastSegment()})
			if err != nil {
				return nil, err
			}
			extend.Methods = append(extend.Methods, fn.(*ast.Function))
			continue
		}
		field, err := p.parseField(public, pubSpan)
		if err != nil {
			return nil, err
		}
		extend.Fields = append(extend.Fields, field)
	}
	end, err := p.expect(token.RBRACE, "'}'")
	if err != nil {
		return nil, err
	}
	extend.Sp = start.Cover(end.Span)
	return extend, nil
}
