package parser

import (
	"github.com/timu-lang/timu/internal/ast"
	"github.com/timu-lang/timu/internal/source"
	"github.com/timu-lang/timu/internal/token"
)

func (p *Parser) parseStatement() (ast.Statement, *ParseError) {
	switch p.cur.Type {
	case token.VAR:
		return p.parseVarDecl()
	case token.IF:
		return p.parseIf()
	default:
		return p.parseExprOrAssign()
	}
}

func (p *Parser) parseVarDecl() (ast.Statement, *ParseError) {
	start := p.cur.Span
	p.next() // consume "var"
	name, err := p.expect(token.IDENT, "variable name")
	if err != nil {
		return nil, err
	}

	var typ *ast.TypeName
	if p.cur.Type == token.COLON {
		p.next()
		typ, err = p.parseTypeName()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.ASSIGN, "'='"); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.SEMICOLON, "';'")
	if err != nil {
		return nil, err
	}
	return &ast.VarDecl{Name: name.Lexeme, Type: typ, Value: value, Sp: start.Cover(end.Span)}, nil
}

func (p *Parser) parseIf() (ast.Statement, *ParseError) {
	start := p.cur.Span
	p.next() // consume "if"
	if _, err := p.expect(token.LPAREN, "'('"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, "')'"); err != nil {
		return nil, err
	}
	then, end, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	ifStmt := &ast.If{Condition: cond, Then: then, Sp: start.Cover(end)}

	if p.cur.Type == token.ELSE {
		p.next()
		if p.cur.Type == token.IF {
			elseIf, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			elseIfNode := elseIf.(*ast.If)
			ifStmt.ElseIf = elseIfNode
			ifStmt.Sp = start.Cover(elseIfNode.Sp)
			return ifStmt, nil
		}
		elseBody, elseEnd, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		ifStmt.Else = elseBody
		ifStmt.Sp = start.Cover(elseEnd)
	}
	return ifStmt, nil
}

func (p *Parser) parseBlock() ([]ast.Statement, source.Span, *ParseError) {
	if _, err := p.expect(token.LBRACE, "'{'"); err != nil {
		return nil, source.Span{}, err
	}
	var stmts []ast.Statement
	for p.cur.Type != token.RBRACE {
		if p.cur.Type == token.EOF {
			return nil, source.Span{}, p.errorf(p.cur.Span, "unexpected end of file inside block")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, source.Span{}, err
		}
		stmts = append(stmts, stmt)
	}
	end, err := p.expect(token.RBRACE, "'}'")
	if err != nil {
		return nil, source.Span{}, err
	}
	return stmts, end.Span, nil
}

func (p *Parser) parseExprOrAssign() (ast.Statement, *ParseError) {
	start := p.cur.Span
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.cur.Type == token.ASSIGN {
		p.next()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		end, err := p.expect(token.SEMICOLON, "';'")
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Target: expr, Value: value, Sp: start.Cover(end.Span)}, nil
	}
	end, err := p.expect(token.SEMICOLON, "';'")
	if err != nil {
		return nil, err
	}
	return &ast.ExprStatement{Value: expr, Sp: start.Cover(end.Span)}, nil
}

// Expression grammar, lowest to highest precedence:
//
//	or         ->  and (|| and)*
//	and        ->  equality (&& equality)*
//	equality   ->  comparison ((==|!=) comparison)*
//	comparison ->  additive ((<|>|<=|>=) additive)*
//	additive   ->  multiplicative ((+|-) multiplicative)*
//	multiplicative -> unary ((*|/|%) unary)*
//	unary      ->  (!|-) unary | postfix
//	postfix    ->  primary (.ident | (args))*
func (p *Parser) parseExpression() (ast.Expression, *ParseError) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Expression, *ParseError) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == token.OR {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Operator: ast.OpOr, Right: right, Sp: left.Span().Cover(right.Span())}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expression, *ParseError) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == token.AND {
		p.next()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Operator: ast.OpAnd, Right: right, Sp: left.Span().Cover(right.Span())}
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Expression, *ParseError) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == token.EQ || p.cur.Type == token.NOT_EQ {
		op := ast.OpEq
		if p.cur.Type == token.NOT_EQ {
			op = ast.OpNotEq
		}
		p.next()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Operator: op, Right: right, Sp: left.Span().Cover(right.Span())}
	}
	return left, nil
}

func (p *Parser) parseComparison() (ast.Expression, *ParseError) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.Operator
		switch p.cur.Type {
		case token.LT:
			op = ast.OpLt
		case token.GT:
			op = ast.OpGt
		case token.LT_EQ:
			op = ast.OpLtEq
		case token.GT_EQ:
			op = ast.OpGtEq
		default:
			return left, nil
		}
		p.next()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Operator: op, Right: right, Sp: left.Span().Cover(right.Span())}
	}
}

func (p *Parser) parseAdditive() (ast.Expression, *ParseError) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == token.PLUS || p.cur.Type == token.MINUS {
		op := ast.OpAdd
		if p.cur.Type == token.MINUS {
			op = ast.OpSub
		}
		p.next()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Operator: op, Right: right, Sp: left.Span().Cover(right.Span())}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Expression, *ParseError) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == token.ASTERISK || p.cur.Type == token.SLASH || p.cur.Type == token.PERCENT {
		var op ast.Operator
		switch p.cur.Type {
		case token.ASTERISK:
			op = ast.OpMul
		case token.SLASH:
			op = ast.OpDiv
		case token.PERCENT:
			op = ast.OpMod
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Operator: op, Right: right, Sp: left.Span().Cover(right.Span())}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expression, *ParseError) {
	start := p.cur.Span
	switch p.cur.Type {
	case token.BANG:
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Operator: ast.OpNot, Operand: operand, Sp: start.Cover(operand.Span())}, nil
	case token.MINUS:
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Operator: ast.OpNeg, Operand: operand, Sp: start.Cover(operand.Span())}, nil
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() (ast.Expression, *ParseError) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.Type {
		case token.DOT:
			p.next()
			name, err := p.expect(token.IDENT, "member name")
			if err != nil {
				return nil, err
			}
			expr = &ast.MemberAccess{Target: expr, Name: name.Lexeme, Sp: expr.Span().Cover(name.Span)}
		case token.LPAREN:
			args, end, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			expr = &ast.Call{Callee: expr, Arguments: args, Sp: expr.Span().Cover(end)}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseArguments() ([]ast.Expression, source.Span, *ParseError) {
	if _, err := p.expect(token.LPAREN, "'('"); err != nil {
		return nil, source.Span{}, err
	}
	var args []ast.Expression
	for p.cur.Type != token.RPAREN {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, source.Span{}, err
		}
		args = append(args, arg)
		if p.cur.Type == token.COMMA {
			p.next()
			continue
		}
		break
	}
	end, err := p.expect(token.RPAREN, "')'")
	if err != nil {
		return nil, source.Span{}, err
	}
	return args, end.Span, nil
}

func (p *Parser) parsePrimary() (ast.Expression, *ParseError) {
	switch p.cur.Type {
	case token.THIS:
		tok := p.cur
		p.next()
		return &ast.This{Sp: tok.Span}, nil
	case token.TRUE:
		tok := p.cur
		p.next()
		return &ast.Literal{Kind: ast.LiteralBool, Text: tok.Lexeme, Sp: tok.Span}, nil
	case token.FALSE:
		tok := p.cur
		p.next()
		return &ast.Literal{Kind: ast.LiteralBool, Text: tok.Lexeme, Sp: tok.Span}, nil
	case token.STRING:
		tok := p.cur
		p.next()
		return &ast.Literal{Kind: ast.LiteralString, Text: tok.Lexeme, Sp: tok.Span}, nil
	case token.INT:
		tok := p.cur
		p.next()
		return &ast.Literal{Kind: literalKindForInt(tok.Lexeme), Text: tok.Lexeme, Sp: tok.Span}, nil
	case token.FLOAT:
		tok := p.cur
		p.next()
		return &ast.Literal{Kind: literalKindForFloat(tok.Lexeme), Text: tok.Lexeme, Sp: tok.Span}, nil
	case token.IDENT:
		tok := p.cur
		p.next()
		return &ast.Identifier{Name: tok.Lexeme, Sp: tok.Span}, nil
	case token.LPAREN:
		p.next()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "')'"); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, p.errorf(p.cur.Span, "expected an expression, found %q", p.cur.Lexeme)
	}
}

// literalKindForInt inspects a numeric lexeme's suffix (e.g. "10u8",
// "42") to pick the TIR primitive kind it denotes. An unsuffixed
// integer literal defaults to i32, matching the source language's
// default-width rule.
func literalKindForInt(lexeme string) ast.LiteralKind {
	switch suffix(lexeme) {
	case "i8":
		return ast.LiteralI8
	case "u8":
		return ast.LiteralU8
	case "i16":
		return ast.LiteralI16
	case "u16":
		return ast.LiteralU16
	case "i32":
		return ast.LiteralI32
	case "u32":
		return ast.LiteralU32
	case "i64":
		return ast.LiteralI64
	case "u64":
		return ast.LiteralU64
	default:
		return ast.LiteralI32
	}
}

// literalKindForFloat defaults unsuffixed float literals to double,
// matching the source language's default-width rule.
func literalKindForFloat(lexeme string) ast.LiteralKind {
	switch suffix(lexeme) {
	case "f":
		return ast.LiteralFloat
	default:
		return ast.LiteralDouble
	}
}

// suffix returns the type suffix of a numeric lexeme: everything from
// the first letter on, e.g. "u8" in "10u8" or "f" in "3.14f".
func suffix(lexeme string) string {
	for i := 0; i < len(lexeme); i++ {
		b := lexeme[i]
		if (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') {
			return lexeme[i:]
		}
	}
	return ""
}
