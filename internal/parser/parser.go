// Package parser implements the recursive-descent parser that turns a
// token.Token stream into the ast.Module the binder/checker core consumes.
// The parser is an external collaborator of the core (spec §1): it knows
// nothing about scopes, symbols or types, and attaches none of them —
// those fields are left unset for the Binder to fill in (spec §6).
//
// Grounded on the teacher's internal/parser package (one file per
// expression family, a processor-style Parse entry point), scaled down to
// this language's much smaller grammar.
package parser

import (
	"fmt"

	"github.com/tyro-lang/tyro/internal/ast"
	"github.com/tyro-lang/tyro/internal/diagnostics"
	"github.com/tyro-lang/tyro/internal/scanner"
	"github.com/tyro-lang/tyro/internal/token"
)

// Parser consumes a scanner's token stream one token of lookahead at a
// time.
type Parser struct {
	sc   *scanner.Scanner
	cur  token.Token
	peek token.Token
	sink *diagnostics.Sink
}

// New creates a Parser reading from sc, reporting syntax errors into sink.
func New(sc *scanner.Scanner, sink *diagnostics.Sink) *Parser {
	p := &Parser{sc: sc, sink: sink}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.sc.Next()
}

func (p *Parser) errorf(format string, args ...any) {
	p.sink.ReportAt(p.cur.Pos, diagnostics.ErrParse, format, args...)
}

// expect consumes the current token if it has type t, reporting a parse
// error and leaving the cursor in place otherwise (best-effort recovery,
// consistent with the core's own "record and continue" policy).
func (p *Parser) expect(t token.Type, what string) token.Token {
	tok := p.cur
	if p.cur.Type != t {
		p.errorf("expected %s, got %q", what, p.cur.Lexeme)
		return tok
	}
	p.next()
	return tok
}

// ParseModule parses a whole source file into an *ast.Module.
func (p *Parser) ParseModule() *ast.Module {
	mod := ast.NewModule(p.cur.Pos)
	for p.cur.Type != token.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			mod.Statements = append(mod.Statements, stmt)
		} else {
			p.next() // skip the offending token and keep going
		}
	}
	return mod
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case token.VAR:
		return p.parseVarDecl()
	case token.TYPE:
		return p.parseTypeAlias()
	case token.RETURN:
		return p.parseReturn()
	case token.SEMI:
		// Left in place: the caller skips the token when no statement is
		// returned.
		return nil
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseVarDecl() *ast.Var {
	pos := p.cur.Pos
	p.next() // 'var'
	name := p.parseIdentifierName()
	v := &ast.Var{Name: name, Base: ast.Base{NodePos: pos}}
	if p.cur.Type == token.COLON {
		p.next()
		v.TypeName = p.parseTypeNode()
	}
	p.expect(token.ASSIGN, "'='")
	v.Initializer = p.parseExpression()
	p.consumeSemi()
	return v
}

func (p *Parser) parseTypeAlias() *ast.TypeAlias {
	pos := p.cur.Pos
	p.next() // 'type'
	name := p.parseIdentifierName()
	ta := &ast.TypeAlias{Name: name, Base: ast.Base{NodePos: pos}}
	p.expect(token.ASSIGN, "'='")
	ta.TypeName = p.parseTypeNode()
	p.consumeSemi()
	return ta
}

func (p *Parser) parseReturn() *ast.Return {
	pos := p.cur.Pos
	p.next() // 'return'
	r := &ast.Return{Base: ast.Base{NodePos: pos}}
	r.Expr = p.parseExpression()
	p.consumeSemi()
	return r
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	pos := p.cur.Pos
	expr := p.parseExpression()
	if expr == nil {
		return nil
	}
	es := &ast.ExpressionStatement{Expr: expr, Base: ast.Base{NodePos: pos}}
	p.consumeSemi()
	return es
}

func (p *Parser) consumeSemi() {
	if p.cur.Type == token.SEMI {
		p.next()
	}
}

// parseExpression handles the one binding-form expression (assignment) and
// otherwise falls through to a call-suffixed primary expression.
func (p *Parser) parseExpression() ast.Expression {
	if p.cur.Type == token.IDENT && p.peek.Type == token.ASSIGN {
		pos := p.cur.Pos
		name := p.parseIdentifierName()
		p.next() // '='
		value := p.parseExpression()
		a := &ast.Assignment{Name: name, Value: value, Base: ast.Base{NodePos: pos}}
		return a
	}
	return p.parseCallExpression()
}

func (p *Parser) parseCallExpression() ast.Expression {
	expr := p.parsePrimaryExpression()
	for {
		if p.cur.Type == token.LANGLE || p.cur.Type == token.LPAREN {
			expr = p.parseCallSuffix(expr)
			continue
		}
		break
	}
	return expr
}

func (p *Parser) parseCallSuffix(callee ast.Expression) ast.Expression {
	pos := callee.Pos()
	call := &ast.Call{Callee: callee, Base: ast.Base{NodePos: pos}}

	if p.cur.Type == token.LANGLE {
		if !p.looksLikeTypeArgumentList() {
			return callee
		}
		p.next() // '<'
		for p.cur.Type != token.RANGLE && p.cur.Type != token.EOF {
			call.TypeArguments = append(call.TypeArguments, p.parseTypeNode())
			if p.cur.Type == token.COMMA {
				p.next()
			}
		}
		p.expect(token.RANGLE, "'>'")
	}

	p.expect(token.LPAREN, "'('")
	for p.cur.Type != token.RPAREN && p.cur.Type != token.EOF {
		call.Arguments = append(call.Arguments, p.parseExpression())
		if p.cur.Type == token.COMMA {
			p.next()
		}
	}
	p.expect(token.RPAREN, "')'")
	return call
}

// looksLikeTypeArgumentList always reports true: the grammar has no
// comparison operators, so a '<' after a callee always begins a
// type-argument list. No lookahead for a matching '>' or '(' is done.
func (p *Parser) looksLikeTypeArgumentList() bool {
	return true
}

func (p *Parser) parsePrimaryExpression() ast.Expression {
	switch p.cur.Type {
	case token.IDENT:
		return p.parseIdentifierName()
	case token.NUMBER:
		tok := p.cur
		p.next()
		n := &ast.NumericLiteral{Text: tok.Lexeme, Base: ast.Base{NodePos: tok.Pos}}
		return n
	case token.STRING:
		tok := p.cur
		p.next()
		s := &ast.StringLiteral{Text: tok.Lexeme, Base: ast.Base{NodePos: tok.Pos}}
		return s
	case token.LBRACE:
		return p.parseObjectLiteral()
	case token.FUNCTION:
		return p.parseFunctionExpression()
	case token.LPAREN:
		p.next()
		inner := p.parseExpression()
		p.expect(token.RPAREN, "')'")
		return inner
	default:
		p.errorf("unexpected token %q", p.cur.Lexeme)
		return nil
	}
}

func (p *Parser) parseObjectLiteral() *ast.Object {
	pos := p.cur.Pos
	p.expect(token.LBRACE, "'{'")
	obj := &ast.Object{Base: ast.Base{NodePos: pos}}
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		propPos := p.cur.Pos
		name := p.parseIdentifierName()
		p.expect(token.COLON, "':'")
		init := p.parseExpression()
		pa := &ast.PropertyAssignment{Name: name, Initializer: init, Base: ast.Base{NodePos: propPos}}
		obj.Properties = append(obj.Properties, pa)
		if p.cur.Type == token.COMMA {
			p.next()
		}
	}
	p.expect(token.RBRACE, "'}'")
	return obj
}

func (p *Parser) parseFunctionExpression() *ast.Function {
	pos := p.cur.Pos
	p.next() // 'function'
	fn := &ast.Function{Locals: ast.NewTable(), Base: ast.Base{NodePos: pos}}

	if p.cur.Type == token.IDENT {
		fn.Name = p.parseIdentifierName()
	}
	if p.cur.Type == token.LANGLE {
		p.next()
		for p.cur.Type != token.RANGLE && p.cur.Type != token.EOF {
			tpPos := p.cur.Pos
			tpName := p.parseIdentifierName()
			tp := &ast.TypeParameter{Name: tpName, Base: ast.Base{NodePos: tpPos}}
			fn.TypeParameters = append(fn.TypeParameters, tp)
			if p.cur.Type == token.COMMA {
				p.next()
			}
		}
		p.expect(token.RANGLE, "'>'")
	}

	p.expect(token.LPAREN, "'('")
	for p.cur.Type != token.RPAREN && p.cur.Type != token.EOF {
		paramPos := p.cur.Pos
		paramName := p.parseIdentifierName()
		param := &ast.Parameter{Name: paramName, Base: ast.Base{NodePos: paramPos}}
		if p.cur.Type == token.COLON {
			p.next()
			param.TypeName = p.parseTypeNode()
		}
		fn.Parameters = append(fn.Parameters, param)
		if p.cur.Type == token.COMMA {
			p.next()
		}
	}
	p.expect(token.RPAREN, "')'")

	if p.cur.Type == token.COLON {
		p.next()
		fn.TypeName = p.parseTypeNode()
	}

	p.expect(token.LBRACE, "'{'")
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			fn.Body = append(fn.Body, stmt)
		} else {
			p.next()
		}
	}
	p.expect(token.RBRACE, "'}'")
	return fn
}

// parseTypeNode parses a TypeNode: a bare identifier, an object literal
// type, or a function signature type.
func (p *Parser) parseTypeNode() ast.TypeNode {
	switch p.cur.Type {
	case token.IDENT:
		return p.parseIdentifierName()
	case token.LBRACE:
		return p.parseObjectLiteralType()
	case token.LANGLE, token.LPAREN:
		return p.parseSignatureType()
	default:
		p.errorf("expected a type, got %q", p.cur.Lexeme)
		return nil
	}
}

func (p *Parser) parseObjectLiteralType() *ast.ObjectLiteralType {
	pos := p.cur.Pos
	p.expect(token.LBRACE, "'{'")
	olt := &ast.ObjectLiteralType{Base: ast.Base{NodePos: pos}}
	for p.cur.Type != token.RBRACE && p.cur.Type != token.EOF {
		propPos := p.cur.Pos
		name := p.parseIdentifierName()
		pd := &ast.PropertyDeclaration{Name: name, Base: ast.Base{NodePos: propPos}}
		if p.cur.Type == token.COLON {
			p.next()
			pd.TypeName = p.parseTypeNode()
		}
		olt.Properties = append(olt.Properties, pd)
		if p.cur.Type == token.COMMA {
			p.next()
		}
	}
	p.expect(token.RBRACE, "'}'")
	return olt
}

func (p *Parser) parseSignatureType() *ast.Signature {
	pos := p.cur.Pos
	sig := &ast.Signature{Locals: ast.NewTable(), Base: ast.Base{NodePos: pos}}

	if p.cur.Type == token.LANGLE {
		p.next()
		for p.cur.Type != token.RANGLE && p.cur.Type != token.EOF {
			tpPos := p.cur.Pos
			tpName := p.parseIdentifierName()
			tp := &ast.TypeParameter{Name: tpName, Base: ast.Base{NodePos: tpPos}}
			sig.TypeParameters = append(sig.TypeParameters, tp)
			if p.cur.Type == token.COMMA {
				p.next()
			}
		}
		p.expect(token.RANGLE, "'>'")
	}

	p.expect(token.LPAREN, "'('")
	for p.cur.Type != token.RPAREN && p.cur.Type != token.EOF {
		paramPos := p.cur.Pos
		paramName := p.parseIdentifierName()
		param := &ast.Parameter{Name: paramName, Base: ast.Base{NodePos: paramPos}}
		if p.cur.Type == token.COLON {
			p.next()
			param.TypeName = p.parseTypeNode()
		}
		sig.Parameters = append(sig.Parameters, param)
		if p.cur.Type == token.COMMA {
			p.next()
		}
	}
	p.expect(token.RPAREN, "')'")
	p.expect(token.FATARROW, "'=>'")
	sig.ReturnType = p.parseTypeNode()
	return sig
}

func (p *Parser) parseIdentifierName() *ast.Identifier {
	tok := p.cur
	if tok.Type != token.IDENT {
		p.errorf("expected an identifier, got %q", tok.Lexeme)
		p.next()
		return ast.NewIdentifier(tok.Pos, fmt.Sprintf("<error:%s>", tok.Lexeme))
	}
	p.next()
	return ast.NewIdentifier(tok.Pos, tok.Lexeme)
}
