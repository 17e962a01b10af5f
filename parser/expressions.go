package parser

import (
	"github.com/minipar-lang/minipar/ast"
	"github.com/minipar-lang/minipar/lexer"
	"github.com/minipar-lang/minipar/symtable"
)

// The following functions mirror the grammar's precedence chain exactly,
// lowest precedence first: disjunction, conjunction, equality,
// comparison, ari, term, unary, primary. Every level is left-associative
// and implemented by the standard "parse one operand, then loop while
// the lookahead is one of this level's operators" shape.

func (p *Parser) disjunction() ast.Expression {
	left := p.conjunction()
	for p.check(lexer.OR) {
		tok := p.cur
		p.advance()
		left = ast.NewLogical(tok, left, p.conjunction())
	}
	return left
}

func (p *Parser) conjunction() ast.Expression {
	left := p.equality()
	for p.check(lexer.AND) {
		tok := p.cur
		p.advance()
		left = ast.NewLogical(tok, left, p.equality())
	}
	return left
}

func (p *Parser) equality() ast.Expression {
	left := p.comparison()
	for p.check(lexer.EQ) || p.check(lexer.NEQ) {
		tok := p.cur
		p.advance()
		left = ast.NewRelational(tok, left, p.comparison())
	}
	return left
}

func (p *Parser) comparison() ast.Expression {
	left := p.ari()
	for p.check("<") || p.check(">") || p.check(lexer.LTE) || p.check(lexer.GTE) {
		tok := p.cur
		p.advance()
		left = ast.NewRelational(tok, left, p.ari())
	}
	return left
}

func (p *Parser) ari() ast.Expression {
	left := p.term()
	for p.check("+") || p.check("-") {
		tok := p.cur
		p.advance()
		left = ast.NewArithmetic(tok, left, p.term())
	}
	return left
}

func (p *Parser) term() ast.Expression {
	left := p.unary()
	for p.check("*") || p.check("/") || p.check("%") {
		tok := p.cur
		p.advance()
		left = ast.NewArithmetic(tok, left, p.unary())
	}
	return left
}

func (p *Parser) unary() ast.Expression {
	if p.check("!") || p.check("-") {
		tok := p.cur
		p.advance()
		return ast.NewUnary(tok, p.unary())
	}
	return p.primary()
}

func (p *Parser) primary() ast.Expression {
	switch p.cur.Tag {
	case "(":
		p.advance()
		expr := p.disjunction()
		p.expect(")")
		return expr
	case lexer.ID:
		return p.local()
	case lexer.NUMBER:
		tok := p.cur
		p.advance()
		return ast.NewConstant("NUMBER", tok)
	case lexer.STRING:
		tok := p.cur
		p.advance()
		return ast.NewConstant("STRING", tok)
	case lexer.TRUE, lexer.FALSE:
		tok := p.cur
		p.advance()
		return ast.NewConstant("BOOL", tok)
	default:
		p.errorf("unexpected token %s %q", p.cur.Tag, p.cur.Value)
		return nil
	}
}

// args parses a comma-separated, non-empty disjunction list.
func (p *Parser) args() []ast.Expression {
	list := []ast.Expression{p.disjunction()}
	for p.check(",") {
		p.advance()
		list = append(list, p.disjunction())
	}
	return list
}

// local implements the grammar's three-way `local` production:
//
//	ID ":" TYPE                                     -> declaration
//	ID ( "[" ari "]" | "." ID )* "(" args? ")"      -> call, optionally
//	                                                    method-style
//	ID ( "[" ari "]" )*                             -> plain use or
//	                                                    string index
//
// Declaration inserts into the innermost scope and fails on redeclaration
// in that same scope; every other form requires idTok to already be
// visible, since MiniPar has no forward reference to variables (function
// names are the one exception, registered at the FuncDef header).
func (p *Parser) local() ast.Expression {
	idTok := p.expect(lexer.ID)

	if p.check(":") {
		p.advance()
		typeTok := p.expect(lexer.TYPE)
		typeTag := typeTagOf(typeTok.Value)
		if !p.scope.Insert(idTok.Value, symtable.Symbol{Name: idTok.Value, Kind: symtable.Kind(typeTag)}) {
			p.errorf("duplicate declaration of %q", idTok.Value)
		}
		return ast.NewID(typeTag, idTok, true)
	}

	sym, ok := p.scope.Find(idTok.Value)
	if !ok {
		p.errorf("undeclared identifier %q", idTok.Value)
	}

	var methodOp string
	var index ast.Expression
	for p.check("[") || p.check(".") {
		if p.check("[") {
			p.advance()
			index = p.ari()
			p.expect("]")
			continue
		}
		p.advance()
		nameTok := p.expect(lexer.ID)
		if methodOp != "" {
			methodOp += "."
		}
		methodOp += nameTok.Value
	}

	if p.check("(") {
		p.advance()
		var callArgs []ast.Expression
		if !p.check(")") {
			callArgs = p.args()
		}
		p.expect(")")

		var callee *ast.ID
		retType := p.callReturnType(idTok.Value, methodOp)
		if methodOp == "" {
			callee = ast.NewID(string(sym.Kind), idTok, false)
		}
		return ast.NewCall(retType, idTok, callee, callArgs, methodOp)
	}

	id := ast.NewID(string(sym.Kind), idTok, false)
	if index != nil {
		return ast.NewAccess(id.Type(), idTok, id, index)
	}
	return id
}

// callReturnType resolves the static return type of a call for typing
// purposes: a channel method (send/close) has a fixed type regardless of
// the channel's own kind, a plain call looks up the function table built
// up as FuncDef headers and intrinsics are parsed.
func (p *Parser) callReturnType(name, methodOp string) string {
	if methodOp != "" {
		if ret, ok := Intrinsics[methodOp]; ok {
			return ret
		}
		return "VOID"
	}
	if ret, ok := p.funcReturns[name]; ok {
		return ret
	}
	return "VOID"
}

func typeTagOf(word string) string {
	switch word {
	case "number":
		return "NUMBER"
	case "string":
		return "STRING"
	case "bool":
		return "BOOL"
	default:
		return "VOID"
	}
}
