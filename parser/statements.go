package parser

import (
	"strings"

	"github.com/minipar-lang/minipar/ast"
	"github.com/minipar-lang/minipar/lexer"
	"github.com/minipar-lang/minipar/symtable"
)

// stmt dispatches on the current token's tag to the matching grammar
// production; anything not led by a keyword falls through to assignment,
// which also covers a bare function/method call statement.
func (p *Parser) stmt() ast.Statement {
	switch p.cur.Tag {
	case lexer.FUNC:
		return p.funcdef()
	case lexer.RETURN:
		return p.returnStmt()
	case lexer.BREAK:
		p.advance()
		return &ast.Break{}
	case lexer.CONTINUE:
		p.advance()
		return &ast.Continue{}
	case lexer.IF:
		return p.ifStmt()
	case lexer.WHILE:
		return p.whileStmt()
	case lexer.SEQ:
		p.advance()
		return &ast.Seq{Body: p.block()}
	case lexer.PAR:
		p.advance()
		return &ast.Par{Body: p.block()}
	case lexer.CCHANNEL:
		return p.cchanStmt()
	case lexer.SCHANNEL:
		return p.schanStmt()
	default:
		return p.assignment()
	}
}

func (p *Parser) returnStmt() ast.Statement {
	p.expect(lexer.RETURN)
	return &ast.Return{Expr: p.disjunction()}
}

func (p *Parser) ifStmt() ast.Statement {
	p.expect(lexer.IF)
	p.expect("(")
	cond := p.disjunction()
	p.expect(")")
	body := p.block()
	node := &ast.If{Cond: cond, Body: body}
	if p.check(lexer.ELSE) {
		p.advance()
		node.Else = p.block()
	}
	return node
}

func (p *Parser) whileStmt() ast.Statement {
	p.expect(lexer.WHILE)
	p.expect("(")
	cond := p.disjunction()
	p.expect(")")
	body := p.block()
	return &ast.While{Cond: cond, Body: body}
}

func (p *Parser) cchanStmt() ast.Statement {
	p.expect(lexer.CCHANNEL)
	nameTok := p.expect(lexer.ID)
	if !p.scope.Insert(nameTok.Value, symtable.Symbol{Name: nameTok.Value, Kind: symtable.CChan}) {
		p.errorf("duplicate declaration of %q", nameTok.Value)
	}
	p.expect("{")
	host := p.ari()
	p.expect(",")
	port := p.ari()
	p.expect("}")
	return &ast.CChannel{Name: nameTok.Value, Host: host, Port: port}
}

func (p *Parser) schanStmt() ast.Statement {
	p.expect(lexer.SCHANNEL)
	nameTok := p.expect(lexer.ID)
	if !p.scope.Insert(nameTok.Value, symtable.Symbol{Name: nameTok.Value, Kind: symtable.SChan}) {
		p.errorf("duplicate declaration of %q", nameTok.Value)
	}
	p.expect("{")
	funcTok := p.expect(lexer.ID)
	if sym, ok := p.scope.Find(funcTok.Value); !ok || sym.Kind != symtable.Func {
		p.errorf("s_channel references undeclared function %q", funcTok.Value)
	}
	p.expect(",")
	host := p.ari()
	p.expect(",")
	port := p.ari()
	p.expect(",")
	desc := p.ari()
	p.expect("}")
	return &ast.SChannel{Name: nameTok.Value, Host: host, Port: port, FuncName: funcTok.Value, Description: desc}
}

// funcdef parses "func" ID "(" params? ")" "->" TYPE block. The function
// name is registered in the enclosing scope before its parameters or
// body are parsed so that a recursive call inside the body resolves.
func (p *Parser) funcdef() ast.Statement {
	p.expect(lexer.FUNC)
	nameTok := p.expect(lexer.ID)
	if !p.scope.Insert(nameTok.Value, symtable.Symbol{Name: nameTok.Value, Kind: symtable.Func}) {
		p.errorf("duplicate declaration of %q", nameTok.Value)
	}

	prev := p.scope
	p.scope = symtable.NewTable(prev)
	params := ast.NewParams()

	p.expect("(")
	if !p.check(")") {
		p.paramList(params)
	}
	p.expect(")")
	p.expect(lexer.RARROW)
	retTok := p.expect(lexer.TYPE)
	retType := strings.ToUpper(retTok.Value)
	p.funcReturns[nameTok.Value] = retType

	body := p.block()
	p.scope = prev

	return &ast.FuncDef{Name: nameTok.Value, ReturnType: retType, Params: params, Body: body}
}

func (p *Parser) paramList(params *ast.Params) {
	p.param(params)
	for p.check(",") {
		p.advance()
		p.param(params)
	}
}

func (p *Parser) param(params *ast.Params) {
	nameTok := p.expect(lexer.ID)
	p.expect(":")
	typeTok := p.expect(lexer.TYPE)
	typeTag := strings.ToUpper(typeTok.Value)

	if !p.scope.Insert(nameTok.Value, symtable.Symbol{Name: nameTok.Value, Kind: symtable.Kind(typeTag)}) {
		p.errorf("duplicate parameter name %q", nameTok.Value)
	}

	var def ast.Expression
	if p.check("=") {
		p.advance()
		def = p.disjunction()
	}

	if !params.Add(ast.Param{Name: nameTok.Value, Type: typeTag, Default: def}) {
		p.errorf("duplicate parameter name %q", nameTok.Value)
	}
}

// assignment covers both `local "=" disjunction` and a bare call
// statement: local() already parses either shape, so assignment only
// needs to decide whether a trailing "=" follows an ID use.
func (p *Parser) assignment() ast.Statement {
	left := p.local()

	if id, ok := left.(*ast.ID); ok && p.check("=") {
		p.advance()
		right := p.disjunction()
		return &ast.Assign{Left: id, Right: right}
	}

	return left
}
