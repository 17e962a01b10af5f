// Package parser implements MiniPar's recursive-descent parser: one token
// of lookahead, one function per grammar production, and a compile-time
// symtable.Table threaded through block entry/exit so that every
// identifier reference — outside a declaration site — is checked against
// a visible binding as it is parsed, not later. The parser raises the
// first syntax error it finds and does not attempt recovery: a panic
// carrying a *mperrors.Syntax is recovered once, at the top of Parse.
package parser

import (
	"github.com/minipar-lang/minipar/ast"
	"github.com/minipar-lang/minipar/lexer"
	"github.com/minipar-lang/minipar/mperrors"
	"github.com/minipar-lang/minipar/symtable"
)

// Intrinsics maps every built-in function name to its declared return
// type tag, pre-seeded into the global scope with kind FUNC so that a
// call to any of them resolves without a user-supplied FuncDef. The
// semantic analyzer imports this table to type a Call whose callee is
// one of these names.
var Intrinsics = map[string]string{
	"print":     "VOID",
	"input":     "STRING",
	"to_number": "NUMBER",
	"to_string": "STRING",
	"to_bool":   "BOOL",
	"sleep":     "VOID",
	"len":       "NUMBER",
	"isalpha":   "BOOL",
	"isnum":     "BOOL",
	"send":      "STRING",
	"close":     "VOID",
}

// Parser holds the lexer, one-token lookahead, and the compile-time
// scope chain that grows and shrinks as blocks are entered and exited.
type Parser struct {
	lex *lexer.Lexer
	cur lexer.Token

	scope       *symtable.Table
	funcReturns map[string]string
}

// New creates a Parser over src with the global scope pre-seeded with
// every intrinsic name bound to kind FUNC.
func New(src string) *Parser {
	p := &Parser{
		lex:         lexer.New(src),
		scope:       symtable.NewTable(nil),
		funcReturns: make(map[string]string, len(Intrinsics)),
	}
	for name, ret := range Intrinsics {
		p.scope.Insert(name, symtable.Symbol{Name: name, Kind: symtable.Func})
		p.funcReturns[name] = ret
	}
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.lex.Next()
}

func (p *Parser) check(tag lexer.Tag) bool {
	return p.cur.Tag == tag
}

// expect consumes the current token if it carries tag, raising a syntax
// error (and aborting the parse via panic) otherwise.
func (p *Parser) expect(tag lexer.Tag) lexer.Token {
	if p.cur.Tag != tag {
		p.errorf("expected %s, got %s %q", tag, p.cur.Tag, p.cur.Value)
	}
	tok := p.cur
	p.advance()
	return tok
}

// errorf raises a *mperrors.Syntax attributed to the current line and
// unwinds the whole parse via panic; Parse recovers it at the top level.
func (p *Parser) errorf(format string, args ...any) {
	panic(mperrors.NewSyntax(p.cur.Line, format, args...))
}

// Parse consumes the whole token stream and returns the module's AST, or
// the first syntax error encountered.
func (p *Parser) Parse() (mod *ast.Module, err error) {
	defer func() {
		if r := recover(); r != nil {
			syn, ok := r.(*mperrors.Syntax)
			if !ok {
				panic(r)
			}
			err = syn
		}
	}()
	mod = p.program()
	return mod, nil
}

func (p *Parser) program() *ast.Module {
	mod := &ast.Module{}
	for !p.check(lexer.EOF) {
		mod.Stmts = append(mod.Stmts, p.stmt())
	}
	return mod
}

// block pushes a fresh child scope, parses statements until "}", and
// pops back to the enclosing scope before returning.
func (p *Parser) block() []ast.Statement {
	prev := p.scope
	p.scope = symtable.NewTable(prev)
	defer func() { p.scope = prev }()

	p.expect("{")
	var stmts []ast.Statement
	for !p.check("}") {
		if p.check(lexer.EOF) {
			p.errorf("unexpected end of input, expected %q", "}")
		}
		stmts = append(stmts, p.stmt())
	}
	p.expect("}")
	return stmts
}
