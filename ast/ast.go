// Package ast defines MiniPar's tagged-variant syntax tree: one sum of
// node shapes for statements, one for expressions. Both the semantic
// analyzer and the executor consume this tree by type-switching over the
// concrete node types rather than by visitor dispatch-by-name; a node kind
// with no case reaches the switch's default and is reported as an error
// rather than silently skipped.
// The tree is immutable once built: no later phase rewrites a node.
package ast

import "github.com/minipar-lang/minipar/lexer"

// Statement is any executable node at statement position. Expression
// embeds Statement so a bare call (`send(c, x)` with no assignment) can
// appear directly in a statement list.
type Statement interface {
	stmtNode()
}

// Expression is any node that yields a value. Type reports the node's
// static type tag (NUMBER/STRING/BOOL/VOID) as recorded by the parser and
// checked by the semantic analyzer; Tok returns the token associated with
// the node for diagnostics and for constant/identifier evaluation.
type Expression interface {
	Statement
	exprNode()
	Type() string
	Tok() lexer.Token
}

// exprBase supplies the common Type/Tok machinery every expression node
// embeds, and the stmtNode/exprNode marker methods that make it satisfy
// both Statement and Expression.
type exprBase struct {
	TypeTag string
	Token   lexer.Token
}

func (e *exprBase) stmtNode() {}
func (e *exprBase) exprNode() {}
func (e *exprBase) Type() string      { return e.TypeTag }
func (e *exprBase) Tok() lexer.Token  { return e.Token }

// ---- Statements ----

// Module is the root node: the program's top-level statement list.
type Module struct {
	Stmts []Statement
}

func (*Module) stmtNode() {}

// Assign is `left = right`; left must be an ID (enforced by semantic).
type Assign struct {
	Left  *ID
	Right Expression
}

func (*Assign) stmtNode() {}

// Return yields Expr from the nearest enclosing FuncDef.
type Return struct {
	Expr Expression
}

func (*Return) stmtNode() {}

// Break exits the nearest enclosing While.
type Break struct{}

func (*Break) stmtNode() {}

// Continue re-evaluates the nearest enclosing While's condition.
type Continue struct{}

func (*Continue) stmtNode() {}

// Param is one formal parameter: its declared type and optional default.
type Param struct {
	Name    string
	Type    string
	Default Expression
}

// Params is an ordered parameter list: Order preserves declaration order
// (the spec requires this so that positional arguments interact correctly
// with named defaults), Entries holds the full Param by name.
type Params struct {
	Order   []string
	Entries map[string]Param
}

// NewParams creates an empty, ready-to-append Params.
func NewParams() *Params {
	return &Params{Entries: make(map[string]Param)}
}

// Add appends a parameter, preserving declaration order. Returns false if
// name is already present (caller is responsible for raising the syntax
// error with the right line number).
func (p *Params) Add(param Param) bool {
	if _, exists := p.Entries[param.Name]; exists {
		return false
	}
	p.Order = append(p.Order, param.Name)
	p.Entries[param.Name] = param
	return true
}

// Len reports the number of declared parameters.
func (p *Params) Len() int {
	return len(p.Order)
}

// NonDefaulted counts parameters with no default expression — the
// minimum number of arguments a call must supply.
func (p *Params) NonDefaulted() int {
	n := 0
	for _, name := range p.Order {
		if p.Entries[name].Default == nil {
			n++
		}
	}
	return n
}

// FuncDef declares a function; it may only appear at module level (no
// If/While/Par ancestor).
type FuncDef struct {
	Name       string
	ReturnType string
	Params     *Params
	Body       []Statement
}

func (*FuncDef) stmtNode() {}

// If is a conditional with an optional else block.
type If struct {
	Cond Expression
	Body []Statement
	Else []Statement
}

func (*If) stmtNode() {}

// While is a condition-first loop.
type While struct {
	Cond Expression
	Body []Statement
}

func (*While) stmtNode() {}

// Par spawns one OS thread per immediate statement in Body, each of which
// must be a Call (enforced by semantic), and joins them all before the
// statement completes.
type Par struct {
	Body []Statement
}

func (*Par) stmtNode() {}

// Seq is serial execution made explicit; it performs no action of its own.
type Seq struct {
	Body []Statement
}

func (*Seq) stmtNode() {}

// CChannel opens a blocking TCP connection to (Host, Port) under Name.
type CChannel struct {
	Name string
	Host Expression
	Port Expression
}

func (*CChannel) stmtNode() {}

// SChannel binds and listens on (Host, Port) under Name, dispatching each
// request to FuncName (which must take one STRING and return STRING).
type SChannel struct {
	Name        string
	Host        Expression
	Port        Expression
	FuncName    string
	Description Expression
}

func (*SChannel) stmtNode() {}

// NoOp performs no action; reserved for grammar positions that can be
// syntactically empty.
type NoOp struct{}

func (*NoOp) stmtNode() {}

// Assert checks Cond at runtime, failing with Msg (if present) otherwise.
type Assert struct {
	Cond Expression
	Msg  Expression
}

func (*Assert) stmtNode() {}

// ---- Expressions ----

// Constant is a literal NUMBER, STRING, or BOOL.
type Constant struct {
	exprBase
}

// NewConstant builds a Constant with the given type tag and token.
func NewConstant(typeTag string, tok lexer.Token) *Constant {
	return &Constant{exprBase{TypeTag: typeTag, Token: tok}}
}

// ID is an identifier reference or declaration site.
type ID struct {
	exprBase
	Decl bool
}

// NewID builds an ID expression.
func NewID(typeTag string, tok lexer.Token, decl bool) *ID {
	return &ID{exprBase: exprBase{TypeTag: typeTag, Token: tok}, Decl: decl}
}

// Name is the identifier's text.
func (id *ID) Name() string { return id.Token.Value }

// Access is `id[index]`, valid only when id is STRING-typed.
type Access struct {
	exprBase
	ID    *ID
	Index Expression
}

// NewAccess builds an Access expression.
func NewAccess(typeTag string, tok lexer.Token, id *ID, index Expression) *Access {
	return &Access{exprBase: exprBase{TypeTag: typeTag, Token: tok}, ID: id, Index: index}
}

// Logical is `left && right` or `left || right`.
type Logical struct {
	exprBase
	Left, Right Expression
}

// NewLogical builds a Logical expression; Token.Value is "&&" or "||".
func NewLogical(tok lexer.Token, left, right Expression) *Logical {
	return &Logical{exprBase: exprBase{TypeTag: "BOOL", Token: tok}, Left: left, Right: right}
}

// Relational is a comparison (==, !=, <, >, <=, >=), always typed BOOL.
type Relational struct {
	exprBase
	Left, Right Expression
}

// NewRelational builds a Relational expression.
func NewRelational(tok lexer.Token, left, right Expression) *Relational {
	return &Relational{exprBase: exprBase{TypeTag: "BOOL", Token: tok}, Left: left, Right: right}
}

// Arithmetic is +, -, *, /, or %; its type equals the left operand's.
type Arithmetic struct {
	exprBase
	Left, Right Expression
}

// NewArithmetic builds an Arithmetic expression, typed after the left operand.
func NewArithmetic(tok lexer.Token, left, right Expression) *Arithmetic {
	return &Arithmetic{exprBase: exprBase{TypeTag: left.Type(), Token: tok}, Left: left, Right: right}
}

// Unary is `!expr` or `-expr`; its type equals the operand's.
type Unary struct {
	exprBase
	Expr Expression
}

// NewUnary builds a Unary expression, typed after its operand.
func NewUnary(tok lexer.Token, expr Expression) *Unary {
	return &Unary{exprBase: exprBase{TypeTag: expr.Type(), Token: tok}, Expr: expr}
}

// Call is a function or method invocation. Callee is non-nil for a plain
// function call (`f(x)`); MethodOp carries the accumulated `.name` suffix
// for channel method calls (`conn.send(x)`, `conn.close()`), where the
// channel name itself is Token.Value.
type Call struct {
	exprBase
	Callee    *ID
	Args      []Expression
	MethodOp  string
}

// NewCall builds a Call expression.
func NewCall(typeTag string, tok lexer.Token, callee *ID, args []Expression, methodOp string) *Call {
	return &Call{exprBase: exprBase{TypeTag: typeTag, Token: tok}, Callee: callee, Args: args, MethodOp: methodOp}
}

// Cast is an explicit type conversion node. The parser does not build Cast
// nodes; to_number / to_string / to_bool are parsed as ordinary Calls.
type Cast struct {
	exprBase
	Expr   Expression
	Target string
}

// NewCast builds a Cast expression.
func NewCast(tok lexer.Token, expr Expression, target string) *Cast {
	return &Cast{exprBase: exprBase{TypeTag: target, Token: tok}, Expr: expr, Target: target}
}
