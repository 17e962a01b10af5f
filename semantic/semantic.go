// Package semantic implements MiniPar's semantic analyzer: a tree walker
// over the parser's AST that enforces the language's type rules and its
// context rules (where return/break/continue/FuncDef/Par may legally
// appear). It rewrites nothing — every visit either asserts a property
// holds or raises a *mperrors.Semantic and aborts the pass.
package semantic

import (
	"github.com/minipar-lang/minipar/ast"
	"github.com/minipar-lang/minipar/mperrors"
	"github.com/minipar-lang/minipar/parser"
)

// ctxKind tags an entry on the analyzer's ancestor stack. Only the
// ancestor kinds that a context rule actually asks about are tracked.
type ctxKind int

const (
	ctxFunc ctxKind = iota
	ctxWhile
	ctxIf
	ctxPar
)

// Analyzer walks a Module once, maintaining an explicit stack of
// enclosing construct kinds and a name→FuncDef table built up as
// FuncDef nodes are visited, exactly as the reference analyzer does.
type Analyzer struct {
	ctx         []ctxKind
	funcs       map[string]*ast.FuncDef
	currentFunc *ast.FuncDef
}

// New creates an empty Analyzer.
func New() *Analyzer {
	return &Analyzer{funcs: make(map[string]*ast.FuncDef)}
}

// Analyze runs the full pass over mod, returning the first violation
// found, or nil if the module is well-formed.
func (a *Analyzer) Analyze(mod *ast.Module) error {
	for _, stmt := range mod.Stmts {
		if err := a.visitStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) push(k ctxKind) { a.ctx = append(a.ctx, k) }
func (a *Analyzer) pop()           { a.ctx = a.ctx[:len(a.ctx)-1] }

func (a *Analyzer) hasAncestor(ks ...ctxKind) bool {
	for _, c := range a.ctx {
		for _, k := range ks {
			if c == k {
				return true
			}
		}
	}
	return false
}

func (a *Analyzer) visitBlock(body []ast.Statement) error {
	for _, stmt := range body {
		if err := a.visitStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

// visitStmt dispatches on the concrete statement type. Expression
// statements (a bare Call) are type-checked for their side effects only;
// their resulting type is discarded.
func (a *Analyzer) visitStmt(stmt ast.Statement) error {
	switch n := stmt.(type) {
	case *ast.Assign:
		return a.visitAssign(n)
	case *ast.Return:
		return a.visitReturn(n)
	case *ast.Break:
		if !a.hasAncestor(ctxWhile) {
			return mperrors.NewSemantic("break found outside of a loop")
		}
		return nil
	case *ast.Continue:
		if !a.hasAncestor(ctxWhile) {
			return mperrors.NewSemantic("continue found outside of a loop")
		}
		return nil
	case *ast.FuncDef:
		return a.visitFuncDef(n)
	case *ast.If:
		return a.visitIf(n)
	case *ast.While:
		return a.visitWhile(n)
	case *ast.Par:
		return a.visitPar(n)
	case *ast.Seq:
		return a.visitBlock(n.Body)
	case *ast.CChannel:
		return a.visitCChannel(n)
	case *ast.SChannel:
		return a.visitSChannel(n)
	case *ast.NoOp:
		return nil
	case *ast.Assert:
		return a.visitAssert(n)
	case ast.Expression:
		_, err := a.visitExpr(n)
		return err
	default:
		return mperrors.NewSemantic("unhandled statement node %T", stmt)
	}
}

func (a *Analyzer) visitAssign(n *ast.Assign) error {
	rightType, err := a.visitExpr(n.Right)
	if err != nil {
		return err
	}
	if n.Left.Type() != rightType {
		return mperrors.NewSemantic("variable %q expects %s, got %s", n.Left.Name(), n.Left.Type(), rightType)
	}
	return nil
}

func (a *Analyzer) visitReturn(n *ast.Return) error {
	if !a.hasAncestor(ctxFunc) {
		return mperrors.NewSemantic("return found outside of a function")
	}
	fn := a.enclosingFunc()
	exprType, err := a.visitExpr(n.Expr)
	if err != nil {
		return err
	}
	if exprType != fn.ReturnType {
		return mperrors.NewSemantic("return in %q has type %s, expected %s", fn.Name, exprType, fn.ReturnType)
	}
	return nil
}

func (a *Analyzer) enclosingFunc() *ast.FuncDef {
	return a.currentFunc
}

func (a *Analyzer) visitFuncDef(n *ast.FuncDef) error {
	if a.hasAncestor(ctxIf, ctxWhile, ctxPar) {
		return mperrors.NewSemantic("cannot declare function %q inside a local scope", n.Name)
	}
	if _, exists := a.funcs[n.Name]; !exists {
		a.funcs[n.Name] = n
	}

	for _, name := range n.Params.Order {
		if def := n.Params.Entries[name].Default; def != nil {
			if _, err := a.visitExpr(def); err != nil {
				return err
			}
		}
	}

	prevFunc := a.currentFunc
	a.currentFunc = n
	a.push(ctxFunc)
	err := a.visitBlock(n.Body)
	a.pop()
	a.currentFunc = prevFunc
	return err
}

func (a *Analyzer) visitIf(n *ast.If) error {
	condType, err := a.visitExpr(n.Cond)
	if err != nil {
		return err
	}
	if condType != "BOOL" {
		return mperrors.NewSemantic("expected BOOL, got %s", condType)
	}
	a.push(ctxIf)
	defer a.pop()
	if err := a.visitBlock(n.Body); err != nil {
		return err
	}
	return a.visitBlock(n.Else)
}

func (a *Analyzer) visitWhile(n *ast.While) error {
	condType, err := a.visitExpr(n.Cond)
	if err != nil {
		return err
	}
	if condType != "BOOL" {
		return mperrors.NewSemantic("expected BOOL, got %s", condType)
	}
	a.push(ctxWhile)
	defer a.pop()
	return a.visitBlock(n.Body)
}

func (a *Analyzer) visitPar(n *ast.Par) error {
	for _, stmt := range n.Body {
		if _, ok := stmt.(*ast.Call); !ok {
			return mperrors.NewSemantic("par block may only contain calls")
		}
	}
	a.push(ctxPar)
	defer a.pop()
	return a.visitBlock(n.Body)
}

func (a *Analyzer) visitCChannel(n *ast.CChannel) error {
	hostType, err := a.visitExpr(n.Host)
	if err != nil {
		return err
	}
	if hostType != "STRING" {
		return mperrors.NewSemantic("host in %q must be STRING", n.Name)
	}
	portType, err := a.visitExpr(n.Port)
	if err != nil {
		return err
	}
	if portType != "NUMBER" {
		return mperrors.NewSemantic("port in %q must be NUMBER", n.Name)
	}
	return nil
}

func (a *Analyzer) visitSChannel(n *ast.SChannel) error {
	fn, ok := a.funcs[n.FuncName]
	if !ok {
		return mperrors.NewSemantic("s_channel %q references undeclared function %q", n.Name, n.FuncName)
	}
	if fn.ReturnType != "STRING" {
		return mperrors.NewSemantic("base function of %q must return STRING", n.Name)
	}
	if fn.Params.Len() != 1 || fn.Params.Entries[fn.Params.Order[0]].Type != "STRING" {
		return mperrors.NewSemantic("base function of %q must take exactly one STRING parameter", n.Name)
	}

	descType, err := a.visitExpr(n.Description)
	if err != nil {
		return err
	}
	if descType != "STRING" {
		return mperrors.NewSemantic("description in %q must be STRING", n.Name)
	}

	hostType, err := a.visitExpr(n.Host)
	if err != nil {
		return err
	}
	if hostType != "STRING" {
		return mperrors.NewSemantic("host in %q must be STRING", n.Name)
	}

	portType, err := a.visitExpr(n.Port)
	if err != nil {
		return err
	}
	if portType != "NUMBER" {
		return mperrors.NewSemantic("port in %q must be NUMBER", n.Name)
	}
	return nil
}

func (a *Analyzer) visitAssert(n *ast.Assert) error {
	condType, err := a.visitExpr(n.Cond)
	if err != nil {
		return err
	}
	if condType != "BOOL" {
		return mperrors.NewSemantic("assert condition must be BOOL, got %s", condType)
	}
	if n.Msg != nil {
		if _, err := a.visitExpr(n.Msg); err != nil {
			return err
		}
	}
	return nil
}

// intrinsicReturnType aliases the parser's Intrinsics table so Call
// typing stays in one place.
var intrinsicReturnType = parser.Intrinsics
