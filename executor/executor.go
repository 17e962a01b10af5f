// Package executor implements MiniPar's tree-walking evaluator. State is
// the current runtime frame (symtable.Frame), a function table, a shared
// connection table, and a table of intrinsics. Statement execution
// returns an explicit control-flow signal rather than overloading a
// statement's own result the way the reference interpreter does — see
// signal.go — so that a block only terminates early on a genuine
// Return/Break/Continue, never on an incidental non-void expression.
package executor

import (
	"bufio"
	"io"

	"github.com/minipar-lang/minipar/ast"
	"github.com/minipar-lang/minipar/mperrors"
	"github.com/minipar-lang/minipar/symtable"
)

// Executor holds everything one thread of MiniPar execution needs. A Par
// branch runs on its own Executor with a copied frame, sharing funcs, conns
// and the I/O streams with its parent; see par.go.
type Executor struct {
	frame *symtable.Frame
	funcs map[string]*ast.FuncDef
	conns *Connections

	out io.Writer
	in  *bufio.Reader
}

// New creates a root Executor with an empty frame and function table,
// reading input() from in and writing print() output to out.
func New(out io.Writer, in io.Reader) *Executor {
	return &Executor{
		frame: symtable.NewFrame(nil),
		funcs: make(map[string]*ast.FuncDef),
		conns: newConnections(),
		out:   out,
		in:    bufio.NewReader(in),
	}
}

// Run executes every top-level statement in mod in order, stopping at the
// first runtime error.
func (e *Executor) Run(mod *ast.Module) error {
	_, err := e.execBlock(mod.Stmts)
	return err
}

// execBlock runs stmts in sequence, stopping as soon as one yields a
// non-sigNone signal (an explicit Return/Break/Continue) or an error,
// and propagating that signal to the caller unexamined.
func (e *Executor) execBlock(stmts []ast.Statement) (signal, error) {
	for _, stmt := range stmts {
		sig, err := e.execStmt(stmt)
		if err != nil {
			return signal{}, err
		}
		if sig.kind != sigNone {
			return sig, nil
		}
	}
	return signal{}, nil
}

func (e *Executor) pushFrame() {
	e.frame = symtable.NewFrame(e.frame)
}

func (e *Executor) popFrame() {
	e.frame = e.frame.Parent
}

// execStmt dispatches on the concrete statement type.
func (e *Executor) execStmt(stmt ast.Statement) (signal, error) {
	switch n := stmt.(type) {
	case *ast.Assign:
		return e.execAssign(n)
	case *ast.Return:
		val, err := e.evalExpr(n.Expr)
		if err != nil {
			return signal{}, err
		}
		return signal{kind: sigReturn, value: val}, nil
	case *ast.Break:
		return signal{kind: sigBreak}, nil
	case *ast.Continue:
		return signal{kind: sigContinue}, nil
	case *ast.FuncDef:
		if _, exists := e.funcs[n.Name]; !exists {
			e.funcs[n.Name] = n
		}
		return signal{}, nil
	case *ast.If:
		return e.execIf(n)
	case *ast.While:
		return e.execWhile(n)
	case *ast.Par:
		return e.execPar(n)
	case *ast.Seq:
		// Seq carries no semantics of its own — serial execution is the
		// default outside Par — so its body simply runs in the current
		// scope, same as if the braces were not there.
		return e.execBlock(n.Body)
	case *ast.CChannel:
		return e.execCChannel(n)
	case *ast.SChannel:
		return e.execSChannel(n)
	case *ast.NoOp:
		return signal{}, nil
	case *ast.Assert:
		return e.execAssert(n)
	case ast.Expression:
		_, err := e.evalExpr(n)
		return signal{}, err
	default:
		return signal{}, mperrors.NewRuntime("unhandled statement %T", stmt)
	}
}

// execAssign stores into the innermost frame when the left ID is a
// declaration site or has no existing binding, and into the owning frame
// otherwise — Frame.Assign already implements the latter half of that
// rule, so declaration is the only case handled specially here.
func (e *Executor) execAssign(n *ast.Assign) (signal, error) {
	val, err := e.evalExpr(n.Right)
	if err != nil {
		return signal{}, err
	}
	if n.Left.Decl {
		e.frame.Declare(n.Left.Name(), val)
	} else {
		e.frame.Assign(n.Left.Name(), val)
	}
	return signal{}, nil
}

func (e *Executor) execIf(n *ast.If) (signal, error) {
	cond, err := e.evalExpr(n.Cond)
	if err != nil {
		return signal{}, err
	}
	e.pushFrame()
	defer e.popFrame()
	if cond.Truthy() {
		return e.execBlock(n.Body)
	}
	return e.execBlock(n.Else)
}

func (e *Executor) execWhile(n *ast.While) (signal, error) {
	e.pushFrame()
	defer e.popFrame()
	for {
		cond, err := e.evalExpr(n.Cond)
		if err != nil {
			return signal{}, err
		}
		if !cond.Truthy() {
			return signal{}, nil
		}
		sig, err := e.execBlock(n.Body)
		if err != nil {
			return signal{}, err
		}
		switch sig.kind {
		case sigBreak:
			return signal{}, nil
		case sigReturn:
			return sig, nil
		default:
			// sigNone and sigContinue both fall through to re-evaluate
			// the condition.
		}
	}
}

func (e *Executor) execAssert(n *ast.Assert) (signal, error) {
	cond, err := e.evalExpr(n.Cond)
	if err != nil {
		return signal{}, err
	}
	if cond.Truthy() {
		return signal{}, nil
	}
	msg := "assertion failed"
	if n.Msg != nil {
		m, err := e.evalExpr(n.Msg)
		if err != nil {
			return signal{}, err
		}
		msg = m.String()
	}
	return signal{}, mperrors.NewRuntime(msg)
}
