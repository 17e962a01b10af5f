package executor

import (
	"github.com/minipar-lang/minipar/ast"
	"github.com/minipar-lang/minipar/mperrors"
	"github.com/minipar-lang/minipar/symtable"
)

// evalCall resolves a Call node to either a channel method dispatch
// (MethodOp set, channel name carried on the receiver token), an
// intrinsic, or a user-defined function.
func (e *Executor) evalCall(n *ast.Call) (symtable.Value, error) {
	if n.MethodOp != "" {
		return e.evalChannelMethod(n)
	}

	name := n.Callee.Name()
	if fn, ok := intrinsics[name]; ok {
		args, err := e.evalArgs(n.Args)
		if err != nil {
			return symtable.Value{}, err
		}
		return fn(e, args)
	}

	fn, ok := e.funcs[name]
	if !ok {
		return symtable.Value{}, mperrors.NewRuntime("function %q is not defined", name)
	}
	args, err := e.evalArgs(n.Args)
	if err != nil {
		return symtable.Value{}, err
	}
	return e.invoke(fn, args)
}

func (e *Executor) evalArgs(exprs []ast.Expression) ([]symtable.Value, error) {
	args := make([]symtable.Value, len(exprs))
	for i, expr := range exprs {
		v, err := e.evalExpr(expr)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// invoke pushes a fresh frame over the caller's current frame, binds default
// expressions first and then positional arguments in declaration order
// (positional arguments override same-named defaults — see spec's note
// on parameter insertion order), runs the body, and pops back. An absent
// Return yields VOID.
func (e *Executor) invoke(fn *ast.FuncDef, args []symtable.Value) (symtable.Value, error) {
	caller := e.frame
	e.frame = symtable.NewFrame(caller)
	defer func() { e.frame = caller }()

	for _, name := range fn.Params.Order {
		param := fn.Params.Entries[name]
		if param.Default == nil {
			continue
		}
		val, err := e.evalExpr(param.Default)
		if err != nil {
			return symtable.Value{}, err
		}
		e.frame.Declare(name, val)
	}
	for i, val := range args {
		if i >= len(fn.Params.Order) {
			break
		}
		e.frame.Declare(fn.Params.Order[i], val)
	}

	sig, err := e.execBlock(fn.Body)
	if err != nil {
		return symtable.Value{}, err
	}
	if sig.kind == sigReturn {
		return sig.value, nil
	}
	return symtable.VoidValue(), nil
}

func (e *Executor) evalChannelMethod(n *ast.Call) (symtable.Value, error) {
	connName := n.Tok().Value
	switch n.MethodOp {
	case "send":
		if len(n.Args) != 1 {
			return symtable.Value{}, mperrors.NewRuntime("send expects exactly one argument")
		}
		data, err := e.evalExpr(n.Args[0])
		if err != nil {
			return symtable.Value{}, err
		}
		return e.channelSend(connName, data)
	case "close":
		return symtable.VoidValue(), e.channelClose(connName)
	default:
		return symtable.Value{}, mperrors.NewRuntime("unknown channel method %q", n.MethodOp)
	}
}
