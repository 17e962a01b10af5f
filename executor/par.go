package executor

import (
	"sync"

	"github.com/minipar-lang/minipar/ast"
	"github.com/minipar-lang/minipar/mperrors"
)

// execPar spawns one goroutine per immediate statement in the body (the
// semantic analyzer has already guaranteed each is a Call), gives each a
// deep-copied, frozen frame snapshot so branch writes are invisible to
// the parent and to siblings, and joins all of them before returning.
// The connection table and the function table are shared by reference
// across branches.
func (e *Executor) execPar(n *ast.Par) (signal, error) {
	var wg sync.WaitGroup
	errs := make([]error, len(n.Body))

	for i, stmt := range n.Body {
		call, ok := stmt.(*ast.Call)
		if !ok {
			return signal{}, mperrors.NewRuntime("par block may only contain calls")
		}

		branch := &Executor{
			frame: e.frame.DeepCopy(),
			funcs: e.funcs, // FuncDef table is never mutated after parse; safe to share.
			conns: e.conns,
			out:   e.out,
			in:    e.in,
		}

		wg.Add(1)
		go func(idx int, c *ast.Call, ex *Executor) {
			defer wg.Done()
			if _, err := ex.evalExpr(c); err != nil {
				errs[idx] = err
			}
		}(i, call, branch)
	}

	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return signal{}, err
		}
	}
	return signal{}, nil
}
