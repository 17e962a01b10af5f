package semantic

import (
	"github.com/minipar-lang/minipar/ast"
	"github.com/minipar-lang/minipar/mperrors"
)

// visitExpr type-switches over the expression node kinds, returning the
// node's static type tag or the first violation found underneath it.
func (a *Analyzer) visitExpr(expr ast.Expression) (string, error) {
	switch n := expr.(type) {
	case *ast.Constant:
		return n.Type(), nil
	case *ast.ID:
		return n.Type(), nil
	case *ast.Access:
		if n.ID.Type() != "STRING" {
			return "", mperrors.NewSemantic("index access is only valid on strings")
		}
		if _, err := a.visitExpr(n.Index); err != nil {
			return "", err
		}
		return "STRING", nil
	case *ast.Logical:
		return a.visitLogical(n)
	case *ast.Relational:
		return a.visitRelational(n)
	case *ast.Arithmetic:
		return a.visitArithmetic(n)
	case *ast.Unary:
		return a.visitUnary(n)
	case *ast.Call:
		return a.visitCall(n)
	case *ast.Cast:
		if _, err := a.visitExpr(n.Expr); err != nil {
			return "", err
		}
		return n.Target, nil
	default:
		return "", mperrors.NewSemantic("unhandled expression node %T", expr)
	}
}

func (a *Analyzer) visitLogical(n *ast.Logical) (string, error) {
	leftType, err := a.visitExpr(n.Left)
	if err != nil {
		return "", err
	}
	rightType, err := a.visitExpr(n.Right)
	if err != nil {
		return "", err
	}
	if leftType != "BOOL" || rightType != "BOOL" {
		return "", mperrors.NewSemantic("expected BOOL, got %s and %s in %q", leftType, rightType, n.Tok().Value)
	}
	return "BOOL", nil
}

func (a *Analyzer) visitRelational(n *ast.Relational) (string, error) {
	leftType, err := a.visitExpr(n.Left)
	if err != nil {
		return "", err
	}
	rightType, err := a.visitExpr(n.Right)
	if err != nil {
		return "", err
	}
	op := n.Tok().Value
	if op == "==" || op == "!=" {
		if leftType != rightType {
			return "", mperrors.NewSemantic("expected matching types, got %s and %s in %q", leftType, rightType, op)
		}
	} else if leftType != "NUMBER" || rightType != "NUMBER" {
		return "", mperrors.NewSemantic("expected NUMBER, got %s and %s in %q", leftType, rightType, op)
	}
	return "BOOL", nil
}

func (a *Analyzer) visitArithmetic(n *ast.Arithmetic) (string, error) {
	leftType, err := a.visitExpr(n.Left)
	if err != nil {
		return "", err
	}
	rightType, err := a.visitExpr(n.Right)
	if err != nil {
		return "", err
	}
	if n.Tok().Value == "+" {
		if leftType != rightType {
			return "", mperrors.NewSemantic("expected matching types, got %s and %s in \"+\"", leftType, rightType)
		}
	} else if leftType != "NUMBER" || rightType != "NUMBER" {
		return "", mperrors.NewSemantic("expected NUMBER, got %s and %s in %q", leftType, rightType, n.Tok().Value)
	}
	return leftType, nil
}

func (a *Analyzer) visitUnary(n *ast.Unary) (string, error) {
	exprType, err := a.visitExpr(n.Expr)
	if err != nil {
		return "", err
	}
	switch n.Tok().Tag {
	case "-":
		if exprType != "NUMBER" {
			return "", mperrors.NewSemantic("expected NUMBER, got %s in unary \"-\"", exprType)
		}
	case "!":
		if exprType != "BOOL" {
			return "", mperrors.NewSemantic("expected BOOL, got %s in unary \"!\"", exprType)
		}
	}
	return exprType, nil
}

// visitCall checks every argument, then resolves the callee: a channel
// method dispatch (MethodOp set) or plain intrinsic never requires a
// registered FuncDef; an ordinary call does, and requires at least as
// many arguments as the function has non-defaulted parameters.
func (a *Analyzer) visitCall(n *ast.Call) (string, error) {
	for _, arg := range n.Args {
		if _, err := a.visitExpr(arg); err != nil {
			return "", err
		}
	}

	if n.MethodOp != "" {
		if ret, ok := intrinsicReturnType[n.MethodOp]; ok {
			return ret, nil
		}
		return "", mperrors.NewSemantic("unknown channel method %q", n.MethodOp)
	}

	name := n.Callee.Name()
	fn, ok := a.funcs[name]
	if !ok {
		if ret, ok := intrinsicReturnType[name]; ok {
			return ret, nil
		}
		return "", mperrors.NewSemantic("function %q not declared", name)
	}

	if fn.Params.NonDefaulted() > len(n.Args) {
		return "", mperrors.NewSemantic("expected at least %d arguments, got %d", fn.Params.NonDefaulted(), len(n.Args))
	}
	return fn.ReturnType, nil
}
