package executor

import (
	"math"
	"strconv"
	"strings"

	"github.com/minipar-lang/minipar/ast"
	"github.com/minipar-lang/minipar/mperrors"
	"github.com/minipar-lang/minipar/symtable"
)

// evalExpr type-switches over the expression node kinds and produces a
// runtime Value, or the first runtime error encountered underneath it.
func (e *Executor) evalExpr(expr ast.Expression) (symtable.Value, error) {
	switch n := expr.(type) {
	case *ast.Constant:
		return e.evalConstant(n)
	case *ast.ID:
		v, ok := e.frame.Get(n.Name())
		if !ok {
			return symtable.Value{}, mperrors.NewRuntime("variable %q is not defined", n.Name())
		}
		return v, nil
	case *ast.Access:
		return e.evalAccess(n)
	case *ast.Logical:
		return e.evalLogical(n)
	case *ast.Relational:
		return e.evalRelational(n)
	case *ast.Arithmetic:
		return e.evalArithmetic(n)
	case *ast.Unary:
		return e.evalUnary(n)
	case *ast.Call:
		return e.evalCall(n)
	case *ast.Cast:
		return e.evalCast(n)
	default:
		return symtable.Value{}, mperrors.NewRuntime("unhandled expression %T", expr)
	}
}

func (e *Executor) evalConstant(n *ast.Constant) (symtable.Value, error) {
	switch n.Type() {
	case "NUMBER":
		text := n.Tok().Value
		if !strings.Contains(text, ".") {
			i, err := strconv.ParseInt(text, 10, 64)
			if err != nil {
				return symtable.Value{}, mperrors.NewRuntime("malformed number literal %q", text)
			}
			return symtable.NumberValue(float64(i), true), nil
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return symtable.Value{}, mperrors.NewRuntime("malformed number literal %q", text)
		}
		return symtable.NumberValue(f, false), nil
	case "STRING":
		return symtable.StringValue(n.Tok().Value), nil
	case "BOOL":
		return symtable.BoolValue(n.Tok().Value == "true"), nil
	default:
		return symtable.Value{}, mperrors.NewRuntime("constant of unknown type %q", n.Type())
	}
}

func (e *Executor) evalAccess(n *ast.Access) (symtable.Value, error) {
	idx, err := e.evalExpr(n.Index)
	if err != nil {
		return symtable.Value{}, err
	}
	container, ok := e.frame.Get(n.ID.Name())
	if !ok {
		return symtable.Value{}, mperrors.NewRuntime("variable %q is not defined", n.ID.Name())
	}
	runes := []rune(container.Str)
	i := int(idx.Num)
	if i < 0 || i >= len(runes) {
		return symtable.Value{}, mperrors.NewRuntime("index %d out of range for %q", i, n.ID.Name())
	}
	return symtable.StringValue(string(runes[i])), nil
}

// evalLogical implements true short-circuit evaluation: the reference
// executor evaluates the right operand of "||" unconditionally, which
// this deliberately does not reproduce (see the spec's testable
// short-circuit property).
func (e *Executor) evalLogical(n *ast.Logical) (symtable.Value, error) {
	left, err := e.evalExpr(n.Left)
	if err != nil {
		return symtable.Value{}, err
	}
	switch n.Tok().Value {
	case "&&":
		if !left.Truthy() {
			return left, nil
		}
		return e.evalExpr(n.Right)
	case "||":
		if left.Truthy() {
			return left, nil
		}
		return e.evalExpr(n.Right)
	default:
		return symtable.Value{}, mperrors.NewRuntime("unknown logical operator %q", n.Tok().Value)
	}
}

func (e *Executor) evalRelational(n *ast.Relational) (symtable.Value, error) {
	left, err := e.evalExpr(n.Left)
	if err != nil {
		return symtable.Value{}, err
	}
	right, err := e.evalExpr(n.Right)
	if err != nil {
		return symtable.Value{}, err
	}

	switch n.Tok().Value {
	case "==":
		return symtable.BoolValue(valuesEqual(left, right)), nil
	case "!=":
		return symtable.BoolValue(!valuesEqual(left, right)), nil
	case "<":
		return symtable.BoolValue(left.Num < right.Num), nil
	case ">":
		return symtable.BoolValue(left.Num > right.Num), nil
	case "<=":
		return symtable.BoolValue(left.Num <= right.Num), nil
	case ">=":
		return symtable.BoolValue(left.Num >= right.Num), nil
	default:
		return symtable.Value{}, mperrors.NewRuntime("unknown relational operator %q", n.Tok().Value)
	}
}

func valuesEqual(a, b symtable.Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case symtable.KindNumber:
		return a.Num == b.Num
	case symtable.KindString:
		return a.Str == b.Str
	case symtable.KindBool:
		return a.Bool == b.Bool
	default:
		return true
	}
}

func (e *Executor) evalArithmetic(n *ast.Arithmetic) (symtable.Value, error) {
	left, err := e.evalExpr(n.Left)
	if err != nil {
		return symtable.Value{}, err
	}
	right, err := e.evalExpr(n.Right)
	if err != nil {
		return symtable.Value{}, err
	}

	if n.Tok().Value == "+" && left.Kind == symtable.KindString {
		return symtable.StringValue(left.Str + right.Str), nil
	}

	isInt := left.IsInt && right.IsInt
	switch n.Tok().Value {
	case "+":
		return symtable.NumberValue(left.Num+right.Num, isInt), nil
	case "-":
		return symtable.NumberValue(left.Num-right.Num, isInt), nil
	case "*":
		return symtable.NumberValue(left.Num*right.Num, isInt), nil
	case "/":
		if right.Num == 0 {
			return symtable.Value{}, mperrors.NewRuntime("division by zero")
		}
		return symtable.NumberValue(left.Num/right.Num, false), nil
	case "%":
		if right.Num == 0 {
			return symtable.Value{}, mperrors.NewRuntime("modulo by zero")
		}
		// Floored modulo (sign follows the divisor), matching the reference
		// executor's Python "%" rather than C-style math.Mod truncation.
		mod := left.Num - right.Num*math.Floor(left.Num/right.Num)
		return symtable.NumberValue(mod, isInt), nil
	default:
		return symtable.Value{}, mperrors.NewRuntime("unknown arithmetic operator %q", n.Tok().Value)
	}
}

func (e *Executor) evalUnary(n *ast.Unary) (symtable.Value, error) {
	val, err := e.evalExpr(n.Expr)
	if err != nil {
		return symtable.Value{}, err
	}
	switch n.Tok().Value {
	case "!":
		return symtable.BoolValue(!val.Bool), nil
	case "-":
		return symtable.NumberValue(-val.Num, val.IsInt), nil
	default:
		return symtable.Value{}, mperrors.NewRuntime("unknown unary operator %q", n.Tok().Value)
	}
}

func (e *Executor) evalCast(n *ast.Cast) (symtable.Value, error) {
	val, err := e.evalExpr(n.Expr)
	if err != nil {
		return symtable.Value{}, err
	}
	return castValue(val, n.Target)
}

func castValue(val symtable.Value, target string) (symtable.Value, error) {
	switch target {
	case "NUMBER":
		return toNumber(val)
	case "STRING":
		return symtable.StringValue(val.String()), nil
	case "BOOL":
		return symtable.BoolValue(val.Truthy()), nil
	default:
		return symtable.Value{}, mperrors.NewRuntime("cannot cast to %q", target)
	}
}
