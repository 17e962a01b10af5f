package executor

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/minipar-lang/minipar/mperrors"
	"github.com/minipar-lang/minipar/symtable"
)

// intrinsicFunc is the shape of a built-in function: the executing
// Executor (so print/input can reach out/in) and already-evaluated
// arguments in. send and close are dispatched separately, through
// evalChannelMethod, since their channel name comes from the receiver
// token rather than from an argument — see calls.go.
type intrinsicFunc func(e *Executor, args []symtable.Value) (symtable.Value, error)

var intrinsics = map[string]intrinsicFunc{
	"print":     intrinsicPrint,
	"input":     intrinsicInput,
	"to_number": intrinsicToNumber,
	"to_string": intrinsicToString,
	"to_bool":   intrinsicToBool,
	"sleep":     intrinsicSleep,
	"len":       intrinsicLen,
	"isalpha":   intrinsicIsAlpha,
	"isnum":     intrinsicIsNum,
}

func intrinsicPrint(e *Executor, args []symtable.Value) (symtable.Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	fmt.Fprintln(e.out, strings.Join(parts, " "))
	return symtable.VoidValue(), nil
}

func intrinsicInput(e *Executor, _ []symtable.Value) (symtable.Value, error) {
	line, err := e.in.ReadString('\n')
	if err != nil && line == "" {
		return symtable.Value{}, mperrors.NewRuntime("input: %v", err)
	}
	return symtable.StringValue(strings.TrimRight(line, "\r\n")), nil
}

func toNumber(v symtable.Value) (symtable.Value, error) {
	switch v.Kind {
	case symtable.KindNumber:
		return v, nil
	case symtable.KindBool:
		if v.Bool {
			return symtable.NumberValue(1, true), nil
		}
		return symtable.NumberValue(0, true), nil
	case symtable.KindString:
		if i, err := strconv.ParseInt(v.Str, 10, 64); err == nil {
			return symtable.NumberValue(float64(i), true), nil
		}
		f, err := strconv.ParseFloat(v.Str, 64)
		if err != nil {
			return symtable.Value{}, mperrors.NewRuntime("cannot convert %q to a number", v.Str)
		}
		return symtable.NumberValue(f, false), nil
	default:
		return symtable.Value{}, mperrors.NewRuntime("cannot convert VOID to a number")
	}
}

func intrinsicToNumber(_ *Executor, args []symtable.Value) (symtable.Value, error) {
	return toNumber(args[0])
}

func intrinsicToString(_ *Executor, args []symtable.Value) (symtable.Value, error) {
	return symtable.StringValue(args[0].String()), nil
}

func intrinsicToBool(_ *Executor, args []symtable.Value) (symtable.Value, error) {
	return symtable.BoolValue(args[0].Truthy()), nil
}

func intrinsicSleep(_ *Executor, args []symtable.Value) (symtable.Value, error) {
	time.Sleep(time.Duration(args[0].Num * float64(time.Second)))
	return symtable.VoidValue(), nil
}

func intrinsicLen(_ *Executor, args []symtable.Value) (symtable.Value, error) {
	if args[0].Kind != symtable.KindString {
		return symtable.Value{}, mperrors.NewRuntime("len expects a STRING argument")
	}
	return symtable.NumberValue(float64(len([]rune(args[0].Str))), true), nil
}

func intrinsicIsAlpha(_ *Executor, args []symtable.Value) (symtable.Value, error) {
	s := args[0].Str
	if s == "" {
		return symtable.BoolValue(false), nil
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return symtable.BoolValue(false), nil
		}
	}
	return symtable.BoolValue(true), nil
}

func intrinsicIsNum(_ *Executor, args []symtable.Value) (symtable.Value, error) {
	s := args[0].Str
	if s == "" {
		return symtable.BoolValue(false), nil
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return symtable.BoolValue(false), nil
		}
	}
	return symtable.BoolValue(true), nil
}
