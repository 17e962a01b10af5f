package parser

import (
	"testing"

	"github.com/minipar-lang/minipar/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOK(t *testing.T, src string) *ast.Module {
	t.Helper()
	mod, err := New(src).Parse()
	require.NoError(t, err)
	return mod
}

func TestParser_ArithmeticAndPrint(t *testing.T) {
	mod := parseOK(t, `x : number = 2 + 3 * 4 print(x)`)
	require.Len(t, mod.Stmts, 2)

	assign, ok := mod.Stmts[0].(*ast.Assign)
	require.True(t, ok)
	assert.True(t, assign.Left.Decl)
	assert.Equal(t, "NUMBER", assign.Left.Type())

	call, ok := mod.Stmts[1].(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, "print", call.Callee.Name())
	assert.Equal(t, "VOID", call.Type())
}

func TestParser_Recursion(t *testing.T) {
	src := `func fact(n: number) -> number {
		if (n <= 1) { return 1 }
		return n * fact(n - 1)
	}
	print(fact(5))`
	mod := parseOK(t, src)
	require.Len(t, mod.Stmts, 2)

	def, ok := mod.Stmts[0].(*ast.FuncDef)
	require.True(t, ok)
	assert.Equal(t, "fact", def.Name)
	assert.Equal(t, "NUMBER", def.ReturnType)
	assert.Equal(t, 1, def.Params.Len())
}

func TestParser_LoopWithBreak(t *testing.T) {
	src := `i : number = 0
	while (i < 10) {
		if (i == 3) { break }
		i = i + 1
	}
	print(i)`
	mod := parseOK(t, src)
	require.Len(t, mod.Stmts, 3)
	_, ok := mod.Stmts[1].(*ast.While)
	assert.True(t, ok)
}

func TestParser_ParBodyMustBeCalls(t *testing.T) {
	mod := parseOK(t, `par { print("A") print("B") }`)
	par, ok := mod.Stmts[0].(*ast.Par)
	require.True(t, ok)
	require.Len(t, par.Body, 2)
	for _, s := range par.Body {
		_, ok := s.(*ast.Call)
		assert.True(t, ok)
	}
}

func TestParser_ChannelStatements(t *testing.T) {
	src := `func echo(s: string) -> string { return s }
	s_channel srv { echo, "127.0.0.1", 9000, "ready" }
	c_channel cli { "127.0.0.1", 9000 }`
	mod := parseOK(t, src)
	require.Len(t, mod.Stmts, 3)

	sc, ok := mod.Stmts[1].(*ast.SChannel)
	require.True(t, ok)
	assert.Equal(t, "echo", sc.FuncName)

	cc, ok := mod.Stmts[2].(*ast.CChannel)
	require.True(t, ok)
	assert.Equal(t, "cli", cc.Name)
}

func TestParser_UndeclaredIdentifierIsSyntaxError(t *testing.T) {
	_, err := New(`print(y)`).Parse()
	require.Error(t, err)
}

func TestParser_DuplicateDeclarationInSameScopeIsSyntaxError(t *testing.T) {
	_, err := New(`x : number = 1 x : string = "a"`).Parse()
	require.Error(t, err)
}

func TestParser_ShadowingInNestedScopeIsAllowed(t *testing.T) {
	src := `x : number = 1
	if (true) {
		x : string = "a"
		print(x)
	}`
	_, err := New(src).Parse()
	require.NoError(t, err)
}

func TestParser_DefaultedParamsAllowZeroArgCall(t *testing.T) {
	src := `func greet(name: string = "world") -> string { return name }
	print(greet())`
	mod := parseOK(t, src)
	call, ok := mod.Stmts[1].(*ast.Call)
	require.True(t, ok)
	inner := call.Args[0].(*ast.Call)
	assert.Equal(t, "greet", inner.Callee.Name())
	assert.Len(t, inner.Args, 0)
}

func TestParser_MethodCallAccumulatesDotOperator(t *testing.T) {
	src := `c_channel cli { "127.0.0.1", 9000 }
	x : string = cli.send("hi")
	cli.close()`
	mod := parseOK(t, src)
	assign := mod.Stmts[1].(*ast.Assign)
	call := assign.Right.(*ast.Call)
	assert.Equal(t, "send", call.MethodOp)
	assert.Equal(t, "cli", call.Tok().Value)
}

func TestParser_EmptyModuleProducesNoStatements(t *testing.T) {
	mod := parseOK(t, ``)
	assert.Empty(t, mod.Stmts)
}
