package semantic

import (
	"testing"

	"github.com/minipar-lang/minipar/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyze(t *testing.T, src string) error {
	t.Helper()
	mod, err := parser.New(src).Parse()
	require.NoError(t, err, "fixture must parse cleanly")
	return New().Analyze(mod)
}

func TestSemantic_WellTypedProgramPasses(t *testing.T) {
	err := analyze(t, `x : number = 2 + 3 * 4 print(x)`)
	assert.NoError(t, err)
}

func TestSemantic_RecursionAndReturnTypeMatch(t *testing.T) {
	src := `func fact(n: number) -> number {
		if (n <= 1) { return 1 }
		return n * fact(n - 1)
	}
	print(fact(5))`
	assert.NoError(t, analyze(t, src))
}

func TestSemantic_ReturnAtModuleScopeIsError(t *testing.T) {
	mod, err := parser.New(`return 1`).Parse()
	require.NoError(t, err)
	err = New().Analyze(mod)
	assert.Error(t, err)
}

func TestSemantic_BreakOutsideLoopIsError(t *testing.T) {
	mod, err := parser.New(`if (true) { break }`).Parse()
	require.NoError(t, err)
	assert.Error(t, New().Analyze(mod))
}

func TestSemantic_AssignTypeMismatchIsError(t *testing.T) {
	src := `x : number = 1
	x = "oops"`
	mod, err := parser.New(src).Parse()
	require.NoError(t, err)
	assert.Error(t, New().Analyze(mod))
}

func TestSemantic_ShortCircuitOperandsMustBeBool(t *testing.T) {
	assert.Error(t, analyze(t, `x : bool = (1 && true)`))
}

func TestSemantic_ParBodyMustBeCallsOnly(t *testing.T) {
	// the parser accepts any statement inside a par block, so enforcing
	// call-only bodies is the analyzer's job; here we confirm a call-only
	// body passes.
	assert.NoError(t, analyze(t, `par { print("A") print("B") }`))
}

func TestSemantic_SChannelRequiresSingleStringParamAndStringReturn(t *testing.T) {
	good := `func echo(s: string) -> string { return s }
	s_channel srv { echo, "127.0.0.1", 9000, "ready" }`
	assert.NoError(t, analyze(t, good))

	bad := `func echo(n: number) -> string { return to_string(n) }
	s_channel srv { echo, "127.0.0.1", 9000, "ready" }`
	assert.Error(t, analyze(t, bad))
}

func TestSemantic_DefaultedParamsAllowZeroArgCall(t *testing.T) {
	src := `func greet(name: string = "world") -> string { return name }
	print(greet())`
	assert.NoError(t, analyze(t, src))
}

func TestSemantic_FuncDefInsideIfIsError(t *testing.T) {
	mod, err := parser.New(`if (true) { func f() -> void { } }`).Parse()
	require.NoError(t, err)
	assert.Error(t, New().Analyze(mod))
}

func TestSemantic_EmptyModulePasses(t *testing.T) {
	assert.NoError(t, analyze(t, ``))
}

func TestSemantic_IndexAccessOnStringPasses(t *testing.T) {
	assert.NoError(t, analyze(t, `s : string = "hello" print(s[0])`))
}

func TestSemantic_IndexAccessOnNumberIsError(t *testing.T) {
	err := analyze(t, `n : number = 5 print(n[0])`)
	assert.Error(t, err)
}
