package executor

import (
	"bytes"
	"strings"
	"testing"

	"github.com/minipar-lang/minipar/ast"
	"github.com/minipar-lang/minipar/lexer"
	"github.com/minipar-lang/minipar/parser"
	"github.com/minipar-lang/minipar/semantic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string) string {
	t.Helper()
	mod, err := parser.New(src).Parse()
	require.NoError(t, err)
	require.NoError(t, semantic.New().Analyze(mod))

	var out bytes.Buffer
	exec := New(&out, strings.NewReader(""))
	require.NoError(t, exec.Run(mod))
	return out.String()
}

func TestExecutor_ArithmeticAndPrint(t *testing.T) {
	assert.Equal(t, "14\n", run(t, `x : number = 2 + 3 * 4 print(x)`))
}

func TestExecutor_Recursion(t *testing.T) {
	src := `func fact(n: number) -> number {
		if (n <= 1) { return 1 }
		return n * fact(n - 1)
	}
	print(fact(5))`
	assert.Equal(t, "120\n", run(t, src))
}

func TestExecutor_LoopWithBreak(t *testing.T) {
	src := `i : number = 0
	while (i < 10) {
		if (i == 3) { break }
		i = i + 1
	}
	print(i)`
	assert.Equal(t, "3\n", run(t, src))
}

func TestExecutor_ShortCircuitSkipsRightOperand(t *testing.T) {
	src := `func bad() -> bool { print("X") return true }
	if (false && bad()) { print("Y") } else { print("Z") }`
	assert.Equal(t, "Z\n", run(t, src))
}

func TestExecutor_ShortCircuitOrSkipsRightOperand(t *testing.T) {
	src := `func bad() -> bool { print("X") return false }
	if (true || bad()) { print("Y") } else { print("Z") }`
	assert.Equal(t, "Y\n", run(t, src))
}

func TestExecutor_EmptyModuleProducesNoOutput(t *testing.T) {
	assert.Equal(t, "", run(t, ``))
}

func TestExecutor_DefaultedParamsAllowZeroArgCall(t *testing.T) {
	src := `func greet(name: string = "world") -> string { return name }
	print(greet())`
	assert.Equal(t, "world\n", run(t, src))
}

func TestExecutor_PositionalArgumentsOverrideDefaults(t *testing.T) {
	src := `func greet(name: string = "world") -> string { return name }
	print(greet("minipar"))`
	assert.Equal(t, "minipar\n", run(t, src))
}

func TestExecutor_StringConcatenationAndAccess(t *testing.T) {
	src := `s : string = "foo" + "bar"
	print(s)
	print(s[3])`
	assert.Equal(t, "foobar\nb\n", run(t, src))
}

func TestExecutor_ParRunsBothBranches(t *testing.T) {
	out := run(t, `par { print("A") print("B") }`)
	assert.Contains(t, out, "A\n")
	assert.Contains(t, out, "B\n")
}

func TestExecutor_ParBranchesDoNotLeakWritesToParent(t *testing.T) {
	src := `x : number = 1
	func bump(v: number) -> void { x = v + 100 }
	par { bump(1) }
	print(x)`
	assert.Equal(t, "1\n", run(t, src))
}

func TestExecutor_ModuloIsFlooredNotTruncated(t *testing.T) {
	assert.Equal(t, "1\n", run(t, `print(-5 % 3)`))
}

func TestExecutor_UndefinedVariableIsRuntimeError(t *testing.T) {
	// The parser rejects reference-before-use for every source program
	// (its symbol table makes this a syntax error), so exercising the
	// executor's own defensive check requires building the AST by hand
	// rather than going through Parse.
	mod := &ast.Module{
		Stmts: []ast.Statement{
			ast.NewID("NUMBER", lexer.Token{Tag: lexer.ID, Value: "ghost"}, false),
		},
	}

	var out bytes.Buffer
	exec := New(&out, strings.NewReader(""))
	err := exec.Run(mod)
	assert.Error(t, err)
}
