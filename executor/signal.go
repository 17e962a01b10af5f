package executor

import "github.com/minipar-lang/minipar/symtable"

// signalKind distinguishes the reasons a statement or block can unwind
// control flow, per the spec's redesigned block-evaluation result sum:
// { Value, Return(v), Break, Continue }. sigNone is the ordinary case —
// execution simply falls through to the next statement.
type signalKind int

const (
	sigNone signalKind = iota
	sigReturn
	sigBreak
	sigContinue
)

// signal is the result of executing a statement or a block. Only
// sigReturn carries a payload; Break and Continue are pure control
// transfers.
type signal struct {
	kind  signalKind
	value symtable.Value
}
