package symtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrame_DeclareAndGet(t *testing.T) {
	root := NewFrame(nil)
	root.Declare("x", NumberValue(10, true))

	v, ok := root.Get("x")
	assert.True(t, ok)
	assert.Equal(t, "10", v.String())
}

func TestFrame_AssignWritesToOwningScope(t *testing.T) {
	root := NewFrame(nil)
	root.Declare("x", NumberValue(1, true))
	child := NewFrame(root)

	child.Assign("x", NumberValue(2, true))

	v, _ := root.Get("x")
	assert.Equal(t, "2", v.String(), "assignment without a local binding updates the enclosing frame")

	owner, _ := child.Lookup("x")
	assert.Same(t, root, owner, "x stays bound in the enclosing frame, not redeclared in the child")
}

func TestFrame_DeepCopyIsIndependent(t *testing.T) {
	root := NewFrame(nil)
	root.Declare("shared", NumberValue(1, true))
	child := NewFrame(root)
	child.Declare("local", StringValue("a"))

	snap := child.DeepCopy()
	child.Assign("shared", NumberValue(99, true))
	child.Declare("local", StringValue("mutated"))

	v, _ := snap.Get("shared")
	assert.Equal(t, "1", v.String(), "snapshot must not see post-copy mutation of the parent frame")

	v, _ = snap.Get("local")
	assert.Equal(t, "a", v.String(), "snapshot must not see post-copy mutation of its own frame")
}

func TestValue_StringFormatting(t *testing.T) {
	assert.Equal(t, "14", NumberValue(14, true).String())
	assert.Equal(t, "3.5", NumberValue(3.5, false).String())
	assert.Equal(t, "true", BoolValue(true).String())
	assert.Equal(t, "hi", StringValue("hi").String())
}
