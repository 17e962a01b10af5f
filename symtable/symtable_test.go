package symtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_InsertRejectsRedeclarationInSameScope(t *testing.T) {
	tbl := NewTable(nil)
	assert.True(t, tbl.Insert("x", Symbol{Name: "x", Kind: Number}))
	assert.False(t, tbl.Insert("x", Symbol{Name: "x", Kind: String}))
}

func TestTable_FindSearchesOuterScopes(t *testing.T) {
	outer := NewTable(nil)
	outer.Insert("x", Symbol{Name: "x", Kind: Number})
	inner := NewTable(outer)
	inner.Insert("y", Symbol{Name: "y", Kind: String})

	sym, ok := inner.Find("x")
	assert.True(t, ok)
	assert.Equal(t, Number, sym.Kind)

	_, ok = outer.Find("y")
	assert.False(t, ok, "outer scope must not see inner declarations")
}

func TestTable_ShadowingAcrossScopesIsAllowed(t *testing.T) {
	outer := NewTable(nil)
	outer.Insert("x", Symbol{Name: "x", Kind: Number})
	inner := NewTable(outer)

	assert.True(t, inner.Insert("x", Symbol{Name: "x", Kind: String}),
		"redeclaring in a nested scope shadows, it does not conflict")
}
