package symbols_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/diagnostics"
	"github.com/velalang/velac/internal/symbols"
	"github.com/velalang/velac/internal/typesystem"
)

func TestScopeShadowing(t *testing.T) {
	s := symbols.NewScope()
	s.Push()
	s.Define("x", ast.Variable, typesystem.TInt)

	s.Push()
	s.Define("x", ast.Constant, typesystem.TString)
	b, ok := s.Find("x")
	assert.True(t, ok)
	assert.Equal(t, typesystem.TString, b.Ty)
	assert.Equal(t, ast.Constant, b.Variability)
	s.Pop()

	b, ok = s.Find("x")
	assert.True(t, ok)
	assert.Equal(t, typesystem.TInt, b.Ty, "popping the inner frame restores the outer binding")
	s.Pop()

	_, ok = s.Find("x")
	assert.False(t, ok, "popping the last frame removes every binding")
}

func TestLoopDepthTracksNesting(t *testing.T) {
	ctx := &symbols.Context{}
	assert.False(t, ctx.InLoop())
	ctx.EnterLoop()
	assert.True(t, ctx.InLoop())
	ctx.EnterLoop()
	ctx.ExitLoop()
	assert.True(t, ctx.InLoop(), "still one loop deep")
	ctx.ExitLoop()
	assert.False(t, ctx.InLoop())
}

func TestTypeTableDuplicatePath(t *testing.T) {
	tbl := symbols.NewTypeTable()
	def := &ast.TypeDef{Path: typesystem.NewPath("Widget"), Kind: ast.StructKind{}}
	assert.Nil(t, tbl.Index(def))

	dup := &ast.TypeDef{Path: typesystem.NewPath("Widget"), Kind: ast.StructKind{}}
	err := tbl.Index(dup)
	if assert.NotNil(t, err) {
		assert.Equal(t, diagnostics.DuplicateTypePath, err.Code)
	}

	got, ok := tbl.Get(typesystem.NewPath("Widget"))
	assert.True(t, ok)
	assert.Same(t, def, got, "the first declaration wins, not the duplicate")
}

func TestTypeTableClassInfo(t *testing.T) {
	tbl := symbols.NewTypeTable()
	base := typesystem.NewPath("Base")
	iface := typesystem.NewPath("Iface")
	leaf := &ast.TypeDef{
		Path: typesystem.NewPath("Leaf"),
		Kind: ast.ClassKind{Extends: &base, Implements: []typesystem.Path{iface}},
	}
	assert.Nil(t, tbl.Index(leaf))

	extends, implements, ok := tbl.ClassInfo(typesystem.NewPath("Leaf"))
	assert.True(t, ok)
	if assert.NotNil(t, extends) {
		assert.True(t, extends.Equal(base))
	}
	assert.Len(t, implements, 1)

	_, _, ok = tbl.ClassInfo(typesystem.NewPath("Nowhere"))
	assert.False(t, ok)
}
