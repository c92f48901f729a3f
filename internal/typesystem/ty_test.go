package typesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric(TInt))
	assert.True(t, IsNumeric(TFloat))
	assert.True(t, IsNumeric(TShort))
	assert.False(t, IsNumeric(TBool))
	assert.False(t, IsNumeric(TString))
	assert.False(t, IsNumeric(TVoid))
	assert.False(t, IsNumeric(TPath{Path: NewPath("Foo")}))
}

func TestEqualPrimitives(t *testing.T) {
	assert.True(t, Equal(TInt, TInt))
	assert.False(t, Equal(TInt, TFloat))
}

func TestEqualPaths(t *testing.T) {
	a := TPath{Path: NewPath("a", "b", "Widget")}
	b := TPath{Path: NewPath("a", "b", "Widget")}
	c := TPath{Path: NewPath("a", "Widget")}
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
	assert.False(t, Equal(a, TClass{Path: a.Path}))
}

func TestEqualFunc(t *testing.T) {
	f1 := TFunc{Params: []Ty{TInt, TString}, Ret: TBool, Conv: Normal}
	f2 := TFunc{Params: []Ty{TInt, TString}, Ret: TBool, Conv: Normal}
	f3 := TFunc{Params: []Ty{TInt, TString}, Ret: TBool, Conv: VarArgs}
	f4 := TFunc{Params: []Ty{TInt}, Ret: TBool, Conv: Normal}
	assert.True(t, Equal(f1, f2))
	assert.False(t, Equal(f1, f3), "calling convention is part of equality")
	assert.False(t, Equal(f1, f4))
}

func TestEqualTuple(t *testing.T) {
	a := TTuple{Elems: []Ty{TInt, TString}}
	b := TTuple{Elems: []Ty{TInt, TString}}
	c := TTuple{Elems: []Ty{TInt}}
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
}

// classFixture is a tiny ClassInfo backed by a map, enough to exercise
// CanCast's inheritance and interface walk without needing the ast/
// symbols packages.
type classFixture map[string]struct {
	extends    *Path
	implements []Path
}

func (f classFixture) info(p Path) (*Path, []Path, bool) {
	c, ok := f[p.String()]
	if !ok {
		return nil, nil, false
	}
	return c.extends, c.implements, true
}

func TestCanCastNumerics(t *testing.T) {
	ok, cyclic := CanCast(TInt, TFloat, nil)
	assert.True(t, ok)
	assert.False(t, cyclic)
}

func TestCanCastInheritanceChain(t *testing.T) {
	base := NewPath("Base")
	mid := NewPath("Mid")
	leaf := NewPath("Leaf")
	iface := NewPath("Iface")

	fx := classFixture{
		"Leaf": {extends: &mid},
		"Mid":  {extends: &base, implements: []Path{iface}},
		"Base": {},
	}

	ok, cyclic := CanCast(TPath{Path: leaf}, TPath{Path: base}, fx.info)
	assert.True(t, ok, "Leaf should transitively cast to Base")
	assert.False(t, cyclic)

	ok, _ = CanCast(TPath{Path: leaf}, TPath{Path: iface}, fx.info)
	assert.True(t, ok, "Leaf should cast to an interface implemented by an ancestor")

	unrelated := NewPath("Unrelated")
	fx["Unrelated"] = struct {
		extends    *Path
		implements []Path
	}{}
	ok, cyclic = CanCast(TPath{Path: leaf}, TPath{Path: unrelated}, fx.info)
	assert.False(t, ok)
	assert.False(t, cyclic)
}

func TestCanCastCycleIsBounded(t *testing.T) {
	a := NewPath("A")
	b := NewPath("B")
	fx := classFixture{
		"A": {extends: &b},
		"B": {extends: &a},
	}
	target := NewPath("Nowhere")
	ok, cyclic := CanCast(TPath{Path: a}, TPath{Path: target}, fx.info)
	assert.False(t, ok)
	assert.True(t, cyclic, "a cyclic extends chain must be reported, not loop forever")
}
