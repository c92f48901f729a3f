package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/lexer"
	"github.com/velalang/velac/internal/parser"
)

func parseModule(t *testing.T, src string) *ast.Module {
	t.Helper()
	mod, err := parser.New("t.vela", lexer.New("t.vela", src)).ParseModule()
	require.Nil(t, err, "parse error: %v", err)
	return mod
}

// parseBody wraps src as the body of a single function and returns the
// parsed body's expression list.
func parseBody(t *testing.T, src string) []ast.Expr {
	t.Helper()
	mod := parseModule(t, "package demo\nclass C { func f(): void { "+src+" } }\n")
	fn := mod.Defs[0].Members[0].Kind.(ast.FuncMember)
	return fn.Body.(*ast.BlockExpr).Exprs
}

func TestParseModuleHeader(t *testing.T) {
	mod := parseModule(t, `
package a.b.demo
import a.b.other
import c.util

class Widget { }
`)
	assert.Equal(t, "a.b.demo", mod.Package.String())
	require.Len(t, mod.Imports, 2)
	assert.Equal(t, "a.b.other", mod.Imports[0].String())
	assert.Equal(t, "c.util", mod.Imports[1].String())
	require.Len(t, mod.Defs, 1)
	assert.Equal(t, "Widget", mod.Defs[0].Path.Name)
}

func TestParseClassHeads(t *testing.T) {
	mod := parseModule(t, `
package demo

class Derived extends a.Base implements Marker, Other { }

struct Point { }
`)
	require.Len(t, mod.Defs, 2)

	ck, ok := mod.Defs[0].Kind.(ast.ClassKind)
	require.True(t, ok)
	require.NotNil(t, ck.Extends)
	assert.Equal(t, "a.Base", ck.Extends.String())
	require.Len(t, ck.Implements, 2)
	assert.Equal(t, "Marker", ck.Implements[0].String())
	assert.Equal(t, "Other", ck.Implements[1].String())

	_, ok = mod.Defs[1].Kind.(ast.StructKind)
	assert.True(t, ok)
}

func TestParseMembers(t *testing.T) {
	mod := parseModule(t, `
package demo

class Widget {
    private var a: int
    val b = 1

    @LinkName("printf")
    @CallConv("vararg")
    static extern func printf(fmt: string): void

    func pair(x: int, y: string): (int, string) {
        (x, y)
    }

    new(x: int) {
        this.a = x
    }
}
`)
	members := mod.Defs[0].Members
	require.Len(t, members, 5)

	a := members[0]
	assert.True(t, a.Mods.Has(ast.ModPrivate))
	av := a.Kind.(ast.VarMember)
	assert.Equal(t, ast.Variable, av.Variability)
	require.NotNil(t, av.TypeAnn)
	assert.Nil(t, av.Init)

	b := members[1]
	bv := b.Kind.(ast.VarMember)
	assert.Equal(t, ast.Constant, bv.Variability)
	assert.Nil(t, bv.TypeAnn)
	require.NotNil(t, bv.Init)

	pf := members[2]
	assert.True(t, pf.Mods.Has(ast.ModStatic))
	assert.True(t, pf.Mods.Has(ast.ModExtern))
	require.Contains(t, pf.Atts, "LinkName")
	require.Contains(t, pf.Atts, "CallConv")
	assert.Equal(t, "vararg", pf.Atts["CallConv"].(*ast.StringConst).Value)
	pfk := pf.Kind.(ast.FuncMember)
	assert.Nil(t, pfk.Body, "extern declaration has no body")
	require.Len(t, pfk.Params, 1)
	assert.Equal(t, "fmt", pfk.Params[0].Name)

	pair := members[3].Kind.(ast.FuncMember)
	require.Len(t, pair.Params, 2)
	_, ok := pair.Ret.(*ast.TupleType)
	assert.True(t, ok, "return type should parse as a tuple type")

	constr := members[4]
	assert.Equal(t, "new", constr.Name)
	ck := constr.Kind.(ast.ConstrMember)
	require.Len(t, ck.Params, 1)
}

func TestPrecedenceProductOverSum(t *testing.T) {
	exprs := parseBody(t, `1 + 2 * 3`)
	require.Len(t, exprs, 1)

	add, ok := exprs[0].(*ast.BinOpExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, add.Op)

	mul, ok := add.B.(*ast.BinOpExpr)
	require.True(t, ok, "2 * 3 should bind tighter than +")
	assert.Equal(t, ast.OpMul, mul.Op)
}

func TestPrecedenceAssignIsLoosest(t *testing.T) {
	exprs := parseBody(t, `x = 1 + 2`)
	require.Len(t, exprs, 1)

	assign, ok := exprs[0].(*ast.BinOpExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAssign, assign.Op)
	_, ok = assign.A.(*ast.IdentExpr)
	assert.True(t, ok)
	_, ok = assign.B.(*ast.BinOpExpr)
	assert.True(t, ok, "the full sum belongs to the RHS")
}

func TestPostfixChains(t *testing.T) {
	exprs := parseBody(t, `this.db.exec("q")`)
	require.Len(t, exprs, 1)

	call, ok := exprs[0].(*ast.CallExpr)
	require.True(t, ok)
	field, ok := call.Callee.(*ast.FieldExpr)
	require.True(t, ok)
	assert.Equal(t, "exec", field.Name)
	inner, ok := field.Obj.(*ast.FieldExpr)
	require.True(t, ok)
	assert.Equal(t, "db", inner.Name)
	_, ok = inner.Obj.(*ast.ThisExpr)
	assert.True(t, ok)
}

func TestCastBindsTighterThanBinOp(t *testing.T) {
	exprs := parseBody(t, `1 as float + 2.0`)
	require.Len(t, exprs, 1)

	add, ok := exprs[0].(*ast.BinOpExpr)
	require.True(t, ok)
	_, ok = add.A.(*ast.CastExpr)
	assert.True(t, ok, "the cast should apply to 1, not to the sum")
}

func TestParenVsTuple(t *testing.T) {
	exprs := parseBody(t, `(1)`)
	require.Len(t, exprs, 1)
	_, ok := exprs[0].(*ast.ParenExpr)
	assert.True(t, ok, "one parenthesized element is grouping, not a tuple")

	exprs = parseBody(t, `(1, 2)`)
	require.Len(t, exprs, 1)
	tup, ok := exprs[0].(*ast.TupleExpr)
	require.True(t, ok)
	assert.Len(t, tup.Elems, 2)
}

func TestIfElseChain(t *testing.T) {
	exprs := parseBody(t, `if a { 1 } else if b { 2 } else { 3 }`)
	require.Len(t, exprs, 1)

	outer, ok := exprs[0].(*ast.IfExpr)
	require.True(t, ok)
	inner, ok := outer.Else.(*ast.IfExpr)
	require.True(t, ok, "else-if nests as an IfExpr in the else slot")
	assert.NotNil(t, inner.Else)
}

func TestBareAndValuedReturn(t *testing.T) {
	exprs := parseBody(t, `return`)
	require.Len(t, exprs, 1)
	ret := exprs[0].(*ast.ReturnExpr)
	assert.Nil(t, ret.E)

	exprs = parseBody(t, `return 1 + 2`)
	ret = exprs[0].(*ast.ReturnExpr)
	require.NotNil(t, ret.E)
	_, ok := ret.E.(*ast.BinOpExpr)
	assert.True(t, ok)
}

func TestSyntaxErrorHasPosition(t *testing.T) {
	_, err := parser.New("t.vela", lexer.New("t.vela", "package demo\nclass {")).ParseModule()
	require.NotNil(t, err)
	assert.Equal(t, 2, err.Pos.Line)
}
