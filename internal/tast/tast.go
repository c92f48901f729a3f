// Package tast is the typed syntax tree: a second tree, parallel to
// package ast, in which every expression node carries its resolved
// type (Ety) alongside its source span. A literal annotated tree,
// rather than a side-table keyed by ast.Node, makes "every TAST
// expression has exactly one Ety" a structurally obvious property
// instead of one that must be maintained by convention.
package tast

import (
	"github.com/google/uuid"

	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/token"
	"github.com/velalang/velac/internal/typesystem"
)

// TypedExpr is the base embedded in every typed expression node.
type TypedExpr struct {
	Pos token.Span
	Ety typesystem.Ty
}

func (t TypedExpr) Span() token.Span    { return t.Pos }
func (t TypedExpr) Type() typesystem.Ty { return t.Ety }

// TExpr is the tagged union of typed expressions.
type TExpr interface {
	Span() token.Span
	Type() typesystem.Ty
	texprNode()
}

type TEThis struct {
	TypedExpr
}

func (TEThis) texprNode() {}

type TESuper struct {
	TypedExpr
}

func (TESuper) texprNode() {}

type TEConst struct {
	TypedExpr
	C ast.Const
}

func (TEConst) texprNode() {}

type TEIdent struct {
	TypedExpr
	Name string
}

func (TEIdent) texprNode() {}

type TEField struct {
	TypedExpr
	Obj  TExpr
	Name string
}

func (TEField) texprNode() {}

type TEArrayIndex struct {
	TypedExpr
	Obj   TExpr
	Index TExpr
}

func (TEArrayIndex) texprNode() {}

type TEBinOp struct {
	TypedExpr
	Op ast.BinOpKind
	A  TExpr
	B  TExpr
}

func (TEBinOp) texprNode() {}

type TEUnOp struct {
	TypedExpr
	Op ast.UnOpKind
	A  TExpr
}

func (TEUnOp) texprNode() {}

type TEBlock struct {
	TypedExpr
	Exprs []TExpr
}

func (TEBlock) texprNode() {}

type TECall struct {
	TypedExpr
	Callee TExpr
	Args   []TExpr
}

func (TECall) texprNode() {}

// TESuperCall is `super(...)` from inside a constructor: it resolves
// against the superclass's constructors and always types to Void.
type TESuperCall struct {
	TypedExpr
	Args []TExpr
}

func (TESuperCall) texprNode() {}

type TEIf struct {
	TypedExpr
	Cond TExpr
	Then TExpr
	Else TExpr // nil when absent
}

func (TEIf) texprNode() {}

type TEWhile struct {
	TypedExpr
	Cond TExpr
	Body TExpr
}

func (TEWhile) texprNode() {}

// TEVar is a local declaration. Ety is always Void; VarType is the
// name's recorded variable type (the init's type, or the declared
// annotation when it matches).
type TEVar struct {
	TypedExpr
	Variability ast.Variability
	Name        string
	VarType     typesystem.Ty
	Init        TExpr
}

func (TEVar) texprNode() {}

type TENew struct {
	TypedExpr
	Path typesystem.Path
	Args []TExpr
}

func (TENew) texprNode() {}

type TETuple struct {
	TypedExpr
	Elems []TExpr
}

func (TETuple) texprNode() {}

type TECast struct {
	TypedExpr
	E  TExpr
	To typesystem.Ty
}

func (TECast) texprNode() {}

type TEBreak struct {
	TypedExpr
}

func (TEBreak) texprNode() {}

type TEContinue struct {
	TypedExpr
}

func (TEContinue) texprNode() {}

type TEReturn struct {
	TypedExpr
	E TExpr // nil when bare `return`
}

func (TEReturn) texprNode() {}

// ---- Typed members ----

// TMember is the tagged union of typed members; Tmty is the member's
// final, fully-resolved type.
type TMember interface {
	MemberSpan() token.Span
	Tmty() typesystem.Ty
	tmemberNode()
}

type tmBase struct {
	Pos  token.Span
	Name string
	Ty   typesystem.Ty
}

func (m tmBase) MemberSpan() token.Span { return m.Pos }
func (m tmBase) Tmty() typesystem.Ty    { return m.Ty }

type TMVar struct {
	tmBase
	Variability ast.Variability
	Init        TExpr // nil when absent
}

func (TMVar) tmemberNode() {}

type TMFunc struct {
	tmBase
	Params []Param
	Ret    typesystem.Ty
	Body   TExpr // nil for extern declarations
}

func (TMFunc) tmemberNode() {}

type TMConstr struct {
	tmBase
	Params []Param
	Body   TExpr
}

func (TMConstr) tmemberNode() {}

// Param mirrors ast.Param with a resolved type.
type Param struct {
	Name string
	Type typesystem.Ty
}

// NewTMVar, NewTMFunc, NewTMConstr build typed members with Tmty set.
func NewTMVar(pos token.Span, name string, variability ast.Variability, ty typesystem.Ty, init TExpr) *TMVar {
	return &TMVar{tmBase: tmBase{Pos: pos, Name: name, Ty: ty}, Variability: variability, Init: init}
}

func NewTMFunc(pos token.Span, name string, ty typesystem.Ty, params []Param, ret typesystem.Ty, body TExpr) *TMFunc {
	return &TMFunc{tmBase: tmBase{Pos: pos, Name: name, Ty: ty}, Params: params, Ret: ret, Body: body}
}

func NewTMConstr(pos token.Span, name string, ty typesystem.Ty, params []Param, body TExpr) *TMConstr {
	return &TMConstr{tmBase: tmBase{Pos: pos, Name: name, Ty: ty}, Params: params, Body: body}
}

// TypeDef is a fully-typed class/struct declaration.
type TypeDef struct {
	Pos     token.Span
	Path    typesystem.Path
	Kind    ast.TypeDefKind
	Mods    ast.ModSet
	Members []TMember
}

// Module is the analyzer's output for one compilation unit. BuildID
// stamps every analysis run for correlation across the CLI's output
// and the gRPC service's response.
type Module struct {
	Package typesystem.Path
	Defs    []*TypeDef
	BuildID uuid.UUID
}
