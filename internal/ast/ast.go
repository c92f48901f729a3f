// Package ast is the untyped syntax tree produced by the parser: every
// expression shape the analyzer must type, plus the declaration shapes
// (TypeDef, MemberDef, Module) it indexes and checks. No node here
// carries a resolved type — that is the TAST's job (package tast).
package ast

import (
	"github.com/velalang/velac/internal/token"
	"github.com/velalang/velac/internal/typesystem"
)

// Node is the base of every AST node; every node knows its source span.
type Node interface {
	Span() token.Span
}

// Variability distinguishes a reassignable binding (Variable, `var`)
// from an immutable one (Constant, `val`).
type Variability int

const (
	Variable Variability = iota
	Constant
)

func (v Variability) String() string {
	if v == Variable {
		return "var"
	}
	return "val"
}

// Type is the untyped, surface-syntax spelling of a type annotation.
// BuildTy (package analyzer) resolves it to a typesystem.Ty.
type Type interface {
	Node
	typeNode()
}

// PrimType is one of the primitive type keywords.
type PrimType struct {
	Pos  token.Span
	Name string // "int" | "float" | "bool" | "short" | "string" | "void"
}

func (t *PrimType) Span() token.Span { return t.Pos }
func (*PrimType) typeNode()          {}

// PathType is a dotted type name, e.g. `a.b.Widget`.
type PathType struct {
	Pos      token.Span
	Segments []string
}

func (t *PathType) Span() token.Span { return t.Pos }
func (*PathType) typeNode()          {}

// TupleType is `(T1, T2, ...)`.
type TupleType struct {
	Pos   token.Span
	Elems []Type
}

func (t *TupleType) Span() token.Span { return t.Pos }
func (*TupleType) typeNode()          {}

// ---- Constants ----

// Const is the tagged union of literal constants.
type Const interface {
	Node
	constNode()
}

type IntConst struct {
	Pos   token.Span
	Value int64
}

func (c *IntConst) Span() token.Span { return c.Pos }
func (*IntConst) constNode()         {}

type FloatConst struct {
	Pos   token.Span
	Value float64
}

func (c *FloatConst) Span() token.Span { return c.Pos }
func (*FloatConst) constNode()         {}

type StringConst struct {
	Pos   token.Span
	Value string
}

func (c *StringConst) Span() token.Span { return c.Pos }
func (*StringConst) constNode()         {}

type BoolConst struct {
	Pos   token.Span
	Value bool
}

func (c *BoolConst) Span() token.Span { return c.Pos }
func (*BoolConst) constNode()         {}

type NullConst struct {
	Pos token.Span
}

func (c *NullConst) Span() token.Span { return c.Pos }
func (*NullConst) constNode()         {}

// ---- Operators ----

// BinOpKind enumerates the recognized binary operators, including the
// assigning ones selected by IsAssign.
type BinOpKind string

const (
	OpAdd       BinOpKind = "+"
	OpSub       BinOpKind = "-"
	OpMul       BinOpKind = "*"
	OpDiv       BinOpKind = "/"
	OpAssign    BinOpKind = "="
	OpEq        BinOpKind = "=="
	OpLt        BinOpKind = "<"
	OpAddAssign BinOpKind = "+="
	OpSubAssign BinOpKind = "-="
	OpMulAssign BinOpKind = "*="
	OpDivAssign BinOpKind = "/="
)

// IsAssign is true for `=` and the compound assignment operators.
func (k BinOpKind) IsAssign() bool {
	switch k {
	case OpAssign, OpAddAssign, OpSubAssign, OpMulAssign, OpDivAssign:
		return true
	default:
		return false
	}
}

// UnOpKind enumerates unary operators.
type UnOpKind string

const (
	OpNeg UnOpKind = "-"
	OpNot UnOpKind = "!"
)

// ---- Expressions ----

// Expr is the tagged union of untyped expressions.
type Expr interface {
	Node
	exprNode()
}

type ThisExpr struct{ Pos token.Span }

func (e *ThisExpr) Span() token.Span { return e.Pos }
func (*ThisExpr) exprNode()          {}

type SuperExpr struct{ Pos token.Span }

func (e *SuperExpr) Span() token.Span { return e.Pos }
func (*SuperExpr) exprNode()          {}

type ConstExpr struct {
	Pos token.Span
	C   Const
}

func (e *ConstExpr) Span() token.Span { return e.Pos }
func (*ConstExpr) exprNode()          {}

type IdentExpr struct {
	Pos  token.Span
	Name string
}

func (e *IdentExpr) Span() token.Span { return e.Pos }
func (*IdentExpr) exprNode()          {}

type FieldExpr struct {
	Pos  token.Span
	Obj  Expr
	Name string
}

func (e *FieldExpr) Span() token.Span { return e.Pos }
func (*FieldExpr) exprNode()          {}

type ArrayIndexExpr struct {
	Pos   token.Span
	Obj   Expr
	Index Expr
}

func (e *ArrayIndexExpr) Span() token.Span { return e.Pos }
func (*ArrayIndexExpr) exprNode()          {}

type BinOpExpr struct {
	Pos token.Span
	Op  BinOpKind
	A   Expr
	B   Expr
}

func (e *BinOpExpr) Span() token.Span { return e.Pos }
func (*BinOpExpr) exprNode()          {}

type UnOpExpr struct {
	Pos token.Span
	Op  UnOpKind
	A   Expr
}

func (e *UnOpExpr) Span() token.Span { return e.Pos }
func (*UnOpExpr) exprNode()          {}

type BlockExpr struct {
	Pos   token.Span
	Exprs []Expr
}

func (e *BlockExpr) Span() token.Span { return e.Pos }
func (*BlockExpr) exprNode()          {}

type CallExpr struct {
	Pos    token.Span
	Callee Expr
	Args   []Expr
}

func (e *CallExpr) Span() token.Span { return e.Pos }
func (*CallExpr) exprNode()          {}

type ParenExpr struct {
	Pos token.Span
	E   Expr
}

func (e *ParenExpr) Span() token.Span { return e.Pos }
func (*ParenExpr) exprNode()          {}

type IfExpr struct {
	Pos  token.Span
	Cond Expr
	Then Expr
	Else Expr // nil when absent
}

func (e *IfExpr) Span() token.Span { return e.Pos }
func (*IfExpr) exprNode()          {}

type WhileExpr struct {
	Pos  token.Span
	Cond Expr
	Body Expr
}

func (e *WhileExpr) Span() token.Span { return e.Pos }
func (*WhileExpr) exprNode()          {}

type VarExpr struct {
	Pos         token.Span
	Variability Variability
	TypeAnn     Type // nil when absent
	Name        string
	Init        Expr
}

func (e *VarExpr) Span() token.Span { return e.Pos }
func (*VarExpr) exprNode()          {}

type NewExpr struct {
	Pos  token.Span
	Path []string
	Args []Expr
}

func (e *NewExpr) Span() token.Span { return e.Pos }
func (*NewExpr) exprNode()          {}

type TupleExpr struct {
	Pos   token.Span
	Elems []Expr
}

func (e *TupleExpr) Span() token.Span { return e.Pos }
func (*TupleExpr) exprNode()          {}

type CastExpr struct {
	Pos token.Span
	E   Expr
	To  Type
}

func (e *CastExpr) Span() token.Span { return e.Pos }
func (*CastExpr) exprNode()          {}

type BreakExpr struct{ Pos token.Span }

func (e *BreakExpr) Span() token.Span { return e.Pos }
func (*BreakExpr) exprNode()          {}

type ContinueExpr struct{ Pos token.Span }

func (e *ContinueExpr) Span() token.Span { return e.Pos }
func (*ContinueExpr) exprNode()          {}

type ReturnExpr struct {
	Pos token.Span
	E   Expr // nil when bare `return`
}

func (e *ReturnExpr) Span() token.Span { return e.Pos }
func (*ReturnExpr) exprNode()          {}

// ---- Members & type definitions ----

// MemberMod is one modifier in a MemberDef's unordered modifier set.
type MemberMod string

const (
	ModStatic  MemberMod = "static"
	ModPublic  MemberMod = "public"
	ModPrivate MemberMod = "private"
	ModExtern  MemberMod = "extern"
)

// ModSet is an unordered set of modifiers.
type ModSet map[MemberMod]bool

func (m ModSet) Has(mod MemberMod) bool { return m[mod] }

// Param is one function/constructor parameter.
type Param struct {
	Pos  token.Span
	Name string
	Type Type
}

// MemberKind is the tagged union of member bodies.
type MemberKind interface {
	memberKindNode()
}

type VarMember struct {
	Variability Variability
	TypeAnn     Type // nil when absent
	Init        Expr // nil when absent
}

func (VarMember) memberKindNode() {}

type FuncMember struct {
	Params []Param
	Ret    Type
	Body   Expr // nil for extern declarations
}

func (FuncMember) memberKindNode() {}

type ConstrMember struct {
	Params []Param
	Body   Expr
}

func (ConstrMember) memberKindNode() {}

// MemberDef is one member (field, method or constructor) of a type
// declaration.
type MemberDef struct {
	Pos  token.Span
	Name string
	Kind MemberKind
	Mods ModSet
	Atts map[string]Const // compile-time attributes, e.g. LinkName, CallConv
}

// TypeDefKind distinguishes a class (with optional extends/implements)
// from a struct.
type TypeDefKind interface {
	typeDefKindNode()
}

type ClassKind struct {
	Extends    *typesystem.Path // nil when absent
	Implements []typesystem.Path
}

func (ClassKind) typeDefKindNode() {}

type StructKind struct{}

func (StructKind) typeDefKindNode() {}

// TypeDef is a top-level class or struct declaration.
type TypeDef struct {
	Pos     token.Span
	Path    typesystem.Path
	Kind    TypeDefKind
	Mods    ModSet
	Members []*MemberDef
}

// Module is the parser's output for one compilation unit: a package
// path, its imports (recorded but not resolved), and its top-level
// type declarations.
type Module struct {
	Package typesystem.Path
	Imports []typesystem.Path
	Defs    []*TypeDef
}
