// Package typesystem implements Vela's closed type lattice and the
// structural predicates over it: numeric classification, structural
// equality, and castability along the inheritance chain.
package typesystem

import "strings"

// Path is an ordered sequence of package segments plus a terminal name.
// Equality is structural. The empty-package case names a top-level type
// in the default package.
type Path struct {
	Pkg  []string
	Name string
}

// NewPath builds a Path from dot-joined segments, the last of which is
// the terminal name.
func NewPath(segments ...string) Path {
	if len(segments) == 0 {
		return Path{}
	}
	return Path{Pkg: append([]string(nil), segments[:len(segments)-1]...), Name: segments[len(segments)-1]}
}

func (p Path) Equal(o Path) bool {
	if p.Name != o.Name || len(p.Pkg) != len(o.Pkg) {
		return false
	}
	for i := range p.Pkg {
		if p.Pkg[i] != o.Pkg[i] {
			return false
		}
	}
	return true
}

func (p Path) String() string {
	if len(p.Pkg) == 0 {
		return p.Name
	}
	return strings.Join(p.Pkg, ".") + "." + p.Name
}

// Prim enumerates the primitive types.
type Prim int

const (
	Int Prim = iota
	Float
	Bool
	Short
	String
	Void
)

func (p Prim) String() string {
	switch p {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Short:
		return "short"
	case String:
		return "string"
	case Void:
		return "void"
	default:
		return "?prim"
	}
}

// CallConv is the calling convention of a Func type.
type CallConv int

const (
	Normal CallConv = iota
	VarArgs
)

// Ty is the closed tagged union of Vela types: TPrim, TPath, TClass,
// TFunc, TTuple. It is implemented as an interface over value types so
// that a Ty can be compared and copied cheaply and so a type switch in
// the typer is exhaustive over the variants below.
type Ty interface {
	isTy()
	String() string
}

// TPrim is a primitive type.
type TPrim struct{ Kind Prim }

func (TPrim) isTy()            {}
func (t TPrim) String() string { return t.Kind.String() }

// TPath is the type of an instance of a class/struct named by Path.
type TPath struct{ Path Path }

func (TPath) isTy()            {}
func (t TPath) String() string { return t.Path.String() }

// TClass is the type of the class itself: a static handle used to call
// static members or constructors via `new`.
type TClass struct{ Path Path }

func (TClass) isTy()            {}
func (t TClass) String() string { return "class " + t.Path.String() }

// TFunc is a function type.
type TFunc struct {
	Params []Ty
	Ret    Ty
	Conv   CallConv
}

func (TFunc) isTy() {}
func (t TFunc) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, p := range t.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	if t.Conv == VarArgs {
		sb.WriteString(", ...")
	}
	sb.WriteString(") -> ")
	sb.WriteString(t.Ret.String())
	return sb.String()
}

// TTuple is an ordered, fixed-length tuple type.
type TTuple struct{ Elems []Ty }

func (TTuple) isTy() {}
func (t TTuple) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, e := range t.Elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.String())
	}
	sb.WriteString(")")
	return sb.String()
}

// Convenience constructors for the primitive types.
var (
	TInt    = TPrim{Kind: Int}
	TFloat  = TPrim{Kind: Float}
	TBool   = TPrim{Kind: Bool}
	TShort  = TPrim{Kind: Short}
	TString = TPrim{Kind: String}
	TVoid   = TPrim{Kind: Void}
)

// IsNumeric is true for primitive Int, Float and Short, false for
// everything else including Bool.
func IsNumeric(t Ty) bool {
	p, ok := t.(TPrim)
	if !ok {
		return false
	}
	return p.Kind == Int || p.Kind == Float || p.Kind == Short
}

// Equal is structural equality: paths segment-wise, tuples elementwise,
// functions param-wise + return + calling convention.
func Equal(a, b Ty) bool {
	switch x := a.(type) {
	case TPrim:
		y, ok := b.(TPrim)
		return ok && x.Kind == y.Kind
	case TPath:
		y, ok := b.(TPath)
		return ok && x.Path.Equal(y.Path)
	case TClass:
		y, ok := b.(TClass)
		return ok && x.Path.Equal(y.Path)
	case TFunc:
		y, ok := b.(TFunc)
		if !ok || x.Conv != y.Conv || len(x.Params) != len(y.Params) {
			return false
		}
		for i := range x.Params {
			if !Equal(x.Params[i], y.Params[i]) {
				return false
			}
		}
		return Equal(x.Ret, y.Ret)
	case TTuple:
		y, ok := b.(TTuple)
		if !ok || len(x.Elems) != len(y.Elems) {
			return false
		}
		for i := range x.Elems {
			if !Equal(x.Elems[i], y.Elems[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
