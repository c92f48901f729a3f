package analyzer

import (
	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/diagnostics"
	"github.com/velalang/velac/internal/typesystem"
)

// BuildTy resolves a surface-syntax Type into a typesystem.Ty. It does
// not require the named path to exist in the Type Table yet — paths
// are validated lazily, the first time they're actually used (field
// access, call, cast), matching the rest of the typer's "resolve on
// demand" style.
func BuildTy(t ast.Type) (typesystem.Ty, *diagnostics.Error) {
	switch n := t.(type) {
	case *ast.PrimType:
		switch n.Name {
		case "int":
			return typesystem.TInt, nil
		case "float":
			return typesystem.TFloat, nil
		case "bool":
			return typesystem.TBool, nil
		case "short":
			return typesystem.TShort, nil
		case "string":
			return typesystem.TString, nil
		case "void":
			return typesystem.TVoid, nil
		default:
			return nil, diagnostics.New(diagnostics.UnresolvedPath, n.Pos.Min, n.Name)
		}
	case *ast.PathType:
		return typesystem.TPath{Path: typesystem.NewPath(n.Segments...)}, nil
	case *ast.TupleType:
		elems := make([]typesystem.Ty, len(n.Elems))
		for i, e := range n.Elems {
			ty, err := BuildTy(e)
			if err != nil {
				return nil, err
			}
			elems[i] = ty
		}
		return typesystem.TTuple{Elems: elems}, nil
	default:
		return nil, diagnostics.New(diagnostics.UnresolvedPath, t.Span().Min, "<type>")
	}
}
