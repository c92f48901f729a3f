// Package analyzer is the Expression/Member Typer, the heart of the
// core: a recursive checker over package ast that produces package
// tast, performing member resolution with inheritance walk,
// constructor matching, operator typing, and return/assignability
// verification.
package analyzer

import (
	"github.com/google/uuid"

	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/diagnostics"
	"github.com/velalang/velac/internal/prelude"
	"github.com/velalang/velac/internal/symbols"
	"github.com/velalang/velac/internal/tast"
	"github.com/velalang/velac/internal/typesystem"
)

// Analyzer is a single-threaded, process-local typer: it owns one Type
// Table and creates a fresh Scope/Context for each member it types;
// none of them is shared across goroutines.
type Analyzer struct {
	Types *symbols.TypeTable
}

// New creates an Analyzer with a fresh Type Table, pre-populated with
// the builtin extern declarations of package prelude.
func New() *Analyzer {
	types := symbols.NewTypeTable()
	if err := prelude.Populate(types); err != nil {
		panic("prelude: " + err.Error())
	}
	return &Analyzer{Types: types}
}

// AnalyzeModule types an entire compilation unit: it indexes every
// top-level declaration first (so intra-module references resolve
// regardless of declaration order), then types each definition in
// module-index order. Typing is fail-fast: the first error aborts and
// is returned; there is no partial TAST on error.
func (a *Analyzer) AnalyzeModule(mod *ast.Module) (*tast.Module, *diagnostics.Error) {
	for _, def := range mod.Defs {
		if err := a.Types.Index(def); err != nil {
			return nil, err
		}
	}

	out := &tast.Module{Package: mod.Package, BuildID: uuid.New()}
	for _, def := range mod.Defs {
		td, err := a.typeTypeDef(def)
		if err != nil {
			return nil, err
		}
		out.Defs = append(out.Defs, td)
	}
	return out, nil
}

// typeTypeDef types one class/struct declaration: set this_path, then
// type each member in declaration order.
func (a *Analyzer) typeTypeDef(def *ast.TypeDef) (*tast.TypeDef, *diagnostics.Error) {
	thisPath := typesystem.NewPath(append(append([]string{}, def.Path.Pkg...), def.Path.Name)...)

	out := &tast.TypeDef{
		Pos:  def.Pos,
		Path: def.Path,
		Kind: def.Kind,
		Mods: def.Mods,
	}

	for _, m := range def.Members {
		ctx := &symbols.Context{ThisPath: &thisPath, InStatic: m.Mods.Has(ast.ModStatic)}
		scope := symbols.NewScope()
		tm, err := a.typeMember(def, m, scope, ctx)
		if err != nil {
			return nil, err
		}
		out.Members = append(out.Members, tm)
	}
	return out, nil
}
