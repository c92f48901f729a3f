// Package symbols holds the two state machines the typer needs beyond
// the expression recursion itself: the module-wide Type Table and the
// function-local Scope stack plus ambient Context. They are split into
// two types because they have different lifetimes: the Type Table is
// built once per module and read-only during typing, while Scope
// frames are pushed and popped around every function/constructor body.
package symbols

import (
	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/diagnostics"
	"github.com/velalang/velac/internal/token"
	"github.com/velalang/velac/internal/typesystem"
)

// TypeTable maps a fully-qualified type path to its untyped
// declaration. It is populated once, before any member body is typed
// (the "index phase"), and is read-only thereafter.
type TypeTable struct {
	defs map[string]*ast.TypeDef
}

// NewTypeTable creates an empty Type Table.
func NewTypeTable() *TypeTable {
	return &TypeTable{defs: make(map[string]*ast.TypeDef)}
}

// Index inserts one top-level type declaration. A path already present
// is a duplicate declaration: the first declaration is kept and a
// DuplicateTypePath diagnostic is returned rather than silently
// overwritten.
func (t *TypeTable) Index(def *ast.TypeDef) *diagnostics.Error {
	key := def.Path.String()
	if _, exists := t.defs[key]; exists {
		return diagnostics.New(diagnostics.DuplicateTypePath, def.Pos.Min, key)
	}
	t.defs[key] = def
	return nil
}

// Get looks up a type declaration by path.
func (t *TypeTable) Get(p typesystem.Path) (*ast.TypeDef, bool) {
	d, ok := t.defs[p.String()]
	return d, ok
}

// MustGet is Get plus an UnresolvedPath diagnostic at pos on miss.
func (t *TypeTable) MustGet(p typesystem.Path, pos token.Position) (*ast.TypeDef, *diagnostics.Error) {
	d, ok := t.Get(p)
	if !ok {
		return nil, diagnostics.New(diagnostics.UnresolvedPath, pos, p.String())
	}
	return d, nil
}

// ClassInfo adapts the Type Table into the typesystem.ClassInfo
// callback CanCast needs: a class's direct superclass and implemented
// interfaces, looked up by path.
func (t *TypeTable) ClassInfo(p typesystem.Path) (extends *typesystem.Path, implements []typesystem.Path, ok bool) {
	def, found := t.Get(p)
	if !found {
		return nil, nil, false
	}
	ck, isClass := def.Kind.(ast.ClassKind)
	if !isClass {
		return nil, nil, true
	}
	return ck.Extends, ck.Implements, true
}

// All returns every indexed path, for export (internal/export).
func (t *TypeTable) All() map[string]*ast.TypeDef {
	return t.defs
}
