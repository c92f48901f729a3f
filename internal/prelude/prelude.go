// Package prelude supplies the builtin extern type declarations that
// every Type Table is pre-indexed with: opaque handle types for the
// uuid, sqlite, grpc and yaml libraries, so Vela source can name and
// pass them around without the language needing first-class syntax
// for any one of them. Each member is `extern` — a declaration without
// a body, resolved by the codegen stage (out of scope here) to the
// matching Go call.
package prelude

import (
	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/diagnostics"
	"github.com/velalang/velac/internal/symbols"
	"github.com/velalang/velac/internal/typesystem"
)

func externFunc(name string, static bool, params []ast.Param, ret ast.Type) *ast.MemberDef {
	mods := ast.ModSet{ast.ModExtern: true}
	if static {
		mods[ast.ModStatic] = true
	}
	return &ast.MemberDef{
		Name: name,
		Mods: mods,
		Kind: ast.FuncMember{Params: params, Ret: ret, Body: nil},
	}
}

func prim(name string) ast.Type { return &ast.PrimType{Name: name} }

func param(name string, ty ast.Type) ast.Param { return ast.Param{Name: name, Type: ty} }

func structDef(name string, members ...*ast.MemberDef) *ast.TypeDef {
	return &ast.TypeDef{
		Path:    typesystem.NewPath(name),
		Kind:    ast.StructKind{},
		Mods:    ast.ModSet{ast.ModPublic: true},
		Members: members,
	}
}

// Defs returns the fixed set of builtin extern TypeDefs. Indexed once
// per Analyzer, ahead of any user module.
func Defs() []*ast.TypeDef {
	uuidPath := &ast.PathType{Segments: []string{"Uuid"}}
	sqlDBPath := &ast.PathType{Segments: []string{"SqlDB"}}
	grpcConnPath := &ast.PathType{Segments: []string{"GrpcConn"}}
	yamlDocPath := &ast.PathType{Segments: []string{"YamlDoc"}}

	uuid := structDef("Uuid",
		externFunc("new_v4", true, nil, uuidPath),
		externFunc("to_string", false, nil, prim("string")),
	)

	sqlDB := structDef("SqlDB",
		externFunc("open", true, []ast.Param{param("path", prim("string"))}, sqlDBPath),
		externFunc("exec", false, []ast.Param{param("query", prim("string"))}, prim("void")),
		externFunc("close", false, nil, prim("void")),
	)

	grpcConn := structDef("GrpcConn",
		externFunc("dial", true, []ast.Param{param("addr", prim("string"))}, grpcConnPath),
		externFunc("close", false, nil, prim("void")),
	)

	yamlDoc := structDef("YamlDoc",
		externFunc("parse", true, []ast.Param{param("text", prim("string"))}, yamlDocPath),
		externFunc("get", false, []ast.Param{param("key", prim("string"))}, prim("string")),
	)

	return []*ast.TypeDef{uuid, sqlDB, grpcConn, yamlDoc}
}

// Populate indexes every prelude TypeDef into tbl. The set is fixed
// and collision-free by construction; an error here would mean this
// package itself declared a duplicate path, a bug, not user input.
func Populate(tbl *symbols.TypeTable) *diagnostics.Error {
	for _, def := range Defs() {
		if err := tbl.Index(def); err != nil {
			return err
		}
	}
	return nil
}
