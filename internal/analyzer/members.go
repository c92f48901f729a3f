package analyzer

import (
	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/diagnostics"
	"github.com/velalang/velac/internal/symbols"
	"github.com/velalang/velac/internal/tast"
	"github.com/velalang/velac/internal/typesystem"
)

// typeMember types one member of a class/struct. ctx already has
// ThisPath and InStatic set by the caller; this resets the per-member
// flags InConstructor/HasReturned/LoopDepth.
func (a *Analyzer) typeMember(owner *ast.TypeDef, m *ast.MemberDef, scope *symbols.Scope, ctx *symbols.Context) (tast.TMember, *diagnostics.Error) {
	ctx.InConstructor = false
	ctx.HasReturned = false
	ctx.LoopDepth = 0

	switch k := m.Kind.(type) {
	case ast.VarMember:
		return a.typeVarMember(m, k, ctx)
	case ast.FuncMember:
		return a.typeFuncMember(m, k, scope, ctx)
	case ast.ConstrMember:
		return a.typeConstrMember(m, k, scope, ctx)
	default:
		return nil, diagnostics.New(diagnostics.UnresolvedFieldType, m.Pos.Min, m.Name)
	}
}

func (a *Analyzer) typeVarMember(m *ast.MemberDef, k ast.VarMember, ctx *symbols.Context) (tast.TMember, *diagnostics.Error) {
	switch {
	case k.TypeAnn != nil && k.Init == nil:
		ty, err := BuildTy(k.TypeAnn)
		if err != nil {
			return nil, err
		}
		if typesystem.Equal(ty, typesystem.TVoid) {
			return nil, diagnostics.New(diagnostics.VoidVar, m.Pos.Min)
		}
		return tast.NewTMVar(m.Pos, m.Name, k.Variability, ty, nil), nil

	case k.Init != nil:
		initScope := symbols.NewScope()
		initScope.Push()
		tinit, err := a.typeExpr(k.Init, initScope, ctx)
		initScope.Pop()
		if err != nil {
			return nil, err
		}
		initTy := tinit.Type()
		if k.TypeAnn != nil {
			annTy, err := BuildTy(k.TypeAnn)
			if err != nil {
				return nil, err
			}
			// A declared field annotation must agree with the
			// initializer's type, the same rule local Var uses.
			if !typesystem.Equal(annTy, initTy) {
				return nil, diagnostics.New(diagnostics.Expected, k.Init.Span().Min, annTy.String(), initTy.String())
			}
		}
		if typesystem.Equal(initTy, typesystem.TVoid) {
			return nil, diagnostics.New(diagnostics.VoidVar, m.Pos.Min)
		}
		return tast.NewTMVar(m.Pos, m.Name, k.Variability, initTy, tinit), nil

	default:
		return nil, diagnostics.New(diagnostics.UnresolvedFieldType, m.Pos.Min, m.Name)
	}
}

func (a *Analyzer) typeFuncMember(m *ast.MemberDef, k ast.FuncMember, scope *symbols.Scope, ctx *symbols.Context) (tast.TMember, *diagnostics.Error) {
	retTy, err := BuildTy(k.Ret)
	if err != nil {
		return nil, err
	}
	paramTys := make([]typesystem.Ty, len(k.Params))
	tparams := make([]tast.Param, len(k.Params))
	for i, p := range k.Params {
		pty, err := BuildTy(p.Type)
		if err != nil {
			return nil, err
		}
		paramTys[i] = pty
		tparams[i] = tast.Param{Name: p.Name, Type: pty}
	}
	conv := typesystem.Normal
	if cc, ok := m.Atts["CallConv"]; ok {
		if s, ok := cc.(*ast.StringConst); ok && s.Value == "vararg" {
			conv = typesystem.VarArgs
		}
	}
	mty := typesystem.TFunc{Params: paramTys, Ret: retTy, Conv: conv}

	if k.Body == nil {
		// extern + static: a declaration without a body.
		return tast.NewTMFunc(m.Pos, m.Name, mty, tparams, retTy, nil), nil
	}

	scope.Push()
	for _, p := range tparams {
		scope.Define(p.Name, ast.Constant, p.Type)
	}
	tbody, err := a.typeExpr(k.Body, scope, ctx)
	scope.Pop()
	if err != nil {
		return nil, err
	}

	if !typesystem.Equal(tbody.Type(), retTy) && !ctx.HasReturned {
		return nil, diagnostics.New(diagnostics.NoReturn, m.Pos.Min, retTy.String())
	}
	return tast.NewTMFunc(m.Pos, m.Name, mty, tparams, retTy, tbody), nil
}

func (a *Analyzer) typeConstrMember(m *ast.MemberDef, k ast.ConstrMember, scope *symbols.Scope, ctx *symbols.Context) (tast.TMember, *diagnostics.Error) {
	paramTys := make([]typesystem.Ty, len(k.Params))
	tparams := make([]tast.Param, len(k.Params))
	for i, p := range k.Params {
		pty, err := BuildTy(p.Type)
		if err != nil {
			return nil, err
		}
		paramTys[i] = pty
		tparams[i] = tast.Param{Name: p.Name, Type: pty}
	}
	mty := typesystem.TFunc{Params: paramTys, Ret: typesystem.TVoid, Conv: typesystem.Normal}

	ctx.InConstructor = true
	scope.Push()
	for _, p := range tparams {
		scope.Define(p.Name, ast.Constant, p.Type)
	}
	tbody, err := a.typeExpr(k.Body, scope, ctx)
	scope.Pop()
	if err != nil {
		return nil, err
	}
	return tast.NewTMConstr(m.Pos, m.Name, mty, tparams, tbody), nil
}

// memberType extracts the (variability, type) of a member for field
// resolution and call matching. ownerPath is the type declaring m,
// used as ThisPath if an initializer needs typing (a field without a
// declared annotation inherits the type of its initializer).
func (a *Analyzer) memberType(ownerPath typesystem.Path, m *ast.MemberDef) (ast.Variability, typesystem.Ty, *diagnostics.Error) {
	switch k := m.Kind.(type) {
	case ast.VarMember:
		if k.TypeAnn != nil {
			ty, err := BuildTy(k.TypeAnn)
			return k.Variability, ty, err
		}
		if k.Init != nil {
			ctx := &symbols.Context{ThisPath: &ownerPath}
			scope := symbols.NewScope()
			scope.Push()
			tinit, err := a.typeExpr(k.Init, scope, ctx)
			scope.Pop()
			if err != nil {
				return k.Variability, nil, err
			}
			return k.Variability, tinit.Type(), nil
		}
		return k.Variability, nil, diagnostics.New(diagnostics.UnresolvedFieldType, m.Pos.Min, m.Name)
	case ast.FuncMember:
		params := make([]typesystem.Ty, len(k.Params))
		for i, p := range k.Params {
			pty, err := BuildTy(p.Type)
			if err != nil {
				return ast.Constant, nil, err
			}
			params[i] = pty
		}
		ret, err := BuildTy(k.Ret)
		if err != nil {
			return ast.Constant, nil, err
		}
		conv := typesystem.Normal
		if cc, ok := m.Atts["CallConv"]; ok {
			if s, ok := cc.(*ast.StringConst); ok && s.Value == "vararg" {
				conv = typesystem.VarArgs
			}
		}
		return ast.Constant, typesystem.TFunc{Params: params, Ret: ret, Conv: conv}, nil
	case ast.ConstrMember:
		params := make([]typesystem.Ty, len(k.Params))
		for i, p := range k.Params {
			pty, err := BuildTy(p.Type)
			if err != nil {
				return ast.Constant, nil, err
			}
			params[i] = pty
		}
		return ast.Constant, typesystem.TFunc{Params: params, Ret: typesystem.TVoid, Conv: typesystem.Normal}, nil
	default:
		return ast.Constant, nil, diagnostics.New(diagnostics.UnresolvedFieldType, m.Pos.Min, m.Name)
	}
}
