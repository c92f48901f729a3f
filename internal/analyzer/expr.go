package analyzer

import (
	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/diagnostics"
	"github.com/velalang/velac/internal/symbols"
	"github.com/velalang/velac/internal/tast"
	"github.com/velalang/velac/internal/token"
	"github.com/velalang/velac/internal/typesystem"
)

// findVar is the variable resolution order: scope stack, then member
// lookup on this_path, then class-name synthesis against the Type
// Table.
func (a *Analyzer) findVar(name string, scope *symbols.Scope, ctx *symbols.Context, pos token.Position) (ast.Variability, typesystem.Ty, *diagnostics.Error) {
	if b, ok := scope.Find(name); ok {
		return b.Variability, b.Ty, nil
	}
	if ctx.ThisPath != nil {
		if v, ty, err := a.fieldType(*ctx.ThisPath, name, pos); err == nil {
			return v, ty, nil
		}
	}
	if def, ok := a.Types.Get(typesystem.Path{Name: name}); ok {
		return ast.Constant, typesystem.TClass{Path: def.Path}, nil
	}
	return ast.Constant, nil, diagnostics.New(diagnostics.UnresolvedIdent, pos, name)
}

// typeExpr is the central recursion, type_expr : Expr → TExpr, a case
// analysis over every untyped node shape.
func (a *Analyzer) typeExpr(e ast.Expr, scope *symbols.Scope, ctx *symbols.Context) (tast.TExpr, *diagnostics.Error) {
	switch n := e.(type) {
	case *ast.ThisExpr:
		if ctx.ThisPath == nil {
			return nil, diagnostics.New(diagnostics.UnresolvedThis, n.Pos.Min)
		}
		return tast.TEThis{TypedExpr: tast.TypedExpr{Pos: n.Pos, Ety: typesystem.TPath{Path: *ctx.ThisPath}}}, nil

	case *ast.SuperExpr:
		if ctx.ThisPath == nil {
			return nil, diagnostics.New(diagnostics.UnresolvedSuper, n.Pos.Min)
		}
		def, err := a.Types.MustGet(*ctx.ThisPath, n.Pos.Min)
		if err != nil {
			return nil, err
		}
		ck, ok := def.Kind.(ast.ClassKind)
		if !ok || ck.Extends == nil {
			return nil, diagnostics.New(diagnostics.UnresolvedSuper, n.Pos.Min)
		}
		return tast.TESuper{TypedExpr: tast.TypedExpr{Pos: n.Pos, Ety: typesystem.TPath{Path: *ck.Extends}}}, nil

	case *ast.ConstExpr:
		ty := constType(n.C)
		return tast.TEConst{TypedExpr: tast.TypedExpr{Pos: n.Pos, Ety: ty}, C: n.C}, nil

	case *ast.IdentExpr:
		_, ty, err := a.findVar(n.Name, scope, ctx, n.Pos.Min)
		if err != nil {
			return nil, err
		}
		return tast.TEIdent{TypedExpr: tast.TypedExpr{Pos: n.Pos, Ety: ty}, Name: n.Name}, nil

	case *ast.FieldExpr:
		tobj, err := a.typeExpr(n.Obj, scope, ctx)
		if err != nil {
			return nil, err
		}
		p, ok := pathOf(tobj.Type())
		if !ok {
			return nil, diagnostics.New(diagnostics.CannotField, n.Pos.Min, tobj.Type().String())
		}
		_, ty, ferr := a.fieldType(p, n.Name, n.Pos.Min)
		if ferr != nil {
			return nil, ferr
		}
		return tast.TEField{TypedExpr: tast.TypedExpr{Pos: n.Pos, Ety: ty}, Obj: tobj, Name: n.Name}, nil

	case *ast.ArrayIndexExpr:
		tobj, err := a.typeExpr(n.Obj, scope, ctx)
		if err != nil {
			return nil, err
		}
		tup, ok := tobj.Type().(typesystem.TTuple)
		if !ok {
			return nil, diagnostics.New(diagnostics.CannotIndex, n.Pos.Min)
		}
		idxConst, ok := constantInt(n.Index)
		if !ok || idxConst < 0 || int(idxConst) >= len(tup.Elems) {
			return nil, diagnostics.New(diagnostics.CannotIndex, n.Pos.Min)
		}
		tidx, err := a.typeExpr(n.Index, scope, ctx)
		if err != nil {
			return nil, err
		}
		return tast.TEArrayIndex{TypedExpr: tast.TypedExpr{Pos: n.Pos, Ety: tup.Elems[idxConst]}, Obj: tobj, Index: tidx}, nil

	case *ast.BinOpExpr:
		return a.typeBinOp(n, scope, ctx)

	case *ast.UnOpExpr:
		ta, err := a.typeExpr(n.A, scope, ctx)
		if err != nil {
			return nil, err
		}
		aty := ta.Type()
		switch n.Op {
		case ast.OpNeg:
			if !typesystem.IsNumeric(aty) {
				return nil, diagnostics.New(diagnostics.CannotBinOp, n.Pos.Min, string(n.Op), aty.String(), aty.String())
			}
		case ast.OpNot:
			if !typesystem.Equal(aty, typesystem.TBool) {
				return nil, diagnostics.New(diagnostics.CannotBinOp, n.Pos.Min, string(n.Op), aty.String(), aty.String())
			}
		}
		return tast.TEUnOp{TypedExpr: tast.TypedExpr{Pos: n.Pos, Ety: aty}, Op: n.Op, A: ta}, nil

	case *ast.BlockExpr:
		exprs := make([]tast.TExpr, 0, len(n.Exprs))
		var last typesystem.Ty = typesystem.TVoid
		for _, sub := range n.Exprs {
			te, err := a.typeExpr(sub, scope, ctx)
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, te)
			last = te.Type()
		}
		return tast.TEBlock{TypedExpr: tast.TypedExpr{Pos: n.Pos, Ety: last}, Exprs: exprs}, nil

	case *ast.CallExpr:
		return a.typeCall(n, scope, ctx)

	case *ast.ParenExpr:
		return a.typeExpr(n.E, scope, ctx)

	case *ast.IfExpr:
		tcond, err := a.typeExpr(n.Cond, scope, ctx)
		if err != nil {
			return nil, err
		}
		if !typesystem.Equal(tcond.Type(), typesystem.TBool) {
			return nil, diagnostics.New(diagnostics.Expected, n.Cond.Span().Min, typesystem.TBool.String(), tcond.Type().String())
		}
		tthen, err := a.typeExpr(n.Then, scope, ctx)
		if err != nil {
			return nil, err
		}
		var telse tast.TExpr
		if n.Else != nil {
			telse, err = a.typeExpr(n.Else, scope, ctx)
			if err != nil {
				return nil, err
			}
		}
		// The type of an If is always its then-branch's type, even
		// with an else branch present: the two are never unified.
		return tast.TEIf{TypedExpr: tast.TypedExpr{Pos: n.Pos, Ety: tthen.Type()}, Cond: tcond, Then: tthen, Else: telse}, nil

	case *ast.WhileExpr:
		tcond, err := a.typeExpr(n.Cond, scope, ctx)
		if err != nil {
			return nil, err
		}
		if !typesystem.Equal(tcond.Type(), typesystem.TBool) {
			return nil, diagnostics.New(diagnostics.Expected, n.Cond.Span().Min, typesystem.TBool.String(), tcond.Type().String())
		}
		ctx.EnterLoop()
		tbody, err := a.typeExpr(n.Body, scope, ctx)
		ctx.ExitLoop()
		if err != nil {
			return nil, err
		}
		return tast.TEWhile{TypedExpr: tast.TypedExpr{Pos: n.Pos, Ety: typesystem.TVoid}, Cond: tcond, Body: tbody}, nil

	case *ast.VarExpr:
		tinit, err := a.typeExpr(n.Init, scope, ctx)
		if err != nil {
			return nil, err
		}
		initTy := tinit.Type()
		if n.TypeAnn != nil {
			annTy, err := BuildTy(n.TypeAnn)
			if err != nil {
				return nil, err
			}
			if !typesystem.Equal(annTy, initTy) {
				return nil, diagnostics.New(diagnostics.Expected, n.Init.Span().Min, annTy.String(), initTy.String())
			}
		}
		if typesystem.Equal(initTy, typesystem.TVoid) {
			return nil, diagnostics.New(diagnostics.VoidVar, n.Pos.Min)
		}
		scope.Define(n.Name, n.Variability, initTy)
		return tast.TEVar{TypedExpr: tast.TypedExpr{Pos: n.Pos, Ety: typesystem.TVoid}, Variability: n.Variability, Name: n.Name, VarType: initTy, Init: tinit}, nil

	case *ast.NewExpr:
		p := typesystem.NewPath(n.Path...)
		if _, err := a.Types.MustGet(p, n.Pos.Min); err != nil {
			return nil, err
		}
		targs, argTys, err := a.typeArgs(n.Args, scope, ctx)
		if err != nil {
			return nil, err
		}
		if _, err := a.findConstructor(p, argTys, n.Pos.Min); err != nil {
			return nil, err
		}
		return tast.TENew{TypedExpr: tast.TypedExpr{Pos: n.Pos, Ety: typesystem.TPath{Path: p}}, Path: p, Args: targs}, nil

	case *ast.TupleExpr:
		telems := make([]tast.TExpr, len(n.Elems))
		tys := make([]typesystem.Ty, len(n.Elems))
		for i, el := range n.Elems {
			te, err := a.typeExpr(el, scope, ctx)
			if err != nil {
				return nil, err
			}
			telems[i] = te
			tys[i] = te.Type()
		}
		return tast.TETuple{TypedExpr: tast.TypedExpr{Pos: n.Pos, Ety: typesystem.TTuple{Elems: tys}}, Elems: telems}, nil

	case *ast.CastExpr:
		te, err := a.typeExpr(n.E, scope, ctx)
		if err != nil {
			return nil, err
		}
		to, err := BuildTy(n.To)
		if err != nil {
			return nil, err
		}
		ok, cyclic := typesystem.CanCast(te.Type(), to, a.Types.ClassInfo)
		if cyclic {
			return nil, diagnostics.New(diagnostics.CyclicInheritance, n.Pos.Min, te.Type().String())
		}
		if !ok {
			return nil, diagnostics.New(diagnostics.CannotCastTo, n.Pos.Min, te.Type().String(), to.String())
		}
		return tast.TECast{TypedExpr: tast.TypedExpr{Pos: n.Pos, Ety: to}, E: te, To: to}, nil

	case *ast.BreakExpr:
		// break is only valid inside a loop body.
		if !ctx.InLoop() {
			return nil, diagnostics.New(diagnostics.BreakOutsideLoop, n.Pos.Min)
		}
		return tast.TEBreak{TypedExpr: tast.TypedExpr{Pos: n.Pos, Ety: typesystem.TVoid}}, nil

	case *ast.ContinueExpr:
		if !ctx.InLoop() {
			return nil, diagnostics.New(diagnostics.ContinueOutsideLoop, n.Pos.Min)
		}
		return tast.TEContinue{TypedExpr: tast.TypedExpr{Pos: n.Pos, Ety: typesystem.TVoid}}, nil

	case *ast.ReturnExpr:
		ctx.HasReturned = true
		var tpayload tast.TExpr
		if n.E != nil {
			te, err := a.typeExpr(n.E, scope, ctx)
			if err != nil {
				return nil, err
			}
			tpayload = te
		}
		return tast.TEReturn{TypedExpr: tast.TypedExpr{Pos: n.Pos, Ety: typesystem.TVoid}, E: tpayload}, nil

	default:
		return nil, diagnostics.New(diagnostics.UnresolvedIdent, e.Span().Min, "<unknown expression>")
	}
}

func constType(c ast.Const) typesystem.Ty {
	switch c.(type) {
	case *ast.IntConst:
		return typesystem.TInt
	case *ast.FloatConst:
		return typesystem.TFloat
	case *ast.StringConst:
		return typesystem.TString
	case *ast.BoolConst:
		return typesystem.TBool
	case *ast.NullConst:
		return typesystem.TVoid
	default:
		return typesystem.TVoid
	}
}

// constantInt reports whether e is a literal integer constant; an
// array index must be one.
func constantInt(e ast.Expr) (int64, bool) {
	ce, ok := e.(*ast.ConstExpr)
	if !ok {
		return 0, false
	}
	ic, ok := ce.C.(*ast.IntConst)
	if !ok {
		return 0, false
	}
	return ic.Value, true
}

// typeArgs types a call/constructor argument list left-to-right.
func (a *Analyzer) typeArgs(args []ast.Expr, scope *symbols.Scope, ctx *symbols.Context) ([]tast.TExpr, []typesystem.Ty, *diagnostics.Error) {
	targs := make([]tast.TExpr, len(args))
	tys := make([]typesystem.Ty, len(args))
	for i, arg := range args {
		te, err := a.typeExpr(arg, scope, ctx)
		if err != nil {
			return nil, nil, err
		}
		targs[i] = te
		tys[i] = te.Type()
	}
	return targs, tys, nil
}

// typeBinOp types a binary operator expression, including the
// assigning operators, which additionally enforce the L-value rule.
func (a *Analyzer) typeBinOp(n *ast.BinOpExpr, scope *symbols.Scope, ctx *symbols.Context) (tast.TExpr, *diagnostics.Error) {
	if n.Op.IsAssign() {
		return a.typeAssign(n, scope, ctx)
	}

	ta, err := a.typeExpr(n.A, scope, ctx)
	if err != nil {
		return nil, err
	}
	tb, err := a.typeExpr(n.B, scope, ctx)
	if err != nil {
		return nil, err
	}
	aty, bty := ta.Type(), tb.Type()

	switch n.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv:
		if !typesystem.IsNumeric(aty) || !typesystem.IsNumeric(bty) || !typesystem.Equal(aty, bty) {
			return nil, diagnostics.New(diagnostics.CannotBinOp, n.Pos.Min, string(n.Op), aty.String(), bty.String())
		}
		return tast.TEBinOp{TypedExpr: tast.TypedExpr{Pos: n.Pos, Ety: aty}, Op: n.Op, A: ta, B: tb}, nil
	case ast.OpEq, ast.OpLt:
		if !typesystem.Equal(aty, bty) {
			return nil, diagnostics.New(diagnostics.CannotBinOp, n.Pos.Min, string(n.Op), aty.String(), bty.String())
		}
		return tast.TEBinOp{TypedExpr: tast.TypedExpr{Pos: n.Pos, Ety: typesystem.TBool}, Op: n.Op, A: ta, B: tb}, nil
	default:
		return nil, diagnostics.New(diagnostics.CannotBinOp, n.Pos.Min, string(n.Op), aty.String(), bty.String())
	}
}

// typeAssign types an assigning BinOp, enforcing the L-value rule: the
// LHS is either a Variable identifier or a Variable field.
func (a *Analyzer) typeAssign(n *ast.BinOpExpr, scope *symbols.Scope, ctx *symbols.Context) (tast.TExpr, *diagnostics.Error) {
	var lhsTy typesystem.Ty
	var tlhs tast.TExpr

	switch lhs := n.A.(type) {
	case *ast.IdentExpr:
		v, ty, err := a.findVar(lhs.Name, scope, ctx, lhs.Pos.Min)
		if err != nil {
			return nil, err
		}
		if v != ast.Variable {
			return nil, diagnostics.New(diagnostics.CannotAssign, lhs.Pos.Min)
		}
		lhsTy = ty
		tlhs = tast.TEIdent{TypedExpr: tast.TypedExpr{Pos: lhs.Pos, Ety: ty}, Name: lhs.Name}
	case *ast.FieldExpr:
		tobj, err := a.typeExpr(lhs.Obj, scope, ctx)
		if err != nil {
			return nil, err
		}
		p, ok := pathOf(tobj.Type())
		if !ok {
			return nil, diagnostics.New(diagnostics.CannotField, lhs.Pos.Min, tobj.Type().String())
		}
		v, ty, ferr := a.fieldType(p, lhs.Name, lhs.Pos.Min)
		if ferr != nil {
			return nil, ferr
		}
		if v != ast.Variable {
			return nil, diagnostics.New(diagnostics.CannotAssign, lhs.Pos.Min)
		}
		lhsTy = ty
		tlhs = tast.TEField{TypedExpr: tast.TypedExpr{Pos: lhs.Pos, Ety: ty}, Obj: tobj, Name: lhs.Name}
	default:
		return nil, diagnostics.New(diagnostics.InvalidLHS, n.A.Span().Min)
	}

	trhs, err := a.typeExpr(n.B, scope, ctx)
	if err != nil {
		return nil, err
	}
	if !typesystem.Equal(lhsTy, trhs.Type()) {
		return nil, diagnostics.New(diagnostics.CannotBinOp, n.Pos.Min, string(n.Op), lhsTy.String(), trhs.Type().String())
	}
	return tast.TEBinOp{TypedExpr: tast.TypedExpr{Pos: n.Pos, Ety: lhsTy}, Op: n.Op, A: tlhs, B: trhs}, nil
}

// typeCall types a call expression: Call(Super, args) delegates to a
// superclass constructor; any other callee must type to Func.
func (a *Analyzer) typeCall(n *ast.CallExpr, scope *symbols.Scope, ctx *symbols.Context) (tast.TExpr, *diagnostics.Error) {
	if _, ok := n.Callee.(*ast.SuperExpr); ok {
		if ctx.ThisPath == nil {
			return nil, diagnostics.New(diagnostics.UnresolvedSuper, n.Pos.Min)
		}
		def, err := a.Types.MustGet(*ctx.ThisPath, n.Pos.Min)
		if err != nil {
			return nil, err
		}
		ck, ok := def.Kind.(ast.ClassKind)
		if !ok || ck.Extends == nil {
			return nil, diagnostics.New(diagnostics.UnresolvedSuper, n.Pos.Min)
		}
		targs, argTys, err := a.typeArgs(n.Args, scope, ctx)
		if err != nil {
			return nil, err
		}
		if _, err := a.findConstructor(*ck.Extends, argTys, n.Pos.Min); err != nil {
			return nil, err
		}
		return tast.TESuperCall{TypedExpr: tast.TypedExpr{Pos: n.Pos, Ety: typesystem.TVoid}, Args: targs}, nil
	}

	tcallee, err := a.typeExpr(n.Callee, scope, ctx)
	if err != nil {
		return nil, err
	}
	fn, ok := tcallee.Type().(typesystem.TFunc)
	if !ok {
		return nil, diagnostics.New(diagnostics.CannotCall, n.Pos.Min, tcallee.Type().String())
	}
	targs, argTys, err := a.typeArgs(n.Args, scope, ctx)
	if err != nil {
		return nil, err
	}
	if !callMatches(fn, argTys) {
		return nil, diagnostics.New(diagnostics.FunctionArgsMismatch, n.Pos.Min, tcallee.Type().String(), fn.String(), tyListString(argTys))
	}
	return tast.TECall{TypedExpr: tast.TypedExpr{Pos: n.Pos, Ety: fn.Ret}, Callee: tcallee, Args: targs}, nil
}

func callMatches(fn typesystem.TFunc, argTys []typesystem.Ty) bool {
	switch fn.Conv {
	case typesystem.VarArgs:
		if len(argTys) < len(fn.Params) {
			return false
		}
	default:
		if len(argTys) != len(fn.Params) {
			return false
		}
	}
	for i, p := range fn.Params {
		if !typesystem.Equal(p, argTys[i]) {
			return false
		}
	}
	return true
}
