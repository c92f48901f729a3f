package analyzer

import (
	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/diagnostics"
	"github.com/velalang/velac/internal/token"
	"github.com/velalang/velac/internal/typesystem"
)

// pathOf extracts the underlying declared path from a Path or Class
// type; any other type cannot carry members.
func pathOf(ty typesystem.Ty) (typesystem.Path, bool) {
	switch t := ty.(type) {
	case typesystem.TPath:
		return t.Path, true
	case typesystem.TClass:
		return t.Path, true
	default:
		return typesystem.Path{}, false
	}
}

// resolveField is the inheritance-aware member lookup: find the first
// member named `name` declared on P, walking the extends chain on
// miss. Ties within a level are resolved by declaration order (first
// wins); a subclass member of the same name shadows its ancestor's
// because the walk starts at the child.
func (a *Analyzer) resolveField(p typesystem.Path, name string, pos token.Position) (*ast.TypeDef, *ast.MemberDef, *diagnostics.Error) {
	return a.resolveFieldVisited(p, name, pos, map[string]bool{})
}

func (a *Analyzer) resolveFieldVisited(p typesystem.Path, name string, pos token.Position, visited map[string]bool) (*ast.TypeDef, *ast.MemberDef, *diagnostics.Error) {
	key := p.String()
	if visited[key] {
		return nil, nil, diagnostics.New(diagnostics.CyclicInheritance, pos, key)
	}
	visited[key] = true

	def, err := a.Types.MustGet(p, pos)
	if err != nil {
		return nil, nil, err
	}
	for _, m := range def.Members {
		if m.Name == name {
			return def, m, nil
		}
	}
	if ck, ok := def.Kind.(ast.ClassKind); ok && ck.Extends != nil {
		return a.resolveFieldVisited(*ck.Extends, name, pos, visited)
	}
	return nil, nil, diagnostics.New(diagnostics.UnresolvedField, pos, p.String(), name)
}

// fieldType resolves (variability, type) for a field access or
// identifier lookup on type p via resolveField + memberType.
func (a *Analyzer) fieldType(p typesystem.Path, name string, pos token.Position) (ast.Variability, typesystem.Ty, *diagnostics.Error) {
	owner, m, err := a.resolveField(p, name, pos)
	if err != nil {
		return ast.Constant, nil, err
	}
	return a.memberType(owner.Path, m)
}

// findConstructor selects the constructor on p whose parameter types
// exactly match argTys; no implicit conversion applies.
func (a *Analyzer) findConstructor(p typesystem.Path, argTys []typesystem.Ty, pos token.Position) (*ast.ConstrMember, *diagnostics.Error) {
	def, err := a.Types.MustGet(p, pos)
	if err != nil {
		return nil, err
	}
	for _, m := range def.Members {
		ck, ok := m.Kind.(ast.ConstrMember)
		if !ok {
			continue
		}
		if constrMatches(ck, argTys) {
			c := ck
			return &c, nil
		}
	}
	return nil, diagnostics.New(diagnostics.NoMatchingConstr, pos, p.String(), tyListString(argTys))
}

func constrMatches(ck ast.ConstrMember, argTys []typesystem.Ty) bool {
	if len(ck.Params) != len(argTys) {
		return false
	}
	for i, param := range ck.Params {
		pty, err := BuildTy(param.Type)
		if err != nil {
			return false
		}
		if !typesystem.Equal(pty, argTys[i]) {
			return false
		}
	}
	return true
}

func tyListString(tys []typesystem.Ty) string {
	s := "("
	for i, t := range tys {
		if i > 0 {
			s += ", "
		}
		s += t.String()
	}
	return s + ")"
}
