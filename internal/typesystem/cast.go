package typesystem

// ClassInfo answers, for a class path, its optional superclass and its
// implemented interface paths. It is supplied by the caller (the Type
// Table) so that this package stays free of a dependency on the AST.
type ClassInfo func(p Path) (extends *Path, implements []Path, ok bool)

// CanCast reports whether a value of type source may be cast to target:
//   - both sides numeric primitives: true
//   - source = Path(P), target = Path(Q): true when Q is P's direct
//     superclass, Q is one of P's implemented interfaces, or
//     (recursively) P's superclass can cast to Q
//   - otherwise false
//
// Cycles in the inheritance chain are bounded by a visited-path set;
// a detected cycle is reported through cyclic, not via a panic or an
// infinite loop.
func CanCast(source, target Ty, info ClassInfo) (ok bool, cyclic bool) {
	if IsNumeric(source) && IsNumeric(target) {
		return true, false
	}
	sp, sOk := source.(TPath)
	tp, tOk := target.(TPath)
	if !sOk || !tOk {
		return false, false
	}
	return canCastPath(sp.Path, tp.Path, info, map[string]bool{})
}

func canCastPath(source, target Path, info ClassInfo, visited map[string]bool) (bool, bool) {
	key := source.String()
	if visited[key] {
		return false, true
	}
	visited[key] = true

	extends, implements, ok := info(source)
	if !ok {
		return false, false
	}
	for _, i := range implements {
		if i.Equal(target) {
			return true, false
		}
	}
	if extends == nil {
		return false, false
	}
	if extends.Equal(target) {
		return true, false
	}
	return canCastPath(*extends, target, info, visited)
}
