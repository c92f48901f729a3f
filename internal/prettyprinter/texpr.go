package prettyprinter

import (
	"bytes"
	"fmt"

	"github.com/velalang/velac/internal/tast"
)

// TExpr renders a typed expression back to Vela surface syntax. The
// output never carries the resolved types, so re-parsing it yields the
// untyped tree the expression was checked from (modulo positions).
// A var declaration is printed without a type annotation, since the
// typed tree does not record whether the source had one.
func (p *Printer) TExpr(e tast.TExpr) string {
	switch n := e.(type) {
	case tast.TEThis:
		return "this"
	case tast.TESuper:
		return "super"
	case tast.TEConst:
		return constStr(n.C)
	case tast.TEIdent:
		return n.Name
	case tast.TEField:
		return p.TExpr(n.Obj) + "." + n.Name
	case tast.TEArrayIndex:
		return p.TExpr(n.Obj) + "[" + p.TExpr(n.Index) + "]"
	case tast.TEBinOp:
		return p.TExpr(n.A) + " " + string(n.Op) + " " + p.TExpr(n.B)
	case tast.TEUnOp:
		return string(n.Op) + p.TExpr(n.A)
	case tast.TEBlock:
		var sb bytes.Buffer
		sb.WriteString("{ ")
		for i, sub := range n.Exprs {
			if i > 0 {
				sb.WriteString("; ")
			}
			sb.WriteString(p.TExpr(sub))
		}
		sb.WriteString(" }")
		return sb.String()
	case tast.TECall:
		var sb bytes.Buffer
		sb.WriteString(p.TExpr(n.Callee) + "(")
		for i, a := range n.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.TExpr(a))
		}
		sb.WriteString(")")
		return sb.String()
	case tast.TESuperCall:
		var sb bytes.Buffer
		sb.WriteString("super(")
		for i, a := range n.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.TExpr(a))
		}
		sb.WriteString(")")
		return sb.String()
	case tast.TEIf:
		s := "if " + p.TExpr(n.Cond) + " " + p.TExpr(n.Then)
		if n.Else != nil {
			s += " else " + p.TExpr(n.Else)
		}
		return s
	case tast.TEWhile:
		return "while " + p.TExpr(n.Cond) + " " + p.TExpr(n.Body)
	case tast.TEVar:
		return n.Variability.String() + " " + n.Name + " = " + p.TExpr(n.Init)
	case tast.TENew:
		var sb bytes.Buffer
		sb.WriteString("new " + n.Path.String() + "(")
		for i, a := range n.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.TExpr(a))
		}
		sb.WriteString(")")
		return sb.String()
	case tast.TETuple:
		var sb bytes.Buffer
		sb.WriteString("(")
		for i, el := range n.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.TExpr(el))
		}
		sb.WriteString(")")
		return sb.String()
	case tast.TECast:
		return p.TExpr(n.E) + " as " + n.To.String()
	case tast.TEBreak:
		return "break"
	case tast.TEContinue:
		return "continue"
	case tast.TEReturn:
		if n.E == nil {
			return "return"
		}
		return "return " + p.TExpr(n.E)
	default:
		return fmt.Sprintf("<?texpr %T>", e)
	}
}
