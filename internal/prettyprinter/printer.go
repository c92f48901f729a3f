// Package prettyprinter renders package ast back into Vela surface
// syntax, using a bytes.Buffer-backed printer with explicit indent
// tracking. It backs the round-trip property exercised in this
// package's tests: print an expression, re-parse it, and the result
// must be structurally equal to the original (modulo positions).
package prettyprinter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/velalang/velac/internal/ast"
)

// Printer accumulates Vela source text with 4-space indentation.
type Printer struct {
	buf    bytes.Buffer
	indent int
}

// New creates an empty Printer.
func New() *Printer { return &Printer{} }

func (p *Printer) String() string { return p.buf.String() }

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

// Module renders a full compilation unit: `package ...`, its imports,
// then each type declaration in order.
func (p *Printer) Module(m *ast.Module) string {
	p.buf.Reset()
	p.buf.WriteString("package " + m.Package.String() + "\n")
	for _, imp := range m.Imports {
		p.buf.WriteString("import " + imp.String() + "\n")
	}
	for _, def := range m.Defs {
		p.buf.WriteString("\n")
		p.TypeDef(def)
	}
	return p.buf.String()
}

// TypeDef renders one class/struct declaration.
func (p *Printer) TypeDef(def *ast.TypeDef) {
	p.writeIndent()
	p.modSet(def.Mods)
	switch k := def.Kind.(type) {
	case ast.ClassKind:
		p.buf.WriteString("class " + def.Path.Name)
		if k.Extends != nil {
			p.buf.WriteString(" extends " + k.Extends.String())
		}
		if len(k.Implements) > 0 {
			p.buf.WriteString(" implements ")
			for i, iface := range k.Implements {
				if i > 0 {
					p.buf.WriteString(", ")
				}
				p.buf.WriteString(iface.String())
			}
		}
	case ast.StructKind:
		p.buf.WriteString("struct " + def.Path.Name)
	}
	p.buf.WriteString(" {\n")
	p.indent++
	for _, m := range def.Members {
		p.member(m)
	}
	p.indent--
	p.writeIndent()
	p.buf.WriteString("}\n")
}

// modSet writes the modifiers present on mods in a fixed, deterministic
// order (the underlying set itself carries no ordering).
func (p *Printer) modSet(mods ast.ModSet) {
	order := []ast.MemberMod{ast.ModPublic, ast.ModPrivate, ast.ModStatic, ast.ModExtern}
	for _, m := range order {
		if mods.Has(m) {
			p.buf.WriteString(string(m) + " ")
		}
	}
}

func (p *Printer) member(m *ast.MemberDef) {
	p.writeIndent()
	p.modSet(m.Mods)
	switch k := m.Kind.(type) {
	case ast.VarMember:
		p.buf.WriteString(k.Variability.String() + " " + m.Name)
		if k.TypeAnn != nil {
			p.buf.WriteString(": " + p.typeStr(k.TypeAnn))
		}
		if k.Init != nil {
			p.buf.WriteString(" = " + p.exprStr(k.Init))
		}
		p.buf.WriteString("\n")
	case ast.FuncMember:
		p.buf.WriteString("func " + m.Name + "(" + p.paramsStr(k.Params) + "): " + p.typeStr(k.Ret))
		if k.Body == nil {
			p.buf.WriteString("\n")
			return
		}
		p.buf.WriteString(" ")
		p.block(k.Body)
	case ast.ConstrMember:
		p.buf.WriteString("new(" + p.paramsStr(k.Params) + ") ")
		p.block(k.Body)
	}
}

func (p *Printer) paramsStr(params []ast.Param) string {
	var sb bytes.Buffer
	for i, prm := range params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(prm.Name + ": " + p.typeStr(prm.Type))
	}
	return sb.String()
}

func (p *Printer) block(e ast.Expr) {
	b, ok := e.(*ast.BlockExpr)
	if !ok {
		p.buf.WriteString("{ " + p.exprStr(e) + " }\n")
		return
	}
	p.buf.WriteString("{\n")
	p.indent++
	for _, sub := range b.Exprs {
		p.writeIndent()
		p.buf.WriteString(p.exprStr(sub) + "\n")
	}
	p.indent--
	p.writeIndent()
	p.buf.WriteString("}\n")
}

func (p *Printer) typeStr(t ast.Type) string {
	switch n := t.(type) {
	case *ast.PrimType:
		return n.Name
	case *ast.PathType:
		s := ""
		for i, seg := range n.Segments {
			if i > 0 {
				s += "."
			}
			s += seg
		}
		return s
	case *ast.TupleType:
		s := "("
		for i, el := range n.Elems {
			if i > 0 {
				s += ", "
			}
			s += p.typeStr(el)
		}
		return s + ")"
	default:
		return "?type"
	}
}

// Expr renders a single expression as Vela source text.
func (p *Printer) Expr(e ast.Expr) string { return p.exprStr(e) }

func (p *Printer) exprStr(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.ThisExpr:
		return "this"
	case *ast.SuperExpr:
		return "super"
	case *ast.ConstExpr:
		return constStr(n.C)
	case *ast.IdentExpr:
		return n.Name
	case *ast.FieldExpr:
		return p.exprStr(n.Obj) + "." + n.Name
	case *ast.ArrayIndexExpr:
		return p.exprStr(n.Obj) + "[" + p.exprStr(n.Index) + "]"
	case *ast.BinOpExpr:
		return p.exprStr(n.A) + " " + string(n.Op) + " " + p.exprStr(n.B)
	case *ast.UnOpExpr:
		return string(n.Op) + p.exprStr(n.A)
	case *ast.BlockExpr:
		var sb bytes.Buffer
		sb.WriteString("{ ")
		for i, sub := range n.Exprs {
			if i > 0 {
				sb.WriteString("; ")
			}
			sb.WriteString(p.exprStr(sub))
		}
		sb.WriteString(" }")
		return sb.String()
	case *ast.CallExpr:
		var sb bytes.Buffer
		sb.WriteString(p.exprStr(n.Callee) + "(")
		for i, a := range n.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.exprStr(a))
		}
		sb.WriteString(")")
		return sb.String()
	case *ast.ParenExpr:
		return "(" + p.exprStr(n.E) + ")"
	case *ast.IfExpr:
		s := "if " + p.exprStr(n.Cond) + " " + p.exprStr(n.Then)
		if n.Else != nil {
			s += " else " + p.exprStr(n.Else)
		}
		return s
	case *ast.WhileExpr:
		return "while " + p.exprStr(n.Cond) + " " + p.exprStr(n.Body)
	case *ast.VarExpr:
		s := n.Variability.String() + " " + n.Name
		if n.TypeAnn != nil {
			s += ": " + p.typeStr(n.TypeAnn)
		}
		return s + " = " + p.exprStr(n.Init)
	case *ast.NewExpr:
		var sb bytes.Buffer
		sb.WriteString("new ")
		for i, seg := range n.Path {
			if i > 0 {
				sb.WriteString(".")
			}
			sb.WriteString(seg)
		}
		sb.WriteString("(")
		for i, a := range n.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.exprStr(a))
		}
		sb.WriteString(")")
		return sb.String()
	case *ast.TupleExpr:
		var sb bytes.Buffer
		sb.WriteString("(")
		for i, el := range n.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.exprStr(el))
		}
		sb.WriteString(")")
		return sb.String()
	case *ast.CastExpr:
		return p.exprStr(n.E) + " as " + p.typeStr(n.To)
	case *ast.BreakExpr:
		return "break"
	case *ast.ContinueExpr:
		return "continue"
	case *ast.ReturnExpr:
		if n.E == nil {
			return "return"
		}
		return "return " + p.exprStr(n.E)
	default:
		return fmt.Sprintf("<?expr %T>", e)
	}
}

func constStr(c ast.Const) string {
	switch n := c.(type) {
	case *ast.IntConst:
		return fmt.Sprintf("%d", n.Value)
	case *ast.FloatConst:
		// Always print a fractional part and never an exponent, so the
		// lexer reads the literal back as a FLOAT.
		s := strconv.FormatFloat(n.Value, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	case *ast.StringConst:
		return fmt.Sprintf("%q", n.Value)
	case *ast.BoolConst:
		if n.Value {
			return "true"
		}
		return "false"
	case *ast.NullConst:
		return "null"
	default:
		return "?const"
	}
}
