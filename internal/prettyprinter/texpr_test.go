package prettyprinter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velalang/velac/internal/analyzer"
	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/lexer"
	"github.com/velalang/velac/internal/parser"
	"github.com/velalang/velac/internal/prettyprinter"
	"github.com/velalang/velac/internal/tast"
)

// TestTypedExprPrintsLikeItsSource types a function body and checks
// that rendering the typed tree produces the same text as rendering the
// untyped tree it was checked from: re-parsing either yields the same
// untyped AST.
func TestTypedExprPrintsLikeItsSource(t *testing.T) {
	src := `package demo

class Counter {
    var n: int

    new() { }

    func spin(): int {
        var i = 0
        while i < 3 {
            i = i + 1
            if i == 2 { continue }
            break
        }
        this.n = i
    }
}
`
	mod, perr := parser.New("c.vela", lexer.New("c.vela", src)).ParseModule()
	require.Nil(t, perr, "parse error: %v", perr)
	typed, aerr := analyzer.New().AnalyzeModule(mod)
	require.Nil(t, aerr, "unexpected diagnostic: %v", aerr)

	untypedBody := mod.Defs[0].Members[2].Kind.(ast.FuncMember).Body
	typedBody := typed.Defs[0].Members[2].(*tast.TMFunc).Body

	p := prettyprinter.New()
	assert.Equal(t, p.Expr(untypedBody), p.TExpr(typedBody))
}

func TestBreakAndContinueKeepTheirKeywords(t *testing.T) {
	p := prettyprinter.New()
	assert.Equal(t, "break", p.TExpr(tast.TEBreak{}))
	assert.Equal(t, "continue", p.TExpr(tast.TEContinue{}))
}
