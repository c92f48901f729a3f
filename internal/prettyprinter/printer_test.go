package prettyprinter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velalang/velac/internal/lexer"
	"github.com/velalang/velac/internal/parser"
	"github.com/velalang/velac/internal/prettyprinter"
)

// TestRoundTripIsAFixedPoint exercises the testable property of the
// Module/TypeDef renderer: printing a parsed module, re-parsing that
// text, and printing the result again must reach a fixed point. Source
// positions differ between the two parses, but Printer never emits
// them, so the two renderings must be byte-identical.
func TestRoundTripIsAFixedPoint(t *testing.T) {
	src := `package demo

class Base {
    var a: int
    var b: int

    new(x: int, y: int) {
        this.a = x
        this.b = y
    }
}

class Derived extends Base {
    new(x: int, y: int) {
        super(x, y)
    }

    func bump(): int {
        this.a = this.a + 1
    }
}
`
	mod1, perr := parser.New("a.vela", lexer.New("a.vela", src)).ParseModule()
	require.Nil(t, perr)
	printed1 := prettyprinter.New().Module(mod1)

	mod2, perr := parser.New("b.vela", lexer.New("b.vela", printed1)).ParseModule()
	require.Nil(t, perr, "re-parsing the printer's own output must succeed")
	printed2 := prettyprinter.New().Module(mod2)

	assert.Equal(t, printed1, printed2, "printing a parsed module must be a fixed point")
}

func TestExprRoundTrip(t *testing.T) {
	cases := []string{
		`this.a + 1`,
		`this.a = this.a + 1`,
		`if this.a == 1 { 1 } else { 2 }`,
		`new demo.Widget(1, 2)`,
		`(1, "x", true)`,
	}
	for _, src := range cases {
		wrapped := "package demo\nclass C { func f(): int { " + src + " } }\n"
		mod, perr := parser.New("a.vela", lexer.New("a.vela", wrapped)).ParseModule()
		require.Nil(t, perr, "parsing %q", src)
		printed := prettyprinter.New().Module(mod)

		mod2, perr := parser.New("b.vela", lexer.New("b.vela", printed)).ParseModule()
		require.Nil(t, perr, "re-parsing printed form of %q: %s", src, printed)
		printed2 := prettyprinter.New().Module(mod2)
		assert.Equal(t, printed, printed2, "expr %q should round-trip to a fixed point", src)
	}
}
