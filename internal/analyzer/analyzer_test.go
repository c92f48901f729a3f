package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velalang/velac/internal/analyzer"
	"github.com/velalang/velac/internal/diagnostics"
	"github.com/velalang/velac/internal/lexer"
	"github.com/velalang/velac/internal/parser"
	"github.com/velalang/velac/internal/tast"
)

func typeSource(t *testing.T, src string) (*tast.Module, *diagnostics.Error) {
	t.Helper()
	lx := lexer.New("test.vela", src)
	mod, perr := parser.New("test.vela", lx).ParseModule()
	require.Nil(t, perr, "parse error: %v", perr)
	return analyzer.New().AnalyzeModule(mod)
}

func TestFieldInheritanceAndSuperConstructor(t *testing.T) {
	src := `
package demo

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
	mod, err := typeSource(t, src)
	require.Nil(t, err, "unexpected diagnostic: %v", err)
	assert.Len(t, mod.Defs, 2)
	assert.NotEqual(t, mod.BuildID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestVarargExternCall(t *testing.T) {
	src := `
package demo

struct Printer {
    @CallConv("vararg")
    static extern func printf(fmt: string): void
}

class Logger {
    func log(): void {
        Printer.printf("value = %d\n", 42)
    }
}
`
	_, err := typeSource(t, src)
	assert.Nil(t, err, "unexpected diagnostic: %v", err)
}

func TestSuperCallNoMatchingConstructor(t *testing.T) {
	src := `
package demo

class Base {
    new(x: int) { }
}

class Derived extends Base {
    new() {
        super("oops")
    }
}
`
	_, err := typeSource(t, src)
	require.NotNil(t, err)
	assert.Equal(t, diagnostics.NoMatchingConstr, err.Code)
}

func TestCannotAssignToConstantField(t *testing.T) {
	src := `
package demo

class Widget {
    val x: int = 1

    func bad(): int {
        this.x = 2
    }
}
`
	_, err := typeSource(t, src)
	require.NotNil(t, err)
	assert.Equal(t, diagnostics.CannotAssign, err.Code)
}

func TestMissingReturn(t *testing.T) {
	src := `
package demo

class Widget {
    func compute(): int {
        var x: int = 1
    }
}
`
	_, err := typeSource(t, src)
	require.NotNil(t, err)
	assert.Equal(t, diagnostics.NoReturn, err.Code)
}

func TestVoidVarRejected(t *testing.T) {
	src := `
package demo

class Widget {
    func bad(): void {
        var x = null
    }
}
`
	_, err := typeSource(t, src)
	require.NotNil(t, err)
	assert.Equal(t, diagnostics.VoidVar, err.Code)
}

func TestBreakOutsideLoopRejected(t *testing.T) {
	src := `
package demo

class Widget {
    func bad(): void {
        break
    }
}
`
	_, err := typeSource(t, src)
	require.NotNil(t, err)
	assert.Equal(t, diagnostics.BreakOutsideLoop, err.Code)
}

func TestBreakInsideLoopAccepted(t *testing.T) {
	src := `
package demo

class Widget {
    func run(): void {
        while true {
            break
        }
    }
}
`
	_, err := typeSource(t, src)
	assert.Nil(t, err, "unexpected diagnostic: %v", err)
}

func TestIfElseTypeIsThenBranch(t *testing.T) {
	// The then and else branches are independently typed but never
	// unified: an If's type is always its then-branch's type, even
	// when the else branch types to something else entirely.
	src := `
package demo

class Widget {
    func pick(): int {
        return if true { 1 } else { 2.5 }
    }
}
`
	_, err := typeSource(t, src)
	assert.Nil(t, err, "unexpected diagnostic: %v", err)
}

func TestDuplicateTypePath(t *testing.T) {
	src := `
package demo

class Widget {
    var a: int
}

class Widget {
    var b: int
}
`
	_, err := typeSource(t, src)
	require.NotNil(t, err)
	assert.Equal(t, diagnostics.DuplicateTypePath, err.Code)
}
