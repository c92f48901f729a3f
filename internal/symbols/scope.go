package symbols

import (
	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/typesystem"
)

// Binding is what a name resolves to in a scope frame: its variability
// and its type.
type Binding struct {
	Variability ast.Variability
	Ty          typesystem.Ty
}

// frame is one level of the scope stack, a mapping from name to
// Binding. Lookup within a frame is last-write-wins (a name may be
// redeclared in the same block), matching how a single `var x` per
// block is expected to shadow nothing within that block.
type frame map[string]Binding

// Scope is the analyzer's scope stack: one Push/Pop pair brackets
// every function and constructor body, with names resolved by
// searching frames top-of-stack downward.
type Scope struct {
	frames []frame
}

// NewScope creates an empty scope stack.
func NewScope() *Scope {
	return &Scope{}
}

// Push opens a fresh, empty frame.
func (s *Scope) Push() {
	s.frames = append(s.frames, frame{})
}

// Pop discards the top frame. Callers must pair every Push with a Pop
// on all exit paths, including error propagation.
func (s *Scope) Pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

// Define binds name in the current (top) frame.
func (s *Scope) Define(name string, variability ast.Variability, ty typesystem.Ty) {
	s.frames[len(s.frames)-1][name] = Binding{Variability: variability, Ty: ty}
}

// Find searches frames top-of-stack downward; inner frames shadow
// outer ones.
func (s *Scope) Find(name string) (Binding, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if b, ok := s.frames[i][name]; ok {
			return b, true
		}
	}
	return Binding{}, false
}

// Context holds the ambient flags the typer threads through member and
// expression typing.
type Context struct {
	ThisPath      *typesystem.Path
	InStatic      bool
	InConstructor bool
	HasReturned   bool
	LoopDepth     int // bounds break/continue to loop bodies
}

// EnterLoop/ExitLoop bracket a while-body the same way Scope's
// Push/Pop bracket a function body.
func (c *Context) EnterLoop() { c.LoopDepth++ }
func (c *Context) ExitLoop()  { c.LoopDepth-- }

// InLoop reports whether break/continue is currently valid.
func (c *Context) InLoop() bool { return c.LoopDepth > 0 }
