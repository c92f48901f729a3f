// Package diagnostics implements the single error variant used across
// the pipeline: every analyzer failure carries a stable Code and the
// Position of the offending AST node, rendered by one formatter.
package diagnostics

import (
	"fmt"

	"github.com/velalang/velac/internal/token"
)

// Phase names the pipeline stage that raised a diagnostic.
type Phase string

const (
	PhaseLexer    Phase = "lexer"
	PhaseParser   Phase = "parser"
	PhaseAnalyzer Phase = "analyzer"
)

// Code is a stable identifier for an error kind.
type Code string

const (
	UnresolvedIdent       Code = "UnresolvedIdent"
	UnresolvedPath        Code = "UnresolvedPath"
	UnresolvedThis        Code = "UnresolvedThis"
	UnresolvedSuper       Code = "UnresolvedSuper"
	UnresolvedField       Code = "UnresolvedField"
	CannotField           Code = "CannotField"
	UnresolvedFieldType   Code = "UnresolvedFieldType"
	CannotBinOp           Code = "CannotBinOp"
	CannotAssign          Code = "CannotAssign"
	InvalidLHS            Code = "InvalidLHS"
	CannotCall            Code = "CannotCall"
	CannotIndex           Code = "CannotIndex"
	CannotCastTo          Code = "CannotCastTo"
	Expected              Code = "Expected"
	NoMatchingConstr      Code = "NoMatchingConstr"
	FunctionArgsMismatch  Code = "FunctionArgsMismatch"
	NoReturn              Code = "NoReturn"
	VoidVar               Code = "VoidVar"

	// Codes for checks beyond the base diagnostic table (see
	// DESIGN.md for the rationale behind each).
	DuplicateTypePath    Code = "DuplicateTypePath"
	CyclicInheritance    Code = "CyclicInheritance"
	BreakOutsideLoop     Code = "BreakOutsideLoop"
	ContinueOutsideLoop  Code = "ContinueOutsideLoop"

	// SyntaxError is raised by package parser; it carries a free-form
	// message rather than one of the analyzer's structured codes.
	SyntaxError Code = "SyntaxError"
)

var templates = map[Code]string{
	UnresolvedIdent:      "undeclared identifier: %q",
	UnresolvedPath:       "unresolved type path: %q",
	UnresolvedThis:       "'this' used outside of an instance member",
	UnresolvedSuper:      "'super' used without an enclosing 'extends'",
	UnresolvedField:      "type %s has no member %q",
	CannotField:          "cannot access a member on type %s",
	UnresolvedFieldType:  "field %q has neither a declared type nor an initializer",
	CannotBinOp:          "operator %q is not defined for %s and %s",
	CannotAssign:         "cannot assign to a constant",
	InvalidLHS:           "invalid assignment target",
	CannotCall:           "cannot call a value of type %s",
	CannotIndex:          "cannot index: expected a tuple and a constant integer index",
	CannotCastTo:         "cannot cast %s to %s",
	Expected:             "expected type %s, got %s",
	NoMatchingConstr:     "no constructor on %s matches argument types %s",
	FunctionArgsMismatch: "call to %s: expected arguments %s, got %s",
	NoReturn:             "function body does not return %s and contains no return statement",
	VoidVar:              "variable type resolves to void",
	DuplicateTypePath:    "duplicate type declaration for path %q",
	CyclicInheritance:    "cyclic inheritance detected at %q",
	BreakOutsideLoop:     "'break' outside of a loop",
	ContinueOutsideLoop:  "'continue' outside of a loop",
	SyntaxError:          "%s",
}

// Error is the single diagnostic type produced by the analyzer. All
// errors are fatal to the current compilation unit; none are recovered
// inside the typer.
type Error struct {
	Code  Code
	Phase Phase
	Pos   token.Position
	Args  []interface{}
}

func (e *Error) Error() string {
	template, ok := templates[e.Code]
	if !ok {
		return fmt.Sprintf("%s: unknown diagnostic code %s", e.Pos, e.Code)
	}
	msg := fmt.Sprintf(template, e.Args...)
	phase := ""
	if e.Phase != "" {
		phase = fmt.Sprintf("[%s] ", e.Phase)
	}
	return fmt.Sprintf("%s: %s%s: %s", e.Pos, phase, e.Code, msg)
}

// New builds an analyzer-phase diagnostic at pos.
func New(code Code, pos token.Position, args ...interface{}) *Error {
	return &Error{Code: code, Phase: PhaseAnalyzer, Pos: pos, Args: args}
}

// NewSyntax builds a parser-phase SyntaxError at pos with a free-form
// message.
func NewSyntax(pos token.Position, msg string) *Error {
	return &Error{Code: SyntaxError, Phase: PhaseParser, Pos: pos, Args: []interface{}{msg}}
}
