// Package tests runs golden txtar fixtures end to end: lex, parse and
// type each fixture's source file and compare the outcome (either "ok"
// or a diagnostic Code) against its recorded "want" section.
package tests

import (
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/velalang/velac/internal/analyzer"
	"github.com/velalang/velac/internal/lexer"
	"github.com/velalang/velac/internal/parser"
)

func TestFunctional(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txtar")
	if err != nil {
		t.Fatalf("glob testdata: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no .txtar fixtures found under testdata/")
	}

	for _, path := range files {
		path := path
		name := strings.TrimSuffix(filepath.Base(path), ".vela.txtar")
		t.Run(name, func(t *testing.T) {
			ar, err := txtar.ParseFile(path)
			if err != nil {
				t.Fatalf("parse %s: %v", path, err)
			}

			in := section(t, ar, "in.vela")
			want := strings.TrimSpace(string(section(t, ar, "want")))

			got := run(path, in)
			if got != want {
				t.Errorf("%s: got %q, want %q", path, got, want)
			}
		})
	}
}

func section(t *testing.T, ar *txtar.Archive, name string) []byte {
	t.Helper()
	for _, f := range ar.Files {
		if f.Name == name {
			return f.Data
		}
	}
	t.Fatalf("missing -- %s -- section", name)
	return nil
}

// run lexes, parses and types src, returning "ok" on success or the
// diagnostic Code string on failure.
func run(file string, src []byte) string {
	lx := lexer.New(file, string(src))
	mod, perr := parser.New(file, lx).ParseModule()
	if perr != nil {
		return string(perr.Code)
	}
	if _, aerr := analyzer.New().AnalyzeModule(mod); aerr != nil {
		return string(aerr.Code)
	}
	return "ok"
}
