// Package export writes a read-only snapshot of an already-typed
// module's Type Table to a sqlite file, for IDE/external tooling to
// query without re-running the analyzer. This is strictly a one-way
// dump: nothing here ever feeds back into analysis, so it does not
// implement, and must never be mistaken for, an incremental-
// recompilation cache.
package export

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/velalang/velac/internal/ast"
	"github.com/velalang/velac/internal/symbols"
)

type memberRow struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// Dump writes every TypeDef indexed in tbl to the sqlite database at
// path, creating the file if needed and replacing any existing `types`
// table in it; other tables in an existing file are left as they are.
func Dump(tbl *symbols.TypeTable, path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("export: open %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.Exec(`
		DROP TABLE IF EXISTS types;
		CREATE TABLE types (
			path    TEXT PRIMARY KEY,
			kind    TEXT NOT NULL,
			members TEXT NOT NULL
		);
	`); err != nil {
		return fmt.Errorf("export: create schema: %w", err)
	}

	stmt, err := db.Prepare(`INSERT INTO types (path, kind, members) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("export: prepare insert: %w", err)
	}
	defer stmt.Close()

	for path, def := range tbl.All() {
		kind := "struct"
		if _, isClass := def.Kind.(ast.ClassKind); isClass {
			kind = "class"
		}
		members := make([]memberRow, 0, len(def.Members))
		for _, m := range def.Members {
			members = append(members, memberRow{Name: m.Name, Kind: memberKindName(m.Kind)})
		}
		blob, err := json.Marshal(members)
		if err != nil {
			return fmt.Errorf("export: marshal members of %s: %w", path, err)
		}
		if _, err := stmt.Exec(path, kind, string(blob)); err != nil {
			return fmt.Errorf("export: insert %s: %w", path, err)
		}
	}
	return nil
}

func memberKindName(k ast.MemberKind) string {
	switch k.(type) {
	case ast.VarMember:
		return "var"
	case ast.FuncMember:
		return "func"
	case ast.ConstrMember:
		return "constr"
	default:
		return "?"
	}
}
