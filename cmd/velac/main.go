// Command velac is the CLI driver of the Vela toolchain's front end:
// it reads source files, drives lex → parse → index → type, and
// prints diagnostics, colorized only on a real terminal.
//
// Usage:
//
//	velac [-c velac.yaml] FILE...         lex, parse and type FILE(s)
//	velac serve [-addr :7777]             run the gRPC analyzer service
//	velac dump-types -o out.db FILE...    type FILE(s), export Type Table to sqlite
//	velac version                         print the velac version
package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"github.com/mattn/go-isatty"
	"google.golang.org/grpc"

	"github.com/velalang/velac/internal/analyzer"
	"github.com/velalang/velac/internal/config"
	"github.com/velalang/velac/internal/diagnostics"
	"github.com/velalang/velac/internal/export"
	"github.com/velalang/velac/internal/lexer"
	"github.com/velalang/velac/internal/parser"
	"github.com/velalang/velac/internal/rpc"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "serve":
			runServe(os.Args[2:])
			return
		case "dump-types":
			runDumpTypes(os.Args[2:])
			return
		case "version":
			fmt.Printf("velac %s\n", config.Version)
			return
		}
	}
	runAnalyze(os.Args[1:])
}

func runAnalyze(argv []string) {
	fs := flag.NewFlagSet("velac", flag.ExitOnError)
	cfgPath := fs.String("c", "velac.yaml", "project config path")
	fs.Parse(argv)

	cfg := loadConfigOrDefault(*cfgPath)
	files := fs.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "velac: no input files")
		os.Exit(2)
	}

	color := shouldColor(cfg.Color)
	failed := false
	for _, f := range files {
		if err := analyzeFile(f, color); err != nil {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// analyzeFile runs one source file through lex → parse → index → type
// and prints its outcome; it returns an error when the file failed any
// stage, so the caller can set the process exit code without printing
// the message twice.
func analyzeFile(path string, color bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "velac: %s: %v\n", path, err)
		return err
	}

	lx := lexer.New(path, string(src))
	mod, perr := parser.New(path, lx).ParseModule()
	if perr != nil {
		printDiagnostic(path, perr, color)
		return perr
	}

	a := analyzer.New()
	typed, aerr := a.AnalyzeModule(mod)
	if aerr != nil {
		printDiagnostic(path, aerr, color)
		return aerr
	}

	fmt.Printf("%s: ok (%d type(s), build %s)\n", path, len(typed.Defs), typed.BuildID)
	return nil
}

func printDiagnostic(path string, d *diagnostics.Error, color bool) {
	if color {
		fmt.Fprintf(os.Stderr, "\x1b[31m%s\x1b[0m\n", d.Error())
	} else {
		fmt.Fprintln(os.Stderr, d.Error())
	}
}

func runDumpTypes(argv []string) {
	fs := flag.NewFlagSet("velac dump-types", flag.ExitOnError)
	out := fs.String("o", "types.db", "sqlite output path")
	fs.Parse(argv)

	files := fs.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "velac dump-types: no input files")
		os.Exit(2)
	}

	a := analyzer.New()
	for _, f := range files {
		src, err := os.ReadFile(f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "velac: %s: %v\n", f, err)
			os.Exit(1)
		}
		lx := lexer.New(f, string(src))
		mod, perr := parser.New(f, lx).ParseModule()
		if perr != nil {
			fmt.Fprintln(os.Stderr, perr.Error())
			os.Exit(1)
		}
		if _, aerr := a.AnalyzeModule(mod); aerr != nil {
			fmt.Fprintln(os.Stderr, aerr.Error())
			os.Exit(1)
		}
	}

	if err := export.Dump(a.Types, *out); err != nil {
		fmt.Fprintf(os.Stderr, "velac: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("velac: wrote %s\n", *out)
}

func runServe(argv []string) {
	fs := flag.NewFlagSet("velac serve", flag.ExitOnError)
	addr := fs.String("addr", ":7777", "listen address")
	fs.Parse(argv)

	lis, err := net.Listen("tcp", *addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "velac serve: %v\n", err)
		os.Exit(1)
	}

	srv := grpc.NewServer()
	rpc.RegisterAnalyzerServer(srv, rpc.NewService())
	fmt.Printf("velac: serving analyzer on %s\n", *addr)
	if err := srv.Serve(lis); err != nil {
		fmt.Fprintf(os.Stderr, "velac serve: %v\n", err)
		os.Exit(1)
	}
}

func loadConfigOrDefault(path string) *config.ProjectConfig {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Default()
	}
	return cfg
}

func shouldColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	}
}
