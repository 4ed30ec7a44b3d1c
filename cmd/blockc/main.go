/*
Blockc compiles a single source file of the block language through the
full front end: lexing, LR(1) parsing, AST construction, and
three-address-code generation.

Usage:

	blockc [flags] FILE
	blockc [flags] --repl

The flags are:

	-v, --version
		Give the current version of blockc and then exit.

	--dump-tokens
		Print every token the scanner produces before parsing.

	--dump-ast
		Print the constructed AST as an indented tree.

	--dump-tac
		Print the generated three-address code.

	--dump-symtab
		Print the final symbol table.

	--trace-parse
		Print each shift/reduce/goto/accept/error action as the parser
		takes it.

	--algorithm NAME
		Select the canonical-collection construction to use. Currently only
		"clr1" is implemented.

	--table-cache DIR
		Cache the synthesized ACTION/GOTO table under DIR so repeated
		invocations skip LR(1) construction.

	--config FILE
		Load default flag values from a TOML config file; explicit flags
		still override it.

	--repl
		Start an interactive session that reads one block at a time from
		stdin (via the chzyer/readline line editor) and prints its TAC immediately, instead of
		compiling a single file.

Exit status is 0 if the source was accepted with no errors, and non-zero
if parsing failed or semantic errors were logged during TAC generation.
*/
package main

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dekarrin/blockc/internal/ast"
	"github.com/dekarrin/blockc/internal/automaton"
	"github.com/dekarrin/blockc/internal/config"
	"github.com/dekarrin/blockc/internal/diag"
	"github.com/dekarrin/blockc/internal/grammar"
	"github.com/dekarrin/blockc/internal/lex"
	"github.com/dekarrin/blockc/internal/parser"
	"github.com/dekarrin/blockc/internal/parsetable"
	"github.com/dekarrin/blockc/internal/tac"
	"github.com/spf13/pflag"
)

// Version is blockc's reported version string.
const Version = "0.1.0"

const (
	ExitSuccess = iota
	ExitParseError
	ExitSemanticError
	ExitUsageError
	ExitInitError
)

var (
	flagVersion    = pflag.BoolP("version", "v", false, "Give the current version of blockc and then exit.")
	flagDumpTokens = pflag.Bool("dump-tokens", false, "Print every token the scanner produces.")
	flagDumpAST    = pflag.Bool("dump-ast", false, "Print the constructed AST.")
	flagDumpTAC    = pflag.Bool("dump-tac", false, "Print the generated three-address code.")
	flagDumpSymtab = pflag.Bool("dump-symtab", false, "Print the final symbol table.")
	flagTraceParse = pflag.Bool("trace-parse", false, "Print each parser action as it is taken.")
	flagAlgorithm  = pflag.String("algorithm", "", "Canonical-collection construction to use (only \"clr1\" is implemented).")
	flagTableCache = pflag.String("table-cache", "", "Directory to cache the synthesized ACTION/GOTO table in.")
	flagConfig     = pflag.String("config", "", "Load default flag values from the given TOML file.")
	flagRepl       = pflag.Bool("repl", false, "Start an interactive read-eval-print session instead of compiling a file.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("blockc %s\n", Version)
		os.Exit(ExitSuccess)
	}

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: loading config: %s\n", err)
		os.Exit(ExitInitError)
	}
	applyFlagOverrides(&cfg)

	if *flagRepl {
		if err := runREPL(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			os.Exit(ExitInitError)
		}
		os.Exit(ExitSuccess)
	}

	args := pflag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: blockc [flags] FILE\nDo -h for help.")
		os.Exit(ExitUsageError)
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(ExitInitError)
	}

	table, bag, err := loadOrBuildTable(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(ExitInitError)
	}

	os.Exit(compile(string(src), table, bag))
}

// applyFlagOverrides copies any explicitly-passed flag over cfg's loaded
// (or default) value; unset flags leave the config file's value in place.
func applyFlagOverrides(cfg *config.Config) {
	if pflag.Lookup("algorithm").Changed {
		cfg.Algorithm = *flagAlgorithm
	}
	if pflag.Lookup("table-cache").Changed {
		cfg.TableCache = *flagTableCache
	}
	if pflag.Lookup("trace-parse").Changed {
		cfg.TraceParse = *flagTraceParse
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = "clr1"
	}
}

// loadOrBuildTable returns the grammar's ACTION/GOTO table, reading it from
// cfg.TableCache if a cache file already exists there and building it fresh
// (writing it back to the cache) otherwise.
func loadOrBuildTable(cfg config.Config) (*parsetable.Table, *diag.Bag, error) {
	bag := diag.New()
	g := grammar.Lang()

	if cfg.Algorithm != "clr1" {
		return nil, nil, fmt.Errorf("unsupported --algorithm %q (only \"clr1\" is implemented)", cfg.Algorithm)
	}

	cachePath := ""
	if cfg.TableCache != "" {
		// the file name carries a hash of the grammar's productions, so a
		// changed grammar never reads a table built from an older one
		h := sha256.New()
		for _, p := range g.Productions {
			fmt.Fprintln(h, p.String())
		}
		cachePath = filepath.Join(cfg.TableCache, fmt.Sprintf("blockc.clr1.%x.table", h.Sum(nil)[:8]))
		if data, err := os.ReadFile(cachePath); err == nil {
			if table, decErr := parsetable.Decode(data, g); decErr == nil {
				return table, bag, nil
			}
		}
	}

	coll := automaton.Build(g)
	table, _, err := parsetable.Build(g, coll, bag)
	if err != nil {
		return nil, nil, err
	}

	if cachePath != "" {
		if data, encErr := parsetable.Encode(table); encErr == nil {
			_ = os.MkdirAll(cfg.TableCache, 0o755)
			_ = os.WriteFile(cachePath, data, 0o644)
		}
	}

	return table, bag, nil
}

// compile runs the full pipeline over src and returns the process exit
// code: ExitSuccess if accepted with no errors, ExitParseError if the
// parser could not recover, ExitSemanticError if it parsed but any
// error-severity diagnostic was logged (a recovered lexical or syntax error,
// or a semantic error from TAC generation).
func compile(src string, table *parsetable.Table, bag *diag.Bag) int {
	g := table.Grammar
	tokens := lex.Scan(src)

	if *flagDumpTokens {
		for _, t := range tokens {
			fmt.Println(t.String())
		}
	}

	p := parser.New(table, g, bag)
	if *flagTraceParse {
		p.RegisterTraceListener(func(msg string) { fmt.Println(msg) })
	}

	prog, err := p.Parse(tokens)
	if err != nil {
		fmt.Fprintln(os.Stderr, bag.String())
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		return ExitParseError
	}

	if *flagDumpAST {
		fmt.Println(ast.Dump(prog))
	}

	gen := tac.New(bag)
	gen.Generate(prog)

	if *flagDumpTAC {
		fmt.Println(tac.Render(gen.Instructions))
	}
	if *flagDumpSymtab {
		fmt.Println(gen.Symbols.String())
	}

	if bag.HasErrors() {
		fmt.Fprintln(os.Stderr, bag.String())
		return ExitSemanticError
	}
	if len(bag.Records) > 0 {
		fmt.Fprintln(os.Stderr, bag.String())
	}
	return ExitSuccess
}
