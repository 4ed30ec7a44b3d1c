package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dekarrin/blockc/internal/ast"
	"github.com/dekarrin/blockc/internal/automaton"
	"github.com/dekarrin/blockc/internal/config"
	"github.com/dekarrin/blockc/internal/diag"
	"github.com/dekarrin/blockc/internal/grammar"
	"github.com/dekarrin/blockc/internal/lex"
	"github.com/dekarrin/blockc/internal/parser"
	"github.com/dekarrin/blockc/internal/parsetable"
	"github.com/dekarrin/blockc/internal/tac"
)

// runREPL starts an interactive session reading one block at a time from
// stdin and printing its TAC, grounded on the teacher's
// internal/input.InteractiveCommandReader, which wraps the same
// readline.Instance for its own command shell. Each line is compiled
// independently against a fresh symbol table (the language has no
// cross-statement persistence a REPL could usefully retain between
// blocks), since every program is a single top-level block per spec.md
// §4.1.
func runREPL(cfg config.Config) error {
	rl, err := readline.NewEx(&readline.Config{Prompt: "blockc> "})
	if err != nil {
		return fmt.Errorf("start readline: %w", err)
	}
	defer rl.Close()

	g := grammar.Lang()
	coll := automaton.Build(g)
	bag := diag.New()
	table, _, err := parsetable.Build(g, coll, bag)
	if err != nil {
		return fmt.Errorf("build parse table: %w", err)
	}
	if len(bag.Records) > 0 {
		fmt.Println(bag.String())
	}

	fmt.Println("blockc interactive session. Enter one block at a time; QUIT to exit.")

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "QUIT") {
			return nil
		}

		runOneBlock(table, line, cfg)
	}
}

func runOneBlock(table *parsetable.Table, src string, cfg config.Config) {
	bag := diag.New()
	tokens := lex.Scan(src)

	p := parser.New(table, table.Grammar, bag)
	if cfg.TraceParse {
		p.RegisterTraceListener(func(msg string) { fmt.Println(msg) })
	}

	prog, err := p.Parse(tokens)
	if err != nil {
		fmt.Println(bag.String())
		fmt.Printf("parse error: %s\n", err)
		return
	}

	fmt.Println(ast.Dump(prog))

	gen := tac.New(bag)
	gen.Generate(prog)
	fmt.Println(tac.Render(gen.Instructions))

	if len(bag.Records) > 0 {
		fmt.Println(bag.String())
	}
}
