package parser

import (
	"fmt"

	"github.com/dekarrin/blockc/internal/ast"
	"github.com/dekarrin/blockc/internal/diag"
	"github.com/dekarrin/blockc/internal/grammar"
	"github.com/dekarrin/blockc/internal/ice"
	"github.com/dekarrin/blockc/internal/lex"
	"github.com/dekarrin/blockc/internal/parsetable"
	"github.com/dekarrin/blockc/internal/util"
)

// syncTerminals are the panic-mode recovery synchronization points of
// spec.md §4.4.
var syncTerminals = map[string]bool{";": true, "}": true}

// Parser drives the table-driven shift/reduce automaton over a fixed
// ACTION/GOTO table, dispatching each reduction to the production's AST
// builder and logging lexical/syntax errors to a diag.Bag as it goes.
type Parser struct {
	table *parsetable.Table
	g     *grammar.Grammar
	bag   *diag.Bag
	trace func(string)
}

// New creates a Parser over the given table and grammar. bag receives every
// lexical and syntax error encountered during Parse.
func New(table *parsetable.Table, g *grammar.Grammar, bag *diag.Bag) *Parser {
	return &Parser{table: table, g: g, bag: bag}
}

// RegisterTraceListener installs fn to receive a line of text for every
// shift, reduce, goto, and recovery step, mirroring the teacher's
// notifyTrace*/notifyStatePush/notifyAction family in
// internal/ictiobus/parse/lr.go. Supplements spec.md §12's --trace-parse
// CLI flag.
func (p *Parser) RegisterTraceListener(fn func(string)) {
	p.trace = fn
}

func (p *Parser) emit(format string, args ...interface{}) {
	if p.trace != nil {
		p.trace(fmt.Sprintf(format, args...))
	}
}

// Parse consumes the token stream and returns the AST root on Accept. State
// is (state_stack, symbol_stack, input_cursor), per spec.md §4.4; the
// initial state is {states: [0], symbols: [], cursor: 0}.
func (p *Parser) Parse(tokens []lex.Token) (*ast.Program, error) {
	var stateStack util.Stack[int]
	stateStack.Push(0)
	var symStack util.Stack[StackEntry]

	cursor := 0

	for {
		tok := tokens[cursor]
		term := lex.TerminalOf(tok)

		if term == "T_ERROR" {
			p.bag.Addf(diag.Error, diag.PhaseLex, tok.Line, tok.Col, "unrecognized token %q", tok.Lexeme)
			p.emit("skip %s", tok)
			cursor++
			continue
		}

		action := p.table.ActionAt(stateStack.Peek(), term)

		switch action.Type {
		case parsetable.ActionShift:
			p.emit("shift %s -> state %d", tok, action.State)
			stateStack.Push(action.State)
			shifted := tok
			symStack.Push(StackEntry{Token: &shifted})
			cursor++

		case parsetable.ActionReduce:
			prod := p.g.Production(action.Prod)
			k := prod.Len()

			popped := symStack.PopN(k)
			for i := 0; i < k; i++ {
				stateStack.Pop()
			}

			value := build(prod, popped, tok)

			target, ok := p.table.GotoAt(stateStack.Peek(), prod.LHS)
			if !ok {
				ice.Fatal("no GOTO[%d, %s] after reducing by %s", stateStack.Peek(), prod.LHS, prod)
			}
			p.emit("reduce by %s -> goto state %d", prod, target)
			stateStack.Push(target)
			symStack.Push(StackEntry{Value: value})

		case parsetable.ActionAccept:
			p.emit("accept")
			top := symStack.Pop()
			prog, ok := top.Value.(*ast.Program)
			if !ok {
				ice.Fatal("symbol stack top on accept was not *ast.Program")
			}
			return prog, nil

		default: // parsetable.ActionError
			p.bag.Addf(diag.Error, diag.PhaseParse, tok.Line, tok.Col, "unexpected %s", tok)
			p.emit("error at %s in state %d; entering panic-mode recovery", tok, stateStack.Peek())

			newCursor, recovered := p.recover(tokens, cursor, stateStack.Peek())
			if !recovered {
				return nil, ice.Newf("unrecoverable syntax error: reached end of input while synchronizing after %s", tok)
			}
			cursor = newCursor
		}
	}
}

// recover implements spec.md §4.4's panic-mode recovery: advance the
// cursor one token at a time until either ACTION is defined for the
// current state and the new token's terminal, or the new terminal is a
// synchronization point (";" or "}"), in which case that token is also
// consumed. Reaching EOF first is unrecoverable.
func (p *Parser) recover(tokens []lex.Token, cursor int, state int) (int, bool) {
	for cursor < len(tokens) {
		tok := tokens[cursor]
		if tok.Kind == lex.KindEOF {
			return cursor, false
		}

		term := lex.TerminalOf(tok)
		if p.table.ActionAt(state, term).Type != parsetable.ActionError {
			return cursor, true
		}
		if syncTerminals[term] {
			return cursor + 1, true
		}
		cursor++
	}
	return cursor, false
}
