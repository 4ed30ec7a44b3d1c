package grammar

// Lang builds the fixed grammar of the object language described by
// spec.md §4.1: nested blocks, typed (possibly array) declarations,
// assignment, if/else with the dangling-else ambiguity resolved by splitting
// statements into matched_stmt/unmatched_stmt, while/do-while/break, and a
// boolean/arithmetic expression cascade (bool -> join -> equality -> rel ->
// expr -> term -> unary -> factor) with loc left-recursive over array
// subscripts. Production ids are assigned in the declaration order below,
// then shifted by one when Finalize prepends the augmentation rule S' →
// program at id 0, so Lang().Production(1) is always "program -> block".
func Lang() *Grammar {
	g := New()

	for _, t := range []string{
		"T_ID", "T_NUM", "T_REAL", "T_BASIC",
		"if", "else", "while", "do", "break", "true", "false",
		"=", "||", "&&", "==", "!=", "<", "<=", ">", ">=",
		"+", "-", "*", "/", "!",
		"{", "}", ";", "[", "]", "(", ")",
		EndOfInput,
	} {
		g.AddTerm(t)
	}

	g.AddRule("program", "block")                               // 1
	g.AddRule("block", "{", "decls", "stmts", "}")               // 2
	g.AddRule("decls", "decls", "decl")                          // 3
	g.AddRule("decls")                                           // 4 (ε)
	g.AddRule("decl", "type", "T_ID", ";")                       // 5
	g.AddRule("type", "T_BASIC")                                 // 6
	g.AddRule("type", "type", "[", "T_NUM", "]")                 // 7
	g.AddRule("stmts", "stmts", "stmt")                          // 8
	g.AddRule("stmts")                                           // 9 (ε)
	g.AddRule("stmt", "matched_stmt")                            // 10
	g.AddRule("stmt", "unmatched_stmt")                          // 11

	g.AddRule("matched_stmt", "if", "(", "bool", ")", "matched_stmt", "else", "matched_stmt") // 12
	g.AddRule("matched_stmt", "while", "(", "bool", ")", "matched_stmt")                      // 13
	g.AddRule("matched_stmt", "do", "matched_stmt", "while", "(", "bool", ")", ";")            // 14
	g.AddRule("matched_stmt", "assign", ";")                                                  // 15
	g.AddRule("matched_stmt", "break", ";")                                                   // 16
	g.AddRule("matched_stmt", "block")                                                        // 17

	g.AddRule("unmatched_stmt", "if", "(", "bool", ")", "stmt")                                       // 18
	g.AddRule("unmatched_stmt", "if", "(", "bool", ")", "matched_stmt", "else", "unmatched_stmt")      // 19
	g.AddRule("unmatched_stmt", "while", "(", "bool", ")", "unmatched_stmt")                           // 20

	g.AddRule("assign", "loc", "=", "bool") // 21

	g.AddRule("loc", "T_ID")                    // 22
	g.AddRule("loc", "loc", "[", "T_NUM", "]")   // 23

	g.AddRule("bool", "bool", "||", "join") // 24
	g.AddRule("bool", "join")               // 25

	g.AddRule("join", "join", "&&", "equality") // 26
	g.AddRule("join", "equality")                // 27

	g.AddRule("equality", "equality", "==", "rel") // 28
	g.AddRule("equality", "equality", "!=", "rel") // 29
	g.AddRule("equality", "rel")                    // 30

	g.AddRule("rel", "expr", "<", "expr")  // 31
	g.AddRule("rel", "expr", "<=", "expr") // 32
	g.AddRule("rel", "expr", ">", "expr")  // 33
	g.AddRule("rel", "expr", ">=", "expr") // 34
	g.AddRule("rel", "expr")                // 35

	g.AddRule("expr", "expr", "+", "term") // 36
	g.AddRule("expr", "expr", "-", "term") // 37
	g.AddRule("expr", "term")               // 38

	g.AddRule("term", "term", "*", "unary") // 39
	g.AddRule("term", "term", "/", "unary") // 40
	g.AddRule("term", "unary")               // 41

	g.AddRule("unary", "!", "unary") // 42
	g.AddRule("unary", "-", "unary") // 43
	g.AddRule("unary", "factor")      // 44

	g.AddRule("factor", "(", "bool", ")") // 45
	g.AddRule("factor", "loc")            // 46
	g.AddRule("factor", "T_NUM")    // 47
	g.AddRule("factor", "T_REAL")   // 48
	g.AddRule("factor", "true")     // 49
	g.AddRule("factor", "false")    // 50

	g.Finalize("program")
	g.ComputeFirstSets(nil)

	return g
}
