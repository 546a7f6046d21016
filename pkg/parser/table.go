package parser

import (
	"fmt"
	"sort"
	"strings"
)

type Production struct {
	LHS string
	RHS []string
}

type ParsingTable map[string]map[string]Production

const (
	epsilon   = "ε"
	endMarker = "$"
	start     = "Program"
)

// Semantic actions ("@...") run when they reach the top of the stack; see
// the builder package for what each one does to the node stack.
var grammar = []Production{
	/* 0 */ {"Program", []string{"Func", "FuncList"}},
	/* 1 */ {"FuncList", []string{"Func", "FuncList"}},
	/* 2 */ {"FuncList", []string{epsilon}},
	/* 3 */ {"Func", []string{"def", "@mark", "id", "@func_start", "(", "Params", ")", "Block", "@func_end"}},
	/* 4 */ {"Params", []string{"id", "@param", "ParamTail"}},
	/* 5 */ {"Params", []string{epsilon}},
	/* 6 */ {"ParamTail", []string{",", "id", "@param", "ParamTail"}},
	/* 7 */ {"ParamTail", []string{epsilon}},

	/* 8 */ {"Block", []string{"{", "@block_start", "StmtList", "}", "@block_end"}},
	/* 9 */ {"StmtList", []string{"Stmt", "StmtList"}},
	/* 10 */ {"StmtList", []string{epsilon}},
	/* 11 */ {"Stmt", []string{"id", "@mark", "=", "Cond", "@assign"}},
	/* 12 */ {"Stmt", []string{"if", "@mark", "(", "Cond", ")", "Block", "Else", "@if"}},
	/* 13 */ {"Stmt", []string{"return", "@mark", "Cond", "@return"}},
	/* 14 */ {"Stmt", []string{"Block"}},
	/* 15 */ {"Else", []string{"else", "Block"}},
	/* 16 */ {"Else", []string{"@no_else"}},

	/* 17 */ {"Cond", []string{"NotExpr", "Logic"}},
	/* 18 */ {"Logic", []string{"and", "NotExpr", "@and", "Logic"}},
	/* 19 */ {"Logic", []string{"or", "NotExpr", "@or", "Logic"}},
	/* 20 */ {"Logic", []string{epsilon}},
	/* 21 */ {"NotExpr", []string{"!", "@mark", "NotExpr", "@not"}},
	/* 22 */ {"NotExpr", []string{"Rel"}},
	/* 23 */ {"Rel", []string{"Cons", "RelTail"}},
	/* 24 */ {"RelTail", []string{"RelOp", "Cons", "@rel"}},
	/* 25 */ {"RelTail", []string{epsilon}},
	/* 26 */ {"RelOp", []string{"==", "@mark"}},
	/* 27 */ {"RelOp", []string{"!=", "@mark"}},
	/* 28 */ {"RelOp", []string{"<", "@mark"}},
	/* 29 */ {"RelOp", []string{"<=", "@mark"}},
	/* 30 */ {"RelOp", []string{">", "@mark"}},
	/* 31 */ {"RelOp", []string{">=", "@mark"}},

	/* 32 */ {"Cons", []string{"Sum", "ConsTail"}},
	/* 33 */ {"ConsTail", []string{"::", "Cons", "@cons"}},
	/* 34 */ {"ConsTail", []string{epsilon}},
	/* 35 */ {"Sum", []string{"Term", "SumTail"}},
	/* 36 */ {"SumTail", []string{"+", "Term", "@add", "SumTail"}},
	/* 37 */ {"SumTail", []string{"-", "Term", "@sub", "SumTail"}},
	/* 38 */ {"SumTail", []string{epsilon}},
	/* 39 */ {"Term", []string{"Unary", "TermTail"}},
	/* 40 */ {"TermTail", []string{"*", "Unary", "@mul", "TermTail"}},
	/* 41 */ {"TermTail", []string{"/", "Unary", "@div", "TermTail"}},
	/* 42 */ {"TermTail", []string{"%", "Unary", "@mod", "TermTail"}},
	/* 43 */ {"TermTail", []string{epsilon}},
	/* 44 */ {"Unary", []string{"-", "@mark", "Unary", "@neg"}},
	/* 45 */ {"Unary", []string{"+", "@mark", "Unary", "@pos"}},
	/* 46 */ {"Unary", []string{"Power"}},
	/* 47 */ {"Power", []string{"Postfix", "PowTail"}},
	/* 48 */ {"PowTail", []string{"^", "Unary", "@pow"}},
	/* 49 */ {"PowTail", []string{epsilon}},
	/* 50 */ {"Postfix", []string{"Primary", "CallTail"}},
	/* 51 */ {"CallTail", []string{"(", "@call_start", "Args", ")", "@call_end", "CallTail"}},
	/* 52 */ {"CallTail", []string{epsilon}},
	/* 53 */ {"Args", []string{"Cond", "ArgTail"}},
	/* 54 */ {"Args", []string{epsilon}},
	/* 55 */ {"ArgTail", []string{",", "Cond", "ArgTail"}},
	/* 56 */ {"ArgTail", []string{epsilon}},

	/* 57 */ {"Primary", []string{"num", "@int"}},
	/* 58 */ {"Primary", []string{"id", "@ident"}},
	/* 59 */ {"Primary", []string{"[]", "@empty"}},
	/* 60 */ {"Primary", []string{"true", "@true"}},
	/* 61 */ {"Primary", []string{"false", "@false"}},
	/* 62 */ {"Primary", []string{"(", "Cond", ")"}},
	/* 63 */ {"Primary", []string{"head", "@mark", "(", "Cond", ")", "@head"}},
	/* 64 */ {"Primary", []string{"tail", "@mark", "(", "Cond", ")", "@tail"}},
}

var defaultTable = mustBuildTable(grammar)

// NewParsingTable returns the LL(1) table for the Saltino grammar
func NewParsingTable() ParsingTable {
	return defaultTable
}

func mustBuildTable(g []Production) ParsingTable {
	table, conflicts := buildTable(g)
	if len(conflicts) > 0 {
		panic("parser: grammar is not LL(1):\n" + strings.Join(conflicts, "\n"))
	}

	return table
}

func isAction(symbol string) bool {
	return strings.HasPrefix(symbol, "@")
}

// buildTable computes FIRST and FOLLOW sets for g and fills the table.
// Every cell claimed by two productions is reported as a conflict.
func buildTable(g []Production) (ParsingTable, []string) {
	nonterminals := map[string]bool{}
	for _, p := range g {
		nonterminals[p.LHS] = true
	}

	first := map[string]map[string]bool{}
	follow := map[string]map[string]bool{}
	for nt := range nonterminals {
		first[nt] = map[string]bool{}
		follow[nt] = map[string]bool{}
	}
	follow[start][endMarker] = true

	// firstOf returns FIRST of a symbol sequence; epsilon is included when
	// the whole sequence can vanish.
	firstOf := func(seq []string) map[string]bool {
		out := map[string]bool{}
		for _, sym := range seq {
			if sym == epsilon || isAction(sym) {
				continue
			}
			if !nonterminals[sym] {
				out[sym] = true
				return out
			}
			for t := range first[sym] {
				if t != epsilon {
					out[t] = true
				}
			}
			if !first[sym][epsilon] {
				return out
			}
		}
		out[epsilon] = true
		return out
	}

	for changed := true; changed; {
		changed = false
		for _, p := range g {
			for t := range firstOf(p.RHS) {
				if !first[p.LHS][t] {
					first[p.LHS][t] = true
					changed = true
				}
			}
		}
	}

	for changed := true; changed; {
		changed = false
		for _, p := range g {
			for i, sym := range p.RHS {
				if !nonterminals[sym] {
					continue
				}
				rest := firstOf(p.RHS[i+1:])
				for t := range rest {
					if t == epsilon {
						continue
					}
					if !follow[sym][t] {
						follow[sym][t] = true
						changed = true
					}
				}
				if rest[epsilon] {
					for t := range follow[p.LHS] {
						if !follow[sym][t] {
							follow[sym][t] = true
							changed = true
						}
					}
				}
			}
		}
	}

	table := ParsingTable{}
	var conflicts []string
	set := func(lhs, t string, p Production) {
		if table[lhs] == nil {
			table[lhs] = map[string]Production{}
		}
		if prev, ok := table[lhs][t]; ok {
			conflicts = append(conflicts, fmt.Sprintf("%s on %q: %v vs %v", lhs, t, prev.RHS, p.RHS))
			return
		}
		table[lhs][t] = p
	}

	for _, p := range g {
		f := firstOf(p.RHS)
		for t := range f {
			if t != epsilon {
				set(p.LHS, t, p)
			}
		}
		if f[epsilon] {
			for t := range follow[p.LHS] {
				set(p.LHS, t, p)
			}
		}
	}

	sort.Strings(conflicts)
	return table, conflicts
}

// expectedTerminals lists the terminals a nonterminal can start with, for
// error messages.
func (t ParsingTable) expectedTerminals(nonterminal string) []string {
	var out []string
	for term := range t[nonterminal] {
		out = append(out, term)
	}
	sort.Strings(out)
	return out
}
