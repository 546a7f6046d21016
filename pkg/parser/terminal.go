package parser

import (
	"saltino/pkg/lexer"
)

var terminals = func() map[string]bool {
	out := map[string]bool{}
	for t := lexer.EOF; t < lexer.ILLEGAL; t++ {
		out[t.String()] = true
	}
	return out
}()

// isTerminal checks if a symbol is a terminal
func (p *Parser) isTerminal(symbol string) bool {
	// Semantic actions are considered terminals
	if isAction(symbol) {
		return true
	}

	return terminals[symbol]
}

// matchTerminal checks if the current token matches the expected terminal
func (p *Parser) matchTerminal(expected string) bool {
	return p.currentToken.Type.String() == expected
}
