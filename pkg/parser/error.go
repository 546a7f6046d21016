package parser

import (
	"fmt"
	"strings"

	"saltino/pkg/color"
	"saltino/pkg/lexer"
)

// handleTerminalError is called when a terminal on the stack doesn't match current token.
// It only reports an error. It does NOT advance tokens or modify the stack.
func (p *Parser) handleTerminalError(expected string) {
	// Specific: assignment without identifier like `= 42`
	if expected == "id" && p.currentToken.Type == lexer.ASSIGN {
		p.addError("Missing identifier")
		return
	}

	// Default contextual error
	p.addContextualError(expected)
}

// handleNonTerminalError is called when there is no production for top non-terminal and current token.
// It only reports an error. It does NOT advance tokens or modify the stack.
func (p *Parser) handleNonTerminalError(expected string) {
	// Argument list interrupted by a new statement or a closing brace,
	// e.g. `x = f(1` followed by `}`
	if expected == "Args" || expected == "ArgTail" {
		if p.isStatementBoundary(p.currentToken.Type) {
			p.addError("Missing closing parenthesis")
			return
		}
	}

	// Parameter list running into the body: def f(a {
	if (expected == "Params" || expected == "ParamTail") && p.currentToken.Type == lexer.LBRACE {
		p.addError("Missing closing parenthesis")
		return
	}

	// Input ended inside a block
	if expected == "StmtList" && p.currentToken.Type == lexer.EOF {
		p.addError("Missing closing brace")
		return
	}
	if p.currentToken.Type == lexer.EOF && expected != start {
		p.addError("Unexpected end of input")
		return
	}

	// Empty condition: if ()
	if expected == "Cond" && p.currentToken.Type == lexer.RPAREN {
		p.addError("Empty condition")
		return
	}

	// Default contextual error
	p.addContextualError(expected)
}

// handleUnexpectedEndOfInput is called when the grammar is satisfied but tokens remain
func (p *Parser) handleUnexpectedEndOfInput() {
	p.addError(fmt.Sprintf("Unexpected token '%s' at end of input", p.currentToken.Lexeme))
}

// addError records a parsing error with location. Only the first error
// reported at a given token is kept; later ones are usually cascades.
func (p *Parser) addError(msg string) {
	pos := p.currentToken.Pos
	if p.errorAt[pos.Offset] {
		return
	}
	p.errorAt[pos.Offset] = true

	formatted := color.RedText(msg) + " at " + color.YellowText(fmt.Sprintf("Line: %d, Column %d", pos.Line, pos.Column))
	p.errors = append(p.errors, formatted)
}

// isExpressionStart checks if the non-terminal derives an expression
func (p *Parser) isExpressionStart(sym string) bool {
	switch sym {
	case "Cond", "NotExpr", "Rel", "Cons", "Sum", "Term", "Unary", "Power", "Postfix", "Primary":
		return true
	default:
		return false
	}
}

// isStatementBoundary checks if a token type indicates the start of a new statement or block boundary
func (p *Parser) isStatementBoundary(t lexer.TokenType) bool {
	switch t {
	case lexer.ID, lexer.IF, lexer.RETURN, lexer.ELSE, lexer.DEF, lexer.LBRACE, lexer.RBRACE, lexer.EOF:
		return true
	default:
		return false
	}
}

// addContextualError generates a contextual error message based on expected and current token
func (p *Parser) addContextualError(expected string) {
	current := p.currentToken
	p.addError(p.categorizeError(expected, current))
}

// categorizeError provides a specific error message based on expected symbol and current token
func (p *Parser) categorizeError(expected string, current lexer.Token) string {
	// Delimiters
	switch expected {
	case ")":
		return "Missing closing parenthesis"
	case "}":
		return "Missing closing brace"
	case "{", "Block":
		return "Missing opening brace"
	case "=":
		return "Missing assignment operator"
	case "(":
		if current.Type == lexer.LBRACE {
			return "Wrong bracket type - expected parenthesis"
		}
		return "Missing opening parenthesis"
	}

	// Identifiers
	if expected == "id" {
		if current.Type.GetCategory() == lexer.KEYWORD {
			return "Cannot use reserved keyword as identifier"
		}
		return "Expected identifier"
	}

	switch expected {
	case "Program", "FuncList", "Func", "def":
		return "Expected function definition"
	case "Stmt", "StmtList":
		return "Expected statement"
	case "Params", "ParamTail":
		return "Expected parameter list"
	}

	// Expressions missing before ) or , or a new statement
	if p.isExpressionStart(expected) {
		if current.Type == lexer.RPAREN || current.Type == lexer.COMMA || p.isStatementBoundary(current.Type) && current.Type != lexer.ID {
			return "Missing expression"
		}
		return fmt.Sprintf("Unexpected '%s', expected one of %s", current.Lexeme, strings.Join(p.table.expectedTerminals(expected), " "))
	}

	return "Syntax error"
}
