package parser

import (
	"errors"
	"fmt"
	"strings"

	"saltino/pkg/ast"
	"saltino/pkg/lexer"
	"saltino/pkg/parser/builder"
	"saltino/pkg/parser/stack"
)

// ErrSyntax is wrapped by the error Parse returns when the source is not a
// well-formed program.
var ErrSyntax = errors.New("syntax error")

type Parser struct {
	stack        *stack.Stack[string] // LL(1) parsing stack
	lexer        *lexer.Lexer         // lexer instance
	builder      *builder.Builder     // syntax tree builder
	currentToken lexer.Token          // current token
	table        ParsingTable         // LL(1) parsing table
	errors       []string             // list of errors
	errorAt      map[int]bool         // source offsets that already have an error
}

// NewParser creates a new parser instance
func NewParser(l *lexer.Lexer) *Parser {
	p := &Parser{
		lexer:   l,
		builder: builder.NewBuilder(),
		table:   NewParsingTable(),
		stack:   stack.NewStack(endMarker, start), // Program is start state and $ is bottom of the stack
		errors:  []string{},
		errorAt: map[int]bool{},
	}

	// Initialize current token
	p.nextToken()

	return p
}

// ParseString parses a complete program from source text
func ParseString(src string) (*ast.Program, error) {
	return NewParser(lexer.NewLexer(src)).Parse()
}

// Parse runs the LL(1) driver over the whole input and returns the program.
// All syntax errors found are reported together.
func (p *Parser) Parse() (*ast.Program, error) {
	for p.stack.Size() > 1 { // While stack is not empty (only $ remains)
		top, _ := p.stack.Pop()

		if p.isTerminal(top) {
			// Check if this is a semantic action
			if isAction(top) {
				p.builder.ExecuteAction(top)
			} else if p.matchTerminal(top) {
				p.builder.SetCurrentToken(p.currentToken)
				p.nextToken()
			} else {
				p.handleTerminalError(top)
			}
		} else {
			// Non-terminal: pick production from table
			if production, ok := p.table[top][p.currentToken.Type.String()]; ok {
				rhs := production.RHS
				// If production is ε, do not push anything
				if len(rhs) == 1 && rhs[0] == epsilon {
					continue
				}

				// Push RHS of production onto stack in reverse order (so first symbol is on top)
				for i := len(rhs) - 1; i >= 0; i-- {
					if rhs[i] != epsilon {
						p.stack.Push(rhs[i])
					}
				}
			} else {
				p.handleNonTerminalError(top)
			}
		}
	}

	if p.currentToken.Type != lexer.EOF {
		p.handleUnexpectedEndOfInput()
	}

	if len(p.errors) == 0 {
		p.errors = append(p.errors, p.builder.Errors()...)
	}
	if len(p.errors) == 0 && p.builder.Broken() {
		p.addError("Malformed program")
	}
	if len(p.errors) > 0 {
		return nil, fmt.Errorf("%w: %d error(s)\n%s", ErrSyntax, len(p.errors), strings.Join(p.errors, "\n"))
	}

	return p.builder.Program(), nil
}

// nextToken advances to the next token from the lexer. Illegal characters
// are reported and skipped.
func (p *Parser) nextToken() {
	p.currentToken = p.lexer.NextToken()
	for p.currentToken.Type == lexer.ILLEGAL {
		p.addError(fmt.Sprintf("Illegal character %q", p.currentToken.Lexeme))
		p.currentToken = p.lexer.NextToken()
	}
}

// Errors returns the list of parsing errors
func (p *Parser) Errors() []string {
	return p.errors
}
