package builder

import (
	"saltino/pkg/ast"
	"saltino/pkg/lexer"
	"saltino/pkg/parser/stack"
)

// Builder assembles the syntax tree from the semantic actions the parser
// pops off its symbol stack. Nodes are kept on a node stack; markers on
// that stack delimit variable-length lists (block statements, call
// arguments).
type Builder struct {
	nodes        *stack.Stack[any]         // semantic stack of nodes and markers
	marks        *stack.Stack[lexer.Token] // tokens remembered by @mark
	currentToken lexer.Token               // last matched token
	function     *ast.Function             // function being built
	program      *ast.Program              // program being built
	functions    map[string]ast.Position   // declared functions, for duplicate detection
	errors       []string                  // semantic errors
	broken       bool                      // an action found an inconsistent stack
}

type blockMarker struct {
	pos ast.Position
}

type argsMarker struct{}

// NewBuilder creates a new builder instance
func NewBuilder() *Builder {
	return &Builder{
		nodes:     stack.NewStack[any](),
		marks:     stack.NewStack[lexer.Token](),
		program:   &ast.Program{},
		functions: map[string]ast.Position{},
		errors:    []string{},
	}
}

// SetCurrentToken records the token the parser just matched
func (b *Builder) SetCurrentToken(tok lexer.Token) {
	b.currentToken = tok
}

// Program returns the program built so far
func (b *Builder) Program() *ast.Program {
	if len(b.program.Functions) > 0 {
		b.program.Loc = b.program.Functions[0].Loc
	}

	return b.program
}

// Errors returns the list of semantic errors
func (b *Builder) Errors() []string {
	return b.errors
}

// Broken reports whether an action ran against an inconsistent node stack.
// This only happens after a syntax error.
func (b *Builder) Broken() bool {
	return b.broken
}

// Position converts a lexer position to a syntax tree position
func Position(p lexer.Position) ast.Position {
	return ast.Position{Line: p.Line, Column: p.Column}
}

func (b *Builder) push(n any) {
	b.nodes.Push(n)
}

func (b *Builder) popMark() lexer.Token {
	tok, ok := b.marks.Pop()
	if !ok {
		b.broken = true
		return b.currentToken
	}

	return tok
}

func (b *Builder) popExpr() ast.Expr {
	n, ok := b.nodes.Pop()
	if e, isExpr := n.(ast.Expr); ok && isExpr {
		return e
	}

	b.broken = true
	return &ast.EmptyList{Loc: Position(b.currentToken.Pos)}
}

func (b *Builder) popBlock() *ast.Block {
	n, ok := b.nodes.Pop()
	if blk, isBlock := n.(*ast.Block); ok && isBlock && blk != nil {
		return blk
	}

	b.broken = true
	return &ast.Block{Loc: Position(b.currentToken.Pos)}
}

// popOptionalBlock pops either a block or the nil pushed by @no_else
func (b *Builder) popOptionalBlock() *ast.Block {
	n, ok := b.nodes.Pop()
	if blk, isBlock := n.(*ast.Block); ok && isBlock {
		return blk
	}

	b.broken = true
	return nil
}
