package lexer

import (
	"fmt"
)

type TokenType int
type TokenCategory int

type Token struct {
	Type    TokenType // Type of the token
	Lexeme  string    // Actual string from source code
	Literal string    // Literal value (if applicable), empty string if not
	Pos     Position  // Position in source code
}

// NewToken creates a new Token instance
func NewToken(tokenType TokenType, lexeme string, literal string, Pos Position) Token {
	return Token{
		Type:    tokenType,
		Lexeme:  lexeme,
		Literal: literal,
		Pos:     Pos,
	}
}

const (
	NONE TokenCategory = iota
	KEYWORD
	IDENTIFIER
	LITERAL
	OPERATOR
	DELIMITER
)

const (
	EOF TokenType = iota // End of file

	DEF    // def
	RETURN // return
	IF     // if
	ELSE   // else
	HEAD   // head
	TAIL   // tail
	AND    // and
	OR     // or
	TRUE   // true
	FALSE  // false

	ID    // id (identifier)
	NUM   // num (integer)
	EMPTY // []

	ASSIGN // =
	PLUS   // +
	MINUS  // -
	MULT   // *
	DIV    // /
	MOD    // %
	POW    // ^
	CONS   // ::
	NOT    // !
	LT     // <
	GT     // >
	LE     // <=
	GE     // >=
	EQ     // ==
	NE     // !=

	COMMA  // ,
	LPAREN // (
	RPAREN // )
	LBRACE // {
	RBRACE // }

	ILLEGAL // illegal token
)

var Keywords = map[string]TokenType{
	"def":    DEF,
	"return": RETURN,
	"if":     IF,
	"else":   ELSE,
	"head":   HEAD,
	"tail":   TAIL,
	"and":    AND,
	"or":     OR,
	"true":   TRUE,
	"false":  FALSE,
}

var tokenNames = map[TokenType]string{
	DEF:     "def",
	RETURN:  "return",
	IF:      "if",
	ELSE:    "else",
	HEAD:    "head",
	TAIL:    "tail",
	AND:     "and",
	OR:      "or",
	TRUE:    "true",
	FALSE:   "false",
	ID:      "id",
	NUM:     "num",
	EMPTY:   "[]",
	ASSIGN:  "=",
	PLUS:    "+",
	MINUS:   "-",
	MULT:    "*",
	DIV:     "/",
	MOD:     "%",
	POW:     "^",
	CONS:    "::",
	NOT:     "!",
	LT:      "<",
	GT:      ">",
	LE:      "<=",
	GE:      ">=",
	EQ:      "==",
	NE:      "!=",
	COMMA:   ",",
	LPAREN:  "(",
	RPAREN:  ")",
	LBRACE:  "{",
	RBRACE:  "}",
	ILLEGAL: "illegal",
	EOF:     "$",
}

// TokenToString converts a TokenType to its grammar symbol
func (t Token) TokenToString() (string, bool) {
	str, ok := tokenNames[t.Type]
	return str, ok
}

// String returns a string representation of the Token
func (t Token) String() string {
	if t.Literal == "" {
		return fmt.Sprintf("T_{%s, %v, nil, %s}",
			t.Type, t.Lexeme, t.Pos.String())
	}

	return fmt.Sprintf("T_{%s, %v, %q, %s}",
		t.Type, t.Lexeme, t.Literal, t.Pos.String())
}

// String returns a string representation of the TokenType
func (t TokenType) String() string {
	if str, ok := (Token{Type: t}).TokenToString(); ok {
		return str
	}

	return fmt.Sprintf("UNKNOWN(%d)", int(t))
}

// GetCategory returns the category of the token
func (t TokenType) GetCategory() TokenCategory {
	switch t {
	case DEF, RETURN, IF, ELSE, HEAD, TAIL, AND, OR, TRUE, FALSE:
		return KEYWORD
	case ID:
		return IDENTIFIER
	case NUM, EMPTY:
		return LITERAL
	case ASSIGN, PLUS, MINUS, MULT, DIV, MOD, POW, CONS, NOT, LT, GT, LE, GE, EQ, NE:
		return OPERATOR
	case COMMA, LPAREN, RPAREN, LBRACE, RBRACE:
		return DELIMITER
	default:
		return NONE
	}
}

// IsKeyword checks if the given identifier is a keyword and returns its TokenType if it is
func IsKeyword(identifier string) (TokenType, bool) {
	tokenType, ok := Keywords[identifier]
	return tokenType, ok
}
