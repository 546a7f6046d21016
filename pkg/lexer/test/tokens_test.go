package lexer_test

import (
	"saltino/pkg/lexer"
	"testing"
)

func TestTokens(t *testing.T) {
	input := "def length(xs) {\n" +
		"	if (xs == []) {\n" +
		"		return 0\n" +
		"	} else {\n" +
		"		return 1 + length(tail(xs))\n" +
		"	}\n" +
		"}\n" +
		"def main() { return length(5 :: 4 :: []) }"
	mylexer := lexer.NewLexer(input)

	expectedTokens := []lexer.TokenType{
		lexer.DEF, lexer.ID, lexer.LPAREN, lexer.ID, lexer.RPAREN, lexer.LBRACE,
		lexer.IF, lexer.LPAREN, lexer.ID, lexer.EQ, lexer.EMPTY, lexer.RPAREN, lexer.LBRACE,
		lexer.RETURN, lexer.NUM,
		lexer.RBRACE, lexer.ELSE, lexer.LBRACE,
		lexer.RETURN, lexer.NUM, lexer.PLUS, lexer.ID, lexer.LPAREN, lexer.TAIL, lexer.LPAREN, lexer.ID, lexer.RPAREN, lexer.RPAREN,
		lexer.RBRACE,
		lexer.RBRACE,
		lexer.DEF, lexer.ID, lexer.LPAREN, lexer.RPAREN, lexer.LBRACE,
		lexer.RETURN, lexer.ID, lexer.LPAREN, lexer.NUM, lexer.CONS, lexer.NUM, lexer.CONS, lexer.EMPTY, lexer.RPAREN,
		lexer.RBRACE,
		lexer.EOF,
	}

	for i, expected := range expectedTokens {
		token := mylexer.NextToken()
		if token.Type != expected {
			t.Errorf("Token %d: expected %s, got %s", i, expected, token.Type)
		}
	}
}

func TestOperators(t *testing.T) {
	tests := []struct {
		input       string
		expected    lexer.TokenType
		description string
	}{
		{"<=", lexer.LE, "less or equal"},
		{">=", lexer.GE, "greater or equal"},
		{"==", lexer.EQ, "equality"},
		{"!=", lexer.NE, "inequality"},
		{"!", lexer.NOT, "negation"},
		{"=", lexer.ASSIGN, "assignment"},
		{"::", lexer.CONS, "cons"},
		{"^", lexer.POW, "power"},
		{"%", lexer.MOD, "modulo"},
		{"[]", lexer.EMPTY, "empty list"},
		{"head", lexer.HEAD, "head keyword"},
		{"headless", lexer.ID, "identifier starting with keyword"},
		{"tail_rec", lexer.ID, "identifier with underscore"},
		{"_acc", lexer.ID, "identifier starting with underscore"},
		{"define", lexer.ID, "identifier starting with def"},
		{"andy", lexer.ID, "identifier starting with and"},
		{"or", lexer.OR, "or keyword"},
	}

	for _, test := range tests {
		tokenType, lexeme, matched := lexer.MatchToken(test.input)
		if !matched {
			t.Errorf("Failed to match %s (%s)", test.input, test.description)
		}
		if tokenType != test.expected {
			t.Errorf("Input %s (%s): expected %s, got %s", test.input, test.description, test.expected, tokenType)
		}
		if lexeme != test.input {
			t.Errorf("Input %s (%s): expected lexeme %s, got %s", test.input, test.description, test.input, lexeme)
		}
	}
}

func TestPositions(t *testing.T) {
	mylexer := lexer.NewLexer("def f() {\n  return 10\n}")

	expected := []struct {
		typ          lexer.TokenType
		line, column int
	}{
		{lexer.DEF, 1, 1},
		{lexer.ID, 1, 5},
		{lexer.LPAREN, 1, 6},
		{lexer.RPAREN, 1, 7},
		{lexer.LBRACE, 1, 9},
		{lexer.RETURN, 2, 3},
		{lexer.NUM, 2, 10},
		{lexer.RBRACE, 3, 1},
		{lexer.EOF, 3, 2},
	}

	for i, e := range expected {
		tok := mylexer.NextToken()
		if tok.Type != e.typ || tok.Pos.Line != e.line || tok.Pos.Column != e.column {
			t.Errorf("Token %d: expected %s at %d:%d, got %s at %s", i, e.typ, e.line, e.column, tok.Type, tok.Pos)
		}
	}
}

func TestIllegal(t *testing.T) {
	toks := lexer.NewLexer("x = 1 $ 2").Tokens()

	found := false
	for _, tok := range toks {
		if tok.Type == lexer.ILLEGAL {
			found = true
			if tok.Lexeme != "$" || tok.Pos.Column != 7 {
				t.Errorf("expected illegal '$' at column 7, got %q at %s", tok.Lexeme, tok.Pos)
			}
		}
	}
	if !found {
		t.Errorf("expected an illegal token")
	}
}
