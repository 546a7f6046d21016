package lexer_test

import (
	"saltino/pkg/lexer"
	"testing"
)

func TestNumbers(t *testing.T) {
	tests := []struct {
		input       string
		expected    lexer.TokenType
		lexeme      string
		description string
	}{
		{"42", lexer.NUM, "42", "integer"},
		{"0", lexer.NUM, "0", "zero"},
		{"1000000", lexer.NUM, "1000000", "large integer"},
		{"007", lexer.NUM, "007", "leading zeros"},
		{"3.14", lexer.NUM, "3", "no fractional part"},
		{"12abc", lexer.NUM, "12", "number followed by letters"},
		{"-5", lexer.MINUS, "-", "minus is a separate token"},
	}

	for _, test := range tests {
		tokenType, lexeme, matched := lexer.MatchToken(test.input)
		if !matched {
			t.Errorf("Failed to match %s (%s)", test.input, test.description)
		}
		if tokenType != test.expected {
			t.Errorf("Input %s (%s): expected %s, got %s", test.input, test.description, test.expected, tokenType)
		}
		if lexeme != test.lexeme {
			t.Errorf("Input %s (%s): expected lexeme %s, got %s", test.input, test.description, test.lexeme, lexeme)
		}
	}
}

func TestUnaryMinusStream(t *testing.T) {
	mylexer := lexer.NewLexer("x = -2 ^ 2")
	expected := []lexer.TokenType{lexer.ID, lexer.ASSIGN, lexer.MINUS, lexer.NUM, lexer.POW, lexer.NUM, lexer.EOF}

	for i, e := range expected {
		if tok := mylexer.NextToken(); tok.Type != e {
			t.Errorf("Token %d: expected %s, got %s", i, e, tok.Type)
		}
	}
}
