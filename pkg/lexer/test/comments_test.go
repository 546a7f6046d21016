package lexer_test

import (
	"saltino/pkg/lexer"
	"testing"
)

func TestComments(t *testing.T) {
	input := `// test comment
def main() { // another test comment
	/* block
	   comment */ return 1 /* inline */ + 2
// trailing
}`

	mylexer := lexer.NewLexer(input)
	expectedTokens := []lexer.TokenType{
		lexer.DEF, lexer.ID, lexer.LPAREN, lexer.RPAREN, lexer.LBRACE,
		lexer.RETURN, lexer.NUM, lexer.PLUS, lexer.NUM,
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

func TestCommentLineTracking(t *testing.T) {
	mylexer := lexer.NewLexer("/* one\ntwo\nthree */ x")

	tok := mylexer.NextToken()
	if tok.Type != lexer.ID || tok.Pos.Line != 3 || tok.Pos.Column != 10 {
		t.Errorf("expected id at 3:10, got %s at %s", tok.Type, tok.Pos)
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	mylexer := lexer.NewLexer("x /* never closed")

	if tok := mylexer.NextToken(); tok.Type != lexer.ID {
		t.Errorf("expected id, got %s", tok.Type)
	}
	if tok := mylexer.NextToken(); tok.Type != lexer.ILLEGAL {
		t.Errorf("expected illegal, got %s", tok.Type)
	}
	if tok := mylexer.NextToken(); tok.Type != lexer.EOF {
		t.Errorf("expected EOF, got %s", tok.Type)
	}
}
