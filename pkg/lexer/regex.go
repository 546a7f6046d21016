package lexer

import (
	"regexp"
)

type tokenRegex struct {
	Pattern *regexp.Regexp
	Raw     string
}

func newTokenRegex(raw string) tokenRegex {
	return tokenRegex{Pattern: regexp.MustCompile(raw), Raw: raw}
}

// Token regex patterns
var tokenRegexes = map[TokenType]tokenRegex{
	LE:    newTokenRegex(`^<=`),
	GE:    newTokenRegex(`^>=`),
	EQ:    newTokenRegex(`^==`),
	NE:    newTokenRegex(`^!=`),
	CONS:  newTokenRegex(`^::`),
	EMPTY: newTokenRegex(`^\[\]`),

	DEF:    newTokenRegex(`^def\b`),
	RETURN: newTokenRegex(`^return\b`),
	IF:     newTokenRegex(`^if\b`),
	ELSE:   newTokenRegex(`^else\b`),
	HEAD:   newTokenRegex(`^head\b`),
	TAIL:   newTokenRegex(`^tail\b`),
	AND:    newTokenRegex(`^and\b`),
	OR:     newTokenRegex(`^or\b`),
	TRUE:   newTokenRegex(`^true\b`),
	FALSE:  newTokenRegex(`^false\b`),

	ASSIGN: newTokenRegex(`^=`),
	PLUS:   newTokenRegex(`^\+`),
	MINUS:  newTokenRegex(`^-`),
	MULT:   newTokenRegex(`^\*`),
	DIV:    newTokenRegex(`^/`),
	MOD:    newTokenRegex(`^%`),
	POW:    newTokenRegex(`^\^`),
	NOT:    newTokenRegex(`^!`),
	LT:     newTokenRegex(`^<`),
	GT:     newTokenRegex(`^>`),

	COMMA:  newTokenRegex(`^,`),
	LPAREN: newTokenRegex(`^\(`),
	RPAREN: newTokenRegex(`^\)`),
	LBRACE: newTokenRegex(`^\{`),
	RBRACE: newTokenRegex(`^\}`),

	NUM: newTokenRegex(`^\d+`),
	ID:  newTokenRegex(`^[a-zA-Z_][a-zA-Z0-9_]*`),
}

var (
	whitespaceRegex   = regexp.MustCompile(`^\s+`)
	commentRegex      = regexp.MustCompile(`^//[^\n]*`)
	blockCommentRegex = regexp.MustCompile(`^/\*(?s:.*?)\*/`)
)

// Token precedence order for matching (longer patterns first)
var tokenPrecedenceOrder = []TokenType{
	RETURN, FALSE, ELSE, HEAD, TAIL, TRUE, AND, DEF, OR, IF,
	LE, GE, EQ, NE, CONS, EMPTY,
	ASSIGN, PLUS, MINUS, MULT, DIV, MOD, POW, NOT, LT, GT,
	COMMA, LPAREN, RPAREN, LBRACE, RBRACE,
	NUM, ID,
}

// Get the regex pattern for a token type
func (t TokenType) Regex() *regexp.Regexp {
	if regex, ok := tokenRegexes[t]; ok {
		return regex.Pattern
	}

	return nil
}

// Get the raw regex string for a token type
func (t TokenType) RawRegex() string {
	if regex, ok := tokenRegexes[t]; ok {
		return regex.Raw
	}

	return ""
}

// Match the longest token at the start of the string. Whitespace and
// comments are reported as EOF with a non-empty lexeme so callers can skip
// them.
func MatchToken(s string) (TokenType, string, bool) {
	if s == "" {
		return EOF, "", false
	} else if match := whitespaceRegex.FindString(s); match != "" {
		return EOF, match, true
	} else if match := commentRegex.FindString(s); match != "" {
		return EOF, match, true
	} else if match := blockCommentRegex.FindString(s); match != "" {
		return EOF, match, true
	}

	for _, tokenType := range tokenPrecedenceOrder {
		if regex, ok := tokenRegexes[tokenType]; ok {
			if match := regex.Pattern.FindString(s); match != "" {
				return tokenType, match, true
			}
		}
	}

	return ILLEGAL, string(s[0]), false
}
