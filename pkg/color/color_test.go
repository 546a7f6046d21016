package color

import (
	"strings"
	"testing"
)

func TestSnippet(t *testing.T) {
	EnableColor(false)

	src := "def main() {\n    return x + 1\n}"
	tests := []struct {
		line, col int
		expected  string
	}{
		{2, 12, "   2 |     return x + 1\n     | " + strings.Repeat(" ", 11) + "^"},
		{1, 1, "   1 | def main() {\n     | ^"},
		{9, 1, ""},
	}

	for _, test := range tests {
		if got := Snippet(src, test.line, test.col); got != test.expected {
			t.Errorf("Snippet(%d, %d):\n%q\nexpected\n%q", test.line, test.col, got, test.expected)
		}
	}
}

func TestSnippetKeepsTabs(t *testing.T) {
	EnableColor(false)

	got := Snippet("\tx = y", 1, 6)
	expected := "   1 | \tx = y\n     | \t    ^"
	if got != expected {
		t.Errorf("got %q, expected %q", got, expected)
	}
}

func TestDisabledColorIsPlain(t *testing.T) {
	EnableColor(false)

	if RedText("a") != "a" || BoldText("b") != "b" || Position(1, 2) != "1:2" {
		t.Errorf("expected plain text when color is disabled")
	}
	if got := ErrorWithPosition(3, 4, "bad", "ctx"); got != "Error at 3:4: bad\nctx" {
		t.Errorf("unexpected %q", got)
	}

	EnableColor(true)
	defer EnableColor(false)
	if RedText("a") == "a" {
		t.Errorf("expected escape codes when color is enabled")
	}
}
