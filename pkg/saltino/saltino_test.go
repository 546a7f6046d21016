package saltino_test

import (
	"errors"
	"testing"

	"saltino/pkg/interpreter"
	"saltino/pkg/parser"
	"saltino/pkg/resolver"
	"saltino/pkg/saltino"
)

func TestRun(t *testing.T) {
	tests := []struct {
		src      string
		args     []interpreter.Value
		expected string
	}{
		{"def main() { return 1 + 2 }", nil, "3"},
		{"def main(xs) { return head(xs) }", []interpreter.Value{interpreter.List(9, 8)}, "9"},
		{"def main(b) { if (b) { return 1 } else { return 0 } }", []interpreter.Value{interpreter.Bool(true)}, "1"},
		{"def main() { return 3 :: 2 :: [] }", nil, "[3, 2]"},
	}

	for _, test := range tests {
		prog, err := parser.ParseString(test.src)
		if err != nil {
			t.Fatalf("parse %q: %v", test.src, err)
		}

		v, err := saltino.Run(prog, test.args)
		if err != nil {
			t.Errorf("%q: unexpected error %v", test.src, err)
			continue
		}
		if v.String() != test.expected {
			t.Errorf("%q: expected %s, got %s", test.src, test.expected, v)
		}
	}
}

func TestRunReportsStaticErrors(t *testing.T) {
	prog, err := parser.ParseString("def main() {\n    {\n        x = x + 1\n    }\n    return 0\n}")
	if err != nil {
		t.Fatal(err)
	}

	_, err = saltino.Run(prog, nil)

	var rerr *resolver.Error
	if !errors.As(err, &rerr) || rerr.Kind != resolver.UnboundLocalUse {
		t.Fatalf("expected UnboundLocalUse, got %v", err)
	}
	if rerr.Pos.Line != 3 || rerr.Pos.Column != 13 {
		t.Errorf("expected the read at 3:13, got %s", rerr.Pos)
	}
}

func TestRunReportsRuntimeErrors(t *testing.T) {
	prog, err := parser.ParseString("def main() { return true + 1 }")
	if err != nil {
		t.Fatal(err)
	}

	_, err = saltino.Run(prog, nil)
	if !errors.Is(err, interpreter.ErrTypeMismatch) {
		t.Errorf("expected TypeMismatch, got %v", err)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	prog, err := parser.ParseString("def f(n, acc) { if (n == 0) { return acc } return f(n - 1, acc * 2 % 1000003) } def main() { return f(5000, 1) }")
	if err != nil {
		t.Fatal(err)
	}

	first, err := saltino.Run(prog, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := saltino.Run(prog, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !first.Equal(second) {
		t.Errorf("runs differ: %s vs %s", first, second)
	}
}
