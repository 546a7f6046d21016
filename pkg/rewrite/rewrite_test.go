package rewrite_test

import (
	"context"
	"testing"

	"saltino/pkg/ast"
	"saltino/pkg/interpreter"
	"saltino/pkg/parser"
	"saltino/pkg/resolver"
	"saltino/pkg/rewrite"
	"saltino/pkg/saltino"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()

	prog, err := parser.ParseString(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return prog
}

func TestAccumulateRewrites(t *testing.T) {
	tests := []struct {
		src         string
		description string
	}{
		{"def f(n) { if (n <= 1) { return 1 } else { return n * f(n - 1) } }", "call on the right"},
		{"def f(n) { if (n == 0) { return 0 } else { return f(n - 1) + n } }", "call on the left"},
		{"def f(n) { if (0 == n) { return 0 } return n + f(n - 1) }", "return after if"},
		{"def f(n, k) { if (n == 0) { return 0 } else { return k + f(n - 1, k) } }", "two parameters"},
		{"def f(xs) { if (xs == 0) { return 0 } else { return 1 + f(xs - 1) } }", "constant other operand"},
	}

	for _, test := range tests {
		out, report := rewrite.Accumulate(mustParse(t, test.src))

		if names := report.Names(); len(names) != 1 || names[0] != "f" {
			t.Errorf("%s: expected f to be rewritten, got %v", test.description, names)
			continue
		}
		if len(out.Functions) != 2 {
			t.Errorf("%s: expected wrapper and helper, got %d functions", test.description, len(out.Functions))
			continue
		}

		wrapper, helper := out.Functions[0], out.Functions[1]
		rw := report.Rewrites[0]
		if wrapper.Name != "f" || helper.Name != rw.Helper || rw.Helper != "f_tc_helper_0" {
			t.Errorf("%s: unexpected names %s and %s", test.description, wrapper.Name, helper.Name)
		}
		if len(helper.Params) != len(wrapper.Params)+1 || helper.Params[len(helper.Params)-1] != "acc_0" {
			t.Errorf("%s: expected accumulator parameter, got %v", test.description, helper.Params)
		}

		if _, err := resolver.Resolve(out); err != nil {
			t.Errorf("%s: rewritten program does not resolve: %v", test.description, err)
			continue
		}

		var tail int
		ast.Inspect(helper, func(n ast.Node) bool {
			if c, ok := n.(*ast.Call); ok && c.TailCall {
				tail++
			}
			return true
		})
		if tail != 1 {
			t.Errorf("%s: expected the helper to recurse in tail position", test.description)
		}
	}
}

func TestAccumulateLeavesOthersAlone(t *testing.T) {
	tests := []struct {
		src         string
		description string
	}{
		{"def f(n) { if (n == 0) { return [] } else { return n :: f(n - 1) } }", "cons"},
		{"def f(n) { if (n == 0) { return 1 } else { return n - f(n - 1) } }", "subtraction"},
		{"def f(n) { if (n == 0) { return 1 } else { return 2 ^ f(n - 1) } }", "power"},
		{"def f(n) { if (n < 2) { return n } else { return f(n - 1) + f(n - 2) } }", "two recursive calls"},
		{"def f(n, b) { if (n == 0) { return b } else { return n + f(n - 1, b) } }", "non-literal base"},
		{"def f(n) { if (n == 0) { return 0 } else { return n + f(3) } }", "argument without parameter"},
		{"def f(n) { if (n == 0) { return 0 } else { return f(n - 1) } }", "already tail recursive"},
		{"def f(n) { x = 1 if (n == 0) { return 0 } return n + f(n - 1) }", "extra statement"},
		{"def f() { return 1 }", "no parameters"},
	}

	for _, test := range tests {
		prog := mustParse(t, test.src)
		out, report := rewrite.Accumulate(prog)

		if len(report.Rewrites) != 0 {
			t.Errorf("%s: expected no rewrite, got %v", test.description, report.Names())
		}
		if len(out.Functions) != 1 || out.Functions[0] != prog.Functions[0] {
			t.Errorf("%s: expected the function to be kept", test.description)
		}
	}
}

func TestAccumulatePreservesResults(t *testing.T) {
	tests := []struct {
		src  string
		args []interpreter.Value
	}{
		{"def fact(n) { if (n <= 1) { return 1 } else { return n * fact(n - 1) } } def main(n) { return fact(n) }", []interpreter.Value{interpreter.Int(10)}},
		{"def sum(n) { if (n == 0) { return 0 } else { return sum(n - 1) + n * n } } def main(n) { return sum(n) }", []interpreter.Value{interpreter.Int(30)}},
		{"def pw(b, e) { if (e == 0) { return 1 } return b * pw(b, e - 1) } def main(e) { return pw(3, e) }", []interpreter.Value{interpreter.Int(7)}},
	}

	for _, test := range tests {
		want, err := saltino.Run(mustParse(t, test.src), test.args)
		if err != nil {
			t.Fatalf("original: %v", err)
		}

		out, report := rewrite.Accumulate(mustParse(t, test.src))
		if len(report.Rewrites) != 1 {
			t.Fatalf("expected one rewrite, got %v", report.Names())
		}

		got, err := saltino.Run(out, test.args)
		if err != nil {
			t.Fatalf("rewritten: %v", err)
		}
		if !got.Equal(want) {
			t.Errorf("expected %s, got %s", want, got)
		}
	}
}

func TestAccumulateBoundsStack(t *testing.T) {
	src := "def sum(n) { if (n == 0) { return 0 } else { return n + sum(n - 1) } } def main(n) { return sum(n) }"

	out, _ := rewrite.Accumulate(mustParse(t, src))
	if _, err := resolver.Resolve(out); err != nil {
		t.Fatal(err)
	}

	depths := map[int64]int{}
	for _, n := range []int64{10, 100000} {
		it := interpreter.NewInterpreter(out)
		v, err := it.Run(context.Background(), []interpreter.Value{interpreter.Int(n)})
		if err != nil {
			t.Fatalf("sum(%d): %v", n, err)
		}
		if !v.Equal(interpreter.Int(n * (n + 1) / 2)) {
			t.Errorf("sum(%d): got %s", n, v)
		}
		depths[n] = it.Stats().MaxDepth
	}

	if depths[10] != depths[100000] {
		t.Errorf("expected constant stack depth, got %v", depths)
	}
}

func TestHelperNamesAvoidCollisions(t *testing.T) {
	src := `
def f_tc_helper_0(x) { return x }
def f(n) { if (n == 0) { return 0 } else { return n + f(n - 1) } }
def g(acc_2) { if (acc_2 == 0) { return 1 } else { return acc_2 * g(acc_2 - 1) } }`

	out, report := rewrite.Accumulate(mustParse(t, src))
	if len(report.Rewrites) != 2 {
		t.Fatalf("expected two rewrites, got %v", report.Names())
	}
	if report.Rewrites[0].Helper != "f_tc_helper_1" {
		t.Errorf("expected f_tc_helper_1, got %s", report.Rewrites[0].Helper)
	}
	if report.Rewrites[1].Accumulator != "_acc_2" {
		t.Errorf("expected _acc_2 next to parameter acc_2, got %s", report.Rewrites[1].Accumulator)
	}
	if _, err := resolver.Resolve(out); err != nil {
		t.Errorf("rewritten program does not resolve: %v", err)
	}
}
