package resolver_test

import (
	"errors"
	"testing"

	"saltino/pkg/ast"
	"saltino/pkg/parser"
	"saltino/pkg/resolver"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()

	prog, err := parser.ParseString(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return prog
}

func mustResolve(t *testing.T, src string) (*ast.Program, *resolver.Result) {
	t.Helper()

	prog := mustParse(t, src)
	res, err := resolver.Resolve(prog)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	return prog, res
}

// idents returns every identifier named name, in source order
func idents(n ast.Node, name string) []*ast.Ident {
	var out []*ast.Ident
	ast.Inspect(n, func(n ast.Node) bool {
		if id, ok := n.(*ast.Ident); ok && id.Name == name {
			out = append(out, id)
		}
		return true
	})
	return out
}

func assignments(n ast.Node, name string) []*ast.Assignment {
	var out []*ast.Assignment
	ast.Inspect(n, func(n ast.Node) bool {
		if a, ok := n.(*ast.Assignment); ok && a.Name == name {
			out = append(out, a)
		}
		return true
	})
	return out
}

func calls(n ast.Node) []*ast.Call {
	var out []*ast.Call
	ast.Inspect(n, func(n ast.Node) bool {
		if c, ok := n.(*ast.Call); ok {
			out = append(out, c)
		}
		return true
	})
	return out
}

func TestFactorialResolves(t *testing.T) {
	prog, _ := mustResolve(t, `
def factorial(n) {
    if (n <= 1) {
        return 1
    } else {
        return n * factorial(n - 1)
    }
}
def main() {
    return factorial(5)
}`)

	for _, id := range idents(prog, "n") {
		if id.Binding == nil || id.Binding.Kind != ast.KindParameter {
			t.Errorf("n at %s: expected parameter binding, got %v", id.Loc, id.Binding)
		}
	}

	fact := idents(prog, "factorial")
	if len(fact) != 2 {
		t.Fatalf("expected 2 references to factorial, got %d", len(fact))
	}
	if fact[0].Binding != fact[1].Binding || fact[0].Binding.Kind != ast.KindFunction {
		t.Errorf("expected both references to share the function binding")
	}
}

func TestTailCallMarking(t *testing.T) {
	tests := []struct {
		body        string
		expected    bool
		description string
	}{
		{"return f(1)", true, "direct call"},
		{"return (f(1))", true, "parenthesized call"},
		{"return f(1) + 1", false, "call under operator"},
		{"return -f(1)", false, "call under unary minus"},
		{"x = f(1) return x", false, "call in assignment"},
		{"if (f(1) == 1) { return 0 } return 1", false, "call in condition"},
	}

	for _, test := range tests {
		prog, _ := mustResolve(t, "def f(a) { return a } def main() { "+test.body+" }")

		cs := calls(prog.Lookup("main"))
		if len(cs) != 1 {
			t.Fatalf("%s: expected one call, got %d", test.description, len(cs))
		}
		if cs[0].TailCall != test.expected {
			t.Errorf("%s: expected tail call %v, got %v", test.description, test.expected, cs[0].TailCall)
		}
	}
}

func TestTailCallArgumentsNotMarked(t *testing.T) {
	prog, _ := mustResolve(t, "def f(a) { return a } def main() { return f(f(1)) }")

	cs := calls(prog.Lookup("main"))
	if len(cs) != 2 || !cs[0].TailCall || cs[1].TailCall {
		t.Errorf("expected only the outer call marked")
	}
}

func TestUnboundLocalUse(t *testing.T) {
	prog := mustParse(t, `def main() {
    {
        x = x + 1
    }
    return 0
}`)

	_, err := resolver.Resolve(prog)

	var rerr *resolver.Error
	if !errors.As(err, &rerr) {
		t.Fatalf("expected resolver error, got %v", err)
	}
	if rerr.Kind != resolver.UnboundLocalUse || rerr.Name != "x" {
		t.Errorf("expected UnboundLocalUse of x, got %s of %s", rerr.Kind, rerr.Name)
	}
	if rerr.Pos != (ast.Position{Line: 3, Column: 13}) {
		t.Errorf("expected error at the read 3:13, got %s", rerr.Pos)
	}
	if !errors.Is(err, resolver.ErrUnboundLocalUse) {
		t.Errorf("expected errors.Is to match ErrUnboundLocalUse")
	}
}

func TestReadBeforeAssignmentInSameBlock(t *testing.T) {
	prog := mustParse(t, "def main() { y = x x = 1 return y }")

	_, err := resolver.Resolve(prog)
	if !errors.Is(err, resolver.ErrUnboundLocalUse) {
		t.Errorf("expected UnboundLocalUse, got %v", err)
	}
}

func TestParameterShadowedByLocal(t *testing.T) {
	prog := mustParse(t, "def f(n) { n = n - 1 return n } def main() { return f(1) }")

	_, err := resolver.Resolve(prog)
	if !errors.Is(err, resolver.ErrUnboundLocalUse) {
		t.Errorf("expected UnboundLocalUse, got %v", err)
	}
}

func TestUndeclaredReference(t *testing.T) {
	prog := mustParse(t, "def main() {\n    return y + 1\n}")

	_, err := resolver.Resolve(prog)

	var rerr *resolver.Error
	if !errors.As(err, &rerr) {
		t.Fatalf("expected resolver error, got %v", err)
	}
	if rerr.Kind != resolver.UndeclaredReference || rerr.Name != "y" {
		t.Errorf("expected UndeclaredReference of y, got %s of %s", rerr.Kind, rerr.Name)
	}
	if rerr.Pos != (ast.Position{Line: 2, Column: 12}) {
		t.Errorf("expected error at 2:12, got %s", rerr.Pos)
	}
	if !errors.Is(err, resolver.ErrUndeclaredReference) {
		t.Errorf("expected errors.Is to match ErrUndeclaredReference")
	}
}

func TestFailsOnFirstError(t *testing.T) {
	prog := mustParse(t, "def main() { a = b return c }")

	_, err := resolver.Resolve(prog)

	var rerr *resolver.Error
	if !errors.As(err, &rerr) || rerr.Name != "b" {
		t.Errorf("expected the first error to name b, got %v", err)
	}
}

func TestShadowingUsesDistinctBindings(t *testing.T) {
	prog, _ := mustResolve(t, `def main() {
    x = 1
    {
        x = 2
        y = x
    }
    return x
}`)

	assigns := assignments(prog, "x")
	if len(assigns) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(assigns))
	}
	outer, inner := assigns[0].Binding, assigns[1].Binding
	if outer == inner || outer.ID == inner.ID {
		t.Fatalf("expected distinct bindings for outer and inner x")
	}
	if inner.Depth != outer.Depth+1 {
		t.Errorf("expected inner depth %d, got %d", outer.Depth+1, inner.Depth)
	}

	reads := idents(prog, "x")
	if len(reads) != 2 {
		t.Fatalf("expected 2 reads of x, got %d", len(reads))
	}
	if reads[0].Binding != inner {
		t.Errorf("read inside the block should see the inner x")
	}
	if reads[1].Binding != outer {
		t.Errorf("read after the block should see the outer x")
	}
}

func TestNearestEnclosingDeclaration(t *testing.T) {
	prog, _ := mustResolve(t, `def main() {
    x = 1
    {
        {
            y = x
        }
    }
    return x
}`)

	outer := assignments(prog, "x")[0].Binding
	for _, id := range idents(prog, "x") {
		if id.Binding != outer {
			t.Errorf("x at %s: expected outer binding", id.Loc)
		}
	}
}

func TestDistinctIDs(t *testing.T) {
	prog, res := mustResolve(t, `
def f(a, b) {
    c = a + b
    {
        c = 1
        d = c
    }
    return c
}
def main() {
    c = 3
    return f(c, 2)
}`)

	seen := map[int]*ast.Binding{}
	record := func(b *ast.Binding) {
		if prev, ok := seen[b.ID]; ok && prev != b {
			t.Errorf("id %d shared by %s and %s", b.ID, prev, b)
		}
		seen[b.ID] = b
	}

	ast.Inspect(prog, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Ident:
			record(n.Binding)
		case *ast.Assignment:
			record(n.Binding)
		}
		return true
	})

	// f, main, a, b, c (f body), c and d (inner block), c (main)
	if res.Bindings != 8 {
		t.Errorf("expected 8 bindings, got %d", res.Bindings)
	}
}

func TestForwardAndMutualRecursion(t *testing.T) {
	prog, _ := mustResolve(t, `
def main() { return even(10) }
def even(n) { if (n == 0) { return true } else { return odd(n - 1) } }
def odd(n) { if (n == 0) { return false } else { return even(n - 1) } }`)

	for _, id := range idents(prog, "odd") {
		if id.Binding.Kind != ast.KindFunction {
			t.Errorf("odd should resolve to the function")
		}
	}
}

func TestFunctionAsValue(t *testing.T) {
	prog, _ := mustResolve(t, "def twice(g, x) { return g(g(x)) } def inc(x) { return x + 1 } def main() { h = inc return twice(h, 1) }")

	ref := idents(prog.Lookup("main"), "inc")
	if len(ref) != 1 || ref[0].Binding.Kind != ast.KindFunction {
		t.Errorf("expected inc to resolve to a function binding")
	}

	g := idents(prog.Lookup("twice"), "g")
	for _, id := range g {
		if id.Binding.Kind != ast.KindParameter {
			t.Errorf("expected g to resolve to a parameter")
		}
	}
}

// Assignments made only inside if/else branches are pre-declared in the
// enclosing block too, where they are never initialized. Reading such a
// name after the conditional is rejected.
func TestConditionalAssignmentReadAfterwards(t *testing.T) {
	prog := mustParse(t, `def main(c) {
    if (c) { r = 1 } else { r = 2 }
    return r
}`)

	_, err := resolver.Resolve(prog)
	if !errors.Is(err, resolver.ErrUnboundLocalUse) {
		t.Errorf("expected UnboundLocalUse, got %v", err)
	}
}

func TestScopeTree(t *testing.T) {
	_, res := mustResolve(t, "def f(a) { { b = a } return a } def main() { return f(1) }")

	global := res.Global
	if global.Depth != 0 || len(global.Children) != 2 {
		t.Fatalf("expected global scope with 2 function scopes, got %d", len(global.Children))
	}
	if names := global.Names(); len(names) != 2 || names[0] != "f" || names[1] != "main" {
		t.Errorf("unexpected global names %v", names)
	}

	fscope := global.Children[0]
	if fscope.LookupLocal("a") == nil || fscope.LookupLocal("a").Kind != ast.KindParameter {
		t.Errorf("expected parameter a in function scope")
	}

	body := fscope.Children[0]
	inner := body.Children[0]
	if inner.Depth != 3 || inner.LookupLocal("b") == nil {
		t.Errorf("expected b in depth 3 block scope")
	}
	if b, s := inner.Lookup("f"); b == nil || s != global {
		t.Errorf("expected f to be found in the global scope")
	}
	if inner.LookupLocal("b").Unique != "b_3_0" {
		t.Errorf("unexpected unique name %s", inner.LookupLocal("b").Unique)
	}
}

func TestResolveTwice(t *testing.T) {
	prog := mustParse(t, "def main() { x = 1 return x }")

	first, err := resolver.Resolve(prog)
	if err != nil {
		t.Fatal(err)
	}
	second, err := resolver.Resolve(prog)
	if err != nil {
		t.Fatal(err)
	}
	if first.Bindings != second.Bindings {
		t.Errorf("expected the same number of bindings on every run")
	}
}
