// Package rewrite turns simple linear-recursive functions into an
// accumulator-passing form whose recursive call is a tail call.
//
// A function qualifies when its body has the shape
//
//	def f(p...) {
//	    if (p OP literal) { return base } else { return other + f(args...) }
//	}
//
// where base is an integer literal, the combining operator is + or *, the
// recursive call may sit on either side, other does not call f, and every
// recursive argument mentions a parameter. The else branch may also be
// written as a return following an if without else. Such a function
// becomes
//
//	def f(p...) { return f_tc_helper_N(p..., base) }
//	def f_tc_helper_N(p..., acc_N) {
//	    if (p OP literal) { return acc_N } else { return f_tc_helper_N(args..., other + acc_N) }
//	}
package rewrite

import (
	"fmt"

	"saltino/pkg/ast"

	"github.com/charmbracelet/log"
)

// Rewrite describes one transformed function.
type Rewrite struct {
	Function    string
	Helper      string
	Accumulator string
	Op          ast.Op
}

// Report lists the functions transformed by Accumulate.
type Report struct {
	Rewrites []Rewrite
}

// Names returns the names of the rewritten functions in program order
func (r *Report) Names() []string {
	names := make([]string, len(r.Rewrites))
	for i, rw := range r.Rewrites {
		names[i] = rw.Function
	}
	return names
}

// candidate is a function matched against the accumulator shape
type candidate struct {
	fn    *ast.Function
	cond  ast.Expr
	base  *ast.IntLit
	call  *ast.Call
	other ast.Expr
	op    ast.Op
	ret   *ast.ReturnStmt // the recursive return
}

// Accumulate returns a program where every qualifying function has been
// replaced by a wrapper and an accumulator helper. Functions that do not
// qualify are shared with prog; prog itself is not modified. The result
// must be resolved before it is run.
func Accumulate(prog *ast.Program) (*ast.Program, *Report) {
	taken := make(map[string]bool)
	for _, fn := range prog.Functions {
		taken[fn.Name] = true
	}

	out := &ast.Program{Loc: prog.Loc}
	report := &Report{}
	next := 0

	for _, fn := range prog.Functions {
		c, ok := match(fn)
		if !ok {
			out.Functions = append(out.Functions, fn)
			continue
		}

		var helper string
		for {
			helper = fmt.Sprintf("%s_tc_helper_%d", fn.Name, next)
			next++
			if !taken[helper] {
				break
			}
		}
		taken[helper] = true
		acc := fmt.Sprintf("acc_%d", next-1)
		for containsString(fn.Params, acc) {
			acc = "_" + acc
		}

		out.Functions = append(out.Functions, c.wrapper(helper), c.helper(helper, acc))
		report.Rewrites = append(report.Rewrites, Rewrite{
			Function:    fn.Name,
			Helper:      helper,
			Accumulator: acc,
			Op:          c.op,
		})

		log.Debug("Rewrote function with accumulator", "function", fn.Name, "helper", helper)
	}

	return out, report
}

func match(fn *ast.Function) (*candidate, bool) {
	if len(fn.Params) == 0 || fn.Body == nil {
		return nil, false
	}

	stmts := fn.Body.Stmts
	if len(stmts) == 0 || len(stmts) > 2 {
		return nil, false
	}
	ifs, ok := stmts[0].(*ast.IfStmt)
	if !ok {
		return nil, false
	}

	// recursive branch: the else block, or the return after an else-less if
	var rec *ast.ReturnStmt
	switch {
	case ifs.Else != nil && len(stmts) == 1:
		rec = singleReturn(ifs.Else)
	case ifs.Else == nil && len(stmts) == 2:
		rec, _ = stmts[1].(*ast.ReturnStmt)
	}
	if rec == nil {
		return nil, false
	}

	c := &candidate{fn: fn, cond: ifs.Cond, ret: rec}

	if !baseCondition(fn, ifs.Cond) {
		return nil, false
	}

	then := singleReturn(ifs.Then)
	if then == nil {
		return nil, false
	}
	if c.base, ok = then.Value.(*ast.IntLit); !ok {
		return nil, false
	}

	bin, ok := rec.Value.(*ast.BinaryExpr)
	if !ok || (bin.Op != ast.Add && bin.Op != ast.Mul) {
		return nil, false
	}
	c.op = bin.Op

	switch {
	case isSelfCall(fn, bin.Left) && !callsFunction(bin.Right, fn.Name):
		c.call, c.other = bin.Left.(*ast.Call), bin.Right
	case isSelfCall(fn, bin.Right) && !callsFunction(bin.Left, fn.Name):
		c.call, c.other = bin.Right.(*ast.Call), bin.Left
	default:
		return nil, false
	}

	for _, arg := range c.call.Args {
		if callsFunction(arg, fn.Name) || !mentionsParam(arg, fn.Params) {
			return nil, false
		}
	}

	return c, true
}

func singleReturn(blk *ast.Block) *ast.ReturnStmt {
	if blk == nil || len(blk.Stmts) != 1 {
		return nil
	}
	ret, _ := blk.Stmts[0].(*ast.ReturnStmt)
	return ret
}

// baseCondition accepts a comparison between a parameter and an integer
// literal, in either order
func baseCondition(fn *ast.Function, cond ast.Expr) bool {
	cmp, ok := cond.(*ast.Comparison)
	if !ok {
		return false
	}

	isParam := func(e ast.Expr) bool {
		id, ok := e.(*ast.Ident)
		return ok && containsString(fn.Params, id.Name)
	}
	isLit := func(e ast.Expr) bool {
		_, ok := e.(*ast.IntLit)
		return ok
	}

	return isParam(cmp.Left) && isLit(cmp.Right) || isLit(cmp.Left) && isParam(cmp.Right)
}

func isSelfCall(fn *ast.Function, e ast.Expr) bool {
	call, ok := e.(*ast.Call)
	if !ok || len(call.Args) != len(fn.Params) {
		return false
	}
	id, ok := call.Callee.(*ast.Ident)
	return ok && id.Name == fn.Name
}

func callsFunction(e ast.Expr, name string) bool {
	found := false
	ast.Inspect(e, func(n ast.Node) bool {
		if id, ok := n.(*ast.Ident); ok && id.Name == name {
			found = true
		}
		return !found
	})
	return found
}

func mentionsParam(e ast.Expr, params []string) bool {
	found := false
	ast.Inspect(e, func(n ast.Node) bool {
		if id, ok := n.(*ast.Ident); ok && containsString(params, id.Name) {
			found = true
		}
		return !found
	})
	return found
}

func containsString(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

func (c *candidate) paramRefs() []ast.Expr {
	refs := make([]ast.Expr, len(c.fn.Params))
	for i, p := range c.fn.Params {
		refs[i] = &ast.Ident{Name: p, Loc: c.fn.Loc}
	}
	return refs
}

func (c *candidate) wrapper(helper string) *ast.Function {
	pos := c.ret.Loc
	args := append(c.paramRefs(), &ast.IntLit{Value: c.base.Value, Loc: c.base.Loc})

	return &ast.Function{
		Name:   c.fn.Name,
		Params: append([]string(nil), c.fn.Params...),
		Loc:    c.fn.Loc,
		Body: &ast.Block{Loc: c.fn.Body.Loc, Stmts: []ast.Stmt{
			&ast.ReturnStmt{Loc: pos, Value: &ast.Call{
				Callee: &ast.Ident{Name: helper, Loc: pos},
				Args:   args,
				Loc:    pos,
			}},
		}},
	}
}

func (c *candidate) helper(helper, acc string) *ast.Function {
	pos := c.ret.Loc

	args := make([]ast.Expr, 0, len(c.call.Args)+1)
	for _, a := range c.call.Args {
		args = append(args, ast.Clone(a))
	}
	args = append(args, &ast.BinaryExpr{
		Op:    c.op,
		Left:  ast.Clone(c.other),
		Right: &ast.Ident{Name: acc, Loc: pos},
		Loc:   c.other.Pos(),
	})

	body := &ast.IfStmt{
		Cond: ast.Clone(c.cond),
		Then: &ast.Block{Loc: c.fn.Body.Loc, Stmts: []ast.Stmt{
			&ast.ReturnStmt{Loc: c.base.Loc, Value: &ast.Ident{Name: acc, Loc: c.base.Loc}},
		}},
		Else: &ast.Block{Loc: pos, Stmts: []ast.Stmt{
			&ast.ReturnStmt{Loc: pos, Value: &ast.Call{
				Callee: &ast.Ident{Name: helper, Loc: c.call.Loc},
				Args:   args,
				Loc:    c.call.Loc,
			}},
		}},
		Loc: c.cond.Pos(),
	}

	return &ast.Function{
		Name:   helper,
		Params: append(append([]string(nil), c.fn.Params...), acc),
		Loc:    c.fn.Loc,
		Body:   &ast.Block{Loc: c.fn.Body.Loc, Stmts: []ast.Stmt{body}},
	}
}
