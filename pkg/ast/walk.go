package ast

// Inspect traverses the tree rooted at n in depth-first pre-order. If f
// returns false the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}

	switch n := n.(type) {
	case *Program:
		for _, fn := range n.Functions {
			Inspect(fn, f)
		}
	case *Function:
		Inspect(n.Body, f)
	case *Block:
		for _, s := range n.Stmts {
			Inspect(s, f)
		}
	case *Assignment:
		Inspect(n.Value, f)
	case *IfStmt:
		Inspect(n.Cond, f)
		Inspect(n.Then, f)
		if n.Else != nil {
			Inspect(n.Else, f)
		}
	case *ReturnStmt:
		Inspect(n.Value, f)
	case *BinaryExpr:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *UnaryExpr:
		Inspect(n.Operand, f)
	case *Call:
		Inspect(n.Callee, f)
		for _, a := range n.Args {
			Inspect(a, f)
		}
	case *BinaryCond:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *UnaryCond:
		Inspect(n.Operand, f)
	case *Comparison:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	}
}

// Clone returns a deep copy of e without resolver annotations.
func Clone(e Expr) Expr {
	switch e := e.(type) {
	case *BinaryExpr:
		return &BinaryExpr{Op: e.Op, Left: Clone(e.Left), Right: Clone(e.Right), Loc: e.Loc}
	case *UnaryExpr:
		return &UnaryExpr{Op: e.Op, Operand: Clone(e.Operand), Loc: e.Loc}
	case *Call:
		args := make([]Expr, len(e.Args))
		for i, a := range e.Args {
			args[i] = Clone(a)
		}
		return &Call{Callee: Clone(e.Callee), Args: args, Loc: e.Loc}
	case *IntLit:
		return &IntLit{Value: e.Value, Loc: e.Loc}
	case *BoolLit:
		return &BoolLit{Value: e.Value, Loc: e.Loc}
	case *Ident:
		return &Ident{Name: e.Name, Loc: e.Loc}
	case *EmptyList:
		return &EmptyList{Loc: e.Loc}
	case *BinaryCond:
		return &BinaryCond{Op: e.Op, Left: Clone(e.Left), Right: Clone(e.Right), Loc: e.Loc}
	case *UnaryCond:
		return &UnaryCond{Operand: Clone(e.Operand), Loc: e.Loc}
	case *Comparison:
		return &Comparison{Op: e.Op, Left: Clone(e.Left), Right: Clone(e.Right), Loc: e.Loc}
	default:
		return e
	}
}
