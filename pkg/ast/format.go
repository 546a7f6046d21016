package ast

import (
	"strconv"
	"strings"
)

// Binding strength used when printing, loosest first.
const (
	precLogic = iota + 1
	precNot
	precCompare
	precCons
	precSum
	precProduct
	precUnary
	precPow
	precPrimary
)

// Format renders a node back to source form. Parentheses are emitted only
// where the grammar needs them, so Format output parses to the same tree.
func Format(n Node) string {
	var b strings.Builder
	p := printer{b: &b}
	p.node(n)
	return b.String()
}

type printer struct {
	b      *strings.Builder
	indent int
}

func (p *printer) line(s string) {
	p.b.WriteString(strings.Repeat("    ", p.indent))
	p.b.WriteString(s)
	p.b.WriteByte('\n')
}

func (p *printer) node(n Node) {
	switch n := n.(type) {
	case *Program:
		for i, fn := range n.Functions {
			if i > 0 {
				p.b.WriteByte('\n')
			}
			p.node(fn)
		}
	case *Function:
		p.b.WriteString(strings.Repeat("    ", p.indent))
		p.b.WriteString("def " + n.Name + "(" + strings.Join(n.Params, ", ") + ") ")
		p.block(n.Body)
		p.b.WriteByte('\n')
	case Stmt:
		p.stmt(n)
	case Expr:
		p.b.WriteString(expr(n))
	}
}

// block writes an opening brace on the current line and the closing brace
// indented, without a trailing newline.
func (p *printer) block(blk *Block) {
	p.b.WriteString("{\n")
	p.indent++
	for _, s := range blk.Stmts {
		p.stmt(s)
	}
	p.indent--
	p.b.WriteString(strings.Repeat("    ", p.indent) + "}")
}

func (p *printer) stmt(s Stmt) {
	switch s := s.(type) {
	case *Assignment:
		p.line(s.Name + " = " + expr(s.Value))
	case *ReturnStmt:
		p.line("return " + expr(s.Value))
	case *IfStmt:
		p.b.WriteString(strings.Repeat("    ", p.indent) + "if (" + expr(s.Cond) + ") ")
		p.block(s.Then)
		if s.Else != nil {
			p.b.WriteString(" else ")
			p.block(s.Else)
		}
		p.b.WriteByte('\n')
	case *Block:
		p.b.WriteString(strings.Repeat("    ", p.indent))
		p.block(s)
		p.b.WriteByte('\n')
	}
}

func precedence(e Expr) int {
	switch e := e.(type) {
	case *BinaryCond:
		return precLogic
	case *UnaryCond:
		return precNot
	case *Comparison:
		return precCompare
	case *BinaryExpr:
		switch e.Op {
		case Cons:
			return precCons
		case Add, Sub:
			return precSum
		case Pow:
			return precPow
		default:
			return precProduct
		}
	case *UnaryExpr:
		if e.Op == Head || e.Op == Tail {
			return precPrimary
		}
		return precUnary
	default:
		return precPrimary
	}
}

func wrap(e Expr, min int) string {
	s := expr(e)
	if precedence(e) < min {
		return "(" + s + ")"
	}

	return s
}

func expr(e Expr) string {
	switch e := e.(type) {
	case *IntLit:
		return strconv.FormatInt(e.Value, 10)
	case *BoolLit:
		return strconv.FormatBool(e.Value)
	case *Ident:
		return e.Name
	case *EmptyList:
		return "[]"
	case *Call:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = expr(a)
		}
		return wrap(e.Callee, precPrimary) + "(" + strings.Join(args, ", ") + ")"
	case *UnaryExpr:
		if e.Op == Head || e.Op == Tail {
			return e.Op.String() + "(" + expr(e.Operand) + ")"
		}
		return e.Op.String() + wrap(e.Operand, precUnary)
	case *UnaryCond:
		return "!" + wrap(e.Operand, precNot)
	case *BinaryExpr:
		prec := precedence(e)
		if e.Op == Cons {
			return wrap(e.Left, prec+1) + " :: " + wrap(e.Right, prec)
		}
		if e.Op == Pow {
			return wrap(e.Left, precPrimary) + " ^ " + wrap(e.Right, precUnary)
		}
		return wrap(e.Left, prec) + " " + e.Op.String() + " " + wrap(e.Right, prec+1)
	case *Comparison:
		return wrap(e.Left, precCons) + " " + e.Op.String() + " " + wrap(e.Right, precCons)
	case *BinaryCond:
		return wrap(e.Left, precLogic) + " " + e.Op.String() + " " + wrap(e.Right, precNot)
	default:
		return "<?>"
	}
}
