package ast

import "fmt"

// Position is a source location. The zero value means "unknown".
type Position struct {
	Line   int
	Column int
}

// String returns a string representation of the Position
func (p Position) String() string {
	if !p.IsValid() {
		return "unknown position"
	}

	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// IsValid reports whether the position points into a source file
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Node is implemented by every syntax tree node.
type Node interface {
	Pos() Position
	node()
}

// Expr is a node that produces a value: an expression or a condition.
type Expr interface {
	Node
	expr()
}

// Stmt is a node that may appear inside a block.
type Stmt interface {
	Node
	stmt()
}

type (
	Program struct {
		Functions []*Function
		Loc       Position
	}

	Function struct {
		Name   string
		Params []string
		Body   *Block
		Loc    Position

		ParamBindings []*Binding // set by the resolver, parallel to Params
	}

	Block struct {
		Stmts []Stmt
		Loc   Position
	}

	Assignment struct {
		Name    string
		Value   Expr
		Binding *Binding // set by the resolver
		Loc     Position
	}

	IfStmt struct {
		Cond Expr
		Then *Block
		Else *Block // nil when there is no else branch
		Loc  Position
	}

	ReturnStmt struct {
		Value Expr
		Loc   Position
	}

	BinaryExpr struct {
		Op    Op // arithmetic or ::
		Left  Expr
		Right Expr
		Loc   Position
	}

	UnaryExpr struct {
		Op      Op // unary +, unary -, head, tail
		Operand Expr
		Loc     Position
	}

	Call struct {
		Callee   Expr
		Args     []Expr
		TailCall bool // set by the resolver for `return f(...)`
		Loc      Position
	}

	IntLit struct {
		Value int64
		Loc   Position
	}

	BoolLit struct {
		Value bool
		Loc   Position
	}

	Ident struct {
		Name    string
		Binding *Binding // set by the resolver
		Loc     Position
	}

	EmptyList struct {
		Loc Position
	}

	BinaryCond struct {
		Op    Op // And or Or
		Left  Expr
		Right Expr
		Loc   Position
	}

	UnaryCond struct {
		Operand Expr
		Loc     Position
	}

	Comparison struct {
		Op    Op // Eq, Ne, Lt, Le, Gt, Ge
		Left  Expr
		Right Expr
		Loc   Position
	}
)

func (n *Program) Pos() Position    { return n.Loc }
func (n *Function) Pos() Position   { return n.Loc }
func (n *Block) Pos() Position      { return n.Loc }
func (n *Assignment) Pos() Position { return n.Loc }
func (n *IfStmt) Pos() Position     { return n.Loc }
func (n *ReturnStmt) Pos() Position { return n.Loc }
func (n *BinaryExpr) Pos() Position { return n.Loc }
func (n *UnaryExpr) Pos() Position  { return n.Loc }
func (n *Call) Pos() Position       { return n.Loc }
func (n *IntLit) Pos() Position     { return n.Loc }
func (n *BoolLit) Pos() Position    { return n.Loc }
func (n *Ident) Pos() Position      { return n.Loc }
func (n *EmptyList) Pos() Position  { return n.Loc }
func (n *BinaryCond) Pos() Position { return n.Loc }
func (n *UnaryCond) Pos() Position  { return n.Loc }
func (n *Comparison) Pos() Position { return n.Loc }

func (*Program) node()    {}
func (*Function) node()   {}
func (*Block) node()      {}
func (*Assignment) node() {}
func (*IfStmt) node()     {}
func (*ReturnStmt) node() {}
func (*BinaryExpr) node() {}
func (*UnaryExpr) node()  {}
func (*Call) node()       {}
func (*IntLit) node()     {}
func (*BoolLit) node()    {}
func (*Ident) node()      {}
func (*EmptyList) node()  {}
func (*BinaryCond) node() {}
func (*UnaryCond) node()  {}
func (*Comparison) node() {}

func (*Block) stmt()      {}
func (*Assignment) stmt() {}
func (*IfStmt) stmt()     {}
func (*ReturnStmt) stmt() {}

func (*BinaryExpr) expr() {}
func (*UnaryExpr) expr()  {}
func (*Call) expr()       {}
func (*IntLit) expr()     {}
func (*BoolLit) expr()    {}
func (*Ident) expr()      {}
func (*EmptyList) expr()  {}
func (*BinaryCond) expr() {}
func (*UnaryCond) expr()  {}
func (*Comparison) expr() {}

// IsCondition reports whether e is evaluated as a condition rather than an
// expression. Identifiers and calls are expressions even where a boolean is
// expected; the consumer checks the resulting value.
func IsCondition(e Expr) bool {
	switch e.(type) {
	case *BoolLit, *BinaryCond, *UnaryCond, *Comparison:
		return true
	default:
		return false
	}
}

// Lookup returns the function with the given name, or nil.
func (n *Program) Lookup(name string) *Function {
	for _, fn := range n.Functions {
		if fn.Name == name {
			return fn
		}
	}

	return nil
}
