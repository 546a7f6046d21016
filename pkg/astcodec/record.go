package astcodec

import (
	"fmt"

	"saltino/pkg/ast"
)

type nodeKind uint8

const (
	kindProgram nodeKind = iota + 1
	kindFunction
	kindBlock
	kindAssignment
	kindIf
	kindReturn
	kindBinary
	kindUnary
	kindCall
	kindInt
	kindBool
	kindIdent
	kindEmptyList
	kindBinaryCond
	kindUnaryCond
	kindComparison
)

// record is the wire form of one node. Children keep their source order;
// a nil child stands for an absent else branch.
type record struct {
	Kind   nodeKind  `cbor:"1,keyasint"`
	Line   int       `cbor:"2,keyasint,omitempty"`
	Column int       `cbor:"3,keyasint,omitempty"`
	Name   string    `cbor:"4,keyasint,omitempty"`
	Op     ast.Op    `cbor:"5,keyasint,omitempty"`
	Int    int64     `cbor:"6,keyasint,omitempty"`
	Bool   bool      `cbor:"7,keyasint,omitempty"`
	Params []string  `cbor:"8,keyasint,omitempty"`
	Kids   []*record `cbor:"9,keyasint,omitempty"`
}

func newRecord(kind nodeKind, pos ast.Position, kids ...*record) *record {
	return &record{Kind: kind, Line: pos.Line, Column: pos.Column, Kids: kids}
}

func (r *record) pos() ast.Position {
	return ast.Position{Line: r.Line, Column: r.Column}
}

// toRecord flattens a node; resolver annotations are not carried
func toRecord(n ast.Node) *record {
	switch n := n.(type) {
	case *ast.Program:
		r := newRecord(kindProgram, n.Loc)
		for _, fn := range n.Functions {
			r.Kids = append(r.Kids, toRecord(fn))
		}
		return r

	case *ast.Function:
		r := newRecord(kindFunction, n.Loc, toRecord(n.Body))
		r.Name = n.Name
		r.Params = n.Params
		return r

	case *ast.Block:
		if n == nil {
			return nil
		}
		r := newRecord(kindBlock, n.Loc)
		for _, s := range n.Stmts {
			r.Kids = append(r.Kids, toRecord(s))
		}
		return r

	case *ast.Assignment:
		r := newRecord(kindAssignment, n.Loc, toRecord(n.Value))
		r.Name = n.Name
		return r

	case *ast.IfStmt:
		return newRecord(kindIf, n.Loc, toRecord(n.Cond), toRecord(n.Then), toRecord(n.Else))

	case *ast.ReturnStmt:
		return newRecord(kindReturn, n.Loc, toRecord(n.Value))

	case *ast.BinaryExpr:
		r := newRecord(kindBinary, n.Loc, toRecord(n.Left), toRecord(n.Right))
		r.Op = n.Op
		return r

	case *ast.UnaryExpr:
		r := newRecord(kindUnary, n.Loc, toRecord(n.Operand))
		r.Op = n.Op
		return r

	case *ast.Call:
		r := newRecord(kindCall, n.Loc, toRecord(n.Callee))
		for _, a := range n.Args {
			r.Kids = append(r.Kids, toRecord(a))
		}
		return r

	case *ast.IntLit:
		r := newRecord(kindInt, n.Loc)
		r.Int = n.Value
		return r

	case *ast.BoolLit:
		r := newRecord(kindBool, n.Loc)
		r.Bool = n.Value
		return r

	case *ast.Ident:
		r := newRecord(kindIdent, n.Loc)
		r.Name = n.Name
		return r

	case *ast.EmptyList:
		return newRecord(kindEmptyList, n.Loc)

	case *ast.BinaryCond:
		r := newRecord(kindBinaryCond, n.Loc, toRecord(n.Left), toRecord(n.Right))
		r.Op = n.Op
		return r

	case *ast.UnaryCond:
		return newRecord(kindUnaryCond, n.Loc, toRecord(n.Operand))

	case *ast.Comparison:
		r := newRecord(kindComparison, n.Loc, toRecord(n.Left), toRecord(n.Right))
		r.Op = n.Op
		return r
	}

	return nil
}

// decodeProgram rebuilds typed nodes from records, checking the shape of each
func decodeProgram(r *record) (*ast.Program, error) {
	if r == nil || r.Kind != kindProgram {
		return nil, fmt.Errorf("%w: expected program record", ErrMalformed)
	}

	prog := &ast.Program{Loc: r.pos()}
	for _, k := range r.Kids {
		fn, err := decodeFunction(k)
		if err != nil {
			return nil, err
		}
		prog.Functions = append(prog.Functions, fn)
	}
	return prog, nil
}

func decodeFunction(r *record) (*ast.Function, error) {
	if r == nil || r.Kind != kindFunction || len(r.Kids) != 1 {
		return nil, fmt.Errorf("%w: expected function record", ErrMalformed)
	}

	body, err := decodeBlock(r.Kids[0])
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, fmt.Errorf("%w: function %s has no body", ErrMalformed, r.Name)
	}

	return &ast.Function{Name: r.Name, Params: r.Params, Body: body, Loc: r.pos()}, nil
}

// decodeBlock returns nil for a nil record
func decodeBlock(r *record) (*ast.Block, error) {
	if r == nil {
		return nil, nil
	}
	if r.Kind != kindBlock {
		return nil, fmt.Errorf("%w: expected block at %s", ErrMalformed, r.pos())
	}

	blk := &ast.Block{Loc: r.pos()}
	for _, k := range r.Kids {
		s, err := decodeStmt(k)
		if err != nil {
			return nil, err
		}
		blk.Stmts = append(blk.Stmts, s)
	}
	return blk, nil
}

func decodeStmt(r *record) (ast.Stmt, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: missing statement", ErrMalformed)
	}

	switch r.Kind {
	case kindBlock:
		return decodeBlock(r)

	case kindAssignment:
		v, err := decodeChild(r, 1, 0)
		if err != nil {
			return nil, err
		}
		return &ast.Assignment{Name: r.Name, Value: v, Loc: r.pos()}, nil

	case kindReturn:
		v, err := decodeChild(r, 1, 0)
		if err != nil {
			return nil, err
		}
		return &ast.ReturnStmt{Value: v, Loc: r.pos()}, nil

	case kindIf:
		cond, err := decodeChild(r, 3, 0)
		if err != nil {
			return nil, err
		}
		then, err := decodeBlock(r.Kids[1])
		if err != nil {
			return nil, err
		}
		if then == nil {
			return nil, fmt.Errorf("%w: if without a then branch at %s", ErrMalformed, r.pos())
		}
		els, err := decodeBlock(r.Kids[2])
		if err != nil {
			return nil, err
		}
		return &ast.IfStmt{Cond: cond, Then: then, Else: els, Loc: r.pos()}, nil
	}

	return nil, fmt.Errorf("%w: unexpected statement kind %d at %s", ErrMalformed, r.Kind, r.pos())
}

// decodeChild decodes kid i of r after checking r has exactly n kids
func decodeChild(r *record, n, i int) (ast.Expr, error) {
	if len(r.Kids) != n {
		return nil, fmt.Errorf("%w: expected %d children at %s, got %d", ErrMalformed, n, r.pos(), len(r.Kids))
	}
	return decodeExpr(r.Kids[i])
}

func decodePair(r *record) (ast.Expr, ast.Expr, error) {
	left, err := decodeChild(r, 2, 0)
	if err != nil {
		return nil, nil, err
	}
	right, err := decodeExpr(r.Kids[1])
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func decodeExpr(r *record) (ast.Expr, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: missing expression", ErrMalformed)
	}
	pos := r.pos()

	switch r.Kind {
	case kindInt:
		return &ast.IntLit{Value: r.Int, Loc: pos}, nil
	case kindBool:
		return &ast.BoolLit{Value: r.Bool, Loc: pos}, nil
	case kindIdent:
		return &ast.Ident{Name: r.Name, Loc: pos}, nil
	case kindEmptyList:
		return &ast.EmptyList{Loc: pos}, nil

	case kindBinary:
		l, rr, err := decodePair(r)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Op: r.Op, Left: l, Right: rr, Loc: pos}, nil

	case kindBinaryCond:
		l, rr, err := decodePair(r)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryCond{Op: r.Op, Left: l, Right: rr, Loc: pos}, nil

	case kindComparison:
		l, rr, err := decodePair(r)
		if err != nil {
			return nil, err
		}
		return &ast.Comparison{Op: r.Op, Left: l, Right: rr, Loc: pos}, nil

	case kindUnary:
		v, err := decodeChild(r, 1, 0)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: r.Op, Operand: v, Loc: pos}, nil

	case kindUnaryCond:
		v, err := decodeChild(r, 1, 0)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryCond{Operand: v, Loc: pos}, nil

	case kindCall:
		if len(r.Kids) == 0 {
			return nil, fmt.Errorf("%w: call without callee at %s", ErrMalformed, pos)
		}
		callee, err := decodeExpr(r.Kids[0])
		if err != nil {
			return nil, err
		}
		call := &ast.Call{Callee: callee, Loc: pos}
		for _, k := range r.Kids[1:] {
			a, err := decodeExpr(k)
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, a)
		}
		return call, nil
	}

	return nil, fmt.Errorf("%w: unexpected expression kind %d at %s", ErrMalformed, r.Kind, pos)
}
