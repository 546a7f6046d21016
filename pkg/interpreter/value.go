package interpreter

import (
	"fmt"
	"strconv"
	"strings"

	"saltino/pkg/ast"
)

type ValueKind int

const (
	KindNone ValueKind = iota // no value: empty block, if without a taken branch
	KindInt
	KindBool
	KindList
	KindFunc
)

var kindNames = [...]string{
	KindNone: "no value",
	KindInt:  "integer",
	KindBool: "boolean",
	KindList: "list",
	KindFunc: "function",
}

func (k ValueKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}

	return fmt.Sprintf("ValueKind(%d)", int(k))
}

// Cell is one node of an immutable singly-linked integer list. A nil *Cell
// is the empty list; cells are shared freely between values.
type Cell struct {
	Head int64
	Tail *Cell
}

// Value represents a dynamically-typed value in the interpreter.
type Value struct {
	Kind ValueKind
	Int  int64
	Bool bool
	List *Cell         // nil is the empty list when Kind is KindList
	Func *ast.Function // not owned
}

// String renders the value as a string.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindList:
		var b strings.Builder
		b.WriteByte('[')
		for c := v.List; c != nil; c = c.Tail {
			if c != v.List {
				b.WriteString(", ")
			}
			b.WriteString(strconv.FormatInt(c.Head, 10))
		}
		b.WriteByte(']')
		return b.String()
	case KindFunc:
		return "<function " + v.Func.Name + ">"
	default:
		return "<no value>"
	}
}

// Equal reports whether two values are identical. It is meant for callers
// comparing results; the language's own == is stricter.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}

	switch v.Kind {
	case KindInt:
		return v.Int == o.Int
	case KindBool:
		return v.Bool == o.Bool
	case KindFunc:
		return v.Func == o.Func
	case KindList:
		a, b := v.List, o.List
		for a != nil && b != nil {
			if a.Head != b.Head {
				return false
			}
			a, b = a.Tail, b.Tail
		}
		return a == nil && b == nil
	default:
		return true
	}
}

// IsEmptyList reports whether v is the empty list
func (v Value) IsEmptyList() bool {
	return v.Kind == KindList && v.List == nil
}

// Ints returns the elements of a list value
func (v Value) Ints() []int64 {
	var out []int64
	for c := v.List; c != nil; c = c.Tail {
		out = append(out, c.Head)
	}
	return out
}

// Int creates a new integer Value.
func Int(i int64) Value {
	return Value{Kind: KindInt, Int: i}
}

// Bool creates a new boolean Value.
func Bool(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// List creates a list Value holding xs in order.
func List(xs ...int64) Value {
	var c *Cell
	for i := len(xs) - 1; i >= 0; i-- {
		c = &Cell{Head: xs[i], Tail: c}
	}
	return Value{Kind: KindList, List: c}
}

// FuncRef creates a reference to a function definition.
func FuncRef(fn *ast.Function) Value {
	return Value{Kind: KindFunc, Func: fn}
}

func cons(head int64, tail *Cell) Value {
	return Value{Kind: KindList, List: &Cell{Head: head, Tail: tail}}
}

var noValue = Value{}
