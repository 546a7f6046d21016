package interpreter

import "saltino/pkg/ast"

// binaryOp applies an arithmetic or cons operator. Integer arithmetic wraps
// on overflow.
func binaryOp(op ast.Op, l, r Value, pos ast.Position) (Value, *Error) {
	if op == ast.Cons {
		if l.Kind != KindInt {
			return noValue, typeError("::", "integer head", l, pos)
		}
		if r.Kind != KindList {
			return noValue, typeError("::", "list tail", r, pos)
		}
		return cons(l.Int, r.List), nil
	}

	if l.Kind != KindInt {
		return noValue, typeError(op.String(), "integer", l, pos)
	}
	if r.Kind != KindInt {
		return noValue, typeError(op.String(), "integer", r, pos)
	}
	a, b := l.Int, r.Int

	switch op {
	case ast.Add:
		return Int(a + b), nil
	case ast.Sub:
		return Int(a - b), nil
	case ast.Mul:
		return Int(a * b), nil
	case ast.Div:
		if b == 0 {
			return noValue, newError(DivisionByZero, pos, "division by zero")
		}
		return Int(floorDiv(a, b)), nil
	case ast.Mod:
		if b == 0 {
			return noValue, newError(ModuloByZero, pos, "modulo by zero")
		}
		return Int(floorMod(a, b)), nil
	case ast.Pow:
		if b < 0 {
			return noValue, newError(NegativeExponent, pos, "negative exponent %d", b)
		}
		return Int(power(a, b)), nil
	}

	return noValue, newError(InternalEngineError, pos, "unknown binary operator %s", op)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

func power(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

func unaryOp(op ast.Op, v Value, pos ast.Position) (Value, *Error) {
	switch op {
	case ast.Plus, ast.Neg:
		if v.Kind != KindInt {
			return noValue, typeError(op.String(), "integer", v, pos)
		}
		if op == ast.Neg {
			return Int(-v.Int), nil
		}
		return v, nil

	case ast.Head, ast.Tail:
		if v.Kind != KindList {
			return noValue, typeError(op.String(), "list", v, pos)
		}
		if v.List == nil {
			return noValue, newError(EmptyListAccess, pos, "%s of empty list", op)
		}
		if op == ast.Head {
			return Int(v.List.Head), nil
		}
		return Value{Kind: KindList, List: v.List.Tail}, nil
	}

	return noValue, newError(InternalEngineError, pos, "unknown unary operator %s", op)
}

// compare evaluates a comparison. Only == accepts lists, and only when at
// least one side is the empty list.
func compare(op ast.Op, l, r Value, pos ast.Position) (Value, *Error) {
	if op == ast.Eq && l.Kind == KindList && r.Kind == KindList {
		if l.List != nil && r.List != nil {
			return noValue, newError(TypeMismatch, pos, "'==' on lists requires an empty list operand")
		}
		return Bool(l.List == nil && r.List == nil), nil
	}

	if l.Kind != KindInt {
		return noValue, typeError(op.String(), "integer", l, pos)
	}
	if r.Kind != KindInt {
		return noValue, typeError(op.String(), "integer", r, pos)
	}
	a, b := l.Int, r.Int

	switch op {
	case ast.Eq:
		return Bool(a == b), nil
	case ast.Ne:
		return Bool(a != b), nil
	case ast.Lt:
		return Bool(a < b), nil
	case ast.Le:
		return Bool(a <= b), nil
	case ast.Gt:
		return Bool(a > b), nil
	case ast.Ge:
		return Bool(a >= b), nil
	}

	return noValue, newError(InternalEngineError, pos, "unknown comparison %s", op)
}

// requireBool checks a value used in a Boolean context
func requireBool(what string, v Value, pos ast.Position) *Error {
	if v.Kind != KindBool {
		return typeError(what, "boolean", v, pos)
	}
	return nil
}
