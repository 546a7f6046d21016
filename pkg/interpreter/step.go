package interpreter

import "saltino/pkg/ast"

// step is the main loop iteration: a completed frame hands its result to
// its parent, anything else advances by one action.
func (i *Interpreter) step() (bool, error) {
	f := i.currentFrame()
	if f == nil {
		return true, nil
	}

	if f.Done {
		i.pop()
		parent := i.currentFrame()
		if parent == nil {
			i.result = f.Result
			return true, nil
		}
		deliver(parent, f.Result)
		return false, nil
	}

	switch f.Kind {
	case FrameCall:
		return false, i.stepCall(f)
	case FrameBlock:
		return false, i.stepBlock(f)
	case FrameExpr:
		return false, i.stepExpr(f)
	case FrameCond:
		return false, i.stepCond(f)
	case FrameIf:
		return false, i.stepIf(f)
	case FrameAssign:
		return false, i.stepAssign(f)
	case FrameReturn:
		return false, i.stepReturn(f)
	}

	return false, newError(InternalEngineError, f.Node.Pos(), "unknown frame kind %d", int(f.Kind))
}

// deliver routes a finished child's result to its parent. Blocks keep only
// the latest statement result; every other frame collects its operands.
func deliver(parent *Frame, v Value) {
	if parent.Kind == FrameBlock {
		parent.Result = v
		return
	}
	parent.Values = append(parent.Values, v)
}

func (i *Interpreter) stepCall(f *Frame) error {
	if f.Phase == 0 {
		f.Phase = 1
		i.push(&Frame{Kind: FrameBlock, Node: f.Fn.Body, Env: f.Env})
		return nil
	}

	// the body finished without an explicit return
	f.complete(f.last())
	return nil
}

func (i *Interpreter) stepBlock(f *Frame) error {
	blk := f.Node.(*ast.Block)
	if f.Index >= len(blk.Stmts) {
		f.Done = true
		return nil
	}

	s := blk.Stmts[f.Index]
	f.Index++
	return i.pushStmt(s, f.Env)
}

func (i *Interpreter) stepIf(f *Frame) error {
	n := f.Node.(*ast.IfStmt)

	switch f.Phase {
	case 0:
		f.Phase = 1
		i.pushEval(n.Cond, f.Env)

	case 1:
		cond := f.Values[0]
		if err := requireBool("if", cond, n.Cond.Pos()); err != nil {
			return err
		}

		branch := n.Else
		if cond.Bool {
			branch = n.Then
		}
		if branch == nil {
			f.complete(noValue)
			return nil
		}

		f.Phase = 2
		i.push(&Frame{Kind: FrameBlock, Node: branch, Env: f.Env})

	default:
		f.complete(f.last())
	}

	return nil
}

func (i *Interpreter) stepAssign(f *Frame) error {
	n := f.Node.(*ast.Assignment)

	if f.Phase == 0 {
		f.Phase = 1
		i.pushEval(n.Value, f.Env)
		return nil
	}

	if n.Binding == nil {
		return newError(InternalEngineError, n.Loc, "assignment to '%s' has not been resolved", n.Name)
	}

	v := f.Values[0]
	f.Env.Set(n.Binding.ID, v)
	f.complete(v)
	return nil
}

func (i *Interpreter) stepReturn(f *Frame) error {
	n := f.Node.(*ast.ReturnStmt)

	if call, ok := n.Value.(*ast.Call); ok && call.TailCall {
		return i.stepTailCall(f, call)
	}

	if f.Phase == 0 {
		f.Phase = 1
		i.pushEval(n.Value, f.Env)
		return nil
	}

	v := f.Values[0]

	// discard everything above the owning activation, which then completes
	// with the returned value
	for {
		top := i.currentFrame()
		if top == nil {
			return newError(InternalEngineError, n.Loc, "return outside of a function")
		}
		if top.Kind == FrameCall {
			top.complete(v)
			return nil
		}
		i.pop()
	}
}

// stepTailCall evaluates callee and arguments in the current activation,
// then replaces that activation with the callee's. The stack depth is the
// same before and after.
func (i *Interpreter) stepTailCall(f *Frame, call *ast.Call) error {
	fn, args, ready, err := i.callOperands(f, call)
	if err != nil || !ready {
		return err
	}

	for {
		top := i.pop()
		if top == nil {
			return newError(InternalEngineError, call.Loc, "tail call outside of a function")
		}
		if top.Kind == FrameCall {
			break
		}
	}

	i.stats.TailCalls++
	i.pushCall(fn, args)
	return nil
}

// callOperands advances the shared part of a call: callee first, then the
// arguments left to right. ready is true once everything is evaluated and
// the arity has been checked.
func (i *Interpreter) callOperands(f *Frame, call *ast.Call) (*ast.Function, []Value, bool, error) {
	switch f.Phase {
	case 0:
		f.Phase = 1
		i.pushEval(call.Callee, f.Env)
		return nil, nil, false, nil

	case 1:
		callee := f.Values[0]
		if callee.Kind != KindFunc {
			return nil, nil, false, newError(NotCallable, call.Callee.Pos(), "%s value is not callable", callee.Kind)
		}
		f.Phase = 2
	}

	// phase 2: arguments
	if n := f.received() - 1; n < len(call.Args) {
		i.pushEval(call.Args[n], f.Env)
		return nil, nil, false, nil
	}

	fn := f.Values[0].Func
	args := f.Values[1:]
	if len(args) != len(fn.Params) {
		return nil, nil, false, arityError(fn, len(args), call.Loc)
	}

	return fn, args, true, nil
}

func arityError(fn *ast.Function, got int, pos ast.Position) *Error {
	return newError(ArityMismatch, pos, "function '%s' expects %d argument(s), got %d", fn.Name, len(fn.Params), got)
}

func (i *Interpreter) stepExpr(f *Frame) error {
	switch n := f.Node.(type) {
	case *ast.IntLit:
		f.complete(Int(n.Value))

	case *ast.EmptyList:
		f.complete(List())

	case *ast.Ident:
		v, err := i.lookup(n, f.Env)
		if err != nil {
			return err
		}
		f.complete(v)

	case *ast.BinaryExpr:
		switch f.received() {
		case 0:
			i.pushEval(n.Left, f.Env)
		case 1:
			i.pushEval(n.Right, f.Env)
		default:
			v, err := binaryOp(n.Op, f.Values[0], f.Values[1], n.Loc)
			if err != nil {
				return err
			}
			f.complete(v)
		}

	case *ast.UnaryExpr:
		if f.received() == 0 {
			i.pushEval(n.Operand, f.Env)
			return nil
		}
		v, err := unaryOp(n.Op, f.Values[0], n.Loc)
		if err != nil {
			return err
		}
		f.complete(v)

	case *ast.Call:
		if f.Phase == 3 {
			f.complete(f.last())
			return nil
		}

		fn, args, ready, err := i.callOperands(f, n)
		if err != nil || !ready {
			return err
		}
		f.Phase = 3
		i.pushCall(fn, args)

	default:
		return newError(InternalEngineError, f.Node.Pos(), "unexpected expression %T", f.Node)
	}

	return nil
}

func (i *Interpreter) stepCond(f *Frame) error {
	switch n := f.Node.(type) {
	case *ast.BoolLit:
		f.complete(Bool(n.Value))

	case *ast.Comparison:
		switch f.received() {
		case 0:
			i.pushEval(n.Left, f.Env)
		case 1:
			i.pushEval(n.Right, f.Env)
		default:
			v, err := compare(n.Op, f.Values[0], f.Values[1], n.Loc)
			if err != nil {
				return err
			}
			f.complete(v)
		}

	case *ast.UnaryCond:
		if f.received() == 0 {
			i.pushEval(n.Operand, f.Env)
			return nil
		}
		v := f.Values[0]
		if err := requireBool("!", v, n.Operand.Pos()); err != nil {
			return err
		}
		f.complete(Bool(!v.Bool))

	case *ast.BinaryCond:
		switch f.received() {
		case 0:
			i.pushEval(n.Left, f.Env)

		case 1:
			left := f.Values[0]
			if err := requireBool(n.Op.String(), left, n.Left.Pos()); err != nil {
				return err
			}
			// short circuit: the right operand is never evaluated
			if n.Op == ast.And && !left.Bool || n.Op == ast.Or && left.Bool {
				f.complete(left)
				return nil
			}
			i.pushEval(n.Right, f.Env)

		default:
			right := f.Values[1]
			if err := requireBool(n.Op.String(), right, n.Right.Pos()); err != nil {
				return err
			}
			f.complete(right)
		}

	default:
		return newError(InternalEngineError, f.Node.Pos(), "unexpected condition %T", f.Node)
	}

	return nil
}

// lookup reads a variable or parameter from the activation, falling back to
// the function table by name.
func (i *Interpreter) lookup(id *ast.Ident, env *Environment) (Value, *Error) {
	if b := id.Binding; b != nil && b.Kind != ast.KindFunction {
		if v, ok := env.Get(b.ID); ok {
			return v, nil
		}
	}

	if fn, ok := i.globals.Function(id.Name); ok {
		return FuncRef(fn), nil
	}

	return noValue, newError(UndefinedReference, id.Loc, "name '%s' is not defined", id.Name)
}
