package interpreter

import (
	"context"

	"saltino/pkg/ast"

	"github.com/charmbracelet/log"
)

// Interpreter executes a resolved program on an explicit frame stack, so
// the host call stack never grows with the depth of Saltino recursion.
type Interpreter struct {
	prog    *ast.Program // resolved program (not owned)
	globals *Globals     // function table

	stack []*Frame // pending evaluations, innermost last

	result Value // result of the outermost activation once halted
	halted bool

	logger *log.Logger

	maxSteps int // maximum steps (0 = unlimited)
	stats    Stats
}

// Stats describes the work done by the last run.
type Stats struct {
	Steps     int // loop iterations
	MaxDepth  int // deepest frame stack observed
	Calls     int // activations started, tail calls included
	TailCalls int // activations that replaced their caller
}

type Option func(*Interpreter)

// WithMaxSteps sets a maximum number of interpreter steps before returning ErrMaxStepsExceeded
func WithMaxSteps(n int) Option {
	return func(i *Interpreter) { i.maxSteps = n }
}

// WithLogger sets the logger used for run statistics
func WithLogger(l *log.Logger) Option {
	return func(i *Interpreter) { i.logger = l }
}

// NewInterpreter creates an Interpreter for a program that has already
// been through the resolver.
func NewInterpreter(prog *ast.Program, opts ...Option) *Interpreter {
	it := &Interpreter{
		prog:    prog,
		globals: newGlobals(prog),
		stack:   make([]*Frame, 0, 64),
		logger:  log.Default(),
	}

	for _, o := range opts {
		o(it)
	}

	return it
}

// Reset clears runtime state (call stack, result, counters)
func (i *Interpreter) Reset() {
	clear(i.stack)
	i.stack = i.stack[:0]
	i.result = noValue
	i.halted = false
	i.stats = Stats{}
}

// Stats returns counters for the last run
func (i *Interpreter) Stats() Stats {
	return i.stats
}

// Depth returns the current number of frames
func (i *Interpreter) Depth() int {
	return len(i.stack)
}

// Result returns the value produced once the run has halted
func (i *Interpreter) Result() Value {
	return i.result
}

// Run calls main with args and returns its result.
func (i *Interpreter) Run(ctx context.Context, args []Value) (Value, error) {
	main, ok := i.globals.Function("main")
	if !ok {
		return noValue, newError(NoEntryPoint, ast.Position{}, "no main function defined")
	}

	return i.CallFunction(ctx, main, args)
}

// CallFunction runs fn to completion with args bound to its parameters.
func (i *Interpreter) CallFunction(ctx context.Context, fn *ast.Function, args []Value) (Value, error) {
	i.Reset()

	if err := i.Start(fn, args); err != nil {
		return noValue, err
	}

	done := ctx.Done()
	for {
		if done != nil {
			select {
			case <-done:
				return noValue, ctx.Err()
			default:
			}
		}

		halted, err := i.Step()
		if err != nil {
			return noValue, err
		}

		if halted {
			i.logger.Debug("Execution finished",
				"function", fn.Name,
				"steps", i.stats.Steps,
				"max_depth", i.stats.MaxDepth,
				"calls", i.stats.Calls,
				"tail_calls", i.stats.TailCalls,
			)
			return i.result, nil
		}
	}
}

// Start pushes the initial activation of fn without running it, so the
// caller can drive execution with Step.
func (i *Interpreter) Start(fn *ast.Function, args []Value) error {
	if len(args) != len(fn.Params) {
		return arityError(fn, len(args), fn.Loc)
	}
	if len(fn.ParamBindings) != len(fn.Params) {
		return newError(InternalEngineError, fn.Loc, "function '%s' has not been resolved", fn.Name)
	}

	i.pushCall(fn, args)
	return nil
}

// Step performs one loop iteration, returning (halted, error)
func (i *Interpreter) Step() (bool, error) {
	if i.halted {
		return true, nil
	}

	if i.maxSteps > 0 && i.stats.Steps >= i.maxSteps {
		return false, ErrMaxStepsExceeded
	}

	halted, err := i.step()
	i.stats.Steps++

	if err != nil {
		return false, err
	}
	i.halted = halted
	return halted, nil
}

// currentFrame returns the innermost frame, or nil if none
func (i *Interpreter) currentFrame() *Frame {
	if len(i.stack) == 0 {
		return nil
	}

	return i.stack[len(i.stack)-1]
}

func (i *Interpreter) push(f *Frame) *Frame {
	i.stack = append(i.stack, f)
	if len(i.stack) > i.stats.MaxDepth {
		i.stats.MaxDepth = len(i.stack)
	}
	return f
}

// pop removes the innermost frame
func (i *Interpreter) pop() *Frame {
	if len(i.stack) == 0 {
		return nil
	}

	f := i.stack[len(i.stack)-1]
	i.stack[len(i.stack)-1] = nil
	i.stack = i.stack[:len(i.stack)-1]
	return f
}

func (i *Interpreter) pushCall(fn *ast.Function, args []Value) {
	i.stats.Calls++
	i.push(&Frame{
		Kind: FrameCall,
		Node: fn,
		Fn:   fn,
		Env:  newEnvironment(fn, args),
	})
}

// pushEval pushes the frame evaluating e, choosing the condition frame for
// Boolean-producing nodes
func (i *Interpreter) pushEval(e ast.Expr, env *Environment) {
	kind := FrameExpr
	if ast.IsCondition(e) {
		kind = FrameCond
	}
	i.push(&Frame{Kind: kind, Node: e, Env: env})
}

func (i *Interpreter) pushStmt(s ast.Stmt, env *Environment) error {
	var kind FrameKind
	switch s.(type) {
	case *ast.Assignment:
		kind = FrameAssign
	case *ast.IfStmt:
		kind = FrameIf
	case *ast.ReturnStmt:
		kind = FrameReturn
	case *ast.Block:
		kind = FrameBlock
	default:
		return newError(InternalEngineError, s.Pos(), "unexpected statement %T", s)
	}

	i.push(&Frame{Kind: kind, Node: s, Env: env})
	return nil
}
