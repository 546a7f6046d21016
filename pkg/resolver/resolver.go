package resolver

import (
	"saltino/pkg/ast"

	"github.com/charmbracelet/log"
)

// Resolver binds every name in a program to a unique binding. One Resolver
// value performs one run; its counters are not shared with other runs.
type Resolver struct {
	nextID    int         // next binding id
	nextScope int         // next scope index
	global    *Scope      // root of the scope tree
	current   *Scope      // innermost open scope
	logger    *log.Logger // debug output
}

// Result is an annotated program plus the scope tree built for it.
type Result struct {
	Program  *ast.Program
	Global   *Scope
	Bindings int // number of bindings created
}

type Option func(*Resolver)

// WithLogger sets the logger used for scope tracing
func WithLogger(l *log.Logger) Option {
	return func(r *Resolver) {
		r.logger = l
	}
}

// Resolve annotates prog in place: identifiers and assignments receive
// their bindings and direct calls in return position are marked as tail
// calls. It stops at the first static error.
func Resolve(prog *ast.Program, opts ...Option) (*Result, error) {
	r := &Resolver{logger: log.Default()}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.program(prog); err != nil {
		return nil, err
	}

	return &Result{Program: prog, Global: r.global, Bindings: r.nextID}, nil
}

func (r *Resolver) openScope(name string) *Scope {
	s := newScope(name, r.nextScope, r.current)
	r.nextScope++
	if r.global == nil {
		r.global = s
	}
	r.current = s

	r.logger.Debug("Opening scope", "scope", name, "index", s.Index, "depth", s.Depth)
	return s
}

func (r *Resolver) closeScope() {
	r.current = r.current.Parent
}

func (r *Resolver) declare(name string, kind ast.BindingKind, initialized bool) *ast.Binding {
	b := r.current.declare(name, kind, r.nextID, initialized)
	if b.ID == r.nextID {
		r.nextID++
	}

	return b
}

func (r *Resolver) program(prog *ast.Program) error {
	r.openScope("global")

	// all functions first, so bodies can refer to functions defined later
	for _, fn := range prog.Functions {
		r.declare(fn.Name, ast.KindFunction, true)
	}

	for _, fn := range prog.Functions {
		if err := r.function(fn); err != nil {
			return err
		}
	}

	return nil
}

func (r *Resolver) function(fn *ast.Function) error {
	r.openScope("function " + fn.Name)
	defer r.closeScope()

	fn.ParamBindings = make([]*ast.Binding, len(fn.Params))
	for i, p := range fn.Params {
		fn.ParamBindings[i] = r.declare(p, ast.KindParameter, true)
	}

	return r.block(fn.Body)
}

func (r *Resolver) block(blk *ast.Block) error {
	r.openScope("block")
	defer r.closeScope()

	for _, name := range assignedNames(blk.Stmts, nil) {
		r.declare(name, ast.KindVariable, false)
	}

	for _, s := range blk.Stmts {
		if err := r.stmt(s); err != nil {
			return err
		}
	}

	return nil
}

// assignedNames collects assignment targets among stmts and, recursively,
// inside the branches of if statements. Nested blocks are left to their
// own scope.
func assignedNames(stmts []ast.Stmt, names []string) []string {
	for _, s := range stmts {
		switch s := s.(type) {
		case *ast.Assignment:
			names = append(names, s.Name)
		case *ast.IfStmt:
			names = assignedNames(s.Then.Stmts, names)
			if s.Else != nil {
				names = assignedNames(s.Else.Stmts, names)
			}
		}
	}

	return names
}

func (r *Resolver) stmt(s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.Assignment:
		// the value first: in `x = x + 1` the read must see x unassigned
		if err := r.expr(s.Value); err != nil {
			return err
		}

		b := r.current.LookupLocal(s.Name)
		if b == nil {
			b = r.declare(s.Name, ast.KindVariable, false)
		}
		b.Initialized = true
		s.Binding = b
		return nil

	case *ast.IfStmt:
		if err := r.expr(s.Cond); err != nil {
			return err
		}
		if err := r.block(s.Then); err != nil {
			return err
		}
		if s.Else != nil {
			return r.block(s.Else)
		}
		return nil

	case *ast.ReturnStmt:
		if err := r.expr(s.Value); err != nil {
			return err
		}
		if call, ok := s.Value.(*ast.Call); ok {
			call.TailCall = true
		}
		return nil

	case *ast.Block:
		return r.block(s)
	}

	return nil
}

func (r *Resolver) expr(e ast.Expr) error {
	switch e := e.(type) {
	case *ast.Ident:
		b, _ := r.current.Lookup(e.Name)
		if b == nil {
			return &Error{Kind: UndeclaredReference, Name: e.Name, Pos: e.Loc}
		}
		if b.Kind == ast.KindVariable && !b.Initialized {
			return &Error{Kind: UnboundLocalUse, Name: e.Name, Pos: e.Loc}
		}
		e.Binding = b
		return nil

	case *ast.Call:
		e.TailCall = false
		if err := r.expr(e.Callee); err != nil {
			return err
		}
		for _, a := range e.Args {
			if err := r.expr(a); err != nil {
				return err
			}
		}
		return nil

	case *ast.BinaryExpr:
		return r.pair(e.Left, e.Right)
	case *ast.BinaryCond:
		return r.pair(e.Left, e.Right)
	case *ast.Comparison:
		return r.pair(e.Left, e.Right)
	case *ast.UnaryExpr:
		return r.expr(e.Operand)
	case *ast.UnaryCond:
		return r.expr(e.Operand)
	}

	// literals
	return nil
}

func (r *Resolver) pair(left, right ast.Expr) error {
	if err := r.expr(left); err != nil {
		return err
	}

	return r.expr(right)
}
