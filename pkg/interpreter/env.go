package interpreter

import "saltino/pkg/ast"

// Globals is the single global environment: the function table.
type Globals struct {
	functions map[string]*ast.Function
}

func newGlobals(prog *ast.Program) *Globals {
	g := &Globals{functions: make(map[string]*ast.Function, len(prog.Functions))}
	for _, fn := range prog.Functions {
		if _, exists := g.functions[fn.Name]; !exists {
			g.functions[fn.Name] = fn
		}
	}

	return g
}

// Function looks up a function by name
func (g *Globals) Function(name string) (*ast.Function, bool) {
	fn, ok := g.functions[name]
	return fn, ok
}

// Environment holds the variables of one function activation, keyed by
// binding id. Blocks share the environment of their activation because
// the resolver already gave shadowed names distinct ids.
type Environment struct {
	values map[int]Value
}

// newEnvironment binds args to the parameters of fn. The caller has
// already checked the arity.
func newEnvironment(fn *ast.Function, args []Value) *Environment {
	env := &Environment{values: make(map[int]Value, len(args))}
	for i, b := range fn.ParamBindings {
		env.values[b.ID] = args[i]
	}

	return env
}

// Get reads the value stored under a binding id
func (e *Environment) Get(id int) (Value, bool) {
	v, ok := e.values[id]
	return v, ok
}

// Set stores a value under a binding id
func (e *Environment) Set(id int, v Value) {
	e.values[id] = v
}
