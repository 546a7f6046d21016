// Package saltino is the core entry point: it resolves a parsed program and
// executes its main function.
package saltino

import (
	"context"

	"saltino/pkg/ast"
	"saltino/pkg/interpreter"
	"saltino/pkg/resolver"
)

// Run resolves prog and calls main with mainArgs. The returned error is a
// *resolver.Error or an *interpreter.Error.
func Run(prog *ast.Program, mainArgs []interpreter.Value, opts ...interpreter.Option) (interpreter.Value, error) {
	return RunContext(context.Background(), prog, mainArgs, opts...)
}

// RunContext is Run with a context checked between engine steps.
func RunContext(ctx context.Context, prog *ast.Program, mainArgs []interpreter.Value, opts ...interpreter.Option) (interpreter.Value, error) {
	if _, err := resolver.Resolve(prog); err != nil {
		return interpreter.Value{}, err
	}

	return interpreter.NewInterpreter(prog, opts...).Run(ctx, mainArgs)
}
