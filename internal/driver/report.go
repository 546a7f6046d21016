package driver

import (
	"errors"
	"fmt"

	"saltino/pkg/ast"
	"saltino/pkg/color"
	"saltino/pkg/interpreter"
	"saltino/pkg/resolver"
)

var hints = map[string]string{
	resolver.UnboundLocalUse.String():     "the name is assigned in this block, so every read before that assignment refers to the unassigned local",
	resolver.UndeclaredReference.String(): "declare the variable with an assignment or define a function with that name",
	interpreter.NotCallable.String():      "only functions can be called",
	interpreter.NoEntryPoint.String():     "define a function named main",
	interpreter.EmptyListAccess.String():  "compare the list with [] before taking head or tail",
}

// Describe formats a core error for the terminal: kind, message, the
// offending source line with a caret, and a hint when one applies.
func Describe(err error, source string) string {
	var rerr *resolver.Error
	var ierr *interpreter.Error

	switch {
	case errors.As(err, &rerr):
		return describe(rerr.Kind.String(), rerr.Message(), rerr.Pos, source)
	case errors.As(err, &ierr):
		return describe(ierr.Kind.String(), ierr.Message, ierr.Pos, source)
	case errors.Is(err, interpreter.ErrMaxStepsExceeded):
		return "execution stopped: step limit reached (raise -max-steps or run.max_steps)"
	}

	return err.Error()
}

func describe(kind, message string, pos ast.Position, source string) string {
	out := fmt.Sprintf("%s: %s", color.BoldText(kind), message)
	if pos.IsValid() {
		out = fmt.Sprintf("%s at %s: %s", color.BoldText(kind), color.Position(pos.Line, pos.Column), message)
		if snippet := color.Snippet(source, pos.Line, pos.Column); snippet != "" {
			out += "\n" + snippet
		}
	}

	if hint, ok := hints[kind]; ok {
		out += "\n" + color.GrayText("hint: "+hint)
	}
	return out
}
